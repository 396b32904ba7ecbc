package response

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/util"
	"Inkstone/internal/service"
	"errors"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

const (
	Ok                  = 200
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

// Success 成功返回封装
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, dto.Response{
		Code:    Ok,
		Message: "success",
		Data:    data,
	})
}

// Fail 失败返回封装
func Fail(c *gin.Context, businessCode int, message string) {
	c.JSON(http.StatusOK, dto.Response{
		Code:    businessCode,
		Message: message,
		Data:    nil,
	})
}

// Error 处理错误
func Error(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		Fail(c, BadRequest, "参数错误")
		return
	}

	var unmarshalTypeError *json.UnmarshalTypeError
	if errors.As(err, &unmarshalTypeError) {
		Fail(c, BadRequest, "Json错误")
		return
	}

	var paramErr *util.ValidationError
	if errors.As(err, &paramErr) {
		Fail(c, BadRequest, paramErr.Error())
		return
	}

	code, ok := service.ErrorMap[err]
	if !ok {
		// 未登记的错误只落日志，对外不暴露内部细节
		log.Error("Error", "err", err)
		Fail(c, InternalServerError, "系统异常，请稍后重试")
		return
	}
	Fail(c, code, err.Error())
}
