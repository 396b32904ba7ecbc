package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ShortURLHandler struct {
	shortURLSvc service.ShortURLService
}

func NewShortURLHandler(shortURLSvc service.ShortURLService) *ShortURLHandler {
	return &ShortURLHandler{
		shortURLSvc: shortURLSvc,
	}
}

func (s *ShortURLHandler) Create(c *gin.Context) {
	var req dto.ShortURLCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.shortURLSvc.CreateShortURL(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Resolve 302 跳转到原始链接
func (s *ShortURLHandler) Resolve(c *gin.Context) {
	code := c.Param("code")

	target, err := s.shortURLSvc.Resolve(c.Request.Context(), code)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Redirect(http.StatusFound, target)
}
