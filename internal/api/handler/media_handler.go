package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	mediaSvc service.MediaService
}

func NewMediaHandler(mediaSvc service.MediaService) *MediaHandler {
	return &MediaHandler{
		mediaSvc: mediaSvc,
	}
}

func (s *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	result, err := s.mediaSvc.Upload(c.Request.Context(), file)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

func (s *MediaHandler) Delete(c *gin.Context) {
	var req dto.MediaDeleteOneDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.mediaSvc.Delete(c.Request.Context(), []string{req.Key}); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func (s *MediaHandler) DeleteBatch(c *gin.Context) {
	var req dto.MediaDeleteDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.mediaSvc.Delete(c.Request.Context(), req.Keys); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
