package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"
	"io"

	"github.com/gin-gonic/gin"
)

type DraftHandler struct {
	draftSvc service.DraftService
}

func NewDraftHandler(draftSvc service.DraftService) *DraftHandler {
	return &DraftHandler{
		draftSvc: draftSvc,
	}
}

func (s *DraftHandler) GetDraft(c *gin.Context) {
	userID := c.GetUint64("user_id")

	draft, err := s.draftSvc.GetDraft(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, draft)
}

func (s *DraftHandler) SaveDraft(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.DraftDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.draftSvc.SaveDraft(c.Request.Context(), userID, &req); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func (s *DraftHandler) ClearDraft(c *gin.Context) {
	userID := c.GetUint64("user_id")

	if err := s.draftSvc.ClearDraft(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func (s *DraftHandler) InsertBlock(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.BlockInsertDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.draftSvc.InsertBlock(c.Request.Context(), userID, req.Type)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateBlock 请求体是组件载荷本身，按组件类型解码
func (s *DraftHandler) UpdateBlock(c *gin.Context) {
	userID := c.GetUint64("user_id")
	blockID := c.Param("block_id")

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = s.draftSvc.UpdateBlock(c.Request.Context(), userID, blockID, raw); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func (s *DraftHandler) ReorderBlock(c *gin.Context) {
	userID := c.GetUint64("user_id")
	blockID := c.Param("block_id")

	var req dto.BlockReorderDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.draftSvc.ReorderBlock(c.Request.Context(), userID, blockID, *req.NewIndex); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func (s *DraftHandler) RemoveBlock(c *gin.Context) {
	userID := c.GetUint64("user_id")
	blockID := c.Param("block_id")

	if err := s.draftSvc.RemoveBlock(c.Request.Context(), userID, blockID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
