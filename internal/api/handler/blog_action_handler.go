package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type BlogActionHandler struct {
	actionSvc service.BlogActionService
}

func NewBlogActionHandler(actionSvc service.BlogActionService) *BlogActionHandler {
	return &BlogActionHandler{
		actionSvc: actionSvc,
	}
}

func (s *BlogActionHandler) ToggleLike(c *gin.Context) {
	userID := c.GetUint64("user_id")

	blogID, err := strconv.ParseUint(c.Param("blog_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	result, err := s.actionSvc.ToggleLike(c.Request.Context(), userID, blogID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

func (s *BlogActionHandler) GetLikeStatus(c *gin.Context) {
	userID := c.GetUint64("user_id")

	blogID, err := strconv.ParseUint(c.Param("blog_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	count, err := s.actionSvc.GetBlogLikeCount(c.Request.Context(), blogID)
	if err != nil {
		response.Error(c, err)
		return
	}
	liked, err := s.actionSvc.IsLiked(c.Request.Context(), userID, blogID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.LikeResultDTO{Liked: liked, LikeCount: count})
}

// GetBlogStats 批量返回博客的点赞评论统计，供列表页一次取齐
func (s *BlogActionHandler) GetBlogStats(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.BlogStatsRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	stats, err := s.actionSvc.GetBlogStats(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}

func (s *BlogActionHandler) CreateComment(c *gin.Context) {
	userID := c.GetUint64("user_id")

	blogID, err := strconv.ParseUint(c.Param("blog_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.CommentCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err = s.actionSvc.CreateComment(c.Request.Context(), userID, blogID, &req); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func (s *BlogActionHandler) DeleteComment(c *gin.Context) {
	userID := c.GetUint64("user_id")

	blogID, err := strconv.ParseUint(c.Param("blog_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = s.actionSvc.DeleteComment(c.Request.Context(), userID, blogID, commentID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func (s *BlogActionHandler) GetComments(c *gin.Context) {
	blogID, err := strconv.ParseUint(c.Param("blog_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	page, pageSize := pagination(c)
	comments, err := s.actionSvc.GetCommentsByBlogID(c.Request.Context(), blogID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, comments)
}
