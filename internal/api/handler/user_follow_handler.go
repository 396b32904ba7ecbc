package handler

import (
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserFollowHandler struct {
	followSvc service.UserFollowService
}

func NewUserFollowHandler(followSvc service.UserFollowService) *UserFollowHandler {
	return &UserFollowHandler{
		followSvc: followSvc,
	}
}

func (s *UserFollowHandler) ToggleFollow(c *gin.Context) {
	followerID := c.GetUint64("user_id")

	followingID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	result, err := s.followSvc.ToggleFollow(c.Request.Context(), followerID, followingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

func (s *UserFollowHandler) ListFollowers(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	page, pageSize := pagination(c)

	list, err := s.followSvc.ListFollowers(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, list)
}

func (s *UserFollowHandler) ListFollowing(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	page, pageSize := pagination(c)

	list, err := s.followSvc.ListFollowing(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, list)
}

func (s *UserFollowHandler) CheckFollow(c *gin.Context) {
	followerID := c.GetUint64("user_id")

	followingID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	result, err := s.followSvc.CheckFollow(c.Request.Context(), followerID, followingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
