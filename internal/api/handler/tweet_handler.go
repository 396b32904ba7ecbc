package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type TweetHandler struct {
	tweetSvc service.TweetService
}

func NewTweetHandler(tweetSvc service.TweetService) *TweetHandler {
	return &TweetHandler{
		tweetSvc: tweetSvc,
	}
}

func (s *TweetHandler) CreateTweet(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.TweetCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	tweet, err := s.tweetSvc.CreateTweet(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, tweet)
}

func (s *TweetHandler) DeleteTweet(c *gin.Context) {
	userID := c.GetUint64("user_id")

	tweetID, err := strconv.ParseUint(c.Param("tweet_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = s.tweetSvc.DeleteTweet(c.Request.Context(), userID, tweetID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func (s *TweetHandler) ListTweets(c *gin.Context) {
	viewerID := c.GetUint64("user_id")
	page, pageSize := pagination(c)

	if userIDStr := c.Query("user_id"); userIDStr != "" {
		userID, err := strconv.ParseUint(userIDStr, 10, 64)
		if err != nil {
			response.Error(c, service.ErrParamInvalid)
			return
		}
		list, err := s.tweetSvc.GetTweetsByUserID(c.Request.Context(), viewerID, userID, page, pageSize)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, list)
		return
	}

	list, err := s.tweetSvc.LatestTweets(c.Request.Context(), viewerID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *TweetHandler) GetTweet(c *gin.Context) {
	viewerID := c.GetUint64("user_id")

	tweetID, err := strconv.ParseUint(c.Param("tweet_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	tweet, err := s.tweetSvc.GetTweet(c.Request.Context(), viewerID, tweetID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, tweet)
}

func (s *TweetHandler) ToggleLike(c *gin.Context) {
	userID := c.GetUint64("user_id")

	tweetID, err := strconv.ParseUint(c.Param("tweet_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	result, err := s.tweetSvc.ToggleLike(c.Request.Context(), userID, tweetID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

func (s *TweetHandler) ToggleRetweet(c *gin.Context) {
	userID := c.GetUint64("user_id")

	tweetID, err := strconv.ParseUint(c.Param("tweet_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	result, err := s.tweetSvc.ToggleRetweet(c.Request.Context(), userID, tweetID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

func (s *TweetHandler) CreateComment(c *gin.Context) {
	userID := c.GetUint64("user_id")

	tweetID, err := strconv.ParseUint(c.Param("tweet_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.CommentCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err = s.tweetSvc.CreateComment(c.Request.Context(), userID, tweetID, &req); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func (s *TweetHandler) GetComments(c *gin.Context) {
	viewerID := c.GetUint64("user_id")

	tweetID, err := strconv.ParseUint(c.Param("tweet_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	page, pageSize := pagination(c)
	comments, err := s.tweetSvc.GetCommentsByTweetID(c.Request.Context(), viewerID, tweetID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, comments)
}

func (s *TweetHandler) ToggleCommentLike(c *gin.Context) {
	userID := c.GetUint64("user_id")

	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	result, err := s.tweetSvc.ToggleCommentLike(c.Request.Context(), userID, commentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
