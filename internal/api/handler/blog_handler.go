package handler

import (
	"Inkstone/internal/api/config"
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type BlogHandler struct {
	blogSvc service.BlogService
}

func NewBlogHandler(blogSvc service.BlogService) *BlogHandler {
	return &BlogHandler{
		blogSvc: blogSvc,
	}
}

func (s *BlogHandler) CreateBlog(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.BlogBaseDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	slug, err := s.blogSvc.CreateBlog(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"slug": slug})
}

func (s *BlogHandler) UpdateBlog(c *gin.Context) {
	userID := c.GetUint64("user_id")

	blogID, err := strconv.ParseUint(c.Param("blog_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.BlogBaseDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	slug, err := s.blogSvc.UpdateBlog(c.Request.Context(), userID, blogID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"slug": slug})
}

func (s *BlogHandler) GetBlogBySlug(c *gin.Context) {
	userID := c.GetUint64("user_id")
	slug := c.Param("slug")

	blog, err := s.blogSvc.GetBlogBySlug(c.Request.Context(), userID, slug)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, blog)
}

// ListBlogs 按 query 选择列表来源：keyword 搜索、tag 过滤、user_id 过滤，默认最新
func (s *BlogHandler) ListBlogs(c *gin.Context) {
	page, pageSize := pagination(c)
	ctx := c.Request.Context()

	if keyword := c.Query("keyword"); keyword != "" {
		list, err := s.blogSvc.SearchBlogs(ctx, keyword, page, pageSize)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, list)
		return
	}

	if tag := c.Query("tag"); tag != "" {
		list, err := s.blogSvc.GetBlogsByTag(ctx, tag, page, pageSize)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, list)
		return
	}

	if userIDStr := c.Query("user_id"); userIDStr != "" {
		userID, err := strconv.ParseUint(userIDStr, 10, 64)
		if err != nil {
			response.Error(c, service.ErrParamInvalid)
			return
		}
		list, err := s.blogSvc.GetBlogsByUserID(ctx, userID, page, pageSize)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, list)
		return
	}

	list, err := s.blogSvc.LatestBlogs(ctx, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *BlogHandler) DeleteBlog(c *gin.Context) {
	userID := c.GetUint64("user_id")

	blogID, err := strconv.ParseUint(c.Param("blog_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = s.blogSvc.DeleteBlog(c.Request.Context(), userID, blogID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func pagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	defaultSize := config.Cfg.Blog.DefaultPageSize
	if defaultSize <= 0 {
		defaultSize = 10
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultSize)))
	if err != nil || pageSize < 1 || pageSize > 50 {
		pageSize = defaultSize
	}
	return page, pageSize
}
