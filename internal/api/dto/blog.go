package dto

import "github.com/goccy/go-json"

// BlogBaseDTO 博客 - 新增或修改
type BlogBaseDTO struct {
	Title            string                     `json:"title" binding:"required" validate:"min=1,max=255"`
	ShortDescription string                     `json:"shortDescription" binding:"required" validate:"min=1,max=500"`
	Tags             []string                   `json:"tags" binding:"required" validate:"min=1,dive,min=1,max=50"`
	ThumbnailKey     *string                    `json:"thumbnailKey,omitempty"`
	Published        bool                       `json:"published"`
	Blocks           []BlockDTO                 `json:"blocks"`
	Data             map[string]json.RawMessage `json:"data"`
}

// BlockDTO 块的标识和类型，载荷在 Data 中按块 ID 查找
type BlockDTO struct {
	ID   string `json:"id" binding:"required"`
	Type string `json:"type" binding:"required"`
}

// BlogCardDTO 博客 - 列表卡片
type BlogCardDTO struct {
	ID               uint64   `json:"id"`
	Slug             string   `json:"slug"`
	Title            string   `json:"title"`
	ShortDescription string   `json:"shortDescription"`
	Tags             []string `json:"tags"`
	ThumbnailURL     string   `json:"thumbnailUrl,omitempty"`
	CreatedAt        string   `json:"createdAt"`

	// User
	UserID    uint64 `json:"userId"`
	Author    string `json:"author"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// BlogDetailDTO 博客 - 详情
type BlogDetailDTO struct {
	BlogCardDTO

	Blocks  []BlockDTO                 `json:"blocks"`
	Data    map[string]json.RawMessage `json:"data"`
	Outline []*OutlineNodeDTO          `json:"outline"`

	LikeCount    int64 `json:"likeCount"`
	CommentCount int64 `json:"commentCount"`
	Liked        bool  `json:"liked"`
	UpdatedAt    string `json:"updatedAt"`
}

// OutlineNodeDTO 标题大纲节点
type OutlineNodeDTO struct {
	ID       string            `json:"id"`
	Text     string            `json:"text"`
	Level    int               `json:"level"`
	Children []*OutlineNodeDTO `json:"children"`
}

// BlogListDTO 博客列表
type BlogListDTO struct {
	List    []*BlogCardDTO `json:"list"`
	HasMore bool           `json:"hasMore"`
}

// BlogStatsRequestDTO 批量统计查询
type BlogStatsRequestDTO struct {
	BlogIDs []uint64 `json:"blogIds" binding:"required" validate:"min=1,max=100"`
}

// BlogStatsDTO 单篇博客的互动统计，IsLiked 仅登录用户有意义
type BlogStatsDTO struct {
	LikeCount    int64 `json:"likeCount"`
	CommentCount int64 `json:"commentCount"`
	IsLiked      bool  `json:"isLiked"`
}

// LikeResultDTO 点赞切换结果
type LikeResultDTO struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"likeCount"`
}

// CommentCreateDTO 评论 - 新增
type CommentCreateDTO struct {
	Content string `json:"content" binding:"required" validate:"min=1,max=1000"`
}

// CommentDTO 评论
type CommentDTO struct {
	ID        uint64 `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`

	UserID    uint64 `json:"userId"`
	Author    string `json:"author"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}
