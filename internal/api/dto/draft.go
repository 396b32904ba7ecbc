package dto

import "github.com/goccy/go-json"

// DraftDTO 草稿快照，与博客编辑载荷同构
type DraftDTO struct {
	Title            string                     `json:"title"`
	Slug             string                     `json:"slug"`
	ShortDescription string                     `json:"shortDescription"`
	Tags             []string                   `json:"tags"`
	ThumbnailKey     *string                    `json:"thumbnailKey,omitempty"`
	Blocks           []BlockDTO                 `json:"blocks"`
	Data             map[string]json.RawMessage `json:"data"`
}

// BlockInsertDTO 草稿 - 插入块
type BlockInsertDTO struct {
	Type string `json:"type" binding:"required"`
}

// BlockReorderDTO 草稿 - 移动块
type BlockReorderDTO struct {
	NewIndex *int `json:"newIndex" binding:"required"`
}

// BlockInsertResultDTO 插入结果
type BlockInsertResultDTO struct {
	BlockID string `json:"blockId"`
}
