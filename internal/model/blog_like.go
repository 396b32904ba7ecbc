package model

import (
	"time"
)

type BlogLike struct {
	UserID    uint64    `gorm:"primaryKey" json:"userId"`
	BlogID    uint64    `gorm:"primaryKey;index:idx_blog_id" json:"blogId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (BlogLike) TableName() string {
	return "blog_likes"
}
