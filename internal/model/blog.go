package model

import (
	"time"
)

type Blog struct {
	ID               uint64    `gorm:"primaryKey"`
	UserID           uint64    `gorm:"not null;index:idx_user_id" json:"user_id"`
	Title            string    `gorm:"type:varchar(255);not null" json:"title"`
	Slug             string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_slug" json:"slug"`
	ShortDescription string    `gorm:"type:varchar(500);not null" json:"short_description"`
	Tags             []string  `gorm:"type:json;serializer:json" json:"tags"`
	ThumbnailKey     *string   `gorm:"type:varchar(512)" json:"thumbnail_key"`
	Published        bool      `gorm:"type:tinyint(1);not null;default:1" json:"published"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// 关联关系
	User       User            `gorm:"foreignKey:UserID;references:ID"`
	Components []*BlogComponent `gorm:"foreignKey:BlogID;references:ID"`
}

func (Blog) TableName() string {
	return "blogs"
}
