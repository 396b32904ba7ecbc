package model

import (
	"time"
)

type BlogComment struct {
	ID        uint64    `gorm:"primaryKey"`
	BlogID    uint64    `gorm:"not null;index:idx_blog_id" json:"blogId"`
	UserID    uint64    `gorm:"not null" json:"userId"`
	Content   string    `gorm:"type:varchar(1000);not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

func (BlogComment) TableName() string {
	return "blog_comments"
}
