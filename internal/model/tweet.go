package model

import (
	"time"
)

type Tweet struct {
	ID        uint64    `gorm:"primaryKey"`
	UserID    uint64    `gorm:"not null;index:idx_user_id" json:"userId"`
	Content   string    `gorm:"type:varchar(280);not null" json:"content"`
	ImageKeys []string  `gorm:"type:json;serializer:json" json:"imageKeys"`
	ReplyToID *uint64   `gorm:"index:idx_reply_to" json:"replyToId"` // nil 表示顶层推文
	IsRetweet bool      `gorm:"type:tinyint(1);not null;default:0" json:"isRetweet"`
	OriginalID *uint64  `gorm:"index:idx_original_id" json:"originalId"` // 转发来源
	CreatedAt time.Time `json:"createdAt"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

func (Tweet) TableName() string {
	return "tweets"
}
