package model

import (
	"time"
)

type TweetComment struct {
	ID        uint64    `gorm:"primaryKey"`
	TweetID   uint64    `gorm:"not null;index:idx_tweet_id" json:"tweetId"`
	UserID    uint64    `gorm:"not null" json:"userId"`
	Content   string    `gorm:"type:varchar(280);not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

func (TweetComment) TableName() string {
	return "tweet_comments"
}

type TweetCommentLike struct {
	UserID    uint64    `gorm:"primaryKey" json:"userId"`
	CommentID uint64    `gorm:"primaryKey;index:idx_comment_id" json:"commentId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (TweetCommentLike) TableName() string {
	return "tweet_comment_likes"
}
