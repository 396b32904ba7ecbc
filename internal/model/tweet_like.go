package model

import "time"

type TweetLike struct {
	UserID    uint64    `gorm:"primaryKey" json:"userId"`
	TweetID   uint64    `gorm:"primaryKey;index:idx_tweet_id" json:"tweetId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (TweetLike) TableName() string {
	return "tweet_likes"
}
