package model

import (
	"time"
)

type ShortURL struct {
	ID          uint64    `gorm:"primaryKey"`
	ShortCode   string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_short_code" json:"shortCode"`
	OriginalURL string    `gorm:"type:varchar(2048);not null" json:"originalUrl"`
	BlogSlug    *string   `gorm:"type:varchar(255);index:idx_blog_slug" json:"blogSlug"`
	Clicks      int64     `gorm:"not null;default:0" json:"clicks"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (ShortURL) TableName() string {
	return "short_urls"
}
