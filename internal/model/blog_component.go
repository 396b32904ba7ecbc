package model

import (
	"time"
)

// BlogComponent 组件存储行：所有类型共用一张宽表，每种类型只填自己的列
type BlogComponent struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	BlogID    uint64    `gorm:"not null;index:idx_blog_id_sort" json:"blog_id"`
	Type      string    `gorm:"type:varchar(32);not null" json:"type"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	Content   *string   `gorm:"type:json" json:"content"`             // richtext 文档树 / table、code 结构体
	Text      *string   `gorm:"type:text" json:"text"`                // imagetext
	ImageKey  *string   `gorm:"type:varchar(512)" json:"image_key"`   // imagetext、imageuploader
	Alignment *string   `gorm:"type:varchar(16)" json:"alignment"`    // imagetext
	VideoURL  *string   `gorm:"type:varchar(512)" json:"video_url"`   // videoplayer
	VideoType *string   `gorm:"type:varchar(16)" json:"video_type"`   // videoplayer
	CreatedAt time.Time `json:"created_at"`
}

func (BlogComponent) TableName() string {
	return "blog_components"
}
