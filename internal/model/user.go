package model

import (
	"time"
)

// User 用户档案，账号本体由外部 OAuth 服务托管，这里只存展示信息
type User struct {
	ID         uint64    `gorm:"primaryKey"`
	ExternalID string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_external_id" json:"external_id"`
	Name       string    `gorm:"type:varchar(100);not null" json:"name"`
	Username   string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_username" json:"username"`
	Email      string    `gorm:"type:varchar(255);not null" json:"email"`
	Bio        *string   `gorm:"type:varchar(500)" json:"bio"`
	ImageKey   *string   `gorm:"type:varchar(512)" json:"image_key"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
