package repository

import (
	"Inkstone/internal/model"
	"context"

	"gorm.io/gorm"
)

type ShortURLRepo interface {
	CreateShortURL(ctx context.Context, su *model.ShortURL) error
	GetByShortCode(ctx context.Context, code string) (*model.ShortURL, error)
	GetByBlogSlug(ctx context.Context, slug string) (*model.ShortURL, error)
	AddClicks(ctx context.Context, code string, delta int64) error
}

type ShortURLRepoImpl struct {
	db *gorm.DB
}

func NewShortURLRepository(db *gorm.DB) ShortURLRepo {
	return &ShortURLRepoImpl{db}
}

func (s *ShortURLRepoImpl) CreateShortURL(ctx context.Context, su *model.ShortURL) error {
	return s.db.WithContext(ctx).Create(su).Error
}

func (s *ShortURLRepoImpl) GetByShortCode(ctx context.Context, code string) (*model.ShortURL, error) {
	var su model.ShortURL
	err := s.db.WithContext(ctx).Where("short_code = ?", code).First(&su).Error
	if err != nil {
		return nil, err
	}
	return &su, nil
}

func (s *ShortURLRepoImpl) GetByBlogSlug(ctx context.Context, slug string) (*model.ShortURL, error) {
	var su model.ShortURL
	err := s.db.WithContext(ctx).Where("blog_slug = ?", slug).First(&su).Error
	if err != nil {
		return nil, err
	}
	return &su, nil
}

func (s *ShortURLRepoImpl) AddClicks(ctx context.Context, code string, delta int64) error {
	return s.db.WithContext(ctx).Model(&model.ShortURL{}).
		Where("short_code = ?", code).
		Update("clicks", gorm.Expr("clicks + ?", delta)).Error
}
