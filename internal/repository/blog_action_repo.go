package repository

import (
	"Inkstone/internal/model"
	"context"

	"gorm.io/gorm"
)

type BlogActionRepo interface {
	CreateLike(ctx context.Context, like *model.BlogLike) error
	DeleteLike(ctx context.Context, userID, blogID uint64) error
	CheckLikeExists(ctx context.Context, userID, blogID uint64) (bool, error)
	GetLikeCountByBlogID(ctx context.Context, blogID uint64) (int64, error)
	GetLikeCountsByBlogIDs(ctx context.Context, blogIDs []uint64) (map[uint64]int64, error)
	GetLikedBlogIDs(ctx context.Context, userID uint64, blogIDs []uint64) ([]uint64, error)

	CreateComment(ctx context.Context, comment *model.BlogComment) error
	DeleteComment(ctx context.Context, commentID uint64) error
	GetCommentByID(ctx context.Context, commentID uint64) (*model.BlogComment, error)
	GetCommentsByBlogID(ctx context.Context, blogID uint64, limit, offset int) ([]*model.BlogComment, error)
	GetCommentCountByBlogID(ctx context.Context, blogID uint64) (int64, error)
	GetCommentCountsByBlogIDs(ctx context.Context, blogIDs []uint64) (map[uint64]int64, error)
}

// blogCountRow 按 blog_id 聚合的计数行
type blogCountRow struct {
	BlogID uint64
	Count  int64
}

type BlogActionRepoImpl struct {
	db *gorm.DB
}

func NewBlogActionRepo(db *gorm.DB) BlogActionRepo {
	return &BlogActionRepoImpl{db}
}

func (s *BlogActionRepoImpl) CreateLike(ctx context.Context, like *model.BlogLike) error {
	return s.db.WithContext(ctx).Create(like).Error
}

func (s *BlogActionRepoImpl) DeleteLike(ctx context.Context, userID, blogID uint64) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND blog_id = ?", userID, blogID).
		Delete(&model.BlogLike{}).Error
}

func (s *BlogActionRepoImpl) CheckLikeExists(ctx context.Context, userID, blogID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.BlogLike{}).
		Where("user_id = ? AND blog_id = ?", userID, blogID).
		Count(&count).Error
	return count > 0, err
}

func (s *BlogActionRepoImpl) GetLikeCountByBlogID(ctx context.Context, blogID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.BlogLike{}).
		Where("blog_id = ?", blogID).
		Count(&count).Error
	return count, err
}

func (s *BlogActionRepoImpl) GetLikeCountsByBlogIDs(ctx context.Context, blogIDs []uint64) (map[uint64]int64, error) {
	var rows []blogCountRow
	err := s.db.WithContext(ctx).Model(&model.BlogLike{}).
		Select("blog_id, COUNT(*) AS count").
		Where("blog_id IN ?", blogIDs).
		Group("blog_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint64]int64, len(rows))
	for _, row := range rows {
		counts[row.BlogID] = row.Count
	}
	return counts, nil
}

func (s *BlogActionRepoImpl) GetLikedBlogIDs(ctx context.Context, userID uint64, blogIDs []uint64) ([]uint64, error) {
	var liked []uint64
	err := s.db.WithContext(ctx).Model(&model.BlogLike{}).
		Where("user_id = ? AND blog_id IN ?", userID, blogIDs).
		Pluck("blog_id", &liked).Error
	return liked, err
}

func (s *BlogActionRepoImpl) CreateComment(ctx context.Context, comment *model.BlogComment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

func (s *BlogActionRepoImpl) DeleteComment(ctx context.Context, commentID uint64) error {
	return s.db.WithContext(ctx).Delete(&model.BlogComment{}, commentID).Error
}

func (s *BlogActionRepoImpl) GetCommentByID(ctx context.Context, commentID uint64) (*model.BlogComment, error) {
	var comment model.BlogComment
	err := s.db.WithContext(ctx).First(&comment, commentID).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *BlogActionRepoImpl) GetCommentsByBlogID(ctx context.Context, blogID uint64, limit, offset int) ([]*model.BlogComment, error) {
	var comments []*model.BlogComment
	err := s.db.WithContext(ctx).Preload("User").
		Where("blog_id = ?", blogID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&comments).Error
	return comments, err
}

func (s *BlogActionRepoImpl) GetCommentCountByBlogID(ctx context.Context, blogID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.BlogComment{}).
		Where("blog_id = ?", blogID).
		Count(&count).Error
	return count, err
}

func (s *BlogActionRepoImpl) GetCommentCountsByBlogIDs(ctx context.Context, blogIDs []uint64) (map[uint64]int64, error) {
	var rows []blogCountRow
	err := s.db.WithContext(ctx).Model(&model.BlogComment{}).
		Select("blog_id, COUNT(*) AS count").
		Where("blog_id IN ?", blogIDs).
		Group("blog_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint64]int64, len(rows))
	for _, row := range rows {
		counts[row.BlogID] = row.Count
	}
	return counts, nil
}
