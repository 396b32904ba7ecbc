package repository

import (
	"Inkstone/internal/model"
	"context"

	"gorm.io/gorm"
)

type UserFollowRepo interface {
	CreateFollow(ctx context.Context, follow *model.UserFollow) error
	DeleteFollow(ctx context.Context, followerID, followingID uint64) error
	CheckFollowExists(ctx context.Context, followerID, followingID uint64) (bool, error)
	GetFollowerCount(ctx context.Context, userID uint64) (int64, error)
	GetFollowingCount(ctx context.Context, userID uint64) (int64, error)
	GetFollowerIDs(ctx context.Context, userID uint64, limit, offset int) ([]uint64, error)
	GetFollowingIDs(ctx context.Context, userID uint64, limit, offset int) ([]uint64, error)
}

type UserFollowRepoImpl struct {
	db *gorm.DB
}

func NewUserFollowRepo(db *gorm.DB) UserFollowRepo {
	return &UserFollowRepoImpl{db}
}

func (s *UserFollowRepoImpl) CreateFollow(ctx context.Context, follow *model.UserFollow) error {
	return s.db.WithContext(ctx).Create(follow).Error
}

func (s *UserFollowRepoImpl) DeleteFollow(ctx context.Context, followerID, followingID uint64) error {
	return s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&model.UserFollow{}).Error
}

func (s *UserFollowRepoImpl) CheckFollowExists(ctx context.Context, followerID, followingID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.UserFollow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

func (s *UserFollowRepoImpl) GetFollowerCount(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.UserFollow{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (s *UserFollowRepoImpl) GetFollowingCount(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.UserFollow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (s *UserFollowRepoImpl) GetFollowerIDs(ctx context.Context, userID uint64, limit, offset int) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.UserFollow{}).
		Where("following_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Pluck("follower_id", &ids).Error
	return ids, err
}

func (s *UserFollowRepoImpl) GetFollowingIDs(ctx context.Context, userID uint64, limit, offset int) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.UserFollow{}).
		Where("follower_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Pluck("following_id", &ids).Error
	return ids, err
}
