package repository

import (
	"Inkstone/internal/model"
	"context"

	"gorm.io/gorm"
)

type TweetRepo interface {
	CreateTweet(ctx context.Context, tweet *model.Tweet) error
	GetTweetByID(ctx context.Context, id uint64) (*model.Tweet, error)
	DeleteTweet(ctx context.Context, id uint64) error
	ListLatest(ctx context.Context, limit, offset int) ([]*model.Tweet, error)
	ListByUserID(ctx context.Context, userID uint64, limit, offset int) ([]*model.Tweet, error)

	CreateLike(ctx context.Context, like *model.TweetLike) error
	DeleteLike(ctx context.Context, userID, tweetID uint64) error
	CheckLikeExists(ctx context.Context, userID, tweetID uint64) (bool, error)
	GetLikeCountByTweetID(ctx context.Context, tweetID uint64) (int64, error)

	FindRetweet(ctx context.Context, userID, originalID uint64) (*model.Tweet, error)
	GetRetweetCount(ctx context.Context, originalID uint64) (int64, error)

	CreateComment(ctx context.Context, comment *model.TweetComment) error
	GetCommentByID(ctx context.Context, commentID uint64) (*model.TweetComment, error)
	GetCommentsByTweetID(ctx context.Context, tweetID uint64, limit, offset int) ([]*model.TweetComment, error)
	GetCommentCountByTweetID(ctx context.Context, tweetID uint64) (int64, error)

	CreateCommentLike(ctx context.Context, cl *model.TweetCommentLike) error
	DeleteCommentLike(ctx context.Context, userID, commentID uint64) error
	CheckCommentLikeExists(ctx context.Context, userID, commentID uint64) (bool, error)
	GetCommentLikeCount(ctx context.Context, commentID uint64) (int64, error)
}

type TweetRepoImpl struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) TweetRepo {
	return &TweetRepoImpl{db}
}

func (s *TweetRepoImpl) CreateTweet(ctx context.Context, tweet *model.Tweet) error {
	return s.db.WithContext(ctx).Create(tweet).Error
}

func (s *TweetRepoImpl) GetTweetByID(ctx context.Context, id uint64) (*model.Tweet, error) {
	var tweet model.Tweet
	err := s.db.WithContext(ctx).Preload("User").First(&tweet, id).Error
	if err != nil {
		return nil, err
	}
	return &tweet, nil
}

// DeleteTweet 删除推文及其点赞、评论和转发记录
func (s *TweetRepoImpl) DeleteTweet(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.TweetLike{}, "tweet_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.TweetComment{}, "tweet_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Tweet{}, "is_retweet = ? AND original_id = ?", true, id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Tweet{}, id).Error
	})
}

func (s *TweetRepoImpl) ListLatest(ctx context.Context, limit, offset int) ([]*model.Tweet, error) {
	var tweets []*model.Tweet
	err := s.db.WithContext(ctx).Preload("User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&tweets).Error
	return tweets, err
}

func (s *TweetRepoImpl) ListByUserID(ctx context.Context, userID uint64, limit, offset int) ([]*model.Tweet, error) {
	var tweets []*model.Tweet
	err := s.db.WithContext(ctx).Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&tweets).Error
	return tweets, err
}

func (s *TweetRepoImpl) CreateLike(ctx context.Context, like *model.TweetLike) error {
	return s.db.WithContext(ctx).Create(like).Error
}

func (s *TweetRepoImpl) DeleteLike(ctx context.Context, userID, tweetID uint64) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Delete(&model.TweetLike{}).Error
}

func (s *TweetRepoImpl) CheckLikeExists(ctx context.Context, userID, tweetID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.TweetLike{}).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Count(&count).Error
	return count > 0, err
}

func (s *TweetRepoImpl) GetLikeCountByTweetID(ctx context.Context, tweetID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.TweetLike{}).
		Where("tweet_id = ?", tweetID).
		Count(&count).Error
	return count, err
}

func (s *TweetRepoImpl) FindRetweet(ctx context.Context, userID, originalID uint64) (*model.Tweet, error) {
	var tweet model.Tweet
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_retweet = ? AND original_id = ?", userID, true, originalID).
		First(&tweet).Error
	if err != nil {
		return nil, err
	}
	return &tweet, nil
}

func (s *TweetRepoImpl) GetRetweetCount(ctx context.Context, originalID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Tweet{}).
		Where("is_retweet = ? AND original_id = ?", true, originalID).
		Count(&count).Error
	return count, err
}

func (s *TweetRepoImpl) CreateComment(ctx context.Context, comment *model.TweetComment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

func (s *TweetRepoImpl) GetCommentByID(ctx context.Context, commentID uint64) (*model.TweetComment, error) {
	var comment model.TweetComment
	err := s.db.WithContext(ctx).First(&comment, commentID).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *TweetRepoImpl) GetCommentsByTweetID(ctx context.Context, tweetID uint64, limit, offset int) ([]*model.TweetComment, error) {
	var comments []*model.TweetComment
	err := s.db.WithContext(ctx).Preload("User").
		Where("tweet_id = ?", tweetID).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&comments).Error
	return comments, err
}

func (s *TweetRepoImpl) GetCommentCountByTweetID(ctx context.Context, tweetID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.TweetComment{}).
		Where("tweet_id = ?", tweetID).
		Count(&count).Error
	return count, err
}

func (s *TweetRepoImpl) CreateCommentLike(ctx context.Context, cl *model.TweetCommentLike) error {
	return s.db.WithContext(ctx).Create(cl).Error
}

func (s *TweetRepoImpl) DeleteCommentLike(ctx context.Context, userID, commentID uint64) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Delete(&model.TweetCommentLike{}).Error
}

func (s *TweetRepoImpl) CheckCommentLikeExists(ctx context.Context, userID, commentID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.TweetCommentLike{}).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Count(&count).Error
	return count > 0, err
}

func (s *TweetRepoImpl) GetCommentLikeCount(ctx context.Context, commentID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.TweetCommentLike{}).
		Where("comment_id = ?", commentID).
		Count(&count).Error
	return count, err
}
