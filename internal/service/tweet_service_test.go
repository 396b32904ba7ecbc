package service

import (
	"context"
	"strings"
	"testing"

	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/repository"

	"github.com/stretchr/testify/assert"

	"gorm.io/gorm"
)

type fakeTweetRepo struct {
	repository.TweetRepo
	tweets  map[uint64]*model.Tweet
	created []*model.Tweet
}

func (f *fakeTweetRepo) GetTweetByID(_ context.Context, id uint64) (*model.Tweet, error) {
	tweet, ok := f.tweets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return tweet, nil
}

func (f *fakeTweetRepo) CreateTweet(_ context.Context, tweet *model.Tweet) error {
	f.created = append(f.created, tweet)
	return nil
}

func TestCreateTweetValidation(t *testing.T) {
	repo := &fakeTweetRepo{tweets: map[uint64]*model.Tweet{}}
	svc := &tweetServiceImpl{tweetRepo: repo}
	ctx := context.Background()

	t.Run("no content and no images", func(t *testing.T) {
		_, err := svc.CreateTweet(ctx, 1, &dto.TweetCreateDTO{Content: "   "})
		assert.ErrorIs(t, err, ErrTweetEmpty)
		assert.Empty(t, repo.created)
	})

	t.Run("content over rune limit", func(t *testing.T) {
		_, err := svc.CreateTweet(ctx, 1, &dto.TweetCreateDTO{Content: strings.Repeat("赞", 281)})
		assert.ErrorIs(t, err, ErrTweetTooLong)
		assert.Empty(t, repo.created)
	})

	t.Run("rune count not byte count", func(t *testing.T) {
		// 280 个多字节字符超出 280 字节但不超字符数，应通过长度校验
		_, err := svc.CreateTweet(ctx, 1, &dto.TweetCreateDTO{Content: strings.Repeat("赞", 280)})
		assert.NotErrorIs(t, err, ErrTweetTooLong)
		assert.Len(t, repo.created, 1)
	})

	t.Run("reply target must exist", func(t *testing.T) {
		missing := uint64(99)
		_, err := svc.CreateTweet(ctx, 1, &dto.TweetCreateDTO{Content: "回复", ReplyToID: &missing})
		assert.ErrorIs(t, err, ErrTweetNotFound)
	})
}

func TestDeleteTweetOwnership(t *testing.T) {
	repo := &fakeTweetRepo{tweets: map[uint64]*model.Tweet{
		5: {ID: 5, UserID: 2, Content: "别人的推文"},
	}}
	svc := &tweetServiceImpl{tweetRepo: repo}

	err := svc.DeleteTweet(context.Background(), 1, 5)
	assert.ErrorIs(t, err, UnauthorizedError)

	err = svc.DeleteTweet(context.Background(), 1, 404)
	assert.ErrorIs(t, err, ErrTweetNotFound)
}
