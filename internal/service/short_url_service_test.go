package service

import (
	"context"
	"testing"

	"Inkstone/internal/api/config"
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/repository"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/gorm"
)

type fakeShortURLRepo struct {
	repository.ShortURLRepo
	bySlug     map[string]*model.ShortURL
	duplicates int // 前 N 次插入返回唯一键冲突
	inserted   []*model.ShortURL
}

func (f *fakeShortURLRepo) CreateShortURL(_ context.Context, su *model.ShortURL) error {
	if f.duplicates > 0 {
		f.duplicates--
		return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	}
	f.inserted = append(f.inserted, su)
	return nil
}

func (f *fakeShortURLRepo) GetByBlogSlug(_ context.Context, slug string) (*model.ShortURL, error) {
	su, ok := f.bySlug[slug]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return su, nil
}

func setShortURLBase(t *testing.T) {
	t.Helper()
	old := config.Cfg
	config.Cfg = &config.Config{Blog: config.BlogConfig{ShortURLBase: "https://ink.example.com/s/"}}
	t.Cleanup(func() { config.Cfg = old })
}

func TestCreateShortURL(t *testing.T) {
	setShortURLBase(t)
	ctx := context.Background()

	t.Run("generates a code of fixed length", func(t *testing.T) {
		repo := &fakeShortURLRepo{}
		svc := &shortURLServiceImpl{shortURLRepo: repo}

		got, err := svc.CreateShortURL(ctx, &dto.ShortURLCreateDTO{URL: "https://example.com/post"})
		require.NoError(t, err)
		assert.Len(t, got.ShortCode, consts.ShortCodeLength)
		assert.Equal(t, "https://ink.example.com/s/"+got.ShortCode, got.ShortURL)
		assert.Equal(t, "https://example.com/post", got.OriginalURL)
		require.Len(t, repo.inserted, 1)
	})

	t.Run("retries on duplicate code", func(t *testing.T) {
		repo := &fakeShortURLRepo{duplicates: 3}
		svc := &shortURLServiceImpl{shortURLRepo: repo}

		got, err := svc.CreateShortURL(ctx, &dto.ShortURLCreateDTO{URL: "https://example.com/a"})
		require.NoError(t, err)
		assert.Len(t, got.ShortCode, consts.ShortCodeLength)
		require.Len(t, repo.inserted, 1)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		repo := &fakeShortURLRepo{duplicates: consts.ShortCodeMaxRetries}
		svc := &shortURLServiceImpl{shortURLRepo: repo}

		_, err := svc.CreateShortURL(ctx, &dto.ShortURLCreateDTO{URL: "https://example.com/b"})
		assert.ErrorIs(t, err, ErrShortCodeExhausted)
		assert.Empty(t, repo.inserted)
	})

	t.Run("reuses existing link for the same blog", func(t *testing.T) {
		slug := "hello-world"
		repo := &fakeShortURLRepo{bySlug: map[string]*model.ShortURL{
			slug: {ShortCode: "abc123", OriginalURL: "https://example.com/blog/hello-world", Clicks: 5},
		}}
		svc := &shortURLServiceImpl{shortURLRepo: repo}

		got, err := svc.CreateShortURL(ctx, &dto.ShortURLCreateDTO{URL: "https://example.com/blog/hello-world", BlogSlug: &slug})
		require.NoError(t, err)
		assert.Equal(t, "abc123", got.ShortCode)
		assert.Equal(t, int64(5), got.Clicks)
		assert.Empty(t, repo.inserted, "已有短链接时不应新建")
	})

	t.Run("rejects malformed url", func(t *testing.T) {
		svc := &shortURLServiceImpl{shortURLRepo: &fakeShortURLRepo{}}
		_, err := svc.CreateShortURL(ctx, &dto.ShortURLCreateDTO{URL: "not a url"})
		assert.Error(t, err)
	})

	t.Run("non-duplicate insert error surfaces", func(t *testing.T) {
		svc := &shortURLServiceImpl{shortURLRepo: &failingShortURLRepo{}}
		_, err := svc.CreateShortURL(ctx, &dto.ShortURLCreateDTO{URL: "https://example.com/c"})
		assert.ErrorIs(t, err, gorm.ErrInvalidDB)
	})
}

type failingShortURLRepo struct {
	repository.ShortURLRepo
}

func (f *failingShortURLRepo) CreateShortURL(_ context.Context, _ *model.ShortURL) error {
	return gorm.ErrInvalidDB
}

func (f *failingShortURLRepo) GetByBlogSlug(_ context.Context, _ string) (*model.ShortURL, error) {
	return nil, gorm.ErrRecordNotFound
}
