package service

import (
	"context"
	"testing"
	"time"

	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	inkredis "Inkstone/internal/pkg/redis"
	"Inkstone/internal/repository"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/gorm"
)

// useDeadRedis 把计数缓存指向一个连不上的地址；点赞路径对缓存故障全程容错，
// 计数会直接回源到仓储层
func useDeadRedis(t *testing.T) {
	t.Helper()
	old := inkredis.Rdb
	inkredis.Rdb = goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() {
		_ = inkredis.Rdb.Close()
		inkredis.Rdb = old
	})
}

type likeKey struct {
	userID uint64
	blogID uint64
}

type fakeActionRepo struct {
	repository.BlogActionRepo
	likes         map[likeKey]bool
	commentCounts map[uint64]int64
}

func newFakeActionRepo() *fakeActionRepo {
	return &fakeActionRepo{likes: map[likeKey]bool{}}
}

func (f *fakeActionRepo) CreateLike(_ context.Context, like *model.BlogLike) error {
	f.likes[likeKey{like.UserID, like.BlogID}] = true
	return nil
}

func (f *fakeActionRepo) DeleteLike(_ context.Context, userID, blogID uint64) error {
	delete(f.likes, likeKey{userID, blogID})
	return nil
}

func (f *fakeActionRepo) CheckLikeExists(_ context.Context, userID, blogID uint64) (bool, error) {
	return f.likes[likeKey{userID, blogID}], nil
}

func (f *fakeActionRepo) GetCommentCountByBlogID(_ context.Context, _ uint64) (int64, error) {
	return 0, nil
}

func (f *fakeActionRepo) GetLikeCountsByBlogIDs(_ context.Context, blogIDs []uint64) (map[uint64]int64, error) {
	counts := map[uint64]int64{}
	for _, id := range blogIDs {
		for k := range f.likes {
			if k.blogID == id {
				counts[id]++
			}
		}
	}
	return counts, nil
}

func (f *fakeActionRepo) GetLikedBlogIDs(_ context.Context, userID uint64, blogIDs []uint64) ([]uint64, error) {
	var ids []uint64
	for _, id := range blogIDs {
		if f.likes[likeKey{userID, id}] {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeActionRepo) GetCommentCountsByBlogIDs(_ context.Context, blogIDs []uint64) (map[uint64]int64, error) {
	counts := map[uint64]int64{}
	for _, id := range blogIDs {
		if n := f.commentCounts[id]; n > 0 {
			counts[id] = n
		}
	}
	return counts, nil
}

func (f *fakeActionRepo) GetLikeCountByBlogID(_ context.Context, blogID uint64) (int64, error) {
	var n int64
	for k := range f.likes {
		if k.blogID == blogID {
			n++
		}
	}
	return n, nil
}

func (f *fakeBlogRepo) GetBlogByID(_ context.Context, id uint64) (*model.Blog, error) {
	blog, ok := f.blogs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return blog, nil
}

func TestToggleLike(t *testing.T) {
	useDeadRedis(t)

	actionRepo := newFakeActionRepo()
	blogRepo := &fakeBlogRepo{blogs: map[uint64]*model.Blog{
		1: {ID: 1, UserID: 9},
	}}
	svc := &blogActionServiceImpl{actionRepo: actionRepo, blogRepo: blogRepo}
	ctx := context.Background()

	t.Run("like then unlike restores state and count", func(t *testing.T) {
		res, err := svc.ToggleLike(ctx, 7, 1)
		require.NoError(t, err)
		assert.True(t, res.Liked)
		assert.Equal(t, int64(1), res.LikeCount)

		res, err = svc.ToggleLike(ctx, 7, 1)
		require.NoError(t, err)
		assert.False(t, res.Liked)
		assert.Equal(t, int64(0), res.LikeCount)
		assert.Empty(t, actionRepo.likes)
	})

	t.Run("likes from different users accumulate", func(t *testing.T) {
		_, err := svc.ToggleLike(ctx, 7, 1)
		require.NoError(t, err)
		res, err := svc.ToggleLike(ctx, 8, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(2), res.LikeCount)
	})

	t.Run("missing blog", func(t *testing.T) {
		_, err := svc.ToggleLike(ctx, 7, 404)
		assert.ErrorIs(t, err, ErrBlogNotFound)
	})
}

func TestGetBlogStats(t *testing.T) {
	repo := newFakeActionRepo()
	repo.likes[likeKey{7, 1}] = true
	repo.likes[likeKey{8, 1}] = true
	repo.likes[likeKey{7, 2}] = true
	repo.commentCounts = map[uint64]int64{2: 5}
	svc := &blogActionServiceImpl{actionRepo: repo}
	ctx := context.Background()

	t.Run("logged-in user gets own liked set", func(t *testing.T) {
		stats, err := svc.GetBlogStats(ctx, 8, &dto.BlogStatsRequestDTO{BlogIDs: []uint64{1, 2, 3}})
		require.NoError(t, err)
		require.Len(t, stats, 3)
		assert.Equal(t, int64(2), stats["1"].LikeCount)
		assert.True(t, stats["1"].IsLiked)
		assert.Equal(t, int64(5), stats["2"].CommentCount)
		assert.False(t, stats["2"].IsLiked)
		assert.Equal(t, int64(0), stats["3"].LikeCount, "没有记录的博客回零值")
		assert.False(t, stats["3"].IsLiked)
	})

	t.Run("anonymous user never shows liked", func(t *testing.T) {
		stats, err := svc.GetBlogStats(ctx, 0, &dto.BlogStatsRequestDTO{BlogIDs: []uint64{1}})
		require.NoError(t, err)
		assert.Equal(t, int64(2), stats["1"].LikeCount)
		assert.False(t, stats["1"].IsLiked)
	})

	t.Run("empty id list rejected", func(t *testing.T) {
		_, err := svc.GetBlogStats(ctx, 8, &dto.BlogStatsRequestDTO{})
		assert.Error(t, err)
	})
}

func TestDeleteCommentGuards(t *testing.T) {
	actionRepo := &fakeCommentRepo{comments: map[uint64]*model.BlogComment{
		5: {ID: 5, BlogID: 1, UserID: 2},
	}}
	svc := &blogActionServiceImpl{actionRepo: actionRepo}
	ctx := context.Background()

	t.Run("only the author may delete", func(t *testing.T) {
		err := svc.DeleteComment(ctx, 3, 1, 5)
		assert.ErrorIs(t, err, UnauthorizedError)
		assert.Contains(t, actionRepo.comments, uint64(5), "越权删除不应落库")
	})

	t.Run("comment must belong to the blog", func(t *testing.T) {
		err := svc.DeleteComment(ctx, 2, 99, 5)
		assert.ErrorIs(t, err, ErrCommentNotFound)
	})

	t.Run("author deletes own comment", func(t *testing.T) {
		require.NoError(t, svc.DeleteComment(ctx, 2, 1, 5))
		assert.NotContains(t, actionRepo.comments, uint64(5))
	})
}

type fakeCommentRepo struct {
	repository.BlogActionRepo
	comments map[uint64]*model.BlogComment
}

func (f *fakeCommentRepo) GetCommentByID(_ context.Context, id uint64) (*model.BlogComment, error) {
	comment, ok := f.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return comment, nil
}

func (f *fakeCommentRepo) DeleteComment(_ context.Context, id uint64) error {
	delete(f.comments, id)
	return nil
}
