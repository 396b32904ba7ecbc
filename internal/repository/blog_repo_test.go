package repository

import (
	"Inkstone/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err, "打开内存数据库失败")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Blog{}, &model.BlogComponent{}))
	return db
}

func strPtr(s string) *string { return &s }

func TestUpdateBlogPersistsClearedFields(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewBlogRepository(db)

	blog := &model.Blog{
		UserID:           1,
		Title:            "旧标题",
		Slug:             "old-title",
		ShortDescription: "旧摘要",
		Tags:             []string{"go"},
		ThumbnailKey:     strPtr("covers/old.png"),
		Published:        true,
	}
	rows := []*model.BlogComponent{
		{ID: 0, Type: "richtext", SortOrder: 0, Content: strPtr(`{"type":"doc"}`)},
	}
	require.NoError(t, repo.CreateBlog(ctx, blog, rows))
	require.NotZero(t, blog.ID)

	t.Run("撤回发布并清空缩略图", func(t *testing.T) {
		updated := &model.Blog{
			ID:               blog.ID,
			UserID:           blog.UserID,
			Title:            "旧标题",
			Slug:             "old-title",
			ShortDescription: "旧摘要",
			Tags:             []string{"go"},
			ThumbnailKey:     nil,
			Published:        false,
		}
		newRows := []*model.BlogComponent{
			{Type: "code", SortOrder: 0, Content: strPtr(`{"language":"go","code":"x"}`)},
			{Type: "richtext", SortOrder: 1, Content: strPtr(`{"type":"doc"}`)},
		}
		require.NoError(t, repo.UpdateBlog(ctx, updated, newRows))

		got, err := repo.GetBlogByID(ctx, blog.ID)
		require.NoError(t, err)
		assert.False(t, got.Published, "false 状态应落库")
		assert.Nil(t, got.ThumbnailKey, "清空的缩略图应落库")

		components, err := repo.GetComponents(ctx, blog.ID)
		require.NoError(t, err)
		require.Len(t, components, 2, "组件行应整体重建")
		assert.Equal(t, "code", components[0].Type)
		assert.Equal(t, "richtext", components[1].Type)
	})

	t.Run("重新发布", func(t *testing.T) {
		updated := &model.Blog{
			ID:               blog.ID,
			UserID:           blog.UserID,
			Title:            "新标题",
			Slug:             "new-title",
			ShortDescription: "新摘要",
			Tags:             []string{"go", "web"},
			ThumbnailKey:     strPtr("covers/new.png"),
			Published:        true,
		}
		require.NoError(t, repo.UpdateBlog(ctx, updated, nil))

		got, err := repo.GetBlogByID(ctx, blog.ID)
		require.NoError(t, err)
		assert.True(t, got.Published)
		assert.Equal(t, "new-title", got.Slug)
		require.NotNil(t, got.ThumbnailKey)
		assert.Equal(t, "covers/new.png", *got.ThumbnailKey)

		components, err := repo.GetComponents(ctx, blog.ID)
		require.NoError(t, err)
		assert.Empty(t, components)
	})
}
