package service

import (
	"context"
	"testing"

	"Inkstone/internal/api/config"
	"Inkstone/internal/api/dto"
	"Inkstone/internal/content"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/minio"
	"Inkstone/internal/repository"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/gorm"
)

type fakeBlogRepo struct {
	repository.BlogRepo
	existing map[string]bool
	blogs    map[uint64]*model.Blog
	deleted  []uint64
}

func (f *fakeBlogRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	return f.existing[slug], nil
}

func (f *fakeBlogRepo) CreateBlog(_ context.Context, blog *model.Blog, rows []*model.BlogComponent) error {
	if f.blogs == nil {
		f.blogs = map[uint64]*model.Blog{}
	}
	blog.ID = uint64(len(f.blogs) + 1)
	blog.Components = rows
	f.blogs[blog.ID] = blog
	return nil
}

func (f *fakeBlogRepo) GetBlogBySlug(_ context.Context, slug string) (*model.Blog, error) {
	for _, blog := range f.blogs {
		if blog.Slug == slug {
			return blog, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBlogRepo) GetComponents(_ context.Context, blogID uint64) ([]*model.BlogComponent, error) {
	blog, ok := f.blogs[blogID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return blog.Components, nil
}

func (f *fakeBlogRepo) DeleteBlog(_ context.Context, id uint64) error {
	delete(f.blogs, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func TestValidateBlogMeta(t *testing.T) {
	valid := func() *dto.BlogBaseDTO {
		return &dto.BlogBaseDTO{
			Title:            "标题",
			ShortDescription: "摘要",
			Tags:             []string{"go"},
		}
	}

	assert.NoError(t, validateBlogMeta(valid()))

	t.Run("blank title", func(t *testing.T) {
		req := valid()
		req.Title = "   "
		assert.ErrorIs(t, validateBlogMeta(req), ErrBlogTitleEmpty)
	})

	t.Run("blank description", func(t *testing.T) {
		req := valid()
		req.ShortDescription = ""
		assert.ErrorIs(t, validateBlogMeta(req), ErrBlogDescEmpty)
	})

	t.Run("no tags", func(t *testing.T) {
		req := valid()
		req.Tags = nil
		assert.ErrorIs(t, validateBlogMeta(req), ErrBlogTagsEmpty)
	})

	t.Run("blank tag", func(t *testing.T) {
		req := valid()
		req.Tags = []string{"go", " "}
		assert.ErrorIs(t, validateBlogMeta(req), ErrBlogTagsEmpty)
	})
}

func TestUniqueSlug(t *testing.T) {
	useDeadRedis(t)

	repo := &fakeBlogRepo{existing: map[string]bool{
		"taken":   true,
		"taken-2": true,
	}}
	svc := &blogServiceImpl{blogRepo: repo}
	ctx := context.Background()

	t.Run("free slug kept as is", func(t *testing.T) {
		slug, err := svc.uniqueSlug(ctx, "fresh", "")
		require.NoError(t, err)
		assert.Equal(t, "fresh", slug)
	})

	t.Run("conflict appends numeric suffix", func(t *testing.T) {
		slug, err := svc.uniqueSlug(ctx, "taken", "")
		require.NoError(t, err)
		assert.Equal(t, "taken-3", slug)
	})

	t.Run("update may reuse its own slug", func(t *testing.T) {
		slug, err := svc.uniqueSlug(ctx, "taken", "taken")
		require.NoError(t, err)
		assert.Equal(t, "taken", slug)
	})

	t.Run("empty base falls back to untitled", func(t *testing.T) {
		slug, err := svc.uniqueSlug(ctx, "", "")
		require.NoError(t, err)
		assert.Equal(t, "untitled", slug)
	})
}

func TestDraftFromRequest(t *testing.T) {
	thumb := "2026/01/02/t.jpg"
	req := &dto.BlogBaseDTO{
		Title:            "标题",
		ShortDescription: "摘要",
		Tags:             []string{"go"},
		ThumbnailKey:     &thumb,
		Blocks: []dto.BlockDTO{
			{ID: "b1", Type: "code"},
			{ID: "orphan", Type: "imageuploader"}, // Data 中没有载荷，跳过
		},
		Data: map[string]json.RawMessage{
			"b1": json.RawMessage(`{"code":"x := 1","language":"go"}`),
		},
	}

	draft, err := draftFromRequest(req)
	require.NoError(t, err)
	assert.Equal(t, "标题", draft.Title)
	assert.Equal(t, thumb, draft.ThumbnailKey)
	require.Len(t, draft.Blocks, 1)
	assert.Equal(t, "b1", draft.Blocks[0].ID)
	assert.Equal(t, "x := 1", draft.Data["b1"].(*content.CodePayload).Code)

	t.Run("bad payload rejected", func(t *testing.T) {
		req.Data["b1"] = json.RawMessage(`{"code":`)
		_, err := draftFromRequest(req)
		assert.ErrorIs(t, err, content.ErrPayloadInvalid)
	})

	t.Run("unknown block type rejected", func(t *testing.T) {
		bad := &dto.BlogBaseDTO{
			Title:            "标题",
			ShortDescription: "摘要",
			Tags:             []string{"go"},
			Blocks:           []dto.BlockDTO{{ID: "x", Type: "carousel"}},
			Data:             map[string]json.RawMessage{"x": json.RawMessage(`{}`)},
		}
		_, err := draftFromRequest(bad)
		assert.ErrorIs(t, err, content.ErrUnknownBlockType)
	})
}

func TestDeleteBlog(t *testing.T) {
	useDeadRedis(t)

	newRepo := func() *fakeBlogRepo {
		return &fakeBlogRepo{blogs: map[uint64]*model.Blog{
			1: {ID: 1, UserID: 9, Slug: "mine", Components: []*model.BlogComponent{
				{ID: 11, BlogID: 1, Type: "code", SortOrder: 0},
			}},
		}}
	}

	t.Run("owner delete cascades", func(t *testing.T) {
		repo := newRepo()
		svc := &blogServiceImpl{blogRepo: repo}

		require.NoError(t, svc.DeleteBlog(context.Background(), 9, 1))
		assert.NotContains(t, repo.blogs, uint64(1))
		assert.Equal(t, []uint64{1}, repo.deleted)
	})

	t.Run("non-owner delete rejected", func(t *testing.T) {
		repo := newRepo()
		svc := &blogServiceImpl{blogRepo: repo}

		err := svc.DeleteBlog(context.Background(), 3, 1)
		assert.ErrorIs(t, err, UnauthorizedError)
		assert.Contains(t, repo.blogs, uint64(1), "越权删除不应生效")
		assert.Empty(t, repo.deleted)
	})

	t.Run("missing blog", func(t *testing.T) {
		svc := &blogServiceImpl{blogRepo: newRepo()}
		assert.ErrorIs(t, svc.DeleteBlog(context.Background(), 9, 404), ErrBlogNotFound)
	})
}

func TestDiffImageKeys(t *testing.T) {
	oldRows := []*model.BlogComponent{
		{ImageKey: strPtr("a.png")},
		{ImageKey: strPtr("b.png")},
		{ImageKey: strPtr("")},
		{},
	}
	newRows := []*model.BlogComponent{
		{ImageKey: strPtr("b.png")},
		{ImageKey: strPtr("c.png")},
	}

	assert.Equal(t, []string{"a.png"}, diffImageKeys(oldRows, newRows))
	assert.Empty(t, diffImageKeys(nil, newRows))
	assert.Equal(t, []string{"a.png", "b.png"}, diffImageKeys(oldRows, nil))
}

func strPtr(s string) *string { return &s }

func TestCreateBlogPublishedFlag(t *testing.T) {
	useDeadRedis(t)
	ctx := context.Background()

	newReq := func(published bool) *dto.BlogBaseDTO {
		return &dto.BlogBaseDTO{
			Title:            "发布状态",
			ShortDescription: "摘要",
			Tags:             []string{"go"},
			Published:        published,
			Blocks:           []dto.BlockDTO{{ID: "b1", Type: "code"}},
			Data: map[string]json.RawMessage{
				"b1": json.RawMessage(`{"code":"x := 1","language":"go"}`),
			},
		}
	}

	t.Run("published persists", func(t *testing.T) {
		repo := &fakeBlogRepo{}
		svc := &blogServiceImpl{blogRepo: repo, draftRepo: newFakeDraftRepo()}

		slug, err := svc.CreateBlog(ctx, 9, newReq(true))
		require.NoError(t, err)
		require.Len(t, repo.blogs, 1)
		created := repo.blogs[1]
		assert.True(t, created.Published)
		assert.Equal(t, slug, created.Slug)
	})

	t.Run("draft stays unpublished", func(t *testing.T) {
		repo := &fakeBlogRepo{}
		svc := &blogServiceImpl{blogRepo: repo, draftRepo: newFakeDraftRepo()}

		_, err := svc.CreateBlog(ctx, 9, newReq(false))
		require.NoError(t, err)
		require.Len(t, repo.blogs, 1)
		assert.False(t, repo.blogs[1].Published)
	})
}

// usePublicMinio 让对象 URL 走公开链接拼接，避免测试触发预签名请求
func usePublicMinio(t *testing.T) {
	t.Helper()
	oldCfg := config.Cfg
	config.Cfg = &config.Config{MinIO: config.MinIOConfig{
		ExternalEndpoint: "cdn.example.com",
		UsePublicLink:    true,
	}}
	oldBucket := minio.MainBucket
	minio.MainBucket = "inkstone"
	t.Cleanup(func() {
		config.Cfg = oldCfg
		minio.MainBucket = oldBucket
	})
}

func TestGetBlogBySlugResolvesImageURLs(t *testing.T) {
	useDeadRedis(t)
	usePublicMinio(t)

	blog := &model.Blog{
		ID:     1,
		UserID: 9,
		Slug:   "hello",
		Title:  "标题",
		Components: []*model.BlogComponent{
			{ID: 11, BlogID: 1, Type: "imageuploader", SortOrder: 0, ImageKey: strPtr("2026/01/02/a.png")},
			{ID: 12, BlogID: 1, Type: "imagetext", SortOrder: 1, Text: strPtr("配图说明"), ImageKey: strPtr("2026/01/02/b.png")},
			{ID: 13, BlogID: 1, Type: "code", SortOrder: 2, Content: strPtr(`{"language":"go","code":"x := 1"}`)},
		},
	}
	repo := &fakeBlogRepo{blogs: map[uint64]*model.Blog{1: blog}}
	svc := &blogServiceImpl{blogRepo: repo, actionRepo: newFakeActionRepo()}

	detail, err := svc.GetBlogBySlug(context.Background(), 0, "hello")
	require.NoError(t, err)
	require.Len(t, detail.Blocks, 3)

	var image content.ImagePayload
	require.NoError(t, json.Unmarshal(detail.Data["11"], &image))
	assert.Equal(t, "2026/01/02/a.png", image.ImageKey, "原始 key 保留")
	assert.Equal(t, "http://cdn.example.com/inkstone/2026/01/02/a.png", image.ImageURL)

	var imageText content.ImageTextPayload
	require.NoError(t, json.Unmarshal(detail.Data["12"], &imageText))
	assert.Equal(t, "http://cdn.example.com/inkstone/2026/01/02/b.png", imageText.ImageURL)

	var code content.CodePayload
	require.NoError(t, json.Unmarshal(detail.Data["13"], &code))
	assert.Equal(t, "x := 1", code.Code)
}
