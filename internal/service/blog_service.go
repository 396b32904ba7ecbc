package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/content"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/events"
	"Inkstone/internal/pkg/minio"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/pkg/util"
	"Inkstone/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// maxSlugAttempts slug 去重后缀的尝试上限
const maxSlugAttempts = 100

type BlogService interface {
	CreateBlog(ctx context.Context, userID uint64, req *dto.BlogBaseDTO) (string, error)
	UpdateBlog(ctx context.Context, userID, blogID uint64, req *dto.BlogBaseDTO) (string, error)
	GetBlogBySlug(ctx context.Context, userID uint64, slug string) (*dto.BlogDetailDTO, error)
	LatestBlogs(ctx context.Context, page, pageSize int) (*dto.BlogListDTO, error)
	GetBlogsByUserID(ctx context.Context, userID uint64, page, pageSize int) (*dto.BlogListDTO, error)
	GetBlogsByTag(ctx context.Context, tag string, page, pageSize int) (*dto.BlogListDTO, error)
	SearchBlogs(ctx context.Context, keyword string, page, pageSize int) (*dto.BlogListDTO, error)
	DeleteBlog(ctx context.Context, userID, blogID uint64) error
}

type blogServiceImpl struct {
	blogRepo   repository.BlogRepo
	actionRepo repository.BlogActionRepo
	draftRepo  repository.DraftRepo
	producer   *events.Producer
}

func NewBlogService(
	blogRepo repository.BlogRepo,
	actionRepo repository.BlogActionRepo,
	draftRepo repository.DraftRepo,
	producer *events.Producer,
) BlogService {
	return &blogServiceImpl{
		blogRepo:   blogRepo,
		actionRepo: actionRepo,
		draftRepo:  draftRepo,
		producer:   producer,
	}
}

func (s *blogServiceImpl) CreateBlog(ctx context.Context, userID uint64, req *dto.BlogBaseDTO) (string, error) {
	if err := validateBlogMeta(req); err != nil {
		return "", err
	}
	if err := util.ValidateDTO(req); err != nil {
		return "", err
	}

	draft, err := draftFromRequest(req)
	if err != nil {
		return "", err
	}

	slug, err := s.uniqueSlug(ctx, util.Slugify(req.Title), "")
	if err != nil {
		return "", err
	}

	rows, err := content.ToRows(draft, 0)
	if err != nil {
		return "", err
	}

	blog := &model.Blog{
		UserID:           userID,
		Title:            req.Title,
		Slug:             slug,
		ShortDescription: req.ShortDescription,
		Tags:             req.Tags,
		ThumbnailKey:     req.ThumbnailKey,
		Published:        req.Published,
	}

	if err = s.blogRepo.CreateBlog(ctx, blog, rows); err != nil {
		return "", err
	}

	// 发布成功后清掉暂存的草稿
	go func(uid uint64) {
		if err := s.draftRepo.ClearDraft(context.Background(), uid); err != nil {
			log.Error("清理草稿失败", "user_id", uid, "err", err)
		}
	}(userID)

	s.producer.Publish(ctx, events.EventBlogPublished, userID, blog.ID)
	return slug, nil
}

// UpdateBlog 全量替换组件；标题变化时重新生成 slug
func (s *blogServiceImpl) UpdateBlog(ctx context.Context, userID, blogID uint64, req *dto.BlogBaseDTO) (string, error) {
	if err := validateBlogMeta(req); err != nil {
		return "", err
	}
	if err := util.ValidateDTO(req); err != nil {
		return "", err
	}

	oldBlog, err := s.blogRepo.GetBlogByID(ctx, blogID)
	if err != nil {
		return "", ErrBlogNotFound
	}
	if oldBlog.UserID != userID {
		return "", UnauthorizedError
	}

	draft, err := draftFromRequest(req)
	if err != nil {
		return "", err
	}

	slug := oldBlog.Slug
	if req.Title != oldBlog.Title {
		if slug, err = s.uniqueSlug(ctx, util.Slugify(req.Title), oldBlog.Slug); err != nil {
			return "", err
		}
	}

	rows, err := content.ToRows(draft, blogID)
	if err != nil {
		return "", err
	}

	oldRows, err := s.blogRepo.GetComponents(ctx, blogID)
	if err != nil {
		return "", err
	}

	blog := &model.Blog{
		ID:               blogID,
		UserID:           oldBlog.UserID,
		Title:            req.Title,
		Slug:             slug,
		ShortDescription: req.ShortDescription,
		Tags:             req.Tags,
		ThumbnailKey:     req.ThumbnailKey,
		Published:        req.Published,
	}

	if err = s.blogRepo.UpdateBlog(ctx, blog, rows); err != nil {
		return "", err
	}

	// 不再被任何组件引用的图片异步清理
	removed := diffImageKeys(oldRows, rows)
	if oldBlog.ThumbnailKey != nil && (req.ThumbnailKey == nil || *req.ThumbnailKey != *oldBlog.ThumbnailKey) {
		removed = append(removed, *oldBlog.ThumbnailKey)
	}
	if len(removed) > 0 {
		go func(keys []string) {
			bgCtx := context.Background()
			for _, key := range keys {
				if err := minio.DeleteFile(bgCtx, key); err != nil {
					log.Error("删除对象失败", "key", key, "err", err)
				}
			}
		}(removed)
	}

	return slug, nil
}

func (s *blogServiceImpl) GetBlogBySlug(ctx context.Context, userID uint64, slug string) (*dto.BlogDetailDTO, error) {
	blog, err := s.blogRepo.GetBlogBySlug(ctx, slug)
	if err != nil {
		return nil, ErrBlogNotFound
	}

	blocks, data := content.FromRows(blog.Components)

	detail := &dto.BlogDetailDTO{
		BlogCardDTO: *s.convertToCardDTO(ctx, blog),
		Blocks:      make([]dto.BlockDTO, 0, len(blocks)),
		Data:        make(map[string]json.RawMessage, len(data)),
		Outline:     convertOutline(content.BuildOutline(content.ExtractHeadings(blocks, data))),
		UpdatedAt:   blog.UpdatedAt.Format("2006-01-02 15:04:05"),
	}

	for _, block := range blocks {
		detail.Blocks = append(detail.Blocks, dto.BlockDTO{ID: block.ID, Type: string(block.Type)})
		payload, ok := data[block.ID]
		if !ok {
			continue
		}
		// 图片类载体把对象 key 解析成可直接访问的 URL
		switch p := payload.(type) {
		case *content.ImagePayload:
			p.ImageURL, _ = minio.GetFileURL(ctx, p.ImageKey)
		case *content.ImageTextPayload:
			p.ImageURL, _ = minio.GetFileURL(ctx, p.ImageKey)
		}
		raw, err := json.Marshal(payload)
		if err != nil {
			continue
		}
		detail.Data[block.ID] = raw
	}

	key := consts.BlogLikeCountKey + strconv.FormatUint(blog.ID, 10)
	if count, err := redis.GetInt64(ctx, key); err == nil {
		detail.LikeCount = count
	} else if count, err := s.actionRepo.GetLikeCountByBlogID(ctx, blog.ID); err == nil {
		detail.LikeCount = count
		_ = redis.SetWithExpiration(ctx, key, count, cacheExpiration)
	}

	detail.CommentCount, _ = s.actionRepo.GetCommentCountByBlogID(ctx, blog.ID)
	if userID > 0 {
		detail.Liked, _ = s.actionRepo.CheckLikeExists(ctx, userID, blog.ID)
	}

	return detail, nil
}

func (s *blogServiceImpl) LatestBlogs(ctx context.Context, page, pageSize int) (*dto.BlogListDTO, error) {
	blogs, err := s.blogRepo.ListLatest(ctx, pageSize+1, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return s.buildList(ctx, blogs, pageSize), nil
}

func (s *blogServiceImpl) GetBlogsByUserID(ctx context.Context, userID uint64, page, pageSize int) (*dto.BlogListDTO, error) {
	blogs, err := s.blogRepo.ListByUserID(ctx, userID, pageSize+1, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return s.buildList(ctx, blogs, pageSize), nil
}

func (s *blogServiceImpl) GetBlogsByTag(ctx context.Context, tag string, page, pageSize int) (*dto.BlogListDTO, error) {
	blogs, err := s.blogRepo.ListByTag(ctx, tag, pageSize+1, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return s.buildList(ctx, blogs, pageSize), nil
}

func (s *blogServiceImpl) SearchBlogs(ctx context.Context, keyword string, page, pageSize int) (*dto.BlogListDTO, error) {
	blogs, err := s.blogRepo.SearchBlogs(ctx, keyword, pageSize+1, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return s.buildList(ctx, blogs, pageSize), nil
}

// DeleteBlog 级联删除，随后异步清理引用的对象
func (s *blogServiceImpl) DeleteBlog(ctx context.Context, userID, blogID uint64) error {
	blog, err := s.blogRepo.GetBlogByID(ctx, blogID)
	if err != nil {
		return ErrBlogNotFound
	}
	if blog.UserID != userID {
		return UnauthorizedError
	}

	rows, err := s.blogRepo.GetComponents(ctx, blogID)
	if err != nil {
		return err
	}

	if err = s.blogRepo.DeleteBlog(ctx, blogID); err != nil {
		return err
	}

	keys := collectImageKeys(rows)
	if blog.ThumbnailKey != nil {
		keys = append(keys, *blog.ThumbnailKey)
	}
	if len(keys) > 0 {
		go func(keys []string) {
			bgCtx := context.Background()
			for _, key := range keys {
				if err := minio.DeleteFile(bgCtx, key); err != nil {
					log.Error("删除对象失败", "key", key, "err", err)
				}
			}
		}(keys)
	}

	_ = redis.DeleteKey(ctx, consts.BlogLikeCountKey+strconv.FormatUint(blogID, 10))
	s.producer.Publish(ctx, events.EventBlogDeleted, userID, blogID)
	return nil
}

func (s *blogServiceImpl) buildList(ctx context.Context, blogs []*model.Blog, pageSize int) *dto.BlogListDTO {
	hasMore := len(blogs) > pageSize
	if hasMore {
		blogs = blogs[:pageSize]
	}

	list := make([]*dto.BlogCardDTO, 0, len(blogs))
	for _, blog := range blogs {
		list = append(list, s.convertToCardDTO(ctx, blog))
	}
	return &dto.BlogListDTO{List: list, HasMore: hasMore}
}

func (s *blogServiceImpl) convertToCardDTO(ctx context.Context, blog *model.Blog) *dto.BlogCardDTO {
	item := &dto.BlogCardDTO{}
	_ = copier.Copy(item, blog)
	item.CreatedAt = blog.CreatedAt.Format("2006-01-02 15:04:05")
	item.Author = blog.User.Name
	if blog.ThumbnailKey != nil {
		item.ThumbnailURL, _ = minio.GetFileURL(ctx, *blog.ThumbnailKey)
	}
	if blog.User.ImageKey != nil {
		item.AvatarURL, _ = minio.GetFileURL(ctx, *blog.User.ImageKey)
	}
	return item
}

// uniqueSlug 冲突时追加 -2、-3 … 数字后缀；keep 为更新时允许复用的原 slug
func (s *blogServiceImpl) uniqueSlug(ctx context.Context, base, keep string) (string, error) {
	if base == "" {
		base = "untitled"
	}

	// 同名标题并发创建时串行化探测；锁拿不到就直接探测，slug 唯一索引兜底
	lockKey := consts.SlugLock + base
	token := uuid.NewString()
	if ok, err := redis.TryLock(ctx, lockKey, token, 3*time.Second, 1); err == nil && ok {
		defer redis.UnLock(ctx, lockKey, token)
	}

	candidate := base
	for i := 2; i <= maxSlugAttempts; i++ {
		if candidate == keep {
			return candidate, nil
		}
		exists, err := s.blogRepo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", UnExpectedError
}

func validateBlogMeta(req *dto.BlogBaseDTO) error {
	if strings.TrimSpace(req.Title) == "" {
		return ErrBlogTitleEmpty
	}
	if strings.TrimSpace(req.ShortDescription) == "" {
		return ErrBlogDescEmpty
	}
	if len(req.Tags) == 0 {
		return ErrBlogTagsEmpty
	}
	for _, tag := range req.Tags {
		if strings.TrimSpace(tag) == "" {
			return ErrBlogTagsEmpty
		}
	}
	return nil
}

// draftFromRequest 将编辑载荷还原为内存中的组件文档
func draftFromRequest(req *dto.BlogBaseDTO) (*content.Draft, error) {
	draft := content.NewDraft()
	draft.Title = req.Title
	draft.ShortDescription = req.ShortDescription
	draft.Tags = req.Tags
	if req.ThumbnailKey != nil {
		draft.ThumbnailKey = *req.ThumbnailKey
	}

	for _, block := range req.Blocks {
		t := content.BlockType(block.Type)
		raw, ok := req.Data[block.ID]
		if !ok {
			continue
		}
		payload, err := content.DecodePayload(t, raw)
		if err != nil {
			return nil, err
		}
		draft.Blocks = append(draft.Blocks, content.Block{ID: block.ID, Type: t})
		draft.Data[block.ID] = payload
	}
	return draft, nil
}

func collectImageKeys(rows []*model.BlogComponent) []string {
	var keys []string
	for _, row := range rows {
		if row.ImageKey != nil && *row.ImageKey != "" {
			keys = append(keys, *row.ImageKey)
		}
	}
	return keys
}

// diffImageKeys 返回旧组件引用但新组件不再引用的对象 key
func diffImageKeys(oldRows, newRows []*model.BlogComponent) []string {
	kept := make(map[string]struct{})
	for _, row := range newRows {
		if row.ImageKey != nil {
			kept[*row.ImageKey] = struct{}{}
		}
	}

	var removed []string
	for _, key := range collectImageKeys(oldRows) {
		if _, ok := kept[key]; !ok {
			removed = append(removed, key)
		}
	}
	return removed
}

func convertOutline(nodes []*content.OutlineNode) []*dto.OutlineNodeDTO {
	out := make([]*dto.OutlineNodeDTO, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, &dto.OutlineNodeDTO{
			ID:       node.ID,
			Text:     node.Text,
			Level:    node.Level,
			Children: convertOutline(node.Children),
		})
	}
	return out
}
