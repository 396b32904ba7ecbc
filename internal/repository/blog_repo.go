package repository

import (
	"Inkstone/internal/model"
	"context"

	"gorm.io/gorm"
)

type BlogRepo interface {
	CreateBlog(ctx context.Context, blog *model.Blog, components []*model.BlogComponent) error
	UpdateBlog(ctx context.Context, blog *model.Blog, components []*model.BlogComponent) error
	GetBlogByID(ctx context.Context, id uint64) (*model.Blog, error)
	GetBlogBySlug(ctx context.Context, slug string) (*model.Blog, error)
	GetComponents(ctx context.Context, blogID uint64) ([]*model.BlogComponent, error)
	DeleteBlog(ctx context.Context, id uint64) error
	ListLatest(ctx context.Context, limit, offset int) ([]*model.Blog, error)
	ListByUserID(ctx context.Context, userID uint64, limit, offset int) ([]*model.Blog, error)
	ListByTag(ctx context.Context, tag string, limit, offset int) ([]*model.Blog, error)
	SearchBlogs(ctx context.Context, keyword string, limit, offset int) ([]*model.Blog, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	CountByUserID(ctx context.Context, userID uint64) (int64, error)
}

type BlogRepoImpl struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) BlogRepo {
	return &BlogRepoImpl{
		db: db,
	}
}

func (s *BlogRepoImpl) CreateBlog(ctx context.Context, blog *model.Blog, components []*model.BlogComponent) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(blog).Error; err != nil {
			return err
		}
		if len(components) == 0 {
			return nil
		}
		for _, c := range components {
			c.BlogID = blog.ID
		}
		return tx.Create(components).Error
	})
}

// UpdateBlog 全量替换：更新主表并重建组件行
func (s *BlogRepoImpl) UpdateBlog(ctx context.Context, blog *model.Blog, components []*model.BlogComponent) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(blog).
			Select("title", "slug", "short_description", "tags", "thumbnail_key", "published").
			Updates(blog).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.BlogComponent{}, "blog_id = ?", blog.ID).Error; err != nil {
			return err
		}
		if len(components) == 0 {
			return nil
		}
		for _, c := range components {
			c.BlogID = blog.ID
		}
		return tx.Create(components).Error
	})
}

func (s *BlogRepoImpl) GetBlogByID(ctx context.Context, id uint64) (*model.Blog, error) {
	var blog model.Blog
	err := s.db.WithContext(ctx).Preload("User").First(&blog, id).Error
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

func (s *BlogRepoImpl) GetBlogBySlug(ctx context.Context, slug string) (*model.Blog, error) {
	var blog model.Blog
	err := s.db.WithContext(ctx).Preload("User").
		Preload("Components", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("slug = ?", slug).
		First(&blog).Error
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

func (s *BlogRepoImpl) GetComponents(ctx context.Context, blogID uint64) ([]*model.BlogComponent, error) {
	var components []*model.BlogComponent
	err := s.db.WithContext(ctx).
		Where("blog_id = ?", blogID).
		Order("sort_order ASC").
		Find(&components).Error
	return components, err
}

// DeleteBlog 级联删除博客及其组件、点赞、评论
func (s *BlogRepoImpl) DeleteBlog(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.BlogComponent{}, "blog_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.BlogLike{}, "blog_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.BlogComment{}, "blog_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Blog{}, id).Error
	})
}

func (s *BlogRepoImpl) ListLatest(ctx context.Context, limit, offset int) ([]*model.Blog, error) {
	var blogs []*model.Blog
	err := s.db.WithContext(ctx).Preload("User").
		Where("published = ?", 1).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&blogs).Error
	return blogs, err
}

func (s *BlogRepoImpl) ListByUserID(ctx context.Context, userID uint64, limit, offset int) ([]*model.Blog, error) {
	var blogs []*model.Blog
	err := s.db.WithContext(ctx).Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&blogs).Error
	return blogs, err
}

func (s *BlogRepoImpl) ListByTag(ctx context.Context, tag string, limit, offset int) ([]*model.Blog, error) {
	var blogs []*model.Blog
	err := s.db.WithContext(ctx).Preload("User").
		Where("published = ? AND JSON_CONTAINS(tags, JSON_QUOTE(?))", 1, tag).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&blogs).Error
	return blogs, err
}

func (s *BlogRepoImpl) SearchBlogs(ctx context.Context, keyword string, limit, offset int) ([]*model.Blog, error) {
	var blogs []*model.Blog
	pattern := "%" + keyword + "%"
	err := s.db.WithContext(ctx).Preload("User").
		Where("published = ? AND (title LIKE ? OR short_description LIKE ?)", 1, pattern, pattern).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&blogs).Error
	return blogs, err
}

func (s *BlogRepoImpl) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Blog{}).
		Where("slug = ?", slug).
		Count(&count).Error
	return count > 0, err
}

func (s *BlogRepoImpl) CountByUserID(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Blog{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
