package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/events"
	"Inkstone/internal/pkg/minio"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/pkg/util"
	"Inkstone/internal/repository"
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jinzhu/copier"
)

const cacheExpiration = 7 * 24 * time.Hour

type BlogActionService interface {
	ToggleLike(ctx context.Context, userID, blogID uint64) (*dto.LikeResultDTO, error)
	GetBlogLikeCount(ctx context.Context, blogID uint64) (int64, error)
	IsLiked(ctx context.Context, userID, blogID uint64) (bool, error)
	GetBlogStats(ctx context.Context, userID uint64, req *dto.BlogStatsRequestDTO) (map[string]*dto.BlogStatsDTO, error)

	CreateComment(ctx context.Context, userID, blogID uint64, req *dto.CommentCreateDTO) error
	DeleteComment(ctx context.Context, userID, blogID, commentID uint64) error
	GetCommentsByBlogID(ctx context.Context, blogID uint64, page, pageSize int) ([]*dto.CommentDTO, error)
	GetBlogCommentCount(ctx context.Context, blogID uint64) (int64, error)
}

type blogActionServiceImpl struct {
	actionRepo repository.BlogActionRepo
	blogRepo   repository.BlogRepo
	producer   *events.Producer
}

func NewBlogActionService(
	actionRepo repository.BlogActionRepo,
	blogRepo repository.BlogRepo,
	producer *events.Producer,
) BlogActionService {
	return &blogActionServiceImpl{
		actionRepo: actionRepo,
		blogRepo:   blogRepo,
		producer:   producer,
	}
}

// ToggleLike 已点赞则取消，未点赞则点赞，返回切换后的状态与总数
func (s *blogActionServiceImpl) ToggleLike(ctx context.Context, userID, blogID uint64) (*dto.LikeResultDTO, error) {
	if _, err := s.blogRepo.GetBlogByID(ctx, blogID); err != nil {
		return nil, ErrBlogNotFound
	}

	liked, err := s.actionRepo.CheckLikeExists(ctx, userID, blogID)
	if err != nil {
		return nil, err
	}

	if liked {
		if err = s.actionRepo.DeleteLike(ctx, userID, blogID); err != nil {
			return nil, err
		}
	} else {
		err = s.actionRepo.CreateLike(ctx, &model.BlogLike{UserID: userID, BlogID: blogID, CreatedAt: time.Now()})
		if err != nil && !isDuplicateError(err) {
			return nil, err
		}
		s.producer.Publish(ctx, events.EventBlogLiked, userID, blogID)
	}

	key := consts.BlogLikeCountKey + strconv.FormatUint(blogID, 10)
	_ = redis.DeleteKey(ctx, key)

	count, err := s.GetBlogLikeCount(ctx, blogID)
	if err != nil {
		return nil, err
	}
	return &dto.LikeResultDTO{Liked: !liked, LikeCount: count}, nil
}

func (s *blogActionServiceImpl) GetBlogLikeCount(ctx context.Context, blogID uint64) (int64, error) {
	key := consts.BlogLikeCountKey + strconv.FormatUint(blogID, 10)
	count, err := redis.GetInt64(ctx, key)
	if err == nil {
		return count, nil
	}
	realCount, err := s.actionRepo.GetLikeCountByBlogID(ctx, blogID)
	if err != nil {
		return 0, err
	}
	_ = redis.SetWithExpiration(ctx, key, realCount, cacheExpiration)
	return realCount, nil
}

func (s *blogActionServiceImpl) IsLiked(ctx context.Context, userID, blogID uint64) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	return s.actionRepo.CheckLikeExists(ctx, userID, blogID)
}

// GetBlogStats 列表页批量拉取点赞评论计数；登录用户附带自己的点赞集合
func (s *blogActionServiceImpl) GetBlogStats(ctx context.Context, userID uint64, req *dto.BlogStatsRequestDTO) (map[string]*dto.BlogStatsDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, err
	}

	likeCounts, err := s.actionRepo.GetLikeCountsByBlogIDs(ctx, req.BlogIDs)
	if err != nil {
		return nil, err
	}
	commentCounts, err := s.actionRepo.GetCommentCountsByBlogIDs(ctx, req.BlogIDs)
	if err != nil {
		return nil, err
	}

	liked := make(map[uint64]bool)
	if userID > 0 {
		likedIDs, err := s.actionRepo.GetLikedBlogIDs(ctx, userID, req.BlogIDs)
		if err != nil {
			return nil, err
		}
		for _, id := range likedIDs {
			liked[id] = true
		}
	}

	stats := make(map[string]*dto.BlogStatsDTO, len(req.BlogIDs))
	for _, id := range req.BlogIDs {
		stats[strconv.FormatUint(id, 10)] = &dto.BlogStatsDTO{
			LikeCount:    likeCounts[id],
			CommentCount: commentCounts[id],
			IsLiked:      liked[id],
		}
	}
	return stats, nil
}

func (s *blogActionServiceImpl) CreateComment(ctx context.Context, userID, blogID uint64, req *dto.CommentCreateDTO) error {
	if _, err := s.blogRepo.GetBlogByID(ctx, blogID); err != nil {
		return ErrBlogNotFound
	}

	return s.actionRepo.CreateComment(ctx, &model.BlogComment{
		BlogID:  blogID,
		UserID:  userID,
		Content: req.Content,
	})
}

// DeleteComment 只允许评论作者本人删除
func (s *blogActionServiceImpl) DeleteComment(ctx context.Context, userID, blogID, commentID uint64) error {
	comment, err := s.actionRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return ErrCommentNotFound
	}
	if comment.BlogID != blogID {
		return ErrCommentNotFound
	}
	if comment.UserID != userID {
		return UnauthorizedError
	}
	return s.actionRepo.DeleteComment(ctx, commentID)
}

func (s *blogActionServiceImpl) GetCommentsByBlogID(ctx context.Context, blogID uint64, page, pageSize int) ([]*dto.CommentDTO, error) {
	comments, err := s.actionRepo.GetCommentsByBlogID(ctx, blogID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	list := make([]*dto.CommentDTO, 0, len(comments))
	for _, comment := range comments {
		item := &dto.CommentDTO{}
		_ = copier.Copy(item, comment)
		item.CreatedAt = comment.CreatedAt.Format("2006-01-02 15:04:05")
		item.Author = comment.User.Name
		if comment.User.ImageKey != nil {
			item.AvatarURL, _ = minio.GetFileURL(ctx, *comment.User.ImageKey)
		}
		list = append(list, item)
	}
	return list, nil
}

func (s *blogActionServiceImpl) GetBlogCommentCount(ctx context.Context, blogID uint64) (int64, error) {
	return s.actionRepo.GetCommentCountByBlogID(ctx, blogID)
}

func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return false
}
