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
	log "log/slog"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jinzhu/copier"
)

type TweetService interface {
	CreateTweet(ctx context.Context, userID uint64, req *dto.TweetCreateDTO) (*dto.TweetDTO, error)
	DeleteTweet(ctx context.Context, userID, tweetID uint64) error
	GetTweet(ctx context.Context, userID, tweetID uint64) (*dto.TweetDTO, error)
	LatestTweets(ctx context.Context, userID uint64, page, pageSize int) (*dto.TweetListDTO, error)
	GetTweetsByUserID(ctx context.Context, viewerID, userID uint64, page, pageSize int) (*dto.TweetListDTO, error)

	ToggleLike(ctx context.Context, userID, tweetID uint64) (*dto.ToggleResultDTO, error)
	ToggleRetweet(ctx context.Context, userID, tweetID uint64) (*dto.ToggleResultDTO, error)

	CreateComment(ctx context.Context, userID, tweetID uint64, req *dto.CommentCreateDTO) error
	GetCommentsByTweetID(ctx context.Context, userID, tweetID uint64, page, pageSize int) ([]*dto.TweetCommentDTO, error)
	ToggleCommentLike(ctx context.Context, userID, commentID uint64) (*dto.ToggleResultDTO, error)
}

type tweetServiceImpl struct {
	tweetRepo repository.TweetRepo
	producer  *events.Producer
}

func NewTweetService(tweetRepo repository.TweetRepo, producer *events.Producer) TweetService {
	return &tweetServiceImpl{
		tweetRepo: tweetRepo,
		producer:  producer,
	}
}

// CreateTweet 内容和图片至少要有一个，内容不超过 280 个字符
func (s *tweetServiceImpl) CreateTweet(ctx context.Context, userID uint64, req *dto.TweetCreateDTO) (*dto.TweetDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Content) == "" && len(req.ImageKeys) == 0 {
		return nil, ErrTweetEmpty
	}
	if utf8.RuneCountInString(req.Content) > consts.TweetMaxLength {
		return nil, ErrTweetTooLong
	}

	if req.ReplyToID != nil {
		if _, err := s.tweetRepo.GetTweetByID(ctx, *req.ReplyToID); err != nil {
			return nil, ErrTweetNotFound
		}
	}

	tweet := &model.Tweet{
		UserID:    userID,
		Content:   req.Content,
		ImageKeys: req.ImageKeys,
		ReplyToID: req.ReplyToID,
	}
	if err := s.tweetRepo.CreateTweet(ctx, tweet); err != nil {
		return nil, err
	}

	s.producer.Publish(ctx, events.EventTweetPosted, userID, tweet.ID)
	return s.GetTweet(ctx, userID, tweet.ID)
}

// DeleteTweet 删除推文并异步清理其图片
func (s *tweetServiceImpl) DeleteTweet(ctx context.Context, userID, tweetID uint64) error {
	tweet, err := s.tweetRepo.GetTweetByID(ctx, tweetID)
	if err != nil {
		return ErrTweetNotFound
	}
	if tweet.UserID != userID {
		return UnauthorizedError
	}

	if err = s.tweetRepo.DeleteTweet(ctx, tweetID); err != nil {
		return err
	}

	if len(tweet.ImageKeys) > 0 {
		go func(keys []string) {
			bgCtx := context.Background()
			for _, key := range keys {
				if err := minio.DeleteFile(bgCtx, key); err != nil {
					log.Error("删除对象失败", "key", key, "err", err)
				}
			}
		}(tweet.ImageKeys)
	}

	_ = redis.DeleteKey(ctx, consts.TweetLikeCountKey+strconv.FormatUint(tweetID, 10))
	return nil
}

func (s *tweetServiceImpl) GetTweet(ctx context.Context, userID, tweetID uint64) (*dto.TweetDTO, error) {
	tweet, err := s.tweetRepo.GetTweetByID(ctx, tweetID)
	if err != nil {
		return nil, ErrTweetNotFound
	}
	return s.convertToTweetDTO(ctx, userID, tweet), nil
}

func (s *tweetServiceImpl) LatestTweets(ctx context.Context, userID uint64, page, pageSize int) (*dto.TweetListDTO, error) {
	tweets, err := s.tweetRepo.ListLatest(ctx, pageSize+1, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return s.buildList(ctx, userID, tweets, pageSize), nil
}

func (s *tweetServiceImpl) GetTweetsByUserID(ctx context.Context, viewerID, userID uint64, page, pageSize int) (*dto.TweetListDTO, error) {
	tweets, err := s.tweetRepo.ListByUserID(ctx, userID, pageSize+1, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return s.buildList(ctx, viewerID, tweets, pageSize), nil
}

func (s *tweetServiceImpl) ToggleLike(ctx context.Context, userID, tweetID uint64) (*dto.ToggleResultDTO, error) {
	if _, err := s.tweetRepo.GetTweetByID(ctx, tweetID); err != nil {
		return nil, ErrTweetNotFound
	}

	liked, err := s.tweetRepo.CheckLikeExists(ctx, userID, tweetID)
	if err != nil {
		return nil, err
	}

	if liked {
		if err = s.tweetRepo.DeleteLike(ctx, userID, tweetID); err != nil {
			return nil, err
		}
	} else {
		err = s.tweetRepo.CreateLike(ctx, &model.TweetLike{UserID: userID, TweetID: tweetID, CreatedAt: time.Now()})
		if err != nil && !isDuplicateError(err) {
			return nil, err
		}
		s.producer.Publish(ctx, events.EventTweetLiked, userID, tweetID)
	}

	key := consts.TweetLikeCountKey + strconv.FormatUint(tweetID, 10)
	_ = redis.DeleteKey(ctx, key)

	count, err := s.getTweetLikeCount(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	return &dto.ToggleResultDTO{Active: !liked, Count: count}, nil
}

// ToggleRetweet 转发生成一条引用原文的推文，再次操作删除它
func (s *tweetServiceImpl) ToggleRetweet(ctx context.Context, userID, tweetID uint64) (*dto.ToggleResultDTO, error) {
	original, err := s.tweetRepo.GetTweetByID(ctx, tweetID)
	if err != nil {
		return nil, ErrTweetNotFound
	}

	existing, err := s.tweetRepo.FindRetweet(ctx, userID, tweetID)
	retweeted := err == nil && existing != nil

	if retweeted {
		if err = s.tweetRepo.DeleteTweet(ctx, existing.ID); err != nil {
			return nil, err
		}
	} else {
		originalID := original.ID
		err = s.tweetRepo.CreateTweet(ctx, &model.Tweet{
			UserID:     userID,
			Content:    original.Content,
			IsRetweet:  true,
			OriginalID: &originalID,
		})
		if err != nil {
			return nil, err
		}
	}

	count, err := s.tweetRepo.GetRetweetCount(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	return &dto.ToggleResultDTO{Active: !retweeted, Count: count}, nil
}

func (s *tweetServiceImpl) CreateComment(ctx context.Context, userID, tweetID uint64, req *dto.CommentCreateDTO) error {
	if _, err := s.tweetRepo.GetTweetByID(ctx, tweetID); err != nil {
		return ErrTweetNotFound
	}
	if utf8.RuneCountInString(req.Content) > consts.TweetMaxLength {
		return ErrTweetTooLong
	}

	return s.tweetRepo.CreateComment(ctx, &model.TweetComment{
		TweetID: tweetID,
		UserID:  userID,
		Content: req.Content,
	})
}

func (s *tweetServiceImpl) GetCommentsByTweetID(ctx context.Context, userID, tweetID uint64, page, pageSize int) ([]*dto.TweetCommentDTO, error) {
	comments, err := s.tweetRepo.GetCommentsByTweetID(ctx, tweetID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	list := make([]*dto.TweetCommentDTO, 0, len(comments))
	for _, comment := range comments {
		item := &dto.TweetCommentDTO{}
		_ = copier.Copy(item, comment)
		item.CreatedAt = comment.CreatedAt.Format("2006-01-02 15:04:05")
		item.Author = comment.User.Name
		if comment.User.ImageKey != nil {
			item.AvatarURL, _ = minio.GetFileURL(ctx, *comment.User.ImageKey)
		}
		item.LikeCount, _ = s.tweetRepo.GetCommentLikeCount(ctx, comment.ID)
		if userID > 0 {
			item.Liked, _ = s.tweetRepo.CheckCommentLikeExists(ctx, userID, comment.ID)
		}
		list = append(list, item)
	}
	return list, nil
}

func (s *tweetServiceImpl) ToggleCommentLike(ctx context.Context, userID, commentID uint64) (*dto.ToggleResultDTO, error) {
	if _, err := s.tweetRepo.GetCommentByID(ctx, commentID); err != nil {
		return nil, ErrCommentNotFound
	}

	liked, err := s.tweetRepo.CheckCommentLikeExists(ctx, userID, commentID)
	if err != nil {
		return nil, err
	}

	if liked {
		if err = s.tweetRepo.DeleteCommentLike(ctx, userID, commentID); err != nil {
			return nil, err
		}
	} else {
		err = s.tweetRepo.CreateCommentLike(ctx, &model.TweetCommentLike{UserID: userID, CommentID: commentID, CreatedAt: time.Now()})
		if err != nil && !isDuplicateError(err) {
			return nil, err
		}
	}

	count, err := s.tweetRepo.GetCommentLikeCount(ctx, commentID)
	if err != nil {
		return nil, err
	}
	return &dto.ToggleResultDTO{Active: !liked, Count: count}, nil
}

func (s *tweetServiceImpl) getTweetLikeCount(ctx context.Context, tweetID uint64) (int64, error) {
	key := consts.TweetLikeCountKey + strconv.FormatUint(tweetID, 10)
	count, err := redis.GetInt64(ctx, key)
	if err == nil {
		return count, nil
	}
	realCount, err := s.tweetRepo.GetLikeCountByTweetID(ctx, tweetID)
	if err != nil {
		return 0, err
	}
	_ = redis.SetWithExpiration(ctx, key, realCount, cacheExpiration)
	return realCount, nil
}

func (s *tweetServiceImpl) buildList(ctx context.Context, userID uint64, tweets []*model.Tweet, pageSize int) *dto.TweetListDTO {
	hasMore := len(tweets) > pageSize
	if hasMore {
		tweets = tweets[:pageSize]
	}

	list := make([]*dto.TweetDTO, 0, len(tweets))
	for _, tweet := range tweets {
		list = append(list, s.convertToTweetDTO(ctx, userID, tweet))
	}
	return &dto.TweetListDTO{List: list, HasMore: hasMore}
}

func (s *tweetServiceImpl) convertToTweetDTO(ctx context.Context, userID uint64, tweet *model.Tweet) *dto.TweetDTO {
	item := &dto.TweetDTO{}
	_ = copier.Copy(item, tweet)
	item.CreatedAt = tweet.CreatedAt.Format("2006-01-02 15:04:05")
	item.Author = tweet.User.Name
	item.Username = tweet.User.Username
	if tweet.User.ImageKey != nil {
		item.AvatarURL, _ = minio.GetFileURL(ctx, *tweet.User.ImageKey)
	}

	item.ImageURLs = make([]string, 0, len(tweet.ImageKeys))
	for _, key := range tweet.ImageKeys {
		if url, err := minio.GetFileURL(ctx, key); err == nil {
			item.ImageURLs = append(item.ImageURLs, url)
		}
	}

	item.LikeCount, _ = s.getTweetLikeCount(ctx, tweet.ID)
	item.RetweetCount, _ = s.tweetRepo.GetRetweetCount(ctx, tweet.ID)
	item.CommentCount, _ = s.tweetRepo.GetCommentCountByTweetID(ctx, tweet.ID)
	if userID > 0 {
		item.Liked, _ = s.tweetRepo.CheckLikeExists(ctx, userID, tweet.ID)
		if retweet, err := s.tweetRepo.FindRetweet(ctx, userID, tweet.ID); err == nil && retweet != nil {
			item.Retweeted = true
		}
	}
	return item
}
