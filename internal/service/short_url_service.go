package service

import (
	"Inkstone/internal/api/config"
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/pkg/util"
	"Inkstone/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strings"

	"gorm.io/gorm"
)

type ShortURLService interface {
	CreateShortURL(ctx context.Context, req *dto.ShortURLCreateDTO) (*dto.ShortURLDTO, error)
	Resolve(ctx context.Context, code string) (string, error)
	FlushClicks(ctx context.Context) error
}

type shortURLServiceImpl struct {
	shortURLRepo repository.ShortURLRepo
}

func NewShortURLService(shortURLRepo repository.ShortURLRepo) ShortURLService {
	return &shortURLServiceImpl{shortURLRepo: shortURLRepo}
}

// CreateShortURL 同一篇博客复用已有短链接，其余情况生成新码
func (s *shortURLServiceImpl) CreateShortURL(ctx context.Context, req *dto.ShortURLCreateDTO) (*dto.ShortURLDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, err
	}

	if req.BlogSlug != nil && *req.BlogSlug != "" {
		if existing, err := s.shortURLRepo.GetByBlogSlug(ctx, *req.BlogSlug); err == nil {
			return s.convertToDTO(existing), nil
		}
	}

	for i := 0; i < consts.ShortCodeMaxRetries; i++ {
		code, err := util.GenerateShortCode(consts.ShortCodeLength)
		if err != nil {
			return nil, err
		}

		su := &model.ShortURL{
			ShortCode:   code,
			OriginalURL: req.URL,
			BlogSlug:    req.BlogSlug,
		}
		err = s.shortURLRepo.CreateShortURL(ctx, su)
		if err == nil {
			return s.convertToDTO(su), nil
		}
		if !isDuplicateError(err) {
			return nil, err
		}
	}
	return nil, ErrShortCodeExhausted
}

// Resolve 返回原始链接并累计一次点击，点击数先进 redis 由定时任务回写
func (s *shortURLServiceImpl) Resolve(ctx context.Context, code string) (string, error) {
	target, err := redis.GetValue(ctx, consts.ShortURLTargetKey+code)
	if err == nil && target != "" {
		_, _ = redis.IncrBy(ctx, consts.ShortURLClicksKey+code, 1)
		return target, nil
	}

	su, err := s.shortURLRepo.GetByShortCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrShortURLNotFound
		}
		return "", err
	}

	_ = redis.SetWithExpiration(ctx, consts.ShortURLTargetKey+code, su.OriginalURL, cacheExpiration)
	_, _ = redis.IncrBy(ctx, consts.ShortURLClicksKey+code, 1)
	return su.OriginalURL, nil
}

// FlushClicks 把 redis 中累计的点击数回写数据库
func (s *shortURLServiceImpl) FlushClicks(ctx context.Context) error {
	keys, err := redis.ScanKeys(ctx, consts.ShortURLClicksKey+"*")
	if err != nil {
		return err
	}

	for _, key := range keys {
		code := strings.TrimPrefix(key, consts.ShortURLClicksKey)

		delta, err := redis.GetRdbClient().GetDel(ctx, key).Int64()
		if err != nil || delta == 0 {
			continue
		}

		if err = s.shortURLRepo.AddClicks(ctx, code, delta); err != nil {
			log.ErrorContext(ctx, "回写点击数失败", "code", code, "delta", delta, "err", err)
			// 回写失败把计数补回去，等下一轮再试
			_, _ = redis.IncrBy(ctx, key, delta)
		}
	}
	return nil
}

func (s *shortURLServiceImpl) convertToDTO(su *model.ShortURL) *dto.ShortURLDTO {
	return &dto.ShortURLDTO{
		ShortCode:   su.ShortCode,
		ShortURL:    config.Cfg.Blog.ShortURLBase + su.ShortCode,
		OriginalURL: su.OriginalURL,
		Clicks:      su.Clicks,
	}
}
