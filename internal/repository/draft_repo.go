package repository

import (
	"Inkstone/internal/content"
	"Inkstone/internal/pkg/consts"
	rdb "Inkstone/internal/pkg/redis"
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// DraftEnvelope 草稿存储包装，记录最后保存时间供清理任务判断
type DraftEnvelope struct {
	UpdatedAt int64          `json:"updated_at"`
	Draft     *content.Draft `json:"draft"`
}

type DraftRepo interface {
	SaveDraft(ctx context.Context, userID uint64, draft *content.Draft) error
	LoadDraft(ctx context.Context, userID uint64) (*content.Draft, error)
	ClearDraft(ctx context.Context, userID uint64) error
	ListStale(ctx context.Context, olderThan time.Duration) (map[uint64]*content.Draft, error)
}

type DraftRepoImpl struct{}

func NewDraftRepository() DraftRepo {
	return &DraftRepoImpl{}
}

func draftKey(userID uint64) string {
	return consts.DraftBlogKey + strconv.FormatUint(userID, 10)
}

func (s *DraftRepoImpl) SaveDraft(ctx context.Context, userID uint64, draft *content.Draft) error {
	payload, err := json.Marshal(DraftEnvelope{
		UpdatedAt: time.Now().Unix(),
		Draft:     draft,
	})
	if err != nil {
		return err
	}
	return rdb.SetWithExpiration(ctx, draftKey(userID), payload, 0)
}

// LoadDraft 草稿不存在时返回 (nil, nil)
func (s *DraftRepoImpl) LoadDraft(ctx context.Context, userID uint64) (*content.Draft, error) {
	value, err := rdb.GetValue(ctx, draftKey(userID))
	if err != nil {
		return nil, err
	}
	if value == "" {
		return nil, nil
	}

	var envelope DraftEnvelope
	if err = json.Unmarshal([]byte(value), &envelope); err != nil {
		return nil, err
	}
	return envelope.Draft, nil
}

func (s *DraftRepoImpl) ClearDraft(ctx context.Context, userID uint64) error {
	return rdb.DeleteKey(ctx, draftKey(userID))
}

// ListStale 扫描保存时间超过 olderThan 的草稿
func (s *DraftRepoImpl) ListStale(ctx context.Context, olderThan time.Duration) (map[uint64]*content.Draft, error) {
	keys, err := rdb.ScanKeys(ctx, consts.DraftBlogKey+"*")
	if err != nil {
		return nil, err
	}

	deadline := time.Now().Add(-olderThan).Unix()
	stale := make(map[uint64]*content.Draft)

	for _, key := range keys {
		value, err := rdb.GetValue(ctx, key)
		if err != nil || value == "" {
			continue
		}

		var envelope DraftEnvelope
		if err = json.Unmarshal([]byte(value), &envelope); err != nil {
			continue
		}
		if envelope.UpdatedAt >= deadline {
			continue
		}

		userID, err := strconv.ParseUint(strings.TrimPrefix(key, consts.DraftBlogKey), 10, 64)
		if err != nil {
			continue
		}
		stale[userID] = envelope.Draft
	}

	return stale, nil
}
