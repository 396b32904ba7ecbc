package job

import (
	"Inkstone/internal/api/config"
	"Inkstone/internal/content"
	"Inkstone/internal/pkg/logger"
	"Inkstone/internal/pkg/minio"
	"Inkstone/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// DraftSweepJob 清理超期未动的草稿，连带回收草稿引用的对象存储资源
type DraftSweepJob struct {
	draftRepo repository.DraftRepo
}

func NewDraftSweepJob(draftRepo repository.DraftRepo) *DraftSweepJob {
	return &DraftSweepJob{
		draftRepo: draftRepo,
	}
}

func (s *DraftSweepJob) Run() {
	traceID := "job-draftsweep-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	ttl := time.Duration(config.Cfg.Blog.DraftTTLHours) * time.Hour
	stale, err := s.draftRepo.ListStale(ctx, ttl)
	if err != nil {
		log.ErrorContext(ctx, "list stale drafts error", "err", err)
		return
	}

	if len(stale) == 0 {
		return
	}

	log.InfoContext(ctx, "DraftSweepJob processing", "draft_count", len(stale))

	cleaned := 0
	for userID, draft := range stale {
		for _, key := range draftImageKeys(draft) {
			if err = minio.DeleteFile(ctx, key); err != nil {
				log.ErrorContext(ctx, "delete draft object error", "uid", userID, "key", key, "err", err)
			}
		}

		if err = s.draftRepo.ClearDraft(ctx, userID); err != nil {
			log.ErrorContext(ctx, "clear stale draft error", "uid", userID, "err", err)
			continue
		}
		cleaned++
	}

	log.InfoContext(ctx, "DraftSweepJob finished", "cleaned_count", cleaned)
}

func draftImageKeys(d *content.Draft) []string {
	var keys []string
	if d.ThumbnailKey != "" {
		keys = append(keys, d.ThumbnailKey)
	}
	for _, payload := range d.Data {
		keys = append(keys, payload.ImageKeys()...)
	}
	return keys
}
