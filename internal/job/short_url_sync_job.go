package job

import (
	"Inkstone/internal/pkg/logger"
	"Inkstone/internal/service"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

type ShortURLSyncJob struct {
	shortURLService service.ShortURLService
}

func NewShortURLSyncJob(shortURLService service.ShortURLService) *ShortURLSyncJob {
	return &ShortURLSyncJob{
		shortURLService: shortURLService,
	}
}

func (s *ShortURLSyncJob) Run() {
	traceID := "job-shorturl-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	if err := s.shortURLService.FlushClicks(ctx); err != nil {
		log.ErrorContext(ctx, "flush short url clicks error", "err", err)
		return
	}
}
