package cron

import (
	"Inkstone/internal/api/config"
	"Inkstone/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine          *cron.Cron
	shortURLSyncJob *job.ShortURLSyncJob
	draftSweepJob   *job.DraftSweepJob
}

func NewCronManager(shortURLSyncJob *job.ShortURLSyncJob, draftSweepJob *job.DraftSweepJob) *Manager {
	return &Manager{
		engine:          cron.New(cron.WithSeconds()),
		shortURLSyncJob: shortURLSyncJob,
		draftSweepJob:   draftSweepJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(config.Cfg.Blog.ClickFlushSpec, s.shortURLSyncJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob(config.Cfg.Blog.DraftSweepSpec, s.draftSweepJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
