package logger

import (
	"Inkstone/internal/api/config"
	"io"
	log "log/slog"
	"os"
)

var LogWriter io.Writer

func InitLogger() {
	level := log.LevelInfo
	if config.Cfg.Server.Debug {
		level = log.LevelDebug
	}

	hStdout := log.NewJSONHandler(os.Stdout, &log.HandlerOptions{Level: level})
	LogWriter = os.Stdout

	logger := log.New(&ContextHandler{hStdout})
	log.SetDefault(logger)
}
