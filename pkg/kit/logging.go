package kit

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func NewLogger(service, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.InitialFields = map[string]any{"service": service}
	return cfg.Build()
}

var osExit = os.Exit

// Fail logs err at error level, flushes the logger and exits with status 1.
// Unlike zap's Fatal it flushes buffered entries first.
func Fail(log *zap.Logger, msg string, err error) {
	log.Error(msg, zap.Error(err))
	_ = log.Sync()
	osExit(1)
}
