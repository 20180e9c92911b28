package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"quizmaster/internal/config"
)

// New builds the application logger. Logs go to stderr so they never mix with the game screen.
func New(cfg config.Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Log.Env == "production" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	if cfg.Log.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Log.Level)
		if err != nil {
			return nil, err
		}
		zc.Level = zap.NewAtomicLevelAt(level)
	}
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}
