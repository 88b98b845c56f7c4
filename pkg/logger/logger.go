package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	Log  = zap.NewNop()
	SLog = Log.Sugar()
)

// Init replaces the no-op loggers with a production zap logger at the given level.
// An unknown level falls back to info and is reported through the new logger.
func Init(level string) error {
	l, err := build(level)
	if err != nil {
		return err
	}
	Log = l
	SLog = l.Sugar()
	return nil
}

func build(level string, opts ...zap.Option) (*zap.Logger, error) {
	lvl, parseErr := zapcore.ParseLevel(level)
	if parseErr != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	l, err := cfg.Build(opts...)
	if err != nil {
		return nil, err
	}
	if parseErr != nil {
		l.Warn("invalid log level, using info", zap.String("level", level), zap.Error(parseErr))
	}
	return l, nil
}

func Sync() {
	_ = Log.Sync()
}
