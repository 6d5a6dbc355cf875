package logger

import (
	"fmt"
	"os"

	"github.com/benoitkugler/foprops/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// ProgressLogger logs the main steps of the resolution.
	ProgressLogger *zap.SugaredLogger

	// WarningLogger emits a warning for each non fatal error, like
	// unknown attributes or invalid property values, which are ignored.
	WarningLogger *zap.SugaredLogger
)

func init() {
	core := zapcore.NewCore(encoder("console"), zapcore.Lock(os.Stderr), zap.InfoLevel)
	setCore(core)
}

func setCore(core zapcore.Core) {
	base := zap.New(core).Named("foprops")
	ProgressLogger = base.Named("progress").Sugar()
	WarningLogger = base.Named("warning").Sugar()
}

// Configure replaces the loggers according to [cfg].
func Configure(cfg config.LoggerConfig) error {
	core, err := newCore(cfg, zapcore.Lock(os.Stderr))
	if err != nil {
		return err
	}
	setCore(core)
	return nil
}

// Replace redirects both loggers to [core], returning
// a function restoring the previous ones.
func Replace(core zapcore.Core) (restore func()) {
	progress, warning := ProgressLogger, WarningLogger
	setCore(core)
	return func() { ProgressLogger, WarningLogger = progress, warning }
}

func newCore(cfg config.LoggerConfig, console zapcore.WriteSyncer) (zapcore.Core, error) {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	cores := []zapcore.Core{zapcore.NewCore(encoder(cfg.Format), console, level)}
	if cfg.LogFile != "" {
		// lumberjack handles rotation and is safe for concurrent writes
		file := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		})
		cores = append(cores, zapcore.NewCore(encoder("json"), file, level))
	}
	return zapcore.NewTee(cores...), nil
}

func encoder(format string) zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.000Z07:00")
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if format == "json" {
		return zapcore.NewJSONEncoder(encoderConfig)
	}
	// terminal output is read by humans, skip the timestamps
	encoderConfig.TimeKey = ""
	return zapcore.NewConsoleEncoder(encoderConfig)
}
