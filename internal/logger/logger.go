package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"rabbits_den/internal/config"
)

const (
	fileName      = "server.log"
	errorFileName = "error.log"

	maxSizeMB  = 100
	maxAgeDays = 30
	maxBackups = 10
)

// New собирает логгер по конфигу: консоль, файлы с ротацией или оба
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level())
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	if cfg.Format() == "json" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	var cores []zapcore.Core
	if cfg.Output() == "stdout" || cfg.Output() == "both" {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level))
	}
	if cfg.Output() == "file" || cfg.Output() == "both" {
		if err := os.MkdirAll(cfg.Dir(), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		cores = append(cores,
			zapcore.NewCore(encoder, zapcore.AddSync(rotating(filepath.Join(cfg.Dir(), fileName))), level),
			// Ошибки дополнительно пишутся в отдельный файл
			zapcore.NewCore(encoder, zapcore.AddSync(rotating(filepath.Join(cfg.Dir(), errorFileName))), zapcore.ErrorLevel),
		)
	}

	return zap.New(
		zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	), nil
}

func rotating(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxAge:     maxAgeDays,
		MaxBackups: maxBackups,
		Compress:   true,
	}
}
