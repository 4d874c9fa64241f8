// 指示: miu200521358
// Package logging はプロセス共通のログ出力を提供する。
package logging

import (
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// FormatConsole は人が読む形式の出力。
	FormatConsole = "console"
	// FormatJSON はJSON形式の出力。
	FormatJSON = "json"
)

// Config はロガー生成設定を表す。
type Config struct {
	Level      string
	Format     string
	OutputPath string
}

// Logger は書式指定付きのログ出力を提供する。
type Logger struct {
	sugar *zap.SugaredLogger
	level zap.AtomicLevel
}

var defaultLogger atomic.Pointer[Logger]

// NewLogger は設定からLoggerを生成する。
func NewLogger(config Config) (*Logger, error) {
	level, err := zap.ParseAtomicLevel(strings.TrimSpace(config.Level))
	if err != nil || strings.TrimSpace(config.Level) == "" {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = level
	zapConfig.Sampling = nil
	zapConfig.EncoderConfig.TimeKey = "time"
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	switch strings.ToLower(strings.TrimSpace(config.Format)) {
	case FormatJSON:
		zapConfig.Encoding = FormatJSON
	case "", FormatConsole:
		zapConfig.Encoding = FormatConsole
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	default:
		return nil, fmt.Errorf("ログ形式が不正です: %s", config.Format)
	}
	if path := strings.TrimSpace(config.OutputPath); path != "" {
		zapConfig.OutputPaths = []string{path}
	} else {
		zapConfig.OutputPaths = []string{"stderr"}
	}

	zapLogger, err := zapConfig.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("ロガー生成失敗: %w", err)
	}
	return &Logger{sugar: zapLogger.Sugar(), level: level}, nil
}

// NewLoggerFromZap は既存のzapロガーからLoggerを生成する。
func NewLoggerFromZap(zapLogger *zap.Logger) *Logger {
	if zapLogger == nil {
		zapLogger = zap.NewNop()
	}
	return &Logger{
		sugar: zapLogger.WithOptions(zap.AddCallerSkip(1)).Sugar(),
		level: zap.NewAtomicLevelAt(zapLogger.Level()),
	}
}

// DefaultLogger はプロセス既定のLoggerを返す。未設定の場合はnil。
func DefaultLogger() *Logger {
	return defaultLogger.Load()
}

// SetDefaultLogger はプロセス既定のLoggerを設定し、直前のLoggerを返す。
func SetDefaultLogger(logger *Logger) *Logger {
	return defaultLogger.Swap(logger)
}

// With は付帯項目を追加したLoggerを返す。
func (l *Logger) With(key string, value any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{sugar: l.sugar.With(key, value), level: l.level}
}

// SetLevel は出力レベルを変更する。
func (l *Logger) SetLevel(level string) error {
	if l == nil {
		return nil
	}
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("ログレベルが不正です: %w", err)
	}
	l.level.SetLevel(parsed)
	return nil
}

// IsDebugEnabled はデバッグ出力が有効か判定する。
func (l *Logger) IsDebugEnabled() bool {
	return l != nil && l.level.Enabled(zap.DebugLevel)
}

// Debug はデバッグログを出力する。
func (l *Logger) Debug(format string, params ...any) {
	if l == nil {
		return
	}
	l.sugar.Debugf(format, params...)
}

// Info は情報ログを出力する。
func (l *Logger) Info(format string, params ...any) {
	if l == nil {
		return
	}
	l.sugar.Infof(format, params...)
}

// Warn は警告ログを出力する。
func (l *Logger) Warn(format string, params ...any) {
	if l == nil {
		return
	}
	l.sugar.Warnf(format, params...)
}

// Error はエラーログを出力する。
func (l *Logger) Error(format string, params ...any) {
	if l == nil {
		return
	}
	l.sugar.Errorf(format, params...)
}

// Sync はバッファを書き出す。
func (l *Logger) Sync() error {
	if l == nil {
		return nil
	}
	return l.sugar.Sync()
}
