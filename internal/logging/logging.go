// Package logging builds the logr.Logger used throughout the deployer:
// structured, leveled logging backed by zap, selectable between a
// human console encoder and a JSON encoder for machine consumption.
package logging

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel selects the minimum severity zap emits.
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	ErrorLevel LogLevel = "error"
)

// Format selects the encoder used to render log entries.
type Format string

const (
	FormatJSON    Format = "JSON"
	FormatConsole Format = "Console"
)

var (
	AllLogLevels  = []LogLevel{DebugLevel, InfoLevel, ErrorLevel}
	AllLogFormats = []Format{FormatJSON, FormatConsole}
)

func setCommonEncoderConfigOptions(encoderConfig *zapcore.EncoderConfig) {
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder
}

// MustNewZapLogger is NewZapLogger, panicking on error. Intended for
// use at process startup, before a logger exists to report the error.
func MustNewZapLogger(level LogLevel, format Format) logr.Logger {
	l, err := NewZapLogger(level, format)
	if err != nil {
		panic(fmt.Sprintf("logging: %v", err))
	}
	return l
}

// NewZapLogger builds a logr.Logger backed by zap, configured with the
// given minimum level and output format.
func NewZapLogger(level LogLevel, format Format) (logr.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case DebugLevel:
		zapLevel = zapcore.DebugLevel
	case InfoLevel:
		zapLevel = zapcore.InfoLevel
	case ErrorLevel:
		zapLevel = zapcore.ErrorLevel
	default:
		return logr.Logger{}, fmt.Errorf("logging: unknown level %q", level)
	}

	var cfg zap.Config
	switch format {
	case FormatJSON:
		cfg = zap.NewProductionConfig()
	case FormatConsole:
		cfg = zap.NewDevelopmentConfig()
	default:
		return logr.Logger{}, fmt.Errorf("logging: unknown format %q", format)
	}

	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	setCommonEncoderConfigOptions(&cfg.EncoderConfig)

	zl, err := cfg.Build()
	if err != nil {
		return logr.Logger{}, fmt.Errorf("logging: building zap logger: %w", err)
	}

	return zapr.NewLogger(zl), nil
}

// NewDefault returns the logger used when no explicit level or format
// has been configured: info level, JSON output.
func NewDefault() logr.Logger {
	return MustNewZapLogger(InfoLevel, FormatJSON)
}

func (f *Format) Type() string { return "logFormat" }

func (f *Format) Set(s string) error {
	for _, candidate := range AllLogFormats {
		if strings.EqualFold(string(candidate), s) {
			*f = candidate
			return nil
		}
	}
	return fmt.Errorf("logging: unsupported format %q", s)
}

func (f *Format) String() string { return string(*f) }

func (l *LogLevel) Type() string { return "logLevel" }

func (l *LogLevel) Set(s string) error {
	for _, candidate := range AllLogLevels {
		if strings.EqualFold(string(candidate), s) {
			*l = candidate
			return nil
		}
	}
	return fmt.Errorf("logging: unsupported level %q", s)
}

func (l *LogLevel) String() string { return string(*l) }
