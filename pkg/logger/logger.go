package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects level, encoding and destination of the process logger.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // console, json
	Output string // stdout, stderr or a file path
}

var (
	base    *zap.Logger
	sugar   *zap.SugaredLogger
	logFile *os.File
)

// InitLogger builds the process logger. File outputs also echo to stdout so
// the migration progress stays visible on the console.
func InitLogger(cfg Config) error {
	var ws zapcore.WriteSyncer
	switch strings.ToLower(cfg.Output) {
	case "", "stdout":
		ws = zapcore.AddSync(os.Stdout)
	case "stderr":
		ws = zapcore.AddSync(os.Stderr)
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		logFile = f
		ws = zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout), zapcore.AddSync(f))
	}

	core := zapcore.NewCore(newEncoder(cfg.Format), ws, parseLevel(cfg.Level))
	Use(zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)))
	return nil
}

// Use replaces the process logger, e.g. with zaptest or zap.NewNop in tests.
func Use(l *zap.Logger) {
	base = l
	sugar = l.Sugar()
}

// Init installs a console logger at info level.
func Init() {
	_ = InitLogger(Config{Level: "info", Format: "console", Output: "stdout"})
}

// Close flushes buffered entries and releases the log file.
func Close() {
	if base != nil {
		_ = base.Sync()
	}
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

func Info(format string, v ...interface{}) {
	if sugar == nil {
		Init()
	}
	sugar.Infof(format, v...)
}

func Infof(format string, v ...interface{}) {
	Info(format, v...)
}

func Error(format string, v ...interface{}) {
	if sugar == nil {
		Init()
	}
	sugar.Errorf(format, v...)
}

func Errorf(format string, v ...interface{}) {
	Error(format, v...)
}

func Warn(format string, v ...interface{}) {
	if sugar == nil {
		Init()
	}
	sugar.Warnf(format, v...)
}

func Warnf(format string, v ...interface{}) {
	Warn(format, v...)
}

func Debugf(format string, v ...interface{}) {
	if sugar == nil {
		Init()
	}
	sugar.Debugf(format, v...)
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func newEncoder(format string) zapcore.Encoder {
	cfg := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05"),
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if strings.ToLower(format) == "json" {
		return zapcore.NewJSONEncoder(cfg)
	}
	return zapcore.NewConsoleEncoder(cfg)
}
