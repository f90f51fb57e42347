package logger

import (
	"errors"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger 是对 zap.SugaredLogger 的薄封装，统一使用键值对形式记录字段。
type Logger struct {
	SugaredLogger *zap.SugaredLogger
}

// New 按模式创建输出到 stderr 的日志器。
func New(mode string) (*Logger, error) {
	return NewWithWriter(mode, zapcore.Lock(os.Stderr))
}

// NewWithWriter 按模式创建日志器：prod/production 输出 JSON，其余输出便于阅读的控制台格式。
func NewWithWriter(mode string, w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, errors.New("logger: 输出目标不能为空")
	}
	var (
		enc   zapcore.Encoder
		level zapcore.Level
	)
	switch strings.ToLower(mode) {
	case "prod", "production":
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		level = zapcore.InfoLevel
	default:
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)
	return &Logger{SugaredLogger: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()}, nil
}

func (l *Logger) Sync() {
	_ = l.SugaredLogger.Sync()
}

func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Debugw(msg, keysAndValues...)
}
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Infow(msg, keysAndValues...)
}
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Warnw(msg, keysAndValues...)
}
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Errorw(msg, keysAndValues...)
}
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(keysAndValues...)}
}
