package logger

import (
	"log"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileRotate 文件切割配置；Filename 为空表示只写 stdout
type FileRotate struct {
	Filename   string // 如 logs/padel.log
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// New stdout 日志；json=false 时用带颜色的开发格式
func New(level string, json bool) (*zap.Logger, func()) {
	return build(level, json, nil)
}

// NewWithRotate 同时写 stdout 与切割文件
func NewWithRotate(level string, json bool, rot FileRotate) (*zap.Logger, func()) {
	if rot.Filename == "" {
		return build(level, json, nil)
	}
	return build(level, json, &lumberjack.Logger{
		Filename:   rot.Filename,
		MaxSize:    max(1, rot.MaxSizeMB),
		MaxBackups: max(0, rot.MaxBackups),
		MaxAge:     max(0, rot.MaxAgeDays),
		Compress:   rot.Compress,
	})
}

func build(level string, json bool, file *lumberjack.Logger) (*zap.Logger, func()) {
	lvl := parseLevel(level)

	cores := []zapcore.Core{
		zapcore.NewCore(stdoutEncoder(json), zapcore.Lock(os.Stdout), lvl),
	}
	if file != nil {
		// 文件里不要颜色码
		cores = append(cores, zapcore.NewCore(fileEncoder(json), zapcore.AddSync(file), lvl))
	}

	// 同一条消息每秒前 100 条全记，之后每 100 条记 1 条
	core := zapcore.NewSamplerWithOptions(zapcore.NewTee(cores...), time.Second, 100, 100)

	opts := []zap.Option{zap.AddCaller()}
	if !json {
		opts = append(opts, zap.Development())
	}
	l := zap.New(core, opts...)

	return l, func() {
		_ = l.Sync()
		if file != nil {
			_ = file.Close()
		}
	}
}

func parseLevel(s string) zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.Set(s); err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

func stdoutEncoder(json bool) zapcore.Encoder {
	if json {
		return zapcore.NewJSONEncoder(productionConfig())
	}
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

func fileEncoder(json bool) zapcore.Encoder {
	if json {
		return zapcore.NewJSONEncoder(productionConfig())
	}
	return zapcore.NewConsoleEncoder(productionConfig())
}

func productionConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	return cfg
}

// ToStdLogger 给 http.Server.ErrorLog 之类只认 *log.Logger 的地方用
func ToStdLogger(l *zap.Logger, level zapcore.Level) (*log.Logger, error) {
	return zap.NewStdLogAt(l, level)
}

// RedirectStdLog 把标准库 log（mysql dsn 打印、第三方库）接到 zap，返回还原函数
func RedirectStdLog(l *zap.Logger, level zapcore.Level) func() {
	undo, err := zap.RedirectStdLogAt(l, level)
	if err != nil {
		return func() {}
	}
	return undo
}
