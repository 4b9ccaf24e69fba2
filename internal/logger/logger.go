package logger

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var once sync.Once

// Init 初始化全局 zap logger（JSON 输出），之后统一用 zap.L() 打日志
func Init() {
	once.Do(func() {
		level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
		if raw := strings.TrimSpace(os.Getenv("LOG_LEVEL")); raw != "" {
			_ = level.UnmarshalText([]byte(strings.ToLower(raw)))
		}

		cfg := zap.Config{
			Level:            level,
			Encoding:         "json",
			EncoderConfig:    zap.NewProductionEncoderConfig(),
			OutputPaths:      []string{"stdout"},
			ErrorOutputPaths: []string{"stderr"},
		}
		cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder

		l, err := cfg.Build()
		if err != nil {
			// 初始化失败时退回 no-op，不阻塞启动
			l = zap.NewNop()
		}
		zap.ReplaceGlobals(l)
	})
}
