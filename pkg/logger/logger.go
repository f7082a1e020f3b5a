// Package logger 提供全局 zap 日志实例
//
// 各模块通过 Named() 获取带模块名的子 logger，
// 替代原来的 log.Printf("[Tag] ...") 写法。
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu   sync.RWMutex
	root = zap.NewNop()
)

// Init 初始化全局 logger
//
// 参数:
//   - verbose: true 时输出 Debug 级别的控制台日志，false 时只输出 Warn 及以上的 JSON 日志
//
// 返回:
//   - error: 构建 zap logger 失败时返回错误
func Init(verbose bool) error {
	l, err := build(verbose)
	if err != nil {
		return err
	}

	mu.Lock()
	root = l
	mu.Unlock()
	return nil
}

func build(verbose bool) (*zap.Logger, error) {
	if verbose {
		config := zap.NewDevelopmentConfig()
		config.DisableStacktrace = true
		return config.Build()
	}

	config := zap.Config{
		Level:       zap.NewAtomicLevelAt(zapcore.WarnLevel),
		Development: false,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	return config.Build()
}

// Set 替换全局 logger（测试中用 zaptest/observer 注入）
func Set(l *zap.Logger) {
	mu.Lock()
	root = l
	mu.Unlock()
}

// L 返回全局 logger
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root
}

// Named 返回带模块名的子 logger
func Named(name string) *zap.Logger {
	return L().Named(name)
}

// Sync 刷新缓冲的日志
func Sync() {
	_ = L().Sync()
}
