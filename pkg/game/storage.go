package game

import (
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"

	"github.com/decker502/shooterboi/pkg/logger"
)

// AppName gdata 存储使用的应用名
const AppName = "shooterboi"

// OpenStorage 打开跨平台存储
//
// 打开失败不是致命错误：返回 nil，设置和成绩退化为仅内存模式
func OpenStorage(appName string) *gdata.Manager {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		logger.Named("storage").Warn("gdata unavailable, running without persistence", zap.Error(err))
		return nil
	}
	return manager
}
