package badger

import (
	logiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/infrastructure/log"
)

// badgerLogger 将Badger内部日志桥接到统一日志接口
//
// Badger的INFO/DEBUG输出较为嘈杂，统一降级到Debug；
// 只有错误和警告按原级别透传
type badgerLogger struct {
	logger logiface.Logger
}

// newBadgerLogger 创建Badger日志适配器
func newBadgerLogger(logger logiface.Logger) *badgerLogger {
	return &badgerLogger{logger: logger}
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Errorf("badger: "+format, args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warnf("badger: "+format, args...)
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debugf("badger: "+format, args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debugf("badger: "+format, args...)
}
