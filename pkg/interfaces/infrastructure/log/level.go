// Package log 提供Trap Grid系统的日志级别接口定义
package log

import "github.com/masaun/ZK-trap-grid/pkg/types"

// LogLevel 日志级别别名（定义在 pkg/types）
type LogLevel = types.LogLevel

// 常量别名
const (
	DebugLevel = types.DebugLevel
	InfoLevel  = types.InfoLevel
	WarnLevel  = types.WarnLevel
	ErrorLevel = types.ErrorLevel
	FatalLevel = types.FatalLevel
)
