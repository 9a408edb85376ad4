// Package types 提供Trap Grid系统的公共类型定义
package types

// LogLevel 日志级别类型
type LogLevel string

// 标准日志级别常量
const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
	FatalLevel LogLevel = "fatal"
)
