package api

// API配置默认值
const (
	// defaultHost 默认监听所有网卡
	defaultHost = "0.0.0.0"

	// defaultPort 默认HTTP端口
	defaultPort = 8545
)
