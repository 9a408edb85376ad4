package types

// AppConfig 应用配置根结构
//
// 🔧 零值陷阱处理说明：
// 为了区分"用户未设置"和"用户设置为零值"，用户配置结构统一使用指针类型：
// - nil: 表示用户未在配置文件中设置该字段，将使用系统默认值
// - &value: 表示用户明确设置了该值，即使是零值（如0、false、""）也会被采用
//
// 示例：
// "to_console": false  → 用户明确关闭控制台日志
// 省略"to_console"字段 → 使用系统默认值（开启）
type AppConfig struct {
	Log     *UserLogConfig     `json:"log,omitempty"`
	Storage *UserStorageConfig `json:"storage,omitempty"`
	API     *UserAPIConfig     `json:"api,omitempty"`
	Game    *UserGameConfig    `json:"game,omitempty"`
	Hub     *UserHubConfig     `json:"hub,omitempty"`
	ZK      *UserZKConfig      `json:"zk,omitempty"`
}

// UserLogConfig 用户日志配置
type UserLogConfig struct {
	Level     *string `json:"level,omitempty"`
	ToConsole *bool   `json:"to_console,omitempty"`
	FilePath  *string `json:"file_path,omitempty"`
}

// UserStorageConfig 用户存储配置
type UserStorageConfig struct {
	DataRoot   *string `json:"data_root,omitempty"`
	SyncWrites *bool   `json:"sync_writes,omitempty"`
}

// UserAPIConfig 用户API配置
type UserAPIConfig struct {
	Host *string `json:"host,omitempty"`
	Port *int    `json:"port,omitempty"`
}

// UserGameConfig 用户游戏规则配置
type UserGameConfig struct {
	GridSize         *uint32 `json:"grid_size,omitempty"`
	RetentionSeconds *int64  `json:"retention_seconds,omitempty"`
}

// UserHubConfig 用户Game Hub配置
type UserHubConfig struct {
	Endpoint       *string `json:"endpoint,omitempty"`
	GameAddress    *string `json:"game_address,omitempty"`
	TimeoutSeconds *int    `json:"timeout_seconds,omitempty"`
	RetryAttempts  *int    `json:"retry_attempts,omitempty"`
}

// UserZKConfig 用户ZK验证配置
type UserZKConfig struct {
	VerifyingKeyPath *string `json:"verifying_key_path,omitempty"`
	Curve            *string `json:"curve,omitempty"`
}
