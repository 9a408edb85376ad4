// Package app 组装并驱动Trap Grid服务的完整生命周期
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	httpapi "github.com/masaun/ZK-trap-grid/internal/api/http"
	"github.com/masaun/ZK-trap-grid/internal/config"
	"github.com/masaun/ZK-trap-grid/internal/core/game/auth"
	"github.com/masaun/ZK-trap-grid/internal/core/game/hub"
	"github.com/masaun/ZK-trap-grid/internal/core/game/session"
	corelog "github.com/masaun/ZK-trap-grid/internal/core/infrastructure/log"
	"github.com/masaun/ZK-trap-grid/internal/core/infrastructure/storage/badger"
	"github.com/masaun/ZK-trap-grid/internal/core/zkproof"
	configiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/config"
	logiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/infrastructure/log"
	"github.com/masaun/ZK-trap-grid/pkg/types"
	"go.uber.org/fx"
)

// App 应用的对外接口
type App interface {
	// Stop 停止应用
	Stop() error

	// Wait 等待应用收到退出信号
	Wait()
}

type internalApp struct {
	fxApp *fx.App
}

// Start 启动Trap Grid应用
func Start(appOptions ...Option) (App, error) {
	opts := newOptions(appOptions...)

	if opts.configFilePath != "" {
		if err := loadConfigFile(opts); err != nil {
			return nil, err
		}
	}

	fxApp := fx.New(
		fx.NopLogger,

		// 应用配置选项
		fx.Provide(func() configiface.AppOptions { return opts }),

		// 基础设施
		config.Module(),
		corelog.Module(),
		badger.Module(),

		// 核心领域
		zkproof.Module(),
		hub.Module(),
		auth.Module(),
		session.Module(),

		// API表面
		httpapi.Module(),

		// 启动期配置校验：缺失的关键配置直接终止启动
		fx.Invoke(validateStartupConfig),
	)

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := fxApp.Start(startCtx); err != nil {
		return nil, fmt.Errorf("应用启动失败: %w", err)
	}

	return &internalApp{fxApp: fxApp}, nil
}

// validateStartupConfig 校验不可缺省的配置项
//
// Hub端点与验证密钥路径没有合理默认值：缺失时服务每个核心操作
// 都注定失败，属于不可恢复的部署错误，快速失败优于带病运行。
func validateStartupConfig(provider configiface.Provider, logger logiface.Logger) error {
	hubOptions := provider.GetHub()
	if hubOptions.Endpoint == "" {
		return fmt.Errorf("hub端点未配置（hub.endpoint），服务无法登记会话")
	}

	zkOptions := provider.GetZK()
	if zkOptions.VerifyingKeyPath == "" {
		return fmt.Errorf("验证密钥路径未配置（zk.verifying_key_path），服务无法验证证明")
	}
	if _, err := os.Stat(zkOptions.VerifyingKeyPath); err != nil {
		return fmt.Errorf("验证密钥文件不可用: %w", err)
	}

	logger.Infof("启动配置校验通过: hub=%s vk=%s", hubOptions.Endpoint, zkOptions.VerifyingKeyPath)
	return nil
}

// loadConfigFile 从JSON配置文件加载用户配置
func loadConfigFile(opts *options) error {
	data, err := os.ReadFile(opts.configFilePath)
	if err != nil {
		return fmt.Errorf("读取配置文件失败: %w", err)
	}

	var appConfig types.AppConfig
	if err := json.Unmarshal(data, &appConfig); err != nil {
		return fmt.Errorf("解析配置文件失败: %w", err)
	}
	opts.appConfig = &appConfig

	// 根据配置自动创建数据与日志目录
	if err := createDataDirectories(&appConfig); err != nil {
		fmt.Printf("⚠️  创建数据目录失败: %v\n", err)
	}
	return nil
}

// createDataDirectories 根据配置自动创建数据目录结构
func createDataDirectories(appConfig *types.AppConfig) error {
	var directories []string

	if appConfig.Storage != nil && appConfig.Storage.DataRoot != nil {
		directories = append(directories, *appConfig.Storage.DataRoot)
	}
	if appConfig.Log != nil && appConfig.Log.FilePath != nil {
		directories = append(directories, filepath.Dir(*appConfig.Log.FilePath))
	}

	for _, dir := range directories {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("创建目录 %s 失败: %v", dir, err)
		}
	}
	return nil
}

// Stop 停止应用
func (a *internalApp) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return a.fxApp.Stop(ctx)
}

// Wait 等待应用收到退出信号
func (a *internalApp) Wait() {
	fmt.Println("🔄 应用正在运行，按 Ctrl+C 停止...")

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	sig := <-signals
	fmt.Printf("\n🛑 收到信号 %v，正在优雅退出...\n", sig)

	if err := a.Stop(); err != nil {
		fmt.Printf("⚠️ 停止应用时出错: %v\n", err)
	}
}
