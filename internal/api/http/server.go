// Package http 提供Trap Grid服务的HTTP API
package http

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/masaun/ZK-trap-grid/internal/api/http/handlers"
	"github.com/masaun/ZK-trap-grid/internal/api/http/middleware"
	configiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/config"
	gameiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/game"
	logiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/infrastructure/log"
	storageiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/infrastructure/storage"
)

// Server HTTP服务器结构
// 负责提供对局会话相关的HTTP API服务
// 包含路由管理、服务启动和停止等功能
type Server struct {
	router     *gin.Engine                 // Gin路由引擎，处理HTTP请求和路由分发
	httpServer *http.Server                // 标准HTTP服务器，提供HTTP监听功能
	config     configiface.Provider        // 配置提供者，用于获取API配置
	logger     logiface.Logger             // 日志记录器
	service    gameiface.GameService       // 会话状态机服务
	authorizer gameiface.SessionAuthorizer // 授权凭据校验器
	registry   gameiface.HubRegistry       // 本地Hub注册表服务
	storage    storageiface.BadgerStore    // 存储服务，用于健康检查
}

// NewServer 创建新的HTTP服务器
// 该函数在fx框架的依赖注入系统中注册，会自动接收所需依赖
// 并负责服务器的初始化和生命周期管理
func NewServer(
	lifecycle fx.Lifecycle,
	config configiface.Provider,
	logger logiface.Logger,
	service gameiface.GameService,
	authorizer gameiface.SessionAuthorizer,
	registry gameiface.HubRegistry,
	storage storageiface.BadgerStore,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	server := &Server{
		router:     router,
		config:     config,
		logger:     logger,
		service:    service,
		authorizer: authorizer,
		registry:   registry,
		storage:    storage,
	}

	// 注册服务生命周期钩子
	// 当fx启动时，会调用OnStart方法启动HTTP服务
	// 当fx停止时，会调用OnStop方法停止HTTP服务
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return server.Start()
		},
		OnStop: func(ctx context.Context) error {
			return server.Stop(ctx)
		},
	})

	server.setupRoutes()
	return server
}

// setupRoutes 设置HTTP路由
// 该方法配置所有API端点和它们的处理函数
func (s *Server) setupRoutes() {
	s.logger.Info("开始设置HTTP路由...")

	// 通用中间件：请求ID → 访问日志 → 指标
	s.router.Use(middleware.NewRequestID().Middleware())
	s.router.Use(middleware.NewAccessLog(s.logger).Middleware())
	s.router.Use(middleware.NewMetrics(s.logger).Middleware())

	// 创建API版本前缀，所有API端点都在/api/v1路径下
	// 这样便于将来版本升级和兼容性管理
	v1 := s.router.Group("/api/v1")

	gameHandlers := handlers.NewGameHandlers(s.service, s.authorizer, s.logger)
	gameHandlers.RegisterRoutes(v1)
	s.logger.Info("会话操作路由注册完成")

	hubHandlers := handlers.NewHubHandlers(s.registry, s.logger)
	hubHandlers.RegisterRoutes(v1)
	s.logger.Info("Hub注册表路由注册完成")

	healthHandlers := handlers.NewHealthHandlers(s.storage, s.logger)
	healthHandlers.RegisterRoutes(s.router)

	// Prometheus指标端点
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.logger.Info("所有API路由已注册完成")
}

// Start 启动HTTP服务器
// 启动过程在后台goroutine中进行，不会阻塞主线程
func (s *Server) Start() error {
	apiOptions := s.config.GetAPI()
	host := apiOptions.Host
	port := apiOptions.Port

	// 端口占用检测和处理
	finalPort, err := s.handlePortConflict(host, port)
	if err != nil {
		return fmt.Errorf("端口处理失败: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", host, finalPort)
	s.logger.Infof("准备启动HTTP服务器，配置地址: %s", addr)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		// ListenAndServe会阻塞直到服务器关闭
		// 正常关闭时会返回http.ErrServerClosed，不应视为错误
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Errorf("HTTP服务器运行失败: %v", err)
		}
	}()

	if err := s.waitForServerReady(addr, 3*time.Second); err != nil {
		return fmt.Errorf("HTTP服务器启动验证失败: %w", err)
	}

	s.logger.Infof("✅ HTTP服务器启动成功，监听地址: %s", addr)
	s.logger.Infof("📡 API端点: http://%s/api/v1/", addr)
	s.logger.Infof("🩺 健康检查: http://%s/health", addr)
	return nil
}

// handlePortConflict 处理端口冲突
func (s *Server) handlePortConflict(host string, port int) (int, error) {
	if s.isPortAvailable(host, port) {
		return port, nil
	}

	s.logger.Warnf("⚠️ 端口 %d 被占用，自动寻找可用端口", port)

	for i := 1; i < 100; i++ {
		candidatePort := port + i
		if candidatePort > 65535 {
			break
		}
		if s.isPortAvailable(host, candidatePort) {
			s.logger.Warnf("🔄 端口已自动漂移: %d -> %d", port, candidatePort)
			return candidatePort, nil
		}
	}
	return 0, fmt.Errorf("在端口范围内未找到可用端口")
}

// isPortAvailable 检查端口是否可用
func (s *Server) isPortAvailable(host string, port int) bool {
	addr := fmt.Sprintf("%s:%d", host, port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return false
	}
	listener.Close()
	return true
}

// waitForServerReady 等待服务器就绪
func (s *Server) waitForServerReady(addr string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", addr, 500*time.Millisecond)
		if err == nil {
			conn.Close()
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("超时等待服务器启动: %s", addr)
}

// Stop 停止HTTP服务器
// 优雅地关闭服务器，等待所有请求处理完成
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("正在关闭HTTP服务器")

	stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(stopCtx); err != nil {
		s.logger.Errorf("HTTP服务器关闭出错: %v", err)
		return err
	}

	s.logger.Info("HTTP服务器已关闭")
	return nil
}
