package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// GlobalFlags 全局标志
type GlobalFlags struct {
	Endpoint string // 服务HTTP端点
	Timeout  time.Duration
}

var globalFlags GlobalFlags

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "trapgrid",
	Short: "Trap Grid 对局服务命令行客户端",
	Long: `Trap Grid CLI - 零知识陷阱网格对局服务的薄客户端

提供完整的对局交互能力:
- 创建会话、提交落子、提前结束
- 查询会话状态与移动账本
- 管理玩家密钥与授权凭据
- 查询Hub注册表`,
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalFlags.Endpoint, "endpoint", "http://127.0.0.1:8545", "服务HTTP端点")
	rootCmd.PersistentFlags().DurationVar(&globalFlags.Timeout, "timeout", 30*time.Second, "请求超时")

	rootCmd.AddCommand(gameCmd)
	rootCmd.AddCommand(hubCmd)
	rootCmd.AddCommand(keysCmd)
}

func main() {
	Execute()
}

// doRequest 发送JSON请求并打印响应
func doRequest(method, path string, body interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("编码请求体: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	url := globalFlags.Endpoint + path
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return fmt.Errorf("构造请求: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: globalFlags.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("请求失败: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("读取响应: %w", err)
	}

	// 美化输出
	var pretty bytes.Buffer
	if json.Indent(&pretty, respBody, "", "  ") == nil {
		fmt.Println(pretty.String())
	} else {
		fmt.Println(string(respBody))
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("服务返回状态 %d", resp.StatusCode)
	}
	return nil
}
