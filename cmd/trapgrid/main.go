package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/masaun/ZK-trap-grid/internal/app"
)

const version = "1.0.0"

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n❌ [PANIC] 程序发生严重错误: %v\n", r)
			os.Exit(1)
		}
	}()

	var (
		configPath  string
		showHelp    bool
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "", "配置文件路径（JSON，必须包含hub端点与验证密钥路径）")
	flag.BoolVar(&showHelp, "help", false, "显示帮助信息")
	flag.BoolVar(&showVersion, "version", false, "显示版本信息")
	flag.Parse()

	if showVersion {
		fmt.Printf("trapgrid v%s\n", version)
		return
	}

	if showHelp {
		showHelpInfo()
		return
	}

	if configPath == "" {
		fmt.Println("❌ 错误: 必须指定 --config 参数")
		fmt.Println("💡 使用 --help 查看帮助信息")
		os.Exit(1)
	}

	fmt.Println("🚀 trapgrid 启动中...")

	application, err := app.Start(app.WithConfigFile(configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ 启动失败: %v\n", err)
		os.Exit(1)
	}

	application.Wait()
}

func showHelpInfo() {
	fmt.Println("trapgrid - 零知识陷阱网格对局服务")
	fmt.Println()
	fmt.Println("用法:")
	fmt.Println("  trapgrid --config <path>")
	fmt.Println()
	fmt.Println("参数:")
	fmt.Println("  --config    配置文件路径（JSON）")
	fmt.Println("  --version   显示版本信息")
	fmt.Println("  --help      显示本帮助")
	fmt.Println()
	fmt.Println("配置文件必须包含:")
	fmt.Println("  hub.endpoint             Game Hub服务HTTP端点")
	fmt.Println("  zk.verifying_key_path    Groth16验证密钥文件路径")
	fmt.Println()
	fmt.Println("示例:")
	fmt.Println("  trapgrid --config configs/config.json")
}
