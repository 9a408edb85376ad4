package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var hubCmd = &cobra.Command{
	Use:   "hub",
	Short: "Hub注册表操作",
}

var hubRegisterFlags struct {
	contract string
	name     string
}

var hubRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "登记游戏服务",
	RunE: func(cmd *cobra.Command, args []string) error {
		return doRequest(http.MethodPost, "/api/v1/hub/games", map[string]interface{}{
			"gameContract": hubRegisterFlags.contract,
			"name":         hubRegisterFlags.name,
		})
	},
}

var hubListCmd = &cobra.Command{
	Use:   "list",
	Short: "列出全部登记记录",
	RunE: func(cmd *cobra.Command, args []string) error {
		return doRequest(http.MethodGet, "/api/v1/hub/games", nil)
	},
}

var hubGetCmd = &cobra.Command{
	Use:   "get <gameID>",
	Short: "查询登记信息",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return doRequest(http.MethodGet, fmt.Sprintf("/api/v1/hub/games/%s", args[0]), nil)
	},
}

var hubDeactivateCmd = &cobra.Command{
	Use:   "deactivate <gameID>",
	Short: "停用登记记录",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return doRequest(http.MethodPost, fmt.Sprintf("/api/v1/hub/games/%s/deactivate", args[0]), nil)
	},
}

func init() {
	hubRegisterCmd.Flags().StringVar(&hubRegisterFlags.contract, "contract", "", "游戏服务地址标识")
	hubRegisterCmd.Flags().StringVar(&hubRegisterFlags.name, "name", "", "游戏名称")

	hubCmd.AddCommand(hubRegisterCmd)
	hubCmd.AddCommand(hubListCmd)
	hubCmd.AddCommand(hubGetCmd)
	hubCmd.AddCommand(hubDeactivateCmd)
}
