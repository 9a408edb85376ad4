package main

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var gameCmd = &cobra.Command{
	Use:   "game",
	Short: "对局会话操作",
}

var (
	startFlags struct {
		sessionID       uint32
		defender        string
		attacker        string
		commitment      string
		defenderStake   int64
		attackerStake   int64
		defenderVoucher string
		attackerVoucher string
	}

	moveFlags struct {
		x            uint32
		y            uint32
		isHit        bool
		proofFile    string
		publicInputs string
	}
)

var gameStartCmd = &cobra.Command{
	Use:   "start",
	Short: "创建新会话",
	RunE: func(cmd *cobra.Command, args []string) error {
		commitment, err := hex.DecodeString(startFlags.commitment)
		if err != nil {
			return fmt.Errorf("解析承诺（须为十六进制）: %w", err)
		}
		defenderVoucher, err := base64.StdEncoding.DecodeString(startFlags.defenderVoucher)
		if err != nil {
			return fmt.Errorf("解析防守方凭据（须为base64）: %w", err)
		}
		attackerVoucher, err := base64.StdEncoding.DecodeString(startFlags.attackerVoucher)
		if err != nil {
			return fmt.Errorf("解析进攻方凭据（须为base64）: %w", err)
		}

		return doRequest(http.MethodPost, "/api/v1/games", map[string]interface{}{
			"sessionId":       startFlags.sessionID,
			"defender":        startFlags.defender,
			"attacker":        startFlags.attacker,
			"commitment":      commitment,
			"defenderStake":   startFlags.defenderStake,
			"attackerStake":   startFlags.attackerStake,
			"defenderVoucher": defenderVoucher,
			"attackerVoucher": attackerVoucher,
		})
	},
}

var gameMoveCmd = &cobra.Command{
	Use:   "move <sessionID>",
	Short: "提交一次探测落子",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		proof, err := readFileArg(moveFlags.proofFile)
		if err != nil {
			return fmt.Errorf("读取证明文件: %w", err)
		}
		var publicInputs []byte
		if moveFlags.publicInputs != "" {
			publicInputs, err = hex.DecodeString(moveFlags.publicInputs)
			if err != nil {
				return fmt.Errorf("解析公开输入（须为十六进制）: %w", err)
			}
		}

		return doRequest(http.MethodPost, fmt.Sprintf("/api/v1/games/%s/moves", args[0]), map[string]interface{}{
			"x":            moveFlags.x,
			"y":            moveFlags.y,
			"isHit":        moveFlags.isHit,
			"proof":        proof,
			"publicInputs": publicInputs,
		})
	},
}

var gameEndCmd = &cobra.Command{
	Use:   "end <sessionID>",
	Short: "提前结束会话",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return doRequest(http.MethodPost, fmt.Sprintf("/api/v1/games/%s/end", args[0]), nil)
	},
}

var gameGetCmd = &cobra.Command{
	Use:   "get <sessionID>",
	Short: "查询会话状态",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return doRequest(http.MethodGet, fmt.Sprintf("/api/v1/games/%s", args[0]), nil)
	},
}

var gameMovesCmd = &cobra.Command{
	Use:   "moves <sessionID>",
	Short: "查询移动账本",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return doRequest(http.MethodGet, fmt.Sprintf("/api/v1/games/%s/moves", args[0]), nil)
	},
}

func init() {
	gameStartCmd.Flags().Uint32Var(&startFlags.sessionID, "session", 0, "会话标识")
	gameStartCmd.Flags().StringVar(&startFlags.defender, "defender", "", "防守方身份（十六进制压缩公钥）")
	gameStartCmd.Flags().StringVar(&startFlags.attacker, "attacker", "", "进攻方身份（十六进制压缩公钥）")
	gameStartCmd.Flags().StringVar(&startFlags.commitment, "commitment", "", "陷阱布局承诺（32字节十六进制）")
	gameStartCmd.Flags().Int64Var(&startFlags.defenderStake, "defender-stake", 0, "防守方押注")
	gameStartCmd.Flags().Int64Var(&startFlags.attackerStake, "attacker-stake", 0, "进攻方押注")
	gameStartCmd.Flags().StringVar(&startFlags.defenderVoucher, "defender-voucher", "", "防守方授权凭据（base64）")
	gameStartCmd.Flags().StringVar(&startFlags.attackerVoucher, "attacker-voucher", "", "进攻方授权凭据（base64）")

	gameMoveCmd.Flags().Uint32Var(&moveFlags.x, "x", 0, "横坐标")
	gameMoveCmd.Flags().Uint32Var(&moveFlags.y, "y", 0, "纵坐标")
	gameMoveCmd.Flags().BoolVar(&moveFlags.isHit, "hit", false, "防守方声明的命中结果")
	gameMoveCmd.Flags().StringVar(&moveFlags.proofFile, "proof", "", "证明文件路径")
	gameMoveCmd.Flags().StringVar(&moveFlags.publicInputs, "public-inputs", "", "公开输入（十六进制）")

	gameCmd.AddCommand(gameStartCmd)
	gameCmd.AddCommand(gameMoveCmd)
	gameCmd.AddCommand(gameEndCmd)
	gameCmd.AddCommand(gameGetCmd)
	gameCmd.AddCommand(gameMovesCmd)
}
