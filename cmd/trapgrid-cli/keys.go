package main

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/masaun/ZK-trap-grid/internal/core/game/auth"
	"github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "玩家密钥与授权凭据管理",
}

var keysGenCmd = &cobra.Command{
	Use:   "generate",
	Short: "生成玩家密钥对",
	RunE: func(cmd *cobra.Command, args []string) error {
		privKey, err := secp256k1.GeneratePrivateKey()
		if err != nil {
			return fmt.Errorf("生成密钥失败: %w", err)
		}

		fmt.Printf("player:      %s\n", auth.PlayerID(privKey.PubKey()))
		fmt.Printf("private key: %s\n", hex.EncodeToString(privKey.Serialize()))
		fmt.Println()
		fmt.Println("⚠️ 私钥请妥善保管，泄露即等于交出对局授权权")
		return nil
	},
}

var voucherFlags struct {
	privateKey string
	sessionID  uint32
	stake      int64
}

var keysVoucherCmd = &cobra.Command{
	Use:   "voucher",
	Short: "为(会话ID, 押注)生成授权凭据",
	RunE: func(cmd *cobra.Command, args []string) error {
		keyBytes, err := hex.DecodeString(voucherFlags.privateKey)
		if err != nil {
			return fmt.Errorf("解析私钥（须为十六进制）: %w", err)
		}
		privKey := secp256k1.PrivKeyFromBytes(keyBytes)

		voucher := auth.SignVoucher(privKey, voucherFlags.sessionID, voucherFlags.stake)

		fmt.Printf("player:  %s\n", auth.PlayerID(privKey.PubKey()))
		fmt.Printf("voucher: %s\n", base64.StdEncoding.EncodeToString(voucher))
		return nil
	},
}

func init() {
	keysVoucherCmd.Flags().StringVar(&voucherFlags.privateKey, "key", "", "玩家私钥（十六进制）")
	keysVoucherCmd.Flags().Uint32Var(&voucherFlags.sessionID, "session", 0, "会话标识")
	keysVoucherCmd.Flags().Int64Var(&voucherFlags.stake, "stake", 0, "本方押注")

	keysCmd.AddCommand(keysGenCmd)
	keysCmd.AddCommand(keysVoucherCmd)
}

// readFileArg 读取文件内容
func readFileArg(path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("未指定文件路径")
	}
	return os.ReadFile(path)
}
