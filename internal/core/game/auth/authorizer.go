// Package auth 实现基于secp256k1签名的会话授权校验
//
// 🔐 **授权凭据 (Session Voucher)**
//
// 对抗双方在进入会话前各自对(会话ID, 本方押注)签名，表示同意
// 以该押注参与该局。玩家身份即其压缩公钥的十六进制编码，
// 凭据是对规范化摘要的紧凑签名（带恢复位），校验时从签名
// 恢复公钥并与声明的身份比对。
package auth

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	gameiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/game"
	logiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/infrastructure/log"
)

// Authorizer secp256k1授权校验器
type Authorizer struct {
	logger logiface.Logger
}

var _ gameiface.SessionAuthorizer = (*Authorizer)(nil)

// New 创建授权校验器
func New(logger logiface.Logger) *Authorizer {
	return &Authorizer{logger: logger}
}

// VoucherDigest 计算授权凭据的规范化摘要
//
// 布局固定：4字节会话ID（大端序）+ 8字节押注（大端序）+ 玩家身份字节。
// 玩家身份放在末尾，变长字段不会与定长字段产生歧义拼接。
func VoucherDigest(player string, sessionID uint32, stake int64) [32]byte {
	buf := make([]byte, 0, 12+len(player))
	buf = binary.BigEndian.AppendUint32(buf, sessionID)
	buf = binary.BigEndian.AppendUint64(buf, uint64(stake))
	buf = append(buf, []byte(player)...)
	return sha256.Sum256(buf)
}

// SignVoucher 生成授权凭据（紧凑签名，带公钥恢复位）
//
// 供CLI与测试使用；服务端只做校验
func SignVoucher(privKey *secp256k1.PrivateKey, sessionID uint32, stake int64) []byte {
	player := PlayerID(privKey.PubKey())
	digest := VoucherDigest(player, sessionID, stake)
	return ecdsa.SignCompact(privKey, digest[:], true)
}

// PlayerID 玩家身份：压缩公钥的十六进制编码
func PlayerID(pubKey *secp256k1.PublicKey) string {
	return hex.EncodeToString(pubKey.SerializeCompressed())
}

// VerifyVoucher 校验一份授权凭据
func (a *Authorizer) VerifyVoucher(player string, sessionID uint32, stake int64, voucher []byte) error {
	expectedPubKey, err := hex.DecodeString(player)
	if err != nil {
		return fmt.Errorf("玩家身份不是有效的十六进制编码: %w", err)
	}
	if len(expectedPubKey) != secp256k1.PubKeyBytesLenCompressed {
		return fmt.Errorf("玩家身份长度无效: expected=%d, actual=%d",
			secp256k1.PubKeyBytesLenCompressed, len(expectedPubKey))
	}

	digest := VoucherDigest(player, sessionID, stake)
	recovered, _, err := ecdsa.RecoverCompact(voucher, digest[:])
	if err != nil {
		return fmt.Errorf("凭据签名无法恢复公钥: %w", err)
	}

	if PlayerID(recovered) != player {
		a.logger.Debugf("凭据公钥不匹配: player=%s session=%d", player, sessionID)
		return fmt.Errorf("凭据签名与玩家身份不匹配")
	}
	return nil
}
