package auth

import (
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	logiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/infrastructure/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// 模拟Logger接口
type mockLogger struct{}

func (m *mockLogger) Debug(msg string)                          {}
func (m *mockLogger) Debugf(format string, args ...interface{}) {}
func (m *mockLogger) Info(msg string)                           {}
func (m *mockLogger) Infof(format string, args ...interface{})  {}
func (m *mockLogger) Warn(msg string)                           {}
func (m *mockLogger) Warnf(format string, args ...interface{})  {}
func (m *mockLogger) Error(msg string)                          {}
func (m *mockLogger) Errorf(format string, args ...interface{}) {}
func (m *mockLogger) Fatal(msg string)                          {}
func (m *mockLogger) Fatalf(format string, args ...interface{}) {}
func (m *mockLogger) With(args ...interface{}) logiface.Logger  { return m }
func (m *mockLogger) Sync() error                               { return nil }
func (m *mockLogger) GetZapLogger() *zap.Logger                 { return nil }

// 测试签名与校验的完整往返
func TestVerifyVoucher(t *testing.T) {
	privKey, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	player := PlayerID(privKey.PubKey())

	voucher := SignVoucher(privKey, 7, 500)

	authorizer := New(&mockLogger{})
	assert.NoError(t, authorizer.VerifyVoucher(player, 7, 500, voucher))
}

// 测试凭据绑定到(会话ID, 押注)元组：任一变化都使凭据失效
func TestVerifyVoucherBinding(t *testing.T) {
	privKey, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	player := PlayerID(privKey.PubKey())
	voucher := SignVoucher(privKey, 7, 500)

	authorizer := New(&mockLogger{})
	assert.Error(t, authorizer.VerifyVoucher(player, 8, 500, voucher), "会话ID变化应使凭据失效")
	assert.Error(t, authorizer.VerifyVoucher(player, 7, 501, voucher), "押注变化应使凭据失效")
}

// 测试他人的凭据不能冒用
func TestVerifyVoucherWrongPlayer(t *testing.T) {
	privKey, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	otherKey, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)

	voucher := SignVoucher(privKey, 7, 500)
	otherPlayer := PlayerID(otherKey.PubKey())

	authorizer := New(&mockLogger{})
	assert.Error(t, authorizer.VerifyVoucher(otherPlayer, 7, 500, voucher))
}

// 测试身份与凭据的格式校验
func TestVerifyVoucherMalformed(t *testing.T) {
	authorizer := New(&mockLogger{})

	err := authorizer.VerifyVoucher("not-hex!", 1, 1, []byte("sig"))
	assert.Error(t, err)

	err = authorizer.VerifyVoucher("abcd", 1, 1, []byte("sig"))
	assert.Error(t, err, "身份长度必须是压缩公钥长度")

	privKey, genErr := secp256k1.GeneratePrivateKey()
	require.NoError(t, genErr)
	player := PlayerID(privKey.PubKey())

	err = authorizer.VerifyVoucher(player, 1, 1, []byte("too-short"))
	assert.Error(t, err)
}
