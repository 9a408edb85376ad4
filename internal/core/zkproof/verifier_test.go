package zkproof

import (
	"bytes"
	"context"
	"math/big"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	zkconfig "github.com/masaun/ZK-trap-grid/internal/config/zk"
	logiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/infrastructure/log"
	"github.com/masaun/ZK-trap-grid/pkg/types"
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

// probeCircuit 测试电路：公开输入为(承诺, 格子结果)，私有输入为秘密值
//
// 约束：格子结果等于秘密值的平方。公开输入的数量与顺序
// 对应生产路径上"承诺前缀 + 公开输入"的布局。
type probeCircuit struct {
	Commitment frontend.Variable `gnark:",public"`
	CellResult frontend.Variable `gnark:",public"`
	Secret     frontend.Variable
}

func (c *probeCircuit) Define(api frontend.API) error {
	api.AssertIsEqual(c.CellResult, api.Mul(c.Secret, c.Secret))
	return nil
}

// testSetup 一次性可信设置与证明生成的产物
type testSetup struct {
	vkPath     string
	proof      []byte
	commitment *big.Int
	cellResult *big.Int
}

// generateTestProof 编译测试电路、执行可信设置并生成一个有效证明
func generateTestProof(t *testing.T) *testSetup {
	t.Helper()

	field := ecc.BN254.ScalarField()
	ccs, err := frontend.Compile(field, r1cs.NewBuilder, &probeCircuit{})
	require.NoError(t, err)

	pk, vk, err := groth16.Setup(ccs)
	require.NoError(t, err)

	commitment := big.NewInt(0).SetBytes([]byte("trap-grid-commitment"))
	assignment := &probeCircuit{
		Commitment: commitment,
		CellResult: big.NewInt(9),
		Secret:     big.NewInt(3),
	}
	fullWitness, err := frontend.NewWitness(assignment, field)
	require.NoError(t, err)

	proof, err := groth16.Prove(ccs, pk, fullWitness)
	require.NoError(t, err)

	var vkBuf bytes.Buffer
	_, err = vk.WriteTo(&vkBuf)
	require.NoError(t, err)

	vkPath := filepath.Join(t.TempDir(), "verifying.key")
	require.NoError(t, os.WriteFile(vkPath, vkBuf.Bytes(), 0o600))

	var proofBuf bytes.Buffer
	_, err = proof.WriteTo(&proofBuf)
	require.NoError(t, err)

	return &testSetup{
		vkPath:     vkPath,
		proof:      proofBuf.Bytes(),
		commitment: commitment,
		cellResult: big.NewInt(9),
	}
}

// fieldBytes 把整数编码为32字节大端序段
func fieldBytes(v *big.Int) []byte {
	out := make([]byte, types.CommitmentSize)
	v.FillBytes(out)
	return out
}

func newTestVerifier(t *testing.T, vkPath string) *Verifier {
	t.Helper()
	options := zkconfig.New(nil).GetOptions()
	options.VerifyingKeyPath = vkPath
	v, err := New(options, &mockLogger{})
	require.NoError(t, err)
	return v
}

// 测试有效证明的完整验证路径
func TestVerifyValidProof(t *testing.T) {
	setup := generateTestProof(t)
	v := newTestVerifier(t, setup.vkPath)

	inputs := append(fieldBytes(setup.commitment), fieldBytes(setup.cellResult)...)
	valid, err := v.Verify(context.Background(), setup.proof, inputs)
	require.NoError(t, err)
	assert.True(t, valid)

	// 验证密钥已缓存，第二次验证同样成功
	valid, err = v.Verify(context.Background(), setup.proof, inputs)
	require.NoError(t, err)
	assert.True(t, valid)
}

// 测试并发验证：验证路径不持有可变共享状态，结果互不干扰
func TestVerifyConcurrent(t *testing.T) {
	setup := generateTestProof(t)
	v := newTestVerifier(t, setup.vkPath)
	inputs := append(fieldBytes(setup.commitment), fieldBytes(setup.cellResult)...)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			valid, err := v.Verify(context.Background(), setup.proof, inputs)
			assert.NoError(t, err)
			assert.True(t, valid)
		}()
	}
	wg.Wait()
}

// 测试公开输入被篡改时验证返回(false, nil)
func TestVerifyTamperedInputs(t *testing.T) {
	setup := generateTestProof(t)
	v := newTestVerifier(t, setup.vkPath)

	inputs := append(fieldBytes(setup.commitment), fieldBytes(big.NewInt(10))...)
	valid, err := v.Verify(context.Background(), setup.proof, inputs)
	require.NoError(t, err, "验证失败是正常结果而非系统错误")
	assert.False(t, valid)
}

// 测试无法反序列化的证明返回错误
func TestVerifyMalformedProof(t *testing.T) {
	setup := generateTestProof(t)
	v := newTestVerifier(t, setup.vkPath)

	inputs := append(fieldBytes(setup.commitment), fieldBytes(setup.cellResult)...)
	_, err := v.Verify(context.Background(), []byte("garbage"), inputs)
	assert.Error(t, err)
}

// 测试空入参校验
func TestVerifyEmptyArguments(t *testing.T) {
	setup := generateTestProof(t)
	v := newTestVerifier(t, setup.vkPath)

	_, err := v.Verify(context.Background(), nil, []byte("inputs"))
	assert.Error(t, err)

	_, err = v.Verify(context.Background(), []byte("proof"), nil)
	assert.Error(t, err)
}

// 测试验证密钥文件缺失时的错误
func TestVerifyMissingKeyFile(t *testing.T) {
	v := newTestVerifier(t, filepath.Join(t.TempDir(), "missing.key"))

	_, err := v.Verify(context.Background(), []byte("proof"), []byte("inputs"))
	assert.Error(t, err)
}

// 测试不支持的曲线名在构造期被拒绝
func TestNewUnsupportedCurve(t *testing.T) {
	options := zkconfig.New(nil).GetOptions()
	options.Curve = "secp256k1"

	_, err := New(options, &mockLogger{})
	assert.Error(t, err)
}
