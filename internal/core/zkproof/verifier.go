// Package zkproof 实现基于gnark的证明验证预言机
//
// 🔐 **证明验证预言机 (Proof Oracle)**
//
// 会话核心只依赖一个布尔判定："该证明在给定公开输入下是否有效"。
// 本包将其落地为Groth16验证：验证密钥从文件加载并常驻缓存，
// 公开输入按32字节分段映射为标量域元素后构造public witness。
//
// 🎯 **关键语义**
// - groth16.Verify返回错误表示"证明无效"，对调用方是(false, nil)——
//   正常结果而非系统错误
// - 验证密钥缺失或损坏属于不可恢复的配置错误，在首次使用时暴露
// - 对证明电路的具体结构保持不可知：witness只承诺公开输入的数量与顺序
package zkproof

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/big"
	"os"
	"sync"
	"time"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/frontend"
	gnarklogger "github.com/consensys/gnark/logger"
	zkconfig "github.com/masaun/ZK-trap-grid/internal/config/zk"
	gameiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/game"
	logiface "github.com/masaun/ZK-trap-grid/pkg/interfaces/infrastructure/log"
	"github.com/rs/zerolog"
)

// fieldElementSize 公开输入分段宽度，与承诺宽度一致
const fieldElementSize = 32

// Verifier Groth16证明验证器
type Verifier struct {
	options *zkconfig.ZKOptions
	logger  logiface.Logger
	curveID ecc.ID

	// 验证密钥懒加载，加载结果（含失败）缓存
	vkOnce sync.Once
	vk     groth16.VerifyingKey
	vkErr  error
}

var _ gameiface.ProofVerifier = (*Verifier)(nil)

// supportedCurves 支持的椭圆曲线
var supportedCurves = map[string]ecc.ID{
	"bn254":     ecc.BN254,
	"bls12-381": ecc.BLS12_381,
}

// gnark的日志记录器是进程级全局状态，装配期一次性静音；
// 按调用换装再还原会在并发验证间互相覆盖
var gnarkLogSilence sync.Once

func silenceGnarkLogger() {
	gnarkLogSilence.Do(func() {
		gnarklogger.Set(zerolog.New(io.Discard).Level(zerolog.Disabled))
	})
}

// GenericCircuit 通用电路结构：把公开输入列表绑定成gnark witness
//
// ⚠️ 约束系统已固化在验证密钥中，这里的Define不是安全约束，
// 仅用于在不知道具体电路结构时按数量/顺序构造public witness。
type GenericCircuit struct {
	PublicInputs []frontend.Variable `gnark:",public"`
}

// Define 通用电路的约束定义（恒等约束，无业务含义）
func (circuit *GenericCircuit) Define(api frontend.API) error {
	for _, input := range circuit.PublicInputs {
		api.AssertIsEqual(input, input)
	}
	return nil
}

// New 创建证明验证器
//
// 验证密钥路径的存在性由应用装配阶段校验，这里只校验曲线名
func New(options *zkconfig.ZKOptions, logger logiface.Logger) (*Verifier, error) {
	curveID, ok := supportedCurves[options.Curve]
	if !ok {
		return nil, fmt.Errorf("不支持的椭圆曲线: %s", options.Curve)
	}

	// 验证期间gnark会产生大量调试输出，静音其全局日志
	silenceGnarkLogger()

	return &Verifier{
		options: options,
		logger:  logger,
		curveID: curveID,
	}, nil
}

// Verify 验证证明
//
// 验证失败返回(false, nil)；只有验证流程本身无法完成
// （验证密钥不可用、证明无法反序列化等）才返回错误。
func (v *Verifier) Verify(ctx context.Context, proof, publicInputs []byte) (bool, error) {
	startTime := time.Now()

	if len(proof) == 0 {
		return false, fmt.Errorf("证明数据为空")
	}
	if len(publicInputs) == 0 {
		return false, fmt.Errorf("公开输入为空")
	}

	vk, err := v.verifyingKey()
	if err != nil {
		return false, fmt.Errorf("获取验证密钥失败: %w", err)
	}

	proofObj := groth16.NewProof(v.curveID)
	if _, err := proofObj.ReadFrom(bytes.NewReader(proof)); err != nil {
		return false, fmt.Errorf("反序列化证明失败: %w", err)
	}

	publicWitness, err := v.buildPublicWitness(publicInputs)
	if err != nil {
		return false, fmt.Errorf("构建公开输入失败: %w", err)
	}

	if err := groth16.Verify(proofObj, vk, publicWitness); err != nil {
		v.logger.Debugf("证明验证失败: %v", err)
		return false, nil // 验证失败但不是系统错误
	}

	v.logger.Debugf("证明验证成功: 耗时=%v", time.Since(startTime))
	return true, nil
}

// verifyingKey 加载验证密钥，结果缓存（失败同样缓存，配置错误不会自愈）
func (v *Verifier) verifyingKey() (groth16.VerifyingKey, error) {
	v.vkOnce.Do(func() {
		data, err := os.ReadFile(v.options.VerifyingKeyPath)
		if err != nil {
			v.vkErr = fmt.Errorf("读取验证密钥文件失败: %w", err)
			return
		}

		vk := groth16.NewVerifyingKey(v.curveID)
		if _, err := vk.ReadFrom(bytes.NewReader(data)); err != nil {
			v.vkErr = fmt.Errorf("解析验证密钥失败: %w", err)
			return
		}

		v.vk = vk
		v.logger.Infof("验证密钥已加载: path=%s curve=%s", v.options.VerifyingKeyPath, v.options.Curve)
	})
	return v.vk, v.vkErr
}

// buildPublicWitness 把公开输入字节流按32字节分段构造public witness
//
// 每段按大端序解释为整数并对标量域取模，段数与顺序必须与
// 证明电路声明的公开输入一致，否则验证必然失败
func (v *Verifier) buildPublicWitness(publicInputs []byte) (witness.Witness, error) {
	field := v.curveID.ScalarField()

	count := (len(publicInputs) + fieldElementSize - 1) / fieldElementSize
	publicValues := make([]frontend.Variable, count)
	for i := 0; i < count; i++ {
		start := i * fieldElementSize
		end := start + fieldElementSize
		if end > len(publicInputs) {
			end = len(publicInputs)
		}
		value := new(big.Int).SetBytes(publicInputs[start:end])
		value.Mod(value, field)
		publicValues[i] = value
	}

	circuit := GenericCircuit{PublicInputs: publicValues}
	publicWitness, err := frontend.NewWitness(&circuit, field, frontend.PublicOnly())
	if err != nil {
		return nil, fmt.Errorf("创建witness失败: %w", err)
	}
	return publicWitness, nil
}
