package zk

// 证明验证配置默认值
const (
	// defaultCurve 默认椭圆曲线为BN254
	// 原因：Groth16在BN254上的验证开销最低，且是gnark生态的默认选择
	defaultCurve = "bn254"
)
