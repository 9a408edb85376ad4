package game

// SessionAuthorizer 会话授权校验器
//
// 🔐 零信任约束：StartGame要求双方都对(会话ID, 本方押注)元组完成签名授权。
// 校验在API层进行，核心状态机将其视为已满足的前置条件——
// 这里只定义契约，签名体系本身可替换。
type SessionAuthorizer interface {
	// VerifyVoucher 校验一份授权凭据
	//
	// player 为玩家身份（十六进制压缩公钥），voucher 为对
	// (sessionID, stake) 规范化摘要的紧凑签名。
	// 签名无效或身份不可解析时返回错误。
	VerifyVoucher(player string, sessionID uint32, stake int64, voucher []byte) error
}
