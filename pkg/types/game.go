package types

// CommitmentSize 陷阱网格承诺摘要的固定字节长度
// 防守方对陷阱布局的Merkle根承诺为32字节；本系统只存储、不解释
const CommitmentSize = 32

// Game 一局陷阱网格对抗会话的完整状态
//
// 不变量（由会话状态机维护）：
// - MovesMade == Hits + Misses
// - MovesMade 单调不减，且不超过网格总格数
// - Winner 在 GameEnded == false 时恒为空字符串
// - Commitment 创建后不可变
type Game struct {
	Defender      string `json:"defender"`       // 防守方（Player A），埋设陷阱并承诺
	Attacker      string `json:"attacker"`       // 进攻方（Player B），逐格探测
	DefenderStake int64  `json:"defender_stake"` // 防守方押注积分
	AttackerStake int64  `json:"attacker_stake"` // 进攻方押注积分
	Commitment    []byte `json:"commitment"`     // 陷阱网格承诺摘要（32字节，不可变）
	MovesMade     uint32 `json:"moves_made"`     // 已接受的移动总数
	Hits          uint32 `json:"hits"`           // 命中陷阱数
	Misses        uint32 `json:"misses"`         // 未命中数
	GameStarted   bool   `json:"game_started"`   // 会话已开始
	GameEnded     bool   `json:"game_ended"`     // 会话已结束（终态，不可逆）
	Winner        string `json:"winner"`         // 胜者身份，结束前为空
}

// Move 一次已验证的探测移动
//
// 账本只存储已验证的移动，Verified恒为true；
// 同一会话内坐标对唯一，追加后不可修改或删除
type Move struct {
	X        uint32 `json:"x"`
	Y        uint32 `json:"y"`
	IsHit    bool   `json:"is_hit"`   // 防守方声明的结果：命中/未命中
	Verified bool   `json:"verified"` // 证明验证通过后置true
}

// HubGameInfo Game Hub注册表中的一条游戏记录
type HubGameInfo struct {
	GameID       uint64 `json:"game_id"`
	GameContract string `json:"game_contract"` // 游戏服务地址/标识
	Name         string `json:"name"`
	Active       bool   `json:"active"`
}

// HubSessionInfo Hub侧的一条会话登记记录
//
// 由Hub服务端在收到Begin上报时创建，Conclude上报后进入终态
type HubSessionInfo struct {
	SessionID     uint32 `json:"session_id"`
	GameContract  string `json:"game_contract"` // 上报方游戏服务地址
	Defender      string `json:"defender"`
	Attacker      string `json:"attacker"`
	DefenderStake int64  `json:"defender_stake"`
	AttackerStake int64  `json:"attacker_stake"`
	Concluded     bool   `json:"concluded"`
	DefenderWon   bool   `json:"defender_won"` // Concluded为true时有效
}
