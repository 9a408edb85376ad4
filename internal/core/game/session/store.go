package session

import (
	"encoding/json"
	"fmt"

	"github.com/masaun/ZK-trap-grid/pkg/types"
)

// 💾 会话持久化编解码
//
// 键空间布局：
//   game:<id>   会话状态（types.Game 的 JSON 编码）
//   moves:<id>  落子账本（types.Move 切片的 JSON 编码，追加式）
//
// 两个键始终在同一个badger事务内一起写入，保证会话状态与
// 账本之间的一致性。终局时两个键均带保留期TTL。

func gameKey(sessionID uint32) []byte {
	return []byte(fmt.Sprintf("game:%d", sessionID))
}

func movesKey(sessionID uint32) []byte {
	return []byte(fmt.Sprintf("moves:%d", sessionID))
}

func encodeGame(game *types.Game) ([]byte, error) {
	data, err := json.Marshal(game)
	if err != nil {
		return nil, fmt.Errorf("encode game: %w", err)
	}
	return data, nil
}

func decodeGame(data []byte) (*types.Game, error) {
	var game types.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, fmt.Errorf("decode game: %w", err)
	}
	return &game, nil
}

func encodeMoves(moves []types.Move) ([]byte, error) {
	data, err := json.Marshal(moves)
	if err != nil {
		return nil, fmt.Errorf("encode moves: %w", err)
	}
	return data, nil
}

func decodeMoves(data []byte) ([]types.Move, error) {
	if data == nil {
		return nil, nil
	}
	var moves []types.Move
	if err := json.Unmarshal(data, &moves); err != nil {
		return nil, fmt.Errorf("decode moves: %w", err)
	}
	return moves, nil
}
