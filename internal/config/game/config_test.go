package game

import (
	"testing"
	"time"

	"github.com/masaun/ZK-trap-grid/pkg/types"
	"github.com/stretchr/testify/assert"
)

func uint32Ptr(v uint32) *uint32 { return &v }
func int64Ptr(v int64) *int64    { return &v }

// 测试无用户配置时的默认值
func TestGameConfigDefaults(t *testing.T) {
	options := New(nil).GetOptions()

	assert.Equal(t, DefaultGridSize, options.GridSize)
	assert.Equal(t, 30*24*time.Hour, options.Retention)
	assert.Equal(t, uint32(64), options.TotalCells())
}

// 测试用户配置的覆盖
func TestGameConfigUserOverride(t *testing.T) {
	options := New(&types.UserGameConfig{
		GridSize:         uint32Ptr(16),
		RetentionSeconds: int64Ptr(3600),
	}).GetOptions()

	assert.Equal(t, uint32(16), options.GridSize)
	assert.Equal(t, uint32(256), options.TotalCells())
	assert.Equal(t, time.Hour, options.Retention)
}

// 测试边长超出平方可表示范围时保持默认值
// （65535是平方仍在uint32内的最大边长）
func TestGameConfigGridSizeBound(t *testing.T) {
	options := New(&types.UserGameConfig{GridSize: uint32Ptr(70000)}).GetOptions()
	assert.Equal(t, DefaultGridSize, options.GridSize, "溢出边长应被忽略")

	options = New(&types.UserGameConfig{GridSize: uint32Ptr(65535)}).GetOptions()
	assert.Equal(t, uint32(65535), options.GridSize)
	assert.Equal(t, uint32(65535)*uint32(65535), options.TotalCells())

	options = New(&types.UserGameConfig{GridSize: uint32Ptr(0)}).GetOptions()
	assert.Equal(t, DefaultGridSize, options.GridSize)
}
