package alias

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIndex() *Index {
	return Build([]Entry{
		{HeroID: 12, ZhTW: "大帝", ZhCN: "大帝", EN: "Adrianne", Names: []string{"阿德里安"}},
		{HeroID: 3, ZhTW: "梅菲", ZhCN: "梅菲", EN: "Mephi"},
		{HeroID: 55, ZhTW: "凱特", ZhCN: "凯特", EN: "Catherine"},
	})
}

func TestResolveExact(t *testing.T) {
	idx := testIndex()

	id, ok := idx.ResolveExact("大帝")
	require.True(t, ok)
	assert.Equal(t, int64(12), id)

	id, ok = idx.ResolveExact("阿德里安")
	require.True(t, ok)
	assert.Equal(t, int64(12), id)

	// ASCII名称大小写不敏感
	id, ok = idx.ResolveExact("ADRIANNE")
	require.True(t, ok)
	assert.Equal(t, int64(12), id)

	_, ok = idx.ResolveExact("不存在的人")
	assert.False(t, ok)
}

func TestResolveFuzzy(t *testing.T) {
	idx := testIndex()

	// 一字之差的输入仍应落到同一角色
	id, ok := idx.ResolveFuzzy("大帝x")
	require.True(t, ok)
	assert.Equal(t, int64(12), id)

	id, ok = idx.ResolveFuzzy("mephi1")
	require.True(t, ok)
	assert.Equal(t, int64(3), id)

	// 与任何名称都不相近的输入不应命中
	_, ok = idx.ResolveFuzzy("zzzzzzzz")
	assert.False(t, ok)
}

func TestSuggest(t *testing.T) {
	idx := testIndex()

	suggestions := idx.Suggest("大帝王")
	require.NotEmpty(t, suggestions)
	assert.Equal(t, int64(12), suggestions[0].HeroID)
	assert.Equal(t, "大帝", suggestions[0].Primary)
	assert.Contains(t, suggestions[0].Aliases, "阿德里安")

	// 同一角色的多个名称命中时只给一条建议
	ids := make(map[int64]int)
	for _, s := range suggestions {
		ids[s.HeroID]++
	}
	for id, n := range ids {
		assert.Equal(t, 1, n, "hero %d duplicated", id)
	}

	assert.Empty(t, idx.Suggest("qqqqqqqqqq"))
}

func TestBuildSkipsInvalidEntries(t *testing.T) {
	idx := Build([]Entry{
		{HeroID: 0, ZhTW: "无效"},
		{HeroID: 9, ZhTW: "有效", Names: []string{""}},
	})

	_, ok := idx.ResolveExact("无效")
	assert.False(t, ok)

	id, ok := idx.ResolveExact("有效")
	require.True(t, ok)
	assert.Equal(t, int64(9), id)
}
