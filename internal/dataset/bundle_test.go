package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAliasYAML = `names:
  - hero_id: 12
    zh_tw_name: 大帝
    zh_cn_name: 大帝
    kr_name: ""
    en_name: Adrianne
    aliases:
      - 阿德里安
`

func TestBuildBundleAndPublish(t *testing.T) {
	dir := writeDataset(t, nil)
	aliasFile := filepath.Join(dir, "hero_aliases.yaml")
	require.NoError(t, os.WriteFile(aliasFile, []byte(testAliasYAML), 0o644))

	bundle, err := BuildBundle("live", dir, aliasFile)
	require.NoError(t, err)
	assert.Equal(t, "live", bundle.Variant)
	assert.NotEmpty(t, bundle.ID)
	assert.False(t, bundle.LoadedAt.IsZero())

	id, ok := bundle.Aliases.ResolveExact("大帝")
	require.True(t, ok)
	assert.Equal(t, int64(12), id)

	Publish(bundle)
	assert.Same(t, bundle, Active())

	// 新版本整体替换，旧快照不受影响
	next, err := BuildBundle("review", dir, aliasFile)
	require.NoError(t, err)
	Publish(next)
	assert.Same(t, next, Active())
	assert.NotEqual(t, bundle.ID, next.ID)
}

func TestReloadReproducesIdenticalOutput(t *testing.T) {
	dir := writeDataset(t, map[string]string{
		"hero":        `{"json":[{"no":1,"hero_id":12,"name_sno":100,"attack":1520}]}`,
		"string_char": `{"json":[{"no":100,"zh_tw":"大帝","en":"Adrianne"}]}`,
	})
	aliasFile := filepath.Join(dir, "hero_aliases.yaml")
	require.NoError(t, os.WriteFile(aliasFile, []byte(testAliasYAML), 0o644))

	query := func(b *Bundle) (int64, string, int64) {
		id, ok := b.Aliases.ResolveExact("阿德里安")
		require.True(t, ok)
		rec, ok := b.Store.Table("hero").First(func(rec Record) bool {
			return rec.Int("hero_id") == id
		})
		require.True(t, ok)
		return id, b.Store.CharString(rec.Int("name_sno")).TW, rec.Int("attack")
	}

	first, err := BuildBundle("live", dir, aliasFile)
	require.NoError(t, err)
	Publish(first)
	id1, name1, attack1 := query(Active())

	// 同一数据源重载后，查询结果必须逐字一致，只有版本号变化
	reloaded, err := BuildBundle("live", dir, aliasFile)
	require.NoError(t, err)
	Publish(reloaded)
	id2, name2, attack2 := query(Active())

	assert.Equal(t, id1, id2)
	assert.Equal(t, name1, name2)
	assert.Equal(t, attack1, attack2)
	assert.NotEqual(t, first.ID, reloaded.ID)
}

func TestBuildBundleFailsAtomically(t *testing.T) {
	dir := writeDataset(t, nil)

	_, err := BuildBundle("live", dir, filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	_, err = BuildBundle("live", filepath.Join(dir, "nope"), filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
