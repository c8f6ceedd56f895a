package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeDataset 生成一套完整的最小数据文件
func writeDataset(t *testing.T, overrides map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, file := range tableFiles {
		content, ok := overrides[name]
		if !ok {
			content = `{"json":[]}`
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(content), 0o644))
	}
	return dir
}

func TestLoadCompleteDataset(t *testing.T) {
	dir := writeDataset(t, map[string]string{
		"hero": `{"json":[{"no":1,"hero_id":12,"name_sno":100}]}`,
	})

	store, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, len(tableFiles), store.TableCount())

	rec, ok := store.Table("hero").First(func(rec Record) bool {
		return rec.Int("hero_id") == 12
	})
	require.True(t, ok)
	assert.Equal(t, int64(100), rec.Int("name_sno"))
}

func TestLoadFailsOnMissingFile(t *testing.T) {
	dir := writeDataset(t, nil)
	require.NoError(t, os.Remove(filepath.Join(dir, "Hero.json")))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestLoadFailsOnInvalidJSON(t *testing.T) {
	dir := writeDataset(t, map[string]string{
		"item": `{"json":[`,
	})

	_, err := Load(dir)
	assert.Error(t, err)
}
