// Package alias 维护角色名称/别名到角色ID的索引，并提供模糊匹配。
package alias

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/rikka-qwq/eversoul-info-backend/pkg/strsim"
)

// 模糊匹配阈值：主查询要求较高相似度，建议列表放宽
const (
	resolveCutoff = 0.6
	suggestCutoff = 0.4
	suggestLimit  = 3
)

// Entry 是别名文件中的一条角色记录
type Entry struct {
	HeroID int64    `yaml:"hero_id"`
	ZhTW   string   `yaml:"zh_tw_name"`
	ZhCN   string   `yaml:"zh_cn_name"`
	KR     string   `yaml:"kr_name"`
	EN     string   `yaml:"en_name"`
	Names  []string `yaml:"aliases"`
}

type aliasFile struct {
	Names []Entry `yaml:"names"`
}

// Index 是构建完成后只读的名称索引
type Index struct {
	byName  map[string]int64
	ordered []string // 注册顺序去重后的全部名称
	entries []Entry
}

// Suggestion 是一条"您是否想查询"建议
type Suggestion struct {
	HeroID  int64
	Primary string
	Aliases []string
}

// LoadFile 读取别名文件并构建索引
func LoadFile(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法读取别名文件 %s: %w", path, err)
	}
	var file aliasFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("解析别名文件 %s 失败: %w", path, err)
	}
	return Build(file.Names), nil
}

// Build 从条目列表构建索引。每个条目的各语言名称和全部别名都会注册；
// 纯ASCII名称额外注册一份小写副本。重复名称后注册者覆盖先注册者。
func Build(entries []Entry) *Index {
	idx := &Index{
		byName:  make(map[string]int64),
		entries: entries,
	}
	for _, e := range entries {
		if e.HeroID == 0 {
			continue
		}
		for _, name := range []string{e.ZhTW, e.ZhCN, e.KR, e.EN} {
			idx.register(name, e.HeroID)
		}
		for _, name := range e.Names {
			idx.register(name, e.HeroID)
		}
	}
	return idx
}

func (idx *Index) register(name string, heroID int64) {
	if name == "" {
		return
	}
	idx.put(name, heroID)
	if isASCII(name) {
		idx.put(strings.ToLower(name), heroID)
	}
}

func (idx *Index) put(name string, heroID int64) {
	if _, seen := idx.byName[name]; !seen {
		idx.ordered = append(idx.ordered, name)
	}
	idx.byName[name] = heroID
}

// Entries 按文件顺序返回全部条目
func (idx *Index) Entries() []Entry {
	return idx.entries
}

// Len 返回已索引的名称数量
func (idx *Index) Len() int {
	return len(idx.byName)
}

// ResolveExact 精确查找名称。纯ASCII输入额外尝试小写形式，
// 非ASCII名称保持大小写敏感。
func (idx *Index) ResolveExact(name string) (int64, bool) {
	if id, ok := idx.byName[name]; ok {
		return id, true
	}
	if isASCII(name) {
		if id, ok := idx.byName[strings.ToLower(name)]; ok {
			return id, true
		}
	}
	return 0, false
}

// ResolveFuzzy 对全部已索引名称做相似度匹配，取唯一最佳且相似度
// 不低于0.6的候选。ASCII查询在小写化的名称集合上匹配。
func (idx *Index) ResolveFuzzy(name string) (int64, bool) {
	query := name
	pool := idx.ordered
	if isASCII(name) {
		query = strings.ToLower(name)
		pool = make([]string, len(idx.ordered))
		for i, n := range idx.ordered {
			if isASCII(n) {
				pool[i] = strings.ToLower(n)
			} else {
				pool[i] = n
			}
		}
	}
	matches := strsim.CloseMatches(query, pool, 1, resolveCutoff)
	if len(matches) == 0 {
		return 0, false
	}
	id, ok := idx.byName[matches[0].Word]
	return id, ok
}

// Suggest 返回相似度不低于0.4的前三个候选，展开为
// （主名称，其余别名）并按归属角色去重。没有达标候选时返回空。
func (idx *Index) Suggest(name string) []Suggestion {
	matches := strsim.CloseMatches(name, idx.ordered, suggestLimit, suggestCutoff)
	if len(matches) == 0 {
		return nil
	}

	// 每个角色按注册顺序的第一个名称视为主名称
	primary := make(map[int64]string)
	aliases := make(map[int64][]string)
	for _, n := range idx.ordered {
		id := idx.byName[n]
		if _, ok := primary[id]; !ok {
			primary[id] = n
		} else {
			aliases[id] = append(aliases[id], n)
		}
	}

	var out []Suggestion
	seen := make(map[int64]bool)
	for _, m := range matches {
		id, ok := idx.byName[m.Word]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, Suggestion{
			HeroID:  id,
			Primary: primary[id],
			Aliases: aliases[id],
		})
	}
	return out
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
