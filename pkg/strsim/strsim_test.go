package strsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio(t *testing.T) {
	assert.InDelta(t, 0.75, Ratio("abcd", "bcde"), 1e-9)
	assert.InDelta(t, 1.0, Ratio("大帝", "大帝"), 1e-9)
	assert.InDelta(t, 0.8, Ratio("大帝", "大帝x"), 1e-9)
	assert.InDelta(t, 1.0, Ratio("", ""), 1e-9)
	assert.InDelta(t, 0.0, Ratio("abc", "xyz"), 1e-9)
}

func TestRatioCountsAllMatchingBlocks(t *testing.T) {
	// "abxcd" 与 "abcd"：匹配块 "ab" 和 "cd"，M=4
	assert.InDelta(t, 2.0*4/9, Ratio("abxcd", "abcd"), 1e-9)
}

func TestCloseMatchesRanking(t *testing.T) {
	got := CloseMatches("arthur", []string{"arthux", "velanna", "arthu"}, 3, 0.6)
	assert.Len(t, got, 2)
	// 编辑距离为1的候选排在无关名称之前
	assert.Equal(t, "arthu", got[0].Word)
	assert.Equal(t, "arthux", got[1].Word)
}

func TestCloseMatchesCutoff(t *testing.T) {
	assert.Empty(t, CloseMatches("arthur", []string{"velanna"}, 3, 0.4))

	// 0.4 与 0.6 两档阈值之间的候选只出现在宽松档
	loose := CloseMatches("ab", []string{"abxxxx"}, 3, 0.4)
	strict := CloseMatches("ab", []string{"abxxxx"}, 3, 0.6)
	assert.Len(t, loose, 1)
	assert.Empty(t, strict)
}
