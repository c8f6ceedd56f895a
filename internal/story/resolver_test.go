package story

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rikka-qwq/eversoul-info-backend/internal/dataset"
)

func testStore(t *testing.T, tables map[string]string) *dataset.Store {
	t.Helper()
	built := make(map[string]*dataset.Table, len(tables))
	for name, src := range tables {
		tbl, err := dataset.NewTableFromJSON(name, src)
		require.NoError(t, err)
		built[name] = tbl
	}
	return dataset.NewStore(built)
}

func storyStore(t *testing.T) *dataset.Store {
	return testStore(t, map[string]string{
		"story_info": `{"json":[
			{"no":1,"act":5,"episode":1,"bundle_path":"Story/Love/ep1","talk_group":300,"episode_name_sno":500},
			{"no":2,"act":5,"episode":8,"bundle_path":"Story/Love/ep8","ending_affinity":40},
			{"no":3,"act":5,"episode":9,"bundle_path":"Story/Love/ep9","ending_affinity":80},
			{"no":4,"act":5,"episode":10,"bundle_path":"Story/Love/ep10","ending_affinity":120},
			{"no":5,"act":5,"episode":2,"bundle_path":"Story/Main/ep2","talk_group":999}
		]}`,
		"talk": `{"json":[
			{"no":10,"group_no":300,"talk_index":1,"position_type":1,"choice_group":1,"affinity_point":10},
			{"no":11,"group_no":300,"talk_index":1,"position_type":2,"choice_group":2,"affinity_point":-5},
			{"no":12,"group_no":300,"talk_index":1,"position_type":1,"choice_group":3},
			{"no":13,"group_no":300,"talk_index":2,"position_type":1,"choice_group":1,"affinity_point":3},
			{"no":14,"group_no":300,"talk_index":2,"position_type":1,"choice_group":2,"affinity_point":8},
			{"no":15,"group_no":300,"talk_index":9,"position_type":1,"choice_group":1}
		]}`,
		"string_talk": `{"json":[
			{"no":500,"zh_tw":"初次見面"},
			{"no":10,"zh_tw":"微笑"},
			{"no":11,"zh_tw":"皺眉"},
			{"no":12,"zh_tw":"沉默","kr":"침묵"},
			{"no":13,"zh_tw":"搭话"},
			{"no":14,"zh_tw":"送礼"}
		]}`,
	})
}

func TestDiscover(t *testing.T) {
	has, episodes, endings := Discover(storyStore(t), 5)
	require.True(t, has)

	assert.Equal(t, Endings{"bad": 40, "normal": 80, "good": 120}, endings)

	// 主线路径的篇章不属于好感故事
	require.Len(t, episodes, 1)
	ep := episodes[0]
	assert.Equal(t, int64(1), ep.Episode)
	assert.Equal(t, "初次見面", ep.Title)

	// talk_index=9 的行没有任何带好感度的选项，整组排除
	require.Len(t, ep.Groups, 2)
	assert.Equal(t, int64(1), ep.Groups[0].PositionType)
	assert.Len(t, ep.Groups[0].Choices, 4)
	assert.Len(t, ep.Groups[1].Choices, 1)

	// 同一talk_index下无好感度的选项也纳入，好感度记0
	var silent *Choice
	for i := range ep.Groups[0].Choices {
		if ep.Groups[0].Choices[i].No == 12 {
			silent = &ep.Groups[0].Choices[i]
		}
	}
	require.NotNil(t, silent)
	assert.Equal(t, int64(0), silent.Affinity)
}

func TestDiscoverNoStory(t *testing.T) {
	store := testStore(t, map[string]string{
		"story_info":  `{"json":[{"no":1,"act":5,"episode":1,"bundle_path":"Story/Love/ep1","talk_group":300}]}`,
		"talk":        `{"json":[]}`,
		"string_talk": `{"json":[]}`,
	})

	// 没有结局篇章时视为无好感故事
	has, _, _ := Discover(store, 5)
	assert.False(t, has)

	// 结局篇章存在但没有阈值字段时同样视为无好感故事
	store = testStore(t, map[string]string{
		"story_info":  `{"json":[{"no":2,"act":5,"episode":10,"bundle_path":"Story/Love/ep10"}]}`,
		"talk":        `{"json":[]}`,
		"string_talk": `{"json":[]}`,
	})
	has, _, _ = Discover(store, 5)
	assert.False(t, has)
}

func TestTranscript(t *testing.T) {
	has, episodes, endings := Discover(storyStore(t), 5)
	require.True(t, has)

	text := Transcript(episodes, endings)
	lines := strings.Split(text, "\n")

	assert.Equal(t, "好感故事攻略：", lines[0])
	assert.Contains(t, lines, "好结局攻略：")
	assert.Contains(t, lines, "条件：好感度大于80")
	assert.Contains(t, lines, "一般结局攻略：")
	assert.Contains(t, lines, "条件：好感度40-80")
	assert.Contains(t, lines, "根据好结局的选项来，然后故意选错一个扣的最高的，好感度在区间内即可")
	assert.Contains(t, lines, "坏结局攻略：")
	assert.Contains(t, lines, "条件：好感度低于40")

	goodStart := strings.Index(text, "好结局攻略：")
	normalStart := strings.Index(text, "一般结局攻略：")
	badStart := strings.Index(text, "坏结局攻略：")
	goodSection := text[goodStart:normalStart]
	badSection := text[badStart:]

	// 好结局每步取好感度最高的选项
	assert.Contains(t, goodSection, "（1）微笑(+10)")
	assert.Contains(t, goodSection, "（2）送礼(+8)")
	assert.NotContains(t, goodSection, "搭话")

	// 坏结局第一步取负好感度；第二步没有负数和零，取最小正数
	assert.Contains(t, badSection, "（2）皺眉(-5)")
	assert.Contains(t, badSection, "（1）搭话(+3)")

	// 章节标题行
	assert.Contains(t, text, "\nEP1：初次見面")
}

func TestTranscriptBadPrefersZero(t *testing.T) {
	episodes := []Episode{{
		Episode: 1,
		Title:   "測試",
		Groups: []PositionGroup{{
			PositionType: 1,
			Choices: []Choice{
				{Text: "甲", Affinity: 5, ChoiceGroup: 1, TalkIndex: 1},
				{Text: "乙", Affinity: 0, ChoiceGroup: 2, TalkIndex: 1},
			},
		}},
	}}
	text := Transcript(episodes, Endings{"bad": 10, "normal": 20, "good": 30})

	assert.Contains(t, text, "（2）乙(0)")
}
