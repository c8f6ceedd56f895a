package unlock

import (
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

func TestFormatTemplate(t *testing.T) {
	out, err := formatTemplate("好感达Lv.{0}时可获得", "5")
	require.NoError(t, err)
	assert.Equal(t, "好感达Lv.5时可获得", out)

	out, err = formatTemplate("完成{0}第{1}话", "第3章", "7")
	require.NoError(t, err)
	assert.Equal(t, "完成第3章第7话", out)

	// 空占位符按出现顺序编号
	out, err = formatTemplate("{}-{}", "2", "14")
	require.NoError(t, err)
	assert.Equal(t, "2-14", out)

	// 引用了不存在的参数时报错，由调用方回退
	_, err = formatTemplate("需要{0}和{1}", "甲")
	assert.Error(t, err)

	out, err = formatTemplate("没有占位符")
	require.NoError(t, err)
	assert.Equal(t, "没有占位符", out)
}

func TestResolveEmptySource(t *testing.T) {
	store := testStore(t, map[string]string{"string_ui": `{"json":[]}`})
	r := NewResolver(store)
	assert.Equal(t, "", r.Resolve(Query{SourceSno: 1, Details: 5}))
}

func TestLocationRule(t *testing.T) {
	store := testStore(t, map[string]string{
		"string_ui":     `{"json":[{"no":600,"zh_tw":"某个模板{0}"}]}`,
		"town_location": `{"json":[{"no":105,"location_name_sno":700}]}`,
		"string_town":   `{"json":[{"no":700,"zh_tw":"溫泉"}]}`,
		"story_info":    `{"json":[]}`,
	})
	r := NewResolver(store)

	assert.Equal(t, "在溫泉解锁", r.Resolve(Query{SourceSno: 600, Details: 105}))

	// 区间内但地点缺失时，该规则仍然裁决，回退到模板原文
	assert.Equal(t, "某个模板{0}", r.Resolve(Query{SourceSno: 600, Details: 110}))
}

func TestFirstChapterRule(t *testing.T) {
	store := testStore(t, map[string]string{
		"string_ui":  `{"json":[{"no":600,"zh_tw":"完成好感故事篇章{0}"}]}`,
		"story_info": `{"json":[]}`,
	})
	r := NewResolver(store)

	assert.Equal(t, "完成好感故事篇章1", r.Resolve(Query{SourceSno: 600, Details: 1}))
}

func TestWorkProficiencyRule(t *testing.T) {
	store := testStore(t, map[string]string{
		"string_ui":  `{"json":[{"no":619006,"zh_tw":"打工熟练度达Lv.{0}时可获得"}]}`,
		"story_info": `{"json":[]}`,
	})
	r := NewResolver(store)

	assert.Equal(t, "打工熟练度达Lv.3时可获得", r.Resolve(Query{SourceSno: 619006, Details: 3}))
}

func TestAffectionLevelRule(t *testing.T) {
	store := testStore(t, map[string]string{
		"string_ui":  `{"json":[{"no":601,"zh_tw":"好感達Lv.{0}后解锁"}]}`,
		"story_info": `{"json":[]}`,
	})
	r := NewResolver(store)

	assert.Equal(t, "好感達Lv.7后解锁", r.Resolve(Query{SourceSno: 601, Details: 7}))
}

func TestStoryChapterRule(t *testing.T) {
	store := testStore(t, map[string]string{
		"string_ui": `{"json":[
			{"no":602,"zh_tw":"完成主线故事{0}{1}话时可获得"},
			{"no":603,"zh_tw":"通关{0}后解锁"}
		]}`,
		"story_info": `{"json":[{"no":31415,"act":14,"episode":22}]}`,
	})
	r := NewResolver(store)

	// {0}{1} 布局填"第N章"+话数
	assert.Equal(t, "完成主线故事第14章22话时可获得", r.Resolve(Query{SourceSno: 602, Details: 31415}))
	// 单占位符布局填"章-话"
	assert.Equal(t, "通关14-22后解锁", r.Resolve(Query{SourceSno: 603, Details: 31415}))
}

func TestNoRuleClaimsFallsBackToSource(t *testing.T) {
	store := testStore(t, map[string]string{
		"string_ui":  `{"json":[{"no":604,"zh_tw":"通过活动获得"}]}`,
		"story_info": `{"json":[]}`,
	})
	r := NewResolver(store)

	assert.Equal(t, "通过活动获得", r.Resolve(Query{SourceSno: 604, Details: 42}))
}

func TestLostItemRuleShortCircuits(t *testing.T) {
	store := testStore(t, map[string]string{
		"string_ui":      `{"json":[{"no":600,"zh_tw":"某个模板"}]}`,
		"town_lost_item": `{"json":[{"no":1,"hero_no":5,"keyword_type":2,"quest_type":3,"group_trip":800}]}`,
		"talk": `{"json":[
			{"no":40,"group_no":800,"ui_type":"talk"},
			{"no":41,"group_no":800,"ui_type":"choice"},
			{"no":42,"group_no":800,"ui_type":"choice"}
		]}`,
		"string_talk":   `{"json":[{"no":42,"zh_tw":"在噴泉旁搜索"}]}`,
		"town_location": `{"json":[{"no":105,"location_name_sno":700}]}`,
		"string_town":   `{"json":[{"no":700,"zh_tw":"溫泉"}]}`,
		"story_info":    `{"json":[]}`,
	})
	r := NewResolver(store)

	// 遗失物品命中时优先于地点区间解释，取对话组最后一个选项
	got := r.Resolve(Query{SourceSno: 600, Details: 105, HeroNo: 5, KeywordType: 2})
	assert.Equal(t, "需要在噴泉旁搜索", got)

	// 查不到遗失物品时继续走地点规则
	got = r.Resolve(Query{SourceSno: 600, Details: 105, HeroNo: 6, KeywordType: 2})
	assert.Equal(t, "在溫泉解锁", got)
}

func TestLostItemKillMonster(t *testing.T) {
	store := testStore(t, map[string]string{
		"string_ui":      `{"json":[{"no":600,"zh_tw":"某个模板"}]}`,
		"town_lost_item": `{"json":[{"no":1,"hero_no":5,"keyword_type":3,"quest_type":4,"group_end":801}]}`,
		"talk":           `{"json":[{"no":50,"group_no":801,"ui_type":"choice"}]}`,
		"string_talk":    `{"json":[{"no":50,"zh_tw":"挥舞武器"}]}`,
		"story_info":     `{"json":[]}`,
	})
	r := NewResolver(store)

	assert.Equal(t, "需要击杀魔物", r.Resolve(Query{SourceSno: 600, Details: 1, HeroNo: 5, KeywordType: 3}))
	assert.Equal(t, "需要挥舞武器", r.Resolve(Query{SourceSno: 600, Details: 2, HeroNo: 5, KeywordType: 3}))
}
