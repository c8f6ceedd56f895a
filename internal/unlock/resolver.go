// Package unlock 把关键字的解锁条件编号翻译成可读文本。
//
// details 字段的含义是多态的：可能是地点编号、故事编号、好感等级或
// 遗失物品索引，只能靠数值范围和模板归属来区分。规则按固定优先级
// 逐个尝试，第一个命中的结果即为最终答案；调整顺序会改变那些同时
// 落进多个数值范围的编号的输出。
package unlock

import (
	"fmt"
	"strings"

	"github.com/rikka-qwq/eversoul-info-backend/internal/dataset"
)

// workProficiencySno 是"打工熟练度"解锁模板的文本编号
const workProficiencySno = 619006

// 地点编号占用的details区间
const (
	locationDetailsMin = 101
	locationDetailsMax = 110
)

// Query 是一次解锁条件解析的输入。HeroNo/KeywordType 为0表示未提供。
type Query struct {
	SourceSno   int64
	Details     int64
	HeroNo      int64
	KeywordType int64
}

// Resolver 按固定优先级求解解锁条件文本
type Resolver struct {
	store *dataset.Store
	rules []rule
}

// rule 尝试用一种解释求解。claimed 为真表示该规则对这次输入有最终
// 裁决权：text非空即为答案，text为空则回退到原始模板文本。
type rule func(q Query, source string) (text string, claimed bool)

// NewResolver 创建解锁条件解析器
func NewResolver(store *dataset.Store) *Resolver {
	r := &Resolver{store: store}
	r.rules = []rule{
		r.lostItemRule,
		r.locationRule,
		r.firstChapterRule,
		r.workProficiencyRule,
		r.affectionLevelRule,
		r.storyChapterRule,
	}
	return r
}

// Resolve 返回解锁条件的可读文本。模板缺失时返回空串；
// 所有规则都未命中时返回未格式化的模板文本，从不报错。
func (r *Resolver) Resolve(q Query) string {
	source := r.store.UIString(q.SourceSno).TW
	if source == "" {
		return ""
	}
	for _, apply := range r.rules {
		if text, claimed := apply(q, source); claimed {
			if text == "" {
				return source
			}
			return text
		}
	}
	return source
}

// lostItemRule 处理遗失物品类解锁。只有查到结果才算命中，
// 查不到时继续尝试后续规则。
func (r *Resolver) lostItemRule(q Query, _ string) (string, bool) {
	if q.HeroNo == 0 || q.KeywordType == 0 {
		return "", false
	}
	text := r.lostItemText(q.HeroNo, q.KeywordType, q.Details)
	return text, text != ""
}

// locationRule 把101~110区间的details当作地点编号
func (r *Resolver) locationRule(q Query, _ string) (string, bool) {
	if q.Details < locationDetailsMin || q.Details > locationDetailsMax {
		return "", false
	}
	location, ok := r.store.Table("town_location").First(func(rec dataset.Record) bool {
		return rec.Int("no") == q.Details
	})
	if !ok {
		return "", true
	}
	name := r.store.TownString(location.Int("location_name_sno")).TWOr("未知")
	return fmt.Sprintf("在%s解锁", name), true
}

// firstChapterRule 把details==1当作第一篇好感故事
func (r *Resolver) firstChapterRule(q Query, source string) (string, bool) {
	if q.Details != 1 {
		return "", false
	}
	text, err := formatTemplate(source, "1")
	if err != nil {
		return "完成好感故事篇章1", true
	}
	return text, true
}

// workProficiencyRule 按模板编号识别打工熟练度解锁
func (r *Resolver) workProficiencyRule(q Query, source string) (string, bool) {
	if q.SourceSno != workProficiencySno {
		return "", false
	}
	details := fmt.Sprintf("%d", q.Details)
	text, err := formatTemplate(source, details)
	if err != nil {
		return fmt.Sprintf("打工熟练度达Lv.%d时可获得", q.Details), true
	}
	return text, true
}

// affectionLevelRule 按模板文本中的好感等级占位符识别好感解锁
func (r *Resolver) affectionLevelRule(q Query, source string) (string, bool) {
	if !strings.Contains(source, "好感達Lv.{0}") && !strings.Contains(source, "好感达等级{0}") {
		return "", false
	}
	text, err := formatTemplate(source, fmt.Sprintf("%d", q.Details))
	if err != nil {
		return fmt.Sprintf("好感达Lv.%d时可获得", q.Details), true
	}
	return text, true
}

// storyChapterRule 把details当作故事编号，按模板的占位符布局
// 选择"第N章+话数"或"章-话"两种填法
func (r *Resolver) storyChapterRule(q Query, source string) (string, bool) {
	story, ok := r.store.Table("story_info").First(func(rec dataset.Record) bool {
		return rec.Int("no") == q.Details
	})
	if !ok {
		return "", false
	}
	act := story.Int("act")
	episode := story.Int("episode")
	var text string
	var err error
	if strings.Contains(source, "{0}{1}") {
		text, err = formatTemplate(source, fmt.Sprintf("第%d章", act), fmt.Sprintf("%d", episode))
	} else {
		text, err = formatTemplate(source, fmt.Sprintf("%d-%d", act, episode))
	}
	if err != nil {
		return fmt.Sprintf("完成主线故事第%d章 %d话时可获得", act, episode), true
	}
	return text, true
}

// lostItemText 解析遗失物品的获取方式。quest_type 3 为特定场景类，
// 追踪到对话组中最后一个选项；其余为领地/击杀类。
func (r *Resolver) lostItemText(heroNo, keywordType, details int64) string {
	item, ok := r.store.Table("town_lost_item").First(func(rec dataset.Record) bool {
		return rec.Int("hero_no") == heroNo && rec.Int("keyword_type") == keywordType
	})
	if !ok {
		return ""
	}

	questType := item.Int("quest_type")
	if questType == 3 {
		groupTrip := item.Int("group_trip")
		if groupTrip == 0 {
			return ""
		}
		if no := r.terminalChoiceNo(groupTrip); no != 0 {
			if text := r.store.TalkString(no).TW; text != "" {
				return "需要" + text
			}
		}
		return ""
	}

	groupEnd := item.Int("group_end")
	if groupEnd == 0 {
		return ""
	}
	if no := r.terminalChoiceNo(groupEnd); no != 0 {
		action := r.store.TalkString(no).TW
		if questType == 4 && details == 1 {
			return "需要击杀魔物"
		}
		if action != "" {
			return "需要" + action
		}
	}
	return ""
}

// terminalChoiceNo 返回对话组内最后一个选项对话的文本编号，没有则为0
func (r *Resolver) terminalChoiceNo(groupNo int64) int64 {
	talks := r.store.Table("talk").Select(func(rec dataset.Record) bool {
		return rec.Int("group_no") == groupNo
	})
	for i := len(talks) - 1; i >= 0; i-- {
		if talks[i].Str("ui_type") == "choice" {
			return talks[i].Int("no")
		}
	}
	return 0
}
