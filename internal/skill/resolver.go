// Package skill 解析技能/遗物文本中的引用标签并计算数值。
package skill

import (
	"math"
	"regexp"
	"strconv"

	"github.com/rikka-qwq/eversoul-info-backend/internal/dataset"
	"github.com/rikka-qwq/eversoul-info-backend/pkg/numfmt"
)

// missingValue 是引用的数值行缺失时的占位文本
const missingValue = "???"

// 颜色标记的三种出现形态：紧凑、带空白、带引号
var (
	colorOpenRe       = regexp.MustCompile(`(?i)<color\s*=#[A-Fa-f0-9]+\s*>`)
	colorCloseRe      = regexp.MustCompile(`(?i)</color\s*>`)
	colorQuotedOpenRe = regexp.MustCompile(`(?i)<color="[#A-Fa-f0-9]+"\s*>`)
)

// valueTagRe 匹配形如 <100.VALUE> / <25.DURATION> 的数值标签。
// 不符合这个形状的文本原样保留。
var valueTagRe = regexp.MustCompile(`<\s*(\d+)\.(VALUE|DURATION)\s*>`)

// StripColorTags 去掉文本中的富文本颜色标记
func StripColorTags(text string) string {
	text = colorOpenRe.ReplaceAllString(text, "")
	text = colorQuotedOpenRe.ReplaceAllString(text, "")
	text = colorCloseRe.ReplaceAllString(text, "")
	return text
}

// Resolver 在一个数据集快照上解析文本标签
type Resolver struct {
	store *dataset.Store
}

// NewResolver 创建标签解析器
func NewResolver(store *dataset.Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve 清理颜色标记并替换全部数值标签
func (r *Resolver) Resolve(text string) string {
	text = StripColorTags(text)
	return valueTagRe.ReplaceAllStringFunc(text, func(tag string) string {
		parts := valueTagRe.FindStringSubmatch(tag)
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return tag
		}
		if parts[2] == "DURATION" {
			return r.durationValue(id)
		}
		return r.tagValue(id)
	})
}

// codeRef 表示技能代码行携带的数值：要么直接取值，
// 要么作为指向技能效果行的引用再解一跳。
type codeRef struct {
	value float64
	refNo int64
	isRef bool
}

func newCodeRef(value float64) codeRef {
	if value == math.Trunc(value) {
		return codeRef{value: value, refNo: int64(value), isRef: true}
	}
	return codeRef{value: value}
}

// durationValue 解析 DURATION 标签：优先沿代码行引用到效果行取持续时间，
// 引用不成立时把标签编号直接当效果行编号。
func (r *Resolver) durationValue(id int64) string {
	buffs := r.store.Table("skill_buff")
	for code := range r.store.Table("skill_code").Scan(func(rec dataset.Record) bool {
		return rec.Int("no") == id
	}) {
		ref := newCodeRef(code.Float("value"))
		if !ref.isRef {
			continue
		}
		if buff, ok := buffs.Get(ref.refNo); ok {
			return strconv.FormatInt(int64(math.Abs(buff.Float("duration"))), 10)
		}
	}
	if buff, ok := buffs.Get(id); ok {
		return strconv.FormatInt(int64(math.Abs(buff.Float("duration"))), 10)
	}
	return missingValue
}

// tagValue 解析 VALUE 标签：代码行数值若恰好指向一条效果行，
// 取该效果行的数值，否则取代码行自身数值，统一按百分比/整数规则渲染。
func (r *Resolver) tagValue(id int64) string {
	code, ok := r.store.Table("skill_code").First(func(rec dataset.Record) bool {
		return rec.Int("no") == id
	})
	if !ok {
		return missingValue
	}
	ref := newCodeRef(code.Float("value"))
	if ref.isRef {
		if buff, ok := r.store.Table("skill_buff").Get(ref.refNo); ok {
			return numfmt.PercentOrInteger(math.Abs(buff.Float("value")))
		}
	}
	return numfmt.PercentOrInteger(math.Abs(ref.value))
}
