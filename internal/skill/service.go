package skill

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rikka-qwq/eversoul-info-backend/internal/dataset"
)

// subChangeIconPrefab 是变身类技能的图标预制体编号，没有独立图标行
const subChangeIconPrefab = 14

// buffPlaceholderRe 匹配支援效果模板中 {0}、{value} 之类的占位符
var buffPlaceholderRe = regexp.MustCompile(`\{([^}]+)\}`)

// Icon 是技能图标及其染色
type Icon struct {
	Icon  string
	Color string
}

// Description 是一条带解锁等级的技能描述
type Description struct {
	Text      dataset.Localized
	HeroLevel int64
}

// Info 是一个技能的完整展示数据。支援技能填充Main/SupportEffects，
// 普通技能填充逐等级的Descriptions。
type Info struct {
	Name           dataset.Localized
	Icon           *Icon
	IsSupport      bool
	Descriptions   []Description
	MainEffects    []dataset.Localized
	SupportEffects []dataset.Localized
}

// Signature 是一件遗物的完整展示数据
type Signature struct {
	Name      dataset.Localized
	SkillName dataset.Localized
	Desc      dataset.Localized
	Descs     []dataset.Localized
	Stats     []string
	MaxLevel  int64
	BGPath    string
}

// signatureStat 把遗物属性字段映射到显示名。同一显示名可能由
// 固定值和百分比两个字段提供，按字段逐个输出。
type signatureStat struct {
	key  string
	name string
}

var signatureStats = []signatureStat{
	{"attack_rate", "攻击力"},
	{"attack", "攻击力"},
	{"defence_rate", "防御力"},
	{"defence", "防御力"},
	{"max_hp_rate", "体力"},
	{"max_hp", "体力"},
	{"hp_rate", "体力"},
	{"hp", "体力"},
	{"critical_rate", "暴击率"},
	{"critical_power", "暴击威力"},
	{"hit", "命中"},
	{"dodge", "闪避"},
	{"physical_resist", "物理抵抗"},
	{"magic_resist", "魔法抵抗"},
	{"life_leech", "噬血"},
	{"attack_speed", "攻击速度"},
}

// Service 负责技能与遗物数据的组装
type Service struct {
	store    *dataset.Store
	resolver *Resolver
}

// NewService 创建技能服务
func NewService(store *dataset.Store) *Service {
	return &Service{store: store, resolver: NewResolver(store)}
}

// GetSkillInfo 组装一个技能编号的展示数据。技能表中同一编号有多行，
// 每行对应一个技能等级；支援技能只取最高等级行。
// hero 用于支援技能的辅助伙伴效果，可传零值Record。
func (s *Service) GetSkillInfo(skillNo int64, isSupport bool, hero dataset.Record) (Info, bool) {
	rows := s.store.Table("skill").Select(func(rec dataset.Record) bool {
		return rec.Int("no") == skillNo
	})
	if len(rows) == 0 {
		return Info{}, false
	}

	info := Info{
		Name:      s.store.SkillString(rows[0].Int("name_sno")),
		Icon:      s.skillIcon(rows[0]),
		IsSupport: isSupport,
	}

	if !isSupport {
		for _, row := range rows {
			info.Descriptions = append(info.Descriptions, Description{
				Text:      s.resolveLocalized(s.store.SkillString(row.Int("tooltip_sno"))),
				HeroLevel: row.IntOr("hero_level", 1),
			})
		}
		return info, true
	}

	top := rows[0]
	for _, row := range rows[1:] {
		if row.Int("level") > top.Int("level") {
			top = row
		}
	}
	if desc := s.store.SkillString(top.Int("tooltip_sno")); desc.TW != "" || desc.KR != "" {
		info.MainEffects = append(info.MainEffects, s.resolveLocalized(desc))
	}
	if effect, ok := s.supportPartnerEffect(hero); ok {
		info.SupportEffects = append(info.SupportEffects, effect)
	}
	return info, true
}

func (s *Service) skillIcon(row dataset.Record) *Icon {
	prefab := row.Int("icon_prefab")
	if prefab == 0 {
		return nil
	}
	if prefab == subChangeIconPrefab {
		return &Icon{Icon: "Icon_Sub_Change", Color: "#e168eb"}
	}
	icon, ok := s.store.Table("skill_icon").Get(prefab)
	if !ok {
		return nil
	}
	return &Icon{
		Icon:  icon.Str("icon"),
		Color: "#" + icon.Str("color"),
	}
}

func (s *Service) resolveLocalized(loc dataset.Localized) dataset.Localized {
	return dataset.Localized{
		TW: s.resolver.Resolve(loc.TW),
		CN: s.resolver.Resolve(loc.CN),
		KR: s.resolver.Resolve(loc.KR),
		EN: s.resolver.Resolve(loc.EN),
	}
}

// supportPartnerEffect 计算辅助伙伴效果：按角色的职业与最高品阶找到
// 对应的伙伴增益行，把增益数值按模板占位符顺序填进文案。
func (s *Service) supportPartnerEffect(hero dataset.Record) (dataset.Localized, bool) {
	subClass := hero.Int("sub_class_sno")
	maxGrade := hero.Int("max_grade_sno")
	if subClass == 0 || maxGrade == 0 {
		return dataset.Localized{}, false
	}

	buff, ok := s.store.Table("world_raid_partner_buff").First(func(rec dataset.Record) bool {
		return rec.Int("sub_class") == subClass && rec.Int("grade") == maxGrade
	})
	if !ok {
		return dataset.Localized{}, false
	}
	buffSno := buff.Int("buff_sno")
	buffNo := buff.Int("buff_no")
	if buffSno == 0 || buffNo == 0 {
		return dataset.Localized{}, false
	}

	values := s.buffValues(buffNo)
	loc := s.store.UIString(buffSno)
	if loc.TW == "" && loc.KR == "" {
		return dataset.Localized{}, false
	}

	// 占位符名字以繁中模板为准，四个语言逐个做同样的替换
	placeholders := buffPlaceholderRe.FindAllString(loc.TW, -1)
	for i, v := range values {
		if i >= len(placeholders) {
			break
		}
		text := strconv.FormatInt(v, 10)
		loc.TW = strings.ReplaceAll(loc.TW, placeholders[i], text)
		loc.CN = strings.ReplaceAll(loc.CN, placeholders[i], text)
		loc.KR = strings.ReplaceAll(loc.KR, placeholders[i], text)
		loc.EN = strings.ReplaceAll(loc.EN, placeholders[i], text)
	}
	return loc, true
}

// buffValues 按字段在数据行中的出现顺序收集非零数值。
// 不超过50的按百分比放大一百倍，其余取整。
func (s *Service) buffValues(buffNo int64) []int64 {
	var values []int64
	buff, ok := s.store.Table("contents_buff").Get(buffNo)
	if !ok {
		return nil
	}
	for _, key := range buff.Keys() {
		if key == "no" || !buff.IsNumber(key) {
			continue
		}
		v := buff.Float(key)
		if v == 0 {
			continue
		}
		if v <= 50 {
			values = append(values, int64(v*100))
		} else {
			values = append(values, int64(v))
		}
	}
	return values
}

// GetSignatureInfo 组装一个角色的遗物展示数据
func (s *Service) GetSignatureInfo(heroID int64) (Signature, bool) {
	row, ok := s.store.Table("signature").First(func(rec dataset.Record) bool {
		return rec.Int("hero_sno") == heroID
	})
	if !ok {
		return Signature{}, false
	}

	sig := Signature{
		Name:      s.store.SkillString(row.Int("signature_name_sno")),
		SkillName: s.store.SkillString(row.Int("skill_name_sno")),
		Desc: dataset.Localized{
			TW: "无遗物简介信息",
			CN: "无遗物简介信息",
			KR: "유물 프로필 정보 없음",
			EN: "No signature description information",
		},
	}
	if bg := row.Str("signature_bg_path"); bg != "" {
		sig.BGPath = fmt.Sprintf("Img_Signature_%s.png", bg)
	}

	desc := s.store.SkillString(row.Int("tooltip_explain_sno"))
	if strings.TrimSpace(desc.TW) != "" {
		sig.Desc.TW = desc.TW
	}
	if strings.TrimSpace(desc.CN) != "" {
		sig.Desc.CN = desc.CN
	}
	if strings.TrimSpace(desc.KR) != "" {
		sig.Desc.KR = desc.KR
	}
	if strings.TrimSpace(desc.EN) != "" {
		sig.Desc.EN = desc.EN
	}

	for i := 1; i <= 7; i++ {
		key := fmt.Sprintf("skill_tooltip_sno%d", i)
		if !row.Has(key) {
			continue
		}
		sig.Descs = append(sig.Descs, s.resolveLocalized(s.store.SkillString(row.Int(key))))
	}

	if group := row.Int("level_group"); group != 0 {
		sig.Stats, sig.MaxLevel = s.signatureStats(group)
	}
	return sig, true
}

// signatureStats 取遗物等级组内最高等级行，按固定属性顺序渲染非零项
func (s *Service) signatureStats(levelGroup int64) ([]string, int64) {
	rows := s.store.Table("signature_level").Select(func(rec dataset.Record) bool {
		return rec.Int("group") == levelGroup
	})
	if len(rows) == 0 {
		return nil, 0
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Int("signature_level_") < rows[j].Int("signature_level_")
	})
	top := rows[len(rows)-1]
	maxLevel := top.Int("signature_level_")

	var stats []string
	for _, stat := range signatureStats {
		if !top.Has(stat.key) {
			continue
		}
		v := top.Float(stat.key)
		if v == 0 {
			continue
		}
		if stat.key == "hit" || stat.key == "dodge" {
			stats = append(stats, fmt.Sprintf("%s：%d", stat.name, int64(v)))
			continue
		}
		percent := math.RoundToEven(v*100*10) / 10
		text := strconv.FormatFloat(percent, 'f', 1, 64)
		if strings.HasSuffix(text, ".0") {
			stats = append(stats, fmt.Sprintf("%s：%d%%", stat.name, int64(percent)))
		} else {
			stats = append(stats, fmt.Sprintf("%s：%s%%", stat.name, text))
		}
	}
	return stats, maxLevel
}
