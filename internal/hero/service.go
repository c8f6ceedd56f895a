// Package hero 组装角色档案：基础资料、好感故事攻略、关键字、
// 属性、技能与遗物，输出为一组可直接展示的文本段落。
package hero

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rikka-qwq/eversoul-info-backend/internal/alias"
	"github.com/rikka-qwq/eversoul-info-backend/internal/dataset"
	"github.com/rikka-qwq/eversoul-info-backend/internal/skill"
	"github.com/rikka-qwq/eversoul-info-backend/internal/story"
	"github.com/rikka-qwq/eversoul-info-backend/internal/unlock"
)

// 关键字稀有度编号，决定好感度加成档位
const (
	keywordGradeRare = 110012
	keywordGradeEpic = 110014
)

// 未实装角色在宣传片表中的占位日期
const placeholderReleaseDate = "2999-12-31"

// Service 在一个数据集快照上组装角色档案
type Service struct {
	store     *dataset.Store
	aliases   *alias.Index
	skills    *skill.Service
	unlocks   *unlock.Resolver
	assetsDir string
}

// NewService 创建角色服务。assetsDir 为空时不输出任何素材路径。
func NewService(b *dataset.Bundle, assetsDir string) *Service {
	return &Service{
		store:     b.Store,
		aliases:   b.Aliases,
		skills:    skill.NewService(b.Store),
		unlocks:   unlock.NewResolver(b.Store),
		assetsDir: assetsDir,
	}
}

// Resolve 把用户输入解析为角色ID：先精确匹配，再做模糊匹配
func (s *Service) Resolve(name string) (int64, bool) {
	if id, ok := s.aliases.ResolveExact(name); ok {
		return id, true
	}
	return s.aliases.ResolveFuzzy(name)
}

// SuggestMessage 为解析失败的输入生成"您是否想查询"提示。
// 没有任何相近候选时返回简单的未找到提示。
func (s *Service) SuggestMessage(name string) string {
	suggestions := s.aliases.Suggest(name)
	if len(suggestions) == 0 {
		return fmt.Sprintf("未找到角色 %s", name)
	}
	parts := []string{fmt.Sprintf("未找到角色 %s\n您是否想查询：", name)}
	for _, sug := range suggestions {
		line := "・" + sug.Primary
		if len(sug.Aliases) > 0 {
			line += fmt.Sprintf("（别名：%s）", strings.Join(sug.Aliases, ", "))
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, "\n")
}

// Profile 组装角色的完整档案段落
func (s *Service) Profile(heroID int64) ([]string, error) {
	heroRow, ok := s.store.Table("hero").First(func(rec dataset.Record) bool {
		return rec.Int("hero_id") == heroID
	})
	if !ok {
		return nil, fmt.Errorf("未找到角色信息: hero_id=%d", heroID)
	}
	desc, hasDesc := s.store.Table("hero_desc").First(func(rec dataset.Record) bool {
		return rec.Int("hero_no") == heroID
	})

	var messages []string
	messages = append(messages, s.basicInfo(heroID, heroRow, desc, hasDesc))

	if has, episodes, endings := story.Discover(s.store, heroID); has {
		messages = append(messages, story.Transcript(episodes, endings))
	} else {
		messages = append(messages, "无好感故事选项攻略")
	}

	messages = append(messages, "【角色关键字】")
	if section := s.keywordSection(heroID); section != "" {
		messages = append(messages, section)
	}

	if section, ok := s.townObjectSection(heroID); ok {
		messages = append(messages, section)
	}

	messages = append(messages, s.statsInfo(heroRow))
	messages = append(messages, s.skillSections(heroRow)...)
	if section, ok := s.signatureSection(heroID); ok {
		messages = append(messages, section)
	}
	return messages, nil
}

func (s *Service) basicInfo(heroID int64, heroRow, desc dataset.Record, hasDesc bool) string {
	name := s.store.CharString(heroRow.Int("name_sno"))

	nickname := "無稱號"
	if hasDesc {
		if n := s.store.CharString(desc.Int("nick_name_sno")).TW; n != "" {
			nickname = n
		}
	}

	descString := func(key string) string {
		if !hasDesc {
			return "???"
		}
		return s.store.CharString(desc.Int(key)).TW
	}
	descRaw := func(key string) string {
		if !hasDesc {
			return "???"
		}
		if v := desc.Str(key); v != "" {
			return v
		}
		return "???"
	}

	birthdayHead, birthdayTail := "???", "???"
	if hasDesc {
		if raw := desc.Str("birthday"); len(raw) > 2 {
			birthdayHead, birthdayTail = raw[:2], raw[2:]
		} else {
			birthdayHead = "??"
		}
	}

	var lines []string
	if portrait := s.portraitPath(heroID, name.EN); portrait != "" {
		lines = append(lines, portrait)
	}
	lines = append(lines, fmt.Sprintf(`
%s
%s
類型：%s %s
攻擊方式：%s
屬性：%s
品質：%s
隸屬：%s
身高：%scm
體重：%skg
生日：%s.%s
星座：%s
興趣：%s
特殊專長：%s
喜歡的東西：%s
討厭的東西：%s
CV：%s
CV_JP：%s
%s`,
		nickname,
		name.TW,
		s.store.SystemString(heroRow.Int("race_sno")).TW,
		s.store.SystemString(heroRow.Int("class_sno")).TW,
		s.store.SystemString(heroRow.Int("sub_class_sno")).TW,
		s.store.SystemString(heroRow.Int("stat_sno")).TW,
		s.store.SystemString(heroRow.Int("grade_sno")).TW,
		descString("union_sno"),
		descRaw("height"),
		descRaw("weight"),
		birthdayHead,
		birthdayTail,
		descString("constellation_sno"),
		descString("hobby_sno"),
		descString("speciality_sno"),
		descString("like_sno"),
		descString("dislike_sno"),
		descString("cv_sno"),
		descString("cv_jp_sno"),
		s.releaseDateInfo(heroID),
	))
	return strings.Join(lines, "\n")
}

// portraitPath 返回角色立绘文件路径，文件不存在时返回空串
func (s *Service) portraitPath(heroID int64, enName string) string {
	if s.assetsDir == "" || enName == "" {
		return ""
	}
	path := filepath.Join(s.assetsDir, "hero", fmt.Sprintf("%s_512.png", enName))
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// releaseDateInfo 从宣传片表取实装日期，占位日期视为未实装
func (s *Service) releaseDateInfo(heroID int64) string {
	for rec := range s.store.Table("promotion_movie").Scan(func(rec dataset.Record) bool {
		return rec.Int("hero_check") == heroID
	}) {
		date := rec.Str("start_date")
		if i := strings.IndexByte(date, ' '); i >= 0 {
			date = date[:i]
		}
		if date != "" && date != placeholderReleaseDate {
			return fmt.Sprintf("实装日期：%s", date)
		}
	}
	return "实装日期：2023-01-05"
}

// tripKeyword 是一条已归类的角色关键字
type tripKeyword struct {
	name     string
	grade    string
	kind     string // bad / good / normal
	points   int64
	source   string
	location string
}

// keywordSection 渲染"讨厌的话题"和"喜欢的话题"两组关键字。
// 普通类型的关键字不展示。
func (s *Service) keywordSection(heroID int64) string {
	var bad, good []tripKeyword
	for trip := range s.store.Table("trip_hero").Scan(func(rec dataset.Record) bool {
		return rec.Int("hero_no") == heroID
	}) {
		keyword, ok := s.store.Table("trip_keyword").Get(trip.Int("keyword_no"))
		if !ok {
			continue
		}
		kind := "normal"
		switch trip.Int("favor_point") {
		case 0:
			kind = "bad"
		case 2:
			kind = "good"
		}
		k := tripKeyword{
			name:     s.store.UIString(keyword.Int("keyword_string")).TWOr("未知"),
			grade:    s.store.SystemString(keyword.Int("keyword_grade")).TWOr("未知"),
			kind:     kind,
			points:   s.keywordPoints(kind, keyword.Int("keyword_grade")),
			location: s.keywordLocation(keyword.Int("keyword_get_details")),
			source: s.unlocks.Resolve(unlock.Query{
				SourceSno:   keyword.Int("keyword_source"),
				Details:     keyword.Int("keyword_get_details"),
				HeroNo:      heroID,
				KeywordType: keyword.Int("keyword_type"),
			}),
		}
		switch kind {
		case "bad":
			bad = append(bad, k)
		case "good":
			good = append(good, k)
		}
	}
	if len(bad) == 0 && len(good) == 0 {
		return ""
	}

	render := func(k tripKeyword, withSource bool) string {
		msg := fmt.Sprintf("・%s（%s，好感度 +%d）", k.name, k.grade, k.points)
		msg += fmt.Sprintf("\n  地点：%s", k.location)
		if withSource && k.source != "" {
			msg += fmt.Sprintf("\n  获取条件：%s", k.source)
		}
		return msg
	}

	var lines []string
	if len(bad) > 0 {
		lines = append(lines, "▼ 讨厌的话题")
		for _, k := range bad {
			lines = append(lines, render(k, false))
		}
	}
	if len(good) > 0 {
		if len(bad) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, "▼ 喜欢的话题")

		var unlocked, locked []tripKeyword
		for _, k := range good {
			if k.source == "" {
				unlocked = append(unlocked, k)
			} else {
				locked = append(locked, k)
			}
		}
		for _, k := range unlocked {
			lines = append(lines, render(k, false))
		}
		if len(unlocked) > 0 && len(locked) > 0 {
			lines = append(lines, strings.Repeat("-", 30))
		}
		for _, k := range locked {
			lines = append(lines, render(k, true))
		}
	}
	return strings.Join(lines, "\n")
}

// keywordPoints 按关键字类型与稀有度取好感度加成档位
func (s *Service) keywordPoints(kind string, gradeSno int64) int64 {
	keyName := "TRIP_KEYWORD_GRADE_POINT"
	switch kind {
	case "bad":
		keyName = "TRIP_KEYWORD_GRADE_POINT_BAD"
	case "good":
		keyName = "TRIP_KEYWORD_GRADE_POINT_GOOD"
	}
	points := []int64{20, 40, 60}
	if kv, ok := s.store.Table("key_values").First(func(rec dataset.Record) bool {
		return rec.Str("key_name") == keyName
	}); ok {
		if values := kv.IntList("values_data"); len(values) == len(points) {
			points = values
		}
	}
	index := 0
	switch gradeSno {
	case keywordGradeRare:
		index = 1
	case keywordGradeEpic:
		index = 2
	}
	return points[index]
}

func (s *Service) keywordLocation(details int64) string {
	if details == 0 {
		return "通用"
	}
	location, ok := s.store.Table("town_location").Get(details)
	if !ok {
		return "通用"
	}
	return s.store.TownString(location.Int("location_name_sno")).TWOr("通用")
}

func (s *Service) statsInfo(heroRow dataset.Record) string {
	return fmt.Sprintf(`基础属性：
攻击力：%d (+%d/级)
防御力：%d (+%d/级)
生命值：%d (+%d/级)
暴击率：%.1f%% (+%.3f%%/级)
暴击威力：%.1f%% (+%.3f%%/级)`,
		heroRow.Int("attack"), heroRow.Int("inc_attack"),
		heroRow.Int("defence"), heroRow.Int("inc_defence"),
		heroRow.Int("max_hp"), heroRow.Int("inc_max_hp"),
		heroRow.Float("critical_rate")*100, heroRow.Float("inc_critical_rate")*100,
		heroRow.Float("critical_power")*100, heroRow.Float("inc_critical_power")*100,
	)
}

// 技能槽位字段，按展示顺序排列
var skillSlots = []string{
	"skill_no1", "skill_no2", "skill_no3", "skill_no4",
	"ultimate_skill_no", "support_skill_no",
}

func (s *Service) skillSections(heroRow dataset.Record) []string {
	var sections []string
	for _, slot := range skillSlots {
		skillNo := heroRow.Int(slot)
		if skillNo == 0 {
			continue
		}
		row, ok := s.store.Table("skill").First(func(rec dataset.Record) bool {
			return rec.Int("no") == skillNo
		})
		if !ok {
			continue
		}
		isSupport := slot == "support_skill_no"
		info, ok := s.skills.GetSkillInfo(skillNo, isSupport, heroRow)
		if !ok {
			continue
		}
		skillType := s.store.SystemString(row.Int("type")).TWOr("未知类型")
		sections = append(sections, s.renderSkill(skillType, info))
	}
	return sections
}

func (s *Service) renderSkill(skillType string, info skill.Info) string {
	var lines []string
	if !info.IsSupport {
		lines = append(lines, fmt.Sprintf("【%s】%s", skillType, info.Name.TW))
		for i, desc := range info.Descriptions {
			lines = append(lines, fmt.Sprintf("等级%d：%s（等级%d解锁）\n", i+1, desc.Text.TW, desc.HeroLevel))
		}
		return strings.Join(lines, "\n")
	}

	if len(info.MainEffects) > 0 {
		lines = append(lines, "▼ 主要伙伴效果")
		lines = append(lines, fmt.Sprintf("【%s】%s", skillType, info.Name.TW))
		for _, effect := range info.MainEffects {
			lines = append(lines, effect.TW)
		}
	}
	if len(info.SupportEffects) > 0 {
		lines = append(lines, "▼ 辅助伙伴效果")
		if len(info.MainEffects) == 0 {
			lines = append(lines, fmt.Sprintf("【%s】%s", skillType, info.Name.TW))
		}
		for _, effect := range info.SupportEffects {
			lines = append(lines, effect.TW)
		}
	}
	return strings.Join(lines, "\n")
}

func (s *Service) signatureSection(heroID int64) (string, bool) {
	sig, ok := s.skills.GetSignatureInfo(heroID)
	if !ok || sig.Name.TW == "" {
		return "", false
	}

	var lines []string
	if s.assetsDir != "" && sig.BGPath != "" {
		path := filepath.Join(s.assetsDir, "signature", sig.BGPath)
		if _, err := os.Stat(path); err == nil {
			lines = append(lines, path)
		}
	}

	var descs []string
	for i, desc := range sig.Descs {
		descs = append(descs, fmt.Sprintf("等級%d：%s", i+1, desc.TW))
	}
	lines = append(lines, fmt.Sprintf(`【%s】
%s

%d級屬性：
%s

遺物技能【%s】：
%s`,
		sig.Name.TW,
		sig.Desc.TW,
		sig.MaxLevel,
		strings.Join(sig.Stats, "\n"),
		sig.SkillName.TW,
		strings.Join(descs, "\n"),
	))
	return strings.Join(lines, "\n"), true
}

// List 按种族分组输出全部角色及其别名，每个种族一段
func (s *Service) List() []string {
	type category struct {
		race  string
		names []string
	}
	var categories []category
	index := make(map[string]int)

	for _, entry := range s.aliases.Entries() {
		if entry.ZhTW == "" {
			continue
		}
		heroRow, ok := s.store.Table("hero").First(func(rec dataset.Record) bool {
			return rec.Int("hero_id") == entry.HeroID
		})
		if !ok {
			continue
		}
		race := s.store.SystemString(heroRow.Int("race_sno")).TW
		if race == "" {
			continue
		}

		name := entry.ZhTW
		if len(entry.Names) > 0 {
			name += fmt.Sprintf("（%s）", strings.Join(entry.Names, ", "))
		}
		i, ok := index[race]
		if !ok {
			i = len(categories)
			index[race] = i
			categories = append(categories, category{race: race})
		}
		categories[i].names = append(categories[i].names, name)
	}

	var messages []string
	for _, c := range categories {
		if len(c.names) == 0 {
			continue
		}
		sort.Strings(c.names)
		lines := make([]string, 0, len(c.names)+1)
		lines = append(lines, fmt.Sprintf("【%s】", c.race))
		for _, n := range c.names {
			lines = append(lines, "· "+n)
		}
		messages = append(messages, strings.Join(lines, "\n"))
	}
	return messages
}
