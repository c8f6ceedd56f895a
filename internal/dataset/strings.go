package dataset

// Localized 是一条多语言文本，字段顺序与字符串表的语言列对应
type Localized struct {
	TW string
	CN string
	KR string
	EN string
}

// TWOr 返回繁中文本，为空时返回给定的占位文本
func (l Localized) TWOr(fallback string) string {
	if l.TW == "" {
		return fallback
	}
	return l.TW
}

// localized 在一张字符串表中按编号取多语言文本
func (s *Store) localized(table string, no int64) Localized {
	rec, ok := s.Get(table, no)
	if !ok {
		return Localized{}
	}
	return Localized{
		TW: rec.Str("zh_tw"),
		CN: rec.Str("zh_cn"),
		KR: rec.Str("kr"),
		EN: rec.Str("en"),
	}
}

// CharString 取角色文本（StringCharacter）
func (s *Store) CharString(no int64) Localized { return s.localized("string_char", no) }

// SystemString 取系统文本（StringSystem）
func (s *Store) SystemString(no int64) Localized { return s.localized("string_system", no) }

// SkillString 取技能文本（StringSkill）
func (s *Store) SkillString(no int64) Localized { return s.localized("string_skill", no) }

// TalkString 取对话文本（StringTalk）
func (s *Store) TalkString(no int64) Localized { return s.localized("string_talk", no) }

// UIString 取UI文本（StringUI）
func (s *Store) UIString(no int64) Localized { return s.localized("string_ui", no) }

// TownString 取地点文本（StringTown）
func (s *Store) TownString(no int64) Localized { return s.localized("string_town", no) }

// ItemString 取物品文本（StringItem）
func (s *Store) ItemString(no int64) Localized { return s.localized("string_item", no) }

// CashShopString 取商城文本（StringCashshop）
func (s *Store) CashShopString(no int64) Localized { return s.localized("string_cashshop", no) }
