// Package stage 组装主线关卡信息与等级升级消耗统计。
package stage

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/rikka-qwq/eversoul-info-backend/internal/dataset"
	"github.com/rikka-qwq/eversoul-info-backend/pkg/numfmt"
)

// formationNames 把阵型编号映射到显示名
var formationNames = map[int64]string{
	1: "基本阵型",
	2: "狙击型",
	3: "防守阵型",
	4: "突击型",
}

// packageTypeNames 把商店物品的type字段映射到礼包显示名
var packageTypeNames = map[string]string{
	"barrier":       "通关礼包",
	"stage":         "主线礼包",
	"tower":         "起源之塔礼包",
	"grade_eternal": "角色升阶礼包",
}

// Service 在一个数据集快照上组装关卡与等级数据
type Service struct {
	store *dataset.Store
}

// NewService 创建关卡服务
func NewService(store *dataset.Store) *Service {
	return &Service{store: store}
}

// StageInfo 组装主线关卡的信息段落。带exp字段的行才是主线关卡，
// 同一章节-关卡编号的其他玩法行不参与。
func (s *Service) StageInfo(areaNo, stageNo int64) ([]string, error) {
	row, ok := s.store.Table("stage").First(func(rec dataset.Record) bool {
		return rec.Int("area_no") == areaNo && rec.Int("stage_no") == stageNo && rec.Has("exp")
	})
	if !ok {
		return nil, fmt.Errorf("未找到关卡 %d-%d 的信息", areaNo, stageNo)
	}

	var messages []string
	basic := []string{
		fmt.Sprintf("关卡 %d-%d 信息：", areaNo, stageNo),
		fmt.Sprintf("关卡类型：%s", s.store.SystemString(row.Int("level_type")).TWOr("未知类型")),
		fmt.Sprintf("经验值：%d", row.Int("exp")),
	}
	messages = append(messages, strings.Join(basic, "\n"))

	for i := 1; i <= 4; i++ {
		itemNo := row.Int(fmt.Sprintf("item_no%d", i))
		if itemNo == 0 {
			continue
		}
		messages = append(messages, fmt.Sprintf("固定掉落物品%d：\n%s x%d",
			i, s.itemName(itemNo), row.Int(fmt.Sprintf("amount%d", i))))
	}

	messages = append(messages, s.cashPacks("stage", row.Int("no"))...)
	messages = append(messages, s.battleTeams(row.Int("no"))...)
	return messages, nil
}

// cashPacks 渲染与关卡绑定的突发礼包，每个礼包一条消息。
// type_value在数据中是字符串编号。
func (s *Service) cashPacks(itemType string, gateNo int64) []string {
	typeName, ok := packageTypeNames[itemType]
	if !ok {
		typeName = "特殊礼包"
	}
	gateValue := strconv.FormatInt(gateNo, 10)

	var messages []string
	for shop := range s.store.Table("cash_shop_item").Scan(func(rec dataset.Record) bool {
		return rec.Str("type") == itemType && rec.Str("type_value") == gateValue
	}) {
		lines := []string{
			fmt.Sprintf("\n【%s】", typeName),
			"▼ " + strings.Repeat("-", 20),
		}

		limitBuy := strconv.FormatInt(shop.Int("limit_buy"), 10)
		limitDesc := s.store.UIString(shop.Int("desc_sno")).TW
		limitDesc = strings.NewReplacer("{0}", limitBuy, "{}", limitBuy).Replace(limitDesc)

		basic := []string{
			fmt.Sprintf("礼包名称：%s", s.store.CashShopString(shop.Int("name_sno")).TWOr("未知礼包")),
		}
		if desc := s.store.CashShopString(shop.Int("item_info_sno")).TW; desc != "" {
			basic = append(basic, fmt.Sprintf("礼包描述：%s", desc))
		}
		basic = append(basic,
			fmt.Sprintf("购买限制：%s", limitDesc),
			fmt.Sprintf("剩余时间：%d小时", shop.Int("limit_hour")),
		)
		lines = append(lines, strings.Join(basic, "\n"))

		// 礼包内容编码为嵌套数组字符串，形如 [[物品编号, 数量], ...]
		if raw := shop.Str("item_infos"); raw != "" {
			if parsed := gjson.Parse(raw); parsed.IsArray() {
				content := []string{"\n礼包内容："}
				for _, pair := range parsed.Array() {
					entry := pair.Array()
					if len(entry) < 2 {
						continue
					}
					content = append(content, fmt.Sprintf("· %s x%d",
						s.itemName(entry[0].Int()), entry[1].Int()))
				}
				lines = append(lines, strings.Join(content, "\n"))
			}
		}

		price := []string{"\n价格信息："}
		if v := shop.Int("price_krw"); v != 0 {
			price = append(price, fmt.Sprintf("· %d韩元", v))
		}
		if v := shop.Int("price_other"); v != 0 {
			price = append(price, fmt.Sprintf("· %d日元", v))
		}
		lines = append(lines, strings.Join(price, "\n"))
		lines = append(lines, strings.Repeat("-", 25))

		messages = append(messages, strings.Join(lines, "\n"))
	}
	return messages
}

func (s *Service) itemName(itemNo int64) string {
	item, ok := s.store.Table("item").Get(itemNo)
	if !ok {
		return "未知物品"
	}
	return s.store.ItemString(item.Int("name_sno")).TWOr("未知物品")
}

func (s *Service) battleTeams(stageNo int64) []string {
	teams := s.store.Table("stage_battle").Select(func(rec dataset.Record) bool {
		return rec.Int("no") == stageNo
	})
	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].Int("team_no") < teams[j].Int("team_no")
	})

	var messages []string
	for _, team := range teams {
		lines := []string{
			fmt.Sprintf("\n敌方队伍 %d：", team.Int("team_no")),
			fmt.Sprintf("阵型：%s", s.formationName(team.Int("formation_type"))),
		}
		for i := 1; i <= 5; i++ {
			heroNo := team.Int(fmt.Sprintf("hero_no%d", i))
			if heroNo == 0 {
				continue
			}
			lines = append(lines, fmt.Sprintf("位置%d：%s %s %d级",
				i,
				s.heroName(heroNo),
				s.store.SystemString(team.Int(fmt.Sprintf("hero_grade%d", i))).TWOr("未知阶级"),
				team.Int(fmt.Sprintf("level%d", i)),
			))
		}
		messages = append(messages, strings.Join(lines, "\n"))
	}
	return messages
}

func (s *Service) formationName(formationType int64) string {
	if name, ok := formationNames[formationType]; ok {
		return name
	}
	return "未知阵型"
}

func (s *Service) heroName(heroNo int64) string {
	hero, ok := s.store.Table("hero").Get(heroNo)
	if !ok {
		return "未知角色"
	}
	return s.store.CharString(hero.Int("name_sno")).TWOr("未知角色")
}

// LevelCost 统计升到目标等级的累计消耗和下一级的增量消耗。
// 超过最大等级的目标按最大等级算。
func (s *Service) LevelCost(targetLevel int64) ([]string, error) {
	levels := s.store.Table("level")

	var maxLevel int64
	for rec := range levels.Scan(func(rec dataset.Record) bool { return true }) {
		if l := rec.Int("level_"); l > maxLevel {
			maxLevel = l
		}
	}
	if maxLevel == 0 {
		return nil, fmt.Errorf("等级数据为空")
	}
	if targetLevel > maxLevel {
		targetLevel = maxLevel
	}

	current, ok := levels.First(func(rec dataset.Record) bool {
		return rec.Int("level_") == targetLevel
	})
	if !ok {
		return nil, fmt.Errorf("未找到等级 %d 的数据", targetLevel)
	}
	next, hasNext := levels.First(func(rec dataset.Record) bool {
		return rec.Int("level_") == targetLevel+1
	})

	header := fmt.Sprintf("等级 %d 升级消耗统计：\n", targetLevel)
	if targetLevel == maxLevel {
		header = fmt.Sprintf("等级 %d (最大等级) 升级消耗统计：\n", targetLevel)
	}

	messages := []string{
		header,
		"【累计消耗】",
		fmt.Sprintf("金币：%s", numfmt.ScaleLarge(current.Float("sum_gold"))),
		fmt.Sprintf("魔力粉尘：%s", numfmt.ScaleLarge(current.Float("sum_mana_dust"))),
	}
	if current.Has("sum_mana_crystal") {
		messages = append(messages, fmt.Sprintf("魔力水晶：%s", numfmt.ScaleLarge(current.Float("sum_mana_crystal"))))
	}

	if hasNext {
		messages = append(messages,
			fmt.Sprintf("\n【升级到 %d 级需要】", targetLevel+1),
			fmt.Sprintf("金币：%s", numfmt.ScaleLarge(next.Float("gold"))),
			fmt.Sprintf("魔力粉尘：%s", numfmt.ScaleLarge(next.Float("mana_dust"))),
		)
		if next.Has("mana_crystal") {
			messages = append(messages, fmt.Sprintf("魔力水晶：%s", numfmt.ScaleLarge(next.Float("mana_crystal"))))
		}
	}
	return messages, nil
}
