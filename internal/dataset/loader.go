package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
)

// tableFiles 把逻辑表名映射到数据集目录下的文件名。
// 文件名是磁盘上的契约，必须与游戏数据导出保持一致。
var tableFiles = map[string]string{
	"hero":                    "Hero.json",                   // 角色
	"hero_option":             "HeroOption.json",             // 角色潜能
	"string_char":             "StringCharacter.json",        // 角色文本
	"string_system":           "StringSystem.json",           // 系统文本
	"skill":                   "Skill.json",                  // 技能
	"string_skill":            "StringSkill.json",            // 技能文本
	"skill_code":              "SkillCode.json",              // 技能代码
	"skill_buff":              "SkillBuff.json",              // 技能效果
	"skill_icon":              "SkillIcon.json",              // 技能图标
	"signature":               "Signature.json",              // 遗物
	"hero_desc":               "HeroDesc.json",               // 角色描述
	"signature_level":         "SignatureLevel.json",         // 遗物等级
	"story_info":              "StoryInfo.json",              // 故事信息
	"talk":                    "Talk.json",                   // 对话
	"string_talk":             "StringTalk.json",             // 对话文本
	"item_costume":            "ItemCostume.json",            // 时装
	"item":                    "Item.json",                   // 物品
	"item_stat":               "ItemStat.json",               // 物品属性
	"string_item":             "StringItem.json",             // 物品文本
	"illust":                  "Illust.json",                 // 插画
	"item_drop_group":         "ItemDropGroup.json",          // 掉落组
	"item_set_effect":         "ItemSetEffect.json",          // 套装效果
	"stage":                   "Stage.json",                  // 关卡
	"stage_battle":            "StageBattle.json",            // 关卡战斗
	"formation":               "Formation.json",              // 队伍
	"message_mail":            "MessageMail.json",            // 邮件
	"level":                   "Level.json",                  // 等级
	"ark_enhance":             "ArkEnhance.json",             // 方舟强化
	"ark_overclock":           "ArkOverClock.json",           // 超频
	"promotion_movie":         "PromotionMovie.json",         // 宣传片
	"localization_schedule":   "LocalizationSchedule.json",   // 活动日历
	"event_calender":          "EventCalender.json",          // 活动日历
	"string_ui":               "StringUI.json",               // UI文本
	"eden_alliance":           "EdenAlliance.json",           // 联合作战
	"stage_equip":             "StageEquip.json",             // 关卡装备
	"string_stage":            "StringStage.json",            // 关卡文本
	"cash_shop_item":          "CashShopItem.json",           // 商店物品
	"string_cashshop":         "StringCashshop.json",         // 商店文本
	"barrier":                 "Barrier.json",                // 传送门
	"trip_hero":               "TripHero.json",               // 角色关键字归属
	"trip_keyword":            "TripKeyword.json",            // 关键字定义
	"key_values":              "KeyValues.json",              // 键值参数
	"town_location":           "TownLocation.json",           // 地点
	"town_object":             "TownObjet.json",              // 专属领地物品
	"string_town":             "StringTown.json",             // 地点文本
	"town_lost_item":          "TownLostItem.json",           // 遗失物品
	"tower":                   "Tower.json",                  // 起源塔
	"contents_buff":           "ContentsBuff.json",           // buff数值
	"world_raid_partner_buff": "WorldRaidPartnerBuff.json",   // 支援伙伴buff
	"arbeit_choice":           "ArbeitChoice.json",           // 打工任务选择
	"arbeit_list":             "ArbeitList.json",             // 打工任务列表
}

// Load 从数据集目录一次性加载全部数据表。
// 任何一个文件缺失或损坏都会使整次加载失败，不产生部分结果。
func Load(dir string) (*Store, error) {
	tables := make(map[string]*Table, len(tableFiles))
	for name, file := range tableFiles {
		path := filepath.Join(dir, file)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("无法读取数据表文件 %s: %w", file, err)
		}
		if !gjson.ValidBytes(data) {
			return nil, fmt.Errorf("数据表文件 %s 不是合法的JSON", file)
		}
		table, err := newTable(name, gjson.ParseBytes(data))
		if err != nil {
			return nil, fmt.Errorf("解析数据表文件 %s 失败: %w", file, err)
		}
		tables[name] = table
	}
	return NewStore(tables), nil
}
