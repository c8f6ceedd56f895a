package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rikka-qwq/eversoul-info-backend/internal/dataset"
)

func heroRecord(t *testing.T, src string) dataset.Record {
	t.Helper()
	tbl, err := dataset.NewTableFromJSON("hero", `{"json":[`+src+`]}`)
	require.NoError(t, err)
	rec, ok := tbl.Get(1)
	require.True(t, ok)
	return rec
}

func TestGetSkillInfoRegular(t *testing.T) {
	store := testStore(t, map[string]string{
		"skill": `{"json":[
			{"no":70,"name_sno":900,"tooltip_sno":901,"icon_prefab":3,"level":1},
			{"no":70,"name_sno":900,"tooltip_sno":902,"hero_level":41,"level":2}
		]}`,
		"skill_icon":   `{"json":[{"no":3,"icon":"Icon_Fire","color":"ff3300"}]}`,
		"string_skill": `{"json":[{"no":900,"zh_tw":"烈焰","zh_cn":"烈焰"},{"no":901,"zh_tw":"造成<10.VALUE>伤害"},{"no":902,"zh_tw":"造成<11.VALUE>伤害"}]}`,
		"skill_code":   `{"json":[{"no":10,"value":0.3},{"no":11,"value":0.45}]}`,
		"skill_buff":   `{"json":[]}`,
	})
	s := NewService(store)

	info, ok := s.GetSkillInfo(70, false, dataset.Record{})
	require.True(t, ok)
	assert.Equal(t, "烈焰", info.Name.TW)
	require.NotNil(t, info.Icon)
	assert.Equal(t, "Icon_Fire", info.Icon.Icon)
	assert.Equal(t, "#ff3300", info.Icon.Color)

	require.Len(t, info.Descriptions, 2)
	assert.Equal(t, "造成30%伤害", info.Descriptions[0].Text.TW)
	assert.Equal(t, int64(1), info.Descriptions[0].HeroLevel) // 未标注解锁等级时默认1
	assert.Equal(t, "造成45%伤害", info.Descriptions[1].Text.TW)
	assert.Equal(t, int64(41), info.Descriptions[1].HeroLevel)
}

func TestGetSkillInfoSubChangeIcon(t *testing.T) {
	store := testStore(t, map[string]string{
		"skill":        `{"json":[{"no":70,"name_sno":900,"icon_prefab":14,"tooltip_sno":901}]}`,
		"string_skill": `{"json":[{"no":900,"zh_tw":"变身"},{"no":901,"zh_tw":"变身说明"}]}`,
		"skill_code":   `{"json":[]}`,
		"skill_buff":   `{"json":[]}`,
	})

	info, ok := NewService(store).GetSkillInfo(70, false, dataset.Record{})
	require.True(t, ok)
	require.NotNil(t, info.Icon)
	assert.Equal(t, "Icon_Sub_Change", info.Icon.Icon)
	assert.Equal(t, "#e168eb", info.Icon.Color)
}

func TestGetSkillInfoSupport(t *testing.T) {
	store := testStore(t, map[string]string{
		"skill": `{"json":[
			{"no":80,"name_sno":910,"tooltip_sno":911,"level":1},
			{"no":80,"name_sno":910,"tooltip_sno":912,"level":3}
		]}`,
		"string_skill": `{"json":[{"no":910,"zh_tw":"援护"},{"no":911,"zh_tw":"低级效果"},{"no":912,"zh_tw":"最高级效果"}]}`,
		"skill_code":   `{"json":[]}`,
		"skill_buff":   `{"json":[]}`,
		"world_raid_partner_buff": `{"json":[{"sub_class":210002,"grade":110016,"buff_sno":920,"buff_no":30}]}`,
		"contents_buff": `{"json":[{"no":30,"attack_rate":0.18,"max_hp":0,"hit":120}]}`,
		"string_ui":     `{"json":[{"no":920,"zh_tw":"攻击+{0}%，命中+{1}","zh_cn":"攻击+{0}%，命中+{1}"}]}`,
	})
	hero := heroRecord(t, `{"no":1,"hero_id":5,"sub_class_sno":210002,"max_grade_sno":110016}`)

	info, ok := NewService(store).GetSkillInfo(80, true, hero)
	require.True(t, ok)
	assert.True(t, info.IsSupport)

	// 主要伙伴效果取最高等级行
	require.Len(t, info.MainEffects, 1)
	assert.Equal(t, "最高级效果", info.MainEffects[0].TW)

	// 不超过50的数值按百分比放大，其余取整；零值字段跳过
	require.Len(t, info.SupportEffects, 1)
	assert.Equal(t, "攻击+18%，命中+120", info.SupportEffects[0].TW)
	assert.Equal(t, "攻击+18%，命中+120", info.SupportEffects[0].CN)
}

func TestGetSignatureInfo(t *testing.T) {
	store := testStore(t, map[string]string{
		"signature": `{"json":[{
			"no":1,"hero_sno":5,"signature_name_sno":930,"skill_name_sno":931,
			"tooltip_explain_sno":932,"signature_bg_path":"Mephi","level_group":40,
			"skill_tooltip_sno1":933,"skill_tooltip_sno2":934
		}]}`,
		"string_skill": `{"json":[
			{"no":930,"zh_tw":"魔典"},
			{"no":931,"zh_tw":"禁书解放"},
			{"no":932,"zh_tw":"  "},
			{"no":933,"zh_tw":"一级效果"},
			{"no":934,"zh_tw":"二级效果"}
		]}`,
		"signature_level": `{"json":[
			{"no":1,"group":40,"signature_level_":1,"attack_rate":0.05},
			{"no":2,"group":40,"signature_level_":40,"attack_rate":0.295,"hit":80,"critical_rate":0.12,"dodge":0}
		]}`,
		"skill_code": `{"json":[]}`,
		"skill_buff": `{"json":[]}`,
	})

	sig, ok := NewService(store).GetSignatureInfo(5)
	require.True(t, ok)
	assert.Equal(t, "魔典", sig.Name.TW)
	assert.Equal(t, "禁书解放", sig.SkillName.TW)
	// 空白简介回退到默认文案
	assert.Equal(t, "无遗物简介信息", sig.Desc.TW)
	assert.Equal(t, "유물 프로필 정보 없음", sig.Desc.KR)
	assert.Equal(t, "Img_Signature_Mephi.png", sig.BGPath)

	require.Len(t, sig.Descs, 2)
	assert.Equal(t, "一级效果", sig.Descs[0].TW)

	assert.Equal(t, int64(40), sig.MaxLevel)
	// 百分比字段按十分位凑整，整数值去掉小数；hit按原值输出
	assert.Equal(t, []string{"攻击力：29.5%", "暴击率：12%", "命中：80"}, sig.Stats)
}

func TestGetSignatureInfoMissing(t *testing.T) {
	store := testStore(t, map[string]string{
		"signature":  `{"json":[]}`,
		"skill_code": `{"json":[]}`,
		"skill_buff": `{"json":[]}`,
	})
	_, ok := NewService(store).GetSignatureInfo(5)
	assert.False(t, ok)
}
