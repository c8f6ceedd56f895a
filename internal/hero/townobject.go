package hero

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rikka-qwq/eversoul-info-backend/internal/dataset"
	"github.com/rikka-qwq/eversoul-info-backend/internal/skill"
)

// 打工任务的要求特性，按展示顺序排列
var arbeitTraits = []struct {
	key  string
	name string
}{
	{"conversation", "口才"},
	{"culture", "教养"},
	{"courage", "胆量"},
	{"knowledge", "知识"},
	{"guts", "毅力"},
	{"handicraft", "才艺"},
}

// townObject 是一件角色专属的领地物品
type townObject struct {
	no       int64
	name     string
	grade    string
	slotType string
	desc     string
	imgPath  string
}

// arbeitTask 是一条可在领地物品上进行的打工任务
type arbeitTask struct {
	name    string
	rarity  string
	hours   float64
	traits  []string
	stress  int64
	exp     int64
	rewards []string
}

// townObjectSection 渲染"专属领地物品"段落及每件物品可进行的打工任务。
// 角色没有专属物品时不输出该段落。
func (s *Service) townObjectSection(heroID int64) (string, bool) {
	objects := s.townObjects(heroID)
	if len(objects) == 0 {
		return "", false
	}

	lines := []string{"【专属领地物品】"}
	for _, obj := range objects {
		if obj.imgPath != "" {
			lines = append(lines, obj.imgPath)
		}
		lines = append(lines, fmt.Sprintf("名称：%s", obj.name))
		if obj.grade != "" {
			lines = append(lines, fmt.Sprintf("品质：%s", obj.grade))
		}
		if obj.slotType != "" {
			lines = append(lines, fmt.Sprintf("类型：%s", obj.slotType))
		}
		if obj.desc != "" {
			lines = append(lines, fmt.Sprintf("描述：%s", obj.desc))
		}

		if tasks := s.arbeitTasks(obj.no); len(tasks) > 0 {
			lines = append(lines, "\n可进行的打工：")
			for _, task := range tasks {
				lines = append(lines, fmt.Sprintf("▼ %s（%s）", task.name, task.rarity))
				lines = append(lines, fmt.Sprintf("所需时间：%s小时", formatHours(task.hours)))
				if len(task.traits) > 0 {
					lines = append(lines, fmt.Sprintf("要求特性：%s", strings.Join(task.traits, " ")))
				}
				lines = append(lines, fmt.Sprintf("疲劳度：%d", task.stress))
				lines = append(lines, fmt.Sprintf("打工经验：%d", task.exp))
				if len(task.rewards) > 0 {
					lines = append(lines, "奖励：")
					for _, reward := range task.rewards {
						lines = append(lines, "・"+reward)
					}
				}
			}
		}

		// 物品之间用空行分隔
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n"), true
}

// townObjects 收集角色的专属领地物品，只保留能取到名称的条目
func (s *Service) townObjects(heroID int64) []townObject {
	var objects []townObject
	for obj := range s.store.Table("town_object").Scan(func(rec dataset.Record) bool {
		return rec.Int("hero") == heroID
	}) {
		objNo := obj.Int("no")
		if objNo == 0 {
			continue
		}
		item, ok := s.store.Table("item").Get(objNo)
		if !ok {
			continue
		}
		name := s.store.ItemString(item.Int("name_sno")).TW
		if name == "" {
			continue
		}
		objects = append(objects, townObject{
			no:       objNo,
			name:     name,
			grade:    s.store.SystemString(item.Int("grade_sno")).TW,
			slotType: s.store.UIString(item.Int("slot_limit_sno")).TW,
			desc:     skill.StripColorTags(s.store.ItemString(item.Int("desc_sno")).TW),
			imgPath:  s.townObjectImage(obj.Str("prefab")),
		})
	}
	return objects
}

// arbeitTasks 收集一件领地物品上可进行的打工任务
func (s *Service) arbeitTasks(objNo int64) []arbeitTask {
	var tasks []arbeitTask
	for choice := range s.store.Table("arbeit_choice").Scan(func(rec dataset.Record) bool {
		return rec.Int("objet_no") == objNo
	}) {
		arbeitNo := choice.Int("arbeit_no")
		if arbeitNo == 0 {
			continue
		}
		arbeit, ok := s.store.Table("arbeit_list").Get(arbeitNo)
		if !ok {
			continue
		}

		task := arbeitTask{
			name:   s.store.TownString(arbeit.Int("name_sno")).TW,
			rarity: s.store.SystemString(arbeit.Int("rarity")).TW,
			hours:  arbeit.Float("time") / 3600,
			stress: arbeit.Int("stress"),
			exp:    arbeit.Int("arbeit_exp"),
		}
		for _, trait := range arbeitTraits {
			if stars := arbeit.Int(trait.key); stars != 0 {
				task.traits = append(task.traits, fmt.Sprintf("%s%d★", trait.name, stars))
			}
		}
		for i := 1; i <= 2; i++ {
			itemNo := arbeit.Int(fmt.Sprintf("item%d_no", i))
			amount := arbeit.Int(fmt.Sprintf("item%d_amount", i))
			if itemNo == 0 || amount == 0 {
				continue
			}
			item, ok := s.store.Table("item").Get(itemNo)
			if !ok {
				continue
			}
			if name := s.store.ItemString(item.Int("name_sno")).TW; name != "" {
				task.rewards = append(task.rewards, fmt.Sprintf("%s x%d", name, amount))
			}
		}
		tasks = append(tasks, task)
	}
	return tasks
}

// townObjectImage 返回领地物品图片路径，文件不存在时返回空串
func (s *Service) townObjectImage(prefab string) string {
	if s.assetsDir == "" || prefab == "" {
		return ""
	}
	path := filepath.Join(s.assetsDir, "town", fmt.Sprintf("%s.png", prefab))
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// formatHours 把秒换算出的小时数渲染成带小数的形式，整数补".0"
func formatHours(hours float64) string {
	s := strconv.FormatFloat(hours, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
