// Package story 提取角色好感故事的选项数据并生成三种结局的攻略文本。
package story

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rikka-qwq/eversoul-info-backend/internal/dataset"
)

// 结局篇章固定为EP8~EP10，分别对应坏、一般、好结局
const (
	badEndingEpisode    = 8
	normalEndingEpisode = 9
	goodEndingEpisode   = 10
)

// Choice 是一条带好感度的对话选项
type Choice struct {
	Text        string
	Affinity    int64
	ChoiceGroup int64
	No          int64
	TalkIndex   int64
	GroupNo     int64
}

// PositionGroup 是同一站位下的选项列表，按首次出现顺序排列
type PositionGroup struct {
	PositionType int64
	Choices      []Choice
}

// Episode 是一个好感故事篇章及其全部选项
type Episode struct {
	Episode int64
	Title   string
	Groups  []PositionGroup
}

// Endings 是三种结局的好感度阈值，键为 bad/normal/good
type Endings map[string]int64

// Discover 收集指定角色的好感故事篇章。没有结局篇章或结局篇章
// 均无阈值字段时视为该角色没有好感故事。
func Discover(store *dataset.Store, heroID int64) (bool, []Episode, Endings) {
	var plot, endingRows []dataset.Record
	for rec := range store.Table("story_info").Scan(func(rec dataset.Record) bool {
		return rec.Int("act") == heroID && strings.Contains(rec.Str("bundle_path"), "Story/Love")
	}) {
		switch rec.Int("episode") {
		case badEndingEpisode, normalEndingEpisode, goodEndingEpisode:
			endingRows = append(endingRows, rec)
		default:
			plot = append(plot, rec)
		}
	}
	if len(endingRows) == 0 {
		return false, nil, nil
	}

	endings := Endings{}
	for _, rec := range endingRows {
		if !rec.Has("ending_affinity") {
			continue
		}
		switch rec.Int("episode") {
		case badEndingEpisode:
			endings["bad"] = rec.Int("ending_affinity")
		case normalEndingEpisode:
			endings["normal"] = rec.Int("ending_affinity")
		case goodEndingEpisode:
			endings["good"] = rec.Int("ending_affinity")
		}
	}
	if len(endings) == 0 {
		return false, nil, nil
	}

	var episodes []Episode
	for _, rec := range plot {
		episodes = append(episodes, Episode{
			Episode: rec.Int("episode"),
			Title:   episodeTitle(store, rec),
			Groups:  episodeChoices(store, rec.Int("talk_group")),
		})
	}
	return true, episodes, endings
}

func episodeTitle(store *dataset.Store, episode dataset.Record) string {
	loc := store.TalkString(episode.Int("episode_name_sno"))
	if loc.TW != "" {
		return loc.TW
	}
	return loc.KR
}

// episodeChoices 收集一个对话组中的全部选项。同一talk_index上只要有
// 任一选项带好感度，该talk_index下的所有选项都纳入。
func episodeChoices(store *dataset.Store, talkGroup int64) []PositionGroup {
	talks := store.Table("talk")

	withAffinity := make(map[int64]bool)
	for rec := range talks.Scan(func(rec dataset.Record) bool {
		return rec.Int("group_no") == talkGroup && rec.Has("affinity_point")
	}) {
		withAffinity[rec.Int("talk_index")] = true
	}

	var groups []PositionGroup
	position := make(map[int64]int)
	for rec := range talks.Scan(func(rec dataset.Record) bool {
		return rec.Int("group_no") == talkGroup && withAffinity[rec.Int("talk_index")]
	}) {
		loc := store.TalkString(rec.Int("no"))
		text := loc.TW
		if text == "" {
			text = loc.KR
		}
		choice := Choice{
			Text:        text,
			Affinity:    rec.Int("affinity_point"),
			ChoiceGroup: rec.Int("choice_group"),
			No:          rec.Int("no"),
			TalkIndex:   rec.Int("talk_index"),
			GroupNo:     rec.Int("group_no"),
		}
		pt := rec.Int("position_type")
		i, ok := position[pt]
		if !ok {
			i = len(groups)
			position[pt] = i
			groups = append(groups, PositionGroup{PositionType: pt})
		}
		groups[i].Choices = append(groups[i].Choices, choice)
	}
	return groups
}

// Transcript 把篇章选项渲染成好/一般/坏三段结局攻略。
// 好结局每步取好感度最高的选项；坏结局优先取负好感度，
// 其次零好感度，再次最小正好感度。
func Transcript(episodes []Episode, endings Endings) string {
	goodEnd := []string{"好结局攻略："}
	normalEnd := []string{"一般结局攻略："}
	badEnd := []string{"坏结局攻略："}

	if _, ok := endings["bad"]; ok {
		bad := endings["bad"]
		normal := endings["normal"]
		goodEnd = append(goodEnd, fmt.Sprintf("条件：好感度大于%d", normal))
		normalEnd = append(normalEnd, fmt.Sprintf("条件：好感度%d-%d", bad, normal))
		normalEnd = append(normalEnd, "根据好结局的选项来，然后故意选错一个扣的最高的，好感度在区间内即可")
		badEnd = append(badEnd, fmt.Sprintf("条件：好感度低于%d", bad))
	}

	for _, ep := range episodes {
		var all []Choice
		for _, g := range ep.Groups {
			all = append(all, g.Choices...)
		}
		if len(all) == 0 {
			continue
		}

		header := fmt.Sprintf("\nEP%d：%s", ep.Episode, ep.Title)
		goodEnd = append(goodEnd, header)
		badEnd = append(badEnd, header)

		sort.SliceStable(all, func(i, j int) bool {
			return all[i].TalkIndex < all[j].TalkIndex
		})

		for _, step := range splitBySteps(all) {
			goodEnd = append(goodEnd, pickBest(step)...)
			badEnd = append(badEnd, pickWorst(step)...)
		}
	}

	result := []string{"好感故事攻略："}
	result = append(result, "")
	result = append(result, goodEnd...)
	result = append(result, "")
	result = append(result, normalEnd...)
	result = append(result, "")
	result = append(result, badEnd...)
	return strings.Join(result, "\n")
}

// splitBySteps 把按talk_index排好序的选项切成连续的同index段
func splitBySteps(choices []Choice) [][]Choice {
	var steps [][]Choice
	for i := 0; i < len(choices); {
		j := i + 1
		for j < len(choices) && choices[j].TalkIndex == choices[i].TalkIndex {
			j++
		}
		steps = append(steps, choices[i:j])
		i = j
	}
	return steps
}

func pickBest(step []Choice) []string {
	best := step[0].Affinity
	for _, c := range step[1:] {
		if c.Affinity > best {
			best = c.Affinity
		}
	}
	var out []string
	for _, c := range step {
		if c.Affinity == best {
			out = append(out, renderChoice(c))
		}
	}
	return out
}

func pickWorst(step []Choice) []string {
	lowest := step[0].Affinity
	for _, c := range step[1:] {
		if c.Affinity < lowest {
			lowest = c.Affinity
		}
	}

	target := lowest
	if lowest >= 0 {
		hasZero := false
		for _, c := range step {
			if c.Affinity == 0 {
				hasZero = true
				break
			}
		}
		if hasZero {
			target = 0
		}
	}

	var out []string
	for _, c := range step {
		if c.Affinity == target {
			out = append(out, renderChoice(c))
		}
	}
	return out
}

func renderChoice(c Choice) string {
	affinity := "0"
	switch {
	case c.Affinity > 0:
		affinity = fmt.Sprintf("+%d", c.Affinity)
	case c.Affinity < 0:
		affinity = fmt.Sprintf("%d", c.Affinity)
	}
	return fmt.Sprintf("（%d）%s(%s)", c.ChoiceGroup, c.Text, affinity)
}
