// Package strsim 提供基于最长匹配子序列的字符串相似度计算，
// 语义与 Python difflib 的 SequenceMatcher / get_close_matches 保持一致，
// 以保证模糊匹配的排序和阈值行为可复现。
package strsim

import "sort"

type match struct {
	a, b, size int
}

// longestMatch 在 a[alo:ahi] 与 b[blo:bhi] 中寻找最长的公共连续片段。
// 相同长度时取 a 中最靠前、其次 b 中最靠前的片段。
func longestMatch(a, b []rune, b2j map[rune][]int, alo, ahi, blo, bhi int) match {
	besti, bestj, bestsize := alo, blo, 0
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newj2len := make(map[int]int)
		for _, j := range b2j[a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}
	return match{besti, bestj, bestsize}
}

// matchingTotal 返回所有匹配块的总长度
func matchingTotal(a, b []rune) int {
	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}

	total := 0
	queue := [][4]int{{0, len(a), 0, len(b)}}
	for len(queue) > 0 {
		frame := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		alo, ahi, blo, bhi := frame[0], frame[1], frame[2], frame[3]

		m := longestMatch(a, b, b2j, alo, ahi, blo, bhi)
		if m.size == 0 {
			continue
		}
		total += m.size
		if alo < m.a && blo < m.b {
			queue = append(queue, [4]int{alo, m.a, blo, m.b})
		}
		if m.a+m.size < ahi && m.b+m.size < bhi {
			queue = append(queue, [4]int{m.a + m.size, ahi, m.b + m.size, bhi})
		}
	}
	return total
}

// Ratio 返回 [0,1] 上的归一化相似度：2*M / (len(a)+len(b))，
// M 为全部匹配块的总长度。两个空串的相似度为1。
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	length := len(ra) + len(rb)
	if length == 0 {
		return 1.0
	}
	return 2.0 * float64(matchingTotal(ra, rb)) / float64(length)
}

// Candidate 是一次近似匹配的结果
type Candidate struct {
	Word  string
	Score float64
}

// CloseMatches 在候选集中返回与 word 相似度不低于 cutoff 的前 n 个候选，
// 按相似度降序排列，同分时字典序大的在前。没有达标候选时返回空切片。
func CloseMatches(word string, possibilities []string, n int, cutoff float64) []Candidate {
	result := make([]Candidate, 0, len(possibilities))
	for _, p := range possibilities {
		score := Ratio(p, word)
		if score >= cutoff {
			result = append(result, Candidate{Word: p, Score: score})
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}
		return result[i].Word > result[j].Word
	})
	if n < len(result) {
		result = result[:n]
	}
	return result
}
