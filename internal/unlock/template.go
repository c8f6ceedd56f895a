package unlock

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var placeholderRe = regexp.MustCompile(`\{(\d*)\}`)

// formatTemplate 把 {0}、{1} 形式的占位符按位置替换为参数，
// 空占位符 {} 按出现顺序编号。引用了不存在的参数时返回错误，
// 由调用方回退到固定文案；没有占位符的模板原样返回。
func formatTemplate(tpl string, args ...string) (string, error) {
	auto := 0
	var failed error
	out := placeholderRe.ReplaceAllStringFunc(tpl, func(ph string) string {
		body := strings.Trim(ph, "{}")
		index := auto
		if body != "" {
			parsed, err := strconv.Atoi(body)
			if err != nil {
				failed = err
				return ph
			}
			index = parsed
		} else {
			auto++
		}
		if index >= len(args) {
			failed = fmt.Errorf("模板占位符 %s 超出参数个数 %d", ph, len(args))
			return ph
		}
		return args[index]
	})
	if failed != nil {
		return tpl, failed
	}
	return out, nil
}
