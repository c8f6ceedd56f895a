package numfmt

import (
	"math"
	"strconv"
	"strings"
)

// units 是以万进位的中文大数单位表，下标即缩放等级
var units = []string{
	"", "万", "亿", "兆", "京", "垓", "秭", "穰", "沟", "涧", "正", "载", "极",
	"恒河沙", "阿僧祗", "那由他", "不思议", "无量大", "万无量大", "亿无量大",
	"兆无量大", "京无量大", "垓无量大", "秭无量大", "穰无量大", "沟无量大",
	"涧无量大", "正无量大", "载无量大", "极无量大",
}

// maxLevel 是缩放等级的上限，超过后停在最后一个单位
const maxLevel = 29

// percentThreshold 以下（含）的数值按百分比渲染，以上按整数渲染
const percentThreshold = 50

// ScaleLarge 把大数值缩放为"尾数+单位"形式，例如 12345 -> "1.2万"。
// 尾数四舍六入五成双保留一位小数，恰好为整数时省略小数部分。
// 科学计数法表示的输入先截断到一位小数再参与缩放。
func ScaleLarge(num float64) string {
	if strings.ContainsAny(strconv.FormatFloat(num, 'g', -1, 64), "eE") {
		truncated, err := strconv.ParseFloat(strconv.FormatFloat(num, 'f', 1, 64), 64)
		if err == nil {
			num = truncated
		}
	}

	level := 0
	for num >= 10000 && level < maxLevel {
		num /= 10000
		level++
	}
	if level >= len(units) {
		level = len(units) - 1
	}

	mantissa := math.RoundToEven(num*10) / 10
	var s string
	if mantissa == math.Trunc(mantissa) {
		s = strconv.FormatFloat(mantissa, 'f', 0, 64)
	} else {
		s = strconv.FormatFloat(mantissa, 'f', 1, 64)
	}
	return s + units[level]
}

// PercentOrInteger 按数值大小决定渲染方式：绝对值不超过50按百分比处理
// （乘100保留一位小数，小数位为0时省略），超过50按截断后的整数处理。
func PercentOrInteger(value float64) string {
	if math.Abs(value) <= percentThreshold {
		percent := value * 100
		if percent == math.Trunc(percent) {
			return strconv.FormatFloat(math.Trunc(percent), 'f', 0, 64) + "%"
		}
		formatted := strconv.FormatFloat(percent, 'f', 1, 64)
		if strings.HasSuffix(formatted, ".0") {
			return strings.TrimSuffix(formatted, ".0") + "%"
		}
		return formatted + "%"
	}
	return strconv.FormatFloat(math.Trunc(value), 'f', 0, 64)
}
