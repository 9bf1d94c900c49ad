// Package quota 实现额度的双重表示换算。
// 额度的唯一事实来源是原始整数，货币金额只是一个纯投影，
// 两个方向的换算都不会在中间状态里保留第二份可变字段。
package quota

import (
	"math"
	"strconv"
	"strings"
)

// Display 按展示模式把原始额度渲染成输入框字符串
// 货币模式保留两位小数，原始模式就是整数本身
func Display(raw int64, currencyMode bool, perUnit int64) string {
	if currencyMode {
		return strconv.FormatFloat(float64(raw)/float64(perUnit), 'f', 2, 64)
	}
	return strconv.FormatInt(raw, 10)
}

// ParseInput 把输入字符串按模式解释为原始额度
// 货币模式：round(金额 × perUnit)；原始模式：整数直取
// 空串或无法解析的输入一律按 0 处理，不中断表单
func ParseInput(value string, currencyMode bool, perUnit int64) int64 {
	if currencyMode {
		return int64(math.Round(parseFloat(value) * float64(perUnit)))
	}
	return CoerceRaw(value)
}

// CoerceRaw 把字符串形式的原始额度转成整数，解析失败按 0 处理
func CoerceRaw(value string) int64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		// 容忍 "123.0" 这类带小数点的输入
		f, ferr := strconv.ParseFloat(value, 64)
		if ferr != nil {
			return 0
		}
		return int64(math.Round(f))
	}
	return n
}

func parseFloat(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}
