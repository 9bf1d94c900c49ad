package quota

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const perUnit = 500000

func TestDisplay_RawMode(t *testing.T) {
	assert.Equal(t, "1000", Display(1000, false, perUnit))
	assert.Equal(t, "0", Display(0, false, perUnit))
}

func TestDisplay_CurrencyMode(t *testing.T) {
	tests := []struct {
		name string
		raw  int64
		want string
	}{
		{name: "integral amount", raw: 500000, want: "1.00"},
		{name: "fractional amount", raw: 1250000, want: "2.50"},
		{name: "zero", raw: 0, want: "0.00"},
		{name: "sub-cent rounds in rendering", raw: 1234, want: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Display(tt.raw, true, perUnit))
		})
	}
}

func TestParseInput_CurrencyMode(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int64
	}{
		{name: "plain amount", value: "2.50", want: 1250000},
		{name: "integer amount", value: "1", want: 500000},
		{name: "negative amount", value: "-0.5", want: -250000},
		{name: "empty is zero", value: "", want: 0},
		{name: "invalid is zero", value: "abc", want: 0},
		{name: "whitespace trimmed", value: " 2.50 ", want: 1250000},
		{name: "rounds to nearest", value: "0.000001", want: 1}, // 0.5 向上取整
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseInput(tt.value, true, perUnit))
		})
	}
}

func TestParseInput_RawMode(t *testing.T) {
	assert.Equal(t, int64(1000), ParseInput("1000", false, perUnit))
	assert.Equal(t, int64(-5), ParseInput("-5", false, perUnit))
	assert.Equal(t, int64(0), ParseInput("", false, perUnit))
}

func TestCoerceRaw(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int64
	}{
		{name: "integer", value: "1000", want: 1000},
		{name: "negative", value: "-42", want: -42},
		{name: "decimal rounds", value: "123.6", want: 124},
		{name: "empty is zero", value: "", want: 0},
		{name: "garbage is zero", value: "not-a-number", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CoerceRaw(tt.value))
		})
	}
}

// 展示模式换算的往返性质：raw → 货币字符串 → raw 的误差不超过一个
// 渲染精度单位（两位小数对应 perUnit/100 个原始单位）
func TestConversion_RoundTrip(t *testing.T) {
	samples := []int64{0, 1, 499, 1000, 250000, 500000, 1250000, 99999999, 123456789}

	for _, q := range samples {
		display := Display(q, true, perUnit)
		back := ParseInput(display, true, perUnit)

		diff := back - q
		if diff < 0 {
			diff = -diff
		}
		// 两位小数的渲染粒度是 perUnit/100 = 5000 原始单位
		assert.LessOrEqualf(t, diff, int64(perUnit/100/2+1),
			"round trip of %d drifted: display=%s back=%d", q, display, back)
	}
}

// 整货币金额的往返必须精确
func TestConversion_RoundTrip_Exact(t *testing.T) {
	for _, q := range []int64{0, 500000, 1250000, 5000, 250000000} {
		display := Display(q, true, perUnit)
		assert.Equal(t, q, ParseInput(display, true, perUnit), "display=%s", display)
	}
}
