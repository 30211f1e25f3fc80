package formatters

import (
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basePattern() NumberPattern {
	return NumberPattern{
		MinInt:  1,
		MinFrac: 0,
		MaxFrac: 3,
		PosPre:  "",
		PosSuf:  "",
		NegPre:  "-",
		NegSuf:  "",
		GSize:   3,
		LgSize:  3,
	}
}

func TestFormatNumber(t *testing.T) {
	withGroups := func(g int) NumberPattern {
		p := basePattern()
		p.GSize = g
		return p
	}
	withNegative := func(pre, suf string) NumberPattern {
		p := basePattern()
		p.NegPre, p.NegSuf = pre, suf
		return p
	}
	withPositive := func(pre, suf string) NumberPattern {
		p := basePattern()
		p.PosPre, p.PosSuf = pre, suf
		return p
	}
	withFractions := func(minFrac, maxFrac int) NumberPattern {
		p := basePattern()
		p.MinFrac, p.MaxFrac = minFrac, maxFrac
		return p
	}

	tests := []struct {
		name     string
		value    float64
		pattern  NumberPattern
		group    string
		decimal  string
		fraction []int
		want     string
	}{
		{"indian grouping", 1234567.89, withGroups(2), ",", ".", nil, "12,34,567.89"},
		{"short indian grouping", 1234.56, withGroups(2), ",", ".", nil, "1,234.56"},
		{"negative affixes", -1234, withNegative("(", "-)"), ",", ".", nil, "(1,234-)"},
		{"positive affixes", 1234, withPositive("+", "+"), ",", ".", nil, "+1,234+"},
		{"min fraction pads", 1, withFractions(2, 3), ",", ".", nil, "1.00"},
		{"max fraction rounds", 1.11119, withFractions(0, 4), ",", ".", nil, "1.1112"},
		{"custom separators", 1234567.1, basePattern(), ".", ",", []int{2}, "1.234.567,10"},
		{"fraction pads", 123.1, basePattern(), ",", ".", []int{3}, "123.100"},
		{"natural fraction", 123.12, basePattern(), ",", ".", nil, "123.12"},
		{"natural fraction rounds", 123.1116, basePattern(), ",", ".", nil, "123.112"},
		{"zero", 0, basePattern(), ",", ".", nil, "0"},
		{"negative zero is positive", math.Copysign(0, -1), basePattern(), ",", ".", nil, "0"},
		{"no fraction", 1234.567, basePattern(), ",", ".", []int{0}, "1,235"},
		{"carry into whole", 0.9999, basePattern(), ",", ".", []int{3}, "1.000"},
		{"carry adds digit", 999.9996, basePattern(), ",", ".", []int{3}, "1,000.000"},
		{"rounds to zero", 0.0001, basePattern(), ",", ".", []int{3}, "0.000"},
		{"half up", 2.5, basePattern(), ",", ".", []int{0}, "3"},
		{"half up in decimal form", 1.005, basePattern(), ",", ".", []int{2}, "1.01"},
		{"min integer digits", 5, NumberPattern{MinInt: 3, MaxFrac: 0, NegPre: "-", GSize: 3}, ",", ".", nil, "005"},
		{"no grouping", 1234567, NumberPattern{MinInt: 1, NegPre: "-"}, ",", ".", nil, "1234567"},
		{"large exponent", 1e50, basePattern(), ",", ".", []int{0}, "1e+50"},
		{"negative exponent", -2e50, basePattern(), ",", ".", []int{2}, "-2e+50"},
		{"below threshold stays decimal", 1e20, basePattern(), ",", ".", nil, "100,000,000,000,000,000,000"},
		{"infinity", math.Inf(1), basePattern(), ",", ".", nil, "∞"},
		{"negative infinity", math.Inf(-1), basePattern(), ",", ".", nil, "-∞"},
		{"nan", math.NaN(), basePattern(), ",", ".", nil, "NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatNumber(tt.value, tt.pattern, tt.group, tt.decimal, tt.fraction...)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatNumberDoesNotMutatePattern(t *testing.T) {
	pattern := basePattern()
	FormatNumber(1234.5, pattern, ",", ".", 1)
	assert.Equal(t, basePattern(), pattern)
}

func TestGroupDigits(t *testing.T) {
	assert.Equal(t, "1,234,567", groupDigits("1234567", ",", 3, 3))
	assert.Equal(t, "12,34,567", groupDigits("1234567", ",", 2, 3))
	assert.Equal(t, "1,234,567", groupDigits("1234567", ",", 3, 0))
	assert.Equal(t, "123", groupDigits("123", ",", 3, 3))
	assert.Equal(t, "1234567", groupDigits("1234567", ",", 0, 0))
	assert.Equal(t, "1234,567", groupDigits("1234567", ",", 0, 3))
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		whole, fraction string
		size            int
		wantWhole       string
		wantFraction    string
	}{
		{"1", "2345", 2, "1", "23"},
		{"1", "2355", 2, "1", "24"},
		{"9", "995", 2, "10", "00"},
		{"0", "5", 0, "1", ""},
		{"12", "3", 2, "12", "3"},
	}

	for _, tt := range tests {
		whole, fraction := roundHalfUp(tt.whole, tt.fraction, tt.size)
		assert.Equal(t, tt.wantWhole, whole, "%s.%s@%d", tt.whole, tt.fraction, tt.size)
		assert.Equal(t, tt.wantFraction, fraction, "%s.%s@%d", tt.whole, tt.fraction, tt.size)
	}
}

func TestFormatNumberTrimsRoundingZeros(t *testing.T) {
	tests := []struct {
		value    float64
		pattern  NumberPattern
		fraction []int
		want     string
	}{
		{1.0001, basePattern(), nil, "1"},
		{2.00049, basePattern(), nil, "2"},
		{1.10049, basePattern(), nil, "1.1"},
		{0.9999, basePattern(), nil, "1"},
		{1.0001, basePattern(), []int{3}, "1.000"},
		{1.0001, NumberPattern{MinInt: 1, MinFrac: 2, MaxFrac: 2, NegPre: "-", GSize: 3, LgSize: 3}, nil, "1.00"},
		{-0.0001, basePattern(), nil, "0"},
		{-0.0004, basePattern(), []int{3}, "0.000"},
		{-0.0005, basePattern(), nil, "-0.001"},
		{1.2001, NumberPattern{MinInt: 1, MinFrac: 1, MaxFrac: 3, NegPre: "-", GSize: 3, LgSize: 3}, nil, "1.2"},
	}

	for _, tt := range tests {
		got := FormatNumber(tt.value, tt.pattern, ",", ".", tt.fraction...)
		assert.Equal(t, tt.want, got, "%v %v", tt.value, tt.fraction)
	}
}

func TestFormatNumberRoundingIsIdempotent(t *testing.T) {
	patterns := map[string]NumberPattern{
		"decimal":  basePattern(),
		"currency": {MinInt: 1, MinFrac: 2, MaxFrac: 2, NegPre: "-", GSize: 3, LgSize: 3},
		"wide":     {MinInt: 1, MinFrac: 1, MaxFrac: 5, NegPre: "-", GSize: 2, LgSize: 3},
	}
	rng := rand.New(rand.NewPCG(7, 11))

	for name, pattern := range patterns {
		for range 500 {
			value := (rng.Float64() - 0.5) * math.Pow10(rng.IntN(10))
			if rng.IntN(4) == 0 {
				value = math.Round(value*1e4) / 1e4
			}

			first := FormatNumber(value, pattern, ",", ".")
			reparsed, err := strconv.ParseFloat(strings.ReplaceAll(first, ",", ""), 64)
			require.NoError(t, err, "%s: %q", name, first)

			second := FormatNumber(reparsed, pattern, ",", ".")
			require.Equal(t, first, second, "%s: %v", name, value)
		}
	}
}

func TestFormatNumberSeparatorCount(t *testing.T) {
	for g := 1; g <= 4; g++ {
		pattern := NumberPattern{MinInt: 1, NegPre: "-", GSize: g, LgSize: g}
		for k := 1; k <= 21; k++ {
			got := FormatNumber(math.Pow10(k-1), pattern, ",", ".")
			require.Len(t, strings.ReplaceAll(got, ",", ""), k, "g=%d k=%d: %q", g, k, got)
			assert.Equal(t, (k-1)/g, strings.Count(got, ","), "g=%d k=%d: %q", g, k, got)
		}
	}
}
