package formatters

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// exponentThreshold is the magnitude from which the shortest decimal form
// of a float64 switches to exponential notation.
const exponentThreshold = 1e21

const infinitySign = "∞"

// FormatNumber renders value with pattern, using groupSep between digit
// groups and decimalSep before the fraction. An optional fractionSize
// replaces both MinFrac and MaxFrac for this call.
//
// Rounding is round-half-up on the shortest decimal representation of the
// value, so 1.005 rounds to 1.01 at two digits.
func FormatNumber(value float64, pattern NumberPattern, groupSep, decimalSep string, fractionSize ...int) string {
	negative := value < 0
	magnitude := math.Abs(value)

	var body string
	switch {
	case math.IsNaN(magnitude):
		body = "NaN"
	case math.IsInf(magnitude, 0):
		body = infinitySign
	case magnitude >= exponentThreshold:
		body = strconv.FormatFloat(magnitude, 'e', -1, 64)
	default:
		body = formatDecimal(magnitude, pattern, groupSep, decimalSep, fractionSize...)
		// a value rounded to zero is not negative
		negative = negative && strings.ContainsAny(body, "123456789")
	}

	if negative {
		return pattern.NegPre + body + pattern.NegSuf
	}
	return pattern.PosPre + body + pattern.PosSuf
}

func formatDecimal(magnitude float64, pattern NumberPattern, groupSep, decimalSep string, fractionSize ...int) string {
	whole, fraction := splitDecimal(strconv.FormatFloat(magnitude, 'f', -1, 64))
	size := pattern.fractionDigits(len(fraction), fractionSize...)
	whole, fraction = roundHalfUp(whole, fraction, size)
	if pad := size - len(fraction); pad > 0 {
		fraction += strings.Repeat("0", pad)
	}

	// without an override, zeros left by rounding are trimmed back to MinFrac
	if len(fractionSize) == 0 || fractionSize[0] < 0 {
		minFrac := max(pattern.MinFrac, 0)
		for len(fraction) > minFrac && fraction[len(fraction)-1] == '0' {
			fraction = fraction[:len(fraction)-1]
		}
	}

	if pad := pattern.MinInt - len(whole); pad > 0 {
		whole = strings.Repeat("0", pad) + whole
	}

	var b strings.Builder
	b.WriteString(groupDigits(whole, groupSep, pattern.GSize, pattern.LgSize))
	if fraction != "" {
		b.WriteString(decimalSep)
		b.WriteString(fraction)
	}
	return b.String()
}

func splitDecimal(digits string) (whole, fraction string) {
	if idx := strings.IndexByte(digits, '.'); idx >= 0 {
		return digits[:idx], digits[idx+1:]
	}
	return digits, ""
}

// roundHalfUp truncates fraction to size digits, carrying into whole when
// the first dropped digit is 5 or more.
func roundHalfUp(whole, fraction string, size int) (string, string) {
	if len(fraction) <= size {
		return whole, fraction
	}

	roundUp := fraction[size] >= '5'
	fraction = fraction[:size]
	if !roundUp {
		return whole, fraction
	}

	digits := []byte(whole + fraction)
	i := len(digits) - 1
	for ; i >= 0; i-- {
		if digits[i] == '9' {
			digits[i] = '0'
			continue
		}
		digits[i]++
		break
	}
	if i < 0 {
		digits = append([]byte{'1'}, digits...)
	}

	split := len(digits) - size
	return string(digits[:split]), string(digits[split:])
}

// groupDigits inserts sep into whole counting from the right: the first
// group is lgSize wide, the rest gSize.
func groupDigits(whole, sep string, gSize, lgSize int) string {
	if lgSize <= 0 {
		lgSize = gSize
	}
	if lgSize <= 0 || len(whole) <= lgSize {
		return whole
	}

	head := whole[:len(whole)-lgSize]
	groups := []string{whole[len(whole)-lgSize:]}
	if gSize > 0 {
		for len(head) > gSize {
			groups = append(groups, head[len(head)-gSize:])
			head = head[:len(head)-gSize]
		}
	}
	groups = append(groups, head)
	slices.Reverse(groups)

	return strings.Join(groups, sep)
}
