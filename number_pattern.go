package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xuri/nfp"
	"gopkg.in/yaml.v3"
)

// currencySign is the CLDR placeholder replaced by the currency symbol.
const currencySign = "¤"

// NumberPattern describes how a locale renders a number. It is a value
// object: formatters never mutate the pattern they receive.
type NumberPattern struct {
	MinInt  int `json:"min_int" yaml:"min_int"`
	MinFrac int `json:"min_frac" yaml:"min_frac"`
	MaxFrac int `json:"max_frac" yaml:"max_frac"`

	PosPre string `json:"pos_pre" yaml:"pos_pre"`
	PosSuf string `json:"pos_suf" yaml:"pos_suf"`
	NegPre string `json:"neg_pre" yaml:"neg_pre"`
	NegSuf string `json:"neg_suf" yaml:"neg_suf"`

	// GSize is the width of every group except the one adjacent to the
	// decimal point, which is LgSize wide. LgSize falls back to GSize.
	GSize  int `json:"g_size" yaml:"g_size"`
	LgSize int `json:"lg_size" yaml:"lg_size"`
}

// Validate reports digit counts that cannot be rendered.
func (p NumberPattern) Validate() error {
	switch {
	case p.MinInt < 0, p.MinFrac < 0, p.MaxFrac < 0, p.GSize < 0, p.LgSize < 0:
		return fmt.Errorf("%w: negative digit count", ErrInvalidPattern)
	case p.MaxFrac < p.MinFrac:
		return fmt.Errorf("%w: max_frac %d < min_frac %d", ErrInvalidPattern, p.MaxFrac, p.MinFrac)
	}
	return nil
}

// IsZero reports whether the pattern was left unset.
func (p NumberPattern) IsZero() bool {
	return p == NumberPattern{}
}

// fractionDigits returns the number of fraction digits to emit for a value
// whose shortest decimal form carries natural fraction digits.
func (p NumberPattern) fractionDigits(natural int, override ...int) int {
	if len(override) > 0 && override[0] >= 0 {
		return override[0]
	}
	return min(max(p.MinFrac, natural), p.MaxFrac)
}

// ParseNumberPattern converts a CLDR style pattern such as "#,##0.###" or
// "¤#,##0.00;(¤#,##0.00)" into a NumberPattern. When the pattern has no
// negative section the negative prefix is "-" followed by the positive prefix.
func ParseNumberPattern(pattern string) (NumberPattern, error) {
	trimmed := strings.TrimSpace(pattern)
	if trimmed == "" {
		return NumberPattern{}, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}

	if r, ok := scaledPatternSymbol(trimmed); ok {
		return NumberPattern{}, fmt.Errorf("%w: %q: unsupported symbol %q", ErrInvalidPattern, pattern, r)
	}

	ps := nfp.NumberFormatParser()
	sections := ps.Parse(quoteCurrencySign(trimmed))
	if len(sections) == 0 {
		return NumberPattern{}, fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
	}

	positive, err := scanNumberSection(sections[0])
	if err != nil {
		return NumberPattern{}, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err)
	}

	result := NumberPattern{
		MinInt:  positive.minInt,
		MinFrac: positive.minFrac,
		MaxFrac: positive.maxFrac,
		PosPre:  positive.prefix,
		PosSuf:  positive.suffix,
		NegPre:  "-" + positive.prefix,
		NegSuf:  positive.suffix,
	}
	result.GSize, result.LgSize = positive.groupSizes()

	if len(sections) > 1 {
		negative, err := scanNumberSection(sections[1])
		if err != nil {
			return NumberPattern{}, fmt.Errorf("%w: %q: negative section: %v", ErrInvalidPattern, pattern, err)
		}
		result.NegPre, result.NegSuf = negative.prefix, negative.suffix
	}

	return result, result.Validate()
}

// MustParseNumberPattern is like ParseNumberPattern but panics on error.
func MustParseNumberPattern(pattern string) NumberPattern {
	p, err := ParseNumberPattern(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

type sectionLayout struct {
	prefix  string
	suffix  string
	minInt  int
	minFrac int
	maxFrac int
	// integer placeholder runs between grouping separators, left to right
	runs []int
}

func (l sectionLayout) groupSizes() (gSize, lgSize int) {
	switch n := len(l.runs); {
	case n >= 3:
		return l.runs[n-2], l.runs[n-1]
	case n == 2:
		return l.runs[1], l.runs[1]
	default:
		return 0, 0
	}
}

func scanNumberSection(section nfp.Section) (sectionLayout, error) {
	var (
		layout       sectionLayout
		prefix       strings.Builder
		suffix       strings.Builder
		seenDigits   bool
		afterDecimal bool
		run          int
	)

	for _, tok := range section.Items {
		switch tok.TType {
		case nfp.TokenTypeZeroPlaceHolder, nfp.TokenTypeHashPlaceHolder:
			seenDigits = true
			n := len(tok.TValue)
			zero := tok.TType == nfp.TokenTypeZeroPlaceHolder
			if afterDecimal {
				layout.maxFrac += n
				if zero {
					layout.minFrac += n
				}
				continue
			}
			run += n
			if zero {
				layout.minInt += n
			}
		case nfp.TokenTypeThousandsSeparator:
			if seenDigits && !afterDecimal {
				layout.runs = append(layout.runs, run)
				run = 0
			}
		case nfp.TokenTypeDecimalPoint:
			if !afterDecimal {
				layout.runs = append(layout.runs, run)
				afterDecimal = true
			}
		case nfp.TokenTypePercent, nfp.TokenTypeExponential:
			return sectionLayout{}, fmt.Errorf("unsupported %q section", tok.TValue)
		case nfp.TokenTypeLiteral:
			text := unquoteLiteral(tok.TValue)
			if seenDigits {
				suffix.WriteString(text)
			} else {
				prefix.WriteString(text)
			}
		}
	}

	if !seenDigits {
		return sectionLayout{}, fmt.Errorf("no digit placeholders")
	}
	if !afterDecimal {
		layout.runs = append(layout.runs, run)
	}

	layout.prefix = prefix.String()
	layout.suffix = suffix.String()
	return layout, nil
}

// scaledPatternSymbol finds an unquoted percent, per mille or exponent
// symbol. Those change the value itself, which NumberPattern cannot express.
func scaledPatternSymbol(pattern string) (rune, bool) {
	var quote rune
	escaped := false
	for _, r := range pattern {
		switch {
		case escaped:
			escaped = false
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\\':
			escaped = true
		case r == '\'' || r == '"':
			quote = r
		case r == '%' || r == '‰' || r == 'E':
			return r, true
		}
	}
	return 0, false
}

// quoteCurrencySign wraps ¤ in double quotes so the parser keeps it as a
// literal. CLDR single-quoted literals are rewritten the same way.
func quoteCurrencySign(pattern string) string {
	var b strings.Builder
	inQuote := false
	for _, r := range pattern {
		switch {
		case r == '\'':
			inQuote = !inQuote
			b.WriteByte('"')
		case r == '¤' && !inQuote:
			b.WriteString(`"` + currencySign + `"`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func unquoteLiteral(value string) string {
	if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		return value[1 : len(value)-1]
	}
	return strings.TrimPrefix(value, `\`)
}

// UnmarshalJSON accepts either a pattern string or an object with the
// NumberPattern fields.
func (p *NumberPattern) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		parsed, err := ParseNumberPattern(text)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	}

	type rawPattern NumberPattern
	var raw rawPattern
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = NumberPattern(raw)
	return nil
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML documents.
func (p *NumberPattern) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		parsed, err := ParseNumberPattern(node.Value)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	}

	type rawPattern NumberPattern
	var raw rawPattern
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*p = NumberPattern(raw)
	return nil
}
