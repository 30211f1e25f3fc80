package formatters

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NumberFormatter applies a locale's number formats to loosely typed input.
// Inputs that are not numbers, numeric strings or finite values render as
// the empty string.
type NumberFormatter struct {
	locale  string
	formats NumberFormats
	printer *message.Printer
}

// NewNumberFormatter binds formats to locale.
func NewNumberFormatter(locale string, formats NumberFormats) *NumberFormatter {
	return &NumberFormatter{
		locale:  locale,
		formats: formats,
		printer: message.NewPrinter(language.Make(locale)),
	}
}

// Number formats value with the locale decimal pattern.
func (f *NumberFormatter) Number(value any, fractionSize ...int) string {
	n, ok := toFiniteFloat(value)
	if !ok {
		return ""
	}
	return FormatNumber(n, f.formats.Decimal, f.formats.GroupSep, f.formats.DecimalSep, fractionSize...)
}

// Currency formats amount with the locale currency pattern. An empty symbol
// selects the locale's currency symbol.
func (f *NumberFormatter) Currency(amount any, symbol string, fractionSize ...int) string {
	n, ok := toFiniteFloat(amount)
	if !ok {
		return ""
	}
	if symbol == "" {
		symbol = f.formats.CurrencySymbol
	}
	formatted := FormatNumber(n, f.formats.Currency, f.formats.GroupSep, f.formats.DecimalSep, fractionSize...)
	return strings.ReplaceAll(formatted, currencySign, symbol)
}

// CurrencyCode is Currency with the symbol looked up from an ISO 4217 code.
// An empty code selects the locale's default currency.
func (f *NumberFormatter) CurrencyCode(amount any, code string, fractionSize ...int) string {
	code = strings.TrimSpace(code)
	if code == "" {
		code = f.formats.CurrencyCode
	}
	return f.Currency(amount, f.currencySymbol(code), fractionSize...)
}

func (f *NumberFormatter) currencySymbol(code string) string {
	if code == "" {
		return f.formats.CurrencySymbol
	}

	unit, err := currency.ParseISO(code)
	if err != nil || unit.String() == "XXX" {
		return strings.ToUpper(code)
	}

	if strings.EqualFold(code, f.formats.CurrencyCode) && f.formats.CurrencySymbol != "" {
		return f.formats.CurrencySymbol
	}

	if symbol := strings.TrimSpace(f.printer.Sprint(currency.Symbol(unit))); symbol != "" {
		return symbol
	}
	return unit.String()
}

// toFiniteFloat converts numeric kinds, numeric strings and json.Number.
func toFiniteFloat(value any) (float64, bool) {
	var n float64

	switch v := value.(type) {
	case nil:
		return 0, false
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		n = parsed
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		rv := reflect.ValueOf(value)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			n = float64(rv.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			n = float64(rv.Uint())
		case reflect.Float32, reflect.Float64:
			n = rv.Float()
		default:
			return 0, false
		}
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
