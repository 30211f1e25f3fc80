package formatters

import (
	"reflect"
	"text/template"
)

// TemplateFuncs exposes the formatters of locale to text/template and
// html/template. Currency and date take their optional arguments
// positionally:
//
//	{{ currency .Total }}  {{ currency .Total "€" 0 }}
//	{{ date .CreatedAt "shortDate" }}
func TemplateFuncs(registry *FormatterRegistry, locale string) template.FuncMap {
	if registry == nil {
		registry = NewFormatterRegistry()
	}

	funcs := template.FuncMap{}
	for name, fn := range registry.FuncMap(locale) {
		if fn == nil || reflect.TypeOf(fn).Kind() != reflect.Func {
			continue
		}
		funcs[name] = fn
	}

	if fn, ok := registry.Currency(locale); ok {
		funcs[NameCurrency] = currencyTemplateFunc(fn)
	}
	if fn, ok := lookupFormatter[CurrencyFunc](registry, NameCurrencyCode, locale); ok {
		funcs[NameCurrencyCode] = currencyTemplateFunc(fn)
	}
	if fn, ok := registry.Date(locale); ok {
		funcs[NameDate] = func(input any, format ...string) (any, error) {
			var pattern string
			if len(format) > 0 {
				pattern = format[0]
			}
			return fn(input, pattern)
		}
	}

	return funcs
}

func currencyTemplateFunc(fn CurrencyFunc) func(any, ...any) string {
	return func(amount any, args ...any) string {
		var symbol string
		var fraction []int
		if len(args) > 0 {
			if s, ok := args[0].(string); ok {
				symbol = s
			}
		}
		if len(args) > 1 {
			if size, ok := toFiniteFloat(args[1]); ok {
				fraction = append(fraction, int(size))
			}
		}
		return fn(amount, symbol, fraction...)
	}
}
