package formatters

import (
	"strings"
)

// RegisterLocaleFormatters registers number, currency and date formatters
// for each locale that the provider can resolve.
func RegisterLocaleFormatters(registry *FormatterRegistry, data *LocaleDataProvider, clock Clock, locales ...string) {
	if registry == nil {
		return
	}

	for _, locale := range locales {
		trimmed := normalizeLocale(locale)
		if trimmed == "" {
			continue
		}

		localeData, ok := data.Lookup(trimmed)
		if !ok {
			continue
		}
		registry.RegisterTypedProvider(trimmed, newLocaleProvider(trimmed, localeData, clock))
	}
}

type localeProvider struct {
	locale       string
	numbers      *NumberFormatter
	dates        *DateFormatter
	funcs        map[string]any
	capabilities FormatterCapabilities
}

func newLocaleProvider(locale string, data *LocaleData, clock Clock) *localeProvider {
	p := &localeProvider{
		locale:  locale,
		numbers: NewNumberFormatter(locale, data.Number),
		dates:   NewDateFormatter(data.DateTime, clock),
	}

	p.capabilities = FormatterCapabilities{
		Number:   true,
		Currency: true,
		Date:     true,
	}

	p.funcs = map[string]any{
		NameNumber:       NumberFunc(p.numbers.Number),
		NameCurrency:     CurrencyFunc(p.numbers.Currency),
		NameCurrencyCode: CurrencyFunc(p.numbers.CurrencyCode),
		NameDate:         DateFunc(p.dates.FormatValue),
	}

	return p
}

func (p *localeProvider) Formatter(name string) (any, bool) {
	if p == nil {
		return nil, false
	}
	fn, ok := p.funcs[strings.TrimSpace(name)]
	return fn, ok
}

func (p *localeProvider) FuncMap() map[string]any {
	if p == nil {
		return nil
	}
	return cloneFuncMap(p.funcs)
}

func (p *localeProvider) Capabilities() FormatterCapabilities {
	if p == nil {
		return FormatterCapabilities{}
	}
	return p.capabilities
}

// textProvider exposes the locale independent formatters.
type textProvider struct{}

func (textProvider) Formatter(name string) (any, bool) {
	fn, ok := textFormatters()[name]
	return fn, ok
}

func (textProvider) FuncMap() map[string]any {
	return textFormatters()
}

func (textProvider) Capabilities() FormatterCapabilities {
	return FormatterCapabilities{Text: true}
}

func textFormatters() map[string]any {
	return map[string]any{
		NameLowercase: TextFunc(Lowercase),
		NameUppercase: TextFunc(Uppercase),
		NameJSON:      JSONFunc(ToJSON),
	}
}
