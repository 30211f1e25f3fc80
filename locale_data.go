package formatters

import (
	"fmt"
	"maps"
	"sort"

	"golang.org/x/text/language"
)

// Date format preset names.
const (
	PresetMedium     = "medium"
	PresetShort      = "short"
	PresetFullDate   = "fullDate"
	PresetLongDate   = "longDate"
	PresetMediumDate = "mediumDate"
	PresetShortDate  = "shortDate"
	PresetMediumTime = "mediumTime"
	PresetShortTime  = "shortTime"
)

var presetNames = []string{
	PresetMedium, PresetShort, PresetFullDate, PresetLongDate,
	PresetMediumDate, PresetShortDate, PresetMediumTime, PresetShortTime,
}

// LocaleData is the static formatting configuration for one locale.
type LocaleData struct {
	Locale   string          `json:"locale" yaml:"locale"`
	Number   NumberFormats   `json:"number" yaml:"number"`
	DateTime DateTimeFormats `json:"datetime" yaml:"datetime"`
}

// NumberFormats holds separators, the default currency and the decimal and
// currency patterns of a locale.
type NumberFormats struct {
	DecimalSep     string        `json:"decimal_separator" yaml:"decimal_separator"`
	GroupSep       string        `json:"group_separator" yaml:"group_separator"`
	CurrencySymbol string        `json:"currency_symbol" yaml:"currency_symbol"`
	CurrencyCode   string        `json:"currency_code" yaml:"currency_code"`
	Decimal        NumberPattern `json:"decimal" yaml:"decimal"`
	Currency       NumberPattern `json:"currency" yaml:"currency"`
}

// DateTimeFormats holds calendar symbols and named date presets.
type DateTimeFormats struct {
	Months      []string          `json:"months" yaml:"months"`
	ShortMonths []string          `json:"short_months" yaml:"short_months"`
	Days        []string          `json:"days" yaml:"days"`
	ShortDays   []string          `json:"short_days" yaml:"short_days"`
	AmPms       []string          `json:"ampms" yaml:"ampms"`
	Eras        []string          `json:"eras" yaml:"eras"`
	EraNames    []string          `json:"era_names" yaml:"era_names"`
	Presets     map[string]string `json:"presets" yaml:"presets"`
}

// Validate checks that every symbol table has the expected cardinality.
func (d LocaleData) Validate() error {
	if err := d.Number.Decimal.Validate(); err != nil {
		return fmt.Errorf("%w: %s decimal pattern: %v", ErrInvalidLocaleData, d.Locale, err)
	}
	if err := d.Number.Currency.Validate(); err != nil {
		return fmt.Errorf("%w: %s currency pattern: %v", ErrInvalidLocaleData, d.Locale, err)
	}

	checks := []struct {
		name string
		got  int
		want int
	}{
		{"months", len(d.DateTime.Months), 12},
		{"short_months", len(d.DateTime.ShortMonths), 12},
		{"days", len(d.DateTime.Days), 7},
		{"short_days", len(d.DateTime.ShortDays), 7},
		{"ampms", len(d.DateTime.AmPms), 2},
		{"eras", len(d.DateTime.Eras), 2},
		{"era_names", len(d.DateTime.EraNames), 2},
	}
	for _, c := range checks {
		if c.got != c.want {
			return fmt.Errorf("%w: %s %s has %d entries, want %d", ErrInvalidLocaleData, d.Locale, c.name, c.got, c.want)
		}
	}

	for _, name := range presetNames {
		if d.DateTime.Presets[name] == "" {
			return fmt.Errorf("%w: %s missing preset %q", ErrInvalidLocaleData, d.Locale, name)
		}
	}
	return nil
}

// Clone returns a deep copy so callers cannot mutate shared tables.
func (d LocaleData) Clone() LocaleData {
	out := d
	out.DateTime.Months = cloneStrings(d.DateTime.Months)
	out.DateTime.ShortMonths = cloneStrings(d.DateTime.ShortMonths)
	out.DateTime.Days = cloneStrings(d.DateTime.Days)
	out.DateTime.ShortDays = cloneStrings(d.DateTime.ShortDays)
	out.DateTime.AmPms = cloneStrings(d.DateTime.AmPms)
	out.DateTime.Eras = cloneStrings(d.DateTime.Eras)
	out.DateTime.EraNames = cloneStrings(d.DateTime.EraNames)
	out.DateTime.Presets = maps.Clone(d.DateTime.Presets)
	return out
}

// mergeLocaleData overlays the non-empty fields of override on base.
func mergeLocaleData(base, override LocaleData) LocaleData {
	out := base.Clone()
	if override.Locale != "" {
		out.Locale = override.Locale
	}

	num := override.Number
	setString(&out.Number.DecimalSep, num.DecimalSep)
	setString(&out.Number.GroupSep, num.GroupSep)
	setString(&out.Number.CurrencySymbol, num.CurrencySymbol)
	setString(&out.Number.CurrencyCode, num.CurrencyCode)
	if !num.Decimal.IsZero() {
		out.Number.Decimal = num.Decimal
	}
	if !num.Currency.IsZero() {
		out.Number.Currency = num.Currency
	}

	dt := override.DateTime
	setStrings(&out.DateTime.Months, dt.Months)
	setStrings(&out.DateTime.ShortMonths, dt.ShortMonths)
	setStrings(&out.DateTime.Days, dt.Days)
	setStrings(&out.DateTime.ShortDays, dt.ShortDays)
	setStrings(&out.DateTime.AmPms, dt.AmPms)
	setStrings(&out.DateTime.Eras, dt.Eras)
	setStrings(&out.DateTime.EraNames, dt.EraNames)
	if len(dt.Presets) > 0 {
		if out.DateTime.Presets == nil {
			out.DateTime.Presets = make(map[string]string, len(dt.Presets))
		}
		maps.Copy(out.DateTime.Presets, dt.Presets)
	}

	return out
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func setStrings(dst *[]string, values []string) {
	if len(values) > 0 {
		*dst = cloneStrings(values)
	}
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	return append([]string(nil), values...)
}

// LocaleDataProvider resolves locale data with fallbacks
type LocaleDataProvider struct {
	data     map[string]LocaleData
	resolver FallbackResolver
}

// NewLocaleDataProvider seeds a provider with the generated CLDR bundles
// and overlays the supplied locale data on top of them. An override for a
// locale without a bundle is merged onto its closest fallback.
func NewLocaleDataProvider(overrides map[string]LocaleData, resolver FallbackResolver) (*LocaleDataProvider, error) {
	p := &LocaleDataProvider{
		data:     make(map[string]LocaleData, len(cldrLocaleData)+len(overrides)),
		resolver: resolver,
	}
	for locale, data := range cldrLocaleData {
		p.data[locale] = data.Clone()
	}

	locales := make([]string, 0, len(overrides))
	for locale := range overrides {
		locales = append(locales, locale)
	}
	// parents before children so a child override merges onto its overridden parent
	sort.Slice(locales, func(i, j int) bool {
		if len(locales[i]) != len(locales[j]) {
			return len(locales[i]) < len(locales[j])
		}
		return locales[i] < locales[j]
	})

	for _, locale := range locales {
		normalized := normalizeLocale(locale)
		if normalized == "" {
			continue
		}
		base := *p.Get(normalized)
		merged := mergeLocaleData(base, overrides[locale])
		merged.Locale = normalized
		if err := merged.Validate(); err != nil {
			return nil, err
		}
		p.data[normalized] = merged
	}

	return p, nil
}

// Get returns locale data for locale, trying the exact locale, the resolver
// chain, the parent chain and finally English.
func (p *LocaleDataProvider) Get(locale string) *LocaleData {
	if data, ok := p.Lookup(locale); ok {
		return data
	}
	if p != nil {
		if data, ok := p.data["en"]; ok {
			return &data
		}
	}
	data := cldrLocaleData["en"].Clone()
	return &data
}

// Lookup is like Get without the final English fallback.
func (p *LocaleDataProvider) Lookup(locale string) (*LocaleData, bool) {
	if p == nil || p.data == nil {
		return nil, false
	}

	locale = normalizeLocale(locale)
	if locale == "" {
		return nil, false
	}

	for _, candidate := range p.candidates(locale) {
		if data, ok := p.data[candidate]; ok {
			return &data, true
		}
	}
	return nil, false
}

// Locales lists the locales with their own data, sorted.
func (p *LocaleDataProvider) Locales() []string {
	if p == nil {
		return nil
	}
	locales := make([]string, 0, len(p.data))
	for locale := range p.data {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}

func (p *LocaleDataProvider) candidates(locale string) []string {
	chain := []string{locale}
	if p.resolver != nil {
		for _, candidate := range p.resolver.Resolve(locale) {
			if !containsLocale(chain, candidate) {
				chain = append(chain, candidate)
			}
		}
	}
	for _, parent := range localeParentChain(locale) {
		if !containsLocale(chain, parent) {
			chain = append(chain, parent)
		}
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return chain
	}
	if base, conf := tag.Base(); conf >= language.High {
		if value := base.String(); value != "und" && !containsLocale(chain, value) {
			chain = append(chain, value)
		}
	}
	return chain
}
