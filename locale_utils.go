package formatters

import (
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// localeParentChain returns the parents of locale from closest to root,
// combining CLDR parent locales (en-GB -> en-001 -> en) with plain
// subtag truncation for identifiers x/text cannot parse.
func localeParentChain(locale string) []string {
	locale = normalizeLocale(locale)
	if locale == "" {
		return nil
	}

	var chain []string
	appendParent := func(value string) bool {
		if value == "" || value == "und" || value == locale || containsLocale(chain, value) {
			return false
		}
		chain = append(chain, value)
		return true
	}

	if tag, err := language.Parse(locale); err == nil {
		for parent := tag.Parent(); parent != language.Und; parent = parent.Parent() {
			if !appendParent(parent.String()) {
				break
			}
		}
	}

	for current := locale; ; {
		idx := strings.LastIndex(current, "-")
		if idx <= 0 {
			break
		}
		current = current[:idx]
		appendParent(current)
	}

	return chain
}

// normalizeLocale trims whitespace and swaps underscores for hyphens.
func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
}

// normalizeLocales normalizes, de-duplicates and sorts locales.
func normalizeLocales(locales []string) []string {
	if len(locales) == 0 {
		return nil
	}

	result := make([]string, 0, len(locales))
	for _, locale := range locales {
		normalized := normalizeLocale(locale)
		if normalized == "" || containsLocale(result, normalized) {
			continue
		}
		result = append(result, normalized)
	}

	slices.Sort(result)
	return result
}

func containsLocale(locales []string, target string) bool {
	return slices.Contains(locales, target)
}
