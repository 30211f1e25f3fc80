package formatters

import (
	"reflect"
	"testing"
)

func TestLocaleParentChain(t *testing.T) {
	tests := []struct {
		locale string
		want   []string
	}{
		{"en-GB", []string{"en-001", "en"}},
		{"en_US", []string{"en"}},
		{"es-MX", []string{"es-419", "es"}},
		{"en", nil},
		{"", nil},
	}

	for _, tt := range tests {
		if got := localeParentChain(tt.locale); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("localeParentChain(%q) = %v want %v", tt.locale, got, tt.want)
		}
	}
}

func TestNormalizeLocales(t *testing.T) {
	got := normalizeLocales([]string{" es_MX ", "en", "", "es-MX", "de"})
	if !reflect.DeepEqual(got, []string{"de", "en", "es-MX"}) {
		t.Fatalf("normalizeLocales = %v", got)
	}

	if normalizeLocales(nil) != nil {
		t.Fatal("expected nil for no locales")
	}
}
