package formatters

import (
	"strings"
	"testing"
	"text/template"
	"time"
)

func renderTemplate(t *testing.T, funcs template.FuncMap, text string, data any) string {
	t.Helper()

	tmpl, err := template.New("test").Funcs(funcs).Parse(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		t.Fatalf("execute: %v", err)
	}
	return out.String()
}

func TestTemplateFuncsEnglish(t *testing.T) {
	funcs := TemplateFuncs(NewFormatterRegistry(), "en")

	data := map[string]any{
		"Name":  "ada",
		"Total": 1234.5,
		"When":  time.Date(2010, 9, 3, 12, 5, 8, 0, time.UTC),
		"Tags":  []string{"a"},
	}

	tests := []struct {
		text string
		want string
	}{
		{`{{ number .Total }}`, "1,234.5"},
		{`{{ number .Total 2 }}`, "1,234.50"},
		{`{{ currency .Total }}`, "$1,234.50"},
		{`{{ currency .Total "€" }}`, "€1,234.50"},
		{`{{ currency .Total "" 0 }}`, "$1,235"},
		{`{{ currency_code .Total "EUR" }}`, "€1,234.50"},
		{`{{ date .When "shortDate" }}`, "9/3/10"},
		{`{{ date .When }}`, "Sep 3, 2010"},
		{`{{ .Name | uppercase }}`, "ADA"},
		{`{{ "ABC" | lowercase }}`, "abc"},
		{`{{ json .Tags }}`, "[\n  \"a\"\n]"},
	}

	for _, tt := range tests {
		if got := renderTemplate(t, funcs, tt.text, data); got != tt.want {
			t.Fatalf("%s = %q want %q", tt.text, got, tt.want)
		}
	}
}

func TestTemplateFuncsSpanish(t *testing.T) {
	funcs := TemplateFuncs(NewFormatterRegistry(), "es")

	got := renderTemplate(t, funcs, `{{ number .Total 2 }} | {{ date .When "longDate" }}`, map[string]any{
		"Total": 1234567.1,
		"When":  time.Date(2010, 9, 3, 12, 5, 8, 0, time.UTC),
	})

	if got != "1.234.567,10 | 3 de septiembre de 2010" {
		t.Fatalf("es template = %q", got)
	}
}

func TestTemplateFuncsNilRegistry(t *testing.T) {
	funcs := TemplateFuncs(nil, "en")

	for _, name := range []string{NameNumber, NameCurrency, NameCurrencyCode, NameDate, NameUppercase, NameLowercase, NameJSON} {
		if _, ok := funcs[name]; !ok {
			t.Fatalf("expected %q in func map", name)
		}
	}
}

func TestTemplateFuncsSkipsNonFunctions(t *testing.T) {
	registry := NewFormatterRegistry()
	registry.Register("version", "1.0")

	funcs := TemplateFuncs(registry, "en")
	if _, ok := funcs["version"]; ok {
		t.Fatal("non function values must not reach the template func map")
	}
}

func TestTemplateFuncsDateErrors(t *testing.T) {
	funcs := TemplateFuncs(NewFormatterRegistry(), "en")

	tmpl, err := template.New("test").Funcs(funcs).Parse(`{{ date .When }}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, map[string]any{"When": "not a date"}); err == nil {
		t.Fatal("expected execution error for an invalid date")
	}
}
