package formatters

import (
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig(
		WithLocales("es", "en", "en"),
		WithDefaultLocale("es"),
	)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	if cfg.DefaultLocale != "es" {
		t.Fatalf("DefaultLocale = %q", cfg.DefaultLocale)
	}

	expected := []string{"en", "es"}
	if len(cfg.Locales) != len(expected) {
		t.Fatalf("Locales length = %d, want %d", len(cfg.Locales), len(expected))
	}
	for i, locale := range expected {
		if cfg.Locales[i] != locale {
			t.Fatalf("Locales[%d] = %q, want %q", i, cfg.Locales[i], locale)
		}
	}

	if cfg.Resolver == nil {
		t.Fatal("expected fallback resolver")
	}

	if cfg.Clock == nil || cfg.Clock.Location() != time.UTC {
		t.Fatal("expected UTC system clock")
	}

	if cfg.Logger == nil {
		t.Fatal("expected discard logger")
	}
}

func TestNewConfigDefaultLocaleFallsBackToEnglish(t *testing.T) {
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.DefaultLocale != "en" {
		t.Fatalf("DefaultLocale = %q", cfg.DefaultLocale)
	}
}

func TestNewConfigUnknownLocale(t *testing.T) {
	_, err := NewConfig(WithLocales("fr"))
	if !errors.Is(err, ErrUnknownLocale) {
		t.Fatalf("expected ErrUnknownLocale, got %v", err)
	}

	for _, locale := range []string{"xx", "zz-Latn", "xx_YY"} {
		_, err = NewConfig(WithLocales(locale))
		if !errors.Is(err, ErrUnknownLocale) {
			t.Fatalf("expected ErrUnknownLocale for %q, got %v", locale, err)
		}
	}

	_, err = NewConfig(WithDefaultLocale("de"))
	if !errors.Is(err, ErrUnknownLocale) {
		t.Fatalf("expected ErrUnknownLocale for default locale, got %v", err)
	}
}

func TestConfigWithFallbackOption(t *testing.T) {
	cfg, err := NewConfig(
		WithFallback("fr", "es", "en", "es"),
		WithLocales("fr"),
	)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	chain := cfg.Resolver.Resolve("fr")

	expected := []string{"es", "en"}
	if len(chain) != len(expected) {
		t.Fatalf("fallback chain length = %d want %d", len(chain), len(expected))
	}

	for i, locale := range expected {
		if chain[i] != locale {
			t.Fatalf("fallback[%d] = %q want %q", i, chain[i], locale)
		}
	}

	if got := cfg.NumberFormatter("fr").Number(1234.5); got != "1.234,5" {
		t.Fatalf("fr should format with es data, got %q", got)
	}
}

func TestConfigBuildRegistry(t *testing.T) {
	cfg, err := NewConfig(
		WithLocales("en", "es"),
		WithDefaultLocale("en"),
	)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	registry, err := cfg.BuildRegistry()
	if err != nil {
		t.Fatalf("BuildRegistry: %v", err)
	}

	again, err := cfg.BuildRegistry()
	if err != nil || again != registry {
		t.Fatal("BuildRegistry should reuse the registry")
	}

	currency, ok := registry.Currency("es")
	if !ok {
		t.Fatal("expected es currency formatter")
	}
	if got := currency(12.5, ""); got != "12,50\u00a0€" {
		t.Fatalf("es currency = %q", got)
	}
}

func TestConfigBuildRegistryNil(t *testing.T) {
	var cfg *Config
	if _, err := cfg.BuildRegistry(); !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("expected ErrNotImplemented, got %v", err)
	}
}

func TestConfigLocaleDataFiles(t *testing.T) {
	cfg, err := NewConfig(
		WithLocaleDataFile(filepath.Join("testdata", "locales.json")),
		WithLocaleDataFile(filepath.Join("testdata", "locales.yaml")),
		WithLocaleDataOverride("en", filepath.Join("testdata", "en_override.yml")),
		WithLocales("en", "es-MX"),
	)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	numbers := cfg.NumberFormatter("en")
	if got := numbers.Currency(-5, ""); got != "-USD 5.00" {
		t.Fatalf("en currency = %q", got)
	}
	if got := numbers.Number(1.23456); got != "1.23" {
		t.Fatalf("en number = %q", got)
	}

	dates := cfg.DateFormatter("es-MX")
	got, err := dates.Format(time.Date(2010, 9, 3, 12, 5, 8, 0, time.UTC), PresetShortDate)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got != "03/09/10" {
		t.Fatalf("es-MX shortDate = %q", got)
	}

	locales := cfg.LocaleData().Locales()
	if strings.Join(locales, ",") != "en,es,es-MX" {
		t.Fatalf("locales = %v", locales)
	}
}

func TestConfigLocaleDataOverrideRequiresPath(t *testing.T) {
	if _, err := NewConfig(WithLocaleDataOverride("en", "")); err == nil {
		t.Fatal("expected error for empty override path")
	}
}

func TestConfigInvalidLocaleDataFile(t *testing.T) {
	if _, err := NewConfig(WithLocaleDataFile(filepath.Join("testdata", "empty.json"))); err == nil {
		t.Fatal("expected error for file without locales")
	}
}

func TestConfigClockAndLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	zone := time.FixedZone("UTC-0500", -5*3600)

	cfg, err := NewConfig(
		WithClock(FixedClock{Zone: zone}),
		WithLogger(logger),
		WithLocaleDataFile(filepath.Join("testdata", "locales.json")),
	)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	got, err := cfg.DateFormatter("").Format(int64(1283533508000), "HH:mm")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got != "12:05" {
		t.Fatalf("date should be rendered in the clock zone, got %q", got)
	}

	if _, err := cfg.BuildRegistry(); err != nil {
		t.Fatalf("BuildRegistry: %v", err)
	}

	logs := buf.String()
	if !strings.Contains(logs, "locale data merged") || !strings.Contains(logs, "formatter registry built") {
		t.Fatalf("expected debug logs, got %q", logs)
	}
}
