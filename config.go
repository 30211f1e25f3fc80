package formatters

import (
	"fmt"
	"log/slog"
	"slices"
	"text/template"
	"time"
)

// Config captures formatter setup
type Config struct {
	DefaultLocale string
	Locales       []string
	Resolver      FallbackResolver
	Clock         Clock
	Logger        *slog.Logger

	dataPaths     []string
	dataOverrides map[string]string
	localeData    *LocaleDataProvider
	registry      *FormatterRegistry
}

// Option mutates Config during construction
type Option func(*Config) error

// NewConfig builds Config via supplied options. Every configured locale
// must resolve to locale data, otherwise ErrUnknownLocale is returned.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	cfg.Locales = normalizeLocales(cfg.Locales)
	cfg.DefaultLocale = normalizeLocale(cfg.DefaultLocale)

	if cfg.Resolver == nil {
		cfg.Resolver = NewStaticFallbackResolver()
	}

	if cfg.Clock == nil {
		cfg.Clock = SystemClock{Zone: time.UTC}
	}

	cfg.Logger = loggerOrDiscard(cfg.Logger)

	if err := cfg.loadLocaleData(); err != nil {
		return nil, err
	}

	if cfg.DefaultLocale == "" {
		if len(cfg.Locales) > 0 {
			cfg.DefaultLocale = cfg.Locales[0]
		} else {
			cfg.DefaultLocale = "en"
		}
	}

	if err := cfg.validateLocales(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithDefaultLocale sets the default locale in Config
func WithDefaultLocale(locale string) Option {
	return func(c *Config) error {
		c.DefaultLocale = locale
		return nil
	}
}

// WithLocales registers supported locales
func WithLocales(locales ...string) Option {
	return func(c *Config) error {
		c.Locales = append(c.Locales, locales...)
		return nil
	}
}

func WithFallbackResolver(resolver FallbackResolver) Option {
	return func(c *Config) error {
		c.Resolver = resolver
		return nil
	}
}

func WithFallback(locale string, fallbacks ...string) Option {
	return func(c *Config) error {
		if locale == "" {
			return nil
		}
		resolver, ok := c.Resolver.(*StaticFallbackResolver)
		if !ok {
			if c.Resolver != nil {
				return nil
			}
			resolver = NewStaticFallbackResolver()
			c.Resolver = resolver
		}
		resolver.Set(locale, fallbacks...)
		return nil
	}
}

// WithClock sets the clock used to decompose numeric and string dates.
func WithClock(clock Clock) Option {
	return func(c *Config) error {
		c.Clock = clock
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithLocaleDataFile adds a JSON or YAML locale data bundle. Files are
// merged in the order given, on top of the generated CLDR data.
func WithLocaleDataFile(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return nil
		}
		c.dataPaths = append(c.dataPaths, path)
		c.localeData = nil
		c.registry = nil
		return nil
	}
}

// WithLocaleDataOverride adds a file holding a single locale's data.
func WithLocaleDataOverride(locale, path string) Option {
	return func(c *Config) error {
		if locale == "" || path == "" {
			return fmt.Errorf("formatters: locale data override needs a locale and a path")
		}
		if c.dataOverrides == nil {
			c.dataOverrides = make(map[string]string)
		}
		c.dataOverrides[locale] = path
		c.localeData = nil
		c.registry = nil
		return nil
	}
}

// LocaleData exposes the merged locale data.
func (cfg *Config) LocaleData() *LocaleDataProvider {
	if cfg == nil {
		return nil
	}
	return cfg.localeData
}

// BuildRegistry returns the formatter registry for the configured locales,
// creating it on first use.
func (cfg *Config) BuildRegistry() (*FormatterRegistry, error) {
	if cfg == nil || cfg.localeData == nil {
		return nil, ErrNotImplemented
	}

	if cfg.registry != nil {
		return cfg.registry, nil
	}

	locales := slices.Clone(cfg.Locales)
	if len(locales) == 0 {
		locales = cfg.localeData.Locales()
	}

	cfg.registry = NewFormatterRegistry(
		WithFormatterRegistryResolver(cfg.Resolver),
		WithFormatterRegistryLocales(append(locales, cfg.DefaultLocale)...),
		WithFormatterRegistryDefaultLocale(cfg.DefaultLocale),
		WithFormatterRegistryLocaleData(cfg.localeData),
		WithFormatterRegistryClock(cfg.Clock),
		WithFormatterRegistryLogger(cfg.Logger),
	)
	cfg.Logger.Debug("formatter registry built", "locales", len(locales), "default", cfg.DefaultLocale)

	return cfg.registry, nil
}

// FormatterRegistry is BuildRegistry for callers that already validated the config.
func (cfg *Config) FormatterRegistry() *FormatterRegistry {
	registry, err := cfg.BuildRegistry()
	if err != nil {
		return nil
	}
	return registry
}

// NumberFormatter returns a number formatter for locale, or the default
// locale when locale is empty.
func (cfg *Config) NumberFormatter(locale string) *NumberFormatter {
	locale = cfg.localeOrDefault(locale)
	return NewNumberFormatter(locale, cfg.localeData.Get(locale).Number)
}

// DateFormatter returns a date formatter for locale, or the default
// locale when locale is empty.
func (cfg *Config) DateFormatter(locale string) *DateFormatter {
	locale = cfg.localeOrDefault(locale)
	return NewDateFormatter(cfg.localeData.Get(locale).DateTime, cfg.Clock)
}

// TemplateFuncs returns the template functions for locale.
func (cfg *Config) TemplateFuncs(locale string) template.FuncMap {
	return TemplateFuncs(cfg.FormatterRegistry(), cfg.localeOrDefault(locale))
}

func (cfg *Config) localeOrDefault(locale string) string {
	if locale = normalizeLocale(locale); locale != "" {
		return locale
	}
	return cfg.DefaultLocale
}

func (cfg *Config) loadLocaleData() error {
	var overrides map[string]LocaleData

	if len(cfg.dataPaths) > 0 || len(cfg.dataOverrides) > 0 {
		loader := NewLocaleDataLoader(cfg.dataPaths...).WithLogger(cfg.Logger)
		for locale, path := range cfg.dataOverrides {
			loader.AddOverride(locale, path)
		}

		loaded, err := loader.Load()
		if err != nil {
			return err
		}
		overrides = loaded
	}

	provider, err := NewLocaleDataProvider(overrides, cfg.Resolver)
	if err != nil {
		return err
	}
	cfg.localeData = provider
	return nil
}

func (cfg *Config) validateLocales() error {
	for _, locale := range append([]string{cfg.DefaultLocale}, cfg.Locales...) {
		if _, ok := cfg.localeData.Lookup(locale); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownLocale, locale)
		}
	}
	return nil
}
