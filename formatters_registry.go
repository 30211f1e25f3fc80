package formatters

import (
	"fmt"
	"log/slog"
	"maps"
	"sync"
)

type FormatterCapabilities struct {
	Number   bool
	Currency bool
	Date     bool
	Text     bool
}

func mergeCapabilities(a, b FormatterCapabilities) FormatterCapabilities {
	return FormatterCapabilities{
		Number:   a.Number || b.Number,
		Currency: a.Currency || b.Currency,
		Date:     a.Date || b.Date,
		Text:     a.Text || b.Text,
	}
}

type compositeTypedProvider struct {
	providers []TypedFormatterProvider
}

func newCompositeTypedProvider(providers ...TypedFormatterProvider) TypedFormatterProvider {
	flattened := make([]TypedFormatterProvider, 0, len(providers))
	for _, provider := range providers {
		if provider == nil {
			continue
		}
		if composite, ok := provider.(*compositeTypedProvider); ok {
			flattened = append(flattened, composite.providers...)
			continue
		}
		flattened = append(flattened, provider)
	}

	switch len(flattened) {
	case 0:
		return nil
	case 1:
		return flattened[0]
	default:
		return &compositeTypedProvider{providers: flattened}
	}
}

func (c *compositeTypedProvider) Formatter(name string) (any, bool) {
	if c == nil {
		return nil, false
	}
	for i := len(c.providers) - 1; i >= 0; i-- {
		if fn, ok := c.providers[i].Formatter(name); ok {
			return fn, true
		}
	}
	return nil, false
}

func (c *compositeTypedProvider) FuncMap() map[string]any {
	result := make(map[string]any)
	if c == nil {
		return result
	}
	for _, provider := range c.providers {
		maps.Copy(result, provider.FuncMap())
	}
	return result
}

func (c *compositeTypedProvider) Capabilities() FormatterCapabilities {
	var caps FormatterCapabilities
	if c == nil {
		return caps
	}
	for _, provider := range c.providers {
		caps = mergeCapabilities(caps, provider.Capabilities())
	}
	return caps
}

// FormatterProvider builds the named formatters for a locale on demand.
type FormatterProvider func(locale string) map[string]any

type TypedFormatterProvider interface {
	Formatter(name string) (any, bool)
	FuncMap() map[string]any
	Capabilities() FormatterCapabilities
}

// FormatterRegistry maps formatter names to implementations, with locale
// specific providers and overrides layered over the defaults. It is built
// once and handed to the code that renders values.
type FormatterRegistry struct {
	mu         sync.RWMutex
	defaults   map[string]any
	overrides  map[string]map[string]any
	providers  map[string]FormatterProvider
	globals    map[string]any
	funcCache  map[string]map[string]any
	resolver   FallbackResolver
	locales    []string
	typed      map[string]TypedFormatterProvider
	caps       map[string]FormatterCapabilities
	localeData *LocaleDataProvider
	clock      Clock
	logger     *slog.Logger
	baseLocale string
}

type formatterRegistryConfig struct {
	resolver   FallbackResolver
	locales    []string
	baseLocale string
	providers  map[string]FormatterProvider
	typed      map[string]TypedFormatterProvider
	localeData *LocaleDataProvider
	clock      Clock
	logger     *slog.Logger
}

type FormatterRegistryOption func(*formatterRegistryConfig)

func WithFormatterRegistryResolver(resolver FallbackResolver) FormatterRegistryOption {
	return func(frc *formatterRegistryConfig) {
		frc.resolver = resolver
	}
}

func WithFormatterRegistryLocales(locales ...string) FormatterRegistryOption {
	return func(frc *formatterRegistryConfig) {
		frc.locales = append(frc.locales, locales...)
	}
}

func WithFormatterRegistryTypedProvider(locale string, provider TypedFormatterProvider) FormatterRegistryOption {
	return func(frc *formatterRegistryConfig) {
		if locale == "" || provider == nil {
			return
		}
		if frc.typed == nil {
			frc.typed = make(map[string]TypedFormatterProvider)
		}
		frc.typed[locale] = provider
	}
}

func WithFormatterRegistryProvider(locale string, provider FormatterProvider) FormatterRegistryOption {
	return func(frc *formatterRegistryConfig) {
		if locale == "" || provider == nil {
			return
		}
		if frc.providers == nil {
			frc.providers = make(map[string]FormatterProvider)
		}
		frc.providers[locale] = provider
	}
}

// WithFormatterRegistryDefaultLocale picks the locale whose formatters
// serve lookups that match no registered locale.
func WithFormatterRegistryDefaultLocale(locale string) FormatterRegistryOption {
	return func(frc *formatterRegistryConfig) {
		frc.baseLocale = normalizeLocale(locale)
	}
}

// WithFormatterRegistryLocaleData sets the locale data backing the number,
// currency and date formatters.
func WithFormatterRegistryLocaleData(provider *LocaleDataProvider) FormatterRegistryOption {
	return func(frc *formatterRegistryConfig) {
		frc.localeData = provider
	}
}

// WithFormatterRegistryClock sets the clock handed to date formatters.
func WithFormatterRegistryClock(clock Clock) FormatterRegistryOption {
	return func(frc *formatterRegistryConfig) {
		frc.clock = clock
	}
}

func WithFormatterRegistryLogger(logger *slog.Logger) FormatterRegistryOption {
	return func(frc *formatterRegistryConfig) {
		frc.logger = logger
	}
}

// NewFormatterRegistry seeds a registry with the bundled locale formatters.
// It panics when a configured locale ends up without a provider.
func NewFormatterRegistry(opts ...FormatterRegistryOption) *FormatterRegistry {
	cfg := formatterRegistryConfig{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	cfg.locales = normalizeLocales(cfg.locales)
	if cfg.clock == nil {
		cfg.clock = SystemClock{}
	}
	if cfg.localeData == nil {
		// bundled data never fails validation
		cfg.localeData, _ = NewLocaleDataProvider(nil, cfg.resolver)
	}

	registry := &FormatterRegistry{
		defaults:   textFormatters(),
		overrides:  make(map[string]map[string]any),
		providers:  make(map[string]FormatterProvider),
		resolver:   cfg.resolver,
		locales:    cfg.locales,
		localeData: cfg.localeData,
		clock:      cfg.clock,
		logger:     loggerOrDiscard(cfg.logger),
		baseLocale: cfg.baseLocale,
	}

	registry.seedFallbacks()
	registry.registerDefaults(cfg.locales)
	registry.registerTypedProviders(cfg.typed)
	registry.registerConfiguredProviders(cfg.providers)
	registry.ensureConfiguredProviders()

	return registry
}

func (r *FormatterRegistry) registerDefaults(locales []string) {
	localesToRegister := locales
	if len(localesToRegister) == 0 {
		localesToRegister = GeneratedCLDRLocales()
	}

	// locale independent defaults resolve through the default locale's data
	base := newLocaleProvider(r.defaultLocale(), r.localeData.Get(r.defaultLocale()), r.clock)
	maps.Copy(r.defaults, base.FuncMap())

	r.RegisterTypedProvider("*", textProvider{})
	RegisterLocaleFormatters(r, r.localeData, r.clock, localesToRegister...)
}

func (r *FormatterRegistry) registerTypedProviders(providers map[string]TypedFormatterProvider) {
	for locale, provider := range providers {
		if locale == "" || provider == nil {
			continue
		}
		r.RegisterTypedProvider(locale, provider)
	}
}

func (r *FormatterRegistry) registerConfiguredProviders(providers map[string]FormatterProvider) {
	for locale, provider := range providers {
		if locale == "" || provider == nil {
			continue
		}
		r.RegisterProvider(locale, provider)
	}
}

// Register sets or replaces the implementation of name for every locale.
func (r *FormatterRegistry) Register(name string, fn any) {
	if name == "" || fn == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.defaults == nil {
		r.defaults = make(map[string]any)
	}
	r.defaults[name] = fn

	if r.globals == nil {
		r.globals = make(map[string]any)
	}
	r.globals[name] = fn
	r.invalidateFuncCacheLocked()
	r.logger.Debug("formatter registered", "name", name)
}

// RegisterLocale registers a locale specific override for name.
func (r *FormatterRegistry) RegisterLocale(locale, name string, fn any) {
	if locale == "" || name == "" || fn == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.overrides == nil {
		r.overrides = make(map[string]map[string]any)
	}

	helpers := r.overrides[locale]
	if helpers == nil {
		helpers = make(map[string]any)
		r.overrides[locale] = helpers
	}
	helpers[name] = fn
	r.invalidateFuncCacheLocked()
	r.logger.Debug("formatter override registered", "locale", locale, "name", name)
}

func (r *FormatterRegistry) RegisterProvider(locale string, provider FormatterProvider) {
	if locale == "" || provider == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.providers == nil {
		r.providers = make(map[string]FormatterProvider)
	}

	r.providers[locale] = provider
	r.invalidateFuncCacheLocked()
}

func (r *FormatterRegistry) RegisterTypedProvider(locale string, provider TypedFormatterProvider) {
	if locale == "" || provider == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.typed == nil {
		r.typed = make(map[string]TypedFormatterProvider)
	}
	combined := newCompositeTypedProvider(r.typed[locale], provider)
	r.typed[locale] = combined

	if r.caps == nil {
		r.caps = make(map[string]FormatterCapabilities)
	}
	r.caps[locale] = mergeCapabilities(r.caps[locale], combined.Capabilities())

	r.invalidateFuncCacheLocked()
	r.logger.Debug("formatter provider registered", "locale", locale)
}

// Capabilities reports what the providers of locale and its fallbacks can format.
func (r *FormatterRegistry) Capabilities(locale string) FormatterCapabilities {
	r.mu.RLock()
	defer r.mu.RUnlock()

	caps := r.caps["*"]
	for _, candidate := range r.candidateLocales(locale) {
		caps = mergeCapabilities(caps, r.caps[candidate])
	}
	return caps
}

// Formatter returns the implementation of name for locale.
func (r *FormatterRegistry) Formatter(name, locale string) (any, bool) {
	if name == "" {
		return nil, false
	}

	funcs := r.funcMapForLocale(locale)
	if fn, ok := funcs[name]; ok && fn != nil {
		return fn, true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if fn, ok := r.defaults[name]; ok {
		return fn, true
	}

	return nil, false
}

// Number returns the number formatter of locale.
func (r *FormatterRegistry) Number(locale string) (NumberFunc, bool) {
	return lookupFormatter[NumberFunc](r, NameNumber, locale)
}

// Currency returns the symbol based currency formatter of locale.
func (r *FormatterRegistry) Currency(locale string) (CurrencyFunc, bool) {
	return lookupFormatter[CurrencyFunc](r, NameCurrency, locale)
}

// Date returns the date formatter of locale.
func (r *FormatterRegistry) Date(locale string) (DateFunc, bool) {
	return lookupFormatter[DateFunc](r, NameDate, locale)
}

func lookupFormatter[T any](r *FormatterRegistry, name, locale string) (T, bool) {
	var zero T
	fn, ok := r.Formatter(name, locale)
	if !ok {
		return zero, false
	}
	typed, ok := fn.(T)
	return typed, ok
}

// FuncMap returns all formatters applicable to the locale.
func (r *FormatterRegistry) FuncMap(locale string) map[string]any {
	return cloneFuncMap(r.funcMapForLocale(locale))
}

func (r *FormatterRegistry) funcMapForLocale(locale string) map[string]any {
	key := normalizeLocale(locale)

	r.mu.RLock()
	if cached, ok := r.funcCache[key]; ok {
		r.mu.RUnlock()
		return cached
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.funcCache == nil {
		r.funcCache = make(map[string]map[string]any)
	} else if cached, ok := r.funcCache[key]; ok {
		return cached
	}

	effective := key
	if effective == "" {
		effective = r.defaultLocale()
	}

	result := make(map[string]any, len(r.defaults))
	maps.Copy(result, r.defaults)
	if provider := r.typed["*"]; provider != nil {
		maps.Copy(result, provider.FuncMap())
	}

	candidates := r.candidateLocales(effective)

	// least specific first so the target locale wins
	for i := len(candidates) - 1; i >= 0; i-- {
		candidate := candidates[i]

		if provider := r.typed[candidate]; provider != nil {
			maps.Copy(result, provider.FuncMap())
		}

		if provider, ok := r.providers[candidate]; ok && provider != nil {
			if helpers := provider(candidate); helpers != nil {
				maps.Copy(result, helpers)
			}
		}

		if helpers, ok := r.overrides[candidate]; ok {
			maps.Copy(result, helpers)
		}
	}

	maps.Copy(result, r.globals)

	// only locales with their own formatters are cached
	if key == "" || r.hasProviderLocked(effective) {
		r.funcCache[key] = result
	}
	return result
}

func (r *FormatterRegistry) invalidateFuncCacheLocked() {
	if r == nil {
		return
	}
	r.funcCache = nil
}

func (r *FormatterRegistry) candidateLocales(locale string) []string {
	if locale == "" {
		return nil
	}

	chain := []string{locale}
	if r.resolver != nil {
		for _, parent := range r.resolver.Resolve(locale) {
			if parent == "" || containsLocale(chain, parent) {
				continue
			}
			chain = append(chain, parent)
		}
	}

	return chain
}

func (r *FormatterRegistry) seedFallbacks() {
	resolver, ok := r.resolver.(*StaticFallbackResolver)
	if !ok || resolver == nil {
		return
	}

	for _, locale := range r.locales {
		if locale == "" {
			continue
		}

		if existing := resolver.Resolve(locale); len(existing) > 0 {
			continue
		}

		if parents := localeParentChain(locale); len(parents) > 0 {
			resolver.Set(locale, parents...)
		}
	}
}

func (r *FormatterRegistry) ensureConfiguredProviders() {
	if len(r.locales) == 0 {
		return
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, locale := range r.locales {
		if locale == "" {
			continue
		}
		if !r.hasProviderLocked(locale) {
			panic(fmt.Sprintf("formatters: formatter provider missing for locale %q", locale))
		}
	}
}

func (r *FormatterRegistry) hasProviderLocked(locale string) bool {
	for _, candidate := range r.candidateLocales(locale) {
		if provider := r.typed[candidate]; provider != nil {
			return true
		}
		if provider := r.providers[candidate]; provider != nil {
			return true
		}
	}
	return false
}

func cloneFuncMap(source map[string]any) map[string]any {
	if len(source) == 0 {
		return map[string]any{}
	}
	return maps.Clone(source)
}

func (r *FormatterRegistry) defaultLocale() string {
	if r == nil {
		return ""
	}

	if r.baseLocale != "" {
		return r.baseLocale
	}

	if len(r.locales) > 0 {
		return r.locales[0]
	}

	if len(generatedCLDRLocales) > 0 {
		return generatedCLDRLocales[0]
	}

	return ""
}
