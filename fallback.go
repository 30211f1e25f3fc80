package formatters

import "sync"

// FallbackResolver resolves fallback locale chains
type FallbackResolver interface {
	Resolve(locale string) []string
}

// StaticFallbackResolver keeps explicit fallback chains per locale.
type StaticFallbackResolver struct {
	mu     sync.RWMutex
	chains map[string][]string
}

var _ FallbackResolver = &StaticFallbackResolver{}

func NewStaticFallbackResolver() *StaticFallbackResolver {
	return &StaticFallbackResolver{chains: make(map[string][]string)}
}

// Set replaces the chain for locale, dropping blanks, duplicates and the
// locale itself.
func (s *StaticFallbackResolver) Set(locale string, fallbacks ...string) {
	locale = normalizeLocale(locale)
	if s == nil || locale == "" {
		return
	}

	chain := make([]string, 0, len(fallbacks))
	for _, fallback := range fallbacks {
		fallback = normalizeLocale(fallback)
		if fallback == "" || fallback == locale || containsLocale(chain, fallback) {
			continue
		}
		chain = append(chain, fallback)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.chains == nil {
		s.chains = make(map[string][]string)
	}
	s.chains[locale] = chain
}

func (s *StaticFallbackResolver) Resolve(locale string) []string {
	if s == nil {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	chain, ok := s.chains[normalizeLocale(locale)]
	if !ok {
		return nil
	}
	return append([]string(nil), chain...)
}
