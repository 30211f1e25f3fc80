package formatters

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// localeDataFile is the on-disk shape of a locale data bundle.
type localeDataFile struct {
	Locales map[string]LocaleData `json:"locales" yaml:"locales"`
}

// LocaleDataLoader reads locale data bundles from JSON or YAML files.
// Later files win over earlier ones; overrides are applied last.
type LocaleDataLoader struct {
	paths     []string
	overrides map[string]string
	logger    *slog.Logger
}

func NewLocaleDataLoader(paths ...string) *LocaleDataLoader {
	return &LocaleDataLoader{
		paths:     append([]string(nil), paths...),
		overrides: make(map[string]string),
		logger:    discardLogger(),
	}
}

// WithLogger sets the logger used to report merged files.
func (l *LocaleDataLoader) WithLogger(logger *slog.Logger) *LocaleDataLoader {
	if l != nil {
		l.logger = loggerOrDiscard(logger)
	}
	return l
}

// AddOverride registers a file holding a single LocaleData document for locale.
func (l *LocaleDataLoader) AddOverride(locale, path string) {
	locale = normalizeLocale(locale)
	if l == nil || locale == "" || path == "" {
		return
	}
	l.overrides[locale] = path
}

// Load decodes every configured file. The result only holds what the files
// declare; merging onto the bundled data happens in NewLocaleDataProvider.
func (l *LocaleDataLoader) Load() (map[string]LocaleData, error) {
	if l == nil {
		return nil, errors.New("formatters: nil locale data loader")
	}

	result := make(map[string]LocaleData)

	for _, path := range l.paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("formatters: read %s: %w", path, err)
		}

		var bundle localeDataFile
		if err := decodeLocaleFile(path, data, &bundle); err != nil {
			return nil, fmt.Errorf("formatters: decode %s: %w", path, err)
		}
		if len(bundle.Locales) == 0 {
			return nil, fmt.Errorf("formatters: decode %s: no locales declared", path)
		}

		for locale, entry := range bundle.Locales {
			locale = normalizeLocale(locale)
			if existing, ok := result[locale]; ok {
				entry = mergeLocaleData(existing, entry)
			}
			result[locale] = entry
		}
		l.logger.Debug("locale data merged", "path", path, "locales", len(bundle.Locales))
	}

	for locale, path := range l.overrides {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("formatters: load override for %q: %w", locale, err)
		}

		var entry LocaleData
		if err := decodeLocaleFile(path, data, &entry); err != nil {
			return nil, fmt.Errorf("formatters: parse override for %q: %w", locale, err)
		}
		if existing, ok := result[locale]; ok {
			entry = mergeLocaleData(existing, entry)
		}
		entry.Locale = locale
		result[locale] = entry
		l.logger.Debug("locale override applied", "locale", locale, "path", path)
	}

	return result, nil
}

func decodeLocaleFile(path string, data []byte, target any) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return json.Unmarshal(data, target)
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, target); err != nil {
			return fmt.Errorf("yaml parse error: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported extension %s", ext)
	}
}
