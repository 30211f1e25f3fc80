package main

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formatters"
	"github.com/spf13/cobra"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	cldr "golang.org/x/text/unicode/cldr"
)

type generatorConfig struct {
	pkg      string
	out      string
	cldrPath string
	locales  []string
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	cfg := generatorConfig{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the bundled locale data from CLDR",
		Long: `Generate reads the CLDR core data (main/ and supplemental/) and writes a
Go source file declaring the number symbols, number patterns, calendar
names and date presets of each requested locale.`,
		Example: "  formatters generate --cldr ./cldr/common --locale en --locale es --out formatters_cldr_data.go",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.cldrPath == "" {
				cfg.cldrPath = os.Getenv("CLDR_CORE_DIR")
			}
			if cfg.cldrPath == "" {
				return errors.New("missing CLDR data directory (set --cldr or CLDR_CORE_DIR)")
			}
			if len(cfg.locales) == 0 {
				return errors.New("at least one --locale value is required")
			}

			logger, err := root.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			logger.Info("generating locale data", "cldr", cfg.cldrPath, "locales", cfg.locales, "out", cfg.out)

			return runGenerate(cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.pkg, "pkg", "formatters", "Package name for the generated file")
	flags.StringVar(&cfg.out, "out", "formatters_cldr_data.go", "Path to the generated Go file")
	flags.StringVar(&cfg.cldrPath, "cldr", "", "Path to the CLDR core data directory")
	flags.StringSliceVar(&cfg.locales, "locale", nil, "Locale to generate, repeatable")

	return cmd
}

func runGenerate(cfg generatorConfig) error {
	data, err := loadCLDR(cfg.cldrPath)
	if err != nil {
		return err
	}

	var bundles []formatters.LocaleData
	for _, locale := range cfg.locales {
		locale = strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
		if locale == "" {
			continue
		}

		bundle, err := buildLocaleData(data, locale)
		if err != nil {
			return fmt.Errorf("build locale data for %s: %w", locale, err)
		}
		bundles = append(bundles, bundle)
	}

	sort.Slice(bundles, func(i, j int) bool {
		return bundles[i].Locale < bundles[j].Locale
	})

	source, err := renderSource(cfg.pkg, bundles)
	if err != nil {
		return err
	}

	if err := ensureDir(cfg.out); err != nil {
		return err
	}

	return os.WriteFile(cfg.out, source, 0o644)
}

func loadCLDR(path string) (*cldr.CLDR, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat CLDR directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("CLDR path %q is not a directory", path)
	}

	var decoder cldr.Decoder
	decoder.SetSectionFilter("main", "supplemental")

	data, err := decoder.DecodePath(path)
	if err != nil {
		return nil, fmt.Errorf("decode CLDR data: %w", err)
	}
	return data, nil
}

func findLDML(data *cldr.CLDR, locale string) *cldr.LDML {
	if data == nil {
		return nil
	}
	candidate := strings.ReplaceAll(locale, "-", "_")
	for candidate != "" {
		if ldml, err := data.LDML(candidate); err == nil && ldml != nil {
			return ldml
		}
		if ldml := data.RawLDML(candidate); ldml != nil {
			return ldml
		}
		idx := strings.LastIndex(candidate, "_")
		if idx < 0 {
			break
		}
		candidate = candidate[:idx]
	}
	return nil
}

func buildLocaleData(data *cldr.CLDR, locale string) (formatters.LocaleData, error) {
	ldml := findLDML(data, locale)
	if ldml == nil {
		return formatters.LocaleData{}, errors.New("missing LDML data")
	}

	result := formatters.LocaleData{Locale: locale}

	number, err := extractNumberFormats(ldml.Numbers)
	if err != nil {
		return result, err
	}
	result.Number = number
	result.Number.CurrencyCode, result.Number.CurrencySymbol = localeCurrency(ldml.Numbers, locale)

	if ldml.Dates == nil || ldml.Dates.Calendars == nil {
		return result, errors.New("missing calendar data")
	}
	var gregorian *cldr.Calendar
	for _, calendar := range ldml.Dates.Calendars.Calendar {
		if calendar != nil && calendar.Type == "gregorian" {
			gregorian = calendar
			break
		}
	}
	if gregorian == nil {
		return result, errors.New("missing gregorian calendar")
	}
	result.DateTime = extractDateTimeFormats(gregorian)

	if err := result.Validate(); err != nil {
		return result, err
	}
	return result, nil
}

func extractNumberFormats(numbers *cldr.Numbers) (formatters.NumberFormats, error) {
	var result formatters.NumberFormats
	if numbers == nil {
		return result, errors.New("missing number data")
	}

	for _, symbols := range numbers.Symbols {
		if symbols == nil || !isLatin(symbols.NumberSystem) {
			continue
		}
		if value := firstData(symbols.Decimal); value != "" {
			result.DecimalSep = value
		}
		if value := firstData(symbols.Group); value != "" {
			result.GroupSep = value
		}
	}

	var decimalPattern string
	for _, formats := range numbers.DecimalFormats {
		if formats == nil || !isLatin(formats.NumberSystem) {
			continue
		}
		for _, length := range formats.DecimalFormatLength {
			// the unnamed length holds the plain pattern, named ones are compact forms
			if length == nil || length.Type != "" {
				continue
			}
			for _, decimal := range length.DecimalFormat {
				if value := firstData(decimal.Pattern); value != "" && decimalPattern == "" {
					decimalPattern = value
				}
			}
		}
	}

	var currencyPattern, accountingPattern string
	for _, formats := range numbers.CurrencyFormats {
		if formats == nil || !isLatin(formats.NumberSystem) {
			continue
		}
		for _, length := range formats.CurrencyFormatLength {
			if length == nil || length.Type != "" {
				continue
			}
			for _, currencyFormat := range length.CurrencyFormat {
				value := firstData(currencyFormat.Pattern)
				switch currencyFormat.Type {
				case "accounting":
					if accountingPattern == "" {
						accountingPattern = value
					}
				case "standard", "":
					if currencyPattern == "" {
						currencyPattern = value
					}
				}
			}
		}
	}
	if accountingPattern != "" {
		currencyPattern = accountingPattern
	}

	if decimalPattern == "" || currencyPattern == "" {
		return result, errors.New("missing number patterns")
	}

	var err error
	if result.Decimal, err = formatters.ParseNumberPattern(decimalPattern); err != nil {
		return result, fmt.Errorf("decimal pattern %q: %w", decimalPattern, err)
	}
	if result.Currency, err = formatters.ParseNumberPattern(currencyPattern); err != nil {
		return result, fmt.Errorf("currency pattern %q: %w", currencyPattern, err)
	}

	return result, nil
}

func extractDateTimeFormats(calendar *cldr.Calendar) formatters.DateTimeFormats {
	var result formatters.DateTimeFormats

	if calendar.Months != nil {
		for _, context := range calendar.Months.MonthContext {
			if context == nil || context.Type != "format" {
				continue
			}
			for _, width := range context.MonthWidth {
				if width == nil {
					continue
				}
				names := make([]string, 12)
				for _, month := range width.Month {
					if month == nil || month.Alt != "" {
						continue
					}
					if idx, err := strconv.Atoi(month.Type); err == nil && idx >= 1 && idx <= 12 {
						names[idx-1] = month.Data()
					}
				}
				switch width.Type {
				case "wide":
					result.Months = names
				case "abbreviated":
					result.ShortMonths = names
				}
			}
		}
	}

	if calendar.Days != nil {
		for _, context := range calendar.Days.DayContext {
			if context == nil || context.Type != "format" {
				continue
			}
			for _, width := range context.DayWidth {
				if width == nil {
					continue
				}
				names := make([]string, 7)
				for _, day := range width.Day {
					if day == nil || day.Alt != "" {
						continue
					}
					if idx := slices.Index(dayKeys, day.Type); idx >= 0 {
						names[idx] = day.Data()
					}
				}
				switch width.Type {
				case "wide":
					result.Days = names
				case "abbreviated":
					result.ShortDays = names
				}
			}
		}
	}

	if calendar.DayPeriods != nil {
		for _, context := range calendar.DayPeriods.DayPeriodContext {
			if context == nil || context.Type != "format" {
				continue
			}
			for _, width := range context.DayPeriodWidth {
				if width == nil || width.Type != "abbreviated" {
					continue
				}
				periods := make([]string, 2)
				for _, period := range width.DayPeriod {
					if period == nil || period.Alt != "" {
						continue
					}
					switch period.Type {
					case "am":
						periods[0] = period.Data()
					case "pm":
						periods[1] = period.Data()
					}
				}
				result.AmPms = periods
			}
		}
	}

	if eras := calendar.Eras; eras != nil {
		if eras.EraAbbr != nil {
			result.Eras = make([]string, 2)
			for _, era := range eras.EraAbbr.Era {
				if era != nil && era.Alt == "" {
					setEra(result.Eras, era.Type, era.Data())
				}
			}
		}
		if eras.EraNames != nil {
			result.EraNames = make([]string, 2)
			for _, era := range eras.EraNames.Era {
				if era != nil && era.Alt == "" {
					setEra(result.EraNames, era.Type, era.Data())
				}
			}
		}
	}

	dates := make(map[string]string, 4)
	if calendar.DateFormats != nil {
		for _, length := range calendar.DateFormats.DateFormatLength {
			if length == nil {
				continue
			}
			for _, dateFormat := range length.DateFormat {
				if value := firstData(dateFormat.Pattern); value != "" {
					dates[length.Type] = value
				}
			}
		}
	}

	times := make(map[string]string, 4)
	if calendar.TimeFormats != nil {
		for _, length := range calendar.TimeFormats.TimeFormatLength {
			if length == nil {
				continue
			}
			for _, timeFormat := range length.TimeFormat {
				if value := firstData(timeFormat.Pattern); value != "" {
					times[length.Type] = value
				}
			}
		}
	}

	result.Presets = map[string]string{
		formatters.PresetFullDate:   dates["full"],
		formatters.PresetLongDate:   dates["long"],
		formatters.PresetMediumDate: dates["medium"],
		formatters.PresetShortDate:  dates["short"],
		formatters.PresetMediumTime: times["medium"],
		formatters.PresetShortTime:  times["short"],
		formatters.PresetMedium:     joinPattern(dates["medium"], times["medium"]),
		formatters.PresetShort:      joinPattern(dates["short"], times["short"]),
	}

	return result
}

// localeCurrency picks the tender of the locale's likely region and its
// localized symbol, falling back to the ISO code.
func localeCurrency(numbers *cldr.Numbers, locale string) (code, symbol string) {
	region, _ := language.Make(locale).Region()
	unit, ok := currency.FromRegion(region)
	if !ok {
		return "", ""
	}
	code = unit.String()
	symbol = code

	if numbers == nil || numbers.Currencies == nil {
		return code, symbol
	}
	for _, entry := range numbers.Currencies.Currency {
		if entry == nil || entry.Type != code {
			continue
		}
		if value := firstData(entry.Symbol); value != "" {
			symbol = value
		}
		break
	}
	return code, symbol
}

var dayKeys = []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

func setEra(target []string, key, value string) {
	if idx, err := strconv.Atoi(key); err == nil && idx >= 0 && idx < len(target) {
		target[idx] = value
	}
}

func joinPattern(date, clock string) string {
	if date == "" || clock == "" {
		return date + clock
	}
	return date + " " + clock
}

func isLatin(system string) bool {
	return system == "" || system == "latn"
}

type commonElement interface {
	GetCommon() *cldr.Common
}

// firstData returns the text of the first element without an alt variant.
func firstData[T commonElement](items []T) string {
	for _, item := range items {
		common := item.GetCommon()
		if common == nil || common.Alt != "" {
			continue
		}
		return common.Data()
	}
	return ""
}

func renderSource(pkg string, bundles []formatters.LocaleData) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("// Code generated by formatters generate. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkg)

	buf.WriteString("var cldrLocaleData = map[string]LocaleData{\n")
	for _, bundle := range bundles {
		fmt.Fprintf(&buf, "%q: {\n", bundle.Locale)
		fmt.Fprintf(&buf, "Locale: %q,\n", bundle.Locale)

		buf.WriteString("Number: NumberFormats{\n")
		fmt.Fprintf(&buf, "DecimalSep: %q,\n", bundle.Number.DecimalSep)
		fmt.Fprintf(&buf, "GroupSep: %q,\n", bundle.Number.GroupSep)
		fmt.Fprintf(&buf, "CurrencySymbol: %q,\n", bundle.Number.CurrencySymbol)
		fmt.Fprintf(&buf, "CurrencyCode: %q,\n", bundle.Number.CurrencyCode)
		writePattern(&buf, "Decimal", bundle.Number.Decimal)
		writePattern(&buf, "Currency", bundle.Number.Currency)
		buf.WriteString("},\n")

		buf.WriteString("DateTime: DateTimeFormats{\n")
		writeStrings(&buf, "Months", bundle.DateTime.Months)
		writeStrings(&buf, "ShortMonths", bundle.DateTime.ShortMonths)
		writeStrings(&buf, "Days", bundle.DateTime.Days)
		writeStrings(&buf, "ShortDays", bundle.DateTime.ShortDays)
		writeStrings(&buf, "AmPms", bundle.DateTime.AmPms)
		writeStrings(&buf, "Eras", bundle.DateTime.Eras)
		writeStrings(&buf, "EraNames", bundle.DateTime.EraNames)
		buf.WriteString("Presets: map[string]string{\n")
		names := make([]string, 0, len(bundle.DateTime.Presets))
		for name := range bundle.DateTime.Presets {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&buf, "%q: %q,\n", name, bundle.DateTime.Presets[name])
		}
		buf.WriteString("},\n")
		buf.WriteString("},\n")

		buf.WriteString("},\n")
	}
	buf.WriteString("}\n\n")

	buf.WriteString("var generatedCLDRLocales = []string{\n")
	for _, bundle := range bundles {
		fmt.Fprintf(&buf, "%q,\n", bundle.Locale)
	}
	buf.WriteString("}\n\n")

	buf.WriteString("// GeneratedCLDRLocales lists the locales bundled with the package.\n")
	buf.WriteString("func GeneratedCLDRLocales() []string {\n")
	buf.WriteString("return append([]string{}, generatedCLDRLocales...)\n")
	buf.WriteString("}\n")

	return format.Source(buf.Bytes())
}

func writePattern(buf *bytes.Buffer, field string, p formatters.NumberPattern) {
	fmt.Fprintf(buf, "%s: NumberPattern{\n", field)
	fmt.Fprintf(buf, "MinInt: %d,\n", p.MinInt)
	fmt.Fprintf(buf, "MinFrac: %d,\n", p.MinFrac)
	fmt.Fprintf(buf, "MaxFrac: %d,\n", p.MaxFrac)
	fmt.Fprintf(buf, "PosPre: %q,\n", p.PosPre)
	fmt.Fprintf(buf, "PosSuf: %q,\n", p.PosSuf)
	fmt.Fprintf(buf, "NegPre: %q,\n", p.NegPre)
	fmt.Fprintf(buf, "NegSuf: %q,\n", p.NegSuf)
	fmt.Fprintf(buf, "GSize: %d,\n", p.GSize)
	fmt.Fprintf(buf, "LgSize: %d,\n", p.LgSize)
	buf.WriteString("},\n")
}

func writeStrings(buf *bytes.Buffer, field string, values []string) {
	fmt.Fprintf(buf, "%s: []string{", field)
	for i, value := range values {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(buf, "%q", value)
	}
	buf.WriteString("},\n")
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
