package formatters

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Clock supplies the current time and the zone used to decompose instants
// that carry no zone of their own (epoch numbers and ISO strings).
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// SystemClock reads the wall clock. A nil Zone means UTC.
type SystemClock struct {
	Zone *time.Location
}

func (c SystemClock) Now() time.Time {
	return time.Now().In(c.Location())
}

func (c SystemClock) Location() *time.Location {
	if c.Zone == nil {
		return time.UTC
	}
	return c.Zone
}

// DateOption adjusts a single Format call.
type DateOption func(*dateOptions)

type dateOptions struct {
	zone *time.Location
}

// WithOffset decomposes the instant at a fixed UTC offset given in minutes,
// overriding the instant's own zone.
func WithOffset(minutes int) DateOption {
	return func(o *dateOptions) {
		o.zone = time.FixedZone(offsetName(minutes), minutes*60)
	}
}

// WithLocation decomposes the instant in loc.
func WithLocation(loc *time.Location) DateOption {
	return func(o *dateOptions) {
		if loc != nil {
			o.zone = loc
		}
	}
}

func offsetName(minutes int) string {
	return "UTC" + formatZoneOffset(minutes*60)
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"20060102T150405Z0700",
	"20060102T150405",
}

// DateFormatter renders instants with a locale's calendar symbols and presets.
type DateFormatter struct {
	formats  DateTimeFormats
	clock    Clock
	compiled sync.Map // resolved pattern -> []dateToken
	literals atomic.Int64
}

// maxCompiledPatterns caps the cached literal patterns; presets are always cached.
const maxCompiledPatterns = 256

// NewDateFormatter binds formats to clock. A nil clock is a UTC SystemClock.
func NewDateFormatter(formats DateTimeFormats, clock Clock) *DateFormatter {
	if clock == nil {
		clock = SystemClock{}
	}
	return &DateFormatter{formats: formats, clock: clock}
}

// Format renders input with format, a preset name or a literal pattern.
// nil and "" render as "". Inputs that cannot be read as an instant fail
// with ErrInvalidDate.
func (f *DateFormatter) Format(input any, format string, opts ...DateOption) (string, error) {
	if isEmptyDateInput(input) {
		return "", nil
	}

	instant, err := f.instant(input)
	if err != nil {
		return "", err
	}
	return f.FormatTime(instant, format, opts...), nil
}

// FormatValue is Format with null passthrough: nil input yields nil.
func (f *DateFormatter) FormatValue(input any, format string, opts ...DateOption) (any, error) {
	if input == nil {
		return nil, nil
	}
	return f.Format(input, format, opts...)
}

// FormatTime renders t, keeping its own location unless an option overrides it.
func (f *DateFormatter) FormatTime(t time.Time, format string, opts ...DateOption) string {
	var options dateOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	if options.zone != nil {
		t = t.In(options.zone)
	}

	var b strings.Builder
	for _, tok := range f.tokens(format) {
		if tok.kind == literalToken {
			b.WriteString(tok.text)
			continue
		}
		b.WriteString(f.field(tok.letter, tok.count, t))
	}
	return b.String()
}

// ResolvePattern maps a preset name to its pattern. The empty format is
// mediumDate; anything that is not a preset is returned unchanged.
func (f *DateFormatter) ResolvePattern(format string) string {
	if format == "" {
		format = PresetMediumDate
	}
	if pattern, ok := f.formats.Presets[format]; ok && pattern != "" {
		return pattern
	}
	return format
}

func (f *DateFormatter) tokens(format string) []dateToken {
	pattern := f.ResolvePattern(format)
	if cached, ok := f.compiled.Load(pattern); ok {
		return cached.([]dateToken)
	}

	tokens := tokenizeDatePattern(pattern)
	if !f.isPreset(format) {
		if f.literals.Load() >= maxCompiledPatterns {
			return tokens
		}
		if _, loaded := f.compiled.LoadOrStore(pattern, tokens); !loaded {
			f.literals.Add(1)
		}
		return tokens
	}
	f.compiled.Store(pattern, tokens)
	return tokens
}

func (f *DateFormatter) isPreset(format string) bool {
	if format == "" {
		return true
	}
	_, ok := f.formats.Presets[format]
	return ok
}

func (f *DateFormatter) field(letter byte, count int, t time.Time) string {
	switch letter {
	case 'y':
		year := yearOfEra(t.Year())
		if count == 2 {
			return padNumber(year%100, 2)
		}
		return padNumber(year, count)
	case 'M':
		month := int(t.Month())
		switch {
		case count >= 4:
			return symbol(f.formats.Months, month-1)
		case count == 3:
			return symbol(f.formats.ShortMonths, month-1)
		default:
			return padNumber(month, count)
		}
	case 'd':
		return padNumber(t.Day(), count)
	case 'E':
		if count >= 4 {
			return symbol(f.formats.Days, int(t.Weekday()))
		}
		return symbol(f.formats.ShortDays, int(t.Weekday()))
	case 'H':
		return padNumber(t.Hour(), count)
	case 'h':
		hour := t.Hour() % 12
		if hour == 0 {
			hour = 12
		}
		return padNumber(hour, count)
	case 'm':
		return padNumber(t.Minute(), count)
	case 's':
		return padNumber(t.Second(), count)
	case 'a':
		if t.Hour() < 12 {
			return symbol(f.formats.AmPms, 0)
		}
		return symbol(f.formats.AmPms, 1)
	case 'Z':
		_, offset := t.Zone()
		return formatZoneOffset(offset)
	case 'G':
		era := 1
		if t.Year() <= 0 {
			era = 0
		}
		if count >= 4 {
			return symbol(f.formats.EraNames, era)
		}
		return symbol(f.formats.Eras, era)
	}
	return strings.Repeat(string(letter), count)
}

// instant converts input to a time.Time. Epoch numbers and strings are
// placed in the clock's location.
func (f *DateFormatter) instant(input any) (time.Time, error) {
	zone := f.clock.Location()

	switch v := input.(type) {
	case time.Time:
		return v, nil
	case *time.Time:
		return *v, nil
	case json.Number:
		return f.instant(string(v))
	case string:
		trimmed := strings.TrimSpace(v)
		if isEpochString(trimmed) {
			ms, err := strconv.ParseInt(trimmed, 10, 64)
			if err != nil {
				return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidDate, v, err)
			}
			return epochInstant(float64(ms), zone)
		}
		for _, layout := range isoLayouts {
			if parsed, err := time.Parse(layout, trimmed); err == nil {
				return parsed.In(zone), nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, v)
	}

	rv := reflect.ValueOf(input)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return epochInstant(float64(rv.Int()), zone)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if rv.Uint() > maxEpochMillis {
			return time.Time{}, fmt.Errorf("%w: %d out of range", ErrInvalidDate, rv.Uint())
		}
		return epochInstant(float64(rv.Uint()), zone)
	case reflect.Float32, reflect.Float64:
		return epochInstant(rv.Float(), zone)
	}

	return time.Time{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidDate, input)
}

// maxEpochMillis bounds epoch inputs to ±100,000,000 days around 1970.
const maxEpochMillis = 8.64e15

func epochInstant(ms float64, zone *time.Location) (time.Time, error) {
	if math.IsNaN(ms) || math.Abs(ms) > maxEpochMillis {
		return time.Time{}, fmt.Errorf("%w: %v out of range", ErrInvalidDate, ms)
	}
	return time.UnixMilli(int64(ms)).In(zone), nil
}

func isEmptyDateInput(input any) bool {
	switch v := input.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case *time.Time:
		return v == nil
	}
	return false
}

func isEpochString(value string) bool {
	digits := strings.TrimPrefix(value, "-")
	if digits == "" {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}

// yearOfEra maps astronomical years to era years: 0 is 1 BC, -1 is 2 BC.
func yearOfEra(year int) int {
	if year <= 0 {
		return 1 - year
	}
	return year
}

// formatZoneOffset renders an offset in seconds as +HHMM or -HHMM.
func formatZoneOffset(seconds int) string {
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	minutes := seconds / 60
	return sign + padNumber(minutes/60, 2) + padNumber(minutes%60, 2)
}

func padNumber(n, width int) string {
	s := strconv.Itoa(n)
	if pad := width - len(s); pad > 0 {
		return strings.Repeat("0", pad) + s
	}
	return s
}

func symbol(values []string, idx int) string {
	if idx < 0 || idx >= len(values) {
		return ""
	}
	return values[idx]
}
