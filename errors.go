package formatters

import "errors"

// ErrInvalidDate indicates that a date input could not be converted to an instant.
var ErrInvalidDate = errors.New("formatters: invalid date")

// ErrInvalidPattern indicates that a number pattern string could not be parsed.
var ErrInvalidPattern = errors.New("formatters: invalid number pattern")

// ErrInvalidLocaleData marks locale data that fails validation after loading.
var ErrInvalidLocaleData = errors.New("formatters: invalid locale data")

// ErrUnknownLocale indicates that no locale data exists for a locale or any of its fallbacks.
var ErrUnknownLocale = errors.New("formatters: unknown locale")

// ErrNotImplemented is returned when an operation is invoked on an unconfigured value.
var ErrNotImplemented = errors.New("formatters: not implemented")
