package formatters

import (
	"encoding/json"
	"reflect"
	"strings"
)

// Formatter names registered by default.
const (
	NameNumber       = "number"
	NameCurrency     = "currency"
	NameCurrencyCode = "currency_code"
	NameDate         = "date"
	NameLowercase    = "lowercase"
	NameUppercase    = "uppercase"
	NameJSON         = "json"
)

// NumberFunc formats a loosely typed number.
type NumberFunc func(value any, fractionSize ...int) string

// CurrencyFunc formats an amount with a symbol or currency code.
type CurrencyFunc func(amount any, symbol string, fractionSize ...int) string

// DateFunc formats a date input, passing nil through unchanged.
type DateFunc func(input any, format string, opts ...DateOption) (any, error)

// TextFunc transforms a value, passing nil through unchanged.
type TextFunc func(input any) any

// JSONFunc serializes a value.
type JSONFunc func(input any) (string, error)

// Lowercase lowercases strings; nil stays nil and other values are returned as is.
func Lowercase(input any) any {
	return mapString(input, strings.ToLower)
}

// Uppercase uppercases strings; nil stays nil and other values are returned as is.
func Uppercase(input any) any {
	return mapString(input, strings.ToUpper)
}

// ToJSON renders input as JSON indented by two spaces.
func ToJSON(input any) (string, error) {
	data, err := json.MarshalIndent(input, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func mapString(input any, fn func(string) string) any {
	switch v := input.(type) {
	case nil:
		return nil
	case string:
		return fn(v)
	case *string:
		if v == nil {
			return nil
		}
		return fn(*v)
	}

	rv := reflect.ValueOf(input)
	if rv.Kind() == reflect.String {
		return fn(rv.String())
	}
	return input
}
