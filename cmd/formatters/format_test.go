package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestFormatNumberCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default fraction", []string{"format", "number", "1234.5678"}, "1,234.568\n"},
		{"explicit fraction", []string{"format", "number", "1234.567", "--fraction", "1"}, "1,234.6\n"},
		{"negative", []string{"format", "number", "--", "-999"}, "-999\n"},
		{"spanish separators", []string{"format", "number", "-l", "es", "1234567.1", "--fraction", "2"}, "1.234.567,10\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatNumberCommandRejectsText(t *testing.T) {
	_, err := execute(t, "format", "number", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a finite number")
}

func TestFormatCurrencyCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"locale symbol", []string{"format", "currency", "0"}, "$0.00\n"},
		{"negative", []string{"format", "currency", "--", "-999"}, "($999.00)\n"},
		{"custom symbol", []string{"format", "currency", "1234.5678", "--symbol", "USD$"}, "USD$1,234.57\n"},
		{"iso code", []string{"format", "currency", "10", "--code", "eur"}, "€10.00\n"},
		{"fraction", []string{"format", "currency", "1234.5678", "--fraction", "0"}, "$1,235\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatCurrencyCommandExclusiveFlags(t *testing.T) {
	_, err := execute(t, "format", "currency", "1", "--symbol", "$", "--code", "USD")
	require.Error(t, err)
}

func TestFormatDateCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"preset", []string{"format", "date", "1283515508000", "--pattern", "fullDate"}, "Friday, September 3, 2010\n"},
		{"default preset", []string{"format", "date", "2010-09-03T12:05:08Z"}, "Sep 3, 2010\n"},
		{"offset", []string{"format", "date", "1283515508000", "-p", "yyyy-MM-dd HH:mm:ss Z", "--offset=-300"}, "2010-09-03 07:05:08 -0500\n"},
		{"spanish", []string{"format", "date", "-l", "es", "1283515508000", "-p", "EEEE d 'de' MMMM"}, "viernes 3 de septiembre\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDateCommandInvalidInput(t *testing.T) {
	_, err := execute(t, "format", "date", "not-a-date")
	require.Error(t, err)
}

func TestFormatWithLocaleDataFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "locales.yaml")
	content := []byte(`locales:
  en:
    number:
      currency_symbol: "US$"
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	got, err := execute(t, "format", "currency", "5", "--data", path)
	require.NoError(t, err)
	assert.Equal(t, "US$5.00\n", got)
}

func TestRootRejectsUnknownLocale(t *testing.T) {
	_, err := execute(t, "format", "number", "1", "-l", "xx")
	require.Error(t, err)
}

func TestRootRejectsInvalidLogLevel(t *testing.T) {
	_, err := execute(t, "format", "number", "1", "--log-level", "loud")
	require.Error(t, err)
}
