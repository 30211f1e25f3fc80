package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formatters"
	"github.com/spf13/cobra"
)

func newFormatCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format",
		Short: "Format a single value",
	}

	cmd.AddCommand(newFormatNumberCmd(root))
	cmd.AddCommand(newFormatCurrencyCmd(root))
	cmd.AddCommand(newFormatDateCmd(root))

	return cmd
}

func newFormatNumberCmd(root *rootOptions) *cobra.Command {
	var fraction int

	cmd := &cobra.Command{
		Use:     "number <value>",
		Short:   "Format a number with the locale decimal pattern",
		Example: "  formatters format number 1234.5678\n  formatters format number -l es 1234.5 --fraction 2",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := buildRegistry(cmd, root)
			if err != nil {
				return err
			}

			number, ok := registry.Number(root.locale)
			if !ok {
				return fmt.Errorf("no number formatter for locale %q", root.locale)
			}

			result := number(args[0], fractionArgs(cmd, fraction)...)
			if result == "" {
				return fmt.Errorf("%q is not a finite number", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().IntVar(&fraction, "fraction", 0, "Number of fraction digits")
	return cmd
}

func newFormatCurrencyCmd(root *rootOptions) *cobra.Command {
	var (
		fraction int
		symbol   string
		code     string
	)

	cmd := &cobra.Command{
		Use:     "currency <amount>",
		Short:   "Format an amount with the locale currency pattern",
		Example: "  formatters format currency -- -999\n  formatters format currency 1234.5678 --symbol 'USD$'\n  formatters format currency 10 --code EUR",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if symbol != "" && code != "" {
				return errors.New("--symbol and --code are mutually exclusive")
			}

			registry, err := buildRegistry(cmd, root)
			if err != nil {
				return err
			}

			name, selector := formatters.NameCurrency, symbol
			if code != "" {
				name, selector = formatters.NameCurrencyCode, strings.ToUpper(code)
			}

			fn, ok := registry.Formatter(name, root.locale)
			if !ok {
				return fmt.Errorf("no %s formatter for locale %q", name, root.locale)
			}
			currency, ok := fn.(formatters.CurrencyFunc)
			if !ok {
				return fmt.Errorf("%s formatter has unexpected type %T", name, fn)
			}

			result := currency(args[0], selector, fractionArgs(cmd, fraction)...)
			if result == "" {
				return fmt.Errorf("%q is not a finite number", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().IntVar(&fraction, "fraction", 0, "Number of fraction digits")
	cmd.Flags().StringVar(&symbol, "symbol", "", "Currency symbol, defaults to the locale symbol")
	cmd.Flags().StringVar(&code, "code", "", "ISO 4217 currency code rendered with its symbol")
	return cmd
}

func newFormatDateCmd(root *rootOptions) *cobra.Command {
	var (
		pattern string
		offset  int
	)

	cmd := &cobra.Command{
		Use:   "date <input>",
		Short: "Format a date, epoch milliseconds or ISO 8601 string",
		Long: `Format a date with a named preset (medium, short, fullDate, longDate,
mediumDate, shortDate, mediumTime, shortTime) or a custom pattern.
The input "now" formats the current time.`,
		Example: "  formatters format date 1283515508000 --pattern fullDate\n  formatters format date 2010-09-03T12:05:08Z --pattern 'yyyy-MM-dd HH:mm Z' --offset -300",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := buildRegistry(cmd, root)
			if err != nil {
				return err
			}

			date, ok := registry.Date(root.locale)
			if !ok {
				return fmt.Errorf("no date formatter for locale %q", root.locale)
			}

			var input any = args[0]
			if strings.EqualFold(args[0], "now") {
				input = formatters.SystemClock{}.Now()
			}

			var opts []formatters.DateOption
			if cmd.Flags().Changed("offset") {
				opts = append(opts, formatters.WithOffset(offset))
			}

			result, err := date(input, pattern, opts...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "Preset name or date pattern, defaults to mediumDate")
	cmd.Flags().IntVar(&offset, "offset", 0, "UTC offset in minutes used to render the date")
	return cmd
}

func buildRegistry(cmd *cobra.Command, root *rootOptions) (*formatters.FormatterRegistry, error) {
	cfg, err := root.config(cmd)
	if err != nil {
		return nil, err
	}
	return cfg.BuildRegistry()
}

func fractionArgs(cmd *cobra.Command, fraction int) []int {
	if !cmd.Flags().Changed("fraction") {
		return nil
	}
	return []int{fraction}
}
