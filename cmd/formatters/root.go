package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goliatone/go-formatters"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	locale    string
	logLevel  string
	logFormat string
	dataFiles []string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "formatters",
		Short: "Locale aware number, currency and date formatting",
		Long: `formatters renders numbers, currency amounts and dates the way a locale
expects them, using the bundled CLDR data or JSON/YAML locale data files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.locale, "locale", "l", "en", "Locale used for formatting")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "text", "Log format (text, json)")
	flags.StringSliceVar(&opts.dataFiles, "data", nil, "Locale data file (JSON or YAML) merged over the bundled data, repeatable")

	cmd.AddCommand(newFormatCmd(opts))
	cmd.AddCommand(newGenerateCmd(opts))

	return cmd
}

func (o *rootOptions) logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", o.logLevel)
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(o.logFormat) {
	case "json":
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", o.logFormat)
	}
}

func (o *rootOptions) config(cmd *cobra.Command) (*formatters.Config, error) {
	logger, err := o.logger(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	options := []formatters.Option{
		formatters.WithDefaultLocale(o.locale),
		formatters.WithLocales(o.locale),
		formatters.WithLogger(logger),
	}
	for _, path := range o.dataFiles {
		options = append(options, formatters.WithLocaleDataFile(path))
	}

	return formatters.NewConfig(options...)
}
