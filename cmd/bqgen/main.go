// Package main provides the bqgen command line tool: it compiles
// declarative query documents into BigQuery SQL and renders the table
// configuration and DDL used by migration tooling.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/metricwise/bqgen/pkg/metadata"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	definitionsDir string
	logLevel       string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "bqgen",
		Short:         "Compile declarative marketing-analytics queries into BigQuery SQL",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogging(opts.logLevel)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.definitionsDir, "definitions", "",
		"directory of platform definition files (overrides the built-in set)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn",
		"log level: debug, info, warn, error")

	cmd.AddCommand(
		newPlatformsCmd(opts),
		newQueryCmd(opts),
		newBlendCmd(opts),
		newCompareCmd(opts),
		newDDLCmd(opts),
		newValidateCmd(opts),
	)
	return cmd
}

// registry loads platform definitions, preferring an override directory
// when one was given.
func (o *rootOptions) registry() (*metadata.Registry, error) {
	reg := metadata.NewRegistry()
	if o.definitionsDir != "" {
		if err := reg.LoadDir(o.definitionsDir); err != nil {
			return nil, fmt.Errorf("loading definitions from %s: %w", o.definitionsDir, err)
		}
		return reg, nil
	}
	if err := reg.LoadEmbedded(); err != nil {
		return nil, fmt.Errorf("loading built-in definitions: %w", err)
	}
	return reg, nil
}

func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}
