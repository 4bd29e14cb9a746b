package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/metricwise/bqgen/pkg/sqlgen"
)

func newQueryCmd(opts *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Compile a single-platform query document to SQL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cfg sqlgen.QueryConfig
			if err := decodeDocument(file, &cfg); err != nil {
				return err
			}

			reg, err := opts.registry()
			if err != nil {
				return err
			}

			sqlText, err := sqlgen.NewGenerator(reg).Build(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sqlText)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "query document (YAML)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newBlendCmd(opts *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "blend",
		Short: "Compile a multi-platform blend document to SQL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cfg sqlgen.BlendConfig
			if err := decodeDocument(file, &cfg); err != nil {
				return err
			}

			reg, err := opts.registry()
			if err != nil {
				return err
			}

			sqlText, err := sqlgen.NewGenerator(reg).BuildBlend(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sqlText)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "blend document (YAML)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newCompareCmd(opts *rootOptions) *cobra.Command {
	var (
		platform string
		metric   string
		start    string
		end      string
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compile a period-over-period comparison query to SQL",
		Long: "Compile a query comparing a metric over the given period against the " +
			"automatically derived previous period of the same length.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			current := sqlgen.DateRange{Start: start, End: end}
			previous, err := sqlgen.PreviousPeriod(current)
			if err != nil {
				return err
			}

			reg, err := opts.registry()
			if err != nil {
				return err
			}

			sqlText, err := sqlgen.NewGenerator(reg).BuildComparison(platform, metric, current, previous)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sqlText)
			return nil
		},
	}

	cmd.Flags().StringVar(&platform, "platform", "", "platform id")
	cmd.Flags().StringVar(&metric, "metric", "", "metric id")
	cmd.Flags().StringVar(&start, "start", "", "current period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "current period end (YYYY-MM-DD)")
	for _, f := range []string{"platform", "metric", "start", "end"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

// decodeDocument reads a YAML document with unknown fields rejected, so
// typos in hand-written documents fail loudly.
func decodeDocument(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
