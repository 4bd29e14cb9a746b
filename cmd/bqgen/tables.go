package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/metricwise/bqgen/pkg/tableconfig"
)

func newPlatformsCmd(opts *rootOptions) *cobra.Command {
	var platform string

	cmd := &cobra.Command{
		Use:   "platforms",
		Short: "List registered platforms and their metrics and dimensions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := opts.registry()
			if err != nil {
				return err
			}

			if platform != "" {
				p, err := reg.Platform(platform)
				if err != nil {
					return err
				}

				metrics := tablewriter.NewWriter(cmd.OutOrStdout())
				metrics.SetHeader([]string{"Metric", "Name", "Aggregation", "Type"})
				for _, m := range p.Metrics {
					metrics.Append([]string{m.ID, m.Name, string(m.Aggregation), string(m.Type)})
				}
				metrics.Render()

				dims := tablewriter.NewWriter(cmd.OutOrStdout())
				dims.SetHeader([]string{"Dimension", "Name", "Cardinality", "Join Key"})
				for _, d := range p.Dimensions {
					dims.Append([]string{d.ID, d.Name, string(d.Cardinality), strconv.FormatBool(d.JoinKey)})
				}
				dims.Render()
				return nil
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Platform", "Name", "Table", "Metrics", "Dimensions"})
			for _, id := range reg.IDs() {
				p, err := reg.Platform(id)
				if err != nil {
					return err
				}
				table.Append([]string{
					p.ID, p.Name, p.Table,
					strconv.Itoa(len(p.Metrics)),
					strconv.Itoa(len(p.Dimensions)),
				})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&platform, "platform", "", "show one platform's metrics and dimensions")
	return cmd
}

func newDDLCmd(opts *rootOptions) *cobra.Command {
	var (
		platform   string
		table      string
		schemaFile string
	)

	cmd := &cobra.Command{
		Use:   "ddl",
		Short: "Render CREATE TABLE DDL for a platform table",
		Long: "Render the CREATE TABLE statement for a platform table, including " +
			"partitioning, clustering, and cost-control options. The schema is " +
			"validated first; invalid schemas are refused.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The registry is loaded for its side effect of validating any
			// override definitions before DDL is produced against them.
			if _, err := opts.registry(); err != nil {
				return err
			}

			var schema []tableconfig.Column
			if err := decodeDocument(schemaFile, &schema); err != nil {
				return err
			}

			if result := tableconfig.Validate(schema, platform); !result.Valid {
				return fmt.Errorf("schema for platform %q is invalid:\n  %s",
					platform, strings.Join(result.Errors, "\n  "))
			}

			ddl, err := tableconfig.GenerateCreateTableSQL(table, platform, schema)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), ddl)
			return nil
		},
	}

	cmd.Flags().StringVar(&platform, "platform", "", "platform id")
	cmd.Flags().StringVar(&table, "table", "", "fully qualified table name")
	cmd.Flags().StringVar(&schemaFile, "schema", "", "schema document (YAML list of columns)")
	for _, f := range []string{"platform", "table", "schema"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func newValidateCmd(_ *rootOptions) *cobra.Command {
	var (
		platform   string
		schemaFile string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a table schema against the storage invariants",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var schema []tableconfig.Column
			if err := decodeDocument(schemaFile, &schema); err != nil {
				return err
			}

			result := tableconfig.Validate(schema, platform)
			if !result.Valid {
				return fmt.Errorf("schema for platform %q is invalid:\n  %s",
					platform, strings.Join(result.Errors, "\n  "))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema for platform %q is valid\n", platform)
			return nil
		},
	}

	cmd.Flags().StringVar(&platform, "platform", "", "platform id")
	cmd.Flags().StringVar(&schemaFile, "schema", "", "schema document (YAML list of columns)")
	for _, f := range []string{"platform", "schema"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}
