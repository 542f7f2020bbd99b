package cli

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/taskrange/internal/cli/formatter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate GLOB...",
		Short: "Check VTODO property cardinality in .ics files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := app.Validation.ValidateFiles(cmd.Context(), args)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFileReports(reports))

			failed := 0
			for _, r := range reports {
				if !r.OK() {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d file(s) failed validation", failed, len(reports))
			}
			return nil
		},
	}
}

func newRulesCmd(app *App) *cobra.Command {
	format := newFormatFlag("table", "table", "yaml", "json")

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the VTODO property validation rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules := app.Validation.Rules()
			out := cmd.OutOrStdout()

			switch format.value {
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(rules); err != nil {
					return fmt.Errorf("encoding rules: %w", err)
				}
				return enc.Close()
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rules)
			}
			fmt.Fprint(out, formatter.FormatRules(rules))
			return nil
		},
	}
	cmd.Flags().Var(format, "format", "output format: table, yaml or json")
	return cmd
}
