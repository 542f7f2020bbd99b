package cli

import (
	"fmt"

	"github.com/alexanderramin/taskrange/internal/cli/formatter"
	"github.com/alexanderramin/taskrange/internal/service"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var opts service.ImportOptions

	cmd := &cobra.Command{
		Use:   "import GLOB...",
		Short: "Import VTODOs from .ics files",
		Long: `Decode the matched .ics files and store their VTODO components.
Re-importing a file replaces the tasks previously imported from it.
Patterns support ** for recursive matching.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.Import(cmd.Context(), args, opts)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatImportResult(result))
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "abort when any VTODO violates the property cardinality rules")
	return cmd
}
