package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/taskrange/internal/cli/formatter"
	"github.com/alexanderramin/taskrange/internal/httpapi"
	"github.com/alexanderramin/taskrange/internal/service"
	"github.com/spf13/cobra"
)

func newQueryCmd(app *App) *cobra.Command {
	var rf rangeFlags
	var opts service.QueryOptions
	format := newFormatFlag("table", "table", "json")

	cmd := &cobra.Command{
		Use:   "query --start TIME --end TIME",
		Short: "List stored tasks that overlap a time range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := rf.resolve(app.location())
			if err != nil {
				return err
			}
			tasks, err := app.Query.Query(cmd.Context(), r, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format.value == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(httpapi.NewTaskListResponse(r, tasks))
			}
			fmt.Fprint(out, formatter.FormatTaskList(tasks, r, app.location(), time.Now()))
			return nil
		},
	}
	rf.register(cmd.Flags())
	rf.markRequired(cmd)
	cmd.Flags().BoolVar(&opts.ExcludeUndated, "exclude-undated", false, "skip tasks without any date properties")
	cmd.Flags().Var(format, "format", "output format: table or json")
	return cmd
}

func newCheckCmd(app *App) *cobra.Command {
	var rf rangeFlags

	cmd := &cobra.Command{
		Use:   "check FILE --start TIME --end TIME",
		Short: "Classify the VTODOs of a file against a range without storing them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := rf.resolve(app.location())
			if err != nil {
				return err
			}
			results, err := app.Query.CheckFile(cmd.Context(), args[0], r)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCheckResults(results, app.location()))
			return nil
		},
	}
	rf.register(cmd.Flags())
	rf.markRequired(cmd)
	return cmd
}
