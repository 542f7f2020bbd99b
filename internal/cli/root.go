package cli

import (
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/taskrange/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// App holds the services and settings used by CLI commands.
type App struct {
	Import     service.ImportService
	Query      service.QueryService
	Validation service.ValidationService

	// Location resolves date-only and floating flag values.
	Location *time.Location

	Addr            string
	ShutdownTimeout time.Duration
	Metrics         *prometheus.Registry
	Logger          *slog.Logger

	// Bootstrap, when set, wires the fields above from the --config path
	// before any command runs.
	Bootstrap func(configPath string) error
}

func (a *App) location() *time.Location {
	if a.Location == nil {
		return time.UTC
	}
	return a.Location
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return a.Logger
}

// NewRootCmd creates the top-level "taskrange" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "taskrange",
		Short:         "Import calendar tasks and query them by time range",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Bootstrap == nil {
				return nil
			}
			return app.Bootstrap(configPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.taskrange/config.yaml)")

	root.AddCommand(
		newImportCmd(app),
		newQueryCmd(app),
		newCheckCmd(app),
		newValidateCmd(app),
		newRulesCmd(app),
		newServeCmd(app),
	)

	return root
}
