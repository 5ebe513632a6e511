// Package cli wires the peula commands: the HTTP server, schema migration
// and read-only views of templates and stored peulot.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/tzofim/peula/internal/config"
	"github.com/tzofim/peula/internal/logger"
)

// App carries configuration into the commands. Flags override Config before
// any command runs.
type App struct {
	Config config.Config
	// NewLogger builds the process logger; tests substitute logger.Nop.
	NewLogger func(mode string) (*logger.Logger, error)
}

// NewRootCmd creates the top-level "peula" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	if app.NewLogger == nil {
		app.NewLogger = logger.New
	}

	var (
		port  int
		store string
		dbArg string
	)

	root := &cobra.Command{
		Use:           "peula",
		Short:         "Scouting activity plan generator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			flags := cmd.Flags()
			if flags.Changed("port") {
				app.Config.Port = port
			}
			if flags.Changed("store") {
				app.Config.StoreBackend = store
			}
			if flags.Changed("db") {
				switch app.Config.StoreBackend {
				case "postgres":
					app.Config.DatabaseURL = dbArg
				default:
					app.Config.DatabasePath = dbArg
				}
			}
		},
	}

	pf := root.PersistentFlags()
	pf.IntVar(&port, "port", app.Config.Port, "HTTP port")
	pf.StringVar(&store, "store", app.Config.StoreBackend, "record store backend: memory, sqlite or postgres")
	pf.StringVar(&dbArg, "db", "", "SQLite path or PostgreSQL URL, depending on --store")

	root.AddCommand(
		newServeCmd(app),
		newMigrateCmd(app),
		newTemplateCmd(app),
		newPeulaCmd(app),
	)

	return root
}
