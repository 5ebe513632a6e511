package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tzofim/peula/internal/repository"
)

func newMigrateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch repository.Backend(app.Config.StoreBackend) {
			case repository.BackendMemory, "":
				fmt.Fprintln(cmd.OutOrStdout(), "memory store has no schema; nothing to migrate")
				return nil
			}
			// Opening a SQL store applies pending migrations.
			store, err := openStore(app.Config)
			if err != nil {
				return err
			}
			defer store.Close()
			fmt.Fprintf(cmd.OutOrStdout(), "%s schema is up to date\n", store.Backend)
			return nil
		},
	}
}
