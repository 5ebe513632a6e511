package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tzofim/peula/internal/cli/formatter"
)

func newPeulaCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "peulot",
		Short: "Inspect stored peulot",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List stored peulot, newest first",
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := openStore(app.Config)
				if err != nil {
					return err
				}
				defer store.Close()

				peulot, err := store.Peulot.List(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPeulaList(peulot))
				return nil
			},
		},
		&cobra.Command{
			Use:   "show ID",
			Short: "Print one peula with all sections",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := openStore(app.Config)
				if err != nil {
					return err
				}
				defer store.Close()

				p, err := store.Peulot.GetByID(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPeula(p))
				return nil
			},
		},
	)
	return cmd
}
