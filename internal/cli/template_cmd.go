package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tzofim/peula/internal/cli/formatter"
	"github.com/tzofim/peula/internal/service"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"template"},
		Short:   "Browse peula templates",
	}

	cmd.AddCommand(
		newTemplateListCmd(app),
		newTemplateShowCmd(app),
	)

	return cmd
}

func templateService(app *App) (service.TemplateService, error) {
	catalog, err := loadCatalog(app.Config)
	if err != nil {
		return nil, err
	}
	return service.NewTemplateService(catalog), nil
}

func newTemplateListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := templateService(app)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTemplateList(svc.List(cmd.Context())))
			return nil
		},
	}
}

func newTemplateShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show template details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := templateService(app)
			if err != nil {
				return err
			}
			t, err := svc.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTemplateShow(*t))
			return nil
		},
	}
}
