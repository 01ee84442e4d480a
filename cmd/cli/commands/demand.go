package commands

import (
	"github.com/spf13/cobra"

	"github.com/jakechorley/team-matcher/pkg/core/services"
	"github.com/jakechorley/team-matcher/pkg/report"
)

// DemandCmd creates the demand command
func DemandCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "demand",
		Short: "Show how many students ranked each project and which projects are feasible",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("demand command")

			app.Loader.Forget()

			result, err := services.DemandReport(app.Loader, app.Cfg, app.Logger)
			if err != nil {
				return err
			}

			return report.PrintDemand(cmd.OutOrStdout(), result)
		},
	}
}
