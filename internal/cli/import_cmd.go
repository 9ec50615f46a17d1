package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import projects and phases from a YAML or JSON schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportSchedule(context.Background(), args[0])
			if err != nil {
				return err
			}
			app.scheduleChanged()

			out := cmd.OutOrStdout()
			for _, p := range result.Projects {
				fmt.Fprintf(out, "Imported %s [%s] with %d phases\n", p.Name, p.ShortID, len(p.Phases))
			}
			fmt.Fprintf(out, "%d projects, %d phases imported\n", len(result.Projects), result.PhaseCount)
			return nil
		},
	}
}
