package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vlanet/vridge/internal/cli/formatter"
)

func newConflictsCmd(app *App) *cobra.Command {
	var w windowFlags
	var failOn severityValue

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Report overlapping conflict-sensitive phases",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			req, err := w.request(ctx, app)
			if err != nil {
				return err
			}
			resp, err := app.Calendar.Build(ctx, req)
			if err != nil {
				return err
			}

			labels := make(map[string]string, len(resp.Events))
			for _, ev := range resp.Events {
				labels[ev.ID] = ev.Project.DisplayID() + " · " + ev.Phase.Name
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatConflictReport(resp.Conflicts, labels))

			if failOn.s != "" {
				if worst := resp.Conflicts.MaxSeverity(); worst.Rank() >= failOn.s.Rank() && len(resp.Conflicts.Conflicts) > 0 {
					return fmt.Errorf("found %d conflicts at or above %s", len(resp.Conflicts.Conflicts), failOn.s)
				}
			}
			return nil
		},
	}

	w.register(cmd)
	cmd.Flags().Var(&failOn, "fail-on", "Exit with an error when a conflict reaches this severity")
	return cmd
}
