package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vlanet/vridge/internal/cli/formatter"
	"github.com/vlanet/vridge/internal/contract"
)

// windowFlags are the calendar selection flags shared by calendar and conflicts.
type windowFlags struct {
	from, to    dateValue
	weeks       int
	projectRefs []string
	types       phaseTypesValue
	severity    severityValue
	all         bool
}

func (w *windowFlags) register(cmd *cobra.Command) {
	cmd.Flags().Var(&w.from, "from", "First day of the window (YYYY-MM-DD, default today)")
	cmd.Flags().Var(&w.to, "to", "Last day of the window (YYYY-MM-DD)")
	cmd.Flags().IntVar(&w.weeks, "weeks", 4, "Window length in weeks when --to is not set")
	cmd.Flags().StringSliceVar(&w.projectRefs, "project", nil, "Limit to projects (repeatable)")
	cmd.Flags().Var(&w.types, "types", "Conflict-sensitive phase types (comma-separated)")
	cmd.Flags().Var(&w.severity, "severity", "Minimum conflict severity to report (warning, critical)")
	cmd.Flags().BoolVar(&w.all, "all", false, "Include completed and cancelled projects")
}

func (w *windowFlags) request(ctx context.Context, app *App) (contract.CalendarRequest, error) {
	from := app.today()
	if w.from.IsSet() {
		from = w.from.t
	}
	req := contract.NewCalendarRequest(from, w.weeks)
	if w.to.IsSet() {
		req.To = w.to.t
	}
	for _, ref := range w.projectRefs {
		id, err := resolveProjectID(ctx, app, ref)
		if err != nil {
			return contract.CalendarRequest{}, err
		}
		req.ProjectScope = append(req.ProjectScope, id)
	}
	req.SensitiveTypes = w.types.set
	req.MinSeverity = w.severity.s
	req.IncludeClosed = w.all
	return req, nil
}

func newCalendarCmd(app *App) *cobra.Command {
	var w windowFlags

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show scheduled phases with project colors and conflicts",
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
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCalendar(resp))
			return nil
		},
	}

	w.register(cmd)
	return cmd
}
