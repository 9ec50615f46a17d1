package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vlanet/vridge/internal/cli/formatter"
	"github.com/vlanet/vridge/internal/domain"
)

func newPhaseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phase",
		Short: "Manage project phases",
	}

	cmd.AddCommand(
		newPhaseAddCmd(app),
		newPhaseListCmd(app),
		newPhaseMoveCmd(app),
		newPhaseResizeCmd(app),
		newPhaseRemoveCmd(app),
	)

	return cmd
}

func newPhaseAddCmd(app *App) *cobra.Command {
	var projectRef, name, typeStr string
	var start, end dateValue
	var days int
	var fixed, interactive bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule a phase in a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, projectRef)
			if err != nil {
				return err
			}

			if interactive {
				if !app.interactive() {
					return fmt.Errorf("--interactive requires a terminal")
				}
				f := phaseForm{Name: name, Type: domain.PhaseType(typeStr), Start: start.String(), End: end.String(), Fixed: fixed}
				if err := wizardPhaseAdd(&f).Run(); err != nil {
					return err
				}
				name, typeStr, fixed = f.Name, string(f.Type), f.Fixed
				if err := start.Set(f.Start); err != nil {
					return err
				}
				if f.End != "" {
					if err := end.Set(f.End); err != nil {
						return err
					}
				}
			}

			if name == "" || typeStr == "" || !start.IsSet() {
				return fmt.Errorf("--name, --type and --start are required (or use --interactive)")
			}
			phaseType, err := domain.ParsePhaseType(typeStr)
			if err != nil {
				return err
			}
			if end.IsSet() && days > 0 {
				return fmt.Errorf("use either --end or --days, not both")
			}
			endDate := start.t
			switch {
			case end.IsSet():
				endDate = end.t
			case days > 0:
				endDate = start.t.AddDate(0, 0, days-1)
			}

			ph := &domain.ProjectPhase{
				ProjectID: projectID,
				Name:      name,
				Type:      phaseType,
				StartDate: start.t,
				EndDate:   endDate,
				IsMovable: !fixed,
			}
			if err := app.Phases.Create(ctx, ph); err != nil {
				return err
			}
			app.scheduleChanged()

			fmt.Fprintf(cmd.OutOrStdout(), "Scheduled %s %q %s (%s) [%s]\n",
				ph.Type, ph.Name, formatter.DateRange(ph.StartDate, ph.EndDate), formatter.Days(ph.Duration), ph.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project short ID or UUID")
	cmd.Flags().StringVar(&name, "name", "", "Phase name")
	cmd.Flags().StringVar(&typeStr, "type", "", "Phase type (planning, pre-production, filming, production, editing, review)")
	cmd.Flags().Var(&start, "start", "First day (YYYY-MM-DD)")
	cmd.Flags().Var(&end, "end", "Last day, inclusive (YYYY-MM-DD)")
	cmd.Flags().IntVar(&days, "days", 0, "Length in days, instead of --end")
	cmd.Flags().BoolVar(&fixed, "fixed", false, "Pin the phase to its dates")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill in fields with a form")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newPhaseListCmd(app *App) *cobra.Command {
	var projectRef string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's phases",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, projectRef)
			if err != nil {
				return err
			}
			phases, err := app.Phases.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			if len(phases) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No phases scheduled.")
				return nil
			}
			if err := annotateProjectPhases(ctx, app, phases); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPhaseList(phases, app.today()))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project short ID or UUID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newPhaseMoveCmd(app *App) *cobra.Command {
	var to dateValue
	var by int

	cmd := &cobra.Command{
		Use:   "move ID",
		Short: "Move a phase, keeping its length",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			phaseID, err := resolvePhaseID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var ph *domain.ProjectPhase
			switch {
			case to.IsSet() && cmd.Flags().Changed("by"):
				return fmt.Errorf("use either --to or --by, not both")
			case to.IsSet():
				ph, err = app.Phases.MoveTo(ctx, phaseID, to.t)
			case cmd.Flags().Changed("by"):
				ph, err = app.Phases.Shift(ctx, phaseID, by)
			default:
				return fmt.Errorf("--to or --by is required")
			}
			if err != nil {
				return err
			}
			app.scheduleChanged()

			fmt.Fprintf(cmd.OutOrStdout(), "Moved %q to %s\n", ph.Name, formatter.DateRange(ph.StartDate, ph.EndDate))
			return nil
		},
	}

	cmd.Flags().Var(&to, "to", "New first day (YYYY-MM-DD)")
	cmd.Flags().IntVar(&by, "by", 0, "Shift by N days (negative moves earlier)")

	return cmd
}

func newPhaseResizeCmd(app *App) *cobra.Command {
	var end dateValue

	cmd := &cobra.Command{
		Use:   "resize ID",
		Short: "Change a phase's last day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if !end.IsSet() {
				return fmt.Errorf("--end is required")
			}
			phaseID, err := resolvePhaseID(ctx, app, args[0])
			if err != nil {
				return err
			}
			ph, err := app.Phases.Resize(ctx, phaseID, end.t)
			if err != nil {
				return err
			}
			app.scheduleChanged()

			fmt.Fprintf(cmd.OutOrStdout(), "Resized %q to %s (%s)\n",
				ph.Name, formatter.DateRange(ph.StartDate, ph.EndDate), formatter.Days(ph.Duration))
			return nil
		},
	}

	cmd.Flags().Var(&end, "end", "New last day, inclusive (YYYY-MM-DD)")

	return cmd
}

func newPhaseRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			phaseID, err := resolvePhaseID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Phases.Delete(ctx, phaseID); err != nil {
				return err
			}
			app.scheduleChanged()
			fmt.Fprintf(cmd.OutOrStdout(), "Removed phase %s\n", args[0])
			return nil
		},
	}
}
