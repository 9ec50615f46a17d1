package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vlanet/vridge/internal/cli/formatter"
	"github.com/vlanet/vridge/internal/conflict"
	"github.com/vlanet/vridge/internal/contract"
	"github.com/vlanet/vridge/internal/domain"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectUpdateCmd(app),
		newProjectStatusCmd(app),
		newProjectRemoveCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var f projectForm
	var status string
	var interactive bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				if !app.interactive() {
					return fmt.Errorf("--interactive requires a terminal")
				}
				if err := wizardProjectAdd(&f).Run(); err != nil {
					return err
				}
			}
			if f.ShortID == "" || f.Name == "" {
				return fmt.Errorf("--id and --name are required (or use --interactive)")
			}

			st, err := domain.ParseProjectStatus(status)
			if err != nil {
				return err
			}
			p := &domain.Project{
				ShortID:      strings.ToUpper(strings.TrimSpace(f.ShortID)),
				Name:         strings.TrimSpace(f.Name),
				Status:       st,
				Organization: f.Organization,
				Manager:      f.Manager,
				Color:        f.Color,
			}
			if err := validateOptionalColor(p.Color); err != nil {
				return fmt.Errorf("invalid --color %q: %w", p.Color, err)
			}
			if err := app.Projects.Create(context.Background(), p); err != nil {
				return err
			}
			app.scheduleChanged()

			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s [%s]\n", p.Name, p.ShortID)
			return nil
		},
	}

	cmd.Flags().StringVar(&f.ShortID, "id", "", "Short ID (3-6 uppercase letters + 2-4 digits, e.g. FILM01)")
	cmd.Flags().StringVar(&f.Name, "name", "", "Project name")
	cmd.Flags().StringVar(&f.Organization, "org", "", "Client organization")
	cmd.Flags().StringVar(&f.Manager, "manager", "", "Project manager")
	cmd.Flags().StringVar(&f.Color, "color", "", "Color override (hex, e.g. #336699)")
	cmd.Flags().StringVar(&status, "status", string(domain.ProjectActive), "Initial status")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill in fields with a form")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(context.Background(), all)
			if err != nil {
				return err
			}

			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(projects))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include completed and cancelled projects")

	return cmd
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "show ID",
		Aliases: []string{"inspect"},
		Short:   "Show project details and phases",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, projectID)
			if err != nil {
				return err
			}
			phases, err := app.Phases.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			if err := annotateProjectPhases(ctx, app, phases); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectDetail(p, phases, app.today()))
			return nil
		},
	}
}

// annotateProjectPhases sets each phase's conflict annotation from a
// calendar covering the phases' span, including other projects.
func annotateProjectPhases(ctx context.Context, app *App, phases []*domain.ProjectPhase) error {
	if len(phases) == 0 {
		return nil
	}
	start, end := phases[0].StartDate, phases[0].EndDate
	for _, ph := range phases[1:] {
		if ph.StartDate.Before(start) {
			start = ph.StartDate
		}
		if ph.EndDate.After(end) {
			end = ph.EndDate
		}
	}
	resp, err := app.Calendar.Build(ctx, contract.CalendarRequest{From: start, To: end, IncludeClosed: true})
	if err != nil {
		return err
	}
	values := make([]domain.ProjectPhase, len(phases))
	for i, ph := range phases {
		values[i] = *ph
	}
	for i, ph := range conflict.AnnotatePhases(values, resp.Conflicts) {
		phases[i].Conflict = ph.Conflict
	}
	return nil
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var name, org, manager, color string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update project fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, projectID)
			if err != nil {
				return err
			}

			changed := false
			if cmd.Flags().Changed("name") {
				p.Name = name
				changed = true
			}
			if cmd.Flags().Changed("org") {
				p.Organization = org
				changed = true
			}
			if cmd.Flags().Changed("manager") {
				p.Manager = manager
				changed = true
			}
			if cmd.Flags().Changed("color") {
				if err := validateOptionalColor(color); err != nil {
					return fmt.Errorf("invalid --color %q: %w", color, err)
				}
				p.Color = color
				changed = true
			}
			if !changed {
				return fmt.Errorf("nothing to update (use --name, --org, --manager or --color)")
			}

			if err := app.Projects.Update(ctx, p); err != nil {
				return err
			}
			app.scheduleChanged()
			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s [%s]\n", p.Name, p.ShortID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&org, "org", "", "Client organization")
	cmd.Flags().StringVar(&manager, "manager", "", "Project manager")
	cmd.Flags().StringVar(&color, "color", "", "Color override (hex, empty to clear)")

	return cmd
}

func newProjectStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Set project status (active, on-hold, completed, cancelled)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			status, err := domain.ParseProjectStatus(args[1])
			if err != nil {
				return err
			}
			if err := app.Projects.SetStatus(ctx, projectID, status); err != nil {
				return err
			}
			app.scheduleChanged()
			fmt.Fprintf(cmd.OutOrStdout(), "Project %s is now %s\n", args[0], status)
			return nil
		},
	}
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a project and its phases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Delete(ctx, projectID, force); err != nil {
				return err
			}
			app.scheduleChanged()
			fmt.Fprintf(cmd.OutOrStdout(), "Removed project %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Delete even if the project is still open")

	return cmd
}
