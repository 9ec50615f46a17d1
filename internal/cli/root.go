package cli

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/vlanet/vridge/internal/domain"
	"github.com/vlanet/vridge/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects service.ProjectService
	Phases   service.PhaseService
	Calendar service.CalendarService
	Import   service.ImportService

	// IsInteractive reports whether stdin is a terminal; forms only run when it is.
	IsInteractive func() bool
	// Now returns the current time; calendar windows default to its day.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) today() time.Time {
	if a.Now != nil {
		return domain.Day(a.Now())
	}
	return domain.Day(time.Now())
}

// scheduleChanged drops cached calendar results after a write.
func (a *App) scheduleChanged() {
	if a.Calendar != nil {
		a.Calendar.Invalidate()
	}
}

// NewRootCmd creates the top-level "vridge" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "vridge",
		Short:         "Video production schedule planner",
		Long:          "Plan video production projects, spot overlapping shoots and give every project a stable color.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newProjectCmd(app),
		newPhaseCmd(app),
		newCalendarCmd(app),
		newConflictsCmd(app),
		newPaletteCmd(app),
		newImportCmd(app),
	)

	return root
}
