package formatter

import (
	"time"

	"github.com/vlanet/vridge/internal/domain"
)

// FormatPhaseList renders phases as a table. Phases carrying a conflict
// annotation show its severity.
func FormatPhaseList(phases []*domain.ProjectPhase, today time.Time) string {
	headers := []string{"ID", "NAME", "TYPE", "DATES", "DAYS", "WHEN", "", "CONFLICT"}
	rows := make([][]string, 0, len(phases))
	for _, ph := range phases {
		lock := ""
		if !ph.IsMovable {
			lock = Dim("fixed")
		}
		conflict := Dim("--")
		if ph.Conflict != nil && ph.Conflict.Severity != domain.SeverityNone {
			conflict = SeverityIndicator(ph.Conflict.Severity)
		}
		rows = append(rows, []string{
			TruncID(ph.ID),
			Bold(ph.Name),
			PhaseTypeBadge(ph.Type),
			StyleFg.Render(DateRange(ph.StartDate, ph.EndDate)),
			Days(domain.InclusiveDays(ph.StartDate, ph.EndDate)),
			Dim(PhaseTiming(ph.StartDate, ph.EndDate, today)),
			lock,
			conflict,
		})
	}
	return RenderTable(headers, rows)
}
