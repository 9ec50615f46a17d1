package formatter

import (
	"fmt"
	"strings"

	"github.com/vlanet/vridge/internal/conflict"
	"github.com/vlanet/vridge/internal/domain"
)

// ConflictBanner summarizes detected conflicts in a single styled line.
func ConflictBanner(conflicts []conflict.Conflict, affected int) string {
	if len(conflicts) == 0 {
		return StyleGreen.Render("✔ No schedule conflicts")
	}
	worst := domain.SeverityNone
	for _, c := range conflicts {
		if c.Severity.Rank() > worst.Rank() {
			worst = c.Severity
		}
	}
	noun := "conflicts"
	if len(conflicts) == 1 {
		noun = "conflict"
	}
	return SeverityStyle(worst).Render(fmt.Sprintf("▲ %d %s across %d phases", len(conflicts), noun, affected))
}

// FormatConflictReport renders a conflict table. labels maps phase IDs to
// display labels; unknown IDs are shown truncated.
func FormatConflictReport(res conflict.Result, labels map[string]string) string {
	var b strings.Builder
	b.WriteString(ConflictBanner(res.Conflicts, len(res.AffectedEvents)) + "\n")

	if len(res.Conflicts) > 0 {
		headers := []string{"SEVERITY", "PHASE", "OVERLAPS", "DATES", "DAYS"}
		rows := make([][]string, 0, len(res.Conflicts))
		for _, c := range res.Conflicts {
			rows = append(rows, []string{
				SeverityIndicator(c.Severity),
				phaseLabel(labels, c.PhaseIDs[0]),
				phaseLabel(labels, c.PhaseIDs[1]),
				StyleFg.Render(DateRange(c.OverlapStart, c.OverlapEnd)),
				Days(c.OverlapDays()),
			})
		}
		b.WriteString("\n" + RenderTable(headers, rows))
	}

	if len(res.Skipped) > 0 {
		b.WriteString("\n" + Header("Skipped") + "\n")
		for _, s := range res.Skipped {
			b.WriteString(fmt.Sprintf("%s %s\n", phaseLabel(labels, s.PhaseID), Dim(s.Reason)))
		}
	}
	return RenderBox("Conflicts", strings.TrimRight(b.String(), "\n"))
}

func phaseLabel(labels map[string]string, id string) string {
	if l, ok := labels[id]; ok {
		return StyleFg.Render(l)
	}
	if id == "" {
		return Dim("(no id)")
	}
	return TruncID(id)
}
