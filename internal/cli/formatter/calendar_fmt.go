package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/vlanet/vridge/internal/contract"
	"github.com/vlanet/vridge/internal/domain"
	"github.com/vlanet/vridge/internal/palette"
)

const (
	timelineLabelWidth = 32
	maxTimelineDays    = 120
)

// FormatCalendar renders the calendar window as one timeline row per event,
// with overlap days highlighted, followed by the project legend.
func FormatCalendar(resp *contract.CalendarResponse) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(DateRange(resp.From, resp.To)) + "\n")
	b.WriteString(ConflictBanner(resp.Conflicts.Conflicts, len(resp.Conflicts.AffectedEvents)) + "\n\n")

	if len(resp.Events) == 0 {
		b.WriteString(Dim("No phases scheduled in this window.") + "\n")
	} else {
		palettes := make(map[string]palette.Palette, len(resp.Legend))
		for _, l := range resp.Legend {
			palettes[l.ProjectID] = l.Palette
		}
		days := domain.InclusiveDays(resp.From, resp.To)
		if days > maxTimelineDays {
			days = maxTimelineDays
		}
		b.WriteString(strings.Repeat(" ", timelineLabelWidth+1) + Dim(ruler(resp.From, days)) + "\n")
		for _, ev := range resp.Events {
			pal := palettes[ev.Phase.ProjectID]
			label := truncate(ev.Title, timelineLabelWidth)
			if ev.IsConflicting {
				label = truncate("! "+ev.Title, timelineLabelWidth)
			}
			pad := strings.Repeat(" ", timelineLabelWidth-len([]rune(label))+1)
			b.WriteString(ProjectForeground(pal).Render(label) + pad + timelineBar(ev, resp, days, pal) + "\n")
		}
	}

	if len(resp.Legend) > 0 {
		b.WriteString("\n" + FormatLegend(resp.Legend))
	}
	if len(resp.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range resp.Warnings {
			b.WriteString(StyleYellow.Render("⚠ "+w) + "\n")
		}
	}
	return RenderBox("Calendar", strings.TrimRight(b.String(), "\n"))
}

// FormatLegend renders one swatch per project.
func FormatLegend(legend []contract.LegendEntry) string {
	var b strings.Builder
	for _, l := range legend {
		name := l.Name
		if l.Status.IsClosed() {
			name += " " + Dim("("+string(l.Status)+")")
		}
		b.WriteString(Swatch(l.Palette, l.ShortID) + " " + name + "\n")
	}
	return b.String()
}

// ruler marks the first day of each week with its day of month.
func ruler(from time.Time, days int) string {
	cells := []rune(strings.Repeat(" ", days))
	for i := 0; i < days; i += 7 {
		label := fmt.Sprintf("%d", from.AddDate(0, 0, i).Day())
		for k, r := range label {
			if i+k < days {
				cells[i+k] = r
			}
		}
	}
	return string(cells)
}

func timelineBar(ev domain.CalendarEvent, resp *contract.CalendarResponse, days int, pal palette.Palette) string {
	overlap := make(map[int]bool)
	for _, c := range resp.Conflicts.ConflictsFor(ev.ID) {
		for d := c.OverlapStart; !d.After(c.OverlapEnd); d = d.AddDate(0, 0, 1) {
			overlap[domain.InclusiveDays(resp.From, d)-1] = true
		}
	}
	start := domain.InclusiveDays(resp.From, ev.Phase.StartDate) - 1
	end := domain.InclusiveDays(resp.From, ev.Phase.EndDate) - 1

	var b strings.Builder
	for i := 0; i < days; i++ {
		switch {
		case i < start || i > end:
			b.WriteString(Dim("·"))
		case overlap[i]:
			b.WriteString(SeverityStyle(ev.ConflictSeverity()).Render("▓"))
		default:
			b.WriteString(ProjectForeground(pal).Render("█"))
		}
	}
	return b.String()
}
