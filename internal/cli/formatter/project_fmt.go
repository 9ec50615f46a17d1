package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/vlanet/vridge/internal/domain"
	"github.com/vlanet/vridge/internal/palette"
)

// FormatProjectList renders a styled project list inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"ID", "NAME", "ORGANIZATION", "STATUS", "COLOR"}
	rows := make([][]string, 0, len(projects))

	for _, p := range projects {
		id := p.ShortID
		if strings.TrimSpace(id) == "" {
			id = TruncID(p.ID)
		}
		org := Dim("--")
		if p.Organization != "" {
			org = StyleFg.Render(p.Organization)
		}
		pal := projectPalette(p)
		rows = append(rows, []string{
			id,
			Bold(p.Name),
			org,
			StatusPill(p.Status),
			Swatch(pal, pal.Primary),
		})
	}

	return RenderBox("Projects", RenderTable(headers, rows))
}

// FormatProjectDetail renders a project card with its phase timeline.
func FormatProjectDetail(p *domain.Project, phases []*domain.ProjectPhase, today time.Time) string {
	var b strings.Builder
	pal := projectPalette(p)

	b.WriteString(Swatch(pal, p.DisplayID()) + " " + StyleBold.Render(p.Name) + "\n\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("STATUS "), StatusPill(p.Status)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("UUID   "), TruncID(p.ID)))
	if p.Organization != "" {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ORG    "), StyleFg.Render(p.Organization)))
	}
	if p.Manager != "" {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("MANAGER"), StyleFg.Render(p.Manager)))
	}
	if start, end, ok := spanOf(phases); ok {
		b.WriteString(fmt.Sprintf("%s  %s %s\n", StyleDim.Render("SPAN   "),
			StyleFg.Render(DateRange(start, end)), Dim("("+Days(domain.InclusiveDays(start, end))+")")))
	}

	b.WriteString("\n" + Header("Phases") + "\n")
	if len(phases) == 0 {
		b.WriteString(Dim("No phases scheduled.") + "\n")
	} else {
		b.WriteString(FormatPhaseList(phases, today))
	}
	return RenderBox("", b.String())
}

// projectPalette derives the display palette, honoring a valid stored override.
func projectPalette(p *domain.Project) palette.Palette {
	pal := palette.GenerateOrDefault(p.ID)
	if p.Color != "" {
		if override, err := palette.WithPrimary(pal, p.Color); err == nil {
			return override
		}
	}
	return pal
}

func spanOf(phases []*domain.ProjectPhase) (start, end time.Time, ok bool) {
	for _, ph := range phases {
		if !ok || ph.StartDate.Before(start) {
			start = ph.StartDate
		}
		if !ok || ph.EndDate.After(end) {
			end = ph.EndDate
		}
		ok = true
	}
	return start, end, ok
}
