package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/vlanet/vridge/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// PhaseTiming says where a phase sits relative to today: "starts in 5d",
// "day 2 of 3", "ended 4d ago".
func PhaseTiming(start, end, today time.Time) string {
	start, end, today = domain.Day(start), domain.Day(end), domain.Day(today)
	switch {
	case today.Before(start):
		return "starts " + relativeDays(domain.InclusiveDays(today, start)-1)
	case today.After(end):
		return "ended " + relativeDays(-(domain.InclusiveDays(end, today) - 1))
	default:
		return fmt.Sprintf("day %d of %d", domain.InclusiveDays(start, today), domain.InclusiveDays(start, end))
	}
}

func relativeDays(days int) string {
	switch {
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("in %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("in %dw", days/7)
	case days > 0:
		return fmt.Sprintf("in %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// DateRange renders an inclusive range such as "Jan 25 → Jan 27, 2025".
func DateRange(start, end time.Time) string {
	if start.Equal(end) {
		return start.Format("Jan 2, 2006")
	}
	if start.Year() == end.Year() {
		return start.Format("Jan 2") + " → " + end.Format("Jan 2, 2006")
	}
	return start.Format("Jan 2, 2006") + " → " + end.Format("Jan 2, 2006")
}

// Days renders a day count with its unit.
func Days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// StatusPill returns a colored status indicator for project status.
func StatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectActive:
		return StyleGreen.Render("● Active")
	case domain.ProjectOnHold:
		return StyleYellow.Render("○ On hold")
	case domain.ProjectCompleted:
		return StyleDim.Render("✔ Completed")
	case domain.ProjectCancelled:
		return StyleDim.Render("✖ Cancelled")
	default:
		return StyleDim.Render(string(status))
	}
}

// PhaseTypeBadge returns a styled phase type label. Types that take part in
// conflict detection by default are highlighted.
func PhaseTypeBadge(t domain.PhaseType) string {
	label := strings.ReplaceAll(string(t), "_", "-")
	if domain.DefaultConflictTypes().Contains(t) {
		return StylePurple.Render(label)
	}
	return StyleBlue.Render(label)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "…"
}
