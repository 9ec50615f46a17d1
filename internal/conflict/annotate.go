package conflict

import (
	"sort"
	"strings"

	"github.com/vlanet/vridge/internal/domain"
)

// Annotate returns a copy of events with IsConflicting, Conflicts and the
// phase's conflict annotation rebuilt from res. Previous conflict state on
// the events is discarded, so annotating twice with the same result is a no-op.
func Annotate(events []domain.CalendarEvent, res Result) []domain.CalendarEvent {
	byPhase := index(res)
	out := make([]domain.CalendarEvent, len(events))
	for i, ev := range events {
		ev.IsConflicting = false
		ev.Conflicts = nil
		ev.Phase.Conflict = nil
		if cs := byPhase[ev.ID]; len(cs) > 0 {
			ev.IsConflicting = true
			ev.Conflicts = details(ev.ID, cs)
			ev.Phase.Conflict = annotation(ev.ID, cs)
		}
		out[i] = ev
	}
	return out
}

// AnnotatePhases writes conflict annotations onto a copy of phases.
func AnnotatePhases(phases []domain.ProjectPhase, res Result) []domain.ProjectPhase {
	byPhase := index(res)
	out := make([]domain.ProjectPhase, len(phases))
	for i, ph := range phases {
		ph.Conflict = nil
		if cs := byPhase[ph.ID]; len(cs) > 0 {
			ph.Conflict = annotation(ph.ID, cs)
		}
		out[i] = ph
	}
	return out
}

func index(res Result) map[string][]Conflict {
	m := make(map[string][]Conflict, len(res.AffectedEvents))
	for _, c := range res.Conflicts {
		m[c.PhaseIDs[0]] = append(m[c.PhaseIDs[0]], c)
		m[c.PhaseIDs[1]] = append(m[c.PhaseIDs[1]], c)
	}
	return m
}

func details(phaseID string, cs []Conflict) []domain.ConflictDetail {
	out := make([]domain.ConflictDetail, 0, len(cs))
	for _, c := range cs {
		id, projectID := c.Other(phaseID)
		out = append(out, domain.ConflictDetail{
			WithPhaseID:   id,
			WithProjectID: projectID,
			Severity:      c.Severity,
			Description:   c.Description,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WithPhaseID < out[j].WithPhaseID })
	return out
}

func annotation(phaseID string, cs []Conflict) *domain.ConflictAnnotation {
	a := &domain.ConflictAnnotation{Severity: domain.SeverityNone}
	var descs []string
	for _, c := range cs {
		id, _ := c.Other(phaseID)
		a.ConflictingIDs = append(a.ConflictingIDs, id)
		descs = append(descs, c.Description)
		if c.Severity.Rank() > a.Severity.Rank() {
			a.Severity = c.Severity
		}
	}
	sort.Strings(a.ConflictingIDs)
	sort.Strings(descs)
	a.Description = strings.Join(descs, "; ")
	return a
}
