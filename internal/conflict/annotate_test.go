package conflict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vlanet/vridge/internal/domain"
)

func scheduleWithOverlap() []*domain.Project {
	p1 := &domain.Project{ID: "p1", Name: "Brand Film", Phases: []domain.ProjectPhase{
		phase("A", "p1", domain.PhaseFilming, day(2025, 1, 25), day(2025, 1, 27)),
		phase("A-edit", "p1", domain.PhaseEditing, day(2025, 1, 28), day(2025, 2, 5)),
	}}
	p2 := &domain.Project{ID: "p2", Name: "Music Video", Phases: []domain.ProjectPhase{
		phase("B", "p2", domain.PhaseFilming, day(2025, 1, 26), day(2025, 1, 28)),
	}}
	return []*domain.Project{p1, p2}
}

func allPhases(projects []*domain.Project) []domain.ProjectPhase {
	var out []domain.ProjectPhase
	for _, p := range projects {
		out = append(out, p.Phases...)
	}
	return out
}

func TestAnnotate_SetsConflictState(t *testing.T) {
	projects := scheduleWithOverlap()
	res := Detect(allPhases(projects))
	events := Annotate(domain.BuildCalendarEvents(projects), res)

	require.Len(t, events, 3)
	byID := map[string]domain.CalendarEvent{}
	for _, ev := range events {
		byID[ev.ID] = ev
	}

	a := byID["A"]
	assert.True(t, a.IsConflicting)
	require.Len(t, a.Conflicts, 1)
	assert.Equal(t, "B", a.Conflicts[0].WithPhaseID)
	assert.Equal(t, "p2", a.Conflicts[0].WithProjectID)
	require.NotNil(t, a.Phase.Conflict)
	assert.Equal(t, []string{"B"}, a.Phase.Conflict.ConflictingIDs)
	assert.Equal(t, domain.SeverityWarning, a.Phase.Conflict.Severity)

	b := byID["B"]
	assert.True(t, b.IsConflicting)
	assert.Equal(t, "A", b.Conflicts[0].WithPhaseID)

	edit := byID["A-edit"]
	assert.False(t, edit.IsConflicting)
	assert.Nil(t, edit.Conflicts)
	assert.Nil(t, edit.Phase.Conflict)
}

func TestAnnotate_IsIdempotentAndOverwrites(t *testing.T) {
	projects := scheduleWithOverlap()
	res := Detect(allPhases(projects))

	first := Annotate(domain.BuildCalendarEvents(projects), res)
	second := Annotate(first, res)
	assert.Equal(t, first, second)

	rebuilt := Annotate(domain.BuildCalendarEvents(projects), Detect(allPhases(projects)))
	assert.Equal(t, first, rebuilt)

	cleared := Annotate(first, Detect(nil))
	for _, ev := range cleared {
		assert.False(t, ev.IsConflicting)
		assert.Nil(t, ev.Conflicts)
		assert.Nil(t, ev.Phase.Conflict)
	}
}

func TestAnnotatePhases(t *testing.T) {
	phases := allPhases(scheduleWithOverlap())
	annotated := AnnotatePhases(phases, Detect(phases))

	require.Len(t, annotated, 3)
	require.NotNil(t, annotated[0].Conflict)
	assert.Contains(t, annotated[0].Conflict.Description, `filming "A" overlaps filming "B"`)
	assert.Nil(t, annotated[1].Conflict)
	assert.Nil(t, phases[0].Conflict, "input must not be mutated")
}
