package domain

// ConflictDetail is one conflicting counterpart of a calendar event.
type ConflictDetail struct {
	WithPhaseID   string
	WithProjectID string
	Severity      Severity
	Description   string
}

// CalendarEvent pairs a phase with its parent project for display. The
// conflict fields are derived and overwritten on every detection run.
type CalendarEvent struct {
	ID            string // phase ID
	Title         string
	Phase         ProjectPhase
	Project       *Project
	Color         string
	IsConflicting bool
	Conflicts     []ConflictDetail
}

// NewCalendarEvent builds an event for phase with no conflict state.
func NewCalendarEvent(project *Project, phase ProjectPhase) CalendarEvent {
	title := phase.Name
	if project != nil {
		title = project.Name + " · " + phase.Name
	}
	return CalendarEvent{
		ID:      phase.ID,
		Title:   title,
		Phase:   phase,
		Project: project,
	}
}

// BuildCalendarEvents projects every phase of every project into an event.
func BuildCalendarEvents(projects []*Project) []CalendarEvent {
	var events []CalendarEvent
	for _, p := range projects {
		for _, ph := range p.Phases {
			events = append(events, NewCalendarEvent(p, ph))
		}
	}
	return events
}

// ConflictSeverity is the most serious severity among the event's conflicts.
func (e CalendarEvent) ConflictSeverity() Severity {
	worst := SeverityNone
	for _, c := range e.Conflicts {
		if c.Severity.Rank() > worst.Rank() {
			worst = c.Severity
		}
	}
	return worst
}
