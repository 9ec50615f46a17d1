package contract

import (
	"time"

	"github.com/vlanet/vridge/internal/conflict"
	"github.com/vlanet/vridge/internal/domain"
	"github.com/vlanet/vridge/internal/palette"
)

// CalendarRequest selects the window and projects a calendar view covers.
type CalendarRequest struct {
	From           time.Time
	To             time.Time
	ProjectScope   []string
	IncludeClosed  bool
	SensitiveTypes domain.PhaseTypeSet // nil uses the service default
	MinSeverity    domain.Severity     // conflicts below are dropped; "" keeps all
}

// NewCalendarRequest covers weeks weeks starting on from's day.
func NewCalendarRequest(from time.Time, weeks int) CalendarRequest {
	if weeks <= 0 {
		weeks = 4
	}
	start := domain.Day(from)
	return CalendarRequest{
		From: start,
		To:   start.AddDate(0, 0, weeks*7-1),
	}
}

// LegendEntry is one project's row in the calendar legend.
type LegendEntry struct {
	ProjectID string
	ShortID   string
	Name      string
	Status    domain.ProjectStatus
	Palette   palette.Palette
	Override  bool // Palette.Primary comes from the project's stored color
}

type CalendarResponse struct {
	From      time.Time
	To        time.Time
	Events    []domain.CalendarEvent
	Conflicts conflict.Result
	Legend    []LegendEntry
	Warnings  []string
	CacheHit  bool
}

// ConflictingEvents returns only events flagged as conflicting.
func (r *CalendarResponse) ConflictingEvents() []domain.CalendarEvent {
	var out []domain.CalendarEvent
	for _, ev := range r.Events {
		if ev.IsConflicting {
			out = append(out, ev)
		}
	}
	return out
}

type CalendarErrorCode string

const (
	CalendarErrInvalidWindow CalendarErrorCode = "INVALID_WINDOW"
	CalendarErrInvalidScope  CalendarErrorCode = "INVALID_SCOPE"
)

type CalendarError struct {
	Code    CalendarErrorCode
	Message string
}

func (e *CalendarError) Error() string {
	return string(e.Code) + ": " + e.Message
}
