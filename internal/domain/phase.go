package domain

import (
	"errors"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

var (
	ErrInvalidDateRange = errors.New("end date is before start date")
	ErrMissingDate      = errors.New("start and end dates are required")
	ErrPhaseNotMovable  = errors.New("phase is not movable")
)

// ConflictAnnotation is written onto a phase after conflict detection runs.
type ConflictAnnotation struct {
	Severity       Severity
	ConflictingIDs []string
	Description    string
}

// ProjectPhase is a scheduled unit of work. StartDate and EndDate are
// inclusive calendar days normalized to UTC midnight.
type ProjectPhase struct {
	ID        string
	ProjectID string
	Name      string
	Type      PhaseType
	StartDate time.Time
	EndDate   time.Time
	Duration  int // inclusive day count
	IsMovable bool
	Conflict  *ConflictAnnotation
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Day truncates t to its calendar day in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// InclusiveDays returns the number of calendar days in [start, end].
// A range that starts and ends on the same day spans one day.
func InclusiveDays(start, end time.Time) int {
	return int(Day(end).Sub(Day(start)).Hours()/24) + 1
}

// Validate checks the phase's date range. Any error means the phase cannot
// take part in scheduling computations.
func (p *ProjectPhase) Validate() error {
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return ErrMissingDate
	}
	if Day(p.EndDate).Before(Day(p.StartDate)) {
		return fmt.Errorf("%w (%s < %s)", ErrInvalidDateRange,
			p.EndDate.Format(DateLayout), p.StartDate.Format(DateLayout))
	}
	return nil
}

// Normalize truncates both dates to calendar days and recomputes Duration.
func (p *ProjectPhase) Normalize() {
	p.StartDate = Day(p.StartDate)
	p.EndDate = Day(p.EndDate)
	p.Duration = InclusiveDays(p.StartDate, p.EndDate)
}

// Shift moves the phase by days, keeping its duration.
func (p *ProjectPhase) Shift(days int) error {
	if !p.IsMovable {
		return ErrPhaseNotMovable
	}
	p.StartDate = p.StartDate.AddDate(0, 0, days)
	p.EndDate = p.EndDate.AddDate(0, 0, days)
	return nil
}

// MoveTo places the phase so it begins on start, keeping its duration.
func (p *ProjectPhase) MoveTo(start time.Time) error {
	if !p.IsMovable {
		return ErrPhaseNotMovable
	}
	days := InclusiveDays(p.StartDate, p.EndDate)
	p.StartDate = Day(start)
	p.EndDate = p.StartDate.AddDate(0, 0, days-1)
	p.Duration = days
	return nil
}
