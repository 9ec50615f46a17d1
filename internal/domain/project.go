package domain

import (
	"fmt"
	"regexp"
	"sort"
	"time"
)

var shortIDPattern = regexp.MustCompile(`^[A-Z]{3,6}[0-9]{2,4}$`)

type Project struct {
	ID           string
	ShortID      string
	Name         string
	Status       ProjectStatus
	Color        string // display override; palette derivation is authoritative
	Organization string
	Manager      string
	Phases       []ProjectPhase
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidateShortID checks that ShortID is non-empty and matches the required
// format: 3-6 uppercase letters followed by 2-4 digits (e.g. FILM01, AD2025).
func (p *Project) ValidateShortID() error {
	if p.ShortID == "" {
		return fmt.Errorf("short ID is required (use --id flag)")
	}
	if !shortIDPattern.MatchString(p.ShortID) {
		return fmt.Errorf("short ID %q must be 3-6 uppercase letters followed by 2-4 digits (e.g. FILM01)", p.ShortID)
	}
	return nil
}

// DisplayID returns the best short identifier for display.
// It prefers ShortID; if empty it truncates ID to 8 characters.
func (p *Project) DisplayID() string {
	if p.ShortID != "" {
		return p.ShortID
	}
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}

// SortPhases orders Phases by start date, then end date, then ID.
func (p *Project) SortPhases() {
	sort.SliceStable(p.Phases, func(i, j int) bool {
		a, b := p.Phases[i], p.Phases[j]
		if !a.StartDate.Equal(b.StartDate) {
			return a.StartDate.Before(b.StartDate)
		}
		if !a.EndDate.Equal(b.EndDate) {
			return a.EndDate.Before(b.EndDate)
		}
		return a.ID < b.ID
	})
}

// Span returns the first start and last end across all phases.
// ok is false when the project has no phases.
func (p *Project) Span() (start, end time.Time, ok bool) {
	for i, ph := range p.Phases {
		if i == 0 || ph.StartDate.Before(start) {
			start = ph.StartDate
		}
		if i == 0 || ph.EndDate.After(end) {
			end = ph.EndDate
		}
	}
	return start, end, len(p.Phases) > 0
}
