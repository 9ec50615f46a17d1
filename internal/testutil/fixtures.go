package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/vlanet/vridge/internal/domain"
)

var testShortIDCounter atomic.Int64

// Date returns midnight UTC on the given day.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithShortID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ShortID = id
	}
}

func WithOrganization(org, manager string) ProjectOption {
	return func(p *domain.Project) {
		p.Organization = org
		p.Manager = manager
	}
}

func WithColor(c string) ProjectOption {
	return func(p *domain.Project) {
		p.Color = c
	}
}

func defaultShortID(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testShortIDCounter.Add(1)
	return fmt.Sprintf("%s%02d", string(letters), n)
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Project{
		ID:        uuid.New().String(),
		ShortID:   defaultShortID(name),
		Name:      name,
		Status:    domain.ProjectActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Phase options
type PhaseOption func(*domain.ProjectPhase)

func WithPhaseType(t domain.PhaseType) PhaseOption {
	return func(ph *domain.ProjectPhase) {
		ph.Type = t
	}
}

func WithDates(start, end time.Time) PhaseOption {
	return func(ph *domain.ProjectPhase) {
		ph.StartDate = start
		ph.EndDate = end
		ph.Duration = domain.InclusiveDays(start, end)
	}
}

func WithFixed() PhaseOption {
	return func(ph *domain.ProjectPhase) {
		ph.IsMovable = false
	}
}

func WithPhaseID(id string) PhaseOption {
	return func(ph *domain.ProjectPhase) {
		ph.ID = id
	}
}

// NewTestPhase creates a movable three-day filming phase starting 2025-01-25.
func NewTestPhase(projectID, name string, opts ...PhaseOption) *domain.ProjectPhase {
	now := time.Now().UTC().Truncate(time.Second)
	ph := &domain.ProjectPhase{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		Type:      domain.PhaseFilming,
		StartDate: Date(2025, 1, 25),
		EndDate:   Date(2025, 1, 27),
		Duration:  3,
		IsMovable: true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(ph)
	}
	return ph
}
