package service

import (
	"context"
	"time"

	"github.com/vlanet/vridge/internal/contract"
	"github.com/vlanet/vridge/internal/domain"
	"github.com/vlanet/vridge/internal/importer"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, includeClosed bool) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	SetStatus(ctx context.Context, id string, status domain.ProjectStatus) error
	Delete(ctx context.Context, id string, force bool) error
}

type PhaseService interface {
	Create(ctx context.Context, ph *domain.ProjectPhase) error
	GetByID(ctx context.Context, id string) (*domain.ProjectPhase, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.ProjectPhase, error)
	// MoveTo places a movable phase on a new start date, keeping its duration.
	MoveTo(ctx context.Context, id string, start time.Time) (*domain.ProjectPhase, error)
	// Shift moves a movable phase by a number of days.
	Shift(ctx context.Context, id string, days int) (*domain.ProjectPhase, error)
	// Resize sets a movable phase's end date.
	Resize(ctx context.Context, id string, end time.Time) (*domain.ProjectPhase, error)
	Delete(ctx context.Context, id string) error
}

type CalendarService interface {
	Build(ctx context.Context, req contract.CalendarRequest) (*contract.CalendarResponse, error)
	// Invalidate drops every cached detection result.
	Invalidate()
}

// ImportResult holds the outcome of a schedule import.
type ImportResult struct {
	Projects   []*domain.Project
	PhaseCount int
}

type ImportService interface {
	ImportSchedule(ctx context.Context, filePath string) (*ImportResult, error)
	ImportScheduleFromSchema(ctx context.Context, schema *importer.ScheduleSchema) (*ImportResult, error)
}
