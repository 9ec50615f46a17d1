package repository

import (
	"context"
	"errors"
	"time"

	"github.com/vlanet/vridge/internal/domain"
)

// ErrNotFound is wrapped by every lookup that matches no row.
var ErrNotFound = errors.New("not found")

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Project, error)
	List(ctx context.Context, includeClosed bool) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	UpdateStatus(ctx context.Context, id string, status domain.ProjectStatus) error
	Delete(ctx context.Context, id string) error
}

type PhaseRepo interface {
	Create(ctx context.Context, ph *domain.ProjectPhase) error
	GetByID(ctx context.Context, id string) (*domain.ProjectPhase, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.ProjectPhase, error)
	// ListInRange returns phases sharing at least one day with [from, to].
	ListInRange(ctx context.Context, from, to time.Time) ([]*domain.ProjectPhase, error)
	Update(ctx context.Context, ph *domain.ProjectPhase) error
	Delete(ctx context.Context, id string) error
}
