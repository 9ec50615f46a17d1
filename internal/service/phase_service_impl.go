package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vlanet/vridge/internal/domain"
	"github.com/vlanet/vridge/internal/repository"
)

type phaseService struct {
	phases   repository.PhaseRepo
	projects repository.ProjectRepo
	observer UseCaseObserver
}

func NewPhaseService(phases repository.PhaseRepo, projects repository.ProjectRepo, observers ...UseCaseObserver) PhaseService {
	return &phaseService{
		phases:   phases,
		projects: projects,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *phaseService) Create(ctx context.Context, ph *domain.ProjectPhase) error {
	if ph.Name == "" {
		return fmt.Errorf("phase name is required")
	}
	if !ph.Type.Valid() {
		return fmt.Errorf("invalid phase type %q", ph.Type)
	}
	if err := ph.Validate(); err != nil {
		return err
	}
	if _, err := s.projects.GetByID(ctx, ph.ProjectID); err != nil {
		return err
	}
	if ph.ID == "" {
		ph.ID = uuid.New().String()
	}
	ph.Normalize()
	now := time.Now().UTC()
	ph.CreatedAt = now
	ph.UpdatedAt = now
	return s.phases.Create(ctx, ph)
}

func (s *phaseService) GetByID(ctx context.Context, id string) (*domain.ProjectPhase, error) {
	return s.phases.GetByID(ctx, id)
}

func (s *phaseService) ListByProject(ctx context.Context, projectID string) ([]*domain.ProjectPhase, error) {
	return s.phases.ListByProject(ctx, projectID)
}

func (s *phaseService) MoveTo(ctx context.Context, id string, start time.Time) (*domain.ProjectPhase, error) {
	return s.reschedule(ctx, "move-phase", id, func(ph *domain.ProjectPhase) error {
		return ph.MoveTo(start)
	})
}

func (s *phaseService) Shift(ctx context.Context, id string, days int) (*domain.ProjectPhase, error) {
	return s.reschedule(ctx, "shift-phase", id, func(ph *domain.ProjectPhase) error {
		return ph.Shift(days)
	})
}

func (s *phaseService) Resize(ctx context.Context, id string, end time.Time) (*domain.ProjectPhase, error) {
	return s.reschedule(ctx, "resize-phase", id, func(ph *domain.ProjectPhase) error {
		if !ph.IsMovable {
			return domain.ErrPhaseNotMovable
		}
		ph.EndDate = domain.Day(end)
		return ph.Validate()
	})
}

func (s *phaseService) Delete(ctx context.Context, id string) error {
	return s.phases.Delete(ctx, id)
}

// reschedule loads a phase, applies change, and persists the result.
func (s *phaseService) reschedule(ctx context.Context, name, id string, change func(*domain.ProjectPhase) error) (ph *domain.ProjectPhase, err error) {
	uc := startUseCase(s.observer, name)
	uc.Fields["phase_id"] = id
	defer func() { uc.end(ctx, err) }()

	ph, err = s.phases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.Fields["from"] = ph.StartDate.Format(domain.DateLayout)
	if err = change(ph); err != nil {
		return nil, fmt.Errorf("rescheduling phase %q: %w", ph.Name, err)
	}
	ph.Normalize()
	ph.UpdatedAt = time.Now().UTC()
	if err = s.phases.Update(ctx, ph); err != nil {
		return nil, err
	}
	uc.Fields["to"] = ph.StartDate.Format(domain.DateLayout)
	return ph, nil
}
