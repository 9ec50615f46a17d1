package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vlanet/vridge/internal/domain"
	"github.com/vlanet/vridge/internal/palette"
	"github.com/vlanet/vridge/internal/repository"
)

// ErrProjectOpen is returned when deleting an active or on-hold project
// without force.
var ErrProjectOpen = errors.New("project is still open")

type projectService struct {
	projects repository.ProjectRepo
}

func NewProjectService(projects repository.ProjectRepo) ProjectService {
	return &projectService{projects: projects}
}

// checkProject trims free-text fields and rejects what the schedule cannot
// display: a blank name, an unknown status or a color override that is not
// a hex color.
func checkProject(p *domain.Project) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Organization = strings.TrimSpace(p.Organization)
	p.Manager = strings.TrimSpace(p.Manager)
	p.Color = strings.TrimSpace(p.Color)

	if p.Name == "" {
		return fmt.Errorf("project name is required")
	}
	if !domain.ValidProjectStatuses[p.Status] {
		return fmt.Errorf("invalid project status %q", p.Status)
	}
	if p.Color != "" {
		if _, err := palette.WithPrimary(palette.DefaultPalette, p.Color); err != nil {
			return err
		}
	}
	return nil
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) error {
	if err := p.ValidateShortID(); err != nil {
		return err
	}
	if p.Status == "" {
		p.Status = domain.ProjectActive
	}
	if err := checkProject(p); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	return s.projects.Create(ctx, p)
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context, includeClosed bool) ([]*domain.Project, error) {
	return s.projects.List(ctx, includeClosed)
}

func (s *projectService) Update(ctx context.Context, p *domain.Project) error {
	if err := checkProject(p); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	return s.projects.Update(ctx, p)
}

func (s *projectService) SetStatus(ctx context.Context, id string, status domain.ProjectStatus) error {
	if !domain.ValidProjectStatuses[status] {
		return fmt.Errorf("invalid project status %q", status)
	}
	return s.projects.UpdateStatus(ctx, id, status)
}

// Delete removes a project and, by cascade, its phases. Open projects need
// force.
func (s *projectService) Delete(ctx context.Context, id string, force bool) error {
	if !force {
		p, err := s.projects.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !p.Status.IsClosed() {
			return fmt.Errorf("deleting %s (%s): %w; complete or cancel it first, or use --force",
				p.DisplayID(), p.Status, ErrProjectOpen)
		}
	}
	return s.projects.Delete(ctx, id)
}
