package importer

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vlanet/vridge/internal/domain"
)

// Convert transforms a validated ScheduleSchema into domain projects with
// their phases attached. Call ValidateScheduleSchema first; Convert assumes
// the schema is valid.
func Convert(schema *ScheduleSchema) ([]*domain.Project, error) {
	now := time.Now().UTC()

	var defaultStatus string
	var defaultMovable *bool
	if schema.Defaults != nil {
		defaultStatus = schema.Defaults.Status
		defaultMovable = schema.Defaults.Movable
	}

	projects := make([]*domain.Project, 0, len(schema.Projects))
	for _, pi := range schema.Projects {
		status, err := domain.ParseProjectStatus(domain.FirstNonBlank(pi.Status, defaultStatus, string(domain.ProjectActive)))
		if err != nil {
			return nil, fmt.Errorf("project %s: %w", pi.ShortID, err)
		}
		p := &domain.Project{
			ID:           uuid.New().String(),
			ShortID:      pi.ShortID,
			Name:         pi.Name,
			Status:       status,
			Color:        pi.Color,
			Organization: pi.Organization,
			Manager:      pi.Manager,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		for _, phi := range pi.Phases {
			ph, err := convertPhase(p.ID, phi, defaultMovable, now)
			if err != nil {
				return nil, fmt.Errorf("project %s phase %q: %w", pi.ShortID, phi.Name, err)
			}
			p.Phases = append(p.Phases, ph)
		}
		p.SortPhases()
		projects = append(projects, p)
	}
	return projects, nil
}

func convertPhase(projectID string, phi PhaseImport, defaultMovable *bool, now time.Time) (domain.ProjectPhase, error) {
	typ, err := domain.ParsePhaseType(phi.Type)
	if err != nil {
		return domain.ProjectPhase{}, err
	}
	start, err := time.Parse(domain.DateLayout, phi.Start)
	if err != nil {
		return domain.ProjectPhase{}, fmt.Errorf("parsing start: %w", err)
	}
	end := start.AddDate(0, 0, domain.FirstSet(1, phi.DurationDays)-1)
	if phi.End != "" {
		if end, err = time.Parse(domain.DateLayout, phi.End); err != nil {
			return domain.ProjectPhase{}, fmt.Errorf("parsing end: %w", err)
		}
	}
	ph := domain.ProjectPhase{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      phi.Name,
		Type:      typ,
		StartDate: start,
		EndDate:   end,
		IsMovable: domain.FirstSet(true, phi.Movable, defaultMovable),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := ph.Validate(); err != nil {
		return domain.ProjectPhase{}, err
	}
	ph.Normalize()
	return ph, nil
}
