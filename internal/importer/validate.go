package importer

import (
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/vlanet/vridge/internal/domain"
)

// ValidateScheduleSchema checks the schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateScheduleSchema(schema *ScheduleSchema) []error {
	var errs []error

	if schema.Defaults != nil && schema.Defaults.Status != "" {
		if _, err := domain.ParseProjectStatus(schema.Defaults.Status); err != nil {
			errs = append(errs, fmt.Errorf("defaults.status: %w", err))
		}
	}
	if len(schema.Projects) == 0 {
		errs = append(errs, fmt.Errorf("projects: at least one project is required"))
	}

	shortIDs := make(map[string]bool)
	for i := range schema.Projects {
		errs = append(errs, validateProject(i, &schema.Projects[i], shortIDs)...)
	}
	return errs
}

func validateProject(i int, p *ProjectImport, shortIDs map[string]bool) []error {
	var errs []error
	prefix := fmt.Sprintf("projects[%d]", i)

	probe := domain.Project{ShortID: p.ShortID}
	if err := probe.ValidateShortID(); err != nil {
		errs = append(errs, fmt.Errorf("%s.short_id: %w", prefix, err))
	} else if shortIDs[p.ShortID] {
		errs = append(errs, fmt.Errorf("%s.short_id: duplicate short_id %q", prefix, p.ShortID))
	}
	shortIDs[p.ShortID] = true

	if p.Name == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", prefix))
	}
	if p.Status != "" {
		if _, err := domain.ParseProjectStatus(p.Status); err != nil {
			errs = append(errs, fmt.Errorf("%s.status: %w", prefix, err))
		}
	}
	if p.Color != "" {
		if _, err := colorful.Hex(p.Color); err != nil {
			errs = append(errs, fmt.Errorf("%s.color: invalid hex color %q", prefix, p.Color))
		}
	}
	for j := range p.Phases {
		errs = append(errs, validatePhase(fmt.Sprintf("%s.phases[%d]", prefix, j), &p.Phases[j])...)
	}
	return errs
}

func validatePhase(prefix string, ph *PhaseImport) []error {
	var errs []error

	if ph.Name == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", prefix))
	}
	if _, err := domain.ParsePhaseType(ph.Type); err != nil {
		errs = append(errs, fmt.Errorf("%s.type: %w", prefix, err))
	}

	var start time.Time
	if ph.Start == "" {
		errs = append(errs, fmt.Errorf("%s.start is required", prefix))
	} else {
		t, err := time.Parse(domain.DateLayout, ph.Start)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s.start: invalid date format %q (expected YYYY-MM-DD)", prefix, ph.Start))
		}
		start = t
	}

	switch {
	case ph.End != "" && ph.DurationDays != nil:
		errs = append(errs, fmt.Errorf("%s: set either end or duration_days, not both", prefix))
	case ph.End != "":
		end, err := time.Parse(domain.DateLayout, ph.End)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s.end: invalid date format %q (expected YYYY-MM-DD)", prefix, ph.End))
		} else if !start.IsZero() && end.Before(start) {
			errs = append(errs, fmt.Errorf("%s.end %q is before start %q", prefix, ph.End, ph.Start))
		}
	case ph.DurationDays != nil:
		if *ph.DurationDays < 1 {
			errs = append(errs, fmt.Errorf("%s.duration_days must be at least 1, got %d", prefix, *ph.DurationDays))
		}
	default:
		errs = append(errs, fmt.Errorf("%s: end or duration_days is required", prefix))
	}
	return errs
}
