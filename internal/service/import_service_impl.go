package service

import (
	"context"
	"fmt"

	"github.com/vlanet/vridge/internal/db"
	"github.com/vlanet/vridge/internal/importer"
	"github.com/vlanet/vridge/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewImportService persists imported schedules through uow so that a file
// is stored completely or not at all.
func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportSchedule(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadScheduleSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading schedule file: %w", err)
	}
	return s.importSchema(ctx, schema)
}

func (s *importService) ImportScheduleFromSchema(ctx context.Context, schema *importer.ScheduleSchema) (*ImportResult, error) {
	return s.importSchema(ctx, schema)
}

func (s *importService) importSchema(ctx context.Context, schema *importer.ScheduleSchema) (result *ImportResult, err error) {
	uc := startUseCase(s.observer, "import-schedule")
	uc.Fields["projects"] = len(schema.Projects)
	defer func() { uc.end(ctx, err) }()

	if errs := importer.ValidateScheduleSchema(schema); len(errs) > 0 {
		return nil, &ScheduleValidationError{Problems: errs}
	}

	projects, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting schedule: %w", err)
	}

	result = &ImportResult{Projects: projects}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		projectRepo := repository.NewSQLiteProjectRepo(tx)
		phaseRepo := repository.NewSQLitePhaseRepo(tx)
		for _, p := range projects {
			if err := projectRepo.Create(ctx, p); err != nil {
				return fmt.Errorf("creating project %s: %w", p.ShortID, err)
			}
			for i := range p.Phases {
				if err := phaseRepo.Create(ctx, &p.Phases[i]); err != nil {
					return fmt.Errorf("creating phase %q of %s: %w", p.Phases[i].Name, p.ShortID, err)
				}
				result.PhaseCount++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.Fields["phases"] = result.PhaseCount
	return result, nil
}
