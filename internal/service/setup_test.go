package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vlanet/vridge/internal/domain"
	"github.com/vlanet/vridge/internal/repository"
	"github.com/vlanet/vridge/internal/testutil"
)

func setupRepos(t *testing.T) (*sql.DB, repository.ProjectRepo, repository.PhaseRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	return database, repository.NewSQLiteProjectRepo(database), repository.NewSQLitePhaseRepo(database)
}

func seedProject(t *testing.T, projects repository.ProjectRepo, p *domain.Project, phases repository.PhaseRepo, phs ...*domain.ProjectPhase) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, projects.Create(ctx, p))
	for _, ph := range phs {
		ph.ProjectID = p.ID
		require.NoError(t, phases.Create(ctx, ph))
	}
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, ev UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, ev)
}

func (o *recordingObserver) last(t *testing.T) UseCaseEvent {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	require.NotEmpty(t, o.events)
	return o.events[len(o.events)-1]
}
