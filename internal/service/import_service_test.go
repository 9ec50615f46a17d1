package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vlanet/vridge/internal/domain"
	"github.com/vlanet/vridge/internal/importer"
	"github.com/vlanet/vridge/internal/testutil"
)

const scheduleYAML = `
projects:
  - short_id: FILM01
    name: Brand Film
    organization: VLANET
    phases:
      - name: Prep
        type: pre_production
        start: 2025-01-10
        duration_days: 10
      - name: Shoot
        type: filming
        start: 2025-01-25
        end: 2025-01-27
        movable: false
  - short_id: AD2025
    name: Spring Ad
    status: on-hold
    phases:
      - name: Shoot
        type: production
        start: 2025-01-27
        end: 2025-01-29
`

func writeSchedule(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func ptrInt(i int) *int { return &i }

func TestImportSchedule_YAMLFile(t *testing.T) {
	database, projects, phases := setupRepos(t)
	obs := &recordingObserver{}
	svc := NewImportService(testutil.NewTestUoW(database), obs)
	ctx := context.Background()

	result, err := svc.ImportSchedule(ctx, writeSchedule(t, "schedule.yaml", scheduleYAML))
	require.NoError(t, err)
	require.Len(t, result.Projects, 2)
	assert.Equal(t, 3, result.PhaseCount)

	film, err := projects.GetByShortID(ctx, "FILM01")
	require.NoError(t, err)
	assert.Equal(t, "VLANET", film.Organization)
	filmPhases, err := phases.ListByProject(ctx, film.ID)
	require.NoError(t, err)
	require.Len(t, filmPhases, 2)
	assert.Equal(t, "Prep", filmPhases[0].Name)
	assert.Equal(t, 10, filmPhases[0].Duration)
	assert.False(t, filmPhases[1].IsMovable)

	ad, err := projects.GetByShortID(ctx, "AD2025")
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectOnHold, ad.Status)

	ev := obs.last(t)
	assert.Equal(t, "import-schedule", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, 3, ev.Fields["phases"])
}

func TestImportSchedule_JSONFile(t *testing.T) {
	database, projects, _ := setupRepos(t)
	svc := NewImportService(testutil.NewTestUoW(database))

	path := writeSchedule(t, "schedule.json", `{"projects": [{"short_id": "DOC01", "name": "Documentary", "phases": []}]}`)
	result, err := svc.ImportSchedule(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 0, result.PhaseCount)

	_, err = projects.GetByShortID(context.Background(), "DOC01")
	require.NoError(t, err)
}

func TestImportSchedule_MissingFile(t *testing.T) {
	database, _, _ := setupRepos(t)
	svc := NewImportService(testutil.NewTestUoW(database))

	_, err := svc.ImportSchedule(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading schedule file")
}

func TestImportSchedule_ValidationReportsAllErrors(t *testing.T) {
	database, projects, _ := setupRepos(t)
	obs := &recordingObserver{}
	svc := NewImportService(testutil.NewTestUoW(database), obs)

	schema := &importer.ScheduleSchema{
		Projects: []importer.ProjectImport{
			{ShortID: "bad", Name: "", Phases: []importer.PhaseImport{
				{Name: "Shoot", Type: "filming", Start: "2025-01-05", DurationDays: ptrInt(0)},
			}},
		},
	}
	_, err := svc.ImportScheduleFromSchema(context.Background(), schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed (3 errors)")
	var verr *ScheduleValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Problems, 3)
	assert.False(t, obs.last(t).Success)

	all, err := projects.List(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestImportSchedule_DuplicateOfExistingProjectRollsBack(t *testing.T) {
	database, projects, _ := setupRepos(t)
	ctx := context.Background()
	require.NoError(t, projects.Create(ctx, testutil.NewTestProject("Existing", testutil.WithShortID("AD2025"))))

	svc := NewImportService(testutil.NewTestUoW(database))
	_, err := svc.ImportSchedule(ctx, writeSchedule(t, "schedule.yaml", scheduleYAML))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating project AD2025")

	_, err = projects.GetByShortID(ctx, "FILM01")
	assert.Error(t, err, "FILM01 must not survive a failed import")
}

func TestImportSchedule_RollbackOnPhaseCreateFailure(t *testing.T) {
	database, projects, phases := setupRepos(t)
	ctx := context.Background()

	// Phase inserts: #1 Prep, #2 Shoot (FILM01), #3 Shoot (AD2025)
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 3,
		Match:  "INSERT INTO project_phases",
		Err:    fmt.Errorf("injected phase create failure"),
	}
	svc := NewImportService(failUoW)

	schema, err := importer.ParseScheduleSchema([]byte(scheduleYAML))
	require.NoError(t, err)
	_, err = svc.ImportScheduleFromSchema(ctx, schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected phase create failure")

	all, err := projects.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, all, "transaction should roll back every project")

	inRange, err := phases.ListInRange(ctx, testutil.Date(2025, 1, 1), testutil.Date(2025, 12, 31))
	require.NoError(t, err)
	assert.Empty(t, inRange)
}
