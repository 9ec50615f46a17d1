package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vlanet/vridge/internal/domain"
	"github.com/vlanet/vridge/internal/palette"
	"github.com/vlanet/vridge/internal/repository"
	"github.com/vlanet/vridge/internal/service"
	"github.com/vlanet/vridge/internal/testutil"
)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	db := testutil.NewTestDB(t)

	projRepo := repository.NewSQLiteProjectRepo(db)
	phaseRepo := repository.NewSQLitePhaseRepo(db)

	return &App{
		Projects: service.NewProjectService(projRepo),
		Phases:   service.NewPhaseService(phaseRepo, projRepo),
		Calendar: service.NewCalendarService(projRepo, phaseRepo, service.CalendarSettings{}),
		Import:   service.NewImportService(testutil.NewTestUoW(db)),
		Now:      func() time.Time { return testutil.Date(2025, 1, 20) },
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// seedOverlap creates FILM01 and AD2025 whose shoots share 2025-01-27.
func seedOverlap(t *testing.T, app *App) (film, ad *domain.Project) {
	t.Helper()
	ctx := context.Background()

	film = testutil.NewTestProject("Brand Film", testutil.WithShortID("FILM01"))
	ad = testutil.NewTestProject("Spring Ad", testutil.WithShortID("AD2025"))
	require.NoError(t, app.Projects.Create(ctx, film))
	require.NoError(t, app.Projects.Create(ctx, ad))

	require.NoError(t, app.Phases.Create(ctx, testutil.NewTestPhase(film.ID, "Shoot")))
	require.NoError(t, app.Phases.Create(ctx, testutil.NewTestPhase(ad.ID, "Studio",
		testutil.WithPhaseType(domain.PhaseProduction),
		testutil.WithDates(testutil.Date(2025, 1, 27), testutil.Date(2025, 1, 29)))))
	return film, ad
}

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, output, "vridge")
	assert.Contains(t, output, "calendar")
}

// --- project ---

func TestProjectAdd_AndList(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "project", "add", "--id", "film01", "--name", "Brand Film", "--org", "VLANET")
	require.NoError(t, err)
	assert.Contains(t, out, "Created project Brand Film [FILM01]")

	out, err = executeCmd(t, app, "project", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "FILM01")
	assert.Contains(t, out, "VLANET")
}

func TestProjectAdd_RequiresFields(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "project", "add", "--name", "No ID")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--id and --name are required")
}

func TestProjectAdd_InteractiveNeedsTerminal(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return false }

	_, err := executeCmd(t, app, "project", "add", "-i")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a terminal")
}

func TestProjectAdd_RejectsBadColor(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "project", "add", "--id", "FILM01", "--name", "Film", "--color", "teal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--color")
}

func TestProjectList_Empty(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "project", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No projects found.")
}

func TestProjectShow_AnnotatesConflicts(t *testing.T) {
	app := testApp(t)
	seedOverlap(t, app)

	out, err := executeCmd(t, app, "project", "show", "film01")
	require.NoError(t, err)
	assert.Contains(t, out, "Brand Film")
	assert.Contains(t, out, "Shoot")
	assert.Contains(t, out, "WARNING")
}

func TestProjectShow_NotFound(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "project", "show", "NOPE01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project not found")
}

func TestProjectUpdate_Color(t *testing.T) {
	app := testApp(t)
	film, _ := seedOverlap(t, app)

	_, err := executeCmd(t, app, "project", "update", "FILM01", "--color", "#112233")
	require.NoError(t, err)
	got, err := app.Projects.GetByID(context.Background(), film.ID)
	require.NoError(t, err)
	assert.Equal(t, "#112233", got.Color)

	_, err = executeCmd(t, app, "project", "update", "FILM01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")
}

func TestProjectStatusAndRemove(t *testing.T) {
	app := testApp(t)
	film, _ := seedOverlap(t, app)

	_, err := executeCmd(t, app, "project", "remove", "FILM01")
	require.Error(t, err)

	out, err := executeCmd(t, app, "project", "status", "FILM01", "completed")
	require.NoError(t, err)
	assert.Contains(t, out, "now completed")

	_, err = executeCmd(t, app, "project", "status", "FILM01", "paused")
	assert.Error(t, err)

	_, err = executeCmd(t, app, "project", "remove", "FILM01")
	require.NoError(t, err)
	_, err = app.Projects.GetByID(context.Background(), film.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// --- phase ---

func TestPhaseAdd_WithDays(t *testing.T) {
	app := testApp(t)
	film, _ := seedOverlap(t, app)

	out, err := executeCmd(t, app, "phase", "add", "--project", "FILM01", "--name", "Edit",
		"--type", "editing", "--start", "2025-02-01", "--days", "5")
	require.NoError(t, err)
	assert.Contains(t, out, `Scheduled editing "Edit" Feb 1 → Feb 5, 2025 (5 days)`)

	phases, err := app.Phases.ListByProject(context.Background(), film.ID)
	require.NoError(t, err)
	assert.Len(t, phases, 2)
}

func TestPhaseAdd_Validation(t *testing.T) {
	app := testApp(t)
	seedOverlap(t, app)

	_, err := executeCmd(t, app, "phase", "add", "--project", "FILM01", "--name", "X", "--type", "catering", "--start", "2025-02-01")
	assert.Error(t, err)

	_, err = executeCmd(t, app, "phase", "add", "--project", "FILM01", "--name", "X", "--type", "editing", "--start", "02/01/2025")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")

	_, err = executeCmd(t, app, "phase", "add", "--project", "FILM01", "--name", "X", "--type", "editing",
		"--start", "2025-02-05", "--end", "2025-02-01")
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)

	_, err = executeCmd(t, app, "phase", "add", "--project", "FILM01", "--name", "X", "--type", "editing",
		"--start", "2025-02-01", "--end", "2025-02-03", "--days", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not both")
}

func TestPhaseList(t *testing.T) {
	app := testApp(t)
	seedOverlap(t, app)

	out, err := executeCmd(t, app, "phase", "list", "--project", "AD2025")
	require.NoError(t, err)
	assert.Contains(t, out, "Studio")
	assert.Contains(t, out, "production")
	assert.Contains(t, out, "WARNING")
}

func TestPhaseMoveAndResize(t *testing.T) {
	app := testApp(t)
	film, _ := seedOverlap(t, app)
	ctx := context.Background()

	phases, err := app.Phases.ListByProject(ctx, film.ID)
	require.NoError(t, err)
	id := phases[0].ID

	out, err := executeCmd(t, app, "phase", "move", id[:8], "--by=-3")
	require.NoError(t, err)
	assert.Contains(t, out, "Jan 22 → Jan 24, 2025")

	out, err = executeCmd(t, app, "phase", "move", id, "--to", "2025-03-01")
	require.NoError(t, err)
	assert.Contains(t, out, "Mar 1 → Mar 3, 2025")

	out, err = executeCmd(t, app, "phase", "resize", id, "--end", "2025-03-10")
	require.NoError(t, err)
	assert.Contains(t, out, "10 days")

	_, err = executeCmd(t, app, "phase", "move", id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--to or --by is required")
}

func TestPhaseMove_FixedPhase(t *testing.T) {
	app := testApp(t)
	film, _ := seedOverlap(t, app)
	ctx := context.Background()

	fixed := testutil.NewTestPhase(film.ID, "Premiere", testutil.WithFixed(), testutil.WithPhaseType(domain.PhaseReview))
	require.NoError(t, app.Phases.Create(ctx, fixed))

	_, err := executeCmd(t, app, "phase", "move", fixed.ID, "--by", "1")
	assert.ErrorIs(t, err, domain.ErrPhaseNotMovable)
}

func TestPhaseRemove(t *testing.T) {
	app := testApp(t)
	film, _ := seedOverlap(t, app)
	ctx := context.Background()

	phases, err := app.Phases.ListByProject(ctx, film.ID)
	require.NoError(t, err)

	_, err = executeCmd(t, app, "phase", "remove", phases[0].ID)
	require.NoError(t, err)

	_, err = executeCmd(t, app, "phase", "remove", "zzzz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "phase not found")
}

// --- calendar / conflicts ---

func TestCalendarCmd_DefaultWindowFromToday(t *testing.T) {
	app := testApp(t)
	seedOverlap(t, app)

	out, err := executeCmd(t, app, "calendar")
	require.NoError(t, err)
	assert.Contains(t, out, "Jan 20 → Feb 16, 2025")
	assert.Contains(t, out, "1 conflict across 2 phases")
	assert.Contains(t, out, "Brand Film · Shoot")
	assert.Contains(t, out, "FILM01")
	assert.Contains(t, out, "AD2025")
}

func TestCalendarCmd_ProjectScopeAndTypes(t *testing.T) {
	app := testApp(t)
	seedOverlap(t, app)

	out, err := executeCmd(t, app, "calendar", "--project", "FILM01")
	require.NoError(t, err)
	assert.Contains(t, out, "No schedule conflicts")
	assert.NotContains(t, out, "Spring Ad")

	out, err = executeCmd(t, app, "calendar", "--types", "editing")
	require.NoError(t, err)
	assert.Contains(t, out, "No schedule conflicts")

	_, err = executeCmd(t, app, "calendar", "--types", "catering")
	assert.Error(t, err)
}

func TestCalendarCmd_InvalidWindow(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "calendar", "--from", "2025-02-01", "--to", "2025-01-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_WINDOW")
}

func TestConflictsCmd(t *testing.T) {
	app := testApp(t)
	seedOverlap(t, app)

	out, err := executeCmd(t, app, "conflicts", "--from", "2025-01-01", "--to", "2025-01-31")
	require.NoError(t, err)
	assert.Contains(t, out, "FILM01 · Shoot")
	assert.Contains(t, out, "AD2025 · Studio")
	assert.Contains(t, out, "Jan 27, 2025")

	out, err = executeCmd(t, app, "conflicts", "--from", "2025-01-01", "--severity", "critical")
	require.NoError(t, err)
	assert.Contains(t, out, "No schedule conflicts")

	_, err = executeCmd(t, app, "conflicts", "--from", "2025-01-01", "--fail-on", "warning")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "found 1 conflicts")
}

// --- palette / import ---

func TestPaletteCmd(t *testing.T) {
	app := testApp(t)
	film, _ := seedOverlap(t, app)

	out, err := executeCmd(t, app, "palette", "FILM01")
	require.NoError(t, err)
	want, err := palette.Generate(film.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "FILM01 Brand Film")
	assert.Contains(t, out, want.Primary)

	out, err = executeCmd(t, app, "palette", "--raw", "proj-1", "proj-2")
	require.NoError(t, err)
	assert.Contains(t, out, "#d2452d")
	assert.Contains(t, out, "hue 9°")
	assert.Contains(t, out, "hue 146°")

	_, err = executeCmd(t, app, "palette", "--raw", " ")
	assert.ErrorIs(t, err, palette.ErrEmptyProjectID)
}

func TestImportCmd(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "schedule.yaml")
	content := strings.Join([]string{
		"projects:",
		"  - short_id: DOC01",
		"    name: Documentary",
		"    phases:",
		"      - name: Shoot",
		"        type: filming",
		"        start: 2025-01-21",
		"        duration_days: 3",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	out, err := executeCmd(t, app, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported Documentary [DOC01] with 1 phases")
	assert.Contains(t, out, "1 projects, 1 phases imported")

	out, err = executeCmd(t, app, "calendar")
	require.NoError(t, err)
	assert.Contains(t, out, "Documentary · Shoot")
}
