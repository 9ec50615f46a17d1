package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vlanet/vridge/internal/contract"
	"github.com/vlanet/vridge/internal/domain"
	"github.com/vlanet/vridge/internal/palette"
	"github.com/vlanet/vridge/internal/testutil"
)

func januaryRequest() contract.CalendarRequest {
	return contract.CalendarRequest{From: testutil.Date(2025, 1, 1), To: testutil.Date(2025, 1, 31)}
}

func TestCalendarService_DetectsCrossProjectOverlap(t *testing.T) {
	_, projects, phases := setupRepos(t)
	obs := &recordingObserver{}
	svc := NewCalendarService(projects, phases, CalendarSettings{}, obs)
	ctx := context.Background()

	film := testutil.NewTestProject("Film", testutil.WithShortID("FILM01"))
	ad := testutil.NewTestProject("Ad", testutil.WithShortID("AD2025"))
	shoot := testutil.NewTestPhase("", "Shoot", testutil.WithPhaseID("ph-a"))
	prod := testutil.NewTestPhase("", "Studio", testutil.WithPhaseID("ph-b"), testutil.WithPhaseType(domain.PhaseProduction),
		testutil.WithDates(testutil.Date(2025, 1, 27), testutil.Date(2025, 1, 29)))
	edit := testutil.NewTestPhase("", "Edit", testutil.WithPhaseID("ph-c"), testutil.WithPhaseType(domain.PhaseEditing),
		testutil.WithDates(testutil.Date(2025, 1, 20), testutil.Date(2025, 1, 31)))
	seedProject(t, projects, film, phases, shoot, edit)
	seedProject(t, projects, ad, phases, prod)

	resp, err := svc.Build(ctx, januaryRequest())
	require.NoError(t, err)
	require.Len(t, resp.Events, 3)
	require.Len(t, resp.Conflicts.Conflicts, 1)

	c := resp.Conflicts.Conflicts[0]
	assert.Equal(t, [2]string{"ph-a", "ph-b"}, c.PhaseIDs)
	assert.Equal(t, domain.SeverityWarning, c.Severity)
	assert.Equal(t, testutil.Date(2025, 1, 27), c.OverlapStart)
	assert.Equal(t, 1, c.OverlapDays())

	conflicting := resp.ConflictingEvents()
	require.Len(t, conflicting, 2)
	for _, ev := range resp.Events {
		if ev.ID == "ph-c" {
			assert.False(t, ev.IsConflicting, "editing is not conflict-sensitive")
		}
	}

	ev := obs.last(t)
	assert.Equal(t, "build-calendar", ev.Name)
	assert.Equal(t, 3, ev.Fields["phases"])
	assert.Equal(t, 1, ev.Fields["conflicts"])
}

func TestCalendarService_EventsCarryProjectPalette(t *testing.T) {
	_, projects, phases := setupRepos(t)
	svc := NewCalendarService(projects, phases, CalendarSettings{})

	film := testutil.NewTestProject("Film")
	override := testutil.NewTestProject("Ad", testutil.WithColor("#112233"))
	bad := testutil.NewTestProject("Doc", testutil.WithColor("teal"))
	seedProject(t, projects, film, phases, testutil.NewTestPhase("", "Shoot"))
	seedProject(t, projects, override, phases, testutil.NewTestPhase("", "Shoot"))
	seedProject(t, projects, bad, phases, testutil.NewTestPhase("", "Shoot"))

	resp, err := svc.Build(context.Background(), januaryRequest())
	require.NoError(t, err)
	require.Len(t, resp.Legend, 3)

	legend := make(map[string]contract.LegendEntry)
	for _, e := range resp.Legend {
		legend[e.ProjectID] = e
	}
	want, err := palette.Generate(film.ID)
	require.NoError(t, err)
	assert.Equal(t, want, legend[film.ID].Palette)
	assert.False(t, legend[film.ID].Override)

	assert.True(t, legend[override.ID].Override)
	assert.Equal(t, "#112233", legend[override.ID].Palette.Primary)
	assert.Equal(t, palette.TextLight, legend[override.ID].Palette.Text)

	assert.False(t, legend[bad.ID].Override)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "invalid color")

	for _, ev := range resp.Events {
		assert.Equal(t, legend[ev.Project.ID].Palette.Primary, ev.Color)
	}
}

func TestCalendarService_SameProjectEscalates(t *testing.T) {
	_, projects, phases := setupRepos(t)
	svc := NewCalendarService(projects, phases, CalendarSettings{Policy: "escalating"})

	film := testutil.NewTestProject("Film")
	seedProject(t, projects, film, phases,
		testutil.NewTestPhase("", "Shoot A"),
		testutil.NewTestPhase("", "Shoot B", testutil.WithPhaseType(domain.PhaseProduction)))

	resp, err := svc.Build(context.Background(), januaryRequest())
	require.NoError(t, err)
	require.Len(t, resp.Conflicts.Conflicts, 1)
	assert.Equal(t, domain.SeverityCritical, resp.Conflicts.Conflicts[0].Severity)

	req := januaryRequest()
	req.MinSeverity = domain.SeverityCritical
	resp, err = svc.Build(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, resp.Conflicts.Conflicts, 1)
}

func TestCalendarService_MinSeverityFilters(t *testing.T) {
	_, projects, phases := setupRepos(t)
	svc := NewCalendarService(projects, phases, CalendarSettings{})

	a := testutil.NewTestProject("Film")
	b := testutil.NewTestProject("Ad")
	seedProject(t, projects, a, phases, testutil.NewTestPhase("", "Shoot"))
	seedProject(t, projects, b, phases, testutil.NewTestPhase("", "Shoot"))

	req := januaryRequest()
	req.MinSeverity = domain.SeverityCritical
	resp, err := svc.Build(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, resp.Conflicts.Conflicts)
	assert.Empty(t, resp.ConflictingEvents())
}

func TestCalendarService_RequestSensitiveTypesOverride(t *testing.T) {
	_, projects, phases := setupRepos(t)
	svc := NewCalendarService(projects, phases, CalendarSettings{})

	a := testutil.NewTestProject("Film")
	b := testutil.NewTestProject("Ad")
	seedProject(t, projects, a, phases, testutil.NewTestPhase("", "Cut", testutil.WithPhaseType(domain.PhaseEditing)))
	seedProject(t, projects, b, phases, testutil.NewTestPhase("", "Cut", testutil.WithPhaseType(domain.PhaseEditing)))

	resp, err := svc.Build(context.Background(), januaryRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.Conflicts.Conflicts)

	req := januaryRequest()
	req.SensitiveTypes = domain.NewPhaseTypeSet(domain.PhaseEditing)
	resp, err = svc.Build(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, resp.Conflicts.Conflicts, 1)
}

func TestCalendarService_CachesUntilDataChanges(t *testing.T) {
	_, projects, phases := setupRepos(t)
	svc := NewCalendarService(projects, phases, CalendarSettings{})
	phaseSvc := NewPhaseService(phases, projects)
	ctx := context.Background()

	a := testutil.NewTestProject("Film")
	b := testutil.NewTestProject("Ad")
	pa := testutil.NewTestPhase("", "Shoot")
	seedProject(t, projects, a, phases, pa)
	seedProject(t, projects, b, phases, testutil.NewTestPhase("", "Shoot"))

	first, err := svc.Build(ctx, januaryRequest())
	require.NoError(t, err)
	assert.False(t, first.CacheHit)
	require.Len(t, first.Conflicts.Conflicts, 1)

	second, err := svc.Build(ctx, januaryRequest())
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, first.Conflicts, second.Conflicts)

	_, err = phaseSvc.Shift(ctx, pa.ID, 3)
	require.NoError(t, err)
	third, err := svc.Build(ctx, januaryRequest())
	require.NoError(t, err)
	assert.False(t, third.CacheHit, "moved phase changes the cache key")
	assert.Empty(t, third.Conflicts.Conflicts)

	svc.Invalidate()
	fourth, err := svc.Build(ctx, januaryRequest())
	require.NoError(t, err)
	assert.False(t, fourth.CacheHit)
}

func TestCalendarService_ConcurrentMatchesSerial(t *testing.T) {
	_, projects, phases := setupRepos(t)
	serial := NewCalendarService(projects, phases, CalendarSettings{})
	parallel := NewCalendarService(projects, phases, CalendarSettings{Workers: 4})

	for i := 0; i < 6; i++ {
		p := testutil.NewTestProject("Film")
		start := testutil.Date(2025, 1, 1+i*3)
		seedProject(t, projects, p, phases,
			testutil.NewTestPhase("", "Shoot", testutil.WithDates(start, start.AddDate(0, 0, 4))))
	}

	a, err := serial.Build(context.Background(), januaryRequest())
	require.NoError(t, err)
	b, err := parallel.Build(context.Background(), januaryRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, a.Conflicts.Conflicts)
	assert.Equal(t, a.Conflicts, b.Conflicts)
}

func TestCalendarService_WindowAndScope(t *testing.T) {
	_, projects, phases := setupRepos(t)
	svc := NewCalendarService(projects, phases, CalendarSettings{})
	ctx := context.Background()

	a := testutil.NewTestProject("Film")
	b := testutil.NewTestProject("Ad")
	closed := testutil.NewTestProject("Old", testutil.WithProjectStatus(domain.ProjectCompleted))
	seedProject(t, projects, a, phases, testutil.NewTestPhase("", "Shoot"))
	seedProject(t, projects, b, phases, testutil.NewTestPhase("", "Shoot"),
		testutil.NewTestPhase("", "Later", testutil.WithDates(testutil.Date(2025, 3, 1), testutil.Date(2025, 3, 2))))
	seedProject(t, projects, closed, phases, testutil.NewTestPhase("", "Shoot"))

	resp, err := svc.Build(ctx, januaryRequest())
	require.NoError(t, err)
	assert.Len(t, resp.Events, 2, "closed projects and out-of-window phases are hidden")

	req := januaryRequest()
	req.IncludeClosed = true
	resp, err = svc.Build(ctx, req)
	require.NoError(t, err)
	assert.Len(t, resp.Events, 3)
	assert.Len(t, resp.Conflicts.Conflicts, 3)

	req = januaryRequest()
	req.ProjectScope = []string{b.ID}
	resp, err = svc.Build(ctx, req)
	require.NoError(t, err)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, b.ID, resp.Events[0].Project.ID)
	assert.Empty(t, resp.Conflicts.Conflicts)

	req.ProjectScope = []string{"missing"}
	_, err = svc.Build(ctx, req)
	var calErr *contract.CalendarError
	require.ErrorAs(t, err, &calErr)
	assert.Equal(t, contract.CalendarErrInvalidScope, calErr.Code)

	_, err = svc.Build(ctx, contract.CalendarRequest{From: testutil.Date(2025, 2, 1), To: testutil.Date(2025, 1, 1)})
	require.ErrorAs(t, err, &calErr)
	assert.Equal(t, contract.CalendarErrInvalidWindow, calErr.Code)

	_, err = svc.Build(ctx, contract.CalendarRequest{})
	require.ErrorAs(t, err, &calErr)
	assert.Equal(t, contract.CalendarErrInvalidWindow, calErr.Code)
}

func TestCalendarService_EmptyCalendar(t *testing.T) {
	_, projects, phases := setupRepos(t)
	svc := NewCalendarService(projects, phases, CalendarSettings{})

	resp, err := svc.Build(context.Background(), januaryRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.Events)
	assert.Empty(t, resp.Conflicts.Conflicts)
	assert.NotNil(t, resp.Conflicts.AffectedEvents)
	assert.Empty(t, resp.Legend)
}
