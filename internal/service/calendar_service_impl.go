package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/mitchellh/hashstructure/v2"
	"github.com/vlanet/vridge/internal/conflict"
	"github.com/vlanet/vridge/internal/contract"
	"github.com/vlanet/vridge/internal/domain"
	"github.com/vlanet/vridge/internal/palette"
	"github.com/vlanet/vridge/internal/repository"
)

const maxCachedResults = 64

// CalendarSettings configures conflict detection for calendar builds.
type CalendarSettings struct {
	SensitiveTypes domain.PhaseTypeSet
	Policy         string // "default" or "escalating"
	EscalateAbove  int
	Workers        int
	Logger         *slog.Logger
}

type calendarService struct {
	projects repository.ProjectRepo
	phases   repository.PhaseRepo
	settings CalendarSettings
	policy   conflict.SeverityPolicy
	palettes *palette.Cache
	observer UseCaseObserver

	mu      sync.Mutex
	results map[uint64]conflict.Result
}

func NewCalendarService(projects repository.ProjectRepo, phases repository.PhaseRepo, settings CalendarSettings, observers ...UseCaseObserver) CalendarService {
	policy, _ := conflict.PolicyByName(settings.Policy)
	if len(settings.SensitiveTypes) == 0 {
		settings.SensitiveTypes = domain.DefaultConflictTypes()
	}
	return &calendarService{
		projects: projects,
		phases:   phases,
		settings: settings,
		policy:   policy,
		palettes: palette.NewCache(),
		observer: useCaseObserverOrNoop(observers),
		results:  make(map[uint64]conflict.Result),
	}
}

func (s *calendarService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = make(map[uint64]conflict.Result)
}

func (s *calendarService) Build(ctx context.Context, req contract.CalendarRequest) (resp *contract.CalendarResponse, err error) {
	uc := startUseCase(s.observer, "build-calendar")
	defer func() { uc.end(ctx, err) }()

	if req.From.IsZero() || req.To.IsZero() {
		return nil, &contract.CalendarError{Code: contract.CalendarErrInvalidWindow, Message: "from and to are required"}
	}
	from, to := domain.Day(req.From), domain.Day(req.To)
	if to.Before(from) {
		return nil, &contract.CalendarError{
			Code:    contract.CalendarErrInvalidWindow,
			Message: fmt.Sprintf("window ends %s before it starts %s", to.Format(domain.DateLayout), from.Format(domain.DateLayout)),
		}
	}
	uc.Fields["from"] = from.Format(domain.DateLayout)
	uc.Fields["to"] = to.Format(domain.DateLayout)

	projects, err := s.scopedProjects(ctx, req)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.Project, len(projects))
	for _, p := range projects {
		p.Phases = nil
		byID[p.ID] = p
	}

	phases, err := s.phases.ListInRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("loading phases: %w", err)
	}
	var flat []domain.ProjectPhase
	for _, ph := range phases {
		p, ok := byID[ph.ProjectID]
		if !ok {
			continue
		}
		p.Phases = append(p.Phases, *ph)
		flat = append(flat, *ph)
	}
	for _, p := range projects {
		p.SortPhases()
	}

	sensitive := s.settings.SensitiveTypes
	if len(req.SensitiveTypes) > 0 {
		sensitive = req.SensitiveTypes
	}

	res, hit, err := s.detect(ctx, flat, sensitive, req.MinSeverity)
	if err != nil {
		return nil, err
	}
	uc.Fields["phases"] = len(flat)
	uc.Fields["conflicts"] = len(res.Conflicts)
	uc.Fields["cache_hit"] = hit

	resp = &contract.CalendarResponse{
		From:      from,
		To:        to,
		Conflicts: res,
		CacheHit:  hit,
	}
	for _, sk := range res.Skipped {
		resp.Warnings = append(resp.Warnings, fmt.Sprintf("phase %s skipped: %s", sk.PhaseID, sk.Reason))
	}

	events := conflict.Annotate(domain.BuildCalendarEvents(projects), res)
	legend := make(map[string]contract.LegendEntry)
	for i := range events {
		p := events[i].Project
		entry, ok := legend[p.ID]
		if !ok {
			entry = s.legendEntry(p, resp)
			legend[p.ID] = entry
		}
		events[i].Color = entry.Palette.Primary
	}
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i].Phase, events[j].Phase
		if !a.StartDate.Equal(b.StartDate) {
			return a.StartDate.Before(b.StartDate)
		}
		return a.ID < b.ID
	})
	resp.Events = events
	for _, entry := range legend {
		resp.Legend = append(resp.Legend, entry)
	}
	sort.Slice(resp.Legend, func(i, j int) bool {
		if resp.Legend[i].ShortID != resp.Legend[j].ShortID {
			return resp.Legend[i].ShortID < resp.Legend[j].ShortID
		}
		return resp.Legend[i].ProjectID < resp.Legend[j].ProjectID
	})
	return resp, nil
}

func (s *calendarService) scopedProjects(ctx context.Context, req contract.CalendarRequest) ([]*domain.Project, error) {
	all, err := s.projects.List(ctx, req.IncludeClosed)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	if len(req.ProjectScope) == 0 {
		return all, nil
	}
	byID := make(map[string]*domain.Project, len(all))
	for _, p := range all {
		byID[p.ID] = p
	}
	scoped := make([]*domain.Project, 0, len(req.ProjectScope))
	seen := make(map[string]bool)
	for _, id := range req.ProjectScope {
		p, ok := byID[id]
		if !ok {
			return nil, &contract.CalendarError{
				Code:    contract.CalendarErrInvalidScope,
				Message: fmt.Sprintf("project %s is not in the calendar", id),
			}
		}
		if !seen[id] {
			seen[id] = true
			scoped = append(scoped, p)
		}
	}
	return scoped, nil
}

// legendEntry derives a project's palette. A valid stored color replaces
// the primary tint and the text color is recomputed against it.
func (s *calendarService) legendEntry(p *domain.Project, resp *contract.CalendarResponse) contract.LegendEntry {
	pal := s.palettes.GetOrDefault(p.ID)
	entry := contract.LegendEntry{
		ProjectID: p.ID,
		ShortID:   p.ShortID,
		Name:      p.Name,
		Status:    p.Status,
	}
	if p.Color != "" {
		override, err := palette.WithPrimary(pal, p.Color)
		if err != nil {
			resp.Warnings = append(resp.Warnings, fmt.Sprintf("project %s has invalid color %q, using derived palette", p.DisplayID(), p.Color))
		} else {
			pal = override
			entry.Override = true
		}
	}
	entry.Palette = pal
	return entry
}

type phaseKey struct {
	ID        string
	ProjectID string
	Name      string
	Type      string
	Start     string
	End       string
}

type detectionKey struct {
	Phases      []phaseKey
	Sensitive   []string
	MinSeverity string
}

func cacheKey(phases []domain.ProjectPhase, sensitive domain.PhaseTypeSet, minSeverity domain.Severity) (uint64, error) {
	key := detectionKey{MinSeverity: string(minSeverity)}
	for _, ph := range phases {
		key.Phases = append(key.Phases, phaseKey{
			ID:        ph.ID,
			ProjectID: ph.ProjectID,
			Name:      ph.Name,
			Type:      string(ph.Type),
			Start:     ph.StartDate.Format(domain.DateLayout),
			End:       ph.EndDate.Format(domain.DateLayout),
		})
	}
	sort.Slice(key.Phases, func(i, j int) bool { return key.Phases[i].ID < key.Phases[j].ID })
	for _, t := range sensitive.Sorted() {
		key.Sensitive = append(key.Sensitive, string(t))
	}
	return hashstructure.Hash(key, hashstructure.FormatV2, nil)
}

func (s *calendarService) detect(ctx context.Context, phases []domain.ProjectPhase, sensitive domain.PhaseTypeSet, minSeverity domain.Severity) (conflict.Result, bool, error) {
	key, err := cacheKey(phases, sensitive, minSeverity)
	if err != nil {
		return conflict.Result{}, false, fmt.Errorf("hashing calendar: %w", err)
	}
	s.mu.Lock()
	cached, ok := s.results[key]
	s.mu.Unlock()
	if ok {
		return cached, true, nil
	}

	opts := []conflict.Option{
		conflict.WithSensitiveTypes(sensitive),
		conflict.WithSeverityPolicy(s.policy),
		conflict.WithEscalationThreshold(s.settings.EscalateAbove),
	}
	if s.settings.Logger != nil {
		opts = append(opts, conflict.WithLogger(s.settings.Logger))
	}
	var res conflict.Result
	if s.settings.Workers > 1 {
		res, err = conflict.DetectConcurrent(ctx, phases, s.settings.Workers, opts...)
		if err != nil {
			return conflict.Result{}, false, err
		}
	} else {
		res = conflict.Detect(phases, opts...)
	}
	if minSeverity != "" {
		res = res.FilterMinSeverity(minSeverity)
	}

	s.mu.Lock()
	if len(s.results) >= maxCachedResults {
		s.results = make(map[uint64]conflict.Result)
	}
	s.results[key] = res
	s.mu.Unlock()
	return res, false, nil
}
