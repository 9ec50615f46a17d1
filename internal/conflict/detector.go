// Package conflict finds overlapping conflict-sensitive phases in a schedule.
//
// Detection is a pure function of its input: no state is kept between calls
// and the result does not depend on the order phases are supplied in.
package conflict

import (
	"fmt"
	"sort"
	"time"

	"github.com/vlanet/vridge/internal/domain"
)

// Conflict is one overlapping pair of phases.
type Conflict struct {
	PhaseIDs     [2]string // ascending
	ProjectIDs   [2]string // aligned with PhaseIDs
	Severity     domain.Severity
	Description  string
	OverlapStart time.Time
	OverlapEnd   time.Time
}

// OverlapDays is the inclusive number of shared calendar days.
func (c Conflict) OverlapDays() int {
	return domain.InclusiveDays(c.OverlapStart, c.OverlapEnd)
}

// Involves reports whether phaseID is one side of the conflict.
func (c Conflict) Involves(phaseID string) bool {
	return c.PhaseIDs[0] == phaseID || c.PhaseIDs[1] == phaseID
}

// Other returns the counterpart of phaseID.
func (c Conflict) Other(phaseID string) (id, projectID string) {
	if c.PhaseIDs[0] == phaseID {
		return c.PhaseIDs[1], c.ProjectIDs[1]
	}
	return c.PhaseIDs[0], c.ProjectIDs[0]
}

// EventRef identifies a calendar event touched by at least one conflict.
type EventRef struct {
	ID        string
	ProjectID string
}

// Skipped records a phase that was excluded because it is malformed.
type Skipped struct {
	PhaseID string
	Reason  string
}

type Result struct {
	Conflicts      []Conflict
	AffectedEvents []EventRef
	Skipped        []Skipped
}

// IsAffected reports whether phaseID appears in any conflict.
func (r Result) IsAffected(phaseID string) bool {
	for _, e := range r.AffectedEvents {
		if e.ID == phaseID {
			return true
		}
	}
	return false
}

// ConflictsFor returns every conflict phaseID takes part in.
func (r Result) ConflictsFor(phaseID string) []Conflict {
	var out []Conflict
	for _, c := range r.Conflicts {
		if c.Involves(phaseID) {
			out = append(out, c)
		}
	}
	return out
}

// MaxSeverity returns the most serious severity in the result.
func (r Result) MaxSeverity() domain.Severity {
	worst := domain.SeverityNone
	for _, c := range r.Conflicts {
		if c.Severity.Rank() > worst.Rank() {
			worst = c.Severity
		}
	}
	return worst
}

// FilterMinSeverity keeps conflicts at or above floor and recomputes
// AffectedEvents from what remains.
func (r Result) FilterMinSeverity(floor domain.Severity) Result {
	out := Result{Conflicts: []Conflict{}, Skipped: r.Skipped}
	for _, c := range r.Conflicts {
		if c.Severity.Rank() >= floor.Rank() {
			out.Conflicts = append(out.Conflicts, c)
		}
	}
	out.AffectedEvents = affectedEvents(out.Conflicts)
	return out
}

// Overlaps reports whether two phases share at least one calendar day.
// Dates are inclusive, so a phase ending on the day another starts overlaps it.
func Overlaps(a, b domain.ProjectPhase) bool {
	return rangesOverlap(domain.Day(a.StartDate), domain.Day(a.EndDate), domain.Day(b.StartDate), domain.Day(b.EndDate))
}

func rangesOverlap(s1, e1, s2, e2 time.Time) bool {
	return !s1.After(e2) && !s2.After(e1)
}

// Detect reports every pair of conflict-sensitive phases whose date ranges
// overlap. Malformed phases are skipped and listed in Result.Skipped.
func Detect(phases []domain.ProjectPhase, opts ...Option) Result {
	o := buildOptions(opts)
	candidates, skipped := prepare(phases, o)

	var pairs []pair
	for i := range candidates {
		pairs = sweepFrom(candidates, i, pairs)
	}
	return finalize(candidates, pairs, skipped, o)
}

type pair struct{ i, j int }

// prepare validates, filters and sorts the phases that can take part in a
// conflict. Phases are returned normalized to calendar days.
func prepare(phases []domain.ProjectPhase, o options) ([]domain.ProjectPhase, []Skipped) {
	var (
		valid   []domain.ProjectPhase
		skipped []Skipped
	)
	for _, ph := range phases {
		reason := ""
		if ph.ID == "" {
			reason = "missing phase id"
		} else if err := ph.Validate(); err != nil {
			reason = err.Error()
		}
		if reason != "" {
			skipped = append(skipped, Skipped{PhaseID: ph.ID, Reason: reason})
			continue
		}
		ph.Normalize()
		valid = append(valid, ph)
	}

	sort.Slice(valid, func(i, j int) bool { return phaseLess(valid[i], valid[j]) })

	var candidates []domain.ProjectPhase
	for i, ph := range valid {
		if i > 0 && valid[i-1].ID == ph.ID {
			skipped = append(skipped, Skipped{PhaseID: ph.ID, Reason: "duplicate phase id"})
			continue
		}
		if o.sensitive.Contains(ph.Type) {
			candidates = append(candidates, ph)
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if !a.StartDate.Equal(b.StartDate) {
			return a.StartDate.Before(b.StartDate)
		}
		return a.ID < b.ID
	})

	sort.Slice(skipped, func(i, j int) bool {
		if skipped[i].PhaseID != skipped[j].PhaseID {
			return skipped[i].PhaseID < skipped[j].PhaseID
		}
		return skipped[i].Reason < skipped[j].Reason
	})
	if o.logger != nil {
		for _, s := range skipped {
			o.logger.Warn("skipping phase", "phase_id", s.PhaseID, "reason", s.Reason)
		}
	}
	return candidates, skipped
}

// phaseLess is a total order over phases so duplicate-id resolution does not
// depend on input order.
func phaseLess(a, b domain.ProjectPhase) bool {
	if a.ID != b.ID {
		return a.ID < b.ID
	}
	if !a.StartDate.Equal(b.StartDate) {
		return a.StartDate.Before(b.StartDate)
	}
	if !a.EndDate.Equal(b.EndDate) {
		return a.EndDate.Before(b.EndDate)
	}
	if a.ProjectID != b.ProjectID {
		return a.ProjectID < b.ProjectID
	}
	return a.Type < b.Type
}

// sweepFrom appends every overlap between candidates[i] and a later-starting
// candidate. candidates must be sorted by start date.
func sweepFrom(candidates []domain.ProjectPhase, i int, pairs []pair) []pair {
	a := candidates[i]
	for j := i + 1; j < len(candidates); j++ {
		if candidates[j].StartDate.After(a.EndDate) {
			break
		}
		pairs = append(pairs, pair{i: i, j: j})
	}
	return pairs
}

func finalize(candidates []domain.ProjectPhase, pairs []pair, skipped []Skipped, o options) Result {
	conflicts := make([]Conflict, 0, len(pairs))
	for _, p := range pairs {
		conflicts = append(conflicts, newConflict(candidates[p.i], candidates[p.j], o.policy))
	}
	sort.Slice(conflicts, func(i, j int) bool {
		a, b := conflicts[i].PhaseIDs, conflicts[j].PhaseIDs
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		return a[1] < b[1]
	})
	if o.escalateAbove > 0 {
		escalate(conflicts, o.escalateAbove)
	}
	return Result{
		Conflicts:      conflicts,
		AffectedEvents: affectedEvents(conflicts),
		Skipped:        skipped,
	}
}

func newConflict(a, b domain.ProjectPhase, policy SeverityPolicy) Conflict {
	if b.ID < a.ID {
		a, b = b, a
	}
	start, end := a.StartDate, a.EndDate
	if b.StartDate.After(start) {
		start = b.StartDate
	}
	if b.EndDate.Before(end) {
		end = b.EndDate
	}
	c := Conflict{
		PhaseIDs:     [2]string{a.ID, b.ID},
		ProjectIDs:   [2]string{a.ProjectID, b.ProjectID},
		Severity:     policy(a, b),
		OverlapStart: start,
		OverlapEnd:   end,
	}
	c.Description = describe(a, b, c)
	return c
}

func describe(a, b domain.ProjectPhase, c Conflict) string {
	days := c.OverlapDays()
	unit := "days"
	if days == 1 {
		unit = "day"
	}
	return fmt.Sprintf("%s %q overlaps %s %q from %s to %s (%d %s)",
		a.Type, displayName(a), b.Type, displayName(b),
		c.OverlapStart.Format(domain.DateLayout), c.OverlapEnd.Format(domain.DateLayout),
		days, unit)
}

func displayName(p domain.ProjectPhase) string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

func escalate(conflicts []Conflict, threshold int) {
	counts := make(map[string]int)
	for _, c := range conflicts {
		counts[c.PhaseIDs[0]]++
		counts[c.PhaseIDs[1]]++
	}
	for i, c := range conflicts {
		if counts[c.PhaseIDs[0]] > threshold || counts[c.PhaseIDs[1]] > threshold {
			conflicts[i].Severity = domain.SeverityCritical
		}
	}
}

func affectedEvents(conflicts []Conflict) []EventRef {
	seen := make(map[string]bool)
	var refs []EventRef
	for _, c := range conflicts {
		for k := 0; k < 2; k++ {
			if seen[c.PhaseIDs[k]] {
				continue
			}
			seen[c.PhaseIDs[k]] = true
			refs = append(refs, EventRef{ID: c.PhaseIDs[k], ProjectID: c.ProjectIDs[k]})
		}
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })
	if refs == nil {
		refs = []EventRef{}
	}
	return refs
}
