package domain

import (
	"fmt"
	"sort"
	"strings"
)

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

// ValidProjectStatuses is the canonical set of accepted project status strings.
var ValidProjectStatuses = map[ProjectStatus]bool{
	ProjectActive: true, ProjectOnHold: true,
	ProjectCompleted: true, ProjectCancelled: true,
}

// IsClosed reports whether the project no longer takes part in scheduling.
func (s ProjectStatus) IsClosed() bool {
	return s == ProjectCompleted || s == ProjectCancelled
}

// ParseProjectStatus accepts the canonical value and the hyphenated form ("on-hold").
func ParseProjectStatus(s string) (ProjectStatus, error) {
	st := ProjectStatus(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if !ValidProjectStatuses[st] {
		return "", fmt.Errorf("invalid project status %q (want active, on_hold, completed or cancelled)", s)
	}
	return st, nil
}

type PhaseType string

const (
	PhasePlanning      PhaseType = "planning"
	PhasePreProduction PhaseType = "pre_production"
	PhaseFilming       PhaseType = "filming"
	PhaseProduction    PhaseType = "production"
	PhaseEditing       PhaseType = "editing"
	PhaseReview        PhaseType = "review"
)

// AllPhaseTypes lists every phase type in schedule order.
var AllPhaseTypes = []PhaseType{
	PhasePlanning, PhasePreProduction, PhaseFilming,
	PhaseProduction, PhaseEditing, PhaseReview,
}

func (t PhaseType) Valid() bool {
	for _, v := range AllPhaseTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ParsePhaseType accepts the canonical value and the hyphenated form ("pre-production").
func ParsePhaseType(s string) (PhaseType, error) {
	pt := PhaseType(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if !pt.Valid() {
		return "", fmt.Errorf("invalid phase type %q", s)
	}
	return pt, nil
}

// PhaseTypeSet is an explicit set of phase types, used to express which
// phases take part in conflict detection.
type PhaseTypeSet map[PhaseType]struct{}

func NewPhaseTypeSet(types ...PhaseType) PhaseTypeSet {
	s := make(PhaseTypeSet, len(types))
	for _, t := range types {
		s[t] = struct{}{}
	}
	return s
}

// DefaultConflictTypes are the phases that compete for shooting crews and locations.
func DefaultConflictTypes() PhaseTypeSet {
	return NewPhaseTypeSet(PhaseFilming, PhaseProduction)
}

func (s PhaseTypeSet) Contains(t PhaseType) bool {
	_, ok := s[t]
	return ok
}

// Sorted returns the members in AllPhaseTypes order.
func (s PhaseTypeSet) Sorted() []PhaseType {
	out := make([]PhaseType, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return phaseTypeRank(out[i]) < phaseTypeRank(out[j]) })
	return out
}

func (s PhaseTypeSet) String() string {
	parts := make([]string, 0, len(s))
	for _, t := range s.Sorted() {
		parts = append(parts, string(t))
	}
	return strings.Join(parts, ",")
}

// ParsePhaseTypeSet parses a comma-separated list such as "filming,production".
func ParsePhaseTypeSet(csv string) (PhaseTypeSet, error) {
	s := PhaseTypeSet{}
	for _, part := range strings.Split(csv, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		t, err := ParsePhaseType(part)
		if err != nil {
			return nil, err
		}
		s[t] = struct{}{}
	}
	if len(s) == 0 {
		return nil, fmt.Errorf("phase type list is empty")
	}
	return s, nil
}

func phaseTypeRank(t PhaseType) int {
	for i, v := range AllPhaseTypes {
		if v == t {
			return i
		}
	}
	return len(AllPhaseTypes)
}

type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Rank orders severities so the most serious sorts highest.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 2
	case SeverityWarning:
		return 1
	default:
		return 0
	}
}

func ParseSeverity(s string) (Severity, error) {
	switch sev := Severity(strings.ToLower(strings.TrimSpace(s))); sev {
	case SeverityNone, SeverityWarning, SeverityCritical:
		return sev, nil
	default:
		return "", fmt.Errorf("invalid severity %q", s)
	}
}
