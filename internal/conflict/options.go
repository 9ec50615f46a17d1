package conflict

import (
	"log/slog"

	"github.com/vlanet/vridge/internal/domain"
)

// SeverityPolicy classifies an overlapping pair of conflict-sensitive phases.
type SeverityPolicy func(a, b domain.ProjectPhase) domain.Severity

// DefaultPolicy rates every overlap as a warning.
func DefaultPolicy(domain.ProjectPhase, domain.ProjectPhase) domain.Severity {
	return domain.SeverityWarning
}

// EscalatingPolicy rates overlaps inside a single project as critical: the
// project is double-booking its own crew. Cross-project overlaps stay warnings.
func EscalatingPolicy(a, b domain.ProjectPhase) domain.Severity {
	if a.ProjectID != "" && a.ProjectID == b.ProjectID {
		return domain.SeverityCritical
	}
	return domain.SeverityWarning
}

// PolicyByName resolves a configured policy name. Unknown names fall back
// to DefaultPolicy and ok is false.
func PolicyByName(name string) (policy SeverityPolicy, ok bool) {
	switch name {
	case "", "default":
		return DefaultPolicy, true
	case "escalating":
		return EscalatingPolicy, true
	default:
		return DefaultPolicy, false
	}
}

type options struct {
	sensitive     domain.PhaseTypeSet
	policy        SeverityPolicy
	logger        *slog.Logger
	escalateAbove int
}

// Option configures a detection run.
type Option func(*options)

// WithSensitiveTypes replaces the set of phase types that can conflict.
// An empty set is ignored.
func WithSensitiveTypes(types domain.PhaseTypeSet) Option {
	return func(o *options) {
		if len(types) > 0 {
			o.sensitive = types
		}
	}
}

// WithSeverityPolicy sets the pairwise severity classifier. nil is ignored.
func WithSeverityPolicy(p SeverityPolicy) Option {
	return func(o *options) {
		if p != nil {
			o.policy = p
		}
	}
}

// WithLogger receives a warning for every skipped phase.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithEscalationThreshold raises every conflict touching a phase that is
// involved in more than n conflicts to critical. n <= 0 disables it.
func WithEscalationThreshold(n int) Option {
	return func(o *options) {
		o.escalateAbove = n
	}
}

func buildOptions(opts []Option) options {
	o := options{
		sensitive: domain.DefaultConflictTypes(),
		policy:    DefaultPolicy,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
