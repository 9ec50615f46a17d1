package cli

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/vlanet/vridge/internal/domain"
)

// phaseTypesValue is a pflag.Value collecting a comma-separated phase type set.
type phaseTypesValue struct {
	set domain.PhaseTypeSet
}

var _ pflag.Value = (*phaseTypesValue)(nil)

func (v *phaseTypesValue) String() string {
	if v.set == nil {
		return ""
	}
	return v.set.String()
}

func (v *phaseTypesValue) Set(s string) error {
	set, err := domain.ParsePhaseTypeSet(s)
	if err != nil {
		return err
	}
	if v.set == nil {
		v.set = set
		return nil
	}
	for t := range set {
		v.set[t] = struct{}{}
	}
	return nil
}

func (v *phaseTypesValue) Type() string { return "types" }

// dateValue is a pflag.Value holding a YYYY-MM-DD calendar day.
type dateValue struct {
	t time.Time
}

var _ pflag.Value = (*dateValue)(nil)

func (v *dateValue) String() string {
	if v.t.IsZero() {
		return ""
	}
	return v.t.Format(domain.DateLayout)
}

func (v *dateValue) Set(s string) error {
	t, err := parseDate(s)
	if err != nil {
		return err
	}
	v.t = t
	return nil
}

func (v *dateValue) Type() string { return "date" }

func (v *dateValue) IsSet() bool { return !v.t.IsZero() }

// severityValue is a pflag.Value restricted to known severities.
type severityValue struct {
	s domain.Severity
}

var _ pflag.Value = (*severityValue)(nil)

func (v *severityValue) String() string { return string(v.s) }

func (v *severityValue) Set(s string) error {
	sev, err := domain.ParseSeverity(s)
	if err != nil {
		return err
	}
	v.s = sev
	return nil
}

func (v *severityValue) Type() string { return "severity" }

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return t, nil
}
