package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vlanet/vridge/internal/domain"
)

// Config holds runtime settings for the vridge CLI.
type Config struct {
	DBPath        string
	LogCalls      bool
	ConflictTypes domain.PhaseTypeSet
	SeverityMode  string // "default" or "escalating"
	EscalateAbove int
	Workers       int
}

// DefaultConfig returns a Config with sensible defaults. The database lives
// under the user's home directory when it can be found.
func DefaultConfig() Config {
	dbPath := filepath.Join(".vridge", "vridge.db")
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".vridge", "vridge.db")
	}
	return Config{
		DBPath:        dbPath,
		ConflictTypes: domain.DefaultConflictTypes(),
		SeverityMode:  "default",
	}
}

// LoadConfig reads configuration from environment variables,
// falling back to defaults for any unset or invalid values.
func LoadConfig() Config {
	return loadFrom(DefaultConfig(), os.Getenv)
}

func loadFrom(cfg Config, getenv func(string) string) Config {
	if v := getenv("VRIDGE_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := getenv("VRIDGE_LOG_CALLS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogCalls = b
		}
	}
	if v := getenv("VRIDGE_CONFLICT_TYPES"); v != "" {
		if set, err := domain.ParsePhaseTypeSet(v); err == nil {
			cfg.ConflictTypes = set
		}
	}
	if v := strings.ToLower(strings.TrimSpace(getenv("VRIDGE_SEVERITY"))); v == "default" || v == "escalating" {
		cfg.SeverityMode = v
	}
	if v := getenv("VRIDGE_ESCALATE_ABOVE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.EscalateAbove = n
		}
	}
	if v := getenv("VRIDGE_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Workers = n
		}
	}
	return cfg
}
