package cli

import (
	"context"
	"fmt"
	"strings"
)

// idCandidate is something a user can name on the command line: its uuid
// and, for projects, a short id.
type idCandidate struct {
	id      string
	shortID string
}

// matchID resolves input against candidates. An exact short id (any case)
// wins, then an exact uuid, then a unique uuid prefix.
func matchID(kind, input string, candidates []idCandidate) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}
	for _, c := range candidates {
		if c.shortID != "" && strings.EqualFold(c.shortID, input) {
			return c.id, nil
		}
	}
	var matches []string
	for _, c := range candidates {
		if c.id == input {
			return c.id, nil
		}
		if strings.HasPrefix(c.id, input) {
			matches = append(matches, c.id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return matchID("project", input, nil)
	}
	projects, err := app.Projects.List(ctx, true)
	if err != nil {
		return "", err
	}
	candidates := make([]idCandidate, 0, len(projects))
	for _, p := range projects {
		candidates = append(candidates, idCandidate{id: p.ID, shortID: p.ShortID})
	}
	return matchID("project", input, candidates)
}

// resolvePhaseID accepts a full phase uuid or a prefix unique across every
// project's phases.
func resolvePhaseID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return matchID("phase", input, nil)
	}
	if ph, err := app.Phases.GetByID(ctx, input); err == nil {
		return ph.ID, nil
	}
	projects, err := app.Projects.List(ctx, true)
	if err != nil {
		return "", err
	}
	var candidates []idCandidate
	for _, p := range projects {
		phases, err := app.Phases.ListByProject(ctx, p.ID)
		if err != nil {
			return "", err
		}
		for _, ph := range phases {
			candidates = append(candidates, idCandidate{id: ph.ID})
		}
	}
	return matchID("phase", input, candidates)
}
