package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/vlanet/vridge/internal/cli/formatter"
	"github.com/vlanet/vridge/internal/domain"
	"github.com/vlanet/vridge/internal/palette"
)

// vridgeHuhTheme returns a custom huh theme using the formatter's Gruvbox palette.
func vridgeHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// projectForm holds the values collected by wizardProjectAdd.
type projectForm struct {
	ShortID      string
	Name         string
	Organization string
	Manager      string
	Color        string
}

// wizardProjectAdd creates a huh form for the fields of a new project.
// Values already present in f are used as defaults.
func wizardProjectAdd(f *projectForm) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Short ID").
				Description("3-6 uppercase letters followed by 2-4 digits").
				Placeholder("FILM01").
				Validate(validateShortID).
				Value(&f.ShortID),
			huh.NewInput().
				Title("Project name").
				Validate(validateRequired("name")).
				Value(&f.Name),
			huh.NewInput().
				Title("Organization").
				Value(&f.Organization),
			huh.NewInput().
				Title("Manager").
				Value(&f.Manager),
			huh.NewInput().
				Title("Color override").
				Description("Leave empty to derive a color from the project id").
				Placeholder("#336699").
				Validate(validateOptionalColor).
				Value(&f.Color),
		),
	).WithTheme(vridgeHuhTheme()).WithShowHelp(false)
}

// phaseForm holds the values collected by wizardPhaseAdd.
type phaseForm struct {
	Name  string
	Type  domain.PhaseType
	Start string
	End   string
	Fixed bool
}

// wizardPhaseAdd creates a huh form for a new phase.
func wizardPhaseAdd(f *phaseForm) *huh.Form {
	options := make([]huh.Option[domain.PhaseType], 0, len(domain.AllPhaseTypes))
	for _, t := range domain.AllPhaseTypes {
		options = append(options, huh.NewOption(strings.ReplaceAll(string(t), "_", "-"), t))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Phase name").
				Validate(validateRequired("name")).
				Value(&f.Name),
			huh.NewSelect[domain.PhaseType]().
				Title("Phase type").
				Options(options...).
				Value(&f.Type),
			huh.NewInput().
				Title("Start date").
				Placeholder("YYYY-MM-DD").
				Validate(validateDate).
				Value(&f.Start),
			huh.NewInput().
				Title("End date").
				Description("Inclusive; leave empty for a one-day phase").
				Placeholder("YYYY-MM-DD").
				Validate(validateOptionalDate).
				Value(&f.End),
			huh.NewConfirm().
				Title("Fixed date?").
				Description("Fixed phases cannot be moved or resized").
				Value(&f.Fixed),
		),
	).WithTheme(vridgeHuhTheme()).WithShowHelp(false)
}

func validateShortID(s string) error {
	p := domain.Project{ShortID: strings.ToUpper(strings.TrimSpace(s))}
	return p.ValidateShortID()
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// validateDate accepts a YYYY-MM-DD date string.
func validateDate(s string) error {
	if _, err := time.Parse(domain.DateLayout, s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date string.
func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	return validateDate(s)
}

func validateOptionalColor(s string) error {
	if s == "" {
		return nil
	}
	if _, err := palette.WithPrimary(palette.DefaultPalette, s); err != nil {
		return fmt.Errorf("use a hex color such as #336699")
	}
	return nil
}
