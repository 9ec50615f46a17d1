// Package palette derives stable display colors for projects.
//
// A palette is a pure function of the project id: there is no shared state,
// no randomness and no dependence on load or render order.
package palette

import (
	"errors"
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrEmptyProjectID is returned by Generate for a blank project id.
var ErrEmptyProjectID = errors.New("project id is required for palette generation")

const (
	// hueStep is close to the golden angle and coprime with 360, so ids that
	// hash to consecutive values land far apart on the hue circle.
	hueStep = 137

	TextLight = "#ffffff"
	TextDark  = "#1a1a1a"
)

// Tint is a saturation/lightness pair applied to a project's hue.
type Tint struct {
	Saturation float64
	Lightness  float64
}

var (
	PrimaryTint   = Tint{Saturation: 0.65, Lightness: 0.50}
	SecondaryTint = Tint{Saturation: 0.65, Lightness: 0.90}
	AccentTint    = Tint{Saturation: 0.75, Lightness: 0.35}
)

// Palette holds the rendering colors for one project as #rrggbb strings.
type Palette struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
	Text      string `json:"text"`
}

// DefaultPalette is a neutral gray palette for events without a project.
var DefaultPalette = Palette{
	Primary:   "#6b7280",
	Secondary: "#e5e7eb",
	Accent:    "#374151",
	Text:      TextLight,
}

// Hash is a 31-multiplier polynomial hash over the id's bytes with uint32
// wraparound. It is identical on every platform.
func Hash(projectID string) uint32 {
	var h uint32
	for i := 0; i < len(projectID); i++ {
		h = h*31 + uint32(projectID[i])
	}
	return h
}

// Hue maps a project id to a hue in [0, 360).
func Hue(projectID string) int {
	return int((uint64(Hash(projectID)) * hueStep) % 360)
}

// Generate returns the palette for projectID.
func Generate(projectID string) (Palette, error) {
	if strings.TrimSpace(projectID) == "" {
		return Palette{}, ErrEmptyProjectID
	}
	return FromHue(Hue(projectID)), nil
}

// GenerateOrDefault returns DefaultPalette when projectID is blank.
func GenerateOrDefault(projectID string) Palette {
	p, err := Generate(projectID)
	if err != nil {
		return DefaultPalette
	}
	return p
}

// FromHue builds a palette around a hue in degrees.
func FromHue(hue int) Palette {
	h := float64(((hue % 360) + 360) % 360)
	primary := PrimaryTint.apply(h)
	return Palette{
		Primary:   primary.Hex(),
		Secondary: SecondaryTint.apply(h).Hex(),
		Accent:    AccentTint.apply(h).Hex(),
		Text:      TextFor(primary),
	}
}

func (t Tint) apply(hue float64) colorful.Color {
	return colorful.Hsl(hue, t.Saturation, t.Lightness).Clamped()
}

// TextFor picks white or near-black, whichever contrasts more with bg.
// Ties go to white.
func TextFor(bg colorful.Color) string {
	dark, _ := colorful.Hex(TextDark)
	white := colorful.Color{R: 1, G: 1, B: 1}
	if ContrastRatio(white, bg) >= ContrastRatio(dark, bg) {
		return TextLight
	}
	return TextDark
}

// RelativeLuminance is the WCAG 2 relative luminance of c.
func RelativeLuminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastRatio is the WCAG 2 contrast ratio between two colors, in [1, 21].
func ContrastRatio(a, b colorful.Color) float64 {
	la, lb := RelativeLuminance(a), RelativeLuminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// WithPrimary replaces p's primary color with hex and recomputes the text
// color against it. The other tints are kept.
func WithPrimary(p Palette, hex string) (Palette, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return p, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	p.Primary = c.Hex()
	p.Text = TextFor(c)
	return p, nil
}
