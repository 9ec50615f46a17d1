package formatter

import (
	"fmt"
	"strings"

	"github.com/vlanet/vridge/internal/palette"
)

// FormatPalette renders a palette's tints as labelled swatches.
func FormatPalette(label string, hue int, p palette.Palette) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s\n", StyleBold.Render(label), Dim(fmt.Sprintf("hue %d°", hue))))
	for _, row := range []struct {
		name, hex string
	}{
		{"primary  ", p.Primary},
		{"secondary", p.Secondary},
		{"accent   ", p.Accent},
	} {
		chip, err := palette.WithPrimary(p, row.hex)
		if err != nil {
			chip = palette.DefaultPalette
		}
		b.WriteString(fmt.Sprintf("  %s %s %s\n", Dim(row.name), Swatch(chip, "Aa"), row.hex))
	}
	b.WriteString(fmt.Sprintf("  %s %s %s\n", Dim("text     "), Swatch(p, "Aa"), p.Text))
	return b.String()
}
