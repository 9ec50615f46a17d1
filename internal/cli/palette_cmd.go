package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vlanet/vridge/internal/cli/formatter"
	"github.com/vlanet/vridge/internal/palette"
)

func newPaletteCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "palette ID...",
		Short: "Show the colors derived for projects",
		Long: "Show the colors derived for projects. Arguments are resolved as project short IDs\n" +
			"or UUIDs; with --raw they are used as project ids directly.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()
			for _, arg := range args {
				id, label := arg, arg
				if !raw {
					projectID, err := resolveProjectID(ctx, app, arg)
					if err != nil {
						return err
					}
					p, err := app.Projects.GetByID(ctx, projectID)
					if err != nil {
						return err
					}
					id, label = p.ID, p.DisplayID()+" "+p.Name
				}
				pal, err := palette.Generate(id)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, formatter.FormatPalette(label, palette.Hue(id), pal))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Treat arguments as project ids without looking them up")
	return cmd
}
