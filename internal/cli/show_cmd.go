package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/estimate/internal/cli/formatter"
	"github.com/alexanderramin/estimate/internal/service"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

const markdownWrapWidth = 100

func newShowCmd(app *App) *cobra.Command {
	var markdown, breakdown bool
	locale := newLocaleValue(app.Config.Locale)

	cmd := &cobra.Command{
		Use:   "show SOURCE",
		Short: "Print the resolved estimate without writing any file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readSource(args[0])
			if err != nil {
				return err
			}
			res, err := app.EstimateService(locale.Format()).Estimate(cmd.Context(), text, service.Options{})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if markdown {
				rendered, err := renderMarkdown(res.Markdown, app.interactive())
				if err != nil {
					return err
				}
				fmt.Fprint(out, rendered)
				return nil
			}

			fmt.Fprint(out, formatter.FormatEstimate(res.Tree, locale.Format()))
			if breakdown && len(res.Tree.Children) > 0 {
				fmt.Fprintln(out)
				fmt.Fprint(out, formatter.FormatBreakdown(res.Tree, locale.Format()))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&markdown, "markdown", false, "print the regenerated markdown instead of the tree")
	cmd.Flags().BoolVar(&breakdown, "breakdown", false, "add a table of top-level items and their share")
	cmd.Flags().Var(locale, "locale", "number format (de|en)")
	return cmd
}

// renderMarkdown styles md for the terminal. A fixed style is used so no
// terminal queries are made; pipes get the plain "notty" style.
func renderMarkdown(md string, styled bool) (string, error) {
	if strings.TrimSpace(md) == "" {
		return "", nil
	}
	style := "notty"
	if styled {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(markdownWrapWidth),
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
