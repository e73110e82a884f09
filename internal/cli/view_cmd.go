package cli

import (
	"fmt"
	"path/filepath"

	"github.com/alexanderramin/estimate/internal/cli/formatter"
	"github.com/alexanderramin/estimate/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newViewCmd(app *App) *cobra.Command {
	locale := newLocaleValue(app.Config.Locale)

	cmd := &cobra.Command{
		Use:   "view SOURCE",
		Short: "Browse the resolved estimate in a scrollable full-screen view",
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

			content := formatter.FormatEstimateTree(res.Tree, locale.Format()) + "\n" +
				formatter.FormatSummary(res.Summary, locale.Format())
			model := newViewerModel(filepath.Base(args[0]), content)

			if !app.interactive() {
				fmt.Fprintln(cmd.OutOrStdout(), content)
				return nil
			}
			return app.runViewer(model)
		},
	}

	cmd.Flags().Var(locale, "locale", "number format (de|en)")
	return cmd
}

func (a *App) runViewer(model tea.Model) error {
	if a.RunViewer != nil {
		return a.RunViewer(model)
	}
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run(); err != nil {
		return fmt.Errorf("running viewer: %w", err)
	}
	return nil
}
