package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/estimate/internal/cli/formatter"
	"github.com/spf13/cobra"
)

const defaultHistoryLimit = 20

var errHistoryDisabled = errors.New("history is disabled; set ESTIMATE_HISTORY=true to record runs")

func newHistoryCmd(app *App) *cobra.Command {
	var source string
	limit := defaultHistoryLimit
	locale := newLocaleValue(app.Config.Locale)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded estimate runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			history := app.HistoryService()
			if history == nil {
				return errHistoryDisabled
			}

			runs, err := history.List(cmd.Context(), source, limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(runs, locale.Format(), app.workingDir(), app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "only runs of this outline")
	cmd.Flags().IntVarP(&limit, "limit", "n", limit, "maximum runs to show (0 for all)")
	cmd.Flags().Var(locale, "locale", "number format (de|en)")
	return cmd
}
