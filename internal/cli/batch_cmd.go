package cli

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/alexanderramin/estimate/internal/cli/formatter"
	"github.com/alexanderramin/estimate/internal/service"
	"github.com/spf13/cobra"
)

func newBatchCmd(app *App) *cobra.Command {
	var render, yes bool
	jobs := app.Config.BatchJobs
	locale := newLocaleValue(app.Config.Locale)

	cmd := &cobra.Command{
		Use:   "batch SOURCE...",
		Short: "Resolve several outlines in place, concurrently",
		Long: `Processes every SOURCE like the root command with the markdown written back
in place. A SOURCE given more than once is processed once. Documents run
concurrently; the first failure stops the batch and no history is recorded
for it.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sources := uniqueSources(args)
			reqs := make([]service.Request, 0, len(sources))
			for _, src := range sources {
				if err := ensureSource(src); err != nil {
					return err
				}
				reqs = append(reqs, service.Request{SourcePath: src, Render: render})
			}

			if !yes && app.interactive() {
				ok, err := app.confirm(fmt.Sprintf("Overwrite %d files with their computed estimates?", len(reqs)))
				if err != nil {
					return fmt.Errorf("confirming overwrite: %w", err)
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Aborted, nothing written."))
					return nil
				}
			}

			var stop func()
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), fmt.Sprintf("Processing %d documents…", len(reqs)))
			}
			results, err := app.EstimateService(locale.Format()).ProcessBatch(cmd.Context(), reqs, jobs)
			if stop != nil {
				stop()
			}
			if err != nil {
				return err
			}

			wd := app.workingDir()
			rows := make([][]string, 0, len(results))
			for _, res := range results {
				pdf := formatter.Dim("--")
				if res.PDFPath != "" {
					pdf = formatter.RelPath(res.PDFPath, wd)
				}
				rows = append(rows, []string{
					formatter.RelPath(res.MarkdownPath, wd),
					locale.Format().FormatDuration(res.Summary.Total),
					strconv.Itoa(res.Summary.Nodes),
					pdf,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.RenderTable([]string{"SOURCE", "TOTAL", "ITEMS", "PDF"}, rows))
			fmt.Fprintln(out, formatter.StepDone(fmt.Sprintf("Processed %d documents", len(results))))
			return nil
		},
	}

	cmd.Flags().BoolVar(&render, "render", false, "also render a PDF next to each source")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "overwrite every SOURCE without asking")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", jobs, "documents processed at the same time")
	cmd.Flags().Var(locale, "locale", "number format (de|en)")
	return cmd
}

// uniqueSources drops repeated paths, keeping the first spelling of each.
func uniqueSources(args []string) []string {
	seen := make(map[string]bool, len(args))
	out := make([]string, 0, len(args))
	for _, src := range args {
		key := filepath.Clean(src)
		if abs, err := filepath.Abs(src); err == nil {
			key = abs
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, src)
	}
	return out
}
