package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alexanderramin/estimate/internal/cli/formatter"
	"github.com/alexanderramin/estimate/internal/config"
	"github.com/alexanderramin/estimate/internal/domain"
	"github.com/alexanderramin/estimate/internal/service"
	"github.com/spf13/cobra"
)

type estimateOptions struct {
	render  bool
	pdfOut  string
	mdOut   string
	htmlOut string
	yes     bool
	locale  *localeValue
}

func newEstimateOptions(cfg config.Config) *estimateOptions {
	return &estimateOptions{locale: newLocaleValue(cfg.Locale)}
}

func (o *estimateOptions) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.render, "render", false, "also render a PDF")
	cmd.Flags().StringVar(&o.pdfOut, "pdf-outfile", "", "PDF output path (default: SOURCE with .pdf)")
	cmd.Flags().StringVar(&o.mdOut, "md-outfile", "", "markdown output path (default: overwrite SOURCE)")
	cmd.Flags().StringVar(&o.htmlOut, "html-outfile", "", "also write the HTML document to this path")
	cmd.Flags().BoolVarP(&o.yes, "yes", "y", false, "overwrite SOURCE without asking")
	cmd.Flags().Var(o.locale, "locale", "number format for HTML and terminal output (de|en)")
}

func (o *estimateOptions) request(source string) service.Request {
	return service.Request{
		SourcePath:   source,
		MarkdownPath: o.mdOut,
		HTMLPath:     o.htmlOut,
		PDFPath:      o.pdfOut,
		Render:       o.render,
	}
}

func runEstimate(cmd *cobra.Command, app *App, opts *estimateOptions, source string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	wd := app.workingDir()
	format := opts.locale.Format()

	if err := ensureSource(source); err != nil {
		return err
	}

	req := opts.request(source)
	if !opts.yes && app.interactive() && overwritesSource(req) {
		ok, err := app.confirm(fmt.Sprintf("Overwrite %s with the computed estimate?", formatter.RelPath(source, wd)))
		if err != nil {
			return fmt.Errorf("confirming overwrite: %w", err)
		}
		if !ok {
			fmt.Fprintln(out, formatter.Dim("Aborted, nothing written."))
			return nil
		}
	}

	var stop func()
	if req.Render && app.interactive() {
		stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Rendering PDF…")
	}
	res, err := app.EstimateService(format).ProcessFile(ctx, req)
	if stop != nil {
		stop()
	}
	if err != nil {
		return err
	}

	printSteps(out, res, format, wd)
	return nil
}

func printSteps(w io.Writer, res *service.Result, format domain.NumberFormat, wd string) {
	parsed := fmt.Sprintf("Parsed %d items, total %s", res.Summary.Nodes, format.FormatDuration(res.Summary.Total))
	if res.Changed > 0 {
		parsed += fmt.Sprintf(" (%d updated)", res.Changed)
	}
	fmt.Fprintln(w, formatter.StepDone(parsed))
	fmt.Fprintln(w, formatter.StepDone("Wrote markdown to "+formatter.RelPath(res.MarkdownPath, wd)))
	if res.HTMLPath != "" {
		fmt.Fprintln(w, formatter.StepDone("Wrote HTML to "+formatter.RelPath(res.HTMLPath, wd)))
	}
	if res.PDFPath != "" {
		fmt.Fprintln(w, formatter.StepDone("Wrote PDF to "+formatter.RelPath(res.PDFPath, wd)))
	}
}

// overwritesSource reports whether the markdown output lands on the source.
func overwritesSource(req service.Request) bool {
	if req.MarkdownPath == "" {
		return true
	}
	return samePath(req.MarkdownPath, req.SourcePath)
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// ensureSource rejects missing paths and directories before anything is
// prompted or written.
func ensureSource(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", service.ErrSourceNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, expected an outline file", path)
	}
	return nil
}

func readSource(path string) (string, error) {
	if err := ensureSource(path); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
