package cli

import (
	"os"
	"time"

	"github.com/alexanderramin/estimate/internal/config"
	"github.com/alexanderramin/estimate/internal/db"
	"github.com/alexanderramin/estimate/internal/domain"
	"github.com/alexanderramin/estimate/internal/render"
	"github.com/alexanderramin/estimate/internal/repository"
	"github.com/alexanderramin/estimate/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds the collaborators shared by all commands.
type App struct {
	Config config.Config

	// History store; both nil when history is disabled.
	Runs repository.RunRepo
	UoW  db.UnitOfWork

	PDF      render.PDFRenderer
	Observer service.UseCaseObserver

	// IsInteractive reports whether stdin is a terminal. Prompts and
	// spinners only run when it returns true.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Defaults to a huh form.
	Confirm func(title string) (bool, error)
	// RunViewer runs a bubbletea model full screen. Replaced in tests.
	RunViewer func(model tea.Model) error

	Now func() time.Time
}

// EstimateService builds the pipeline for the given display format.
func (a *App) EstimateService(format domain.NumberFormat) service.EstimateService {
	renderers := service.Renderers{
		Markdown: render.NewMarkdownRenderer(),
		HTML:     render.NewHTMLRenderer(format, a.Config.HTMLLang),
		PDF:      a.PDF,
	}
	return service.NewEstimateService(renderers, a.Runs, a.UoW, a.Observer)
}

// HistoryService returns nil when no history store is wired.
func (a *App) HistoryService() service.HistoryService {
	if a.Runs == nil {
		return nil
	}
	return service.NewHistoryService(a.Runs, a.Observer)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) confirm(title string) (bool, error) {
	if a.Confirm != nil {
		return a.Confirm(title)
	}
	return huhConfirm(title)
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now().UTC()
}

func (a *App) workingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// NewRootCmd creates the top-level "estimate" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	opts := newEstimateOptions(app.Config)

	root := &cobra.Command{
		Use:   "estimate SOURCE",
		Short: "Resolve effort estimates in an outline and render them",
		Long: `Reads an indented bullet outline annotated with [8h] durations and
{^30%} percentages, computes every parent total and writes the outline back
with the resolved numbers. With --render it also prints an A4 PDF.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEstimate(cmd, app, opts, args[0])
		},
	}

	opts.register(root)

	root.AddCommand(
		newShowCmd(app),
		newViewCmd(app),
		newBatchCmd(app),
		newHistoryCmd(app),
	)

	return root
}
