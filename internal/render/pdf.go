package render

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

// A4 portrait in inches.
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
)

// ChromePDF prints HTML to PDF through a headless Chrome instance started
// per call.
type ChromePDF struct {
	// Bin is an explicit browser binary. When empty the launcher looks up a
	// local Chrome/Chromium and downloads one as a last resort.
	Bin     string
	Timeout time.Duration
}

// NewChromePDF creates a ChromePDF. A zero timeout means no extra deadline.
func NewChromePDF(bin string, timeout time.Duration) *ChromePDF {
	return &ChromePDF{Bin: bin, Timeout: timeout}
}

// Render loads html into a blank page and prints it on A4 portrait paper.
func (c *ChromePDF) Render(ctx context.Context, html string) ([]byte, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	l := launcher.New().Context(ctx).Headless(true)
	if c.Bin != "" {
		l = l.Bin(c.Bin)
	}
	defer l.Cleanup()

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: launching browser: %v", ErrPDFUnavailable, err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%w: connecting to browser: %v", ErrPDFUnavailable, err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}
	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("loading html: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("waiting for page load: %w", err)
	}

	stream, err := page.PDF(&proto.PagePrintToPDF{
		PaperWidth:      gson.Num(a4WidthInches),
		PaperHeight:     gson.Num(a4HeightInches),
		PrintBackground: true,
	})
	if err != nil {
		return nil, fmt.Errorf("printing pdf: %w", err)
	}

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("reading pdf stream: %w", err)
	}
	return data, nil
}
