package render

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-docite/internal/logging"
	"github.com/alnah/go-docite/internal/process"
)

// DefaultPDFTimeout bounds page load and printing when the context has no deadline.
const DefaultPDFTimeout = 30 * time.Second

// A4 page in inches with 0.75 inch margins.
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
	marginInches      = 0.75
)

// PDFRenderer prints HTML pages to PDF with headless Chrome.
// The browser is launched on first use and reused until Close.
type PDFRenderer struct {
	timeout  time.Duration
	logger   *slog.Logger
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// NewPDFRenderer creates a PDFRenderer. A zero timeout means DefaultPDFTimeout.
func NewPDFRenderer(timeout time.Duration, logger *slog.Logger) *PDFRenderer {
	if timeout <= 0 {
		timeout = DefaultPDFTimeout
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &PDFRenderer{timeout: timeout, logger: logger}
}

// BrowserPath returns the Chrome binary go-rod would use: ROD_BROWSER_BIN
// when set, otherwise the first browser found on the system.
func BrowserPath() (string, bool) {
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		return bin, true
	}
	return launcher.LookPath()
}

func (r *PDFRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	// Chrome's sandbox is unavailable in most containers and CI runners.
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		r.kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.browser = browser
	r.logger.Debug("browser connected", "pid", l.PID())
	return nil
}

// Render prints the HTML file at htmlPath to pdfPath.
func (r *PDFRenderer) Render(ctx context.Context, htmlPath, pdfPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	absHTML, err := filepath.Abs(htmlPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPDFRender, err)
	}

	if err := r.ensureBrowser(); err != nil {
		return err
	}

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return context.DeadlineExceeded
		}
	}

	page, err := r.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: "file://" + filepath.ToSlash(absHTML)})
	if err != nil {
		return fmt.Errorf("%w: opening page: %v", ErrPDFRender, err)
	}
	defer func() { _ = page.Close() }()

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return fmt.Errorf("%w: loading page: %v", ErrPDFRender, err)
	}

	stream, err := page.PDF(&proto.PagePrintToPDF{
		PaperWidth:      floatPtr(paperWidthInches),
		PaperHeight:     floatPtr(paperHeightInches),
		MarginTop:       floatPtr(marginInches),
		MarginBottom:    floatPtr(marginInches),
		MarginLeft:      floatPtr(marginInches),
		MarginRight:     floatPtr(marginInches),
		PrintBackground: true,
	})
	if err != nil {
		return fmt.Errorf("%w: printing: %v", ErrPDFRender, err)
	}

	data, err := io.ReadAll(stream)
	if err != nil {
		return fmt.Errorf("%w: reading PDF stream: %v", ErrPDFRender, err)
	}

	if err := os.WriteFile(pdfPath, data, 0o644); err != nil { // #nosec G306 -- preview is a user document
		return fmt.Errorf("%w: writing %s: %w", ErrPDFRender, pdfPath, err)
	}
	r.logger.Info("PDF preview written", "path", pdfPath, "bytes", len(data))
	return nil
}

// Close shuts the browser down and kills its process group.
func (r *PDFRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	r.kill()
	return err
}

func (r *PDFRenderer) kill() {
	if r.launcher == nil {
		return
	}
	if pid := r.launcher.PID(); pid > 0 {
		process.KillProcessGroup(pid)
	}
	r.launcher.Kill()
	r.launcher = nil
}

func floatPtr(v float64) *float64 {
	return &v
}
