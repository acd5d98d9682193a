package pdf

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/draftly-hq/draftly"
)

// A4 portrait with 20mm margins, in inches as the devtools protocol expects.
const (
	paperWidthIn  = 8.27
	paperHeightIn = 11.69
	marginIn      = 0.79
)

// ChromeRasterizer renders HTML to PDF through a headless Chrome instance.
// The browser is launched lazily on first use and reused across renders.
type ChromeRasterizer struct {
	cfg     draftly.RenderConfig
	breaker *CircuitBreaker

	mu      sync.Mutex
	browser *rod.Browser
}

func NewChromeRasterizer(cfg draftly.RenderConfig) *ChromeRasterizer {
	return &ChromeRasterizer{
		cfg:     cfg,
		breaker: NewCircuitBreaker(3, time.Minute, 30*time.Second),
	}
}

// ensureBrowser connects to an existing Chrome or launches a new one,
// reconnecting when a previous connection has gone stale.
func (r *ChromeRasterizer) ensureBrowser(ctx context.Context) (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		if _, err := r.browser.Version(); err == nil {
			return r.browser, nil
		}
		zap.S().Warnw("stale browser connection, reconnecting")
		_ = r.browser.Close()
		r.browser = nil
	}

	controlURL := r.cfg.DebuggerURL
	if controlURL == "" {
		launch := launcher.New().Headless(r.cfg.Headless)
		if r.cfg.BrowserBin != "" {
			launch = launch.Bin(r.cfg.BrowserBin)
		}
		url, err := launch.Launch()
		if err != nil {
			return nil, fmt.Errorf("launch chrome: %w", err)
		}
		controlURL = url
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}

	r.browser = browser
	return browser, nil
}

// RenderPDF loads the document into a fresh page and prints it. The page is
// closed before returning; the browser stays up for the next render.
func (r *ChromeRasterizer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	if r.breaker.IsOpen() {
		return nil, fmt.Errorf("rasterizer unavailable: too many recent failures")
	}

	data, err := r.renderPDF(ctx, html)
	if err != nil {
		r.breaker.RecordFailure()
		return nil, err
	}
	r.breaker.RecordSuccess()
	return data, nil
}

func (r *ChromeRasterizer) renderPDF(ctx context.Context, html string) ([]byte, error) {
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	browser, err := r.ensureBrowser(ctx)
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer func() { _ = page.Close() }()
	page = page.Context(ctx)

	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("set document content: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait for document load: %w", err)
	}

	width := paperWidthIn
	height := paperHeightIn
	margin := marginIn

	stream, err := page.PDF(&proto.PagePrintToPDF{
		PaperWidth:      &width,
		PaperHeight:     &height,
		MarginTop:       &margin,
		MarginBottom:    &margin,
		MarginLeft:      &margin,
		MarginRight:     &margin,
		PrintBackground: true,
	})
	if err != nil {
		return nil, fmt.Errorf("print to pdf: %w", err)
	}
	defer func() { _ = stream.Close() }()

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read pdf stream: %w", err)
	}
	return data, nil
}

// Close shuts down the launched browser, if any.
func (r *ChromeRasterizer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	r.browser = nil
	return err
}
