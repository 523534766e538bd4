// Package browser drives a headless Chrome instance over the DevTools
// protocol. It provides the rendered-snapshot fetch path and the live tab
// discovery that static markup cannot supply.
package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// ErrClosed is returned when the session is used after Close.
var ErrClosed = errors.New("browser: session closed")

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

type config struct {
	chromePath string
	userAgent  string
	headless   bool
	settle     time.Duration
	tabSettle  time.Duration
}

// Option configures a Session.
type Option func(*config)

// WithChromePath points the allocator at a specific Chrome binary instead of
// auto-detecting one on PATH.
func WithChromePath(path string) Option { return func(c *config) { c.chromePath = path } }

// WithUserAgent overrides the browser user agent.
func WithUserAgent(ua string) Option { return func(c *config) { c.userAgent = ua } }

// WithSettleDelay sets the wait after navigation before the DOM is read.
func WithSettleDelay(d time.Duration) Option { return func(c *config) { c.settle = d } }

// WithTabSettleDelay sets the wait after each tab activation.
func WithTabSettleDelay(d time.Duration) Option { return func(c *config) { c.tabSettle = d } }

// WithVisibleWindow runs Chrome with a visible window, for sites that block
// headless browsers.
func WithVisibleWindow() Option { return func(c *config) { c.headless = false } }

// Session owns a headless browser process that can open pages. Pages opened
// from one Session share the process but each get their own target.
type Session struct {
	cfg           config
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// NewSession starts the browser eagerly so startup errors surface here
// rather than on first navigation. The caller must Close the session.
func NewSession(opts ...Option) (*Session, error) {
	cfg := config{
		userAgent: defaultUserAgent,
		headless:  true,
		settle:    3 * time.Second,
		tabSettle: time.Second,
	}
	for _, o := range opts {
		o(&cfg)
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.UserAgent(cfg.userAgent),
		chromedp.WindowSize(1920, 1080),
		chromedp.Flag("headless", cfg.headless),
	)
	if cfg.chromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(cfg.chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("browser: starting: %w", err)
	}

	return &Session{
		cfg:           cfg,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}, nil
}

// Close shuts down the browser process. Idempotent.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.browserCancel()
	s.allocCancel()
	return nil
}

func (s *Session) checkClosed() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

// Page is one open browser target, navigated and settled. Its operations
// share the live DOM, so tab activations through it are inherently
// sequential.
type Page struct {
	ctx       context.Context
	cancel    context.CancelFunc
	url       string
	tabSettle time.Duration
}

// Navigate opens a new target, loads url, waits for the body plus the fixed
// settle delay, and returns the live page. A deadline on ctx bounds the
// whole lifetime of the returned page.
func (s *Session) Navigate(ctx context.Context, url string) (*Page, error) {
	if err := s.checkClosed(); err != nil {
		return nil, err
	}

	tabCtx, tabCancel := chromedp.NewContext(s.browserCtx)
	cancel := tabCancel
	if deadline, ok := ctx.Deadline(); ok {
		var dlCancel context.CancelFunc
		tabCtx, dlCancel = context.WithDeadline(tabCtx, deadline)
		cancel = func() {
			dlCancel()
			tabCancel()
		}
	}

	err := chromedp.Run(tabCtx,
		network.Enable(),
		network.SetExtraHTTPHeaders(network.Headers(map[string]interface{}{
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			"Accept-Language": "en-US,en;q=0.9",
		})),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(s.cfg.settle),
	)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("browser: navigate %s: %w", url, err)
	}

	return &Page{ctx: tabCtx, cancel: cancel, url: url, tabSettle: s.cfg.tabSettle}, nil
}

// HTML returns the rendered outer HTML of the page.
func (p *Page) HTML() (string, error) {
	var html string
	if err := chromedp.Run(p.ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("browser: snapshot %s: %w", p.url, err)
	}
	return html, nil
}

// Close releases the page's target.
func (p *Page) Close() {
	p.cancel()
}
