// Package app wires the fetch, extraction, and render stages into one
// pipeline. The same pipeline serves both the static-HTTP and the
// browser-rendered path; only the collaborator that supplies the markup
// (and, for the browser, the live tab session) differs.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/gopagepdf/internal/browser"
	"github.com/hyperifyio/gopagepdf/internal/cache"
	"github.com/hyperifyio/gopagepdf/internal/extract"
	"github.com/hyperifyio/gopagepdf/internal/fetch"
	"github.com/hyperifyio/gopagepdf/internal/page"
	"github.com/hyperifyio/gopagepdf/internal/pdf"
)

// App executes one capture run.
type App struct {
	cfg Config
}

// New validates the configuration and prepares a run.
func New(cfg Config) (*App, error) {
	cfg.applyDefaults()
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("app: no URL given")
	}
	u, err := url.Parse(cfg.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("app: invalid URL %q", cfg.URL)
	}
	return &App{cfg: cfg}, nil
}

// Run fetches the page, extracts its structure, and writes the PDF. Fetch
// and render failures abort the run; an unavailable tab UI degrades to zero
// tabs.
func (a *App) Run(ctx context.Context) error {
	raw, tabs, err := a.collect(ctx)
	if err != nil {
		return err
	}

	doc := buildDocument(raw, a.cfg.URL, tabs)
	log.Info().
		Int("sections", len(doc.Sections)).
		Int("links", len(doc.Links)).
		Int("tabs", len(doc.Tabs)).
		Msg("extracted page structure")

	if err := pdf.Render(doc, a.cfg.OutputPath); err != nil {
		return err
	}
	log.Info().Str("out", a.cfg.OutputPath).Msg("wrote PDF")
	return nil
}

// collect obtains the raw markup and, on the browser path, the tab entries.
// The configured timeout covers this whole phase; it is the run's only
// protection against an unresponsive page.
func (a *App) collect(ctx context.Context) ([]byte, browser.TabResult, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	if a.cfg.UseBrowser {
		return a.collectBrowser(ctx)
	}
	raw, err := a.collectStatic(ctx)
	return raw, browser.TabResult{}, err
}

func (a *App) collectStatic(ctx context.Context) ([]byte, error) {
	client := &fetch.Client{UserAgent: a.cfg.UserAgent}
	if a.cfg.CacheDir != "" {
		if a.cfg.CacheClear {
			_ = cache.ClearDir(a.cfg.CacheDir)
		}
		if a.cfg.CacheMaxAge > 0 {
			_, _ = cache.PurgeByAge(a.cfg.CacheDir, a.cfg.CacheMaxAge)
		}
		client.Cache = &cache.HTTPCache{Dir: a.cfg.CacheDir}
	}
	raw, err := client.Get(ctx, a.cfg.URL)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("bytes", len(raw)).Msg("fetched page")
	return raw, nil
}

func (a *App) collectBrowser(ctx context.Context) ([]byte, browser.TabResult, error) {
	opts := []browser.Option{
		browser.WithUserAgent(a.cfg.UserAgent),
		browser.WithSettleDelay(a.cfg.SettleDelay),
		browser.WithTabSettleDelay(a.cfg.TabSettleDelay),
	}
	if a.cfg.ChromePath != "" {
		opts = append(opts, browser.WithChromePath(a.cfg.ChromePath))
	}
	sess, err := browser.NewSession(opts...)
	if err != nil {
		return nil, browser.TabResult{}, err
	}
	defer sess.Close()

	pg, err := sess.Navigate(ctx, a.cfg.URL)
	if err != nil {
		return nil, browser.TabResult{}, err
	}
	defer pg.Close()

	html, err := pg.HTML()
	if err != nil {
		return nil, browser.TabResult{}, err
	}
	log.Debug().Int("bytes", len(html)).Msg("rendered page snapshot")

	// Tab activation mutates the shared page, so discovery runs only after
	// the snapshot is taken.
	tabs := pg.DiscoverTabs()
	if !tabs.OK() {
		log.Debug().Str("reason", tabs.Unavailable).Msg("tab discovery unavailable; continuing without tabs")
	}
	return []byte(html), tabs, nil
}

// buildDocument runs the static extractors over the markup and assembles the
// render input.
func buildDocument(raw []byte, pageURL string, tabs browser.TabResult) page.Document {
	root := extract.Parse(raw)
	return page.Document{
		Meta:     extract.Metadata(root, pageURL),
		Sections: extract.Sections(root),
		Links:    extract.Links(root, pageURL),
		Tabs:     tabs.Entries,
	}
}
