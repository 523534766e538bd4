package app

import "time"

// Config carries the full invocation surface. Flags, environment, and the
// optional config file all funnel into this struct before Run.
type Config struct {
	// URL of the page to capture.
	URL string
	// OutputPath of the finished PDF.
	OutputPath string

	// UseBrowser renders the page in headless Chrome before extraction and
	// enables tab discovery, which needs a live session.
	UseBrowser bool
	// ChromePath points at a specific Chrome binary; empty auto-detects.
	ChromePath string

	// Timeout bounds the whole fetch+discover phase. Rendering is not
	// covered: once content is in hand the run is local-only.
	Timeout time.Duration
	// SettleDelay is the wait after page load before the DOM snapshot.
	SettleDelay time.Duration
	// TabSettleDelay is the wait after each tab activation.
	TabSettleDelay time.Duration

	UserAgent string

	// CacheDir enables on-disk caching of static fetches when non-empty.
	CacheDir string
	// CacheMaxAge purges cache entries older than this before the run.
	CacheMaxAge time.Duration
	// CacheClear empties the cache directory before the run.
	CacheClear bool
}

// Defaults used when neither flags nor file config supply a value.
const (
	DefaultOutputPath     = "output.pdf"
	DefaultTimeout        = 60 * time.Second
	DefaultSettleDelay    = 3 * time.Second
	DefaultTabSettleDelay = time.Second
	DefaultUserAgent      = "gopagepdf/1.0 (+https://github.com/hyperifyio/gopagepdf)"
)

func (c *Config) applyDefaults() {
	if c.OutputPath == "" {
		c.OutputPath = DefaultOutputPath
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.SettleDelay <= 0 {
		c.SettleDelay = DefaultSettleDelay
	}
	if c.TabSettleDelay <= 0 {
		c.TabSettleDelay = DefaultTabSettleDelay
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
}
