// Command gopagepdf captures a single web page as a structured PDF: page
// metadata, heading sections, links, and (with -browser) the content behind
// tabbed panels.
//
// Usage:
//
//	gopagepdf [flags] <url>
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/gopagepdf/internal/app"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		outputPath  string
		useBrowser  bool
		chromePath  string
		configPath  string
		timeout     time.Duration
		settle      time.Duration
		tabSettle   time.Duration
		userAgent   string
		cacheDir    string
		cacheMaxAge time.Duration
		cacheClear  bool
		verbose     bool
	)

	flag.StringVar(&outputPath, "o", "", "Output PDF path (default output.pdf)")
	flag.BoolVar(&useBrowser, "browser", false, "Render the page in headless Chrome and capture tabbed content")
	flag.StringVar(&chromePath, "chrome", os.Getenv("GOPAGEPDF_CHROME"), "Path to the Chrome binary (default: auto-detect)")
	flag.StringVar(&configPath, "config", os.Getenv("GOPAGEPDF_CONFIG"), "Path to a YAML or JSON config file")
	flag.DurationVar(&timeout, "timeout", 0, "Bound on the whole fetch and tab-discovery phase (default 60s)")
	flag.DurationVar(&settle, "wait", 0, "Settle delay after page load before the snapshot (default 3s)")
	flag.DurationVar(&tabSettle, "wait.tab", 0, "Settle delay after each tab activation (default 1s)")
	flag.StringVar(&userAgent, "ua", os.Getenv("GOPAGEPDF_UA"), "User agent for fetches")
	flag.StringVar(&cacheDir, "cache.dir", os.Getenv("GOPAGEPDF_CACHE_DIR"), "Directory for the on-disk page cache (empty disables)")
	flag.DurationVar(&cacheMaxAge, "cache.maxAge", 0, "Purge cache entries older than this before the run (0 disables)")
	flag.BoolVar(&cacheClear, "cache.clear", false, "Clear the cache directory before the run")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Usage = usage
	flag.Parse()

	cfg := app.Config{
		URL:            flag.Arg(0),
		OutputPath:     outputPath,
		UseBrowser:     useBrowser,
		ChromePath:     chromePath,
		Timeout:        timeout,
		SettleDelay:    settle,
		TabSettleDelay: tabSettle,
		UserAgent:      userAgent,
		CacheDir:       cacheDir,
		CacheMaxAge:    cacheMaxAge,
		CacheClear:     cacheClear,
	}

	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("config file")
			os.Exit(2)
		}
		app.ApplyFileConfig(&cfg, fc)
		if fc.Verbose {
			verbose = true
		}
	}

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if cfg.URL == "" {
		usage()
		os.Exit(2)
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(2)
	}
	if err := a.Run(context.Background()); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <url>\n\nFlags:\n", os.Args[0])
	flag.PrintDefaults()
}
