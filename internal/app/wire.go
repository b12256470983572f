package app

import (
	"fmt"
	"log"

	"go-jobscrape-server/internal/browser"
	"go-jobscrape-server/internal/config"
	"go-jobscrape-server/internal/scraper"
	"go-jobscrape-server/internal/scraper/indeed"
)

// BuildScraper creates the engine selected in cfg.
// The returned cleanup stops the playwright driver and must be called on shutdown.
func BuildScraper(cfg *config.Config) (scraper.Scraper, func() error, error) {
	opts := indeed.Options{
		SearchURLTemplate: cfg.SearchURLTemplate,
		NavigationTimeout: cfg.NavigationTimeout,
		LandmarkTimeout:   cfg.LandmarkTimeout,
		ScreenshotPath:    cfg.ScreenshotPath,
		DebugHTMLPath:     cfg.DebugHTMLPath,
		UserAgent:         cfg.UserAgent,
	}

	switch cfg.Engine {
	case config.EngineStatic:
		s := indeed.NewStaticScraper(opts)
		return scraper.Limited(s, cfg.MaxConcurrentScrapes()), func() error { return nil }, nil

	case config.EngineBrowser:
		cookies, err := browser.LoadCookies(cfg.CookiesPath)
		if err != nil {
			log.Printf("⚠️ Could not load cookies from %s: %v. Continuing.", cfg.CookiesPath, err)
			cookies = nil
		} else if len(cookies) > 0 {
			log.Printf("🍪 Loaded %d cookies", len(cookies))
		}

		ua := cfg.UserAgent
		if ua == "" {
			ua = indeed.DefaultUserAgent
		}
		pm, err := browser.NewPlaywright(browser.Options{
			Headless:  cfg.IsHeadless(),
			UserAgent: ua,
			Install:   cfg.InstallBrowsers,
		})
		if err != nil {
			return nil, nil, err
		}

		s := indeed.NewIndeedScraper(indeed.PlaywrightLauncher(pm), opts, cookies)
		return scraper.Limited(s, cfg.MaxConcurrentScrapes()), pm.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown engine %q", cfg.Engine)
	}
}
