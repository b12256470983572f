package indeed

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"go-jobscrape-server/internal/browser"
	"go-jobscrape-server/internal/scraper"

	"github.com/playwright-community/playwright-go"
)

type Options struct {
	SearchURLTemplate string
	NavigationTimeout time.Duration
	LandmarkTimeout   time.Duration
	//written when a page yields no listings
	ScreenshotPath string
	DebugHTMLPath  string
	UserAgent      string
}

func (o Options) withDefaults() Options {
	if o.SearchURLTemplate == "" {
		o.SearchURLTemplate = DefaultSearchURL
	}
	if o.NavigationTimeout <= 0 {
		o.NavigationTimeout = 60 * time.Second
	}
	if o.LandmarkTimeout <= 0 {
		o.LandmarkTimeout = 20 * time.Second
	}
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
	return o
}

// Session is one launched browser holding a single page
type Session interface {
	Page() playwright.Page
	Close() error
}

// SessionLauncher starts a fresh browser session per call
type SessionLauncher interface {
	NewSession(cookies []playwright.OptionalCookie) (Session, error)
}

type playwrightLauncher struct {
	pm *browser.PlaywrightManager
}

// PlaywrightLauncher launches sessions through a running playwright driver
func PlaywrightLauncher(pm *browser.PlaywrightManager) SessionLauncher {
	return playwrightLauncher{pm: pm}
}

func (l playwrightLauncher) NewSession(cookies []playwright.OptionalCookie) (Session, error) {
	s, err := l.pm.NewSession(cookies)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// IndeedScraper drives a headless browser through the search results page
type IndeedScraper struct {
	launcher    SessionLauncher
	opts        Options
	cookies     []playwright.OptionalCookie
	screenshots *browser.ScreenshotDebugger
}

func NewIndeedScraper(launcher SessionLauncher, opts Options, cookies []playwright.OptionalCookie) *IndeedScraper {
	opts = opts.withDefaults()
	return &IndeedScraper{
		launcher:    launcher,
		opts:        opts,
		cookies:     cookies,
		screenshots: browser.NewScreenshotDebugger(opts.ScreenshotPath),
	}
}

func (s *IndeedScraper) Name() string {
	return "browser"
}

func (s *IndeedScraper) Scrape(ctx context.Context, urlOrKeyword string) ([]scraper.Job, error) {
	target := BuildSearchURL(s.opts.SearchURLTemplate, urlOrKeyword)
	base, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid target %q: %w", scraper.ErrNavigation, target, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	session, err := s.launcher.NewSession(s.cookies)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", scraper.ErrBrowser, err)
	}
	//always release the browser, whichever way we leave
	defer func() {
		if cerr := session.Close(); cerr != nil {
			log.Printf("⚠️ Failed to close browser: %v", cerr)
		}
	}()
	//a cancelled request kills the browser, failing whatever call is in flight
	stop := context.AfterFunc(ctx, func() {
		session.Close()
	})
	defer stop()

	page := session.Page()

	log.Printf("🌐 Navigating to %s", target)
	if _, err := page.Goto(target, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(float64(s.opts.NavigationTimeout.Milliseconds())),
	}); err != nil {
		return nil, s.abort(ctx, fmt.Errorf("%w: %w", scraper.ErrNavigation, err))
	}

	//container first, then the list inside it
	for _, selector := range []string{ContainerSelector, ListSelector} {
		if _, err := page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
			State:   playwright.WaitForSelectorStateAttached,
			Timeout: playwright.Float(float64(s.opts.LandmarkTimeout.Milliseconds())),
		}); err != nil {
			return nil, s.abort(ctx, fmt.Errorf("%w: %s: %w", scraper.ErrLandmark, selector, err))
		}
	}

	cards, err := page.QuerySelectorAll(CardSelector)
	if err != nil {
		return nil, s.abort(ctx, fmt.Errorf("query job cards: %w", err))
	}
	log.Printf("📦 Found %d job cards", len(cards))

	jobs := make([]scraper.Job, 0, len(cards))
	for i, card := range cards {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		job, ok, err := ExtractCard(elementNode{h: card}, base)
		if err != nil {
			log.Printf("⚠️ Error processing job card %d: %v", i, err)
			continue
		}
		if !ok {
			log.Printf("   Skipping card %d - no %s found", i, MarkerSelector)
			continue
		}
		jobs = append(jobs, job)
	}

	if len(jobs) == 0 {
		s.screenshots.CaptureAndLog(page, fmt.Sprintf("No listings extracted from %s", target))
	}

	return jobs, nil
}

// abort prefers the context error when the failure came from our own cancellation
func (s *IndeedScraper) abort(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w (%v)", ctxErr, err)
	}
	return err
}
