package browser

import (
	"fmt"
	"log"
	"sync"

	"github.com/playwright-community/playwright-go"
)

type Options struct {
	Headless  bool
	UserAgent string
	//download the chromium build before starting the driver
	Install bool
}

// PlaywrightManager owns the playwright driver. Browsers are launched per session.
type PlaywrightManager struct {
	pw   *playwright.Playwright
	opts Options
}

func NewPlaywright(opts Options) (*PlaywrightManager, error) {
	if opts.Install {
		log.Println("⬇️ Installing playwright chromium...")
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
			return nil, fmt.Errorf("could not install playwright: %w", err)
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	return &PlaywrightManager{
		pw:   pw,
		opts: opts,
	}, nil
}

// Session is a short-lived browser process with one context and one page.
// Close is safe to call more than once and from another goroutine.
type Session struct {
	page      playwright.Page
	browser   playwright.Browser
	closeOnce sync.Once
	closeErr  error
}

// NewSession launches a fresh browser. The caller must Close it.
func (pm *PlaywrightManager) NewSession(cookies []playwright.OptionalCookie) (*Session, error) {
	b, err := pm.pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(pm.opts.Headless),
	})
	if err != nil {
		return nil, fmt.Errorf("could not launch browser: %w", err)
	}
	s := &Session{browser: b}

	ctxOpts := playwright.BrowserNewContextOptions{}
	if pm.opts.UserAgent != "" {
		ctxOpts.UserAgent = playwright.String(pm.opts.UserAgent)
	}
	bctx, err := b.NewContext(ctxOpts)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}

	if len(cookies) > 0 {
		if err := bctx.AddCookies(cookies); err != nil {
			s.Close()
			return nil, fmt.Errorf("could not add cookies: %w", err)
		}
	}

	page, err := bctx.NewPage()
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("could not create page: %w", err)
	}
	s.page = page

	return s, nil
}

func (s *Session) Page() playwright.Page {
	return s.page
}

// Close shuts down the browser process, taking the context and page with it
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.browser.Close()
	})
	return s.closeErr
}

// Close stops the playwright driver
func (pm *PlaywrightManager) Close() error {
	if pm.pw == nil {
		return nil
	}
	return pm.pw.Stop()
}
