package main

import (
	"fmt"
	"log"
	"os"

	"go-jobscrape-server/internal/browser"
	"go-jobscrape-server/internal/config"
	"go-jobscrape-server/internal/scraper/indeed"

	"github.com/playwright-community/playwright-go"
)

// Opens the search page the way the scraper does and saves what the browser sees
func main() {
	fmt.Println("🌐 Testing Browser Manager...")

	cfg := config.Load()
	input := "golang"
	if len(os.Args) > 1 {
		input = os.Args[1]
	}
	target := indeed.BuildSearchURL(cfg.SearchURLTemplate, input)

	ua := cfg.UserAgent
	if ua == "" {
		ua = indeed.DefaultUserAgent
	}
	pm, err := browser.NewPlaywright(browser.Options{Headless: cfg.IsHeadless(), UserAgent: ua, Install: cfg.InstallBrowsers})
	if err != nil {
		log.Fatalf("Failed to create Playwright: %v", err)
	}
	defer pm.Close()
	fmt.Println("✅ Playwright started")

	cookies, err := browser.LoadCookies(cfg.CookiesPath)
	if err != nil {
		log.Printf("⚠️ Could not load cookies: %v", err)
	}

	session, err := pm.NewSession(cookies)
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}
	defer session.Close()
	fmt.Println("✅ Browser session created")

	fmt.Printf("🔍 Navigating to %s...\n", target)
	if _, err := session.Page().Goto(target, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(cfg.NavigationTimeout.Milliseconds())),
	}); err != nil {
		log.Fatalf("Failed to navigate: %v", err)
	}

	title, _ := session.Page().Title()
	fmt.Printf("✅ Page title: %s\n", title)

	cards, err := session.Page().QuerySelectorAll(indeed.CardSelector)
	if err != nil {
		log.Printf("Failed to query cards: %v", err)
	}
	fmt.Printf("📦 %d job cards on page\n", len(cards))

	if err := browser.NewScreenshotDebugger(cfg.ScreenshotPath).CaptureAndLog(session.Page(), "Saving browser view"); err != nil {
		log.Printf("Failed to take screenshot: %v", err)
	}
	fmt.Println("✨ Test complete!")
}
