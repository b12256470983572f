package browser

import (
	"log"
	"os"
	"path/filepath"

	"github.com/playwright-community/playwright-go"
)

// ScreenshotDebugger writes a debug screenshot to a fixed path, overwriting the last one
type ScreenshotDebugger struct {
	path string
}

func NewScreenshotDebugger(path string) *ScreenshotDebugger {
	return &ScreenshotDebugger{path: path}
}

func (s *ScreenshotDebugger) CaptureAndLog(page playwright.Page, message string) error {
	if s == nil || s.path == "" {
		return nil
	}
	log.Printf("📸 %s", message)

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Printf("⚠️ Failed to create screenshot directory: %v", err)
			return err
		}
	}

	_, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(s.path),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		log.Printf("⚠️ Failed to capture screenshot: %v", err)
		return err
	}

	log.Printf("   Screenshot saved: %s", s.path)
	return nil
}
