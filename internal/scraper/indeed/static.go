package indeed

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"

	"go-jobscrape-server/internal/scraper"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
)

// StaticScraper fetches the results page over plain HTTP and walks the served HTML.
// No JavaScript runs, so it only sees cards rendered server side.
type StaticScraper struct {
	opts Options
}

func NewStaticScraper(opts Options) *StaticScraper {
	return &StaticScraper{opts: opts.withDefaults()}
}

func (s *StaticScraper) Name() string {
	return "static"
}

func (s *StaticScraper) Scrape(ctx context.Context, urlOrKeyword string) ([]scraper.Job, error) {
	target := BuildSearchURL(s.opts.SearchURLTemplate, urlOrKeyword)
	//links resolve against what we asked for, even if the server redirects
	base, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid target %q: %w", scraper.ErrNavigation, target, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	//fresh collector per call, nothing is shared between requests
	c := colly.NewCollector(
		colly.UserAgent(s.opts.UserAgent),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(s.opts.NavigationTimeout)

	var (
		doc  *goquery.Selection
		body []byte
	)
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})
	c.OnHTML("html", func(e *colly.HTMLElement) {
		doc = e.DOM
	})

	log.Printf("🌐 Fetching %s", target)
	if err := c.Visit(target); err != nil {
		return nil, fmt.Errorf("%w: %w", scraper.ErrNavigation, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: %s returned no HTML document", scraper.ErrNavigation, target)
	}

	for _, selector := range []string{ContainerSelector, ListSelector} {
		if doc.Find(selector).Length() == 0 {
			return nil, fmt.Errorf("%w: %s", scraper.ErrLandmark, selector)
		}
	}

	cards := doc.Find(CardSelector)
	log.Printf("📦 Found %d job cards", cards.Length())

	jobs := make([]scraper.Job, 0, cards.Length())
	var loopErr error
	cards.EachWithBreak(func(i int, card *goquery.Selection) bool {
		if loopErr = ctx.Err(); loopErr != nil {
			return false
		}
		job, ok, err := ExtractCard(selectionNode{s: card}, base)
		if err != nil {
			log.Printf("⚠️ Error processing job card %d: %v", i, err)
			return true
		}
		if !ok {
			log.Printf("   Skipping card %d - no %s found", i, MarkerSelector)
			return true
		}
		jobs = append(jobs, job)
		return true
	})
	if loopErr != nil {
		return nil, loopErr
	}

	if len(jobs) == 0 {
		s.dumpHTML(target, body)
	}

	return jobs, nil
}

func (s *StaticScraper) dumpHTML(target string, body []byte) {
	if s.opts.DebugHTMLPath == "" {
		return
	}
	log.Printf("📸 No listings extracted from %s", target)
	if dir := filepath.Dir(s.opts.DebugHTMLPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Printf("⚠️ Failed to create debug directory: %v", err)
			return
		}
	}
	if err := os.WriteFile(s.opts.DebugHTMLPath, body, 0644); err != nil {
		log.Printf("⚠️ Failed to write debug page: %v", err)
		return
	}
	log.Printf("   Page saved: %s", s.opts.DebugHTMLPath)
}
