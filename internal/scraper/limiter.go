package scraper

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"
)

type limited struct {
	next Scraper
	sem  *semaphore.Weighted
}

// Limited caps how many scrapes of next may run at once.
// Each scrape launches its own browser process, so the cap bounds process count.
// n <= 0 returns next unchanged.
func Limited(next Scraper, n int64) Scraper {
	if n <= 0 {
		return next
	}
	return &limited{
		next: next,
		sem:  semaphore.NewWeighted(n),
	}
}

func (l *limited) Name() string {
	return l.next.Name()
}

func (l *limited) Scrape(ctx context.Context, urlOrKeyword string) ([]Job, error) {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("waiting for a free browser slot: %w", err)
	}
	defer l.sem.Release(1)

	return l.next.Scrape(ctx, urlOrKeyword)
}
