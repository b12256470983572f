package store

import (
	"log"
	"sync"

	"go-jobscrape-server/internal/scraper"
)

// JobStore keeps every listing found since the process started, in discovery order.
// No two stored listings share a non-nil link; listings without a link are always kept.
type JobStore struct {
	mu   sync.Mutex
	jobs []scraper.Job
	seen map[string]struct{}
}

func NewJobStore() *JobStore {
	return &JobStore{
		seen: make(map[string]struct{}),
	}
}

// Add appends the listings whose link is not stored yet and returns the ones it inserted.
// The check and the append happen under one lock so concurrent callers cannot both insert a link.
func (s *JobStore) Add(jobs []scraper.Job) []scraper.Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	var inserted []scraper.Job
	for _, job := range jobs {
		if job.Link != nil {
			if _, exists := s.seen[*job.Link]; exists {
				continue
			}
			s.seen[*job.Link] = struct{}{}
		}
		s.jobs = append(s.jobs, job)
		inserted = append(inserted, job)
	}

	if len(inserted) > 0 {
		log.Printf("💾 Stored %d new jobs (%d total)", len(inserted), len(s.jobs))
	}
	return inserted
}

// All returns a copy of the stored listings
func (s *JobStore) All() []scraper.Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]scraper.Job, len(s.jobs))
	copy(out, s.jobs)
	return out
}

func (s *JobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}
