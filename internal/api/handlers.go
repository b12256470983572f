package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"go-jobscrape-server/internal/scraper"
	"go-jobscrape-server/internal/store"

	"github.com/gin-gonic/gin"
)

// Notifier is told about listings that were not stored before and about failed scrapes
type Notifier interface {
	NotifyJobs(ctx context.Context, jobs []scraper.Job) error
	SendError(err error) error
}

type Handler struct {
	scraper  scraper.Scraper
	store    *store.JobStore
	notifier Notifier

	notifyTimeout time.Duration
	wg            sync.WaitGroup
}

// NewHandler wires the scrape endpoint. notifier may be nil.
func NewHandler(s scraper.Scraper, jobs *store.JobStore, notifier Notifier) *Handler {
	return &Handler{
		scraper:       s,
		store:         jobs,
		notifier:      notifier,
		notifyTimeout: 2 * time.Minute,
	}
}

// Health is the liveness probe
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Job scrape API is running!",
		"status":  "healthy",
		"engine":  h.scraper.Name(),
	})
}

// Scrape handles GET /api/scrape?url=...|keywords=...
func (h *Handler) Scrape(c *gin.Context) {
	urlOrKeyword := c.Query("url")
	if urlOrKeyword == "" {
		urlOrKeyword = c.Query("keywords")
	}
	if urlOrKeyword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL or keywords are required"})
		return
	}

	reqID := requestID(c)
	log.Printf("🔍 [%s] Starting scrape for: %s", reqID, urlOrKeyword)

	newJobs, err := h.scraper.Scrape(c.Request.Context(), urlOrKeyword)
	if err != nil {
		log.Printf("❌ [%s] Scraping error: %v", reqID, err)
		h.notifyError(reqID, fmt.Errorf("scrape %q: %w", urlOrKeyword, err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to scrape jobs: " + err.Error(),
			"success": false,
		})
		return
	}
	if newJobs == nil {
		newJobs = []scraper.Job{}
	}
	log.Printf("✅ [%s] Scraping complete. Found %d jobs.", reqID, len(newJobs))

	inserted := h.store.Add(newJobs)
	h.notify(reqID, inserted)

	//count and jobs describe this scrape, not what survived dedup
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(newJobs),
		"jobs":    newJobs,
	})
}

// Jobs handles GET /api/jobs, everything stored since startup
func (h *Handler) Jobs(c *gin.Context) {
	all := h.store.All()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(all),
		"jobs":    all,
	})
}

func (h *Handler) notify(reqID string, jobs []scraper.Job) {
	if h.notifier == nil || len(jobs) == 0 {
		return
	}
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), h.notifyTimeout)
		defer cancel()
		if err := h.notifier.NotifyJobs(ctx, jobs); err != nil {
			log.Printf("⚠️ [%s] Failed to send notifications: %v", reqID, err)
		}
	}()
}

func (h *Handler) notifyError(reqID string, err error) {
	//the client went away, nothing is wrong with the page
	if h.notifier == nil || errors.Is(err, context.Canceled) {
		return
	}
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		if serr := h.notifier.SendError(err); serr != nil {
			log.Printf("⚠️ [%s] Failed to report error: %v", reqID, serr)
		}
	}()
}

// Wait blocks until in-flight notifications finish
func (h *Handler) Wait() {
	h.wg.Wait()
}
