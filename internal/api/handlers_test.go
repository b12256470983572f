package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"go-jobscrape-server/internal/scraper"
	"go-jobscrape-server/internal/scraper/indeed"
	"go-jobscrape-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeScraper struct {
	mu     sync.Mutex
	inputs []string
	jobs   []scraper.Job
	err    error
}

func (f *fakeScraper) Name() string { return "fake" }

func (f *fakeScraper) Scrape(_ context.Context, urlOrKeyword string) ([]scraper.Job, error) {
	f.mu.Lock()
	f.inputs = append(f.inputs, urlOrKeyword)
	f.mu.Unlock()
	return f.jobs, f.err
}

type fakeNotifier struct {
	mu     sync.Mutex
	jobs   []scraper.Job
	errors []error
}

func (f *fakeNotifier) SendError(err error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors = append(f.errors, err)
	return nil
}

func (f *fakeNotifier) NotifyJobs(_ context.Context, jobs []scraper.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append(f.jobs, jobs...)
	return nil
}

type scrapeResponse struct {
	Success *bool         `json:"success"`
	Count   int           `json:"count"`
	Jobs    []scraper.Job `json:"jobs"`
	Error   string        `json:"error"`
}

func link(s string) *string { return &s }

func get(t *testing.T, r http.Handler, target string) (*httptest.ResponseRecorder, map[string]json.RawMessage, scrapeResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw), w.Body.String())
	var resp scrapeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, raw, resp
}

func TestScrape_MissingInput(t *testing.T) {
	fs := &fakeScraper{}
	r := NewRouter(NewHandler(fs, store.NewJobStore(), nil))

	w, raw, resp := get(t, r, "/api/scrape")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "URL or keywords are required", resp.Error)
	assert.NotContains(t, raw, "jobs")
	assert.Empty(t, fs.inputs)
}

func TestScrape_URLTakesPrecedence(t *testing.T) {
	fs := &fakeScraper{}
	r := NewRouter(NewHandler(fs, store.NewJobStore(), nil))

	w, _, _ := get(t, r, "/api/scrape?keywords=golang&url=https%3A%2F%2Fwww.indeed.com%2Fjobs%3Fq%3Drust")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _, _ = get(t, r, "/api/scrape?keywords=backend%20engineer")
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, []string{"https://www.indeed.com/jobs?q=rust", "backend engineer"}, fs.inputs)
}

func TestScrape_SuccessReportsNewlyScraped(t *testing.T) {
	jobs := store.NewJobStore()
	jobs.Add([]scraper.Job{{Title: "Existing", Link: link("https://x/1")}})

	fs := &fakeScraper{jobs: []scraper.Job{
		{Title: "Dup", Company: "Acme", Location: "Remote", Link: link("https://x/1")},
		{Title: "New", Company: "Globex", Location: "Austin", Link: link("https://x/2")},
	}}
	notifier := &fakeNotifier{}
	h := NewHandler(fs, jobs, notifier)
	r := NewRouter(h)

	w, _, resp := get(t, r, "/api/scrape?keywords=golang")
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, resp.Success)
	assert.True(t, *resp.Success)
	//duplicates are still reported
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Jobs, 2)
	assert.Equal(t, "Dup", resp.Jobs[0].Title)

	assert.Equal(t, 2, jobs.Len())

	h.Wait()
	require.Len(t, notifier.jobs, 1)
	assert.Equal(t, "New", notifier.jobs[0].Title)
}

func TestScrape_EmptyResultIsArray(t *testing.T) {
	r := NewRouter(NewHandler(&fakeScraper{}, store.NewJobStore(), nil))

	w, raw, resp := get(t, r, "/api/scrape?keywords=nothing")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", string(raw["jobs"]))
	assert.Equal(t, 0, resp.Count)
}

func TestScrape_Failure(t *testing.T) {
	jobs := store.NewJobStore()
	fs := &fakeScraper{err: fmt.Errorf("%w: page.goto: Timeout 60000ms exceeded.", scraper.ErrNavigation)}
	r := NewRouter(NewHandler(fs, jobs, nil))

	w, raw, resp := get(t, r, "/api/scrape?keywords=golang")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotNil(t, resp.Success)
	assert.False(t, *resp.Success)
	assert.True(t, strings.HasPrefix(resp.Error, "Failed to scrape jobs: "))
	assert.Contains(t, resp.Error, "Timeout 60000ms exceeded")
	assert.NotContains(t, raw, "jobs")
	assert.Equal(t, 0, jobs.Len())
}

func TestScrape_FailureIsReported(t *testing.T) {
	fs := &fakeScraper{err: fmt.Errorf("%w: %s", scraper.ErrLandmark, indeed.ContainerSelector)}
	notifier := &fakeNotifier{}
	h := NewHandler(fs, store.NewJobStore(), notifier)

	w, _, _ := get(t, NewRouter(h), "/api/scrape?keywords=golang")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	h.Wait()
	require.Len(t, notifier.errors, 1)
	assert.ErrorIs(t, notifier.errors[0], scraper.ErrLandmark)
	assert.Contains(t, notifier.errors[0].Error(), `"golang"`)
	assert.Empty(t, notifier.jobs)
}

func TestScrape_CancelledIsNotReported(t *testing.T) {
	fs := &fakeScraper{err: context.Canceled}
	notifier := &fakeNotifier{}
	h := NewHandler(fs, store.NewJobStore(), notifier)

	w, _, _ := get(t, NewRouter(h), "/api/scrape?keywords=golang")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	h.Wait()
	assert.Empty(t, notifier.errors)
}

func TestJobs_ListsStore(t *testing.T) {
	jobs := store.NewJobStore()
	jobs.Add([]scraper.Job{
		{Title: "first", Link: link("https://x/1")},
		{Title: "second", Link: nil},
	})
	r := NewRouter(NewHandler(&fakeScraper{}, jobs, nil))

	w, raw, resp := get(t, r, "/api/jobs")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Jobs, 2)
	assert.Equal(t, "first", resp.Jobs[0].Title)
	assert.Nil(t, resp.Jobs[1].Link)
	assert.Contains(t, string(raw["jobs"]), `"link":null`)
}

func TestHealth(t *testing.T) {
	r := NewRouter(NewHandler(&fakeScraper{}, store.NewJobStore(), nil))
	w, raw, _ := get(t, r, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `"healthy"`, string(raw["status"]))
}

func TestMiddleware_CorsAndRequestID(t *testing.T) {
	r := NewRouter(NewHandler(&fakeScraper{}, store.NewJobStore(), nil))

	req := httptest.NewRequest(http.MethodOptions, "/api/scrape", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
}

const resultsHTML = `<!DOCTYPE html><html><body>
<div id="mosaic-provider-jobcards"><ul>
<li class="css-1ac2h1w"><div class="job_seen_beacon"><h2><a href="/rc/clk?jk=1">Backend Engineer</a></h2>
<span data-testid="company-name">Acme</span><div data-testid="text-location">Remote</div></div></li>
<li class="css-1ac2h1w"><div class="job_seen_beacon"><h2><a href="/rc/clk?jk=2">Backend Engineer II</a></h2>
<span data-testid="company-name">Globex</span><div data-testid="text-location">Austin, TX</div></div></li>
<li class="css-1ac2h1w"><div class="cardOutline"><a href="/rc/clk?jk=ad">Sponsored</a></div></li>
<li class="css-1ac2h1w"><div class="job_seen_beacon"><h2><a href="/rc/clk?jk=3">Senior Backend Engineer</a></h2>
<span data-testid="company-name">Initech</span><div data-testid="text-location">New York, NY</div></div></li>
</ul></div></body></html>`

func TestScrape_EndToEndStaticEngine(t *testing.T) {
	var gotQuery string
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		gotQuery = r.URL.Query().Get("q")
		mu.Unlock()
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(resultsHTML))
	}))
	defer srv.Close()

	jobs := store.NewJobStore()
	s := indeed.NewStaticScraper(indeed.Options{SearchURLTemplate: srv.URL + "/jobs?q={keywords}&l="})
	r := NewRouter(NewHandler(scraper.Limited(s, 2), jobs, nil))

	w, _, resp := get(t, r, "/api/scrape?keywords=backend%20engineer")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.True(t, *resp.Success)
	assert.Equal(t, 3, resp.Count)
	require.Len(t, resp.Jobs, 3)
	assert.Equal(t, srv.URL+"/rc/clk?jk=1", resp.Jobs[0].LinkValue())
	assert.Equal(t, 3, jobs.Len())

	mu.Lock()
	assert.Equal(t, "backend engineer", gotQuery)
	mu.Unlock()

	//same page again: reported again, stored once
	w, _, resp = get(t, r, "/api/scrape?keywords=backend%20engineer")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, 3, jobs.Len())
}

func TestScrape_EndToEndLandmarkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>layout changed</body></html>"))
	}))
	defer srv.Close()

	s := indeed.NewStaticScraper(indeed.Options{SearchURLTemplate: srv.URL + "/jobs?q={keywords}"})
	r := NewRouter(NewHandler(s, store.NewJobStore(), nil))

	w, _, resp := get(t, r, "/api/scrape?keywords=golang")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, resp.Error, scraper.ErrLandmark.Error())
}
