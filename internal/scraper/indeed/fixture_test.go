package indeed

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func card(title, company, location, href string) string {
	return fmt.Sprintf(`<li class="css-1ac2h1w"><div class="cardOutline"><div class="job_seen_beacon">
	<h2><a href="%s"> %s </a></h2>
	<span data-testid="company-name">%s</span>
	<div data-testid="text-location">%s</div>
</div></div></li>`, href, title, company, location)
}

func cardWithoutMarker(title string) string {
	return fmt.Sprintf(`<li class="css-1ac2h1w"><div class="cardOutline"><a href="/rc/clk?jk=nomarker">%s</a></div></li>`, title)
}

func resultsPage(cards ...string) string {
	return `<!DOCTYPE html><html><head><title>Jobs</title></head><body>
<div id="mosaic-provider-jobcards"><ul>` + strings.Join(cards, "\n") + `</ul></div>
</body></html>`
}

func standardPage() string {
	return resultsPage(
		card("Backend Engineer", "Acme", "Remote", "/rc/clk?jk=1"),
		card("Go Developer", "Globex", "Austin, TX", "/rc/clk?jk=2"),
		cardWithoutMarker("Ghost listing"),
		card("Platform Engineer", "Initech", "New York, NY", "https://www.indeed.com/viewjob?jk=3"),
	)
}

// newFixtureServer serves body as HTML for every path. The returned func reports the last "q" parameter.
func newFixtureServer(t *testing.T, body string, delay time.Duration) (*httptest.Server, func() string) {
	t.Helper()
	var (
		mu        sync.Mutex
		lastQuery string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		lastQuery = r.URL.Query().Get("q")
		mu.Unlock()
		if delay > 0 {
			time.Sleep(delay)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, func() string {
		mu.Lock()
		defer mu.Unlock()
		return lastQuery
	}
}
