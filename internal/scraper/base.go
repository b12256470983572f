// Define the listing model and the interface every search engine implements

package scraper

import (
	"context"
	"errors"
)

// NotAvailable is substituted for any text field that could not be read
const NotAvailable = "N/A"

var (
	ErrNavigation = errors.New("navigation failed")
	ErrLandmark   = errors.New("results landmark not found")
	ErrBrowser    = errors.New("browser session failed")
)

// Job is one listing found on a results page. Link is nil when the card had no href.
type Job struct {
	Title    string  `json:"title"`
	Company  string  `json:"company"`
	Location string  `json:"location"`
	Link     *string `json:"link"`
}

// LinkValue returns the link or "" when absent
func (j Job) LinkValue() string {
	if j.Link == nil {
		return ""
	}
	return *j.Link
}

// Scraper defines the interface that all search engines must implement
type Scraper interface {
	//Scrape a search term or absolute URL
	Scrape(ctx context.Context, urlOrKeyword string) ([]Job, error)

	//Name is the engine name (browser, static)
	Name() string
}
