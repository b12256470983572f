package indeed

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go-jobscrape-server/internal/scraper"

	"golang.org/x/text/unicode/norm"
)

var errNoMatch = errors.New("no element matches selector")

// Node is the part of a DOM element the card extraction needs.
// It is backed by a playwright ElementHandle or a goquery Selection.
type Node interface {
	//Find returns the first descendant matching selector, or nil when there is none
	Find(selector string) (Node, error)
	Text() (string, error)
	//Attr reports whether the attribute is present
	Attr(name string) (string, bool, error)
}

// field is the outcome of reading one text value
type field struct {
	value string
	err   error
}

func (f field) or(fallback string) string {
	if f.err != nil {
		return fallback
	}
	return f.value
}

func readText(n Node, selector string) field {
	child, err := n.Find(selector)
	if err != nil {
		return field{err: err}
	}
	if child == nil {
		return field{err: fmt.Errorf("%s: %w", selector, errNoMatch)}
	}
	text, err := child.Text()
	if err != nil {
		return field{err: err}
	}
	return field{value: cleanText(text)}
}

func cleanText(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// ExtractCard reads one result card.
// ok is false when the card has no marker element and must be skipped.
// Unreadable text fields become scraper.NotAvailable; an error means the card is unusable.
func ExtractCard(card Node, base *url.URL) (job scraper.Job, ok bool, err error) {
	marker, err := card.Find(MarkerSelector)
	if err != nil {
		return scraper.Job{}, false, fmt.Errorf("find marker: %w", err)
	}
	if marker == nil {
		return scraper.Job{}, false, nil
	}

	job = scraper.Job{
		Title:    readText(marker, TitleSelector).or(scraper.NotAvailable),
		Company:  readText(marker, CompanySelector).or(scraper.NotAvailable),
		Location: readText(marker, LocationSelector).or(scraper.NotAvailable),
	}

	link, err := readLink(marker, base)
	if err != nil {
		return scraper.Job{}, false, err
	}
	job.Link = link

	return job, true, nil
}

func readLink(marker Node, base *url.URL) (*string, error) {
	anchor, err := marker.Find(LinkSelector)
	if err != nil {
		return nil, fmt.Errorf("find link: %w", err)
	}
	if anchor == nil {
		return nil, nil
	}

	href, present, err := anchor.Attr("href")
	if err != nil {
		return nil, fmt.Errorf("read href: %w", err)
	}
	if !present || href == "" {
		return nil, nil
	}

	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return nil, fmt.Errorf("invalid href %q: %w", href, err)
	}
	abs := ref.String()
	if base != nil {
		abs = base.ResolveReference(ref).String()
	}
	return &abs, nil
}
