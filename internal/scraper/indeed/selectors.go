package indeed

// Results page landmarks. A layout change on the site breaks these silently.
const (
	ContainerSelector = "#mosaic-provider-jobcards"
	ListSelector      = ContainerSelector + " ul"
	CardSelector      = ListSelector + " li.css-1ac2h1w"

	//scoped to a card
	MarkerSelector   = ".job_seen_beacon"
	TitleSelector    = "a"
	CompanySelector  = `span[data-testid="company-name"]`
	LocationSelector = `div[data-testid="text-location"]`
	LinkSelector     = "a"
)

const (
	KeywordPlaceholder = "{keywords}"
	DefaultSearchURL   = "https://www.indeed.com/jobs?q=" + KeywordPlaceholder + "&l="
	DefaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/98.0.4758.102 Safari/537.36"
)
