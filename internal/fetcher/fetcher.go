package fetcher

import "context"

// Sentinel values returned when the page was reachable but the expected
// element was missing (site layout drift, region variance, CAPTCHA wall).
// They are a soft miss, distinct from a hard fetch failure.
const (
	TitleNotFound = "Title not found"
	PriceNotFound = "Price not found"
)

// TimeLayout is the format of snapshot and price-point timestamps.
const TimeLayout = "2006-01-02 15:04:05"

// ProductSnapshot is a single point-in-time scrape result for one URL.
// Price is the raw string as rendered by the page; it is never parsed here.
type ProductSnapshot struct {
	Title     string
	Price     string
	ImageURL  string
	Timestamp string
}

// HasTitle reports whether the title was actually extracted.
func (s *ProductSnapshot) HasTitle() bool {
	return s.Title != "" && s.Title != TitleNotFound
}

// HasPrice reports whether the price is usable for history recording.
func (s *ProductSnapshot) HasPrice() bool {
	return s.Price != "" && s.Price != PriceNotFound
}

// Fetcher retrieves a product page and extracts a snapshot. A nil error with
// sentinel fields means "page fetched, element missing"; an error means the
// page could not be reached or parsed at all.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*ProductSnapshot, error)
}
