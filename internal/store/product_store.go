package store

import (
	"context"

	"github.com/harshajxn/PricePulse/internal/db_model"
)

// ProductStore is the persistence boundary for the scrape-and-track pipeline.
//
// UpsertProduct must be atomic with respect to concurrent callers on the same
// URL: registration and the scheduler can race, and the row converges to
// whichever write lands last while created_at stays fixed at first insert.
// AppendPricePoint is insert-only and does not require the URL to be tracked.
type ProductStore interface {
	// UpsertProduct inserts or refreshes a tracked product and returns its
	// stable identifier (the URL itself).
	UpsertProduct(ctx context.Context, url, title, imageURL string) (string, error)

	// ListTrackedURLs returns a snapshot of every tracked URL.
	ListTrackedURLs(ctx context.Context) ([]string, error)

	// GetDetails returns the tracked product for url, or ErrNotFound.
	GetDetails(ctx context.Context, url string) (*db_model.TrackedProduct, error)

	// AppendPricePoint records one immutable price observation.
	AppendPricePoint(ctx context.Context, url, price, timestamp string) error

	// GetPriceHistory returns all points for url ascending by timestamp,
	// ties broken by insertion order. Empty history is not an error.
	GetPriceHistory(ctx context.Context, url string) ([]db_model.PricePoint, error)

	Close() error
}
