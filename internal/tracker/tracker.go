package tracker

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/harshajxn/PricePulse/internal/db_model"
	"github.com/harshajxn/PricePulse/internal/fetcher"
	"github.com/harshajxn/PricePulse/internal/store"
)

type Status string

const (
	StatusTracked     Status = "tracked"
	StatusFetchFailed Status = "fetch_failed"
)

// RegisterResult is the outcome of a register-or-refresh call. Snapshot is
// set only when Status is StatusTracked.
type RegisterResult struct {
	Status   Status
	Snapshot *fetcher.ProductSnapshot
}

// ProductHistory is the combined read view served to the API: last known
// metadata plus the ordered price series. History is never nil.
type ProductHistory struct {
	Title    string
	ImageURL string
	History  []db_model.PricePoint
}

// Tracker bridges externally supplied URLs to first-class tracking. Both the
// HTTP registration path and the scheduler funnel through RegisterOrRefresh,
// so the two writers share the same upsert and append semantics.
type Tracker struct {
	store  store.ProductStore
	fetch  fetcher.Fetcher
	logger *zap.Logger
}

func New(st store.ProductStore, f fetcher.Fetcher, logger *zap.Logger) *Tracker {
	return &Tracker{
		store:  st,
		fetch:  f,
		logger: logger.Named("tracker"),
	}
}

// RegisterOrRefresh fetches the product page and records the observation.
// A fetch failure touches neither store and is not an error: the caller
// decides how to surface it. A missing price still refreshes metadata but
// skips the history point. Storage failures propagate.
func (t *Tracker) RegisterOrRefresh(ctx context.Context, url string) (*RegisterResult, error) {
	snap, err := t.fetch.Fetch(ctx, url)
	if err != nil {
		t.logger.Warn("fetch failed", zap.String("url", url), zap.Error(err))
		return &RegisterResult{Status: StatusFetchFailed}, nil
	}

	if _, err := t.store.UpsertProduct(ctx, url, snap.Title, snap.ImageURL); err != nil {
		return nil, fmt.Errorf("upsert product %s: %w", url, err)
	}

	if snap.HasPrice() {
		if err := t.store.AppendPricePoint(ctx, url, snap.Price, snap.Timestamp); err != nil {
			return nil, fmt.Errorf("append price point for %s: %w", url, err)
		}
	} else {
		t.logger.Info("price not found on page, keeping metadata only", zap.String("url", url))
	}

	return &RegisterResult{Status: StatusTracked, Snapshot: snap}, nil
}

// GetHistory returns the tracked product's metadata and ordered price series.
// Unknown URLs yield store.ErrNotFound.
func (t *Tracker) GetHistory(ctx context.Context, url string) (*ProductHistory, error) {
	details, err := t.store.GetDetails(ctx, url)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get details for %s: %w", url, err)
	}

	history, err := t.store.GetPriceHistory(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("get price history for %s: %w", url, err)
	}
	if history == nil {
		history = []db_model.PricePoint{}
	}

	return &ProductHistory{
		Title:    details.Title,
		ImageURL: details.ImageURL,
		History:  history,
	}, nil
}
