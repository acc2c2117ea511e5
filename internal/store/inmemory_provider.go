package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/harshajxn/PricePulse/internal/db_model"
	"github.com/harshajxn/PricePulse/internal/store/shared"
)

// InMemoryProvider keeps tracked products and price history in process memory.
// It is the default backend when no database is configured and the backend
// used by tests.
type InMemoryProvider struct {
	mu       sync.RWMutex
	products map[string]*db_model.TrackedProduct
	history  map[string][]db_model.PricePoint
	nextID   uint64
}

func NewInMemoryProvider() *InMemoryProvider {
	return &InMemoryProvider{
		products: make(map[string]*db_model.TrackedProduct),
		history:  make(map[string][]db_model.PricePoint),
		nextID:   1,
	}
}

func (m *InMemoryProvider) UpsertProduct(ctx context.Context, url, title, imageURL string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if p, ok := m.products[url]; ok {
		p.Title = title
		p.ImageURL = imageURL
		p.LastCheckedAt = now
		return url, nil
	}

	m.products[url] = &db_model.TrackedProduct{
		ID:            m.nextID,
		URL:           url,
		Title:         title,
		ImageURL:      imageURL,
		CreatedAt:     now,
		LastCheckedAt: now,
	}
	m.nextID++
	return url, nil
}

func (m *InMemoryProvider) ListTrackedURLs(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	urls := make([]string, 0, len(m.products))
	for url := range m.products {
		urls = append(urls, url)
	}
	return urls, nil
}

func (m *InMemoryProvider) GetDetails(ctx context.Context, url string) (*db_model.TrackedProduct, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.products[url]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *InMemoryProvider) AppendPricePoint(ctx context.Context, url, price, timestamp string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.history[url] = append(m.history[url], db_model.PricePoint{
		Timestamp: timestamp,
		Price:     price,
	})
	return nil
}

func (m *InMemoryProvider) GetPriceHistory(ctx context.Context, url string) ([]db_model.PricePoint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	points := append([]db_model.PricePoint{}, m.history[url]...)
	// Timestamps sort lexically because of their fixed layout; the stable
	// sort preserves insertion order for ties.
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Timestamp < points[j].Timestamp
	})
	return points, nil
}

func (m *InMemoryProvider) Close() error {
	return nil
}
