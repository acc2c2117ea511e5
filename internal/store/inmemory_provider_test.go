package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUpsertIsIdempotent(t *testing.T) {
	p := NewInMemoryProvider()
	ctx := context.Background()

	id, err := p.UpsertProduct(ctx, "https://example/productA", "Widget", "https://img/1.png")
	require.NoError(t, err)
	require.Equal(t, "https://example/productA", id)

	first, err := p.GetDetails(ctx, "https://example/productA")
	require.NoError(t, err)

	_, err = p.UpsertProduct(ctx, "https://example/productA", "Widget v2", "https://img/2.png")
	require.NoError(t, err)

	urls, err := p.ListTrackedURLs(ctx)
	require.NoError(t, err)
	require.Len(t, urls, 1, "second upsert must not create a second row")

	second, err := p.GetDetails(ctx, "https://example/productA")
	require.NoError(t, err)
	require.Equal(t, "Widget v2", second.Title)
	require.Equal(t, "https://img/2.png", second.ImageURL)
	require.Equal(t, first.CreatedAt, second.CreatedAt, "created_at must stay fixed at first insert")
	require.False(t, second.LastCheckedAt.Before(first.LastCheckedAt), "last_checked_at must be monotonically non-decreasing")
}

func TestGetDetailsNotFound(t *testing.T) {
	p := NewInMemoryProvider()

	_, err := p.GetDetails(context.Background(), "https://example/never-registered")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestHistoryIsAppendOnlyAndOrdered(t *testing.T) {
	p := NewInMemoryProvider()
	ctx := context.Background()
	url := "https://example/productA"

	require.NoError(t, p.AppendPricePoint(ctx, url, "21.00", "2024-01-03 00:00:00"))
	require.NoError(t, p.AppendPricePoint(ctx, url, "19.99", "2024-01-01 00:00:00"))
	require.NoError(t, p.AppendPricePoint(ctx, url, "17.99", "2024-01-02 00:00:00"))

	points, err := p.GetPriceHistory(ctx, url)
	require.NoError(t, err)
	require.Len(t, points, 3)
	require.Equal(t, "19.99", points[0].Price)
	require.Equal(t, "17.99", points[1].Price)
	require.Equal(t, "21.00", points[2].Price)
}

func TestHistoryTiesKeepInsertionOrder(t *testing.T) {
	p := NewInMemoryProvider()
	ctx := context.Background()
	url := "https://example/productA"

	require.NoError(t, p.AppendPricePoint(ctx, url, "first", "2024-01-01 00:00:00"))
	require.NoError(t, p.AppendPricePoint(ctx, url, "second", "2024-01-01 00:00:00"))

	points, err := p.GetPriceHistory(ctx, url)
	require.NoError(t, err)
	require.Equal(t, "first", points[0].Price)
	require.Equal(t, "second", points[1].Price)
}

func TestEmptyHistoryIsNotAnError(t *testing.T) {
	p := NewInMemoryProvider()

	points, err := p.GetPriceHistory(context.Background(), "https://example/untracked")
	require.NoError(t, err)
	require.Empty(t, points)
}

func TestAppendDoesNotRequireTrackedProduct(t *testing.T) {
	p := NewInMemoryProvider()
	ctx := context.Background()

	// Orphaned points are tolerated; there is no FK between the tables.
	require.NoError(t, p.AppendPricePoint(ctx, "https://example/orphan", "9.99", "2024-01-01 00:00:00"))

	points, err := p.GetPriceHistory(ctx, "https://example/orphan")
	require.NoError(t, err)
	require.Len(t, points, 1)
}
