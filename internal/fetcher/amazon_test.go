package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const productPage = `<html><body>
<span id="productTitle">  Widget Pro 3000  </span>
<span class="a-price-whole">19.99</span>
<img id="landingImage" src="https://img.example/widget.png">
</body></html>`

const offscreenPricePage = `<html><body>
<span id="productTitle">Widget Pro 3000</span>
<span class="a-offscreen">$24.50</span>
</body></html>`

const bareProductPage = `<html><body><p>robot check</p></body></html>`

func newTestFetcher(t *testing.T) *AmazonFetcher {
	t.Helper()
	f := NewAmazonFetcher(2*time.Second, "test-agent", "en-US", zap.NewNop())
	f.now = func() time.Time {
		return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	}
	return f
}

func TestFetchExtractsSnapshot(t *testing.T) {
	var gotUA, gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		w.Write([]byte(productPage))
	}))
	defer srv.Close()

	f := newTestFetcher(t)
	snap, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, "Widget Pro 3000", snap.Title)
	require.Equal(t, "19.99", snap.Price)
	require.Equal(t, "https://img.example/widget.png", snap.ImageURL)
	require.Equal(t, "2024-01-01 12:00:00", snap.Timestamp)
	require.True(t, snap.HasPrice())

	require.Equal(t, "test-agent", gotUA)
	require.Equal(t, "en-US", gotLang)
}

func TestFetchFallsBackToOffscreenPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(offscreenPricePage))
	}))
	defer srv.Close()

	f := newTestFetcher(t)
	snap, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, "$24.50", snap.Price)
}

func TestFetchReturnsSentinelsOnPartialMiss(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(bareProductPage))
	}))
	defer srv.Close()

	f := newTestFetcher(t)
	snap, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err, "a reachable page with missing elements is a soft miss, not a failure")
	require.Equal(t, TitleNotFound, snap.Title)
	require.Equal(t, PriceNotFound, snap.Price)
	require.False(t, snap.HasPrice())
	require.False(t, snap.HasTitle())
}

func TestFetchFailsOnErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := newTestFetcher(t)
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
}

func TestFetchFailsOnUnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	f := newTestFetcher(t)
	_, err := f.Fetch(context.Background(), addr)
	require.Error(t, err)
}
