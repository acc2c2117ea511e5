package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// AmazonFetcher scrapes Amazon product pages over plain HTTP.
type AmazonFetcher struct {
	client         *http.Client
	userAgent      string
	acceptLanguage string
	logger         *zap.Logger
	now            func() time.Time
}

func NewAmazonFetcher(timeout time.Duration, userAgent, acceptLanguage string, logger *zap.Logger) *AmazonFetcher {
	return &AmazonFetcher{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		userAgent:      userAgent,
		acceptLanguage: acceptLanguage,
		logger:         logger.Named("fetcher"),
		now:            time.Now,
	}
}

func (f *AmazonFetcher) Fetch(ctx context.Context, pageURL string) (*ProductSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept-Language", f.acceptLanguage)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageURL, err)
	}

	snap := &ProductSnapshot{
		Title:     extractTitle(doc),
		Price:     extractPrice(doc),
		Timestamp: f.now().Format(TimeLayout),
	}
	if src, ok := doc.Find("img#landingImage").First().Attr("src"); ok {
		snap.ImageURL = src
	}

	if !snap.HasTitle() || !snap.HasPrice() {
		f.logger.Debug("partial extraction",
			zap.String("url", pageURL),
			zap.Bool("title", snap.HasTitle()),
			zap.Bool("price", snap.HasPrice()))
	}
	return snap, nil
}

func extractTitle(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("#productTitle").First().Text())
	if title == "" {
		return TitleNotFound
	}
	return title
}

func extractPrice(doc *goquery.Document) string {
	price := strings.TrimSpace(doc.Find("span.a-price-whole").First().Text())
	if price == "" {
		price = strings.TrimSpace(doc.Find("span.a-offscreen").First().Text())
	}
	if price == "" {
		return PriceNotFound
	}
	return price
}
