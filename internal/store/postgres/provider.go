package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go"
	_ "github.com/lib/pq"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/harshajxn/PricePulse/internal/db_model"
	"github.com/harshajxn/PricePulse/internal/store/shared"
)

// Provider persists tracked products and price history in PostgreSQL.
type Provider struct {
	db     *sql.DB
	logger *zap.Logger
	cb     *gobreaker.CircuitBreaker

	storeErrors metric.Int64Counter
}

func NewProvider(config shared.DbProviderConfig, logger *zap.Logger, meter metric.Meter) (*Provider, error) {
	pgLogger := logger.Named("postgres")

	connStr, ok := config.ExtraDetails["conn_str"].(string)
	if !ok {
		return nil, fmt.Errorf("conn_str is required for Postgres provider")
	}

	dbConn, err := sql.Open("postgres", connStr)
	if err != nil {
		pgLogger.Error("failed to open Postgres connection", zap.Error(err))
		return nil, fmt.Errorf("failed to open Postgres connection: %w", err)
	}

	if err := dbConn.Ping(); err != nil {
		pgLogger.Error("failed to ping Postgres", zap.Error(err))
		return nil, fmt.Errorf("failed to ping Postgres: %w", err)
	}

	// Automatically create tables if they do not exist
	if _, err := dbConn.Exec(db_model.Schema); err != nil {
		pgLogger.Error("failed to create initial tables", zap.Error(err))
		return nil, fmt.Errorf("failed to create initial tables: %w", err)
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "PostgresDB",
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
	})

	p := &Provider{
		db:     dbConn,
		logger: pgLogger,
		cb:     cb,
	}
	if meter != nil {
		p.storeErrors, _ = meter.Int64Counter("store_errors_total",
			metric.WithDescription("Number of failed product store operations"))
	}

	pgLogger.Info("Postgres provider initialized successfully")
	return p, nil
}

// UpsertProduct inserts or refreshes a tracked product row. The statement is
// atomic, so concurrent registration and scheduler writes on the same URL
// converge to last-write-wins with created_at fixed at first insert.
func (p *Provider) UpsertProduct(ctx context.Context, url, title, imageURL string) (string, error) {
	err := p.execute(ctx, "UpsertProduct", func() error {
		_, err := p.db.ExecContext(ctx, `
			INSERT INTO tracked_products (url, title, image_url, created_at, last_checked_at)
			VALUES ($1, $2, $3, NOW(), NOW())
			ON CONFLICT (url) DO UPDATE SET
				title = EXCLUDED.title,
				image_url = EXCLUDED.image_url,
				last_checked_at = NOW()
		`, url, title, imageURL)
		if err != nil {
			return fmt.Errorf("failed to upsert tracked product: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return url, nil
}

func (p *Provider) ListTrackedURLs(ctx context.Context) ([]string, error) {
	var urls []string
	err := p.execute(ctx, "ListTrackedURLs", func() error {
		rows, err := p.db.QueryContext(ctx, `SELECT url FROM tracked_products`)
		if err != nil {
			return fmt.Errorf("failed to list tracked urls: %w", err)
		}
		defer rows.Close()

		urls = urls[:0]
		for rows.Next() {
			var url string
			if err := rows.Scan(&url); err != nil {
				return fmt.Errorf("failed to scan url: %w", err)
			}
			urls = append(urls, url)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return urls, nil
}

func (p *Provider) GetDetails(ctx context.Context, url string) (*db_model.TrackedProduct, error) {
	// Not-found is resolved inside the breaker callback so a missing row is
	// never counted as a backend failure.
	res, err := p.cb.Execute(func() (interface{}, error) {
		var tp db_model.TrackedProduct
		err := p.db.QueryRowContext(ctx, `
			SELECT id, url, COALESCE(title, ''), COALESCE(image_url, ''), created_at, last_checked_at
			FROM tracked_products
			WHERE url = $1
		`, url).Scan(&tp.ID, &tp.URL, &tp.Title, &tp.ImageURL, &tp.CreatedAt, &tp.LastCheckedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get product details: %w", err)
		}
		return &tp, nil
	})
	if err != nil {
		p.countError(ctx)
		return nil, err
	}
	tp, ok := res.(*db_model.TrackedProduct)
	if !ok || tp == nil {
		return nil, shared.ErrNotFound
	}
	return tp, nil
}

func (p *Provider) AppendPricePoint(ctx context.Context, url, price, timestamp string) error {
	return p.execute(ctx, "AppendPricePoint", func() error {
		_, err := p.db.ExecContext(ctx, `
			INSERT INTO price_history (product_url, price, timestamp)
			VALUES ($1, $2, $3)
		`, url, price, timestamp)
		if err != nil {
			return fmt.Errorf("failed to append price point: %w", err)
		}
		return nil
	})
}

func (p *Provider) GetPriceHistory(ctx context.Context, url string) ([]db_model.PricePoint, error) {
	var points []db_model.PricePoint
	err := p.execute(ctx, "GetPriceHistory", func() error {
		rows, err := p.db.QueryContext(ctx, `
			SELECT timestamp, COALESCE(price, '')
			FROM price_history
			WHERE product_url = $1
			ORDER BY timestamp ASC, id ASC
		`, url)
		if err != nil {
			return fmt.Errorf("failed to query price history: %w", err)
		}
		defer rows.Close()

		points = points[:0]
		for rows.Next() {
			var pt db_model.PricePoint
			if err := rows.Scan(&pt.Timestamp, &pt.Price); err != nil {
				return fmt.Errorf("failed to scan price point: %w", err)
			}
			points = append(points, pt)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return points, nil
}

func (p *Provider) Close() error {
	return p.db.Close()
}

// execute runs op through the circuit breaker with backoff retries.
func (p *Provider) execute(ctx context.Context, name string, op func() error) error {
	var opErr error
	retry.Do(
		func() error {
			_, err := p.cb.Execute(func() (interface{}, error) {
				return nil, op()
			})
			opErr = err
			return err
		},
		retry.Attempts(3),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			p.logger.Warn("retrying store operation",
				zap.String("op", name),
				zap.Uint("attempt", n+1),
				zap.Error(err))
		}),
	)
	if opErr != nil {
		p.countError(ctx)
	}
	return opErr
}

func (p *Provider) countError(ctx context.Context) {
	if p.storeErrors != nil {
		p.storeErrors.Add(ctx, 1)
	}
}
