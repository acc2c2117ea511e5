package db_model

import "time"

// TrackedProduct is a product under observation, keyed by its URL.
// CreatedAt is fixed on first insert; LastCheckedAt is bumped on every upsert.
type TrackedProduct struct {
	ID            uint64    `db:"id" json:"id"`
	URL           string    `db:"url" json:"url"`
	Title         string    `db:"title" json:"title"`
	ImageURL      string    `db:"image_url" json:"image_url"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	LastCheckedAt time.Time `db:"last_checked_at" json:"last_checked_at"`
}

// PricePoint is one immutable observation of a product's price. The price is
// kept as the scraped string (currency symbols and separators included); the
// timestamp is the scrape time in "2006-01-02 15:04:05" form.
type PricePoint struct {
	Timestamp string `db:"timestamp" json:"timestamp"`
	Price     string `db:"price" json:"price"`
}

// Schema is the SQL schema for the tracked_products and price_history tables.
// The history table deliberately carries no foreign key: a point for a URL
// that races with registration is orphaned data, not an error.
const Schema = `
CREATE TABLE IF NOT EXISTS tracked_products (
    id SERIAL PRIMARY KEY,
    url TEXT UNIQUE NOT NULL,
    title TEXT,
    image_url TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    last_checked_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS price_history (
    id SERIAL PRIMARY KEY,
    product_url TEXT NOT NULL,
    price TEXT,
    timestamp TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_price_history_product_url ON price_history(product_url);
`
