package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TopItemResult represents an item's sales performance
type TopItemResult struct {
	ItemID       uuid.UUID `json:"item_id"`
	ItemCode     string    `json:"item_code"`
	ItemName     string    `json:"item_name"`
	QuantitySold int       `json:"quantity_sold"`
	Revenue      float64   `json:"revenue"`
	Profit       float64   `json:"profit"`
}

// DailySalesResult represents revenue and profit for a single day
type DailySalesResult struct {
	Date    time.Time `json:"date"`
	Revenue float64   `json:"revenue"`
	Profit  float64   `json:"profit"`
	Sales   int       `json:"sales"`
}

// AnalyticsRepository defines interface for dashboard aggregation queries
type AnalyticsRepository interface {
	// GetTopItems returns the best selling items by revenue
	GetTopItems(ctx context.Context, limit int) ([]TopItemResult, error)

	// GetDailySales returns per-day revenue/profit for the last N days
	GetDailySales(ctx context.Context, days int) ([]DailySalesResult, error)

	// GetTotalRevenue returns all-time revenue and profit from the ledger
	GetTotalRevenue(ctx context.Context) (revenue float64, profit float64, err error)

	// GetRevenueSince returns revenue from sales on or after the given time
	GetRevenueSince(ctx context.Context, since time.Time) (float64, error)
}
