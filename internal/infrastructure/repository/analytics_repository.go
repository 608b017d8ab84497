package repository

import (
	"context"
	"time"

	domainRepo "github.com/kevmogita/duka-pos/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetTopItems(ctx context.Context, limit int) ([]domainRepo.TopItemResult, error) {
	var results []domainRepo.TopItemResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			l.item_id,
			l.item_code,
			l.item_name,
			COALESCE(SUM(l.quantity), 0) as quantity_sold,
			COALESCE(SUM(l.total_price), 0) / 100.0 as revenue,
			COALESCE(SUM(l.profit), 0) / 100.0 as profit
		FROM sale_line_items l
		GROUP BY l.item_id, l.item_code, l.item_name
		ORDER BY revenue DESC
		LIMIT ?
	`, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetDailySales(ctx context.Context, days int) ([]domainRepo.DailySalesResult, error) {
	results := make([]domainRepo.DailySalesResult, 0, days)
	now := time.Now()

	// Generate dates for the last N days and get sales for each
	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		endOfDay := startOfDay.Add(24 * time.Hour)

		var row struct {
			Revenue float64
			Profit  float64
			Sales   int
		}
		err := r.db.WithContext(ctx).Raw(`
			SELECT
				COALESCE(SUM(total_amount), 0) / 100.0 as revenue,
				COALESCE(SUM(total_profit), 0) / 100.0 as profit,
				COUNT(id) as sales
			FROM sales
			WHERE sale_date >= ? AND sale_date < ?
		`, startOfDay, endOfDay).Scan(&row).Error

		if err != nil {
			return nil, err
		}

		results = append(results, domainRepo.DailySalesResult{
			Date:    startOfDay,
			Revenue: row.Revenue,
			Profit:  row.Profit,
			Sales:   row.Sales,
		})
	}

	return results, nil
}

func (r *analyticsRepository) GetTotalRevenue(ctx context.Context) (float64, float64, error) {
	var row struct {
		Revenue float64
		Profit  float64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(total_amount), 0) / 100.0 as revenue,
			COALESCE(SUM(total_profit), 0) / 100.0 as profit
		FROM sales
	`).Scan(&row).Error

	return row.Revenue, row.Profit, err
}

func (r *analyticsRepository) GetRevenueSince(ctx context.Context, since time.Time) (float64, error) {
	var revenue float64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total_amount), 0) / 100.0
		FROM sales
		WHERE sale_date >= ?
	`, since).Scan(&revenue).Error

	return revenue, err
}
