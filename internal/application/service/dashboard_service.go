package service

import (
	"context"
	"time"

	"github.com/kevmogita/duka-pos/internal/domain/repository"
	"github.com/kevmogita/duka-pos/pkg/pagination"
)

// DashboardService provides the store overview shown on the manager dashboard
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
	itemRepo      repository.ItemRepository
	saleRepo      repository.SaleRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	analyticsRepo repository.AnalyticsRepository,
	itemRepo repository.ItemRepository,
	saleRepo repository.SaleRepository,
) *DashboardService {
	return &DashboardService{
		analyticsRepo: analyticsRepo,
		itemRepo:      itemRepo,
		saleRepo:      saleRepo,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TotalItems     int64                         `json:"total_items"`
	TotalSales     int64                         `json:"total_sales"`
	TotalRevenue   float64                       `json:"total_revenue"`
	TotalProfit    float64                       `json:"total_profit"`
	TodayRevenue   float64                       `json:"today_revenue"`
	MonthlyRevenue float64                       `json:"monthly_revenue"`
	LowStockCount  int64                         `json:"low_stock_count"`
	DailySales     []repository.DailySalesResult `json:"daily_sales"`
	TopItems       []repository.TopItemResult    `json:"top_items"`
}

// GetDashboardStats returns the store overview
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	// Counts only: a single-row page carries the totals
	countParams := pagination.DefaultPagination()
	countParams.PerPage = 1

	_, itemCount, err := s.itemRepo.List(ctx, &repository.ItemFilterParams{Pagination: countParams})
	if err != nil {
		return nil, err
	}
	stats.TotalItems = itemCount

	_, saleCount, err := s.saleRepo.List(ctx, &repository.SaleFilterParams{Pagination: countParams})
	if err != nil {
		return nil, err
	}
	stats.TotalSales = saleCount

	lowStock, err := s.itemRepo.GetLowStock(ctx)
	if err != nil {
		return nil, err
	}
	stats.LowStockCount = int64(len(lowStock))

	revenue, profit, err := s.analyticsRepo.GetTotalRevenue(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalRevenue = revenue
	stats.TotalProfit = profit

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	stats.TodayRevenue, err = s.analyticsRepo.GetRevenueSince(ctx, startOfDay)
	if err != nil {
		return nil, err
	}

	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	stats.MonthlyRevenue, err = s.analyticsRepo.GetRevenueSince(ctx, startOfMonth)
	if err != nil {
		return nil, err
	}

	stats.DailySales, err = s.analyticsRepo.GetDailySales(ctx, 7)
	if err != nil {
		return nil, err
	}

	stats.TopItems, err = s.analyticsRepo.GetTopItems(ctx, 5)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
