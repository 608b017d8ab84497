package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kevmogita/duka-pos/internal/domain/entity"
	"github.com/kevmogita/duka-pos/internal/domain/repository"
)

// StatsService computes sales statistics by folding over the ledger.
type StatsService struct {
	saleRepo repository.SaleRepository
}

// NewStatsService creates a new statistics service
func NewStatsService(saleRepo repository.SaleRepository) *StatsService {
	return &StatsService{saleRepo: saleRepo}
}

// StatisticsFilter narrows the ledger window the statistics cover. ItemRef
// may be an item UUID or a catalog code; it is normalized before matching.
type StatisticsFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	ItemRef   string
}

// ItemStat is one item's aggregated sales performance. SalesCount is the
// number of distinct sales containing the item, so two one-unit sales and
// one two-unit sale are distinguishable even at equal quantity.
type ItemStat struct {
	ItemID       uuid.UUID `json:"item_id"`
	ItemCode     string    `json:"item_code"`
	ItemName     string    `json:"item_name"`
	QuantitySold int       `json:"quantity_sold"`
	SalesCount   int       `json:"sales_count"`
	Revenue      float64   `json:"revenue"`
	Profit       float64   `json:"profit"`
}

// SalesStatistics is the aggregate view over a ledger window
type SalesStatistics struct {
	TotalSales    int        `json:"total_sales"`
	TotalRevenue  float64    `json:"total_revenue"`
	TotalProfit   float64    `json:"total_profit"`
	ItemBreakdown []ItemStat `json:"item_breakdown"`
}

// GetStatistics folds the ledger window into totals and a per-item breakdown.
// Revenue and profit come from the amounts frozen on the line items, never
// from current catalog prices.
func (s *StatsService) GetStatistics(ctx context.Context, filter *StatisticsFilter) (*SalesStatistics, error) {
	sales, err := s.saleRepo.ListWithItems(ctx, filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, err
	}

	matcher := newItemMatcher(filter.ItemRef)

	stats := &SalesStatistics{ItemBreakdown: []ItemStat{}}
	byItem := make(map[uuid.UUID]*ItemStat)

	for _, sale := range sales {
		// The same item may span several lines of one sale; it still counts
		// as one sale for that item.
		matchedItems := make(map[uuid.UUID]bool)

		for _, line := range sale.Items {
			if !matcher.matches(&line) {
				continue
			}
			matchedItems[line.ItemID] = true

			stat, ok := byItem[line.ItemID]
			if !ok {
				stat = &ItemStat{
					ItemID:   line.ItemID,
					ItemCode: line.ItemCode,
					ItemName: line.ItemName,
				}
				byItem[line.ItemID] = stat
			}

			stat.QuantitySold += line.Quantity
			stat.Revenue += float64(line.TotalPrice) / 100
			stat.Profit += float64(line.Profit) / 100
			stats.TotalRevenue += float64(line.TotalPrice) / 100
			stats.TotalProfit += float64(line.Profit) / 100
		}

		if len(matchedItems) > 0 {
			stats.TotalSales++
		}
		for itemID := range matchedItems {
			byItem[itemID].SalesCount++
		}
	}

	for _, stat := range byItem {
		stats.ItemBreakdown = append(stats.ItemBreakdown, *stat)
	}
	sort.Slice(stats.ItemBreakdown, func(i, j int) bool {
		return stats.ItemBreakdown[i].Revenue > stats.ItemBreakdown[j].Revenue
	})

	return stats, nil
}

// itemMatcher matches ledger lines against a normalized item reference.
// A reference that parses as a UUID matches on item ID; anything else
// matches the catalog code, case-insensitively.
type itemMatcher struct {
	all  bool
	id   uuid.UUID
	byID bool
	code string
}

func newItemMatcher(ref string) *itemMatcher {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return &itemMatcher{all: true}
	}
	if id, err := uuid.Parse(ref); err == nil {
		return &itemMatcher{id: id, byID: true}
	}
	return &itemMatcher{code: strings.ToUpper(ref)}
}

func (m *itemMatcher) matches(line *entity.SaleLineItem) bool {
	if m.all {
		return true
	}
	if m.byID {
		return line.ItemID == m.id
	}
	return strings.ToUpper(line.ItemCode) == m.code
}
