package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/kevmogita/duka-pos/internal/domain/entity"
	"github.com/kevmogita/duka-pos/internal/domain/repository"
	"github.com/kevmogita/duka-pos/pkg/apperror"
	"github.com/kevmogita/duka-pos/pkg/pagination"
	"github.com/kevmogita/duka-pos/pkg/utils"
	"gorm.io/gorm"
)

// maxTxnAttempts bounds how many times a checkout regenerates its transaction
// number after a unique-index collision before giving up.
const maxTxnAttempts = 3

// SaleService processes checkouts against the catalog and the sale ledger.
type SaleService struct {
	saleRepo repository.SaleRepository
	itemRepo repository.ItemRepository
	now      func() time.Time
}

// NewSaleService creates a new sale service
func NewSaleService(saleRepo repository.SaleRepository, itemRepo repository.ItemRepository) *SaleService {
	return &SaleService{
		saleRepo: saleRepo,
		itemRepo: itemRepo,
		now:      time.Now,
	}
}

// SaleLineInput is one cart line. The item may be referenced by ID or by
// catalog code; ID wins when both are set.
type SaleLineInput struct {
	ItemID   *uuid.UUID
	ItemCode string
	Quantity int
}

// ProcessSaleInput represents a checkout request
type ProcessSaleInput struct {
	ClerkID   uuid.UUID
	ClerkName string
	Items     []SaleLineInput
}

// ProcessSale validates the cart, decrements stock, and appends the sale to
// the ledger. The checkout is all-or-nothing: if any line fails validation or
// runs out of stock, no stock moves and nothing is written.
func (s *SaleService) ProcessSale(ctx context.Context, input *ProcessSaleInput) (*entity.Sale, error) {
	if len(input.Items) == 0 {
		return nil, apperror.ErrEmptyCart
	}

	// Resolve every cart line against the catalog
	items, err := s.resolveItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	// Validate lines in input order so the clerk sees the first offending
	// line, and accumulate per-item quantities (the same item may appear on
	// several lines).
	required := make(map[uuid.UUID]int)
	for i, line := range input.Items {
		item := items[i]

		if line.Quantity < 1 {
			return nil, apperror.NewBadRequestError("Quantity must be at least 1")
		}
		if !item.IsActive {
			return nil, apperror.NewBadRequestError("Item " + item.Name + " is not available for sale")
		}

		required[item.ID] += line.Quantity
		if required[item.ID] > item.Stock {
			return nil, &apperror.InsufficientStockError{ItemName: item.Name, Available: item.Stock}
		}
	}

	// Atomically decrement stock. The conditional updates re-check stock in
	// the database, so a concurrent checkout that drained an item between
	// our validation and here fails cleanly with nothing decremented.
	failedIDs, err := s.itemRepo.DecrementStockBatch(ctx, required)
	if err != nil {
		return nil, err
	}
	if len(failedIDs) > 0 {
		return nil, s.insufficientStockError(ctx, input.Items, items, failedIDs)
	}

	// Build the ledger record. Line items snapshot code, name, and both
	// prices so later catalog edits never rewrite history.
	saleDate := s.now()
	lines := make([]entity.SaleLineItem, 0, len(input.Items))
	var totalAmount, totalProfit int64

	for i, line := range input.Items {
		item := items[i]
		lineTotal := item.UnitPrice * int64(line.Quantity)
		lineProfit := (item.UnitPrice - item.CostPrice) * int64(line.Quantity)

		lines = append(lines, entity.SaleLineItem{
			ItemID:     item.ID,
			ItemCode:   item.Code,
			ItemName:   item.Name,
			Quantity:   line.Quantity,
			UnitPrice:  item.UnitPrice,
			CostPrice:  item.CostPrice,
			TotalPrice: lineTotal,
			Profit:     lineProfit,
		})

		totalAmount += lineTotal
		totalProfit += lineProfit
	}

	// Append to the ledger, regenerating the transaction number on a
	// unique-index collision. If the append cannot be completed the stock
	// decrement is compensated so the catalog stays consistent.
	var lastTxn string
	for attempt := 0; attempt < maxTxnAttempts; attempt++ {
		lastTxn = utils.GenerateTransactionNumber(s.now())

		sale := &entity.Sale{
			TransactionNumber: lastTxn,
			ClerkID:           input.ClerkID,
			ClerkName:         input.ClerkName,
			TotalAmount:       totalAmount,
			TotalProfit:       totalProfit,
			SaleDate:          saleDate,
			Items:             lines,
		}

		err = s.saleRepo.Create(ctx, sale)
		if err == nil {
			return sale, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
	}

	// Restore the stock we took; the sale never made it into the ledger.
	// A failed restore means the catalog lost stock with no sale to show
	// for it, so leave an operator-visible trail of exactly what to put back.
	if cerr := s.itemRepo.IncrementStockBatch(ctx, required); cerr != nil {
		log.Printf("stock compensation failed after aborted checkout %s: %v (quantities to restore: %v)",
			lastTxn, cerr, required)
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, &apperror.DuplicateTransactionError{TransactionNumber: lastTxn}
	}
	return nil, err
}

// resolveItems maps cart lines to catalog items, preserving input order.
// ID-referenced items are fetched in one batch; code references fall back to
// individual lookups.
func (s *SaleService) resolveItems(ctx context.Context, lines []SaleLineInput) ([]*entity.Item, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		if line.ItemID != nil {
			ids = append(ids, *line.ItemID)
		}
	}

	fetched, err := s.itemRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*entity.Item, len(fetched))
	for i := range fetched {
		byID[fetched[i].ID] = &fetched[i]
	}

	items := make([]*entity.Item, len(lines))
	for i, line := range lines {
		switch {
		case line.ItemID != nil:
			item, ok := byID[*line.ItemID]
			if !ok {
				return nil, &apperror.ItemNotFoundError{Ref: line.ItemID.String()}
			}
			items[i] = item
		case line.ItemCode != "":
			item, err := s.itemRepo.GetByCode(ctx, line.ItemCode)
			if err != nil {
				return nil, err
			}
			if item == nil {
				return nil, &apperror.ItemNotFoundError{Ref: line.ItemCode}
			}
			items[i] = item
		default:
			return nil, apperror.NewBadRequestError("Each sale line must reference an item by id or code")
		}
	}

	return items, nil
}

// insufficientStockError reports the first input line whose item lost the
// stock race, with the stock level as it stands now.
func (s *SaleService) insufficientStockError(ctx context.Context, lines []SaleLineInput, items []*entity.Item, failedIDs []uuid.UUID) error {
	failed := make(map[uuid.UUID]bool, len(failedIDs))
	for _, id := range failedIDs {
		failed[id] = true
	}

	for i := range lines {
		item := items[i]
		if !failed[item.ID] {
			continue
		}

		available := item.Stock
		if fresh, err := s.itemRepo.GetByID(ctx, item.ID); err == nil && fresh != nil {
			available = fresh.Stock
		}
		return &apperror.InsufficientStockError{ItemName: item.Name, Available: available}
	}

	// Shouldn't happen: every failed ID came from the cart.
	return apperror.NewBadRequestError("Insufficient stock")
}

// GetSale retrieves a sale by ID
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// GetSaleByTransactionNumber retrieves a sale by its transaction number
func (s *SaleService) GetSaleByTransactionNumber(ctx context.Context, txn string) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByTransactionNumber(ctx, txn)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists ledger entries with filtering
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}
