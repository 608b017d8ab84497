package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/kevmogita/duka-pos/internal/domain/entity"
	"github.com/kevmogita/duka-pos/internal/domain/enum"
	"github.com/kevmogita/duka-pos/internal/domain/repository"
	"github.com/kevmogita/duka-pos/pkg/apperror"
	"github.com/kevmogita/duka-pos/pkg/pagination"
)

// ItemService handles catalog item operations
type ItemService struct {
	itemRepo repository.ItemRepository
	saleRepo repository.SaleRepository
}

// NewItemService creates a new item service
func NewItemService(itemRepo repository.ItemRepository, saleRepo repository.SaleRepository) *ItemService {
	return &ItemService{
		itemRepo: itemRepo,
		saleRepo: saleRepo,
	}
}

// CreateItemInput represents the create item input. Prices are decimals as
// received from the API; they are stored in cents.
type CreateItemInput struct {
	Code      string
	Name      string
	Category  string
	Unit      string
	UnitPrice float64
	CostPrice float64
	Stock     int
	MinStock  int
}

// CreateItem adds a new item to the catalog
func (s *ItemService) CreateItem(ctx context.Context, input *CreateItemInput) (*entity.Item, error) {
	category := enum.Category(input.Category)
	if !category.Valid() {
		return nil, apperror.NewBadRequestError("Invalid category: " + input.Category)
	}

	unit := enum.Unit(input.Unit)
	if !unit.Valid() {
		return nil, apperror.NewBadRequestError("Invalid unit: " + input.Unit)
	}

	if input.UnitPrice < 0 || input.CostPrice < 0 {
		return nil, apperror.NewBadRequestError("Prices cannot be negative")
	}
	if input.Stock < 0 || input.MinStock < 0 {
		return nil, apperror.NewBadRequestError("Stock levels cannot be negative")
	}

	existing, err := s.itemRepo.GetByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Item code already exists: " + input.Code)
	}

	item := &entity.Item{
		Code:     input.Code,
		Name:     input.Name,
		Category: category,
		Unit:     unit,
		Stock:    input.Stock,
		MinStock: input.MinStock,
		IsActive: true,
	}
	item.SetUnitPriceFromDecimal(input.UnitPrice)
	item.SetCostPriceFromDecimal(input.CostPrice)

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItemInput represents the update item input. Nil fields are left
// unchanged. Stock is deliberately absent: stock only moves through sales
// and explicit adjustments.
type UpdateItemInput struct {
	Name      *string
	Category  *string
	Unit      *string
	UnitPrice *float64
	CostPrice *float64
	MinStock  *int
	IsActive  *bool
}

// UpdateItem updates catalog fields of an item
func (s *ItemService) UpdateItem(ctx context.Context, id uuid.UUID, input *UpdateItemInput) (*entity.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Category != nil {
		category := enum.Category(*input.Category)
		if !category.Valid() {
			return nil, apperror.NewBadRequestError("Invalid category: " + *input.Category)
		}
		item.Category = category
	}
	if input.Unit != nil {
		unit := enum.Unit(*input.Unit)
		if !unit.Valid() {
			return nil, apperror.NewBadRequestError("Invalid unit: " + *input.Unit)
		}
		item.Unit = unit
	}
	if input.UnitPrice != nil {
		if *input.UnitPrice < 0 {
			return nil, apperror.NewBadRequestError("Prices cannot be negative")
		}
		item.SetUnitPriceFromDecimal(*input.UnitPrice)
	}
	if input.CostPrice != nil {
		if *input.CostPrice < 0 {
			return nil, apperror.NewBadRequestError("Prices cannot be negative")
		}
		item.SetCostPriceFromDecimal(*input.CostPrice)
	}
	if input.MinStock != nil {
		if *input.MinStock < 0 {
			return nil, apperror.NewBadRequestError("Stock levels cannot be negative")
		}
		item.MinStock = *input.MinStock
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes an item from the catalog. Items referenced by the sale
// ledger cannot be deleted; deactivate them instead.
func (s *ItemService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NewNotFoundError("Item")
	}

	refs, err := s.saleRepo.CountLinesByItem(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return apperror.NewConflictError("Item has sales history; deactivate it instead of deleting")
	}

	return s.itemRepo.Delete(ctx, id)
}

// GetItem retrieves an item by ID
func (s *ItemService) GetItem(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}
	return item, nil
}

// GetItemByCode retrieves an item by its catalog code
func (s *ItemService) GetItemByCode(ctx context.Context, code string) (*entity.Item, error) {
	item, err := s.itemRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}
	return item, nil
}

// ListItems lists catalog items with filtering
func (s *ItemService) ListItems(ctx context.Context, params *repository.ItemFilterParams) (*pagination.PaginatedResult[entity.Item], error) {
	items, total, err := s.itemRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(items, pag), nil
}

// GetLowStockItems returns active items at or below their minimum stock level
func (s *ItemService) GetLowStockItems(ctx context.Context) ([]entity.Item, error) {
	return s.itemRepo.GetLowStock(ctx)
}

// AdjustStock applies a signed stock delta (restock or shrinkage write-off).
// A delta that would take stock below zero is refused with an
// InsufficientStockError naming the item and its current stock.
func (s *ItemService) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*entity.Item, error) {
	if delta == 0 {
		return nil, apperror.NewBadRequestError("Adjustment cannot be zero")
	}

	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}

	applied, err := s.itemRepo.AdjustStock(ctx, id, delta)
	if err != nil {
		return nil, err
	}
	if !applied {
		// A concurrent sale may have moved the stock since our read; report
		// the level as it stands now.
		available := item.Stock
		if fresh, err := s.itemRepo.GetByID(ctx, id); err == nil && fresh != nil {
			available = fresh.Stock
		}
		return nil, &apperror.InsufficientStockError{ItemName: item.Name, Available: available}
	}

	return s.itemRepo.GetByID(ctx, id)
}
