package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/kevmogita/duka-pos/internal/domain/entity"
	"github.com/kevmogita/duka-pos/pkg/pagination"
)

// ItemRepository defines the interface for catalog item data operations.
// All stock mutation goes through the conditional Decrement/Adjust methods
// so the non-negativity invariant holds under concurrent writers.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error)
	// GetByIDs retrieves multiple items by their IDs in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Item, error)
	GetByCode(ctx context.Context, code string) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ItemFilterParams) ([]entity.Item, int64, error)
	GetLowStock(ctx context.Context) ([]entity.Item, error)
	// DecrementStock atomically decrements stock only if sufficient.
	// Returns (true, nil) if applied, (false, nil) if insufficient stock, (false, err) on error.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (bool, error)
	// DecrementStockBatch atomically decrements stock for multiple items in one
	// transaction. If any item has insufficient stock the whole batch is rolled
	// back and the IDs that failed are returned.
	DecrementStockBatch(ctx context.Context, decrements map[uuid.UUID]int) (failedIDs []uuid.UUID, err error)
	// IncrementStockBatch atomically restores stock for multiple items
	// (compensation when a ledger append fails after decrementing).
	IncrementStockBatch(ctx context.Context, increments map[uuid.UUID]int) error
	// AdjustStock applies a signed delta, refusing any change that would take
	// stock below zero. Returns (false, nil) when the delta was refused.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (bool, error)
}

// ItemFilterParams contains filtering parameters for item queries
type ItemFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   string
	ActiveOnly bool
	LowStock   bool
}
