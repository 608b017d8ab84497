package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kevmogita/duka-pos/internal/domain/entity"
	"github.com/kevmogita/duka-pos/pkg/pagination"
)

// SaleRepository defines the interface for the append-only sale ledger.
// There is intentionally no Update or Delete: a persisted sale is immutable.
type SaleRepository interface {
	// Create appends one sale together with its line items as a single
	// atomic write. A duplicate transaction number must surface as
	// gorm.ErrDuplicatedKey so the caller can regenerate and retry.
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetByTransactionNumber(ctx context.Context, txn string) (*entity.Sale, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	// ListWithItems returns sales in the given range with their line items
	// preloaded, for statistics folds over the ledger.
	ListWithItems(ctx context.Context, startDate, endDate *time.Time) ([]entity.Sale, error)
	// CountLinesByItem returns how many ledger line items reference the item.
	// Used to refuse catalog deletes that would orphan sales history.
	CountLinesByItem(ctx context.Context, itemID uuid.UUID) (int64, error)
	// CountByClerk returns how many sales a clerk has recorded. Used to
	// deactivate rather than delete accounts with sales attribution.
	CountByClerk(ctx context.Context, clerkID uuid.UUID) (int64, error)
}

// SaleFilterParams contains filtering parameters for ledger queries
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	ClerkID    *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}
