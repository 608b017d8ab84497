package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kevmogita/duka-pos/internal/domain/entity"
	domainRepo "github.com/kevmogita/duka-pos/internal/domain/repository"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale ledger repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

// Create appends one sale with its line items in a single insert. GORM writes
// the association rows in the same transaction, so a failure anywhere leaves
// no partial sale behind. A transaction number collision surfaces as
// gorm.ErrDuplicatedKey (TranslateError is enabled on the connection).
func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetByTransactionNumber(ctx context.Context, txn string) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&sale, "transaction_number = ?", txn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Sale{})

	if params.ClerkID != nil {
		query = query.Where("clerk_id = ?", *params.ClerkID)
	}

	if params.StartDate != nil {
		query = query.Where("sale_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("sale_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Items").
		Order("sale_date DESC").
		Find(&sales).Error

	return sales, total, err
}

func (r *saleRepository) ListWithItems(ctx context.Context, startDate, endDate *time.Time) ([]entity.Sale, error) {
	var sales []entity.Sale

	query := r.db.WithContext(ctx).Model(&entity.Sale{})

	if startDate != nil {
		query = query.Where("sale_date >= ?", *startDate)
	}

	if endDate != nil {
		query = query.Where("sale_date <= ?", *endDate)
	}

	err := query.
		Preload("Items").
		Order("sale_date DESC").
		Find(&sales).Error

	return sales, err
}

func (r *saleRepository) CountLinesByItem(ctx context.Context, itemID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.SaleLineItem{}).
		Where("item_id = ?", itemID).
		Count(&count).Error
	return count, err
}

func (r *saleRepository) CountByClerk(ctx context.Context, clerkID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Where("clerk_id = ?", clerkID).
		Count(&count).Error
	return count, err
}
