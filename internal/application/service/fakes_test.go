package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kevmogita/duka-pos/internal/domain/entity"
	"github.com/kevmogita/duka-pos/internal/domain/repository"
	"gorm.io/gorm"
)

// fakeItemRepo is an in-memory ItemRepository with the same all-or-nothing
// stock semantics as the Postgres implementation.
type fakeItemRepo struct {
	mu           sync.Mutex
	items        map[uuid.UUID]*entity.Item
	incrementErr error // when set, IncrementStockBatch fails with this error
}

func newFakeItemRepo(items ...*entity.Item) *fakeItemRepo {
	r := &fakeItemRepo{items: make(map[uuid.UUID]*entity.Item)}
	for _, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		r.items[item.ID] = item
	}
	return r
}

func (r *fakeItemRepo) Create(ctx context.Context, item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	copied := *item
	return &copied, nil
}

func (r *fakeItemRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Item, 0, len(ids))
	seen := make(map[uuid.UUID]bool)
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if item, ok := r.items[id]; ok {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) GetByCode(ctx context.Context, code string) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.Code == code {
			copied := *item
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) Update(ctx context.Context, item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *fakeItemRepo) List(ctx context.Context, params *repository.ItemFilterParams) ([]entity.Item, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Item, 0, len(r.items))
	for _, item := range r.items {
		if params.ActiveOnly && !item.IsActive {
			continue
		}
		if params.LowStock && !item.IsLowStock() {
			continue
		}
		out = append(out, *item)
	}
	return out, int64(len(out)), nil
}

func (r *fakeItemRepo) GetLowStock(ctx context.Context) ([]entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Item
	for _, item := range r.items {
		if item.IsActive && item.IsLowStock() {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.Stock < quantity {
		return false, nil
	}
	item.Stock -= quantity
	return true, nil
}

func (r *fakeItemRepo) DecrementStockBatch(ctx context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var failedIDs []uuid.UUID
	for id, quantity := range decrements {
		item, ok := r.items[id]
		if !ok || item.Stock < quantity {
			failedIDs = append(failedIDs, id)
		}
	}
	if len(failedIDs) > 0 {
		return failedIDs, nil
	}

	for id, quantity := range decrements {
		r.items[id].Stock -= quantity
	}
	return nil, nil
}

func (r *fakeItemRepo) IncrementStockBatch(ctx context.Context, increments map[uuid.UUID]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.incrementErr != nil {
		return r.incrementErr
	}
	for id, quantity := range increments {
		if item, ok := r.items[id]; ok {
			item.Stock += quantity
		}
	}
	return nil
}

func (r *fakeItemRepo) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.Stock+delta < 0 {
		return false, nil
	}
	item.Stock += delta
	return true, nil
}

func (r *fakeItemRepo) stock(id uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item, ok := r.items[id]; ok {
		return item.Stock
	}
	return -1
}

// fakeSaleRepo is an in-memory append-only sale ledger enforcing transaction
// number uniqueness the way the database unique index does.
type fakeSaleRepo struct {
	mu          sync.Mutex
	sales       []*entity.Sale
	byTxn       map[string]bool
	failCreates int   // next N creates fail with a duplicated-key error
	createErr   error // when set, every create fails with this error
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{byTxn: make(map[string]bool)}
}

func (r *fakeSaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failCreates > 0 {
		r.failCreates--
		return gorm.ErrDuplicatedKey
	}
	if r.createErr != nil {
		return r.createErr
	}
	if r.byTxn[sale.TransactionNumber] {
		return gorm.ErrDuplicatedKey
	}

	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	for i := range sale.Items {
		if sale.Items[i].ID == uuid.Nil {
			sale.Items[i].ID = uuid.New()
		}
		sale.Items[i].SaleID = sale.ID
	}

	copied := *sale
	copied.Items = append([]entity.SaleLineItem(nil), sale.Items...)
	r.sales = append(r.sales, &copied)
	r.byTxn[sale.TransactionNumber] = true
	return nil
}

func (r *fakeSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sale := range r.sales {
		if sale.ID == id {
			copied := *sale
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeSaleRepo) GetByTransactionNumber(ctx context.Context, txn string) (*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sale := range r.sales {
		if sale.TransactionNumber == txn {
			copied := *sale
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeSaleRepo) List(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Sale, 0, len(r.sales))
	for _, sale := range r.sales {
		if params.ClerkID != nil && sale.ClerkID != *params.ClerkID {
			continue
		}
		out = append(out, *sale)
	}
	return out, int64(len(out)), nil
}

func (r *fakeSaleRepo) ListWithItems(ctx context.Context, startDate, endDate *time.Time) ([]entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Sale
	for _, sale := range r.sales {
		if startDate != nil && sale.SaleDate.Before(*startDate) {
			continue
		}
		if endDate != nil && sale.SaleDate.After(*endDate) {
			continue
		}
		copied := *sale
		copied.Items = append([]entity.SaleLineItem(nil), sale.Items...)
		out = append(out, copied)
	}
	return out, nil
}

func (r *fakeSaleRepo) CountLinesByItem(ctx context.Context, itemID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, sale := range r.sales {
		for _, line := range sale.Items {
			if line.ItemID == itemID {
				count++
			}
		}
	}
	return count, nil
}

func (r *fakeSaleRepo) CountByClerk(ctx context.Context, clerkID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, sale := range r.sales {
		if sale.ClerkID == clerkID {
			count++
		}
	}
	return count, nil
}

func (r *fakeSaleRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sales)
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, user := range users {
		if user.ID == uuid.Nil {
			user.ID = uuid.New()
		}
		r.users[user.ID] = user
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context) ([]entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, *user)
	}
	return out, nil
}
