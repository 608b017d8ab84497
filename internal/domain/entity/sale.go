package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sale is one completed checkout: an immutable ledger record. Sales are
// created exactly once by the sale service and never updated or deleted;
// there is deliberately no DeletedAt column.
type Sale struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TransactionNumber string    `gorm:"size:100;unique;not null" json:"transaction_number"`
	ClerkID           uuid.UUID `gorm:"type:uuid;not null;index" json:"clerk_id"`
	ClerkName         string    `gorm:"size:255" json:"clerk_name"`
	TotalAmount       int64     `gorm:"not null;default:0" json:"-"` // cents
	TotalProfit       int64     `gorm:"not null;default:0" json:"-"` // cents
	SaleDate          time.Time `gorm:"not null;index" json:"sale_date"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	Items []SaleLineItem `gorm:"foreignKey:SaleID" json:"items"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// MarshalJSON converts cent-stored totals to decimals for API responses.
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		TotalAmount float64 `json:"total_amount"`
		TotalProfit float64 `json:"total_profit"`
	}{
		Alias:       Alias(s),
		TotalAmount: float64(s.TotalAmount) / 100,
		TotalProfit: float64(s.TotalProfit) / 100,
	})
}

// SaleLineItem is one line of a sale. Code, name, and both prices are
// value-copied from the catalog at sale time so later catalog edits never
// change a historical receipt.
type SaleLineItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SaleID     uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`
	ItemID     uuid.UUID `gorm:"type:uuid;not null;index" json:"item_id"`
	ItemCode   string    `gorm:"size:100" json:"item_code"`
	ItemName   string    `gorm:"size:255" json:"item_name"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	UnitPrice  int64     `gorm:"not null" json:"-"` // cents, at sale time
	CostPrice  int64     `gorm:"not null" json:"-"` // cents, at sale time
	TotalPrice int64     `gorm:"not null" json:"-"` // cents
	Profit     int64     `gorm:"not null" json:"-"` // cents
	CreatedAt  time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new sale line item
func (l *SaleLineItem) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleLineItem model
func (SaleLineItem) TableName() string {
	return "sale_line_items"
}

// MarshalJSON converts cent-stored amounts to decimals for API responses.
func (l SaleLineItem) MarshalJSON() ([]byte, error) {
	type Alias SaleLineItem
	return json.Marshal(&struct {
		Alias
		UnitPrice  float64 `json:"unit_price"`
		CostPrice  float64 `json:"cost_price"`
		TotalPrice float64 `json:"total_price"`
		Profit     float64 `json:"profit"`
	}{
		Alias:      Alias(l),
		UnitPrice:  float64(l.UnitPrice) / 100,
		CostPrice:  float64(l.CostPrice) / 100,
		TotalPrice: float64(l.TotalPrice) / 100,
		Profit:     float64(l.Profit) / 100,
	})
}
