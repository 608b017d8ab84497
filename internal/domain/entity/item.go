package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/kevmogita/duka-pos/internal/domain/enum"
	"gorm.io/gorm"
)

// Item is a sellable catalog entry. Stock is only ever mutated through the
// conditional updates in the item repository so it can never go negative,
// even under concurrent checkouts.
type Item struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Code      string         `gorm:"size:100;unique;not null" json:"code"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Category  enum.Category  `gorm:"size:50;not null" json:"category"`
	Unit      enum.Unit      `gorm:"size:20;not null" json:"unit"`
	UnitPrice int64          `gorm:"not null;default:0" json:"-"` // cents
	CostPrice int64          `gorm:"not null;default:0" json:"-"` // cents
	Stock     int            `gorm:"not null;default:0" json:"stock"`
	MinStock  int            `gorm:"not null;default:10" json:"min_stock"`
	IsActive  bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new item
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Item model
func (Item) TableName() string {
	return "items"
}

// MarshalJSON converts cent-stored prices to decimals for API responses.
func (i Item) MarshalJSON() ([]byte, error) {
	type Alias Item
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		CostPrice float64 `json:"cost_price"`
	}{
		Alias:     Alias(i),
		UnitPrice: float64(i.UnitPrice) / 100,
		CostPrice: float64(i.CostPrice) / 100,
	})
}

// IsLowStock reports whether the item is at or below its minimum stock level.
func (i *Item) IsLowStock() bool {
	return i.Stock <= i.MinStock
}

// GetUnitPriceDecimal returns the unit price as a decimal (for display)
func (i *Item) GetUnitPriceDecimal() float64 {
	return float64(i.UnitPrice) / 100
}

// GetCostPriceDecimal returns the cost price as a decimal (for display)
func (i *Item) GetCostPriceDecimal() float64 {
	return float64(i.CostPrice) / 100
}

// SetUnitPriceFromDecimal sets the unit price from a decimal value
func (i *Item) SetUnitPriceFromDecimal(price float64) {
	i.UnitPrice = int64(price*100 + 0.5)
}

// SetCostPriceFromDecimal sets the cost price from a decimal value
func (i *Item) SetCostPriceFromDecimal(price float64) {
	i.CostPrice = int64(price*100 + 0.5)
}
