package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Batch represents batches table. A batch is one received lot of a
// product with its own expiry and quantity accounting. At all times
// quantity_left + quantity_sold == quantity; stock only ever moves via
// the recorder's guarded decrement, which preserves the invariant.
type Batch struct {
	BatchID         uint            `gorm:"primaryKey;column:batch_id" json:"batch_id"`
	BatchNumber     string          `gorm:"type:varchar(50);not null;unique" json:"batch_number"`
	ProductID       uint            `gorm:"not null;index" json:"product_id"`
	SupplierID      uint            `gorm:"not null" json:"supplier_id"`
	ManufactureDate *time.Time      `gorm:"type:date" json:"manufacture_date,omitempty"`
	ExpiryDate      *time.Time      `gorm:"type:date" json:"expiry_date,omitempty"`
	Quantity        int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	QuantityLeft    int             `gorm:"not null" json:"quantity_left"`
	QuantitySold    int             `gorm:"not null;default:0" json:"quantity_sold"`
	CostPrice       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"cost_price"`
	SellingPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"selling_price"`
	ReorderLevel    int             `gorm:"default:10" json:"reorder_level"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// Relationships
	Product  Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Supplier Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
}

// TableName specifies the table name for Batch
func (Batch) TableName() string {
	return "batches"
}
