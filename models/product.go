package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents products table
type Product struct {
	ProductID      uint            `gorm:"primaryKey;column:product_id" json:"product_id"`
	ProductName    string          `gorm:"type:varchar(200);not null" json:"product_name"`
	CategoryID     uint            `gorm:"not null" json:"category_id"`
	SupplierID     uint            `gorm:"not null" json:"supplier_id"`
	QuantityOnHand int             `gorm:"not null;default:0" json:"quantity_on_hand"`
	QuantityTotal  int             `gorm:"not null;default:0" json:"quantity_total"`
	QuantitySold   int             `gorm:"not null;default:0" json:"quantity_sold"`
	CostPrice      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"cost_price"`
	SellingPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"selling_price"`
	ExpiryDate     *time.Time      `gorm:"type:date" json:"expiry_date,omitempty"`
	ImagePath      *string         `gorm:"type:varchar(255)" json:"image_path,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Supplier Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
}

// TableName specifies the table name for Product
func (Product) TableName() string {
	return "products"
}

// UnitProfit returns the margin on one unit at the current prices.
func (p *Product) UnitProfit() decimal.Decimal {
	return p.SellingPrice.Sub(p.CostPrice)
}
