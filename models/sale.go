package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod type for payment methods
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// PaymentLabel returns the human-readable label for a payment method.
func PaymentLabel(m PaymentMethod) string {
	switch m {
	case PaymentCash:
		return "Cash"
	case PaymentCard:
		return "Card"
	default:
		return string(m)
	}
}

// SaleStatus type for sale lifecycle states
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "pending"
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusRefunded  SaleStatus = "refunded"
)

// Sale represents sales table. The primary key is a generated UUID
// string rather than a sequence so receipt identifiers are not
// guessable from order volume.
type Sale struct {
	SaleID          string           `gorm:"primaryKey;column:sale_id;type:varchar(36)" json:"sale_id"`
	CustomerName    *string          `gorm:"type:varchar(100)" json:"customer_name,omitempty"`
	Subtotal        decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	DiscountAmount  decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0" json:"discount_amount"`
	DiscountPercent *decimal.Decimal `gorm:"type:decimal(5,2)" json:"discount_percent,omitempty"`
	GrandTotal      decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"grand_total"`
	AmountPaid      decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"amount_paid"`
	ChangeAmount    decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0" json:"change_amount"`
	PaymentMethod   PaymentMethod    `gorm:"type:varchar(20);not null" json:"payment_method"`
	Status          SaleStatus       `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	UserID          uint             `gorm:"not null;index" json:"user_id"`
	CreatedAt       time.Time        `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`

	// Relationships
	User  User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// TableName specifies the table name for Sale
func (Sale) TableName() string {
	return "sales"
}

// SaleItem represents sale_items table. Product name, category and
// expiry are denormalized snapshots taken at checkout so the line
// stays historically accurate if the product is later renamed or
// deleted. ProductID is kept only for analytics grouping, never joined
// for display.
type SaleItem struct {
	SaleItemID  uint            `gorm:"primaryKey;column:sale_item_id" json:"sale_item_id"`
	SaleID      string          `gorm:"type:varchar(36);not null;index" json:"sale_id"`
	ProductID   uint            `gorm:"not null;index" json:"product_id"`
	ProductName string          `gorm:"type:varchar(200);not null" json:"product_name"`
	CategoryID  uint            `gorm:"not null" json:"category_id"`
	Quantity    int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	Profit      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"profit"`
	ExpiryDate  *time.Time      `gorm:"type:date" json:"expiry_date,omitempty"`
	IsVoided    bool            `gorm:"default:false" json:"is_voided"`
	IsRefunded  bool            `gorm:"default:false" json:"is_refunded"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TableName specifies the table name for SaleItem
func (SaleItem) TableName() string {
	return "sale_items"
}
