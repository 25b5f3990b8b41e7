package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/HalimKing/Point-of-Sale-System--sub001/apperrors"
	"github.com/HalimKing/Point-of-Sale-System--sub001/models"
)

// BatchHandler handles inventory lot management
type BatchHandler struct {
	DB *gorm.DB
}

// NewBatchHandler creates a new BatchHandler
func NewBatchHandler(db *gorm.DB) *BatchHandler {
	return &BatchHandler{DB: db}
}

type batchInput struct {
	BatchNumber     string          `json:"batch_number"`
	ProductID       uint            `json:"product_id"`
	SupplierID      uint            `json:"supplier_id"`
	ManufactureDate *time.Time      `json:"manufacture_date"`
	ExpiryDate      *time.Time      `json:"expiry_date"`
	Quantity        int             `json:"quantity"`
	CostPrice       decimal.Decimal `json:"cost_price"`
	SellingPrice    decimal.Decimal `json:"selling_price"`
	ReorderLevel    int             `json:"reorder_level"`
}

// List returns batches, optionally only those expiring within the
// given number of days.
func (h *BatchHandler) List(c *fiber.Ctx) error {
	query := h.DB.Model(&models.Batch{}).Preload("Product")
	if productID := c.QueryInt("product_id", 0); productID > 0 {
		query = query.Where("product_id = ?", productID)
	}
	if days := c.QueryInt("expiring_within", 0); days > 0 {
		horizon := time.Now().AddDate(0, 0, days)
		query = query.Where("quantity_left > 0 AND expiry_date IS NOT NULL AND expiry_date <= ?", horizon)
	}

	var batches []models.Batch
	if err := query.Order("expiry_date IS NULL, expiry_date ASC, batch_id ASC").Find(&batches).Error; err != nil {
		return respondError(c, &apperrors.InfrastructureError{Err: err})
	}
	return c.JSON(fiber.Map{"batches": batches})
}

// Create records a restock: a new batch plus the matching increment of
// the product counters, in one transaction.
func (h *BatchHandler) Create(c *fiber.Ctx) error {
	var input batchInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	fields := map[string]string{}
	if input.BatchNumber == "" {
		fields["batch_number"] = "this field is required"
	}
	if input.Quantity <= 0 {
		fields["quantity"] = "quantity must be greater than 0"
	}
	if input.CostPrice.IsNegative() {
		fields["cost_price"] = "cost price must not be negative"
	}
	if input.SellingPrice.IsNegative() {
		fields["selling_price"] = "selling price must not be negative"
	}
	if len(fields) > 0 {
		return respondError(c, &apperrors.ValidationError{Fields: fields})
	}

	var product models.Product
	if err := h.DB.First(&product, input.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, &apperrors.NotFoundError{Entity: "product", ID: input.ProductID})
		}
		return respondError(c, &apperrors.InfrastructureError{Err: err})
	}

	var existing int64
	if err := h.DB.Model(&models.Batch{}).Where("batch_number = ?", input.BatchNumber).Count(&existing).Error; err != nil {
		return respondError(c, &apperrors.InfrastructureError{Err: err})
	}
	if existing > 0 {
		return respondError(c, &apperrors.ConflictError{Message: "batch number already exists"})
	}

	batch := models.Batch{
		BatchNumber:     input.BatchNumber,
		ProductID:       input.ProductID,
		SupplierID:      input.SupplierID,
		ManufactureDate: input.ManufactureDate,
		ExpiryDate:      input.ExpiryDate,
		Quantity:        input.Quantity,
		QuantityLeft:    input.Quantity,
		CostPrice:       input.CostPrice,
		SellingPrice:    input.SellingPrice,
		ReorderLevel:    input.ReorderLevel,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&batch).Error; err != nil {
			return err
		}
		return tx.Model(&models.Product{}).
			Where("product_id = ?", input.ProductID).
			Updates(map[string]interface{}{
				"quantity_on_hand": gorm.Expr("quantity_on_hand + ?", input.Quantity),
				"quantity_total":   gorm.Expr("quantity_total + ?", input.Quantity),
			}).Error
	})
	if err != nil {
		return respondError(c, &apperrors.InfrastructureError{Err: err})
	}
	return c.Status(fiber.StatusCreated).JSON(batch)
}
