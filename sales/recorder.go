package sales

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/HalimKing/Point-of-Sale-System--sub001/apperrors"
	"github.com/HalimKing/Point-of-Sale-System--sub001/models"
)

// CartItem is one submitted line of a checkout cart.
type CartItem struct {
	ProductID uint            `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CreateSaleInput is the full cart submission.
type CreateSaleInput struct {
	Items           []CartItem           `json:"items" validate:"required,min=1,dive"`
	Subtotal        decimal.Decimal      `json:"subtotal"`
	DiscountAmount  decimal.Decimal      `json:"discount_amount"`
	DiscountPercent *decimal.Decimal     `json:"discount_percent,omitempty"`
	TotalAmount     decimal.Decimal      `json:"total_amount"`
	PaymentMethod   models.PaymentMethod `json:"payment_method" validate:"required,oneof=cash card"`
	AmountReceived  decimal.Decimal      `json:"amount_received"`
	ChangeAmount    decimal.Decimal      `json:"change_amount"`
	CustomerName    string               `json:"customer_name" validate:"max=100"`
}

// Recorder validates cart submissions and persists them as a Sale with
// its SaleItems and the matching stock decrements, all in one database
// transaction.
type Recorder struct {
	db       *gorm.DB
	validate *validator.Validate
}

// NewRecorder creates a Recorder bound to the given database.
func NewRecorder(db *gorm.DB) *Recorder {
	v := validator.New()
	// Report validator failures under the json field name so the
	// per-field error map matches what the client actually sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Recorder{db: db, validate: v}
}

// Record validates the submission and persists it atomically,
// attributed to the given cashier. On validation failure nothing is
// written and a ValidationError carrying the full per-field report is
// returned. Insufficient stock at commit time returns a ConflictError
// and rolls everything back.
func (r *Recorder) Record(userID uint, input CreateSaleInput) (*models.Sale, error) {
	if verr := r.validateInput(input); verr != nil {
		return nil, verr
	}

	sale := &models.Sale{
		SaleID:          uuid.NewString(),
		Subtotal:        input.Subtotal,
		DiscountAmount:  input.DiscountAmount,
		DiscountPercent: input.DiscountPercent,
		GrandTotal:      input.TotalAmount,
		AmountPaid:      input.AmountReceived,
		ChangeAmount:    input.ChangeAmount,
		PaymentMethod:   input.PaymentMethod,
		Status:          models.SaleStatusCompleted,
		UserID:          userID,
	}
	if name := strings.TrimSpace(input.CustomerName); name != "" {
		sale.CustomerName = &name
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sale).Error; err != nil {
			return &apperrors.InfrastructureError{Err: err}
		}

		for idx, line := range input.Items {
			var product models.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NewValidation(
						fmt.Sprintf("items[%d].product_id", idx),
						fmt.Sprintf("product %d does not exist", line.ProductID),
					)
				}
				return &apperrors.InfrastructureError{Err: err}
			}

			profit, err := drainStock(tx, &product, line)
			if err != nil {
				return err
			}

			item := models.SaleItem{
				SaleID:      sale.SaleID,
				ProductID:   product.ProductID,
				ProductName: product.ProductName,
				CategoryID:  product.CategoryID,
				Quantity:    line.Quantity,
				UnitPrice:   line.UnitPrice,
				TotalAmount: line.Subtotal,
				Profit:      profit,
				ExpiryDate:  product.ExpiryDate,
			}
			if err := tx.Create(&item).Error; err != nil {
				return &apperrors.InfrastructureError{Err: err}
			}
			sale.Items = append(sale.Items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// drainStock consumes line.Quantity units of the product from its
// batches, earliest expiry first, and mirrors the movement on the
// product counters. Every decrement is a guarded single-statement
// update so two concurrent checkouts can never take the same last
// unit: whichever commits second matches zero rows and fails with a
// ConflictError instead of driving quantity_left negative.
func drainStock(tx *gorm.DB, product *models.Product, line CartItem) (decimal.Decimal, error) {
	var batches []models.Batch
	err := tx.Where("product_id = ? AND quantity_left > 0", product.ProductID).
		Order("expiry_date IS NULL, expiry_date ASC, batch_id ASC").
		Find(&batches).Error
	if err != nil {
		return decimal.Zero, &apperrors.InfrastructureError{Err: err}
	}

	profit := decimal.Zero
	remaining := line.Quantity
	for _, batch := range batches {
		if remaining == 0 {
			break
		}
		take := remaining
		if take > batch.QuantityLeft {
			take = batch.QuantityLeft
		}

		res := tx.Model(&models.Batch{}).
			Where("batch_id = ? AND quantity_left >= ?", batch.BatchID, take).
			Updates(map[string]interface{}{
				"quantity_left": gorm.Expr("quantity_left - ?", take),
				"quantity_sold": gorm.Expr("quantity_sold + ?", take),
			})
		if res.Error != nil {
			return decimal.Zero, &apperrors.InfrastructureError{Err: res.Error}
		}
		if res.RowsAffected == 0 {
			return decimal.Zero, &apperrors.ConflictError{
				Message: fmt.Sprintf("insufficient stock for %s", product.ProductName),
			}
		}

		taken := decimal.NewFromInt(int64(take))
		profit = profit.Add(line.UnitPrice.Sub(batch.CostPrice).Mul(taken))
		remaining -= take
	}
	if remaining > 0 {
		return decimal.Zero, &apperrors.ConflictError{
			Message: fmt.Sprintf("insufficient stock for %s", product.ProductName),
		}
	}

	res := tx.Model(&models.Product{}).
		Where("product_id = ? AND quantity_on_hand >= ?", product.ProductID, line.Quantity).
		Updates(map[string]interface{}{
			"quantity_on_hand": gorm.Expr("quantity_on_hand - ?", line.Quantity),
			"quantity_sold":    gorm.Expr("quantity_sold + ?", line.Quantity),
		})
	if res.Error != nil {
		return decimal.Zero, &apperrors.InfrastructureError{Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return decimal.Zero, &apperrors.ConflictError{
			Message: fmt.Sprintf("insufficient stock for %s", product.ProductName),
		}
	}
	return profit, nil
}
