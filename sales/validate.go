package sales

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/HalimKing/Point-of-Sale-System--sub001/apperrors"
	"github.com/HalimKing/Point-of-Sale-System--sub001/models"
)

var hundred = decimal.NewFromInt(100)

// validateInput checks the whole submission and returns a
// ValidationError listing every failing field, or nil. The submission
// is rejected as a whole: no partial persistence ever happens.
func (r *Recorder) validateInput(input CreateSaleInput) error {
	fields := map[string]string{}

	if err := r.validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields[structuredFieldName(fe)] = validationMessage(fe)
			}
		} else {
			return &apperrors.InfrastructureError{Err: err}
		}
	}

	itemsTotal := decimal.Zero
	for idx, line := range input.Items {
		prefix := fmt.Sprintf("items[%d]", idx)

		if line.Quantity > 0 && line.ProductID != 0 {
			if err := r.checkProductExists(line.ProductID); err != nil {
				var nf *apperrors.NotFoundError
				if errors.As(err, &nf) {
					fields[prefix+".product_id"] = fmt.Sprintf("product %d does not exist", line.ProductID)
				} else {
					return err
				}
			}
		}
		if line.UnitPrice.IsNegative() {
			fields[prefix+".unit_price"] = "unit price must not be negative"
		}
		if line.Subtotal.IsNegative() {
			fields[prefix+".subtotal"] = "subtotal must not be negative"
		}
		expected := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		if line.Quantity > 0 && !line.Subtotal.Equal(expected) {
			fields[prefix+".subtotal"] = fmt.Sprintf("subtotal must equal quantity x unit price (%s)", expected)
		}
		itemsTotal = itemsTotal.Add(line.Subtotal)
	}

	if input.Subtotal.IsNegative() {
		fields["subtotal"] = "subtotal must not be negative"
	} else if len(input.Items) > 0 && !input.Subtotal.Equal(itemsTotal) {
		fields["subtotal"] = fmt.Sprintf("subtotal must equal the sum of item subtotals (%s)", itemsTotal)
	}

	if input.DiscountAmount.IsNegative() {
		fields["discount_amount"] = "discount amount must not be negative"
	} else if input.DiscountAmount.GreaterThan(input.Subtotal) {
		fields["discount_amount"] = "discount amount must not exceed the subtotal"
	}

	if input.DiscountPercent != nil {
		if input.DiscountPercent.IsNegative() || input.DiscountPercent.GreaterThan(hundred) {
			fields["discount_percent"] = "discount percent must be between 0 and 100"
		}
	}

	if input.TotalAmount.IsNegative() {
		fields["total_amount"] = "total amount must not be negative"
	} else if _, ok := fields["subtotal"]; !ok {
		expected := input.Subtotal.Sub(input.DiscountAmount)
		if !input.TotalAmount.Equal(expected) {
			fields["total_amount"] = fmt.Sprintf("total amount must equal subtotal minus discount (%s)", expected)
		}
	}

	if input.AmountReceived.IsNegative() {
		fields["amount_received"] = "amount received must not be negative"
	}
	if input.ChangeAmount.IsNegative() {
		fields["change_amount"] = "change amount must not be negative"
	} else if input.AmountReceived.GreaterThanOrEqual(input.TotalAmount) {
		expected := input.AmountReceived.Sub(input.TotalAmount)
		if !input.ChangeAmount.Equal(expected) {
			fields["change_amount"] = fmt.Sprintf("change amount must equal amount received minus total (%s)", expected)
		}
	}

	if len(fields) > 0 {
		return &apperrors.ValidationError{Fields: fields}
	}
	return nil
}

func (r *Recorder) checkProductExists(productID uint) error {
	var count int64
	err := r.db.Model(&models.Product{}).Where("product_id = ?", productID).Count(&count).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			count = 0
		} else {
			return &apperrors.InfrastructureError{Err: err}
		}
	}
	if count == 0 {
		return &apperrors.NotFoundError{Entity: "product", ID: productID}
	}
	return nil
}

// structuredFieldName rewrites validator namespaces like
// "CreateSaleInput.items[0].quantity" into "items[0].quantity".
func structuredFieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := len("CreateSaleInput."); len(ns) > i && ns[:i] == "CreateSaleInput." {
		return ns[i:]
	}
	return fe.Field()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "min":
		return "at least one item is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "invalid value"
	}
}
