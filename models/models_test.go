package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPaymentLabel(t *testing.T) {
	assert.Equal(t, "Cash", PaymentLabel(PaymentCash))
	assert.Equal(t, "Card", PaymentLabel(PaymentCard))
	assert.Equal(t, "momo", PaymentLabel(PaymentMethod("momo")))
}

func TestProductUnitProfit(t *testing.T) {
	p := Product{
		CostPrice:    decimal.RequireFromString("6.00"),
		SellingPrice: decimal.RequireFromString("10.00"),
	}
	assert.Equal(t, "4.00", p.UnitProfit().StringFixed(2))
}
