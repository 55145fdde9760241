// Package pricing turns cart lines, a delivery fee and the discount
// percentages in force into whole-unit order totals.
//
// Discounts are additive: the global and promo percentages are each applied to
// the same rounded subtotal and the two amounts are summed. They are never
// compounded.
package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"go-restaurant-ordering/models"
)

// MaxAmount bounds the subtotal and delivery fee so totals never overflow
// int64.
const MaxAmount int64 = 1_000_000_000_000_000

var (
	hundred   = decimal.NewFromInt(100)
	maxAmount = decimal.NewFromInt(MaxAmount)
)

// Totals is the priced breakdown of an order. All amounts are whole currency
// units.
type Totals struct {
	Subtotal                 int64   `json:"subtotal"`
	Tax                      int64   `json:"tax"`
	DeliveryFee              int64   `json:"deliveryFee"`
	GlobalDiscountPercentage float64 `json:"globalDiscountPercentage"`
	GlobalDiscount           int64   `json:"globalDiscount"`
	PromoDiscountPercentage  float64 `json:"promoDiscountPercentage"`
	PromoDiscount            int64   `json:"promoDiscount"`
	Discount                 int64   `json:"discount"`
	Total                    int64   `json:"total"`
}

// ComputeOrderTotals prices items. The subtotal is rounded half-up once, on
// the aggregate, and the grand total is clamped at zero. Items are not
// modified.
func ComputeOrderTotals(items []models.OrderItem, deliveryFee int64, globalPct float64, globalActive bool, promoPct float64) (Totals, error) {
	if deliveryFee < 0 {
		return Totals{}, &InvalidPriceError{Field: "deliveryFee", Reason: "must not be negative"}
	}
	if deliveryFee > MaxAmount {
		return Totals{}, &InvalidPriceError{Field: "deliveryFee", Reason: "exceeds maximum amount"}
	}
	if err := checkPercentage("globalDiscountPercentage", globalPct); err != nil {
		return Totals{}, err
	}
	if err := checkPercentage("promoDiscountPercentage", promoPct); err != nil {
		return Totals{}, err
	}

	sum := decimal.Zero
	for i, item := range items {
		line, err := LineTotal(item)
		if err != nil {
			var ipe *InvalidPriceError
			if errors.As(err, &ipe) {
				ipe.Field = fmt.Sprintf("items[%d].%s", i, ipe.Field)
			}
			return Totals{}, err
		}
		sum = sum.Add(line)
	}
	if sum.GreaterThan(maxAmount) {
		return Totals{}, &InvalidPriceError{Field: "subtotal", Reason: "exceeds maximum amount"}
	}

	subtotal := roundHalfUp(sum)
	t := Totals{
		Subtotal:    subtotal,
		Tax:         0,
		DeliveryFee: deliveryFee,
	}
	if globalActive {
		t.GlobalDiscountPercentage = globalPct
		t.GlobalDiscount = percentOf(subtotal, globalPct)
	}
	t.PromoDiscountPercentage = promoPct
	t.PromoDiscount = percentOf(subtotal, promoPct)
	t.Discount = t.GlobalDiscount + t.PromoDiscount

	t.Total = t.Subtotal + t.Tax + t.DeliveryFee - t.Discount
	if t.Total < 0 {
		t.Total = 0
	}
	return t, nil
}

// LineTotal is (unit price + extras + side orders) x quantity, unrounded.
func LineTotal(item models.OrderItem) (decimal.Decimal, error) {
	if item.Quantity <= 0 {
		return decimal.Zero, &InvalidPriceError{Field: "quantity", Reason: "must be positive"}
	}
	if item.Price < 0 {
		return decimal.Zero, &InvalidPriceError{Field: "price", Reason: "must not be negative"}
	}
	if item.SelectedVariation != nil && item.SelectedVariation.Price < 0 {
		return decimal.Zero, &InvalidPriceError{Field: "selectedVariation.price", Reason: "must not be negative"}
	}

	unit := decimal.NewFromFloat(item.UnitPrice())
	for j, extra := range item.SelectedExtras {
		if extra.Price < 0 {
			return decimal.Zero, &InvalidPriceError{Field: fmt.Sprintf("selectedExtras[%d].price", j), Reason: "must not be negative"}
		}
		unit = unit.Add(decimal.NewFromFloat(extra.Price))
	}
	for j, side := range item.SelectedSideOrders {
		if side.Price < 0 {
			return decimal.Zero, &InvalidPriceError{Field: fmt.Sprintf("selectedSideOrders[%d].price", j), Reason: "must not be negative"}
		}
		unit = unit.Add(decimal.NewFromFloat(side.Price))
	}
	return unit.Mul(decimal.NewFromInt(int64(item.Quantity))), nil
}

// Apply copies t onto order.
func (t Totals) Apply(order *models.Order) {
	order.Subtotal = t.Subtotal
	order.Tax = t.Tax
	order.DeliveryFee = t.DeliveryFee
	order.GlobalDiscountPercentage = t.GlobalDiscountPercentage
	order.GlobalDiscount = t.GlobalDiscount
	order.PromoDiscountPercentage = t.PromoDiscountPercentage
	order.PromoDiscount = t.PromoDiscount
	order.Discount = t.Discount
	order.Total = t.Total
}

func percentOf(amount int64, pct float64) int64 {
	if pct == 0 {
		return 0
	}
	return roundHalfUp(decimal.NewFromInt(amount).Mul(decimal.NewFromFloat(pct)).Div(hundred))
}

// roundHalfUp rounds to the nearest whole unit. Inputs are never negative, so
// the library's half-away-from-zero rounding is half-up here.
func roundHalfUp(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

func checkPercentage(field string, pct float64) error {
	if pct < 0 || pct > 100 {
		return &InvalidPriceError{Field: field, Reason: "must be between 0 and 100"}
	}
	return nil
}
