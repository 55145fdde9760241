package pricing

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cucumber/godog"

	"go-restaurant-ordering/models"
)

type pricingTestContext struct {
	items        []models.OrderItem
	deliveryFee  int64
	globalPct    float64
	globalActive bool
	promoPct     float64
	totals       Totals
	err          error
}

func (c *pricingTestContext) reset() {
	*c = pricingTestContext{}
}

func (c *pricingTestContext) anEmptyCart() error {
	c.items = nil
	return nil
}

func (c *pricingTestContext) aLinePricedWithQuantity(price float64, qty int) error {
	c.items = append(c.items, models.OrderItem{
		ID:       fmt.Sprintf("item-%d", len(c.items)),
		Title:    "Item",
		Price:    price,
		Quantity: qty,
	})
	return nil
}

func (c *pricingTestContext) lastLine() (*models.OrderItem, error) {
	if len(c.items) == 0 {
		return nil, errors.New("no lines in cart")
	}
	return &c.items[len(c.items)-1], nil
}

func (c *pricingTestContext) theLastLineHasVariationPriced(name string, price float64) error {
	line, err := c.lastLine()
	if err != nil {
		return err
	}
	line.SelectedVariation = &models.Selection{Name: name, Price: price}
	return nil
}

func (c *pricingTestContext) theLastLineHasExtraPriced(name string, price float64) error {
	line, err := c.lastLine()
	if err != nil {
		return err
	}
	line.SelectedExtras = append(line.SelectedExtras, models.Selection{Name: name, Price: price})
	return nil
}

func (c *pricingTestContext) aDeliveryFeeOf(fee int64) error {
	c.deliveryFee = fee
	return nil
}

func (c *pricingTestContext) anActiveGlobalDiscountOfPercent(pct float64) error {
	c.globalPct, c.globalActive = pct, true
	return nil
}

func (c *pricingTestContext) anInactiveGlobalDiscountOfPercent(pct float64) error {
	c.globalPct, c.globalActive = pct, false
	return nil
}

func (c *pricingTestContext) aPromoDiscountOfPercent(pct float64) error {
	c.promoPct = pct
	return nil
}

func (c *pricingTestContext) theOrderIsPriced() error {
	c.totals, c.err = ComputeOrderTotals(c.items, c.deliveryFee, c.globalPct, c.globalActive, c.promoPct)
	return nil
}

func (c *pricingTestContext) expectAmount(name string, got, want int64) error {
	if c.err != nil {
		return fmt.Errorf("pricing failed: %w", c.err)
	}
	if got != want {
		return fmt.Errorf("expected %s %d, got %d", name, want, got)
	}
	return nil
}

func (c *pricingTestContext) theSubtotalIs(want int64) error {
	return c.expectAmount("subtotal", c.totals.Subtotal, want)
}

func (c *pricingTestContext) theGlobalDiscountIs(want int64) error {
	return c.expectAmount("global discount", c.totals.GlobalDiscount, want)
}

func (c *pricingTestContext) thePromoDiscountIs(want int64) error {
	return c.expectAmount("promo discount", c.totals.PromoDiscount, want)
}

func (c *pricingTestContext) theDiscountIs(want int64) error {
	return c.expectAmount("discount", c.totals.Discount, want)
}

func (c *pricingTestContext) theTotalIs(want int64) error {
	return c.expectAmount("total", c.totals.Total, want)
}

func (c *pricingTestContext) pricingFailsOnField(field string) error {
	var ipe *InvalidPriceError
	if !errors.As(c.err, &ipe) {
		return fmt.Errorf("expected InvalidPriceError, got %v", c.err)
	}
	if ipe.Field != field {
		return fmt.Errorf("expected field %q, got %q", field, ipe.Field)
	}
	return nil
}

func InitializePricingScenario(ctx *godog.ScenarioContext) {
	tc := &pricingTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^an empty cart$`, tc.anEmptyCart)
	ctx.Step(`^a line priced (\d+(?:\.\d+)?) with quantity (-?\d+)$`, tc.aLinePricedWithQuantity)
	ctx.Step(`^the last line has variation "([^"]*)" priced (\d+(?:\.\d+)?)$`, tc.theLastLineHasVariationPriced)
	ctx.Step(`^the last line has extra "([^"]*)" priced (\d+(?:\.\d+)?)$`, tc.theLastLineHasExtraPriced)
	ctx.Step(`^a delivery fee of (\d+)$`, tc.aDeliveryFeeOf)
	ctx.Step(`^an active global discount of (\d+(?:\.\d+)?) percent$`, tc.anActiveGlobalDiscountOfPercent)
	ctx.Step(`^an inactive global discount of (\d+(?:\.\d+)?) percent$`, tc.anInactiveGlobalDiscountOfPercent)
	ctx.Step(`^a promo discount of (\d+(?:\.\d+)?) percent$`, tc.aPromoDiscountOfPercent)

	ctx.Step(`^the order is priced$`, tc.theOrderIsPriced)

	ctx.Step(`^the subtotal is (\d+)$`, tc.theSubtotalIs)
	ctx.Step(`^the global discount is (\d+)$`, tc.theGlobalDiscountIs)
	ctx.Step(`^the promo discount is (\d+)$`, tc.thePromoDiscountIs)
	ctx.Step(`^the discount is (\d+)$`, tc.theDiscountIs)
	ctx.Step(`^the total is (\d+)$`, tc.theTotalIs)
	ctx.Step(`^pricing fails on field "([^"]*)"$`, tc.pricingFailsOnField)
}

func TestPricingFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializePricingScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/pricing.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
