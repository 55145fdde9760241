package checkout

import "fmt"

// NotFoundError is returned when a referenced order, branch or delivery area
// does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// InvalidPromoCodeError means no stored promo code matches Code.
type InvalidPromoCodeError struct {
	Code string
}

func (e *InvalidPromoCodeError) Error() string {
	if e.Code == "" {
		return "promo code is required"
	}
	return fmt.Sprintf("invalid promo code %q", e.Code)
}
