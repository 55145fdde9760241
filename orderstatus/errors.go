package orderstatus

import (
	"fmt"

	"go-restaurant-ordering/models"
)

type MissingCancelReasonError struct{}

func (e *MissingCancelReasonError) Error() string {
	return "cancel reason required"
}

// TerminalStateError is returned when a Complete or Cancel order would be
// moved to another status.
type TerminalStateError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *TerminalStateError) Error() string {
	return fmt.Sprintf("order is %s and cannot be moved to %s", e.From, e.To)
}

type InvalidStatusError struct {
	Status string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid order status %q", e.Status)
}
