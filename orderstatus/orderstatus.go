// Package orderstatus is the order lifecycle: Pending, In-Process, Dispatched
// and Complete, with Cancel reachable from any non-terminal state.
//
// Administrative updates may jump directly to any status. Complete and Cancel
// are terminal; when Machine.LockTerminal is set, nothing leaves them.
package orderstatus

import (
	"strings"
	"time"

	"go-restaurant-ordering/models"
)

// Lifecycle lists the statuses in their intended order of progression.
var Lifecycle = []models.OrderStatus{
	models.StatusPending,
	models.StatusInProcess,
	models.StatusDispatched,
	models.StatusComplete,
	models.StatusCancel,
}

// Parse accepts a status name case-insensitively.
func Parse(s string) (models.OrderStatus, error) {
	s = strings.TrimSpace(s)
	for _, status := range Lifecycle {
		if strings.EqualFold(string(status), s) {
			return status, nil
		}
	}
	return "", &InvalidStatusError{Status: s}
}

func IsTerminal(s models.OrderStatus) bool {
	return s == models.StatusComplete || s == models.StatusCancel
}

// Update is an administrative status change.
type Update struct {
	Status       models.OrderStatus `json:"status"`
	CancelReason string             `json:"cancelReason"`
	RiderName    string             `json:"riderName"`
}

type Machine struct {
	LockTerminal bool
}

// Allowed returns the statuses an order in from may be moved to.
func (m Machine) Allowed(from models.OrderStatus) []models.OrderStatus {
	if m.LockTerminal && IsTerminal(from) {
		return nil
	}
	allowed := make([]models.OrderStatus, 0, len(Lifecycle))
	for _, status := range Lifecycle {
		if status != from {
			allowed = append(allowed, status)
		}
	}
	return allowed
}

// Transition applies u to order and stamps UpdatedAt. order is left untouched
// when the update is rejected.
//
// Setting the current status again succeeds without changes, except for Cancel,
// which still needs a reason and replaces the stored one, and Dispatched, which
// replaces the rider when a new name is given.
func (m Machine) Transition(order *models.Order, u Update, now time.Time) error {
	if !known(u.Status) {
		return &InvalidStatusError{Status: string(u.Status)}
	}
	reason := strings.TrimSpace(u.CancelReason)
	if u.Status == models.StatusCancel && reason == "" {
		return &MissingCancelReasonError{}
	}

	rider := strings.TrimSpace(u.RiderName)
	if u.Status == order.Status {
		switch {
		case u.Status == models.StatusCancel && reason != order.CancelReason:
			order.CancelReason = reason
			order.UpdatedAt = now
		case u.Status == models.StatusDispatched && rider != "" && rider != order.RiderName:
			order.RiderName = rider
			order.UpdatedAt = now
		}
		return nil
	}

	if m.LockTerminal && IsTerminal(order.Status) {
		return &TerminalStateError{From: order.Status, To: u.Status}
	}

	order.Status = u.Status
	order.CancelReason = ""
	switch u.Status {
	case models.StatusCancel:
		order.CancelReason = reason
	case models.StatusDispatched:
		if rider != "" {
			order.RiderName = rider
		}
	}
	order.UpdatedAt = now
	return nil
}

func known(s models.OrderStatus) bool {
	for _, status := range Lifecycle {
		if status == s {
			return true
		}
	}
	return false
}
