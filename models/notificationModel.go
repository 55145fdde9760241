package models

const (
	EventNewOrder    = "newOrder"
	EventOrderStatus = "orderStatus"
	EventOrderUpdate = "orderUpdate"
)

// Notification is one message on the admin order feed.
type Notification struct {
	Event   string `json:"event"`
	Payload *Order `json:"payload"`
}
