package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderType string

const (
	OrderTypeDelivery OrderType = "delivery"
	OrderTypePickup   OrderType = "pickup"
)

type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "cod"
	PaymentOnline PaymentMethod = "online"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusInProcess  OrderStatus = "In-Process"
	StatusDispatched OrderStatus = "Dispatched"
	StatusComplete   OrderStatus = "Complete"
	StatusCancel     OrderStatus = "Cancel"
)

// Order is the persisted checkout document. OrderNo is assigned once by the
// sequencer and never changes; ID is assigned by the store.
type Order struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	OrderNo int64              `bson:"orderNo" json:"orderNo"`

	FullName        string `bson:"fullName" json:"fullName"`
	MobileNumber    string `bson:"mobileNumber" json:"mobileNumber"`
	AlternateMobile string `bson:"alternateMobile,omitempty" json:"alternateMobile,omitempty"`
	Email           string `bson:"email,omitempty" json:"email,omitempty"`
	DeliveryAddress string `bson:"deliveryAddress,omitempty" json:"deliveryAddress,omitempty"`
	NearestLandmark string `bson:"nearestLandmark,omitempty" json:"nearestLandmark,omitempty"`

	OrderType        OrderType           `bson:"orderType" json:"orderType"`
	PaymentMethod    PaymentMethod       `bson:"paymentMethod" json:"paymentMethod"`
	Status           OrderStatus         `bson:"status" json:"status"`
	Branch           primitive.ObjectID  `bson:"branch" json:"branch"`
	DeliveryArea     *primitive.ObjectID `bson:"deliveryArea,omitempty" json:"deliveryArea,omitempty"`
	DeliveryAreaName string              `bson:"deliveryAreaName,omitempty" json:"deliveryAreaName,omitempty"`

	Items []OrderItem `bson:"items" json:"items"`

	Subtotal                 int64   `bson:"subtotal" json:"subtotal"`
	Tax                      int64   `bson:"tax" json:"tax"`
	Discount                 int64   `bson:"discount" json:"discount"`
	Total                    int64   `bson:"total" json:"total"`
	DeliveryFee              int64   `bson:"deliveryFee" json:"deliveryFee"`
	GlobalDiscount           int64   `bson:"globalDiscount" json:"globalDiscount"`
	GlobalDiscountPercentage float64 `bson:"globalDiscountPercentage" json:"globalDiscountPercentage"`
	PromoCode                string  `bson:"promoCode,omitempty" json:"promoCode,omitempty"`
	PromoDiscount            int64   `bson:"promoDiscount" json:"promoDiscount"`
	PromoDiscountPercentage  float64 `bson:"promoDiscountPercentage" json:"promoDiscountPercentage"`

	CancelReason    string `bson:"cancelReason,omitempty" json:"cancelReason,omitempty"`
	RiderName       string `bson:"riderName,omitempty" json:"riderName,omitempty"`
	ChangeRequest   string `bson:"changeRequest,omitempty" json:"changeRequest,omitempty"`
	BankName        string `bson:"bankName,omitempty" json:"bankName,omitempty"`
	ReceiptImageURL string `bson:"receiptImageUrl,omitempty" json:"receiptImageUrl,omitempty"`
	IsGift          bool   `bson:"isGift" json:"isGift"`
	GiftMessage     string `bson:"giftMessage,omitempty" json:"giftMessage,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
