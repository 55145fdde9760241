package models

// CheckoutRequest is the storefront submission. Pointer fields distinguish an
// omitted value from an explicit zero.
type CheckoutRequest struct {
	FullName        string        `json:"fullName" validate:"required"`
	MobileNumber    string        `json:"mobileNumber" validate:"required,mobile"`
	AlternateMobile string        `json:"alternateMobile"`
	Email           string        `json:"email" validate:"omitempty,email"`
	DeliveryAddress string        `json:"deliveryAddress"`
	NearestLandmark string        `json:"nearestLandmark"`
	OrderType       OrderType     `json:"orderType" validate:"required,oneof=delivery pickup"`
	PaymentMethod   PaymentMethod `json:"paymentMethod" validate:"omitempty,oneof=cod online"`
	OnlineOption    string        `json:"onlineOption"`
	BankName        string        `json:"bankName"`
	ReceiptImageURL string        `json:"receiptImageUrl"`
	ChangeRequest   string        `json:"changeRequest"`
	IsGift          bool          `json:"isGift"`
	GiftMessage     string        `json:"giftMessage"`
	Branch          string        `json:"branch"`
	DeliveryArea    string        `json:"deliveryArea"`
	PromoCode       string        `json:"promoCode"`
	Items           []CartItem    `json:"items"`
}

type CartItem struct {
	ID                  string          `json:"id"`
	Title               string          `json:"title"`
	Price               *float64        `json:"price"`
	Quantity            *int            `json:"quantity"`
	ImageURL            string          `json:"imageUrl"`
	SpecialInstructions string          `json:"specialInstructions"`
	SelectedVariation   *CartSelection  `json:"selectedVariation"`
	SelectedExtras      []CartSelection `json:"selectedExtras"`
	SelectedSideOrders  []CartSideOrder `json:"selectedSideOrders"`
}

type CartSelection struct {
	Name  string   `json:"name"`
	Price *float64 `json:"price"`
}

type CartSideOrder struct {
	Name     string   `json:"name"`
	Price    *float64 `json:"price"`
	Category string   `json:"category"`
}
