package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Branch struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Address   string             `bson:"address,omitempty" json:"address,omitempty"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DeliveryArea names are unique per branch only; the same area may be served
// by several branches at different fees.
type DeliveryArea struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name" validate:"required"`
	Fee       int64              `bson:"fee" json:"fee" validate:"gte=0"`
	Branch    primitive.ObjectID `bson:"branch" json:"branch" validate:"required"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PromoCode codes are stored upper-cased.
type PromoCode struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Code      string             `bson:"code" json:"code" validate:"required,max=32"`
	Discount  float64            `bson:"discount" json:"discount" validate:"gt=0,lte=100"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

const DiscountSettingID = "global"

type DiscountSetting struct {
	ID         string    `bson:"_id" json:"-"`
	Percentage float64   `bson:"percentage" json:"percentage" validate:"gte=0,lte=100"`
	IsActive   bool      `bson:"isActive" json:"isActive"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

type Counter struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}
