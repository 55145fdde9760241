package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      *string            `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Password  *string            `bson:"password" json:"password,omitempty" validate:"required,min=6"`
	Email     *string            `bson:"email" json:"email" validate:"email,required"`
	Phone     *string            `bson:"phone,omitempty" json:"phone,omitempty"`
	User_role *string            `bson:"user_role" json:"user_role" validate:"required,eq=ADMIN|eq=STAFF"`

	Token         *string   `bson:"token,omitempty" json:"token,omitempty"`
	Refresh_Token *string   `bson:"refresh_token,omitempty" json:"refresh_token,omitempty"`
	Created_at    time.Time `bson:"created_at" json:"created_at"`
	Updated_at    time.Time `bson:"updated_at" json:"updated_at"`
	User_id       string    `bson:"user_id" json:"user_id"`
}
