package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OTPLifetime is how long a signup token stays redeemable.
const OTPLifetime = 15 * time.Minute

type Token struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ForEmail    string             `bson:"for_email" json:"for_email"`
	Token       int                `bson:"token" json:"token"`
	ReferenceNo string             `bson:"reference_no" json:"reference_no"`
	ExpiredAt   time.Time          `bson:"expiredAt" json:"expiredAt"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
