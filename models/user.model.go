package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Firstname       string               `bson:"firstname" json:"firstname"`
	Lastname        string               `bson:"lastname" json:"lastname"`
	Status          bool                 `bson:"status" json:"status"`
	Email           string               `bson:"email" json:"email"`
	EmailVerifiedAt *time.Time           `bson:"email_verified_at" json:"email_verified_at"`
	Point           int                  `bson:"point" json:"point"`
	Password        string               `bson:"password" json:"-"` // never serialized
	RoleIDs         []primitive.ObjectID `bson:"role_ids" json:"role_ids"`
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt" json:"updatedAt"`
}
