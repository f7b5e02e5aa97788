package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Seed values created at startup. Route allow-lists reference these names.
const (
	RoleAdmin   = "Admin"
	RoleStudent = "Student"
	RoleTutor   = "Tutor"
)

type Role struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	RoleName  string             `bson:"role_name" json:"role_name"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
