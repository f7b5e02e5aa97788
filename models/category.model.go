package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name      string               `bson:"name" json:"name"`
	GroupIDs  []primitive.ObjectID `bson:"group_ids" json:"group_ids"`
	CreatedBy primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	UpdatedBy primitive.ObjectID   `bson:"updatedBy" json:"updatedBy"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}
