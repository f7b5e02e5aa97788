package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Section struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Title     string               `bson:"title" json:"title"`
	LessonIDs []primitive.ObjectID `bson:"lesson_ids" json:"lesson_ids"`
	CreatedBy primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	UpdatedBy primitive.ObjectID   `bson:"updatedBy" json:"updatedBy"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}
