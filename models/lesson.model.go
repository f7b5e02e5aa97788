package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	LessonTypeLecture = "lecture"
	LessonTypeVideo   = "video"
)

// MainContent is stored sanitized; see utils.SanitizeHTML.
// SubFile entries are object-store paths (already uploaded material).
type Lesson struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name          string             `bson:"name" json:"name"`
	Type          string             `bson:"type" json:"type"`
	SubFile       []string           `bson:"sub_file" json:"sub_file"`
	MainContent   string             `bson:"main_content" json:"main_content"`
	Duration      int                `bson:"duration" json:"duration"`
	IsFreePreview bool               `bson:"isFreePreview" json:"isFreePreview"`
	CreatedBy     primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	UpdatedBy     primitive.ObjectID `bson:"updatedBy" json:"updatedBy"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
