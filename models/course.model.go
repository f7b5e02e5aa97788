package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CourseStatusDraft     = "draft"
	CourseStatusPublished = "published"
	CourseStatusArchived  = "archived"

	CourseLevelBeginner     = "beginner"
	CourseLevelIntermediate = "intermediate"
	CourseLevelExpert       = "expert"
)

type Course struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Thumbnail       string               `bson:"thumbnail" json:"thumbnail"`
	Title           string               `bson:"title" json:"title"`
	Description     string               `bson:"description" json:"description"`
	UsePoint        bool                 `bson:"usePoint" json:"usePoint"`
	Price           int                  `bson:"price" json:"price"`
	Point           int                  `bson:"point" json:"point"`
	Objectives      []string             `bson:"objectives" json:"objectives"`
	GroupIDs        []primitive.ObjectID `bson:"group_ids" json:"group_ids"`
	SectionIDs      []primitive.ObjectID `bson:"section_ids" json:"section_ids"`
	Status          string               `bson:"status" json:"status"`
	Rating          float64              `bson:"rating" json:"rating"` // by student
	Instructor      primitive.ObjectID   `bson:"instructor" json:"instructor"`
	StudentEnrolled int                  `bson:"student_enrolled" json:"student_enrolled"`
	Note            string               `bson:"note,omitempty" json:"note,omitempty"`
	Pretest         *primitive.ObjectID  `bson:"pretest" json:"pretest"`
	Posttest        *primitive.ObjectID  `bson:"posttest" json:"posttest"`
	UseCertificate  bool                 `bson:"useCertificate" json:"useCertificate"`
	Duration        int                  `bson:"duration" json:"duration"`
	Level           string               `bson:"level" json:"level"`
	Slug            string               `bson:"slug" json:"slug"`
	CreatedBy       primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	UpdatedBy       primitive.ObjectID   `bson:"updatedBy" json:"updatedBy"`
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt" json:"updatedAt"`
}
