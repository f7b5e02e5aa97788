package sectionController

import (
	"log"
	"time"

	"jubetech/database"
	"jubetech/middleware"
	"jubetech/models"
	"jubetech/utils"
	sectionValidator "jubetech/validators/section"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SectionController struct {
	DB *mongo.Database
}

func NewSectionController(db *mongo.Database) *SectionController {
	return &SectionController{DB: db}
}

func toLessonIDs(hexIDs []string) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(hexIDs))
	for _, id := range hexIDs {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			ids = append(ids, oid)
		}
	}
	return ids
}

// CreateSections inserts a batch of sections and returns their ids so the
// caller can attach them to a course.
func (ctl *SectionController) CreateSections(c *fiber.Ctx) error {
	user, ok := middleware.GetAuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The user was not found.", nil)
	}
	reqData, ok := c.Locals("validatedSections").(*sectionValidator.SectionsRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	now := time.Now()
	docs := make([]interface{}, 0, len(reqData.Sections))
	for _, section := range reqData.Sections {
		docs = append(docs, models.Section{
			Title:     section.Title,
			LessonIDs: toLessonIDs(section.LessonIDs),
			CreatedBy: user.ID,
			UpdatedBy: user.ID,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	res, err := ctl.DB.Collection(database.ColSections).InsertMany(c.Context(), docs)
	if err != nil {
		log.Printf("Error creating sections: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "The sections were created successfully.", fiber.Map{
		"section_ids": res.InsertedIDs,
	})
}

// GetSectionsByTutor lists the caller's sections with pagination.
func (ctl *SectionController) GetSectionsByTutor(c *fiber.Ctx) error {
	user, ok := middleware.GetAuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The user was not found.", nil)
	}

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 20)
	if page < 1 || pageSize < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "The page or pageSize has an invalid format.", nil)
	}

	filter := bson.M{"createdBy": user.ID}
	if title := c.Query("title"); title != "" {
		filter["title"] = bson.M{"$regex": title, "$options": "i"}
	}

	total, err := ctl.DB.Collection(database.ColSections).CountDocuments(c.Context(), filter)
	if err != nil {
		log.Printf("Error counting sections: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "updatedAt", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))
	cursor, err := ctl.DB.Collection(database.ColSections).Find(c.Context(), filter, opts)
	if err != nil {
		log.Printf("Error fetching sections: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	sections := []models.Section{}
	if err := cursor.All(c.Context(), &sections); err != nil {
		log.Printf("Error decoding sections: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sections fetched successfully.", fiber.Map{
		"sections":   sections,
		"pagination": utils.NewPagination(total, page, pageSize),
	})
}

// GetSectionById returns one of the caller's sections.
func (ctl *SectionController) GetSectionById(c *fiber.Ctx) error {
	user, ok := middleware.GetAuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The user was not found.", nil)
	}
	sectionID, err := primitive.ObjectIDFromHex(c.Params("section_id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The section was not found.", nil)
	}

	var section models.Section
	err = ctl.DB.Collection(database.ColSections).FindOne(c.Context(), bson.M{
		"_id":       sectionID,
		"createdBy": user.ID,
	}).Decode(&section)
	if err == mongo.ErrNoDocuments {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The section was not found.", nil)
	}
	if err != nil {
		log.Printf("Error fetching section: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section fetched successfully.", section)
}

// UpdateSection enforces ownership before applying the change.
func (ctl *SectionController) UpdateSection(c *fiber.Ctx) error {
	user, ok := middleware.GetAuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The user was not found.", nil)
	}
	sectionID, err := primitive.ObjectIDFromHex(c.Params("section_id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The section was not found.", nil)
	}
	reqData, ok := c.Locals("validatedSection").(*sectionValidator.SectionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	owner, err := database.IsOwner(c.Context(), ctl.DB, database.ColSections, sectionID, user.ID)
	if err != nil {
		log.Printf("Error checking section owner: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	if !owner {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "The section must be updated by the owner.", nil)
	}

	update := bson.M{"$set": bson.M{
		"title":      reqData.Title,
		"lesson_ids": toLessonIDs(reqData.LessonIDs),
		"updatedBy":  user.ID,
		"updatedAt":  time.Now(),
	}}
	if _, err := ctl.DB.Collection(database.ColSections).UpdateByID(c.Context(), sectionID, update); err != nil {
		log.Printf("Error updating section: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "The section was updated successfully.", nil)
}

// DeleteSection hard-deletes after the ownership check and detaches the
// section from any course that references it.
func (ctl *SectionController) DeleteSection(c *fiber.Ctx) error {
	user, ok := middleware.GetAuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The user was not found.", nil)
	}
	sectionID, err := primitive.ObjectIDFromHex(c.Params("section_id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The section was not found.", nil)
	}

	owner, err := database.IsOwner(c.Context(), ctl.DB, database.ColSections, sectionID, user.ID)
	if err != nil {
		log.Printf("Error checking section owner: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	if !owner {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "The section must be deleted by the owner.", nil)
	}

	if _, err := ctl.DB.Collection(database.ColSections).DeleteOne(c.Context(), bson.M{"_id": sectionID}); err != nil {
		log.Printf("Error deleting section: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	if _, err := ctl.DB.Collection(database.ColCourses).UpdateMany(c.Context(),
		bson.M{"section_ids": sectionID},
		bson.M{"$pull": bson.M{"section_ids": sectionID}},
	); err != nil {
		log.Printf("Error detaching section from courses: %v", err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "The section was deleted successfully.", nil)
}
