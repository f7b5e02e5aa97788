package lessonController

import (
	"log"
	"time"

	"jubetech/database"
	"jubetech/middleware"
	"jubetech/models"
	"jubetech/utils"
	lessonValidator "jubetech/validators/lesson"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LessonController struct {
	DB *mongo.Database
}

func NewLessonController(db *mongo.Database) *LessonController {
	return &LessonController{DB: db}
}

// buildLessonFilter grows an owner-scoped predicate from the query params.
func buildLessonFilter(c *fiber.Ctx, ownerID primitive.ObjectID) bson.M {
	filter := bson.M{"createdBy": ownerID}
	if name := c.Query("name"); name != "" {
		filter["name"] = bson.M{"$regex": name, "$options": "i"}
	}
	if lessonType := c.Query("type"); lessonType != "" {
		filter["type"] = lessonType
	}
	if c.Query("isFreePreview") != "" {
		filter["isFreePreview"] = c.QueryBool("isFreePreview")
	}
	updated := bson.M{}
	if raw := c.Query("updatedFrom"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			updated["$gte"] = t
		}
	}
	if raw := c.Query("updatedTo"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			updated["$lte"] = t.Add(24*time.Hour - time.Nanosecond)
		}
	}
	if len(updated) > 0 {
		filter["updatedAt"] = updated
	}
	return filter
}

// CreateLesson sanitizes the rich-text content before storing.
func (ctl *LessonController) CreateLesson(c *fiber.Ctx) error {
	user, ok := middleware.GetAuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The user was not found.", nil)
	}
	reqData, ok := c.Locals("validatedLesson").(*lessonValidator.LessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	now := time.Now()
	lesson := models.Lesson{
		Name:          reqData.Name,
		Type:          reqData.Type,
		SubFile:       reqData.SubFile,
		MainContent:   utils.SanitizeHTML(reqData.MainContent),
		Duration:      reqData.Duration,
		IsFreePreview: *reqData.IsFreePreview,
		CreatedBy:     user.ID,
		UpdatedBy:     user.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if lesson.SubFile == nil {
		lesson.SubFile = []string{}
	}

	res, err := ctl.DB.Collection(database.ColLessons).InsertOne(c.Context(), lesson)
	if err != nil {
		log.Printf("Error creating lesson: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	lesson.ID = res.InsertedID.(primitive.ObjectID)
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "The lesson was created successfully.", lesson)
}

// GetLessonsByTutor lists the caller's lessons with filters and pagination.
func (ctl *LessonController) GetLessonsByTutor(c *fiber.Ctx) error {
	user, ok := middleware.GetAuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The user was not found.", nil)
	}

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 20)
	if page < 1 || pageSize < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "The page or pageSize has an invalid format.", nil)
	}

	filter := buildLessonFilter(c, user.ID)

	total, err := ctl.DB.Collection(database.ColLessons).CountDocuments(c.Context(), filter)
	if err != nil {
		log.Printf("Error counting lessons: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "updatedAt", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))
	cursor, err := ctl.DB.Collection(database.ColLessons).Find(c.Context(), filter, opts)
	if err != nil {
		log.Printf("Error fetching lessons: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	lessons := []models.Lesson{}
	if err := cursor.All(c.Context(), &lessons); err != nil {
		log.Printf("Error decoding lessons: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons fetched successfully.", fiber.Map{
		"lessons":    lessons,
		"pagination": utils.NewPagination(total, page, pageSize),
	})
}

// GetLessonById returns one of the caller's lessons.
func (ctl *LessonController) GetLessonById(c *fiber.Ctx) error {
	user, ok := middleware.GetAuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The user was not found.", nil)
	}
	lessonID, err := primitive.ObjectIDFromHex(c.Params("lesson_id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The lesson was not found.", nil)
	}

	var lesson models.Lesson
	err = ctl.DB.Collection(database.ColLessons).FindOne(c.Context(), bson.M{
		"_id":       lessonID,
		"createdBy": user.ID,
	}).Decode(&lesson)
	if err == mongo.ErrNoDocuments {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The lesson was not found.", nil)
	}
	if err != nil {
		log.Printf("Error fetching lesson: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully.", lesson)
}

// UpdateLesson re-sanitizes the content and enforces ownership.
func (ctl *LessonController) UpdateLesson(c *fiber.Ctx) error {
	user, ok := middleware.GetAuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The user was not found.", nil)
	}
	lessonID, err := primitive.ObjectIDFromHex(c.Params("lesson_id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The lesson was not found.", nil)
	}
	reqData, ok := c.Locals("validatedLesson").(*lessonValidator.LessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	owner, err := database.IsOwner(c.Context(), ctl.DB, database.ColLessons, lessonID, user.ID)
	if err != nil {
		log.Printf("Error checking lesson owner: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	if !owner {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "The lesson must be updated by the owner.", nil)
	}

	subFile := reqData.SubFile
	if subFile == nil {
		subFile = []string{}
	}
	update := bson.M{"$set": bson.M{
		"name":          reqData.Name,
		"type":          reqData.Type,
		"sub_file":      subFile,
		"main_content":  utils.SanitizeHTML(reqData.MainContent),
		"duration":      reqData.Duration,
		"isFreePreview": *reqData.IsFreePreview,
		"updatedBy":     user.ID,
		"updatedAt":     time.Now(),
	}}
	if _, err := ctl.DB.Collection(database.ColLessons).UpdateByID(c.Context(), lessonID, update); err != nil {
		log.Printf("Error updating lesson: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "The lesson was updated successfully.", nil)
}

// DeleteLesson hard-deletes after the ownership check and detaches the
// lesson from any section that references it.
func (ctl *LessonController) DeleteLesson(c *fiber.Ctx) error {
	user, ok := middleware.GetAuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The user was not found.", nil)
	}
	lessonID, err := primitive.ObjectIDFromHex(c.Params("lesson_id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The lesson was not found.", nil)
	}

	owner, err := database.IsOwner(c.Context(), ctl.DB, database.ColLessons, lessonID, user.ID)
	if err != nil {
		log.Printf("Error checking lesson owner: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	if !owner {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "The lesson must be deleted by the owner.", nil)
	}

	if _, err := ctl.DB.Collection(database.ColLessons).DeleteOne(c.Context(), bson.M{"_id": lessonID}); err != nil {
		log.Printf("Error deleting lesson: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	if _, err := ctl.DB.Collection(database.ColSections).UpdateMany(c.Context(),
		bson.M{"lesson_ids": lessonID},
		bson.M{"$pull": bson.M{"lesson_ids": lessonID}},
	); err != nil {
		log.Printf("Error detaching lesson from sections: %v", err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "The lesson was deleted successfully.", nil)
}
