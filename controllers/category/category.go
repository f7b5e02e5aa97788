package categoryController

import (
	"log"
	"strings"
	"time"

	"jubetech/database"
	"jubetech/middleware"
	"jubetech/models"
	"jubetech/utils"
	categoryValidator "jubetech/validators/category"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CategoryController struct {
	DB *mongo.Database
}

func NewCategoryController(db *mongo.Database) *CategoryController {
	return &CategoryController{DB: db}
}

// CreateCategories inserts the batch after checking no name is taken.
func (ctl *CategoryController) CreateCategories(c *fiber.Ctx) error {
	user, ok := middleware.GetAuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The user was not found.", nil)
	}
	reqData, ok := c.Locals("validatedCategories").(*categoryValidator.CategoriesRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	names := make([]string, 0, len(reqData.Categories))
	for _, category := range reqData.Categories {
		names = append(names, strings.TrimSpace(category.Name))
	}
	count, err := ctl.DB.Collection(database.ColCategories).CountDocuments(c.Context(), bson.M{
		"name": bson.M{"$in": names},
	})
	if err != nil {
		log.Printf("Error checking category names: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	if count > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Category names must be unique.", nil)
	}

	now := time.Now()
	docs := make([]interface{}, 0, len(reqData.Categories))
	for _, category := range reqData.Categories {
		groupIDs := make([]primitive.ObjectID, 0, len(category.GroupIDs))
		for _, id := range category.GroupIDs {
			if oid, err := primitive.ObjectIDFromHex(id); err == nil {
				groupIDs = append(groupIDs, oid)
			}
		}
		docs = append(docs, models.Category{
			Name:      strings.TrimSpace(category.Name),
			GroupIDs:  groupIDs,
			CreatedBy: user.ID,
			UpdatedBy: user.ID,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	if _, err := ctl.DB.Collection(database.ColCategories).InsertMany(c.Context(), docs); err != nil {
		log.Printf("Error creating categories: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "The categories were created successfully.", nil)
}

// GetAllCategories returns the full list, newest first.
func (ctl *CategoryController) GetAllCategories(c *fiber.Ctx) error {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := ctl.DB.Collection(database.ColCategories).Find(c.Context(), bson.M{}, opts)
	if err != nil {
		log.Printf("Error fetching categories: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	categories := []models.Category{}
	if err := cursor.All(c.Context(), &categories); err != nil {
		log.Printf("Error decoding categories: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully.", fiber.Map{
		"categories": categories,
	})
}

// PaginationCategory lists categories with an optional name search.
func (ctl *CategoryController) PaginationCategory(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 20)
	if page < 1 || pageSize < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "The page or pageSize has an invalid format.", nil)
	}

	filter := bson.M{}
	if search := c.Query("search"); search != "" {
		filter["name"] = bson.M{"$regex": search, "$options": "i"}
	}

	total, err := ctl.DB.Collection(database.ColCategories).CountDocuments(c.Context(), filter)
	if err != nil {
		log.Printf("Error counting categories: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "updatedAt", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))
	cursor, err := ctl.DB.Collection(database.ColCategories).Find(c.Context(), filter, opts)
	if err != nil {
		log.Printf("Error fetching categories: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	categories := []models.Category{}
	if err := cursor.All(c.Context(), &categories); err != nil {
		log.Printf("Error decoding categories: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully.", fiber.Map{
		"categories": categories,
		"pagination": utils.NewPagination(total, page, pageSize),
	})
}

// SearchCategories filters by name, creation range and group membership.
func (ctl *CategoryController) SearchCategories(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 20)
	if page < 1 || pageSize < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "The page or pageSize has an invalid format.", nil)
	}

	filter := bson.M{}
	if name := c.Query("name"); name != "" {
		filter["name"] = bson.M{"$regex": name, "$options": "i"}
	}
	created := bson.M{}
	if raw := c.Query("createdFrom"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			created["$gte"] = t
		}
	}
	if raw := c.Query("createdTo"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			created["$lte"] = t.Add(24*time.Hour - time.Nanosecond)
		}
	}
	if len(created) > 0 {
		filter["createdAt"] = created
	}
	if groupIDs := c.Query("group_ids"); groupIDs != "" {
		ids := make([]primitive.ObjectID, 0)
		for _, id := range strings.Split(groupIDs, ",") {
			if oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id)); err == nil {
				ids = append(ids, oid)
			}
		}
		if len(ids) > 0 {
			filter["group_ids"] = bson.M{"$elemMatch": bson.M{"$in": ids}}
		}
	}

	total, err := ctl.DB.Collection(database.ColCategories).CountDocuments(c.Context(), filter)
	if err != nil {
		log.Printf("Error counting categories: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "updatedAt", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))
	cursor, err := ctl.DB.Collection(database.ColCategories).Find(c.Context(), filter, opts)
	if err != nil {
		log.Printf("Error fetching categories: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	categories := []models.Category{}
	if err := cursor.All(c.Context(), &categories); err != nil {
		log.Printf("Error decoding categories: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully.", fiber.Map{
		"categories": categories,
		"pagination": utils.NewPagination(total, page, pageSize),
	})
}

// GetCategoryById returns one category.
func (ctl *CategoryController) GetCategoryById(c *fiber.Ctx) error {
	categoryID, err := primitive.ObjectIDFromHex(c.Params("category_id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The category was not found.", nil)
	}

	var category models.Category
	err = ctl.DB.Collection(database.ColCategories).FindOne(c.Context(), bson.M{"_id": categoryID}).Decode(&category)
	if err == mongo.ErrNoDocuments {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The category was not found.", nil)
	}
	if err != nil {
		log.Printf("Error fetching category: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category fetched successfully.", category)
}

// UpdateCategory renames one category; the new name must stay unique.
func (ctl *CategoryController) UpdateCategory(c *fiber.Ctx) error {
	user, ok := middleware.GetAuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The user was not found.", nil)
	}
	categoryID, err := primitive.ObjectIDFromHex(c.Params("category_id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The category was not found.", nil)
	}
	reqData, ok := c.Locals("validatedCategory").(*categoryValidator.CategoryRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	name := strings.TrimSpace(reqData.Name)
	duplicate, err := database.IsDuplicate(c.Context(), ctl.DB, database.ColCategories, "name", name, &categoryID)
	if err != nil {
		log.Printf("Error checking category name: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	if duplicate {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Category names must be unique.", nil)
	}

	groupIDs := make([]primitive.ObjectID, 0, len(reqData.GroupIDs))
	for _, id := range reqData.GroupIDs {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			groupIDs = append(groupIDs, oid)
		}
	}

	res, err := ctl.DB.Collection(database.ColCategories).UpdateByID(c.Context(), categoryID, bson.M{"$set": bson.M{
		"name":      name,
		"group_ids": groupIDs,
		"updatedBy": user.ID,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		log.Printf("Error updating category: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	if res.MatchedCount == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The category was not found.", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "The category was updated successfully.", nil)
}

// DeleteCategories removes the given batch in one call.
func (ctl *CategoryController) DeleteCategories(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCategoryDelete").(*categoryValidator.DeleteRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	ids := make([]primitive.ObjectID, 0, len(reqData.CategoryIDs))
	for _, id := range reqData.CategoryIDs {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			ids = append(ids, oid)
		}
	}

	res, err := ctl.DB.Collection(database.ColCategories).DeleteMany(c.Context(), bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		log.Printf("Error deleting categories: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	if res.DeletedCount == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Categories were not found.", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "The categories were deleted successfully.", nil)
}
