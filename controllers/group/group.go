package groupController

import (
	"log"
	"strings"
	"time"

	"jubetech/database"
	"jubetech/middleware"
	"jubetech/models"
	"jubetech/utils"
	groupValidator "jubetech/validators/group"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type GroupController struct {
	DB *mongo.Database
}

func NewGroupController(db *mongo.Database) *GroupController {
	return &GroupController{DB: db}
}

// CreateGroups inserts the batch after checking no name is taken.
func (ctl *GroupController) CreateGroups(c *fiber.Ctx) error {
	user, ok := middleware.GetAuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The user was not found.", nil)
	}
	reqData, ok := c.Locals("validatedGroups").(*groupValidator.GroupsRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	names := make([]string, 0, len(reqData.Groups))
	for _, group := range reqData.Groups {
		names = append(names, strings.TrimSpace(group.Name))
	}
	count, err := ctl.DB.Collection(database.ColGroups).CountDocuments(c.Context(), bson.M{
		"name": bson.M{"$in": names},
	})
	if err != nil {
		log.Printf("Error checking group names: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	if count > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Group names must be unique.", nil)
	}

	now := time.Now()
	docs := make([]interface{}, 0, len(reqData.Groups))
	for _, group := range reqData.Groups {
		docs = append(docs, models.Group{
			Name:      strings.TrimSpace(group.Name),
			CreatedBy: user.ID,
			UpdatedBy: user.ID,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	if _, err := ctl.DB.Collection(database.ColGroups).InsertMany(c.Context(), docs); err != nil {
		log.Printf("Error creating groups: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "The groups were created successfully.", nil)
}

// GetAllGroups returns the full list, newest first.
func (ctl *GroupController) GetAllGroups(c *fiber.Ctx) error {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := ctl.DB.Collection(database.ColGroups).Find(c.Context(), bson.M{}, opts)
	if err != nil {
		log.Printf("Error fetching groups: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	groups := []models.Group{}
	if err := cursor.All(c.Context(), &groups); err != nil {
		log.Printf("Error decoding groups: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Groups fetched successfully.", fiber.Map{
		"groups": groups,
	})
}

// PaginationGroup lists groups with an optional name search.
func (ctl *GroupController) PaginationGroup(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 20)
	if page < 1 || pageSize < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "The page or pageSize has an invalid format.", nil)
	}

	filter := bson.M{}
	if search := c.Query("search"); search != "" {
		filter["name"] = bson.M{"$regex": search, "$options": "i"}
	}

	total, err := ctl.DB.Collection(database.ColGroups).CountDocuments(c.Context(), filter)
	if err != nil {
		log.Printf("Error counting groups: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "updatedAt", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))
	cursor, err := ctl.DB.Collection(database.ColGroups).Find(c.Context(), filter, opts)
	if err != nil {
		log.Printf("Error fetching groups: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	groups := []models.Group{}
	if err := cursor.All(c.Context(), &groups); err != nil {
		log.Printf("Error decoding groups: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Groups fetched successfully.", fiber.Map{
		"groups":     groups,
		"pagination": utils.NewPagination(total, page, pageSize),
	})
}

// GetGroupById returns one group.
func (ctl *GroupController) GetGroupById(c *fiber.Ctx) error {
	groupID, err := primitive.ObjectIDFromHex(c.Params("group_id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The group was not found.", nil)
	}

	var group models.Group
	err = ctl.DB.Collection(database.ColGroups).FindOne(c.Context(), bson.M{"_id": groupID}).Decode(&group)
	if err == mongo.ErrNoDocuments {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The group was not found.", nil)
	}
	if err != nil {
		log.Printf("Error fetching group: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Group fetched successfully.", group)
}

// UpdateGroup renames one group; the new name must stay unique.
func (ctl *GroupController) UpdateGroup(c *fiber.Ctx) error {
	user, ok := middleware.GetAuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The user was not found.", nil)
	}
	groupID, err := primitive.ObjectIDFromHex(c.Params("group_id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The group was not found.", nil)
	}
	reqData, ok := c.Locals("validatedGroup").(*groupValidator.GroupRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	name := strings.TrimSpace(reqData.Name)
	duplicate, err := database.IsDuplicate(c.Context(), ctl.DB, database.ColGroups, "name", name, &groupID)
	if err != nil {
		log.Printf("Error checking group name: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	if duplicate {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Group names must be unique.", nil)
	}

	res, err := ctl.DB.Collection(database.ColGroups).UpdateByID(c.Context(), groupID, bson.M{"$set": bson.M{
		"name":      name,
		"updatedBy": user.ID,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		log.Printf("Error updating group: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	if res.MatchedCount == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The group was not found.", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "The group was updated successfully.", nil)
}

// DeleteGroups removes the batch and detaches the groups from courses and
// categories that reference them.
func (ctl *GroupController) DeleteGroups(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedGroupDelete").(*groupValidator.DeleteRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	ids := make([]primitive.ObjectID, 0, len(reqData.GroupIDs))
	for _, id := range reqData.GroupIDs {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			ids = append(ids, oid)
		}
	}

	res, err := ctl.DB.Collection(database.ColGroups).DeleteMany(c.Context(), bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		log.Printf("Error deleting groups: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	if res.DeletedCount == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Groups were not found.", nil)
	}

	pull := bson.M{"$pull": bson.M{"group_ids": bson.M{"$in": ids}}}
	if _, err := ctl.DB.Collection(database.ColCourses).UpdateMany(c.Context(), bson.M{"group_ids": bson.M{"$in": ids}}, pull); err != nil {
		log.Printf("Error detaching groups from courses: %v", err)
	}
	if _, err := ctl.DB.Collection(database.ColCategories).UpdateMany(c.Context(), bson.M{"group_ids": bson.M{"$in": ids}}, pull); err != nil {
		log.Printf("Error detaching groups from categories: %v", err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "The groups were deleted successfully.", nil)
}
