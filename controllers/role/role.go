package roleController

import (
	"log"
	"strings"
	"time"

	"jubetech/database"
	"jubetech/middleware"
	"jubetech/models"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RoleController struct {
	DB *mongo.Database
}

func NewRoleController(db *mongo.Database) *RoleController {
	return &RoleController{DB: db}
}

type roleRequest struct {
	RoleName string `json:"role_name"`
}

// CreateRole adds a role definition; the name must be unused.
func (ctl *RoleController) CreateRole(c *fiber.Ctx) error {
	reqData := new(roleRequest)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	name := strings.TrimSpace(reqData.RoleName)
	if name == "" {
		return middleware.ValidationErrorResponse(c, map[string]string{"role_name": "Role name is required!"})
	}

	taken, err := database.IsDuplicate(c.Context(), ctl.DB, database.ColRoles, "role_name", name, nil)
	if err != nil {
		log.Printf("Error checking role name: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	if taken {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "The role already exists.", nil)
	}

	now := time.Now()
	role := models.Role{RoleName: name, CreatedAt: now, UpdatedAt: now}
	res, err := ctl.DB.Collection(database.ColRoles).InsertOne(c.Context(), role)
	if err != nil {
		log.Printf("Error creating role: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	role.ID = res.InsertedID.(primitive.ObjectID)
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "The role was created successfully.", role)
}

// GetAllRoles lists every role definition.
func (ctl *RoleController) GetAllRoles(c *fiber.Ctx) error {
	opts := options.Find().SetSort(bson.D{{Key: "role_name", Value: 1}})
	cursor, err := ctl.DB.Collection(database.ColRoles).Find(c.Context(), bson.M{}, opts)
	if err != nil {
		log.Printf("Error fetching roles: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	roles := []models.Role{}
	if err := cursor.All(c.Context(), &roles); err != nil {
		log.Printf("Error decoding roles: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Roles fetched successfully.", fiber.Map{
		"roles": roles,
	})
}

// UpdateRole renames a role definition.
func (ctl *RoleController) UpdateRole(c *fiber.Ctx) error {
	roleID, err := primitive.ObjectIDFromHex(c.Params("role_id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The role was not found.", nil)
	}
	reqData := new(roleRequest)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	name := strings.TrimSpace(reqData.RoleName)
	if name == "" {
		return middleware.ValidationErrorResponse(c, map[string]string{"role_name": "Role name is required!"})
	}

	taken, err := database.IsDuplicate(c.Context(), ctl.DB, database.ColRoles, "role_name", name, &roleID)
	if err != nil {
		log.Printf("Error checking role name: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	if taken {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "The role already exists.", nil)
	}

	res, err := ctl.DB.Collection(database.ColRoles).UpdateByID(c.Context(), roleID, bson.M{"$set": bson.M{
		"role_name": name,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		log.Printf("Error updating role: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	if res.MatchedCount == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The role was not found.", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "The role was updated successfully.", nil)
}

// DeleteRole removes a role definition and detaches it from users.
func (ctl *RoleController) DeleteRole(c *fiber.Ctx) error {
	roleID, err := primitive.ObjectIDFromHex(c.Params("role_id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The role was not found.", nil)
	}

	res, err := ctl.DB.Collection(database.ColRoles).DeleteOne(c.Context(), bson.M{"_id": roleID})
	if err != nil {
		log.Printf("Error deleting role: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	if res.DeletedCount == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The role was not found.", nil)
	}

	if _, err := ctl.DB.Collection(database.ColUsers).UpdateMany(c.Context(),
		bson.M{"role_ids": roleID},
		bson.M{"$pull": bson.M{"role_ids": roleID}},
	); err != nil {
		log.Printf("Error detaching role from users: %v", err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "The role was deleted successfully.", nil)
}
