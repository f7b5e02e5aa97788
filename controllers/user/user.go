package userController

import (
	"log"
	"time"

	"jubetech/config"
	"jubetech/database"
	"jubetech/middleware"
	"jubetech/models"
	"jubetech/utils"
	userValidator "jubetech/validators/user"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

type UserController struct {
	DB  *mongo.Database
	Cfg *config.Config
}

func NewUserController(db *mongo.Database, cfg *config.Config) *UserController {
	return &UserController{DB: db, Cfg: cfg}
}

// RoleRef is the embedded role reference in user responses.
type RoleRef struct {
	ID       primitive.ObjectID `json:"_id"`
	RoleName string             `json:"role_name"`
}

// UserView is a user with its role references resolved.
type UserView struct {
	models.User
	Roles []RoleRef `json:"roles"`
}

// buildUserViews joins users against the resolved role documents. Role ids
// with no backing document are dropped, matching a reference lookup.
func buildUserViews(users []models.User, roles []models.Role) []UserView {
	byID := make(map[primitive.ObjectID]models.Role, len(roles))
	for _, role := range roles {
		byID[role.ID] = role
	}

	views := make([]UserView, 0, len(users))
	for _, user := range users {
		view := UserView{User: user, Roles: []RoleRef{}}
		for _, roleID := range user.RoleIDs {
			if role, ok := byID[roleID]; ok {
				view.Roles = append(view.Roles, RoleRef{ID: role.ID, RoleName: role.RoleName})
			}
		}
		views = append(views, view)
	}
	return views
}

// fetchRoles loads the role documents behind the given ids in one query.
func (ctl *UserController) fetchRoles(c *fiber.Ctx, roleIDs []primitive.ObjectID) ([]models.Role, error) {
	if len(roleIDs) == 0 {
		return nil, nil
	}
	cursor, err := ctl.DB.Collection(database.ColRoles).Find(c.Context(), bson.M{
		"_id": bson.M{"$in": roleIDs},
	})
	if err != nil {
		return nil, err
	}
	var roles []models.Role
	if err := cursor.All(c.Context(), &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// rolesInclude reports whether any of the given role ids names roleName.
func (ctl *UserController) rolesInclude(c *fiber.Ctx, roleIDs []primitive.ObjectID, roleName string) (bool, error) {
	if len(roleIDs) == 0 {
		return false, nil
	}
	count, err := ctl.DB.Collection(database.ColRoles).CountDocuments(c.Context(), bson.M{
		"_id":       bson.M{"$in": roleIDs},
		"role_name": roleName,
	})
	return count > 0, err
}

func toRoleObjectIDs(hexIDs []string) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(hexIDs))
	for _, id := range hexIDs {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			ids = append(ids, oid)
		}
	}
	return ids
}

// CreateUser provisions an account. Accounts holding the admin role start
// active; everyone else activates through the OTP signup flow.
func (ctl *UserController) CreateUser(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCreateUser").(*userValidator.CreateUserRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	taken, err := database.IsDuplicate(c.Context(), ctl.DB, database.ColUsers, "email", reqData.Email, nil)
	if err != nil {
		log.Printf("Error checking user email: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	if taken {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Email is already in use", nil)
	}

	roleIDs := toRoleObjectIDs(reqData.RoleIDs)
	isAdmin, err := ctl.rolesInclude(c, roleIDs, models.RoleAdmin)
	if err != nil {
		log.Printf("Error resolving roles: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), ctl.Cfg.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}

	now := time.Now()
	user := models.User{
		Firstname: reqData.Firstname,
		Lastname:  reqData.Lastname,
		Status:    isAdmin,
		Email:     reqData.Email,
		Password:  string(hashed),
		RoleIDs:   roleIDs,
		CreatedAt: now,
		UpdatedAt: now,
	}
	res, err := ctl.DB.Collection(database.ColUsers).InsertOne(c.Context(), user)
	if err != nil {
		log.Printf("Error creating user: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "The user was created successfully.", user)
}

// GetAllUsers lists users with pagination and a name/email search.
func (ctl *UserController) GetAllUsers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 20)
	if page < 1 || pageSize < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "The page or pageSize has an invalid format.", nil)
	}

	filter := bson.M{}
	if search := c.Query("search"); search != "" {
		regex := bson.M{"$regex": search, "$options": "i"}
		filter["$or"] = []bson.M{
			{"firstname": regex},
			{"lastname": regex},
			{"email": regex},
		}
	}

	total, err := ctl.DB.Collection(database.ColUsers).CountDocuments(c.Context(), filter)
	if err != nil {
		log.Printf("Error counting users: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "updatedAt", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))
	cursor, err := ctl.DB.Collection(database.ColUsers).Find(c.Context(), filter, opts)
	if err != nil {
		log.Printf("Error fetching users: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	users := []models.User{}
	if err := cursor.All(c.Context(), &users); err != nil {
		log.Printf("Error decoding users: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}

	var allRoleIDs []primitive.ObjectID
	for _, user := range users {
		allRoleIDs = append(allRoleIDs, user.RoleIDs...)
	}
	roles, err := ctl.fetchRoles(c, allRoleIDs)
	if err != nil {
		log.Printf("Error resolving roles: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully.", fiber.Map{
		"users":      buildUserViews(users, roles),
		"pagination": utils.NewPagination(total, page, pageSize),
	})
}

// GetUserById returns one user.
func (ctl *UserController) GetUserById(c *fiber.Ctx) error {
	userID, err := primitive.ObjectIDFromHex(c.Params("user_id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The user was not found.", nil)
	}

	var user models.User
	err = ctl.DB.Collection(database.ColUsers).FindOne(c.Context(), bson.M{"_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The user was not found.", nil)
	}
	if err != nil {
		log.Printf("Error fetching user: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}

	roles, err := ctl.fetchRoles(c, user.RoleIDs)
	if err != nil {
		log.Printf("Error resolving roles: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User fetched successfully.", buildUserViews([]models.User{user}, roles)[0])
}

// GetRoleByUser returns the caller's resolved role names.
func (ctl *UserController) GetRoleByUser(c *fiber.Ctx) error {
	user, ok := middleware.GetAuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The user was not found.", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Roles fetched successfully.", fiber.Map{
		"roles": user.Roles,
	})
}

// UpdateUser edits profile fields. A password change requires the current
// password; a role change recomputes the active flag.
func (ctl *UserController) UpdateUser(c *fiber.Ctx) error {
	userID, err := primitive.ObjectIDFromHex(c.Params("user_id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The user was not found.", nil)
	}
	reqData, ok := c.Locals("validatedUpdateUser").(*userValidator.UpdateUserRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var existing models.User
	err = ctl.DB.Collection(database.ColUsers).FindOne(c.Context(), bson.M{"_id": userID}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The user was not found.", nil)
	}
	if err != nil {
		log.Printf("Error fetching user: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}

	set := bson.M{"updatedAt": time.Now()}
	if reqData.Firstname != "" {
		set["firstname"] = reqData.Firstname
	}
	if reqData.Lastname != "" {
		set["lastname"] = reqData.Lastname
	}
	if reqData.Email != "" && reqData.Email != existing.Email {
		taken, err := database.IsDuplicate(c.Context(), ctl.DB, database.ColUsers, "email", reqData.Email, &userID)
		if err != nil {
			log.Printf("Error checking user email: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
		}
		if taken {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Email is already in use", nil)
		}
		set["email"] = reqData.Email
	}
	if reqData.Status != nil {
		set["status"] = *reqData.Status
	}

	if reqData.Password != "" {
		if reqData.CurrentPassword == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"currentPassword": "Current password is required to change the password",
			})
		}
		if err := bcrypt.CompareHashAndPassword([]byte(existing.Password), []byte(reqData.CurrentPassword)); err != nil {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "The current password is incorrect.", nil)
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), ctl.Cfg.SaltRound)
		if err != nil {
			log.Printf("Error hashing password: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
		}
		set["password"] = string(hashed)
	}

	if reqData.RoleIDs != nil {
		roleIDs := toRoleObjectIDs(reqData.RoleIDs)
		isAdmin, err := ctl.rolesInclude(c, roleIDs, models.RoleAdmin)
		if err != nil {
			log.Printf("Error resolving roles: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
		}
		set["role_ids"] = roleIDs
		if reqData.Status == nil && isAdmin {
			set["status"] = true
		}
	}

	if _, err := ctl.DB.Collection(database.ColUsers).UpdateByID(c.Context(), userID, bson.M{"$set": set}); err != nil {
		log.Printf("Error updating user: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "The user was updated successfully.", nil)
}

// DeleteUser hard-deletes one account.
func (ctl *UserController) DeleteUser(c *fiber.Ctx) error {
	userID, err := primitive.ObjectIDFromHex(c.Params("user_id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The user was not found.", nil)
	}

	res, err := ctl.DB.Collection(database.ColUsers).DeleteOne(c.Context(), bson.M{"_id": userID})
	if err != nil {
		log.Printf("Error deleting user: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	if res.DeletedCount == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The user was not found.", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "The user was deleted successfully.", nil)
}
