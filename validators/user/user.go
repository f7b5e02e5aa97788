package userValidator

import (
	"regexp"
	"strings"

	"jubetech/middleware"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var emailRe = regexp.MustCompile(`^[a-z\d._%+-]+@[a-z\d.-]+\.[a-z]{2,}$`)

// CreateUserRequest is the admin user-creation payload.
type CreateUserRequest struct {
	Firstname string   `json:"firstname"`
	Lastname  string   `json:"lastname"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	RoleIDs   []string `json:"role_ids"`
}

// UpdateUserRequest is the admin user-update payload. Password changes
// require the current password.
type UpdateUserRequest struct {
	Firstname       string   `json:"firstname"`
	Lastname        string   `json:"lastname"`
	Email           string   `json:"email"`
	Password        string   `json:"password"`
	CurrentPassword string   `json:"currentPassword"`
	Status          *bool    `json:"status"`
	RoleIDs         []string `json:"role_ids"`
}

func validRoleIDs(ids []string) bool {
	for _, id := range ids {
		if !primitive.IsValidObjectID(id) {
			return false
		}
	}
	return true
}

// CreateUser validator middleware
func CreateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateUserRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Email = strings.ToLower(strings.TrimSpace(reqData.Email))
		if !emailRe.MatchString(reqData.Email) {
			errors["email"] = "Invalid email format"
		}
		if n := len(reqData.Password); n < 8 || n > 20 {
			errors["password"] = "Password must be between 8 and 20 characters"
		}
		if !validRoleIDs(reqData.RoleIDs) {
			errors["role_ids"] = "Invalid role_ids format"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateUser", reqData)
		return c.Next()
	}
}

// UpdateUser validator middleware
func UpdateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateUserRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Email = strings.ToLower(strings.TrimSpace(reqData.Email))
		if reqData.Email != "" && !emailRe.MatchString(reqData.Email) {
			errors["email"] = "Invalid email format"
		}
		if reqData.Password != "" {
			if n := len(reqData.Password); n < 8 || n > 20 {
				errors["password"] = "Password must be between 8 and 20 characters"
			}
		}
		if !validRoleIDs(reqData.RoleIDs) {
			errors["role_ids"] = "Invalid role_ids format"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUpdateUser", reqData)
		return c.Next()
	}
}
