package categoryValidator

import (
	"strconv"
	"strings"

	"jubetech/middleware"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryRequest is a single category payload.
type CategoryRequest struct {
	Name     string   `json:"name"`
	GroupIDs []string `json:"group_ids"`
}

// CategoriesRequest is the bulk-create payload.
type CategoriesRequest struct {
	Categories []CategoryRequest `json:"categories"`
}

// DeleteRequest carries the bulk-delete id list.
type DeleteRequest struct {
	CategoryIDs []string `json:"category_ids"`
}

func checkCategory(prefix string, category CategoryRequest, errors map[string]string) {
	name := strings.TrimSpace(category.Name)
	if name == "" {
		errors[prefix+"name"] = "Name is required!"
	} else if len(name) > 100 {
		errors[prefix+"name"] = "Name must be at most 100 characters!"
	}
	for _, id := range category.GroupIDs {
		if !primitive.IsValidObjectID(id) {
			errors[prefix+"group_ids"] = "Group ids must be valid object ids!"
			break
		}
	}
}

// CategoriesBody validates the bulk payload. Two items sharing a name reject
// the whole request before anything is persisted.
func CategoriesBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CategoriesRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if len(reqData.Categories) == 0 {
			errors["categories"] = "Categories are required!"
		}
		seen := make(map[string]bool)
		for i, category := range reqData.Categories {
			checkCategory("categories."+strconv.Itoa(i)+".", category, errors)
			name := strings.TrimSpace(category.Name)
			if seen[name] {
				errors["categories"] = "Category names must be unique."
			}
			seen[name] = true
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCategories", reqData)
		return c.Next()
	}
}

// CategoryBody validates a single-category update payload.
func CategoryBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CategoryRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		checkCategory("", *reqData, errors)

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCategory", reqData)
		return c.Next()
	}
}

// DeleteBody validates the bulk-delete id list.
func DeleteBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(DeleteRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(reqData.CategoryIDs) == 0 {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Categories were not found.", nil)
		}
		for _, id := range reqData.CategoryIDs {
			if !primitive.IsValidObjectID(id) {
				return middleware.ValidationErrorResponse(c, map[string]string{
					"category_ids": "Category ids must be valid object ids!",
				})
			}
		}

		c.Locals("validatedCategoryDelete", reqData)
		return c.Next()
	}
}
