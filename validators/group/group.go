package groupValidator

import (
	"strconv"
	"strings"

	"jubetech/middleware"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GroupRequest is a single group payload.
type GroupRequest struct {
	Name string `json:"name"`
}

// GroupsRequest is the bulk-create payload.
type GroupsRequest struct {
	Groups []GroupRequest `json:"groups"`
}

// DeleteRequest carries the bulk-delete id list.
type DeleteRequest struct {
	GroupIDs []string `json:"group_ids"`
}

func checkGroup(prefix string, group GroupRequest, errors map[string]string) {
	name := strings.TrimSpace(group.Name)
	if name == "" {
		errors[prefix+"name"] = "Name is required!"
	} else if len(name) > 80 {
		errors[prefix+"name"] = "Name must be at most 80 characters!"
	}
}

// GroupsBody validates the bulk payload with in-request name uniqueness.
func GroupsBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(GroupsRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if len(reqData.Groups) == 0 {
			errors["groups"] = "Groups are required!"
		}
		seen := make(map[string]bool)
		for i, group := range reqData.Groups {
			checkGroup("groups."+strconv.Itoa(i)+".", group, errors)
			name := strings.TrimSpace(group.Name)
			if seen[name] {
				errors["groups"] = "Group names must be unique."
			}
			seen[name] = true
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedGroups", reqData)
		return c.Next()
	}
}

// GroupBody validates a single-group update payload.
func GroupBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(GroupRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		checkGroup("", *reqData, errors)

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedGroup", reqData)
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

		if len(reqData.GroupIDs) == 0 {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Groups were not found.", nil)
		}
		for _, id := range reqData.GroupIDs {
			if !primitive.IsValidObjectID(id) {
				return middleware.ValidationErrorResponse(c, map[string]string{
					"group_ids": "Group ids must be valid object ids!",
				})
			}
		}

		c.Locals("validatedGroupDelete", reqData)
		return c.Next()
	}
}
