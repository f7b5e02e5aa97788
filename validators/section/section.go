package sectionValidator

import (
	"strconv"
	"strings"

	"jubetech/middleware"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SectionRequest is a single section payload.
type SectionRequest struct {
	Title     string   `json:"title"`
	LessonIDs []string `json:"lesson_ids"`
}

// SectionsRequest is the bulk-create payload.
type SectionsRequest struct {
	Sections []SectionRequest `json:"sections"`
}

func checkSection(prefix string, section SectionRequest, errors map[string]string) {
	title := strings.TrimSpace(section.Title)
	if title == "" {
		errors[prefix+"title"] = "Title is required!"
	} else if len(title) > 70 {
		errors[prefix+"title"] = "Title must be at most 70 characters!"
	}
	for _, id := range section.LessonIDs {
		if !primitive.IsValidObjectID(id) {
			errors[prefix+"lesson_ids"] = "Lesson ids must be valid object ids!"
			break
		}
	}
}

// SectionsBody validates the bulk-create payload.
func SectionsBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SectionsRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if len(reqData.Sections) == 0 {
			errors["sections"] = "Sections are required!"
		}
		for i, section := range reqData.Sections {
			checkSection("sections."+strconv.Itoa(i)+".", section, errors)
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSections", reqData)
		return c.Next()
	}
}

// SectionBody validates a single-section update payload.
func SectionBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SectionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		checkSection("", *reqData, errors)

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSection", reqData)
		return c.Next()
	}
}
