package lessonValidator

import (
	"strings"

	"jubetech/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// LessonRequest is the create/update payload. SubFile entries are
// already-stored object paths; pending uploads go through /api/file/upload
// first.
type LessonRequest struct {
	Name          string   `json:"name" validate:"required,max=45"`
	Type          string   `json:"type" validate:"required,oneof=lecture video"`
	SubFile       []string `json:"sub_file"`
	MainContent   string   `json:"main_content" validate:"required"`
	Duration      int      `json:"duration" validate:"omitempty,min=0"`
	IsFreePreview *bool    `json:"isFreePreview" validate:"required"`
}

// LessonBody validates the lesson schema and stashes the typed payload.
func LessonBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LessonRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Name = strings.TrimSpace(reqData.Name)

		errors := make(map[string]string)
		if err := validate.Struct(reqData); err != nil {
			if validationErrors, ok := err.(validator.ValidationErrors); ok {
				for _, fe := range validationErrors {
					switch fe.Field() {
					case "Name":
						errors["name"] = "Name is required and must be at most 45 characters!"
					case "Type":
						errors["type"] = "Type must be lecture or video!"
					case "MainContent":
						errors["main_content"] = "Main content is required!"
					case "Duration":
						errors["duration"] = "Duration must not be negative!"
					case "IsFreePreview":
						errors["isFreePreview"] = "Free preview flag is required!"
					}
				}
			} else {
				errors["body"] = "Invalid request body!"
			}
		}
		for _, f := range reqData.SubFile {
			if strings.TrimSpace(f) == "" {
				errors["sub_file"] = "Attached file paths must not be empty!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}
