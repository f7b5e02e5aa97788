package courseValidator

import (
	"strings"

	"jubetech/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate = validator.New()

// CourseRequest is the create/update payload.
type CourseRequest struct {
	Thumbnail      string   `json:"thumbnail" validate:"required"`
	Title          string   `json:"title" validate:"required,min=10,max=150"`
	Description    string   `json:"description" validate:"required,max=500"`
	UsePoint       *bool    `json:"usePoint" validate:"required"`
	Price          *int     `json:"price" validate:"required,min=200,max=2000"`
	Point          *int     `json:"point" validate:"required,min=100,max=1000"`
	Objectives     []string `json:"objectives" validate:"required,min=1,dive,required,max=100"`
	Status         string   `json:"status" validate:"required,oneof=draft published archived"`
	UseCertificate *bool    `json:"useCertificate" validate:"required"`
	Duration       *int     `json:"duration" validate:"required"`
	Level          string   `json:"level" validate:"required,oneof=beginner intermediate expert"`
	Pretest        string   `json:"pretest" validate:"omitempty"`
	Posttest       string   `json:"posttest" validate:"omitempty"`
	Note           string   `json:"note" validate:"omitempty,max=7000"`
	GroupIDs       []string `json:"group_ids"`
	SectionIDs     []string `json:"section_ids"`
}

// CourseBody validates the course schema and stashes the typed payload.
func CourseBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Thumbnail = strings.TrimSpace(reqData.Thumbnail)

		errors := fieldErrors(validate.Struct(reqData))

		// Referenced ids must be structurally valid.
		for _, id := range reqData.GroupIDs {
			if !primitive.IsValidObjectID(id) {
				errors["group_ids"] = "Group ids must be valid object ids!"
				break
			}
		}
		for _, id := range reqData.SectionIDs {
			if !primitive.IsValidObjectID(id) {
				errors["section_ids"] = "Section ids must be valid object ids!"
				break
			}
		}
		if reqData.Pretest != "" && !primitive.IsValidObjectID(reqData.Pretest) {
			errors["pretest"] = "Pretest must be a valid object id!"
		}
		if reqData.Posttest != "" && !primitive.IsValidObjectID(reqData.Posttest) {
			errors["posttest"] = "Posttest must be a valid object id!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func fieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	if err == nil {
		return errors
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["body"] = "Invalid request body!"
		return errors
	}
	for _, fe := range validationErrors {
		field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		switch fe.Tag() {
		case "required":
			errors[field] = field + " is required!"
		case "min":
			errors[field] = field + " is below the minimum of " + fe.Param() + "!"
		case "max":
			errors[field] = field + " exceeds the maximum of " + fe.Param() + "!"
		case "oneof":
			errors[field] = field + " must be one of: " + fe.Param() + "!"
		default:
			errors[field] = field + " is invalid!"
		}
	}
	return errors
}
