package promotionValidator

import (
	"fmt"
	"strings"
	"time"

	"jubetech/middleware"
	"jubetech/models"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TimeWindowRequest is a daily redemption window as submitted, "HH:MM".
type TimeWindowRequest struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// PromotionRequest is the raw create/update payload.
type PromotionRequest struct {
	Name              string              `json:"name"`
	ForCourse         string              `json:"for_course"`
	Courses           []string            `json:"courses"`
	Code              string              `json:"code"`
	Status            *bool               `json:"status"`
	Type              string              `json:"type"`
	Discount          *int                `json:"discount"`
	MinPurchaseAmount *int                `json:"min_purchase_amount"`
	MaxDiscount       *int                `json:"max_discount"`
	ConditionType     string              `json:"condition_type"`
	QuantityPerDay    int                 `json:"quantity_per_day"`
	Quantity          *int                `json:"quantity"`
	Remark            string              `json:"remark"`
	StartDate         string              `json:"start_date"`
	EndDate           string              `json:"end_date"`
	Times             []TimeWindowRequest `json:"times"`
}

// Normalized is the parsed, coerced payload handed to the controller.
type Normalized struct {
	Name              string
	ForCourse         string
	Courses           []primitive.ObjectID
	Code              string
	Status            bool
	Type              string
	Discount          int
	MinPurchaseAmount int
	MaxDiscount       int
	ConditionType     string
	QuantityPerDay    int
	Quantity          int
	Remark            string
	StartDate         time.Time
	EndDate           time.Time
	Times             []models.TimeWindow
}

// ParseClockTime binds a naive "HH:MM" clock time to the current calendar
// date (UTC). Stored windows are therefore date-agnostic daily windows.
func ParseClockTime(clock string) (time.Time, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(clock))
	if err != nil {
		return time.Time{}, err
	}
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

// FormatClockTime renders a stored window bound back to "HH:MM".
func FormatClockTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("15:04")
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// PromotionBody validates and normalizes the promotion payload.
func PromotionBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(PromotionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		name := strings.TrimSpace(reqData.Name)
		if name == "" {
			errors["name"] = "Name is required!"
		} else if len(name) > 100 {
			errors["name"] = "Name must be at most 100 characters!"
		}

		code := strings.TrimSpace(reqData.Code)
		if code == "" {
			errors["code"] = "Code is required!"
		} else if len(code) > 15 {
			errors["code"] = "Code must be at most 15 characters!"
		}

		courses := make([]primitive.ObjectID, 0, len(reqData.Courses))
		for _, id := range reqData.Courses {
			oid, err := primitive.ObjectIDFromHex(id)
			if err != nil {
				errors["courses"] = "Invalid ObjectId in courses array"
				break
			}
			courses = append(courses, oid)
		}
		if reqData.ForCourse == models.PromotionForSpecific && len(reqData.Courses) == 0 {
			errors["courses"] = "At least one course is required when 'For Course' is 'Specific'."
		}

		if reqData.Discount == nil {
			errors["discount"] = "Discount is required!"
		} else if *reqData.Discount > 2000 {
			errors["discount"] = "Discount exceeds the maximum of 2000!"
		}
		if reqData.MinPurchaseAmount == nil {
			errors["min_purchase_amount"] = "Minimum purchase amount is required!"
		}
		if reqData.MaxDiscount == nil {
			errors["max_discount"] = "Maximum discount is required!"
		}
		if reqData.Quantity == nil {
			errors["quantity"] = "Quantity is required!"
		}

		startDate, err := parseDate(reqData.StartDate)
		if err != nil {
			errors["start_date"] = "Start date has an invalid format!"
		}
		endDate, err := parseDate(reqData.EndDate)
		if err != nil {
			errors["end_date"] = "End date has an invalid format!"
		}

		times := make([]models.TimeWindow, 0, len(reqData.Times))
		for i, window := range reqData.Times {
			var parsed models.TimeWindow
			if window.StartTime != "" {
				parsed.StartTime, err = ParseClockTime(window.StartTime)
				if err != nil {
					errors["times"] = fmt.Sprintf("times.%d.start_time has an invalid format!", i)
					continue
				}
			}
			if window.EndTime != "" {
				parsed.EndTime, err = ParseClockTime(window.EndTime)
				if err != nil {
					errors["times"] = fmt.Sprintf("times.%d.end_time has an invalid format!", i)
					continue
				}
			}
			times = append(times, parsed)
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		// Enum coercion follows the storage defaults.
		forCourse := models.PromotionForAll
		if reqData.ForCourse == models.PromotionForSpecific {
			forCourse = models.PromotionForSpecific
		}
		discountType := models.DiscountTypeAmount
		if reqData.Type == models.DiscountTypePercent {
			discountType = models.DiscountTypePercent
		}
		conditionType := models.ConditionOnce
		if reqData.ConditionType == models.ConditionUnlimited || reqData.ConditionType == models.ConditionLimitPerDay {
			conditionType = reqData.ConditionType
		}
		status := false
		if reqData.Status != nil {
			status = *reqData.Status
		}

		c.Locals("validatedPromotion", &Normalized{
			Name:              name,
			ForCourse:         forCourse,
			Courses:           courses,
			Code:              code,
			Status:            status,
			Type:              discountType,
			Discount:          *reqData.Discount,
			MinPurchaseAmount: *reqData.MinPurchaseAmount,
			MaxDiscount:       *reqData.MaxDiscount,
			ConditionType:     conditionType,
			QuantityPerDay:    reqData.QuantityPerDay,
			Quantity:          *reqData.Quantity,
			Remark:            strings.TrimSpace(reqData.Remark),
			StartDate:         startDate,
			EndDate:           endDate,
			Times:             times,
		})
		return c.Next()
	}
}
