package promotionController

import (
	"log"
	"time"

	"jubetech/database"
	"jubetech/middleware"
	"jubetech/models"
	"jubetech/utils"
	promotionValidator "jubetech/validators/promotion"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PromotionController struct {
	DB *mongo.Database
}

func NewPromotionController(db *mongo.Database) *PromotionController {
	return &PromotionController{DB: db}
}

// TimeWindowView renders a stored window back as the submitted "HH:MM".
type TimeWindowView struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// CourseRef is the embedded course reference in promotion responses.
type CourseRef struct {
	ID    primitive.ObjectID `json:"_id"`
	Title string             `json:"title"`
}

// PromotionView replaces the bound window timestamps with clock strings and
// the course ids with resolved references.
type PromotionView struct {
	models.Promotion
	Courses []CourseRef      `json:"courses"`
	Times   []TimeWindowView `json:"times"`
}

// toView resolves course ids against the given titles. Ids without a backing
// course are dropped, matching a reference lookup.
func toView(promotion models.Promotion, titles map[primitive.ObjectID]string) PromotionView {
	view := PromotionView{Promotion: promotion, Courses: []CourseRef{}, Times: []TimeWindowView{}}
	for _, courseID := range promotion.Courses {
		if title, ok := titles[courseID]; ok {
			view.Courses = append(view.Courses, CourseRef{ID: courseID, Title: title})
		}
	}
	for _, window := range promotion.Times {
		view.Times = append(view.Times, TimeWindowView{
			StartTime: promotionValidator.FormatClockTime(window.StartTime),
			EndTime:   promotionValidator.FormatClockTime(window.EndTime),
		})
	}
	return view
}

// fetchCourseTitles loads id and title for the referenced courses in one query.
func (ctl *PromotionController) fetchCourseTitles(c *fiber.Ctx, courseIDs []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	titles := make(map[primitive.ObjectID]string, len(courseIDs))
	if len(courseIDs) == 0 {
		return titles, nil
	}

	opts := options.Find().SetProjection(bson.M{"title": 1})
	cursor, err := ctl.DB.Collection(database.ColCourses).Find(c.Context(), bson.M{
		"_id": bson.M{"$in": courseIDs},
	}, opts)
	if err != nil {
		return nil, err
	}
	var courses []models.Course
	if err := cursor.All(c.Context(), &courses); err != nil {
		return nil, err
	}
	for _, course := range courses {
		titles[course.ID] = course.Title
	}
	return titles, nil
}

// CreatePromotion stores a promotion; name and code must both be unused.
func (ctl *PromotionController) CreatePromotion(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedPromotion").(*promotionValidator.Normalized)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if taken, err := database.IsDuplicate(c.Context(), ctl.DB, database.ColPromotions, "name", reqData.Name, nil); err != nil {
		log.Printf("Error checking promotion name: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	} else if taken {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Promotion name is already in use", nil)
	}
	if taken, err := database.IsDuplicate(c.Context(), ctl.DB, database.ColPromotions, "code", reqData.Code, nil); err != nil {
		log.Printf("Error checking promotion code: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	} else if taken {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Promotion code is already in use", nil)
	}

	now := time.Now()
	promotion := models.Promotion{
		Name:              reqData.Name,
		ForCourse:         reqData.ForCourse,
		Courses:           reqData.Courses,
		Code:              reqData.Code,
		Status:            reqData.Status,
		Type:              reqData.Type,
		Discount:          reqData.Discount,
		MinPurchaseAmount: reqData.MinPurchaseAmount,
		MaxDiscount:       reqData.MaxDiscount,
		ConditionType:     reqData.ConditionType,
		QuantityPerDay:    reqData.QuantityPerDay,
		Quantity:          reqData.Quantity,
		Remark:            reqData.Remark,
		StartDate:         reqData.StartDate,
		EndDate:           reqData.EndDate,
		Times:             reqData.Times,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	res, err := ctl.DB.Collection(database.ColPromotions).InsertOne(c.Context(), promotion)
	if err != nil {
		log.Printf("Error creating promotion: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	promotion.ID = res.InsertedID.(primitive.ObjectID)
	titles, err := ctl.fetchCourseTitles(c, promotion.Courses)
	if err != nil {
		log.Printf("Error resolving promotion courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "The promotion was created successfully.", toView(promotion, titles))
}

// GetAllPromotions lists promotions with pagination and a name search.
func (ctl *PromotionController) GetAllPromotions(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 20)
	if page < 1 || pageSize < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "The page or pageSize has an invalid format.", nil)
	}

	filter := bson.M{}
	if search := c.Query("search"); search != "" {
		filter["name"] = bson.M{"$regex": search, "$options": "i"}
	}
	if c.Query("status") != "" {
		filter["status"] = c.QueryBool("status")
	}

	total, err := ctl.DB.Collection(database.ColPromotions).CountDocuments(c.Context(), filter)
	if err != nil {
		log.Printf("Error counting promotions: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "updatedAt", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))
	cursor, err := ctl.DB.Collection(database.ColPromotions).Find(c.Context(), filter, opts)
	if err != nil {
		log.Printf("Error fetching promotions: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	var promotions []models.Promotion
	if err := cursor.All(c.Context(), &promotions); err != nil {
		log.Printf("Error decoding promotions: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}

	var allCourseIDs []primitive.ObjectID
	for _, promotion := range promotions {
		allCourseIDs = append(allCourseIDs, promotion.Courses...)
	}
	titles, err := ctl.fetchCourseTitles(c, allCourseIDs)
	if err != nil {
		log.Printf("Error resolving promotion courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}

	views := make([]PromotionView, 0, len(promotions))
	for _, promotion := range promotions {
		views = append(views, toView(promotion, titles))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Promotions fetched successfully.", fiber.Map{
		"promotions": views,
		"pagination": utils.NewPagination(total, page, pageSize),
	})
}

// GetPromotionById returns one promotion.
func (ctl *PromotionController) GetPromotionById(c *fiber.Ctx) error {
	promotionID, err := primitive.ObjectIDFromHex(c.Params("promotion_id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The promotion was not found.", nil)
	}

	var promotion models.Promotion
	err = ctl.DB.Collection(database.ColPromotions).FindOne(c.Context(), bson.M{"_id": promotionID}).Decode(&promotion)
	if err == mongo.ErrNoDocuments {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The promotion was not found.", nil)
	}
	if err != nil {
		log.Printf("Error fetching promotion: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}

	titles, err := ctl.fetchCourseTitles(c, promotion.Courses)
	if err != nil {
		log.Printf("Error resolving promotion courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Promotion fetched successfully.", toView(promotion, titles))
}

// UpdatePromotion replaces a promotion. Name and code checks are skipped
// when the value is unchanged on the same document.
func (ctl *PromotionController) UpdatePromotion(c *fiber.Ctx) error {
	promotionID, err := primitive.ObjectIDFromHex(c.Params("promotion_id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The promotion was not found.", nil)
	}
	reqData, ok := c.Locals("validatedPromotion").(*promotionValidator.Normalized)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var existing models.Promotion
	err = ctl.DB.Collection(database.ColPromotions).FindOne(c.Context(), bson.M{"_id": promotionID}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The promotion was not found.", nil)
	}
	if err != nil {
		log.Printf("Error fetching promotion: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}

	if existing.Name != reqData.Name {
		if taken, err := database.IsDuplicate(c.Context(), ctl.DB, database.ColPromotions, "name", reqData.Name, &promotionID); err != nil {
			log.Printf("Error checking promotion name: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
		} else if taken {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Promotion name is already in use", nil)
		}
	}
	if existing.Code != reqData.Code {
		if taken, err := database.IsDuplicate(c.Context(), ctl.DB, database.ColPromotions, "code", reqData.Code, &promotionID); err != nil {
			log.Printf("Error checking promotion code: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
		} else if taken {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Promotion code is already in use", nil)
		}
	}

	update := bson.M{"$set": bson.M{
		"name":                reqData.Name,
		"for_course":          reqData.ForCourse,
		"courses":             reqData.Courses,
		"code":                reqData.Code,
		"status":              reqData.Status,
		"type":                reqData.Type,
		"discount":            reqData.Discount,
		"min_purchase_amount": reqData.MinPurchaseAmount,
		"max_discount":        reqData.MaxDiscount,
		"condition_type":      reqData.ConditionType,
		"quantity_per_day":    reqData.QuantityPerDay,
		"quantity":            reqData.Quantity,
		"remark":              reqData.Remark,
		"start_date":          reqData.StartDate,
		"end_date":            reqData.EndDate,
		"times":               reqData.Times,
		"updatedAt":           time.Now(),
	}}
	if _, err := ctl.DB.Collection(database.ColPromotions).UpdateByID(c.Context(), promotionID, update); err != nil {
		log.Printf("Error updating promotion: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "The promotion was updated successfully.", nil)
}

// DeletePromotion hard-deletes one promotion.
func (ctl *PromotionController) DeletePromotion(c *fiber.Ctx) error {
	promotionID, err := primitive.ObjectIDFromHex(c.Params("promotion_id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The promotion was not found.", nil)
	}

	res, err := ctl.DB.Collection(database.ColPromotions).DeleteOne(c.Context(), bson.M{"_id": promotionID})
	if err != nil {
		log.Printf("Error deleting promotion: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	if res.DeletedCount == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The promotion was not found.", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "The promotion was deleted successfully.", nil)
}
