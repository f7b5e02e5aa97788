package courseController

import (
	"log"
	"strconv"
	"strings"
	"time"

	"jubetech/database"
	"jubetech/middleware"
	"jubetech/models"
	"jubetech/utils"
	courseValidator "jubetech/validators/course"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CourseController struct {
	DB *mongo.Database
}

func NewCourseController(db *mongo.Database) *CourseController {
	return &CourseController{DB: db}
}

// GroupRef is the embedded group reference in course responses.
type GroupRef struct {
	ID   primitive.ObjectID `json:"_id"`
	Name string             `json:"name"`
}

// InstructorRef carries the instructor's display name only.
type InstructorRef struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// LessonRef is the lesson summary embedded in course detail responses.
type LessonRef struct {
	ID            primitive.ObjectID `json:"_id"`
	Name          string             `json:"name"`
	Type          string             `json:"type"`
	Duration      int                `json:"duration"`
	IsFreePreview bool               `json:"isFreePreview"`
}

// SectionView is a section with its lessons resolved.
type SectionView struct {
	ID      primitive.ObjectID `json:"_id"`
	Title   string             `json:"title"`
	Lessons []LessonRef        `json:"lessons"`
}

// CourseView is a course with its references resolved.
type CourseView struct {
	models.Course
	Groups       []GroupRef     `json:"groups"`
	InstructorBy *InstructorRef `json:"instructorBy,omitempty"`
	Sections     []SectionView  `json:"sections,omitempty"`
}

// buildCourseFilter grows a query predicate from the optional query params.
func buildCourseFilter(c *fiber.Ctx) bson.M {
	filter := bson.M{}
	if title := c.Query("title"); title != "" {
		filter["title"] = bson.M{"$regex": title, "$options": "i"}
	}
	if rating := c.QueryFloat("rating"); rating > 0 {
		filter["rating"] = bson.M{"$gte": rating}
	}
	if duration := c.QueryInt("duration"); duration > 0 {
		filter["duration"] = bson.M{"$gte": duration}
	}
	if c.Query("useCertificate") != "" {
		filter["useCertificate"] = c.QueryBool("useCertificate")
	}
	if groupIDs := c.Query("group_ids"); groupIDs != "" {
		var ids []primitive.ObjectID
		for _, id := range strings.Split(groupIDs, ",") {
			if oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id)); err == nil {
				ids = append(ids, oid)
			}
		}
		if len(ids) > 0 {
			filter["group_ids"] = bson.M{"$elemMatch": bson.M{"$in": ids}}
		}
	}
	price := bson.M{}
	if min := c.QueryInt("minPrice"); min > 0 {
		price["$gte"] = min
	}
	if max := c.QueryInt("maxPrice"); max > 0 {
		price["$lte"] = max
	}
	if len(price) > 0 {
		filter["price"] = price
	}
	point := bson.M{}
	if min := c.QueryInt("minPoint"); min > 0 {
		point["$gte"] = min
	}
	if max := c.QueryInt("maxPoint"); max > 0 {
		point["$lte"] = max
	}
	if len(point) > 0 {
		filter["point"] = point
	}
	return filter
}

// parseSort turns "title,-price" into a sort document; "-" means descending.
func parseSort(spec string) bson.D {
	if spec == "" {
		return bson.D{{Key: "updatedAt", Value: -1}}
	}
	var sort bson.D
	for _, field := range strings.Split(spec, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		order := 1
		if strings.HasPrefix(field, "-") {
			order = -1
			field = field[1:]
		}
		sort = append(sort, bson.E{Key: field, Value: order})
	}
	if len(sort) == 0 {
		return bson.D{{Key: "updatedAt", Value: -1}}
	}
	return sort
}

func parsePaging(c *fiber.Ctx) (page, pageSize int, ok bool) {
	page, pageSize = 1, 20
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return 0, 0, false
		}
		page = n
	}
	if raw := c.Query("pageSize"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return 0, 0, false
		}
		pageSize = n
	}
	return page, pageSize, true
}

// GetAllCourses lists every published course (public catalog).
func (ctl *CourseController) GetAllCourses(c *fiber.Ctx) error {
	courses, err := ctl.findCourses(c, bson.M{"status": models.CourseStatusPublished},
		bson.D{{Key: "updatedAt", Value: -1}}, 0, 0, false)
	if err != nil {
		log.Printf("Error fetching courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully.", fiber.Map{
		"courses": courses,
	})
}

// PaginationCourse lists published courses with filters, sort and pagination.
func (ctl *CourseController) PaginationCourse(c *fiber.Ctx) error {
	page, pageSize, ok := parsePaging(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "The page or pageSize has an invalid format.", nil)
	}

	filter := buildCourseFilter(c)
	filter["status"] = models.CourseStatusPublished

	return ctl.respondPage(c, filter, parseSort(c.Query("sort")), page, pageSize, false)
}

// GetCoursesByTutor lists the caller's own courses with the same filters.
func (ctl *CourseController) GetCoursesByTutor(c *fiber.Ctx) error {
	user, ok := middleware.GetAuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The user was not found.", nil)
	}
	page, pageSize, okPage := parsePaging(c)
	if !okPage {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "The page or pageSize has an invalid format.", nil)
	}

	filter := buildCourseFilter(c)
	filter["createdBy"] = user.ID

	// Tutors manage their catalog from this list, so the section and
	// lesson tree comes back with each course.
	return ctl.respondPage(c, filter, parseSort(c.Query("sort")), page, pageSize, true)
}

func (ctl *CourseController) respondPage(c *fiber.Ctx, filter bson.M, sort bson.D, page, pageSize int, withSections bool) error {
	total, err := ctl.DB.Collection(database.ColCourses).CountDocuments(c.Context(), filter)
	if err != nil {
		log.Printf("Error counting courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}

	skip := int64((page - 1) * pageSize)
	courses, err := ctl.findCourses(c, filter, sort, skip, int64(pageSize), withSections)
	if err != nil {
		log.Printf("Error fetching courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully.", fiber.Map{
		"courses":    courses,
		"pagination": utils.NewPagination(total, page, pageSize),
	})
}

// GetCourseBySlug returns one published course with sections and lessons.
func (ctl *CourseController) GetCourseBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The course was not found.", nil)
	}

	var course models.Course
	err := ctl.DB.Collection(database.ColCourses).FindOne(c.Context(), bson.M{
		"slug":   slug,
		"status": models.CourseStatusPublished,
	}).Decode(&course)
	if err == mongo.ErrNoDocuments {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The course was not found.", nil)
	}
	if err != nil {
		log.Printf("Error fetching course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}

	view, err := ctl.resolveCourse(c, course, true)
	if err != nil {
		log.Printf("Error resolving course references: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully.", view)
}

// GetCourseById returns one course (any status) with sections and lessons.
func (ctl *CourseController) GetCourseById(c *fiber.Ctx) error {
	courseID, err := primitive.ObjectIDFromHex(c.Params("course_id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The course was not found.", nil)
	}

	var course models.Course
	err = ctl.DB.Collection(database.ColCourses).FindOne(c.Context(), bson.M{"_id": courseID}).Decode(&course)
	if err == mongo.ErrNoDocuments {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The course was not found.", nil)
	}
	if err != nil {
		log.Printf("Error fetching course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}

	view, err := ctl.resolveCourse(c, course, true)
	if err != nil {
		log.Printf("Error resolving course references: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully.", view)
}

// CreateCourse validates uniqueness, derives the slug and stores the course.
func (ctl *CourseController) CreateCourse(c *fiber.Ctx) error {
	user, ok := middleware.GetAuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The tutor was not found.", nil)
	}
	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	duplicate, err := database.IsDuplicate(c.Context(), ctl.DB, database.ColCourses, "title", reqData.Title, nil)
	if err != nil {
		log.Printf("Error checking course title: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	if duplicate {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "The course with this title already exists.", nil)
	}

	course := ctl.courseFromRequest(reqData, user.ID)
	course.CreatedBy = user.ID
	course.CreatedAt = course.UpdatedAt

	if _, err := ctl.DB.Collection(database.ColCourses).InsertOne(c.Context(), course); err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "The course was created successfully.", fiber.Map{
		"slug": course.Slug,
	})
}

// UpdateCourse re-validates, re-derives the slug and enforces ownership.
func (ctl *CourseController) UpdateCourse(c *fiber.Ctx) error {
	user, ok := middleware.GetAuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The user was not found.", nil)
	}
	courseID, err := primitive.ObjectIDFromHex(c.Params("course_id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The course was not found.", nil)
	}
	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	duplicate, err := database.IsDuplicate(c.Context(), ctl.DB, database.ColCourses, "title", reqData.Title, &courseID)
	if err != nil {
		log.Printf("Error checking course title: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	if duplicate {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "The course with this title already exists.", nil)
	}

	owner, err := database.IsOwner(c.Context(), ctl.DB, database.ColCourses, courseID, user.ID)
	if err != nil {
		log.Printf("Error checking course owner: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	if !owner {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "The course must be updated by the owner.", nil)
	}

	course := ctl.courseFromRequest(reqData, user.ID)
	update := bson.M{"$set": bson.M{
		"thumbnail":      course.Thumbnail,
		"title":          course.Title,
		"description":    course.Description,
		"usePoint":       course.UsePoint,
		"price":          course.Price,
		"point":          course.Point,
		"objectives":     course.Objectives,
		"group_ids":      course.GroupIDs,
		"section_ids":    course.SectionIDs,
		"status":         course.Status,
		"note":           course.Note,
		"pretest":        course.Pretest,
		"posttest":       course.Posttest,
		"useCertificate": course.UseCertificate,
		"duration":       course.Duration,
		"level":          course.Level,
		"slug":           course.Slug,
		"instructor":     user.ID,
		"updatedBy":      user.ID,
		"updatedAt":      course.UpdatedAt,
	}}
	if _, err := ctl.DB.Collection(database.ColCourses).UpdateByID(c.Context(), courseID, update); err != nil {
		log.Printf("Error updating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "The course was updated successfully.", nil)
}

// DeleteCourse hard-deletes after the ownership check.
func (ctl *CourseController) DeleteCourse(c *fiber.Ctx) error {
	user, ok := middleware.GetAuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The user was not found.", nil)
	}
	courseID, err := primitive.ObjectIDFromHex(c.Params("course_id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "The course was not found.", nil)
	}

	owner, err := database.IsOwner(c.Context(), ctl.DB, database.ColCourses, courseID, user.ID)
	if err != nil {
		log.Printf("Error checking course owner: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	if !owner {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "The course must be deleted by the owner.", nil)
	}

	if _, err := ctl.DB.Collection(database.ColCourses).DeleteOne(c.Context(), bson.M{"_id": courseID}); err != nil {
		log.Printf("Error deleting course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "The course was deleted successfully.", nil)
}

func (ctl *CourseController) courseFromRequest(reqData *courseValidator.CourseRequest, actorID primitive.ObjectID) models.Course {
	groupIDs := toObjectIDs(reqData.GroupIDs)
	sectionIDs := toObjectIDs(reqData.SectionIDs)

	var pretest, posttest *primitive.ObjectID
	if reqData.Pretest != "" {
		if oid, err := primitive.ObjectIDFromHex(reqData.Pretest); err == nil {
			pretest = &oid
		}
	}
	if reqData.Posttest != "" {
		if oid, err := primitive.ObjectIDFromHex(reqData.Posttest); err == nil {
			posttest = &oid
		}
	}

	return models.Course{
		Thumbnail:      reqData.Thumbnail,
		Title:          reqData.Title,
		Description:    reqData.Description,
		UsePoint:       *reqData.UsePoint,
		Price:          *reqData.Price,
		Point:          *reqData.Point,
		Objectives:     reqData.Objectives,
		GroupIDs:       groupIDs,
		SectionIDs:     sectionIDs,
		Status:         reqData.Status,
		Instructor:     actorID,
		Note:           reqData.Note,
		Pretest:        pretest,
		Posttest:       posttest,
		UseCertificate: *reqData.UseCertificate,
		Duration:       *reqData.Duration,
		Level:          reqData.Level,
		Slug:           utils.CourseSlug(reqData.Title),
		UpdatedBy:      actorID,
		UpdatedAt:      time.Now(),
	}
}

func toObjectIDs(hexIDs []string) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(hexIDs))
	for _, id := range hexIDs {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			ids = append(ids, oid)
		}
	}
	return ids
}

// findCourses fetches and resolves group/instructor references in one pass.
func (ctl *CourseController) findCourses(c *fiber.Ctx, filter bson.M, sort bson.D, skip, limit int64, withSections bool) ([]CourseView, error) {
	opts := options.Find().SetSort(sort)
	if skip > 0 {
		opts.SetSkip(skip)
	}
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := ctl.DB.Collection(database.ColCourses).Find(c.Context(), filter, opts)
	if err != nil {
		return nil, err
	}
	var courses []models.Course
	if err := cursor.All(c.Context(), &courses); err != nil {
		return nil, err
	}

	views := make([]CourseView, 0, len(courses))
	for _, course := range courses {
		view, err := ctl.resolveCourse(c, course, withSections)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// resolveCourse populates group names, instructor name and (optionally) the
// section/lesson tree.
func (ctl *CourseController) resolveCourse(c *fiber.Ctx, course models.Course, withSections bool) (CourseView, error) {
	view := CourseView{Course: course, Groups: []GroupRef{}}

	if len(course.GroupIDs) > 0 {
		cursor, err := ctl.DB.Collection(database.ColGroups).Find(c.Context(), bson.M{
			"_id": bson.M{"$in": course.GroupIDs},
		})
		if err != nil {
			return view, err
		}
		var groups []models.Group
		if err := cursor.All(c.Context(), &groups); err != nil {
			return view, err
		}
		for _, group := range groups {
			view.Groups = append(view.Groups, GroupRef{ID: group.ID, Name: group.Name})
		}
	}

	var instructor models.User
	err := ctl.DB.Collection(database.ColUsers).FindOne(c.Context(), bson.M{"_id": course.Instructor}).Decode(&instructor)
	if err == nil {
		view.InstructorBy = &InstructorRef{Firstname: instructor.Firstname, Lastname: instructor.Lastname}
	} else if err != mongo.ErrNoDocuments {
		return view, err
	}

	if withSections && len(course.SectionIDs) > 0 {
		cursor, err := ctl.DB.Collection(database.ColSections).Find(c.Context(), bson.M{
			"_id": bson.M{"$in": course.SectionIDs},
		})
		if err != nil {
			return view, err
		}
		var sections []models.Section
		if err := cursor.All(c.Context(), &sections); err != nil {
			return view, err
		}
		for _, section := range sections {
			sectionView := SectionView{ID: section.ID, Title: section.Title, Lessons: []LessonRef{}}
			if len(section.LessonIDs) > 0 {
				lessonCursor, err := ctl.DB.Collection(database.ColLessons).Find(c.Context(), bson.M{
					"_id": bson.M{"$in": section.LessonIDs},
				})
				if err != nil {
					return view, err
				}
				var lessons []models.Lesson
				if err := lessonCursor.All(c.Context(), &lessons); err != nil {
					return view, err
				}
				for _, lesson := range lessons {
					sectionView.Lessons = append(sectionView.Lessons, LessonRef{
						ID:            lesson.ID,
						Name:          lesson.Name,
						Type:          lesson.Type,
						Duration:      lesson.Duration,
						IsFreePreview: lesson.IsFreePreview,
					})
				}
			}
			view.Sections = append(view.Sections, sectionView)
		}
	}
	return view, nil
}
