package courseRoutes

import (
	courseController "jubetech/controllers/course"
	"jubetech/middleware"
	"jubetech/models"
	courseValidator "jubetech/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupCourseRoutes(app *fiber.App, ctl *courseController.CourseController, auth fiber.Handler) {
	courseGroup := app.Group("/api/course")
	tutor := middleware.VerifyRole(models.RoleTutor)

	courseGroup.Get("/all", ctl.GetAllCourses)
	courseGroup.Get("/pagination", ctl.PaginationCourse)
	courseGroup.Get("/slug/:slug", ctl.GetCourseBySlug)

	courseGroup.Get("/tutor", auth, tutor, ctl.GetCoursesByTutor)
	courseGroup.Get("/id/:course_id", auth, tutor, ctl.GetCourseById)
	courseGroup.Post("/create", auth, tutor, courseValidator.CourseBody(), ctl.CreateCourse)
	courseGroup.Put("/update/:course_id", auth, tutor, courseValidator.CourseBody(), ctl.UpdateCourse)
	courseGroup.Delete("/delete/:course_id", auth, tutor, ctl.DeleteCourse)
}
