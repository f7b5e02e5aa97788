package lessonRoutes

import (
	lessonController "jubetech/controllers/lesson"
	"jubetech/middleware"
	"jubetech/models"
	lessonValidator "jubetech/validators/lesson"

	"github.com/gofiber/fiber/v2"
)

func SetupLessonRoutes(app *fiber.App, ctl *lessonController.LessonController, auth fiber.Handler) {
	lessonGroup := app.Group("/api/lesson", auth, middleware.VerifyRole(models.RoleTutor))

	lessonGroup.Post("/create", lessonValidator.LessonBody(), ctl.CreateLesson)
	lessonGroup.Get("/filter", ctl.GetLessonsByTutor)
	lessonGroup.Get("/id/:lesson_id", ctl.GetLessonById)
	lessonGroup.Put("/update/:lesson_id", lessonValidator.LessonBody(), ctl.UpdateLesson)
	lessonGroup.Delete("/delete/:lesson_id", ctl.DeleteLesson)
}
