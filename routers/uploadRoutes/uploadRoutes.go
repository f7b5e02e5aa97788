package uploadRoutes

import (
	uploadController "jubetech/controllers/upload"
	"jubetech/middleware"
	"jubetech/models"

	"github.com/gofiber/fiber/v2"
)

func SetupUploadRoutes(app *fiber.App, ctl *uploadController.UploadController, auth fiber.Handler) {
	fileGroup := app.Group("/api/file", auth, middleware.VerifyRole(models.RoleTutor, models.RoleAdmin))

	fileGroup.Post("/upload", ctl.UploadFile)
	fileGroup.Delete("/delete", ctl.DeleteFile)
}
