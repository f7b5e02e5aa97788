package roleRoutes

import (
	roleController "jubetech/controllers/role"
	"jubetech/middleware"
	"jubetech/models"

	"github.com/gofiber/fiber/v2"
)

func SetupRoleRoutes(app *fiber.App, ctl *roleController.RoleController, auth fiber.Handler) {
	roleGroup := app.Group("/api/role", auth, middleware.VerifyRole(models.RoleAdmin))

	roleGroup.Post("/create", ctl.CreateRole)
	roleGroup.Get("/all", ctl.GetAllRoles)
	roleGroup.Put("/update/:role_id", ctl.UpdateRole)
	roleGroup.Delete("/delete/:role_id", ctl.DeleteRole)
}
