package groupRoutes

import (
	groupController "jubetech/controllers/group"
	"jubetech/middleware"
	"jubetech/models"
	groupValidator "jubetech/validators/group"

	"github.com/gofiber/fiber/v2"
)

func SetupGroupRoutes(app *fiber.App, ctl *groupController.GroupController, auth fiber.Handler) {
	groupGroup := app.Group("/api/group")
	admin := middleware.VerifyRole(models.RoleAdmin)

	groupGroup.Get("/all", ctl.GetAllGroups)
	groupGroup.Get("/pagination", ctl.PaginationGroup)

	groupGroup.Post("/create", auth, admin, groupValidator.GroupsBody(), ctl.CreateGroups)
	groupGroup.Get("/id/:group_id", auth, admin, ctl.GetGroupById)
	groupGroup.Put("/update/:group_id", auth, admin, groupValidator.GroupBody(), ctl.UpdateGroup)
	groupGroup.Delete("/delete", auth, admin, groupValidator.DeleteBody(), ctl.DeleteGroups)
}
