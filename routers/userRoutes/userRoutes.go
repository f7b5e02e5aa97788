package userRoutes

import (
	userController "jubetech/controllers/user"
	"jubetech/middleware"
	"jubetech/models"
	userValidator "jubetech/validators/user"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App, ctl *userController.UserController, auth fiber.Handler) {
	userGroup := app.Group("/api/user", auth)
	admin := middleware.VerifyRole(models.RoleAdmin)

	userGroup.Get("/getRoleByUser", ctl.GetRoleByUser)

	userGroup.Get("/getAllUsers", admin, ctl.GetAllUsers)
	userGroup.Get("/getUser/:user_id", admin, ctl.GetUserById)
	userGroup.Post("/createUser", admin, userValidator.CreateUser(), ctl.CreateUser)
	userGroup.Put("/updateUser/:user_id", admin, userValidator.UpdateUser(), ctl.UpdateUser)
	userGroup.Delete("/deleteUser/:user_id", admin, ctl.DeleteUser)
}
