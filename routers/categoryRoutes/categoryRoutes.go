package categoryRoutes

import (
	categoryController "jubetech/controllers/category"
	"jubetech/middleware"
	"jubetech/models"
	categoryValidator "jubetech/validators/category"

	"github.com/gofiber/fiber/v2"
)

func SetupCategoryRoutes(app *fiber.App, ctl *categoryController.CategoryController, auth fiber.Handler) {
	categoryGroup := app.Group("/api/category")
	admin := middleware.VerifyRole(models.RoleAdmin)

	categoryGroup.Get("/all", ctl.GetAllCategories)
	categoryGroup.Get("/pagination", ctl.PaginationCategory)
	categoryGroup.Get("/search", ctl.SearchCategories)

	categoryGroup.Post("/create", auth, admin, categoryValidator.CategoriesBody(), ctl.CreateCategories)
	categoryGroup.Get("/id/:category_id", auth, admin, ctl.GetCategoryById)
	categoryGroup.Put("/update/:category_id", auth, admin, categoryValidator.CategoryBody(), ctl.UpdateCategory)
	categoryGroup.Delete("/delete", auth, admin, categoryValidator.DeleteBody(), ctl.DeleteCategories)
}
