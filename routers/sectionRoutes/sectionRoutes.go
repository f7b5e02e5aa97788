package sectionRoutes

import (
	sectionController "jubetech/controllers/section"
	"jubetech/middleware"
	"jubetech/models"
	sectionValidator "jubetech/validators/section"

	"github.com/gofiber/fiber/v2"
)

func SetupSectionRoutes(app *fiber.App, ctl *sectionController.SectionController, auth fiber.Handler) {
	sectionGroup := app.Group("/api/section", auth, middleware.VerifyRole(models.RoleTutor))

	sectionGroup.Post("/create", sectionValidator.SectionsBody(), ctl.CreateSections)
	sectionGroup.Get("/tutor", ctl.GetSectionsByTutor)
	sectionGroup.Get("/id/:section_id", ctl.GetSectionById)
	sectionGroup.Put("/update/:section_id", sectionValidator.SectionBody(), ctl.UpdateSection)
	sectionGroup.Delete("/delete/:section_id", ctl.DeleteSection)
}
