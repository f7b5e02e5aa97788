package promotionRoutes

import (
	promotionController "jubetech/controllers/promotion"
	"jubetech/middleware"
	"jubetech/models"
	promotionValidator "jubetech/validators/promotion"

	"github.com/gofiber/fiber/v2"
)

func SetupPromotionRoutes(app *fiber.App, ctl *promotionController.PromotionController, auth fiber.Handler) {
	promotionGroup := app.Group("/api/promotion", auth, middleware.VerifyRole(models.RoleAdmin))

	promotionGroup.Post("/create", promotionValidator.PromotionBody(), ctl.CreatePromotion)
	promotionGroup.Get("/all", ctl.GetAllPromotions)
	promotionGroup.Get("/id/:promotion_id", ctl.GetPromotionById)
	promotionGroup.Put("/update/:promotion_id", promotionValidator.PromotionBody(), ctl.UpdatePromotion)
	promotionGroup.Delete("/delete/:promotion_id", ctl.DeletePromotion)
}
