package authRoutes

import (
	authController "jubetech/controllers/auth"
	authValidator "jubetech/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, ctl *authController.AuthController) {
	authGroup := app.Group("/api/auth")

	authGroup.Post("/request/otp", authValidator.RequestOTP(), ctl.RequestOTP)
	authGroup.Post("/signup", authValidator.Signup(), ctl.Signup)
	authGroup.Post("/signin", authValidator.Signin(), ctl.Signin)
}
