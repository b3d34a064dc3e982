package authRoutes

import (
	authController "campus/controllers/auth"
	authValidators "campus/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, ctl *authController.AuthController) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidators.Signup(), ctl.Signup)
	authGroup.Post("/login", authValidators.Login(), ctl.Login)
}
