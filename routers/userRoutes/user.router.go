package userProfileRoutes

import (
	"campus/config"
	userController "campus/controllers/userControllers"
	"campus/middleware"
	validators "campus/validators/student"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App, cfg *config.Config, ctl *userController.ProfileController) {
	userGroup := app.Group("/user")
	auth := middleware.JWTAuth(cfg)

	userGroup.Get("/profile", auth, ctl.GetProfile)
	userGroup.Put("/profile", auth, validators.UpdateProfile(), ctl.UpdateProfile)
	userGroup.Get("/courses", auth, ctl.GetEnrolledCourses)
	userGroup.Delete("/:id", auth, validators.StudentId(), ctl.DeleteStudent)
}
