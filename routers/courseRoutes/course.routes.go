package courseRoutes

import (
	"campus/config"
	courseController "campus/controllers/course"
	"campus/middleware"
	validators "campus/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all course routes
func SetupCourseRoutes(app *fiber.App, cfg *config.Config, ctl *courseController.CourseController) {
	courseGroup := app.Group("/course")
	auth := middleware.JWTAuth(cfg)

	// Fixed paths first so they are not captured by /:id
	courseGroup.Get("/list", auth, validators.CourseList(), ctl.GetAllCourses)
	courseGroup.Get("/search", auth, validators.SearchQuery(), ctl.SearchCourses)

	// CRUD
	courseGroup.Post("/", auth, validators.CreateCourse(), ctl.CreateCourse)
	courseGroup.Get("/:id", auth, validators.CourseId(), ctl.GetCourseDetails)
	courseGroup.Put("/:id", auth, validators.CourseId(), validators.UpdateCourse(), ctl.UpdateCourse)
	courseGroup.Delete("/:id", auth, validators.CourseId(), ctl.DeleteCourse)

	// Enrollment
	courseGroup.Post("/:id/enroll", auth, validators.CourseId(), ctl.EnrollInCourse)
	courseGroup.Post("/:id/drop", auth, validators.CourseId(), ctl.DropCourse)
}
