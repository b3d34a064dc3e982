package main

import (
	"log"

	"campus/config"
	authController "campus/controllers/auth"
	courseController "campus/controllers/course"
	userController "campus/controllers/userControllers"
	"campus/database"
	authRoutes "campus/routers/authRoutes"
	courseRoutes "campus/routers/courseRoutes"
	userProfileRoutes "campus/routers/userRoutes"
	"campus/store"
	"campus/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database setup failed: %v", err)
	}
	defer database.Close(db)

	students := store.NewStudentStore(db)
	courses := store.NewCourseStore(db)
	enrollments := store.NewEnrollmentStore(db)

	mailer := utils.NewMailer(cfg)
	search := utils.NewSearchClient(cfg)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app, authController.New(cfg, students, mailer))
	courseRoutes.SetupCourseRoutes(app, cfg, courseController.New(courses, enrollments, search))
	userProfileRoutes.SetupUserRoutes(app, cfg, userController.New(students, enrollments))

	purge := utils.InitializePurgeScheduler(db, cfg)
	defer purge.Stop()

	log.Printf("Server is running on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
