package courseController

import (
	"errors"
	"log"

	"campus/middleware"
	"campus/store"

	"github.com/gofiber/fiber/v2"
)

func (ctl *CourseController) EnrollInCourse(c *fiber.Ctx) error {
	// Retrieve studentId from JWT middleware
	studentID, ok := c.Locals("studentId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	course, err := ctl.enrollments.Enroll(studentID, courseID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		case errors.Is(err, store.ErrAlreadyEnrolled):
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
		case errors.Is(err, store.ErrCourseFull):
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course is full!", nil)
		}
		log.Printf("Error enrolling student %d in course %d: %v", studentID, courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", course)
}

func (ctl *CourseController) DropCourse(c *fiber.Ctx) error {
	// Retrieve studentId from JWT middleware
	studentID, ok := c.Locals("studentId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	// Dropping is idempotent: absent enrollments drop to the same state.
	if err := ctl.enrollments.Drop(studentID, courseID); err != nil {
		log.Printf("Error dropping course %d for student %d: %v", courseID, studentID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to drop course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dropped course successfully!", nil)
}
