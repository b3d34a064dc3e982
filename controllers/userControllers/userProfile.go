package userController

import (
	"errors"
	"log"

	"campus/middleware"
	"campus/store"
	studentValidator "campus/validators/student"

	"github.com/gofiber/fiber/v2"
)

type ProfileController struct {
	students    *store.StudentStore
	enrollments *store.EnrollmentStore
}

func New(students *store.StudentStore, enrollments *store.EnrollmentStore) *ProfileController {
	return &ProfileController{students: students, enrollments: enrollments}
}

func (ctl *ProfileController) GetProfile(c *fiber.Ctx) error {
	// Retrieve studentId from JWT middleware
	studentID, ok := c.Locals("studentId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	student, err := ctl.students.GetByID(studentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
		}
		log.Printf("Error fetching student %d: %v", studentID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch profile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", student)
}

func (ctl *ProfileController) UpdateProfile(c *fiber.Ctx) error {
	studentID, ok := c.Locals("studentId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedProfile").(*studentValidator.UpdateProfileRequest)

	student, err := ctl.students.UpdateName(studentID, reqData.Name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
		}
		log.Printf("Error updating student %d: %v", studentID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully!", student)
}

// GetEnrolledCourses lists the courses the authenticated caller is
// currently enrolled in.
func (ctl *ProfileController) GetEnrolledCourses(c *fiber.Ctx) error {
	studentID, ok := c.Locals("studentId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courses, err := ctl.enrollments.CoursesFor(studentID)
	if err != nil {
		log.Printf("Error fetching enrollments for student %d: %v", studentID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// DeleteStudent is the administrative delete. The store cascades the
// student out of every course's membership set.
func (ctl *ProfileController) DeleteStudent(c *fiber.Ctx) error {
	targetID := c.Locals("targetStudentID").(uint)

	if err := ctl.students.Delete(targetID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
		}
		log.Printf("Error deleting student %d: %v", targetID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete student!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student deleted successfully!", nil)
}
