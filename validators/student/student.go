package studentValidator

import (
	"strconv"
	"strings"

	"campus/middleware"

	"github.com/gofiber/fiber/v2"
)

type UpdateProfileRequest struct {
	Name string `json:"name"`
}

// UpdateProfile validator middleware. Only the display name is editable;
// email and student code are natural keys and fixed at registration.
func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateProfileRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Name)) < 2 {
			errors["name"] = "Name must be at least 2 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProfile", reqData)
		return c.Next()
	}
}

// StudentId validates the :id path parameter on the administrative delete
func StudentId() fiber.Handler {
	return func(c *fiber.Ctx) error {
		studentIDStr := strings.TrimSpace(c.Params("id"))
		if studentIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Student ID is required!", nil)
		}

		studentID, err := strconv.Atoi(studentIDStr)
		if err != nil || studentID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Student ID!", nil)
		}

		c.Locals("targetStudentID", uint(studentID))
		return c.Next()
	}
}
