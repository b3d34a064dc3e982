package courseValidator

import (
	"regexp"
	"strconv"
	"strings"

	"campus/middleware"

	"github.com/gofiber/fiber/v2"
)

// Course codes look like "CS101": letters then digits, 2-10 chars each part.
var codePattern = regexp.MustCompile(`^[a-zA-Z]{2,10}[0-9]{2,10}$`)

// Largest page size the listing endpoints will serve
const maxListLimit = 100

type CreateCourseRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Instructor  string `json:"instructor"`
	Credits     int    `json:"credits"`
	Description string `json:"description"`
	Capacity    *int   `json:"capacity"`
}

// CreateCourse validator middleware
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if !codePattern.MatchString(strings.TrimSpace(reqData.Code)) {
			errors["code"] = "Invalid course code!"
		}

		if len(strings.TrimSpace(reqData.Name)) < 2 {
			errors["name"] = "Course name must be at least 2 characters long!"
		}

		if reqData.Credits <= 0 {
			errors["credits"] = "Credits must be a positive integer!"
		}

		if reqData.Capacity != nil && *reqData.Capacity <= 0 {
			errors["capacity"] = "Capacity must be a positive integer!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

type UpdateCourseRequest struct {
	Code        *string `json:"code"`
	Name        *string `json:"name"`
	Instructor  *string `json:"instructor"`
	Credits     *int    `json:"credits"`
	Description *string `json:"description"`
	Capacity    *int    `json:"capacity"`
}

// UpdateCourse validator middleware. The course code is immutable after
// creation, so any attempt to send one is rejected here.
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Code != nil {
			errors["code"] = "Course code cannot be changed after creation!"
		}

		if reqData.Name != nil && len(strings.TrimSpace(*reqData.Name)) < 2 {
			errors["name"] = "Course name must be at least 2 characters long!"
		}

		if reqData.Credits != nil && *reqData.Credits <= 0 {
			errors["credits"] = "Credits must be a positive integer!"
		}

		if reqData.Capacity != nil && *reqData.Capacity <= 0 {
			errors["capacity"] = "Capacity must be a positive integer!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

type ListRequest struct {
	Page  *int   `query:"page"`
	Limit *int   `query:"limit"`
	Query string `query:"q"`
}

// CourseList validates pagination query parameters
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ListRequest)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}

		if reqData.Limit != nil && *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}

		if reqData.Limit != nil && *reqData.Limit > maxListLimit {
			errors["limit"] = "Limit must not exceed 100!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

// CourseId validates the :id path parameter for detail, update, delete,
// enroll and drop routes.
func CourseId() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", uint(courseID))
		return c.Next()
	}
}

// SearchQuery validates the free-text search query
func SearchQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := strings.TrimSpace(c.Query("q"))
		if query == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Search query is required!", nil)
		}

		c.Locals("searchQuery", query)
		return c.Next()
	}
}
