package courseController

import (
	"errors"
	"log"

	"campus/middleware"
	"campus/models"
	"campus/store"
	"campus/utils"
	courseValidator "campus/validators/course"

	"github.com/gofiber/fiber/v2"
)

type CourseController struct {
	courses     *store.CourseStore
	enrollments *store.EnrollmentStore
	search      *utils.SearchClient
}

func New(courses *store.CourseStore, enrollments *store.EnrollmentStore, search *utils.SearchClient) *CourseController {
	return &CourseController{courses: courses, enrollments: enrollments, search: search}
}

func (ctl *CourseController) GetAllCourses(c *fiber.Ctx) error {
	reqData := c.Locals("validatedList").(*courseValidator.ListRequest)

	// Set default pagination
	page := 1
	limit := 10
	if reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData.Limit != nil {
		limit = *reqData.Limit
	}

	courses, total, err := ctl.courses.List(page, limit, reqData.Query)
	if err != nil {
		log.Printf("Error fetching courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

func (ctl *CourseController) GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	course, err := ctl.courses.GetByID(courseID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		log.Printf("Error fetching course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	seats, err := ctl.enrollments.CountFor(courseID)
	if err != nil {
		log.Printf("Error counting enrollments for course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}
	course.Enrolled = seats

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}

func (ctl *CourseController) CreateCourse(c *fiber.Ctx) error {
	reqData := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)

	course := models.Course{
		Code:        reqData.Code,
		Name:        reqData.Name,
		Instructor:  reqData.Instructor,
		Credits:     reqData.Credits,
		Description: reqData.Description,
	}
	if reqData.Capacity != nil {
		course.Capacity = *reqData.Capacity
	}

	if err := ctl.courses.Create(&course); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course code already exists!", nil)
		}
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

func (ctl *CourseController) UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	reqData := c.Locals("validatedCourseUpdate").(*courseValidator.UpdateCourseRequest)

	fields := map[string]interface{}{}
	if reqData.Name != nil {
		fields["name"] = *reqData.Name
	}
	if reqData.Instructor != nil {
		fields["instructor"] = *reqData.Instructor
	}
	if reqData.Credits != nil {
		fields["credits"] = *reqData.Credits
	}
	if reqData.Description != nil {
		fields["description"] = *reqData.Description
	}
	if reqData.Capacity != nil {
		fields["capacity"] = *reqData.Capacity
	}

	if len(fields) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
	}

	course, err := ctl.courses.Update(courseID, fields)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		if errors.Is(err, store.ErrCodeImmutable) {
			return middleware.ValidationErrorResponse(c, map[string]string{"code": "Course code cannot be changed after creation!"})
		}
		if errors.Is(err, store.ErrCapacityShrunk) {
			return middleware.ValidationErrorResponse(c, map[string]string{"capacity": "Capacity cannot be less than current enrollment!"})
		}
		log.Printf("Error updating course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

func (ctl *CourseController) DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	if err := ctl.courses.Delete(courseID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		log.Printf("Error deleting course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// SearchCourses answers a free-text query. The AI classification endpoint
// gets the first shot; when it is unconfigured or fails, the query falls
// back to plain substring matching in the store.
func (ctl *CourseController) SearchCourses(c *fiber.Ctx) error {
	query := c.Locals("searchQuery").(string)

	catalog, _, err := ctl.courses.List(1, 500, "")
	if err != nil {
		log.Printf("Error fetching catalog for search: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to search courses!", nil)
	}

	if ctl.search.Enabled() {
		codes, err := ctl.search.MatchCourses(query, catalog)
		if err == nil {
			courses, err := ctl.courses.ListByCodes(codes)
			if err == nil {
				return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
					"courses": courses,
					"source":  "ai",
				})
			}
			log.Printf("Error resolving AI search codes: %v", err)
		}
		// fall through to substring search
	}

	courses, _, err := ctl.courses.List(1, 100, query)
	if err != nil {
		log.Printf("Error searching courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to search courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"source":  "substring",
	})
}
