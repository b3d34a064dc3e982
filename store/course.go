package store

import (
	"errors"
	"strings"

	"campus/models"

	"gorm.io/gorm"
)

// CourseStore owns course records. The enrolled-student set lives in the
// enrollments table; this store never touches it except for the cascade
// in Delete.
type CourseStore struct {
	db *gorm.DB
}

func NewCourseStore(db *gorm.DB) *CourseStore {
	return &CourseStore{db: db}
}

// NormalizeCode is the canonical form of a course code. Codes are compared
// and stored upper-cased, so lookups are case-insensitive.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *CourseStore) Create(course *models.Course) error {
	course.Code = NormalizeCode(course.Code)
	if course.Capacity <= 0 {
		course.Capacity = models.DefaultCapacity
	}
	if err := s.db.Create(course).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

func (s *CourseStore) GetByID(id uint) (*models.Course, error) {
	var course models.Course
	err := s.db.Where("id = ? AND is_deleted = ?", id, false).First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &course, nil
}

func (s *CourseStore) GetByCode(code string) (*models.Course, error) {
	var course models.Course
	err := s.db.Where("code = ? AND is_deleted = ?", NormalizeCode(code), false).First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &course, nil
}

// List returns a page of courses plus the unpaginated total. A non-empty
// query narrows the page to case-insensitive substring matches on code,
// name or description; this is also the fallback path when the AI search
// collaborator is unavailable.
func (s *CourseStore) List(page, limit int, query string) ([]models.Course, int64, error) {
	db := s.db.Model(&models.Course{}).Where("is_deleted = ?", false)

	if query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		db = db.Where(
			"lower(code) LIKE ? OR lower(name) LIKE ? OR lower(description) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courses []models.Course
	offset := (page - 1) * limit
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

// ListByCodes fetches the courses whose codes appear in the given list,
// used to materialize the AI search collaborator's answer.
func (s *CourseStore) ListByCodes(codes []string) ([]models.Course, error) {
	normalized := make([]string, 0, len(codes))
	for _, code := range codes {
		normalized = append(normalized, NormalizeCode(code))
	}

	var courses []models.Course
	err := s.db.Where("code IN ? AND is_deleted = ?", normalized, false).
		Order("code asc").Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

// Update applies the given fields. The course code is immutable after
// creation; any attempt to change it is rejected before touching the row.
// Capacity changes are checked against the current enrollment under the
// same lock discipline Enroll uses, so the seat invariant cannot be broken
// by shrinking a course below its enrolled students.
func (s *CourseStore) Update(id uint, fields map[string]interface{}) (*models.Course, error) {
	if _, ok := fields["code"]; ok {
		return nil, ErrCodeImmutable
	}

	var course models.Course
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).Where("id = ? AND is_deleted = ?", id, false).
			First(&course).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if capacity, ok := fields["capacity"].(int); ok {
			var seats int64
			if err := tx.Model(&models.Enrollment{}).
				Where("course_id = ?", id).Count(&seats).Error; err != nil {
				return err
			}
			if int64(capacity) < seats {
				return ErrCapacityShrunk
			}
		}

		return tx.Model(&course).Updates(fields).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// Delete soft-deletes the course and removes it from every student's
// enrollment set in one transaction.
func (s *CourseStore) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Course{}).
			Where("id = ? AND is_deleted = ?", id, false).
			Update("is_deleted", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Unscoped().
			Where("course_id = ?", id).
			Delete(&models.Enrollment{}).Error
	})
}
