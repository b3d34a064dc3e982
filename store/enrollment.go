package store

import (
	"errors"

	"campus/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EnrollmentStore is the only component that creates or removes
// enrollments. Because an enrollment is a single row, the student-side and
// course-side membership views cannot disagree after any operation; the
// remaining invariant, the capacity cap, is enforced inside Enroll's
// transaction against the locked course row.
type EnrollmentStore struct {
	db *gorm.DB
}

func NewEnrollmentStore(db *gorm.DB) *EnrollmentStore {
	return &EnrollmentStore{db: db}
}

// lockForUpdate adds FOR UPDATE on dialects that parse it. SQLite does
// not, and its single-writer transaction lock already serializes writers.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// Enroll adds the student to the course. The course row is locked for the
// duration of the transaction, so the seat count read here cannot go stale
// before the insert: two concurrent enrolls racing for the last seat
// serialize on the lock and the loser sees the course full. The unique
// (student_id, course_id) index backstops duplicate races.
func (s *EnrollmentStore) Enroll(studentID, courseID uint) (*models.Course, error) {
	var course models.Course

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// The student row is locked too: a concurrent student delete
		// soft-deletes the row before cascading the join rows, so an
		// in-flight enroll either sees the live student and holds the lock
		// until its insert commits, or sees the deleted student and stops.
		// Without the lock the insert could land after the cascade and
		// leave an orphan row consuming a seat.
		var student models.Student
		if err := lockForUpdate(tx).Where("id = ? AND is_deleted = ?", studentID, false).
			First(&student).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := lockForUpdate(tx).Where("id = ? AND is_deleted = ?", courseID, false).
			First(&course).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var existing models.Enrollment
		err := tx.Where("student_id = ? AND course_id = ?", studentID, courseID).
			First(&existing).Error
		if err == nil {
			return ErrAlreadyEnrolled
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var seats int64
		if err := tx.Model(&models.Enrollment{}).
			Where("course_id = ?", courseID).Count(&seats).Error; err != nil {
			return err
		}
		if seats >= int64(course.Capacity) {
			return ErrCourseFull
		}

		enrollment := models.Enrollment{StudentID: studentID, CourseID: courseID}
		if err := tx.Create(&enrollment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyEnrolled
			}
			return err
		}

		course.Enrolled = seats + 1
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// Drop removes the enrollment if it exists. Dropping an absent enrollment
// is a no-op, not an error, so the call is safe to retry.
func (s *EnrollmentStore) Drop(studentID, courseID uint) error {
	return s.db.Unscoped().
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Delete(&models.Enrollment{}).Error
}

// CoursesFor projects the student-side membership set.
func (s *EnrollmentStore) CoursesFor(studentID uint) ([]models.Course, error) {
	var courses []models.Course
	err := s.db.Model(&models.Course{}).
		Joins("JOIN enrollments ON enrollments.course_id = courses.id AND enrollments.deleted_at IS NULL").
		Where("enrollments.student_id = ? AND courses.is_deleted = ?", studentID, false).
		Order("courses.code asc").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

// StudentsFor projects the course-side membership set.
func (s *EnrollmentStore) StudentsFor(courseID uint) ([]models.Student, error) {
	var students []models.Student
	err := s.db.Model(&models.Student{}).
		Joins("JOIN enrollments ON enrollments.student_id = students.id AND enrollments.deleted_at IS NULL").
		Where("enrollments.course_id = ? AND students.is_deleted = ?", courseID, false).
		Order("students.id asc").
		Find(&students).Error
	if err != nil {
		return nil, err
	}
	return students, nil
}

// CountFor reports the number of students enrolled in the course.
func (s *EnrollmentStore) CountFor(courseID uint) (int64, error) {
	var seats int64
	err := s.db.Model(&models.Enrollment{}).
		Where("course_id = ?", courseID).Count(&seats).Error
	return seats, err
}

// IsEnrolled reports whether the pair is currently enrolled.
func (s *EnrollmentStore) IsEnrolled(studentID, courseID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Enrollment{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&count).Error
	return count > 0, err
}
