package store

import (
	"fmt"
	"testing"

	"campus/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory database. A single pooled
// connection keeps SQLite's locking out of the picture while still letting
// concurrent goroutines exercise the enroll transaction.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Student{}, &models.Course{}, &models.Enrollment{}))

	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func seedStudent(t *testing.T, db *gorm.DB, email, code string) *models.Student {
	t.Helper()

	student := &models.Student{
		Name:        "Test Student",
		Email:       email,
		Password:    "not-a-real-hash",
		StudentCode: code,
	}
	require.NoError(t, NewStudentStore(db).Create(student))
	return student
}

func seedCourse(t *testing.T, db *gorm.DB, code string, capacity int) *models.Course {
	t.Helper()

	course := &models.Course{
		Code:       code,
		Name:       "Test Course",
		Instructor: "Prof. Example",
		Credits:    3,
		Capacity:   capacity,
	}
	require.NoError(t, NewCourseStore(db).Create(course))
	return course
}

// requireMembershipConsistent asserts the bidirectional invariant: every
// student's course set and every course's student set agree, and no
// enrollment row points at a deleted record.
func requireMembershipConsistent(t *testing.T, db *gorm.DB) {
	t.Helper()

	enrollments := NewEnrollmentStore(db)

	var orphaned int64
	require.NoError(t, db.Model(&models.Enrollment{}).
		Where("student_id IN (?)", db.Model(&models.Student{}).Select("id").Where("is_deleted = ?", true)).
		Or("course_id IN (?)", db.Model(&models.Course{}).Select("id").Where("is_deleted = ?", true)).
		Count(&orphaned).Error)
	require.Zero(t, orphaned, "enrollment rows reference deleted records")

	var students []models.Student
	require.NoError(t, db.Where("is_deleted = ?", false).Find(&students).Error)

	for _, student := range students {
		courses, err := enrollments.CoursesFor(student.ID)
		require.NoError(t, err)
		for _, course := range courses {
			members, err := enrollments.StudentsFor(course.ID)
			require.NoError(t, err)
			found := false
			for _, member := range members {
				if member.ID == student.ID {
					found = true
					break
				}
			}
			require.True(t, found, "student %d sees course %d but course does not see student", student.ID, course.ID)
		}
	}
}

// requireCapacityRespected asserts no course holds more students than seats.
func requireCapacityRespected(t *testing.T, db *gorm.DB) {
	t.Helper()

	enrollments := NewEnrollmentStore(db)

	var courses []models.Course
	require.NoError(t, db.Find(&courses).Error)
	for _, course := range courses {
		seats, err := enrollments.CountFor(course.ID)
		require.NoError(t, err)
		require.LessOrEqual(t, seats, int64(course.Capacity),
			"course %s holds %d students over capacity %d", course.Code, seats, course.Capacity)
	}
}
