package store

import (
	"fmt"
	"sync"
	"testing"

	"campus/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollAndDrop(t *testing.T) {
	db := newTestDB(t)
	enrollments := NewEnrollmentStore(db)

	student := seedStudent(t, db, "alice@example.com", "S-1001")
	course := seedCourse(t, db, "CS101", 30)

	updated, err := enrollments.Enroll(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.Enrolled)

	enrolled, err := enrollments.IsEnrolled(student.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, enrolled)

	courses, err := enrollments.CoursesFor(student.ID)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "CS101", courses[0].Code)

	requireMembershipConsistent(t, db)

	require.NoError(t, enrollments.Drop(student.ID, course.ID))

	enrolled, err = enrollments.IsEnrolled(student.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, enrolled)

	requireMembershipConsistent(t, db)
}

func TestEnrollRejectsDuplicates(t *testing.T) {
	db := newTestDB(t)
	enrollments := NewEnrollmentStore(db)

	student := seedStudent(t, db, "alice@example.com", "S-1001")
	course := seedCourse(t, db, "CS101", 30)

	_, err := enrollments.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	_, err = enrollments.Enroll(student.ID, course.ID)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)

	seats, err := enrollments.CountFor(course.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), seats)
}

func TestEnrollMissingRecords(t *testing.T) {
	db := newTestDB(t)
	enrollments := NewEnrollmentStore(db)

	student := seedStudent(t, db, "alice@example.com", "S-1001")
	course := seedCourse(t, db, "CS101", 30)

	_, err := enrollments.Enroll(student.ID, course.ID+999)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = enrollments.Enroll(student.ID+999, course.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

// A deleted student cannot pick up new enrollments, and no join row may
// survive the delete cascade to consume a seat.
func TestEnrollAfterStudentDelete(t *testing.T) {
	db := newTestDB(t)
	enrollments := NewEnrollmentStore(db)
	students := NewStudentStore(db)

	student := seedStudent(t, db, "alice@example.com", "S-1001")
	course := seedCourse(t, db, "CS101", 30)

	_, err := enrollments.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	require.NoError(t, students.Delete(student.ID))

	_, err = enrollments.Enroll(student.ID, course.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	seats, err := enrollments.CountFor(course.ID)
	require.NoError(t, err)
	assert.Zero(t, seats, "deleted student still consumes a seat")

	requireMembershipConsistent(t, db)
}

// Dropping twice lands in the same state as dropping once; dropping an
// enrollment that never existed succeeds too.
func TestDropIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	enrollments := NewEnrollmentStore(db)

	student := seedStudent(t, db, "alice@example.com", "S-1001")
	course := seedCourse(t, db, "CS101", 30)

	_, err := enrollments.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	require.NoError(t, enrollments.Drop(student.ID, course.ID))
	require.NoError(t, enrollments.Drop(student.ID, course.ID))

	seats, err := enrollments.CountFor(course.ID)
	require.NoError(t, err)
	assert.Zero(t, seats)

	require.NoError(t, enrollments.Drop(student.ID+999, course.ID))

	requireMembershipConsistent(t, db)
}

func TestCapacityOneSeat(t *testing.T) {
	db := newTestDB(t)
	enrollments := NewEnrollmentStore(db)

	alice := seedStudent(t, db, "alice@example.com", "S-1001")
	bob := seedStudent(t, db, "bob@example.com", "S-1002")
	course := seedCourse(t, db, "CS101", 1)

	_, err := enrollments.Enroll(alice.ID, course.ID)
	require.NoError(t, err)

	_, err = enrollments.Enroll(bob.ID, course.ID)
	assert.ErrorIs(t, err, ErrCourseFull)

	require.NoError(t, enrollments.Drop(alice.ID, course.ID))

	_, err = enrollments.Enroll(bob.ID, course.ID)
	require.NoError(t, err)

	requireMembershipConsistent(t, db)
	requireCapacityRespected(t, db)
}

// capacity free seats, capacity+5 concurrent enrolls: exactly capacity
// succeed and 5 fail with CourseFull, and the invariants still hold.
func TestConcurrentEnrollRespectsCapacity(t *testing.T) {
	db := newTestDB(t)
	enrollments := NewEnrollmentStore(db)

	const capacity = 8
	course := seedCourse(t, db, "CS101", capacity)

	students := make([]*models.Student, capacity+5)
	for i := range students {
		students[i] = seedStudent(t, db,
			fmt.Sprintf("student%d@example.com", i),
			fmt.Sprintf("S-%04d", i))
	}

	var wg sync.WaitGroup
	results := make(chan error, len(students))
	for _, student := range students {
		wg.Add(1)
		go func(studentID uint) {
			defer wg.Done()
			_, err := enrollments.Enroll(studentID, course.ID)
			results <- err
		}(student.ID)
	}
	wg.Wait()
	close(results)

	successes, full := 0, 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, ErrCourseFull):
			full++
		}
	}

	assert.Equal(t, capacity, successes)
	assert.Equal(t, 5, full)

	seats, err := enrollments.CountFor(course.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(capacity), seats)

	requireMembershipConsistent(t, db)
	requireCapacityRespected(t, db)
}

func TestDeleteCourseCascades(t *testing.T) {
	db := newTestDB(t)
	enrollments := NewEnrollmentStore(db)
	courses := NewCourseStore(db)

	course := seedCourse(t, db, "CS101", 30)
	other := seedCourse(t, db, "MA201", 30)

	members := make([]*models.Student, 3)
	for i := range members {
		members[i] = seedStudent(t, db,
			fmt.Sprintf("student%d@example.com", i),
			fmt.Sprintf("S-%04d", i))
		_, err := enrollments.Enroll(members[i].ID, course.ID)
		require.NoError(t, err)
	}
	_, err := enrollments.Enroll(members[0].ID, other.ID)
	require.NoError(t, err)

	require.NoError(t, courses.Delete(course.ID))

	for _, member := range members {
		list, err := enrollments.CoursesFor(member.ID)
		require.NoError(t, err)
		for _, enrolled := range list {
			assert.NotEqual(t, course.ID, enrolled.ID)
		}
	}

	// The unrelated enrollment survives
	list, err := enrollments.CoursesFor(members[0].ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "MA201", list[0].Code)

	requireMembershipConsistent(t, db)
}

func TestDeleteStudentCascades(t *testing.T) {
	db := newTestDB(t)
	enrollments := NewEnrollmentStore(db)
	students := NewStudentStore(db)

	student := seedStudent(t, db, "alice@example.com", "S-1001")
	first := seedCourse(t, db, "CS101", 30)
	second := seedCourse(t, db, "MA201", 30)

	_, err := enrollments.Enroll(student.ID, first.ID)
	require.NoError(t, err)
	_, err = enrollments.Enroll(student.ID, second.ID)
	require.NoError(t, err)

	require.NoError(t, students.Delete(student.ID))

	for _, courseID := range []uint{first.ID, second.ID} {
		members, err := enrollments.StudentsFor(courseID)
		require.NoError(t, err)
		assert.Empty(t, members)
	}

	requireMembershipConsistent(t, db)
}

// A longer interleaving of enrolls, drops and deletes; the invariant must
// hold after every completed operation.
func TestInvariantAcrossOperationSequence(t *testing.T) {
	db := newTestDB(t)
	enrollments := NewEnrollmentStore(db)
	courses := NewCourseStore(db)
	students := NewStudentStore(db)

	alice := seedStudent(t, db, "alice@example.com", "S-1001")
	bob := seedStudent(t, db, "bob@example.com", "S-1002")
	cs := seedCourse(t, db, "CS101", 2)
	ma := seedCourse(t, db, "MA201", 2)

	steps := []func() error{
		func() error { _, err := enrollments.Enroll(alice.ID, cs.ID); return err },
		func() error { _, err := enrollments.Enroll(bob.ID, cs.ID); return err },
		func() error { _, err := enrollments.Enroll(alice.ID, ma.ID); return err },
		func() error { return enrollments.Drop(bob.ID, cs.ID) },
		func() error { _, err := enrollments.Enroll(bob.ID, ma.ID); return err },
		func() error { return courses.Delete(cs.ID) },
		func() error { return students.Delete(alice.ID) },
	}

	for i, step := range steps {
		require.NoError(t, step(), "step %d", i)
		requireMembershipConsistent(t, db)
		requireCapacityRespected(t, db)
	}

	members, err := enrollments.StudentsFor(ma.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, bob.ID, members[0].ID)
}
