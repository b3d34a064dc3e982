package store

import (
	"testing"

	"campus/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	students := NewStudentStore(db)

	seedStudent(t, db, "alice@example.com", "S-1001")

	before, err := students.Count()
	require.NoError(t, err)

	dup := &models.Student{
		Name:        "Imposter",
		Email:       "alice@example.com",
		Password:    "hash",
		StudentCode: "S-9999",
	}
	assert.ErrorIs(t, students.Create(dup), ErrDuplicateKey)

	// No record was written
	after, err := students.Count()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestStudentDuplicateCode(t *testing.T) {
	db := newTestDB(t)
	students := NewStudentStore(db)

	seedStudent(t, db, "alice@example.com", "S-1001")

	dup := &models.Student{
		Name:        "Imposter",
		Email:       "other@example.com",
		Password:    "hash",
		StudentCode: "S-1001",
	}
	assert.ErrorIs(t, students.Create(dup), ErrDuplicateKey)
}

func TestStudentLookups(t *testing.T) {
	db := newTestDB(t)
	students := NewStudentStore(db)

	created := seedStudent(t, db, "alice@example.com", "S-1001")

	byID, err := students.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)

	byEmail, err := students.GetByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byCode, err := students.GetByCode("S-1001")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byCode.ID)

	_, err = students.GetByEmail("nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStudentUpdateName(t *testing.T) {
	db := newTestDB(t)
	students := NewStudentStore(db)

	created := seedStudent(t, db, "alice@example.com", "S-1001")

	updated, err := students.UpdateName(created.ID, "Alice Cooper")
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)

	_, err = students.UpdateName(created.ID+999, "Ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStudentDeleteHidesRecord(t *testing.T) {
	db := newTestDB(t)
	students := NewStudentStore(db)

	created := seedStudent(t, db, "alice@example.com", "S-1001")
	require.NoError(t, students.Delete(created.ID))

	_, err := students.GetByID(created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, students.Delete(created.ID), ErrNotFound)
}
