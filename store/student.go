package store

import (
	"errors"

	"campus/models"

	"gorm.io/gorm"
)

// StudentStore owns student records. Enrollment membership is never
// written here directly; the cascade in Delete is the one exception.
type StudentStore struct {
	db *gorm.DB
}

func NewStudentStore(db *gorm.DB) *StudentStore {
	return &StudentStore{db: db}
}

func (s *StudentStore) Create(student *models.Student) error {
	if err := s.db.Create(student).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

func (s *StudentStore) GetByID(id uint) (*models.Student, error) {
	var student models.Student
	err := s.db.Where("id = ? AND is_deleted = ?", id, false).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &student, nil
}

func (s *StudentStore) GetByEmail(email string) (*models.Student, error) {
	var student models.Student
	err := s.db.Where("email = ? AND is_deleted = ?", email, false).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &student, nil
}

func (s *StudentStore) GetByCode(code string) (*models.Student, error) {
	var student models.Student
	err := s.db.Where("student_code = ? AND is_deleted = ?", code, false).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &student, nil
}

// UpdateName changes the display name. Email and student code are natural
// keys and stay fixed after registration.
func (s *StudentStore) UpdateName(id uint, name string) (*models.Student, error) {
	result := s.db.Model(&models.Student{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("name", name)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetByID(id)
}

// Delete soft-deletes the student and removes every enrollment row that
// references them, in one transaction, so no course keeps a member that
// no longer exists.
func (s *StudentStore) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Student{}).
			Where("id = ? AND is_deleted = ?", id, false).
			Update("is_deleted", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Unscoped().
			Where("student_id = ?", id).
			Delete(&models.Enrollment{}).Error
	})
}

func (s *StudentStore) Count() (int64, error) {
	var total int64
	err := s.db.Model(&models.Student{}).Where("is_deleted = ?", false).Count(&total).Error
	return total, err
}
