package models

import (
	"gorm.io/gorm"
)

// Enrollment is the student<->course membership relation. The row itself
// is the enrollment: a student's course set and a course's student set are
// both projections of this table, so the two sides cannot drift apart.
type Enrollment struct {
	gorm.Model
	StudentID uint    `json:"student_id" gorm:"not null;uniqueIndex:idx_student_course"`
	CourseID  uint    `json:"course_id" gorm:"not null;uniqueIndex:idx_student_course"`
	Student   Student `json:"-" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Course    Course  `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
