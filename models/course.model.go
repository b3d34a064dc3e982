package models

import "gorm.io/gorm"

const DefaultCapacity = 30

type Course struct {
	gorm.Model
	Code        string `json:"code" gorm:"unique;not null"` // upper-cased on write, immutable after create
	Name        string `json:"name" gorm:"not null"`
	Instructor  string `json:"instructor" gorm:"default:''"`
	Credits     int    `json:"credits" gorm:"not null"`
	Description string `json:"description" gorm:"default:''"`
	Capacity    int    `json:"capacity" gorm:"default:30"`
	IsDeleted   bool   `json:"-" gorm:"default:false"`

	// Filled by the enrollment store when returned from Enroll; not a column.
	Enrolled int64 `json:"enrolled" gorm:"-"`
}
