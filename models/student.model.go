package models

import (
	"gorm.io/gorm"
)

type Student struct {
	gorm.Model
	Name        string `json:"name" gorm:"default:''"`
	Email       string `json:"email" gorm:"unique;not null"`
	Password    string `json:"-" gorm:"not null"`
	StudentCode string `json:"studentCode" gorm:"unique;not null"`
	IsDeleted   bool   `json:"-" gorm:"default:false"`
}
