package store

import "errors"

var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrCodeImmutable   = errors.New("course code cannot be changed")
	ErrCapacityShrunk  = errors.New("capacity is below current enrollment")
	ErrAlreadyEnrolled = errors.New("already enrolled in this course")
	ErrCourseFull      = errors.New("course is full")
)
