package model

import "gorm.io/gorm"

// User is an operator account for the admin endpoints.
type User struct {
	gorm.Model
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"` // bcrypt hash
	Email    string `json:"email"`
}
