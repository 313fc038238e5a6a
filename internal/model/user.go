package model

import "time"

// User represents an account that owns albums and images.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	RoleID       uint      `json:"-" gorm:"not null;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Role Role `json:"-" gorm:"foreignKey:RoleID;constraint:OnDelete:RESTRICT"`
}

// UserSummary is the public projection of a user joined with its role.
type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
