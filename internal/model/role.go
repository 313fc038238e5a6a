package model

// Built-in role names. Matching is exact and case-sensitive.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// DefaultRoles are created by the migration if missing.
var DefaultRoles = []string{RoleAdmin, RoleUser}

// Role is a named permission level. Each user holds exactly one.
type Role struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;size:50;not null"`
}
