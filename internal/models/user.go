package models

import "time"

type UserRole string

const (
	// RoleSuperAdmin has full administrative control, including user and
	// invite management. RoleContentAdmin can only edit restaurant content.
	RoleSuperAdmin   UserRole = "super_admin"
	RoleContentAdmin UserRole = "content_admin"
)

func IsValidRole(role UserRole) bool {
	return role == RoleSuperAdmin || role == RoleContentAdmin
}

type User struct {
	ID           uint     `gorm:"primaryKey"`
	Name         string   `gorm:"size:100;not null"`
	Email        string   `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null"`
	PictureURL   string   `gorm:"size:255"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
