package model

import "time"

// Roles
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleUser       = "user"
)

// Usuario stores staff users with role-based access.
type Usuario struct {
	ID        uint   `gorm:"primaryKey"`
	Nome      string `gorm:"not null"`
	Login     string `gorm:"uniqueIndex;not null"`
	SenhaHash string `gorm:"not null"`
	Role      string `gorm:"type:varchar(20);not null;default:'user'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Usuario) TableName() string { return "usuarios" }
