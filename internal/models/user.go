package models

import (
	"time"

	"gorm.io/gorm"
)

// Role — закрытый набор ролей. Сравнение всегда точное,
// без иерархий и wildcard'ов.
type Role string

const (
	RoleGuest   Role = "guest" // неаутентифицированный / без роли
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// Known сообщает, входит ли роль в известный набор.
func (r Role) Known() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Username     string `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Name         string `gorm:"size:191" json:"name"`
	PasswordHash string `gorm:"size:191;not null" json:"-"`
	Role         Role   `gorm:"size:32;not null;default:guest" json:"role"`
}
