package users_models

import (
	"time"

	"pmtrack/internal/features/access"
	users_enums "pmtrack/internal/features/users/enums"

	"github.com/google/uuid"
)

type User struct {
	ID                   uuid.UUID            `json:"id"         gorm:"column:id;primaryKey"`
	Email                string               `json:"email"      gorm:"column:email;uniqueIndex"`
	FullName             string               `json:"fullName"   gorm:"column:full_name"`
	Department           string               `json:"department" gorm:"column:department"`
	Position             string               `json:"position"   gorm:"column:position"`
	HashedPassword       *string              `json:"-"          gorm:"column:hashed_password"`
	PasswordCreationTime time.Time            `json:"-"          gorm:"column:password_creation_time"`
	Role                 users_enums.UserRole `json:"role"       gorm:"column:role"`
	IsDeleted            bool                 `json:"isDeleted"  gorm:"column:is_deleted"`
	CreatedAt            time.Time            `json:"createdAt"  gorm:"column:created_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == users_enums.UserRoleAdmin
}

func (u *User) CanManageUsers() bool {
	return u.IsAdmin()
}

func (u *User) IsActiveUser() bool {
	return !u.IsDeleted
}

func (u *User) HasPassword() bool {
	return u.HashedPassword != nil && *u.HashedPassword != ""
}

// Caller reduces the user to the identity facts the access rules need
func (u *User) Caller() access.Caller {
	return access.Caller{ID: u.ID, IsAdmin: u.IsAdmin()}
}
