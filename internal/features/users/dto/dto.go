package users_dto

import (
	"time"

	users_enums "pmtrack/internal/features/users/enums"

	"github.com/google/uuid"
)

type SignInRequestDTO struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignInResponseDTO struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	Token  string    `json:"token"`
}

type SetAdminPasswordRequestDTO struct {
	Password string `json:"password" binding:"required,min=8"`
}

type IsAdminHasPasswordResponseDTO struct {
	HasPassword bool `json:"hasPassword"`
}

type ChangePasswordRequestDTO struct {
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

type CreateEmployeeRequestDTO struct {
	Email      string               `json:"email"      binding:"required,email"`
	FullName   string               `json:"fullName"   binding:"required,max=255"`
	Department string               `json:"department" binding:"max=100"`
	Position   string               `json:"position"   binding:"max=100"`
	Password   string               `json:"password"   binding:"required,min=8"`
	Role       users_enums.UserRole `json:"role"`
}

type UserProfileResponseDTO struct {
	ID         uuid.UUID            `json:"id"`
	Email      string               `json:"email"`
	FullName   string               `json:"fullName"`
	Department string               `json:"department"`
	Position   string               `json:"position"`
	Role       users_enums.UserRole `json:"role"`
	IsActive   bool                 `json:"isActive"`
	CreatedAt  time.Time            `json:"createdAt"`
}

type ListUsersResponseDTO struct {
	Users []UserProfileResponseDTO `json:"users"`
	Total int64                    `json:"total"`
}

type ChangeUserRoleRequestDTO struct {
	Role users_enums.UserRole `json:"role" binding:"required"`
}

type ListUsersRequestDTO struct {
	Limit          int        `form:"limit"          json:"limit"`
	Offset         int        `form:"offset"         json:"offset"`
	BeforeDate     *time.Time `form:"beforeDate"     json:"beforeDate"`
	IncludeDeleted bool       `form:"includeDeleted" json:"includeDeleted"`
}

// IdentityFacts is everything the core needs to know about a user
type IdentityFacts struct {
	ID        uuid.UUID `json:"id"`
	IsAdmin   bool      `json:"isAdmin"`
	IsDeleted bool      `json:"isDeleted"`
}
