package users_enums

type UserRole string

const (
	UserRoleAdmin    UserRole = "ADMIN"
	UserRoleEmployee UserRole = "EMPLOYEE"
)

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleEmployee:
		return true
	default:
		return false
	}
}
