package users_testing

import (
	"fmt"
	"strings"
	"time"

	users_dto "pmtrack/internal/features/users/dto"
	users_enums "pmtrack/internal/features/users/enums"
	users_models "pmtrack/internal/features/users/models"
	users_repositories "pmtrack/internal/features/users/repositories"
	users_services "pmtrack/internal/features/users/services"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func CreateTestUser(role users_enums.UserRole) *users_dto.SignInResponseDTO {
	user := CreateTestUserModel(role)

	response, err := users_services.GetUserService().GenerateAccessToken(user)
	if err != nil {
		panic(err)
	}

	return response
}

// CreateTestUserModel stores a user with a placeholder password hash.
// Sign in is not possible for such users, only tokens work.
func CreateTestUserModel(role users_enums.UserRole) *users_models.User {
	userID := uuid.New()
	email := fmt.Sprintf("%s-%s@test.com", strings.ToLower(string(role)), userID.String()[:8])

	hashedPassword := "$2a$10$test"
	user := &users_models.User{
		ID:                   userID,
		Email:                email,
		FullName:             "Test " + strings.ToLower(string(role)) + " " + userID.String()[:4],
		Department:           "Engineering",
		Position:             "Developer",
		HashedPassword:       &hashedPassword,
		PasswordCreationTime: time.Now().UTC(),
		CreatedAt:            time.Now().UTC(),
		Role:                 role,
	}

	userRepository := &users_repositories.UserRepository{}
	if err := userRepository.CreateUser(user); err != nil {
		panic(err)
	}

	return user
}

// CreateTestUserWithPassword stores a user that can sign in with password
func CreateTestUserWithPassword(role users_enums.UserRole, password string) *users_models.User {
	user := CreateTestUserModel(role)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}

	userRepository := &users_repositories.UserRepository{}
	if err := userRepository.UpdateUserPassword(user.ID, string(hashedPassword)); err != nil {
		panic(err)
	}

	return GetTestUser(user.ID)
}

func GetTestUser(userID uuid.UUID) *users_models.User {
	userRepository := &users_repositories.UserRepository{}

	user, err := userRepository.GetUserByID(userID)
	if err != nil {
		panic(err)
	}

	return user
}

func ReacreateInitAdminAndGetAccess() *users_dto.SignInResponseDTO {
	RecreateInitialAdmin()

	userRepository := &users_repositories.UserRepository{}
	user, err := userRepository.GetUserByEmail(users_repositories.RootAdminEmail)
	if err != nil {
		panic(err)
	}

	response, err := users_services.GetUserService().GenerateAccessToken(user)
	if err != nil {
		panic(err)
	}

	return response
}

func RecreateInitialAdmin() {
	userRepository := &users_repositories.UserRepository{}
	err := userRepository.RenameUserEmailForTests(
		users_repositories.RootAdminEmail,
		"admin-"+uuid.New().String(),
	)
	if err != nil {
		panic(err)
	}

	if err := users_services.GetUserService().CreateInitialAdmin(); err != nil {
		panic(err)
	}
}
