package users_services

import (
	user_repositories "pmtrack/internal/features/users/repositories"
	"pmtrack/internal/util/logger"
)

var secretKeyRepository = &user_repositories.SecretKeyRepository{}
var userRepository = &user_repositories.UserRepository{}

var userService = &UserService{
	userRepository:      userRepository,
	secretKeyRepository: secretKeyRepository,
}
var managementService = &UserManagementService{
	userRepository: userRepository,
	logger:         logger.GetLogger(),
}

func GetUserService() *UserService {
	return userService
}

func GetManagementService() *UserManagementService {
	return managementService
}
