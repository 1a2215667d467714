package users_repositories

import (
	"errors"
	"fmt"
	"time"

	users_enums "pmtrack/internal/features/users/enums"
	users_models "pmtrack/internal/features/users/models"
	"pmtrack/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const RootAdminEmail = "admin"

type UserRepository struct {
	tx *gorm.DB
}

func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{tx: tx}
}

func (r *UserRepository) db() *gorm.DB {
	if r.tx != nil {
		return r.tx
	}

	return storage.GetDb()
}

func (r *UserRepository) CreateUser(user *users_models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	return r.db().Create(user).Error
}

// GetUserByEmail returns nil without error when no user matches
func (r *UserRepository) GetUserByEmail(email string) (*users_models.User, error) {
	var user users_models.User

	if err := r.db().Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	var user users_models.User

	if err := r.db().Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// GetActiveUserByID returns nil without error for missing or soft-deleted users
func (r *UserRepository) GetActiveUserByID(userID uuid.UUID) (*users_models.User, error) {
	var user users_models.User

	err := r.db().Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) UpdateUserPassword(userID uuid.UUID, hashedPassword string) error {
	return r.db().Model(&users_models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"hashed_password":        hashedPassword,
			"password_creation_time": time.Now().UTC(),
		}).Error
}

func (r *UserRepository) CreateInitialAdmin() error {
	admin, err := r.GetUserByEmail(RootAdminEmail)
	if err != nil {
		return fmt.Errorf("failed to get admin user: %w", err)
	}

	if admin != nil {
		return nil
	}

	admin = &users_models.User{
		ID:                   uuid.New(),
		Email:                RootAdminEmail,
		FullName:             "Administrator",
		HashedPassword:       nil,
		PasswordCreationTime: time.Now().UTC(),
		Role:                 users_enums.UserRoleAdmin,
		CreatedAt:            time.Now().UTC(),
	}

	return r.db().Create(admin).Error
}

func (r *UserRepository) GetUsers(
	limit, offset int,
	beforeCreatedAt *time.Time,
	includeDeleted bool,
) ([]*users_models.User, int64, error) {
	var users []*users_models.User
	var total int64

	filter := func(query *gorm.DB) *gorm.DB {
		if beforeCreatedAt != nil {
			query = query.Where("created_at < ?", *beforeCreatedAt)
		}
		if !includeDeleted {
			query = query.Where("is_deleted = ?", false)
		}
		return query
	}

	if err := filter(r.db().Model(&users_models.User{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := filter(r.db().Limit(limit).Offset(offset).Order("created_at DESC"))
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *UserRepository) GetUsersByIDs(userIDs []uuid.UUID) (map[uuid.UUID]*users_models.User, error) {
	result := make(map[uuid.UUID]*users_models.User, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	var users []*users_models.User
	if err := r.db().Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, err
	}

	for _, user := range users {
		result[user.ID] = user
	}

	return result, nil
}

func (r *UserRepository) CountActiveByRole(role users_enums.UserRole) (int64, error) {
	var count int64

	err := r.db().Model(&users_models.User{}).
		Where("role = ? AND is_deleted = ?", role, false).
		Count(&count).Error

	return count, err
}

func (r *UserRepository) UpdateUserRole(userID uuid.UUID, role users_enums.UserRole) error {
	return r.db().Model(&users_models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"role": role,
		}).Error
}

func (r *UserRepository) RenameUserEmailForTests(oldEmail, newEmail string) error {
	return r.db().Model(&users_models.User{}).
		Where("email = ?", oldEmail).
		Update("email", newEmail).Error
}
