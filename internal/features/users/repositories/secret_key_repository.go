package users_repositories

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	users_models "pmtrack/internal/features/users/models"
	"pmtrack/internal/storage"

	"gorm.io/gorm"
)

type SecretKeyRepository struct {
	mu     sync.Mutex
	secret string
}

// GetSecretKey returns the JWT signing secret, generating and storing
// one on first use.
func (r *SecretKeyRepository) GetSecretKey() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.secret != "" {
		return r.secret, nil
	}

	var secretKey users_models.SecretKey
	err := storage.GetDb().First(&secretKey).Error
	if err == nil && secretKey.Secret != "" {
		r.secret = secretKey.Secret
		return r.secret, nil
	}

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("failed to read secret key: %w", err)
	}

	buffer := make([]byte, 32)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("failed to generate secret key: %w", err)
	}

	secretKey = users_models.SecretKey{Secret: hex.EncodeToString(buffer)}
	if err := storage.GetDb().Create(&secretKey).Error; err != nil {
		return "", fmt.Errorf("failed to save secret key: %w", err)
	}

	r.secret = secretKey.Secret
	return r.secret, nil
}
