package users_models

import "pmtrack/internal/storage"

type SecretKey struct {
	Secret string `gorm:"column:secret"`
}

func (SecretKey) TableName() string {
	return "secret_keys"
}

func init() {
	storage.RegisterModels(&User{}, &SecretKey{})
}
