package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"uni-assistant/internal/model"
)

// UserRepository handles the users table.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateIfMissing inserts user unless its TelegramID is already stored.
// Existing records are left untouched.
func (r *UserRepository) CreateIfMissing(ctx context.Context, user model.User) (bool, error) {
	var existing model.User
	db := r.db.WithContext(ctx)
	err := db.Where("telegram_id = ?", user.TelegramID).First(&existing).Error
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		user.ID = 0
		if err := db.Create(&user).Error; err != nil {
			return false, fmt.Errorf("create user: %w", err)
		}
		return true, nil
	default:
		return false, fmt.Errorf("find user: %w", err)
	}
}

func (r *UserRepository) ListAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
