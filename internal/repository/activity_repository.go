package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"uni-assistant/internal/model"
)

// ActivityRepository handles the append-only activities table.
type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Append(ctx context.Context, activity model.Activity) error {
	activity.ID = 0
	if err := r.db.WithContext(ctx).Create(&activity).Error; err != nil {
		return fmt.Errorf("create activity: %w", err)
	}
	return nil
}

func (r *ActivityRepository) ListAll(ctx context.Context) ([]model.Activity, error) {
	var activities []model.Activity
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}
