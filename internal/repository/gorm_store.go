package repository

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"uni-assistant/internal/model"
)

// GormStore implements Store on top of the SQLite repositories.
type GormStore struct {
	db         *gorm.DB
	users      *UserRepository
	activities *ActivityRepository

	// SQLite has a single writer; the lookup-then-insert in EnsureUser
	// must not interleave.
	mu sync.Mutex
}

// NewGormStore opens dsn and migrates the schema.
func NewGormStore(dsn string, logger *zap.Logger) (*GormStore, error) {
	db, err := NewDB(dsn, logger)
	if err != nil {
		return nil, err
	}
	return &GormStore{
		db:         db,
		users:      NewUserRepository(db),
		activities: NewActivityRepository(db),
	}, nil
}

func (s *GormStore) EnsureUser(ctx context.Context, user model.User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users.CreateIfMissing(ctx, user)
}

func (s *GormStore) AppendActivity(ctx context.Context, activity model.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activities.Append(ctx, activity)
}

func (s *GormStore) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.ListAll(ctx)
}

func (s *GormStore) ListActivity(ctx context.Context) ([]model.Activity, error) {
	return s.activities.ListAll(ctx)
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
