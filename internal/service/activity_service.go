package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"uni-assistant/internal/logging"
	"uni-assistant/internal/metrics"
	"uni-assistant/internal/model"
	"uni-assistant/internal/repository"
)

// Notifier delivers a plain text message to a chat.
type Notifier interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

// ActivityService records who talked to the bot and what they sent, and
// mirrors every event to the administrator.
type ActivityService struct {
	store    repository.Store
	notifier Notifier
	adminID  int64
	location *time.Location
	metrics  *metrics.Metrics
	logger   *zap.Logger
	now      func() time.Time

	// Serializes the user check and both appends so that concurrent callers
	// keep the one-record-per-user and insertion-order guarantees.
	mu sync.Mutex
}

// ActivityOptions configures an ActivityService.
type ActivityOptions struct {
	AdminID  int64
	Location *time.Location
	Metrics  *metrics.Metrics
	Logger   *zap.Logger
	Now      func() time.Time
}

func NewActivityService(store repository.Store, notifier Notifier, opts ActivityOptions) *ActivityService {
	s := &ActivityService{
		store:    store,
		notifier: notifier,
		adminID:  opts.AdminID,
		location: opts.Location,
		metrics:  opts.Metrics,
		logger:   logging.OrNop(opts.Logger),
		now:      opts.Now,
	}
	if s.location == nil {
		s.location = time.Local
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Record stores user if unseen, appends the activity and then notifies the
// administrator. The notification is best effort: its failure is counted
// and otherwise ignored.
func (s *ActivityService) Record(ctx context.Context, user model.User, text string) error {
	if err := s.persist(ctx, user, text); err != nil {
		s.metrics.StorageError()
		return err
	}
	s.notifyAdmin(ctx, user, text)
	return nil
}

func (s *ActivityService) persist(ctx context.Context, user model.User, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	created, err := s.store.EnsureUser(ctx, user)
	if err != nil {
		return fmt.Errorf("save user %d: %w", user.TelegramID, err)
	}
	if created {
		s.logger.Info("new user", zap.Int64("user_id", user.TelegramID), zap.String("username", user.Username))
	}

	err = s.store.AppendActivity(ctx, model.Activity{
		Timestamp:  s.now().In(s.location),
		TelegramID: user.TelegramID,
		Username:   user.Username,
		FirstName:  user.FirstName,
		Text:       text,
	})
	if err != nil {
		return fmt.Errorf("log activity for %d: %w", user.TelegramID, err)
	}
	return nil
}

func (s *ActivityService) notifyAdmin(ctx context.Context, user model.User, text string) {
	if s.notifier == nil || s.adminID == 0 {
		return
	}
	if err := s.notifier.SendText(ctx, s.adminID, FormatAdminNotice(user, text)); err != nil {
		s.metrics.NotifyFailure()
	}
}

// ListUsers returns every known user, first seen first.
func (s *ActivityService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// FormatAdminNotice renders the message mirrored to the administrator.
func FormatAdminNotice(user model.User, text string) string {
	return fmt.Sprintf("👤 %s (@%s)\n🆔 ID: %d\n💬 Message: %s", user.FirstName, user.Handle(), user.TelegramID, text)
}
