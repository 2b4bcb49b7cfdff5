package content

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"uni-assistant/internal/logging"
)

// Holder owns the current Store and swaps it wholesale on reload.
// Readers take one snapshot per event and never see a partial update.
type Holder struct {
	path    string
	current atomic.Pointer[Store]
	logger  *zap.Logger
}

// NewHolder loads the document at path. The error wraps ErrConfig.
func NewHolder(path string, logger *zap.Logger) (*Holder, error) {
	h := &Holder{path: path, logger: logging.OrNop(logger)}
	if _, err := h.Reload(); err != nil {
		return nil, err
	}
	return h, nil
}

// NewStaticHolder wraps an already parsed store; Reload is a no-op for it.
func NewStaticHolder(s *Store) *Holder {
	h := &Holder{logger: zap.NewNop()}
	h.current.Store(s)
	return h
}

// Store returns the current snapshot.
func (h *Holder) Store() *Store {
	return h.current.Load()
}

// Reload re-reads the document. On failure the previous snapshot stays active.
func (h *Holder) Reload() (*Store, error) {
	if h.path == "" {
		return h.current.Load(), nil
	}
	s, err := Load(h.path)
	if err != nil {
		h.logger.Warn("content reload failed", zap.String("path", h.path), zap.Error(err))
		return nil, fmt.Errorf("reload content: %w", err)
	}
	if len(s.unknownDays) > 0 {
		h.logger.Warn("schedule has unknown day names", zap.Strings("days", s.unknownDays))
	}
	h.current.Store(s)
	h.logger.Info("content loaded",
		zap.String("path", h.path),
		zap.Int("courses", len(s.courses)),
		zap.Int("books", len(s.books)),
	)
	return s, nil
}
