package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"uni-assistant/internal/logging"
	"uni-assistant/internal/model"
)

const (
	userFields     = 3 // id, username, first name
	activityFields = 5 // timestamp, id, username, first name, text
)

// Layouts accepted when reading activity timestamps. The second one is the
// format written by earlier deployments of the bot.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
}

// CSVStore keeps users and activity in two append-only CSV files.
type CSVStore struct {
	usersPath    string
	activityPath string
	logger       *zap.Logger

	mu    sync.Mutex
	known map[int64]struct{}
}

// NewCSVStore opens (or prepares) the two files and indexes existing user ids.
func NewCSVStore(usersPath, activityPath string, logger *zap.Logger) (*CSVStore, error) {
	for _, p := range []string{usersPath, activityPath} {
		if err := ensureDir(p); err != nil {
			return nil, err
		}
	}

	s := &CSVStore{
		usersPath:    usersPath,
		activityPath: activityPath,
		logger:       logging.OrNop(logger),
		known:        make(map[int64]struct{}),
	}

	users, err := s.readUsers()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		s.known[u.TelegramID] = struct{}{}
	}
	return s, nil
}

func (s *CSVStore) EnsureUser(_ context.Context, user model.User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.known[user.TelegramID]; ok {
		return false, nil
	}
	row := []string{strconv.FormatInt(user.TelegramID, 10), user.Username, user.FirstName}
	if err := appendRow(s.usersPath, row); err != nil {
		return false, fmt.Errorf("append user: %w", err)
	}
	s.known[user.TelegramID] = struct{}{}
	return true, nil
}

func (s *CSVStore) AppendActivity(_ context.Context, a model.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := []string{
		a.Timestamp.Format(time.RFC3339Nano),
		strconv.FormatInt(a.TelegramID, 10),
		a.Username,
		a.FirstName,
		a.Text,
	}
	if err := appendRow(s.activityPath, row); err != nil {
		return fmt.Errorf("append activity: %w", err)
	}
	return nil
}

func (s *CSVStore) ListUsers(_ context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readUsers()
}

func (s *CSVStore) ListActivity(_ context.Context) ([]model.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Activity
	corrupt, err := readRows(s.activityPath, func(row []string) error {
		a, err := parseActivityRow(row)
		if err != nil {
			return err
		}
		out = append(out, a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if corrupt > 0 {
		s.logger.Warn("skipped corrupt activity rows", zap.String("path", s.activityPath), zap.Int("rows", corrupt))
	}
	return out, nil
}

func (s *CSVStore) Close() error { return nil }

// readUsers returns unique users in file order; callers hold mu or own s exclusively.
func (s *CSVStore) readUsers() ([]model.User, error) {
	seen := make(map[int64]struct{})
	var out []model.User
	corrupt, err := readRows(s.usersPath, func(row []string) error {
		u, err := parseUserRow(row)
		if err != nil {
			return err
		}
		if _, dup := seen[u.TelegramID]; dup {
			return nil
		}
		seen[u.TelegramID] = struct{}{}
		out = append(out, u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if corrupt > 0 {
		s.logger.Warn("skipped corrupt user rows", zap.String("path", s.usersPath), zap.Int("rows", corrupt))
	}
	return out, nil
}

func parseUserRow(row []string) (model.User, error) {
	if len(row) < userFields {
		return model.User{}, fmt.Errorf("%w: user row has %d fields, want %d", ErrDataCorruption, len(row), userFields)
	}
	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return model.User{}, fmt.Errorf("%w: user id %q", ErrDataCorruption, row[0])
	}
	return model.User{TelegramID: id, Username: row[1], FirstName: row[2]}, nil
}

func parseActivityRow(row []string) (model.Activity, error) {
	if len(row) < activityFields {
		return model.Activity{}, fmt.Errorf("%w: activity row has %d fields, want %d", ErrDataCorruption, len(row), activityFields)
	}
	ts, err := parseTimestamp(row[0])
	if err != nil {
		return model.Activity{}, err
	}
	id, err := strconv.ParseInt(row[1], 10, 64)
	if err != nil {
		return model.Activity{}, fmt.Errorf("%w: activity user id %q", ErrDataCorruption, row[1])
	}
	return model.Activity{
		Timestamp:  ts,
		TelegramID: id,
		Username:   row[2],
		FirstName:  row[3],
		Text:       row[4],
	}, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: timestamp %q", ErrDataCorruption, raw)
}

// readRows feeds every record of path to fn and counts the ones that are
// corrupt. A missing file is an empty store.
func readRows(path string, fn func([]string) error) (int, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	corrupt := 0
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return corrupt, nil
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			corrupt++
			continue
		}
		if err != nil {
			return corrupt, fmt.Errorf("read %s: %w", path, err)
		}
		if err := fn(row); err != nil {
			if errors.Is(err, ErrDataCorruption) {
				corrupt++
				continue
			}
			return corrupt, err
		}
	}
}

func appendRow(path string, row []string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(row); err != nil {
		f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %q: %w", dir, err)
	}
	return nil
}
