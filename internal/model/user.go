package model

import "time"

// User stores Telegram user metadata. One record per TelegramID, never updated.
type User struct {
	ID         uint  `gorm:"primaryKey"`
	TelegramID int64 `gorm:"uniqueIndex"`
	Username   string
	FirstName  string
	CreatedAt  time.Time
}

// Handle returns the @-less username or a placeholder when the user has none.
func (u User) Handle() string {
	if u.Username == "" {
		return "no username"
	}
	return u.Username
}
