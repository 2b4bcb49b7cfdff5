package model

import "time"

// Activity is one inbound message or button click. Append-only.
type Activity struct {
	ID         uint      `gorm:"primaryKey"`
	Timestamp  time.Time `gorm:"index"`
	TelegramID int64     `gorm:"index"`
	Username   string
	FirstName  string
	Text       string
}
