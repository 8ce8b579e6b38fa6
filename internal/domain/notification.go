package domain

import (
	"time"
	"unicode/utf8"
)

// NotificationCategory kind of in-app notification
type NotificationCategory string

const (
	NotificationCategorySystem      NotificationCategory = "SYSTEM"
	NotificationCategoryReservation NotificationCategory = "RESERVATION"
	NotificationCategoryVisit       NotificationCategory = "VISIT"
)

// Notification message addressed to a user
type Notification struct {
	ID        int64
	UserID    int64
	Title     string
	Message   string
	Category  NotificationCategory
	Read      bool
	CreatedAt time.Time
}

// TruncateTitle cuts title to MaxNotificationTitleLength runes
func TruncateTitle(title string) string {
	if utf8.RuneCountInString(title) <= MaxNotificationTitleLength {
		return title
	}
	runes := []rune(title)
	return string(runes[:MaxNotificationTitleLength])
}
