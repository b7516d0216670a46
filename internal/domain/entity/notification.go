package entity

import "time"

// NotificationLevel tells a client how to present a notice.
type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
)

// Notification is a transient, user-facing status message. It is never persisted.
type Notification struct {
	Level     NotificationLevel `json:"level"`
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	CreatedAt time.Time         `json:"createdAt"`
}
