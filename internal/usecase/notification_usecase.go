package usecase

import (
	"storefront/internal/domain/entity"
)

// NotificationUsecase keeps the transient per-client feed of user-facing notices.
type NotificationUsecase interface {
	Notify(client entity.ClientID, notification entity.Notification)
	Drain(client entity.ClientID) []entity.Notification
}
