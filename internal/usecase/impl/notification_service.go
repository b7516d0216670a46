package impl

import (
	"sync"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"
)

// maxPendingNotifications bounds each client's feed; the oldest notices are dropped first.
const maxPendingNotifications = 50

type notificationService struct {
	mu    sync.Mutex
	feeds map[entity.ClientID][]entity.Notification
}

// NewNotificationService creates the in-memory notification feed.
func NewNotificationService() usecase.NotificationUsecase {
	return &notificationService{feeds: make(map[entity.ClientID][]entity.Notification)}
}

// Notify appends a notice to the client's feed.
func (s *notificationService) Notify(client entity.ClientID, notification entity.Notification) {
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	feed := append(s.feeds[client], notification)
	if len(feed) > maxPendingNotifications {
		feed = feed[len(feed)-maxPendingNotifications:]
	}
	s.feeds[client] = feed
}

// Drain returns and forgets every pending notice of the client.
func (s *notificationService) Drain(client entity.ClientID) []entity.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	feed := s.feeds[client]
	delete(s.feeds, client)
	if feed == nil {
		return []entity.Notification{}
	}

	return feed
}

// notifier is the small helper services use to report outcomes to the feed.
type notifier struct {
	feed usecase.NotificationUsecase
}

func (n notifier) success(client entity.ClientID, code, message string) {
	if n.feed == nil {
		return
	}

	n.feed.Notify(client, entity.Notification{
		Level:   entity.NotificationSuccess,
		Code:    code,
		Message: message,
	})
}

func (n notifier) failure(client entity.ClientID, err error) {
	if n.feed == nil || err == nil {
		return
	}

	code := domainerrors.ErrInternalError.ErrorCode()
	message := domainerrors.ErrInternalError.Message()
	if appErr, ok := domainerrors.AsAppError(err); ok {
		code = appErr.ErrorCode()
		message = appErr.Message()
	}

	n.feed.Notify(client, entity.Notification{
		Level:   entity.NotificationError,
		Code:    code,
		Message: message,
	})
}
