package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mshevelin/event-lottery/internal/domain/common/errorz"
	"github.com/mshevelin/event-lottery/internal/domain/dto"
	"github.com/mshevelin/event-lottery/internal/domain/entity"
	"github.com/mshevelin/event-lottery/pkg/logger/types"
)

type notificationStorage interface {
	Create(ctx context.Context, notification *entity.Notification) error
	Get(ctx context.Context, id string) (*entity.Notification, error)
	Delete(ctx context.Context, id string) error
	ListByRecipient(ctx context.Context, recipient string) ([]entity.Notification, error)
	CountPending(ctx context.Context, recipient string) (int64, error)
	MarkRead(ctx context.Context, id string) error
}

type notificationLogStorage interface {
	Create(ctx context.Context, log *entity.NotificationLog) error
}

type feedPublisher interface {
	Publish(ctx context.Context, recipient string, notificationID string) error
}

type feedSubscriber interface {
	Subscribe(ctx context.Context, recipient string) (<-chan string, error)
}

type seenStorage interface {
	MarkSeen(ctx context.Context, notificationID string) (bool, error)
}

// AlertFunc renders one locally-surfaced alert for a newly-arrived
// notification record.
type AlertFunc func(n dto.Notification)

// NotifyService turns roster transitions into addressed inbox records
// and renders the inbound feed for a recipient. Dispatches are
// independent writes: it is safe to fan out concurrently.
type NotifyService struct {
	logger *types.Logger

	notificationStorage notificationStorage
	logStorage          notificationLogStorage
	feed                feedPublisher
	subscriber          feedSubscriber
	seen                seenStorage
}

func NewNotifyService(
	logger *types.Logger,
	notificationStorage notificationStorage,
	logStorage notificationLogStorage,
	feed feedPublisher,
	subscriber feedSubscriber,
	seen seenStorage,
) *NotifyService {
	return &NotifyService{
		logger: logger,

		notificationStorage: notificationStorage,
		logStorage:          logStorage,
		feed:                feed,
		subscriber:          subscriber,
		seen:                seen,
	}
}

// Dispatch writes one notification record to the recipient's inbox, an
// audit row to the dispatch log, and announces the record id on the
// recipient's live feed. The audit and feed writes are best-effort.
func (s *NotifyService) Dispatch(ctx context.Context, t entity.NotificationType, recipient string, eventID string, title string, message string) (*entity.Notification, error) {
	notification := &entity.Notification{
		ID:        uuid.New().String(),
		Type:      t,
		Title:     title,
		Message:   message,
		EventID:   eventID,
		Recipient: recipient,
		Status:    entity.NotificationStatusPending,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.notificationStorage.Create(ctx, notification); err != nil {
		return nil, err
	}

	errLog := s.logStorage.Create(ctx, &entity.NotificationLog{
		ID:             uuid.New().String(),
		NotificationID: notification.ID,
		Type:           t,
		EventID:        eventID,
		Recipient:      recipient,
		Message:        message,
		CreatedAt:      notification.CreatedAt,
	})
	if errLog != nil {
		s.logger.Errorf("failed to write dispatch log for notification %s: %v", notification.ID, errLog)
	}

	if err := s.feed.Publish(ctx, recipient, notification.ID); err != nil {
		s.logger.Errorf("failed to announce notification %s to %s: %v", notification.ID, recipient, err)
	}

	return notification, nil
}

// Dismiss removes a record from the recipient's inbox. Dismissing a
// record that is already gone is a no-op; read-only types cannot be
// dismissed; recipients may only dismiss their own records.
func (s *NotifyService) Dismiss(ctx context.Context, notificationID string, caller string) error {
	notification, err := s.notificationStorage.Get(ctx, notificationID)
	if err != nil {
		return err
	}
	if notification == nil {
		return nil
	}
	if notification.Recipient != caller {
		return errorz.ErrForbidden
	}
	if !notification.Type.Dismissible() {
		return errorz.ErrNotDismissible
	}

	return s.notificationStorage.Delete(ctx, notificationID)
}

// Inbox returns the recipient's notifications, newest first.
func (s *NotifyService) Inbox(ctx context.Context, recipient string) ([]dto.Notification, error) {
	records, err := s.notificationStorage.ListByRecipient(ctx, recipient)
	if err != nil {
		return nil, err
	}

	notifications := make([]dto.Notification, 0, len(records))
	for _, r := range records {
		notifications = append(notifications, dto.NewNotificationFromEntity(r))
	}
	return notifications, nil
}

// UnreadCount returns the number of pending records in the inbox.
func (s *NotifyService) UnreadCount(ctx context.Context, recipient string) (int64, error) {
	return s.notificationStorage.CountPending(ctx, recipient)
}

// MarkRead flags one record as read without removing it.
func (s *NotifyService) MarkRead(ctx context.Context, notificationID string) error {
	return s.notificationStorage.MarkRead(ctx, notificationID)
}

// Listen subscribes to the recipient's live feed and renders an alert
// exactly once per record id, deduplicated through the seen store. It
// blocks until ctx is cancelled.
func (s *NotifyService) Listen(ctx context.Context, recipient string, alert AlertFunc) error {
	ids, err := s.subscriber.Subscribe(ctx, recipient)
	if err != nil {
		return err
	}

	for id := range ids {
		first, errSeen := s.seen.MarkSeen(ctx, id)
		if errSeen != nil {
			s.logger.Errorf("failed to dedup notification %s: %v", id, errSeen)
			continue
		}
		if !first {
			continue
		}

		notification, errGet := s.notificationStorage.Get(ctx, id)
		if errGet != nil {
			s.logger.Errorf("failed to load notification %s: %v", id, errGet)
			continue
		}
		if notification == nil {
			continue
		}

		alert(dto.NewNotificationFromEntity(*notification))
	}

	return ctx.Err()
}
