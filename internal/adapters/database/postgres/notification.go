package postgres

import (
	"context"
	"errors"

	"github.com/mshevelin/event-lottery/internal/domain/entity"
	"gorm.io/gorm"
)

type NotificationStorage struct {
	db *gorm.DB
}

func NewNotificationStorage(db *gorm.DB) *NotificationStorage {
	return &NotificationStorage{
		db: db,
	}
}

func (s *NotificationStorage) Create(ctx context.Context, notification *entity.Notification) error {
	return s.db.WithContext(ctx).Create(notification).Error
}

func (s *NotificationStorage) Get(ctx context.Context, id string) (*entity.Notification, error) {
	var notification entity.Notification
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&notification).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &notification, err
}

// Delete removes a notification from the recipient's inbox. Deleting a
// record that is already gone is a no-op.
func (s *NotificationStorage) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Notification{}).Error
}

// DeleteConsumed removes the actionable record an accept/decline acted
// upon, keyed by event, recipient and type.
func (s *NotificationStorage) DeleteConsumed(ctx context.Context, eventID string, recipient string, types []entity.NotificationType) error {
	return s.db.WithContext(ctx).
		Where("event_id = ? AND recipient = ? AND type IN ?", eventID, recipient, types).
		Delete(&entity.Notification{}).Error
}

func (s *NotificationStorage) ListByRecipient(ctx context.Context, recipient string) ([]entity.Notification, error) {
	var notifications []entity.Notification
	err := s.db.WithContext(ctx).
		Where("recipient = ?", recipient).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (s *NotificationStorage) CountPending(ctx context.Context, recipient string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Notification{}).
		Where("recipient = ? AND status = ?", recipient, entity.NotificationStatusPending).
		Count(&count).Error
	return count, err
}

func (s *NotificationStorage) MarkRead(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Model(&entity.Notification{}).
		Where("id = ?", id).
		Update("status", entity.NotificationStatusRead).Error
}
