package postgres

import (
	"context"

	"github.com/mshevelin/event-lottery/internal/domain/entity"
	"gorm.io/gorm"
)

type NotificationLogStorage struct {
	db *gorm.DB
}

func NewNotificationLogStorage(db *gorm.DB) *NotificationLogStorage {
	return &NotificationLogStorage{
		db: db,
	}
}

func (s *NotificationLogStorage) Create(ctx context.Context, log *entity.NotificationLog) error {
	return s.db.WithContext(ctx).Create(log).Error
}

// GetByEventID returns the dispatch audit trail for one event, oldest first.
func (s *NotificationLogStorage) GetByEventID(ctx context.Context, eventID string) ([]entity.NotificationLog, error) {
	var logs []entity.NotificationLog
	err := s.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at").
		Find(&logs).Error
	return logs, err
}
