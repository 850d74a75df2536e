package dto

import (
	"time"

	"github.com/mshevelin/event-lottery/internal/domain/entity"
)

// Notification is the inbox view of one record, with the client-side
// affordances its type allows.
type Notification struct {
	ID          string
	Type        entity.NotificationType
	Title       string
	Message     string
	EventID     string
	CreatedAt   time.Time
	Unread      bool
	Dismissible bool
	Actionable  bool
}

func NewNotificationFromEntity(n entity.Notification) Notification {
	return Notification{
		ID:          n.ID,
		Type:        n.Type,
		Title:       n.Title,
		Message:     n.Message,
		EventID:     n.EventID,
		CreatedAt:   n.CreatedAt,
		Unread:      n.Status == entity.NotificationStatusPending,
		Dismissible: n.Type.Dismissible(),
		Actionable:  n.Type.Actionable(),
	}
}
