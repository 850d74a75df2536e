package entity

import "time"

type NotificationType string

const (
	NotificationTypeWinnerSelected    NotificationType = "winner_selected"
	NotificationTypeNotSelected       NotificationType = "not_selected"
	NotificationTypeReplacementOffer  NotificationType = "replacement_offer"
	NotificationTypeEntrantDeclined   NotificationType = "entrant_declined"
	NotificationTypeWaitingListInfo   NotificationType = "waiting_list_info"
	NotificationTypeSelectedListInfo  NotificationType = "selected_list_info"
	NotificationTypeCancelledListInfo NotificationType = "cancelled_list_info"
	NotificationTypeCustomMessage     NotificationType = "custom_message"
)

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusRead    NotificationStatus = "read"
)

// Dismissible reports whether the recipient may delete a record of this
// type from their inbox. not_selected notices are read-only and age out
// with the rest of the feed.
func (t NotificationType) Dismissible() bool {
	return t != NotificationTypeNotSelected
}

// Actionable reports whether the record carries accept/decline actions.
func (t NotificationType) Actionable() bool {
	return t == NotificationTypeWinnerSelected || t == NotificationTypeReplacementOffer
}

// Notification is one record in a recipient's inbox. The dispatcher only
// ever appends; recipients dismiss their own records.
type Notification struct {
	ID        string           `gorm:"primaryKey;type:uuid"`
	Type      NotificationType `gorm:"not null"`
	Title     string           `gorm:"not null"`
	Message   string
	EventID   string             `gorm:"not null;type:uuid;index"`
	Recipient string             `gorm:"not null;index"`
	Status    NotificationStatus `gorm:"not null;default:pending"`
	CreatedAt time.Time          `gorm:"not null"`
}

// NotificationLog is the append-only audit trail of every dispatch. It is
// independent of the mutable inbox and survives recipient dismissals.
type NotificationLog struct {
	ID             string           `gorm:"primaryKey;type:uuid"`
	NotificationID string           `gorm:"not null;type:uuid"`
	Type           NotificationType `gorm:"not null"`
	EventID        string           `gorm:"not null;type:uuid;index"`
	Recipient      string           `gorm:"not null"`
	Message        string
	CreatedAt      time.Time `gorm:"not null"`
}
