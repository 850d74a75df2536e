package entity

import (
	"time"

	"gorm.io/gorm"
)

type Event struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt
	Title          string `gorm:"not null"`
	Description    string
	OrganizerEmail string `gorm:"not null"`
	// Capacity limits the waiting list size; nil means unlimited.
	Capacity          *int
	LotterySampleSize int
	GeoRequired       bool
}

// HasCapacityFor reports whether one more entrant fits on the waiting
// list given the current waiting count.
func (e *Event) HasCapacityFor(waiting int64) bool {
	return e.Capacity == nil || waiting < int64(*e.Capacity)
}
