package entity

import "time"

// WaitingLocation is the verified join location side-record written when
// an event requires one. It is removed when the entrant leaves the
// waiting list.
type WaitingLocation struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	EventID   string `gorm:"not null;type:uuid;uniqueIndex:idx_loc_event_email"`
	Email     string `gorm:"not null;uniqueIndex:idx_loc_event_email"`
	Lat       float64
	Lng       float64
	CreatedAt time.Time
}
