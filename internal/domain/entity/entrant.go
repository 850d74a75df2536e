package entity

import "time"

type EntrantStatus string

const (
	StatusNotJoined EntrantStatus = "not_joined"
	StatusWaiting   EntrantStatus = "waiting"
	StatusSelected  EntrantStatus = "selected"
	StatusCancelled EntrantStatus = "cancelled"
	StatusFinal     EntrantStatus = "final"
)

// Entrant is one user's standing within one event. A single row per
// (event, email) pair with one status column means an entrant can never
// sit in two buckets at once. Rows are ordered by id, which preserves
// join order for replacement promotion.
type Entrant struct {
	ID       uint          `gorm:"primaryKey"`
	EventID  string        `gorm:"not null;type:uuid;uniqueIndex:idx_event_email"`
	Email    string        `gorm:"not null;uniqueIndex:idx_event_email"`
	Status   EntrantStatus `gorm:"not null;default:waiting"`
	JoinedAt time.Time     `gorm:"not null"`

	Event Event `gorm:"foreignKey:EventID"`
}
