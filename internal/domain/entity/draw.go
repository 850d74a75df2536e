package entity

import (
	"time"

	"github.com/lib/pq"
)

// Draw is the audit record of one lottery run against an event's waiting
// list. Rows are append-only; re-rolls add new rows.
type Draw struct {
	ID         string         `gorm:"primaryKey;type:uuid"`
	EventID    string         `gorm:"not null;type:uuid;index"`
	SampleSize int            `gorm:"not null"`
	Winners    pq.StringArray `gorm:"type:text[]"`
	CreatedAt  time.Time      `gorm:"not null"`

	Event Event `gorm:"foreignKey:EventID"`
}
