package postgres

import "github.com/mshevelin/event-lottery/internal/domain/entity"

// Migrations is a list of all gorm migrations for the database.
var Migrations = []interface{}{
	&entity.Event{},
	&entity.Entrant{},
	&entity.WaitingLocation{},
	&entity.Notification{},
	&entity.NotificationLog{},
	&entity.Draw{},
}
