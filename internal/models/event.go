package models

import (
	"time"
)

// Date and time are stored as fixed-width strings so that a plain
// ORDER BY date, time yields chronological order. Handlers validate
// input against these layouts before anything reaches the database.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type Event struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title       string    `gorm:"not null;type:varchar(255)" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Location    string    `gorm:"type:varchar(255)" json:"location"`
	Date        string    `gorm:"not null;type:varchar(10);index:idx_events_owner_when,priority:2" json:"date"` // YYYY-MM-DD
	Time        string    `gorm:"not null;type:varchar(5);index:idx_events_owner_when,priority:3" json:"time"`  // HH:MM
	UserID      string    `gorm:"not null;type:varchar(36);index:idx_events_owner_when,priority:1" json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}

// StartsAt combines the stored date and time into a single timestamp,
// interpreted in the given location. Used by the iCalendar export.
func (e *Event) StartsAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, e.Date+" "+e.Time, loc)
}
