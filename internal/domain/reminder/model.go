package reminder

import "time"

// Category classifies what a reminder points at.
type Category string

const (
	CategoryEvent   Category = "event"
	CategoryTask    Category = "task"
	CategoryProject Category = "project"
	CategoryOther   Category = "other"
)

// Reminder is an in-memory notice due at a point in time. Reminders are
// never persisted.
type Reminder struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Message  string    `json:"message"`
	Due      time.Time `json:"due"`
	Read     bool      `json:"read"`
	Category Category  `json:"category"`
	EntityID *int64    `json:"entity_id,omitempty"`
}
