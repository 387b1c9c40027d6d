package calendar

import (
	"slices"
	"time"
)

// EventType classifies a calendar event.
type EventType string

const (
	TypeMeeting     EventType = "meeting"
	TypeDeadline    EventType = "deadline"
	TypePublication EventType = "publication"
	TypeOther       EventType = "other"
)

// Event is a calendar entry, optionally linked to a project and operators.
type Event struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Start       time.Time  `json:"start"`
	End         *time.Time `json:"end,omitempty"`
	ProjectID   *int64     `json:"project_id,omitempty"`
	OperatorIDs []int64    `json:"operator_ids"`
	Type        EventType  `json:"type"`
	Completed   bool       `json:"completed"`
}

// LinkedTo reports whether the event belongs to projectID.
func (e Event) LinkedTo(projectID int64) bool {
	return e.ProjectID != nil && *e.ProjectID == projectID
}

// HasOperator reports whether operatorID takes part in the event.
func (e Event) HasOperator(operatorID int64) bool {
	return slices.Contains(e.OperatorIDs, operatorID)
}

// Day is one cell of a month grid.
type Day struct {
	Date    time.Time `json:"date"`
	InMonth bool      `json:"in_month"`
	Events  []Event   `json:"events"`
}

// Month is a month laid out in whole weeks.
type Month struct {
	Year      int          `json:"year"`
	Month     time.Month   `json:"month"`
	WeekStart time.Weekday `json:"week_start"`
	Days      []Day        `json:"days"`
}

// Weeks splits Days into rows of seven.
func (m Month) Weeks() [][]Day {
	weeks := make([][]Day, 0, len(m.Days)/7)
	for i := 0; i+7 <= len(m.Days); i += 7 {
		weeks = append(weeks, m.Days[i:i+7])
	}
	return weeks
}
