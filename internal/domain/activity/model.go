package activity

import "time"

// EntityType names the store an activity entry refers to
type EntityType string

const (
	EntityClient       EntityType = "client"
	EntityProject      EntityType = "project"
	EntityOperator     EntityType = "operator"
	EntityCollaborator EntityType = "collaborator"
	EntityEvent        EntityType = "event"
	EntityIdea         EntityType = "idea"
	EntityFeed         EntityType = "feed"
	EntityMailAccount  EntityType = "mail_account"
)

// Action is the kind of mutation that was applied
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// ActivityEntry represents a mutation in the activity log
type ActivityEntry struct {
	ID         int64      `json:"id"`
	EntityType EntityType `json:"entity_type"`
	EntityID   string     `json:"entity_id"`
	Action     Action     `json:"action"`
	Summary    string     `json:"summary"`
	Details    string     `json:"details,omitempty"` // JSON string
	CreatedAt  time.Time  `json:"created_at"`
}

// ListActivityOptions provides filtering options for listing activity.
type ListActivityOptions struct {
	EntityType EntityType
	EntityID   string
	Action     Action
	Since      time.Time
	Limit      int
	Offset     int
}
