package project

// Status is the lifecycle state of a project.
type Status string

const (
	StatusActive     Status = "active"
	StatusInProgress Status = "in_progress"
	StatusPlanning   Status = "planning"
	StatusCompleted  Status = "completed"
	StatusOnHold     Status = "on_hold"
	StatusCancelled  Status = "cancelled"
)

// Statuses returns every status in display order.
func Statuses() []Status {
	return []Status{StatusActive, StatusInProgress, StatusPlanning, StatusCompleted, StatusOnHold, StatusCancelled}
}

// Project is a piece of work the agency runs for a client.
type Project struct {
	ID             int64   `json:"id" yaml:"id"`
	Name           string  `json:"name" yaml:"name"`
	ClientID       int64   `json:"client_id" yaml:"client_id"`
	Objectives     string  `json:"objectives,omitempty" yaml:"objectives"`
	Budget         string  `json:"budget,omitempty" yaml:"budget"`
	StartDate      string  `json:"start_date,omitempty" yaml:"start_date"`
	DueDate        string  `json:"due_date,omitempty" yaml:"due_date"` // free text, e.g. "30 Giu 2025" or "Continuo"
	Status         Status  `json:"status" yaml:"status"`
	OperatorIDs    []int64 `json:"operator_ids" yaml:"operator_ids"`
	CompletedTasks int     `json:"completed_tasks,omitempty" yaml:"completed_tasks"`
	TotalTasks     int     `json:"total_tasks,omitempty" yaml:"total_tasks"`
}

// HasOperator reports whether operatorID is assigned to the project.
func (p Project) HasOperator(operatorID int64) bool {
	for _, id := range p.OperatorIDs {
		if id == operatorID {
			return true
		}
	}
	return false
}

// ListFilter narrows List results. Zero fields are ignored.
type ListFilter struct {
	ClientID   int64
	OperatorID int64
	Status     Status
	Search     string
}
