package collaborator

// Collaborator is an external freelancer, tracked apart from operators.
type Collaborator struct {
	ID             string `json:"id" yaml:"id"`
	FirstName      string `json:"first_name" yaml:"first_name"`
	LastName       string `json:"last_name" yaml:"last_name"`
	Email          string `json:"email" yaml:"email"`
	Specialization string `json:"specialization" yaml:"specialization"`
	Phone          string `json:"phone,omitempty" yaml:"phone"`
	Notes          string `json:"notes,omitempty" yaml:"notes"`
	Active         bool   `json:"active" yaml:"active"`
}
