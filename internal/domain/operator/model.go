package operator

// Operator is an internal team member that can be assigned to projects and events.
type Operator struct {
	ID        int64  `json:"id" yaml:"id"`
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`
	Email     string `json:"email" yaml:"email"`
	Role      string `json:"role" yaml:"role"`
	Notes     string `json:"notes,omitempty" yaml:"notes"`
}

// FullName joins first and last name.
func (o Operator) FullName() string {
	return o.FirstName + " " + o.LastName
}

var roles = []string{
	"Project Manager SMM",
	"Copywriter",
	"Graphic Designer",
	"Social Media Specialist",
	"Ads Specialist",
	"Content Creator",
	"Video Editor",
	"Photographer",
}

// Roles returns the fixed list of operator roles.
func Roles() []string {
	out := make([]string, len(roles))
	copy(out, roles)
	return out
}

// IsRole reports whether role is one of Roles.
func IsRole(role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
