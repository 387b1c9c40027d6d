package dashboard

import "github.com/rpggio/smmdesk/internal/domain/calendar"

// UnspecifiedStatus labels projects stored without a status.
const UnspecifiedStatus = "unspecified"

// ClientProjects counts projects owned by one client.
type ClientProjects struct {
	ClientID int64  `json:"client_id"`
	Name     string `json:"name"`
	Projects int    `json:"projects"`
}

// StatusCount counts projects in one status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Counts are the headline numbers.
type Counts struct {
	Clients             int `json:"clients"`
	ActiveClients       int `json:"active_clients"`
	Projects            int `json:"projects"`
	Operators           int `json:"operators"`
	Collaborators       int `json:"collaborators"`
	ActiveCollaborators int `json:"active_collaborators"`
}

// Summary is everything the dashboard shows.
type Summary struct {
	Counts            Counts           `json:"counts"`
	ProjectsPerClient []ClientProjects `json:"projects_per_client"`
	ProjectsPerStatus []StatusCount    `json:"projects_per_status"`
	Upcoming          []calendar.Event `json:"upcoming"`
}
