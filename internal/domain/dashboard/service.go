package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/rpggio/smmdesk/internal/domain/client"
	"github.com/rpggio/smmdesk/internal/domain/project"
)

// UpcomingLimit is how many upcoming events the dashboard shows.
const UpcomingLimit = 5

// Service aggregates the other stores for the dashboard.
type Service struct {
	clients       ClientLister
	projects      ProjectLister
	operators     OperatorLister
	collaborators CollaboratorLister
	events        EventSource
}

// NewService creates a dashboard service.
func NewService(clients ClientLister, projects ProjectLister, operators OperatorLister, collaborators CollaboratorLister, events EventSource) *Service {
	return &Service{
		clients:       clients,
		projects:      projects,
		operators:     operators,
		collaborators: collaborators,
		events:        events,
	}
}

// Summary computes the dashboard as of now. Upcoming covers the month
// after now.
func (s *Service) Summary(ctx context.Context, now time.Time) (*Summary, error) {
	clients, err := s.clients.List(ctx, client.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	projects, err := s.projects.List(ctx, project.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	operators, err := s.operators.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("listing operators: %w", err)
	}
	collaborators, err := s.collaborators.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("listing collaborators: %w", err)
	}
	upcoming, err := s.events.Upcoming(ctx, now, now.AddDate(0, 1, 0).Sub(now), UpcomingLimit)
	if err != nil {
		return nil, fmt.Errorf("listing upcoming events: %w", err)
	}

	sum := &Summary{
		ProjectsPerClient: []ClientProjects{},
		ProjectsPerStatus: []StatusCount{},
		Upcoming:          upcoming,
	}

	perClient := map[int64]int{}
	statusIndex := map[string]int{}
	for _, p := range projects {
		perClient[p.ClientID]++

		status := string(p.Status)
		if status == "" {
			status = UnspecifiedStatus
		}
		i, ok := statusIndex[status]
		if !ok {
			i = len(sum.ProjectsPerStatus)
			statusIndex[status] = i
			sum.ProjectsPerStatus = append(sum.ProjectsPerStatus, StatusCount{Status: status})
		}
		sum.ProjectsPerStatus[i].Count++
	}

	for _, c := range clients {
		if c.Active {
			sum.Counts.ActiveClients++
		}
		if n := perClient[c.ID]; n > 0 {
			sum.ProjectsPerClient = append(sum.ProjectsPerClient, ClientProjects{ClientID: c.ID, Name: c.Name, Projects: n})
		}
	}
	for _, c := range collaborators {
		if c.Active {
			sum.Counts.ActiveCollaborators++
		}
	}

	sum.Counts.Clients = len(clients)
	sum.Counts.Projects = len(projects)
	sum.Counts.Operators = len(operators)
	sum.Counts.Collaborators = len(collaborators)
	return sum, nil
}
