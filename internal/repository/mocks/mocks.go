package mocks

import (
	"context"
	"time"

	"github.com/rpggio/smmdesk/internal/domain/activity"
	"github.com/rpggio/smmdesk/internal/domain/calendar"
	"github.com/rpggio/smmdesk/internal/domain/client"
	"github.com/rpggio/smmdesk/internal/domain/collaborator"
	"github.com/rpggio/smmdesk/internal/domain/idea"
	"github.com/rpggio/smmdesk/internal/domain/mailbox"
	"github.com/rpggio/smmdesk/internal/domain/operator"
	"github.com/rpggio/smmdesk/internal/domain/project"
	"github.com/rpggio/smmdesk/internal/domain/watch"
	"github.com/stretchr/testify/mock"
)

// ClientRepository is a mock for client.Repository.
type ClientRepository struct {
	mock.Mock
}

func (m *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *ClientRepository) Get(ctx context.Context, id int64) (*client.Client, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*client.Client); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClientRepository) Update(ctx context.Context, c *client.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *ClientRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ClientRepository) List(ctx context.Context) ([]client.Client, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]client.Client); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClientRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, p *project.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id int64) (*project.Project, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*project.Project); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Update(ctx context.Context, p *project.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProjectRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	return projects(args)
}

func (m *ProjectRepository) ListByClient(ctx context.Context, clientID int64) ([]project.Project, error) {
	args := m.Called(ctx, clientID)
	return projects(args)
}

func (m *ProjectRepository) ListByOperator(ctx context.Context, operatorID int64) ([]project.Project, error) {
	args := m.Called(ctx, operatorID)
	return projects(args)
}

func (m *ProjectRepository) CountByClient(ctx context.Context, clientID int64) (int, error) {
	args := m.Called(ctx, clientID)
	return args.Int(0), args.Error(1)
}

func (m *ProjectRepository) CountByOperator(ctx context.Context, operatorID int64) (int, error) {
	args := m.Called(ctx, operatorID)
	return args.Int(0), args.Error(1)
}

func projects(args mock.Arguments) ([]project.Project, error) {
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// OperatorRepository is a mock for operator.Repository.
type OperatorRepository struct {
	mock.Mock
}

func (m *OperatorRepository) Create(ctx context.Context, o *operator.Operator) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *OperatorRepository) Get(ctx context.Context, id int64) (*operator.Operator, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*operator.Operator); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *OperatorRepository) Update(ctx context.Context, o *operator.Operator) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *OperatorRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *OperatorRepository) List(ctx context.Context) ([]operator.Operator, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]operator.Operator); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// CollaboratorRepository is a mock for collaborator.Repository.
type CollaboratorRepository struct {
	mock.Mock
}

func (m *CollaboratorRepository) Create(ctx context.Context, c *collaborator.Collaborator) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CollaboratorRepository) Get(ctx context.Context, id string) (*collaborator.Collaborator, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*collaborator.Collaborator); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CollaboratorRepository) Update(ctx context.Context, c *collaborator.Collaborator) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CollaboratorRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CollaboratorRepository) List(ctx context.Context) ([]collaborator.Collaborator, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]collaborator.Collaborator); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// EventRepository is a mock for calendar.Repository.
type EventRepository struct {
	mock.Mock
}

func (m *EventRepository) Create(ctx context.Context, e *calendar.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *EventRepository) Get(ctx context.Context, id int64) (*calendar.Event, error) {
	args := m.Called(ctx, id)
	if e, ok := args.Get(0).(*calendar.Event); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EventRepository) Update(ctx context.Context, e *calendar.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *EventRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *EventRepository) List(ctx context.Context) ([]calendar.Event, error) {
	args := m.Called(ctx)
	return events(args)
}

func (m *EventRepository) ListByProject(ctx context.Context, projectID int64) ([]calendar.Event, error) {
	args := m.Called(ctx, projectID)
	return events(args)
}

func (m *EventRepository) ListByOperator(ctx context.Context, operatorID int64) ([]calendar.Event, error) {
	args := m.Called(ctx, operatorID)
	return events(args)
}

func (m *EventRepository) ListByDay(ctx context.Context, day time.Time) ([]calendar.Event, error) {
	args := m.Called(ctx, day)
	return events(args)
}

func (m *EventRepository) ListInRange(ctx context.Context, from, to time.Time) ([]calendar.Event, error) {
	args := m.Called(ctx, from, to)
	return events(args)
}

func events(args mock.Arguments) ([]calendar.Event, error) {
	if list, ok := args.Get(0).([]calendar.Event); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// IdeaRepository is a mock for idea.Repository.
type IdeaRepository struct {
	mock.Mock
}

func (m *IdeaRepository) Create(ctx context.Context, i *idea.Idea) error {
	args := m.Called(ctx, i)
	return args.Error(0)
}

func (m *IdeaRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *IdeaRepository) List(ctx context.Context) ([]idea.Idea, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]idea.Idea); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// FeedRepository is a mock for watch.Repository.
type FeedRepository struct {
	mock.Mock
}

func (m *FeedRepository) Create(ctx context.Context, f *watch.Feed) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *FeedRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *FeedRepository) List(ctx context.Context) ([]watch.Feed, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]watch.Feed); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// MailAccountRepository is a mock for mailbox.AccountRepository.
type MailAccountRepository struct {
	mock.Mock
}

func (m *MailAccountRepository) Create(ctx context.Context, a *mailbox.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MailAccountRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MailAccountRepository) List(ctx context.Context) ([]mailbox.Account, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]mailbox.Account); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// Recorder is a mock for activity.Recorder.
type Recorder struct {
	mock.Mock
}

func (m *Recorder) Record(ctx context.Context, entityType activity.EntityType, entityID string, action activity.Action, summary string) {
	m.Called(ctx, entityType, entityID, action, summary)
}
