// Package app wires repositories and domain services into one bundle shared
// by the REST API, the MCP server and the command entry point.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rpggio/smmdesk/internal/domain/activity"
	"github.com/rpggio/smmdesk/internal/domain/calendar"
	"github.com/rpggio/smmdesk/internal/domain/client"
	"github.com/rpggio/smmdesk/internal/domain/collaborator"
	"github.com/rpggio/smmdesk/internal/domain/dashboard"
	"github.com/rpggio/smmdesk/internal/domain/idea"
	"github.com/rpggio/smmdesk/internal/domain/mailbox"
	"github.com/rpggio/smmdesk/internal/domain/operator"
	"github.com/rpggio/smmdesk/internal/domain/project"
	"github.com/rpggio/smmdesk/internal/domain/reminder"
	"github.com/rpggio/smmdesk/internal/domain/watch"
	"github.com/rpggio/smmdesk/internal/memstore"
	"github.com/rpggio/smmdesk/internal/seed"
	"github.com/rpggio/smmdesk/internal/sqlite"
)

// Options controls how the services are built.
type Options struct {
	Location  *time.Location
	WeekStart time.Weekday
	Snooze    time.Duration
	// Seed populates collections whose snapshot does not exist yet, the
	// in-memory reminder list, the article list and the mailbox. Nil starts
	// everything empty.
	Seed   *seed.Data
	Logger *slog.Logger
	Now    func() time.Time
}

// Services is the full set of domain services.
type Services struct {
	Clients       *client.Service
	Projects      *project.Service
	Operators     *operator.Service
	Collaborators *collaborator.Service
	Calendar      *calendar.Service
	Reminders     *reminder.Service
	Ideas         *idea.Service
	Watch         *watch.Service
	Mailbox       *mailbox.Service
	MailAccounts  *mailbox.AccountService
	Dashboard     *dashboard.Service
	Activity      *activity.Service
}

// New builds the services on top of db. Collections are loaded from their
// snapshots before New returns.
func New(ctx context.Context, db *sqlite.DB, opts Options) (*Services, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	data := opts.Seed
	if data == nil {
		data = &seed.Data{}
	}

	snapshots := sqlite.NewSnapshotRepository(db)

	clientRepo := memstore.NewClientRepository(snapshots, logger)
	projectRepo := memstore.NewProjectRepository(snapshots, logger)
	operatorRepo := memstore.NewOperatorRepository(snapshots, logger)
	collaboratorRepo := memstore.NewCollaboratorRepository(snapshots, now, logger)
	eventRepo := memstore.NewEventRepository(snapshots, logger)
	ideaRepo := memstore.NewIdeaRepository(snapshots, logger)
	feedRepo := memstore.NewFeedRepository(snapshots, logger)
	accountRepo := memstore.NewMailAccountRepository(snapshots, now, logger)

	events, err := data.CalendarEvents(opts.Location)
	if err != nil {
		return nil, err
	}
	ideas, err := data.IdeaBank()
	if err != nil {
		return nil, err
	}

	loaders := []struct {
		name string
		load func(context.Context) error
	}{
		{memstore.KeyClients, func(ctx context.Context) error { return clientRepo.Load(ctx, data.Clients) }},
		{memstore.KeyProjects, func(ctx context.Context) error { return projectRepo.Load(ctx, data.Projects) }},
		{memstore.KeyOperators, func(ctx context.Context) error { return operatorRepo.Load(ctx, data.Operators) }},
		{memstore.KeyCollaborators, func(ctx context.Context) error { return collaboratorRepo.Load(ctx, data.Collaborators) }},
		{memstore.KeyEvents, func(ctx context.Context) error { return eventRepo.Load(ctx, events) }},
		{memstore.KeyIdeas, func(ctx context.Context) error { return ideaRepo.Load(ctx, ideas) }},
		{memstore.KeyFeeds, func(ctx context.Context) error { return feedRepo.Load(ctx, data.Feeds) }},
		{memstore.KeyMailAccounts, func(ctx context.Context) error { return accountRepo.Load(ctx, data.MailAccounts) }},
	}
	for _, l := range loaders {
		if err := l.load(ctx); err != nil {
			return nil, fmt.Errorf("loading %s: %w", l.name, err)
		}
	}

	activitySvc := activity.NewService(sqlite.NewActivityRepository(db), logger)

	s := &Services{
		Clients:       client.NewService(clientRepo, projectRepo, activitySvc, logger),
		Projects:      project.NewService(projectRepo, clientRepo, activitySvc, logger),
		Operators:     operator.NewService(operatorRepo, projectRepo, activitySvc, logger),
		Collaborators: collaborator.NewService(collaboratorRepo, activitySvc, logger),
		Calendar: calendar.NewService(eventRepo, projectRepo, activitySvc, logger, calendar.Options{
			Location:  opts.Location,
			WeekStart: opts.WeekStart,
		}),
		Reminders:    reminder.NewService(opts.Snooze, logger),
		Ideas:        idea.NewService(ideaRepo, activitySvc, logger),
		Watch:        watch.NewService(feedRepo, data.Articles, activitySvc, logger),
		Mailbox:      mailbox.NewService(data.Messages),
		MailAccounts: mailbox.NewAccountService(accountRepo, activitySvc, logger),
		Activity:     activitySvc,
	}
	s.Dashboard = dashboard.NewService(s.Clients, s.Projects, s.Operators, s.Collaborators, s.Calendar)

	// Client and operator deletes check projects, and project writes check
	// clients, so the three serialize together.
	catalog := new(sync.Mutex)
	s.Clients.ShareLock(catalog)
	s.Projects.ShareLock(catalog)
	s.Operators.ShareLock(catalog)

	for _, req := range data.ReminderRequests(now()) {
		if _, err := s.Reminders.Add(ctx, req); err != nil {
			return nil, fmt.Errorf("seeding reminders: %w", err)
		}
	}

	logger.Info("services ready", "seeded", opts.Seed != nil)
	return s, nil
}
