package transport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/rpggio/smmdesk/internal/app"
)

// Options configures the HTTP surface.
type Options struct {
	// Auth wraps every route except /health. Nil leaves them open.
	Auth func(http.Handler) http.Handler
	// MCP serves /mcp when set. It authenticates in its own middleware.
	MCP http.Handler
	// Notifications serves /ws/notifications when set.
	Notifications http.Handler
	AllowedOrigins []string
	Logger         *slog.Logger
	Now            func() time.Time
}

// Server wires HTTP handlers onto the domain services.
type Server struct {
	svc    *app.Services
	logger *slog.Logger
	now    func() time.Time
}

// NewServer creates the HTTP router: the REST API under /api, optional MCP
// and notification endpoints, and /health.
func NewServer(svc *app.Services, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	srv := &Server{svc: svc, logger: logger, now: now}

	r := mux.NewRouter()
	r.HandleFunc("/health", srv.handleHealth).Methods(http.MethodGet)

	if opts.MCP != nil {
		r.PathPrefix("/mcp").Handler(opts.MCP)
	}

	protected := r.NewRoute().Subrouter()
	if opts.Auth != nil {
		protected.Use(mux.MiddlewareFunc(opts.Auth))
	}
	protected.Use(requestLogger(logger))

	if opts.Notifications != nil {
		protected.Handle("/ws/notifications", opts.Notifications).Methods(http.MethodGet)
	}

	api := protected.PathPrefix("/api").Subrouter()
	srv.routes(api)

	return enableCORS(opts.AllowedOrigins)(r)
}

func (s *Server) routes(api *mux.Router) {
	api.HandleFunc("/clients", s.listClients).Methods(http.MethodGet)
	api.HandleFunc("/clients", s.createClient).Methods(http.MethodPost)
	api.HandleFunc("/clients/{id:[0-9]+}", s.getClient).Methods(http.MethodGet)
	api.HandleFunc("/clients/{id:[0-9]+}", s.updateClient).Methods(http.MethodPatch)
	api.HandleFunc("/clients/{id:[0-9]+}", s.deleteClient).Methods(http.MethodDelete)
	api.HandleFunc("/clients/{id:[0-9]+}/projects", s.listClientProjects).Methods(http.MethodGet)

	api.HandleFunc("/projects", s.listProjects).Methods(http.MethodGet)
	api.HandleFunc("/projects", s.createProject).Methods(http.MethodPost)
	api.HandleFunc("/projects/{id:[0-9]+}", s.getProject).Methods(http.MethodGet)
	api.HandleFunc("/projects/{id:[0-9]+}", s.updateProject).Methods(http.MethodPatch)
	api.HandleFunc("/projects/{id:[0-9]+}", s.deleteProject).Methods(http.MethodDelete)
	api.HandleFunc("/projects/{id:[0-9]+}/events", s.listProjectEvents).Methods(http.MethodGet)

	api.HandleFunc("/operators", s.listOperators).Methods(http.MethodGet)
	api.HandleFunc("/operators", s.createOperator).Methods(http.MethodPost)
	api.HandleFunc("/operators/roles", s.listOperatorRoles).Methods(http.MethodGet)
	api.HandleFunc("/operators/{id:[0-9]+}", s.getOperator).Methods(http.MethodGet)
	api.HandleFunc("/operators/{id:[0-9]+}", s.updateOperator).Methods(http.MethodPatch)
	api.HandleFunc("/operators/{id:[0-9]+}", s.deleteOperator).Methods(http.MethodDelete)
	api.HandleFunc("/operators/{id:[0-9]+}/projects", s.listOperatorProjects).Methods(http.MethodGet)
	api.HandleFunc("/operators/{id:[0-9]+}/events", s.listOperatorEvents).Methods(http.MethodGet)

	api.HandleFunc("/collaborators", s.listCollaborators).Methods(http.MethodGet)
	api.HandleFunc("/collaborators", s.createCollaborator).Methods(http.MethodPost)
	api.HandleFunc("/collaborators/{id}", s.getCollaborator).Methods(http.MethodGet)
	api.HandleFunc("/collaborators/{id}", s.updateCollaborator).Methods(http.MethodPut)
	api.HandleFunc("/collaborators/{id}", s.deleteCollaborator).Methods(http.MethodDelete)

	api.HandleFunc("/events", s.listEvents).Methods(http.MethodGet)
	api.HandleFunc("/events", s.createEvent).Methods(http.MethodPost)
	api.HandleFunc("/events/upcoming", s.upcomingEvents).Methods(http.MethodGet)
	api.HandleFunc("/events/{id:[0-9]+}", s.getEvent).Methods(http.MethodGet)
	api.HandleFunc("/events/{id:[0-9]+}", s.updateEvent).Methods(http.MethodPatch)
	api.HandleFunc("/events/{id:[0-9]+}", s.deleteEvent).Methods(http.MethodDelete)
	api.HandleFunc("/calendar/{year:[0-9]{4}}/{month:[0-9]{1,2}}", s.getMonth).Methods(http.MethodGet)
	api.HandleFunc("/calendar/sync-deadlines", s.syncDeadlines).Methods(http.MethodPost)

	api.HandleFunc("/reminders", s.listReminders).Methods(http.MethodGet)
	api.HandleFunc("/reminders", s.addReminder).Methods(http.MethodPost)
	api.HandleFunc("/reminders/{id:[0-9]+}/read", s.markReminderRead).Methods(http.MethodPost)
	api.HandleFunc("/reminders/{id:[0-9]+}/snooze", s.snoozeReminder).Methods(http.MethodPost)
	api.HandleFunc("/reminders/{id:[0-9]+}", s.removeReminder).Methods(http.MethodDelete)

	api.HandleFunc("/ideas", s.listIdeas).Methods(http.MethodGet)
	api.HandleFunc("/ideas", s.createIdea).Methods(http.MethodPost)
	api.HandleFunc("/ideas/{id:[0-9]+}", s.deleteIdea).Methods(http.MethodDelete)

	api.HandleFunc("/feeds", s.listFeeds).Methods(http.MethodGet)
	api.HandleFunc("/feeds", s.createFeed).Methods(http.MethodPost)
	api.HandleFunc("/feeds/{id:[0-9]+}", s.deleteFeed).Methods(http.MethodDelete)
	api.HandleFunc("/articles", s.listArticles).Methods(http.MethodGet)
	api.HandleFunc("/articles/categories", s.listArticleCategories).Methods(http.MethodGet)

	api.HandleFunc("/mail/accounts", s.listMailAccounts).Methods(http.MethodGet)
	api.HandleFunc("/mail/accounts", s.createMailAccount).Methods(http.MethodPost)
	api.HandleFunc("/mail/accounts/{id:[0-9]+}", s.deleteMailAccount).Methods(http.MethodDelete)
	api.HandleFunc("/mail/messages/{id:[0-9]+}", s.getMessage).Methods(http.MethodGet)
	api.HandleFunc("/mail/{folder}", s.listMessages).Methods(http.MethodGet)

	api.HandleFunc("/dashboard", s.getDashboard).Methods(http.MethodGet)
	api.HandleFunc("/activity", s.listActivity).Methods(http.MethodGet)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
