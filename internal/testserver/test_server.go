// Package testserver starts the full HTTP stack on an in-memory database for
// end-to-end tests.
package testserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/smmdesk/internal/app"
	"github.com/rpggio/smmdesk/internal/domain/reminder"
	"github.com/rpggio/smmdesk/internal/mcp"
	"github.com/rpggio/smmdesk/internal/notify"
	"github.com/rpggio/smmdesk/internal/seed"
	"github.com/rpggio/smmdesk/internal/sqlite"
	"github.com/rpggio/smmdesk/internal/transport"
)

// LeadTime is how far ahead the test scanner looks for due reminders.
const LeadTime = 5 * time.Minute

type TestServer struct {
	Server   *httptest.Server
	DB       *sqlite.DB
	Services *app.Services
	Hub      *notify.Hub
	Scanner  *reminder.Scanner
	Token    string
}

// New serves the REST API, MCP and notifications behind token auth. The
// stores start from the bundled seed data.
func New(t *testing.T, token string) *TestServer {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	data, err := seed.Load()
	require.NoError(t, err)

	svc, err := app.New(context.Background(), db, app.Options{Location: time.UTC, Seed: data})
	require.NoError(t, err)

	resolver := transport.NewTokenResolver([]string{token})
	mcpServer := mcp.NewServer(mcp.Config{
		Services:      svc,
		Resolver:      resolver,
		AuthEnabled:   true,
		TransportMode: "http",
	})

	hub := notify.NewHub(nil, nil)
	server := httptest.NewServer(transport.NewServer(svc, transport.Options{
		Auth:          transport.AuthMiddleware(resolver),
		MCP:           mcp.NewHTTPHandler(mcpServer, nil),
		Notifications: http.HandlerFunc(hub.ServeWS),
	}))

	ts := &TestServer{
		Server:   server,
		DB:       db,
		Services: svc,
		Hub:      hub,
		Scanner:  reminder.NewScanner(svc.Reminders, hub, time.Minute, LeadTime, nil),
		Token:    token,
	}

	t.Cleanup(func() {
		hub.Close()
		server.Close()
		_ = db.Close()
	})

	return ts
}
