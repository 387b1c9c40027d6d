package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/smmdesk/internal/app"
	"github.com/rpggio/smmdesk/internal/domain/mailbox"
	"github.com/rpggio/smmdesk/internal/seed"
	"github.com/rpggio/smmdesk/internal/sqlite"
)

var fixedNow = time.Date(2025, time.May, 19, 9, 0, 0, 0, time.UTC)

func newServices(t *testing.T) *app.Services {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	data, err := seed.Load()
	require.NoError(t, err)

	svc, err := app.New(context.Background(), db, app.Options{
		Location: time.UTC,
		Seed:     data,
		Now:      func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return svc
}

func connect(t *testing.T, server *sdkmcp.Server) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func newSession(t *testing.T) (*sdkmcp.ClientSession, *app.Services) {
	t.Helper()
	svc := newServices(t)
	server := NewServer(Config{
		Services:      svc,
		TransportMode: "stdio",
		Now:           func() time.Time { return fixedNow },
	})
	return connect(t, server), svc
}

func textOf(t *testing.T, result *sdkmcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func callTool(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any, out any) {
	t.Helper()
	result, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.False(t, result.IsError, "tool %s failed: %s", name, textOf(t, result))
	if out != nil {
		require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), out))
	}
}

type toolError struct {
	Error struct {
		Code         string   `json:"code"`
		Message      string   `json:"message"`
		Fields       []string `json:"fields"`
		RecoveryHint string   `json:"recovery_hint"`
	} `json:"error"`
}

func callToolError(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) toolError {
	t.Helper()
	result, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.True(t, result.IsError, "tool %s unexpectedly succeeded: %s", name, textOf(t, result))

	var out toolError
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &out))
	return out
}

func TestServer_ListsCatalog(t *testing.T) {
	session, _ := newSession(t)

	require.Equal(t, "smmdesk", session.InitializeResult().ServerInfo.Name)

	tools, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := map[string]bool{}
	for _, tool := range tools.Tools {
		names[tool.Name] = true
	}
	require.Len(t, names, len(buildToolCatalog()))
	for _, want := range []string{"list_clients", "create_project", "get_month", "snooze_reminder", "list_messages", "get_dashboard"} {
		require.True(t, names[want], "missing tool %s", want)
	}
}

func TestCatalog_EveryToolIsHandled(t *testing.T) {
	h := NewHandler(newServices(t), func() time.Time { return fixedNow })
	for _, def := range buildToolCatalog() {
		_, err := h.Handle(context.Background(), def.Name, json.RawMessage(`{"unexpected_field": true}`))
		if err == nil {
			continue
		}
		require.NotContains(t, err.Error(), "unknown tool", def.Name)
	}
}

func TestTools_Clients(t *testing.T) {
	session, _ := newSession(t)

	var active []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	callTool(t, session, "list_clients", map[string]any{"active": true}, &active)
	require.Len(t, active, 3)

	var created struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	callTool(t, session, "create_client", map[string]any{"name": "Nuovo Cliente", "email": "info@nuovo.it", "active": true}, &created)
	require.Equal(t, int64(6), created.ID)

	var updated struct {
		Sector string `json:"sector"`
	}
	callTool(t, session, "update_client", map[string]any{"id": created.ID, "sector": "Retail"}, &updated)
	require.Equal(t, "Retail", updated.Sector)

	invalid := callToolError(t, session, "create_client", map[string]any{"name": " ", "email": "nope"})
	require.Equal(t, "INVALID_INPUT", invalid.Error.Code)
	require.Equal(t, []string{"email", "name"}, invalid.Error.Fields)

	busy := callToolError(t, session, "delete_client", map[string]any{"id": 1})
	require.Equal(t, "CLIENT_HAS_PROJECTS", busy.Error.Code)

	missing := callToolError(t, session, "get_client", map[string]any{"id": 999})
	require.Equal(t, "CLIENT_NOT_FOUND", missing.Error.Code)
}

func TestTools_ProjectNeedsClient(t *testing.T) {
	session, _ := newSession(t)

	res := callToolError(t, session, "create_project", map[string]any{"name": "Orfano", "client_id": 42, "status": "planning"})
	require.Equal(t, "UNKNOWN_CLIENT", res.Error.Code)

	var projects []struct {
		ID int64 `json:"id"`
	}
	callTool(t, session, "list_projects", map[string]any{"client_id": 1}, &projects)
	require.Len(t, projects, 2)
}

func TestTools_SyncDeadlines(t *testing.T) {
	session, _ := newSession(t)

	var created []struct {
		Type      string `json:"type"`
		ProjectID int64  `json:"project_id"`
	}
	callTool(t, session, "sync_project_deadlines", nil, &created)
	require.Len(t, created, 2)
	for _, e := range created {
		require.Equal(t, "deadline", e.Type)
	}

	callTool(t, session, "sync_project_deadlines", nil, &created)
	require.Empty(t, created)

	var month struct {
		Days []struct {
			InMonth bool `json:"in_month"`
		} `json:"days"`
	}
	callTool(t, session, "get_month", map[string]any{"year": 2025, "month": 6}, &month)
	require.Zero(t, len(month.Days)%7)
}

func TestTools_Reminders(t *testing.T) {
	session, svc := newSession(t)

	var list []ReminderResponse
	callTool(t, session, "list_reminders", nil, &list)
	require.Len(t, list, 3)

	var snoozed ReminderResponse
	callTool(t, session, "snooze_reminder", map[string]any{"id": 1}, &snoozed)
	require.Equal(t, int64(4), snoozed.ID)
	require.False(t, snoozed.Read)
	require.NotEmpty(t, snoozed.DueLabel)
	require.Len(t, svc.Reminders.List(context.Background()), 3)

	gone := callToolError(t, session, "snooze_reminder", map[string]any{"id": 1})
	require.Equal(t, "REMINDER_NOT_FOUND", gone.Error.Code)

	callTool(t, session, "mark_reminder_read", map[string]any{"id": 2}, nil)
	callTool(t, session, "list_reminders", map[string]any{"active_only": true}, &list)
	require.Len(t, list, 2)
}

func TestTools_Mail(t *testing.T) {
	session, _ := newSession(t)

	var inbox MessageListResponse
	callTool(t, session, "list_messages", nil, &inbox)
	require.Equal(t, "inbox", string(inbox.Folder))
	require.NotEmpty(t, inbox.Messages)

	bad := callToolError(t, session, "list_messages", map[string]any{"folder": "spam"})
	require.Equal(t, "UNKNOWN_FOLDER", bad.Error.Code)
}

func TestTools_MailAccounts(t *testing.T) {
	session, _ := newSession(t)

	var accounts []mailbox.Account
	callTool(t, session, "list_mail_accounts", nil, &accounts)
	require.Len(t, accounts, 2)

	var created mailbox.Account
	callTool(t, session, "create_mail_account", map[string]any{
		"name":     "Outlook Clienti",
		"email":    "clienti@azienda.com",
		"server":   "outlook.office365.com",
		"username": "clienti@azienda.com",
	}, &created)
	require.Greater(t, created.ID, int64(2))
	require.Equal(t, "outlook.office365.com", created.Server)

	bad := callToolError(t, session, "create_mail_account", map[string]any{
		"name": "Rotto", "email": "rotto", "server": "mail.azienda.com", "username": "rotto",
	})
	require.Equal(t, "INVALID_INPUT", bad.Error.Code)

	callTool(t, session, "delete_mail_account", map[string]any{"id": created.ID}, nil)
	missing := callToolError(t, session, "delete_mail_account", map[string]any{"id": created.ID})
	require.Equal(t, "MAIL_ACCOUNT_NOT_FOUND", missing.Error.Code)

	callTool(t, session, "list_mail_accounts", nil, &accounts)
	require.Len(t, accounts, 2)
}

func TestTools_BadArguments(t *testing.T) {
	session, _ := newSession(t)

	res := callToolError(t, session, "get_client", map[string]any{"id": "one"})
	require.Equal(t, "BAD_REQUEST", res.Error.Code)

	res = callToolError(t, session, "list_events", map[string]any{"day": "20/05/2025"})
	require.Equal(t, "BAD_REQUEST", res.Error.Code)

	res = callToolError(t, session, "create_client", map[string]any{"name": "X", "nickname": "y"})
	require.Equal(t, "BAD_REQUEST", res.Error.Code)
}

func TestDocResources(t *testing.T) {
	session, _ := newSession(t)
	ctx := context.Background()

	resources, err := session.ListResources(ctx, nil)
	require.NoError(t, err)
	require.Len(t, resources.Resources, len(docResources))

	read, err := session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "smmdesk://docs/calendar"})
	require.NoError(t, err)
	require.Len(t, read.Contents, 1)
	require.Contains(t, read.Contents[0].Text, "Deadline sync")
}

type staticResolver map[string]string

func (r staticResolver) ResolveCaller(_ context.Context, token string) (string, error) {
	return r[token], nil
}

type headerTransport struct {
	token string
	base  http.RoundTripper
}

func (h headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}
	return h.base.RoundTrip(req)
}

func connectHTTP(t *testing.T, url, token string) (*sdkmcp.ClientSession, error) {
	t.Helper()
	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(context.Background(), &sdkmcp.StreamableClientTransport{
		Endpoint:   url,
		HTTPClient: &http.Client{Transport: headerTransport{token: token, base: http.DefaultTransport}},
		MaxRetries: -1,
	}, nil)
	if err == nil {
		t.Cleanup(func() { _ = session.Close() })
	}
	return session, err
}

func TestHTTPHandler_Auth(t *testing.T) {
	server := NewServer(Config{
		Services:      newServices(t),
		Resolver:      staticResolver{"secret": "alice"},
		AuthEnabled:   true,
		TransportMode: "http",
		Now:           func() time.Time { return fixedNow },
	})
	ts := httptest.NewServer(NewHTTPHandler(server, nil))
	t.Cleanup(ts.Close)

	session, err := connectHTTP(t, ts.URL, "secret")
	require.NoError(t, err)
	var clients []map[string]any
	callTool(t, session, "list_clients", nil, &clients)
	require.Len(t, clients, 5)

	intruder, err := connectHTTP(t, ts.URL, "wrong")
	require.NoError(t, err, "initialize is not authenticated")
	_, err = intruder.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: "list_clients"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unauthorized")
}

func TestAuthMiddleware_SkipsHandshake(t *testing.T) {
	var called []string
	next := func(ctx context.Context, method string, _ sdkmcp.Request) (sdkmcp.Result, error) {
		called = append(called, method+":"+getCaller(ctx))
		return nil, nil
	}
	handler := authMiddleware(staticResolver{})(next)

	_, err := handler(context.Background(), "ping", &sdkmcp.ListToolsRequest{})
	require.NoError(t, err)
	require.Equal(t, []string{"ping:"}, called)

	_, err = handler(context.Background(), "tools/list", &sdkmcp.ListToolsRequest{})
	require.ErrorIs(t, err, errUnauthorized)
}

func TestNoAuthMiddleware(t *testing.T) {
	var caller string
	handler := noAuthMiddleware("local")(func(ctx context.Context, _ string, _ sdkmcp.Request) (sdkmcp.Result, error) {
		caller = getCaller(ctx)
		return nil, nil
	})
	_, err := handler(context.Background(), "tools/list", &sdkmcp.ListToolsRequest{})
	require.NoError(t, err)
	require.Equal(t, "local", caller)
}
