package testserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/smmdesk/internal/testserver"
)

const token = "agency-token"

func restCall(t *testing.T, ts *testserver.TestServer, method, path string, body any, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, ts.Server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+ts.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type bearer struct{ token string }

func (b bearer) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+b.token)
	return http.DefaultTransport.RoundTrip(req)
}

func mcpSession(t *testing.T, ts *testserver.TestServer) *sdkmcp.ClientSession {
	t.Helper()
	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "e2e", Version: "1.0.0"}, nil)
	session, err := client.Connect(context.Background(), &sdkmcp.StreamableClientTransport{
		Endpoint:   ts.Server.URL + "/mcp",
		HTTPClient: &http.Client{Transport: bearer{token: ts.Token}},
		MaxRetries: -1,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func TestEndToEnd_RESTChangesVisibleOverMCP(t *testing.T) {
	ts := testserver.New(t, token)

	var created struct {
		ID int64 `json:"id"`
	}
	status := restCall(t, ts, http.MethodPost, "/api/clients", map[string]any{"name": "Pasticceria Dolce", "active": true}, &created)
	require.Equal(t, http.StatusCreated, status)

	session := mcpSession(t, ts)
	result, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "get_client",
		Arguments: map[string]any{"id": created.ID},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.Contains(t, result.Content[0].(*sdkmcp.TextContent).Text, "Pasticceria Dolce")

	result, err = session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: "get_recent_activity", Arguments: map[string]any{"entity_type": "client"}})
	require.NoError(t, err)
	require.Contains(t, result.Content[0].(*sdkmcp.TextContent).Text, "Pasticceria Dolce")
}

func TestEndToEnd_MCPRequiresToken(t *testing.T) {
	ts := testserver.New(t, token)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "e2e", Version: "1.0.0"}, nil)
	session, err := client.Connect(context.Background(), &sdkmcp.StreamableClientTransport{
		Endpoint:   ts.Server.URL + "/mcp",
		HTTPClient: &http.Client{Transport: bearer{token: "stolen"}},
		MaxRetries: -1,
	}, nil)
	require.NoError(t, err)
	defer session.Close()

	_, err = session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: "list_clients"})
	require.Error(t, err)
}

func TestEndToEnd_DueReminderPushedOverWebSocket(t *testing.T) {
	ts := testserver.New(t, token)

	url := "ws" + strings.TrimPrefix(ts.Server.URL, "http") + "/ws/notifications?access_token=" + ts.Token
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()
	require.Eventually(t, func() bool { return ts.Hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	due := time.Now().Add(2 * time.Minute).Truncate(time.Second)
	status := restCall(t, ts, http.MethodPost, "/api/reminders", map[string]any{
		"title":    "Chiamare TechBolt",
		"due":      due.Format(time.RFC3339),
		"category": "task",
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	require.Equal(t, 1, ts.Scanner.Scan(context.Background()))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var note struct {
		Type     string `json:"type"`
		Reminder struct {
			Title string `json:"title"`
		} `json:"reminder"`
	}
	require.NoError(t, json.Unmarshal(msg, &note))
	require.Equal(t, "Chiamare TechBolt", note.Reminder.Title)
}

func TestEndToEnd_HealthIsPublic(t *testing.T) {
	ts := testserver.New(t, token)

	resp, err := http.Get(ts.Server.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.Server.URL + "/api/clients")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
