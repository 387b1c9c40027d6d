package mcp

import (
	"encoding/json"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/smmdesk/internal/apierr"
)

// toolErrorResult reports err inside the tool result so the model can read
// the code and recovery hint. Unknown errors are logged and hidden.
func toolErrorResult(logger *slog.Logger, tool string, err error) *sdkmcp.CallToolResult {
	apiErr := apierr.Map(err)
	if apiErr == nil {
		logger.Error("tool failed", "tool", tool, "error", err)
		apiErr = apierr.Internal()
	}
	body, _ := json.Marshal(map[string]any{"error": apiErr})
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(body)}},
		IsError: true,
	}
}

func toolResult(payload any) (*sdkmcp.CallToolResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(body)}},
	}, nil
}
