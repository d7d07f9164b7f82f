// Package tools implements the MCP tool surface. Every handler resolves
// the caller to a user identity first, then works only with that user's
// data. Failures are returned as structured JSON tool results, never as
// protocol errors, so agent frameworks can always read them.
package tools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/auth"
)

// jsonResult marshals v as the tool's text payload.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return errResult("internal_error", fmt.Sprintf("encoding result: %v", err))
	}
	return mcp.NewToolResultText(string(raw)), nil
}

// errResult builds the uniform failure payload. The error return is
// always nil: tool failures ride inside the result, not the protocol.
func errResult(errType, message string) (*mcp.CallToolResult, error) {
	raw, _ := json.Marshal(map[string]any{
		"success": false,
		"error":   errType,
		"message": message,
	})
	return mcp.NewToolResultText(string(raw)), nil
}

// storeFailure wraps unexpected store errors.
func storeFailure(err error) (*mcp.CallToolResult, error) {
	return errResult("storage_error", err.Error())
}

// identify resolves the caller from the standard user_id/api_key
// arguments. On failure the returned result is ready to send.
func identify(a *auth.Authenticator, req mcp.CallToolRequest) (auth.Context, *mcp.CallToolResult, error) {
	userID := req.GetString("user_id", "")
	apiKey := req.GetString("api_key", "")

	ac, err := a.Authorize(userID, apiKey)
	if err != nil {
		res, rerr := errResult("unauthorized", err.Error())
		return auth.Context{}, res, rerr
	}
	return ac, nil, nil
}

// withIdentity prepends the shared identity arguments to a tool's options.
func withIdentity(opts ...mcp.ToolOption) []mcp.ToolOption {
	base := []mcp.ToolOption{
		mcp.WithString("user_id",
			mcp.Description("User identifier. Required for trusted backend calls and admin-key calls.")),
		mcp.WithString("api_key",
			mcp.Description("API key for external clients. Omit when calling from the trusted backend.")),
	}
	return append(base, opts...)
}
