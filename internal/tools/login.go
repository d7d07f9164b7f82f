package tools

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/auth"
)

// LoginTool exchanges a username/email plus password for a session
// token and a fresh API key.
type LoginTool struct {
	Auth *auth.Authenticator
}

func (t *LoginTool) Definition() mcp.Tool {
	return mcp.NewTool("mcp_login",
		mcp.WithDescription("Log in with username or email plus password. Returns a session token and an API key for subsequent calls."),
		mcp.WithString("identifier", mcp.Required(), mcp.Description("Username or email address.")),
		mcp.WithString("password", mcp.Required(), mcp.Description("Account password.")),
	)
}

func (t *LoginTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := t.Auth.Login(ctx,
		req.GetString("identifier", ""),
		req.GetString("password", ""))
	if errors.Is(err, auth.ErrLoginUnavailable) {
		return errResult("service_unavailable", "login is temporarily unavailable")
	}
	if err != nil {
		// One generic message for unknown users and wrong passwords.
		return errResult("login_failed", "Invalid username/email or password")
	}

	return jsonResult(map[string]any{
		"success":       true,
		"user_id":       res.UserID,
		"username":      res.Username,
		"email":         res.Email,
		"session_token": res.SessionToken,
		"api_key":       res.APIKey,
	})
}

// RegisterKeyTool mints a per-user API key. Admin or trusted callers
// can mint for any user; a user key holder only for themselves.
type RegisterKeyTool struct {
	Auth *auth.Authenticator
}

func (t *RegisterKeyTool) Definition() mcp.Tool {
	return mcp.NewTool("mcp_register_key",
		withIdentity(
			mcp.WithDescription("Mint a new API key for a user. The raw key is returned exactly once."),
		)...)
}

func (t *RegisterKeyTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ac, fail, err := identify(t.Auth, req)
	if fail != nil {
		return fail, err
	}

	key, err := t.Auth.RegisterKey(ac.UserID)
	if err != nil {
		return errResult("auth_error", err.Error())
	}
	return jsonResult(map[string]any{
		"success": true,
		"user_id": ac.UserID,
		"api_key": key,
		"note":    "Store this key now. It is only shown once.",
	})
}

// RevokeKeyTool revokes credentials: one specific key, or all of the
// user's keys when none is named.
type RevokeKeyTool struct {
	Auth *auth.Authenticator
}

func (t *RevokeKeyTool) Definition() mcp.Tool {
	return mcp.NewTool("mcp_revoke_key",
		withIdentity(
			mcp.WithDescription("Revoke API keys. Pass key to revoke one credential, omit it to revoke all of the user's keys. Revoking nothing succeeds."),
			mcp.WithString("key", mcp.Description("Specific credential to revoke. Omit to revoke all keys for the user.")),
		)...)
}

func (t *RevokeKeyTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ac, fail, err := identify(t.Auth, req)
	if fail != nil {
		return fail, err
	}

	if key := req.GetString("key", ""); key != "" {
		revoked := t.Auth.RevokeKey(key)
		return jsonResult(map[string]any{
			"success": true,
			"user_id": ac.UserID,
			"revoked": revoked,
		})
	}

	n := t.Auth.RevokeKeys(ac.UserID)
	return jsonResult(map[string]any{
		"success":       true,
		"user_id":       ac.UserID,
		"revoked_count": n,
	})
}

// ListKeysTool lists a user's keys in masked form.
type ListKeysTool struct {
	Auth *auth.Authenticator
}

func (t *ListKeysTool) Definition() mcp.Tool {
	return mcp.NewTool("mcp_list_keys",
		withIdentity(
			mcp.WithDescription("List the user's API keys in masked form."),
		)...)
}

func (t *ListKeysTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ac, fail, err := identify(t.Auth, req)
	if fail != nil {
		return fail, err
	}

	return jsonResult(map[string]any{
		"success": true,
		"user_id": ac.UserID,
		"keys":    t.Auth.ListMaskedKeys(ac.UserID),
	})
}
