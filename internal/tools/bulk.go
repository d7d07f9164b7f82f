package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/auth"
	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/wellness"
)

// BulkSaveTool persists a complete wellness analysis in one call. The
// agent sends everything it produced at the end of a conversation and
// this fans it out to the individual collections.
type BulkSaveTool struct {
	Saver *wellness.Saver
	Auth  *auth.Authenticator
}

func (t *BulkSaveTool) Definition() mcp.Tool {
	return mcp.NewTool("save_complete_wellness_analysis",
		withIdentity(
			mcp.WithDescription("Save a complete wellness analysis: summary, suggested tasks, pathways, recommendations and exercises, attached to a journal session. Individual item failures do not abort the rest."),
			mcp.WithString("session_id", mcp.Required(),
				mcp.Description("Journal session the analysis belongs to. Must exist and belong to the user.")),
			mcp.WithString("mode", mcp.Description("Conversation mode, 'study' or 'wellness'.")),
			mcp.WithBoolean("safety_approved", mcp.Description("Safety reviewer verdict.")),
			mcp.WithNumber("safety_score", mcp.Description("Safety score, 0.0 to 1.0.")),
			mcp.WithString("analysis_json", mcp.Required(),
				mcp.Description(`Complete analysis: {"summary","emotions":[],"focus_areas":[],"tags":[],"stress_level","tasks":[],"pathways":[],"recommendations":[],"exercises":[]}.`)),
		)...)
}

func (t *BulkSaveTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ac, fail, err := identify(t.Auth, req)
	if fail != nil {
		return fail, err
	}

	sessionID := req.GetString("session_id", "")
	if sessionID == "" {
		return errResult("validation_error", "session_id is required")
	}

	var a wellness.Analysis
	if err := json.Unmarshal([]byte(req.GetString("analysis_json", "")), &a); err != nil {
		return errResult("validation_error", fmt.Sprintf("analysis_json is not valid: %v", err))
	}
	if a.Summary == "" {
		return errResult("validation_error", "analysis summary is required")
	}

	// Top-level arguments win over anything embedded in the payload.
	a.Mode = req.GetString("mode", a.Mode)
	a.SafetyApproved = req.GetBool("safety_approved", a.SafetyApproved)
	a.SafetyScore = req.GetFloat("safety_score", a.SafetyScore)

	res, err := t.Saver.Save(ctx, ac.UserID, sessionID, a)
	if errors.Is(err, wellness.ErrSessionNotFound) {
		return errResult("not_found", fmt.Sprintf("journal session %q does not exist", sessionID))
	}
	if errors.Is(err, wellness.ErrNotSessionOwner) {
		return errResult("unauthorized", "journal session belongs to another user")
	}
	if err != nil {
		return storeFailure(err)
	}
	return jsonResult(res)
}
