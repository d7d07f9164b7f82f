package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/analysis"
	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/auth"
	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/store"
)

// SavePomodoroTool appends one focus session.
type SavePomodoroTool struct {
	Store *store.Store
	Auth  *auth.Authenticator
}

func (t *SavePomodoroTool) Definition() mcp.Tool {
	return mcp.NewTool("pomodoro_save_session",
		withIdentity(
			mcp.WithDescription("Record one pomodoro focus session."),
			mcp.WithNumber("work_duration", mcp.Required(), mcp.Description("Work interval in minutes.")),
			mcp.WithNumber("break_duration", mcp.Required(), mcp.Description("Break interval in minutes.")),
			mcp.WithNumber("preset_id", mcp.Description("Preset identifier, 0 for custom.")),
			mcp.WithBoolean("completed", mcp.Description("Whether the session was finished. Defaults to true.")),
		)...)
}

func (t *SavePomodoroTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ac, fail, err := identify(t.Auth, req)
	if fail != nil {
		return fail, err
	}

	work := req.GetInt("work_duration", 0)
	brk := req.GetInt("break_duration", 0)
	if work <= 0 || work > 240 {
		return errResult("validation_error", "work_duration must be between 1 and 240 minutes")
	}
	if brk < 0 || brk > 120 {
		return errResult("validation_error", "break_duration must be between 0 and 120 minutes")
	}

	id, err := t.Store.AddPomodoroSession(ctx, ac.UserID, store.PomodoroSession{
		WorkDuration:  work,
		BreakDuration: brk,
		PresetID:      req.GetInt("preset_id", 0),
		Completed:     req.GetBool("completed", true),
	})
	if err != nil {
		return storeFailure(err)
	}
	return jsonResult(map[string]any{
		"success":    true,
		"session_id": id,
	})
}

// PomodoroAnalyticsTool summarizes a month of sessions.
type PomodoroAnalyticsTool struct {
	Store *store.Store
	Auth  *auth.Authenticator
}

func (t *PomodoroAnalyticsTool) Definition() mcp.Tool {
	return mcp.NewTool("pomodoro_get_analytics",
		withIdentity(
			mcp.WithDescription("Get pomodoro session analytics for a month: counts, completion rate, focus time and insights."),
			mcp.WithNumber("year", mcp.Description("Four-digit year. Defaults to current.")),
			mcp.WithNumber("month", mcp.Description("Month 1-12. Defaults to current.")),
		)...)
}

func (t *PomodoroAnalyticsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ac, fail, err := identify(t.Auth, req)
	if fail != nil {
		return fail, err
	}

	year, month, bad := monthArgs(req)
	if bad != nil {
		return bad, nil
	}

	sessions, err := t.Store.MonthlyPomodoroSessions(ctx, ac.UserID, year, month)
	if err != nil {
		return storeFailure(err)
	}
	return jsonResult(map[string]any{
		"success":   true,
		"year":      year,
		"month":     month,
		"analytics": analysis.AnalyzePomodoro(sessions),
	})
}
