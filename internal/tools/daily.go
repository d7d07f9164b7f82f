package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/auth"
	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/store"
)

// GetMonthlyDataTool lists a month of daily mood entries.
type GetMonthlyDataTool struct {
	Store *store.Store
	Auth  *auth.Authenticator
}

func (t *GetMonthlyDataTool) Definition() mcp.Tool {
	return mcp.NewTool("daily_data_get_monthly",
		withIdentity(
			mcp.WithDescription("Get all daily mood entries for a calendar month. Defaults to the current month."),
			mcp.WithNumber("year", mcp.Description("Four-digit year.")),
			mcp.WithNumber("month", mcp.Description("Month 1-12.")),
		)...)
}

func (t *GetMonthlyDataTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ac, fail, err := identify(t.Auth, req)
	if fail != nil {
		return fail, err
	}

	year, month, bad := monthArgs(req)
	if bad != nil {
		return bad, nil
	}

	entries, err := t.Store.MonthlyEntries(ctx, ac.UserID, year, month)
	if err != nil {
		return storeFailure(err)
	}
	return jsonResult(map[string]any{
		"success": true,
		"year":    year,
		"month":   month,
		"entries": entries,
		"count":   len(entries),
	})
}

// SaveDailyDataTool upserts one day's mood entry.
type SaveDailyDataTool struct {
	Store *store.Store
	Auth  *auth.Authenticator
}

func (t *SaveDailyDataTool) Definition() mcp.Tool {
	return mcp.NewTool("daily_data_save",
		withIdentity(
			mcp.WithDescription("Save or update the mood entry for one day. A day has at most one entry."),
			mcp.WithNumber("day", mcp.Required(), mcp.Description("Day of month 1-31.")),
			mcp.WithNumber("month", mcp.Required(), mcp.Description("Month 1-12.")),
			mcp.WithNumber("year", mcp.Required(), mcp.Description("Four-digit year.")),
			mcp.WithString("emoji", mcp.Required(),
				mcp.Description("Mood tag: RELAXED, BALANCED, FOCUSED, INTENSE, OVERWHELMED or BURNT_OUT.")),
			mcp.WithString("summary", mcp.Description("Free-text note for the day.")),
			mcp.WithString("wellness_json",
				mcp.Description(`Optional agent context: {"emotions":[],"focus_areas":[],"tags":[],"stress_level":"","source":""}.`)),
		)...)
}

func (t *SaveDailyDataTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ac, fail, err := identify(t.Auth, req)
	if fail != nil {
		return fail, err
	}

	entry := store.DailyEntry{
		Day:     req.GetInt("day", 0),
		Month:   req.GetInt("month", 0),
		Year:    req.GetInt("year", 0),
		Mood:    req.GetString("emoji", ""),
		Summary: req.GetString("summary", ""),
	}

	if entry.Month < 1 || entry.Month > 12 {
		return errResult("validation_error", fmt.Sprintf("month %d out of range", entry.Month))
	}
	if entry.Day < 1 || entry.Day > daysIn(entry.Year, entry.Month) {
		return errResult("validation_error", fmt.Sprintf("day %d out of range for %d-%02d", entry.Day, entry.Year, entry.Month))
	}
	if !store.ValidMood(entry.Mood) {
		return errResult("validation_error", fmt.Sprintf("unknown mood %q", entry.Mood))
	}

	if raw := req.GetString("wellness_json", ""); raw != "" {
		var w store.WellnessPayload
		if err := json.Unmarshal([]byte(raw), &w); err != nil {
			return errResult("validation_error", fmt.Sprintf("wellness_json is not valid: %v", err))
		}
		entry.Wellness = &w
	}

	if err := t.Store.UpsertDailyEntry(ctx, ac.UserID, entry); err != nil {
		return storeFailure(err)
	}
	return jsonResult(map[string]any{
		"success": true,
		"date":    fmt.Sprintf("%04d-%02d-%02d", entry.Year, entry.Month, entry.Day),
	})
}

// monthArgs reads optional year/month arguments, defaulting to today.
func monthArgs(req mcp.CallToolRequest) (int, int, *mcp.CallToolResult) {
	nowT := time.Now()
	year := req.GetInt("year", nowT.Year())
	month := req.GetInt("month", int(nowT.Month()))
	if month < 1 || month > 12 {
		res, _ := errResult("validation_error", fmt.Sprintf("month %d out of range", month))
		return 0, 0, res
	}
	if year < 2000 || year > 2100 {
		res, _ := errResult("validation_error", fmt.Sprintf("year %d out of range", year))
		return 0, 0, res
	}
	return year, month, nil
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
