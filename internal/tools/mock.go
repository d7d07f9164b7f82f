package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/analysis"
	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/auth"
	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/store"
)

// MockWearableTool returns generated metrics without storing anything.
// Demo and dev environments use it when no real device is paired.
type MockWearableTool struct {
	Auth *auth.Authenticator
}

func (t *MockWearableTool) Definition() mcp.Tool {
	return mcp.NewTool("get_mock_wearable_data",
		withIdentity(
			mcp.WithDescription("Generate one plausible day of wearable metrics without storing it. Deterministic per user and date."),
			mcp.WithString("date", mcp.Description("Calendar date YYYY-MM-DD. Defaults to today.")),
		)...)
}

func (t *MockWearableTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ac, fail, err := identify(t.Auth, req)
	if fail != nil {
		return fail, err
	}

	date := req.GetString("date", time.Now().Format("2006-01-02"))
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return errResult("validation_error", fmt.Sprintf("date %q is not YYYY-MM-DD", date))
	}

	return jsonResult(map[string]any{
		"success": true,
		"date":    date,
		"metrics": analysis.MockMetrics(ac.UserID, date),
		"mock":    true,
	})
}

// GenerateMockDataTool backfills stored mock readings over a date range
// so analysis tools have something to work with in demos.
type GenerateMockDataTool struct {
	Store *store.Store
	Auth  *auth.Authenticator
}

func (t *GenerateMockDataTool) Definition() mcp.Tool {
	return mcp.NewTool("generate_wearable_mock_data",
		withIdentity(
			mcp.WithDescription("Generate and store mock wearable readings for the last N days under a synthetic device."),
			mcp.WithNumber("days", mcp.Description("How many days to backfill, 1-31. Defaults to 7.")),
		)...)
}

func (t *GenerateMockDataTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ac, fail, err := identify(t.Auth, req)
	if fail != nil {
		return fail, err
	}

	days := req.GetInt("days", 7)
	if days < 1 || days > 31 {
		return errResult("validation_error", "days must be between 1 and 31")
	}

	const mockDevice = "mock-device"
	today := time.Now()
	dates := make([]string, 0, days)
	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, -i).Format("2006-01-02")
		reading := store.Reading{
			DeviceID: mockDevice,
			Date:     date,
			Metrics:  analysis.MockMetrics(ac.UserID, date),
		}
		if err := t.Store.UpsertReading(ctx, ac.UserID, reading); err != nil {
			return storeFailure(err)
		}
		dates = append(dates, date)
	}

	return jsonResult(map[string]any{
		"success":   true,
		"device_id": mockDevice,
		"days":      days,
		"dates":     dates,
	})
}
