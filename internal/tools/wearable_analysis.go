package tools

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/analysis"
	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/auth"
	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/insight"
	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/store"
)

// RecoveryScoreTool computes today's readiness from the latest reading.
type RecoveryScoreTool struct {
	Store *store.Store
	Auth  *auth.Authenticator
}

func (t *RecoveryScoreTool) Definition() mcp.Tool {
	return mcp.NewTool("get_recovery_score",
		withIdentity(
			mcp.WithDescription("Compute the recovery score and focus/break recommendations from a day's wearable metrics."),
			mcp.WithString("date", mcp.Description("Calendar date YYYY-MM-DD. Omit for the latest reading.")),
		)...)
}

func (t *RecoveryScoreTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ac, fail, err := identify(t.Auth, req)
	if fail != nil {
		return fail, err
	}

	var reading store.Reading
	if date := req.GetString("date", ""); date != "" {
		reading, err = t.Store.ReadingByDate(ctx, ac.UserID, date)
	} else {
		reading, err = t.Store.LatestReading(ctx, ac.UserID)
	}
	if errors.Is(err, store.ErrNotFound) {
		return errResult("not_found", "no wearable data to score")
	}
	if err != nil {
		return storeFailure(err)
	}

	return jsonResult(map[string]any{
		"success":  true,
		"date":     reading.Date,
		"recovery": analysis.RecoveryScore(reading.Metrics),
	})
}

// AnalyzeWearableTool scores a reading and persists the result as an
// insight record.
type AnalyzeWearableTool struct {
	Store *store.Store
	Auth  *auth.Authenticator
}

func (t *AnalyzeWearableTool) Definition() mcp.Tool {
	return mcp.NewTool("analyze_wearable_data",
		withIdentity(
			mcp.WithDescription("Analyze a day's wearable metrics, store the recovery assessment and return it."),
			mcp.WithString("date", mcp.Description("Calendar date YYYY-MM-DD. Omit for the latest reading.")),
		)...)
}

func (t *AnalyzeWearableTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ac, fail, err := identify(t.Auth, req)
	if fail != nil {
		return fail, err
	}

	var reading store.Reading
	if date := req.GetString("date", ""); date != "" {
		reading, err = t.Store.ReadingByDate(ctx, ac.UserID, date)
	} else {
		reading, err = t.Store.LatestReading(ctx, ac.UserID)
	}
	if errors.Is(err, store.ErrNotFound) {
		return errResult("not_found", "no wearable data to analyze")
	}
	if err != nil {
		return storeFailure(err)
	}

	rec := analysis.RecoveryScore(reading.Metrics)
	payload, _ := json.Marshal(rec)

	if err := t.Store.SaveInsight(ctx, ac.UserID, store.Insight{
		InsightDate:         reading.Date,
		AnalysisType:        "recovery",
		RecoveryScore:       rec.Score,
		SleepDebtHours:      rec.SleepDebtHours,
		StressLevel:         rec.StressLevel,
		FocusRecommendation: rec.Recommendation,
		FocusMinutes:        rec.FocusMinutes,
		BreakMinutes:        rec.BreakMinutes,
		Confidence:          0.8,
		Payload:             string(payload),
	}); err != nil {
		return storeFailure(err)
	}

	return jsonResult(map[string]any{
		"success":  true,
		"date":     reading.Date,
		"recovery": rec,
		"stored":   true,
	})
}

// WearableInsightsTool returns narrative insights over recent readings.
// With a configured model it asks the model; otherwise it falls back to
// rule-based observations.
type WearableInsightsTool struct {
	Store   *store.Store
	Auth    *auth.Authenticator
	Insight insight.Client
	Log     *zap.Logger
}

func (t *WearableInsightsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_wearable_insights",
		withIdentity(
			mcp.WithDescription("Get narrative insights over the last week of wearable data."),
		)...)
}

func (t *WearableInsightsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ac, fail, err := identify(t.Auth, req)
	if fail != nil {
		return fail, err
	}

	readings, err := t.Store.RecentReadings(ctx, ac.UserID, 7)
	if err != nil {
		return storeFailure(err)
	}
	if len(readings) == 0 {
		return errResult("not_found", "no wearable data stored yet")
	}

	if t.Insight != nil {
		summary, _ := json.Marshal(map[string]any{"recent_readings": readings})
		insights, err := t.Insight.Generate(ctx, string(summary))
		if err == nil {
			return jsonResult(map[string]any{
				"success":  true,
				"source":   "model",
				"insights": insights,
			})
		}
		t.Log.Warn("model insights unavailable, using rule-based fallback", zap.Error(err))
	}

	return jsonResult(map[string]any{
		"success":  true,
		"source":   "rules",
		"insights": analysis.WearableInsights(readings),
	})
}
