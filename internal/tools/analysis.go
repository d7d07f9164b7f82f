package tools

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/analysis"
	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/auth"
	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/insight"
	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/store"
)

// StudyPatternsTool correlates focus sessions with mood for one month.
type StudyPatternsTool struct {
	Store *store.Store
	Auth  *auth.Authenticator
}

func (t *StudyPatternsTool) Definition() mcp.Tool {
	return mcp.NewTool("analyze_user_study_patterns",
		withIdentity(
			mcp.WithDescription("Analyze how the user's focus sessions line up with their moods for a month."),
			mcp.WithNumber("year", mcp.Description("Four-digit year. Defaults to current.")),
			mcp.WithNumber("month", mcp.Description("Month 1-12. Defaults to current.")),
		)...)
}

func (t *StudyPatternsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ac, fail, err := identify(t.Auth, req)
	if fail != nil {
		return fail, err
	}

	year, month, bad := monthArgs(req)
	if bad != nil {
		return bad, nil
	}

	patterns, failRes, err := t.studyPatterns(ctx, ac.UserID, year, month)
	if failRes != nil {
		return failRes, err
	}
	return jsonResult(map[string]any{
		"success":  true,
		"year":     year,
		"month":    month,
		"patterns": patterns,
	})
}

func (t *StudyPatternsTool) studyPatterns(ctx context.Context, userID string, year, month int) (analysis.StudyPatterns, *mcp.CallToolResult, error) {
	sessions, err := t.Store.MonthlyPomodoroSessions(ctx, userID, year, month)
	if err != nil {
		res, rerr := storeFailure(err)
		return analysis.StudyPatterns{}, res, rerr
	}
	entries, err := t.Store.MonthlyEntries(ctx, userID, year, month)
	if err != nil {
		res, rerr := storeFailure(err)
		return analysis.StudyPatterns{}, res, rerr
	}
	tasks, err := t.Store.ListTasks(ctx, userID)
	if err != nil {
		res, rerr := storeFailure(err)
		return analysis.StudyPatterns{}, res, rerr
	}
	return analysis.AnalyzeStudyPatterns(sessions, entries, tasks), nil, nil
}

// StoredStudyPatternsTool runs the study-pattern analysis and persists
// the result for later review in the stats area.
type StoredStudyPatternsTool struct {
	Store *store.Store
	Auth  *auth.Authenticator
}

func (t *StoredStudyPatternsTool) Definition() mcp.Tool {
	return mcp.NewTool("analyze_study_patterns_stored",
		withIdentity(
			mcp.WithDescription("Run the study-pattern analysis for a month and store the result."),
			mcp.WithNumber("year", mcp.Description("Four-digit year. Defaults to current.")),
			mcp.WithNumber("month", mcp.Description("Month 1-12. Defaults to current.")),
		)...)
}

func (t *StoredStudyPatternsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ac, fail, err := identify(t.Auth, req)
	if fail != nil {
		return fail, err
	}

	year, month, bad := monthArgs(req)
	if bad != nil {
		return bad, nil
	}

	inner := &StudyPatternsTool{Store: t.Store, Auth: t.Auth}
	patterns, failRes, err := inner.studyPatterns(ctx, ac.UserID, year, month)
	if failRes != nil {
		return failRes, err
	}

	raw, _ := json.Marshal(patterns)
	id, err := t.Store.SaveAnalysisResult(ctx, ac.UserID, "study_patterns", string(raw))
	if err != nil {
		return storeFailure(err)
	}
	return jsonResult(map[string]any{
		"success":     true,
		"analysis_id": id,
		"patterns":    patterns,
	})
}

// TaskDistributionTool breaks the matrix down per quadrant.
type TaskDistributionTool struct {
	Store *store.Store
	Auth  *auth.Authenticator
}

func (t *TaskDistributionTool) Definition() mcp.Tool {
	return mcp.NewTool("analyze_task_distribution",
		withIdentity(
			mcp.WithDescription("Analyze how tasks are distributed across Eisenhower quadrants and where completion lags."),
		)...)
}

func (t *TaskDistributionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ac, fail, err := identify(t.Auth, req)
	if fail != nil {
		return fail, err
	}

	tasks, err := t.Store.ListTasks(ctx, ac.UserID)
	if err != nil {
		return storeFailure(err)
	}
	return jsonResult(map[string]any{
		"success":      true,
		"distribution": analysis.DistributeTasks(tasks),
	})
}

// PomodoroEffectivenessTool is the analysis-flavored view of session
// data, month-scoped like the analytics tool but insight-centric.
type PomodoroEffectivenessTool struct {
	Store *store.Store
	Auth  *auth.Authenticator
}

func (t *PomodoroEffectivenessTool) Definition() mcp.Tool {
	return mcp.NewTool("analyze_pomodoro_effectiveness",
		withIdentity(
			mcp.WithDescription("Evaluate how effective the user's pomodoro practice is and what to adjust."),
			mcp.WithNumber("year", mcp.Description("Four-digit year. Defaults to current.")),
			mcp.WithNumber("month", mcp.Description("Month 1-12. Defaults to current.")),
		)...)
}

func (t *PomodoroEffectivenessTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
	a := analysis.AnalyzePomodoro(sessions)
	return jsonResult(map[string]any{
		"success":       true,
		"effectiveness": a,
		"verdict":       pomodoroVerdict(a),
	})
}

func pomodoroVerdict(a analysis.PomodoroAnalytics) string {
	switch {
	case a.TotalSessions == 0:
		return "no_data"
	case a.CompletionRate >= 80 && a.ActiveDays >= 15:
		return "effective"
	case a.CompletionRate >= 60:
		return "moderate"
	}
	return "needs_adjustment"
}

// WellnessContextTool assembles the compact context blob the voice
// agent loads at the start of a conversation.
type WellnessContextTool struct {
	Store *store.Store
	Auth  *auth.Authenticator
}

func (t *WellnessContextTool) Definition() mcp.Tool {
	return mcp.NewTool("get_wellness_context",
		withIdentity(
			mcp.WithDescription("Get recent wellness context: latest summaries, this month's moods and the latest recovery state."),
		)...)
}

func (t *WellnessContextTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ac, fail, err := identify(t.Auth, req)
	if fail != nil {
		return fail, err
	}

	summaries, err := t.Store.RecentWellnessSummaries(ctx, ac.UserID, 5)
	if err != nil {
		return storeFailure(err)
	}

	nowT := time.Now()
	entries, err := t.Store.MonthlyEntries(ctx, ac.UserID, nowT.Year(), int(nowT.Month()))
	if err != nil {
		return storeFailure(err)
	}

	result := map[string]any{
		"success":            true,
		"recent_summaries":   summaries,
		"this_month_entries": entries,
	}

	if reading, err := t.Store.LatestReading(ctx, ac.UserID); err == nil {
		result["latest_recovery"] = analysis.RecoveryScore(reading.Metrics)
	} else if !errors.Is(err, store.ErrNotFound) {
		return storeFailure(err)
	}

	return jsonResult(result)
}

// WellnessTrendsTool compares this month's wellness against last month's.
type WellnessTrendsTool struct {
	Store *store.Store
	Auth  *auth.Authenticator
}

func (t *WellnessTrendsTool) Definition() mcp.Tool {
	return mcp.NewTool("analyze_wellness_trends",
		withIdentity(
			mcp.WithDescription("Compare the current month's wellness score and mood mix against the previous month."),
		)...)
}

func (t *WellnessTrendsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ac, fail, err := identify(t.Auth, req)
	if fail != nil {
		return fail, err
	}

	nowT := time.Now()
	prev := nowT.AddDate(0, -1, 0)

	tasks, err := t.Store.ListTasks(ctx, ac.UserID)
	if err != nil {
		return storeFailure(err)
	}
	current, err := t.Store.MonthlyEntries(ctx, ac.UserID, nowT.Year(), int(nowT.Month()))
	if err != nil {
		return storeFailure(err)
	}
	previous, err := t.Store.MonthlyEntries(ctx, ac.UserID, prev.Year(), int(prev.Month()))
	if err != nil {
		return storeFailure(err)
	}

	rate := analysis.CompletionRate(tasks)
	curScore := analysis.WellnessScore(current, rate)
	prevScore := analysis.WellnessScore(previous, rate)

	trend := "steady"
	if curScore > prevScore+5 {
		trend = "improving"
	} else if curScore < prevScore-5 {
		trend = "declining"
	}

	return jsonResult(map[string]any{
		"success":            true,
		"trend":              trend,
		"current_score":      curScore,
		"previous_score":     prevScore,
		"current_emotions":   analysis.EmotionDistribution(current),
		"previous_emotions":  analysis.EmotionDistribution(previous),
		"current_month_days": len(current),
	})
}

// ComprehensiveReportTool builds the full monthly report, optionally
// enriched with model-generated insights.
type ComprehensiveReportTool struct {
	Store   *store.Store
	Auth    *auth.Authenticator
	Insight insight.Client
	Log     *zap.Logger
}

func (t *ComprehensiveReportTool) Definition() mcp.Tool {
	return mcp.NewTool("comprehensive_report",
		withIdentity(
			mcp.WithDescription("Build a full monthly report: overview, task distribution, pomodoro effectiveness, recovery and insights."),
			mcp.WithNumber("year", mcp.Description("Four-digit year. Defaults to current.")),
			mcp.WithNumber("month", mcp.Description("Month 1-12. Defaults to current.")),
		)...)
}

func (t *ComprehensiveReportTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ac, fail, err := identify(t.Auth, req)
	if fail != nil {
		return fail, err
	}

	year, month, bad := monthArgs(req)
	if bad != nil {
		return bad, nil
	}

	tasks, err := t.Store.ListTasks(ctx, ac.UserID)
	if err != nil {
		return storeFailure(err)
	}
	entries, err := t.Store.MonthlyEntries(ctx, ac.UserID, year, month)
	if err != nil {
		return storeFailure(err)
	}
	sessions, err := t.Store.MonthlyPomodoroSessions(ctx, ac.UserID, year, month)
	if err != nil {
		return storeFailure(err)
	}

	report := map[string]any{
		"success":      true,
		"overview":     analysis.Overview(year, month, entries, tasks),
		"distribution": analysis.DistributeTasks(tasks),
		"pomodoro":     analysis.AnalyzePomodoro(sessions),
	}

	if reading, err := t.Store.LatestReading(ctx, ac.UserID); err == nil {
		report["recovery"] = analysis.RecoveryScore(reading.Metrics)
	} else if !errors.Is(err, store.ErrNotFound) {
		return storeFailure(err)
	}

	if t.Insight != nil {
		summary, _ := json.Marshal(report)
		if insights, err := t.Insight.Generate(ctx, string(summary)); err == nil {
			report["model_insights"] = insights
		} else {
			t.Log.Warn("model insights skipped in report", zap.Error(err))
		}
	}

	return jsonResult(report)
}
