package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/auth"
	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/store"
	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/wellness"
)

// SaveTaskRecommendationTool stores one agent-suggested task. Suggested
// tasks stay outside the primary list until the user accepts them.
type SaveTaskRecommendationTool struct {
	Store *store.Store
	Auth  *auth.Authenticator
}

func (t *SaveTaskRecommendationTool) Definition() mcp.Tool {
	return mcp.NewTool("save_task_recommendation",
		withIdentity(
			mcp.WithDescription("Save one suggested task from the wellness agent."),
			mcp.WithString("title", mcp.Required(), mcp.Description("Task title.")),
			mcp.WithString("description", mcp.Description("What the task involves.")),
			mcp.WithString("priority",
				mcp.Description("One of urgent_important, important_not_urgent, urgent_not_important, not_urgent_not_important.")),
			mcp.WithNumber("suggested_due_days", mcp.Description("Days until due. Defaults to 7.")),
			mcp.WithString("session_id", mcp.Description("Journal session this came from.")),
		)...)
}

func (t *SaveTaskRecommendationTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ac, fail, err := identify(t.Auth, req)
	if fail != nil {
		return fail, err
	}

	title := req.GetString("title", "")
	if title == "" {
		return errResult("validation_error", "title is required")
	}

	id, err := t.Store.AddRecommendedTask(ctx, store.RecommendedTask{
		UserID:      ac.UserID,
		Title:       title,
		Description: req.GetString("description", ""),
		Quadrant:    wellness.QuadrantForPriority(req.GetString("priority", "")),
		Status:      store.SuggestionStatusTODO,
		DueDate:     wellness.DueDate(time.Now(), req.GetInt("suggested_due_days", 0)),
		FromSession: req.GetString("session_id", ""),
	})
	if err != nil {
		return storeFailure(err)
	}
	return jsonResult(map[string]any{"success": true, "task_id": id})
}

// SavePathwaySuggestionTool stores one wellness pathway suggestion.
type SavePathwaySuggestionTool struct {
	Store *store.Store
	Auth  *auth.Authenticator
}

func (t *SavePathwaySuggestionTool) Definition() mcp.Tool {
	return mcp.NewTool("save_pathway_suggestion",
		withIdentity(
			mcp.WithDescription("Save one suggested wellness pathway."),
			mcp.WithString("name", mcp.Required(), mcp.Description("Pathway name.")),
			mcp.WithString("pathway_type", mcp.Description("Kind of pathway, e.g. mindfulness, exercise, sleep.")),
			mcp.WithString("description", mcp.Description("What the pathway covers.")),
			mcp.WithNumber("duration_days", mcp.Description("Program length in days.")),
			mcp.WithString("session_id", mcp.Description("Journal session this came from.")),
		)...)
}

func (t *SavePathwaySuggestionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ac, fail, err := identify(t.Auth, req)
	if fail != nil {
		return fail, err
	}

	name := req.GetString("name", "")
	if name == "" {
		return errResult("validation_error", "name is required")
	}

	id, err := t.Store.AddPathway(ctx, store.Pathway{
		UserID:       ac.UserID,
		Name:         name,
		PathwayType:  req.GetString("pathway_type", ""),
		Description:  req.GetString("description", ""),
		DurationDays: req.GetInt("duration_days", 0),
		Status:       store.SuggestionStatusSuggested,
		FromSession:  req.GetString("session_id", ""),
	})
	if err != nil {
		return storeFailure(err)
	}
	return jsonResult(map[string]any{"success": true, "pathway_id": id})
}

// SaveInsightRecommendationTool stores one actionable insight.
type SaveInsightRecommendationTool struct {
	Store *store.Store
	Auth  *auth.Authenticator
}

func (t *SaveInsightRecommendationTool) Definition() mcp.Tool {
	return mcp.NewTool("save_insight_recommendation",
		withIdentity(
			mcp.WithDescription("Save one actionable insight recommendation for the AI stats area."),
			mcp.WithString("title", mcp.Required(), mcp.Description("Short insight title.")),
			mcp.WithString("description", mcp.Description("The insight itself.")),
			mcp.WithString("category", mcp.Description("Grouping label, e.g. sleep, focus, stress.")),
			mcp.WithString("session_id", mcp.Description("Journal session this came from.")),
		)...)
}

func (t *SaveInsightRecommendationTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ac, fail, err := identify(t.Auth, req)
	if fail != nil {
		return fail, err
	}

	title := req.GetString("title", "")
	if title == "" {
		return errResult("validation_error", "title is required")
	}

	id, err := t.Store.AddRecommendation(ctx, store.Recommendation{
		UserID:      ac.UserID,
		Title:       title,
		Description: req.GetString("description", ""),
		Category:    req.GetString("category", ""),
		FromSession: req.GetString("session_id", ""),
	})
	if err != nil {
		return storeFailure(err)
	}
	return jsonResult(map[string]any{"success": true, "recommendation_id": id})
}

// SaveExerciseRecommendationTool stores one exercise suggestion.
type SaveExerciseRecommendationTool struct {
	Store *store.Store
	Auth  *auth.Authenticator
}

func (t *SaveExerciseRecommendationTool) Definition() mcp.Tool {
	return mcp.NewTool("save_exercise_recommendation",
		withIdentity(
			mcp.WithDescription("Save one wellness exercise suggestion."),
			mcp.WithString("name", mcp.Required(), mcp.Description("Exercise name.")),
			mcp.WithString("instructions", mcp.Description("How to do it.")),
			mcp.WithString("duration", mcp.Description("How long it takes, e.g. '5 minutes'.")),
			mcp.WithString("best_for", mcp.Description("When it helps most, e.g. 'pre-sleep wind-down'.")),
			mcp.WithString("session_id", mcp.Description("Journal session this came from.")),
		)...)
}

func (t *SaveExerciseRecommendationTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ac, fail, err := identify(t.Auth, req)
	if fail != nil {
		return fail, err
	}

	name := req.GetString("name", "")
	if name == "" {
		return errResult("validation_error", "name is required")
	}

	id, err := t.Store.AddExercise(ctx, store.Exercise{
		UserID:       ac.UserID,
		Name:         name,
		Instructions: req.GetString("instructions", ""),
		Duration:     req.GetString("duration", ""),
		BestFor:      req.GetString("best_for", ""),
		FromSession:  req.GetString("session_id", ""),
	})
	if err != nil {
		return storeFailure(err)
	}
	return jsonResult(map[string]any{"success": true, "exercise_id": id})
}

// SaveWellnessSummaryTool appends one agent conversation summary and
// reflects it into today's daily entry so the mood calendar stays
// current without a second call.
type SaveWellnessSummaryTool struct {
	Store *store.Store
	Auth  *auth.Authenticator
}

// summaryPayload is the embedded JSON document the agent sends.
type summaryPayload struct {
	Summary     string   `json:"summary"`
	Emotions    []string `json:"emotions"`
	FocusAreas  []string `json:"focus_areas"`
	Tags        []string `json:"tags"`
	StressLevel string   `json:"stress_level"`
	Source      string   `json:"source"`
}

func (t *SaveWellnessSummaryTool) Definition() mcp.Tool {
	return mcp.NewTool("save_wellness_summary",
		withIdentity(
			mcp.WithDescription("Save a wellness conversation summary and update today's mood entry from its stress level."),
			mcp.WithString("summary_json", mcp.Required(),
				mcp.Description(`JSON payload: {"summary","emotions":[],"focus_areas":[],"tags":[],"stress_level","source"}.`)),
		)...)
}

func (t *SaveWellnessSummaryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ac, fail, err := identify(t.Auth, req)
	if fail != nil {
		return fail, err
	}

	var p summaryPayload
	if err := json.Unmarshal([]byte(req.GetString("summary_json", "")), &p); err != nil {
		return errResult("validation_error", fmt.Sprintf("summary_json is not valid: %v", err))
	}
	if p.Summary == "" {
		return errResult("validation_error", "summary is required")
	}
	if p.Source == "" {
		p.Source = "voice_journaling"
	}

	id, err := t.Store.AddWellnessSummary(ctx, ac.UserID, store.WellnessSummary{
		Summary:     p.Summary,
		Emotions:    p.Emotions,
		FocusAreas:  p.FocusAreas,
		Tags:        p.Tags,
		StressLevel: p.StressLevel,
		Source:      p.Source,
	})
	if err != nil {
		return storeFailure(err)
	}

	today := time.Now()
	entry := store.DailyEntry{
		Day:     today.Day(),
		Month:   int(today.Month()),
		Year:    today.Year(),
		Mood:    moodForStress(p.StressLevel),
		Summary: p.Summary,
		Wellness: &store.WellnessPayload{
			Emotions:    p.Emotions,
			FocusAreas:  p.FocusAreas,
			Tags:        p.Tags,
			StressLevel: p.StressLevel,
			Source:      p.Source,
		},
	}
	if err := t.Store.UpsertDailyEntry(ctx, ac.UserID, entry); err != nil {
		return storeFailure(err)
	}

	return jsonResult(map[string]any{
		"success":       true,
		"summary_id":    id,
		"daily_updated": true,
		"mood":          entry.Mood,
	})
}

// moodForStress maps the agent's stress vocabulary onto mood tags.
func moodForStress(level string) string {
	switch level {
	case "low":
		return store.MoodRelaxed
	case "high":
		return store.MoodOverwhelmed
	}
	return store.MoodBalanced
}
