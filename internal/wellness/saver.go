// Package wellness persists a complete agent analysis in one call: the
// conversation summary, suggested tasks, pathways, recommendations and
// exercises, all attached to an existing journal session.
package wellness

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/store"
)

// ErrSessionNotFound means the journal session id does not exist.
var ErrSessionNotFound = errors.New("wellness: session not found")

// ErrNotSessionOwner means the session belongs to a different user.
// Nothing is written when this is returned.
var ErrNotSessionOwner = errors.New("wellness: session belongs to another user")

// Writer is the slice of the store the saver needs. Tests substitute a
// stub to force individual writes to fail.
type Writer interface {
	GetJournalSession(ctx context.Context, sessionID string) (store.JournalSession, error)
	CompleteJournalAnalysis(ctx context.Context, sessionID, analysis string) error
	AddWellnessSummary(ctx context.Context, userID string, w store.WellnessSummary) (int64, error)
	AddRecommendedTask(ctx context.Context, t store.RecommendedTask) (string, error)
	AddPathway(ctx context.Context, p store.Pathway) (string, error)
	AddRecommendation(ctx context.Context, r store.Recommendation) (string, error)
	AddExercise(ctx context.Context, e store.Exercise) (string, error)
}

// Saver orchestrates the bulk save.
type Saver struct {
	w   Writer
	log *zap.Logger
}

// NewSaver builds a Saver over the given writer.
func NewSaver(w Writer, log *zap.Logger) *Saver {
	return &Saver{w: w, log: log}
}

// SuggestedTask is one agent task suggestion in the analysis payload.
type SuggestedTask struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	Priority         string `json:"priority"`
	SuggestedDueDays int    `json:"suggested_due_days"`
}

// SuggestedPathway is one pathway suggestion.
type SuggestedPathway struct {
	Name         string `json:"name"`
	PathwayType  string `json:"pathway_type"`
	Description  string `json:"description"`
	DurationDays int    `json:"duration_days"`
}

// SuggestedRecommendation is one actionable insight.
type SuggestedRecommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// SuggestedExercise is one exercise suggestion.
type SuggestedExercise struct {
	Name         string `json:"name"`
	Instructions string `json:"instructions"`
	Duration     string `json:"duration"`
	BestFor      string `json:"best_for"`
}

// Analysis is the complete payload produced by the agent. Mode and the
// safety reviewer's verdict travel with it so the session record keeps
// the full provenance of the save.
type Analysis struct {
	Mode            string                    `json:"mode"`
	SafetyApproved  bool                      `json:"safety_approved"`
	SafetyScore     float64                   `json:"safety_score"`
	Summary         string                    `json:"summary"`
	Emotions        []string                  `json:"emotions"`
	FocusAreas      []string                  `json:"focus_areas"`
	Tags            []string                  `json:"tags"`
	StressLevel     string                    `json:"stress_level"`
	Tasks           []SuggestedTask           `json:"tasks"`
	Pathways        []SuggestedPathway        `json:"pathways"`
	Recommendations []SuggestedRecommendation `json:"recommendations"`
	Exercises       []SuggestedExercise       `json:"exercises"`
}

// ItemOutcome records the fate of one fan-out write.
type ItemOutcome struct {
	Kind  string `json:"kind"`
	Name  string `json:"name"`
	ID    string `json:"id,omitempty"`
	Saved bool   `json:"saved"`
	Error string `json:"error,omitempty"`
}

// Result summarizes a bulk save. Success means the session update and
// summary write went through; individual item failures are reported per
// item and do not abort the rest.
type Result struct {
	Success              bool          `json:"success"`
	SessionID            string        `json:"session_id"`
	SummarySaved         bool          `json:"summary_saved"`
	TasksSaved           int           `json:"tasks_saved"`
	PathwaysSaved        int           `json:"pathways_saved"`
	RecommendationsSaved int           `json:"recommendations_saved"`
	ExercisesSaved       int           `json:"exercises_saved"`
	Items                []ItemOutcome `json:"items"`
}

// Save runs the full flow: verify the session and its owner, attach the
// analysis to the session, store the summary, then fan out each
// suggestion. Ownership failures write nothing.
func (s *Saver) Save(ctx context.Context, userID, sessionID string, a Analysis) (Result, error) {
	session, err := s.w.GetJournalSession(ctx, sessionID)
	if errors.Is(err, store.ErrNotFound) {
		return Result{}, ErrSessionNotFound
	}
	if err != nil {
		return Result{}, fmt.Errorf("loading session: %w", err)
	}
	if session.UserID != userID {
		s.log.Warn("bulk save rejected for foreign session",
			zap.String("session_id", sessionID), zap.String("user_id", userID))
		return Result{}, ErrNotSessionOwner
	}

	raw, err := json.Marshal(a)
	if err != nil {
		return Result{}, fmt.Errorf("encoding analysis: %w", err)
	}
	if err := s.w.CompleteJournalAnalysis(ctx, sessionID, string(raw)); err != nil {
		return Result{}, fmt.Errorf("attaching analysis: %w", err)
	}

	res := Result{Success: true, SessionID: sessionID, Items: []ItemOutcome{}}

	if _, err := s.w.AddWellnessSummary(ctx, userID, store.WellnessSummary{
		Summary:     a.Summary,
		Emotions:    a.Emotions,
		FocusAreas:  a.FocusAreas,
		Tags:        a.Tags,
		StressLevel: a.StressLevel,
		Source:      "voice_journaling",
	}); err != nil {
		s.log.Warn("summary write failed", zap.Error(err))
		res.Items = append(res.Items, ItemOutcome{Kind: "summary", Name: "summary", Error: err.Error()})
	} else {
		res.SummarySaved = true
		res.Items = append(res.Items, ItemOutcome{Kind: "summary", Name: "summary", Saved: true})
	}

	dueBase := time.Now()
	for _, t := range a.Tasks {
		id, err := s.w.AddRecommendedTask(ctx, store.RecommendedTask{
			UserID:      userID,
			Title:       t.Title,
			Description: t.Description,
			Quadrant:    QuadrantForPriority(t.Priority),
			Status:      store.SuggestionStatusTODO,
			DueDate:     DueDate(dueBase, t.SuggestedDueDays),
			FromSession: sessionID,
		})
		res.Items = append(res.Items, outcome("task", t.Title, id, err))
		if err == nil {
			res.TasksSaved++
		} else {
			s.log.Warn("task suggestion write failed", zap.String("title", t.Title), zap.Error(err))
		}
	}

	for _, p := range a.Pathways {
		id, err := s.w.AddPathway(ctx, store.Pathway{
			UserID:       userID,
			Name:         p.Name,
			PathwayType:  p.PathwayType,
			Description:  p.Description,
			DurationDays: p.DurationDays,
			Status:       store.SuggestionStatusSuggested,
			FromSession:  sessionID,
		})
		res.Items = append(res.Items, outcome("pathway", p.Name, id, err))
		if err == nil {
			res.PathwaysSaved++
		} else {
			s.log.Warn("pathway write failed", zap.String("name", p.Name), zap.Error(err))
		}
	}

	for _, r := range a.Recommendations {
		id, err := s.w.AddRecommendation(ctx, store.Recommendation{
			UserID:      userID,
			Title:       r.Title,
			Description: r.Description,
			Category:    r.Category,
			FromSession: sessionID,
		})
		res.Items = append(res.Items, outcome("recommendation", r.Title, id, err))
		if err == nil {
			res.RecommendationsSaved++
		} else {
			s.log.Warn("recommendation write failed", zap.String("title", r.Title), zap.Error(err))
		}
	}

	for _, e := range a.Exercises {
		id, err := s.w.AddExercise(ctx, store.Exercise{
			UserID:       userID,
			Name:         e.Name,
			Instructions: e.Instructions,
			Duration:     e.Duration,
			BestFor:      e.BestFor,
			FromSession:  sessionID,
		})
		res.Items = append(res.Items, outcome("exercise", e.Name, id, err))
		if err == nil {
			res.ExercisesSaved++
		} else {
			s.log.Warn("exercise write failed", zap.String("name", e.Name), zap.Error(err))
		}
	}

	return res, nil
}

func outcome(kind, name, id string, err error) ItemOutcome {
	o := ItemOutcome{Kind: kind, Name: name}
	if err != nil {
		o.Error = err.Error()
		return o
	}
	o.ID = id
	o.Saved = true
	return o
}

// QuadrantForPriority maps the agent's priority vocabulary onto
// Eisenhower quadrants. Unknown values land in important-not-urgent.
func QuadrantForPriority(priority string) string {
	switch priority {
	case "urgent_important":
		return store.QuadrantHUHI
	case "important_not_urgent":
		return store.QuadrantHULI
	case "urgent_not_important":
		return store.QuadrantLUHI
	case "not_urgent_not_important", "neither_urgent_nor_important":
		return store.QuadrantLULI
	}
	return store.QuadrantHULI
}

// DueDate computes the suggested due date. Non-positive day counts use
// the one-week default.
func DueDate(from time.Time, days int) string {
	if days <= 0 {
		days = 7
	}
	return from.AddDate(0, 0, days).Format("2006-01-02")
}
