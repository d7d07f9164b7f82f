package wellness

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/store"
)

// stubWriter records every write and can be told to fail specific ones.
type stubWriter struct {
	session      store.JournalSession
	sessionErr   error
	failTask     string // task title that should fail to save
	failSummary  bool
	completedID  string
	analysis     string
	tasks        []store.RecommendedTask
	pathways     []store.Pathway
	recs         []store.Recommendation
	exercises    []store.Exercise
	summaryCount int
}

func (w *stubWriter) GetJournalSession(_ context.Context, id string) (store.JournalSession, error) {
	if w.sessionErr != nil {
		return store.JournalSession{}, w.sessionErr
	}
	return w.session, nil
}

func (w *stubWriter) CompleteJournalAnalysis(_ context.Context, id, analysis string) error {
	w.completedID = id
	w.analysis = analysis
	return nil
}

func (w *stubWriter) AddWellnessSummary(_ context.Context, _ string, _ store.WellnessSummary) (int64, error) {
	if w.failSummary {
		return 0, errors.New("summary table unavailable")
	}
	w.summaryCount++
	return 1, nil
}

func (w *stubWriter) AddRecommendedTask(_ context.Context, t store.RecommendedTask) (string, error) {
	if t.Title == w.failTask {
		return "", errors.New("write refused")
	}
	w.tasks = append(w.tasks, t)
	return fmt.Sprintf("task-%d", len(w.tasks)), nil
}

func (w *stubWriter) AddPathway(_ context.Context, p store.Pathway) (string, error) {
	w.pathways = append(w.pathways, p)
	return fmt.Sprintf("pathway-%d", len(w.pathways)), nil
}

func (w *stubWriter) AddRecommendation(_ context.Context, r store.Recommendation) (string, error) {
	w.recs = append(w.recs, r)
	return fmt.Sprintf("rec-%d", len(w.recs)), nil
}

func (w *stubWriter) AddExercise(_ context.Context, e store.Exercise) (string, error) {
	w.exercises = append(w.exercises, e)
	return fmt.Sprintf("ex-%d", len(w.exercises)), nil
}

func testAnalysis() Analysis {
	return Analysis{
		Mode:           "wellness",
		SafetyApproved: true,
		SafetyScore:    0.92,
		Summary:        "stressful sprint, sleep slipping",
		Emotions:       []string{"anxious"},
		StressLevel:    "high",
		Tasks: []SuggestedTask{
			{Title: "block a rest day", Priority: "urgent_important", SuggestedDueDays: 2},
			{Title: "review workload", Priority: "important_not_urgent"},
			{Title: "tidy inbox", Priority: "not_urgent_not_important", SuggestedDueDays: 14},
		},
		Pathways:        []SuggestedPathway{{Name: "sleep reset", DurationDays: 14}},
		Recommendations: []SuggestedRecommendation{{Title: "wind down earlier"}},
		Exercises:       []SuggestedExercise{{Name: "box breathing", Duration: "5 minutes"}},
	}
}

func TestSaveHappyPath(t *testing.T) {
	w := &stubWriter{session: store.JournalSession{ID: "sess-1", UserID: "user-1"}}
	s := NewSaver(w, zap.NewNop())

	res, err := s.Save(context.Background(), "user-1", "sess-1", testAnalysis())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !res.Success || !res.SummarySaved {
		t.Fatalf("got %+v", res)
	}
	if res.TasksSaved != 3 || res.PathwaysSaved != 1 || res.RecommendationsSaved != 1 || res.ExercisesSaved != 1 {
		t.Fatalf("counts wrong: %+v", res)
	}
	if w.completedID != "sess-1" || w.analysis == "" {
		t.Fatal("analysis not attached to the session")
	}

	// The session record keeps the mode and the safety verdict.
	var attached Analysis
	if err := json.Unmarshal([]byte(w.analysis), &attached); err != nil {
		t.Fatalf("attached analysis is not valid JSON: %v", err)
	}
	if attached.Mode != "wellness" || !attached.SafetyApproved || attached.SafetyScore != 0.92 {
		t.Fatalf("provenance lost: mode=%q approved=%v score=%v",
			attached.Mode, attached.SafetyApproved, attached.SafetyScore)
	}

	// Priorities map onto quadrants, unknown values default to HULI.
	if w.tasks[0].Quadrant != store.QuadrantHUHI {
		t.Fatalf("urgent_important: got %s", w.tasks[0].Quadrant)
	}
	if w.tasks[2].Quadrant != store.QuadrantLULI {
		t.Fatalf("not_urgent_not_important: got %s", w.tasks[2].Quadrant)
	}

	// summary + 3 tasks + 1 pathway + 1 rec + 1 exercise
	if len(res.Items) != 7 {
		t.Fatalf("got %d item outcomes, want 7", len(res.Items))
	}
}

func TestSaveRejectsForeignSession(t *testing.T) {
	w := &stubWriter{session: store.JournalSession{ID: "sess-1", UserID: "someone-else"}}
	s := NewSaver(w, zap.NewNop())

	_, err := s.Save(context.Background(), "user-1", "sess-1", testAnalysis())
	if !errors.Is(err, ErrNotSessionOwner) {
		t.Fatalf("got %v, want ErrNotSessionOwner", err)
	}
	// Ownership failures must not write anything.
	if w.completedID != "" || w.summaryCount != 0 || len(w.tasks) != 0 {
		t.Fatalf("writes happened despite rejection: %+v", w)
	}
}

func TestSaveMissingSession(t *testing.T) {
	w := &stubWriter{sessionErr: store.ErrNotFound}
	s := NewSaver(w, zap.NewNop())

	_, err := s.Save(context.Background(), "user-1", "nope", testAnalysis())
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("got %v, want ErrSessionNotFound", err)
	}
}

func TestSaveContinuesPastItemFailures(t *testing.T) {
	w := &stubWriter{
		session:  store.JournalSession{ID: "sess-1", UserID: "user-1"},
		failTask: "review workload", // second of three tasks
	}
	s := NewSaver(w, zap.NewNop())

	res, err := s.Save(context.Background(), "user-1", "sess-1", testAnalysis())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !res.Success {
		t.Fatal("one failed item must not fail the save")
	}
	if res.TasksSaved != 2 {
		t.Fatalf("tasks saved: got %d, want 2", res.TasksSaved)
	}
	if res.PathwaysSaved != 1 || res.ExercisesSaved != 1 {
		t.Fatalf("later items skipped: %+v", res)
	}

	var failed *ItemOutcome
	for i := range res.Items {
		if res.Items[i].Name == "review workload" {
			failed = &res.Items[i]
		}
	}
	if failed == nil || failed.Saved || failed.Error == "" {
		t.Fatalf("failed item not reported: %+v", failed)
	}
}

func TestSaveReportsSummaryFailure(t *testing.T) {
	w := &stubWriter{
		session:     store.JournalSession{ID: "sess-1", UserID: "user-1"},
		failSummary: true,
	}
	s := NewSaver(w, zap.NewNop())

	res, err := s.Save(context.Background(), "user-1", "sess-1", testAnalysis())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if res.SummarySaved {
		t.Fatal("summary write failed but was reported saved")
	}
	if res.TasksSaved != 3 {
		t.Fatal("summary failure must not block the fan-out")
	}
}

func TestQuadrantForPriority(t *testing.T) {
	cases := map[string]string{
		"urgent_important":         store.QuadrantHUHI,
		"important_not_urgent":     store.QuadrantHULI,
		"urgent_not_important":     store.QuadrantLUHI,
		"not_urgent_not_important":     store.QuadrantLULI,
		"neither_urgent_nor_important": store.QuadrantLULI,
		"":                             store.QuadrantHULI,
		"whatever":                     store.QuadrantHULI,
	}
	for in, want := range cases {
		if got := QuadrantForPriority(in); got != want {
			t.Errorf("%q: got %s, want %s", in, got, want)
		}
	}
}

func TestDueDate(t *testing.T) {
	from := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	if got := DueDate(from, 3); got != "2026-08-26" {
		t.Fatalf("got %s", got)
	}
	// Zero and negative day counts fall back to one week out.
	if got := DueDate(from, 0); got != "2026-08-30" {
		t.Fatalf("default: got %s", got)
	}
	if !strings.HasPrefix(DueDate(from, -5), "2026-08-30") {
		t.Fatal("negative days must use the default")
	}
}
