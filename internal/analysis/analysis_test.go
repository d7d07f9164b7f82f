package analysis

import (
	"testing"

	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/store"
)

func task(quadrant, status string) store.Task {
	return store.Task{Title: "t", Quadrant: quadrant, Status: status}
}

func entry(mood string) store.DailyEntry {
	return store.DailyEntry{Day: 1, Month: 1, Year: 2026, Mood: mood}
}

func TestCompletionRate(t *testing.T) {
	if got := CompletionRate(nil); got != 0 {
		t.Fatalf("empty list: got %v, want 0", got)
	}

	tasks := []store.Task{
		task(store.QuadrantHUHI, store.StatusCompleted),
		task(store.QuadrantHUHI, store.StatusCompleted),
		task(store.QuadrantHULI, store.StatusCreated),
		task(store.QuadrantLULI, store.StatusInProgress),
	}
	if got := CompletionRate(tasks); got != 50 {
		t.Fatalf("got %v, want 50", got)
	}
}

func TestDistributeTasks(t *testing.T) {
	tasks := []store.Task{
		task(store.QuadrantHUHI, store.StatusCompleted),
		task(store.QuadrantHUHI, store.StatusCreated),
		task(store.QuadrantHULI, store.StatusCompleted),
	}

	d := DistributeTasks(tasks)
	if d.TotalTasks != 3 || d.CompletedTasks != 2 {
		t.Fatalf("totals: got %d/%d, want 3/2", d.TotalTasks, d.CompletedTasks)
	}
	if got := d.Quadrants[store.QuadrantHUHI].CompletionRate; got != 50 {
		t.Fatalf("HUHI rate: got %v, want 50", got)
	}
	// All four quadrants must be present even when empty.
	if _, ok := d.Quadrants[store.QuadrantLUHI]; !ok {
		t.Fatal("missing empty quadrant LUHI")
	}
}

func TestDistributeTasksFlagsSlippingUrgentWork(t *testing.T) {
	tasks := []store.Task{
		task(store.QuadrantHUHI, store.StatusCreated),
		task(store.QuadrantHUHI, store.StatusCreated),
		task(store.QuadrantHUHI, store.StatusCompleted),
	}
	d := DistributeTasks(tasks)
	if len(d.Insights) == 0 {
		t.Fatal("expected insights about low HUHI completion")
	}
}

func TestEmotionDistribution(t *testing.T) {
	dist := EmotionDistribution(nil)
	if len(dist) != 6 {
		t.Fatalf("got %d moods, want all 6", len(dist))
	}
	for mood, pct := range dist {
		if pct != 0 {
			t.Fatalf("empty input: %s = %v, want 0", mood, pct)
		}
	}

	entries := []store.DailyEntry{
		entry(store.MoodFocused),
		entry(store.MoodFocused),
		entry(store.MoodOverwhelmed),
		entry(store.MoodBalanced),
	}
	dist = EmotionDistribution(entries)
	if dist[store.MoodFocused] != 50 {
		t.Fatalf("FOCUSED: got %v, want 50", dist[store.MoodFocused])
	}
	if dist[store.MoodOverwhelmed] != 25 {
		t.Fatalf("OVERWHELMED: got %v, want 25", dist[store.MoodOverwhelmed])
	}
}

func TestWellnessScore(t *testing.T) {
	// No entries and 50% completion sits exactly at the baseline.
	if got := WellnessScore(nil, 50); got != 50 {
		t.Fatalf("baseline: got %v, want 50", got)
	}

	// All positive days push the score up.
	positive := []store.DailyEntry{entry(store.MoodFocused), entry(store.MoodRelaxed)}
	if got := WellnessScore(positive, 50); got <= 50 {
		t.Fatalf("positive moods: got %v, want > 50", got)
	}

	// All negative days pull it down.
	negative := []store.DailyEntry{entry(store.MoodBurntOut), entry(store.MoodOverwhelmed)}
	if got := WellnessScore(negative, 50); got >= 50 {
		t.Fatalf("negative moods: got %v, want < 50", got)
	}

	// Clamped to the 0..100 range.
	if got := WellnessScore(positive, 100); got > 100 {
		t.Fatalf("got %v, want <= 100", got)
	}
}

func TestAnalyzePomodoro(t *testing.T) {
	if a := AnalyzePomodoro(nil); a.TotalSessions != 0 || a.CompletionRate != 0 {
		t.Fatalf("empty input: got %+v", a)
	}

	sessions := []store.PomodoroSession{
		{WorkDuration: 25, BreakDuration: 5, Completed: true, Day: 1},
		{WorkDuration: 25, BreakDuration: 5, Completed: true, Day: 1},
		{WorkDuration: 50, BreakDuration: 10, Completed: false, Day: 2},
	}
	a := AnalyzePomodoro(sessions)
	if a.TotalSessions != 3 || a.CompletedSessions != 2 {
		t.Fatalf("counts: got %d/%d, want 3/2", a.TotalSessions, a.CompletedSessions)
	}
	if a.TotalFocusMinutes != 50 {
		t.Fatalf("focus minutes: got %d, want 50 (abandoned sessions excluded)", a.TotalFocusMinutes)
	}
	if a.ActiveDays != 2 {
		t.Fatalf("active days: got %d, want 2", a.ActiveDays)
	}
}

func TestRecoveryScoreBands(t *testing.T) {
	var good store.ReadingMetrics
	good.Sleep.Score = 90
	good.Sleep.DurationHours = 8
	good.Heart.HRVRMSSD = 40
	good.Stress.Score = 0.1
	good.Activity.ActiveMinutes = 70

	r := RecoveryScore(good)
	if r.Score < 80 || r.Level != "excellent" {
		t.Fatalf("good metrics: got score %d level %q", r.Score, r.Level)
	}
	if r.FocusMinutes != 50 {
		t.Fatalf("focus rec: got %d, want 50", r.FocusMinutes)
	}

	var bad store.ReadingMetrics
	bad.Sleep.Score = 30
	bad.Sleep.DurationHours = 4
	bad.Heart.HRVRMSSD = 15
	bad.Stress.Score = 0.9
	bad.Activity.ActiveMinutes = 5

	r = RecoveryScore(bad)
	if r.Score >= 40 || r.Level != "poor" {
		t.Fatalf("bad metrics: got score %d level %q", r.Score, r.Level)
	}
	if r.SleepDebtHours != 4 {
		t.Fatalf("sleep debt: got %v, want 4", r.SleepDebtHours)
	}
	if len(r.Factors) == 0 {
		t.Fatal("bad metrics should name limiting factors")
	}
}

func TestRecoveryScoreClamped(t *testing.T) {
	var m store.ReadingMetrics
	m.Sleep.Score = 100
	m.Heart.HRVRMSSD = 60
	m.Activity.ActiveMinutes = 120

	if r := RecoveryScore(m); r.Score > 100 {
		t.Fatalf("got %d, want <= 100", r.Score)
	}
}

func TestMockMetricsDeterministic(t *testing.T) {
	a := MockMetrics("user-1", "2026-08-23")
	b := MockMetrics("user-1", "2026-08-23")
	if a != b {
		t.Fatal("same user and date must generate identical metrics")
	}

	c := MockMetrics("user-2", "2026-08-23")
	if a == c {
		t.Fatal("different users should not share metrics")
	}
}

func TestMockMetricsPlausible(t *testing.T) {
	m := MockMetrics("user-1", "2026-01-15")
	if m.Sleep.DurationHours < 5 || m.Sleep.DurationHours > 10 {
		t.Fatalf("sleep duration out of range: %v", m.Sleep.DurationHours)
	}
	if m.Stress.Score < 0 || m.Stress.Score > 1 {
		t.Fatalf("stress score out of range: %v", m.Stress.Score)
	}
	if m.BloodOxygen < 90 || m.BloodOxygen > 100 {
		t.Fatalf("blood oxygen out of range: %v", m.BloodOxygen)
	}
}

func TestOverviewInsights(t *testing.T) {
	entries := []store.DailyEntry{
		entry(store.MoodOverwhelmed),
		entry(store.MoodOverwhelmed),
		entry(store.MoodBalanced),
	}
	o := Overview(2026, 8, entries, nil)
	if o.DaysTracked != 3 {
		t.Fatalf("days tracked: got %d, want 3", o.DaysTracked)
	}
	if len(o.Insights) == 0 {
		t.Fatal("expected an insight about frequent overwhelm")
	}
}
