package analysis

import (
	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/store"
)

// Favorable and unfavorable mood groupings for the wellness score.
var (
	positiveMoods = map[string]bool{
		store.MoodRelaxed:  true,
		store.MoodBalanced: true,
		store.MoodFocused:  true,
	}
	negativeMoods = map[string]bool{
		store.MoodIntense:     true,
		store.MoodOverwhelmed: true,
		store.MoodBurntOut:    true,
	}
)

// EmotionDistribution returns, per mood tag, the percentage of entries
// carrying it. Tags with no entries are included at zero so charts stay
// stable month to month.
func EmotionDistribution(entries []store.DailyEntry) map[string]float64 {
	dist := map[string]float64{
		store.MoodRelaxed:     0,
		store.MoodBalanced:    0,
		store.MoodFocused:     0,
		store.MoodIntense:     0,
		store.MoodOverwhelmed: 0,
		store.MoodBurntOut:    0,
	}
	if len(entries) == 0 {
		return dist
	}
	for _, e := range entries {
		dist[e.Mood]++
	}
	for mood, count := range dist {
		dist[mood] = round1(count / float64(len(entries)) * 100)
	}
	return dist
}

// DominantMood returns the most frequent mood tag, or "" with no entries.
// Ties break toward the tag seen first in the month.
func DominantMood(entries []store.DailyEntry) string {
	counts := map[string]int{}
	dominant, best := "", 0
	for _, e := range entries {
		counts[e.Mood]++
		if counts[e.Mood] > best {
			dominant, best = e.Mood, counts[e.Mood]
		}
	}
	return dominant
}

// WellnessScore combines mood balance with task completion into a 0..100
// score. The baseline is 50; positive moods pull up, negative moods pull
// down harder per point, and completion contributes around its own
// midpoint of 50%.
func WellnessScore(entries []store.DailyEntry, completionRate float64) float64 {
	dist := EmotionDistribution(entries)

	var positive, negative float64
	for mood, pct := range dist {
		if positiveMoods[mood] {
			positive += pct
		}
		if negativeMoods[mood] {
			negative += pct
		}
	}

	score := 50 + positive*0.5 - negative*0.3 + (completionRate-50)*0.2
	return round1(clamp(score, 0, 100))
}

// MonthlyOverview is the stats payload for one calendar month.
type MonthlyOverview struct {
	Year               int                `json:"year"`
	Month              int                `json:"month"`
	DaysTracked        int                `json:"days_tracked"`
	EmotionBreakdown   map[string]float64 `json:"emotion_breakdown"`
	DominantMood       string             `json:"dominant_mood"`
	TotalTasks         int                `json:"total_tasks"`
	CompletedTasks     int                `json:"completed_tasks"`
	TaskCompletionRate float64            `json:"task_completion_rate"`
	WellnessScore      float64            `json:"wellness_score"`
	Insights           []string           `json:"insights"`
}

// Overview assembles the monthly stats from daily entries and the task list.
func Overview(year, month int, entries []store.DailyEntry, tasks []store.Task) MonthlyOverview {
	rate := CompletionRate(tasks)
	completed := 0
	for _, t := range tasks {
		if t.Status == store.StatusCompleted {
			completed++
		}
	}

	o := MonthlyOverview{
		Year:               year,
		Month:              month,
		DaysTracked:        len(entries),
		EmotionBreakdown:   EmotionDistribution(entries),
		DominantMood:       DominantMood(entries),
		TotalTasks:         len(tasks),
		CompletedTasks:     completed,
		TaskCompletionRate: rate,
		WellnessScore:      WellnessScore(entries, rate),
	}
	o.Insights = moodInsights(o)
	return o
}

func moodInsights(o MonthlyOverview) []string {
	insights := []string{}
	if o.EmotionBreakdown[store.MoodOverwhelmed] > 30 {
		insights = append(insights,
			"You felt overwhelmed on many days this month. Consider reducing your workload or adding recovery breaks.")
	}
	if o.EmotionBreakdown[store.MoodFocused] > 40 {
		insights = append(insights,
			"Strong focus this month. Whatever routine you are running, keep it.")
	}
	if o.EmotionBreakdown[store.MoodBurntOut] > 20 {
		insights = append(insights,
			"Burnout days are piling up. Schedule real time off before it compounds.")
	}
	if o.TotalTasks > 0 && o.TaskCompletionRate < 50 {
		insights = append(insights,
			"Less than half of your tasks got done. Smaller daily goals may help.")
	}
	return insights
}
