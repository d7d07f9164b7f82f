package analysis

import (
	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/store"
)

// PomodoroAnalytics summarizes a month of focus sessions.
type PomodoroAnalytics struct {
	TotalSessions     int      `json:"total_sessions"`
	CompletedSessions int      `json:"completed_sessions"`
	CompletionRate    float64  `json:"completion_rate"`
	TotalFocusMinutes int      `json:"total_focus_minutes"`
	AvgWorkDuration   float64  `json:"avg_work_duration"`
	AvgBreakDuration  float64  `json:"avg_break_duration"`
	ActiveDays        int      `json:"active_days"`
	SessionsPerDay    float64  `json:"sessions_per_active_day"`
	Insights          []string `json:"insights"`
}

// AnalyzePomodoro computes session effectiveness for one month.
func AnalyzePomodoro(sessions []store.PomodoroSession) PomodoroAnalytics {
	a := PomodoroAnalytics{TotalSessions: len(sessions), Insights: []string{}}
	if len(sessions) == 0 {
		return a
	}

	var workSum, breakSum int
	days := map[int]bool{}
	for _, s := range sessions {
		workSum += s.WorkDuration
		breakSum += s.BreakDuration
		days[s.Day] = true
		if s.Completed {
			a.CompletedSessions++
			a.TotalFocusMinutes += s.WorkDuration
		}
	}

	a.CompletionRate = round1(float64(a.CompletedSessions) / float64(len(sessions)) * 100)
	a.AvgWorkDuration = round1(float64(workSum) / float64(len(sessions)))
	a.AvgBreakDuration = round1(float64(breakSum) / float64(len(sessions)))
	a.ActiveDays = len(days)
	a.SessionsPerDay = round1(float64(len(sessions)) / float64(len(days)))
	a.Insights = pomodoroInsights(a)
	return a
}

func pomodoroInsights(a PomodoroAnalytics) []string {
	insights := []string{}
	if a.CompletionRate < 60 {
		insights = append(insights,
			"Many sessions were abandoned. Try shorter work intervals until finishing feels easy.")
	}
	if a.AvgWorkDuration > 45 {
		insights = append(insights,
			"Long average work intervals. Consider 25 to 45 minute blocks with real breaks between.")
	}
	if a.SessionsPerDay >= 6 {
		insights = append(insights,
			"High session volume on active days. Watch for diminishing returns late in the day.")
	}
	if a.ActiveDays >= 20 {
		insights = append(insights,
			"Very consistent month. Consistency beats intensity; keep it up.")
	}
	return insights
}

// StudyPatterns correlates focus sessions with mood entries for the
// study-pattern analysis tool.
type StudyPatterns struct {
	Pomodoro         PomodoroAnalytics  `json:"pomodoro"`
	EmotionBreakdown map[string]float64 `json:"emotion_breakdown"`
	WellnessScore    float64            `json:"wellness_score"`
	Observations     []string           `json:"observations"`
}

// AnalyzeStudyPatterns joins session analytics with mood distribution.
func AnalyzeStudyPatterns(sessions []store.PomodoroSession, entries []store.DailyEntry, tasks []store.Task) StudyPatterns {
	rate := CompletionRate(tasks)
	p := StudyPatterns{
		Pomodoro:         AnalyzePomodoro(sessions),
		EmotionBreakdown: EmotionDistribution(entries),
		WellnessScore:    WellnessScore(entries, rate),
		Observations:     []string{},
	}

	if p.Pomodoro.TotalSessions > 0 && p.EmotionBreakdown[store.MoodOverwhelmed] > 30 {
		p.Observations = append(p.Observations,
			"Heavy session load alongside frequent overwhelm. More breaks between sessions may help.")
	}
	if p.Pomodoro.CompletionRate >= 80 && p.EmotionBreakdown[store.MoodFocused] > 40 {
		p.Observations = append(p.Observations,
			"High session completion lines up with focused days. Your current rhythm is working.")
	}
	if p.Pomodoro.TotalSessions == 0 {
		p.Observations = append(p.Observations,
			"No focus sessions recorded this month. Structured work blocks could raise task completion.")
	}
	return p
}
