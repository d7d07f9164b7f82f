package analysis

import (
	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/store"
)

// Recovery is the derived readiness assessment for one day of metrics.
type Recovery struct {
	Score          int      `json:"recovery_score"`
	Level          string   `json:"recovery_level"`
	SleepDebtHours float64  `json:"sleep_debt_hours"`
	StressLevel    string   `json:"stress_level"`
	FocusMinutes   int      `json:"recommended_focus_duration"`
	BreakMinutes   int      `json:"recommended_break_duration"`
	Recommendation string   `json:"recommendation"`
	Factors        []string `json:"factors"`
}

// RecoveryScore scores readiness from wearable metrics. The baseline is
// 50; sleep quality, heart rate variability, stress and activity each
// shift it, and the result is clamped to 0..100.
func RecoveryScore(m store.ReadingMetrics) Recovery {
	score := 50.0
	factors := []string{}

	score += (float64(m.Sleep.Score) - 50) * 0.3
	if m.Sleep.Score < 60 {
		factors = append(factors, "poor sleep quality")
	}

	switch {
	case m.Heart.HRVRMSSD > 35:
		score += 15
	case m.Heart.HRVRMSSD > 25:
		score += 5
	default:
		factors = append(factors, "low heart rate variability")
	}

	// Stress score is stored on a 0..1 scale.
	score -= m.Stress.Score * 30
	if m.Stress.Score > 0.6 {
		factors = append(factors, "elevated stress")
	}

	switch {
	case m.Activity.ActiveMinutes > 60:
		score += 10
	case m.Activity.ActiveMinutes > 30:
		score += 5
	default:
		factors = append(factors, "low activity")
	}

	final := int(clamp(score, 0, 100))

	r := Recovery{
		Score:          final,
		SleepDebtHours: round1(clamp(8.0-m.Sleep.DurationHours, 0, 8)),
		StressLevel:    stressLabel(m.Stress.Score),
		Factors:        factors,
	}

	switch {
	case final >= 80:
		r.Level = "excellent"
		r.FocusMinutes, r.BreakMinutes = 50, 10
		r.Recommendation = "Fully recovered. Take on deep work and longer focus blocks today."
	case final >= 60:
		r.Level = "good"
		r.FocusMinutes, r.BreakMinutes = 40, 10
		r.Recommendation = "Good recovery. Standard focus sessions with regular breaks."
	case final >= 40:
		r.Level = "fair"
		r.FocusMinutes, r.BreakMinutes = 25, 10
		r.Recommendation = "Partial recovery. Keep sessions short and prioritize the most important task."
	default:
		r.Level = "poor"
		r.FocusMinutes, r.BreakMinutes = 15, 15
		r.Recommendation = "Low recovery. Favor light tasks, hydrate, and plan an early night."
	}
	return r
}

func stressLabel(score float64) string {
	switch {
	case score > 0.7:
		return "high"
	case score > 0.4:
		return "moderate"
	default:
		return "low"
	}
}

// WearableInsights are rule-based observations over recent readings,
// used when the generative-model client is unavailable.
func WearableInsights(readings []store.Reading) []string {
	insights := []string{}
	if len(readings) == 0 {
		return insights
	}

	var sleepSum, stressSum, stepsSum float64
	for _, r := range readings {
		sleepSum += r.Metrics.Sleep.DurationHours
		stressSum += r.Metrics.Stress.Score
		stepsSum += float64(r.Metrics.Activity.Steps)
	}
	n := float64(len(readings))

	if avg := sleepSum / n; avg < 6.5 {
		insights = append(insights,
			"Average sleep is under 6.5 hours. Sleep debt is likely limiting your focus capacity.")
	} else if avg >= 7.5 {
		insights = append(insights,
			"Sleep duration is consistently solid, a strong base for demanding work.")
	}
	if stressSum/n > 0.6 {
		insights = append(insights,
			"Stress has stayed elevated across recent days. Build in deliberate wind-down time.")
	}
	if stepsSum/n < 5000 {
		insights = append(insights,
			"Daily movement is low. Short walks between focus sessions improve both metrics.")
	}
	return insights
}
