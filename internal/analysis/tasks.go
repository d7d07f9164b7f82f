// Package analysis computes deterministic statistics over stored data.
// Everything here is pure arithmetic on inputs the caller already
// fetched; nothing touches the database or the network.
package analysis

import (
	"math"

	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/store"
)

// round1 rounds to one decimal place, the precision all percentage
// fields are reported at.
func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

func clamp(f, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, f))
}

// QuadrantStats summarizes one Eisenhower quadrant.
type QuadrantStats struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	CompletionRate float64 `json:"completion_rate"`
}

// TaskDistribution is the full matrix breakdown.
type TaskDistribution struct {
	TotalTasks     int                      `json:"total_tasks"`
	CompletedTasks int                      `json:"completed_tasks"`
	CompletionRate float64                  `json:"completion_rate"`
	Quadrants      map[string]QuadrantStats `json:"quadrants"`
	Insights       []string                 `json:"insights"`
}

// CompletionRate is the percentage of tasks with completed status.
// Zero tasks yields zero, not NaN.
func CompletionRate(tasks []store.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Status == store.StatusCompleted {
			done++
		}
	}
	return round1(float64(done) / float64(len(tasks)) * 100)
}

// DistributeTasks breaks tasks down per quadrant and attaches rule-based
// observations about where effort is going.
func DistributeTasks(tasks []store.Task) TaskDistribution {
	quadrants := map[string]QuadrantStats{
		store.QuadrantHUHI: {},
		store.QuadrantHULI: {},
		store.QuadrantLUHI: {},
		store.QuadrantLULI: {},
	}

	completed := 0
	for _, t := range tasks {
		q := quadrants[t.Quadrant]
		q.Total++
		if t.Status == store.StatusCompleted {
			q.Completed++
			completed++
		}
		quadrants[t.Quadrant] = q
	}
	for name, q := range quadrants {
		if q.Total > 0 {
			q.CompletionRate = round1(float64(q.Completed) / float64(q.Total) * 100)
		}
		quadrants[name] = q
	}

	d := TaskDistribution{
		TotalTasks:     len(tasks),
		CompletedTasks: completed,
		CompletionRate: CompletionRate(tasks),
		Quadrants:      quadrants,
	}
	d.Insights = taskInsights(d)
	return d
}

func taskInsights(d TaskDistribution) []string {
	insights := []string{}
	if d.TotalTasks == 0 {
		return insights
	}

	huhi := d.Quadrants[store.QuadrantHUHI]
	if huhi.Total > 0 && huhi.CompletionRate < 70 {
		insights = append(insights,
			"Urgent and important tasks are slipping. Clear these before taking on new work.")
	}
	if huhiShare := float64(huhi.Total) / float64(d.TotalTasks) * 100; huhiShare > 50 {
		insights = append(insights,
			"Over half your tasks are urgent and important. Plan earlier to spend more time in the important-not-urgent quadrant.")
	}
	if luli := d.Quadrants[store.QuadrantLULI]; luli.Total > 0 &&
		float64(luli.Total)/float64(d.TotalTasks)*100 > 30 {
		insights = append(insights,
			"Many tasks are neither urgent nor important. Consider dropping or delegating them.")
	}
	if d.CompletionRate < 50 {
		insights = append(insights,
			"Overall completion is below half. Try fewer, smaller tasks per day.")
	}
	return insights
}
