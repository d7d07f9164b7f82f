package analysis

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"

	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/store"
)

// MockMetrics generates one plausible day of wearable metrics. The
// generator is seeded from the user and date so repeated calls for the
// same day return the same numbers, which keeps demo dashboards stable.
func MockMetrics(userID, date string) store.ReadingMetrics {
	h := fnv.New64a()
	h.Write([]byte(userID + "|" + date))
	rng := rand.New(rand.NewPCG(h.Sum64(), 0x5a4a7))

	var m store.ReadingMetrics

	m.Sleep.DurationHours = round1(5.5 + rng.Float64()*3.5)
	m.Sleep.Efficiency = round1(75 + rng.Float64()*20)
	m.Sleep.DeepHours = round1(m.Sleep.DurationHours * (0.15 + rng.Float64()*0.1))
	m.Sleep.RemHours = round1(m.Sleep.DurationHours * (0.2 + rng.Float64()*0.05))
	m.Sleep.LightHours = round1(m.Sleep.DurationHours - m.Sleep.DeepHours - m.Sleep.RemHours)
	m.Sleep.Score = 55 + rng.IntN(41)
	m.Sleep.Bedtime = fmt.Sprintf("%02d:%02d", 22+rng.IntN(3), rng.IntN(60))
	m.Sleep.WakeTime = fmt.Sprintf("%02d:%02d", 6+rng.IntN(3), rng.IntN(60))

	m.Heart.Resting = 52 + rng.IntN(20)
	m.Heart.Avg = m.Heart.Resting + 10 + rng.IntN(15)
	m.Heart.Max = m.Heart.Avg + 50 + rng.IntN(40)
	m.Heart.HRVRMSSD = round1(20 + rng.Float64()*40)
	m.Heart.HRVZ = round1(-1.5 + rng.Float64()*3)

	m.Activity.Steps = 3000 + rng.IntN(10000)
	m.Activity.CaloriesBurned = 1600 + rng.IntN(1200)
	m.Activity.ActiveMinutes = 15 + rng.IntN(90)
	m.Activity.DistanceKM = round1(float64(m.Activity.Steps) * 0.00075)
	m.Activity.FloorsClimbed = rng.IntN(20)

	m.Stress.Score = round1(rng.Float64()) // 0..1
	m.Stress.Events = rng.IntN(6)
	m.Stress.RecoveryScore = 40 + rng.IntN(55)
	m.Stress.EnergyLevel = []string{"low", "moderate", "high"}[rng.IntN(3)]

	m.Environment.Temperature = round1(19 + rng.Float64()*6)
	m.Environment.Humidity = round1(35 + rng.Float64()*30)
	m.Environment.NoiseLevel = round1(30 + rng.Float64()*30)
	m.Environment.LightLevel = []string{"dim", "moderate", "bright"}[rng.IntN(3)]

	m.BreathingRate = round1(12 + rng.Float64()*6)
	m.BloodOxygen = round1(95 + rng.Float64()*4)

	return m
}
