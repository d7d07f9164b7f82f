package store

// ─── Tasks ───────────────────────────────────────────────────────────────────

// Task quadrant tags. High/low urgency crossed with high/low importance,
// matching the wire format the frontend matrix uses.
const (
	QuadrantHUHI = "HUHI" // urgent and important
	QuadrantHULI = "HULI" // important, not urgent
	QuadrantLUHI = "LUHI" // urgent, not important
	QuadrantLULI = "LULI" // neither
)

// Task statuses.
const (
	StatusCreated    = "created"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Task is one Eisenhower-matrix entry owned by a single user.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Quadrant    string `json:"quadrant"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ValidQuadrant reports whether q is one of the four quadrant tags.
func ValidQuadrant(q string) bool {
	switch q {
	case QuadrantHUHI, QuadrantHULI, QuadrantLUHI, QuadrantLULI:
		return true
	}
	return false
}

// ─── Daily entries ───────────────────────────────────────────────────────────

// Mood tags for daily entries.
const (
	MoodRelaxed     = "RELAXED"
	MoodBalanced    = "BALANCED"
	MoodFocused     = "FOCUSED"
	MoodIntense     = "INTENSE"
	MoodOverwhelmed = "OVERWHELMED"
	MoodBurntOut    = "BURNT_OUT"
)

// ValidMood reports whether m is one of the fixed mood tags.
func ValidMood(m string) bool {
	switch m {
	case MoodRelaxed, MoodBalanced, MoodFocused, MoodIntense, MoodOverwhelmed, MoodBurntOut:
		return true
	}
	return false
}

// WellnessPayload is optional agent-sourced context attached to a daily entry.
type WellnessPayload struct {
	Emotions    []string `json:"emotions,omitempty"`
	FocusAreas  []string `json:"focus_areas,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	StressLevel string   `json:"stress_level,omitempty"`
	Source      string   `json:"source,omitempty"`
}

// DailyEntry is a per-day mood log. At most one per (user, year, month, day).
type DailyEntry struct {
	Day      int              `json:"day"`
	Month    int              `json:"month"`
	Year     int              `json:"year"`
	Mood     string           `json:"emoji"`
	Summary  string           `json:"summary"`
	Wellness *WellnessPayload `json:"wellness_data,omitempty"`
}

// ─── Pomodoro ────────────────────────────────────────────────────────────────

// PomodoroSession is one completed or abandoned focus session. Append-only.
type PomodoroSession struct {
	ID            int64  `json:"id"`
	WorkDuration  int    `json:"work_duration"`
	BreakDuration int    `json:"break_duration"`
	PresetID      int    `json:"preset_id"`
	Completed     bool   `json:"completed"`
	Timestamp     string `json:"timestamp"`
	Year          int    `json:"year"`
	Month         int    `json:"month"`
	Day           int    `json:"day"`
}

// ─── Wearables ───────────────────────────────────────────────────────────────

// Device is a registered wearable, unique per (user, device_id).
type Device struct {
	ID         string  `json:"id"`
	DeviceID   string  `json:"device_id"`
	DeviceType string  `json:"device_type"`
	DeviceName string  `json:"device_name"`
	IsActive   bool    `json:"is_active"`
	CreatedAt  string  `json:"created_at"`
	LastSync   *string `json:"last_sync,omitempty"`
}

// ReadingMetrics holds one day of wearable metrics, grouped the way the
// analysis layer consumes them.
type ReadingMetrics struct {
	Sleep struct {
		DurationHours float64 `json:"duration_hours"`
		Efficiency    float64 `json:"efficiency"`
		DeepHours     float64 `json:"deep_sleep_hours"`
		RemHours      float64 `json:"rem_sleep_hours"`
		LightHours    float64 `json:"light_sleep_hours"`
		Score         int     `json:"sleep_score"`
		Bedtime       string  `json:"bedtime,omitempty"`
		WakeTime      string  `json:"wake_time,omitempty"`
	} `json:"sleep"`
	Heart struct {
		Avg      int     `json:"avg_heart_rate"`
		Resting  int     `json:"resting_heart_rate"`
		Max      int     `json:"max_heart_rate"`
		HRVRMSSD float64 `json:"hrv_rmssd"`
		HRVZ     float64 `json:"hrv_z_score"`
	} `json:"heart_rate"`
	Activity struct {
		Steps          int     `json:"steps"`
		CaloriesBurned int     `json:"calories_burned"`
		ActiveMinutes  int     `json:"active_minutes"`
		DistanceKM     float64 `json:"distance_km"`
		FloorsClimbed  int     `json:"floors_climbed"`
	} `json:"activity"`
	Stress struct {
		Score         float64 `json:"stress_score"`
		Events        int     `json:"stress_events"`
		RecoveryScore int     `json:"recovery_score"`
		EnergyLevel   string  `json:"energy_level"`
	} `json:"stress_recovery"`
	Environment struct {
		Temperature float64 `json:"ambient_temperature"`
		Humidity    float64 `json:"humidity"`
		NoiseLevel  float64 `json:"noise_level"`
		LightLevel  string  `json:"light_level"`
	} `json:"environment"`
	BreathingRate float64 `json:"breathing_rate"`
	BloodOxygen   float64 `json:"blood_oxygen"`
}

// Reading is a day of metrics from one device. Upsert by (user, device, date).
type Reading struct {
	DeviceID  string         `json:"device_id"`
	Date      string         `json:"data_date"`
	Metrics   ReadingMetrics `json:"metrics"`
	CreatedAt string         `json:"created_at"`
	UpdatedAt string         `json:"updated_at"`
}

// Insight is a stored AI analysis of one day's reading.
type Insight struct {
	ID                  int64   `json:"id"`
	InsightDate         string  `json:"insight_date"`
	AnalysisType        string  `json:"analysis_type"`
	RecoveryScore       int     `json:"overall_recovery_score"`
	SleepDebtHours      float64 `json:"sleep_debt_hours"`
	StressLevel         string  `json:"stress_level"`
	FocusRecommendation string  `json:"focus_recommendation"`
	FocusMinutes        int     `json:"recommended_focus_duration"`
	BreakMinutes        int     `json:"recommended_break_duration"`
	Confidence          float64 `json:"confidence_score"`
	Payload             string  `json:"ai_insights,omitempty"`
	CreatedAt           string  `json:"created_at"`
}

// ─── Wellness records ────────────────────────────────────────────────────────

// WellnessSummary is an append-only agent conversation summary.
type WellnessSummary struct {
	ID          int64    `json:"id"`
	Summary     string   `json:"summary"`
	Emotions    []string `json:"emotions"`
	FocusAreas  []string `json:"focus_areas"`
	Tags        []string `json:"tags"`
	StressLevel string   `json:"stress_level"`
	Source      string   `json:"source"`
	CreatedAt   string   `json:"created_at"`
}

// Suggestion statuses. Suggested/recommended records are not yet part of the
// user's primary task list; the accept transition belongs to the frontend.
const (
	SuggestionStatusTODO      = "TODO"
	SuggestionStatusSuggested = "SUGGESTED"
)

// RecommendedTask is an agent suggestion shown in the stats area.
type RecommendedTask struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Title       string `json:"task_title"`
	Description string `json:"task_description"`
	Quadrant    string `json:"quadrant"`
	Status      string `json:"status"`
	DueDate     string `json:"due_date"`
	FromSession string `json:"from_agent_session,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// Pathway is a wellness pathway suggestion the user can register for.
type Pathway struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	Name         string `json:"pathway_name"`
	PathwayType  string `json:"pathway_type"`
	Description  string `json:"description"`
	DurationDays int    `json:"duration_days"`
	Status       string `json:"status"`
	Progress     int    `json:"progress_percentage"`
	FromSession  string `json:"from_agent_session,omitempty"`
	CreatedAt    string `json:"created_at"`
}

// Recommendation is a single actionable insight for the AI stats area.
type Recommendation struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	FromSession string `json:"from_agent_session,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// Exercise is a wellness exercise suggestion.
type Exercise struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	Instructions string `json:"instructions"`
	Duration     string `json:"duration"`
	BestFor      string `json:"best_for,omitempty"`
	FromSession  string `json:"from_agent_session,omitempty"`
	CreatedAt    string `json:"created_at"`
}

// ─── Journal sessions ────────────────────────────────────────────────────────

// JournalSession is a voice-journal session created by the backend. The
// orchestrator only attaches analysis to it; it never creates one.
type JournalSession struct {
	ID                string `json:"id"`
	UserID            string `json:"user_id"`
	Mode              string `json:"mode"`
	Analysis          string `json:"analysis_data,omitempty"`
	AnalysisCompleted bool   `json:"analysis_completed"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

// ─── Users ───────────────────────────────────────────────────────────────────

// User is a directory record for username/password login. The password hash
// is bcrypt and never leaves this package's callers.
type User struct {
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}
