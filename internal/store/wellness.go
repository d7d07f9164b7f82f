package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// AddWellnessSummary appends one agent conversation summary.
func (s *Store) AddWellnessSummary(ctx context.Context, userID string, w WellnessSummary) (int64, error) {
	emotions, _ := json.Marshal(orEmpty(w.Emotions))
	focus, _ := json.Marshal(orEmpty(w.FocusAreas))
	tags, _ := json.Marshal(orEmpty(w.Tags))

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO wellness_summaries (user_id, summary, emotions, focus_areas, tags, stress_level, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, w.Summary, string(emotions), string(focus), string(tags),
		w.StressLevel, w.Source, now())
	if err != nil {
		return 0, fmt.Errorf("inserting wellness summary: %w", err)
	}
	return res.LastInsertId()
}

// RecentWellnessSummaries returns up to limit summaries, newest first.
func (s *Store) RecentWellnessSummaries(ctx context.Context, userID string, limit int) ([]WellnessSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, summary, emotions, focus_areas, tags, stress_level, source, created_at
		FROM wellness_summaries
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing wellness summaries: %w", err)
	}
	defer rows.Close()

	summaries := []WellnessSummary{}
	for rows.Next() {
		var w WellnessSummary
		var emotions, focus, tags string
		if err := rows.Scan(&w.ID, &w.Summary, &emotions, &focus, &tags,
			&w.StressLevel, &w.Source, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning wellness summary: %w", err)
		}
		json.Unmarshal([]byte(emotions), &w.Emotions)
		json.Unmarshal([]byte(focus), &w.FocusAreas)
		json.Unmarshal([]byte(tags), &w.Tags)
		summaries = append(summaries, w)
	}
	return summaries, rows.Err()
}

// SaveAnalysisResult appends a named analysis payload for later review.
func (s *Store) SaveAnalysisResult(ctx context.Context, userID, analysisType, result string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO analysis_results (user_id, analysis_type, result, created_at)
		VALUES (?, ?, ?, ?)`, userID, analysisType, result, now())
	if err != nil {
		return 0, fmt.Errorf("inserting analysis result: %w", err)
	}
	return res.LastInsertId()
}

// ─── Agent suggestions ───────────────────────────────────────────────────────

// AddRecommendedTask stores an agent-suggested task outside the primary
// task list.
func (s *Store) AddRecommendedTask(ctx context.Context, t RecommendedTask) (string, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = SuggestionStatusTODO
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO recommended_tasks (id, user_id, title, description, quadrant, status, due_date, from_session, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Title, t.Description, t.Quadrant, t.Status, t.DueDate, t.FromSession, now())
	if err != nil {
		return "", fmt.Errorf("inserting recommended task: %w", err)
	}
	return t.ID, nil
}

// AddPathway stores a wellness pathway suggestion.
func (s *Store) AddPathway(ctx context.Context, p Pathway) (string, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = SuggestionStatusSuggested
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO wellness_pathways (id, user_id, name, pathway_type, description, duration_days, status, progress, from_session, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.Name, p.PathwayType, p.Description, p.DurationDays, p.Status, p.Progress, p.FromSession, now())
	if err != nil {
		return "", fmt.Errorf("inserting pathway: %w", err)
	}
	return p.ID, nil
}

// AddRecommendation stores an actionable insight recommendation.
func (s *Store) AddRecommendation(ctx context.Context, r Recommendation) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO recommendations (id, user_id, title, description, category, from_session, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.UserID, r.Title, r.Description, r.Category, r.FromSession, now())
	if err != nil {
		return "", fmt.Errorf("inserting recommendation: %w", err)
	}
	return r.ID, nil
}

// AddExercise stores a wellness exercise suggestion.
func (s *Store) AddExercise(ctx context.Context, e Exercise) (string, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO exercises (id, user_id, name, instructions, duration, best_for, from_session, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Name, e.Instructions, e.Duration, e.BestFor, e.FromSession, now())
	if err != nil {
		return "", fmt.Errorf("inserting exercise: %w", err)
	}
	return e.ID, nil
}

// ─── Journal sessions ────────────────────────────────────────────────────────

// GetJournalSession returns the session by id, or ErrNotFound.
func (s *Store) GetJournalSession(ctx context.Context, sessionID string) (JournalSession, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, mode, analysis, analysis_completed, created_at, updated_at
		FROM journal_sessions WHERE id = ?`, sessionID)

	var js JournalSession
	err := row.Scan(&js.ID, &js.UserID, &js.Mode, &js.Analysis,
		&js.AnalysisCompleted, &js.CreatedAt, &js.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return JournalSession{}, ErrNotFound
	}
	if err != nil {
		return JournalSession{}, fmt.Errorf("scanning journal session: %w", err)
	}
	return js, nil
}

// CreateJournalSession records a new session. Normally the backend does
// this before the agent runs; it is exposed for tests and local setups.
func (s *Store) CreateJournalSession(ctx context.Context, userID, mode string) (string, error) {
	id := uuid.NewString()
	ts := now()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO journal_sessions (id, user_id, mode, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`, id, userID, mode, ts, ts)
	if err != nil {
		return "", fmt.Errorf("inserting journal session: %w", err)
	}
	return id, nil
}

// CompleteJournalAnalysis attaches the analysis payload to a session and
// marks it completed.
func (s *Store) CompleteJournalAnalysis(ctx context.Context, sessionID, analysis string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE journal_sessions
		SET analysis = ?, analysis_completed = 1, updated_at = ?
		WHERE id = ?`, analysis, now(), sessionID)
	if err != nil {
		return fmt.Errorf("updating journal session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func orEmpty(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
