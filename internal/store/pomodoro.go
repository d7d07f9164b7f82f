package store

import (
	"context"
	"fmt"
	"time"
)

// AddPomodoroSession appends one session. The timestamp defaults to now,
// and the calendar fields are derived from it when unset.
func (s *Store) AddPomodoroSession(ctx context.Context, userID string, p PomodoroSession) (int64, error) {
	if p.Timestamp == "" {
		p.Timestamp = now()
	}
	if p.Year == 0 {
		t, err := time.Parse(time.RFC3339, p.Timestamp)
		if err != nil {
			return 0, fmt.Errorf("parsing session timestamp: %w", err)
		}
		p.Year, p.Month, p.Day = t.Year(), int(t.Month()), t.Day()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO pomodoro_sessions (user_id, work_duration, break_duration, preset_id, completed, timestamp, year, month, day)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, p.WorkDuration, p.BreakDuration, p.PresetID, p.Completed, p.Timestamp, p.Year, p.Month, p.Day)
	if err != nil {
		return 0, fmt.Errorf("inserting pomodoro session: %w", err)
	}
	return res.LastInsertId()
}

// MonthlyPomodoroSessions returns the month's sessions in chronological order.
func (s *Store) MonthlyPomodoroSessions(ctx context.Context, userID string, year, month int) ([]PomodoroSession, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, work_duration, break_duration, preset_id, completed, timestamp, year, month, day
		FROM pomodoro_sessions
		WHERE user_id = ? AND year = ? AND month = ?
		ORDER BY timestamp`, userID, year, month)
	if err != nil {
		return nil, fmt.Errorf("listing pomodoro sessions: %w", err)
	}
	defer rows.Close()

	sessions := []PomodoroSession{}
	for rows.Next() {
		var p PomodoroSession
		if err := rows.Scan(&p.ID, &p.WorkDuration, &p.BreakDuration, &p.PresetID,
			&p.Completed, &p.Timestamp, &p.Year, &p.Month, &p.Day); err != nil {
			return nil, fmt.Errorf("scanning pomodoro session: %w", err)
		}
		sessions = append(sessions, p)
	}
	return sessions, rows.Err()
}
