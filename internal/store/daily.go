package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// UpsertDailyEntry writes the entry for its (year, month, day), replacing
// any existing one. A day has at most one mood record.
func (s *Store) UpsertDailyEntry(ctx context.Context, userID string, e DailyEntry) error {
	var wellness sql.NullString
	if e.Wellness != nil {
		raw, err := json.Marshal(e.Wellness)
		if err != nil {
			return fmt.Errorf("encoding wellness data: %w", err)
		}
		wellness = sql.NullString{String: string(raw), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO daily_entries (user_id, year, month, day, mood, summary, wellness_data, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, year, month, day) DO UPDATE SET
			mood = excluded.mood,
			summary = excluded.summary,
			wellness_data = excluded.wellness_data,
			updated_at = excluded.updated_at`,
		userID, e.Year, e.Month, e.Day, e.Mood, e.Summary, wellness, now())
	if err != nil {
		return fmt.Errorf("saving daily entry: %w", err)
	}
	return nil
}

// MonthlyEntries returns all daily entries for the given month, ordered by day.
func (s *Store) MonthlyEntries(ctx context.Context, userID string, year, month int) ([]DailyEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT day, month, year, mood, summary, wellness_data
		FROM daily_entries
		WHERE user_id = ? AND year = ? AND month = ?
		ORDER BY day`, userID, year, month)
	if err != nil {
		return nil, fmt.Errorf("listing daily entries: %w", err)
	}
	defer rows.Close()

	entries := []DailyEntry{}
	for rows.Next() {
		var e DailyEntry
		var wellness sql.NullString
		if err := rows.Scan(&e.Day, &e.Month, &e.Year, &e.Mood, &e.Summary, &wellness); err != nil {
			return nil, fmt.Errorf("scanning daily entry: %w", err)
		}
		if wellness.Valid && wellness.String != "" {
			var w WellnessPayload
			if err := json.Unmarshal([]byte(wellness.String), &w); err == nil {
				e.Wellness = &w
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
