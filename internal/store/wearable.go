package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrDeviceExists is returned when registering a device id the user
// already registered.
var ErrDeviceExists = errors.New("store: device already registered")

// RegisterDevice records a new wearable for the user.
func (s *Store) RegisterDevice(ctx context.Context, userID string, d Device) (Device, error) {
	d.ID = uuid.NewString()
	d.IsActive = true
	d.CreatedAt = now()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO wearable_devices (id, user_id, device_id, device_type, device_name, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, 1, ?)`,
		d.ID, userID, d.DeviceID, d.DeviceType, d.DeviceName, d.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return Device{}, ErrDeviceExists
		}
		return Device{}, fmt.Errorf("registering device: %w", err)
	}
	return d, nil
}

// ListDevices returns the user's active wearables.
func (s *Store) ListDevices(ctx context.Context, userID string) ([]Device, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, device_id, device_type, device_name, is_active, created_at, last_sync
		FROM wearable_devices WHERE user_id = ? AND is_active = 1
		ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}
	defer rows.Close()

	devices := []Device{}
	for rows.Next() {
		var d Device
		var lastSync sql.NullString
		if err := rows.Scan(&d.ID, &d.DeviceID, &d.DeviceType, &d.DeviceName,
			&d.IsActive, &d.CreatedAt, &lastSync); err != nil {
			return nil, fmt.Errorf("scanning device: %w", err)
		}
		if lastSync.Valid {
			d.LastSync = &lastSync.String
		}
		devices = append(devices, d)
	}
	return devices, rows.Err()
}

// UpsertReading stores one day of metrics for a device, replacing any
// earlier reading for that date, and bumps the device's last_sync.
func (s *Store) UpsertReading(ctx context.Context, userID string, r Reading) error {
	raw, err := json.Marshal(r.Metrics)
	if err != nil {
		return fmt.Errorf("encoding metrics: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	ts := now()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO wearable_readings (user_id, device_id, date, metrics, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, device_id, date) DO UPDATE SET
			metrics = excluded.metrics,
			updated_at = excluded.updated_at`,
		userID, r.DeviceID, r.Date, string(raw), ts, ts); err != nil {
		return fmt.Errorf("saving reading: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE wearable_devices SET last_sync = ?
		WHERE user_id = ? AND device_id = ?`, ts, userID, r.DeviceID); err != nil {
		return fmt.Errorf("updating last sync: %w", err)
	}

	return tx.Commit()
}

// ReadingByDate returns the reading for the given date from any of the
// user's devices, or ErrNotFound.
func (s *Store) ReadingByDate(ctx context.Context, userID, date string) (Reading, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT device_id, date, metrics, created_at, updated_at
		FROM wearable_readings
		WHERE user_id = ? AND date = ?
		ORDER BY updated_at DESC LIMIT 1`, userID, date)
	return scanReading(row)
}

// LatestReading returns the user's most recent reading, or ErrNotFound.
func (s *Store) LatestReading(ctx context.Context, userID string) (Reading, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT device_id, date, metrics, created_at, updated_at
		FROM wearable_readings
		WHERE user_id = ?
		ORDER BY date DESC, updated_at DESC LIMIT 1`, userID)
	return scanReading(row)
}

// RecentReadings returns up to limit readings, newest first.
func (s *Store) RecentReadings(ctx context.Context, userID string, limit int) ([]Reading, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT device_id, date, metrics, created_at, updated_at
		FROM wearable_readings
		WHERE user_id = ?
		ORDER BY date DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing readings: %w", err)
	}
	defer rows.Close()

	readings := []Reading{}
	for rows.Next() {
		var r Reading
		var raw string
		if err := rows.Scan(&r.DeviceID, &r.Date, &raw, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning reading: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &r.Metrics); err != nil {
			return nil, fmt.Errorf("decoding metrics: %w", err)
		}
		readings = append(readings, r)
	}
	return readings, rows.Err()
}

func scanReading(row *sql.Row) (Reading, error) {
	var r Reading
	var raw string
	err := row.Scan(&r.DeviceID, &r.Date, &raw, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Reading{}, ErrNotFound
	}
	if err != nil {
		return Reading{}, fmt.Errorf("scanning reading: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &r.Metrics); err != nil {
		return Reading{}, fmt.Errorf("decoding metrics: %w", err)
	}
	return r, nil
}

// SaveInsight stores an AI analysis for a date, replacing an earlier one
// of the same type.
func (s *Store) SaveInsight(ctx context.Context, userID string, in Insight) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO wearable_insights (user_id, insight_date, analysis_type, recovery_score,
			sleep_debt_hours, stress_level, focus_recommendation, focus_minutes,
			break_minutes, confidence, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, insight_date, analysis_type) DO UPDATE SET
			recovery_score = excluded.recovery_score,
			sleep_debt_hours = excluded.sleep_debt_hours,
			stress_level = excluded.stress_level,
			focus_recommendation = excluded.focus_recommendation,
			focus_minutes = excluded.focus_minutes,
			break_minutes = excluded.break_minutes,
			confidence = excluded.confidence,
			payload = excluded.payload,
			created_at = excluded.created_at`,
		userID, in.InsightDate, in.AnalysisType, in.RecoveryScore,
		in.SleepDebtHours, in.StressLevel, in.FocusRecommendation, in.FocusMinutes,
		in.BreakMinutes, in.Confidence, in.Payload, now())
	if err != nil {
		return fmt.Errorf("saving insight: %w", err)
	}
	return nil
}

// InsightByDate returns the stored insight for a date, or ErrNotFound.
func (s *Store) InsightByDate(ctx context.Context, userID, date string) (Insight, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, insight_date, analysis_type, recovery_score, sleep_debt_hours,
			stress_level, focus_recommendation, focus_minutes, break_minutes,
			confidence, payload, created_at
		FROM wearable_insights
		WHERE user_id = ? AND insight_date = ?
		ORDER BY created_at DESC LIMIT 1`, userID, date)

	var in Insight
	err := row.Scan(&in.ID, &in.InsightDate, &in.AnalysisType, &in.RecoveryScore,
		&in.SleepDebtHours, &in.StressLevel, &in.FocusRecommendation, &in.FocusMinutes,
		&in.BreakMinutes, &in.Confidence, &in.Payload, &in.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Insight{}, ErrNotFound
	}
	if err != nil {
		return Insight{}, fmt.Errorf("scanning insight: %w", err)
	}
	return in, nil
}
