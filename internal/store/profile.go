package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SaveProfile upserts a student profile document, stored as JSON.
func (s *Store) SaveProfile(ctx context.Context, studentID string, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (student_id, data, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT (student_id) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at`,
		studentID, string(data),
	)
	if err != nil {
		return fmt.Errorf("save profile %s: %w", studentID, err)
	}
	return nil
}

// LoadProfile returns the stored profile document, or (nil, false, nil)
// when the student has none yet.
func (s *Store) LoadProfile(ctx context.Context, studentID string) ([]byte, bool, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM profiles WHERE student_id = ?`, studentID,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load profile %s: %w", studentID, err)
	}
	return []byte(data), true, nil
}

// ResetProfile deletes a student's profile document.
func (s *Store) ResetProfile(ctx context.Context, studentID string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM profiles WHERE student_id = ?`, studentID); err != nil {
		return fmt.Errorf("reset profile %s: %w", studentID, err)
	}
	return nil
}
