package store

import (
	"context"
	"fmt"
)

// AnswerEventData captures one evaluated answer.
type AnswerEventData struct {
	SessionID  string
	QuestionID int
	Skill      string
	Format     string
	Given      string
	Want       string
	Correct    bool
}

// AppendAnswer records an evaluated answer event.
func (s *Store) AppendAnswer(ctx context.Context, data AnswerEventData) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO answer_events
			(session_id, question_id, skill, format, given, want, correct)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		data.SessionID, data.QuestionID, data.Skill, data.Format,
		data.Given, data.Want, boolToInt(data.Correct),
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

// SkillAccuracy is attempt counts for one reading skill.
type SkillAccuracy struct {
	Skill    string
	Attempts int
	Correct  int
}

// SkillAccuracies aggregates answer events per skill, alphabetical.
func (s *Store) SkillAccuracies(ctx context.Context) ([]SkillAccuracy, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT skill, COUNT(*), SUM(correct)
		FROM answer_events
		GROUP BY skill
		ORDER BY skill`)
	if err != nil {
		return nil, fmt.Errorf("query skill accuracy: %w", err)
	}
	defer rows.Close()

	var out []SkillAccuracy
	for rows.Next() {
		var sa SkillAccuracy
		if err := rows.Scan(&sa.Skill, &sa.Attempts, &sa.Correct); err != nil {
			return nil, fmt.Errorf("scan skill accuracy: %w", err)
		}
		out = append(out, sa)
	}
	return out, rows.Err()
}
