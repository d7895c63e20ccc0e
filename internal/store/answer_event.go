package store

import (
	"context"
	"fmt"

	"github.com/abhisek/stemarcade/internal/session"
)

// RecordAnswer appends a graded answer to the analytics log.
func (s *Store) RecordAnswer(ctx context.Context, rec session.AnswerRecord) error {
	return s.insert(ctx, "answer event", `INSERT INTO answer_events (
		sequence, session_id, game, question_index, kind, difficulty,
		question_text, correct_answer, selected, correct, points, streak, timestamp
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.Game, rec.QuestionIndex, string(rec.Kind), string(rec.Difficulty),
		rec.QuestionText, rec.CorrectAnswer, rec.Selected, boolInt(rec.Correct),
		rec.Points, rec.Streak, toMillis(rec.Timestamp),
	)
}

// AccuracyByKind aggregates every recorded answer by question kind.
func (s *Store) AccuracyByKind(ctx context.Context) ([]KindAccuracy, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, COUNT(*), SUM(correct) FROM answer_events GROUP BY kind ORDER BY kind`)
	if err != nil {
		return nil, fmt.Errorf("query kind accuracy: %w", err)
	}
	defer rows.Close()

	var out []KindAccuracy
	for rows.Next() {
		var k KindAccuracy
		if err := rows.Scan(&k.Kind, &k.Answered, &k.Correct); err != nil {
			return nil, fmt.Errorf("scan kind accuracy: %w", err)
		}
		out = append(out, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query kind accuracy: %w", err)
	}
	return out, nil
}
