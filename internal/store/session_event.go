package store

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/stemarcade/internal/session"
)

// RecordSessionEvent appends a session lifecycle event.
func (s *Store) RecordSessionEvent(ctx context.Context, ev session.SessionEvent) error {
	return s.insert(ctx, "session event", `INSERT INTO session_events (
		sequence, session_id, action, game, question_count, timestamp
	) VALUES (?, ?, ?, ?, ?, ?)`,
		ev.SessionID, ev.Action, ev.Game, ev.QuestionCount, toMillis(ev.Timestamp),
	)
}

// SessionEvents returns the lifecycle of one session in order.
func (s *Store) SessionEvents(ctx context.Context, sessionID string) ([]SessionEventRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT sequence, session_id, action, game, question_count, timestamp
		FROM session_events WHERE session_id = ? ORDER BY sequence`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var out []SessionEventRecord
	for rows.Next() {
		var r SessionEventRecord
		var ts int64
		if err := rows.Scan(&r.Sequence, &r.SessionID, &r.Action, &r.Game, &r.QuestionCount, &ts); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		r.Timestamp = time.UnixMilli(ts)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	return out, nil
}
