package store

import (
	"context"
	"fmt"

	"github.com/abhisek/stemarcade/internal/rewards"
)

// RecordCelebration stores a notable celebration.
func (s *Store) RecordCelebration(ctx context.Context, c rewards.Celebration) error {
	return s.insert(ctx, "celebration event", `INSERT INTO celebration_events (
		sequence, session_id, kind, rarity, reason, timestamp
	) VALUES (?, ?, ?, ?, ?, ?)`,
		c.SessionID, string(c.Kind), string(c.Rarity), c.Reason, toMillis(c.At),
	)
}

// CelebrationCounts returns the number of stored celebrations per kind and
// in total.
func (s *Store) CelebrationCounts(ctx context.Context) (map[string]int, int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM celebration_events GROUP BY kind`)
	if err != nil {
		return nil, 0, fmt.Errorf("query celebration counts: %w", err)
	}
	defer rows.Close()

	byKind := make(map[string]int)
	total := 0
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, 0, fmt.Errorf("scan celebration counts: %w", err)
		}
		byKind[kind] = n
		total += n
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("query celebration counts: %w", err)
	}
	return byKind, total, nil
}
