package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/stemarcade/internal/session"
)

// RecordProgress stores a completed-session summary. A summary whose
// session ID is already stored is ignored.
func (s *Store) RecordProgress(ctx context.Context, sum session.ProgressSummary) error {
	return s.insert(ctx, "progress summary", `INSERT OR IGNORE INTO progress_summaries (
		sequence, session_id, game, player, final_score, questions_answered,
		questions_total, correct_answers, best_streak, completion_ratio,
		elapsed_secs, expired, timestamp
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sum.SessionID, sum.Game, sum.Player, sum.FinalScore, sum.QuestionsAnswered,
		sum.QuestionsTotal, sum.CorrectAnswers, sum.BestStreak, sum.CompletionRatio,
		sum.ElapsedSeconds, boolInt(sum.Expired), toMillis(sum.Timestamp),
	)
}

// QuerySummaries returns stored summaries, newest first.
func (s *Store) QuerySummaries(ctx context.Context, opts QueryOpts) ([]SummaryRecord, error) {
	var where []string
	var args []any
	if opts.Game != "" {
		where = append(where, "game = ?")
		args = append(args, opts.Game)
	}
	if !opts.From.IsZero() {
		where = append(where, "timestamp >= ?")
		args = append(args, opts.From.UnixMilli())
	}
	if !opts.To.IsZero() {
		where = append(where, "timestamp <= ?")
		args = append(args, opts.To.UnixMilli())
	}

	query := `SELECT sequence, session_id, game, player, final_score, questions_answered,
		questions_total, correct_answers, best_streak, completion_ratio,
		elapsed_secs, expired, timestamp
		FROM progress_summaries`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY sequence DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query summaries: %w", err)
	}
	defer rows.Close()

	var records []SummaryRecord
	for rows.Next() {
		var r SummaryRecord
		var expired int
		var ts int64
		if err := rows.Scan(&r.Sequence, &r.SessionID, &r.Game, &r.Player, &r.FinalScore,
			&r.QuestionsAnswered, &r.QuestionsTotal, &r.CorrectAnswers, &r.BestStreak,
			&r.CompletionRatio, &r.ElapsedSeconds, &expired, &ts); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		r.Expired = expired != 0
		r.Timestamp = time.UnixMilli(ts)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query summaries: %w", err)
	}
	return records, nil
}

// Totals aggregates stored summaries per game, ordered by game name.
func (s *Store) Totals(ctx context.Context) ([]GameTotals, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT game, COUNT(*), SUM(final_score),
		MAX(final_score), AVG(completion_ratio)
		FROM progress_summaries GROUP BY game ORDER BY game`)
	if err != nil {
		return nil, fmt.Errorf("query totals: %w", err)
	}
	defer rows.Close()

	var totals []GameTotals
	for rows.Next() {
		var g GameTotals
		if err := rows.Scan(&g.Game, &g.Sessions, &g.TotalScore, &g.BestScore, &g.AvgCompletion); err != nil {
			return nil, fmt.Errorf("scan totals: %w", err)
		}
		totals = append(totals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query totals: %w", err)
	}
	return totals, nil
}
