// Package redisstore publishes session results to Redis: a capped list of
// recent summaries and a best-score leaderboard per game.
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/abhisek/stemarcade/internal/session"
)

const (
	// DefaultKeepRecent caps the recent-summaries list.
	DefaultKeepRecent = 100

	// AllGames is the leaderboard that ranks every game together.
	AllGames = "all"

	keyPrefix = "stemarcade:"
)

// Entry is one leaderboard row.
type Entry struct {
	Player string
	Score  int
}

// Store implements session.ProgressStore on top of a Redis client.
//
// Keys:
//
//	stemarcade:progress              list of JSON summaries, newest last
//	stemarcade:leaderboard:{game}    sorted set player -> best score
type Store struct {
	client     *redis.Client
	keepRecent int64
}

// Option configures a Store.
type Option func(*Store)

// WithKeepRecent overrides DefaultKeepRecent.
func WithKeepRecent(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.keepRecent = int64(n)
		}
	}
}

// New wraps client. The caller owns the client and closes it.
func New(client *redis.Client, opts ...Option) *Store {
	s := &Store{client: client, keepRecent: DefaultKeepRecent}
	for _, o := range opts {
		o(s)
	}
	return s
}

// RecordProgress appends the summary to the recent list and raises the
// player's best score on the game and overall leaderboards.
func (s *Store) RecordProgress(ctx context.Context, sum session.ProgressSummary) error {
	data, err := json.Marshal(sum)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}

	member := sum.Player
	if member == "" {
		member = "anonymous"
	}
	z := redis.Z{Score: float64(sum.FinalScore), Member: member}
	gt := redis.ZAddArgs{GT: true, Members: []redis.Z{z}}

	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, progressKey(), data)
	pipe.LTrim(ctx, progressKey(), -s.keepRecent, -1)
	if sum.Game != "" {
		pipe.ZAddArgs(ctx, leaderboardKey(sum.Game), gt)
	}
	pipe.ZAddArgs(ctx, leaderboardKey(AllGames), gt)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record progress in redis: %w", err)
	}
	return nil
}

// Recent returns up to n summaries, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]session.ProgressSummary, error) {
	if n <= 0 {
		return nil, nil
	}
	raw, err := s.client.LRange(ctx, progressKey(), -int64(n), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read recent summaries: %w", err)
	}
	out := make([]session.ProgressSummary, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		var sum session.ProgressSummary
		if err := json.Unmarshal([]byte(raw[i]), &sum); err != nil {
			return nil, fmt.Errorf("decode summary: %w", err)
		}
		out = append(out, sum)
	}
	return out, nil
}

// Top returns the n best players of a game, highest score first. Use
// AllGames for the overall board.
func (s *Store) Top(ctx context.Context, game string, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}
	zs, err := s.client.ZRevRangeWithScores(ctx, leaderboardKey(game), 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read leaderboard %s: %w", game, err)
	}
	out := make([]Entry, len(zs))
	for i, z := range zs {
		player, _ := z.Member.(string)
		out[i] = Entry{Player: player, Score: int(z.Score)}
	}
	return out, nil
}

// Reset deletes the recent list and every leaderboard.
func (s *Store) Reset(ctx context.Context) error {
	keys := []string{progressKey()}
	iter := s.client.Scan(ctx, 0, keyPrefix+"leaderboard:*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan leaderboards: %w", err)
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("reset redis: %w", err)
	}
	return nil
}

func progressKey() string {
	return keyPrefix + "progress"
}

func leaderboardKey(game string) string {
	return keyPrefix + "leaderboard:" + game
}
