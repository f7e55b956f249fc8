package storage

import (
	"context"
	"errors"
	"fmt"
)

// ActivityKind is a wellness activity that counts toward play eligibility.
type ActivityKind string

const (
	ActivityJournal   ActivityKind = "journal"
	ActivityBreathing ActivityKind = "breathing"
)

// ErrUnknownActivity is returned by MarkActivity for unsupported kinds.
var ErrUnknownActivity = errors.New("storage: unknown activity kind")

// ParseActivity converts a name into an ActivityKind.
func ParseActivity(name string) (ActivityKind, error) {
	switch ActivityKind(name) {
	case ActivityJournal, ActivityBreathing:
		return ActivityKind(name), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownActivity, name)
}

// DailyPlayCount returns how many counted sessions the user has finished on date.
func (s *Store) DailyPlayCount(ctx context.Context, userID, date string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(play_count), 0) FROM daily_plays WHERE user_id = ? AND play_date = ?",
		userID, date,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query play count: %w", err)
	}
	return count, nil
}

// IncrementDailyPlayCount adds one play for the user on date and returns the new count.
func (s *Store) IncrementDailyPlayCount(ctx context.Context, userID, date string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO daily_plays (user_id, play_date, play_count)
		 VALUES (?, ?, 1)
		 ON CONFLICT(user_id, play_date)
		 DO UPDATE SET play_count = play_count + 1, updated_at = CURRENT_TIMESTAMP
		 RETURNING play_count`,
		userID, date,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot increment play count: %w", err)
	}
	return count, nil
}

// MarkActivity records a completed activity for the user on date.
func (s *Store) MarkActivity(ctx context.Context, userID, date string, kind ActivityKind) error {
	if _, err := ParseActivity(string(kind)); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO activities (user_id, activity_date, kind) VALUES (?, ?, ?)",
		userID, date, string(kind),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record activity: %w", err)
	}
	return nil
}

// Activities returns the distinct activity kinds the user completed on date.
func (s *Store) Activities(ctx context.Context, userID, date string) ([]ActivityKind, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT kind FROM activities
		 WHERE user_id = ? AND activity_date = ?
		 ORDER BY kind`,
		userID, date,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query activities: %w", err)
	}
	defer rows.Close()

	var kinds []ActivityKind
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		kinds = append(kinds, ActivityKind(k))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return kinds, nil
}

// EligibleToday reports whether the user has both a journal entry and a
// breathing exercise recorded on date.
func (s *Store) EligibleToday(ctx context.Context, userID, date string) (bool, error) {
	kinds, err := s.Activities(ctx, userID, date)
	if err != nil {
		return false, err
	}
	var journal, breathing bool
	for _, k := range kinds {
		switch k {
		case ActivityJournal:
			journal = true
		case ActivityBreathing:
			breathing = true
		}
	}
	return journal && breathing, nil
}
