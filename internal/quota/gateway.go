// Package quota tracks the daily play allowance and the same-day wellness
// prerequisite for the swim minigame.
//
// A Gateway is the backend (local SQLite or hosted Supabase). The Tracker
// sits in front of it, answers the engine synchronously from local state and
// pushes increments to the backend in the background.
package quota

import (
	"context"
	"time"
)

// DateLayout formats the calendar-day key sent to gateways.
const DateLayout = "2006-01-02"

// Gateway reads and writes per-user, per-day quota and eligibility.
// Dates are local calendar days in DateLayout.
type Gateway interface {
	DailyPlayCount(ctx context.Context, userID, date string) (int, error)
	IncrementDailyPlayCount(ctx context.Context, userID, date string) (int, error)
	EligibleToday(ctx context.Context, userID, date string) (bool, error)
}

// DateKey returns the local calendar day for t.
func DateKey(t time.Time) string {
	return t.Local().Format(DateLayout)
}
