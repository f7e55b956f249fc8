package quota

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-swim/internal/swim"
)

// TrackerConfig configures a Tracker.
type TrackerConfig struct {
	UserID string

	// IncrementTimeout bounds each background increment.
	IncrementTimeout time.Duration

	// EligibilityTTL is how long an eligibility answer is reused.
	EligibilityTTL time.Duration

	Logger *log.Logger
	Now    func() time.Time
}

// DefaultTrackerConfig returns a config with sensible defaults for userID.
func DefaultTrackerConfig(userID string) TrackerConfig {
	return TrackerConfig{
		UserID:           userID,
		IncrementTimeout: 10 * time.Second,
		EligibilityTTL:   time.Minute,
	}
}

// Tracker is the engine's view of the daily quota. It is safe for use from
// multiple goroutines. Status never blocks on the network; Consume updates
// the local count immediately and sends the increment in the background.
type Tracker struct {
	gw     Gateway
	cfg    TrackerConfig
	logger *log.Logger
	now    func() time.Time
	elig   *Cache[bool]

	mu       sync.Mutex
	date     string
	loaded   bool
	eligible bool
	count    int

	inflight sync.WaitGroup
}

var _ swim.Allowance = (*Tracker)(nil)

// NewTracker creates a tracker in the loading state. Call Refresh to load it.
func NewTracker(gw Gateway, cfg TrackerConfig) *Tracker {
	if cfg.IncrementTimeout <= 0 {
		cfg.IncrementTimeout = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Tracker{
		gw:     gw,
		cfg:    cfg,
		logger: logger.WithPrefix("quota"),
		now:    now,
		elig:   NewCache[bool](cfg.EligibilityTTL),
		date:   DateKey(now()),
	}
}

// Date returns the calendar day the tracker currently counts against.
func (t *Tracker) Date() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.date
}

// Refresh loads today's count and eligibility. If the count cannot be read
// the tracker stays loading and the error is returned. An eligibility
// failure is treated as not eligible.
func (t *Tracker) Refresh(ctx context.Context) error {
	date := DateKey(t.now())

	t.mu.Lock()
	if date != t.date {
		t.date = date
		t.loaded = false
		t.count = 0
	}
	t.mu.Unlock()

	count, err := t.gw.DailyPlayCount(ctx, t.cfg.UserID, date)
	if err != nil {
		t.logger.Warn("could not load play count", "user", t.cfg.UserID, "date", date, "error", err)
		return err
	}

	eligible := t.eligibility(ctx, date)

	t.mu.Lock()
	defer t.mu.Unlock()
	if date != t.date {
		// The day rolled over while we were fetching
		return nil
	}
	// Local increments may not have reached the backend yet
	t.count = max(count, t.count)
	t.eligible = eligible
	t.loaded = true
	return nil
}

func (t *Tracker) eligibility(ctx context.Context, date string) bool {
	key := t.cfg.UserID + "|" + date
	if v, ok := t.elig.Get(key); ok {
		return v
	}
	eligible, err := t.gw.EligibleToday(ctx, t.cfg.UserID, date)
	if err != nil {
		t.logger.Warn("could not load eligibility", "user", t.cfg.UserID, "date", date, "error", err)
		return false
	}
	t.elig.Set(key, eligible)
	return eligible
}

// InvalidateEligibility forces the next Refresh to ask the gateway again.
func (t *Tracker) InvalidateEligibility() {
	t.elig.Invalidate(t.cfg.UserID + "|" + t.Date())
}

// RolledOver reports whether the local calendar day has changed since the
// tracker last loaded. The caller is expected to Refresh when it has.
func (t *Tracker) RolledOver() bool {
	return DateKey(t.now()) != t.Date()
}

// Status implements swim.Allowance.
func (t *Tracker) Status() swim.Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return swim.Status{
		Loading:   !t.loaded,
		Eligible:  t.eligible,
		PlayCount: t.count,
	}
}

// Consume implements swim.Allowance. The local count goes up at once; the
// backend increment runs in its own goroutine and failures are only logged.
func (t *Tracker) Consume() {
	t.mu.Lock()
	t.count++
	date := t.date
	t.mu.Unlock()

	t.inflight.Add(1)
	go func() {
		defer t.inflight.Done()

		ctx, cancel := context.WithTimeout(context.Background(), t.cfg.IncrementTimeout)
		defer cancel()

		remote, err := t.gw.IncrementDailyPlayCount(ctx, t.cfg.UserID, date)
		if err != nil {
			t.logger.Error("could not record play", "user", t.cfg.UserID, "date", date, "error", err)
			return
		}

		t.mu.Lock()
		if t.date == date && remote > t.count {
			t.count = remote
		}
		t.mu.Unlock()
		t.logger.Debug("play recorded", "user", t.cfg.UserID, "date", date, "count", remote)
	}()
}

// Wait blocks until every background increment has finished.
func (t *Tracker) Wait() {
	t.inflight.Wait()
}
