// Package swim implements the reflex minigame: a fish that swims through
// tiered ocean environments, eating prey and dodging predators.
//
// The engine is single-threaded. The platform calls Tick at a fixed period
// and Jump/Start/Reset from the same goroutine. Spawns and the invincibility
// window run on an engine-owned clock, and every timer is tied to the
// session generation that scheduled it.
package swim

import (
	"errors"

	"github.com/vovakirdan/tui-swim/internal/config"
	"github.com/vovakirdan/tui-swim/internal/core"
)

// Errors returned by Start when a session may not begin.
var (
	ErrLoading        = errors.New("swim: play status is still loading")
	ErrNoPlaysLeft    = errors.New("swim: no plays left today")
	ErrNotEligible    = errors.New("swim: today's journal and breathing are not complete")
	ErrAlreadyRunning = errors.New("swim: a session is already running")
)

// Status is the quota and eligibility view the engine gates play on.
type Status struct {
	Loading   bool
	Eligible  bool
	PlayCount int
}

// Allowance supplies the daily quota. Consume is called exactly once per
// finished session that was started with Start. It must not block.
type Allowance interface {
	Status() Status
	Consume()
}

// EndReason says why a session ended.
type EndReason int

const (
	EndBreach    EndReason = iota // Fell past the bottom of the play area
	EndPredator                   // Touched a predator without a shield
	EndAbandoned                  // Reset while running (focus lost)
)

// String returns a human-readable name for the reason.
func (r EndReason) String() string {
	switch r {
	case EndBreach:
		return "breach"
	case EndPredator:
		return "predator"
	case EndAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Result describes a finished session.
type Result struct {
	PreyEaten        int
	EnvironmentIndex int
	Reason           EndReason
	Counted          bool // Consumed a daily play
}

// Frame is the read-only state handed to the presentation layer.
type Frame struct {
	Player           Player
	Obstacles        []Obstacle
	PreyEaten        int
	EnvironmentIndex int
	TierName         string
	PlaysLeft        int
	Mode             Mode
	Invincible       bool
	Started          bool
	Over             bool
}

// Engine owns one player's minigame: physics, spawning, collisions and
// the session lifecycle.
type Engine struct {
	cfg       config.SwimConfig
	runtime   core.RuntimeConfig
	allowance Allowance
	onEnd     func(Result)

	physics *Integrator
	spawner *Spawner
	timers  timerQueue

	now        int64 // engine clock in ms
	tickMs     int64
	generation uint64

	started      bool
	over         bool
	counting     bool
	playedBefore bool
	preyEaten    int
	tierIdx      int
	invincible   bool
	shieldUntil  int64
	collected    map[string]struct{}
	lastResult   Result
}

// New creates an engine for the given tuning, runtime and quota source.
// The config must have passed Validate.
func New(cfg config.SwimConfig, rt core.RuntimeConfig, allowance Allowance) *Engine {
	e := &Engine{
		cfg:       cfg,
		runtime:   rt,
		allowance: allowance,
		tickMs:    rt.TickPeriod().Milliseconds(),
		collected: make(map[string]struct{}),
	}
	if e.tickMs <= 0 {
		e.tickMs = 1
	}

	playH := e.playableHeight()
	e.physics = NewIntegrator(cfg.Physics.Gravity, cfg.Physics.JumpImpulse, playH-cfg.Player.Height)
	e.physics.Reset(e.startY())
	e.spawner = NewSpawner(rt.Seed, float64(rt.ScreenW), playH, cfg.Obstacles)
	return e
}

// SetResultHandler registers a callback invoked once per finished session.
// It runs on the engine goroutine and must not block.
func (e *Engine) SetResultHandler(fn func(Result)) {
	e.onEnd = fn
}

// playableHeight is the screen height minus the bottom chrome rows.
func (e *Engine) playableHeight() float64 {
	h := float64(e.runtime.ScreenH - e.cfg.Physics.BottomChrome)
	if h < e.cfg.Player.Height+1 {
		h = e.cfg.Player.Height + 1
	}
	return h
}

func (e *Engine) startY() float64 {
	return e.playableHeight() * e.cfg.Physics.StartHeight
}

// Resize updates the play area bounds without touching the session.
func (e *Engine) Resize(screenW, screenH int) {
	e.runtime.ScreenW = screenW
	e.runtime.ScreenH = screenH
	playH := e.playableHeight()
	e.physics.SetFloor(playH - e.cfg.Player.Height)
	e.spawner.UpdateScreenSize(float64(screenW), playH)
}

// Running reports whether a session is in progress.
func (e *Engine) Running() bool {
	return e.started && !e.over
}

// Start begins a quota-counting session.
func (e *Engine) Start() error {
	st := e.allowance.Status()
	switch {
	case st.Loading:
		return ErrLoading
	case e.cfg.Gameplay.DailyLimit-st.PlayCount <= 0:
		return ErrNoPlaysLeft
	case !st.Eligible:
		return ErrNotEligible
	case e.Running():
		return ErrAlreadyRunning
	}

	e.generation++
	e.timers.clear()
	e.spawner.Clear()
	e.physics.Reset(e.startY())
	e.preyEaten = 0
	e.tierIdx = 0
	e.invincible = false
	e.shieldUntil = 0
	e.collected = make(map[string]struct{})

	e.started = true
	e.over = false
	e.counting = true

	e.physics.Jump()
	e.scheduleSpawn(e.now)
	return nil
}

// Jump applies the upward impulse. It only has an effect while running.
func (e *Engine) Jump() bool {
	if !e.Running() {
		return false
	}
	e.physics.Jump()
	return true
}

// Reset returns to idle, as when the screen loses focus. A running session
// is ended first and still counts toward the quota.
func (e *Engine) Reset() {
	if e.Running() {
		e.end(EndAbandoned)
	}
	e.generation++
	e.timers.clear()
	e.spawner.Clear()
	e.physics.Reset(e.startY())
	e.started = false
	e.over = false
	e.invincible = false
	e.preyEaten = 0
	e.tierIdx = 0
}

// Tick advances the simulation by one fixed period: due timers fire, then
// physics, obstacle movement and collisions run in that order.
func (e *Engine) Tick() {
	e.now += e.tickMs
	if !e.Running() {
		return
	}

	e.fireTimers()

	if e.physics.Step() {
		e.end(EndBreach)
		return
	}

	e.spawner.Advance(e.now)
	e.resolveCollisions()
}

func (e *Engine) fireTimers() {
	for {
		t, ok := e.timers.popDue(e.now)
		if !ok {
			return
		}
		if t.gen != e.generation || !e.Running() {
			continue
		}
		switch t.kind {
		case timerSpawn:
			e.spawner.Spawn(t.at, e.generation, e.cfg.Tier(e.tierIdx))
			e.scheduleSpawn(t.at)
		case timerShieldExpiry:
			if e.now >= e.shieldUntil {
				e.invincible = false
			}
		}
	}
}

// scheduleSpawn queues the single pending spawn for the current session,
// counting the delay from base so the cadence does not drift with the tick.
func (e *Engine) scheduleSpawn(base int64) {
	delay := e.spawner.NextDelay(e.cfg.Tier(e.tierIdx))
	e.timers.schedule(base+delay, e.generation, timerSpawn)
}

func (e *Engine) playerBox() core.Box {
	p := e.physics.Player()
	return core.NewBox(e.cfg.Player.X, p.Y, e.cfg.Player.Width, e.cfg.Player.Height)
}

// resolveCollisions applies every fatal hit before any prey is scored.
func (e *Engine) resolveCollisions() {
	hits := DetectCollisions(e.playerBox(), e.spawner.Obstacles(), e.cfg.Obstacles.Height)

	if hits.Fatal() && !e.invincible {
		e.end(EndPredator)
		return
	}

	for _, id := range hits.Prey {
		if _, seen := e.collected[id]; seen {
			continue
		}
		e.collected[id] = struct{}{}
		e.spawner.Remove(id)
		e.eat()
	}
}

func (e *Engine) eat() {
	e.preyEaten++

	if idx := e.cfg.TierIndexFor(e.preyEaten); idx > e.tierIdx {
		e.tierIdx = idx
	}

	if e.cfg.GrantsInvincibility(e.preyEaten) {
		e.invincible = true
		e.shieldUntil = e.now + int64(e.cfg.Gameplay.InvincibilityMs)
		e.timers.schedule(e.shieldUntil, e.generation, timerShieldExpiry)
	}
}

// end terminates the running session. Timers and obstacles are dropped
// before the state flips to over, and the quota is consumed at most once.
func (e *Engine) end(reason EndReason) {
	e.generation++
	e.timers.clear()
	e.spawner.Clear()

	e.over = true
	e.invincible = false
	e.playedBefore = true

	counted := e.counting
	if e.counting {
		e.counting = false
		e.allowance.Consume()
	}

	e.lastResult = Result{
		PreyEaten:        e.preyEaten,
		EnvironmentIndex: e.tierIdx,
		Reason:           reason,
		Counted:          counted,
	}
	if e.onEnd != nil {
		e.onEnd(e.lastResult)
	}
}

// LastResult returns the result of the most recently finished session.
func (e *Engine) LastResult() Result {
	return e.lastResult
}

// overlayInputs gathers the overlay inputs from the engine and the allowance.
func (e *Engine) overlayInputs() OverlayInputs {
	st := e.allowance.Status()
	return OverlayInputs{
		Loading:         st.Loading,
		Eligible:        st.Eligible,
		PlayCount:       st.PlayCount,
		DailyLimit:      e.cfg.Gameplay.DailyLimit,
		Started:         e.started,
		Over:            e.over,
		HasPlayedBefore: e.playedBefore || st.PlayCount > 0,
	}
}

// Mode returns the overlay to display.
func (e *Engine) Mode() Mode {
	return SelectMode(e.overlayInputs())
}

// Snapshot returns a copy of everything the renderer needs.
func (e *Engine) Snapshot() Frame {
	in := e.overlayInputs()
	obstacles := make([]Obstacle, len(e.spawner.Obstacles()))
	copy(obstacles, e.spawner.Obstacles())

	return Frame{
		Player:           e.physics.Player(),
		Obstacles:        obstacles,
		PreyEaten:        e.preyEaten,
		EnvironmentIndex: e.tierIdx,
		TierName:         e.cfg.Tier(e.tierIdx).Name,
		PlaysLeft:        max(in.PlaysLeft(), 0),
		Mode:             SelectMode(in),
		Invincible:       e.invincible,
		Started:          e.started,
		Over:             e.over,
	}
}
