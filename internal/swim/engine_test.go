package swim

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-swim/internal/config"
	"github.com/vovakirdan/tui-swim/internal/core"
)

// fakeAllowance is an in-memory quota that counts Consume calls.
type fakeAllowance struct {
	status   Status
	consumed int
}

func (f *fakeAllowance) Status() Status { return f.status }

func (f *fakeAllowance) Consume() {
	f.consumed++
	f.status.PlayCount++
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: core.DefaultTickRate,
		Seed:     42,
	}
}

// quietConfig never spawns on its own so tests control every obstacle.
func quietConfig() config.SwimConfig {
	cfg := config.DefaultSwimConfig()
	cfg.Obstacles.SpawnJitterMs = 0
	for i := range cfg.Tiers {
		cfg.Tiers[i].SpawnIntervalMs = 1_000_000_000
	}
	return cfg
}

func newTestEngine(cfg config.SwimConfig, playCount int) (*Engine, *fakeAllowance) {
	a := &fakeAllowance{status: Status{Eligible: true, PlayCount: playCount}}
	return New(cfg, testRuntime(), a), a
}

// hold pins the player at y for the next tick.
func hold(e *Engine, y float64) {
	e.physics.player = Player{Y: y, Velocity: -e.cfg.Physics.Gravity}
}

// place puts a nearly stationary obstacle on top of the player's column.
func place(e *Engine, id string, kind Kind, y float64) {
	e.spawner.live = append(e.spawner.live, Obstacle{
		ID:        id,
		X:         e.cfg.Player.X,
		Y:         y,
		Kind:      kind,
		Width:     2,
		startX:    e.cfg.Player.X,
		spawnedAt: e.now,
		travelMs:  1 << 40,
		gen:       e.generation,
	})
}

// feed makes the player eat n fresh prey, one per tick.
func feed(t *testing.T, e *Engine, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		hold(e, 10)
		place(e, fmt.Sprintf("prey-%d-%d", e.generation, e.preyEaten), Prey, 10)
		e.Tick()
		if !e.Running() {
			t.Fatalf("session ended while feeding prey %d", i)
		}
	}
}

func TestStartRefusals(t *testing.T) {
	tests := []struct {
		name     string
		status   Status
		running  bool
		expected error
	}{
		{"loading", Status{Loading: true, Eligible: true}, false, ErrLoading},
		{"quota used", Status{Eligible: true, PlayCount: 3}, false, ErrNoPlaysLeft},
		{"quota before eligibility", Status{Eligible: false, PlayCount: 3}, false, ErrNoPlaysLeft},
		{"not eligible", Status{Eligible: false, PlayCount: 0}, false, ErrNotEligible},
		{"already running", Status{Eligible: true}, true, ErrAlreadyRunning},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := &fakeAllowance{status: tc.status}
			e := New(quietConfig(), testRuntime(), a)
			if tc.running {
				if err := e.Start(); err != nil {
					t.Fatalf("first Start() failed: %v", err)
				}
			}
			if err := e.Start(); !errors.Is(err, tc.expected) {
				t.Errorf("Start() = %v, expected %v", err, tc.expected)
			}
		})
	}
}

func TestStartAppliesJumpImpulse(t *testing.T) {
	e, _ := newTestEngine(quietConfig(), 0)
	if err := e.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	p := e.physics.Player()
	if p.Velocity != e.cfg.Physics.JumpImpulse {
		t.Errorf("velocity after Start = %f, expected jump impulse %f", p.Velocity, e.cfg.Physics.JumpImpulse)
	}
	if p.Y != e.startY() {
		t.Errorf("Y after Start = %f, expected %f", p.Y, e.startY())
	}
	if !e.Running() {
		t.Error("engine should be running")
	}
}

func TestJumpOnlyWhileRunning(t *testing.T) {
	e, _ := newTestEngine(quietConfig(), 0)

	if e.Jump() {
		t.Error("Jump() should have no effect while idle")
	}
	if e.physics.Player().Velocity != 0 {
		t.Error("idle jump must not change velocity")
	}

	if err := e.Start(); err != nil {
		t.Fatal(err)
	}
	e.physics.player.Velocity = 3
	if !e.Jump() {
		t.Error("Jump() should apply while running")
	}
	if e.physics.Player().Velocity != e.cfg.Physics.JumpImpulse {
		t.Errorf("velocity = %f, expected %f", e.physics.Player().Velocity, e.cfg.Physics.JumpImpulse)
	}
}

func TestTerminationConsumesQuotaOnce(t *testing.T) {
	e, a := newTestEngine(quietConfig(), 0)
	results := 0
	e.SetResultHandler(func(Result) { results++ })

	if err := e.Start(); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2000; i++ {
		e.Tick()
	}

	if e.Running() {
		t.Fatal("session should have ended by falling out of the play area")
	}
	if a.consumed != 1 {
		t.Errorf("Consume() called %d times, expected 1", a.consumed)
	}
	if results != 1 {
		t.Errorf("result handler called %d times, expected 1", results)
	}
	if e.LastResult().Reason != EndBreach {
		t.Errorf("reason = %v, expected breach", e.LastResult().Reason)
	}

	// A second termination path must not consume again
	e.Reset()
	if a.consumed != 1 {
		t.Errorf("Reset after game over consumed quota, count = %d", a.consumed)
	}
}

func TestAbandonedSessionCounts(t *testing.T) {
	e, a := newTestEngine(quietConfig(), 0)
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}
	e.Tick()

	e.Reset()

	if a.consumed != 1 {
		t.Errorf("abandoning a running session should consume once, got %d", a.consumed)
	}
	if e.Running() || e.started || e.over {
		t.Error("Reset should return the engine to idle")
	}
	if e.Mode() != ModeReadyToStart {
		t.Errorf("mode after reset = %v, expected ReadyToStart", e.Mode())
	}
}

func TestPreyCountedOncePerID(t *testing.T) {
	e, _ := newTestEngine(quietConfig(), 0)
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}

	hold(e, 10)
	place(e, "fish-1", Prey, 10)
	e.Tick()

	if e.preyEaten != 1 {
		t.Fatalf("preyEaten = %d, expected 1", e.preyEaten)
	}
	if e.spawner.Len() != 0 {
		t.Errorf("eaten prey should leave the live set, %d remain", e.spawner.Len())
	}

	// Same ID showing up again must not score
	for i := 0; i < 5; i++ {
		hold(e, 10)
		place(e, "fish-1", Prey, 10)
		e.Tick()
	}
	if e.preyEaten != 1 {
		t.Errorf("preyEaten = %d after repeated overlaps with the same ID, expected 1", e.preyEaten)
	}
}

func TestPredatorEndsSession(t *testing.T) {
	e, a := newTestEngine(quietConfig(), 0)
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}

	hold(e, 10)
	place(e, "shark", Predator, 10)
	e.Tick()

	if e.Running() {
		t.Fatal("predator overlap should end the session")
	}
	if e.LastResult().Reason != EndPredator {
		t.Errorf("reason = %v, expected predator", e.LastResult().Reason)
	}
	if e.spawner.Len() != 0 {
		t.Errorf("obstacles should be cleared on game over, %d remain", e.spawner.Len())
	}
	if a.consumed != 1 {
		t.Errorf("Consume() called %d times, expected 1", a.consumed)
	}
}

func TestFatalCollisionResolvedBeforeScoring(t *testing.T) {
	e, _ := newTestEngine(quietConfig(), 0)
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}

	// Prey first in the live set; the predator must still win
	hold(e, 10)
	place(e, "prey", Prey, 10)
	place(e, "shark", Predator, 10)
	e.Tick()

	if e.Running() {
		t.Fatal("session should have ended")
	}
	if e.LastResult().PreyEaten != 0 {
		t.Errorf("prey scored in the fatal tick: %d", e.LastResult().PreyEaten)
	}
}

func TestInvincibilityWindow(t *testing.T) {
	e, _ := newTestEngine(quietConfig(), 0)
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}

	feed(t, e, 4)
	if e.invincible {
		t.Fatal("shield should not be active at 4 prey")
	}

	feed(t, e, 1)
	if e.preyEaten != 5 || !e.invincible {
		t.Fatalf("5th prey should grant a shield, prey=%d invincible=%v", e.preyEaten, e.invincible)
	}

	// Predator contact during the window is ignored
	hold(e, 10)
	place(e, "shark", Predator, 10)
	e.Tick()
	if !e.Running() {
		t.Fatal("predator ended the session during invincibility")
	}
	e.spawner.Remove("shark")

	// Let the window run out
	ticks := int(int64(e.cfg.Gameplay.InvincibilityMs)/e.tickMs) + 2
	for i := 0; i < ticks; i++ {
		hold(e, 10)
		e.Tick()
	}
	if e.invincible {
		t.Fatal("shield should expire after the window")
	}

	hold(e, 10)
	place(e, "shark-2", Predator, 10)
	e.Tick()
	if e.Running() {
		t.Error("predator should be fatal again after the window")
	}
}

func TestEnvironmentTierMonotonicAndReset(t *testing.T) {
	e, _ := newTestEngine(quietConfig(), 0)
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}

	last := e.tierIdx
	for i := 0; i < 30; i++ {
		feed(t, e, 1)
		if e.tierIdx < last {
			t.Fatalf("tier regressed from %d to %d at prey %d", last, e.tierIdx, e.preyEaten)
		}
		last = e.tierIdx
	}
	if e.tierIdx != 2 {
		t.Errorf("tier after 30 prey = %d, expected 2", e.tierIdx)
	}

	// A tick without prey keeps the tier
	hold(e, 10)
	e.Tick()
	if e.tierIdx != 2 {
		t.Errorf("tier changed without prey: %d", e.tierIdx)
	}

	e.Reset()
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}
	if e.tierIdx != 0 || e.preyEaten != 0 {
		t.Errorf("Start() should reset tier and prey, got tier=%d prey=%d", e.tierIdx, e.preyEaten)
	}
}

func TestScenarioLastPlayOfTheDay(t *testing.T) {
	e, a := newTestEngine(quietConfig(), 2)

	if got := e.Mode(); got != ModeReadyToStart {
		t.Fatalf("mode = %v, expected ReadyToStart", got)
	}

	if err := e.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if !e.Running() || e.Mode() != ModeNone {
		t.Fatalf("expected running with no overlay, mode=%v", e.Mode())
	}

	// Push the player past the floor
	e.physics.player = Player{Y: e.physics.Floor(), Velocity: 1}
	e.Tick()

	if !e.over {
		t.Fatal("session should be over after a boundary breach")
	}
	if a.status.PlayCount != 3 {
		t.Errorf("play count = %d, expected 3", a.status.PlayCount)
	}
	if got := e.Mode(); got != ModeNoPlaysLeft {
		t.Errorf("mode = %v, expected NoPlaysLeft", got)
	}
	if err := e.Start(); !errors.Is(err, ErrNoPlaysLeft) {
		t.Errorf("Start() = %v, expected ErrNoPlaysLeft", err)
	}
}

func TestGameOverModeWhilePlaysRemain(t *testing.T) {
	e, _ := newTestEngine(quietConfig(), 0)
	if got := e.Mode(); got != ModeWelcome {
		t.Fatalf("first visit mode = %v, expected Welcome", got)
	}

	if err := e.Start(); err != nil {
		t.Fatal(err)
	}
	e.physics.player = Player{Y: e.physics.Floor(), Velocity: 1}
	e.Tick()

	if got := e.Mode(); got != ModeGameOver {
		t.Errorf("mode = %v, expected GameOver", got)
	}
	if f := e.Snapshot(); f.PlaysLeft != 2 {
		t.Errorf("PlaysLeft = %d, expected 2", f.PlaysLeft)
	}
}

func TestStaleSpawnTimerDoesNotLeak(t *testing.T) {
	cfg := config.DefaultSwimConfig()
	cfg.Obstacles.SpawnJitterMs = 0
	for i := range cfg.Tiers {
		cfg.Tiers[i].SpawnIntervalMs = 300
	}
	e, _ := newTestEngine(cfg, 0)

	if err := e.Start(); err != nil {
		t.Fatal(err)
	}
	oldGen := e.generation
	if n := e.timers.pending(oldGen, timerSpawn); n != 1 {
		t.Fatalf("expected exactly one pending spawn, got %d", n)
	}

	// Focus lost and a new session started while the first spawn was pending
	e.Reset()
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}
	if e.generation == oldGen {
		t.Fatal("generation should advance on a new session")
	}

	// A timer from the old session that somehow survived must be ignored
	e.timers.schedule(e.now+e.tickMs, oldGen, timerSpawn)
	hold(e, 10)
	e.Tick()
	if e.spawner.Len() != 0 {
		t.Fatalf("stale timer spawned %d obstacles into the new session", e.spawner.Len())
	}

	for i := 0; i < 40 && e.Running(); i++ {
		hold(e, 2)
		e.Tick()
		for _, o := range e.spawner.Obstacles() {
			if o.gen != e.generation {
				t.Fatalf("obstacle %s belongs to generation %d, current is %d", o.ID, o.gen, e.generation)
			}
		}
		if n := e.timers.pending(e.generation, timerSpawn); n > 1 {
			t.Fatalf("%d spawn timers pending, expected at most one", n)
		}
	}
}

func TestGameOverClearsTimers(t *testing.T) {
	e, _ := newTestEngine(quietConfig(), 0)
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}
	e.physics.player = Player{Y: e.physics.Floor(), Velocity: 1}
	e.Tick()

	if e.timers.len() != 0 {
		t.Errorf("%d timers still queued after game over", e.timers.len())
	}
	if f := e.Snapshot(); len(f.Obstacles) != 0 || !f.Over {
		t.Errorf("frame after game over: over=%v obstacles=%d", f.Over, len(f.Obstacles))
	}
}

func TestEngineDeterminism(t *testing.T) {
	type sample struct {
		y    float64
		obst string
	}

	run := func() []sample {
		e, _ := newTestEngine(config.DefaultSwimConfig(), 0)
		if err := e.Start(); err != nil {
			t.Fatal(err)
		}
		var out []sample
		for i := 0; i < 400 && e.Running(); i++ {
			if i%14 == 0 {
				e.Jump()
			}
			e.Tick()
			s := sample{y: e.physics.Player().Y}
			for _, o := range e.spawner.Obstacles() {
				s.obst += fmt.Sprintf("%v@%.4f,%.4f;", o.Kind, o.X, o.Y)
			}
			out = append(out, s)
		}
		return out
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("runs lasted %d and %d ticks", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("runs diverge at tick %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestRenderOverlay(t *testing.T) {
	e, _ := newTestEngine(quietConfig(), 0)
	screen := core.NewScreen(80, 24)
	e.Render(screen)

	found := false
	for y := 0; y < screen.Height(); y++ {
		if strings.Contains(screen.Row(y), "WELCOME TO THE REEF") {
			found = true
		}
	}
	if !found {
		t.Error("welcome overlay should be drawn before the first session")
	}

	floorY := 24 - e.cfg.Physics.BottomChrome
	if screen.Get(0, floorY) != SeaFloorChar {
		t.Errorf("sea floor should be drawn at row %d, got %q", floorY, screen.Get(0, floorY))
	}
}

func TestSpawnScheduleContinuesAtCap(t *testing.T) {
	cfg := config.DefaultSwimConfig()
	cfg.Obstacles.SpawnJitterMs = 0
	cfg.Obstacles.SpeedJitterMs = 0
	for i := range cfg.Tiers {
		cfg.Tiers[i].SpawnIntervalMs = 60
		cfg.Tiers[i].ObstacleSpeedMs = 1_000_000
		cfg.Tiers[i].MaxObstacles = 1
	}
	e, _ := newTestEngine(cfg, 0)
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 20; i++ {
		hold(e, 10)
		e.Tick()
		if !e.Running() {
			t.Fatalf("session ended at tick %d", i)
		}
		if n := e.timers.pending(e.generation, timerSpawn); n != 1 {
			t.Fatalf("tick %d: %d spawn timers pending, expected exactly one", i, n)
		}
		if e.spawner.Len() > 1 {
			t.Fatalf("tick %d: %d obstacles live past a cap of one", i, e.spawner.Len())
		}
	}
	if e.spawner.Len() != 1 {
		t.Errorf("%d obstacles live after 20 ticks, expected 1", e.spawner.Len())
	}
}
