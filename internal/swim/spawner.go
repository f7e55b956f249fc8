package swim

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-swim/internal/config"
	"github.com/vovakirdan/tui-swim/internal/core"
)

// Kind classifies an obstacle.
type Kind int

const (
	Predator Kind = iota // Fatal on contact unless invincible
	Prey                 // Eaten on contact for a point
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Predator:
		return "predator"
	case Prey:
		return "prey"
	default:
		return "unknown"
	}
}

// Obstacle is a moving entity. X is derived from the engine clock each tick
// from its spawn time and travel duration, so there is one source of truth
// for its position.
type Obstacle struct {
	ID    string
	X     float64
	Y     float64
	Kind  Kind
	Width float64

	startX    float64
	spawnedAt int64 // engine clock, ms
	travelMs  int64
	gen       uint64 // session that spawned it; checked by the engine tests
}

// Box returns the obstacle's hitbox for a given obstacle height.
func (o Obstacle) Box(height float64) core.Box {
	return core.NewBox(o.X, o.Y, o.Width, height)
}

// Spawner creates obstacles and moves them from the right edge of the
// screen to past the left edge.
type Spawner struct {
	cfg     config.SwimObstacles
	rng     *rand.Rand
	live    []Obstacle
	screenW float64
	playH   float64
	newID   func() string
}

// NewSpawner creates a spawner seeded for deterministic placement.
func NewSpawner(seed int64, screenW, playH float64, cfg config.SwimObstacles) *Spawner {
	return &Spawner{
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(seed)),
		live:    make([]Obstacle, 0, 8),
		screenW: screenW,
		playH:   playH,
		newID:   uuid.NewString,
	}
}

// UpdateScreenSize updates the spawn bounds. Live obstacles keep their paths.
func (s *Spawner) UpdateScreenSize(screenW, playH float64) {
	s.screenW = screenW
	s.playH = playH
}

// NextDelay returns the delay in ms until the next spawn for a tier:
// the tier interval plus jitter in [0, SpawnJitterMs).
func (s *Spawner) NextDelay(tier config.Tier) int64 {
	delay := int64(tier.SpawnIntervalMs)
	if s.cfg.SpawnJitterMs > 0 {
		delay += int64(s.rng.Intn(s.cfg.SpawnJitterMs))
	}
	return delay
}

// Spawn creates one obstacle for the tier at engine time now.
// When the tier's obstacle cap is reached the spawn is dropped and false is returned.
func (s *Spawner) Spawn(now int64, gen uint64, tier config.Tier) (Obstacle, bool) {
	if len(s.live) >= tier.MaxObstacles {
		return Obstacle{}, false
	}

	kind := Predator
	if s.rng.Float64() < tier.PreyRatio {
		kind = Prey
	}

	width := s.cfg.PredatorWidth
	minY, maxY := 0.0, s.playH-s.cfg.Height
	if kind == Prey {
		width = s.cfg.PreyWidth
		minY = s.playH * s.cfg.PreyBandTop
		maxY = core.ClampF(s.playH*s.cfg.PreyBandBottom, minY, s.playH-s.cfg.Height)
	}
	if maxY < minY {
		maxY = minY
	}
	y := minY + s.rng.Float64()*(maxY-minY)

	travel := int64(tier.ObstacleSpeedMs)
	if j := s.cfg.SpeedJitterMs; j > 0 {
		travel += int64(s.rng.Intn(2*j+1) - j)
	}
	if travel < 1 {
		travel = 1
	}

	o := Obstacle{
		ID:        s.newID(),
		X:         s.screenW,
		Y:         y,
		Kind:      kind,
		Width:     width,
		startX:    s.screenW,
		spawnedAt: now,
		travelMs:  travel,
		gen:       gen,
	}
	s.live = append(s.live, o)
	return o, true
}

// Advance moves every obstacle to its position at engine time now and
// drops the ones that have fully left the screen.
func (s *Spawner) Advance(now int64) {
	kept := s.live[:0]
	for _, o := range s.live {
		progress := float64(now-o.spawnedAt) / float64(o.travelMs)
		if progress >= 1 {
			continue
		}
		endX := -o.Width
		o.X = o.startX + (endX-o.startX)*core.ClampF(progress, 0, 1)
		kept = append(kept, o)
	}
	s.live = kept
}

// Remove deletes the obstacle with the given ID.
func (s *Spawner) Remove(id string) {
	for i, o := range s.live {
		if o.ID == id {
			s.live = append(s.live[:i], s.live[i+1:]...)
			return
		}
	}
}

// Clear removes all live obstacles.
func (s *Spawner) Clear() {
	s.live = s.live[:0]
}

// Obstacles returns the live obstacles. The slice is owned by the spawner.
func (s *Spawner) Obstacles() []Obstacle {
	return s.live
}

// Len returns the number of live obstacles.
func (s *Spawner) Len() int {
	return len(s.live)
}
