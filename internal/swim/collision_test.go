package swim

import (
	"testing"

	"github.com/vovakirdan/tui-swim/internal/core"
)

func TestDetectCollisions(t *testing.T) {
	player := core.NewBox(10, 5, 3, 1)
	obstacles := []Obstacle{
		{ID: "prey-hit", X: 11, Y: 5, Kind: Prey, Width: 2},
		{ID: "shark-hit", X: 12.5, Y: 5.5, Kind: Predator, Width: 4},
		{ID: "touching-edge", X: 13, Y: 5, Kind: Predator, Width: 4},
		{ID: "below", X: 10, Y: 6, Kind: Prey, Width: 2},
		{ID: "far", X: 60, Y: 5, Kind: Predator, Width: 4},
	}

	hits := DetectCollisions(player, obstacles, 1)

	if !hits.Fatal() {
		t.Error("expected a fatal hit")
	}
	if len(hits.Predators) != 1 || hits.Predators[0] != "shark-hit" {
		t.Errorf("predators = %v, expected [shark-hit]", hits.Predators)
	}
	if len(hits.Prey) != 1 || hits.Prey[0] != "prey-hit" {
		t.Errorf("prey = %v, expected [prey-hit]", hits.Prey)
	}
}

func TestDetectCollisionsNone(t *testing.T) {
	hits := DetectCollisions(core.NewBox(0, 0, 3, 1), nil, 1)
	if hits.Fatal() || len(hits.Prey) != 0 {
		t.Errorf("expected no hits, got %+v", hits)
	}
}
