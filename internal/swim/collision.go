package swim

import "github.com/vovakirdan/tui-swim/internal/core"

// Hits is the outcome of one collision pass.
type Hits struct {
	Predators []string // IDs of overlapping predators
	Prey      []string // IDs of overlapping prey, in live-set order
}

// Fatal reports whether any predator overlapped.
func (h Hits) Fatal() bool {
	return len(h.Predators) > 0
}

// DetectCollisions tests the player box against every obstacle. Predator
// and prey overlaps are reported separately so the caller can resolve every
// fatal hit before any scoring, independent of obstacle order.
func DetectCollisions(player core.Box, obstacles []Obstacle, obstacleH float64) Hits {
	var hits Hits
	for _, o := range obstacles {
		if !player.Intersects(o.Box(obstacleH)) {
			continue
		}
		switch o.Kind {
		case Predator:
			hits.Predators = append(hits.Predators, o.ID)
		case Prey:
			hits.Prey = append(hits.Prey, o.ID)
		}
	}
	return hits
}
