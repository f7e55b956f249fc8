package config

import (
	_ "embed"
)

//go:embed defaults/swim.yaml
var defaultSwimYAML []byte

// DefaultSwimConfig returns the hardcoded swim configuration.
// It mirrors defaults/swim.yaml and is used if the embedded file cannot be parsed.
func DefaultSwimConfig() SwimConfig {
	return SwimConfig{
		Physics: SwimPhysics{
			Gravity:      0.045,
			JumpImpulse:  -0.75,
			BottomChrome: 2,
			StartHeight:  0.35,
		},
		Player: SwimPlayer{
			X:      10,
			Width:  3,
			Height: 1,
		},
		Obstacles: SwimObstacles{
			Height:         1,
			PredatorWidth:  4,
			PreyWidth:      2,
			SpawnJitterMs:  500,
			SpeedJitterMs:  150,
			PreyBandTop:    0.1,
			PreyBandBottom: 0.6,
		},
		Gameplay: SwimGameplay{
			DailyLimit:      3,
			InvincibilityMs: 5000,
			InvincibleEvery: 10,
			InvincibleAt:    5,
		},
		Tiers: []Tier{
			{Name: "Shallow Reef", MinPrey: 0, SpawnIntervalMs: 1800, ObstacleSpeedMs: 4200, MaxObstacles: 4, PreyRatio: 0.6},
			{Name: "Kelp Forest", MinPrey: 10, SpawnIntervalMs: 1500, ObstacleSpeedMs: 3600, MaxObstacles: 5, PreyRatio: 0.5},
			{Name: "Open Ocean", MinPrey: 25, SpawnIntervalMs: 1200, ObstacleSpeedMs: 3000, MaxObstacles: 6, PreyRatio: 0.45},
			{Name: "Deep Trench", MinPrey: 45, SpawnIntervalMs: 1000, ObstacleSpeedMs: 2500, MaxObstacles: 7, PreyRatio: 0.4},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSwimYAML
}
