// Package config provides YAML-based tuning for the swim minigame:
// physics, hitboxes, spawn parameters, environment tiers and the daily quota.
package config

import (
	"errors"
	"fmt"
)

// SwimConfig contains all configuration for the swim game.
type SwimConfig struct {
	Physics   SwimPhysics   `yaml:"physics"`
	Player    SwimPlayer    `yaml:"player"`
	Obstacles SwimObstacles `yaml:"obstacles"`
	Gameplay  SwimGameplay  `yaml:"gameplay"`
	Tiers     []Tier        `yaml:"tiers"`
}

// SwimPhysics defines the integrator constants.
type SwimPhysics struct {
	Gravity      float64 `yaml:"gravity"`       // Velocity added per tick
	JumpImpulse  float64 `yaml:"jump_impulse"`  // Velocity set on jump (negative = up)
	BottomChrome int     `yaml:"bottom_chrome"` // Rows reserved below the play area
	StartHeight  float64 `yaml:"start_height"`  // Starting Y as a fraction of playable height
}

// SwimPlayer defines the player's hitbox.
type SwimPlayer struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SwimObstacles defines obstacle geometry and spawn randomness.
type SwimObstacles struct {
	Height         float64 `yaml:"height"`
	PredatorWidth  float64 `yaml:"predator_width"`
	PreyWidth      float64 `yaml:"prey_width"`
	SpawnJitterMs  int     `yaml:"spawn_jitter_ms"`  // Extra delay drawn from [0, n)
	SpeedJitterMs  int     `yaml:"speed_jitter_ms"`  // Travel time varies by +/- n
	PreyBandTop    float64 `yaml:"prey_band_top"`    // Fraction of playable height
	PreyBandBottom float64 `yaml:"prey_band_bottom"` // Fraction of playable height
}

// SwimGameplay defines session rules.
type SwimGameplay struct {
	DailyLimit      int `yaml:"daily_limit"`
	InvincibilityMs int `yaml:"invincibility_ms"`
	InvincibleEvery int `yaml:"invincible_every"` // Prey per cycle
	InvincibleAt    int `yaml:"invincible_at"`    // Position within a cycle that grants the shield
}

// Tier is one environment tier. Tiers are ordered by MinPrey.
type Tier struct {
	Name            string  `yaml:"name"`
	MinPrey         int     `yaml:"min_prey"`
	SpawnIntervalMs int     `yaml:"spawn_interval_ms"`
	ObstacleSpeedMs int     `yaml:"obstacle_speed_ms"`
	MaxObstacles    int     `yaml:"max_obstacles"`
	PreyRatio       float64 `yaml:"prey_ratio"`
}

// ErrNoTiers is returned by Validate when the tier list is empty.
var ErrNoTiers = errors.New("config: at least one tier is required")

// Validate checks the config for values the engine cannot run with.
func (c SwimConfig) Validate() error {
	if len(c.Tiers) == 0 {
		return ErrNoTiers
	}
	if c.Tiers[0].MinPrey != 0 {
		return fmt.Errorf("config: first tier %q must start at min_prey 0", c.Tiers[0].Name)
	}
	for i, t := range c.Tiers {
		if i > 0 && t.MinPrey <= c.Tiers[i-1].MinPrey {
			return fmt.Errorf("config: tier %q min_prey must increase", t.Name)
		}
		if t.PreyRatio < 0 || t.PreyRatio > 1 {
			return fmt.Errorf("config: tier %q prey_ratio %v out of [0,1]", t.Name, t.PreyRatio)
		}
		if t.SpawnIntervalMs <= 0 || t.ObstacleSpeedMs <= 0 {
			return fmt.Errorf("config: tier %q needs positive spawn interval and speed", t.Name)
		}
		if t.MaxObstacles <= 0 {
			return fmt.Errorf("config: tier %q max_obstacles must be positive", t.Name)
		}
	}
	if c.Gameplay.DailyLimit <= 0 {
		return fmt.Errorf("config: daily_limit must be positive, got %d", c.Gameplay.DailyLimit)
	}
	if c.Gameplay.InvincibleEvery <= 0 {
		return fmt.Errorf("config: invincible_every must be positive, got %d", c.Gameplay.InvincibleEvery)
	}
	if c.Physics.Gravity <= 0 {
		return fmt.Errorf("config: gravity must be positive, got %v", c.Physics.Gravity)
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 || c.Obstacles.Height <= 0 {
		return errors.New("config: hitbox sizes must be positive")
	}
	return nil
}
