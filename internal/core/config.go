package core

import "time"

// RuntimeConfig contains configuration passed to the engine at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed for deterministic gameplay (0 = time based)
}

// DefaultTickRate gives a 30ms tick.
const DefaultTickRate = 33

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: DefaultTickRate,
		Seed:     0,
	}
}

// TickPeriod returns the wall-clock duration of one simulation tick.
func (c RuntimeConfig) TickPeriod() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return time.Second / time.Duration(rate)
}
