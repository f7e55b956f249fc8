package config

// TierIndexFor returns the index of the highest tier whose MinPrey is
// reached by preyEaten. Tiers must be sorted (see Validate).
func (c SwimConfig) TierIndexFor(preyEaten int) int {
	idx := 0
	for i, t := range c.Tiers {
		if preyEaten >= t.MinPrey {
			idx = i
		}
	}
	return idx
}

// Tier returns the tier at idx, clamped to the configured range.
func (c SwimConfig) Tier(idx int) Tier {
	if idx < 0 {
		idx = 0
	}
	if idx >= len(c.Tiers) {
		idx = len(c.Tiers) - 1
	}
	return c.Tiers[idx]
}

// GrantsInvincibility reports whether reaching preyEaten starts a shield.
// With the defaults this is the 5th prey of every 10.
func (c SwimConfig) GrantsInvincibility(preyEaten int) bool {
	every := c.Gameplay.InvincibleEvery
	if every <= 0 || preyEaten <= 0 {
		return false
	}
	return preyEaten%every == c.Gameplay.InvincibleAt%every
}
