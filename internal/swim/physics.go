package swim

// Player is the fish's vertical state. Y grows downward; 0 is the top of
// the play area.
type Player struct {
	Y        float64
	Velocity float64
}

// Integrator advances the player under constant gravity. It is fully
// deterministic: the same jump timing always yields the same trajectory.
type Integrator struct {
	gravity     float64
	jumpImpulse float64
	floor       float64 // Largest Y before the player leaves the play area
	player      Player
}

// NewIntegrator creates an integrator. floor is the bottom bound for Y.
func NewIntegrator(gravity, jumpImpulse, floor float64) *Integrator {
	return &Integrator{
		gravity:     gravity,
		jumpImpulse: jumpImpulse,
		floor:       floor,
	}
}

// Reset places the player at y with zero velocity.
func (in *Integrator) Reset(y float64) {
	in.player = Player{Y: y}
}

// SetFloor changes the bottom bound, e.g. after a terminal resize.
func (in *Integrator) SetFloor(floor float64) {
	in.floor = floor
}

// Floor returns the bottom bound.
func (in *Integrator) Floor() float64 {
	return in.floor
}

// Jump sets the velocity to the jump impulse regardless of its prior value.
func (in *Integrator) Jump() {
	in.player.Velocity = in.jumpImpulse
}

// Step applies one tick of gravity. The player is clamped at the top bound
// with its velocity zeroed. Returns true when Y has passed the floor.
func (in *Integrator) Step() bool {
	in.player.Velocity += in.gravity
	in.player.Y += in.player.Velocity

	if in.player.Y < 0 {
		in.player.Y = 0
		in.player.Velocity = 0
	}

	return in.player.Y > in.floor
}

// Player returns the current player state.
func (in *Integrator) Player() Player {
	return in.player
}
