package player

// SimulationConfig holds the physics constants shared by every machine and
// the debug switches of the simulation.
type SimulationConfig struct {
	// CollisionOff lets the vehicle drive anywhere: no walls, no fall-off,
	// no failed landings.
	CollisionOff bool

	ColliderWidth  float64
	ColliderHeight float64

	// JumpHeightScale converts the jump parabola into screen pixels.
	JumpHeightScale float64

	// A guard rail hit sets speed to -(speed*BounceRetention + MinBounceForce).
	BounceRetention float64
	MinBounceForce  float64

	// Energy lost on a hit is |speed| * HitCostSpeedFactor * machine hit cost.
	HitCostSpeedFactor float64
}

// DefaultSimulationConfig returns the tuning used by the game.
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		ColliderWidth:      1,
		ColliderHeight:     1,
		JumpHeightScale:    25,
		BounceRetention:    0.5,
		MinBounceForce:     1,
		HitCostSpeedFactor: 1.2,
	}
}
