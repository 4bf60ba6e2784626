package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golangdaddy/mode7racer/pkg/collision"
	"github.com/golangdaddy/mode7racer/pkg/input"
	"github.com/golangdaddy/mode7racer/pkg/machine"
	"github.com/golangdaddy/mode7racer/pkg/track"
)

// Circuit is the view of the race the simulation needs every frame.
type Circuit interface {
	IsOnTrack(collision.Rect) bool
	IsOnRamp(collision.Rect) bool
	IsOnDashPlate(collision.Rect) bool
	IsOnRecoveryZone(collision.Rect) bool
	HasGuardRails() bool
	// UpdateLapCount advances the lap state machine and reports a credited lap.
	UpdateLapCount(collision.Rect) bool
}

// Player is the simulated vehicle.
type Player struct {
	Machine machine.Profile
	Config  SimulationConfig

	position collision.Vector2
	angle    float64
	speed    float64
	centri   float64
	energy   float64

	steer  Steer
	status Status

	jumpStartedAt  float64
	jumpDuration   float64
	jumpHeight     float64
	boostStartedAt float64
}

// New creates a player at the origin with a full energy tank.
func New(profile machine.Profile, cfg SimulationConfig) *Player {
	p := &Player{Machine: profile, Config: cfg}
	p.Reinitialize(track.Pose{})
	return p
}

// Reinitialize puts the vehicle back on the start pose with every flag cleared.
func (p *Player) Reinitialize(start track.Pose) {
	p.position = collision.Vec(start.X, start.Y)
	p.angle = start.Angle
	p.speed = 0
	p.centri = 0
	p.energy = p.Machine.MaxEnergy
	p.steer = SteerNone
	p.status = 0
	p.jumpStartedAt = 0
	p.jumpDuration = 0
	p.jumpHeight = 0
	p.boostStartedAt = 0
}

// Update advances the simulation by delta seconds. now is the time since the
// race started, used for the boost and jump windows.
func (p *Player) Update(now, delta float64, in input.State, c Circuit) Events {
	var ev Events
	if !p.status.Has(Destroyed) {
		ev |= p.handleInput(now, delta, in)
		ev |= p.move(delta, c)
	}
	ev |= p.applyZones(now, delta, c)
	return ev
}

func (p *Player) handleInput(now, delta float64, in input.State) Events {
	var ev Events
	m := &p.Machine

	if in.Boost() && p.CanBoost() {
		p.energy -= m.BoostCost
		p.startBoost(now)
		ev |= BoostStarted
	}

	turning := false
	if !p.status.Has(Finished) {
		turning = in.Left() || in.Right()
		var dir float64
		if in.Left() {
			dir++
		}
		if in.Right() {
			dir--
		}
		p.angle += dir * m.RotationSpeed * delta
		// With both keys held the turn already under way keeps its side.
		switch {
		case in.Left() && in.Right():
			if p.steer == SteerNone {
				p.steer = SteerLeft
			}
		case in.Left():
			p.steer = SteerLeft
		case in.Right():
			p.steer = SteerRight
		}

		p.updateSpeed(delta, in)
	}

	if turning {
		p.centri = math.Min(p.centri+m.CentriIncrease*math.Abs(p.speed)*delta, m.MaxCentri)
	} else {
		p.centri = math.Max(p.centri-m.CentriDecrease*delta, 0)
		if p.centri == 0 {
			p.steer = SteerNone
		}
	}
	return ev
}

func (p *Player) updateSpeed(delta float64, in input.State) {
	m := &p.Machine
	jumping := p.status.Has(Jumping)
	boosted := p.status.Has(Boosted)

	maxSpeed, accel := m.MaxSpeed, m.Acceleration
	if boosted {
		maxSpeed, accel = m.BoostedMaxSpeed, m.BoostedAcceleration
	}

	switch {
	case in.Accelerate() && p.speed <= maxSpeed:
		p.speed = math.Min(p.speed+accel*delta, maxSpeed)
	case in.Brake() && !jumping:
		p.speed = towardZero(p.speed, m.Brake*delta)
	case !jumping:
		loss := m.SpeedLoss
		if boosted || p.speed > m.MaxSpeed {
			loss = m.BoostedSpeedLoss
		}
		p.speed = towardZero(p.speed, loss*delta)
	}
}

// towardZero reduces |v| by amount without crossing zero.
func towardZero(v, amount float64) float64 {
	switch {
	case v > 0:
		return math.Max(v-amount, 0)
	case v < 0:
		return math.Min(v+amount, 0)
	}
	return 0
}

func (p *Player) move(delta float64, c Circuit) Events {
	var ev Events

	candidate := p.position.Add(p.Heading().Mul(p.speed * delta))
	if p.canOccupy(candidate, c) {
		p.position = candidate
	} else if c.HasGuardRails() {
		p.speed = -(p.speed*p.Config.BounceRetention + p.Config.MinBounceForce)
		p.energy -= math.Abs(p.speed) * p.Config.HitCostSpeedFactor * p.Machine.HitCost
		ev |= WallHit
		if p.energy < 0 {
			p.destroy()
			return ev | VehicleDestroyed
		}
	} else {
		p.destroy()
		return ev | VehicleDestroyed
	}

	if p.steer != SteerNone && p.centri > 0 {
		drift := p.outward().Mul(p.centri * math.Abs(p.speed) * delta)
		if candidate := p.position.Add(drift); p.canOccupy(candidate, c) {
			p.position = candidate
		}
	}
	return ev
}

// canOccupy is the lookahead test for a candidate position.
func (p *Player) canOccupy(pos collision.Vector2, c Circuit) bool {
	return p.Config.CollisionOff || p.status.Has(Jumping) || c.IsOnTrack(p.colliderAt(pos))
}

// outward points away from the centre of the current turn.
func (p *Player) outward() collision.Vector2 {
	sin, cos := math.Sincos(p.angle)
	if p.steer == SteerLeft {
		return collision.Vec(sin, -cos)
	}
	return collision.Vec(-sin, cos)
}

func (p *Player) applyZones(now, delta float64, c Circuit) Events {
	var ev Events
	m := &p.Machine
	rect := p.Collider()

	if c.UpdateLapCount(rect) {
		ev |= LapCompleted
	}

	if !p.status.Has(Destroyed) && !p.status.Has(Jumping) && !p.status.Has(Boosted) && c.IsOnDashPlate(rect) {
		p.startBoost(now)
		ev |= DashBoost
	}

	if p.status.Has(Boosted) && now-p.boostStartedAt > m.BoostDuration {
		p.status &^= Boosted
		ev |= BoostEnded
	}

	if !p.status.Has(Destroyed) && !p.status.Has(Jumping) && c.IsOnRamp(rect) {
		if duration := m.JumpDurationMultiplier * math.Max(p.speed, 0); duration > 0 {
			p.status |= Jumping
			p.jumpStartedAt = now
			p.jumpDuration = duration
			ev |= JumpStarted
		}
	}

	if p.status.Has(Jumping) {
		elapsed := now - p.jumpStartedAt
		if elapsed >= p.jumpDuration {
			p.status &^= Jumping
			p.jumpHeight = 0
			ev |= Landed
			if !p.Config.CollisionOff && !c.IsOnTrack(rect) {
				p.destroy()
				ev |= VehicleDestroyed
			}
		} else {
			p.jumpHeight = JumpHeight(elapsed, p.jumpDuration, p.Config.JumpHeightScale)
		}
	}

	if !p.status.Has(Jumping) && c.IsOnRecoveryZone(rect) {
		p.energy = math.Min(p.energy+m.RecoverSpeed*delta, m.MaxEnergy)
	}
	return ev
}

func (p *Player) startBoost(now float64) {
	p.status |= Boosted
	p.boostStartedAt = now
}

// destroy is terminal until Reinitialize.
func (p *Player) destroy() {
	p.status = p.status&^(Jumping|Boosted) | Destroyed
	p.speed = 0
	p.centri = 0
	p.steer = SteerNone
	p.jumpHeight = 0
}

// JumpHeight is the display offset of a jump: a downward parabola that is
// zero at takeoff and landing and peaks halfway.
func JumpHeight(elapsed, duration, scale float64) float64 {
	return -(elapsed * (elapsed - duration)) * scale
}

// CanBoost reports whether a manual boost would be accepted now.
func (p *Player) CanBoost() bool {
	return p.status.Has(HasBoostPower) &&
		!p.status.Has(Boosted) &&
		!p.status.Has(Destroyed) &&
		p.energy >= p.Machine.BoostCost
}

// GrantBoostPower unlocks manual boosting.
func (p *Player) GrantBoostPower() {
	p.status |= HasBoostPower
}

// Finish freezes steering and speed control.
func (p *Player) Finish() {
	p.status |= Finished
}

// Collider returns the collision rectangle at the current position.
func (p *Player) Collider() collision.Rect {
	return p.colliderAt(p.position)
}

func (p *Player) colliderAt(pos collision.Vector2) collision.Rect {
	return collision.Rect{Position: pos, Width: p.Config.ColliderWidth, Height: p.Config.ColliderHeight}
}

// Heading is the unit vector the vehicle points along.
func (p *Player) Heading() collision.Vector2 {
	return mgl64.Rotate2D(p.angle).Mul2x1(collision.Vec(1, 0))
}

func (p *Player) Position() collision.Vector2 { return p.position }
func (p *Player) Angle() float64              { return p.angle }
func (p *Player) Speed() float64              { return p.speed }
func (p *Player) Centri() float64             { return p.centri }
func (p *Player) Steering() Steer             { return p.steer }
func (p *Player) Status() Status              { return p.status }
func (p *Player) Jumping() bool               { return p.status.Has(Jumping) }
func (p *Player) Boosted() bool               { return p.status.Has(Boosted) }
func (p *Player) Finished() bool              { return p.status.Has(Finished) }
func (p *Player) Destroyed() bool             { return p.status.Has(Destroyed) }
func (p *Player) HasBoostPower() bool         { return p.status.Has(HasBoostPower) }

// Pose returns the position and heading.
func (p *Player) Pose() track.Pose {
	return track.Pose{X: p.position.X(), Y: p.position.Y(), Angle: p.angle}
}

// JumpHeight returns the current display height above the track in pixels.
func (p *Player) JumpHeight() float64 {
	return p.jumpHeight
}

// Energy returns the remaining energy, never below zero.
func (p *Player) Energy() float64 {
	return math.Max(p.energy, 0)
}

// EnergyFraction returns Energy / MaxEnergy in [0, 1].
func (p *Player) EnergyFraction() float64 {
	if p.Machine.MaxEnergy <= 0 {
		return 0
	}
	return mgl64.Clamp(p.energy/p.Machine.MaxEnergy, 0, 1)
}
