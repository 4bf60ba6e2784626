package session

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Readout is what the HUD shows for one frame.
type Readout struct {
	Race  string
	State State

	Speed int // km/h
	// Gauge is the speed as a fraction of the boosted top speed.
	Gauge float64
	Timer string
	// Energy is the remaining energy as a fraction of the tank.
	Energy float64

	Lap, Laps int

	BoostReady bool
	Boosted    bool
	Destroyed  bool
}

// Readout projects the session state onto HUD values.
func (s *Session) Readout() Readout {
	p := s.player
	ro := Readout{
		State:      s.state,
		Speed:      SpeedDisplay(p.Speed(), s.settings.UI.SpeedDisplayMultiplier),
		Timer:      FormatClock(s.elapsed),
		Energy:     p.EnergyFraction(),
		BoostReady: p.CanBoost(),
		Boosted:    p.Boosted(),
		Destroyed:  p.Destroyed(),
	}
	if top := p.Machine.BoostedMaxSpeed; top > 0 {
		ro.Gauge = mgl64.Clamp(math.Abs(p.Speed())/top, 0, 1)
	}
	if r := s.league.CurrentRace(); r != nil {
		ro.Race = r.Name()
		ro.Laps = r.RequiredLaps()
		ro.Lap = min(r.CompletedLaps()+1, ro.Laps)
	}
	return ro
}

// SpeedDisplay converts a speed in track units per second to the km/h shown
// on screen. Reversing reads as a positive speed.
func SpeedDisplay(speed, multiplier float64) int {
	return int(math.Round(math.Abs(speed) * multiplier))
}
