package player

import "strings"

// Steer is the direction of the current turn. It outlives the steering key
// until the centrifugal force has decayed to zero.
type Steer int

const (
	SteerNone Steer = iota
	SteerLeft
	SteerRight
)

func (s Steer) String() string {
	switch s {
	case SteerLeft:
		return "left"
	case SteerRight:
		return "right"
	default:
		return "none"
	}
}

// Status is the set of independent vehicle flags.
type Status uint8

const (
	Jumping Status = 1 << iota
	Boosted
	HasBoostPower
	Finished
	Destroyed
)

var statusNames = []struct {
	flag Status
	name string
}{
	{Jumping, "jumping"},
	{Boosted, "boosted"},
	{HasBoostPower, "boost-power"},
	{Finished, "finished"},
	{Destroyed, "destroyed"},
}

// Has reports whether every flag in f is set.
func (s Status) Has(f Status) bool {
	return s&f == f
}

func (s Status) String() string {
	if s == 0 {
		return "normal"
	}
	var names []string
	for _, n := range statusNames {
		if s.Has(n.flag) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}

// Events reports what happened during one Update.
type Events uint16

const (
	LapCompleted Events = 1 << iota
	BoostStarted
	DashBoost
	BoostEnded
	JumpStarted
	Landed
	WallHit
	VehicleDestroyed
)

var eventNames = []struct {
	event Events
	name  string
}{
	{LapCompleted, "lap"},
	{BoostStarted, "boost"},
	{DashBoost, "dash"},
	{BoostEnded, "boost-end"},
	{JumpStarted, "jump"},
	{Landed, "landed"},
	{WallHit, "wall-hit"},
	{VehicleDestroyed, "destroyed"},
}

// Has reports whether every event in e occurred.
func (ev Events) Has(e Events) bool {
	return ev&e == e
}

func (ev Events) String() string {
	if ev == 0 {
		return "none"
	}
	var names []string
	for _, n := range eventNames {
		if ev.Has(n.event) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}
