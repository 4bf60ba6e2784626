package animation

import "math"

// Kind is one of the machine's animations.
type Kind int

const (
	Idle Kind = iota
	Driving
)

func (k Kind) String() string {
	switch k {
	case Driving:
		return "driving"
	default:
		return "idle"
	}
}

// Frames is the number of frames in the animation.
func (k Kind) Frames() int {
	switch k {
	case Driving:
		return 4
	default:
		return 2
	}
}

// FPS is the playback rate in frames per second.
func (k Kind) FPS() float64 {
	switch k {
	case Driving:
		return 12
	default:
		return 2
	}
}

// ForSpeed picks the animation matching the machine's movement.
func ForSpeed(speed float64) Kind {
	if speed != 0 {
		return Driving
	}
	return Idle
}

// Set tracks the playing animation and its fractional frame position.
type Set struct {
	kind Kind
	pos  float64
}

// New starts on the idle animation
func New() *Set {
	return &Set{kind: Idle}
}

// Switch changes the playing animation. Switching to the one already playing
// keeps its position.
func (s *Set) Switch(k Kind) {
	if s.kind == k {
		return
	}
	s.kind = k
	s.pos = 0
}

// Advance moves the animation forward by delta seconds, looping.
func (s *Set) Advance(delta float64) {
	if delta <= 0 {
		return
	}
	s.pos = math.Mod(s.pos+delta*s.kind.FPS(), float64(s.kind.Frames()))
}

// Frame returns the index of the frame to draw.
func (s *Set) Frame() int {
	return int(s.pos)
}

func (s *Set) Kind() Kind {
	return s.kind
}
