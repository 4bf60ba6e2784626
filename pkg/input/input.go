// Package input describes the per-frame key state the simulation consumes.
// Sampling the keyboard is left to the presentation layer.
package input

import "strings"

// Action is a logical game action bound to a key.
type Action int

const (
	Accelerate Action = iota
	Brake
	SteerLeft
	SteerRight
	Boost
	Confirm
	DebugRestart
	numActions
)

var actionNames = [numActions]string{
	Accelerate:   "accelerate",
	Brake:        "brake",
	SteerLeft:    "left",
	SteerRight:   "right",
	Boost:        "boost",
	Confirm:      "confirm",
	DebugRestart: "restart",
}

func (a Action) String() string {
	if a < 0 || a >= numActions {
		return "unknown"
	}
	return actionNames[a]
}

// Actions lists every action in declaration order.
func Actions() []Action {
	out := make([]Action, numActions)
	for i := range out {
		out[i] = Action(i)
	}
	return out
}

// State is the set of actions held during one frame.
type State struct {
	held [numActions]bool
}

// Of builds a state with the given actions held.
func Of(actions ...Action) State {
	var s State
	for _, a := range actions {
		s.Set(a, true)
	}
	return s
}

// Set marks an action as held or released.
func (s *State) Set(a Action, held bool) {
	if a >= 0 && a < numActions {
		s.held[a] = held
	}
}

// Held reports whether an action is held.
func (s State) Held(a Action) bool {
	if a < 0 || a >= numActions {
		return false
	}
	return s.held[a]
}

func (s State) Accelerate() bool   { return s.held[Accelerate] }
func (s State) Brake() bool        { return s.held[Brake] }
func (s State) Left() bool         { return s.held[SteerLeft] }
func (s State) Right() bool        { return s.held[SteerRight] }
func (s State) Boost() bool        { return s.held[Boost] }
func (s State) Confirm() bool      { return s.held[Confirm] }
func (s State) DebugRestart() bool { return s.held[DebugRestart] }

// Driving returns the state with only the driving actions kept.
func (s State) Driving() State {
	return Of(filter(s, Accelerate, Brake, SteerLeft, SteerRight, Boost)...)
}

func filter(s State, actions ...Action) []Action {
	var out []Action
	for _, a := range actions {
		if s.Held(a) {
			out = append(out, a)
		}
	}
	return out
}

func (s State) String() string {
	var names []string
	for _, a := range Actions() {
		if s.Held(a) {
			names = append(names, a.String())
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "+")
}
