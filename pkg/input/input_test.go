package input

import "testing"

func TestState(t *testing.T) {
	s := Of(Accelerate, SteerLeft, Confirm)
	if !s.Accelerate() || !s.Left() || !s.Confirm() {
		t.Fatalf("expected held actions in %s", s)
	}
	if s.Brake() || s.Right() || s.Boost() || s.DebugRestart() {
		t.Fatalf("unexpected held actions in %s", s)
	}
	if got := s.String(); got != "accelerate+left+confirm" {
		t.Errorf("String() = %q", got)
	}

	s.Set(SteerLeft, false)
	if s.Left() {
		t.Error("left should be released")
	}
	if (State{}).String() != "none" {
		t.Error("empty state should print none")
	}
}

func TestDrivingDropsMenuActions(t *testing.T) {
	s := Of(Boost, Confirm, DebugRestart).Driving()
	if !s.Boost() || s.Confirm() || s.DebugRestart() {
		t.Fatalf("Driving() = %s", s)
	}
}

func TestOutOfRangeAction(t *testing.T) {
	var s State
	s.Set(Action(99), true)
	if s.Held(Action(99)) || s.Held(Action(-1)) {
		t.Fatal("out of range actions must never be held")
	}
	if Action(99).String() != "unknown" {
		t.Error("unexpected name for out of range action")
	}
}
