package track

import (
	"strings"
	"testing"

	"github.com/golangdaddy/mode7racer/pkg/collision"
)

func testMap(t *testing.T) *TrackMap {
	t.Helper()
	tm, err := New(Geometry{
		Name:    "test",
		Surface: []collision.Rect{collision.NewRect(0, 0, 100, 10)},
		Ramps:   []collision.Rect{collision.NewRect(20, 0, 2, 10)},
		Checkpoints: []collision.Rect{
			collision.NewRect(-30, 0, 1, 10),
			collision.NewRect(30, 0, 1, 10),
		},
		FinishLine: collision.NewRect(0, 0, 1, 10),
		GuardRails: true,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tm
}

var (
	atC1     = collision.NewRect(-30, 0, 0.5, 0.5)
	atC2     = collision.NewRect(30, 0, 0.5, 0.5)
	atFinish = collision.NewRect(0, 0, 0.5, 0.5)
	offAll   = collision.NewRect(10, 0, 0.5, 0.5)
)

func TestUpdateLapCount(t *testing.T) {
	tests := []struct {
		name  string
		steps []collision.Rect
		want  []bool
	}{
		{
			name:  "all checkpoints then finish",
			steps: []collision.Rect{atC1, atC2, atFinish},
			want:  []bool{false, false, true},
		},
		{
			name:  "checkpoints in reverse order still count",
			steps: []collision.Rect{atC2, atC1, atFinish},
			want:  []bool{false, false, true},
		},
		{
			name:  "finish without checkpoints",
			steps: []collision.Rect{atFinish},
			want:  []bool{false},
		},
		{
			name:  "missing one checkpoint",
			steps: []collision.Rect{atC1, atFinish},
			want:  []bool{false, false},
		},
		{
			name:  "partial progress is discarded at the finish",
			steps: []collision.Rect{atC1, atFinish, atC2, atFinish},
			want:  []bool{false, false, false, false},
		},
		{
			name:  "back and forth over the finish credits once",
			steps: []collision.Rect{atC1, atC2, atFinish, offAll, atFinish, offAll, atFinish},
			want:  []bool{false, false, true, false, false, false, false},
		},
		{
			name:  "two full laps",
			steps: []collision.Rect{atC1, atC2, atFinish, atC1, atC2, atFinish},
			want:  []bool{false, false, true, false, false, true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tm := testMap(t)
			for i, step := range tc.steps {
				if got := tm.UpdateLapCount(step); got != tc.want[i] {
					t.Fatalf("step %d: credited = %v, want %v", i, got, tc.want[i])
				}
			}
		})
	}
}

func TestFinishLineResetsCheckpoints(t *testing.T) {
	tm := testMap(t)
	tm.UpdateLapCount(atC1)
	tm.UpdateLapCount(atC2)
	if !tm.AllCheckpointsPassed() {
		t.Fatal("expected every checkpoint to be passed")
	}

	tm.UpdateLapCount(atFinish)
	for i, cp := range tm.Checkpoints() {
		if cp.Passed {
			t.Errorf("checkpoint %d still passed after crossing the finish", i)
		}
	}
}

func TestCheckpointsSnapshotIsCopy(t *testing.T) {
	tm := testMap(t)
	cps := tm.Checkpoints()
	cps[0].Passed = true
	if tm.Checkpoints()[0].Passed {
		t.Fatal("mutating the snapshot changed the map")
	}
}

func TestZonePredicates(t *testing.T) {
	tm := testMap(t)

	if !tm.IsOnTrack(offAll) {
		t.Error("expected probe on the surface")
	}
	if tm.IsOnTrack(collision.NewRect(0, 20, 1, 1)) {
		t.Error("expected probe off the surface")
	}
	if !tm.IsOnRamp(collision.NewRect(21.5, 0, 1, 1)) {
		t.Error("touching the ramp edge should count")
	}
	if tm.IsOnDashPlate(offAll) || tm.IsOnRecoveryZone(offAll) {
		t.Error("map without dash plates or recovery zones must never match")
	}
	if !tm.IsOnFinishLine(atFinish) {
		t.Error("expected probe on the finish line")
	}
}

func TestNewRejectsInvalidGeometry(t *testing.T) {
	valid := func() Geometry {
		return Geometry{
			Name:       "g",
			Surface:    []collision.Rect{collision.NewRect(0, 0, 10, 10)},
			FinishLine: collision.NewRect(0, 0, 1, 10),
		}
	}

	tests := []struct {
		name   string
		mutate func(*Geometry)
	}{
		{"no surface", func(g *Geometry) { g.Surface = nil }},
		{"degenerate finish", func(g *Geometry) { g.FinishLine.Width = 0 }},
		{"degenerate checkpoint", func(g *Geometry) {
			g.Checkpoints = []collision.Rect{collision.NewRect(1, 1, -1, 1)}
		}},
		{"degenerate ramp", func(g *Geometry) {
			g.Ramps = []collision.Rect{collision.NewRect(1, 1, 1, 0)}
		}},
	}

	if _, err := New(valid()); err != nil {
		t.Fatalf("valid geometry rejected: %v", err)
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := valid()
			tc.mutate(&g)
			if _, err := New(g); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestGeometryBounds(t *testing.T) {
	g := Geometry{Surface: []collision.Rect{
		collision.NewRect(0, 0, 10, 2),
		collision.NewRect(10, 5, 2, 10),
	}}
	b := g.Bounds()
	lo, hi := b.Min(), b.Max()
	if lo.X() != -5 || lo.Y() != -1 || hi.X() != 11 || hi.Y() != 10 {
		t.Fatalf("bounds = %s", b)
	}
}

func TestParse(t *testing.T) {
	src := `
# comment
name Test Loop
rails off
start 1 2 0.5
surface 0 0 100 10
checkpoint 30 0 1 10
finish 0 0 1 10
`
	tm, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tm.Name() != "Test Loop" {
		t.Errorf("name = %q", tm.Name())
	}
	if tm.HasGuardRails() {
		t.Error("rails should be off")
	}
	if p := tm.StartPose(); p != (Pose{X: 1, Y: 2, Angle: 0.5}) {
		t.Errorf("start = %+v", p)
	}
	if n := len(tm.Checkpoints()); n != 1 {
		t.Errorf("checkpoints = %d", n)
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"unknown directive": "name x\nsurface 0 0 1 1\nfinish 0 0 1 1\nwall 0 0 1 1\n",
		"bad number":        "surface 0 zero 1 1\nfinish 0 0 1 1\n",
		"wrong arity":       "surface 0 0 1\nfinish 0 0 1 1\n",
		"no finish":         "surface 0 0 1 1\n",
		"two finishes":      "surface 0 0 1 1\nfinish 0 0 1 1\nfinish 1 0 1 1\n",
		"bad rails":         "rails maybe\nsurface 0 0 1 1\nfinish 0 0 1 1\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(src)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestBuiltinTracks(t *testing.T) {
	ids := BuiltinIDs()
	if len(ids) == 0 {
		t.Fatal("no builtin tracks")
	}

	for _, id := range ids {
		t.Run(id, func(t *testing.T) {
			tm, err := Builtin(id)
			if err != nil {
				t.Fatalf("Builtin: %v", err)
			}
			start := tm.StartPose()
			probe := collision.NewRect(start.X, start.Y, 1, 1)
			if !tm.IsOnTrack(probe) {
				t.Error("start pose is off the track")
			}
			if tm.IsOnFinishLine(probe) {
				t.Error("start pose should be behind the finish line")
			}
			if !tm.IsOnTrack(tm.Geometry().FinishLine) {
				t.Error("finish line is off the track")
			}
			for i, cp := range tm.Checkpoints() {
				if !tm.IsOnTrack(cp.Collider) {
					t.Errorf("checkpoint %d is off the track", i)
				}
			}
		})
	}

	if _, err := Builtin("no_such_track"); err == nil {
		t.Error("expected unknown track error")
	}
}

func TestBuiltinReturnsIndependentMaps(t *testing.T) {
	a, err := Builtin("event_horizon")
	if err != nil {
		t.Fatalf("Builtin: %v", err)
	}
	b, err := Builtin("event_horizon")
	if err != nil {
		t.Fatalf("Builtin: %v", err)
	}
	for _, cp := range a.Checkpoints() {
		a.UpdateLapCount(cp.Collider)
	}
	if !a.AllCheckpointsPassed() {
		t.Fatal("expected map a to have all checkpoints passed")
	}
	if b.AllCheckpointsPassed() {
		t.Fatal("map b shares checkpoint state with map a")
	}
}

func TestValidateRejectsStartOffSurface(t *testing.T) {
	src := "surface 0 0 10 10\nfinish 0 0 1 10\nstart 40 40 0\n"
	if _, err := Parse(strings.NewReader(src)); err == nil {
		t.Fatal("expected start pose off the surface to be rejected")
	}
}
