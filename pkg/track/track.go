package track

import (
	"math"

	"github.com/golangdaddy/mode7racer/pkg/collision"
	"github.com/pkg/errors"
)

// Pose is a position and heading (radians) in track space.
type Pose struct {
	X, Y  float64
	Angle float64
}

// Checkpoint is a key checkpoint of the lap counting system.
// Touching every checkpoint and then the finish line completes a lap.
type Checkpoint struct {
	Collider collision.Rect
	Passed   bool
}

// Geometry is the raw rectangle data a TrackMap is built from.
type Geometry struct {
	Name        string
	Surface     []collision.Rect
	Ramps       []collision.Rect
	DashPlates  []collision.Rect
	Recovery    []collision.Rect
	FinishLine  collision.Rect
	Checkpoints []collision.Rect
	GuardRails  bool
	Start       Pose
}

// TrackMap is the collision map of a race track. Everything except the
// checkpoint flags is fixed after construction.
type TrackMap struct {
	name        string
	surface     *collision.ZoneSet
	ramps       *collision.ZoneSet
	dashPlates  *collision.ZoneSet
	recovery    *collision.ZoneSet
	finishLine  collision.Rect
	checkpoints []Checkpoint
	guardRails  bool
	start       Pose
}

// New validates the geometry and builds the track map.
func New(g Geometry) (*TrackMap, error) {
	if len(g.Surface) == 0 {
		return nil, errors.Errorf("track %q has no surface", g.Name)
	}
	if err := g.FinishLine.Validate(); err != nil {
		return nil, errors.Wrapf(err, "track %q finish line", g.Name)
	}

	tm := &TrackMap{
		name:       g.Name,
		finishLine: g.FinishLine,
		guardRails: g.GuardRails,
		start:      g.Start,
	}

	var err error
	if tm.surface, err = collision.NewZoneSet(g.Surface...); err != nil {
		return nil, errors.Wrapf(err, "track %q surface", g.Name)
	}
	if tm.ramps, err = collision.NewZoneSet(g.Ramps...); err != nil {
		return nil, errors.Wrapf(err, "track %q ramps", g.Name)
	}
	if tm.dashPlates, err = collision.NewZoneSet(g.DashPlates...); err != nil {
		return nil, errors.Wrapf(err, "track %q dash plates", g.Name)
	}
	if tm.recovery, err = collision.NewZoneSet(g.Recovery...); err != nil {
		return nil, errors.Wrapf(err, "track %q recovery zones", g.Name)
	}

	tm.checkpoints = make([]Checkpoint, len(g.Checkpoints))
	for i, r := range g.Checkpoints {
		if err := r.Validate(); err != nil {
			return nil, errors.Wrapf(err, "track %q checkpoint %d", g.Name, i)
		}
		tm.checkpoints[i] = Checkpoint{Collider: r}
	}

	return tm, nil
}

// Name returns the track name
func (tm *TrackMap) Name() string {
	return tm.name
}

// HasGuardRails reports whether leaving the surface bounces (true) or destroys (false).
func (tm *TrackMap) HasGuardRails() bool {
	return tm.guardRails
}

// StartPose returns the configured starting pose.
func (tm *TrackMap) StartPose() Pose {
	return tm.start
}

// IsOnTrack determines whether the collider touches the drivable surface.
func (tm *TrackMap) IsOnTrack(r collision.Rect) bool {
	return tm.surface.Overlaps(r)
}

// IsOnRamp determines whether the collider touches a ramp.
func (tm *TrackMap) IsOnRamp(r collision.Rect) bool {
	return tm.ramps.Overlaps(r)
}

// IsOnDashPlate determines whether the collider touches a dash plate.
func (tm *TrackMap) IsOnDashPlate(r collision.Rect) bool {
	return tm.dashPlates.Overlaps(r)
}

// IsOnRecoveryZone determines whether the collider touches an energy recovery zone.
func (tm *TrackMap) IsOnRecoveryZone(r collision.Rect) bool {
	return tm.recovery.Overlaps(r)
}

// IsOnFinishLine determines whether the collider touches the finish line.
func (tm *TrackMap) IsOnFinishLine(r collision.Rect) bool {
	return collision.Overlap(tm.finishLine, r)
}

// UpdateLapCount runs one step of the lap counting state machine and reports
// whether a lap was credited.
//
// Checkpoints touched by the collider are marked as passed. Crossing the
// finish line credits a lap only if every checkpoint was passed, and re-arms
// all checkpoints either way.
func (tm *TrackMap) UpdateLapCount(player collision.Rect) bool {
	for i := range tm.checkpoints {
		cp := &tm.checkpoints[i]
		if !cp.Passed && collision.Overlap(cp.Collider, player) {
			cp.Passed = true
		}
	}

	if !tm.IsOnFinishLine(player) {
		return false
	}

	credited := tm.AllCheckpointsPassed()
	tm.ResetCheckpoints()
	return credited
}

// AllCheckpointsPassed returns true if and only if every key checkpoint has been passed.
func (tm *TrackMap) AllCheckpointsPassed() bool {
	for _, cp := range tm.checkpoints {
		if !cp.Passed {
			return false
		}
	}
	return true
}

// ResetCheckpoints clears the passed flag of every checkpoint.
func (tm *TrackMap) ResetCheckpoints() {
	for i := range tm.checkpoints {
		tm.checkpoints[i].Passed = false
	}
}

// Checkpoints returns a snapshot of the checkpoints.
func (tm *TrackMap) Checkpoints() []Checkpoint {
	out := make([]Checkpoint, len(tm.checkpoints))
	copy(out, tm.checkpoints)
	return out
}

// Geometry returns the rectangle data of the track, e.g. for painting textures.
func (tm *TrackMap) Geometry() Geometry {
	g := Geometry{
		Name:       tm.name,
		Surface:    tm.surface.Rects(),
		Ramps:      tm.ramps.Rects(),
		DashPlates: tm.dashPlates.Rects(),
		Recovery:   tm.recovery.Rects(),
		FinishLine: tm.finishLine,
		GuardRails: tm.guardRails,
		Start:      tm.start,
	}
	for _, cp := range tm.checkpoints {
		g.Checkpoints = append(g.Checkpoints, cp.Collider)
	}
	return g
}

// Bounds returns the smallest rectangle containing the whole drivable surface.
func (g Geometry) Bounds() collision.Rect {
	if len(g.Surface) == 0 {
		return collision.Rect{}
	}
	lo, hi := g.Surface[0].Min(), g.Surface[0].Max()
	for _, r := range g.Surface[1:] {
		rlo, rhi := r.Min(), r.Max()
		lo[0] = math.Min(lo[0], rlo[0])
		lo[1] = math.Min(lo[1], rlo[1])
		hi[0] = math.Max(hi[0], rhi[0])
		hi[1] = math.Max(hi[1], rhi[1])
	}
	return collision.NewRect((lo[0]+hi[0])/2, (lo[1]+hi[1])/2, hi[0]-lo[0], hi[1]-lo[1])
}

// Validate checks the layout is raceable: the start pose and the finish line
// lie on the surface and every checkpoint touches it.
func (tm *TrackMap) Validate() error {
	probe := collision.NewRect(tm.start.X, tm.start.Y, 1, 1)
	if !tm.IsOnTrack(probe) {
		return errors.Errorf("track %q: start (%g, %g) is off the surface", tm.name, tm.start.X, tm.start.Y)
	}
	if !tm.IsOnTrack(tm.finishLine) {
		return errors.Errorf("track %q: finish line %s is off the surface", tm.name, tm.finishLine)
	}
	for i, cp := range tm.checkpoints {
		if !tm.IsOnTrack(cp.Collider) {
			return errors.Errorf("track %q: checkpoint %d is off the surface", tm.name, i)
		}
	}
	return nil
}
