package race

import (
	"strings"

	"github.com/golangdaddy/mode7racer/pkg/collision"
	"github.com/golangdaddy/mode7racer/pkg/track"
	"github.com/pkg/errors"
)

// Mode is the rule set of a race.
type Mode int

const (
	TimeAttack Mode = iota
	GrandPrix
)

func (m Mode) String() string {
	switch m {
	case GrandPrix:
		return "grand-prix"
	default:
		return "time-attack"
	}
}

// ParseMode accepts both dashed and underscored spellings.
func ParseMode(s string) (Mode, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-") {
	case "time-attack", "":
		return TimeAttack, nil
	case "grand-prix":
		return GrandPrix, nil
	}
	return 0, errors.Errorf("unknown race mode %q", s)
}

// Definition is the static description of a race.
type Definition struct {
	// Track is a builtin track id or a path to a .track file.
	Track             string      `json:"track"`
	FloorTexture      string      `json:"floor_texture"`
	BackgroundTexture string      `json:"background_texture"`
	RequiredLaps      int         `json:"required_laps"`
	Mode              string      `json:"mode"`
	Foggy             bool        `json:"foggy"`
	Horizon           int         `json:"horizon,omitempty"` // zero keeps the renderer default
	Start             *track.Pose `json:"start,omitempty"`   // overrides the track start pose
}

// Race owns a track map and the lap progress on it.
type Race struct {
	def           Definition
	mode          Mode
	track         *track.TrackMap
	completedLaps int
}

// NewRace loads the track of a definition.
func NewRace(def Definition) (*Race, error) {
	if def.RequiredLaps <= 0 {
		return nil, errors.Errorf("race on %q: required laps must be positive, got %d", def.Track, def.RequiredLaps)
	}
	if def.Horizon < 0 {
		return nil, errors.Errorf("race on %q: negative horizon %d", def.Track, def.Horizon)
	}
	mode, err := ParseMode(def.Mode)
	if err != nil {
		return nil, errors.Wrapf(err, "race on %q", def.Track)
	}

	var tm *track.TrackMap
	if strings.HasSuffix(def.Track, ".track") {
		tm, err = track.LoadFile(def.Track)
	} else {
		tm, err = track.Builtin(def.Track)
	}
	if err != nil {
		return nil, err
	}

	return &Race{def: def, mode: mode, track: tm}, nil
}

// ResetData clears all progress: laps and checkpoints.
func (r *Race) ResetData() {
	r.completedLaps = 0
	r.track.ResetCheckpoints()
}

// Load prepares the race to be driven from the start.
func (r *Race) Load() {
	r.ResetData()
}

// UpdateLapCount advances the lap state machine with the player's collider
// and reports whether a lap was credited.
func (r *Race) UpdateLapCount(player collision.Rect) bool {
	if !r.track.UpdateLapCount(player) {
		return false
	}
	r.completedLaps++
	return true
}

// Finished reports whether the required number of laps is reached.
func (r *Race) Finished() bool {
	return r.completedLaps >= r.def.RequiredLaps
}

// CompletedFirstLap reports whether at least one lap was credited.
func (r *Race) CompletedFirstLap() bool {
	return r.completedLaps >= 1
}

func (r *Race) CompletedLaps() int                     { return r.completedLaps }
func (r *Race) RequiredLaps() int                      { return r.def.RequiredLaps }
func (r *Race) Mode() Mode                             { return r.mode }
func (r *Race) Definition() Definition                 { return r.def }
func (r *Race) Track() *track.TrackMap                 { return r.track }
func (r *Race) Name() string                           { return r.track.Name() }
func (r *Race) Foggy() bool                            { return r.def.Foggy }
func (r *Race) HasGuardRails() bool                    { return r.track.HasGuardRails() }
func (r *Race) IsOnTrack(c collision.Rect) bool        { return r.track.IsOnTrack(c) }
func (r *Race) IsOnRamp(c collision.Rect) bool         { return r.track.IsOnRamp(c) }
func (r *Race) IsOnDashPlate(c collision.Rect) bool    { return r.track.IsOnDashPlate(c) }
func (r *Race) IsOnRecoveryZone(c collision.Rect) bool { return r.track.IsOnRecoveryZone(c) }
func (r *Race) IsOnFinishLine(c collision.Rect) bool   { return r.track.IsOnFinishLine(c) }

// StartPose returns the definition's start override or the track's own.
func (r *Race) StartPose() track.Pose {
	if r.def.Start != nil {
		return *r.def.Start
	}
	return r.track.StartPose()
}
