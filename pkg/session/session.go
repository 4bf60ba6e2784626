// Package session runs one frame of the game: input, simulation, lap
// bookkeeping, camera and rendering. It has no window and no clock of its
// own; the caller passes the current time to Step.
package session

import (
	"log"

	"github.com/golangdaddy/mode7racer/pkg/animation"
	"github.com/golangdaddy/mode7racer/pkg/camera"
	"github.com/golangdaddy/mode7racer/pkg/config"
	"github.com/golangdaddy/mode7racer/pkg/input"
	"github.com/golangdaddy/mode7racer/pkg/machine"
	"github.com/golangdaddy/mode7racer/pkg/mode7"
	"github.com/golangdaddy/mode7racer/pkg/player"
	"github.com/golangdaddy/mode7racer/pkg/race"
	"github.com/pkg/errors"
)

// MaxDelta caps the simulated time of a single frame so a stalled window
// does not teleport the machine through walls.
const MaxDelta = 0.25

// Wall hit screen shake, in pixels and seconds.
const (
	wallShakeIntensity = 3
	wallShakeDuration  = 0.25
)

// TextureSource resolves the floor and sky of a race.
type TextureSource interface {
	Textures(r *race.Race) (floor, bg *mode7.Texture, err error)
}

// State is the phase of the session.
type State int

const (
	Racing State = iota
	// RaceFinished waits for the confirm key to load the next race.
	RaceFinished
	LeagueCompleted
)

func (s State) String() string {
	switch s {
	case RaceFinished:
		return "race-finished"
	case LeagueCompleted:
		return "league-completed"
	default:
		return "racing"
	}
}

// Session drives a league from its current race to the end.
type Session struct {
	settings config.Settings
	league   *race.League
	textures TextureSource

	player   *player.Player
	camera   *camera.Camera
	anim     *animation.Set
	renderer *mode7.Renderer
	frame    *mode7.FrameBuffer

	state  State
	events player.Events

	clockSet  bool
	last      float64
	raceStart float64
	elapsed   float64
	lapStart  float64
	splits    []LapSplit

	// OnRaceFinished, when set, receives the result of every finished race.
	OnRaceFinished func(Result)
}

// New prepares every race of the league and loads the current one. The race
// clock starts on the first Step.
func New(settings config.Settings, league *race.League, profile machine.Profile, textures TextureSource) (*Session, error) {
	if err := settings.Validate(); err != nil {
		return nil, errors.Wrap(err, "settings")
	}
	if err := profile.Validate(); err != nil {
		return nil, errors.Wrapf(err, "machine %s", profile.Name)
	}
	if league.IsCompleted() {
		return nil, errors.Errorf("league %q has no race left", league.Name())
	}
	// Warm the texture cache for every race of the league.
	for _, r := range league.Races() {
		if _, _, err := textures.Textures(r); err != nil {
			return nil, errors.Wrapf(err, "race %s", r.Name())
		}
	}

	s := &Session{
		settings: settings,
		league:   league,
		textures: textures,
		player:   player.New(profile, settings.Physics),
		camera:   camera.New(settings.CameraDistance),
		anim:     animation.New(),
		frame:    mode7.NewFrameBuffer(settings.Renderer.Width, settings.Renderer.Height),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadRace starts the league's current race at time now.
func (s *Session) LoadRace(now float64) error {
	if err := s.load(); err != nil {
		return err
	}
	s.startClock(now)
	return nil
}

// Restart reloads the current race from scratch.
func (s *Session) Restart(now float64) error {
	r := s.league.CurrentRace()
	if r == nil {
		return errors.New("league is completed")
	}
	log.Printf("Restarting race %s", r.Name())
	return s.LoadRace(now)
}

func (s *Session) load() error {
	r := s.league.CurrentRace()
	if r == nil {
		return errors.New("league is completed")
	}
	floor, bg, err := s.textures.Textures(r)
	if err != nil {
		return errors.Wrapf(err, "race %s", r.Name())
	}
	horizon := s.settings.Renderer.Horizon
	if h := r.Definition().Horizon; h > 0 {
		horizon = h
	}
	renderer, err := mode7.NewRenderer(s.settings.Renderer, floor, bg, r.Foggy(), horizon)
	if err != nil {
		return errors.Wrapf(err, "race %s", r.Name())
	}

	r.Load()
	s.renderer = renderer
	s.player.Reinitialize(r.StartPose())
	s.camera.Follow(s.player.Pose())
	s.anim.Switch(animation.Idle)
	s.state = Racing
	s.events = 0
	s.elapsed = 0
	s.splits = nil
	s.clockSet = false

	log.Printf("Loaded race %d/%d of %s: %s, %d laps, %s", s.league.Index()+1, s.league.Len(),
		s.league.Name(), r.Name(), r.RequiredLaps(), r.Mode())
	return nil
}

func (s *Session) startClock(now float64) {
	s.clockSet = true
	s.last = now
	s.raceStart = now
	s.lapStart = now
}

// Step advances the session to time now, in seconds, and renders a frame.
func (s *Session) Step(now float64, in input.State) player.Events {
	if !s.clockSet {
		s.startClock(now)
	}
	delta := min(max(now-s.last, 0), MaxDelta)
	s.last = now
	s.events = 0

	if s.state == LeagueCompleted {
		return 0
	}
	if s.settings.Debug.RestartKey && in.DebugRestart() {
		if err := s.Restart(now); err != nil {
			log.Printf("Restart failed: %v", err)
		}
		return 0
	}
	if s.state == RaceFinished && in.Confirm() {
		s.advance(now)
		return 0
	}

	r := s.league.CurrentRace()
	ev := s.player.Update(now-s.raceStart, delta, in.Driving(), r)
	s.events = ev
	if s.state == Racing {
		s.elapsed = now - s.raceStart
	}

	if ev.Has(player.LapCompleted) {
		s.lapCompleted(now, r)
	}
	if ev.Has(player.VehicleDestroyed) {
		log.Printf("Machine destroyed on %s after %.3fs", r.Name(), s.elapsed)
	}
	if ev.Has(player.WallHit) {
		s.camera.AddShake(wallShakeIntensity, wallShakeDuration)
	}

	s.anim.Switch(animation.ForSpeed(s.player.Speed()))
	s.anim.Advance(delta)

	s.camera.Follow(s.player.Pose())
	s.camera.UpdateShake(delta)
	s.renderer.Render(s.camera.Pose(), s.frame)
	return ev
}

func (s *Session) lapCompleted(now float64, r *race.Race) {
	if s.state != Racing {
		return
	}
	split := LapSplit{Lap: r.CompletedLaps(), Time: now - s.lapStart, Total: now - s.raceStart}
	s.splits = append(s.splits, split)
	s.lapStart = now
	log.Printf("Lap %d/%d in %s", split.Lap, r.RequiredLaps(), FormatClock(split.Time))

	if r.CompletedFirstLap() && !s.player.HasBoostPower() {
		s.player.GrantBoostPower()
		log.Printf("Boost power unlocked")
	}

	if r.Finished() {
		s.player.Finish()
		s.state = RaceFinished
		s.elapsed = split.Total
		log.Printf("Finished %s in %s", r.Name(), FormatClock(s.elapsed))
		if s.OnRaceFinished != nil {
			s.OnRaceFinished(s.result(r))
		}
	}
}

func (s *Session) advance(now float64) {
	if _, ok := s.league.NextRace(); !ok {
		s.state = LeagueCompleted
		log.Printf("League %s completed", s.league.Name())
		return
	}
	if err := s.LoadRace(now); err != nil {
		log.Printf("Loading next race failed: %v", err)
		s.state = LeagueCompleted
	}
}

func (s *Session) result(r *race.Race) Result {
	return Result{
		League:  s.league.Name(),
		Race:    r.Name(),
		Machine: s.player.Machine.Name,
		Splits:  s.Splits(),
		Total:   s.elapsed,
	}
}

// ElapsedTime returns the race time in seconds, frozen once the race is finished.
func (s *Session) ElapsedTime() float64 {
	return s.elapsed
}

// Laps returns the completed and required laps of the current race.
func (s *Session) Laps() (completed, required int) {
	r := s.league.CurrentRace()
	if r == nil {
		return 0, 0
	}
	return r.CompletedLaps(), r.RequiredLaps()
}

// Splits returns the lap times recorded so far.
func (s *Session) Splits() []LapSplit {
	return append([]LapSplit(nil), s.splits...)
}

func (s *Session) Frame() *mode7.FrameBuffer { return s.frame }
func (s *Session) Player() *player.Player    { return s.player }
func (s *Session) Race() *race.Race          { return s.league.CurrentRace() }
func (s *Session) League() *race.League      { return s.league }
func (s *Session) Camera() *camera.Camera    { return s.camera }
func (s *Session) Animation() *animation.Set { return s.anim }
func (s *Session) State() State              { return s.state }
func (s *Session) Events() player.Events     { return s.events }
func (s *Session) Settings() config.Settings { return s.settings }
func (s *Session) Renderer() *mode7.Renderer { return s.renderer }
