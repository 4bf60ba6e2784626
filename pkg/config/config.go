package config

import (
	"flag"

	"github.com/golangdaddy/mode7racer/pkg/machine"
	"github.com/golangdaddy/mode7racer/pkg/mode7"
	"github.com/golangdaddy/mode7racer/pkg/player"
	"github.com/golangdaddy/mode7racer/pkg/race"
	"github.com/pkg/errors"
)

// Version is bumped whenever a setting changes meaning.
const Version = 3

// Settings is every tunable of the game in one place.
type Settings struct {
	Version int

	Renderer       mode7.Settings
	CameraDistance float64 // track units behind the machine

	Physics player.SimulationConfig

	UI    UISettings
	Debug DebugSettings
}

// UISettings configure the HUD and the window.
type UISettings struct {
	// SpeedDisplayMultiplier turns track units per second into the km/h readout.
	SpeedDisplayMultiplier float64
	// Screen position of the bottom centre of the machine sprite while it is
	// on the ground.
	MachineScreenX, MachineScreenY float64
	WindowScale                    int
	ShowFPS                        bool
	// AssetDir is where texture paths of race definitions are resolved.
	AssetDir string
}

// DebugSettings are development aids.
type DebugSettings struct {
	ChooseMachine bool
	ChooseMode    bool
	RestartKey    bool
	Machine       string
	Mode          string
	// RaceIndex picks the league in league mode, the race in single race mode.
	RaceIndex int
}

// Default returns the authoritative settings.
func Default() Settings {
	return Settings{
		Version:        Version,
		Renderer:       mode7.DefaultSettings(),
		CameraDistance: 4,
		Physics:        player.DefaultSimulationConfig(),
		UI: UISettings{
			// Purple Comet at top speed reads 1426 km/h.
			SpeedDisplayMultiplier: 1426 / machine.Default().MaxSpeed,
			MachineScreenX:         200,
			MachineScreenY:         160,
			WindowScale:            3,
			AssetDir:               ".",
		},
		Debug: DebugSettings{
			RestartKey: true,
			Machine:    machine.Default().Name,
			Mode:       race.LeagueMode.String(),
		},
	}
}

// BindFlags exposes the debug toggles on a flag set.
func (s *Settings) BindFlags(fs *flag.FlagSet) {
	fs.BoolVar(&s.Physics.CollisionOff, "no-collision", s.Physics.CollisionOff, "Drive through walls and never fall off the track")
	fs.BoolVar(&s.Debug.ChooseMachine, "choose-machine", s.Debug.ChooseMachine, "Pick the machine from a console menu before the race")
	fs.BoolVar(&s.Debug.ChooseMode, "choose-mode", s.Debug.ChooseMode, "Pick the game mode from a console menu before the race")
	fs.BoolVar(&s.Debug.RestartKey, "restart-key", s.Debug.RestartKey, "Enable the key that restarts the current race")
	fs.StringVar(&s.Debug.Machine, "machine", s.Debug.Machine, "Machine name")
	fs.StringVar(&s.Debug.Mode, "mode", s.Debug.Mode, "Game mode: league or single")
	fs.IntVar(&s.Debug.RaceIndex, "race", s.Debug.RaceIndex, "League index in league mode, race index in single race mode")
	fs.IntVar(&s.Renderer.Workers, "workers", s.Renderer.Workers, "Render goroutines (0 uses every CPU)")
	fs.IntVar(&s.UI.WindowScale, "scale", s.UI.WindowScale, "Window size as a multiple of the viewport")
	fs.BoolVar(&s.UI.ShowFPS, "fps", s.UI.ShowFPS, "Show frame rate and machine state")
	fs.StringVar(&s.UI.AssetDir, "assets", s.UI.AssetDir, "Directory texture paths are relative to")
}

// Validate checks the settings before the game starts.
func (s Settings) Validate() error {
	if s.Version != Version {
		return errors.Errorf("settings version %d, want %d", s.Version, Version)
	}
	if err := s.Renderer.Validate(); err != nil {
		return errors.Wrap(err, "renderer")
	}
	if s.CameraDistance < 0 {
		return errors.Errorf("camera distance %g must not be negative", s.CameraDistance)
	}
	if s.Physics.ColliderWidth <= 0 || s.Physics.ColliderHeight <= 0 {
		return errors.Errorf("collider %gx%g must be positive", s.Physics.ColliderWidth, s.Physics.ColliderHeight)
	}
	if s.UI.WindowScale < 1 {
		return errors.Errorf("window scale %d must be at least 1", s.UI.WindowScale)
	}
	if _, err := race.ParseGameMode(s.Debug.Mode); err != nil {
		return err
	}
	if s.Debug.RaceIndex < 0 {
		return errors.Errorf("race index %d must not be negative", s.Debug.RaceIndex)
	}
	return nil
}
