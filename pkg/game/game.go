package game

import (
	"log"
	"os"

	"github.com/golangdaddy/mode7racer/pkg/config"
	"github.com/golangdaddy/mode7racer/pkg/debugmenu"
	"github.com/golangdaddy/mode7racer/pkg/machine"
	"github.com/golangdaddy/mode7racer/pkg/race"
	"github.com/golangdaddy/mode7racer/pkg/session"
	"github.com/golangdaddy/mode7racer/pkg/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Screen represents a UI screen interface
type Screen interface {
	Update() error
	Draw(screen *ebiten.Image)
}

// Game implements the ebiten.Game interface and manages the overall game state
type Game struct {
	settings config.Settings
	league   *race.League
	textures session.TextureSource

	currentScreen Screen
}

// NewGame opens on the title screen. With preselected set the machine
// selection screen is skipped.
func NewGame(settings config.Settings, league *race.League, textures session.TextureSource, preselected *machine.Profile) *Game {
	game := &Game{
		settings: settings,
		league:   league,
		textures: textures,
	}

	game.currentScreen = ui.NewTitleScreen(league.Name(), func() {
		if preselected != nil {
			game.startRace(*preselected)
			return
		}
		game.currentScreen = ui.NewMachineSelectScreen(settings.Debug.Machine, settings.UI.AssetDir, game.startRace)
	})
	return game
}

// Update handles game logic updates
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.currentScreen != nil {
		return g.currentScreen.Update()
	}
	return nil
}

// Draw renders the current screen
func (g *Game) Draw(screen *ebiten.Image) {
	if g.currentScreen != nil {
		g.currentScreen.Draw(screen)
	}
}

// Layout returns the renderer's viewport; ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.settings.Renderer.Width, g.settings.Renderer.Height
}

// startRace transitions to the actual gameplay
func (g *Game) startRace(profile machine.Profile) {
	s, err := session.New(g.settings, g.league, profile, g.textures)
	if err != nil {
		log.Printf("Failed to start %s: %v", g.league.Name(), err)
		g.currentScreen = ui.NewTitleScreen(g.league.Name(), func() { g.startRace(profile) })
		return
	}
	s.OnRaceFinished = func(res session.Result) {
		debugmenu.PrintResults(os.Stdout, res)
	}
	log.Printf("Starting %s with %s", g.league.Name(), profile.Name)
	g.currentScreen = NewRaceScreen(s, g.settings)
}
