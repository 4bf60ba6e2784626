package game

import (
	"fmt"
	"time"

	"github.com/golangdaddy/mode7racer/pkg/config"
	"github.com/golangdaddy/mode7racer/pkg/session"
	"github.com/golangdaddy/mode7racer/pkg/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RaceScreen represents the main driving gameplay
type RaceScreen struct {
	session  *session.Session
	settings config.Settings
	start    time.Time

	frame  *ebiten.Image
	hud    *ui.HUD
	sprite *ui.MachineSprite
}

// NewRaceScreen creates a new race screen
func NewRaceScreen(s *session.Session, settings config.Settings) *RaceScreen {
	fb := s.Frame()
	return &RaceScreen{
		session:  s,
		settings: settings,
		start:    time.Now(),
		frame:    ebiten.NewImage(fb.Width, fb.Height),
		hud:      ui.NewHUD(),
		sprite:   ui.NewMachineSprite(s.Player().Machine, settings.UI.AssetDir),
	}
}

// Update advances the race by one tick
func (rs *RaceScreen) Update() error {
	now := time.Since(rs.start).Seconds()
	rs.session.Step(now, sampleKeyboard())
	return nil
}

// Draw presents the rendered frame with the machine and the HUD on top
func (rs *RaceScreen) Draw(screen *ebiten.Image) {
	s := rs.session
	cam := s.Camera()

	rs.frame.WritePixels(s.Frame().Pix)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(cam.ShakeX, cam.ShakeY)
	screen.DrawImage(rs.frame, op)

	p := s.Player()
	if !p.Destroyed() {
		anim := s.Animation()
		rs.sprite.Draw(screen, rs.settings.UI.MachineScreenX, rs.settings.UI.MachineScreenY,
			p.JumpHeight(), anim.Kind(), anim.Frame(), p.Steering())
	}

	rs.hud.Draw(screen, s.Readout())

	if rs.settings.UI.ShowFPS {
		msg := fmt.Sprintf("FPS %.0f  %v  %v", ebiten.ActualFPS(), p.Status(), p.Pose())
		ebitenutil.DebugPrintAt(screen, msg, 4, screen.Bounds().Dy()-48)
	}
}
