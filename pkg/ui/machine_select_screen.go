package ui

import (
	"fmt"
	"image/color"

	"github.com/golangdaddy/mode7racer/pkg/animation"
	"github.com/golangdaddy/mode7racer/pkg/machine"
	"github.com/golangdaddy/mode7racer/pkg/player"
	"github.com/hajimehoshi/bitmapfont/v4"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

type machineOption struct {
	profile machine.Profile
	sprite  *MachineSprite
}

// MachineSelectScreen lets the player pick a machine from the roster.
type MachineSelectScreen struct {
	onSelected    func(machine.Profile)
	assetDir      string
	roster        []machine.Profile
	options       []machineOption
	selectedIndex int
	anim          *animation.Set

	// UI State
	initialized bool
}

// NewMachineSelectScreen starts with the named machine highlighted.
func NewMachineSelectScreen(preselect, assetDir string, onSelected func(machine.Profile)) *MachineSelectScreen {
	ms := &MachineSelectScreen{
		onSelected: onSelected,
		assetDir:   assetDir,
		roster:     machine.Roster(),
		anim:       animation.New(),
	}
	for i, p := range ms.roster {
		if p.Name == preselect {
			ms.selectedIndex = i
		}
	}
	ms.anim.Switch(animation.Driving)
	return ms
}

func (ms *MachineSelectScreen) Update() error {
	// Sprites need a running game loop
	if !ms.initialized {
		for _, p := range ms.roster {
			ms.options = append(ms.options, machineOption{profile: p, sprite: NewMachineSprite(p, ms.assetDir)})
		}
		ms.initialized = true
	}
	ms.anim.Advance(1.0 / float64(ebiten.TPS()))

	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA) {
		ms.selectedIndex--
		if ms.selectedIndex < 0 {
			ms.selectedIndex = len(ms.options) - 1
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) || inpututil.IsKeyJustPressed(ebiten.KeyD) {
		ms.selectedIndex++
		if ms.selectedIndex >= len(ms.options) {
			ms.selectedIndex = 0
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) && ms.onSelected != nil {
		ms.onSelected(ms.options[ms.selectedIndex].profile)
	}
	return nil
}

func (ms *MachineSelectScreen) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{20, 20, 40, 255})
	if len(ms.options) == 0 {
		return
	}

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	face := text.NewGoXFace(bitmapfont.Face)

	title := "SELECT YOUR MACHINE"
	titleOp := &text.DrawOptions{}
	titleOp.GeoM.Scale(2, 2)
	titleOp.GeoM.Translate(float64(w)/2-text.Advance(title, face), 12)
	titleOp.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, title, face, titleOp)

	cellW := float64(w) / float64(len(ms.options))
	for i, opt := range ms.options {
		cx := cellW*float64(i) + cellW/2
		y := 90.0

		if i == ms.selectedIndex {
			vector.DrawFilledRect(screen, float32(cx-cellW/2+4), float32(y-40), float32(cellW-8), 64, color.RGBA{255, 215, 0, 60}, false)
		}
		kind, frame := animation.Idle, 0
		if i == ms.selectedIndex {
			kind, frame = ms.anim.Kind(), ms.anim.Frame()
		}
		opt.sprite.Draw(screen, cx, y, 0, kind, frame, player.SteerNone)

		nameOp := &text.DrawOptions{}
		nameOp.GeoM.Translate(cx-text.Advance(opt.profile.Name, face)/2, y+30)
		if i == ms.selectedIndex {
			nameOp.ColorScale.ScaleWithColor(color.RGBA{255, 255, 0, 255})
		} else {
			nameOp.ColorScale.ScaleWithColor(color.White)
		}
		text.Draw(screen, opt.profile.Name, face, nameOp)
	}

	sel := ms.options[ms.selectedIndex].profile
	stats := fmt.Sprintf("TOP %.1f  ACCEL %.1f  GRIP %.2f", sel.MaxSpeed, sel.Acceleration, sel.RotationSpeed)
	statsOp := &text.DrawOptions{}
	statsOp.GeoM.Translate(float64(w)/2-text.Advance(stats, face)/2, 160)
	statsOp.ColorScale.ScaleWithColor(color.RGBA{200, 200, 220, 255})
	text.Draw(screen, stats, face, statsOp)

	instr := "ARROWS to Select   ENTER to Confirm"
	instrOp := &text.DrawOptions{}
	instrOp.GeoM.Translate(float64(w)/2-text.Advance(instr, face)/2, float64(h)-30)
	instrOp.ColorScale.ScaleWithColor(color.RGBA{200, 200, 200, 255})
	text.Draw(screen, instr, face, instrOp)
}
