package ui

import (
	"image/color"
	"log"
	"path/filepath"

	"github.com/golangdaddy/mode7racer/pkg/animation"
	"github.com/golangdaddy/mode7racer/pkg/machine"
	"github.com/golangdaddy/mode7racer/pkg/player"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	spriteWidth  = 32
	spriteHeight = 20
)

// MachineSprite draws the player's machine from behind with its shadow.
type MachineSprite struct {
	frames map[animation.Kind][]*ebiten.Image
	shadow *ebiten.Image
}

// NewMachineSprite loads the machine's images from assetDir, painting the
// ones that are missing in the machine's livery.
func NewMachineSprite(p machine.Profile, assetDir string) *MachineSprite {
	ms := &MachineSprite{frames: make(map[animation.Kind][]*ebiten.Image)}
	livery := color.RGBA{p.Livery[0], p.Livery[1], p.Livery[2], 255}

	var idle *ebiten.Image
	if p.IdleImage != "" {
		img, _, err := ebitenutil.NewImageFromFile(filepath.Join(assetDir, p.IdleImage))
		if err == nil {
			idle = img
		} else {
			log.Printf("Sprite %s unavailable, painting %s: %v", p.IdleImage, p.Name, err)
		}
	}

	for _, kind := range []animation.Kind{animation.Idle, animation.Driving} {
		frames := make([]*ebiten.Image, kind.Frames())
		for i := range frames {
			if idle != nil {
				frames[i] = idle
				continue
			}
			frames[i] = paintMachine(livery, flameLength(kind, i))
		}
		ms.frames[kind] = frames
	}

	if p.ShadowImage != "" {
		if img, _, err := ebitenutil.NewImageFromFile(filepath.Join(assetDir, p.ShadowImage)); err == nil {
			ms.shadow = img
		}
	}
	if ms.shadow == nil {
		ms.shadow = paintShadow()
	}
	return ms
}

// flameLength is the engine exhaust of one animation frame, in pixels.
func flameLength(kind animation.Kind, frame int) int {
	if kind == animation.Idle {
		return frame % 2
	}
	return 2 + frame%3
}

// paintMachine draws a hover machine seen from behind
func paintMachine(livery color.RGBA, flame int) *ebiten.Image {
	img := ebiten.NewImage(spriteWidth, spriteHeight)
	dark := color.RGBA{livery.R / 2, livery.G / 2, livery.B / 2, 255}
	canopy := color.RGBA{120, 200, 240, 255}
	engine := color.RGBA{40, 40, 50, 255}
	exhaust := color.RGBA{255, 200, 80, 255}

	// Wide low body
	for y := 8; y < 15; y++ {
		for x := 1; x < spriteWidth-1; x++ {
			img.Set(x, y, livery)
		}
	}
	// Tapered nose section
	for y := 3; y < 8; y++ {
		inset := 8 - y
		for x := 6 + inset; x < spriteWidth-6-inset; x++ {
			img.Set(x, y, livery)
		}
	}
	// Cockpit canopy
	for y := 4; y < 8; y++ {
		for x := 12; x < 20; x++ {
			img.Set(x, y, canopy)
		}
	}
	// Side stripes
	for x := 1; x < spriteWidth-1; x++ {
		img.Set(x, 12, dark)
	}
	// Twin engines and their exhaust
	for _, ex := range []int{5, spriteWidth - 11} {
		for y := 13; y < 17; y++ {
			for x := ex; x < ex+6; x++ {
				img.Set(x, y, engine)
			}
		}
		for y := 17; y < 17+flame && y < spriteHeight; y++ {
			for x := ex + 1; x < ex+5; x++ {
				img.Set(x, y, exhaust)
			}
		}
	}
	return img
}

func paintShadow() *ebiten.Image {
	img := ebiten.NewImage(spriteWidth, 6)
	shade := color.RGBA{0, 0, 0, 110}
	cx, cy := float64(spriteWidth)/2, 3.0
	for y := 0; y < 6; y++ {
		for x := 0; x < spriteWidth; x++ {
			dx, dy := (float64(x)-cx)/cx, (float64(y)-cy)/cy
			if dx*dx+dy*dy <= 1 {
				img.Set(x, y, shade)
			}
		}
	}
	return img
}

// Draw places the machine with its bottom centre at (x, y), lifted by height
// pixels. Steering leans the sprite into the turn.
func (ms *MachineSprite) Draw(screen *ebiten.Image, x, y, height float64, kind animation.Kind, frame int, steer player.Steer) {
	shadowOp := &ebiten.DrawImageOptions{}
	shadowOp.GeoM.Translate(x-spriteWidth/2, y-3)
	screen.DrawImage(ms.shadow, shadowOp)

	frames := ms.frames[kind]
	if len(frames) == 0 {
		return
	}
	img := frames[frame%len(frames)]
	w, h := img.Bounds().Dx(), img.Bounds().Dy()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(w)/2, -float64(h))
	switch steer {
	case player.SteerLeft:
		op.GeoM.Rotate(-0.08)
	case player.SteerRight:
		op.GeoM.Rotate(0.08)
	}
	op.GeoM.Translate(x, y-height)
	screen.DrawImage(img, op)
}
