package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/bitmapfont/v4"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// TitleScreen represents the main title screen
type TitleScreen struct {
	subtitle       string
	startTime      time.Time
	onStartPressed func() // Callback when user presses to start
}

// NewTitleScreen creates a new title screen. subtitle names what is about to
// be raced.
func NewTitleScreen(subtitle string, onStartPressed func()) *TitleScreen {
	return &TitleScreen{
		subtitle:       subtitle,
		startTime:      time.Now(),
		onStartPressed: onStartPressed,
	}
}

// Update handles input for the title screen
func (ts *TitleScreen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if ts.onStartPressed != nil {
			ts.onStartPressed()
		}
	}
	return nil
}

// Draw renders the title screen
func (ts *TitleScreen) Draw(screen *ebiten.Image) {
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	screen.Fill(color.RGBA{15, 12, 35, 255})

	elapsed := time.Since(ts.startTime).Seconds()
	face := text.NewGoXFace(bitmapfont.Face)
	centerX := float64(width) / 2
	centerY := float64(height) / 3

	// Pulsing title
	titleText := "MODE 7 RACER"
	pulseScale := 1.0 + 0.08*math.Sin(elapsed*2.0)
	titleScale := 3.0 * pulseScale
	titleOp := &text.DrawOptions{}
	titleOp.GeoM.Scale(titleScale, titleScale)
	titleOp.GeoM.Translate(centerX-text.Advance(titleText, face)*titleScale/2, centerY-8*titleScale)
	brightness := math.Min(1.0+0.2*math.Sin(elapsed*1.5), 1.0)
	titleOp.ColorScale.ScaleWithColor(color.RGBA{
		uint8(200 * brightness),
		uint8(120 * brightness),
		uint8(255 * brightness),
		255,
	})
	text.Draw(screen, titleText, face, titleOp)

	subOp := &text.DrawOptions{}
	subOp.GeoM.Translate(centerX-text.Advance(ts.subtitle, face)/2, centerY+30)
	subOp.ColorScale.ScaleWithColor(color.RGBA{180, 180, 200, 255})
	text.Draw(screen, ts.subtitle, face, subOp)

	// Blink every 0.5 seconds
	if int(elapsed*2)%2 == 0 {
		pressText := "Press ENTER or SPACE to Start"
		pressOp := &text.DrawOptions{}
		pressOp.GeoM.Translate(centerX-text.Advance(pressText, face)/2, float64(height)-40)
		pressOp.ColorScale.ScaleWithColor(color.RGBA{150, 200, 255, 255})
		text.Draw(screen, pressText, face, pressOp)
	}

	drawDecorativeElements(screen, width, height, elapsed)
}

// drawDecorativeElements draws horizon lines that scroll towards the viewer,
// a hint of the floor the races are driven on.
func drawDecorativeElements(screen *ebiten.Image, width, height int, elapsed float64) {
	lineColor := color.RGBA{80, 60, 140, 120}
	top := float64(height) * 3 / 4
	for i := 0; i < 6; i++ {
		// Lines bunch up towards the horizon like a perspective floor.
		t := math.Mod(float64(i)/6+elapsed*0.25, 1)
		y := top + t*t*float64(height-int(top))
		vector.DrawFilledRect(screen, 0, float32(y), float32(width), 1, lineColor, false)
	}
	vector.DrawFilledRect(screen, 0, float32(top), float32(width), 1, color.RGBA{200, 120, 255, 200}, false)
}
