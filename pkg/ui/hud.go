package ui

import (
	"fmt"
	"image/color"

	"github.com/golangdaddy/mode7racer/pkg/session"
	"github.com/hajimehoshi/bitmapfont/v4"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	hudText     = color.RGBA{235, 235, 245, 255}
	hudShadow   = color.RGBA{10, 10, 20, 200}
	hudPanel    = color.RGBA{20, 20, 30, 170}
	energyFull  = color.RGBA{110, 230, 255, 255}
	energyLow   = color.RGBA{255, 80, 80, 255}
	boostReady  = color.RGBA{255, 220, 60, 255}
	gaugeBorder = color.RGBA{150, 150, 160, 255}
	bannerColor = color.RGBA{255, 200, 50, 255}
)

// HUD draws the race readouts over the rendered frame.
type HUD struct {
	face *text.GoXFace
}

// NewHUD creates the HUD
func NewHUD() *HUD {
	return &HUD{face: text.NewGoXFace(bitmapfont.Face)}
}

// Draw renders speed, lap, energy and timer readouts.
func (h *HUD) Draw(screen *ebiten.Image, ro session.Readout) {
	w, ht := screen.Bounds().Dx(), screen.Bounds().Dy()

	// Speed, top left
	h.drawText(screen, fmt.Sprintf("%4d", ro.Speed), 6, 4, 2, speedColor(ro.Gauge))
	h.drawText(screen, "KM/H", 6+text.Advance("0000", h.face)*2+4, 12, 1, hudText)
	h.drawGauge(screen, 6, 38, 100, 4, ro.Gauge, speedColor(ro.Gauge))

	// Lap counter, top right
	lap := fmt.Sprintf("LAP %d/%d", ro.Lap, ro.Laps)
	h.drawText(screen, lap, float64(w)-text.Advance(lap, h.face)-6, 4, 1, hudText)
	if ro.BoostReady {
		h.drawText(screen, "BOOST", float64(w)-text.Advance("BOOST", h.face)-6, 20, 1, boostReady)
	}

	// Energy bar above the timer, bottom right
	barW := 100.0
	energy := energyFull
	if ro.Energy < 0.25 {
		energy = energyLow
	}
	h.drawGauge(screen, float64(w)-barW-6, float64(ht)-30, barW, 6, ro.Energy, energy)
	h.drawText(screen, ro.Timer, float64(w)-text.Advance(ro.Timer, h.face)-6, float64(ht)-20, 1, hudText)

	switch {
	case ro.Destroyed:
		h.drawBanner(screen, "DESTROYED", "Press R to restart")
	case ro.State == session.RaceFinished:
		h.drawBanner(screen, "FINISH!", "Press ENTER to continue")
	case ro.State == session.LeagueCompleted:
		h.drawBanner(screen, "LEAGUE COMPLETE", "Press ESC to quit")
	}
}

func (h *HUD) drawText(screen *ebiten.Image, s string, x, y, scale float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x+1, y+1)
	op.ColorScale.ScaleWithColor(hudShadow)
	text.Draw(screen, s, h.face, op)

	op = &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, h.face, op)
}

// drawGauge draws a horizontal bar filled to fraction.
func (h *HUD) drawGauge(screen *ebiten.Image, x, y, width, height, fraction float64, fill color.Color) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(width), float32(height), hudPanel, false)
	if fraction > 0 {
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(width*fraction), float32(height), fill, false)
	}
	vector.StrokeRect(screen, float32(x), float32(y), float32(width), float32(height), 1, gaugeBorder, false)
}

func (h *HUD) drawBanner(screen *ebiten.Image, title, hint string) {
	w, ht := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	vector.DrawFilledRect(screen, 0, float32(ht/2-30), float32(w), 56, hudPanel, false)
	h.drawText(screen, title, w/2-text.Advance(title, h.face), ht/2-26, 2, bannerColor)
	h.drawText(screen, hint, w/2-text.Advance(hint, h.face)/2, ht/2+8, 1, hudText)
}

// speedColor goes from green to yellow to red as the gauge fills.
func speedColor(fraction float64) color.RGBA {
	if fraction < 0.5 {
		ratio := fraction / 0.5
		return color.RGBA{uint8(100 + ratio*155), 255, 100, 255}
	}
	ratio := (fraction - 0.5) / 0.5
	return color.RGBA{255, uint8(255 - ratio*155), uint8(100 - ratio*100), 255}
}
