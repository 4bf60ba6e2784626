package background

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/golangdaddy/mode7racer/pkg/collision"
	"github.com/golangdaddy/mode7racer/pkg/mode7"
	"github.com/golangdaddy/mode7racer/pkg/track"
	"github.com/pkg/errors"
)

// Palette of the painted textures.
var (
	groundColor    = color.RGBA{24, 18, 48, 255}
	asphaltColor   = color.RGBA{70, 70, 86, 255}
	railColor      = color.RGBA{230, 230, 240, 255}
	edgeColor      = color.RGBA{200, 60, 60, 255}
	rampColor      = color.RGBA{240, 140, 30, 255}
	dashColor      = color.RGBA{250, 220, 40, 255}
	recoveryColor  = color.RGBA{220, 80, 200, 255}
	finishDark     = color.RGBA{20, 20, 20, 255}
	finishLight    = color.RGBA{245, 245, 245, 255}
	skyTopColor    = color.RGBA{10, 8, 40, 255}
	skyBottomColor = color.RGBA{120, 60, 140, 255}
)

// Painter creates floor and background textures procedurally. Floor texels
// follow the renderer's mapping: texel x is track y * Scale, texel y is
// track x * Scale.
type Painter struct {
	Scale float64
	// Margin is the empty border around the track, in track units.
	Margin float64
	// EdgeWidth is the width of the painted surface border, in texels.
	EdgeWidth int
}

// NewPainter creates a painter for the renderer scale
func NewPainter(scale float64) *Painter {
	return &Painter{
		Scale:     scale,
		Margin:    10,
		EdgeWidth: 3,
	}
}

// FloorSize returns the texture size needed to hold the track without the
// tiling repeating any part of it.
func (p *Painter) FloorSize(g track.Geometry) (width, height int) {
	b := g.Bounds()
	width = int(math.Ceil((b.Height + 2*p.Margin) * p.Scale))
	height = int(math.Ceil((b.Width + 2*p.Margin) * p.Scale))
	return width, height
}

// Floor paints the collision map of a track: surface, borders, gimmicks and
// a checkered finish line.
func (p *Painter) Floor(g track.Geometry, seed int64) (*mode7.Texture, error) {
	if len(g.Surface) == 0 {
		return nil, errors.Errorf("track %q has no surface to paint", g.Name)
	}
	width, height := p.FloorSize(g)
	tex, err := mode7.NewTexture(width, height)
	if err != nil {
		return nil, errors.Wrapf(err, "floor of %q", g.Name)
	}
	rng := rand.New(rand.NewSource(seed))

	// Base ground layer with speckles
	tex.Fill(groundColor)
	for i := 0; i < width*height/10; i++ {
		shade := uint8(40 + rng.Intn(30))
		tex.Set(rng.Intn(width), rng.Intn(height), color.RGBA{shade / 2, shade / 3, shade, 255})
	}

	border := edgeColor
	if g.GuardRails {
		border = railColor
	}
	for _, r := range g.Surface {
		p.fillRect(tex, r, border)
	}
	for _, r := range g.Surface {
		x0, y0, x1, y1 := p.texels(r)
		e := p.EdgeWidth
		tex.FillRect(x0+e, y0+e, x1-e, y1-e, asphaltColor)
	}
	// Where surfaces meet the border would cut the road; repaint the joins.
	for i, a := range g.Surface {
		for _, b := range g.Surface[i+1:] {
			if joint, ok := intersection(a, b); ok {
				p.fillRect(tex, joint, asphaltColor)
			}
		}
	}
	p.speckle(tex, g.Surface, rng)

	for _, r := range g.Recovery {
		p.fillRect(tex, r, recoveryColor)
	}
	for _, r := range g.DashPlates {
		p.stripes(tex, r, dashColor, asphaltColor, 4)
	}
	for _, r := range g.Ramps {
		p.stripes(tex, r, rampColor, finishDark, 6)
	}
	p.checker(tex, g.FinishLine, 6)

	return tex, nil
}

// texels converts a track rectangle into the half-open texel rectangle it covers.
func (p *Painter) texels(r collision.Rect) (x0, y0, x1, y1 int) {
	lo, hi := r.Min(), r.Max()
	x0 = int(math.Floor(lo.Y() * p.Scale))
	x1 = int(math.Ceil(hi.Y() * p.Scale))
	y0 = int(math.Floor(lo.X() * p.Scale))
	y1 = int(math.Ceil(hi.X() * p.Scale))
	return x0, y0, x1, y1
}

func (p *Painter) fillRect(tex *mode7.Texture, r collision.Rect, c color.RGBA) {
	x0, y0, x1, y1 := p.texels(r)
	tex.FillRect(x0, y0, x1, y1, c)
}

// speckle adds noise to the road so motion is visible on long straights.
func (p *Painter) speckle(tex *mode7.Texture, surface []collision.Rect, rng *rand.Rand) {
	for _, r := range surface {
		x0, y0, x1, y1 := p.texels(r)
		e := p.EdgeWidth
		w, h := x1-x0-2*e, y1-y0-2*e
		if w <= 0 || h <= 0 {
			continue
		}
		for i := 0; i < w*h/40; i++ {
			shade := uint8(80 + rng.Intn(30))
			c := color.RGBA{shade, shade, shade + 16, 255}
			x, y := x0+e+rng.Intn(w), y0+e+rng.Intn(h)
			tex.FillRect(x, y, x+1, y+1, c)
		}
	}
}

// stripes paints bands across the direction of travel, which runs along texel y.
func (p *Painter) stripes(tex *mode7.Texture, r collision.Rect, a, b color.RGBA, band int) {
	x0, y0, x1, y1 := p.texels(r)
	for y := y0; y < y1; y++ {
		c := a
		if ((y-y0)/band)%2 == 1 {
			c = b
		}
		tex.FillRect(x0, y, x1, y+1, c)
	}
}

func (p *Painter) checker(tex *mode7.Texture, r collision.Rect, cell int) {
	x0, y0, x1, y1 := p.texels(r)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c := finishLight
			if ((x-x0)/cell+(y-y0)/cell)%2 == 1 {
				c = finishDark
			}
			tex.FillRect(x, y, x+1, y+1, c)
		}
	}
}

func intersection(a, b collision.Rect) (collision.Rect, bool) {
	alo, ahi := a.Min(), a.Max()
	blo, bhi := b.Min(), b.Max()
	x0, y0 := math.Max(alo.X(), blo.X()), math.Max(alo.Y(), blo.Y())
	x1, y1 := math.Min(ahi.X(), bhi.X()), math.Min(ahi.Y(), bhi.Y())
	if x1 <= x0 || y1 <= y0 {
		return collision.Rect{}, false
	}
	return collision.NewRect((x0+x1)/2, (y0+y1)/2, x1-x0, y1-y0), true
}

// Background paints a night sky gradient with stars and a forest silhouette
// along the bottom rows, which sit right above the horizon.
func (p *Painter) Background(width, height int, seed int64) (*mode7.Texture, error) {
	tex, err := mode7.NewTexture(width, height)
	if err != nil {
		return nil, errors.Wrap(err, "sky")
	}
	rng := rand.New(rand.NewSource(seed))

	for y := 0; y < height; y++ {
		t := float64(y) / float64(max(height-1, 1))
		c := lerp(skyTopColor, skyBottomColor, t)
		tex.FillRect(0, y, width, y+1, c)
	}
	for i := 0; i < width*height/60; i++ {
		v := uint8(180 + rng.Intn(75))
		tex.Set(rng.Intn(width), rng.Intn(max(height*2/3, 1)), color.RGBA{v, v, v, 255})
	}

	// Silhouettes wrap horizontally so the scrolling sky has no seam.
	for x := 0; x < width; x += 4 + rng.Intn(10) {
		if rng.Float64() < 0.35 {
			drawTree(tex, x, height-1, rng)
		} else {
			drawBush(tex, x, height-1, rng)
		}
	}
	return tex, nil
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t) }
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), 255}
}

// drawTree draws a pine silhouette standing on row y
func drawTree(tex *mode7.Texture, x, y int, rng *rand.Rand) {
	height := 10 + rng.Intn(12)
	width := 6 + rng.Intn(6)
	c := color.RGBA{uint8(8 + rng.Intn(10)), uint8(14 + rng.Intn(16)), uint8(20 + rng.Intn(16)), 255}

	for ly := 0; ly < height; ly++ {
		rowW := max(width*(height-ly)/height, 1)
		for lx := -rowW / 2; lx <= rowW/2; lx++ {
			setWrapped(tex, x+lx, y-ly, c)
		}
	}
}

// drawBush draws a half-round bush on row y
func drawBush(tex *mode7.Texture, x, y int, rng *rand.Rand) {
	radius := 3 + rng.Intn(5)
	c := color.RGBA{uint8(10 + rng.Intn(10)), uint8(20 + rng.Intn(20)), uint8(24 + rng.Intn(16)), 255}

	for dy := -radius; dy <= 0; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				setWrapped(tex, x+dx, y+dy, c)
			}
		}
	}
}

func setWrapped(tex *mode7.Texture, x, y int, c color.RGBA) {
	if y < 0 || y >= tex.Height {
		return
	}
	x %= tex.Width
	if x < 0 {
		x += tex.Width
	}
	tex.Set(x, y, c)
}
