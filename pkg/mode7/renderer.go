package mode7

import (
	"math"
	"runtime"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golangdaddy/mode7racer/pkg/track"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Settings are the projection constants of the renderer.
type Settings struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	FocalLength float64 `json:"focal_length"`
	// Horizon is the first floor row when a race does not override it.
	Horizon int `json:"horizon"`
	// Scale converts track units into floor texels.
	Scale      float64 `json:"scale"`
	FogDensity float64 `json:"fog_density"`
	// BackgroundRotationSpeed is the sky shift in pixels per radian of heading.
	BackgroundRotationSpeed float64 `json:"background_rotation_speed"`
	AttenuationFactor       float64 `json:"attenuation_factor"`
	// HorizonEpsilon keeps the depth of the horizon row away from zero.
	HorizonEpsilon float64 `json:"horizon_epsilon"`

	// Workers bounds the goroutines rendering a frame. Zero means GOMAXPROCS.
	Workers int `json:"workers"`
}

// DefaultSettings returns a 400x225 viewport with the horizon a quarter of the way down.
func DefaultSettings() Settings {
	const width, height = 400, 225
	return Settings{
		Width:                   width,
		Height:                  height,
		FocalLength:             250,
		Horizon:                 (height / 2) / 2,
		Scale:                   20,
		FogDensity:              100,
		BackgroundRotationSpeed: 50,
		AttenuationFactor:       7.5,
		HorizonEpsilon:          0.01,
	}
}

// Validate checks the settings describe a drawable viewport.
func (s Settings) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return errors.Errorf("viewport %dx%d must be positive", s.Width, s.Height)
	}
	if s.Horizon < 0 || s.Horizon > s.Height {
		return errors.Errorf("horizon %d outside viewport height %d", s.Horizon, s.Height)
	}
	if s.Scale <= 0 {
		return errors.Errorf("scale %g must be positive", s.Scale)
	}
	if s.HorizonEpsilon <= 0 {
		return errors.Errorf("horizon epsilon %g must be positive", s.HorizonEpsilon)
	}
	if s.Workers < 0 {
		return errors.Errorf("workers %d must not be negative", s.Workers)
	}
	return nil
}

// rowsPerBand is the unit of work handed to one goroutine.
const rowsPerBand = 16

// Renderer projects a floor texture onto the lower part of the viewport and
// a scrolling background onto the upper part.
type Renderer struct {
	settings Settings
	floor    *Texture
	bg       *Texture
	foggy    bool
	horizon  int
	workers  int

	halfWidth  float64
	halfHeight float64
}

// NewRenderer validates its inputs; horizon is the first floor row.
func NewRenderer(s Settings, floor, bg *Texture, foggy bool, horizon int) (*Renderer, error) {
	s.Horizon = horizon
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := floor.Validate(); err != nil {
		return nil, errors.Wrap(err, "floor texture")
	}
	if err := bg.Validate(); err != nil {
		return nil, errors.Wrap(err, "background texture")
	}

	workers := s.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	return &Renderer{
		settings:   s,
		floor:      floor,
		bg:         bg,
		foggy:      foggy,
		horizon:    horizon,
		workers:    workers,
		halfWidth:  float64(s.Width / 2),
		halfHeight: float64(s.Height / 2),
	}, nil
}

// Horizon returns the first floor row.
func (r *Renderer) Horizon() int {
	return r.horizon
}

// Foggy reports whether the floor is blended towards the fog colour.
func (r *Renderer) Foggy() bool {
	return r.foggy
}

// NewFrameBuffer allocates a frame matching the viewport.
func (r *Renderer) NewFrameBuffer() *FrameBuffer {
	return NewFrameBuffer(r.settings.Width, r.settings.Height)
}

// Render overwrites every pixel of fb with the view from the camera pose.
// The result does not depend on the number of workers.
func (r *Renderer) Render(cam track.Pose, fb *FrameBuffer) {
	if fb.Width != r.settings.Width || fb.Height != r.settings.Height {
		panic(errors.Errorf("frame buffer %dx%d does not match viewport %dx%d",
			fb.Width, fb.Height, r.settings.Width, r.settings.Height))
	}

	sin, cos := math.Sincos(cam.Angle)
	bgShift := int(cam.Angle * r.settings.BackgroundRotationSpeed)

	if r.workers <= 1 {
		r.renderRows(fb, 0, fb.Height, cam, sin, cos, bgShift)
		return
	}

	var g errgroup.Group
	g.SetLimit(r.workers)
	for y0 := 0; y0 < fb.Height; y0 += rowsPerBand {
		y1 := min(y0+rowsPerBand, fb.Height)
		g.Go(func() error {
			r.renderRows(fb, y0, y1, cam, sin, cos, bgShift)
			return nil
		})
	}
	_ = g.Wait()
}

func (r *Renderer) renderRows(fb *FrameBuffer, y0, y1 int, cam track.Pose, sin, cos float64, bgShift int) {
	s := &r.settings
	floor, bg := r.floor, r.bg

	for j := y0; j < y1; j++ {
		row := fb.Pix[j*fb.Width*4 : (j+1)*fb.Width*4]

		if j < r.horizon {
			by := wrapInt(j, bg.Height) * bg.Width
			for i := 0; i < fb.Width; i++ {
				src := (by + wrapInt(i+bgShift, bg.Width)) * 4
				o := i * 4
				row[o], row[o+1], row[o+2], row[o+3] = bg.Pix[src], bg.Pix[src+1], bg.Pix[src+2], 0xff
			}
			continue
		}

		y := float64(j) + s.FocalLength
		z := float64(j-r.horizon) + s.HorizonEpsilon
		att := r.attenuation(z)
		fog := 0.0
		if r.foggy {
			fog = (1 - att) * s.FogDensity
		}

		for i := 0; i < fb.Width; i++ {
			px, py := project(r.halfWidth-float64(i), y, z, sin, cos, cam, s.Scale)
			src := (wrap(py, floor.Height)*floor.Width + wrap(px, floor.Width)) * 4
			o := i * 4
			row[o] = shade(floor.Pix[src], att, fog)
			row[o+1] = shade(floor.Pix[src+1], att, fog)
			row[o+2] = shade(floor.Pix[src+2], att, fog)
			row[o+3] = 0xff
		}
	}
}

// project maps a camera-relative ray to unwrapped floor texel coordinates.
// Track x runs along the texture rows and track y along the columns.
func project(x, y, z, sin, cos float64, cam track.Pose, scale float64) (px, py float64) {
	rx := x*cos + y*sin
	ry := -x*sin + y*cos
	px = (rx/z + cam.Y) * scale
	py = (ry/z + cam.X) * scale
	return px, py
}

func (r *Renderer) attenuation(z float64) float64 {
	return mgl64.Clamp(r.settings.AttenuationFactor*math.Abs(z)/r.halfHeight, 0, 1)
}

func shade(c uint8, att, fog float64) uint8 {
	v := float64(c)*att + fog
	if v >= 255 {
		return 255
	}
	if v <= 0 {
		return 0
	}
	return uint8(v)
}

// FloorCoords returns the unwrapped floor texel coordinates seen at screen
// pixel (i, j), which must be at or below the horizon.
func (r *Renderer) FloorCoords(cam track.Pose, i, j int) (px, py float64) {
	sin, cos := math.Sincos(cam.Angle)
	y := float64(j) + r.settings.FocalLength
	z := float64(j-r.horizon) + r.settings.HorizonEpsilon
	return project(r.halfWidth-float64(i), y, z, sin, cos, cam, r.settings.Scale)
}

// Attenuation returns the darkening factor of floor row j.
func (r *Renderer) Attenuation(j int) float64 {
	return r.attenuation(float64(j-r.horizon) + r.settings.HorizonEpsilon)
}

// Sample returns the floor texel for unwrapped coordinates, tiling infinitely.
func (r *Renderer) Sample(px, py float64) (x, y int) {
	return wrap(px, r.floor.Width), wrap(py, r.floor.Height)
}

// wrap reduces v into [0, n) the way a floored modulo would.
func wrap(v float64, n int) int {
	m := math.Mod(v, float64(n))
	if m < 0 {
		m += float64(n)
	}
	i := int(m)
	if i >= n || i < 0 {
		return 0
	}
	return i
}

func wrapInt(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
