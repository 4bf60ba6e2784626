package mode7

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/golangdaddy/mode7racer/pkg/track"
)

func solidTexture(t *testing.T, w, h int, c color.RGBA) *Texture {
	t.Helper()
	tex, err := NewTexture(w, h)
	if err != nil {
		t.Fatalf("NewTexture: %v", err)
	}
	tex.Fill(c)
	return tex
}

func noiseTexture(t *testing.T, w, h int, seed int64) *Texture {
	t.Helper()
	tex := MustTexture(w, h)
	rng := rand.New(rand.NewSource(seed))
	rng.Read(tex.Pix)
	return tex
}

func newTestRenderer(t *testing.T, s Settings, floor, bg *Texture, foggy bool) *Renderer {
	t.Helper()
	r, err := NewRenderer(s, floor, bg, foggy, s.Horizon)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

func TestCenterPixelMapsToTextureOrigin(t *testing.T) {
	s := DefaultSettings()
	floor := solidTexture(t, 100, 100, color.RGBA{A: 255})
	r := newTestRenderer(t, s, floor, floor, false)

	px, py := r.FloorCoords(track.Pose{}, s.Width/2, s.Horizon)
	if px != 0 {
		t.Fatalf("px = %g, want 0", px)
	}
	x, y := r.Sample(px, py)
	if x != 0 {
		t.Errorf("texel x = %d, want 0", x)
	}
	if d := min(y, floor.Height-y); d > 1 {
		t.Errorf("texel y = %d, want within one texel of 0", y)
	}
}

func TestScreenLeftLooksTowardsPositiveY(t *testing.T) {
	s := DefaultSettings()
	floor := solidTexture(t, 64, 64, color.RGBA{A: 255})
	r := newTestRenderer(t, s, floor, floor, false)

	row := s.Height - 1
	left, _ := r.FloorCoords(track.Pose{}, 0, row)
	right, _ := r.FloorCoords(track.Pose{}, s.Width-1, row)
	if !(left > 0 && right < 0) {
		t.Fatalf("left px = %g, right px = %g", left, right)
	}

	// Looking along +y, screen left is -x.
	_, leftX := r.FloorCoords(track.Pose{Angle: math.Pi / 2}, 0, row)
	_, rightX := r.FloorCoords(track.Pose{Angle: math.Pi / 2}, s.Width-1, row)
	if !(leftX < rightX) {
		t.Fatalf("rotated: left py = %g, right py = %g", leftX, rightX)
	}
}

func TestCameraOffsetShiftsTexture(t *testing.T) {
	s := DefaultSettings()
	floor := solidTexture(t, 64, 64, color.RGBA{A: 255})
	r := newTestRenderer(t, s, floor, floor, false)

	px0, py0 := r.FloorCoords(track.Pose{}, 10, 200)
	px1, py1 := r.FloorCoords(track.Pose{X: 2, Y: 3}, 10, 200)
	if math.Abs(px1-px0-3*s.Scale) > 1e-9 || math.Abs(py1-py0-2*s.Scale) > 1e-9 {
		t.Fatalf("offset (%g, %g), want (%g, %g)", px1-px0, py1-py0, 3*s.Scale, 2*s.Scale)
	}
}

func TestRenderIsIndependentOfWorkers(t *testing.T) {
	floor := noiseTexture(t, 257, 131, 1)
	bg := noiseTexture(t, 97, 41, 2)

	poses := []track.Pose{
		{},
		{X: 12.5, Y: -7.25, Angle: 0.7},
		{X: -300, Y: 1e4, Angle: -2.9},
	}

	for _, foggy := range []bool{false, true} {
		serial := DefaultSettings()
		serial.Workers = 1
		parallel := DefaultSettings()
		parallel.Workers = 8

		rs := newTestRenderer(t, serial, floor, bg, foggy)
		rp := newTestRenderer(t, parallel, floor, bg, foggy)
		for _, pose := range poses {
			a, b := rs.NewFrameBuffer(), rp.NewFrameBuffer()
			rs.Render(pose, a)
			rp.Render(pose, b)
			if !bytes.Equal(a.Pix, b.Pix) {
				t.Fatalf("foggy=%v pose %+v: serial and parallel frames differ", foggy, pose)
			}
		}
	}
}

func TestAttenuationAndFog(t *testing.T) {
	s := DefaultSettings()
	s.Workers = 1
	base := color.RGBA{200, 100, 50, 255}
	floor := solidTexture(t, 32, 32, base)
	bg := solidTexture(t, 32, 32, color.RGBA{0, 0, 255, 255})

	if a := newTestRenderer(t, s, floor, bg, false).Attenuation(s.Height - 1); a != 1 {
		t.Errorf("bottom row attenuation = %g, want 1", a)
	}

	tests := []struct {
		name    string
		foggy   bool
		row     int
		want    color.RGBA
		epsilon int
	}{
		{"clear bottom row is untouched", false, s.Height - 1, base, 0},
		{"foggy bottom row is untouched", true, s.Height - 1, base, 0},
		{"clear horizon row fades to black", false, s.Horizon, color.RGBA{0, 0, 0, 255}, 1},
		{"foggy horizon row fades to fog", true, s.Horizon, color.RGBA{100, 100, 100, 255}, 1},
		{"sky row shows the background", true, s.Horizon - 1, color.RGBA{0, 0, 255, 255}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRenderer(t, s, floor, bg, tc.foggy)
			fb := r.NewFrameBuffer()
			r.Render(track.Pose{X: 3, Y: 4, Angle: 1}, fb)
			for _, i := range []int{0, s.Width / 2, s.Width - 1} {
				got := fb.At(i, tc.row)
				if !near(got, tc.want, tc.epsilon) {
					t.Fatalf("pixel (%d, %d) = %v, want %v", i, tc.row, got, tc.want)
				}
			}
		})
	}
}

func near(a, b color.RGBA, eps int) bool {
	d := func(x, y uint8) bool {
		v := int(x) - int(y)
		return v <= eps && v >= -eps
	}
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && a.A == b.A
}

func TestBackgroundScrollsWithAngle(t *testing.T) {
	s := DefaultSettings()
	s.Workers = 1
	floor := solidTexture(t, 8, 8, color.RGBA{A: 255})
	bg := noiseTexture(t, 64, 16, 5)
	r := newTestRenderer(t, s, floor, bg, false)

	for _, angle := range []float64{0, 1, -0.5, 7} {
		fb := r.NewFrameBuffer()
		r.Render(track.Pose{Angle: angle}, fb)
		shift := int(angle * s.BackgroundRotationSpeed)
		for _, j := range []int{0, 5, s.Horizon - 1} {
			for _, i := range []int{0, 13, s.Width - 1} {
				want := bg.At(wrapInt(i+shift, bg.Width), j%bg.Height)
				want.A = 255
				if got := fb.At(i, j); got != want {
					t.Fatalf("angle %g pixel (%d, %d) = %v, want %v", angle, i, j, got, want)
				}
			}
		}
	}
}

func TestNewRendererValidation(t *testing.T) {
	s := DefaultSettings()
	tex := MustTexture(4, 4)

	if _, err := NewRenderer(s, &Texture{}, tex, false, s.Horizon); err == nil {
		t.Error("expected zero-sized floor to be rejected")
	}
	if _, err := NewRenderer(s, tex, nil, false, s.Horizon); err == nil {
		t.Error("expected nil background to be rejected")
	}
	if _, err := NewRenderer(s, tex, tex, false, s.Height+1); err == nil {
		t.Error("expected horizon below the viewport to be rejected")
	}
	if _, err := NewTexture(0, 3); err == nil {
		t.Error("expected zero width texture to be rejected")
	}
}

func TestRenderPanicsOnWrongFrameSize(t *testing.T) {
	s := DefaultSettings()
	tex := MustTexture(4, 4)
	r := newTestRenderer(t, s, tex, tex, false)

	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic")
		}
	}()
	r.Render(track.Pose{}, NewFrameBuffer(10, 10))
}

func TestWrap(t *testing.T) {
	tests := []struct {
		v    float64
		n    int
		want int
	}{
		{0, 10, 0},
		{9.99, 10, 9},
		{25.3, 10, 5},
		{-0.5, 10, 9},
		{-10, 10, 0},
		{-1e-17, 10, 0},
		{1e9 + 3.5, 7, int(math.Mod(1e9+3.5, 7))},
	}
	for _, tc := range tests {
		if got := wrap(tc.v, tc.n); got != tc.want {
			t.Errorf("wrap(%g, %d) = %d, want %d", tc.v, tc.n, got, tc.want)
		}
	}
}

func TestFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(2, 3, 6, 5))
	img.Set(2, 3, color.NRGBA{10, 20, 30, 255})
	img.Set(5, 4, color.NRGBA{40, 50, 60, 255})

	tex, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage: %v", err)
	}
	if tex.Width != 4 || tex.Height != 2 {
		t.Fatalf("size %dx%d", tex.Width, tex.Height)
	}
	if got := tex.At(0, 0); got != (color.RGBA{10, 20, 30, 255}) {
		t.Errorf("top-left = %v", got)
	}
	if got := tex.At(3, 1); got != (color.RGBA{40, 50, 60, 255}) {
		t.Errorf("bottom-right = %v", got)
	}
}

func TestFillRectWraps(t *testing.T) {
	tex := MustTexture(4, 4)
	red := color.RGBA{255, 0, 0, 255}
	tex.FillRect(3, -1, 5, 0, red)
	for _, p := range [][2]int{{3, 3}, {0, 3}} {
		if got := tex.At(p[0], p[1]); got != red {
			t.Errorf("texel %v = %v", p, got)
		}
	}
	if got := tex.At(1, 3); got == red {
		t.Error("texel outside the rectangle was painted")
	}
}
