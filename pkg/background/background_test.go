package background

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/golangdaddy/mode7racer/pkg/collision"
	"github.com/golangdaddy/mode7racer/pkg/mode7"
	"github.com/golangdaddy/mode7racer/pkg/race"
	"github.com/golangdaddy/mode7racer/pkg/track"
)

func straight() track.Geometry {
	return track.Geometry{
		Name:       "Straight",
		Surface:    []collision.Rect{collision.NewRect(0, 0, 40, 10)},
		Ramps:      []collision.Rect{collision.NewRect(10, 0, 2, 10)},
		DashPlates: []collision.Rect{collision.NewRect(-10, 0, 2, 4)},
		FinishLine: collision.NewRect(0, 0, 1, 10),
		GuardRails: true,
		Start:      track.Pose{X: -5},
	}
}

// texelAt samples the texture the way the renderer maps track coordinates.
func texelAt(tex *mode7.Texture, scale, x, y float64) color.RGBA {
	return tex.Sample(y*scale, x*scale)
}

func TestFloorSize(t *testing.T) {
	p := NewPainter(20)
	w, h := p.FloorSize(straight())
	if w != (10+20)*20 || h != (40+20)*20 {
		t.Fatalf("size %dx%d", w, h)
	}
}

func TestFloorPaintsZones(t *testing.T) {
	p := NewPainter(20)
	g := straight()
	tex, err := p.Floor(g, 1)
	if err != nil {
		t.Fatalf("Floor: %v", err)
	}

	if c := texelAt(tex, 20, 0, 12); c.R > 60 || c.G > 60 {
		t.Errorf("off track texel %v is not ground", c)
	}
	if c := texelAt(tex, 20, -5.2, 0); c != asphaltColor && c.B != c.R+16 {
		t.Errorf("road texel %v", c)
	}
	if c := texelAt(tex, 20, -15, 4.99); c != railColor {
		t.Errorf("edge texel %v, want rail", c)
	}
	if c := texelAt(tex, 20, -10, 0.5); c != dashColor && c != asphaltColor {
		t.Errorf("dash texel %v", c)
	}
	if c := texelAt(tex, 20, 9.01, 2); c != rampColor {
		t.Errorf("ramp texel %v", c)
	}
	if c := texelAt(tex, 20, 0.01, 1.01); c != finishLight && c != finishDark {
		t.Errorf("finish texel %v", c)
	}
}

func TestFloorEdgeColorWithoutRails(t *testing.T) {
	g := straight()
	g.GuardRails = false
	tex, err := NewPainter(20).Floor(g, 1)
	if err != nil {
		t.Fatalf("Floor: %v", err)
	}
	if c := texelAt(tex, 20, -15, 4.99); c != edgeColor {
		t.Errorf("edge texel %v", c)
	}
}

func TestFloorIsDeterministic(t *testing.T) {
	p := NewPainter(10)
	a, _ := p.Floor(straight(), 7)
	b, _ := p.Floor(straight(), 7)
	if string(a.Pix) != string(b.Pix) {
		t.Fatal("same seed painted different floors")
	}
}

func TestFloorRejectsEmptyTrack(t *testing.T) {
	if _, err := NewPainter(20).Floor(track.Geometry{Name: "void"}, 1); err == nil {
		t.Fatal("expected an error")
	}
}

func TestBackground(t *testing.T) {
	tex, err := NewPainter(20).Background(SkyWidth, SkyHeight, 3)
	if err != nil {
		t.Fatalf("Sky: %v", err)
	}
	if tex.Width != SkyWidth || tex.Height != SkyHeight {
		t.Fatalf("size %dx%d", tex.Width, tex.Height)
	}
	// The top row is the gradient or a star, never a silhouette.
	if c := tex.At(0, 0); c.A != 255 || (c != skyTopColor && c.R < 180) {
		t.Errorf("top texel %v", c)
	}
	if _, err := NewPainter(20).Background(0, 10, 1); err == nil {
		t.Error("expected an error for an empty sky")
	}
}

func writePNG(t *testing.T, path string, w, h int, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestLoadTexture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "floor.png")
	writePNG(t, path, 8, 4, color.RGBA{1, 2, 3, 255})

	tex, err := LoadTexture(path)
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	if tex.Width != 8 || tex.Height != 4 || tex.At(7, 3) != (color.RGBA{1, 2, 3, 255}) {
		t.Fatalf("texture %dx%d %v", tex.Width, tex.Height, tex.At(7, 3))
	}
	if _, err := LoadTexture(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestSourcePrefersFiles(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "gfx", "floor.png"), 16, 16, color.RGBA{9, 9, 9, 255})

	r, err := race.NewRace(race.Definition{
		Track:             "event_horizon",
		FloorTexture:      "gfx/floor.png",
		BackgroundTexture: "gfx/missing_bg.png",
		RequiredLaps:      1,
	})
	if err != nil {
		t.Fatalf("NewRace: %v", err)
	}

	src := NewSource(dir, NewPainter(20))
	floor, sky, err := src.Textures(r)
	if err != nil {
		t.Fatalf("Textures: %v", err)
	}
	if floor.Width != 16 {
		t.Errorf("floor should come from the file, got %dx%d", floor.Width, floor.Height)
	}
	if sky.Width != SkyWidth || sky.Height != SkyHeight {
		t.Errorf("sky should be painted, got %dx%d", sky.Width, sky.Height)
	}

	again, _, err := src.Textures(r)
	if err != nil || again != floor {
		t.Error("textures should be cached")
	}
}

func TestSourcePaintsMissingFloor(t *testing.T) {
	r, err := race.NewRace(race.Definition{Track: "twin_ring", RequiredLaps: 1})
	if err != nil {
		t.Fatalf("NewRace: %v", err)
	}
	p := NewPainter(20)
	floor, _, err := NewSource(t.TempDir(), p).Textures(r)
	if err != nil {
		t.Fatalf("Textures: %v", err)
	}
	w, h := p.FloorSize(r.Track().Geometry())
	if floor.Width != w || floor.Height != h {
		t.Fatalf("floor %dx%d, want %dx%d", floor.Width, floor.Height, w, h)
	}
}
