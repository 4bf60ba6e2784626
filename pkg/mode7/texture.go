package mode7

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/pkg/errors"
)

// Texture is a CPU-side RGBA image sampled by the renderer.
type Texture struct {
	Width, Height int
	Pix           []uint8 // RGBA, row-major
}

// NewTexture allocates a black, opaque texture.
func NewTexture(width, height int) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("texture size %dx%d must be positive", width, height)
	}
	t := &Texture{Width: width, Height: height, Pix: make([]uint8, width*height*4)}
	for i := 3; i < len(t.Pix); i += 4 {
		t.Pix[i] = 0xff
	}
	return t, nil
}

// MustTexture is NewTexture for sizes known to be valid.
func MustTexture(width, height int) *Texture {
	t, err := NewTexture(width, height)
	if err != nil {
		panic(err)
	}
	return t
}

// FromImage copies any image into a texture.
func FromImage(img image.Image) (*Texture, error) {
	b := img.Bounds()
	t, err := NewTexture(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	dst := &image.RGBA{Pix: t.Pix, Stride: t.Width * 4, Rect: image.Rect(0, 0, t.Width, t.Height)}
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	return t, nil
}

// Validate reports a zero-sized or inconsistent texture.
func (t *Texture) Validate() error {
	if t == nil {
		return errors.New("nil texture")
	}
	if t.Width <= 0 || t.Height <= 0 {
		return errors.Errorf("texture size %dx%d must be positive", t.Width, t.Height)
	}
	if len(t.Pix) != t.Width*t.Height*4 {
		return errors.Errorf("texture %dx%d has %d bytes of pixel data", t.Width, t.Height, len(t.Pix))
	}
	return nil
}

// At returns the texel at (x, y). Coordinates must be in range.
func (t *Texture) At(x, y int) color.RGBA {
	i := (y*t.Width + x) * 4
	return color.RGBA{t.Pix[i], t.Pix[i+1], t.Pix[i+2], t.Pix[i+3]}
}

// Sample returns the texel at unwrapped coordinates, tiling infinitely.
func (t *Texture) Sample(px, py float64) color.RGBA {
	return t.At(wrap(px, t.Width), wrap(py, t.Height))
}

// Set writes the texel at (x, y). Out of range writes are dropped.
func (t *Texture) Set(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= t.Width || y >= t.Height {
		return
	}
	i := (y*t.Width + x) * 4
	t.Pix[i], t.Pix[i+1], t.Pix[i+2], t.Pix[i+3] = c.R, c.G, c.B, c.A
}

// Fill paints the whole texture.
func (t *Texture) Fill(c color.RGBA) {
	for i := 0; i < len(t.Pix); i += 4 {
		t.Pix[i], t.Pix[i+1], t.Pix[i+2], t.Pix[i+3] = c.R, c.G, c.B, c.A
	}
}

// FillRect paints the half-open texel rectangle [x0, x1) x [y0, y1), wrapping
// around the texture edges.
func (t *Texture) FillRect(x0, y0, x1, y1 int, c color.RGBA) {
	for y := y0; y < y1; y++ {
		wy := wrapInt(y, t.Height)
		for x := x0; x < x1; x++ {
			wx := wrapInt(x, t.Width)
			i := (wy*t.Width + wx) * 4
			t.Pix[i], t.Pix[i+1], t.Pix[i+2], t.Pix[i+3] = c.R, c.G, c.B, c.A
		}
	}
}

// FrameBuffer is one rendered frame, RGBA row-major with opaque alpha, ready
// for ebiten's WritePixels.
type FrameBuffer struct {
	Width, Height int
	Pix           []byte
}

// NewFrameBuffer allocates an opaque black frame.
func NewFrameBuffer(width, height int) *FrameBuffer {
	fb := &FrameBuffer{Width: width, Height: height, Pix: make([]byte, width*height*4)}
	for i := 3; i < len(fb.Pix); i += 4 {
		fb.Pix[i] = 0xff
	}
	return fb
}

// At returns the pixel at (x, y).
func (fb *FrameBuffer) At(x, y int) color.RGBA {
	i := (y*fb.Width + x) * 4
	return color.RGBA{fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2], fb.Pix[i+3]}
}

// Image wraps the frame as an image.RGBA without copying.
func (fb *FrameBuffer) Image() *image.RGBA {
	return &image.RGBA{Pix: fb.Pix, Stride: fb.Width * 4, Rect: image.Rect(0, 0, fb.Width, fb.Height)}
}
