package background

import (
	"hash/fnv"
	"image"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/golangdaddy/mode7racer/pkg/mode7"
	"github.com/golangdaddy/mode7racer/pkg/race"
	"github.com/pkg/errors"
)

// Default sky size. The sky scrolls 50 pixels per radian, so this is roughly
// two full turns before it repeats.
const (
	SkyWidth  = 640
	SkyHeight = 64
)

// LoadTexture decodes an image file into a texture.
func LoadTexture(path string) (*mode7.Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open texture")
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode texture %s", path)
	}
	return mode7.FromImage(img)
}

// Source resolves the textures of a race. Files under AssetDir win; a race
// whose files are missing gets painted textures instead.
type Source struct {
	AssetDir string
	Painter  *Painter

	mu    sync.Mutex
	cache map[string]*mode7.Texture
}

// NewSource creates a texture source
func NewSource(assetDir string, painter *Painter) *Source {
	return &Source{
		AssetDir: assetDir,
		Painter:  painter,
		cache:    make(map[string]*mode7.Texture),
	}
}

// Textures returns the floor and sky of a race.
func (s *Source) Textures(r *race.Race) (floor, sky *mode7.Texture, err error) {
	def := r.Definition()
	seed := seedOf(r.Name())

	floor, err = s.resolve(def.FloorTexture, "floor:"+def.Track, func() (*mode7.Texture, error) {
		return s.Painter.Floor(r.Track().Geometry(), seed)
	})
	if err != nil {
		return nil, nil, errors.Wrapf(err, "floor of %s", r.Name())
	}
	sky, err = s.resolve(def.BackgroundTexture, "sky:"+def.Track, func() (*mode7.Texture, error) {
		return s.Painter.Background(SkyWidth, SkyHeight, seed)
	})
	if err != nil {
		return nil, nil, errors.Wrapf(err, "sky of %s", r.Name())
	}
	return floor, sky, nil
}

func (s *Source) resolve(file, fallbackKey string, paint func() (*mode7.Texture, error)) (*mode7.Texture, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cache == nil {
		s.cache = make(map[string]*mode7.Texture)
	}

	if file != "" {
		if tex, ok := s.cache[file]; ok {
			return tex, nil
		}
		tex, err := LoadTexture(filepath.Join(s.AssetDir, file))
		if err == nil {
			s.cache[file] = tex
			return tex, nil
		}
		log.Printf("Texture %s unavailable, painting one instead: %v", file, err)
	}

	if tex, ok := s.cache[fallbackKey]; ok {
		return tex, nil
	}
	tex, err := paint()
	if err != nil {
		return nil, err
	}
	s.cache[fallbackKey] = tex
	return tex, nil
}

func seedOf(name string) int64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return int64(h.Sum64())
}
