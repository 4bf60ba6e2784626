package camera

import (
	"math/rand"

	"github.com/golangdaddy/mode7racer/pkg/collision"
	"github.com/golangdaddy/mode7racer/pkg/track"
)

// Camera trails the tracked vehicle at a fixed distance and looks the same way.
type Camera struct {
	Position collision.Vector2
	Angle    float64
	Distance float64

	// Screen shake, in screen pixels.
	ShakeX, ShakeY float64
	shakeTimer     float64
	shakeIntensity float64
	rng            *rand.Rand
}

// New creates a chase camera.
func New(distance float64) *Camera {
	return &Camera{Distance: distance, rng: rand.New(rand.NewSource(1))}
}

// Follow places the camera Distance units behind the pose.
func (c *Camera) Follow(target track.Pose) {
	behind := collision.Vec(target.X, target.Y).Sub(heading(target.Angle).Mul(c.Distance))
	c.Position = behind
	c.Angle = target.Angle
}

// Pose returns the view pose handed to the renderer.
func (c *Camera) Pose() track.Pose {
	return track.Pose{X: c.Position.X(), Y: c.Position.Y(), Angle: c.Angle}
}

// AddShake triggers screen shake with given intensity and duration.
func (c *Camera) AddShake(intensity, duration float64) {
	if intensity > c.shakeIntensity {
		c.shakeIntensity = intensity
	}
	if duration > c.shakeTimer {
		c.shakeTimer = duration
	}
}

// UpdateShake decays shake and computes random offsets.
func (c *Camera) UpdateShake(dt float64) {
	if c.shakeTimer <= 0 {
		c.ShakeX, c.ShakeY = 0, 0
		c.shakeIntensity = 0
		return
	}
	c.shakeTimer -= dt
	if c.shakeTimer < 0 {
		c.shakeTimer = 0
	}
	t := c.shakeTimer
	mag := c.shakeIntensity * (t / (t + 0.08))
	c.ShakeX = (c.rng.Float64()*2 - 1) * mag
	c.ShakeY = (c.rng.Float64()*2 - 1) * mag
}

// Shaking reports whether a shake is in progress.
func (c *Camera) Shaking() bool {
	return c.shakeTimer > 0
}
