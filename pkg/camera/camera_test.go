package camera

import (
	"math"
	"testing"

	"github.com/golangdaddy/mode7racer/pkg/collision"
	"github.com/golangdaddy/mode7racer/pkg/track"
)

func TestFollow(t *testing.T) {
	tests := []struct {
		name   string
		target track.Pose
		want   collision.Vector2
	}{
		{"facing +x", track.Pose{X: 10, Y: 5, Angle: 0}, collision.Vec(6, 5)},
		{"facing +y", track.Pose{X: 10, Y: 5, Angle: math.Pi / 2}, collision.Vec(10, 1)},
		{"facing -x", track.Pose{X: 0, Y: 0, Angle: math.Pi}, collision.Vec(4, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := New(4)
			c.Follow(tc.target)
			if !c.Position.ApproxEqualThreshold(tc.want, 1e-9) {
				t.Errorf("position = %v, want %v", c.Position, tc.want)
			}
			if c.Angle != tc.target.Angle {
				t.Errorf("angle = %g, want %g", c.Angle, tc.target.Angle)
			}
			if d := collision.Vec(tc.target.X, tc.target.Y).Sub(c.Position).Len(); math.Abs(d-4) > 1e-9 {
				t.Errorf("distance to target = %g", d)
			}
		})
	}
}

func TestShakeDecays(t *testing.T) {
	c := New(4)
	c.AddShake(3, 0.5)
	if !c.Shaking() {
		t.Fatal("expected shake")
	}
	for i := 0; i < 10; i++ {
		c.UpdateShake(0.1)
		if math.Abs(c.ShakeX) > 3 || math.Abs(c.ShakeY) > 3 {
			t.Fatalf("offset (%g, %g) above intensity", c.ShakeX, c.ShakeY)
		}
	}
	if c.Shaking() || c.ShakeX != 0 || c.ShakeY != 0 {
		t.Fatalf("shake did not settle: (%g, %g)", c.ShakeX, c.ShakeY)
	}
}
