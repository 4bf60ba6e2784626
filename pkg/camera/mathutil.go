package camera

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golangdaddy/mode7racer/pkg/collision"
)

func heading(angle float64) collision.Vector2 {
	return mgl64.Rotate2D(angle).Mul2x1(collision.Vec(1, 0))
}
