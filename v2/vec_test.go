package v2

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
)

const tol = 1e-9

func TestAngles(t *testing.T) {
	assert.InDelta(t, math.Pi/2, Angle(r2.Vec{Y: 2}), tol)
	assert.InDelta(t, math.Pi, Between(r2.Vec{X: 1}, r2.Vec{X: -3}), tol)
	assert.InDelta(t, 0.0, Between(r2.Vec{}, r2.Vec{X: 1}), tol)
	assert.InDelta(t, 3*math.Pi/2, NormAngle(-math.Pi/2), tol)
	assert.InDelta(t, 30.0, Rad2Deg(Deg2Rad(30)), tol)
	p := Polar(Deg2Rad(60), 2)
	assert.InDelta(t, 1.0, p.X, tol)
	assert.InDelta(t, math.Sqrt(3), p.Y, tol)
}

func TestReflectAndSide(t *testing.T) {
	a := r2.Vec{}
	b := r2.Vec{X: 1}
	p := Reflect(r2.Vec{X: 0.3, Y: 2}, a, b)
	assert.InDelta(t, 0.3, p.X, tol)
	assert.InDelta(t, -2.0, p.Y, tol)
	assert.Equal(t, 1, Side(r2.Vec{Y: 1}, a, b))
	assert.Equal(t, -1, Side(r2.Vec{Y: -1}, a, b))
	assert.Equal(t, 0, Side(r2.Vec{X: 5}, a, b))
}

func TestPoints(t *testing.T) {
	pts := Points{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 4}, {X: 0, Y: 4}}
	c := pts.Centroid()
	assert.InDelta(t, 1.0, c.X, tol)
	assert.InDelta(t, 2.0, c.Y, tol)
	box := pts.Bounds()
	assert.Equal(t, r2.Vec{X: 2, Y: 4}, box.Size())

	pts.Rotate(math.Pi, c)
	assert.InDelta(t, 2.0, pts[0].X, tol)
	assert.InDelta(t, 4.0, pts[0].Y, tol)

	pts.Translate(r2.Vec{X: -1})
	assert.InDelta(t, 1.0, pts[0].X, tol)

	assert.True(t, Overlap(box, Pad(r2.Box{Min: r2.Vec{X: 2.1}, Max: r2.Vec{X: 3, Y: 1}}, 0.2)))
	assert.False(t, Overlap(box, r2.Box{Min: r2.Vec{X: 2.1}, Max: r2.Vec{X: 3, Y: 1}}))
	assert.Equal(t, r2.Box{}, Points{}.Bounds())
}
