package sdg

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"

	chem "github.com/rmera/gosdg"
	"github.com/rmera/gosdg/internal/testmol"
	v2 "github.com/rmera/gosdg/v2"
)

func TestArcPoints(t *testing.T) {
	const l = 1.5
	p, q := r2.Vec{}, r2.Vec{X: 2.5}
	for _, m := range []int{1, 2, 3, 5} {
		for _, side := range []int{1, -1} {
			pts := arcPoints(p, q, m, l, side)
			assert.Len(t, pts, m)
			chain := append(append([]r2.Vec{p}, pts...), q)
			for i := 1; i < len(chain); i++ {
				assert.InDelta(t, l, v2.Dist(chain[i-1], chain[i]), 1e-6, "m=%d side=%d segment %d", m, side, i)
			}
			for _, x := range pts {
				assert.Equal(t, side, v2.Side(x, p, q), "m=%d", m)
			}
		}
	}
	//too far apart: a straight line.
	pts := arcPoints(p, r2.Vec{X: 10}, 2, l, 1)
	assert.InDelta(t, 10.0/3, pts[0].X, 1e-9)
	assert.InDelta(t, 0, pts[1].Y, 1e-9)
	assert.Empty(t, arcPoints(p, q, 0, l, 1))
}

func TestPolygon(t *testing.T) {
	for n := 3; n <= 8; n++ {
		pts := polygon(r2.Vec{X: 1, Y: 1}, circumradius(1.5, n), 0, n, 1)
		for i := range pts {
			assert.InDelta(t, 1.5, v2.Dist(pts[i], pts[(i+1)%n]), 1e-9)
		}
		mid := v2.Mid(pts[0], pts[1])
		assert.InDelta(t, apothem(1.5, n), v2.Dist(mid, r2.Vec{X: 1, Y: 1}), 1e-9)
	}
}

func TestLargestGap(t *testing.T) {
	start, width := largestGap(r2.Vec{}, nil)
	assert.Equal(t, 0.0, start)
	assert.InDelta(t, v2.TwoPi, width, 1e-12)
	start, width = largestGap(r2.Vec{}, []r2.Vec{{X: 1}, {Y: 1}})
	assert.InDelta(t, math.Pi/2, start, 1e-12)
	assert.InDelta(t, 3*math.Pi/2, width, 1e-12)
}

func TestSideOfAndPath(t *testing.T) {
	mol := testmol.Toluene()
	b := mol.BondBetween(mol.Atom(0), mol.Atom(6))
	assert.Equal(t, []*chem.Atom{mol.Atom(6)}, sideOf(mol, b, mol.Atom(6)))
	assert.Len(t, sideOf(mol, b, mol.Atom(0)), 6)
	path := shortestPath(mol, mol.Atom(6), mol.Atom(3))
	assert.Len(t, path, 4)
	assert.Nil(t, shortestPath(mol, mol.Atom(2), mol.Atom(2)))
}
