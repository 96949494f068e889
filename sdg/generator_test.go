package sdg

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	chem "github.com/rmera/gosdg"
	"github.com/rmera/gosdg/internal/testmol"
	"github.com/rmera/gosdg/ring"
	v2 "github.com/rmera/gosdg/v2"
)

func newGenerator(t *testing.T) *Generator {
	t.Helper()
	g, err := New(nil)
	require.NoError(t, err)
	return g
}

func dist(a, b *chem.Atom) float64 {
	return v2.Dist(a.Pos(), b.Pos())
}

func minDistance(mol *chem.Molecule) float64 {
	m := math.Inf(1)
	for i, a := range mol.Atoms {
		for _, b := range mol.Atoms[i+1:] {
			m = math.Min(m, dist(a, b))
		}
	}
	return m
}

func points(mol *chem.Molecule) []r2.Vec {
	ret := make([]r2.Vec, mol.Len())
	for i, a := range mol.Atoms {
		ret[i] = a.Pos()
	}
	return ret
}

func TestSingleAtom(t *testing.T) {
	g := newGenerator(t)
	mol := testmol.Parse("methane", "C", "")
	require.NoError(t, g.GenerateCoordinates(mol))
	assert.Equal(t, r2.Vec{}, mol.Atom(0).Pos())
}

func TestTwoAtoms(t *testing.T) {
	g := newGenerator(t)
	mol := testmol.Parse("ethane", "C C", "0-1")
	require.NoError(t, g.GenerateCoordinates(mol))
	assert.Equal(t, r2.Vec{}, mol.Atom(0).Pos())
	assert.Equal(t, r2.Vec{X: 1.5}, mol.Atom(1).Pos())
}

func TestEmpty(t *testing.T) {
	g := newGenerator(t)
	assert.NoError(t, g.GenerateCoordinates(chem.NewMolecule("empty")))
	assert.NoError(t, g.GenerateCoordinates(nil))
}

func TestGenerateCoordinates(t *testing.T) {
	cases := []struct {
		mol   *chem.Molecule
		exact bool //every bond at exactly the bond length
	}{
		{testmol.Chain(6), true},
		{testmol.Benzene(), true},
		{testmol.Toluene(), true},
		{testmol.Naphthalene(), true},
		{testmol.Biphenyl(), true},
		{testmol.Spiro(), true},
		{testmol.Pyridine(), true},
		{testmol.Cycle(12), true},
		{testmol.Norbornane(), false},
		{testmol.Adamantane(), false},
		{testmol.Cubane(), false},
	}
	g := newGenerator(t)
	bl := g.Options().BondLength()
	for _, c := range cases {
		t.Run(c.mol.Name, func(t *testing.T) {
			require.NoError(t, g.GenerateCoordinates(c.mol))
			require.True(t, c.mol.Has2D())
			assert.Greater(t, minDistance(c.mol), 0.3*bl)
			if !c.exact {
				return
			}
			for _, b := range c.mol.Bonds {
				assert.InDelta(t, bl, dist(b.At1, b.At2), 1e-3*bl, "bond %d", b.Index)
			}
		})
	}
}

func TestDeterminism(t *testing.T) {
	g := newGenerator(t)
	build := func() *chem.Molecule {
		return testmol.Parse("mix", "C C C C C C C C C C C C C O N",
			"0:1 1:2 2:3 3:4 4:5 5:0 0-6 6-7 7-8 8-9 9-10 10-11 11-8 3-12 12=13 12-14")
	}
	m1, m2 := build(), build()
	require.NoError(t, g.GenerateCoordinates(m1))
	require.NoError(t, g.GenerateCoordinates(m2))
	assert.Equal(t, points(m1), points(m2))
}

func TestIdempotentWhenFixed(t *testing.T) {
	g := newGenerator(t)
	mol := testmol.Toluene()
	require.NoError(t, g.GenerateCoordinates(mol))
	before := points(mol)
	g2 := NewGenerator(g.Options().Copy(), g.Library())
	g2.Options().Fixed(NewFixedSet(mol.Atoms, nil))
	require.NoError(t, g2.GenerateCoordinates(mol))
	assert.Equal(t, before, points(mol))
}

func TestPartiallyFixed(t *testing.T) {
	g := newGenerator(t)
	mol := testmol.Toluene()
	require.NoError(t, g.GenerateCoordinates(mol))
	ring := mol.Atoms[:6]
	before := points(mol)[:6]
	mol.Atom(6).SetPos(r2.Vec{X: 100, Y: 100})
	opts := g.Options().Copy()
	opts.Fixed(NewFixedSet(ring, nil))
	require.NoError(t, NewGenerator(opts, g.Library()).GenerateCoordinates(mol))
	assert.Equal(t, before, points(mol)[:6])
	assert.InDelta(t, 1.5, dist(mol.Atom(0), mol.Atom(6)), 1e-6)
	//fixed atoms without coordinates are free.
	fresh := testmol.Benzene()
	opts.Fixed(NewFixedSet(fresh.Atoms[:2], nil))
	require.NoError(t, NewGenerator(opts, g.Library()).GenerateCoordinates(fresh))
	assert.True(t, fresh.Has2D())
}

func TestMacrocycle(t *testing.T) {
	g := newGenerator(t)
	for _, n := range []int{10, 12, 13, 15} {
		mol := testmol.Cycle(n)
		require.NoError(t, g.GenerateCoordinates(mol))
		c := v2.Points(points(mol)).Centroid()
		lo, hi := math.Inf(1), 0.0
		for _, a := range mol.Atoms {
			r := v2.Dist(a.Pos(), c)
			lo, hi = math.Min(lo, r), math.Max(hi, r)
		}
		assert.Greater(t, hi-lo, 0.1, "ring of %d drawn as a polygon", n)
		for _, b := range mol.Bonds {
			assert.InDelta(t, 1.5, dist(b.At1, b.At2), 1e-3, "ring of %d", n)
		}
	}
	//small rings are regular polygons.
	mol := testmol.Cycle(6)
	require.NoError(t, g.GenerateCoordinates(mol))
	c := v2.Points(points(mol)).Centroid()
	for _, a := range mol.Atoms {
		assert.InDelta(t, 1.5, v2.Dist(a.Pos(), c), 1e-6)
	}
}

func TestStadium(t *testing.T) {
	for n := 10; n < 30; n++ {
		row, cl, cr, sep := stadium(n)
		assert.Equal(t, n, 2*row+cl+cr, "n=%d", n)
		assert.Equal(t, 1, row%2, "n=%d", n)
		assert.Greater(t, sep, 0.0)
		assert.LessOrEqual(t, cl, cr)
	}
}

func TestDoubleBondStereo(t *testing.T) {
	g := newGenerator(t)
	for _, conf := range []chem.Conformation{chem.Together, chem.Opposite} {
		mol := testmol.Parse("2-butene", "C C C C", "0-1 1=2 2-3")
		b := mol.BondBetween(mol.Atom(1), mol.Atom(2))
		mol.Stereo = []*chem.DoubleBondStereo{{Bond: b, Ligands: [2]*chem.Atom{mol.Atom(0), mol.Atom(3)}, Conf: conf}}
		require.NoError(t, g.GenerateCoordinates(mol))
		s0 := v2.Side(mol.Atom(0).Pos(), mol.Atom(1).Pos(), mol.Atom(2).Pos())
		s3 := v2.Side(mol.Atom(3).Pos(), mol.Atom(1).Pos(), mol.Atom(2).Pos())
		require.NotZero(t, s0)
		assert.Equal(t, conf == chem.Together, s0 == s3, conf.String())
	}
}

func TestAlkyneIsStraight(t *testing.T) {
	g := newGenerator(t)
	mol := testmol.Parse("2-butyne", "C C C C", "0-1 1#2 2-3")
	require.NoError(t, g.GenerateCoordinates(mol))
	assert.InDelta(t, math.Pi, v2.Between(r2.Sub(mol.Atom(0).Pos(), mol.Atom(1).Pos()), r2.Sub(mol.Atom(2).Pos(), mol.Atom(1).Pos())), 1e-6)
}

func TestOrientation(t *testing.T) {
	g := newGenerator(t)
	mol := testmol.Chain(8)
	require.NoError(t, g.GenerateCoordinates(mol))
	b := v2.Points(points(mol)).Bounds()
	assert.Greater(t, b.Max.X-b.Min.X, b.Max.Y-b.Min.Y)

	frag := testmol.Parse("propyl", "* C C C", "0-1 1-2 2-3")
	frag.Atom(0).AttachPt = 1
	require.NoError(t, g.GenerateCoordinates(frag))
	d := r2.Sub(frag.Atom(1).Pos(), frag.Atom(0).Pos())
	assert.InDelta(t, v2.Deg2Rad(-30), v2.Angle(d), 1e-9)
}

type brokenDetector struct{}

func (brokenDetector) FindRings(*chem.Molecule) (*ring.Set, error) {
	return nil, errors.New("broken")
}

func (brokenDetector) PartitionIntoRingSystems(*ring.Set) []*ring.Set {
	return nil
}

func TestDetectorError(t *testing.T) {
	g := newGenerator(t)
	g.Detector(brokenDetector{})
	err := g.GenerateCoordinates(testmol.Benzene())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrLayout))
}

func TestNoLibrary(t *testing.T) {
	g := NewGenerator(nil, nil)
	mol := testmol.Adamantane()
	require.NoError(t, g.GenerateCoordinates(mol))
	assert.True(t, mol.Has2D())
}
