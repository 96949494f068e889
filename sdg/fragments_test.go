package sdg

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	chem "github.com/rmera/gosdg"
	"github.com/rmera/gosdg/chemgraph"
	"github.com/rmera/gosdg/internal/testmol"
	v2 "github.com/rmera/gosdg/v2"
)

func TestSaltDistance(t *testing.T) {
	g := newGenerator(t)
	salt := testmol.SodiumChloride()
	require.NoError(t, g.GenerateCoordinates(salt))
	assert.Empty(t, salt.Bonds)
	assert.Empty(t, salt.Atom(0).Bonds)
	ionic := dist(salt.Atom(0), salt.Atom(1))
	assert.InDelta(t, 1.25*1.5, ionic, 1e-9)

	neutral := testmol.Parse("two atoms", "C O", "")
	require.NoError(t, g.GenerateCoordinates(neutral))
	assert.InDelta(t, 1.5*1.5, dist(neutral.Atom(0), neutral.Atom(1)), 1e-9)
	assert.Less(t, ionic, dist(neutral.Atom(0), neutral.Atom(1)))
}

func TestCounterIon(t *testing.T) {
	g := newGenerator(t)
	mol := testmol.Acetate()
	require.NoError(t, g.GenerateCoordinates(mol))
	assert.Len(t, mol.Bonds, 3)
	assert.InDelta(t, 1.25*1.5, dist(mol.Atom(3), mol.Atom(4)), 1e-9)
	for _, b := range mol.Bonds {
		assert.InDelta(t, 1.5, dist(b.At1, b.At2), 1e-6)
	}
}

func TestFragmentTiling(t *testing.T) {
	g := newGenerator(t)
	mol := testmol.Parse("mixture", "C C C C C C C C O C C C",
		"0:1 1:2 2:3 3:4 4:5 5:0 6-7 9-10 10-11")
	require.NoError(t, g.GenerateCoordinates(mol))
	require.True(t, mol.Has2D())
	groups := [][]*chem.Atom{mol.Atoms[:6], mol.Atoms[6:8], mol.Atoms[8:9], mol.Atoms[9:]}
	for i, a := range groups {
		for _, b := range groups[i+1:] {
			assert.False(t, v2.Overlap(bounds(a), bounds(b)), "fragments %d and %d overlap", a[0].Index, b[0].Index)
		}
	}
	//the largest fragment comes first.
	assert.Less(t, bounds(groups[0]).Max.X, bounds(groups[3]).Min.X)
}

func TestIonGroups(t *testing.T) {
	g := newGenerator(t)
	//a dication with two separate anions: every ion pairs, nothing is left.
	mol := testmol.Parse("calcium chloride", "Cl- Ca2+ Cl-", "")
	require.NoError(t, g.GenerateCoordinates(mol))
	assert.Empty(t, mol.Bonds)
	assert.InDelta(t, 1.25*1.5, dist(mol.Atom(0), mol.Atom(1)), 1e-9)
	assert.InDelta(t, 1.25*1.5, dist(mol.Atom(2), mol.Atom(1)), 1e-9)

	//charged fragments without partners are put in rows.
	ions := testmol.Parse("ions", "Na+ Na+ Na+", "")
	require.NoError(t, g.GenerateCoordinates(ions))
	y := ions.Atom(0).Pos().Y
	for i := 1; i < 3; i++ {
		assert.InDelta(t, y, ions.Atom(i).Pos().Y, 1e-9)
		assert.InDelta(t, 1.5*1.5, dist(ions.Atom(i-1), ions.Atom(i)), 1e-9)
	}
}

func TestPairIons(t *testing.T) {
	mol := testmol.Parse("salt", "Ca2+ O- C O-", "1-2 2-3")
	mol.FillIndexes()
	pairs := pairIons(mol, chemgraph.PartitionIntoComponents(mol))
	//a second bond between the same two fragments would close a ring.
	require.Len(t, pairs, 1)
	assert.Equal(t, mol.Atom(0), pairs[0].cation)
	assert.Equal(t, mol.Atom(1), pairs[0].anion)
	for _, p := range pairs {
		require.NoError(t, mol.RemoveBond(p.bond))
	}
	assert.Len(t, mol.Bonds, 2)
}

func TestTileRows(t *testing.T) {
	fixed := &fixedState{atoms: map[*chem.Atom]bool{}, bonds: map[*chem.Bond]bool{}}
	grid := func(n int) []*chem.Atom {
		mol := testmol.Parse("dots", strings.Repeat("C ", n), "")
		mol.FillIndexes()
		tiles := make([]*tile, n)
		for i, a := range mol.Atoms {
			a.SetPos(r2.Vec{})
			tiles[i] = newTile([]*chem.Atom{a}, fixed)
		}
		tileFragments(tiles, 0.25, 1.5)
		return mol.Atoms
	}
	rows := func(atoms []*chem.Atom) int {
		ys := map[float64]bool{}
		for _, a := range atoms {
			ys[math.Round(a.Pos().Y*1e6)] = true
		}
		return len(ys)
	}
	//three pieces make one row of three, not two rows.
	assert.Equal(t, 1, rows(grid(3)))
	assert.Equal(t, 2, rows(grid(4)))
	assert.Equal(t, 2, rows(grid(8)))
	assert.Equal(t, 3, rows(grid(9)))
}
