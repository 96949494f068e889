package sdg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	chem "github.com/rmera/gosdg"
	"github.com/rmera/gosdg/internal/testmol"
	v2 "github.com/rmera/gosdg/v2"
)

func TestCrossingBrackets(t *testing.T) {
	g := newGenerator(t)
	mol := testmol.Chain(4)
	sru := &chem.Sgroup{Type: chem.SgroupSRU, Subscript: "n", Atoms: mol.Atoms[1:3]}
	mol.Sgroups = []*chem.Sgroup{sru}
	require.NoError(t, g.GenerateCoordinates(mol))
	require.Len(t, sru.Brackets, 2)
	crossing := chem.CrossingBonds(mol, sru.Atoms)
	for i, br := range sru.Brackets {
		b := crossing[i]
		assert.InDelta(t, 1.5, v2.Dist(br.P1, br.P2), 1e-9)
		m := v2.Mid(b.At1.Pos(), b.At2.Pos())
		assert.InDelta(t, 0, v2.Dist(m, v2.Mid(br.P1, br.P2)), 1e-9)
		//the inside of the group is to the left of each bracket.
		inner := b.At1
		if !sru.Contains(inner) {
			inner = b.At2
		}
		assert.Equal(t, 1, v2.Side(inner.Pos(), br.P1, br.P2))
	}
}

func TestBoxBrackets(t *testing.T) {
	g := newGenerator(t)
	mol := testmol.Benzene()
	gen := &chem.Sgroup{Type: chem.SgroupGeneric, Atoms: mol.Atoms}
	data := &chem.Sgroup{Type: chem.SgroupData, Atoms: mol.Atoms[:1]}
	mol.Sgroups = []*chem.Sgroup{gen, data}
	require.NoError(t, g.GenerateCoordinates(mol))
	require.Len(t, gen.Brackets, 2)
	assert.Empty(t, data.Brackets)
	box := bounds(mol.Atoms)
	left, right := gen.Brackets[0], gen.Brackets[1]
	assert.InDelta(t, box.Min.X-0.75, left.P1.X, 1e-9)
	assert.Equal(t, left.P1.X, left.P2.X)
	assert.Greater(t, left.P1.Y, left.P2.Y)
	assert.InDelta(t, box.Max.X+0.75, right.P1.X, 1e-9)
	assert.Less(t, right.P1.Y, right.P2.Y)
}

func TestMultipleOverlay(t *testing.T) {
	g := newGenerator(t)
	mol := testmol.Parse("dimer", "C O C O", "0-1 1-2 2-3")
	mul := &chem.Sgroup{Type: chem.SgroupMultiple, Subscript: "2", Atoms: mol.Atoms, ParentAtoms: mol.Atoms[:2], Multiplier: 2}
	mol.Sgroups = []*chem.Sgroup{mul}
	require.NoError(t, g.GenerateCoordinates(mol))
	assert.Equal(t, mol.Atom(0).Pos(), mol.Atom(2).Pos())
	assert.Equal(t, mol.Atom(1).Pos(), mol.Atom(3).Pos())
	assert.Len(t, mul.Brackets, 2)
}

func TestPositionalVariation(t *testing.T) {
	g := newGenerator(t)
	mol := testmol.Parse("anisole", "C C C C C C O C", "0:1 1:2 2:3 3:4 4:5 5:0 0-6 6-7")
	sub := mol.BondBetween(mol.Atom(0), mol.Atom(6))
	pos := &chem.Sgroup{Type: chem.SgroupPositional, Atoms: mol.Atoms[:3], Bonds: []*chem.Bond{sub}}
	mol.Sgroups = []*chem.Sgroup{pos}
	require.NoError(t, g.GenerateCoordinates(mol))
	mid := v2.Mid(mol.Atom(0).Pos(), mol.Atom(1).Pos())
	assert.InDelta(t, 1.5, v2.Dist(mid, mol.Atom(6).Pos()), 1e-9)
	centre := v2.Points(points(mol)[:6]).Centroid()
	assert.Greater(t, v2.Dist(mol.Atom(6).Pos(), centre), v2.Dist(mid, centre))
	//the rest of the substituent moves with it.
	assert.InDelta(t, 1.5, dist(mol.Atom(6), mol.Atom(7)), 1e-9)
}

func TestBadGroupIsSkipped(t *testing.T) {
	g := newGenerator(t)
	mol := testmol.Benzene()
	bad := &chem.Sgroup{Type: chem.SgroupPositional, Atoms: mol.Atoms[:2]}
	sru := &chem.Sgroup{Type: chem.SgroupSRU, Atoms: mol.Atoms[:3]}
	mol.Sgroups = []*chem.Sgroup{bad, sru}
	require.NoError(t, g.GenerateCoordinates(mol))
	assert.Len(t, sru.Brackets, 2)
	assert.NotEqual(t, r2.Vec{}, sru.Brackets[0].P1)
}
