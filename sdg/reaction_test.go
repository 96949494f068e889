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

func oxidation() *chem.Reaction {
	ethanol := testmol.Parse("ethanol", "C C O", "0-1 1-2")
	acetaldehyde := testmol.Parse("acetaldehyde", "C C O", "0-1 1=2")
	for i := 0; i < 3; i++ {
		ethanol.Atom(i).MapIdx = i + 1
		acetaldehyde.Atom(i).MapIdx = i + 1
	}
	oxidant := testmol.Parse("oxygen", "O O", "0=1")
	return &chem.Reaction{Reactants: []*chem.Molecule{ethanol}, Agents: []*chem.Molecule{oxidant}, Products: []*chem.Molecule{acetaldehyde}}
}

func TestReactionLayout(t *testing.T) {
	g := newGenerator(t)
	rxn := oxidation()
	require.NoError(t, g.GenerateReactionCoordinates(rxn))
	for _, m := range rxn.Molecules() {
		require.True(t, m.Has2D(), m.Name)
	}
	r := bounds(rxn.Reactants[0].Atoms)
	a := bounds(rxn.Agents[0].Atoms)
	p := bounds(rxn.Products[0].Atoms)
	assert.Less(t, r.Max.X, a.Min.X)
	assert.Less(t, a.Max.X, p.Min.X)
	assert.Greater(t, a.Min.Y, 0.0)
	assert.InDelta(t, 0, (r.Min.Y+r.Max.Y)/2, 1e-9)
	assert.InDelta(t, 0, (p.Min.Y+p.Max.Y)/2, 1e-9)
}

func TestMappedReactionAlignment(t *testing.T) {
	opts := DefaultOptions()
	opts.AlignMappedReaction(true)
	g, err := New(opts)
	require.NoError(t, err)
	rxn := oxidation()
	require.NoError(t, g.GenerateReactionCoordinates(rxn))
	re, pr := rxn.Reactants[0], rxn.Products[0]
	for i := 1; i < 3; i++ {
		dr := r2.Sub(re.Atom(i).Pos(), re.Atom(0).Pos())
		dp := r2.Sub(pr.Atom(i).Pos(), pr.Atom(0).Pos())
		assert.InDelta(t, 0, v2.Dist(dr, dp), 1e-9, "atom %d", i)
	}
}

func TestAlignmentSet(t *testing.T) {
	rxn := oxidation()
	g := newGenerator(t)
	require.NoError(t, g.GenerateCoordinates(rxn.Products[0]))
	//unmapped atoms stay free.
	re := testmol.Parse("propanol", "C C C O", "0-1 1-2 2-3")
	re.Atom(0).MapIdx = 1
	re.Atom(1).MapIdx = 2
	set := alignmentSet(re, chem.MappedAtoms(rxn.Products))
	require.NotNil(t, set)
	assert.Len(t, set.Atoms, 2)
	assert.Len(t, set.Bonds, 1)
	assert.Equal(t, rxn.Products[0].Atom(1).Pos(), re.Atom(1).Pos())
	assert.Nil(t, alignmentSet(testmol.Chain(3), chem.MappedAtoms(rxn.Products)))
}
