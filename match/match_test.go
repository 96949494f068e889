package match

import (
	"testing"

	chem "github.com/rmera/gosdg"
	"github.com/rmera/gosdg/internal/testmol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelfMatch(t *testing.T) {
	benz := testmol.Benzene()
	maps := VF2{}.Match(benz, testmol.Benzene(), ElementMatch, OrderMatch)
	//6 rotations times 2 reflections.
	assert.Len(t, maps, 12)
}

func TestSubstructure(t *testing.T) {
	pyr := testmol.Pyridine()
	query := testmol.Parse("C-N", "C N", "0-1")
	maps := VF2{}.Match(query, pyr, ElementMatch, AnyBond)
	require.Len(t, maps, 2)
	for _, m := range maps {
		assert.Equal(t, 0, m[1])
		atoms := m.Atoms(pyr)
		assert.Equal(t, "C", atoms[0].Symbol)
	}
	assert.Empty(t, VF2{}.Match(query, pyr, ElementMatch, OrderMatch))
}

func TestNoMatch(t *testing.T) {
	assert.Empty(t, VF2{}.Match(testmol.Cycle(5), testmol.Benzene(), AnyAtom, AnyBond))
	assert.Empty(t, VF2{}.Match(testmol.Benzene(), testmol.Cycle(5), AnyAtom, AnyBond))
	assert.Empty(t, VF2{}.Match(chem.NewMolecule("empty"), testmol.Benzene(), nil, nil))
}

func TestLimitAndRestrict(t *testing.T) {
	target := testmol.Chain(6)
	query := testmol.Chain(2)
	assert.Len(t, VF2{}.Match(query, target, nil, nil), 10)
	assert.Len(t, VF2{Limit: 3}.Match(query, target, nil, nil), 3)
	allowed := map[*chem.Atom]bool{target.Atom(4): true, target.Atom(5): true}
	maps := VF2{}.Match(query, target, Restrict(AnyAtom, allowed), nil)
	require.Len(t, maps, 2)
	assert.ElementsMatch(t, []int{4, 5}, []int(maps[0]))
}

func TestDisconnectedQuery(t *testing.T) {
	query := testmol.Parse("two carbons", "C C", "")
	maps := VF2{}.Match(query, testmol.Chain(3), ElementMatch, nil)
	assert.Len(t, maps, 6)
}
