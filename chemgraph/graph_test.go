package chemgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/simple"

	chem "github.com/rmera/gosdg"
	"github.com/rmera/gosdg/internal/testmol"
)

func TestComponents(t *testing.T) {
	mol := testmol.Parse("mixture", "C O C C N C", "0-2 2-5 1-3 3-4")
	parts := PartitionIntoComponents(mol)
	require.Len(t, parts, 2)
	assert.Equal(t, []*chem.Atom{mol.Atom(0), mol.Atom(2), mol.Atom(5)}, parts[0].Atoms)
	assert.Equal(t, []*chem.Atom{mol.Atom(1), mol.Atom(3), mol.Atom(4)}, parts[1].Atoms)
	assert.Len(t, parts[0].Bonds, 2)
	//views share the atoms of the parent.
	assert.Same(t, mol.Atom(3), parts[1].Atom(1))
	assert.Equal(t, 2, ComponentCount(mol))
	assert.False(t, IsConnected(mol))
	assert.True(t, IsConnected(testmol.Benzene()))
}

func TestEmptyAndSingle(t *testing.T) {
	assert.Nil(t, PartitionIntoComponents(chem.NewMolecule("empty")))
	assert.Equal(t, 0, ComponentCount(chem.NewMolecule("empty")))
	assert.False(t, IsConnected(chem.NewMolecule("empty")))
	ions := testmol.Parse("ions", "Na+ Cl- Na+", "")
	parts := PartitionIntoComponents(ions)
	require.Len(t, parts, 3)
	for i, p := range parts {
		assert.Equal(t, ions.Atom(i), p.Atom(0))
	}
}

func TestStereoCarried(t *testing.T) {
	mol := testmol.Parse("two alkenes", "C C C C C C", "0-1 1=2 2-3 4=5")
	st := &chem.DoubleBondStereo{Bond: mol.Bonds[1], Ligands: [2]*chem.Atom{mol.Atom(0), mol.Atom(3)}, Conf: chem.Together}
	mol.Stereo = []*chem.DoubleBondStereo{st}
	parts := PartitionIntoComponents(mol)
	require.Len(t, parts, 2)
	assert.Equal(t, []*chem.DoubleBondStereo{st}, parts[0].Stereo)
	assert.Empty(t, parts[1].Stereo)
}

func TestTopology(t *testing.T) {
	mol := testmol.Benzene()
	top := TopologyFromChem(mol)
	assert.Equal(t, 6, top.Nodes().Len())
	assert.Equal(t, 6, top.Edges().Len())
	assert.Equal(t, mol.Atom(4), top.AtomOf(simple.Node(4)))
	assert.True(t, top.HasEdgeBetween(0, 5))
}
