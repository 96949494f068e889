package ring

import (
	"testing"

	chem "github.com/rmera/gosdg"
	"github.com/rmera/gosdg/internal/testmol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sizes(s *Set) []int {
	ret := make([]int, 0, s.Len())
	for _, r := range s.Rings {
		ret = append(ret, r.Len())
	}
	return ret
}

func TestFindRings(t *testing.T) {
	cases := []struct {
		name    string
		mol     *chem.Molecule
		sizes   []int
		systems int
	}{
		{"hexane", testmol.Chain(6), []int{}, 0},
		{"benzene", testmol.Benzene(), []int{6}, 1},
		{"toluene", testmol.Toluene(), []int{6}, 1},
		{"naphthalene", testmol.Naphthalene(), []int{6, 6}, 1},
		{"biphenyl", testmol.Biphenyl(), []int{6, 6}, 2},
		{"spiro", testmol.Spiro(), []int{5, 6}, 1},
		{"norbornane", testmol.Norbornane(), []int{5, 5}, 1},
		{"adamantane", testmol.Adamantane(), []int{6, 6, 6}, 1},
		{"cubane", testmol.Cubane(), []int{4, 4, 4, 4, 4}, 1},
		{"cyclododecane", testmol.Cycle(12), []int{12}, 1},
	}
	det := SSSR{}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			set, err := det.FindRings(c.mol)
			require.NoError(t, err)
			assert.Equal(t, c.sizes, sizes(set))
			assert.Len(t, det.PartitionIntoRingSystems(set), c.systems)
			for _, r := range set.Rings {
				require.Len(t, r.Bonds, r.Len())
				for i, b := range r.Bonds {
					require.NotNil(t, b, "ring bond %d", i)
					assert.True(t, b.Contains(r.Atoms[i]))
					assert.True(t, b.Contains(r.Atoms[(i+1)%r.Len()]))
					assert.True(t, b.InRing)
				}
			}
			for _, a := range c.mol.Atoms {
				assert.Equal(t, set.Contains(a), a.InRing, "atom %d", a.Index)
			}
		})
	}
}

func TestRingOrder(t *testing.T) {
	mol := testmol.Benzene()
	set, err := SSSR{}.FindRings(mol)
	require.NoError(t, err)
	r := set.Rings[0]
	assert.Equal(t, 0, r.Atoms[0].Index)
	assert.Equal(t, 1, r.Atoms[1].Index)
	assert.Equal(t, mol.Atom(5), r.Prev(mol.Atom(0)))
	assert.Equal(t, mol.Atom(1), r.Next(mol.Atom(0)))
}

func TestSystems(t *testing.T) {
	mol := testmol.Parse("phenylcyclopropane+naphthalene", "C C C C C C C C C C C C C",
		"0-1 1-2 2-0 2-3 3:4 4:5 5:6 6:7 7:8 8:3 7:9 9:10 10:11 11:12 12:8")
	det := SSSR{}
	set, err := det.FindRings(mol)
	require.NoError(t, err)
	systems := det.PartitionIntoRingSystems(set)
	require.Len(t, systems, 2)
	assert.Equal(t, 0, systems[0].MinIndex())
	assert.Equal(t, 1, systems[0].Len())
	assert.Equal(t, 2, systems[1].Len())
	assert.Len(t, systems[1].Atoms(), 10)
	assert.Len(t, systems[1].Bonds(), 11)
	assert.Equal(t, 1, systems[1].SharedBonds(systems[1].Rings[0]))
	assert.False(t, mol.BondBetween(mol.Atom(2), mol.Atom(3)).InRing)
}

func TestMostComplex(t *testing.T) {
	mol := testmol.Parse("phenanthrene-like", "C C C C C C C C C C C C C C",
		"0-1 1-2 2-3 3-4 4-5 5-0 4-6 6-7 7-8 8-9 9-5 8-10 10-11 11-12 12-13 13-9")
	set, err := SSSR{}.FindRings(mol)
	require.NoError(t, err)
	mc := set.MostComplex()
	assert.Len(t, set.Connected(mc), 2)
	assert.True(t, mc.Contains(mol.Atom(6)))
}
