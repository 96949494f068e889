package templates

import (
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	chem "github.com/rmera/gosdg"
	"github.com/rmera/gosdg/internal/testmol"
	"github.com/rmera/gosdg/match"
)

func meanBond(mol *chem.Molecule) float64 {
	s := 0.0
	for _, b := range mol.Bonds {
		s += r2.Norm(r2.Sub(b.At1.Pos(), b.At2.Pos()))
	}
	return s / float64(len(mol.Bonds))
}

func TestLoadBundled(t *testing.T) {
	lib := NewLibrary(nil)
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, lib.LoadBundled())
		}()
	}
	wg.Wait()
	assert.Equal(t, 8, lib.Len())
	assert.Contains(t, lib.Names(), "adamantane")
	assert.Contains(t, lib.Names(), "cubane")
	for _, tp := range lib.Templates() {
		assert.InDelta(t, BondLength, meanBond(tp.Mol), 0.01, tp.Name)
	}
}

func TestLookupAndAssign(t *testing.T) {
	lib := NewLibrary(match.VF2{})
	require.NoError(t, lib.LoadBundled())
	for _, mol := range []*chem.Molecule{testmol.Adamantane(), testmol.Norbornane(), testmol.Cubane()} {
		require.True(t, lib.LookupAndAssign(mol), mol.Name)
		require.True(t, mol.Has2D(), mol.Name)
		assert.InDelta(t, BondLength, meanBond(mol), 0.01, mol.Name)
		for i, a := range mol.Atoms {
			for _, o := range mol.Atoms[i+1:] {
				assert.Greater(t, r2.Norm(r2.Sub(a.Pos(), o.Pos())), 0.5, mol.Name)
			}
		}
	}
	benz := testmol.Benzene()
	assert.False(t, lib.LookupAndAssign(benz))
	assert.False(t, benz.Has2D())
}

func TestHeteroLevels(t *testing.T) {
	lib := NewLibrary(nil)
	require.NoError(t, lib.LoadBundled())
	quin := testmol.Parse("quinuclidine", "N C C C C C C C", "0-1 1-2 2-3 3-4 4-5 5-0 0-6 6-7 7-3")
	assert.True(t, lib.LookupAndAssign(quin))
	//7-azanorbornane is only known through the anonymized norbornane.
	aza := testmol.Parse("7-azanorbornane", "C C C C C C N", "0-1 1-2 2-3 3-4 4-5 5-0 0-6 6-3")
	assert.False(t, lib.LookupAndAssign(aza))
	anon, changed := Anonymize(aza)
	require.True(t, changed)
	assert.True(t, lib.LookupAndAssign(anon))
	assert.False(t, aza.Has2D())
}

func TestKey(t *testing.T) {
	a := testmol.Parse("a", "C C C C O", "0-1 1-2 2-3 3-0 0-4")
	b := testmol.Parse("b", "O C C C C", "0-1 1-2 2-3 3-4 4-1")
	c := testmol.Parse("c", "C C C C O", "0-1 1-2 2-3 3-0 1-4")
	d := testmol.Parse("d", "C C C C O", "0-1 1-2 2-3 3-0 3-4")
	assert.Equal(t, Key(a), Key(b))
	assert.Equal(t, Key(a), Key(c))
	assert.Equal(t, Key(a), Key(d))
	assert.NotEqual(t, Key(testmol.Benzene()), Key(testmol.Pyridine()))
	assert.NotEqual(t, Key(testmol.Chain(6)), Key(testmol.Cycle(6)))
	assert.Equal(t, "0/0", Key(chem.NewMolecule("empty")))
}

func TestLoad(t *testing.T) {
	lib := NewLibrary(nil)
	def := `# a square
template "cyclobutane" {
  atom C 0 0
  atom C 1.5 0
  atom C 1.5 1.5
  atom C 0 1.5
  bond 0 1
  bond 1 2 1
  bond 2 3
  bond 3 0
}`
	require.NoError(t, lib.Load(strings.NewReader(def)))
	assert.Equal(t, []string{"cyclobutane"}, lib.Names())
	sq := testmol.Cycle(4)
	require.True(t, lib.LookupAndAssign(sq))
	d := r2.Norm(r2.Sub(sq.Atom(0).Pos(), sq.Atom(2).Pos()))
	assert.InDelta(t, 1.5*math.Sqrt2, d, 1e-9)

	assert.Error(t, lib.Load(strings.NewReader(`template "x" { atom C 0 }`)))
	assert.Error(t, lib.Load(strings.NewReader(`template "x" { atom C 0 0 bond 0 1 }`)))
	assert.Error(t, lib.Add("nocoords", testmol.Benzene()))
}
