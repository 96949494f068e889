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

func templatePoints(t *testing.T, g *Generator, name string, n int) []r2.Vec {
	t.Helper()
	for _, tp := range g.Library().Templates() {
		if tp.Name == name {
			return points(tp.Mol)[:n]
		}
	}
	t.Fatalf("no template %q", name)
	return nil
}

//onto returns true if every atom lies on one of pts.
func onto(atoms []*chem.Atom, pts []r2.Vec) bool {
	for _, a := range atoms {
		found := false
		for _, p := range pts {
			if v2.Dist(a.Pos(), p) < 1e-9 {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func TestTemplateWithStubs(t *testing.T) {
	g := newGenerator(t)
	stubbed := templatePoints(t, g, "1-methylnorbornane", 7)
	bare := templatePoints(t, g, "norbornane", 7)

	//the ethyl group reaches the stubbed level through its first carbon.
	mol := testmol.Parse("1-ethylnorbornane", "C C C C C C C C C", "0-1 1-2 2-3 3-4 4-5 5-0 0-6 6-3 0-7 7-8")
	require.NoError(t, g.GenerateCoordinates(mol))
	ring := mol.Atoms[:7]
	assert.True(t, onto(ring, stubbed))
	assert.False(t, onto(ring, bare))
	assert.InDelta(t, 1.5, dist(mol.Atom(0), mol.Atom(7)), 1e-6)

	//a substituent elsewhere falls back to the bare skeleton.
	mol = testmol.Parse("2-methylnorbornane", "C C C C C C C C", "0-1 1-2 2-3 3-4 4-5 5-0 0-6 6-3 1-7")
	require.NoError(t, g.GenerateCoordinates(mol))
	assert.True(t, onto(mol.Atoms[:7], bare))
}
