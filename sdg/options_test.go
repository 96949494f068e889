package sdg

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	chem "github.com/rmera/gosdg"
	"github.com/rmera/gosdg/internal/testmol"
)

func TestDecodeHeuristics(t *testing.T) {
	h, err := DecodeHeuristics(strings.NewReader("rotation_step = 15\nionic_stretch = 1.5\n"))
	require.NoError(t, err)
	assert.Equal(t, 15.0, h.RotationStep)
	assert.Equal(t, 1.5, h.IonicStretch)
	def := DefaultHeuristics()
	assert.Equal(t, def.MinMacrocycleSize, h.MinMacrocycleSize)
	assert.Equal(t, def.OverlapThreshold, h.OverlapThreshold)

	_, err = DecodeHeuristics(strings.NewReader("rotation_stpe = 15\n"))
	assert.ErrorContains(t, err, "rotation_stpe")
	_, err = DecodeHeuristics(strings.NewReader("overlap_threshold = 2.0\n"))
	assert.ErrorContains(t, err, "overlap_threshold")
	_, err = DecodeHeuristics(strings.NewReader("rotation_step = \"fast\"\n"))
	assert.Error(t, err)
}

func TestLoadHeuristics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sdg.toml")
	require.NoError(t, os.WriteFile(path, []byte("# denser macrocycles\nmin_macrocycle_size = 8\n"), 0o644))
	h, err := LoadHeuristics(path)
	require.NoError(t, err)
	assert.Equal(t, 8, h.MinMacrocycleSize)
	_, err = LoadHeuristics(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestOptions(t *testing.T) {
	o := DefaultOptions()
	assert.Equal(t, 1.5, o.BondLength())
	assert.Equal(t, 1.5, o.BondLength(-1))
	assert.Equal(t, 2.0, o.BondLength(2))
	assert.Equal(t, r2.Vec{Y: 1}, o.FirstBondVector())
	assert.Equal(t, r2.Vec{Y: 1}, o.FirstBondVector(r2.Vec{}))
	assert.InDelta(t, 1.0, o.FirstBondVector(r2.Vec{X: 3}).X, 1e-12)
	assert.Nil(t, o.Fixed())
	assert.False(t, o.AlignMappedReaction())
	c := o.Copy()
	c.BondLength(3)
	assert.Equal(t, 2.0, o.BondLength())
	assert.NoError(t, o.Heuristics().Check())
}

func TestBondLengthScales(t *testing.T) {
	opts := DefaultOptions()
	opts.BondLength(1)
	g, err := New(opts)
	require.NoError(t, err)
	for _, mol := range []*chem.Molecule{testmol.Naphthalene(), testmol.Toluene()} {
		require.NoError(t, g.GenerateCoordinates(mol))
		for _, b := range mol.Bonds {
			assert.InDelta(t, 1.0, dist(b.At1, b.At2), 1e-6, mol.Name)
		}
	}
	//templates are scaled too.
	ad := testmol.Adamantane()
	require.NoError(t, g.GenerateCoordinates(ad))
	s := 0.0
	for _, b := range ad.Bonds {
		s += dist(b.At1, b.At2)
	}
	assert.InDelta(t, 1.0, s/float64(len(ad.Bonds)), 0.01)
}

func TestInvalidHeuristicsRejected(t *testing.T) {
	g := newGenerator(t)
	h := DefaultHeuristics()
	h.RotationStep = 0
	g.Options().Heuristics(h)
	mol := testmol.Chain(5)
	err := g.GenerateCoordinates(mol)
	require.Error(t, err)
	assert.ErrorContains(t, err, "rotation_step")
	assert.False(t, errors.Is(err, ErrLayout))
	for _, a := range mol.Atoms {
		assert.False(t, a.Has2D())
	}

	h = DefaultHeuristics()
	h.MinMacrocycleSize = 0
	g.Options().Heuristics(h)
	assert.ErrorContains(t, g.GenerateCoordinates(testmol.Benzene()), "min_macrocycle_size")
	assert.Error(t, g.GenerateReactionCoordinates(&chem.Reaction{Reactants: []*chem.Molecule{testmol.Chain(3)}}))

	g.Options().Heuristics(DefaultHeuristics())
	assert.NoError(t, g.GenerateCoordinates(testmol.Chain(5)))
}

func TestOrientWithoutStep(t *testing.T) {
	g := newGenerator(t)
	mol := testmol.Chain(4)
	require.NoError(t, g.GenerateCoordinates(mol))
	before := points(mol)
	l := g.newLayout(mol, g.newFixedState(mol, nil))
	l.h.RotationStep = 0
	l.orient()
	assert.Equal(t, before, points(mol))
}
