package chemjson

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	chem "github.com/rmera/gosdg"
	"github.com/rmera/gosdg/internal/testmol"
)

func TestSendAndDecode(t *testing.T) {
	mol := testmol.Parse("but-2-ene", "C C C C", "0-1 1=2 2-3")
	mol.Atom(0).SetPos(r2.Vec{X: 1, Y: 2})
	mol.Atom(3).Charge = -1
	mol.Stereo = []*chem.DoubleBondStereo{{Bond: mol.Bonds[1], Ligands: [2]*chem.Atom{mol.Atom(0), mol.Atom(3)}, Conf: chem.Opposite}}
	mol.Sgroups = []*chem.Sgroup{{Type: chem.SgroupSRU, Subscript: "n", Atoms: mol.Atoms[1:3],
		Brackets: []chem.Bracket{{P1: r2.Vec{X: 1}, P2: r2.Vec{X: 1, Y: 1}}}}}
	var buf bytes.Buffer
	require.Nil(t, SendMolecule(mol, &buf))
	//one header, 4 atoms, 3 bonds, 1 stereo, 1 group.
	assert.Equal(t, 10, strings.Count(buf.String(), "\n"))

	got, jerr := DecodeMolecule(bufio.NewReader(&buf))
	require.Nil(t, jerr)
	require.NotNil(t, got)
	assert.Equal(t, "but-2-ene", got.Name)
	require.Len(t, got.Atoms, 4)
	require.Len(t, got.Bonds, 3)
	assert.Equal(t, chem.Double, got.Bonds[1].Order)
	assert.Equal(t, r2.Vec{X: 1, Y: 2}, got.Atom(0).Pos())
	assert.False(t, got.Atom(1).Has2D())
	assert.Equal(t, -1, got.Atom(3).Charge)
	assert.Equal(t, 2, got.Atom(2).Index)
	require.Len(t, got.Stereo, 1)
	assert.Equal(t, chem.Opposite, got.Stereo[0].Conf)
	assert.Equal(t, got.Atom(3), got.Stereo[0].Ligands[1])
	require.Len(t, got.Sgroups, 1)
	assert.Equal(t, []*chem.Atom{got.Atom(1), got.Atom(2)}, got.Sgroups[0].Atoms)
	assert.Equal(t, r2.Vec{X: 1, Y: 1}, got.Sgroups[0].Brackets[0].P2)
	assert.Len(t, got.Atom(1).Bonds, 2)

	//clean end of the stream.
	got, jerr = DecodeMolecule(bufio.NewReader(&buf))
	assert.Nil(t, jerr)
	assert.Nil(t, got)
}

func TestDecodeErrors(t *testing.T) {
	for name, in := range map[string]string{
		"truncated":  `{"Name":"x","Atoms":2}` + "\n" + `{"symbol":"C"}` + "\n",
		"bad bond":   `{"Name":"x","Atoms":1,"Bonds":1}` + "\n" + `{"symbol":"C"}` + "\n" + `{"I":0,"J":3}` + "\n",
		"bad order":  `{"Name":"x","Atoms":2,"Bonds":1}` + "\n" + `{"symbol":"C"}` + "\n" + `{"symbol":"C"}` + "\n" + `{"I":0,"J":1,"Order":"quintuple"}` + "\n",
		"bad group":  `{"Name":"x","Atoms":1,"Sgroups":1}` + "\n" + `{"symbol":"C"}` + "\n" + `{"Type":"XYZ"}` + "\n",
		"not json":   "atom C\n",
		"bad counts": `{"Name":"x","Atoms":-1}` + "\n",
		"bad index":  `{"Name":"x","Atoms":1,"Sgroups":1}` + "\n" + `{"symbol":"C"}` + "\n" + `{"Type":"SRU","Atoms":[4]}` + "\n",
	} {
		mol, jerr := DecodeMolecule(bufio.NewReader(strings.NewReader(in)))
		assert.Nil(t, mol, name)
		require.NotNil(t, jerr, name)
		assert.True(t, jerr.InMolecule, name)
		assert.Contains(t, string(jerr.Marshal()), "DecodeMolecule", name)
	}
}

func TestBondOrderNames(t *testing.T) {
	in := `{"Name":"x","Atoms":2,"Bonds":1}` + "\n\n" + `{"symbol":"C"}` + "\n" + `{"symbol":"O"}` + "\n" + `{"I":0,"J":1,"Order":"2"}`
	mol, jerr := DecodeMolecule(bufio.NewReader(strings.NewReader(in)))
	require.Nil(t, jerr)
	assert.Equal(t, chem.Double, mol.Bonds[0].Order)
}

func TestReaction(t *testing.T) {
	rxn := &chem.Reaction{
		Reactants: []*chem.Molecule{testmol.Chain(2), testmol.Chain(3)},
		Products:  []*chem.Molecule{testmol.Chain(5)},
	}
	var buf bytes.Buffer
	require.Nil(t, SendReaction(rxn, &buf))
	got, jerr := DecodeReaction(bufio.NewReader(&buf))
	require.Nil(t, jerr)
	assert.Len(t, got.Reactants, 2)
	assert.Empty(t, got.Agents)
	require.Len(t, got.Products, 1)
	assert.Len(t, got.Products[0].Atoms, 5)

	_, jerr = DecodeReaction(bufio.NewReader(strings.NewReader(`{"Reactants":1}` + "\n")))
	assert.NotNil(t, jerr)
}

func TestOptions(t *testing.T) {
	o, jerr := DecodeOptions(bufio.NewReader(strings.NewReader(`{"BondLength":2,"FirstBond":[1,0],"FixedAtoms":[0,2]}` + "\n")))
	require.Nil(t, jerr)
	assert.Equal(t, 2.0, o.BondLength)
	mol := testmol.Chain(3)
	atoms, bonds, err := o.FixedIn(mol)
	require.NoError(t, err)
	assert.Equal(t, []*chem.Atom{mol.Atom(0), mol.Atom(2)}, atoms)
	assert.Empty(t, bonds)
	o.FixedBonds = []int{7}
	_, _, err = o.FixedIn(mol)
	assert.Error(t, err)

	_, jerr = DecodeOptions(bufio.NewReader(strings.NewReader(`{"BondLenght":2}`)))
	require.NotNil(t, jerr)
	assert.True(t, jerr.InOptions)
	_, jerr = DecodeOptions(bufio.NewReader(strings.NewReader(`{"FirstBond":[1]}`)))
	assert.NotNil(t, jerr)
}

func TestInfo(t *testing.T) {
	var buf bytes.Buffer
	require.Nil(t, (&Info{Molecules: 1, AtomsPerMolecule: []int{3}}).Send(&buf))
	assert.Contains(t, buf.String(), `"AtomsPerMolecule":[3]`)
}
