/*
 * json.go, part of gosdg.
 *
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package chemjson

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	chem "github.com/rmera/gosdg"
)

//Header precedes the records of each molecule in a stream, and tells
//how many records of each kind follow.
type Header struct {
	Name    string
	Atoms   int
	Bonds   int
	Stereo  int `json:",omitempty"`
	Sgroups int `json:",omitempty"`
}

//ReactionHeader precedes the molecules of a reaction. Reactants, agents
//and products follow, in that order, each as a complete molecule.
type ReactionHeader struct {
	Reactants int
	Agents    int
	Products  int
}

//A ready-to-serialize container for a bond. I and J are atom indexes.
type Bond struct {
	I      int
	J      int
	Order  string
	Stereo int `json:",omitempty"`
}

//A ready-to-serialize container for a double bond configuration.
type Stereo struct {
	Bond    int
	Ligands [2]int
	Conf    string //"together" or "opposite"
}

//A ready-to-serialize container for a substructure group. Brackets are
//given as [x1, y1, x2, y2].
type Sgroup struct {
	Type       string
	Subscript  string       `json:",omitempty"`
	Atoms      []int        `json:",omitempty"`
	Bonds      []int        `json:",omitempty"`
	Parent     []int        `json:",omitempty"`
	Multiplier int          `json:",omitempty"`
	Brackets   [][4]float64 `json:",omitempty"`
}

//An easily JSON-serializable error type,
type Error struct {
	deco          []string
	IsError       bool //If this is false (no error) all the other fields will be at their zero-values.
	InOptions     bool //If error, was it in parsing the options?
	InMolecule    bool //Was it in parsing a molecule?
	InProcess     bool
	InPostProcess bool   //was it in preparing the output?
	Molecule      string //Which molecule?
	Record        int    //Which record of it?
	Function      string //which go function gave the error
	Message       string //the error itself
}

//Error implements the error interface
func (J *Error) Error() string {
	if J.Molecule != "" {
		return fmt.Sprintf("%s (molecule %q, record %d)", J.Message, J.Molecule, J.Record)
	}
	return J.Message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (J *Error) Decorate(dec string) []string {
	if dec == "" {
		return J.deco
	}
	J.deco = append(J.deco, dec)
	return J.deco
}

//Serializes the error. Panics on failure.
func (J *Error) Marshal() []byte {
	ret, err2 := json.Marshal(J)
	if err2 != nil {
		panic(strings.Join([]string{J.Error(), err2.Error()}, " - ")) // Yo, dawg, I heard you like errors, so I got an error while serializing your error so you can... you know the drill.
	}
	return ret
}

//Information to be passed back to the calling program after a job.
type Info struct {
	Molecules        int
	AtomsPerMolecule []int
	Failed           []string //names of the molecules that could not be laid out
}

//Send Marshals the info and writes to out, returns an error or nil
func (J *Info) Send(out io.Writer) *Error {
	enc := json.NewEncoder(out)
	if err := enc.Encode(J); err != nil {
		return NewError("postprocess", "Info.Send", err)
	}
	return nil
}

//Options passed from the calling external program. Zero values mean
//"use the default".
type Options struct {
	BondLength  float64   `json:",omitempty"`
	FirstBond   []float64 `json:",omitempty"` //x, y
	FixedAtoms  []int     `json:",omitempty"`
	FixedBonds  []int     `json:",omitempty"`
	AlignMapped bool      `json:",omitempty"`
}

//Takes an error and some additional info to create a json-marshal-ble error
func NewError(where, function string, err error) *Error {
	jerr := new(Error)
	jerr.IsError = true
	switch where {
	case "options":
		jerr.InOptions = true
	case "molecule":
		jerr.InMolecule = true
	case "postprocess":
		jerr.InPostProcess = true
	default:
		jerr.InProcess = true
	}
	jerr.Function = function
	jerr.Message = err.Error()
	return jerr
}

//readLine returns the next non-blank line of the stream. A last line without
//a newline is accepted.
func readLine(stream *bufio.Reader) ([]byte, error) {
	for {
		line, err := stream.ReadBytes('\n')
		if len(bytes.TrimSpace(line)) > 0 {
			return line, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

//DecodeOptions Decodes or unmarshals json options into an Options structure
func DecodeOptions(stdin *bufio.Reader) (*Options, *Error) {
	line, err := readLine(stdin)
	if err != nil {
		return nil, NewError("options", "DecodeOptions", err)
	}
	ret := new(Options)
	dec := json.NewDecoder(bytes.NewReader(line))
	dec.DisallowUnknownFields()
	if err = dec.Decode(ret); err != nil {
		return nil, NewError("options", "DecodeOptions", err)
	}
	if ret.FirstBond != nil && len(ret.FirstBond) != 2 {
		return nil, NewError("options", "DecodeOptions", fmt.Errorf("FirstBond needs 2 components, got %d", len(ret.FirstBond)))
	}
	return ret, nil
}

//FixedIn returns the atoms and bonds of mol named by the FixedAtoms and FixedBonds
//indexes of the options. Out-of-range indexes are an error.
func (O *Options) FixedIn(mol *chem.Molecule) ([]*chem.Atom, []*chem.Bond, error) {
	atoms := make([]*chem.Atom, 0, len(O.FixedAtoms))
	for _, i := range O.FixedAtoms {
		if i < 0 || i >= len(mol.Atoms) {
			return nil, nil, fmt.Errorf("fixed atom %d out of range in %q", i, mol.Name)
		}
		atoms = append(atoms, mol.Atoms[i])
	}
	bonds := make([]*chem.Bond, 0, len(O.FixedBonds))
	for _, i := range O.FixedBonds {
		if i < 0 || i >= len(mol.Bonds) {
			return nil, nil, fmt.Errorf("fixed bond %d out of range in %q", i, mol.Name)
		}
		bonds = append(bonds, mol.Bonds[i])
	}
	return atoms, bonds, nil
}

//DecodeMolecule reads one molecule (a Header followed by its records) from the stream.
//It returns nil, nil if the stream ends cleanly before a new molecule begins.
func DecodeMolecule(stream *bufio.Reader) (*chem.Molecule, *Error) {
	const funcname = "DecodeMolecule" //for the error
	line, err := readLine(stream)
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, NewError("molecule", funcname, err)
	}
	h := new(Header)
	if err = json.Unmarshal(line, h); err != nil {
		return nil, NewError("molecule", funcname, err)
	}
	if h.Atoms < 0 || h.Bonds < 0 || h.Stereo < 0 || h.Sgroups < 0 {
		return nil, NewError("molecule", funcname, fmt.Errorf("negative record count in header of %q", h.Name))
	}
	mol := chem.NewMolecule(h.Name)
	record := 0
	//next reads the following record into v, keeping count for the error messages.
	next := func(v interface{}) *Error {
		record++
		line, err := readLine(stream)
		if err == nil {
			err = json.Unmarshal(line, v)
		}
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		if err != nil {
			jerr := NewError("molecule", funcname, err)
			jerr.Molecule = h.Name
			jerr.Record = record
			return jerr
		}
		return nil
	}
	fail := func(err error) *Error {
		jerr := NewError("molecule", funcname, err)
		jerr.Molecule = h.Name
		jerr.Record = record
		return jerr
	}
	for i := 0; i < h.Atoms; i++ {
		at := new(chem.Atom)
		if jerr := next(at); jerr != nil {
			return nil, jerr
		}
		at.Index = i
		mol.Add(at)
	}
	for i := 0; i < h.Bonds; i++ {
		jb := new(Bond)
		if jerr := next(jb); jerr != nil {
			return nil, jerr
		}
		if !inRange(jb.I, mol.Atoms) || !inRange(jb.J, mol.Atoms) || jb.I == jb.J {
			return nil, fail(fmt.Errorf("bond %d-%d references invalid atoms", jb.I, jb.J))
		}
		order, ok := parseOrder(jb.Order)
		if !ok {
			return nil, fail(fmt.Errorf("unknown bond order %q", jb.Order))
		}
		b := mol.Connect(mol.Atoms[jb.I], mol.Atoms[jb.J], order)
		b.Stereo = chem.BondStereo(jb.Stereo)
	}
	for i := 0; i < h.Stereo; i++ {
		js := new(Stereo)
		if jerr := next(js); jerr != nil {
			return nil, jerr
		}
		if !inRange(js.Bond, mol.Bonds) || !inRange(js.Ligands[0], mol.Atoms) || !inRange(js.Ligands[1], mol.Atoms) {
			return nil, fail(fmt.Errorf("stereo record references invalid bond %d or ligands %v", js.Bond, js.Ligands))
		}
		s := &chem.DoubleBondStereo{Bond: mol.Bonds[js.Bond], Ligands: [2]*chem.Atom{mol.Atoms[js.Ligands[0]], mol.Atoms[js.Ligands[1]]}}
		switch js.Conf {
		case chem.Together.String(), "cis", "Z":
			s.Conf = chem.Together
		case chem.Opposite.String(), "trans", "E":
			s.Conf = chem.Opposite
		default:
			return nil, fail(fmt.Errorf("unknown double bond configuration %q", js.Conf))
		}
		mol.Stereo = append(mol.Stereo, s)
	}
	for i := 0; i < h.Sgroups; i++ {
		jg := new(Sgroup)
		if jerr := next(jg); jerr != nil {
			return nil, jerr
		}
		g, err := jg.sgroup(mol)
		if err != nil {
			return nil, fail(err)
		}
		mol.Sgroups = append(mol.Sgroups, g)
	}
	return mol, nil
}

func (J *Sgroup) sgroup(mol *chem.Molecule) (*chem.Sgroup, error) {
	t, ok := chem.ParseSgroupType(J.Type)
	if !ok {
		return nil, fmt.Errorf("unknown substructure group type %q", J.Type)
	}
	g := &chem.Sgroup{Type: t, Subscript: J.Subscript, Multiplier: J.Multiplier}
	var err error
	if g.Atoms, err = pick(J.Atoms, mol.Atoms); err != nil {
		return nil, err
	}
	if g.ParentAtoms, err = pick(J.Parent, mol.Atoms); err != nil {
		return nil, err
	}
	if g.Bonds, err = pick(J.Bonds, mol.Bonds); err != nil {
		return nil, err
	}
	for _, v := range J.Brackets {
		g.Brackets = append(g.Brackets, chem.Bracket{P1: r2.Vec{X: v[0], Y: v[1]}, P2: r2.Vec{X: v[2], Y: v[3]}})
	}
	return g, nil
}

func pick[T any](idx []int, from []T) ([]T, error) {
	if len(idx) == 0 {
		return nil, nil
	}
	ret := make([]T, 0, len(idx))
	for _, i := range idx {
		if !inRange(i, from) {
			return nil, fmt.Errorf("index %d out of range (%d elements)", i, len(from))
		}
		ret = append(ret, from[i])
	}
	return ret, nil
}

func inRange[T any](i int, s []T) bool {
	return i >= 0 && i < len(s)
}

func parseOrder(s string) (chem.BondOrder, bool) {
	for o := chem.Unset; o <= chem.Aromatic; o++ {
		if o.String() == s {
			return o, true
		}
	}
	switch s {
	case "", "1":
		return chem.Single, true
	case "2":
		return chem.Double, true
	case "3":
		return chem.Triple, true
	case "4", "ar":
		return chem.Aromatic, true
	}
	return chem.Unset, false
}

//DecodeReaction reads a ReactionHeader followed by its molecules.
func DecodeReaction(stream *bufio.Reader) (*chem.Reaction, *Error) {
	const funcname = "DecodeReaction"
	line, err := readLine(stream)
	if err != nil {
		return nil, NewError("molecule", funcname, err)
	}
	h := new(ReactionHeader)
	if err = json.Unmarshal(line, h); err != nil {
		return nil, NewError("molecule", funcname, err)
	}
	rxn := new(chem.Reaction)
	for _, part := range []struct {
		n    int
		dest *[]*chem.Molecule
	}{{h.Reactants, &rxn.Reactants}, {h.Agents, &rxn.Agents}, {h.Products, &rxn.Products}} {
		for i := 0; i < part.n; i++ {
			mol, jerr := DecodeMolecule(stream)
			if jerr != nil {
				jerr.Decorate(funcname)
				return nil, jerr
			}
			if mol == nil {
				return nil, NewError("molecule", funcname, io.ErrUnexpectedEOF)
			}
			*part.dest = append(*part.dest, mol)
		}
	}
	return rxn, nil
}

//SendMolecule encodes a molecule, with its bonds, stereo configurations and
//substructure groups, and writes it to out, one record per line.
func SendMolecule(mol *chem.Molecule, out io.Writer) *Error {
	return EncodeMolecule(mol, json.NewEncoder(out))
}

//SendReaction encodes a reaction and writes it to out.
func SendReaction(rxn *chem.Reaction, out io.Writer) *Error {
	enc := json.NewEncoder(out)
	h := &ReactionHeader{Reactants: len(rxn.Reactants), Agents: len(rxn.Agents), Products: len(rxn.Products)}
	if err := enc.Encode(h); err != nil {
		return NewError("postprocess", "SendReaction", err)
	}
	for _, m := range rxn.Molecules() {
		if err := EncodeMolecule(m, enc); err != nil {
			err.Decorate("SendReaction")
			return err
		}
	}
	return nil
}

//EncodeMolecule encodes mol with the given encoder.
func EncodeMolecule(mol *chem.Molecule, enc *json.Encoder) *Error {
	const funcname = "EncodeMolecule"
	if mol == nil {
		return nil //Its assumed to be intentional.
	}
	mol.FillIndexes()
	h := &Header{Name: mol.Name, Atoms: len(mol.Atoms), Bonds: len(mol.Bonds), Stereo: len(mol.Stereo), Sgroups: len(mol.Sgroups)}
	if err := enc.Encode(h); err != nil {
		return NewError("postprocess", funcname, err)
	}
	if err := EncodeAtoms(mol, enc); err != nil {
		return err
	}
	for _, b := range mol.Bonds {
		jb := &Bond{I: b.At1.Index, J: b.At2.Index, Order: b.Order.String(), Stereo: int(b.Stereo)}
		if err := enc.Encode(jb); err != nil {
			return NewError("postprocess", funcname+"(bonds)", err)
		}
	}
	for _, s := range mol.Stereo {
		js := &Stereo{Bond: s.Bond.Index, Ligands: [2]int{s.Ligands[0].Index, s.Ligands[1].Index}, Conf: s.Conf.String()}
		if err := enc.Encode(js); err != nil {
			return NewError("postprocess", funcname+"(stereo)", err)
		}
	}
	for _, g := range mol.Sgroups {
		jg := &Sgroup{Type: g.Type.String(), Subscript: g.Subscript, Multiplier: g.Multiplier}
		jg.Atoms = atomIndexes(g.Atoms)
		jg.Parent = atomIndexes(g.ParentAtoms)
		for _, b := range g.Bonds {
			jg.Bonds = append(jg.Bonds, b.Index)
		}
		for _, br := range g.Brackets {
			jg.Brackets = append(jg.Brackets, [4]float64{br.P1.X, br.P1.Y, br.P2.X, br.P2.Y})
		}
		if err := enc.Encode(jg); err != nil {
			return NewError("postprocess", funcname+"(sgroups)", err)
		}
	}
	return nil
}

func atomIndexes(atoms []*chem.Atom) []int {
	if len(atoms) == 0 {
		return nil
	}
	ret := make([]int, len(atoms))
	for i, a := range atoms {
		ret[i] = a.Index
	}
	return ret
}

//Encodes the atoms of a molecule into JSON, one per line.
func EncodeAtoms(mol *chem.Molecule, enc *json.Encoder) *Error {
	const funcname = "EncodeAtoms"
	if mol == nil {
		return nil
	}
	for i := 0; i < mol.Len(); i++ {
		if err := enc.Encode(mol.Atom(i)); err != nil {
			return NewError("postprocess", funcname, err)
		}
	}
	return nil
}
