/*
 * chem.go, part of gosdg.
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

package chem

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
)

/**Note: Many funcitons here panic instead of returning errors. This is because they are "fundamental"
 * functions. If something goes wrong here, the program is most likely wrong and should
 * crash. Most panics are related to using the funciton on a nil object or on atoms that
 * do not belong to the graph.**/

//Atom contains the information about one atom of a molecular graph, including
//its (optional) 2D coordinates and the flags used while laying it out.
type Atom struct {
	Index     int     `json:"-"`
	Symbol    string  `json:"symbol"`
	Charge    int     `json:"charge,omitempty"`
	ImplicitH int     `json:"hydrogens,omitempty"`
	MapIdx    int     `json:"map,omitempty"`    //reaction atom-atom mapping, 0 if unmapped.
	AttachPt  int     `json:"attach,omitempty"` //attachment point number for R-group pseudo atoms.
	Point     *r2.Vec `json:"point,omitempty"`
	Placed    bool    `json:"-"`
	Visited   bool    `json:"-"`
	InRing    bool    `json:"-"`
	Aliphatic bool    `json:"-"`
	Bonds     []*Bond `json:"-"`
}

//Atom methods

//Copy returns a copy of the Atom object, without its bonds.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	Newat := new(Atom)
	Newat.Index = A.Index
	Newat.Symbol = A.Symbol
	Newat.Charge = A.Charge
	Newat.ImplicitH = A.ImplicitH
	Newat.MapIdx = A.MapIdx
	Newat.AttachPt = A.AttachPt
	if A.Point != nil {
		Newat.SetPos(*A.Point)
	}
	Newat.Placed = A.Placed
	Newat.InRing = A.InRing
	Newat.Aliphatic = A.Aliphatic
	return Newat
}

//Has2D returns true if the atom carries a 2D point.
func (A *Atom) Has2D() bool {
	return A.Point != nil
}

//Pos returns the 2D point of the atom. It panics if the atom has no point.
func (A *Atom) Pos() r2.Vec {
	if A.Point == nil {
		panic(fmt.Sprintf("Atom %d (%s) has no 2D coordinates", A.Index, A.Symbol))
	}
	return *A.Point
}

//SetPos sets the 2D point of the atom to a copy of p.
func (A *Atom) SetPos(p r2.Vec) {
	A.Point = &r2.Vec{X: p.X, Y: p.Y}
}

//ClearPos removes the 2D point of the atom.
func (A *Atom) ClearPos() {
	A.Point = nil
}

//IsHetero returns true for atoms that are neither carbon nor hydrogen,
//pseudo atoms excluded.
func (A *Atom) IsHetero() bool {
	return A.Symbol != "C" && A.Symbol != "H" && !A.IsPseudo()
}

//IsHydrogen returns true for explicit hydrogens (and their isotopes).
func (A *Atom) IsHydrogen() bool {
	return A.Symbol == "H" || A.Symbol == "D" || A.Symbol == "T"
}

//IsPseudo returns true for pseudo atoms (R groups, attachment points, dummies).
func (A *Atom) IsPseudo() bool {
	return A.Symbol == "*" || A.Symbol == "R" || A.AttachPt > 0
}

//Degree returns the number of bonds the atom takes part in, in the whole graph.
func (A *Atom) Degree() int {
	return len(A.Bonds)
}

//BondTo returns the bond between A and at, or nil if they are not bonded.
func (A *Atom) BondTo(at *Atom) *Bond {
	for _, b := range A.Bonds {
		if b.Cross(A) == at {
			return b
		}
	}
	return nil
}

/*****Molecule type***/

//Molecule is a molecular graph: a set of atoms and bonds that may form several
//disconnected components. A Molecule can also be a view of (subgraph) another
//Molecule, sharing the atoms and bonds of its parent. Only the "root" Molecule owns
//its atoms, creates them and keeps their Index equal to their position.
type Molecule struct {
	Name    string
	Atoms   []*Atom
	Bonds   []*Bond
	Stereo  []*DoubleBondStereo
	Sgroups []*Sgroup
	atomset map[*Atom]struct{}
	bondset map[*Bond]struct{}
}

//NewMolecule returns an empty molecular graph with the given name.
func NewMolecule(name string) *Molecule {
	M := new(Molecule)
	M.Name = name
	M.atomset = make(map[*Atom]struct{})
	M.bondset = make(map[*Bond]struct{})
	return M
}

//NewView returns a subgraph sharing the given atoms and bonds. It panics if a
//bond references an atom not in the view.
func NewView(name string, atoms []*Atom, bonds []*Bond) *Molecule {
	M := NewMolecule(name)
	M.Add(atoms...)
	M.AddBonds(bonds...)
	return M
}

//InducedSubgraph returns a view with the given atoms and every bond of their
//parent graph joining two of them, in bond-index order.
func InducedSubgraph(name string, atoms []*Atom) *Molecule {
	M := NewMolecule(name)
	M.Add(atoms...)
	bonds := make([]*Bond, 0, len(atoms))
	seen := make(map[*Bond]bool)
	for _, a := range atoms {
		for _, b := range a.Bonds {
			if seen[b] || !M.Contains(b.Cross(a)) {
				continue
			}
			seen[b] = true
			bonds = append(bonds, b)
		}
	}
	sort.SliceStable(bonds, func(i, j int) bool { return bonds[i].Index < bonds[j].Index })
	M.AddBonds(bonds...)
	return M
}

//Molecule methods

//Len returns the number of atoms in the graph.
func (M *Molecule) Len() int {
	return len(M.Atoms)
}

//Atom returns the i-th atom of the graph. It panics if out of range.
func (M *Molecule) Atom(i int) *Atom {
	return M.Atoms[i]
}

//NewAtom creates an atom with the given symbol, adds it to the graph and returns it.
func (M *Molecule) NewAtom(symbol string) *Atom {
	at := &Atom{Symbol: symbol, Index: len(M.Atoms)}
	M.Add(at)
	return at
}

//Add adds already existing atoms to the graph, ignoring those
//already present.
func (M *Molecule) Add(atoms ...*Atom) {
	M.init()
	for _, a := range atoms {
		if a == nil {
			panic("Attempted to add a nil atom to a molecule")
		}
		if _, ok := M.atomset[a]; ok {
			continue
		}
		M.atomset[a] = struct{}{}
		M.Atoms = append(M.Atoms, a)
	}
}

//AddBonds adds already existing bonds to the graph. Both atoms of
//each bond must already be in the graph.
func (M *Molecule) AddBonds(bonds ...*Bond) {
	M.init()
	for _, b := range bonds {
		if _, ok := M.bondset[b]; ok {
			continue
		}
		if !M.Contains(b.At1) || !M.Contains(b.At2) {
			panic(fmt.Sprintf("Bond %d references atoms not present in %q", b.Index, M.Name))
		}
		M.bondset[b] = struct{}{}
		M.Bonds = append(M.Bonds, b)
	}
}

//Connect creates a bond of the given order between two atoms of the graph
//and returns it.
func (M *Molecule) Connect(at1, at2 *Atom, order BondOrder) *Bond {
	if at1 == at2 {
		panic("Attempted to bond an atom to itself")
	}
	b := &Bond{Index: len(M.Bonds), At1: at1, At2: at2, Order: order}
	M.AddBonds(b)
	at1.Bonds = append(at1.Bonds, b)
	at2.Bonds = append(at2.Bonds, b)
	return b
}

func (M *Molecule) init() {
	if M.atomset != nil && M.bondset != nil {
		return
	}
	M.atomset = make(map[*Atom]struct{}, len(M.Atoms))
	M.bondset = make(map[*Bond]struct{}, len(M.Bonds))
	for _, a := range M.Atoms {
		M.atomset[a] = struct{}{}
	}
	for _, b := range M.Bonds {
		M.bondset[b] = struct{}{}
	}
}

//Contains returns true if the atom is part of the graph.
func (M *Molecule) Contains(at *Atom) bool {
	M.init()
	_, ok := M.atomset[at]
	return ok
}

//ContainsBond returns true if the bond is part of the graph.
func (M *Molecule) ContainsBond(b *Bond) bool {
	M.init()
	_, ok := M.bondset[b]
	return ok
}

//BondsOf returns the bonds of at that belong to the graph, in the
//order in which they were attached to the atom.
func (M *Molecule) BondsOf(at *Atom) []*Bond {
	ret := make([]*Bond, 0, len(at.Bonds))
	for _, b := range at.Bonds {
		if M.ContainsBond(b) {
			ret = append(ret, b)
		}
	}
	return ret
}

//Neighbors returns the atoms bonded to at within the graph.
func (M *Molecule) Neighbors(at *Atom) []*Atom {
	ret := make([]*Atom, 0, len(at.Bonds))
	for _, b := range M.BondsOf(at) {
		ret = append(ret, b.Cross(at))
	}
	return ret
}

//Degree returns the number of bonds of at within the graph.
func (M *Molecule) Degree(at *Atom) int {
	return len(M.BondsOf(at))
}

//BondBetween returns the bond joining at1 and at2 within the graph, or nil.
func (M *Molecule) BondBetween(at1, at2 *Atom) *Bond {
	b := at1.BondTo(at2)
	if b == nil || !M.ContainsBond(b) {
		return nil
	}
	return b
}

//FillIndexes sets the Index of every atom and bond to its position in the graph.
//It should only be used on the graph that owns the atoms.
func (M *Molecule) FillIndexes() {
	for i, a := range M.Atoms {
		a.Index = i
	}
	for i, b := range M.Bonds {
		b.Index = i
	}
}

//RemoveBond removes b from the graph and from the bond lists of its atoms,
//and renumbers the remaining bonds.
func (M *Molecule) RemoveBond(b *Bond) error {
	if !M.ContainsBond(b) {
		err := NewCError(fmt.Sprintf("Bond %d is not part of %q", b.Index, M.Name), nil)
		err.Decorate("RemoveBond")
		return err
	}
	if err := detachBond(b); err != nil {
		return errDecorate(err, "RemoveBond")
	}
	delete(M.bondset, b)
	nb := M.Bonds[:0]
	for _, v := range M.Bonds {
		if v != b {
			nb = append(nb, v)
		}
	}
	M.Bonds = nb
	for i, v := range M.Bonds {
		v.Index = i
	}
	return nil
}

//Points returns a copy of the 2D points of all atoms, or an error if
//some atom has none.
func (M *Molecule) Points() ([]r2.Vec, error) {
	ret := make([]r2.Vec, len(M.Atoms))
	for i, a := range M.Atoms {
		if a.Point == nil {
			err := NewCError(fmt.Sprintf("Atom %d (%s) has no 2D coordinates", a.Index, a.Symbol), nil)
			err.Decorate("Points")
			return nil, err
		}
		ret[i] = *a.Point
	}
	return ret, nil
}

//Has2D returns true if every atom in the graph carries a 2D point.
func (M *Molecule) Has2D() bool {
	for _, a := range M.Atoms {
		if a.Point == nil {
			return false
		}
	}
	return true
}

//Charge returns the sum of the formal charges of the atoms in the graph.
func (M *Molecule) Charge() int {
	c := 0
	for _, a := range M.Atoms {
		c += a.Charge
	}
	return c
}

//Clone returns a deep copy of the graph (atoms, bonds and double bond stereo
//elements, but not substructure groups) together with the map from the
//original atoms to their copies. The copies are indexed by their position.
func (M *Molecule) Clone() (*Molecule, map[*Atom]*Atom) {
	ret := NewMolecule(M.Name)
	amap := make(map[*Atom]*Atom, len(M.Atoms))
	for _, a := range M.Atoms {
		c := a.Copy()
		c.Index = len(ret.Atoms)
		ret.Add(c)
		amap[a] = c
	}
	bmap := make(map[*Bond]*Bond, len(M.Bonds))
	for _, b := range M.Bonds {
		nb := ret.Connect(amap[b.At1], amap[b.At2], b.Order)
		nb.InRing = b.InRing
		nb.Stereo = b.Stereo
		bmap[b] = nb
	}
	for _, s := range M.Stereo {
		nb, ok := bmap[s.Bond]
		if !ok {
			continue
		}
		ret.Stereo = append(ret.Stereo, &DoubleBondStereo{Bond: nb, Ligands: [2]*Atom{amap[s.Ligands[0]], amap[s.Ligands[1]]}, Conf: s.Conf})
	}
	return ret, amap
}

/****Stereo****/

//Conformation is the relative position of the two ligands of a double bond.
type Conformation int

const (
	Together Conformation = iota //cis, Z
	Opposite                     //trans, E
)

func (C Conformation) String() string {
	if C == Together {
		return "together"
	}
	return "opposite"
}

//DoubleBondStereo declares the configuration of a double bond: Ligands[0] is
//bonded to Bond.At1 and Ligands[1] to Bond.At2.
type DoubleBondStereo struct {
	Bond    *Bond
	Ligands [2]*Atom
	Conf    Conformation
}
