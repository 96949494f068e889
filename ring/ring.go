/*
 * ring.go, part of gosdg.
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

//Package ring finds the rings of a molecular graph (a smallest set of smallest
//rings) and partitions them into ring systems: maximal sets of rings connected
//through shared atoms (fused, bridged or spiro).
package ring

import (
	"sort"

	chem "github.com/rmera/gosdg"
	v2 "github.com/rmera/gosdg/v2"
	"gonum.org/v1/gonum/spatial/r2"
)

//Ring is an ordered cycle of atoms. Bonds[i] joins Atoms[i] and Atoms[(i+1)%len(Atoms)].
type Ring struct {
	Atoms  []*chem.Atom
	Bonds  []*chem.Bond
	Placed bool
}

//Len returns the number of atoms in the ring.
func (R *Ring) Len() int {
	return len(R.Atoms)
}

//Index returns the position of at in the ring, or -1 if at is not a member.
func (R *Ring) Index(at *chem.Atom) int {
	for i, a := range R.Atoms {
		if a == at {
			return i
		}
	}
	return -1
}

//Contains returns true if at is a member of the ring.
func (R *Ring) Contains(at *chem.Atom) bool {
	return R.Index(at) >= 0
}

//ContainsBond returns true if b is one of the bonds of the ring.
func (R *Ring) ContainsBond(b *chem.Bond) bool {
	for _, v := range R.Bonds {
		if v == b {
			return true
		}
	}
	return false
}

//Next returns the atom that follows at in the ring.
func (R *Ring) Next(at *chem.Atom) *chem.Atom {
	i := R.Index(at)
	if i < 0 {
		panic("ring: atom not in ring")
	}
	return R.Atoms[(i+1)%len(R.Atoms)]
}

//Prev returns the atom that precedes at in the ring.
func (R *Ring) Prev(at *chem.Atom) *chem.Atom {
	i := R.Index(at)
	if i < 0 {
		panic("ring: atom not in ring")
	}
	return R.Atoms[(i+len(R.Atoms)-1)%len(R.Atoms)]
}

//Center returns the centroid of the ring atoms that carry coordinates.
func (R *Ring) Center() r2.Vec {
	return v2.Points(pointsOf(R.Atoms)).Centroid()
}

//PlacedAtoms returns the ring atoms flagged as placed, in ring order.
func (R *Ring) PlacedAtoms() []*chem.Atom {
	ret := make([]*chem.Atom, 0, len(R.Atoms))
	for _, a := range R.Atoms {
		if a.Placed {
			ret = append(ret, a)
		}
	}
	return ret
}

func pointsOf(atoms []*chem.Atom) []r2.Vec {
	ret := make([]r2.Vec, 0, len(atoms))
	for _, a := range atoms {
		if a.Point != nil {
			ret = append(ret, *a.Point)
		}
	}
	return ret
}

//Set is a set of rings. It is used both for all the rings of a molecule and
//for a single ring system.
type Set struct {
	Rings []*Ring
}

//Len returns the number of rings in the set.
func (S *Set) Len() int {
	if S == nil {
		return 0
	}
	return len(S.Rings)
}

//Atoms returns the distinct atoms of the rings in the set, ordered by Index.
func (S *Set) Atoms() []*chem.Atom {
	seen := make(map[*chem.Atom]bool)
	var ret []*chem.Atom
	for _, r := range S.Rings {
		for _, a := range r.Atoms {
			if !seen[a] {
				seen[a] = true
				ret = append(ret, a)
			}
		}
	}
	sort.SliceStable(ret, func(i, j int) bool { return ret[i].Index < ret[j].Index })
	return ret
}

//Bonds returns the distinct bonds of the rings in the set, ordered by Index.
func (S *Set) Bonds() []*chem.Bond {
	seen := make(map[*chem.Bond]bool)
	var ret []*chem.Bond
	for _, r := range S.Rings {
		for _, b := range r.Bonds {
			if !seen[b] {
				seen[b] = true
				ret = append(ret, b)
			}
		}
	}
	sort.SliceStable(ret, func(i, j int) bool { return ret[i].Index < ret[j].Index })
	return ret
}

//Contains returns true if at belongs to some ring of the set.
func (S *Set) Contains(at *chem.Atom) bool {
	for _, r := range S.Rings {
		if r.Contains(at) {
			return true
		}
	}
	return false
}

//ContainsBond returns true if b belongs to some ring of the set.
func (S *Set) ContainsBond(b *chem.Bond) bool {
	for _, r := range S.Rings {
		if r.ContainsBond(b) {
			return true
		}
	}
	return false
}

//RingsOf returns the rings of the set that contain at.
func (S *Set) RingsOf(at *chem.Atom) []*Ring {
	var ret []*Ring
	for _, r := range S.Rings {
		if r.Contains(at) {
			ret = append(ret, r)
		}
	}
	return ret
}

//Connected returns the other rings of the set sharing at least one atom with r.
func (S *Set) Connected(r *Ring) []*Ring {
	var ret []*Ring
	for _, o := range S.Rings {
		if o != r && len(Shared(r, o)) > 0 {
			ret = append(ret, o)
		}
	}
	return ret
}

//Shared returns the atoms of r1 that are also in r2, in r1 order.
func Shared(r1, r2 *Ring) []*chem.Atom {
	var ret []*chem.Atom
	for _, a := range r1.Atoms {
		if r2.Contains(a) {
			ret = append(ret, a)
		}
	}
	return ret
}

//SharedBonds returns the number of bonds of r that belong to other rings of the set.
func (S *Set) SharedBonds(r *Ring) int {
	n := 0
	for _, b := range r.Bonds {
		for _, o := range S.Rings {
			if o != r && o.ContainsBond(b) {
				n++
				break
			}
		}
	}
	return n
}

//AllPlaced returns true if every ring in the set is flagged as placed.
func (S *Set) AllPlaced() bool {
	for _, r := range S.Rings {
		if !r.Placed {
			return false
		}
	}
	return true
}

//HeteroCount returns the number of heteroatoms among the ring atoms.
func (S *Set) HeteroCount() int {
	n := 0
	for _, a := range S.Atoms() {
		if a.IsHetero() {
			n++
		}
	}
	return n
}

//MinIndex returns the lowest atom Index in the set, or -1 for an empty set.
func (S *Set) MinIndex() int {
	atoms := S.Atoms()
	if len(atoms) == 0 {
		return -1
	}
	return atoms[0].Index
}

//Molecule returns a view with the atoms and the ring bonds of the set.
func (S *Set) Molecule(name string) *chem.Molecule {
	return chem.NewView(name, S.Atoms(), S.Bonds())
}

//SortBySize sorts the rings from the smallest to the largest. The sort is stable.
func (S *Set) SortBySize() {
	sort.SliceStable(S.Rings, func(i, j int) bool { return S.Rings[i].Len() < S.Rings[j].Len() })
}

//MostComplex returns the ring with the most connections to other rings of the
//set, the largest one among those with the same number of connections. Ties keep
//the set order.
func (S *Set) MostComplex() *Ring {
	var best *Ring
	bestc := -1
	for _, r := range S.Rings {
		c := len(S.Connected(r))
		if c > bestc || (c == bestc && r.Len() > best.Len()) {
			best, bestc = r, c
		}
	}
	return best
}

//Detector finds the rings of a molecular graph and partitions them into ring systems.
//FindRings must set the InRing flags of atoms and bonds consistently with the rings
//it returns.
type Detector interface {
	FindRings(mol *chem.Molecule) (*Set, error)
	PartitionIntoRingSystems(rings *Set) []*Set
}
