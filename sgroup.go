/*
 * sgroup.go, part of gosdg.
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
	"gonum.org/v1/gonum/spatial/r2"
)

//SgroupType is the kind of a substructure group.
type SgroupType int

const (
	SgroupSRU        SgroupType = iota //structure repeating unit
	SgroupCopolymer                    //COP
	SgroupMonomer                      //MON
	SgroupMer                          //MER
	SgroupGeneric                      //GEN
	SgroupAny                          //ANY
	SgroupMultiple                     //MUL
	SgroupPositional                   //positional variation (multicenter bond)
	SgroupData                         //DAT, carries no geometry
)

var sgroupNames = map[SgroupType]string{
	SgroupSRU:        "SRU",
	SgroupCopolymer:  "COP",
	SgroupMonomer:    "MON",
	SgroupMer:        "MER",
	SgroupGeneric:    "GEN",
	SgroupAny:        "ANY",
	SgroupMultiple:   "MUL",
	SgroupPositional: "POS",
	SgroupData:       "DAT",
}

func (T SgroupType) String() string {
	if s, ok := sgroupNames[T]; ok {
		return s
	}
	return "UNKNOWN"
}

//ParseSgroupType returns the type named by s (as in SgroupType.String) and true,
//or false if the name is unknown.
func ParseSgroupType(s string) (SgroupType, bool) {
	for k, v := range sgroupNames {
		if v == s {
			return k, true
		}
	}
	return SgroupData, false
}

//HasBrackets returns true for the group types drawn with a pair of brackets.
func (T SgroupType) HasBrackets() bool {
	switch T {
	case SgroupSRU, SgroupCopolymer, SgroupMonomer, SgroupMer, SgroupGeneric, SgroupAny, SgroupMultiple:
		return true
	}
	return false
}

//Bracket is one bracket of a substructure group, drawn from P1 to P2. The
//inside of the group lies to the left of the P1->P2 direction.
type Bracket struct {
	P1, P2 r2.Vec
}

//Sgroup is a substructure group annotation. The groups are created by whoever
//builds the graph, the layout only computes their geometry.
//For positional variation groups, Atoms are the possible attachment atoms, and
//Bonds holds the single bond from one of them to the variable substituent.
//For multiple groups, Atoms holds all the repeats, and ParentAtoms the repeat
//that is displayed.
type Sgroup struct {
	Type        SgroupType
	Subscript   string
	Atoms       []*Atom
	Bonds       []*Bond
	ParentAtoms []*Atom
	Multiplier  int
	Brackets    []Bracket
}

//Contains returns true if at is one of the atoms of the group.
func (S *Sgroup) Contains(at *Atom) bool {
	for _, v := range S.Atoms {
		if v == at {
			return true
		}
	}
	return false
}

//CrossingBonds returns the bonds of mol with exactly one atom in the given set,
//in bond order.
func CrossingBonds(mol *Molecule, atoms []*Atom) []*Bond {
	set := make(map[*Atom]bool, len(atoms))
	for _, a := range atoms {
		set[a] = true
	}
	ret := make([]*Bond, 0, 2)
	for _, b := range mol.Bonds {
		if set[b.At1] != set[b.At2] {
			ret = append(ret, b)
		}
	}
	return ret
}
