/*
 * bonds.go, part of gosdg.
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
)

//BondOrder is the (formal) order of a bond.
type BondOrder int

const (
	Unset BondOrder = iota
	Single
	Double
	Triple
	Aromatic
)

func (O BondOrder) String() string {
	switch O {
	case Single:
		return "single"
	case Double:
		return "double"
	case Triple:
		return "triple"
	case Aromatic:
		return "aromatic"
	}
	return "unset"
}

//BondStereo is the stereo marker (wedge) carried by a bond.
type BondStereo int

const (
	NoStereo BondStereo = iota
	Up
	Down
	Either
)

type Bond struct {
	Index  int
	At1    *Atom
	At2    *Atom
	Order  BondOrder
	InRing bool
	Stereo BondStereo
}

//Cross takes an atom of the bond and returns the other one.
func (B *Bond) Cross(origin *Atom) *Atom {
	if origin == B.At1 {
		return B.At2
	}
	if origin == B.At2 {
		return B.At1
	}
	panic("Trying to cross a bond: The origin atom given is not present in the bond!") //I think this got to be a programming error, so a panic is warranted.

}

//Contains returns true if at is one of the atoms of the bond.
func (B *Bond) Contains(at *Atom) bool {
	return at == B.At1 || at == B.At2
}

//Shares returns the atom shared by B and b2, or nil.
func (B *Bond) Shares(b2 *Bond) *Atom {
	switch {
	case b2.Contains(B.At1):
		return B.At1
	case b2.Contains(B.At2):
		return B.At2
	}
	return nil
}

//return a new *Bond slice with the element b removed
func takefromslice(bonds []*Bond, b *Bond) []*Bond {
	newb := make([]*Bond, 0, len(bonds))
	for _, v := range bonds {
		if v != b {
			newb = append(newb, v)
		}
	}
	return newb
}

//detachBond removes b from the bond lists of both its atoms.
func detachBond(b *Bond) error {
	lenb1 := len(b.At1.Bonds)
	lenb2 := len(b.At2.Bonds)
	b.At1.Bonds = takefromslice(b.At1.Bonds, b)
	b.At2.Bonds = takefromslice(b.At2.Bonds, b)
	msg := ""
	if len(b.At1.Bonds) == lenb1 {
		msg = fmt.Sprintf("from atom. Index:%d", b.At1.Index)
	}
	if len(b.At2.Bonds) == lenb2 {
		if msg != "" {
			msg = msg + " and "
		}
		msg = msg + fmt.Sprintf("from atom. Index:%d", b.At2.Index)
	}
	if msg != "" {
		err := NewCError(fmt.Sprintf("Failed to remove bond Index:%d %s", b.Index, msg), nil)
		err.Decorate("detachBond")
		return err
	}
	return nil
}

//IsColinear returns true if at is an sp centre within mol, i.e. it has exactly
//two bonds and one of them is triple, or both are double (cumulated).
func IsColinear(mol *Molecule, at *Atom) bool {
	bonds := mol.BondsOf(at)
	if len(bonds) != 2 {
		return false
	}
	if bonds[0].Order == Triple || bonds[1].Order == Triple {
		return true
	}
	return bonds[0].Order == Double && bonds[1].Order == Double
}
