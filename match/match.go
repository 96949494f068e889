/*
 * match.go, part of gosdg.
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

//Package match implements the substructure matching oracle used by the
//structure diagram generator: template lookup and repeated-group detection
//both reduce to finding where a query graph maps onto a target graph.
package match

import (
	chem "github.com/rmera/gosdg"
)

//AtomMatcher decides whether a query atom can be mapped onto a target atom.
type AtomMatcher func(query, target *chem.Atom) bool

//BondMatcher decides whether a query bond can be mapped onto a target bond.
type BondMatcher func(query, target *chem.Bond) bool

//Mapping maps each query atom (by its position in the query's Atoms slice) to
//the position of its image in the target's Atoms slice.
type Mapping []int

//Oracle finds the mappings of a query graph onto subgraphs of a target graph.
//Match returns an empty slice, not an error, when there are no mappings.
type Oracle interface {
	Match(query, target *chem.Molecule, am AtomMatcher, bm BondMatcher) []Mapping
}

//ElementMatch maps atoms with the same element symbol.
func ElementMatch(query, target *chem.Atom) bool {
	return query.Symbol == target.Symbol
}

//AnyAtom maps any atom onto any atom.
func AnyAtom(query, target *chem.Atom) bool {
	return true
}

//AnyBond maps any bond onto any bond.
func AnyBond(query, target *chem.Bond) bool {
	return true
}

//OrderMatch maps bonds with the same order.
func OrderMatch(query, target *chem.Bond) bool {
	return query.Order == target.Order
}

//Restrict returns a matcher that accepts only the target atoms in allowed, and
//applies am to them.
func Restrict(am AtomMatcher, allowed map[*chem.Atom]bool) AtomMatcher {
	return func(q, t *chem.Atom) bool {
		return allowed[t] && am(q, t)
	}
}

//Atoms returns the target atoms of a mapping, in query order.
func (M Mapping) Atoms(target *chem.Molecule) []*chem.Atom {
	ret := make([]*chem.Atom, len(M))
	for i, t := range M {
		ret[i] = target.Atoms[t]
	}
	return ret
}
