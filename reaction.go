/*
 * reaction.go, part of gosdg.
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

//Reaction groups the molecules taking part in a chemical reaction. Atoms of
//reactants and products can be related through their MapIdx.
type Reaction struct {
	Reactants []*Molecule
	Agents    []*Molecule
	Products  []*Molecule
}

//Molecules returns all the molecules in the reaction: reactants, agents
//and products, in that order.
func (R *Reaction) Molecules() []*Molecule {
	ret := make([]*Molecule, 0, len(R.Reactants)+len(R.Agents)+len(R.Products))
	ret = append(ret, R.Reactants...)
	ret = append(ret, R.Agents...)
	return append(ret, R.Products...)
}

//MappedAtoms returns a map from mapping index to atom for all the mapped atoms
//in the given molecules. If a mapping index is repeated, the first atom wins.
func MappedAtoms(mols []*Molecule) map[int]*Atom {
	ret := make(map[int]*Atom)
	for _, m := range mols {
		for _, a := range m.Atoms {
			if a.MapIdx <= 0 {
				continue
			}
			if _, ok := ret[a.MapIdx]; !ok {
				ret[a.MapIdx] = a
			}
		}
	}
	return ret
}
