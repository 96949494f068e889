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

package sdg

import (
	"errors"

	"gonum.org/v1/gonum/spatial/r2"

	chem "github.com/rmera/gosdg"
)

//GenerateReactionCoordinates lays out every molecule of rxn and arranges them from
//left to right: reactants, then the agents over the gap for the arrow, then the
//products. If AlignMappedReaction is set, the largest mapped substructure common to
//a reactant and the products is drawn in the reactant as in the products.
func (G *Generator) GenerateReactionCoordinates(rxn *chem.Reaction) error {
	if rxn == nil {
		return nil
	}
	for _, m := range rxn.Products {
		if err := G.GenerateCoordinates(m); err != nil {
			return errDecorate(err, "GenerateReactionCoordinates")
		}
	}
	for _, m := range rxn.Agents {
		if err := G.GenerateCoordinates(m); err != nil {
			return errDecorate(err, "GenerateReactionCoordinates")
		}
	}
	products := chem.MappedAtoms(rxn.Products)
	for _, m := range rxn.Reactants {
		if m == nil || m.Len() == 0 {
			continue
		}
		set := G.opts.Fixed()
		if G.opts.AlignMappedReaction() {
			if s := alignmentSet(m, products); s != nil {
				set = s
			}
		}
		err := G.generate(m, set)
		if err != nil && set.Len() > 0 && errors.Is(err, ErrLayout) {
			G.logger().Warn("can't align reactant to the products, laying it out freely", "molecule", m.Name, "error", err)
			err = G.generate(m, nil)
		}
		if err != nil {
			return errDecorate(err, "GenerateReactionCoordinates")
		}
		G.finalizeSgroups(m)
	}
	arrangeReaction(rxn, G.opts.BondLength())
	return nil
}

//alignmentSet returns the largest connected set of mapped atoms of mol (at least
//two) whose bonds are also present between their images in the products, as a
//fixed set. The atoms get the coordinates of their images. It returns nil if there
//is no such set.
func alignmentSet(mol *chem.Molecule, products map[int]*chem.Atom) *FixedSet {
	image := func(a *chem.Atom) *chem.Atom {
		if a.MapIdx <= 0 {
			return nil
		}
		p := products[a.MapIdx]
		if p == nil || p.Point == nil {
			return nil
		}
		return p
	}
	kept := func(b *chem.Bond) bool {
		p1, p2 := image(b.At1), image(b.At2)
		return p1 != nil && p2 != nil && p1.BondTo(p2) != nil
	}
	mol.FillIndexes()
	seen := make(map[*chem.Atom]bool)
	var bestAtoms []*chem.Atom
	var bestBonds []*chem.Bond
	for _, a := range mol.Atoms {
		if seen[a] || image(a) == nil {
			continue
		}
		atoms := []*chem.Atom{a}
		var bonds []*chem.Bond
		seen[a] = true
		for i := 0; i < len(atoms); i++ {
			for _, b := range mol.BondsOf(atoms[i]) {
				if !kept(b) {
					continue
				}
				o := b.Cross(atoms[i])
				if !seen[o] {
					seen[o] = true
					atoms = append(atoms, o)
				}
				if atoms[i].Index < o.Index {
					bonds = append(bonds, b)
				}
			}
		}
		if len(atoms) > len(bestAtoms) {
			bestAtoms, bestBonds = atoms, bonds
		}
	}
	if len(bestAtoms) < 2 {
		return nil
	}
	for _, a := range bestAtoms {
		a.SetPos(image(a).Pos())
	}
	return NewFixedSet(bestAtoms, bestBonds)
}

//arrangeReaction moves the molecules of rxn to their places in the scheme. Every
//molecule is centred vertically on y=0, except the agents, which sit above it.
func arrangeReaction(rxn *chem.Reaction, bl float64) {
	x := 0.0
	place := func(m *chem.Molecule, y float64) {
		if m == nil || !m.Has2D() || m.Len() == 0 {
			return
		}
		b := bounds(m.Atoms)
		translateAtoms(m.Atoms, r2.Vec{X: x - b.Min.X, Y: y - (b.Min.Y+b.Max.Y)/2})
		x += b.Max.X - b.Min.X + 2*bl
	}
	for _, m := range rxn.Reactants {
		place(m, 0)
	}
	//the arrow gap is at least 3 bond lengths, and wide enough for the agents.
	aw := 0.0
	for _, m := range rxn.Agents {
		if m == nil || m.Len() == 0 || !m.Has2D() {
			continue
		}
		b := bounds(m.Atoms)
		aw += b.Max.X - b.Min.X + bl
	}
	gap := 3 * bl
	if aw+bl > gap {
		gap = aw + bl
	}
	ax := x + (gap-aw)/2
	for _, m := range rxn.Agents {
		if m == nil || m.Len() == 0 || !m.Has2D() {
			continue
		}
		b := bounds(m.Atoms)
		translateAtoms(m.Atoms, r2.Vec{X: ax - b.Min.X, Y: bl/2 - b.Min.Y})
		ax += b.Max.X - b.Min.X + bl
	}
	x += gap
	for _, m := range rxn.Products {
		place(m, 0)
	}
}
