/*
 * fragments.go, part of gosdg.
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
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	chem "github.com/rmera/gosdg"
	"github.com/rmera/gosdg/chemgraph"
	v2 "github.com/rmera/gosdg/v2"
)

//ionicBond is a temporary bond between a cation and an anion of different
//fragments, used to lay out a salt as a single piece.
type ionicBond struct {
	bond          *chem.Bond
	cation, anion *chem.Atom
}

//layoutFragments lays out a graph with several connected components. For neutral
//salts without fixed atoms, counter-ions are first bonded to each other so that
//they are drawn next to each other. The pieces are then tiled on a grid.
func (G *Generator) layoutFragments(mol *chem.Molecule, fixed *fixedState) (err error) {
	h := G.opts.Heuristics()
	bl := G.opts.BondLength()
	comps := chemgraph.PartitionIntoComponents(mol)
	var ionic []ionicBond
	if fixed.empty() && mol.Charge() == 0 && len(comps) >= 2 {
		ionic = pairIons(mol, comps)
	}
	removed := false
	removeIonic := func() error {
		if removed {
			return nil
		}
		removed = true
		for _, ib := range ionic {
			if e := mol.RemoveBond(ib.bond); e != nil {
				return errDecorate(e, "layoutFragments")
			}
		}
		return nil
	}
	defer func() {
		if e := removeIonic(); e != nil && err == nil {
			err = e
		}
	}()
	pieces := chemgraph.PartitionIntoComponents(mol)
	queue := append([]*chem.Molecule{}, pieces...)
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if err := G.layoutComponent(p, fixed); err != nil {
			return errDecorate(err, "layoutFragments")
		}
	}
	for _, ib := range ionic {
		stretchIonic(mol, ib, h.IonicStretch*bl)
	}
	if err := removeIonic(); err != nil {
		return err
	}
	tiles := groupIons(pieces, fixed, bl)
	tileFragments(tiles, h.FragmentMargin*bl, bl)
	return nil
}

//pairIons bonds cations to anions of different components, with the cations and
//anions sorted so that free ions come before those in charge-separated bonds and
//highly charged ions come first. An ion takes as many partners as its charge. No
//bond joins two components that are already joined, so no ring is created.
func pairIons(mol *chem.Molecule, comps []*chem.Molecule) []ionicBond {
	compOf := make(map[*chem.Atom]int, mol.Len())
	for i, c := range comps {
		for _, a := range c.Atoms {
			compOf[a] = i
		}
	}
	var cations, anions []*chem.Atom
	for _, a := range mol.Atoms {
		switch {
		case a.Charge > 0:
			cations = append(cations, a)
		case a.Charge < 0:
			anions = append(anions, a)
		}
	}
	separated := func(a *chem.Atom) bool {
		for _, n := range mol.Neighbors(a) {
			if n.Charge*a.Charge < 0 {
				return true
			}
		}
		return false
	}
	order := func(s []*chem.Atom) {
		sort.SliceStable(s, func(i, j int) bool {
			si, sj := separated(s[i]), separated(s[j])
			if si != sj {
				return !si
			}
			ci, cj := abs(s[i].Charge), abs(s[j].Charge)
			if ci != cj {
				return ci > cj
			}
			return s[i].Index < s[j].Index
		})
	}
	order(cations)
	order(anions)
	capacity := make(map[*chem.Atom]int, len(cations)+len(anions))
	for _, a := range append(append([]*chem.Atom{}, cations...), anions...) {
		capacity[a] = abs(a.Charge)
	}
	parent := make([]int, len(comps))
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	var ret []ionicBond
	for _, c := range cations {
		for _, an := range anions {
			if capacity[c] == 0 {
				break
			}
			if capacity[an] == 0 {
				continue
			}
			ci, ai := find(compOf[c]), find(compOf[an])
			if ci == ai {
				continue
			}
			b := mol.Connect(c, an, chem.Single)
			ret = append(ret, ionicBond{bond: b, cation: c, anion: an})
			capacity[c]--
			capacity[an]--
			parent[ai] = ci
		}
	}
	return ret
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

//stretchIonic moves the smaller side of an ionic bond (the anion side on ties)
//along the bond, so that the ions end up at distance target.
func stretchIonic(mol *chem.Molecule, ib ionicBond, target float64) {
	cs := sideOf(mol, ib.bond, ib.cation)
	as := sideOf(mol, ib.bond, ib.anion)
	side, root, other := as, ib.anion, ib.cation
	if len(cs) < len(as) {
		side, root, other = cs, ib.cation, ib.anion
	}
	d := v2.Dist(root.Pos(), other.Pos())
	dir := v2.Unit(r2.Sub(root.Pos(), other.Pos()))
	translateAtoms(side, r2.Scale(target-d, dir))
}

//tile is a group of atoms that is moved as a unit when fragments are arranged.
type tile struct {
	atoms  []*chem.Atom
	fixed  bool
	minIdx int
}

func newTile(atoms []*chem.Atom, fixed *fixedState) *tile {
	t := &tile{atoms: atoms, fixed: fixed.any(atoms), minIdx: math.MaxInt}
	for _, a := range atoms {
		if a.Index < t.minIdx {
			t.minIdx = a.Index
		}
	}
	return t
}

//groupIons returns one tile per piece, except for single-atom charged pieces,
//which are gathered into a row per element, charge and hydrogen count.
func groupIons(pieces []*chem.Molecule, fixed *fixedState, bl float64) []*tile {
	var ret []*tile
	groups := make(map[string][]*chem.Atom)
	var keys []string
	for _, p := range pieces {
		if p.Len() != 1 || p.Atom(0).Charge == 0 || fixed.any(p.Atoms) {
			ret = append(ret, newTile(p.Atoms, fixed))
			continue
		}
		a := p.Atom(0)
		k := fmt.Sprintf("%s/%d/%d", a.Symbol, a.Charge, a.ImplicitH)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], a)
	}
	for _, k := range keys {
		atoms := groups[k]
		for i, a := range atoms {
			a.SetPos(r2.Vec{X: float64(i) * bl * 1.5})
		}
		ret = append(ret, newTile(atoms, fixed))
	}
	return ret
}

//tileFragments arranges the tiles without fixed atoms on a grid, largest first,
//with rows going down. Tiles with fixed atoms stay where they are, and the grid
//starts to their right.
func tileFragments(tiles []*tile, margin, gap float64) {
	var free []*tile
	var fixedPts v2.Points
	for _, t := range tiles {
		if t.fixed {
			fixedPts = append(fixedPts, atomPoints(t.atoms)...)
			continue
		}
		free = append(free, t)
	}
	if len(free) == 0 {
		return
	}
	sort.SliceStable(free, func(i, j int) bool {
		if len(free[i].atoms) != len(free[j].atoms) {
			return len(free[i].atoms) > len(free[j].atoms)
		}
		return free[i].minIdx < free[j].minIdx
	})
	n := len(free)
	//floor, not ceil: grids are never taller than wide.
	rows := int(math.Floor(math.Sqrt(float64(n))))
	cols := (n + rows - 1) / rows
	colW := make([]float64, cols)
	rowH := make([]float64, rows)
	boxes := make([]r2.Box, n)
	for i, t := range free {
		boxes[i] = v2.Pad(bounds(t.atoms), margin)
		w := boxes[i].Max.X - boxes[i].Min.X
		h := boxes[i].Max.Y - boxes[i].Min.Y
		colW[i%cols] = math.Max(colW[i%cols], w)
		rowH[i/cols] = math.Max(rowH[i/cols], h)
	}
	var x0, y0 float64
	if len(fixedPts) > 0 {
		fb := fixedPts.Bounds()
		x0, y0 = fb.Max.X+gap, fb.Max.Y
	}
	for i, t := range free {
		r, c := i/cols, i%cols
		cx := x0 + colW[c]/2
		for k := 0; k < c; k++ {
			cx += colW[k] + gap
		}
		cy := y0 - rowH[r]/2
		for k := 0; k < r; k++ {
			cy -= rowH[k] + gap
		}
		centre := v2.Mid(boxes[i].Min, boxes[i].Max)
		translateAtoms(t.atoms, r2.Sub(r2.Vec{X: cx, Y: cy}, centre))
	}
}
