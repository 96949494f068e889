/*
 * sgroups.go, part of gosdg.
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
	"sort"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	chem "github.com/rmera/gosdg"
	"github.com/rmera/gosdg/match"
	v2 "github.com/rmera/gosdg/v2"
)

//finalizeSgroups adjusts the layout of mol to its substructure groups, and computes
//their brackets. A group that can't be handled is skipped with a warning.
func (G *Generator) finalizeSgroups(mol *chem.Molecule) {
	if len(mol.Sgroups) == 0 {
		return
	}
	lg := G.logger()
	fixed := G.newFixedState(mol, G.opts.Fixed())
	for _, sg := range mol.Sgroups {
		if sg.Type == chem.SgroupMultiple {
			safely(lg, "multiple group overlay", func() { G.overlayMultiple(mol, sg, fixed) })
		}
	}
	//positional groups sharing the same candidate atoms get different bonds.
	seen := make(map[string]int)
	for _, sg := range mol.Sgroups {
		if sg.Type != chem.SgroupPositional {
			continue
		}
		k := candidateKey(sg.Atoms)
		nth := seen[k]
		seen[k]++
		safely(lg, "positional group", func() { G.placePositional(mol, sg, nth, fixed) })
	}
	for _, sg := range mol.Sgroups {
		if sg.Type.HasBrackets() {
			safely(lg, "brackets", func() { G.brackets(mol, sg) })
		}
	}
}

func candidateKey(atoms []*chem.Atom) string {
	idx := make([]int, len(atoms))
	for i, a := range atoms {
		idx[i] = a.Index
	}
	sort.Ints(idx)
	return strings.Trim(fmt.Sprint(idx), "[]")
}

//overlayMultiple puts each repeat of a multiple group on top of the displayed one.
func (G *Generator) overlayMultiple(mol *chem.Molecule, sg *chem.Sgroup, fixed *fixedState) {
	if len(sg.ParentAtoms) == 0 {
		panic("multiple group without parent atoms")
	}
	inParent := make(map[*chem.Atom]bool, len(sg.ParentAtoms))
	for _, a := range sg.ParentAtoms {
		inParent[a] = true
	}
	free := make(map[*chem.Atom]bool)
	var others []*chem.Atom
	for _, a := range sg.Atoms {
		if !inParent[a] {
			others = append(others, a)
			free[a] = true
		}
	}
	if len(others) == 0 {
		return
	}
	query := chem.InducedSubgraph("parent", sg.ParentAtoms)
	target := chem.InducedSubgraph("repeats", others)
	for len(free) >= query.Len() {
		maps := G.oracle.Match(query, target, match.Restrict(match.ElementMatch, free), match.AnyBond)
		if len(maps) == 0 {
			break
		}
		for i, t := range maps[0].Atoms(target) {
			delete(free, t)
			if !fixed.atoms[t] {
				t.SetPos(query.Atom(i).Pos())
			}
		}
	}
	if len(free) > 0 {
		G.logger().Warn("multiple group repeats don't match the parent", "molecule", mol.Name, "unmatched", len(free))
	}
}

//placePositional moves the substituent of a positional variation group so that it
//hangs from the middle of one of the bonds among the candidate atoms (the nth one,
//cycling), pointing away from the ring.
func (G *Generator) placePositional(mol *chem.Molecule, sg *chem.Sgroup, nth int, fixed *fixedState) {
	if len(sg.Bonds) != 1 {
		panic(fmt.Sprintf("positional group with %d bonds", len(sg.Bonds)))
	}
	cand := make(map[*chem.Atom]bool, len(sg.Atoms))
	for _, a := range sg.Atoms {
		cand[a] = true
	}
	sb := sg.Bonds[0]
	from, root := sb.At1, sb.At2
	if !cand[from] {
		from, root = root, from
	}
	if !cand[from] || cand[root] {
		panic("positional group bond doesn't leave the candidate atoms")
	}
	var bonds []*chem.Bond
	for _, b := range mol.Bonds {
		if cand[b.At1] && cand[b.At2] {
			bonds = append(bonds, b)
		}
	}
	if len(bonds) == 0 {
		panic("positional group candidates share no bond")
	}
	b := bonds[nth%len(bonds)]
	mid := v2.Mid(b.At1.Pos(), b.At2.Pos())
	around := make(v2.Points, 0, 4)
	for _, end := range []*chem.Atom{b.At1, b.At2} {
		for _, n := range mol.Neighbors(end) {
			if !b.Contains(n) && n != root {
				around = append(around, n.Pos())
			}
		}
	}
	out := v2.Perp(v2.Unit(r2.Sub(b.At2.Pos(), b.At1.Pos())))
	if len(around) > 0 {
		if v := r2.Sub(mid, around.Centroid()); !v2.IsNull(v) {
			out = v2.Unit(v)
		}
	}
	//the substituent: everything reachable from root without crossing the
	//group bond or the candidate atoms.
	frag := []*chem.Atom{root}
	seen := map[*chem.Atom]bool{root: true}
	for i := 0; i < len(frag); i++ {
		for _, bb := range mol.BondsOf(frag[i]) {
			o := bb.Cross(frag[i])
			if bb == sb || cand[o] || seen[o] {
				continue
			}
			seen[o] = true
			frag = append(frag, o)
		}
	}
	if fixed.any(frag) {
		return
	}
	rp := root.Pos()
	alpha := v2.Angle(out) - v2.Angle(r2.Sub(rp, from.Pos()))
	rotateAtoms(frag, alpha, rp)
	translateAtoms(frag, r2.Sub(r2.Add(mid, r2.Scale(G.opts.BondLength(), out)), rp))
}

//brackets computes the brackets of a group. A group crossed by exactly two bonds
//gets a bracket across each of them; any other group gets a pair of vertical
//brackets around its atoms.
func (G *Generator) brackets(mol *chem.Molecule, sg *chem.Sgroup) {
	atoms := sg.Atoms
	if sg.Type == chem.SgroupMultiple && len(sg.ParentAtoms) > 0 {
		atoms = sg.ParentAtoms
	}
	if len(atoms) == 0 {
		sg.Brackets = nil
		return
	}
	bl := G.opts.BondLength()
	h := G.opts.Heuristics()
	in := make(map[*chem.Atom]bool, len(atoms))
	for _, a := range atoms {
		in[a] = true
	}
	crossing := chem.CrossingBonds(mol, atoms)
	if len(crossing) == 2 {
		half := h.BracketLength * bl / 2
		sg.Brackets = make([]chem.Bracket, 0, 2)
		for _, b := range crossing {
			inner, outer := b.At1, b.At2
			if !in[inner] {
				inner, outer = outer, inner
			}
			d := v2.Unit(r2.Sub(outer.Pos(), inner.Pos()))
			m := v2.Mid(inner.Pos(), outer.Pos())
			n := r2.Scale(half, v2.Perp(d))
			sg.Brackets = append(sg.Brackets, chem.Bracket{P1: r2.Sub(m, n), P2: r2.Add(m, n)})
		}
		return
	}
	box := v2.Pad(bounds(atoms), h.BracketPadding*bl)
	sg.Brackets = []chem.Bracket{
		{P1: r2.Vec{X: box.Min.X, Y: box.Max.Y}, P2: r2.Vec{X: box.Min.X, Y: box.Min.Y}},
		{P1: r2.Vec{X: box.Max.X, Y: box.Min.Y}, P2: r2.Vec{X: box.Max.X, Y: box.Max.Y}},
	}
}
