/*
 * refiner.go, part of gosdg.
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
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	chem "github.com/rmera/gosdg"
	v2 "github.com/rmera/gosdg/v2"
)

//stereoViolations counts the acyclic stereo double bonds whose ligands are drawn
//in the wrong configuration. Bonds with a ligand on the bond line are not counted.
func (l *layout) stereoViolations() int {
	n := 0
	for _, s := range l.mol.Stereo {
		if wrong, ok := l.stereoWrong(s); ok && wrong {
			n++
		}
	}
	return n
}

//stereoWrong returns whether s is drawn with the wrong configuration, and false
//as its second value if that can't be decided.
func (l *layout) stereoWrong(s *chem.DoubleBondStereo) (wrong, ok bool) {
	b := s.Bond
	if b.InRing || !l.mol.ContainsBond(b) || s.Ligands[0] == nil || s.Ligands[1] == nil {
		return false, false
	}
	if !b.At1.Has2D() || !b.At2.Has2D() || !s.Ligands[0].Has2D() || !s.Ligands[1].Has2D() {
		return false, false
	}
	p, q := b.At1.Pos(), b.At2.Pos()
	s1 := v2.Side(s.Ligands[0].Pos(), p, q)
	s2 := v2.Side(s.Ligands[1].Pos(), p, q)
	if s1 == 0 || s2 == 0 {
		return false, false
	}
	together := s1 == s2
	return together != (s.Conf == chem.Together), true
}

//movable returns the side of b to move: the smaller one among those without fixed
//atoms, rooted at one atom of b, and the atom of b that stays. It returns nil if
//both sides have fixed atoms.
func (l *layout) movable(b *chem.Bond) (side []*chem.Atom, pivot *chem.Atom) {
	s1 := sideOf(l.mol, b, b.At1)
	s2 := sideOf(l.mol, b, b.At2)
	if len(s2) < len(s1) || (len(s2) == len(s1) && l.fixed.any(s1)) {
		s1, s2 = s2, s1
	}
	//s1 is now the preferred side.
	switch {
	case !l.fixed.any(s1):
		return s1, b.Cross(s1[0])
	case !l.fixed.any(s2):
		return s2, b.Cross(s2[0])
	}
	return nil, nil
}

//correctStereo reflects one half of the molecule across each acyclic double bond
//drawn with the wrong configuration.
func (l *layout) correctStereo() {
	for _, s := range l.mol.Stereo {
		wrong, ok := l.stereoWrong(s)
		if !ok || !wrong {
			continue
		}
		side, _ := l.movable(s.Bond)
		if side == nil {
			l.log.Warn("can't honour double bond configuration, both sides are fixed", "molecule", l.mol.Name, "bond", s.Bond.Index)
			continue
		}
		reflectAtoms(side, s.Bond.At1.Pos(), s.Bond.At2.Pos())
	}
}

//refine fixes stretched acyclic bonds and then tries to resolve overlapping atoms
//by flipping, rotating or stretching acyclic bonds on the path between them.
func (l *layout) refine() {
	l.restoreBondLengths()
	thr := l.h.OverlapThreshold * l.bl
	for pass := 0; pass < l.h.RefinePasses; pass++ {
		pairs := l.congestedPairs(thr)
		if len(pairs) == 0 {
			return
		}
		improved := false
		for _, pr := range pairs {
			if v2.Dist(pr[0].Pos(), pr[1].Pos()) >= thr {
				continue
			}
			if l.resolve(pr[0], pr[1]) {
				improved = true
			}
		}
		if !improved {
			l.log.Debug("overlaps left after refinement", "molecule", l.mol.Name, "pairs", len(pairs))
			return
		}
	}
}

func (l *layout) restoreBondLengths() {
	for _, b := range l.mol.Bonds {
		if b.InRing || l.fixed.bonds[b] {
			continue
		}
		p, q := b.At1.Pos(), b.At2.Pos()
		d := v2.Dist(p, q)
		if d < v2.Epsilon || math.Abs(d-l.bl) < 1e-3*l.bl {
			continue
		}
		side, pivot := l.movable(b)
		if side == nil {
			continue
		}
		dir := v2.Unit(r2.Sub(side[0].Pos(), pivot.Pos()))
		translateAtoms(side, r2.Scale(l.bl-d, dir))
	}
}

//congestedPairs returns the pairs of non-bonded atoms closer than thr, closest first.
func (l *layout) congestedPairs(thr float64) [][2]*chem.Atom {
	var ret [][2]*chem.Atom
	var dist []float64
	atoms := l.mol.Atoms
	for i, a := range atoms {
		for _, b := range atoms[i+1:] {
			if l.mol.BondBetween(a, b) != nil {
				continue
			}
			if d := v2.Dist(a.Pos(), b.Pos()); d < thr {
				ret = append(ret, [2]*chem.Atom{a, b})
				dist = append(dist, d)
			}
		}
	}
	idx := make([]int, len(ret))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return dist[idx[i]] < dist[idx[j]] })
	sorted := make([][2]*chem.Atom, len(ret))
	for i, k := range idx {
		sorted[i] = ret[k]
	}
	return sorted
}

//score is the congestion between the atoms in moved and all the others.
func (l *layout) score(moved []*chem.Atom) float64 {
	in := make(map[*chem.Atom]bool, len(moved))
	for _, a := range moved {
		in[a] = true
	}
	s := 0.0
	for _, a := range moved {
		for _, o := range l.mol.Atoms {
			if in[o] || l.mol.BondBetween(a, o) != nil {
				continue
			}
			d2 := r2.Norm2(r2.Sub(a.Pos(), o.Pos()))
			if d2 < v2.Epsilon {
				d2 = v2.Epsilon
			}
			s += 1 / d2
		}
	}
	return s
}

//resolve tries to move a and b apart. It returns true if some move was kept.
func (l *layout) resolve(a, b *chem.Atom) bool {
	for _, bond := range shortestPath(l.mol, a, b) {
		if bond.InRing || l.fixed.bonds[bond] {
			continue
		}
		side, pivot := l.movable(bond)
		if side == nil {
			continue
		}
		root := side[0]
		angle := v2.Deg2Rad(l.h.RefineAngle)
		moves := []func(){
			func() { reflectAtoms(side, pivot.Pos(), root.Pos()) },
			func() { rotateAtoms(side, angle, pivot.Pos()) },
			func() { rotateAtoms(side, -angle, pivot.Pos()) },
			func() {
				dir := v2.Unit(r2.Sub(root.Pos(), pivot.Pos()))
				translateAtoms(side, r2.Scale(l.h.StretchFactor*l.bl, dir))
			},
		}
		if l.tryMoves(side, moves) {
			return true
		}
	}
	return false
}

//tryMoves applies each move to side in turn, and keeps the first one that lowers
//the congestion without breaking a double bond configuration.
func (l *layout) tryMoves(side []*chem.Atom, moves []func()) bool {
	before := l.score(side)
	viol := l.stereoViolations()
	saved := make([]r2.Vec, len(side))
	for i, a := range side {
		saved[i] = a.Pos()
	}
	for _, m := range moves {
		m()
		if l.score(side)-before < -v2.Epsilon && l.stereoViolations() <= viol {
			return true
		}
		for i, a := range side {
			a.SetPos(saved[i])
		}
	}
	return false
}
