/*
 * ringplacer.go, part of gosdg.
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
	"gonum.org/v1/gonum/spatial/r2"

	chem "github.com/rmera/gosdg"
	"github.com/rmera/gosdg/ring"
	"github.com/rmera/gosdg/templates"
	v2 "github.com/rmera/gosdg/v2"
)

//layoutRingSystem places all the atoms of sys, which must have none placed, and
//returns how its first ring(s) were obtained. Only the atoms of sys are taken into
//account, so the result lives in its own frame.
func (l *layout) layoutRingSystem(sys *ring.Set) origin {
	l.local = sys
	defer func() { l.local = nil }()
	sys.SortBySize()
	for _, r := range sys.Rings {
		r.Placed = false
	}
	if l.templateLayout(sys) {
		markPlaced(sys)
		return fromTemplate
	}
	ret := fromPolygon
	anchor := sys.MostComplex()
	switch core := peelCore(sys); {
	case core != nil && l.templateLayout(core):
		markPlaced(core)
		ret = fromTemplate
	case anchor.Len() >= l.h.MinMacrocycleSize && sys.SharedBonds(anchor) < anchor.Len() && l.layoutMacrocycle(anchor):
		markRingPlaced(anchor)
		ret = fromMacrocycle
	default:
		l.placeFirstRing(anchor)
	}
	l.placeConnectedRings(sys)
	return ret
}

func markRingPlaced(r *ring.Ring) {
	for _, a := range r.Atoms {
		a.Placed = true
	}
	r.Placed = true
}

func markPlaced(s *ring.Set) {
	for _, r := range s.Rings {
		markRingPlaced(r)
	}
}

//templateLayout tries to give the atoms of set the coordinates of an identity template.
//It tries, in order, the ring atoms with their first substituent atoms, the bare
//ring skeleton and, for polycyclic systems, the skeleton with every atom taken as
//a carbon.
func (l *layout) templateLayout(set *ring.Set) bool {
	if l.g.lib == nil {
		return false
	}
	atoms, bonds := set.Atoms(), set.Bonds()
	skeleton := chem.NewView("skeleton", atoms, bonds)
	levels := make([]*chem.Molecule, 0, 3)
	if stubs := l.withStubs(set, atoms, bonds); stubs != nil {
		levels = append(levels, stubs)
	}
	levels = append(levels, skeleton)
	if set.Len() > 1 {
		if anon, ok := templates.Anonymize(skeleton); ok {
			levels = append(levels, anon)
		}
	}
	f := l.scaleFactor()
	for _, lv := range levels {
		cand, _ := lv.Clone()
		if !l.g.lib.LookupAndAssign(cand) {
			continue
		}
		//Clone keeps the atom order, and every level starts with the ring atoms
		//in the same order as skeleton.
		for i, a := range atoms {
			a.SetPos(r2.Scale(f, cand.Atoms[i].Pos()))
		}
		l.log.Debug("ring system matched a template", "molecule", l.mol.Name, "atoms", len(atoms))
		return true
	}
	return false
}

//withStubs returns a view with the ring atoms, followed by their non-hydrogen
//neighbours outside the ring system, and the bonds among them. It returns nil if
//there are no such neighbours.
func (l *layout) withStubs(set *ring.Set, atoms []*chem.Atom, bonds []*chem.Bond) *chem.Molecule {
	var stubs []*chem.Atom
	var sbonds []*chem.Bond
	seen := make(map[*chem.Atom]bool)
	for _, a := range atoms {
		for _, b := range l.mol.BondsOf(a) {
			o := b.Cross(a)
			if set.Contains(o) || o.IsHydrogen() {
				continue
			}
			if !seen[o] {
				seen[o] = true
				stubs = append(stubs, o)
			}
			sbonds = append(sbonds, b)
		}
	}
	if len(stubs) == 0 {
		return nil
	}
	all := append(append([]*chem.Atom{}, atoms...), stubs...)
	return chem.NewView("stubs", all, append(append([]*chem.Bond{}, bonds...), sbonds...))
}

//peelCore removes, one at a time, the rings that share exactly one bond with the
//rest of the system, and returns the polycyclic core that remains. It returns nil
//if nothing was removed or fewer than two rings are left.
func peelCore(sys *ring.Set) *ring.Set {
	rings := append([]*ring.Ring{}, sys.Rings...)
	peeled := false
	for changed := true; changed && len(rings) > 2; {
		changed = false
		for i, r := range rings {
			rest := &ring.Set{Rings: without(rings, i)}
			var shared []*chem.Atom
			for _, a := range r.Atoms {
				if rest.Contains(a) {
					shared = append(shared, a)
				}
			}
			if len(shared) == 2 && (r.Next(shared[0]) == shared[1] || r.Prev(shared[0]) == shared[1]) {
				rings = rest.Rings
				peeled, changed = true, true
				break
			}
		}
	}
	if !peeled {
		return nil
	}
	return &ring.Set{Rings: rings}
}

func without(rings []*ring.Ring, i int) []*ring.Ring {
	ret := make([]*ring.Ring, 0, len(rings)-1)
	ret = append(ret, rings[:i]...)
	return append(ret, rings[i+1:]...)
}

//placeFirstRing places r as a regular polygon with its first bond along the first
//bond vector, starting at the origin, and the rest of the ring to its left.
func (l *layout) placeFirstRing(r *ring.Ring) {
	n := r.Len()
	a0 := r2.Vec{}
	a1 := r2.Scale(l.bl, l.firstVec)
	c := r2.Add(v2.Mid(a0, a1), r2.Scale(apothem(l.bl, n), v2.Perp(l.firstVec)))
	pts := polygon(c, circumradius(l.bl, n), v2.Angle(r2.Sub(a0, c)), n, 1)
	for k, a := range r.Atoms {
		a.SetPos(pts[k])
	}
	markRingPlaced(r)
}

//framePlaced returns the placed atoms that share a frame with the atoms being
//placed: those of the ring system under construction, or every placed atom when
//completing a partially placed system.
func (l *layout) framePlaced() []*chem.Atom {
	var src []*chem.Atom
	if l.local != nil {
		src = l.local.Atoms()
	} else {
		src = l.mol.Atoms
	}
	ret := make([]*chem.Atom, 0, len(src))
	for _, a := range src {
		if a.Placed && a.Point != nil {
			ret = append(ret, a)
		}
	}
	return ret
}

type ringKind int

const (
	fusedRing ringKind = iota
	bridgedRing
	spiroRing
)

//classify tells how the unplaced ring r connects to the placed atoms.
func classify(r *ring.Ring) (ringKind, bool) {
	placed := r.PlacedAtoms()
	switch {
	case len(placed) == 0:
		return 0, false
	case len(placed) == 1:
		return spiroRing, true
	case len(placed) == 2 && (r.Next(placed[0]) == placed[1] || r.Prev(placed[0]) == placed[1]):
		return fusedRing, true
	}
	return bridgedRing, true
}

//placeConnectedRings places the rings of sys that share atoms with already placed
//ones, fused rings first, then bridged and spiro ones, until no more can be placed.
//Placed atoms are never moved.
func (l *layout) placeConnectedRings(sys *ring.Set) {
	for guard := 0; guard <= sys.Len(); guard++ {
		for _, r := range sys.Rings {
			if !r.Placed && len(r.PlacedAtoms()) == r.Len() {
				r.Placed = true
			}
		}
		next := l.nextRing(sys)
		if next == nil {
			return
		}
		l.placeRing(sys, next)
	}
}

//nextRing returns the unplaced ring to place next, or nil.
func (l *layout) nextRing(sys *ring.Set) *ring.Ring {
	for _, want := range []ringKind{fusedRing, bridgedRing, spiroRing} {
		for _, r := range sys.Rings {
			if r.Placed {
				continue
			}
			if k, ok := classify(r); ok && k == want {
				return r
			}
		}
	}
	return nil
}

func (l *layout) placeRing(sys *ring.Set, r *ring.Ring) {
	k, ok := classify(r)
	if !ok {
		return
	}
	switch k {
	case fusedRing:
		placed := r.PlacedAtoms()
		l.placeFused(sys, r, placed[0], placed[1])
	case bridgedRing:
		l.placeBridged(r)
	case spiroRing:
		l.placeSpiro(r, r.PlacedAtoms()[0])
	}
	markRingPlaced(r)
}

//placeFused places r as a regular polygon on the bond a-b, on the side opposite to
//the placed rings that share that bond.
func (l *layout) placeFused(sys *ring.Set, r *ring.Ring, a, b *chem.Atom) {
	if r.Next(a) != b {
		a, b = b, a
	}
	n := r.Len()
	pa, pb := a.Pos(), b.Pos()
	d := v2.Dist(pa, pb)
	mid := v2.Mid(pa, pb)
	var away r2.Vec
	centres := make(v2.Points, 0, 2)
	for _, o := range sys.Rings {
		if o != r && o.Placed && o.Contains(a) && o.Contains(b) {
			centres = append(centres, o.Center())
		}
	}
	if len(centres) > 0 {
		away = r2.Sub(mid, centres.Centroid())
	} else {
		others := make(v2.Points, 0)
		for _, at := range l.framePlaced() {
			if at != a && at != b {
				others = append(others, at.Pos())
			}
		}
		if len(others) > 0 {
			away = r2.Sub(mid, others.Centroid())
		}
	}
	normal := v2.Perp(v2.Unit(r2.Sub(pb, pa)))
	if r2.Dot(away, normal) < 0 {
		normal = r2.Scale(-1, normal)
	}
	c := r2.Add(mid, r2.Scale(apothem(d, n), normal))
	sign := 1.0
	if r2.Cross(r2.Sub(pa, c), r2.Sub(pb, c)) < 0 {
		sign = -1
	}
	pts := polygon(c, circumradius(d, n), v2.Angle(r2.Sub(pa, c)), n, sign)
	start := r.Index(a)
	for k := 0; k < n; k++ {
		at := r.Atoms[(start+k)%n]
		if !at.Placed {
			at.SetPos(pts[k])
		}
	}
}

//placeBridged places each run of unplaced atoms of r on an arc between the placed
//atoms at its ends, bulging towards the less crowded side.
func (l *layout) placeBridged(r *ring.Ring) {
	n := r.Len()
	first := -1
	for i, a := range r.Atoms {
		if a.Placed {
			first = i
			break
		}
	}
	if first < 0 {
		return
	}
	for k := 0; k < n; {
		i := (first + k) % n
		j := k + 1
		for j <= n && !r.Atoms[(first+j)%n].Placed {
			j++
		}
		m := j - k - 1
		if m > 0 {
			p, q := r.Atoms[i].Pos(), r.Atoms[(first+j)%n].Pos()
			run := make([]*chem.Atom, m)
			for x := range run {
				run[x] = r.Atoms[(first+k+1+x)%n]
			}
			l.placeArc(run, p, q)
		}
		k = j
	}
}

//placeArc places run between p and q, on the side with the least congestion.
func (l *layout) placeArc(run []*chem.Atom, p, q r2.Vec) {
	around := atomPoints(l.framePlaced())
	left := arcPoints(p, q, len(run), l.bl, 1)
	right := arcPoints(p, q, len(run), l.bl, -1)
	pts := left
	if congestion(right, around) < congestion(left, around)-v2.Epsilon {
		pts = right
	}
	for x, a := range run {
		a.SetPos(pts[x])
		a.Placed = true
	}
}

//congestion returns the sum of the inverse square distances between the points
//in pts and those in around.
func congestion(pts, around []r2.Vec) float64 {
	s := 0.0
	for _, p := range pts {
		for _, q := range around {
			d2 := r2.Norm2(r2.Sub(p, q))
			if d2 < v2.Epsilon {
				d2 = v2.Epsilon
			}
			s += 1 / d2
		}
	}
	return s
}

//placeSpiro places r as a regular polygon that only touches the placed atom a,
//pointing away from the placed neighbours of a.
func (l *layout) placeSpiro(r *ring.Ring, a *chem.Atom) {
	n := r.Len()
	pa := a.Pos()
	inFrame := make(map[*chem.Atom]bool)
	for _, at := range l.framePlaced() {
		inFrame[at] = true
	}
	nb := make(v2.Points, 0, 4)
	for _, o := range l.mol.Neighbors(a) {
		if inFrame[o] {
			nb = append(nb, o.Pos())
		}
	}
	dir := l.firstVec
	if len(nb) > 0 {
		if v := r2.Sub(pa, nb.Centroid()); !v2.IsNull(v) {
			dir = v2.Unit(v)
		}
	}
	radius := circumradius(l.bl, n)
	c := r2.Add(pa, r2.Scale(radius, dir))
	pts := polygon(c, radius, v2.Angle(r2.Sub(pa, c)), n, 1)
	start := r.Index(a)
	for k := 0; k < n; k++ {
		at := r.Atoms[(start+k)%n]
		if !at.Placed {
			at.SetPos(pts[k])
		}
	}
}

//placeRingSubstituents gives coordinates to the neighbours of the atoms of sys
//that are not yet placed.
func (l *layout) placeRingSubstituents(sys *ring.Set) {
	for _, a := range sys.Atoms() {
		placed, unplaced := l.neighbours(a)
		if len(unplaced) == 0 {
			continue
		}
		safely(l.log, "ring substituents", func() { l.distributePartners(a, placed, unplaced) })
	}
}

func anyPlaced(atoms []*chem.Atom) bool {
	for _, a := range atoms {
		if a.Placed {
			return true
		}
	}
	return false
}

//layoutNextRingSystem lays out a ring system bonded to a placed atom, and attaches
//it to that atom. It returns false if there was none.
func (l *layout) layoutNextRingSystem() bool {
	for _, b := range l.mol.Bonds {
		for _, pr := range [2][2]*chem.Atom{{b.At1, b.At2}, {b.At2, b.At1}} {
			p, r := pr[0], pr[1]
			if !p.Placed || r.Placed || !r.InRing {
				continue
			}
			sys := l.sysOf[r]
			if sys == nil || anyPlaced(sys.Atoms()) {
				continue
			}
			l.attachRingSystem(sys, p, r)
			return true
		}
	}
	return false
}

//attachRingSystem lays out sys in its own frame, and then moves it so that r lands
//on its tentative point, with the bond from p pointing out of the system.
func (l *layout) attachRingSystem(sys *ring.Set, p, r *chem.Atom) {
	if r.Point == nil {
		placed, unplaced := l.neighbours(p)
		if len(placed) == 1 && len(unplaced) == 1 {
			r.SetPos(r2.Add(p.Pos(), r2.Scale(l.bl, l.nextBondVector(p, placed[0]))))
		} else {
			l.distributePartners(p, placed, unplaced)
		}
	}
	oldP, oldR := p.Pos(), r.Pos()
	o := l.layoutRingSystem(sys)
	l.log.Debug("ring system placed", "molecule", l.mol.Name, "rings", sys.Len(), "origin", o)
	atoms := sys.Atoms()
	inner := make([]r2.Vec, 0, 4)
	for _, n := range l.mol.Neighbors(r) {
		if sys.Contains(n) {
			inner = append(inner, n.Pos())
		}
	}
	start, width := largestGap(r.Pos(), inner)
	pp := r2.Add(r.Pos(), v2.Polar(start+width/2, l.bl))
	alpha := v2.Angle(r2.Sub(oldR, oldP)) - v2.Angle(r2.Sub(r.Pos(), pp))
	rotateAtoms(atoms, alpha, pp)
	translateAtoms(atoms, r2.Sub(oldP, pp))
	l.placeRingSubstituents(sys)
}

//completePartialRingSystems finishes the ring systems that have some, but not all,
//of their atoms placed (fixed), without moving those.
func (l *layout) completePartialRingSystems() {
	for _, sys := range l.systems {
		atoms := sys.Atoms()
		if !anyPlaced(atoms) {
			continue
		}
		sys.SortBySize()
		for _, r := range sys.Rings {
			r.Placed = len(r.PlacedAtoms()) == r.Len()
		}
		if !sys.AllPlaced() && !anyRingPlaced(sys) {
			var best *ring.Ring
			for _, r := range sys.Rings {
				if best == nil || len(r.PlacedAtoms()) > len(best.PlacedAtoms()) {
					best = r
				}
			}
			l.placeRing(sys, best)
		}
		l.placeConnectedRings(sys)
		l.placeRingSubstituents(sys)
	}
}

func anyRingPlaced(sys *ring.Set) bool {
	for _, r := range sys.Rings {
		if r.Placed {
			return true
		}
	}
	return false
}
