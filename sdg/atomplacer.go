/*
 * atomplacer.go, part of gosdg.
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

	"gonum.org/v1/gonum/spatial/r2"

	chem "github.com/rmera/gosdg"
	v2 "github.com/rmera/gosdg/v2"
)

var sixty = math.Pi / 3

//neighbours splits the neighbours of at into placed and unplaced ones.
func (l *layout) neighbours(at *chem.Atom) (placed, unplaced []*chem.Atom) {
	for _, n := range l.mol.Neighbors(at) {
		if n.Placed {
			placed = append(placed, n)
		} else {
			unplaced = append(unplaced, n)
		}
	}
	return placed, unplaced
}

//handleAliphatics places chains of acyclic atoms that hang from placed atoms, until
//there are none left. It returns true if anything was placed.
func (l *layout) handleAliphatics() bool {
	progress := false
	for guard := 0; guard < l.mol.Len(); guard++ {
		p := l.nextAliphaticAnchor()
		if p == nil {
			break
		}
		chain := l.longestUnplacedChain(p)
		placed, unplaced := l.neighbours(p)
		var dir r2.Vec
		switch {
		case len(unplaced) == 1 && len(placed) == 0:
			dir = l.firstVec
		case len(unplaced) == 1 && len(placed) == 1:
			dir = l.nextBondVector(p, placed[0])
		default:
			l.distributePartners(p, placed, unplaced)
			dir = v2.Unit(r2.Sub(chain[1].Pos(), p.Pos()))
		}
		l.placeLinearChain(chain, dir)
		progress = true
	}
	return progress
}

//nextAliphaticAnchor returns the first placed atom with an unplaced acyclic
//neighbour, or nil.
func (l *layout) nextAliphaticAnchor() *chem.Atom {
	for _, a := range l.mol.Atoms {
		if !a.Placed {
			continue
		}
		for _, n := range l.mol.Neighbors(a) {
			if !n.Placed && !n.InRing {
				return a
			}
		}
	}
	return nil
}

//farthest runs a breadth-first search from start through the atoms accepted by
//ok, and returns the farthest atom reached (the lowest Index among equally far
//ones) and the parent of each visited atom.
func (l *layout) farthest(start *chem.Atom, ok func(*chem.Atom) bool) (*chem.Atom, map[*chem.Atom]*chem.Atom) {
	parent := map[*chem.Atom]*chem.Atom{start: nil}
	dist := map[*chem.Atom]int{start: 0}
	queue := []*chem.Atom{start}
	far := start
	for i := 0; i < len(queue); i++ {
		cur := queue[i]
		if d := dist[cur]; d > dist[far] || (d == dist[far] && cur.Index < far.Index) {
			far = cur
		}
		for _, n := range l.mol.Neighbors(cur) {
			if _, seen := parent[n]; seen || !ok(n) {
				continue
			}
			parent[n] = cur
			dist[n] = dist[cur] + 1
			queue = append(queue, n)
		}
	}
	return far, parent
}

//pathTo returns the atoms from the search root to end, following parent.
func pathTo(end *chem.Atom, parent map[*chem.Atom]*chem.Atom) []*chem.Atom {
	var ret []*chem.Atom
	for a := end; a != nil; a = parent[a] {
		ret = append(ret, a)
	}
	for i, j := 0, len(ret)-1; i < j; i, j = i+1, j-1 {
		ret[i], ret[j] = ret[j], ret[i]
	}
	return ret
}

//longestUnplacedChain returns p followed by the longest path of unplaced acyclic
//atoms that starts at a neighbour of p.
func (l *layout) longestUnplacedChain(p *chem.Atom) []*chem.Atom {
	end, parent := l.farthest(p, func(a *chem.Atom) bool { return !a.Placed && !a.InRing })
	return pathTo(end, parent)
}

//longestChain returns the longest path of an acyclic graph (a diameter, found
//with two breadth-first searches).
func (l *layout) longestChain() []*chem.Atom {
	all := func(*chem.Atom) bool { return true }
	end1, _ := l.farthest(l.mol.Atom(0), all)
	end2, parent := l.farthest(end1, all)
	return pathTo(end2, parent)
}

//placeLinearChain places chain[1:] as a zig-zag, starting from the placed atom
//chain[0] with the first bond along dir. Atoms with two bonds of which one is
//triple, or two doubles, keep the chain straight.
func (l *layout) placeLinearChain(chain []*chem.Atom, dir r2.Vec) {
	prev := v2.Unit(dir)
	for i := 1; i < len(chain); i++ {
		d := prev
		if i > 1 {
			d = l.turn(chain, i, prev)
		}
		chain[i].SetPos(r2.Add(chain[i-1].Pos(), r2.Scale(l.bl, d)))
		chain[i].Placed = true
		prev = d
	}
}

//turn returns the direction of the bond from chain[i-1] to chain[i], given the
//direction of the previous bond: 60 degrees away from it, to the side opposite to
//the closest earlier atom that is off the line of the previous bond.
func (l *layout) turn(chain []*chem.Atom, i int, prev r2.Vec) r2.Vec {
	a, b := chain[i-2], chain[i-1]
	if chem.IsColinear(l.mol, b) {
		return prev
	}
	var refs []*chem.Atom
	for k := i - 3; k >= 0; k-- {
		refs = append(refs, chain[k])
	}
	for _, n := range l.mol.Neighbors(chain[0]) {
		if n != chain[1] && n.Point != nil {
			refs = append(refs, n)
		}
	}
	return l.transTurn(a.Pos(), b.Pos(), prev, refs, nil)
}

//transTurn rotates prev by 60 degrees towards the side of the a->b line opposite to
//the first reference point off that line. Without such a point, the rotation that
//takes b farther from centroid wins if centroid is given, and the clockwise one
//otherwise.
func (l *layout) transTurn(a, b, prev r2.Vec, refs []*chem.Atom, centroid *r2.Vec) r2.Vec {
	plus := r2.Rotate(prev, sixty, r2.Vec{})
	minus := r2.Rotate(prev, -sixty, r2.Vec{})
	for _, ref := range refs {
		s := v2.Side(ref.Pos(), a, b)
		if s == 0 {
			continue
		}
		if v2.Side(r2.Add(b, plus), a, b) == -s {
			return plus
		}
		return minus
	}
	if centroid != nil {
		dp := v2.Dist(r2.Add(b, r2.Scale(l.bl, plus)), *centroid)
		dm := v2.Dist(r2.Add(b, r2.Scale(l.bl, minus)), *centroid)
		if dp > dm+v2.Epsilon {
			return plus
		}
	}
	return minus
}

//nextBondVector returns the direction for the only unplaced bond of p, whose
//only placed neighbour is prev: a zig-zag continuation, trans to the other
//neighbours of prev, or else away from the placed atoms.
func (l *layout) nextBondVector(p, prev *chem.Atom) r2.Vec {
	v := v2.Unit(r2.Sub(p.Pos(), prev.Pos()))
	if chem.IsColinear(l.mol, p) {
		return v
	}
	var refs []*chem.Atom
	for _, n := range l.mol.Neighbors(prev) {
		if n != p && n.Point != nil {
			refs = append(refs, n)
		}
	}
	c := l.placedCentroid()
	return l.transTurn(prev.Pos(), p.Pos(), v, refs, &c)
}

//placedCentroid returns the centroid of the placed atoms.
func (l *layout) placedCentroid() r2.Vec {
	pts := make(v2.Points, 0, l.mol.Len())
	for _, a := range l.mol.Atoms {
		if a.Placed && a.Point != nil {
			pts = append(pts, *a.Point)
		}
	}
	return pts.Centroid()
}

//distributePartners puts the unplaced neighbours of p around it, at one bond
//length and evenly spaced in the free angle left by the placed ones. Ring atoms
//get only a tentative point: they stay unplaced until their ring system is laid out.
func (l *layout) distributePartners(p *chem.Atom, placed, unplaced []*chem.Atom) {
	n := len(unplaced)
	if n == 0 {
		return
	}
	centre := p.Pos()
	angles := make([]float64, n)
	switch len(placed) {
	case 0:
		a0 := v2.Angle(l.firstVec)
		for k := range angles {
			angles[k] = a0 + float64(k)*v2.TwoPi/float64(n)
		}
	case 1:
		base := v2.Angle(r2.Sub(placed[0].Pos(), centre))
		step := v2.TwoPi / float64(n+1)
		for k := range angles {
			angles[k] = base + float64(k+1)*step
		}
	default:
		start, width := largestGap(centre, atomPoints(placed))
		step := width / float64(n+1)
		for k := range angles {
			angles[k] = start + float64(k+1)*step
		}
	}
	for k, u := range unplaced {
		u.SetPos(r2.Add(centre, v2.Polar(angles[k], l.bl)))
		if !u.InRing {
			u.Placed = true
		}
	}
}
