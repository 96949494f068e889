/*
 * geometry.go, part of gosdg.
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

//polygon returns the n vertices of a regular polygon centred at c, the first one at
//angle start, going counterclockwise if sign is positive.
func polygon(c r2.Vec, radius, start float64, n int, sign float64) []r2.Vec {
	ret := make([]r2.Vec, n)
	step := sign * v2.TwoPi / float64(n)
	for k := range ret {
		ret[k] = r2.Add(c, v2.Polar(start+float64(k)*step, radius))
	}
	return ret
}

//circumradius returns the radius of a regular polygon with n sides of length side.
func circumradius(side float64, n int) float64 {
	return side / (2 * math.Sin(math.Pi/float64(n)))
}

//apothem returns the distance from the centre to the middle of a side of a regular
//polygon with n sides of length side.
func apothem(side float64, n int) float64 {
	return side / (2 * math.Tan(math.Pi/float64(n)))
}

//arcPoints returns the m points that join p and q through m+1 segments of length
//l, lying on a circular arc that bulges towards the side of the p->q line given by
//side (1 left, -1 right). If p and q are too far apart for that, the points are
//spread evenly on the segment between them.
func arcPoints(p, q r2.Vec, m int, l float64, side int) []r2.Vec {
	ret := make([]r2.Vec, m)
	if m == 0 {
		return ret
	}
	segs := float64(m + 1)
	d := v2.Dist(p, q)
	if d >= segs*l-v2.Epsilon || d < v2.Epsilon {
		for k := range ret {
			ret[k] = r2.Add(p, r2.Scale(float64(k+1)/segs, r2.Sub(q, p)))
		}
		return ret
	}
	//ratio(phi) is the chord/segment ratio for an arc spanning phi. It decreases
	//from segs to 0 on (0, 2pi).
	ratio := func(phi float64) float64 {
		return math.Sin(phi/2) / math.Sin(phi/(2*segs))
	}
	target := d / l
	lo, hi := 0.0, v2.TwoPi
	for it := 0; it < 100; it++ {
		mid := (lo + hi) / 2
		if ratio(mid) > target {
			lo = mid
		} else {
			hi = mid
		}
	}
	phi := (lo + hi) / 2
	radius := l / (2 * math.Sin(phi/(2*segs)))
	normal := v2.Perp(v2.Unit(r2.Sub(q, p)))
	if side < 0 {
		normal = r2.Scale(-1, normal)
	}
	c := r2.Sub(v2.Mid(p, q), r2.Scale(radius*math.Cos(phi/2), normal))
	start := v2.Angle(r2.Sub(p, c))
	//the middle of the arc is the point of the circle furthest along normal.
	top := r2.Add(c, r2.Scale(radius, normal))
	sign := 1.0
	if v2.Dist(r2.Add(c, v2.Polar(start-phi/2, radius)), top) < v2.Dist(r2.Add(c, v2.Polar(start+phi/2, radius)), top) {
		sign = -1
	}
	step := sign * phi / segs
	for k := range ret {
		ret[k] = r2.Add(c, v2.Polar(start+float64(k+1)*step, radius))
	}
	return ret
}

//freeGaps returns the angular gaps around centre left by the given points, as
//(start angle, width) pairs sorted by start angle. With no points it returns a
//single full turn starting at 0.
func freeGaps(centre r2.Vec, pts []r2.Vec) [][2]float64 {
	if len(pts) == 0 {
		return [][2]float64{{0, v2.TwoPi}}
	}
	angles := make([]float64, len(pts))
	for i, p := range pts {
		angles[i] = v2.NormAngle(v2.Angle(r2.Sub(p, centre)))
	}
	sort.Float64s(angles)
	ret := make([][2]float64, len(angles))
	for i, a := range angles {
		next := angles[(i+1)%len(angles)]
		w := next - a
		if i == len(angles)-1 {
			w = next + v2.TwoPi - a
		}
		ret[i] = [2]float64{a, w}
	}
	return ret
}

//largestGap returns the widest gap around centre (the first one on ties).
func largestGap(centre r2.Vec, pts []r2.Vec) (start, width float64) {
	gaps := freeGaps(centre, pts)
	best := 0
	for i, g := range gaps {
		if g[1] > gaps[best][1]+v2.Epsilon {
			best = i
		}
	}
	return gaps[best][0], gaps[best][1]
}

//atomPoints returns the points of the atoms that have one.
func atomPoints(atoms []*chem.Atom) v2.Points {
	ret := make(v2.Points, 0, len(atoms))
	for _, a := range atoms {
		if a.Point != nil {
			ret = append(ret, *a.Point)
		}
	}
	return ret
}

//bounds returns the bounding box of the atoms that have coordinates.
func bounds(atoms []*chem.Atom) r2.Box {
	return atomPoints(atoms).Bounds()
}

func translateAtoms(atoms []*chem.Atom, t r2.Vec) {
	for _, a := range atoms {
		if a.Point != nil {
			a.SetPos(r2.Add(*a.Point, t))
		}
	}
}

func rotateAtoms(atoms []*chem.Atom, alpha float64, centre r2.Vec) {
	rot := r2.NewRotation(alpha, centre)
	for _, a := range atoms {
		if a.Point != nil {
			a.SetPos(rot.Rotate(*a.Point))
		}
	}
}

func reflectAtoms(atoms []*chem.Atom, p, q r2.Vec) {
	for _, a := range atoms {
		if a.Point != nil {
			a.SetPos(v2.Reflect(*a.Point, p, q))
		}
	}
}

//sideOf returns the atoms of mol reachable from start without going through b,
//start included, in breadth-first order.
func sideOf(mol *chem.Molecule, b *chem.Bond, start *chem.Atom) []*chem.Atom {
	seen := map[*chem.Atom]bool{start: true}
	queue := []*chem.Atom{start}
	for i := 0; i < len(queue); i++ {
		for _, bb := range mol.BondsOf(queue[i]) {
			if bb == b {
				continue
			}
			o := bb.Cross(queue[i])
			if !seen[o] {
				seen[o] = true
				queue = append(queue, o)
			}
		}
	}
	return queue
}

//shortestPath returns the bonds on a shortest path from a1 to a2 in mol, in order,
//or nil if there is none.
func shortestPath(mol *chem.Molecule, a1, a2 *chem.Atom) []*chem.Bond {
	prev := map[*chem.Atom]*chem.Bond{a1: nil}
	queue := []*chem.Atom{a1}
	for i := 0; i < len(queue) && queue[i] != a2; i++ {
		for _, b := range mol.BondsOf(queue[i]) {
			o := b.Cross(queue[i])
			if _, ok := prev[o]; !ok {
				prev[o] = b
				queue = append(queue, o)
			}
		}
	}
	if _, ok := prev[a2]; !ok || a1 == a2 {
		return nil
	}
	var ret []*chem.Bond
	for at := a2; at != a1; {
		b := prev[at]
		ret = append(ret, b)
		at = b.Cross(at)
	}
	for i, j := 0, len(ret)-1; i < j; i, j = i+1, j-1 {
		ret[i], ret[j] = ret[j], ret[i]
	}
	return ret
}
