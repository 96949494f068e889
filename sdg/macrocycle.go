/*
 * macrocycle.go, part of gosdg.
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

	"github.com/rmera/gosdg/ring"
	v2 "github.com/rmera/gosdg/v2"
)

//stadium returns the shape of the macrocycle layout for a ring of n atoms: the
//number of atoms in each of the two zig-zag rows, the number of atoms in the left
//and right caps, and the separation between the rows in bond lengths.
func stadium(n int) (row, capL, capR int, sep float64) {
	switch {
	case n%4 == 2:
		return n / 2, 0, 0, 1
	case n%4 == 0:
		return n/2 - 1, 1, 1, math.Sqrt(3)
	}
	row = (n - 3) / 2
	if row%2 == 0 {
		row--
	}
	rest := n - 2*row
	capL = rest / 2
	capR = rest - capL
	sep = 2.2
	if capL == 1 {
		sep = 1.85
	}
	return row, capL, capR, sep
}

//layoutMacrocycle places the atoms of a large ring as two parallel zig-zag rows
//joined by short caps, which keeps the bond angles close to 120 degrees. It
//returns false, and leaves the atoms unplaced, if the ring is too small or the
//shape would distort some bond.
func (l *layout) layoutMacrocycle(r *ring.Ring) bool {
	n := r.Len()
	row, capL, capR, sep := stadium(n)
	if row < 1 || 2*row+capL+capR != n {
		return false
	}
	L := l.bl
	S := sep * L
	dx := L * math.Cos(v2.Deg2Rad(30))
	rowPoint := func(i int, top bool) r2.Vec {
		y := S / 2
		if i%2 == 1 {
			y += L / 2
		}
		if !top {
			y = -y
		}
		return r2.Vec{X: float64(i) * dx, Y: y}
	}
	pts := make([]r2.Vec, 0, n)
	for i := 0; i < row; i++ {
		pts = append(pts, rowPoint(i, true))
	}
	pts = append(pts, arcPoints(rowPoint(row-1, true), rowPoint(row-1, false), capR, L, 1)...)
	for i := row - 1; i >= 0; i-- {
		pts = append(pts, rowPoint(i, false))
	}
	pts = append(pts, arcPoints(rowPoint(0, false), rowPoint(0, true), capL, L, 1)...)
	for i := range pts {
		d := v2.Dist(pts[i], pts[(i+1)%n])
		if math.Abs(d-L) > 1e-3*L {
			l.log.Debug("macrocycle shape rejected", "size", n, "bond", d)
			return false
		}
	}
	for i, a := range r.Atoms {
		a.SetPos(pts[i])
	}
	return true
}
