/*
 * orient.go, part of gosdg.
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

//orient rotates the finished component to its preferred orientation. Components
//with fixed atoms are never rotated, and neither are those whose shape comes from
//a template or a macrocycle, unless they have too many polycyclic systems.
func (l *layout) orient() {
	if !l.fixed.empty() {
		return
	}
	if l.origin == fromTemplate || l.origin == fromMacrocycle {
		poly := 0
		for _, s := range l.systems {
			if s.Len() >= 2 {
				poly++
			}
		}
		if poly <= l.h.MaxPresetPolycycles {
			return
		}
	}
	if l.orientAttachment() {
		return
	}
	l.orientWidest()
}

//orientAttachment handles fragments with a single attachment point: the bond to
//it is turned to point along +x, the fragment mirrored so most atoms lie above it
//and the whole turned 30 degrees clockwise. It returns false if the component
//doesn't have exactly one terminal attachment point.
func (l *layout) orientAttachment() bool {
	var ap *chem.Atom
	for _, a := range l.mol.Atoms {
		if a.AttachPt > 0 && l.mol.Degree(a) == 1 {
			if ap != nil {
				return false
			}
			ap = a
		}
	}
	if ap == nil {
		return false
	}
	c := ap.Pos()
	nb := l.mol.Neighbors(ap)[0]
	rotateAtoms(l.mol.Atoms, -v2.Angle(r2.Sub(nb.Pos(), c)), c)
	above, below := 0, 0
	for _, a := range l.mol.Atoms {
		switch y := a.Pos().Y - c.Y; {
		case y > v2.Epsilon:
			above++
		case y < -v2.Epsilon:
			below++
		}
	}
	if below > above {
		reflectAtoms(l.mol.Atoms, c, r2.Add(c, r2.Vec{X: 1}))
	}
	rotateAtoms(l.mol.Atoms, -v2.Deg2Rad(30), c)
	return true
}

//width returns the horizontal extent of pts.
func width(pts v2.Points) float64 {
	b := pts.Bounds()
	return b.Max.X - b.Min.X
}

//alignedBonds counts the bonds drawn at 30 degrees from the horizontal, either way.
func (l *layout) alignedBonds(pos map[*chem.Atom]r2.Vec) int {
	n := 0
	for _, b := range l.mol.Bonds {
		d := r2.Sub(pos[b.At2], pos[b.At1])
		if d.X < 0 {
			d = r2.Scale(-1, d)
		}
		ang := v2.Rad2Deg(v2.Angle(d))
		if math.Abs(math.Abs(ang)-30) < l.h.AlignTolerance {
			n++
		}
	}
	return n
}

//orientWidest tries rotations of the component in steps of RotationStep, and
//keeps the one that makes it widest. Rotations that keep the width within
//WidthDelta bond lengths win if they align more bonds at 30 degrees.
func (l *layout) orientWidest() {
	orig := atomPoints(l.mol.Atoms)
	if len(orig) < 2 {
		return
	}
	bb := orig.Bounds()
	centre := v2.Mid(bb.Min, bb.Max)
	trial := func(alpha float64) (float64, int) {
		rot := r2.NewRotation(alpha, centre)
		pts := make(v2.Points, len(orig))
		pos := make(map[*chem.Atom]r2.Vec, len(orig))
		for i, a := range l.mol.Atoms {
			pts[i] = rot.Rotate(orig[i])
			pos[a] = pts[i]
		}
		return width(pts), l.alignedBonds(pos)
	}
	best := 0.0
	bestW, bestA := trial(0)
	delta := l.h.WidthDelta * l.bl
	step := l.h.RotationStep
	if step <= 0 {
		return
	}
	for i := 1; float64(i)*step < 180; i++ {
		alpha := v2.Deg2Rad(float64(i) * step)
		w, a := trial(alpha)
		dw := w - bestW
		better := dw >= delta
		if !better && math.Abs(dw) < delta {
			better = a-bestA >= l.h.AlignDelta || (a > bestA && w > bestW)
		}
		if better {
			best, bestW, bestA = alpha, w, a
		}
	}
	if best != 0 {
		rotateAtoms(l.mol.Atoms, best, centre)
	}
}
