/*
 * vec.go, part of gosdg.
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

package v2

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	//TwoPi is a full turn.
	TwoPi = 2 * math.Pi
	//Epsilon is the length below which a vector is considered null.
	Epsilon = 1e-9
)

func Deg2Rad(f float64) float64 {
	return f * math.Pi / 180
}

func Rad2Deg(f float64) float64 {
	return f * 180 / math.Pi
}

//Angle returns the angle between p and the x axis, in (-pi, pi].
func Angle(p r2.Vec) float64 {
	return math.Atan2(p.Y, p.X)
}

//Polar returns the vector of length r at angle theta.
func Polar(theta, r float64) r2.Vec {
	return r2.Vec{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}

//Perp returns p rotated 90 degrees counterclockwise.
func Perp(p r2.Vec) r2.Vec {
	return r2.Vec{X: -p.Y, Y: p.X}
}

//Dist returns the distance between p and q.
func Dist(p, q r2.Vec) float64 {
	return r2.Norm(r2.Sub(p, q))
}

//IsNull returns true if p is (almost) the zero vector.
func IsNull(p r2.Vec) bool {
	return r2.Norm(p) < Epsilon
}

//Unit returns p normalized, or the x axis unit vector if p is null.
func Unit(p r2.Vec) r2.Vec {
	if IsNull(p) {
		return r2.Vec{X: 1}
	}
	return r2.Unit(p)
}

//Between returns the unsigned angle between p and q, in [0, pi].
func Between(p, q r2.Vec) float64 {
	if IsNull(p) || IsNull(q) {
		return 0
	}
	c := r2.Cos(p, q)
	return math.Acos(math.Max(-1, math.Min(1, c)))
}

//NormAngle returns a in [0, 2pi).
func NormAngle(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	return a
}

//Mid returns the midpoint between p and q.
func Mid(p, q r2.Vec) r2.Vec {
	return r2.Scale(0.5, r2.Add(p, q))
}

//Reflect mirrors p across the line that goes through a and b.
func Reflect(p, a, b r2.Vec) r2.Vec {
	d := r2.Sub(b, a)
	if IsNull(d) {
		return p
	}
	d = r2.Unit(d)
	v := r2.Sub(p, a)
	proj := r2.Scale(r2.Dot(v, d), d)
	return r2.Add(a, r2.Sub(r2.Scale(2, proj), v))
}

//Side returns 1 if p lies to the left of the a->b line, -1 if it lies to the right
//and 0 if it is (almost) on it.
func Side(p, a, b r2.Vec) int {
	c := r2.Cross(r2.Sub(b, a), r2.Sub(p, a))
	switch {
	case c > Epsilon:
		return 1
	case c < -Epsilon:
		return -1
	}
	return 0
}

//Points is a set of 2D coordinates.
type Points []r2.Vec

//Centroid returns the geometric center of the points.
func (P Points) Centroid() r2.Vec {
	if len(P) == 0 {
		return r2.Vec{}
	}
	xs, ys := P.split()
	n := float64(len(P))
	return r2.Vec{X: floats.Sum(xs) / n, Y: floats.Sum(ys) / n}
}

//Bounds returns the bounding box of the points. The box of an empty set is
//the zero box.
func (P Points) Bounds() r2.Box {
	if len(P) == 0 {
		return r2.Box{}
	}
	xs, ys := P.split()
	return r2.Box{
		Min: r2.Vec{X: floats.Min(xs), Y: floats.Min(ys)},
		Max: r2.Vec{X: floats.Max(xs), Y: floats.Max(ys)},
	}
}

//Translate moves all the points by t, in place.
func (P Points) Translate(t r2.Vec) {
	for i := range P {
		P[i] = r2.Add(P[i], t)
	}
}

//Rotate rotates all the points by alpha radians around center, in place.
func (P Points) Rotate(alpha float64, center r2.Vec) {
	rot := r2.NewRotation(alpha, center)
	for i := range P {
		P[i] = rot.Rotate(P[i])
	}
}

//Reflect mirrors all the points across the line through a and b, in place.
func (P Points) Reflect(a, b r2.Vec) {
	for i := range P {
		P[i] = Reflect(P[i], a, b)
	}
}

func (P Points) split() ([]float64, []float64) {
	xs := make([]float64, len(P))
	ys := make([]float64, len(P))
	for i, v := range P {
		xs[i] = v.X
		ys[i] = v.Y
	}
	return xs, ys
}

//Pad returns the box b grown by pad in every direction.
func Pad(b r2.Box, pad float64) r2.Box {
	return r2.Box{
		Min: r2.Vec{X: b.Min.X - pad, Y: b.Min.Y - pad},
		Max: r2.Vec{X: b.Max.X + pad, Y: b.Max.Y + pad},
	}
}

//Overlap returns true if the boxes a and b share some area.
func Overlap(a, b r2.Box) bool {
	return a.Min.X < b.Max.X && b.Min.X < a.Max.X && a.Min.Y < b.Max.Y && b.Min.Y < a.Max.Y
}
