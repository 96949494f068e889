/*
 * depict.go, part of gosdg.
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

package chemplot

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	chem "github.com/rmera/gosdg"
	v2 "github.com/rmera/gosdg/v2"
)

//Scale is the size of one coordinate unit in the saved depictions.
var Scale = vg.Centimeter

//LineWidth is the width of a single bond line.
var LineWidth = vg.Points(1.2)

var elementColors = map[string]color.RGBA{
	"N":  {R: 48, G: 80, B: 248, A: 255},
	"O":  {R: 255, G: 13, B: 13, A: 255},
	"S":  {R: 200, G: 160, B: 0, A: 255},
	"P":  {R: 255, G: 128, B: 0, A: 255},
	"F":  {R: 80, G: 180, B: 60, A: 255},
	"Cl": {R: 31, G: 160, B: 31, A: 255},
	"Br": {R: 166, G: 41, B: 41, A: 255},
	"I":  {R: 148, G: 0, B: 148, A: 255},
}

var black = color.RGBA{A: 255}

func basicDepiction(title string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.HideAxes()
	return p
}

//Depict draws the 2D layout of mol and saves it to filename. The format is
//taken from the extension of the name (png, svg, pdf, eps, jpg or tif).
func Depict(mol *chem.Molecule, title, filename string) error {
	p, err := Plot(title, mol)
	if err != nil {
		return err
	}
	w, h := size(p)
	return p.Save(w, h, filename)
}

//DepictReaction draws a reaction, laid out as done by the sdg package, with an
//arrow between reactants and products, and saves it to filename.
func DepictReaction(rxn *chem.Reaction, title, filename string) error {
	p, err := Plot(title, rxn.Molecules()...)
	if err != nil {
		return err
	}
	if len(rxn.Reactants) > 0 && len(rxn.Products) > 0 {
		bl := meanBond(rxn.Molecules()...)
		left := molBounds(rxn.Reactants).Max.X + bl/2
		right := molBounds(rxn.Products).Min.X - bl/2
		if err := addArrow(p, r2.Vec{X: left}, r2.Vec{X: right}, bl/3); err != nil {
			return err
		}
	}
	w, h := size(p)
	return p.Save(w, h, filename)
}

//Plot returns a plot with the given molecules drawn in it, with equal scales in
//both axes. Every atom must have 2D coordinates.
func Plot(title string, mols ...*chem.Molecule) (*plot.Plot, error) {
	for _, m := range mols {
		if !m.Has2D() {
			return nil, fmt.Errorf("Plot: molecule %q has atoms without 2D coordinates", m.Name)
		}
	}
	p := basicDepiction(title)
	bl := meanBond(mols...)
	for _, m := range mols {
		labels := make(map[*chem.Atom]string, len(m.Atoms))
		for _, a := range m.Atoms {
			if l := atomLabel(m, a); l != "" {
				labels[a] = l
			}
		}
		for _, b := range m.Bonds {
			if err := addBond(p, b, labels, bl); err != nil {
				return nil, err
			}
		}
		if err := addLabels(p, m, labels, bl); err != nil {
			return nil, err
		}
		for i, g := range m.Sgroups {
			if err := addBrackets(p, g, groupColor(i, len(m.Sgroups)), bl); err != nil {
				return nil, err
			}
		}
	}
	box := v2.Pad(molBounds(mols), bl)
	p.X.Min, p.X.Max = box.Min.X, box.Max.X
	p.Y.Min, p.Y.Max = box.Min.Y, box.Max.Y
	return p, nil
}

//size returns a canvas size giving the same scale in both axes.
func size(p *plot.Plot) (vg.Length, vg.Length) {
	w := vg.Length(p.X.Max-p.X.Min) * Scale
	h := vg.Length(p.Y.Max-p.Y.Min) * Scale
	if p.Title.Text != "" {
		h += vg.Centimeter
	}
	return w, h
}

func molBounds(mols []*chem.Molecule) r2.Box {
	pts := make(v2.Points, 0, 32)
	for _, m := range mols {
		for _, a := range m.Atoms {
			if a.Point != nil {
				pts = append(pts, *a.Point)
			}
		}
		for _, g := range m.Sgroups {
			for _, br := range g.Brackets {
				pts = append(pts, br.P1, br.P2)
			}
		}
	}
	return pts.Bounds()
}

//meanBond returns the mean bond length of the molecules, or 1.5 if
//there are no bonds.
func meanBond(mols ...*chem.Molecule) float64 {
	s, n := 0.0, 0
	for _, m := range mols {
		for _, b := range m.Bonds {
			if b.At1.Point != nil && b.At2.Point != nil {
				s += v2.Dist(*b.At1.Point, *b.At2.Point)
				n++
			}
		}
	}
	if n == 0 || s == 0 {
		return 1.5
	}
	return s / float64(n)
}

//atomLabel returns the text shown for at, or "" for plain carbons.
func atomLabel(mol *chem.Molecule, at *chem.Atom) string {
	if at.Symbol == "C" && at.Charge == 0 && mol.Degree(at) > 0 {
		return ""
	}
	var sb strings.Builder
	if at.AttachPt > 0 {
		fmt.Fprintf(&sb, "R%d", at.AttachPt)
	} else {
		sb.WriteString(at.Symbol)
	}
	switch {
	case at.ImplicitH == 1:
		sb.WriteString("H")
	case at.ImplicitH > 1:
		fmt.Fprintf(&sb, "H%d", at.ImplicitH)
	}
	switch {
	case at.Charge == 1:
		sb.WriteString("+")
	case at.Charge == -1:
		sb.WriteString("-")
	case at.Charge > 1:
		fmt.Fprintf(&sb, "%d+", at.Charge)
	case at.Charge < -1:
		fmt.Fprintf(&sb, "%d-", -at.Charge)
	}
	return sb.String()
}

func segment(p *plot.Plot, a, b r2.Vec, style draw.LineStyle) error {
	l, err := plotter.NewLine(plotter.XYs{{X: a.X, Y: a.Y}, {X: b.X, Y: b.Y}})
	if err != nil {
		return err
	}
	l.LineStyle = style
	p.Add(l)
	return nil
}

func solid(c color.Color) draw.LineStyle {
	return draw.LineStyle{Color: c, Width: LineWidth}
}

//addBond draws b. Ends on labelled atoms are trimmed so the line does not
//run over the label.
func addBond(p *plot.Plot, b *chem.Bond, labels map[*chem.Atom]string, bl float64) error {
	a1, a2 := b.At1.Pos(), b.At2.Pos()
	d := r2.Sub(a2, a1)
	if v2.IsNull(d) {
		return nil
	}
	u := r2.Unit(d)
	trim := 0.3 * bl
	if labels[b.At1] != "" && r2.Norm(d) > 2*trim {
		a1 = r2.Add(a1, r2.Scale(trim, u))
	}
	if labels[b.At2] != "" && r2.Norm(d) > 2*trim {
		a2 = r2.Sub(a2, r2.Scale(trim, u))
	}
	n := v2.Perp(u)
	off := func(k float64) (r2.Vec, r2.Vec) {
		o := r2.Scale(k*bl, n)
		return r2.Add(a1, o), r2.Add(a2, o)
	}
	st := solid(black)
	switch b.Stereo {
	case chem.Up:
		st.Width *= 3
	case chem.Down:
		st.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	case chem.Either:
		st.Dashes = []vg.Length{vg.Points(0.5), vg.Points(1.5)}
	}
	var offsets []float64
	switch b.Order {
	case chem.Double:
		offsets = []float64{-0.08, 0.08}
	case chem.Triple:
		offsets = []float64{-0.15, 0, 0.15}
	default:
		offsets = []float64{0}
	}
	for _, k := range offsets {
		x, y := off(k)
		if err := segment(p, x, y, st); err != nil {
			return err
		}
	}
	if b.Order == chem.Aromatic {
		x, y := off(0.15)
		dashed := solid(black)
		dashed.Dashes = []vg.Length{vg.Points(3), vg.Points(2)}
		return segment(p, x, y, dashed)
	}
	return nil
}

func addLabels(p *plot.Plot, mol *chem.Molecule, labels map[*chem.Atom]string, bl float64) error {
	if len(labels) == 0 {
		return nil
	}
	data := plotter.XYLabels{}
	atoms := make([]*chem.Atom, 0, len(labels))
	for _, a := range mol.Atoms {
		if l, ok := labels[a]; ok {
			data.XYs = append(data.XYs, plotter.XY{X: a.Pos().X, Y: a.Pos().Y})
			data.Labels = append(data.Labels, l)
			atoms = append(atoms, a)
		}
	}
	l, err := plotter.NewLabels(data)
	if err != nil {
		return err
	}
	for i, a := range atoms {
		c, ok := elementColors[a.Symbol]
		if !ok {
			c = black
		}
		l.TextStyle[i].Color = c
		l.TextStyle[i].XAlign = text.XCenter
		l.TextStyle[i].YAlign = text.YCenter
		l.TextStyle[i].Font.Size = vg.Length(0.45*bl) * Scale
	}
	p.Add(l)
	return nil
}

//addBrackets draws the brackets of g as lines with short ticks pointing to the
//inside of the group, and its subscript next to the last bracket.
func addBrackets(p *plot.Plot, g *chem.Sgroup, c color.Color, bl float64) error {
	st := solid(c)
	tick := 0.15 * bl
	for _, br := range g.Brackets {
		d := r2.Sub(br.P2, br.P1)
		if v2.IsNull(d) {
			continue
		}
		in := r2.Scale(tick, v2.Perp(r2.Unit(d)))
		pts := plotter.XYs{}
		for _, v := range []r2.Vec{r2.Add(br.P1, in), br.P1, br.P2, r2.Add(br.P2, in)} {
			pts = append(pts, plotter.XY{X: v.X, Y: v.Y})
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		l.LineStyle = st
		p.Add(l)
	}
	sub := g.Subscript
	if sub == "" && g.Multiplier > 1 {
		sub = fmt.Sprint(g.Multiplier)
	}
	if sub == "" || len(g.Brackets) == 0 {
		return nil
	}
	last := g.Brackets[len(g.Brackets)-1]
	at := r2.Add(last.P1, r2.Scale(-tick, v2.Perp(r2.Unit(r2.Sub(last.P2, last.P1)))))
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: plotter.XYs{{X: at.X, Y: at.Y}}, Labels: []string{sub}})
	if err != nil {
		return err
	}
	l.TextStyle[0].Color = c
	l.TextStyle[0].Font.Size = vg.Length(0.35*bl) * Scale
	p.Add(l)
	return nil
}

//addArrow draws a reaction arrow from a to b with a head of the given size.
func addArrow(p *plot.Plot, a, b r2.Vec, head float64) error {
	d := r2.Sub(b, a)
	if r2.Norm(d) <= head {
		return nil
	}
	st := solid(black)
	if err := segment(p, a, b, st); err != nil {
		return err
	}
	back := math.Pi + v2.Angle(d)
	for _, s := range []float64{-1, 1} {
		tip := r2.Add(b, v2.Polar(back+s*math.Pi/6, head))
		if err := segment(p, b, tip, st); err != nil {
			return err
		}
	}
	return nil
}
