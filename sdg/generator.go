/*
 * generator.go, part of gosdg.
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

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r2"

	chem "github.com/rmera/gosdg"
	"github.com/rmera/gosdg/chemgraph"
	"github.com/rmera/gosdg/match"
	"github.com/rmera/gosdg/ring"
	"github.com/rmera/gosdg/templates"
	v2 "github.com/rmera/gosdg/v2"
)

//Generator computes 2D coordinates for molecular graphs. A Generator keeps no
//state between calls other than its (read-only) template library, but it is not
//meant to lay out the same graph from several goroutines at once.
type Generator struct {
	opts     *Options
	detector ring.Detector
	oracle   match.Oracle
	lib      *templates.Library
}

//NewGenerator returns a generator with the given options (DefaultOptions if nil)
//and template library. A nil library disables template lookups. The library
//should already be loaded.
func NewGenerator(opts *Options, lib *templates.Library) *Generator {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Generator{opts: opts, detector: ring.SSSR{}, oracle: match.VF2{}, lib: lib}
}

//New returns a generator with the given options and a freshly loaded copy of the
//bundled template library.
func New(opts *Options) (*Generator, error) {
	lib := templates.NewLibrary(match.VF2{})
	if err := lib.LoadBundled(); err != nil {
		return nil, errDecorate(err, "New")
	}
	return NewGenerator(opts, lib), nil
}

//Options returns the options of the generator. Changes to them affect later layouts.
func (G *Generator) Options() *Options {
	return G.opts
}

//Returns the ring detector, and sets it to a new value, if a non-nil one is given.
func (G *Generator) Detector(d ...ring.Detector) ring.Detector {
	if len(d) > 0 && d[0] != nil {
		G.detector = d[0]
	}
	return G.detector
}

//Returns the substructure oracle, and sets it to a new value, if a non-nil one is given.
func (G *Generator) Oracle(o ...match.Oracle) match.Oracle {
	if len(o) > 0 && o[0] != nil {
		G.oracle = o[0]
	}
	return G.oracle
}

//Library returns the template library of the generator, which can be nil.
func (G *Generator) Library() *templates.Library {
	return G.lib
}

func (G *Generator) logger() *log.Logger {
	if l := G.opts.Logger(); l != nil {
		return l
	}
	return log.Default()
}

//GenerateCoordinates sets the 2D point of every atom in mol. Atoms fixed through the
//options keep their coordinates; fixed atoms that have no coordinates are silently
//treated as free. An empty graph is a no-op. Invalid heuristics are reported as an
//error before any change to mol. On a fatal error (which wraps ErrLayout) the
//coordinates of mol are undefined.
func (G *Generator) GenerateCoordinates(mol *chem.Molecule) error {
	if mol == nil || mol.Len() == 0 {
		return nil
	}
	if err := G.generate(mol, G.opts.Fixed()); err != nil {
		return errDecorate(err, "GenerateCoordinates")
	}
	G.finalizeSgroups(mol)
	return nil
}

//fixedState is the fixed-constraint set of one layout, restricted to the graph.
type fixedState struct {
	atoms map[*chem.Atom]bool
	bonds map[*chem.Bond]bool
}

func (F *fixedState) empty() bool {
	return len(F.atoms) == 0
}

//any returns true if any of the atoms is fixed.
func (F *fixedState) any(atoms []*chem.Atom) bool {
	for _, a := range atoms {
		if F.atoms[a] {
			return true
		}
	}
	return false
}

//restrict returns the part of the set that belongs to mol.
func (F *fixedState) restrict(mol *chem.Molecule) *fixedState {
	r := &fixedState{atoms: make(map[*chem.Atom]bool), bonds: make(map[*chem.Bond]bool)}
	for a := range F.atoms {
		if mol.Contains(a) {
			r.atoms[a] = true
		}
	}
	for b := range F.bonds {
		if mol.ContainsBond(b) {
			r.bonds[b] = true
		}
	}
	return r
}

//newFixedState keeps the fixed atoms of mol that carry coordinates, and the fixed
//bonds of mol whose atoms both carry coordinates. The atoms of fixed bonds are
//fixed too.
func (G *Generator) newFixedState(mol *chem.Molecule, set *FixedSet) *fixedState {
	F := &fixedState{atoms: make(map[*chem.Atom]bool), bonds: make(map[*chem.Bond]bool)}
	if set == nil {
		return F
	}
	demoted := 0
	for _, a := range mol.Atoms {
		if !set.Atoms[a] {
			continue
		}
		if a.Point == nil {
			demoted++
			continue
		}
		F.atoms[a] = true
	}
	for _, b := range mol.Bonds {
		if !set.Bonds[b] {
			continue
		}
		if b.At1.Point == nil || b.At2.Point == nil {
			demoted++
			continue
		}
		F.bonds[b] = true
		F.atoms[b.At1] = true
		F.atoms[b.At2] = true
	}
	if demoted > 0 {
		G.logger().Debug("fixed elements without coordinates treated as free", "molecule", mol.Name, "count", demoted)
	}
	return F
}

//generate lays out every atom of mol, keeping the atoms in set.
//It fails before touching mol if the heuristics are out of range.
func (G *Generator) generate(mol *chem.Molecule, set *FixedSet) error {
	if err := G.opts.Heuristics().Check(); err != nil {
		return errDecorate(err, "generate")
	}
	mol.FillIndexes()
	fixed := G.newFixedState(mol, set)
	for _, a := range mol.Atoms {
		if !fixed.atoms[a] {
			a.ClearPos()
		}
		a.Placed = fixed.atoms[a]
		a.Visited = false
	}
	comps := chemgraph.PartitionIntoComponents(mol)
	if len(comps) > 1 {
		return errDecorate(G.layoutFragments(mol, fixed), "generate")
	}
	return errDecorate(G.layoutComponent(mol, fixed), "generate")
}

//origin records how the first ring system of a component was laid out.
type origin int

const (
	fromNothing origin = iota
	fromPolygon
	fromTemplate
	fromMacrocycle
)

func (o origin) String() string {
	return [...]string{"none", "polygon", "template", "macrocycle"}[o]
}

//layout holds the state of the layout of one connected component. Everything
//that is not an atom flag or an atom point lives here, and dies with the call.
type layout struct {
	g        *Generator
	log      *log.Logger
	h        Heuristics
	bl       float64
	firstVec r2.Vec
	mol      *chem.Molecule
	fixed    *fixedState
	rings    *ring.Set
	systems  []*ring.Set
	sysOf    map[*chem.Atom]*ring.Set
	origin   origin
	local    *ring.Set //ring system being laid out in its own frame, if any
}

func (G *Generator) newLayout(mol *chem.Molecule, fixed *fixedState) *layout {
	return &layout{
		g:        G,
		log:      G.logger(),
		h:        G.opts.Heuristics(),
		bl:       G.opts.BondLength(),
		firstVec: G.opts.FirstBondVector(),
		mol:      mol,
		fixed:    fixed,
		sysOf:    make(map[*chem.Atom]*ring.Set),
	}
}

//layoutComponent lays out a connected graph.
func (G *Generator) layoutComponent(mol *chem.Molecule, fixed *fixedState) error {
	l := G.newLayout(mol, fixed.restrict(mol))
	return errDecorate(l.run(), "layoutComponent")
}

func (l *layout) run() error {
	n := l.mol.Len()
	if n == 0 {
		return nil
	}
	if err := l.findRings(); err != nil {
		return errDecorate(err, "run")
	}
	if l.fixed.empty() {
		switch {
		case n == 1:
			a := l.mol.Atom(0)
			a.SetPos(r2.Vec{})
			a.Placed = true
			return nil
		case n == 2 && len(l.mol.Bonds) == 1:
			l.mol.Atom(0).SetPos(r2.Vec{})
			l.mol.Atom(1).SetPos(r2.Vec{X: l.bl})
			l.mol.Atom(0).Placed = true
			l.mol.Atom(1).Placed = true
			return nil
		}
	}
	l.seed()
	if err := l.mainLoop(); err != nil {
		return errDecorate(err, "run")
	}
	l.correctStereo()
	l.refine()
	l.orient()
	return nil
}

//findRings runs the ring detector on the component and indexes its ring systems.
func (l *layout) findRings() error {
	rings, err := l.g.detector.FindRings(l.mol)
	if err != nil {
		//a detector error is an invariant violation, not a layout problem.
		return errDecorate(err, "findRings")
	}
	l.rings = rings
	l.systems = l.g.detector.PartitionIntoRingSystems(rings)
	for _, s := range l.systems {
		for _, a := range s.Atoms() {
			l.sysOf[a] = s
		}
	}
	for _, a := range l.mol.Atoms {
		if a.InRing && l.sysOf[a] == nil {
			return chem.NewCError(fmt.Sprintf("atom %d flagged in ring but not in any ring system", a.Index), ring.ErrNoCycleBasis, "findRings").SetCritical()
		}
		a.Aliphatic = !a.InRing
	}
	return nil
}

//seed places the first atoms of the component.
func (l *layout) seed() {
	if !l.fixed.empty() {
		l.completePartialRingSystems()
		return
	}
	if len(l.systems) > 0 {
		sys := l.rankSystems()[0]
		l.origin = l.layoutRingSystem(sys)
		l.log.Debug("first ring system placed", "molecule", l.mol.Name, "rings", sys.Len(), "origin", l.origin)
		l.placeRingSubstituents(sys)
		return
	}
	chain := l.longestChain()
	dir := v2.Polar(v2.Deg2Rad(30), 1)
	if l.g.opts.firstBondSet {
		dir = l.firstVec
	}
	chain[0].SetPos(r2.Vec{})
	chain[0].Placed = true
	l.placeLinearChain(chain, dir)
}

//rankSystems returns the ring systems sorted by ring count and heteroatom count,
//both descending, and then by lowest atom Index.
func (l *layout) rankSystems() []*ring.Set {
	ret := make([]*ring.Set, len(l.systems))
	copy(ret, l.systems)
	sort.SliceStable(ret, func(i, j int) bool {
		if ret[i].Len() != ret[j].Len() {
			return ret[i].Len() > ret[j].Len()
		}
		hi, hj := ret[i].HeteroCount(), ret[j].HeteroCount()
		if hi != hj {
			return hi > hj
		}
		return ret[i].MinIndex() < ret[j].MinIndex()
	})
	return ret
}

//mainLoop alternates the acyclic and cyclic passes until every atom is placed.
func (l *layout) mainLoop() error {
	n := l.mol.Len()
	for iter := 0; iter <= n && !l.allPlaced(); iter++ {
		acyclic := l.handleAliphatics()
		cyclic := l.layoutNextRingSystem()
		if !acyclic && !cyclic {
			break
		}
	}
	if !l.allPlaced() {
		left := 0
		for _, a := range l.mol.Atoms {
			if !a.Placed {
				left++
			}
		}
		return newLayoutError(fmt.Sprintf("%d of %d atoms of %q could not be placed (unsatisfiable fixed atoms?)", left, n, l.mol.Name), "mainLoop")
	}
	return nil
}

func (l *layout) allPlaced() bool {
	for _, a := range l.mol.Atoms {
		if !a.Placed {
			return false
		}
	}
	return true
}

//safely runs f, and logs and swallows a panic from it. It is used for the parts of
//the layout that can fail on malformed input without compromising the rest.
func safely(lg *log.Logger, what string, f func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			lg.Warn("skipped", "step", what, "error", r)
			ok = false
		}
	}()
	f()
	return true
}

//scaleFactor converts template coordinates to the current bond length.
func (l *layout) scaleFactor() float64 {
	return l.bl / templates.BondLength
}
