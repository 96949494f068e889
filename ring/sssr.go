/*
 * sssr.go, part of gosdg.
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

package ring

import (
	"errors"
	"fmt"
	"math/bits"
	"sort"

	chem "github.com/rmera/gosdg"
	"github.com/rmera/gosdg/chemgraph"
)

//ErrNoCycleBasis is returned when a graph has a non-zero cycle rank but no
//cycle basis could be assembled. It should not happen on valid input.
var ErrNoCycleBasis = errors.New("ring: no cycle basis for a cyclic graph")

//SSSR is the default Detector. It returns a smallest set of smallest rings,
//built from Horton's candidate cycles and selected by independence over GF(2).
//The result is deterministic for a given atom and bond order.
type SSSR struct{}

//edge set of a cycle, one bit per bond of the graph.
type bitset []uint64

func newBitset(n int) bitset {
	return make(bitset, (n+63)/64)
}

func (b bitset) set(i int) { b[i/64] |= 1 << uint(i%64) }

func (b bitset) xor(o bitset) {
	for i := range b {
		b[i] ^= o[i]
	}
}

func (b bitset) lowest() int {
	for i, w := range b {
		if w != 0 {
			return i*64 + bits.TrailingZeros64(w)
		}
	}
	return -1
}

func (b bitset) key() string {
	return fmt.Sprint([]uint64(b))
}

type candidate struct {
	atoms []int //local atom indexes, in cycle order
	edges bitset
	order []int //sorted copy of atoms, for the lexical tie-break
}

//FindRings returns the rings of mol and sets the InRing flags of its atoms and
//bonds. Rings are sorted by size, ties broken by their lowest atom indexes.
func (S SSSR) FindRings(mol *chem.Molecule) (*Set, error) {
	for _, a := range mol.Atoms {
		a.InRing = false
	}
	for _, b := range mol.Bonds {
		b.InRing = false
	}
	rank := len(mol.Bonds) - mol.Len() + chemgraph.ComponentCount(mol)
	if rank <= 0 {
		return &Set{}, nil
	}
	g := newLocalGraph(mol)
	cands := g.hortonCandidates()
	sort.SliceStable(cands, func(i, j int) bool {
		ci, cj := cands[i], cands[j]
		if len(ci.atoms) != len(cj.atoms) {
			return len(ci.atoms) < len(cj.atoms)
		}
		for k := range ci.order {
			if ci.order[k] != cj.order[k] {
				return ci.order[k] < cj.order[k]
			}
		}
		return false
	})
	basis := make(map[int]bitset)
	rings := make([]*Ring, 0, rank)
	for _, c := range cands {
		if len(rings) == rank {
			break
		}
		v := make(bitset, len(c.edges))
		copy(v, c.edges)
		for {
			p := v.lowest()
			if p < 0 {
				break
			}
			row, ok := basis[p]
			if !ok {
				basis[p] = v
				rings = append(rings, g.ring(c.atoms))
				break
			}
			v.xor(row)
		}
	}
	if len(rings) < rank {
		return nil, chem.NewCError(fmt.Sprintf("found %d independent rings out of %d in %q", len(rings), rank, mol.Name), ErrNoCycleBasis, "FindRings").SetCritical()
	}
	for _, r := range rings {
		for _, a := range r.Atoms {
			a.InRing = true
		}
		for _, b := range r.Bonds {
			b.InRing = true
		}
	}
	return &Set{Rings: rings}, nil
}

//PartitionIntoRingSystems groups rings sharing at least one atom into maximal
//ring systems. Systems are ordered by their lowest atom Index, and each keeps
//the relative order its rings had in the input set.
func (S SSSR) PartitionIntoRingSystems(rings *Set) []*Set {
	n := rings.Len()
	if n == 0 {
		return nil
	}
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if len(Shared(rings.Rings[i], rings.Rings[j])) > 0 {
				ri, rj := find(i), find(j)
				if ri != rj {
					parent[rj] = ri
				}
			}
		}
	}
	groups := make(map[int]*Set)
	var ret []*Set
	for i, r := range rings.Rings {
		root := find(i)
		s, ok := groups[root]
		if !ok {
			s = &Set{}
			groups[root] = s
			ret = append(ret, s)
		}
		s.Rings = append(s.Rings, r)
	}
	sort.SliceStable(ret, func(i, j int) bool { return ret[i].MinIndex() < ret[j].MinIndex() })
	return ret
}

//localGraph is an adjacency list of a molecule in terms of atom and bond
//positions, which keeps the search independent of the Index fields.
type localGraph struct {
	mol   *chem.Molecule
	adj   [][]link
	ends  [][2]int
	nbond int
}

type link struct {
	to, bond int
}

func newLocalGraph(mol *chem.Molecule) *localGraph {
	pos := make(map[*chem.Atom]int, mol.Len())
	for i, a := range mol.Atoms {
		pos[a] = i
	}
	g := &localGraph{mol: mol, adj: make([][]link, mol.Len()), nbond: len(mol.Bonds)}
	for i, b := range mol.Bonds {
		f, t := pos[b.At1], pos[b.At2]
		g.adj[f] = append(g.adj[f], link{to: t, bond: i})
		g.adj[t] = append(g.adj[t], link{to: f, bond: i})
		g.ends = append(g.ends, [2]int{f, t})
	}
	return g
}

//bfs returns, for the root r, the parent atom and parent bond of each reachable atom
//(-1 for the root and for unreachable atoms).
func (g *localGraph) bfs(r int) (parent, pbond []int) {
	n := len(g.adj)
	parent = make([]int, n)
	pbond = make([]int, n)
	seen := make([]bool, n)
	for i := range parent {
		parent[i] = -1
		pbond[i] = -1
	}
	seen[r] = true
	queue := []int{r}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, l := range g.adj[cur] {
			if seen[l.to] {
				continue
			}
			seen[l.to] = true
			parent[l.to] = cur
			pbond[l.to] = l.bond
			queue = append(queue, l.to)
		}
	}
	return parent, pbond
}

//hortonCandidates returns, without duplicates, the cycles formed by each bond
//(x,y) and the shortest paths from every root to x and y, when both paths meet
//only at the root.
func (g *localGraph) hortonCandidates() []*candidate {
	var ret []*candidate
	seen := make(map[string]bool)
	for r := range g.adj {
		parent, pbond := g.bfs(r)
		for i, e := range g.ends {
			x, y := e[0], e[1]
			if (parent[x] < 0 && x != r) || (parent[y] < 0 && y != r) {
				continue
			}
			px := pathToRoot(x, parent)
			py := pathToRoot(y, parent)
			if !disjointButRoot(px, py) {
				continue
			}
			edges := newBitset(g.nbond)
			edges.set(i)
			for k := 0; k < len(px)-1; k++ {
				edges.set(pbond[px[k]])
			}
			for k := 0; k < len(py)-1; k++ {
				edges.set(pbond[py[k]])
			}
			key := edges.key()
			if seen[key] {
				continue
			}
			seen[key] = true
			//px goes x..r, py goes y..r. The cycle is r..x followed by y..(before r).
			atoms := make([]int, 0, len(px)+len(py)-1)
			for k := len(px) - 1; k >= 0; k-- {
				atoms = append(atoms, px[k])
			}
			atoms = append(atoms, py[:len(py)-1]...)
			if len(atoms) < 3 {
				continue
			}
			order := make([]int, len(atoms))
			for k, a := range atoms {
				order[k] = g.mol.Atoms[a].Index
			}
			sort.Ints(order)
			ret = append(ret, &candidate{atoms: atoms, edges: edges, order: order})
		}
	}
	return ret
}

func pathToRoot(a int, parent []int) []int {
	p := []int{a}
	for parent[a] >= 0 {
		a = parent[a]
		p = append(p, a)
	}
	return p
}

func disjointButRoot(p1, p2 []int) bool {
	in := make(map[int]bool, len(p1))
	for _, a := range p1[:len(p1)-1] {
		in[a] = true
	}
	for _, a := range p2[:len(p2)-1] {
		if in[a] {
			return false
		}
	}
	return p1[len(p1)-1] == p2[len(p2)-1]
}

//ring builds a Ring from a cycle of local indexes, starting at the atom with the
//lowest Index and going towards its lowest-Index ring neighbour.
func (g *localGraph) ring(cycle []int) *Ring {
	n := len(cycle)
	atoms := make([]*chem.Atom, n)
	start := 0
	for i, c := range cycle {
		atoms[i] = g.mol.Atoms[c]
		if atoms[i].Index < atoms[start].Index {
			start = i
		}
	}
	next := atoms[(start+1)%n]
	prev := atoms[(start+n-1)%n]
	ordered := make([]*chem.Atom, n)
	for i := 0; i < n; i++ {
		if prev.Index < next.Index {
			ordered[i] = atoms[(start-i+n)%n]
		} else {
			ordered[i] = atoms[(start+i)%n]
		}
	}
	bonds := make([]*chem.Bond, n)
	for i := 0; i < n; i++ {
		bonds[i] = g.mol.BondBetween(ordered[i], ordered[(i+1)%n])
	}
	return &Ring{Atoms: ordered, Bonds: bonds}
}
