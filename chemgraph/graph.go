/*
 * graph.go, part of gosdg.
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

//Package chemgraph exposes gosdg molecular graphs as gonum graphs, and
//implements the graph-level queries the layout needs on top of gonum's
//graph algorithms.
package chemgraph

import (
	"sort"

	chem "github.com/rmera/gosdg"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

//Topology is a gonum undirected graph built from a molecule. Node IDs are
//the positions of the atoms in the molecule's Atoms slice.
type Topology struct {
	*simple.UndirectedGraph
	Mol *chem.Molecule
	pos map[*chem.Atom]int64
}

//TopologyFromChem builds the gonum graph of mol.
func TopologyFromChem(mol *chem.Molecule) *Topology {
	T := &Topology{UndirectedGraph: simple.NewUndirectedGraph(), Mol: mol, pos: make(map[*chem.Atom]int64, mol.Len())}
	for i, a := range mol.Atoms {
		T.pos[a] = int64(i)
		T.AddNode(simple.Node(i))
	}
	for _, b := range mol.Bonds {
		f, t := T.pos[b.At1], T.pos[b.At2]
		if T.HasEdgeBetween(f, t) {
			continue //gonum simple graphs do not take multiple edges.
		}
		T.SetEdge(simple.Edge{F: simple.Node(f), T: simple.Node(t)})
	}
	return T
}

//AtomOf returns the atom corresponding to a gonum node.
func (T *Topology) AtomOf(n graph.Node) *chem.Atom {
	return T.Mol.Atoms[n.ID()]
}

//Components returns the atoms of each connected component of the graph. Atoms in
//each component keep their order in the molecule, and components are sorted by
//their first atom, so the result doesn't depend on gonum's map iteration order.
func (T *Topology) Components() [][]*chem.Atom {
	cc := topo.ConnectedComponents(T)
	ret := make([][]*chem.Atom, 0, len(cc))
	for _, c := range cc {
		ids := make([]int, len(c))
		for i, n := range c {
			ids[i] = int(n.ID())
		}
		sort.Ints(ids)
		atoms := make([]*chem.Atom, len(ids))
		for i, id := range ids {
			atoms[i] = T.Mol.Atoms[id]
		}
		ret = append(ret, atoms)
	}
	sort.Slice(ret, func(i, j int) bool { return T.pos[ret[i][0]] < T.pos[ret[j][0]] })
	return ret
}

//PartitionIntoComponents returns one view of mol per connected component. The views
//share the atoms and bonds of mol, and carry the double bond stereo elements
//whose bonds they contain.
func PartitionIntoComponents(mol *chem.Molecule) []*chem.Molecule {
	if mol.Len() == 0 {
		return nil
	}
	comps := TopologyFromChem(mol).Components()
	ret := make([]*chem.Molecule, 0, len(comps))
	for _, c := range comps {
		v := chem.InducedSubgraph(mol.Name, c)
		for _, s := range mol.Stereo {
			if v.ContainsBond(s.Bond) {
				v.Stereo = append(v.Stereo, s)
			}
		}
		ret = append(ret, v)
	}
	return ret
}

//ComponentCount returns the number of connected components in mol.
func ComponentCount(mol *chem.Molecule) int {
	if mol.Len() == 0 {
		return 0
	}
	return len(topo.ConnectedComponents(TopologyFromChem(mol)))
}

//IsConnected returns true if mol has exactly one connected component.
func IsConnected(mol *chem.Molecule) bool {
	return ComponentCount(mol) == 1
}
