/*
 * vf2.go, part of gosdg.
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

package match

import (
	chem "github.com/rmera/gosdg"
)

//DefaultLimit is the maximum number of mappings VF2 returns when no limit is set.
const DefaultLimit = 1024

//VF2 is a backtracking subgraph isomorphism (monomorphism) matcher in the VF2 spirit:
//query atoms are visited in breadth-first order, so each new candidate is checked
//against already mapped neighbours. Limit caps the number of mappings returned
//(0 means DefaultLimit).
type VF2 struct {
	Limit int
}

type vf2state struct {
	q, t    *chem.Molecule
	qpos    map[*chem.Atom]int
	tpos    map[*chem.Atom]int
	order   []int
	core    []int  //query -> target, -1 if unmapped
	used    []bool //target atoms already in the mapping
	am      AtomMatcher
	bm      BondMatcher
	limit   int
	results []Mapping
}

//Match returns the mappings of query onto target. Mappings are produced in a
//deterministic order that depends only on the atom and bond order of both graphs.
func (V VF2) Match(query, target *chem.Molecule, am AtomMatcher, bm BondMatcher) []Mapping {
	if query.Len() == 0 || query.Len() > target.Len() {
		return nil
	}
	if am == nil {
		am = AnyAtom
	}
	if bm == nil {
		bm = AnyBond
	}
	limit := V.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	s := &vf2state{
		q:     query,
		t:     target,
		qpos:  positions(query),
		tpos:  positions(target),
		core:  make([]int, query.Len()),
		used:  make([]bool, target.Len()),
		am:    am,
		bm:    bm,
		limit: limit,
	}
	for i := range s.core {
		s.core[i] = -1
	}
	s.order = s.bfsOrder()
	s.extend(0)
	return s.results
}

func positions(mol *chem.Molecule) map[*chem.Atom]int {
	ret := make(map[*chem.Atom]int, mol.Len())
	for i, a := range mol.Atoms {
		ret[a] = i
	}
	return ret
}

//bfsOrder visits every query component breadth-first, starting each one at its
//most connected atom.
func (s *vf2state) bfsOrder() []int {
	n := s.q.Len()
	seen := make([]bool, n)
	order := make([]int, 0, n)
	for len(order) < n {
		start := -1
		for i, a := range s.q.Atoms {
			if seen[i] {
				continue
			}
			if start < 0 || s.q.Degree(a) > s.q.Degree(s.q.Atoms[start]) {
				start = i
			}
		}
		seen[start] = true
		queue := []int{start}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			order = append(order, cur)
			for _, nb := range s.q.Neighbors(s.q.Atoms[cur]) {
				p := s.qpos[nb]
				if !seen[p] {
					seen[p] = true
					queue = append(queue, p)
				}
			}
		}
	}
	return order
}

func (s *vf2state) extend(depth int) bool {
	if depth == len(s.order) {
		m := make(Mapping, len(s.core))
		copy(m, s.core)
		s.results = append(s.results, m)
		return len(s.results) >= s.limit
	}
	qi := s.order[depth]
	qa := s.q.Atoms[qi]
	for _, ti := range s.candidates(qa) {
		if s.used[ti] || !s.feasible(qa, s.t.Atoms[ti]) {
			continue
		}
		s.core[qi] = ti
		s.used[ti] = true
		stop := s.extend(depth + 1)
		s.core[qi] = -1
		s.used[ti] = false
		if stop {
			return true
		}
	}
	return false
}

//candidates restricts the search to the target neighbours of the image of an
//already mapped query neighbour, when there is one.
func (s *vf2state) candidates(qa *chem.Atom) []int {
	for _, nb := range s.q.Neighbors(qa) {
		m := s.core[s.qpos[nb]]
		if m < 0 {
			continue
		}
		tn := s.t.Neighbors(s.t.Atoms[m])
		ret := make([]int, 0, len(tn))
		for _, a := range tn {
			ret = append(ret, s.tpos[a])
		}
		return ret
	}
	ret := make([]int, s.t.Len())
	for i := range ret {
		ret[i] = i
	}
	return ret
}

func (s *vf2state) feasible(qa, ta *chem.Atom) bool {
	if s.q.Degree(qa) > s.t.Degree(ta) || !s.am(qa, ta) {
		return false
	}
	for _, qb := range s.q.BondsOf(qa) {
		m := s.core[s.qpos[qb.Cross(qa)]]
		if m < 0 {
			continue
		}
		tb := s.t.BondBetween(ta, s.t.Atoms[m])
		if tb == nil || !s.bm(qb, tb) {
			return false
		}
	}
	return true
}
