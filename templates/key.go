/*
 * key.go, part of gosdg.
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

package templates

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	chem "github.com/rmera/gosdg"
)

//Key returns a canonical structure string for mol: isomorphic graphs (same
//elements, same connectivity) get the same key. The key is built by iterative
//refinement of atom classes, starting from element and degree, and records the
//sorted class multiset of every round. Different graphs can share a key, so
//a key hit must still be confirmed by a matcher.
func Key(mol *chem.Molecule) string {
	n := mol.Len()
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d/%d", n, len(mol.Bonds))
	if n == 0 {
		return sb.String()
	}
	pos := make(map[*chem.Atom]int, n)
	for i, a := range mol.Atoms {
		pos[a] = i
	}
	labels := make([]string, n)
	for i, a := range mol.Atoms {
		labels[i] = a.Symbol + strconv.Itoa(mol.Degree(a))
	}
	classes := writeRound(&sb, labels)
	for round := 0; round < n; round++ {
		next := make([]string, n)
		for i, a := range mol.Atoms {
			nb := mol.Neighbors(a)
			ns := make([]string, len(nb))
			for j, o := range nb {
				ns[j] = labels[pos[o]]
			}
			sort.Strings(ns)
			next[i] = labels[i] + "(" + strings.Join(ns, ",") + ")"
		}
		ranks := compress(next)
		nc := writeRound(&sb, next)
		labels = ranks
		if nc == classes {
			break
		}
		classes = nc
	}
	return sb.String()
}

//writeRound appends the sorted multiset of labels to sb, and returns the number
//of distinct labels.
func writeRound(sb *strings.Builder, labels []string) int {
	s := make([]string, len(labels))
	copy(s, labels)
	sort.Strings(s)
	sb.WriteString("|")
	sb.WriteString(strings.Join(s, ";"))
	distinct := 0
	for i := range s {
		if i == 0 || s[i] != s[i-1] {
			distinct++
		}
	}
	return distinct
}

//compress replaces each label by its rank among the distinct labels.
func compress(labels []string) []string {
	s := make([]string, len(labels))
	copy(s, labels)
	sort.Strings(s)
	rank := make(map[string]string, len(s))
	for _, l := range s {
		if _, ok := rank[l]; !ok {
			rank[l] = "c" + strconv.Itoa(len(rank))
		}
	}
	ret := make([]string, len(labels))
	for i, l := range labels {
		ret[i] = rank[l]
	}
	return ret
}
