/*
 * library.go, part of gosdg.
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

//Package templates implements the identity template library: pre-computed 2D
//layouts for ring systems that a regular polygon approach draws poorly (bridged
//and caged systems), looked up by structural match.
package templates

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/klauspost/compress/zstd"

	chem "github.com/rmera/gosdg"
	"github.com/rmera/gosdg/match"
)

//go:generate zstd -19 -f data/templates.sdgt -o data/templates.sdgt.zst

//go:embed data/templates.sdgt.zst
var bundled []byte

//BondLength is the bond length of the coordinates stored in templates.
const BondLength = 1.5

//Template is a named ring skeleton with 2D coordinates.
type Template struct {
	Name string
	Mol  *chem.Molecule
}

//Library holds identity templates indexed by their canonical key. It is safe
//for concurrent use. The zero value is not usable, use NewLibrary.
type Library struct {
	oracle  match.Oracle
	once    sync.Once
	loadErr error
	mu      sync.RWMutex
	byKey   map[string][]*Template
	named   []*Template
}

//NewLibrary returns an empty library that confirms key hits with oracle. A nil
//oracle means match.VF2{}.
func NewLibrary(oracle match.Oracle) *Library {
	if oracle == nil {
		oracle = match.VF2{}
	}
	return &Library{oracle: oracle, byKey: make(map[string][]*Template)}
}

//LoadBundled loads the templates shipped with the library. Only the first call
//does any work; the others return its result, so concurrent callers are serialized
//behind a single load.
func (L *Library) LoadBundled() error {
	L.once.Do(func() {
		dec, err := zstd.NewReader(bytes.NewReader(bundled))
		if err != nil {
			L.loadErr = chem.NewCError("templates: can't decode bundled templates", err, "LoadBundled")
			return
		}
		defer dec.Close()
		L.loadErr = errDecorate(L.load("bundled", dec), "LoadBundled")
	})
	return L.loadErr
}

//Load reads template definitions from r and adds them to the library.
func (L *Library) Load(r io.Reader) error {
	return errDecorate(L.load("input", r), "Load")
}

func (L *Library) load(name string, r io.Reader) error {
	mols, err := parseDefs(name, r)
	if err != nil {
		return err
	}
	for _, m := range mols {
		if err := L.Add(m.Name, m); err != nil {
			return err
		}
	}
	return nil
}

//Add adds mol as a template with the given name. Every atom of mol must carry
//coordinates, at BondLength scale. Templates with heteroatoms are also stored
//as an all-carbon copy, so anonymized lookups can find them.
func (L *Library) Add(name string, mol *chem.Molecule) error {
	if mol.Len() == 0 {
		return chem.NewCError(fmt.Sprintf("templates: template %q is empty", name), nil, "Add")
	}
	if !mol.Has2D() {
		return chem.NewCError(fmt.Sprintf("templates: template %q lacks coordinates", name), nil, "Add")
	}
	t := &Template{Name: name, Mol: mol}
	L.mu.Lock()
	defer L.mu.Unlock()
	L.named = append(L.named, t)
	L.index(t)
	if anon, ok := Anonymize(mol); ok {
		L.index(&Template{Name: name, Mol: anon})
	}
	return nil
}

func (L *Library) index(t *Template) {
	k := Key(t.Mol)
	L.byKey[k] = append(L.byKey[k], t)
}

//Anonymize returns an all-carbon copy of mol with its coordinates, and true if any
//atom of mol was not a carbon. Otherwise it returns mol itself and false.
func Anonymize(mol *chem.Molecule) (*chem.Molecule, bool) {
	changed := false
	for _, a := range mol.Atoms {
		if a.Symbol != "C" {
			changed = true
			break
		}
	}
	if !changed {
		return mol, false
	}
	anon, _ := mol.Clone()
	for _, a := range anon.Atoms {
		a.Symbol = "C"
		a.Charge = 0
	}
	return anon, true
}

//LookupAndAssign looks for a template with exactly the structure of candidate
//(elements and connectivity; bond orders are ignored). On a hit, every atom of
//candidate gets the coordinates of its image in the template, at BondLength scale,
//and LookupAndAssign returns true. On a miss candidate is not modified.
func (L *Library) LookupAndAssign(candidate *chem.Molecule) bool {
	if candidate.Len() == 0 {
		return false
	}
	L.mu.RLock()
	hits := L.byKey[Key(candidate)]
	L.mu.RUnlock()
	for _, t := range hits {
		if t.Mol.Len() != candidate.Len() || len(t.Mol.Bonds) != len(candidate.Bonds) {
			continue
		}
		maps := L.oracle.Match(t.Mol, candidate, match.ElementMatch, match.AnyBond)
		if len(maps) == 0 {
			continue
		}
		for i, ti := range maps[0] {
			candidate.Atoms[ti].SetPos(t.Mol.Atoms[i].Pos())
		}
		return true
	}
	return false
}

//Templates returns the named templates in the library, sorted by name.
func (L *Library) Templates() []*Template {
	L.mu.RLock()
	ret := make([]*Template, len(L.named))
	copy(ret, L.named)
	L.mu.RUnlock()
	sort.SliceStable(ret, func(i, j int) bool { return ret[i].Name < ret[j].Name })
	return ret
}

//Names returns the sorted names of the templates in the library.
func (L *Library) Names() []string {
	t := L.Templates()
	ret := make([]string, len(t))
	for i, v := range t {
		ret[i] = v.Name
	}
	return ret
}

//Len returns the number of templates in the library.
func (L *Library) Len() int {
	L.mu.RLock()
	defer L.mu.RUnlock()
	return len(L.named)
}

//errDecorate decorates err with caller if err is a chem.Error.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(chem.Error); ok {
		e.Decorate(caller)
	}
	return err
}
