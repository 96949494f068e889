/*
 * grammar.go, part of gosdg.
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
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"gonum.org/v1/gonum/spatial/r2"

	chem "github.com/rmera/gosdg"
)

//defLexer tokenizes template definition files:
//
//	# comment
//	template "norbornane" {
//	  atom C 1.0688 -0.2571
//	  ...
//	  bond 0 1
//	  bond 1 2 2
//	}
//
//Bond orders are optional and default to single.
var defLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `[\s]+`},
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "Number", Pattern: `[-+]?\d+(\.\d+)?`},
	{Name: "Ident", Pattern: `[A-Za-z*][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `[{}]`},
})

//defFile is a whole definition file.
type defFile struct {
	Templates []*defTemplate `parser:"@@*"`
}

type defTemplate struct {
	Pos     lexer.Position
	Name    string      `parser:"\"template\" @String \"{\""`
	Entries []*defEntry `parser:"@@* \"}\""`
}

type defEntry struct {
	Atom *defAtom `parser:"  @@"`
	Bond *defBond `parser:"| @@"`
}

type defAtom struct {
	Symbol string  `parser:"\"atom\" @Ident"`
	X      float64 `parser:"@Number"`
	Y      float64 `parser:"@Number"`
}

type defBond struct {
	Pos   lexer.Position
	I     int  `parser:"\"bond\" @Number"`
	J     int  `parser:"@Number"`
	Order *int `parser:"@Number?"`
}

var defParser = participle.MustBuild[defFile](
	participle.Lexer(defLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.Unquote("String"),
	participle.UseLookahead(2),
)

//parseDefs reads template definitions from r and returns one molecule per template.
//name is used only in error messages.
func parseDefs(name string, r io.Reader) ([]*chem.Molecule, error) {
	f, err := defParser.Parse(name, r)
	if err != nil {
		return nil, chem.NewCError("templates: parse error", err, "parseDefs")
	}
	ret := make([]*chem.Molecule, 0, len(f.Templates))
	for _, t := range f.Templates {
		mol, err := t.molecule()
		if err != nil {
			return nil, chem.NewCError(fmt.Sprintf("templates: %s: template %q", t.Pos, t.Name), err, "parseDefs")
		}
		ret = append(ret, mol)
	}
	return ret, nil
}

func (T *defTemplate) molecule() (*chem.Molecule, error) {
	mol := chem.NewMolecule(T.Name)
	for _, e := range T.Entries {
		if e.Atom == nil {
			continue
		}
		at := mol.NewAtom(e.Atom.Symbol)
		at.SetPos(r2.Vec{X: e.Atom.X, Y: e.Atom.Y})
	}
	for _, e := range T.Entries {
		b := e.Bond
		if b == nil {
			continue
		}
		if b.I < 0 || b.J < 0 || b.I >= mol.Len() || b.J >= mol.Len() || b.I == b.J {
			return nil, fmt.Errorf("%s: bad bond %d-%d for %d atoms", b.Pos, b.I, b.J, mol.Len())
		}
		if mol.BondBetween(mol.Atom(b.I), mol.Atom(b.J)) != nil {
			return nil, fmt.Errorf("%s: repeated bond %d-%d", b.Pos, b.I, b.J)
		}
		order := chem.Single
		if b.Order != nil {
			order = chem.BondOrder(*b.Order)
			if order < chem.Single || order > chem.Aromatic {
				return nil, fmt.Errorf("%s: bad bond order %d", b.Pos, *b.Order)
			}
		}
		mol.Connect(mol.Atom(b.I), mol.Atom(b.J), order)
	}
	return mol, nil
}
