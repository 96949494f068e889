//Package testmol builds small molecular graphs for the tests of the gosdg packages.
package testmol

import (
	"fmt"
	"strconv"
	"strings"

	chem "github.com/rmera/gosdg"
)

var orders = map[byte]chem.BondOrder{'-': chem.Single, '=': chem.Double, '#': chem.Triple, ':': chem.Aromatic}

//Parse builds a molecule from a space-separated list of element symbols, where a
//symbol can carry a charge suffix ("Na+", "Cl-", "O2-"), and a space-separated list
//of bonds written as "i-j", "i=j", "i#j" or "i:j" (single, double, triple, aromatic).
//It panics on malformed input.
func Parse(name, atoms, bonds string) *chem.Molecule {
	mol := chem.NewMolecule(name)
	for _, f := range strings.Fields(atoms) {
		sym, charge := splitCharge(f)
		at := mol.NewAtom(sym)
		at.Charge = charge
	}
	for _, f := range strings.Fields(bonds) {
		split := strings.IndexAny(f, "-=#:")
		if split <= 0 {
			panic(fmt.Sprintf("testmol: bad bond %q", f))
		}
		i := mustAtoi(f[:split])
		j := mustAtoi(f[split+1:])
		mol.Connect(mol.Atom(i), mol.Atom(j), orders[f[split]])
	}
	return mol
}

func splitCharge(f string) (string, int) {
	k := strings.IndexAny(f, "+-")
	if k <= 0 {
		return f, 0
	}
	sign := 1
	if f[k] == '-' {
		sign = -1
	}
	head, mag := f[:k], f[k+1:]
	//"O2-" and "O-2" are both accepted.
	if d := strings.IndexAny(head, "0123456789"); d > 0 {
		head, mag = head[:d], head[d:]
	}
	if mag == "" {
		return head, sign
	}
	return head, sign * mustAtoi(mag)
}

func mustAtoi(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		panic(fmt.Sprintf("testmol: %v", err))
	}
	return i
}

//Chain returns a linear chain of n carbons.
func Chain(n int) *chem.Molecule {
	mol := chem.NewMolecule(fmt.Sprintf("C%d", n))
	var prev *chem.Atom
	for i := 0; i < n; i++ {
		at := mol.NewAtom("C")
		if prev != nil {
			mol.Connect(prev, at, chem.Single)
		}
		prev = at
	}
	return mol
}

//Cycle returns a ring of n carbons.
func Cycle(n int) *chem.Molecule {
	mol := Chain(n)
	mol.Name = fmt.Sprintf("cyclo-C%d", n)
	if n > 2 {
		mol.Connect(mol.Atom(n-1), mol.Atom(0), chem.Single)
	}
	return mol
}

func Benzene() *chem.Molecule {
	return Parse("benzene", "C C C C C C", "0:1 1:2 2:3 3:4 4:5 5:0")
}

func Toluene() *chem.Molecule {
	return Parse("toluene", "C C C C C C C", "0:1 1:2 2:3 3:4 4:5 5:0 0-6")
}

func Naphthalene() *chem.Molecule {
	return Parse("naphthalene", "C C C C C C C C C C", "0:1 1:2 2:3 3:4 4:5 5:0 4:6 6:7 7:8 8:9 9:5")
}

func Biphenyl() *chem.Molecule {
	return Parse("biphenyl", "C C C C C C C C C C C C",
		"0:1 1:2 2:3 3:4 4:5 5:0 0-6 6:7 7:8 8:9 9:10 10:11 11:6")
}

//Spiro returns spiro[4.5]decane; atom 0 is the spiro centre.
func Spiro() *chem.Molecule {
	return Parse("spiro[4.5]decane", "C C C C C C C C C C",
		"0-1 1-2 2-3 3-4 4-0 0-5 5-6 6-7 7-8 8-9 9-0")
}

//Norbornane returns bicyclo[2.2.1]heptane; atoms 0 and 3 are the bridgeheads.
func Norbornane() *chem.Molecule {
	return Parse("norbornane", "C C C C C C C", "0-1 1-2 2-3 3-4 4-5 5-0 0-6 6-3")
}

//Adamantane returns adamantane; atoms 0, 2, 4 and 6 are the bridgeheads.
func Adamantane() *chem.Molecule {
	return Parse("adamantane", "C C C C C C C C C C",
		"0-1 1-2 2-3 3-4 4-5 5-0 0-7 7-6 2-8 8-6 4-9 9-6")
}

func Cubane() *chem.Molecule {
	return Parse("cubane", "C C C C C C C C",
		"0-1 1-2 2-3 3-0 4-5 5-6 6-7 7-4 0-4 1-5 2-6 3-7")
}

//Pyridine returns pyridine, with the nitrogen as atom 0.
func Pyridine() *chem.Molecule {
	return Parse("pyridine", "N C C C C C", "0:1 1:2 2:3 3:4 4:5 5:0")
}

//SodiumChloride returns the two ions as separate fragments.
func SodiumChloride() *chem.Molecule {
	return Parse("NaCl", "Na+ Cl-", "")
}

//Acetate returns sodium acetate: the acetate anion and a sodium cation.
func Acetate() *chem.Molecule {
	return Parse("sodium acetate", "C C O O- Na+", "0-1 1=2 1-3")
}
