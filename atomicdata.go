/*
 * atomicdata.go, part of gosdg.
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

package chem

//A map for assigning atomic numbers to element symbols.
//Only elements up to Xe plus a few heavy ones that show up in
//drawings are present.
var symbolNumber = map[string]int{
	"H": 1, "He": 2, "Li": 3, "Be": 4, "B": 5, "C": 6, "N": 7, "O": 8, "F": 9, "Ne": 10,
	"Na": 11, "Mg": 12, "Al": 13, "Si": 14, "P": 15, "S": 16, "Cl": 17, "Ar": 18,
	"K": 19, "Ca": 20, "Sc": 21, "Ti": 22, "V": 23, "Cr": 24, "Mn": 25, "Fe": 26, "Co": 27,
	"Ni": 28, "Cu": 29, "Zn": 30, "Ga": 31, "Ge": 32, "As": 33, "Se": 34, "Br": 35, "Kr": 36,
	"Rb": 37, "Sr": 38, "Y": 39, "Zr": 40, "Nb": 41, "Mo": 42, "Tc": 43, "Ru": 44, "Rh": 45,
	"Pd": 46, "Ag": 47, "Cd": 48, "In": 49, "Sn": 50, "Sb": 51, "Te": 52, "I": 53, "Xe": 54,
	"Cs": 55, "Ba": 56, "Gd": 64, "W": 74, "Pt": 78, "Au": 79, "Hg": 80, "Pb": 82, "Bi": 83,
	"D": 1, "T": 1,
}

//AtomicNumber returns the atomic number for the element symbol, 0 for
//pseudo atoms (*, R, ...) and -1 for unknown symbols.
func AtomicNumber(symbol string) int {
	if n, ok := symbolNumber[symbol]; ok {
		return n
	}
	switch symbol {
	case "*", "R", "R#", "A", "Q", "X":
		return 0
	}
	return -1
}

//IsElement returns true if symbol is a known element or pseudo atom symbol.
func IsElement(symbol string) bool {
	return AtomicNumber(symbol) >= 0
}
