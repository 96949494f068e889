/*
 * options.go, part of gosdg.
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
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r2"

	chem "github.com/rmera/gosdg"
)

//Heuristics holds the tunable thresholds of the layout. Lengths are given in
//units of the bond length and angles in degrees.
type Heuristics struct {
	RotationStep        float64 `toml:"rotation_step"`         //orientation search step
	WidthDelta          float64 `toml:"width_delta"`           //width gain that always wins an orientation
	AlignDelta          int     `toml:"align_delta"`           //aligned-bond gain that wins a near-equal width
	AlignTolerance      float64 `toml:"align_tolerance"`       //max deviation from 30 degrees for an aligned bond
	MaxPresetPolycycles int     `toml:"max_preset_polycycles"` //polycyclic systems allowed to keep a template/macrocycle orientation
	MinMacrocycleSize   int     `toml:"min_macrocycle_size"`
	IonicStretch        float64 `toml:"ionic_stretch"`   //final cation-anion distance
	FragmentMargin      float64 `toml:"fragment_margin"` //margin around each fragment box before tiling
	OverlapThreshold    float64 `toml:"overlap_threshold"`
	RefinePasses        int     `toml:"refine_passes"`
	RefineAngle         float64 `toml:"refine_angle"`    //rotation tried by the refiner
	StretchFactor       float64 `toml:"stretch_factor"`  //extension tried by the refiner
	BracketPadding      float64 `toml:"bracket_padding"` //space between atoms and bounding-box brackets
	BracketLength       float64 `toml:"bracket_length"`
}

//DefaultHeuristics returns the standard thresholds.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		RotationStep:        30,
		WidthDelta:          0.5,
		AlignDelta:          1,
		AlignTolerance:      1,
		MaxPresetPolycycles: 1,
		MinMacrocycleSize:   10,
		IonicStretch:        1.25,
		FragmentMargin:      0.25,
		OverlapThreshold:    0.7,
		RefinePasses:        10,
		RefineAngle:         30,
		StretchFactor:       0.3,
		BracketPadding:      0.5,
		BracketLength:       1.0,
	}
}

//Check returns an error if some threshold is out of range.
func (H Heuristics) Check() error {
	var bad []string
	if H.RotationStep <= 0 || H.RotationStep > 180 {
		bad = append(bad, fmt.Sprintf("rotation_step=%g", H.RotationStep))
	}
	if H.WidthDelta < 0 {
		bad = append(bad, fmt.Sprintf("width_delta=%g", H.WidthDelta))
	}
	if H.AlignTolerance < 0 {
		bad = append(bad, fmt.Sprintf("align_tolerance=%g", H.AlignTolerance))
	}
	if H.MinMacrocycleSize < 3 {
		bad = append(bad, fmt.Sprintf("min_macrocycle_size=%d", H.MinMacrocycleSize))
	}
	if H.IonicStretch <= 0 {
		bad = append(bad, fmt.Sprintf("ionic_stretch=%g", H.IonicStretch))
	}
	if H.FragmentMargin < 0 {
		bad = append(bad, fmt.Sprintf("fragment_margin=%g", H.FragmentMargin))
	}
	if H.OverlapThreshold <= 0 || H.OverlapThreshold >= 1 {
		bad = append(bad, fmt.Sprintf("overlap_threshold=%g", H.OverlapThreshold))
	}
	if H.RefinePasses < 0 {
		bad = append(bad, fmt.Sprintf("refine_passes=%d", H.RefinePasses))
	}
	if H.BracketLength <= 0 || H.BracketPadding < 0 {
		bad = append(bad, fmt.Sprintf("bracket_length=%g bracket_padding=%g", H.BracketLength, H.BracketPadding))
	}
	if len(bad) > 0 {
		return chem.NewCError("sdg: invalid heuristics: "+strings.Join(bad, ", "), nil, "Check")
	}
	return nil
}

//DecodeHeuristics reads heuristics in TOML format from r. Keys not present keep
//their default value, unknown keys are an error.
func DecodeHeuristics(r io.Reader) (Heuristics, error) {
	h := DefaultHeuristics()
	md, err := toml.NewDecoder(r).Decode(&h)
	if err != nil {
		return h, chem.NewCError("sdg: can't decode heuristics", err, "DecodeHeuristics")
	}
	if und := md.Undecoded(); len(und) > 0 {
		keys := make([]string, len(und))
		for i, k := range und {
			keys[i] = k.String()
		}
		return h, chem.NewCError("sdg: unknown heuristics keys: "+strings.Join(keys, ", "), nil, "DecodeHeuristics")
	}
	if err := h.Check(); err != nil {
		return h, errDecorate(err, "DecodeHeuristics")
	}
	return h, nil
}

//LoadHeuristics reads heuristics in TOML format from the file at path.
func LoadHeuristics(path string) (Heuristics, error) {
	f, err := os.Open(path)
	if err != nil {
		return DefaultHeuristics(), chem.NewCError("sdg: can't open heuristics file", err, "LoadHeuristics")
	}
	defer f.Close()
	h, err := DecodeHeuristics(f)
	return h, errDecorate(err, "LoadHeuristics")
}

//FixedSet holds the atoms and bonds whose coordinates must not change during
//a layout.
type FixedSet struct {
	Atoms map[*chem.Atom]bool
	Bonds map[*chem.Bond]bool
}

//NewFixedSet returns a set with the given atoms and bonds.
func NewFixedSet(atoms []*chem.Atom, bonds []*chem.Bond) *FixedSet {
	F := &FixedSet{Atoms: make(map[*chem.Atom]bool, len(atoms)), Bonds: make(map[*chem.Bond]bool, len(bonds))}
	for _, a := range atoms {
		F.Atoms[a] = true
	}
	for _, b := range bonds {
		F.Bonds[b] = true
	}
	return F
}

//Len returns the number of fixed atoms and bonds.
func (F *FixedSet) Len() int {
	if F == nil {
		return 0
	}
	return len(F.Atoms) + len(F.Bonds)
}

//Options controls a Generator. Use DefaultOptions to obtain a valid value.
type Options struct {
	bondLength   float64
	firstBond    r2.Vec
	firstBondSet bool
	fixed        *FixedSet
	alignMapped  bool
	logger       *log.Logger
	heuristics   Heuristics
}

//DefaultOptions returns options with a bond length of 1.5, a vertical first
//bond, no fixed atoms and a logger that only reports warnings and errors.
func DefaultOptions() *Options {
	O := new(Options)
	O.bondLength = 1.5
	O.firstBond = r2.Vec{X: 0, Y: 1}
	O.logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel, Prefix: "sdg"})
	O.heuristics = DefaultHeuristics()
	return O
}

//Copy returns a copy of the options. The fixed set and logger are shared.
func (O *Options) Copy() *Options {
	r := *O
	return &r
}

//Returns the target bond length, and sets it to a new value, if a positive one is given.
func (O *Options) BondLength(l ...float64) float64 {
	if len(l) > 0 && l[0] > 0 {
		O.bondLength = l[0]
	}
	return O.bondLength
}

//Returns the direction of the first bond placed, and sets it to a new value,
//if a non-null one is given. An explicitly set vector is also used for the first
//bond of acyclic molecules, which otherwise start at 30 degrees.
func (O *Options) FirstBondVector(v ...r2.Vec) r2.Vec {
	if len(v) > 0 && r2.Norm(v[0]) > 0 {
		O.firstBond = r2.Unit(v[0])
		O.firstBondSet = true
	}
	return O.firstBond
}

//Returns the fixed atoms and bonds, and sets them to a new value, if given.
//A nil set removes all the constraints.
func (O *Options) Fixed(f ...*FixedSet) *FixedSet {
	if len(f) > 0 {
		O.fixed = f[0]
	}
	return O.fixed
}

//Returns whether reactants are aligned to the products through their atom
//mapping, and sets it to a new value, if given.
func (O *Options) AlignMappedReaction(align ...bool) bool {
	if len(align) > 0 {
		O.alignMapped = align[0]
	}
	return O.alignMapped
}

//Returns the logger, and sets it to a new value, if a non-nil one is given.
func (O *Options) Logger(l ...*log.Logger) *log.Logger {
	if len(l) > 0 && l[0] != nil {
		O.logger = l[0]
	}
	return O.logger
}

//Returns the heuristic thresholds, and sets them to a new value, if given.
//The new value is checked when a layout starts, see Heuristics.Check.
func (O *Options) Heuristics(h ...Heuristics) Heuristics {
	if len(h) > 0 {
		O.heuristics = h[0]
	}
	return O.heuristics
}
