/*
 * shelldata.go, part of IQmol
 *
 * Copyright 2026 The IQmol developers
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

package basis

import (
	"fmt"

	v3 "github.com/effectsToCause/IQmol/v3"
)

// ShellData holds the raw per-shell records produced by an external
// checkpoint-file parser, still in source conventions: 1-based atom indices,
// exponents in inverse square bohr, and one flattened primitive sequence
// shared by all shells in order. The slices ShellTypes, ShellToAtom and
// ShellPrimitives run parallel, one entry per shell.
type ShellData struct {
	ShellTypes      []int //signed type codes, see NewShellList
	ShellToAtom     []int
	ShellPrimitives []int
	Exponents       []float64
	// ContractionCoefficients holds the primary contraction set;
	// ContractionCoefficientsSP, when non-empty, holds the P coefficients
	// of SP-combined (type code -1) shells.
	ContractionCoefficients   []float64
	ContractionCoefficientsSP []float64
	// OverlapMatrix is an optional packed lower triangle, adopted by the
	// ShellList only when its length matches the final basis count.
	OverlapMatrix []float64
}

// NShells returns the number of shell records.
func (d *ShellData) NShells() int { return len(d.ShellTypes) }

// check verifies that the parallel slices agree and that the flattened
// primitive arrays are long enough for the declared contraction lengths.
func (d *ShellData) check() error {
	if d == nil {
		return CError{"basis: nil ShellData", []string{"check"}}
	}
	n := len(d.ShellTypes)
	if len(d.ShellToAtom) != n || len(d.ShellPrimitives) != n {
		return CError{fmt.Sprintf("basis: inconsistent shell records: %d types, %d atom indices, %d primitive counts",
			n, len(d.ShellToAtom), len(d.ShellPrimitives)), []string{"check"}}
	}
	tot := 0
	for _, p := range d.ShellPrimitives {
		tot += p
	}
	if len(d.Exponents) < tot || len(d.ContractionCoefficients) < tot {
		return CError{fmt.Sprintf("basis: %d primitives declared but %d exponents and %d coefficients given",
			tot, len(d.Exponents), len(d.ContractionCoefficients)), []string{"check"}}
	}
	if len(d.ContractionCoefficientsSP) > 0 && len(d.ContractionCoefficientsSP) < tot {
		return CError{fmt.Sprintf("basis: SP coefficient set is short: %d given, %d needed",
			len(d.ContractionCoefficientsSP), tot), []string{"check"}}
	}
	return nil
}

// Geometry is the atom-position lookup consumed during construction. It only
// answers positions; atom identities, charges and the rest of the molecular
// data live with the external caller.
type Geometry struct {
	pos *v3.Matrix
}

// NewGeometry wraps a matrix with one row per atom.
func NewGeometry(positions *v3.Matrix) (*Geometry, error) {
	if positions == nil {
		return nil, CError{"basis: nil positions given to Geometry", []string{"NewGeometry"}}
	}
	return &Geometry{pos: positions}, nil
}

// NAtoms returns the number of atoms in the geometry.
func (G *Geometry) NAtoms() int { return G.pos.NVecs() }

// Position returns a view of the position of the ith (0-based) atom.
// Panics if out of range.
func (G *Geometry) Position(i int) *v3.Matrix {
	if i < 0 || i >= G.pos.NVecs() {
		panic(ErrAtomOutOfRange)
	}
	return G.pos.VecView(i)
}
