/*
 * shelllist.go, part of IQmol
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
	"log"

	v3 "github.com/effectsToCause/IQmol/v3"
	"gonum.org/v1/gonum/mat"
)

// ShellList is an ordered collection of shells spanning a whole basis set.
// A shell's position in the sequence fixes the absolute offset of its basis
// functions, used consistently by every evaluation method. The list owns its
// shells and a set of scratch buffers; density matrices and orbital
// coefficients are borrowed from the caller and must outlive their
// registration.
//
// The slices returned by BasisValues, BasisPairValues, DensityValues and
// OrbitalValues alias internal scratch space and are overwritten by the next
// evaluation call.
type ShellList struct {
	shells []*Shell
	nBasis int

	basisValues     []float64
	basisPairValues []float64
	sigBasis        []int

	overlapMatrix []float64

	densityVectors [][]float64
	densityValues  []float64

	orbitalCoefficients *mat.Dense
	orbitalIndices      []int
	orbitalValues       []float64
}

// NewShellList builds the collection from raw shell records and an atom
// geometry. Primitives are consumed from the flattened arrays in shell
// order; exponents are converted from inverse square bohr to inverse square
// angstrom on the way in. The signed type codes follow the formatted
// checkpoint file convention:
//
//	 0 S      1 P     -1 S and P sharing exponents
//	-2 D5     2 D6
//	-3 F7     3 F10
//	-4 G9     4 G15
//
// An unrecognized code is logged and its shell skipped; the collection is
// still built, with correspondingly fewer basis functions. A supplied
// overlap matrix is adopted only when its packed-triangular length matches
// the final basis count, otherwise it is dropped with a logged warning.
func NewShellList(data *ShellData, geometry *Geometry) (*ShellList, error) {
	if err := data.check(); err != nil {
		return nil, errDecorate(err, "NewShellList")
	}
	if geometry == nil {
		return nil, CError{"basis: nil Geometry", []string{"NewShellList"}}
	}
	L := new(ShellList)
	cnt := 0
	for shell := 0; shell < data.NShells(); shell++ {
		nprim := data.ShellPrimitives[shell]
		atom := data.ShellToAtom[shell] - 1
		if atom < 0 || atom >= geometry.NAtoms() {
			return nil, CError{fmt.Sprintf("basis: shell %d centered on atom %d, but geometry has %d atoms",
				shell, atom+1, geometry.NAtoms()), []string{"NewShellList"}}
		}
		pos := geometry.Position(atom)

		expts := make([]float64, nprim)
		coefs := make([]float64, nprim)
		var coefsSP []float64
		if len(data.ContractionCoefficientsSP) > 0 {
			coefsSP = make([]float64, nprim)
		}
		for i := 0; i < nprim; i++ {
			expts[i] = data.Exponents[cnt] * expt2A
			coefs[i] = data.ContractionCoefficients[cnt]
			if coefsSP != nil {
				coefsSP[i] = data.ContractionCoefficientsSP[cnt]
			}
			cnt++
		}

		code := data.ShellTypes[shell]
		var ams []AngularMomentum
		var coefSets [][]float64
		switch code {
		case 0:
			ams, coefSets = []AngularMomentum{S}, [][]float64{coefs}
		case 1:
			ams, coefSets = []AngularMomentum{P}, [][]float64{coefs}
		case -1:
			if coefsSP == nil {
				log.Printf("basis: SP shell at position %d without SP coefficients, emitting S only", shell)
				ams, coefSets = []AngularMomentum{S}, [][]float64{coefs}
			} else {
				ams, coefSets = []AngularMomentum{S, P}, [][]float64{coefs, coefsSP}
			}
		case -2:
			ams, coefSets = []AngularMomentum{D5}, [][]float64{coefs}
		case 2:
			ams, coefSets = []AngularMomentum{D6}, [][]float64{coefs}
		case -3:
			ams, coefSets = []AngularMomentum{F7}, [][]float64{coefs}
		case 3:
			ams, coefSets = []AngularMomentum{F10}, [][]float64{coefs}
		case -4:
			ams, coefSets = []AngularMomentum{G9}, [][]float64{coefs}
		case 4:
			ams, coefSets = []AngularMomentum{G15}, [][]float64{coefs}
		default:
			log.Printf("basis: unknown shell type found at position %d, type: %d", shell, code)
			continue
		}
		for i, am := range ams {
			sh, err := NewShell(am, atom, pos, expts, coefSets[i])
			if err != nil {
				return nil, errDecorate(err, "NewShellList")
			}
			L.shells = append(L.shells, sh)
		}
	}

	if n := L.sumBasis(); len(data.OverlapMatrix) > 0 {
		if len(data.OverlapMatrix) == n*(n+1)/2 {
			L.overlapMatrix = data.OverlapMatrix
		} else {
			log.Printf("basis: overlap matrix length %d does not match packed size %d for %d basis functions, dropping it",
				len(data.OverlapMatrix), n*(n+1)/2, n)
		}
	}

	L.resize()
	return L, nil
}

// Len returns the number of shells in the collection.
func (L *ShellList) Len() int { return len(L.shells) }

// Shell returns the ith shell. Panics if out of range.
func (L *ShellList) Shell(i int) *Shell {
	if i < 0 || i >= len(L.shells) {
		panic(ErrShellOutOfRange)
	}
	return L.shells[i]
}

// NBasis returns the total number of basis functions, cached at the last
// resize.
func (L *ShellList) NBasis() int { return L.nBasis }

func (L *ShellList) sumBasis() int {
	n := 0
	for _, sh := range L.shells {
		n += sh.NBasis()
	}
	return n
}

// resize recomputes the cached basis count and fits the scratch buffers to
// it. It runs once at the end of construction; the shell sequence never
// changes afterwards.
func (L *ShellList) resize() {
	L.nBasis = L.sumBasis()
	L.basisValues = make([]float64, L.nBasis)
	L.sigBasis = make([]int, L.nBasis)

	size := L.nBasis * (L.nBasis + 1) / 2
	if 2*size != L.nBasis*(L.nBasis+1) {
		// Unreachable with integer arithmetic; kept as a guard.
		log.Printf("basis: round error sizing the pair buffer for %d basis functions", L.nBasis)
		size++
	}
	L.basisPairValues = make([]float64, size)
}

// OverlapMatrix returns the adopted packed-triangular overlap matrix, or nil
// when none was supplied or the supplied one was mismatched.
func (L *ShellList) OverlapMatrix() []float64 { return L.overlapMatrix }

// PairIndex maps the basis-function pair (i,j) onto the packed lower
// triangle. The order of i and j does not matter.
func PairIndex(i, j int) int {
	if j > i {
		i, j = j, i
	}
	return i*(i+1)/2 + j
}

// ShellAtomOffsets returns, for each distinct atom in order, the index of
// the first shell centered on it. The list starts at 0 and is non-decreasing.
func (L *ShellList) ShellAtomOffsets() []int {
	offsets := []int{0}
	atom := 0
	for k, sh := range L.shells {
		if sh.AtomIndex() != atom {
			offsets = append(offsets, k)
			atom = sh.AtomIndex()
		}
	}
	return offsets
}

// BasisAtomOffsets returns, for each distinct atom in order, the absolute
// index of its first basis function.
func (L *ShellList) BasisAtomOffsets() []int {
	offsets := []int{0}
	atom := 0
	k := 0
	for _, sh := range L.shells {
		if sh.AtomIndex() != atom {
			offsets = append(offsets, k)
			atom = sh.AtomIndex()
		}
		k += sh.NBasis()
	}
	return offsets
}

// BasisValues evaluates every basis function at the given point, the first
// vector of p. The slots of negligible shells are zero-filled, so the
// returned vector is fully determined by the query point.
func (L *ShellList) BasisValues(p *v3.Matrix) []float64 {
	return L.BasisValuesXYZ(p.At(0, 0), p.At(0, 1), p.At(0, 2))
}

// BasisValuesXYZ is BasisValues with the point given as three coordinates.
func (L *ShellList) BasisValuesXYZ(x, y, z float64) []float64 {
	offset := 0
	for _, sh := range L.shells {
		values := sh.Evaluate(x, y, z)
		if values != nil {
			for s := 0; s < sh.NBasis(); s++ {
				L.basisValues[offset] = values[s]
				offset++
			}
		} else {
			for s := 0; s < sh.NBasis(); s++ {
				L.basisValues[offset] = 0
				offset++
			}
		}
	}
	return L.basisValues
}

// BasisPairValues fills the packed lower triangle of basis-function pair
// products at the given point: 2 xi xj off the diagonal and xi^2 on it,
// matching the weighting used by DensityValues.
func (L *ShellList) BasisPairValues(x, y, z float64) []float64 {
	L.BasisValuesXYZ(x, y, z)
	k := 0
	for i := 0; i < L.nBasis; i++ {
		xi := L.basisValues[i]
		for j := 0; j < i; j++ {
			L.basisPairValues[k] = 2 * xi * L.basisValues[j]
			k++
		}
		L.basisPairValues[k] = xi * xi
		k++
	}
	return L.basisPairValues
}

// SetDensityVectors registers the packed-triangular density matrices to be
// contracted by DensityValues. The vectors are borrowed, not copied, and
// must remain valid while registered. Any previous registration is replaced.
func (L *ShellList) SetDensityVectors(densityVectors [][]float64) error {
	want := L.nBasis * (L.nBasis + 1) / 2
	for k, d := range densityVectors {
		if len(d) != want {
			return CError{fmt.Sprintf("basis: density vector %d has length %d, want %d", k, len(d), want),
				[]string{"SetDensityVectors"}}
		}
	}
	L.densityVectors = densityVectors
	L.densityValues = make([]float64, len(densityVectors))
	return nil
}

// DensityValues evaluates, at the given point, the quadratic form of the
// basis-function values with each registered density matrix, exploiting the
// symmetry of the matrices: off-diagonal pairs contribute twice, diagonal
// ones once. Only the basis functions of significant shells enter the pair
// loop, which dominates the cost at O(nSig^2) per matrix.
func (L *ShellList) DensityValues(x, y, z float64) []float64 {
	// Compact the significant basis-function values, keeping their
	// absolute indices for the packed-triangle lookups.
	nSig := 0
	basoff := 0
	for _, sh := range L.shells {
		values := sh.Evaluate(x, y, z)
		numbas := sh.NBasis()
		if values != nil {
			for i := 0; i < numbas; i++ {
				L.basisValues[nSig] = values[i]
				L.sigBasis[nSig] = basoff
				nSig++
				basoff++
			}
		} else {
			basoff += numbas
		}
	}

	nden := len(L.densityVectors)
	for k := 0; k < nden; k++ {
		L.densityValues[k] = 0
	}
	for i := 0; i < nSig; i++ {
		xi := L.basisValues[i]
		ii := L.sigBasis[i]
		ti := ii * (ii + 1) / 2
		for j := 0; j < i; j++ {
			xij := 2 * xi * L.basisValues[j]
			jj := L.sigBasis[j]
			for k := 0; k < nden; k++ {
				L.densityValues[k] += xij * L.densityVectors[k][ti+jj]
			}
		}
		for k := 0; k < nden; k++ {
			L.densityValues[k] += xi * xi * L.densityVectors[k][ti+ii]
		}
	}
	return L.densityValues
}

// SetOrbitalVectors registers the molecular orbitals to be evaluated by
// OrbitalValues: a coefficient matrix with one row per orbital and one
// column per basis function, and the rows of interest. The matrix is
// borrowed and must remain valid while registered.
func (L *ShellList) SetOrbitalVectors(coefficients *mat.Dense, indices []int) error {
	if coefficients == nil {
		return CError{"basis: nil coefficient matrix", []string{"SetOrbitalVectors"}}
	}
	r, c := coefficients.Dims()
	if c != L.nBasis {
		return CError{fmt.Sprintf("basis: coefficient matrix has %d columns, want %d", c, L.nBasis),
			[]string{"SetOrbitalVectors"}}
	}
	for _, idx := range indices {
		if idx < 0 || idx >= r {
			return CError{fmt.Sprintf("basis: orbital index %d out of the %d coefficient rows", idx, r),
				[]string{"SetOrbitalVectors"}}
		}
	}
	L.orbitalCoefficients = coefficients
	L.orbitalIndices = indices
	L.orbitalValues = make([]float64, len(indices))
	return nil
}

// OrbitalValues evaluates the registered orbitals at the given point: for
// each selected row k, the sum of coefficient(k, b) times the value of basis
// function b. Negligible shells are skipped; their contribution is zero.
func (L *ShellList) OrbitalValues(x, y, z float64) []float64 {
	norb := len(L.orbitalIndices)
	for k := 0; k < norb; k++ {
		L.orbitalValues[k] = 0
	}
	basoff := 0
	for _, sh := range L.shells {
		values := sh.Evaluate(x, y, z)
		numbas := sh.NBasis()
		if values != nil {
			for i := 0; i < numbas; i++ {
				for k := 0; k < norb; k++ {
					L.orbitalValues[k] += L.orbitalCoefficients.At(L.orbitalIndices[k], basoff+i) * values[i]
				}
			}
		}
		basoff += numbas
	}
	return L.orbitalValues
}

// BoundingBox returns the corners of the axis-aligned box enclosing the
// boxes of all shells at the given threshold. An empty collection yields a
// zero box at the origin.
func (L *ShellList) BoundingBox(thresh float64) (min, max *v3.Matrix) {
	min = v3.Zeros(1)
	max = v3.Zeros(1)
	if len(L.shells) == 0 {
		return min, max
	}
	fmin, fmax := L.shells[0].BoundingBox(thresh)
	min.Copy(fmin)
	max.Copy(fmax)
	for _, sh := range L.shells[1:] {
		tmin, tmax := sh.BoundingBox(thresh)
		for k := 0; k < 3; k++ {
			if tmin.At(0, k) < min.At(0, k) {
				min.Set(0, k, tmin.At(0, k))
			}
			if tmax.At(0, k) > max.At(0, k) {
				max.Set(0, k, tmax.At(0, k))
			}
		}
	}
	return min, max
}

// Dump logs a tally of the shell types and cross-checks the summed basis
// count against the cached one. Purely observational.
func (L *ShellList) Dump() {
	var counts [8]int
	n := 0
	for _, sh := range L.shells {
		counts[sh.AngularMomentum()]++
		n += sh.AngularMomentum().NBasis()
	}
	check := "OK"
	if n != L.nBasis {
		check = "NOT OK"
	}
	log.Printf("Basis function check:      %s", check)
	log.Printf("Shell types:                  S    P   D5   D6   F7  F10   G9  G15")
	log.Printf("                           %4d %4d %4d %4d %4d %4d %4d %4d",
		counts[S], counts[P], counts[D5], counts[D6], counts[F7], counts[F10], counts[G9], counts[G15])
}
