/*
 * shell.go, part of IQmol
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
	"math"

	v3 "github.com/effectsToCause/IQmol/v3"
)

// AngularMomentum is the shape class of a shell. It determines the number of
// basis functions the shell contributes and their angular factors. The pure
// (spherical) classes D5, F7 and G9 span 2l+1 functions, the cartesian
// classes D6, F10 and G15 span (l+1)(l+2)/2.
type AngularMomentum int

const (
	S AngularMomentum = iota
	P
	D5
	D6
	F7
	F10
	G9
	G15
)

// NBasis returns the number of basis functions of a shell of this class.
func (am AngularMomentum) NBasis() int {
	switch am {
	case S:
		return 1
	case P:
		return 3
	case D5:
		return 5
	case D6:
		return 6
	case F7:
		return 7
	case F10:
		return 10
	case G9:
		return 9
	case G15:
		return 15
	}
	return 0
}

// L returns the orbital angular momentum quantum number of the class.
func (am AngularMomentum) L() int {
	switch am {
	case S:
		return 0
	case P:
		return 1
	case D5, D6:
		return 2
	case F7, F10:
		return 3
	case G9, G15:
		return 4
	}
	return 0
}

func (am AngularMomentum) String() string {
	switch am {
	case S:
		return "S"
	case P:
		return "P"
	case D5:
		return "D5"
	case D6:
		return "D6"
	case F7:
		return "F7"
	case F10:
		return "F10"
	case G9:
		return "G9"
	case G15:
		return "G15"
	}
	return "??"
}

// Shell is one contracted Gaussian shell of fixed angular momentum centered
// on one atom. The exponents are in inverse square angstrom and the
// contraction coefficients are normalized at construction, so Evaluate works
// directly in angstrom.
type Shell struct {
	am         AngularMomentum
	atom       int
	x, y, z    float64
	expts      []float64
	coefs      []float64
	sigRadius2 float64
	values     [15]float64
}

// NewShell builds a normalized shell. pos must hold at least one vector; only
// its first vector is read. The coefficients are scaled at construction by
// the primitive normalization N(a,l) = (2a/pi)^(3/4) (4a)^(l/2) / sqrt((2l-1)!!),
// which also absorbs the unit conversion of the exponents: N has units of
// length^(-l-3/2), so normalizing against angstrom exponents yields values in
// the angstrom convention throughout.
func NewShell(am AngularMomentum, atom int, pos *v3.Matrix, expts, coefs []float64) (*Shell, error) {
	if len(expts) == 0 || len(expts) != len(coefs) {
		return nil, CError{fmt.Sprintf("basis: malformed contraction: %d exponents, %d coefficients", len(expts), len(coefs)), []string{"NewShell"}}
	}
	if pos == nil || pos.NVecs() < 1 {
		return nil, CError{"basis: Shell needs a center position", []string{"NewShell"}}
	}
	sh := &Shell{
		am:    am,
		atom:  atom,
		x:     pos.At(0, 0),
		y:     pos.At(0, 1),
		z:     pos.At(0, 2),
		expts: make([]float64, len(expts)),
		coefs: make([]float64, len(coefs)),
	}
	l := am.L()
	for i, a := range expts {
		if a <= 0 {
			return nil, CError{fmt.Sprintf("basis: non-positive exponent %g in primitive %d", a, i), []string{"NewShell"}}
		}
		sh.expts[i] = a
		sh.coefs[i] = coefs[i] * primitiveNorm(a, l)
	}
	r := sh.radiusFor(shellThresh)
	sh.sigRadius2 = r * r
	return sh, nil
}

// primitiveNorm is the normalization constant of a primitive cartesian
// Gaussian x^l exp(-a r^2).
func primitiveNorm(a float64, l int) float64 {
	return math.Pow(2*a/math.Pi, 0.75) * math.Pow(4*a, 0.5*float64(l)) /
		math.Sqrt(oddFactorial(2*l-1))
}

// oddFactorial returns n!! for odd n, and 1 for n < 2.
func oddFactorial(n int) float64 {
	f := 1.0
	for k := n; k > 1; k -= 2 {
		f *= float64(k)
	}
	return f
}

// AngularMomentum returns the shape class of the shell.
func (sh *Shell) AngularMomentum() AngularMomentum { return sh.am }

// NBasis returns the number of basis functions the shell contributes.
func (sh *Shell) NBasis() int { return sh.am.NBasis() }

// AtomIndex returns the 0-based index of the atom the shell is centered on.
func (sh *Shell) AtomIndex() int { return sh.atom }

// NPrimitives returns the contraction length.
func (sh *Shell) NPrimitives() int { return len(sh.expts) }

// radiusFor returns the radius beyond which the envelope
// max|c| r^l exp(-min(a) r^2) stays below thresh. The envelope bounds the
// magnitude of every basis function in the shell, since the angular factors
// are polynomials of total degree l in the relative coordinates.
func (sh *Shell) radiusFor(thresh float64) float64 {
	cmax := 0.0
	for _, c := range sh.coefs {
		cmax += math.Abs(c)
	}
	amin := sh.expts[0]
	for _, a := range sh.expts[1:] {
		if a < amin {
			amin = a
		}
	}
	if cmax == 0 || thresh <= 0 {
		return 0
	}
	l := float64(sh.am.L())
	f := func(r float64) float64 {
		return cmax * math.Pow(r, l) * math.Exp(-amin*r*r)
	}
	// Start past the envelope maximum at sqrt(l/2a), where f is strictly
	// decreasing, then bracket and bisect.
	lo := math.Sqrt((l + 1) / (2 * amin))
	if f(lo) <= thresh {
		return lo
	}
	hi := 2 * lo
	for f(hi) > thresh {
		hi *= 2
	}
	for i := 0; i < 60; i++ {
		mid := 0.5 * (lo + hi)
		if f(mid) > thresh {
			lo = mid
		} else {
			hi = mid
		}
	}
	return hi
}

// BoundingBox returns the corners of the axis-aligned cube outside of which
// every basis function of the shell is smaller in magnitude than thresh.
func (sh *Shell) BoundingBox(thresh float64) (min, max *v3.Matrix) {
	r := sh.radiusFor(thresh)
	min = v3.Zeros(1)
	max = v3.Zeros(1)
	min.Set(0, 0, sh.x-r)
	min.Set(0, 1, sh.y-r)
	min.Set(0, 2, sh.z-r)
	max.Set(0, 0, sh.x+r)
	max.Set(0, 1, sh.y+r)
	max.Set(0, 2, sh.z+r)
	return min, max
}

// Evaluate computes the values of the shell's basis functions at the point
// (x,y,z), in checkpoint-file component order. It returns nil if the shell is
// negligible at the point. The returned slice is a scratch buffer owned by
// the shell, overwritten on the next call.
func (sh *Shell) Evaluate(x, y, z float64) []float64 {
	dx := x - sh.x
	dy := y - sh.y
	dz := z - sh.z
	r2 := dx*dx + dy*dy + dz*dz
	if r2 > sh.sigRadius2 {
		return nil
	}
	s := 0.0
	for i, a := range sh.expts {
		s += sh.coefs[i] * math.Exp(-a*r2)
	}
	v := sh.values[:]
	switch sh.am {
	case S:
		v[0] = s
	case P:
		v[0] = s * dx
		v[1] = s * dy
		v[2] = s * dz
	case D5:
		v[0] = s * 0.5 * (3*dz*dz - r2)
		v[1] = s * sqrt3 * dx * dz
		v[2] = s * sqrt3 * dy * dz
		v[3] = s * 0.5 * sqrt3 * (dx*dx - dy*dy)
		v[4] = s * sqrt3 * dx * dy
	case D6:
		v[0] = s * dx * dx
		v[1] = s * dy * dy
		v[2] = s * dz * dz
		v[3] = s * sqrt3 * dx * dy
		v[4] = s * sqrt3 * dx * dz
		v[5] = s * sqrt3 * dy * dz
	case F7:
		xx, yy, zz := dx*dx, dy*dy, dz*dz
		v[0] = s * 0.5 * dz * (5*zz - 3*r2)
		v[1] = s * 0.25 * sqrt6 * dx * (5*zz - r2)
		v[2] = s * 0.25 * sqrt6 * dy * (5*zz - r2)
		v[3] = s * 0.5 * sqrt15 * dz * (xx - yy)
		v[4] = s * sqrt15 * dx * dy * dz
		v[5] = s * 0.25 * sqrt10 * dx * (xx - 3*yy)
		v[6] = s * 0.25 * sqrt10 * dy * (3*xx - yy)
	case F10:
		xx, yy, zz := dx*dx, dy*dy, dz*dz
		v[0] = s * dx * xx
		v[1] = s * dy * yy
		v[2] = s * dz * zz
		v[3] = s * sqrt5 * dx * yy
		v[4] = s * sqrt5 * xx * dy
		v[5] = s * sqrt5 * xx * dz
		v[6] = s * sqrt5 * dx * zz
		v[7] = s * sqrt5 * dy * zz
		v[8] = s * sqrt5 * yy * dz
		v[9] = s * sqrt15 * dx * dy * dz
	case G9:
		xx, yy, zz := dx*dx, dy*dy, dz*dz
		v[0] = s * 0.125 * (35*zz*zz - 30*zz*r2 + 3*r2*r2)
		v[1] = s * 0.25 * sqrt10 * dx * dz * (7*zz - 3*r2)
		v[2] = s * 0.25 * sqrt10 * dy * dz * (7*zz - 3*r2)
		v[3] = s * 0.25 * sqrt5 * (xx - yy) * (7*zz - r2)
		v[4] = s * 0.5 * sqrt5 * dx * dy * (7*zz - r2)
		v[5] = s * 0.25 * sqrt70 * dx * dz * (xx - 3*yy)
		v[6] = s * 0.25 * sqrt70 * dy * dz * (3*xx - yy)
		v[7] = s * 0.125 * sqrt35 * (xx*xx - 6*xx*yy + yy*yy)
		v[8] = s * 0.5 * sqrt35 * dx * dy * (xx - yy)
	case G15:
		xx, yy, zz := dx*dx, dy*dy, dz*dz
		v[0] = s * zz * zz
		v[1] = s * sqrt7 * dy * dz * zz
		v[2] = s * sqrt35o3 * yy * zz
		v[3] = s * sqrt7 * dy * yy * dz
		v[4] = s * yy * yy
		v[5] = s * sqrt7 * dx * dz * zz
		v[6] = s * sqrt35 * dx * dy * zz
		v[7] = s * sqrt35 * dx * yy * dz
		v[8] = s * sqrt7 * dx * dy * yy
		v[9] = s * sqrt35o3 * xx * zz
		v[10] = s * sqrt35 * xx * dy * dz
		v[11] = s * sqrt35o3 * xx * yy
		v[12] = s * sqrt7 * xx * dx * dz
		v[13] = s * sqrt7 * xx * dx * dy
		v[14] = s * xx * xx
	}
	return v[:sh.am.NBasis()]
}

var (
	sqrt3    = math.Sqrt(3)
	sqrt5    = math.Sqrt(5)
	sqrt6    = math.Sqrt(6)
	sqrt7    = math.Sqrt(7)
	sqrt10   = math.Sqrt(10)
	sqrt15   = math.Sqrt(15)
	sqrt35   = math.Sqrt(35)
	sqrt70   = math.Sqrt(70)
	sqrt35o3 = math.Sqrt(35.0 / 3.0)
)
