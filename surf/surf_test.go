/*
 * surf_test.go, part of IQmol
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

package surf

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	basis "github.com/effectsToCause/IQmol"
	v3 "github.com/effectsToCause/IQmol/v3"
	"gonum.org/v1/gonum/mat"
)

func sampleList(Te *testing.T) *basis.ShellList {
	data := &basis.ShellData{
		ShellTypes:              []int{0, 1},
		ShellToAtom:             []int{1, 1},
		ShellPrimitives:         []int{1, 1},
		Exponents:               []float64{0.6, 0.4},
		ContractionCoefficients: []float64{1.0, 1.0},
	}
	pos, err := v3.NewMatrix([]float64{0, 0, 0})
	if err != nil {
		Te.Fatal(err)
	}
	geom, err := basis.NewGeometry(pos)
	if err != nil {
		Te.Fatal(err)
	}
	list, err := basis.NewShellList(data, geom)
	if err != nil {
		Te.Fatal(err)
	}
	return list
}

func TestSamplePlane(Te *testing.T) {
	list := sampleList(Te)
	n := list.NBasis()
	dens := make([]float64, n*(n+1)/2)
	for i := 0; i < n; i++ {
		dens[basis.PairIndex(i, i)] = 1
	}
	if err := list.SetDensityVectors([][]float64{dens}); err != nil {
		Te.Fatal(err)
	}
	p := Plane{
		Origin: [3]float64{-2, -2, 0},
		U:      [3]float64{4, 0, 0},
		V:      [3]float64{0, 4, 0},
		NU:     9,
		NV:     9,
	}
	g, err := sample(p, DensitySampler{List: list, K: 0})
	if err != nil {
		Te.Fatal(err)
	}
	c, r := g.Dims()
	if c != 9 || r != 9 {
		Te.Fatalf("grid dims %dx%d, want 9x9", c, r)
	}
	//the density must peak at the plane center, above the shell
	if g.Z(4, 4) <= g.Z(0, 0) {
		Te.Error("density not peaked over the shell center")
	}
	if math.Abs(g.X(8)-4) > 1e-12 || math.Abs(g.Y(0)) > 1e-12 {
		Te.Errorf("plane axes mis-scaled: X(8)=%g Y(0)=%g", g.X(8), g.Y(0))
	}
	if _, err := sample(Plane{NU: 1, NV: 9}, DensitySampler{List: list, K: 0}); err == nil {
		Te.Error("degenerate plane accepted")
	}
}

func TestHeatWritesImage(Te *testing.T) {
	list := sampleList(Te)
	coefs := mat.NewDense(1, list.NBasis(), []float64{1, 0, 0, 1})
	if err := list.SetOrbitalVectors(coefs, []int{0}); err != nil {
		Te.Fatal(err)
	}
	p := Plane{
		Origin: [3]float64{-2, 0, -2},
		U:      [3]float64{4, 0, 0},
		V:      [3]float64{0, 0, 4},
		NU:     17,
		NV:     17,
	}
	file := filepath.Join(Te.TempDir(), "orbital.png")
	if err := Heat(p, OrbitalSampler{List: list, K: 0}, "HOMO slice", file); err != nil {
		Te.Fatal(err)
	}
	info, err := os.Stat(file)
	if err != nil {
		Te.Fatal(err)
	}
	if info.Size() == 0 {
		Te.Error("empty image written")
	}
}
