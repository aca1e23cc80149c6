/*
 * vol_test.go, part of IQmol
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

package vol

import (
	"math"
	"path/filepath"
	"testing"

	basis "github.com/effectsToCause/IQmol"
	v3 "github.com/effectsToCause/IQmol/v3"
)

func oneSShellList(Te *testing.T) *basis.ShellList {
	data := &basis.ShellData{
		ShellTypes:              []int{0},
		ShellToAtom:             []int{1},
		ShellPrimitives:         []int{1},
		Exponents:               []float64{0.7},
		ContractionCoefficients: []float64{1.0},
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

func TestGridIndexing(Te *testing.T) {
	g, err := NewGrid([3]float64{-1, -2, -3}, [3]float64{0.5, 0.5, 0.5}, 3, 4, 5)
	if err != nil {
		Te.Fatal(err)
	}
	if len(g.Values) != 3*4*5 {
		Te.Fatalf("grid holds %d values, want %d", len(g.Values), 3*4*5)
	}
	g.Set(2, 3, 4, 7.5)
	if g.At(2, 3, 4) != 7.5 {
		Te.Error("Set/At disagree")
	}
	x, y, z := g.Point(2, 0, 1)
	if x != 0 || y != -2 || z != -2.5 {
		Te.Errorf("Point(2,0,1) = (%g,%g,%g)", x, y, z)
	}
	if _, err := NewGrid([3]float64{}, [3]float64{1, 1, 1}, 0, 1, 1); err == nil {
		Te.Error("grid with zero dimension accepted")
	}
	if _, err := NewGrid([3]float64{}, [3]float64{0, 1, 1}, 2, 2, 2); err == nil {
		Te.Error("grid with zero step accepted")
	}
}

func TestGridFromBox(Te *testing.T) {
	list := oneSShellList(Te)
	g, err := GridFromBox(list, 1e-4, 0.5)
	if err != nil {
		Te.Fatal(err)
	}
	min, max := list.BoundingBox(1e-4)
	for k := 0; k < 3; k++ {
		if g.Origin[k] != min.At(0, k) {
			Te.Errorf("grid origin %v, box min %g on axis %d", g.Origin, min.At(0, k), k)
		}
	}
	//the far grid corner must reach the box
	fx, fy, fz := g.Point(g.Nx-1, g.Ny-1, g.Nz-1)
	far := [3]float64{fx, fy, fz}
	for k := 0; k < 3; k++ {
		if far[k] < max.At(0, k)-0.5 {
			Te.Errorf("grid corner %g short of box max %g on axis %d", far[k], max.At(0, k), k)
		}
	}
}

func TestSampleDensity(Te *testing.T) {
	list := oneSShellList(Te)
	if err := list.SetDensityVectors([][]float64{{1.0}}); err != nil {
		Te.Fatal(err)
	}
	g, err := NewGrid([3]float64{-1, -1, -1}, [3]float64{1, 1, 1}, 3, 3, 3)
	if err != nil {
		Te.Fatal(err)
	}
	SampleDensity(list, g, 0)
	//with a unit density matrix the field is the squared basis value
	x, y, z := g.Point(1, 1, 1)
	want := list.BasisValuesXYZ(x, y, z)[0]
	if math.Abs(g.At(1, 1, 1)-want*want) > 1e-12 {
		Te.Errorf("density at center %g, want %g", g.At(1, 1, 1), want*want)
	}
	if g.At(1, 1, 1) <= g.At(0, 0, 0) {
		Te.Error("density not peaked at the shell center")
	}
}

func TestReadWriteRoundTrip(Te *testing.T) {
	g, err := NewGrid([3]float64{-1, 0, 1}, [3]float64{0.25, 0.25, 0.5}, 4, 3, 2)
	if err != nil {
		Te.Fatal(err)
	}
	for i := range g.Values {
		g.Values[i] = float64(i) * 0.125
	}
	dir := Te.TempDir()
	for _, name := range []string{"grid.vz", "grid.vgz", "grid.vlz", "grid.vzs"} {
		path := filepath.Join(dir, name)
		if err := Write(path, g); err != nil {
			Te.Fatalf("%s: %v", name, err)
		}
		r, err := Read(path)
		if err != nil {
			Te.Fatalf("%s: %v", name, err)
		}
		if r.Nx != g.Nx || r.Ny != g.Ny || r.Nz != g.Nz {
			Te.Errorf("%s: dims %dx%dx%d, want %dx%dx%d", name, r.Nx, r.Ny, r.Nz, g.Nx, g.Ny, g.Nz)
		}
		for k := 0; k < 3; k++ {
			if r.Origin[k] != g.Origin[k] || r.Step[k] != g.Step[k] {
				Te.Errorf("%s: header mismatch", name)
			}
		}
		for i := range g.Values {
			if math.Abs(r.Values[i]-g.Values[i]) > 1e-12 {
				Te.Errorf("%s: value %d is %g, want %g", name, i, r.Values[i], g.Values[i])
				break
			}
		}
	}
}

func TestReadRejectsGarbage(Te *testing.T) {
	dir := Te.TempDir()
	path := filepath.Join(dir, "good.vgz")
	g, _ := NewGrid([3]float64{}, [3]float64{1, 1, 1}, 2, 2, 2)
	if err := Write(path, g); err != nil {
		Te.Fatal(err)
	}
	//a truncated copy must be rejected
	r, err := Read(filepath.Join(dir, "missing.vgz"))
	if err == nil || r != nil {
		Te.Error("reading a missing file succeeded")
	}
}
