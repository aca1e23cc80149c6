/*
 * surf.go, part of IQmol
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

//Package surf renders 2D slices of scalar fields (electron density, orbital
//amplitudes) to heat-map images. It is a diagnostic aid, not the 3D molecular
//renderer, which lives outside this module.
package surf

import (
	"fmt"
	"math"
	"strings"

	basis "github.com/effectsToCause/IQmol"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Sampler is any scalar field of a 3D point. The adapters below turn
// ShellList evaluations into Samplers.
type Sampler interface {
	Value(x, y, z float64) float64
}

// DensitySampler samples the Kth registered density matrix of a ShellList.
type DensitySampler struct {
	List *basis.ShellList
	K    int
}

func (d DensitySampler) Value(x, y, z float64) float64 {
	return d.List.DensityValues(x, y, z)[d.K]
}

// OrbitalSampler samples the Kth selected orbital of a ShellList.
type OrbitalSampler struct {
	List *basis.ShellList
	K    int
}

func (o OrbitalSampler) Value(x, y, z float64) float64 {
	return o.List.OrbitalValues(x, y, z)[o.K]
}

// Plane is a rectangular patch in 3D space: a corner, two edge vectors
// spanning the patch, and the number of samples along each edge.
type Plane struct {
	Origin [3]float64
	U, V   [3]float64
	NU, NV int
}

// grid adapts sampled plane values to the plotter.GridXYZ interface. The
// plot axes are distances along the plane edges, in the length unit of the
// sampled field.
type grid struct {
	lenU, lenV float64
	nu, nv     int
	z          []float64
}

func (g *grid) Dims() (int, int) { return g.nu, g.nv }

func (g *grid) X(c int) float64 { return g.lenU * float64(c) / float64(g.nu-1) }

func (g *grid) Y(r int) float64 { return g.lenV * float64(r) / float64(g.nv-1) }

func (g *grid) Z(c, r int) float64 { return g.z[r*g.nu+c] }

func edgeLen(e [3]float64) float64 {
	return math.Sqrt(e[0]*e[0] + e[1]*e[1] + e[2]*e[2])
}

// sample walks the plane and fills a grid from the field.
func sample(p Plane, s Sampler) (*grid, error) {
	if p.NU < 2 || p.NV < 2 {
		return nil, Error{fmt.Sprintf("surf: need at least 2x2 samples, got %dx%d", p.NU, p.NV), []string{"sample"}, true}
	}
	g := &grid{
		lenU: edgeLen(p.U),
		lenV: edgeLen(p.V),
		nu:   p.NU,
		nv:   p.NV,
		z:    make([]float64, p.NU*p.NV),
	}
	for r := 0; r < p.NV; r++ {
		fv := float64(r) / float64(p.NV-1)
		for c := 0; c < p.NU; c++ {
			fu := float64(c) / float64(p.NU-1)
			x := p.Origin[0] + fu*p.U[0] + fv*p.V[0]
			y := p.Origin[1] + fu*p.U[1] + fv*p.V[1]
			z := p.Origin[2] + fu*p.U[2] + fv*p.V[2]
			g.z[r*p.NU+c] = s.Value(x, y, z)
		}
	}
	return g, nil
}

// Heat samples the plane and writes a heat-map image of the field to
// filename. The image format follows the filename extension (.png, .pdf,
// .svg...); a missing extension defaults to png.
func Heat(p Plane, s Sampler, title, filename string) error {
	g, err := sample(p, s)
	if err != nil {
		return errDecorate(err, "Heat")
	}
	pal := moreland.SmoothBlueRed().Palette(255)
	hm := plotter.NewHeatMap(g, pal)

	plt := plot.New()
	plt.Title.Padding = 3 * vg.Millimeter
	plt.Title.Text = title
	plt.X.Label.Text = "u / Å"
	plt.Y.Label.Text = "v / Å"
	plt.Add(hm)

	if !strings.Contains(filename, ".") {
		filename = filename + ".png"
	}
	if err := plt.Save(12*vg.Centimeter, 12*vg.Centimeter, filename); err != nil {
		return Error{err.Error(), []string{"Heat"}, true}
	}
	return nil
}

//Errors

type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string { return err.message }

func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func (err Error) Critical() bool { return err.critical }

func errDecorate(err error, caller string) error {
	type decorable interface {
		Decorate(string) []string
	}
	if err2, ok := err.(decorable); ok {
		err2.Decorate(caller)
	}
	return err
}
