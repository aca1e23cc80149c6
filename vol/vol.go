/*
 * vol.go, part of IQmol
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

//Package vol samples scalar fields from a basis.ShellList onto regular 3D
//grids and stores the sampled volumes on disk in a small compressed text
//format, so an expensive grid does not have to be recomputed between
//visualization sessions. The compressor is chosen by filename suffix:
//
//	.vz   flate
//	.vgz  gzip
//	.vlz  lzw
//	.vzs  zstd (the default for unknown suffixes)
package vol

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"compress/lzw"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	basis "github.com/effectsToCause/IQmol"
	"github.com/klauspost/compress/zstd"
)

const lzwLitwidth int = 8

const magic = "IQmolVol 1"

// Grid is an axis-aligned regular grid of scalar values. Values are stored
// with z fastest, then y, then x, as in cube files.
type Grid struct {
	Origin [3]float64
	Step   [3]float64
	Nx     int
	Ny     int
	Nz     int
	Values []float64
}

// NewGrid allocates a zero-filled grid.
func NewGrid(origin, step [3]float64, nx, ny, nz int) (*Grid, error) {
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, Error{fmt.Sprintf("vol: bad grid dimensions %dx%dx%d", nx, ny, nz), "", []string{"NewGrid"}, true}
	}
	if step[0] <= 0 || step[1] <= 0 || step[2] <= 0 {
		return nil, Error{fmt.Sprintf("vol: bad grid step %v", step), "", []string{"NewGrid"}, true}
	}
	return &Grid{
		Origin: origin,
		Step:   step,
		Nx:     nx,
		Ny:     ny,
		Nz:     nz,
		Values: make([]float64, nx*ny*nz),
	}, nil
}

// GridFromBox allocates a grid covering the bounding box of the collection
// at the given significance threshold, with approximately the given spacing.
func GridFromBox(list *basis.ShellList, thresh, spacing float64) (*Grid, error) {
	if spacing <= 0 {
		return nil, Error{fmt.Sprintf("vol: bad spacing %g", spacing), "", []string{"GridFromBox"}, true}
	}
	min, max := list.BoundingBox(thresh)
	var origin, step [3]float64
	var n [3]int
	for k := 0; k < 3; k++ {
		lo, hi := min.At(0, k), max.At(0, k)
		n[k] = int((hi-lo)/spacing) + 2
		origin[k] = lo
		if n[k] < 2 {
			n[k] = 2
		}
		step[k] = (hi - lo) / float64(n[k]-1)
		if step[k] <= 0 {
			step[k] = spacing
		}
	}
	return NewGrid(origin, step, n[0], n[1], n[2])
}

// At returns the value at grid indices (i,j,k).
func (g *Grid) At(i, j, k int) float64 {
	return g.Values[(i*g.Ny+j)*g.Nz+k]
}

// Set sets the value at grid indices (i,j,k).
func (g *Grid) Set(i, j, k int, v float64) {
	g.Values[(i*g.Ny+j)*g.Nz+k] = v
}

// Point returns the spatial coordinates of grid indices (i,j,k).
func (g *Grid) Point(i, j, k int) (x, y, z float64) {
	x = g.Origin[0] + float64(i)*g.Step[0]
	y = g.Origin[1] + float64(j)*g.Step[1]
	z = g.Origin[2] + float64(k)*g.Step[2]
	return x, y, z
}

// fill walks the grid and evaluates f at every point. This is the sampling
// driver the evaluation core is written for: one synchronous call per point,
// consuming each result before the next call.
func (g *Grid) fill(f func(x, y, z float64) float64) {
	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			for k := 0; k < g.Nz; k++ {
				g.Set(i, j, k, f(g.Point(i, j, k)))
			}
		}
	}
}

// SampleDensity fills the grid with the values of the kth registered density
// matrix of the collection.
func SampleDensity(list *basis.ShellList, g *Grid, k int) {
	g.fill(func(x, y, z float64) float64 { return list.DensityValues(x, y, z)[k] })
}

// SampleOrbital fills the grid with the amplitude of the kth selected
// orbital of the collection.
func SampleOrbital(list *basis.ShellList, g *Grid, k int) {
	g.fill(func(x, y, z float64) float64 { return list.OrbitalValues(x, y, z)[k] })
}

func newCompressor(name string, w io.Writer, level int) (io.WriteCloser, error) {
	switch {
	case strings.HasSuffix(name, ".vz"):
		return flate.NewWriter(w, level)
	case strings.HasSuffix(name, ".vgz"):
		return gzip.NewWriterLevel(w, level)
	case strings.HasSuffix(name, ".vlz"):
		return lzw.NewWriter(w, lzw.MSB, lzwLitwidth), nil
	default:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	}
}

func newDecompressor(name string, r io.Reader) (io.ReadCloser, error) {
	switch {
	case strings.HasSuffix(name, ".vz"):
		return flate.NewReader(r), nil
	case strings.HasSuffix(name, ".vgz"):
		return gzip.NewReader(r)
	case strings.HasSuffix(name, ".vlz"):
		return lzw.NewReader(r, lzw.MSB, lzwLitwidth), nil
	default:
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return d.IOReadCloser(), nil
	}
}

// Write stores the grid in name, compressed according to the filename
// suffix. The optional level applies to the flate and gzip formats.
func Write(name string, g *Grid, level ...int) error {
	lvl := flate.DefaultCompression
	if len(level) > 0 {
		lvl = level[0]
	}
	f, err := os.Create(name)
	if err != nil {
		return Error{err.Error(), name, []string{"Write"}, true}
	}
	defer f.Close()
	h, err := newCompressor(name, f, lvl)
	if err != nil {
		return Error{err.Error(), name, []string{"Write"}, true}
	}
	w := bufio.NewWriter(h)
	fmt.Fprintf(w, "%s\n", magic)
	fmt.Fprintf(w, "origin %.10g %.10g %.10g\n", g.Origin[0], g.Origin[1], g.Origin[2])
	fmt.Fprintf(w, "step %.10g %.10g %.10g\n", g.Step[0], g.Step[1], g.Step[2])
	fmt.Fprintf(w, "dims %d %d %d\n", g.Nx, g.Ny, g.Nz)
	for i, v := range g.Values {
		fmt.Fprintf(w, "%.8e", v)
		if (i+1)%6 == 0 || i == len(g.Values)-1 {
			fmt.Fprint(w, "\n")
		} else {
			fmt.Fprint(w, " ")
		}
	}
	if err := w.Flush(); err != nil {
		return Error{err.Error(), name, []string{"Write"}, true}
	}
	if err := h.Close(); err != nil {
		return Error{err.Error(), name, []string{"Write"}, true}
	}
	return nil
}

// Read loads a grid previously stored with Write.
func Read(name string) (*Grid, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{err.Error(), name, []string{"Read"}, true}
	}
	defer f.Close()
	h, err := newDecompressor(name, bufio.NewReader(f))
	if err != nil {
		return nil, Error{err.Error(), name, []string{"Read"}, true}
	}
	defer h.Close()

	sc := bufio.NewScanner(h)
	sc.Buffer(make([]byte, 1024*1024), 1024*1024)
	if !sc.Scan() || sc.Text() != magic {
		return nil, Error{"vol: not a volume file", name, []string{"Read"}, true}
	}
	g := new(Grid)
	if err := readVec(sc, "origin", &g.Origin); err != nil {
		return nil, Error{err.Error(), name, []string{"Read"}, true}
	}
	if err := readVec(sc, "step", &g.Step); err != nil {
		return nil, Error{err.Error(), name, []string{"Read"}, true}
	}
	if !sc.Scan() {
		return nil, Error{"vol: truncated header", name, []string{"Read"}, true}
	}
	fields := strings.Fields(sc.Text())
	if len(fields) != 4 || fields[0] != "dims" {
		return nil, Error{"vol: malformed dims line", name, []string{"Read"}, true}
	}
	var dims [3]int
	for k := 0; k < 3; k++ {
		dims[k], err = strconv.Atoi(fields[k+1])
		if err != nil {
			return nil, Error{"vol: malformed dims line: " + err.Error(), name, []string{"Read"}, true}
		}
	}
	g.Nx, g.Ny, g.Nz = dims[0], dims[1], dims[2]
	want := g.Nx * g.Ny * g.Nz
	if want < 1 {
		return nil, Error{fmt.Sprintf("vol: bad dimensions %dx%dx%d", g.Nx, g.Ny, g.Nz), name, []string{"Read"}, true}
	}
	g.Values = make([]float64, 0, want)
	for sc.Scan() {
		for _, field := range strings.Fields(sc.Text()) {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, Error{"vol: malformed value: " + err.Error(), name, []string{"Read"}, true}
			}
			g.Values = append(g.Values, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, Error{err.Error(), name, []string{"Read"}, true}
	}
	if len(g.Values) != want {
		return nil, Error{fmt.Sprintf("vol: %d values read, %d expected", len(g.Values), want), name, []string{"Read"}, true}
	}
	return g, nil
}

func readVec(sc *bufio.Scanner, label string, out *[3]float64) error {
	if !sc.Scan() {
		return fmt.Errorf("vol: truncated header")
	}
	fields := strings.Fields(sc.Text())
	if len(fields) != 4 || fields[0] != label {
		return fmt.Errorf("vol: malformed %s line", label)
	}
	for k := 0; k < 3; k++ {
		v, err := strconv.ParseFloat(fields[k+1], 64)
		if err != nil {
			return fmt.Errorf("vol: malformed %s line: %v", label, err)
		}
		out[k] = v
	}
	return nil
}

//Errors

// Error is the error type of the package. It carries the name of the file
// involved, when there is one.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	if err.filename == "" {
		return err.message
	}
	return fmt.Sprintf("%s (file: %s)", err.message, err.filename)
}

func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func (err Error) FileName() string { return err.filename }

func (err Error) Critical() bool { return err.critical }
