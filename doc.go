/*
 * doc.go, part of IQmol
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

//Package basis evaluates contracted Gaussian basis shells on arbitrary points
//in space, and aggregates the per-shell values into whole-basis vectors,
//molecular-orbital amplitudes and electron-density values. It is the numerical
//core behind molecular visualization: an external sampler calls the evaluation
//methods once per grid point and feeds the resulting scalar fields to a renderer.
//
//The package does no file I/O and builds no grids itself. Raw shell records
//come from an external checkpoint-file parser, orbital coefficients and
//density matrices are computed elsewhere and only borrowed here.
//
//All evaluation methods reuse internal scratch buffers: the slice returned by
//one call is overwritten by the next call on the same ShellList. Callers must
//copy anything they want to keep before evaluating the next point.
package basis
