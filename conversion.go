/*
 * conversion.go, part of IQmol
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

//This provides useful conversion factors and other constants

//Conversions
const (
	A2Bohr = 1.889725989
	Bohr2A = 1 / 1.889725989
	H2Kcal = 627.509 //Hartree 2 Kcal/mol
	Kcal2H = 1 / 627.509
)

//Checkpoint files carry Gaussian exponents in inverse square bohr while all
//geometry here is in angstrom, so exponents are scaled by A2Bohr^2 on input.
//The matching coefficient renormalization happens in NewShell, where the
//angular momentum is known.
const expt2A = A2Bohr * A2Bohr

//Contracted shell values below this threshold are treated as zero. Shells
//keep a precomputed radius past which they are skipped entirely.
const shellThresh = 1e-6
