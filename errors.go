/*
 * errors.go, part of IQmol
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

// Error is the interface for errors that all packages in this library implement.
// The Decorate method allows to add and retrieve info from the error, without
// changing its type or wrapping it around something else. The decoration slice
// should contain a list of the functions in the calling stack, plus, for each
// function, any relevant information, or nothing.
type Error interface {
	Error() string
	Decorate(string) []string
	Critical() bool
}

// CError is the concrete error type of the package. It implements Error.
type CError struct {
	msg  string
	deco []string
}

func (err CError) Error() string { return err.msg }

// Decorate adds the dec string to the decoration slice of strings of the error,
// and returns the resulting slice. An empty dec only returns the current slice.
func (err CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical returns whether the error is critical or can be ignored.
// Everything that gets as far as being returned from this package is critical;
// the recoverable conditions (unknown shell codes, mismatched overlap
// matrices) are logged and degraded instead of being returned.
func (err CError) Critical() bool { return true }

// errDecorate asserts that the error implements Error and decorates it with
// the caller's name before passing it up.
func errDecorate(err error, caller string) error {
	err2, ok := err.(Error)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}

// PanicMsg is a message used for panics. It does satisfy the error interface,
// but for returned errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrShellOutOfRange = PanicMsg("basis: Requested Shell out of range")
	ErrAtomOutOfRange  = PanicMsg("basis: Requested atom position out of range")
	ErrNilShellList    = PanicMsg("basis: Operation attempted on a nil ShellList")
)
