/*
 * interfaces.go, part of rta.
 *
 * Copyright 2024 The rta developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package rta

// EventSource is the interface for anything that can produce the binding
// events of one residue: an events file, a distance-series scanner, or a
// synthetic generator in tests.
type EventSource interface {

	//NextSet returns the event set for the next residue, or an error
	//implementing LastEventError once the source is exhausted.
	NextSet() (*EventSet, error)

	//Readable reports whether the source can still be read from.
	Readable() bool
}

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call appends the given string (if non-empty) to the "decoration" slice and returns the slice. The slice should contain the functions in the calling stack, plus, for each function, any relevant information, in the format "FunctionName: Extra info".
}

// DataError is the interface for errors tied to a data file (series,
// events or results), in any of the formats the library reads or writes.
type DataError interface {
	Error
	Critical() bool
	FileName() string
	Format() string
}

// LastEventError has a useless function to distinguish the harmless errors (i.e. end of data) so they can be
// filtered in a typeswitch that looks for this interface.
type LastEventError interface {
	DataError
	NormalLastEventTermination() //does nothing, just to separate this interface from other DataError's
}
