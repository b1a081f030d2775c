/*
 * series.go, part of rta.
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

//Package contacts reads and writes ligand-residue distance time series
//and extracts binding events from them. The series format is a
//compressed, line-oriented text format: an optional key=value header, a
//"** N" line giving the number of tracked residues, and then one line
//per trajectory frame with N fixed-point distances. Compression is
//chosen from the file extension (zstd by default).
package contacts

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

//Write!

// SeriesW writes a distance time series, one frame at a time.
type SeriesW struct {
	f         *os.File
	h         io.WriteCloser
	nres      int
	filename  string
	writeable bool
	prec      int
	buf       *strings.Builder
}

// NewWriter creates a distance-series file with one column per tracked
// residue. The header map, if non-nil, is written as key=value lines
// before the data; the key "prec" sets the number of decimals kept for
// each distance (2 by default). The compression level, if given, is the
// zstd level to use for .zst files.
func NewWriter(name string, nres int, header map[string]string, compressionLevel ...int) (*SeriesW, error) {
	level := 3 //zstd default
	if len(compressionLevel) > 0 {
		level = compressionLevel[0]
	}
	S := new(SeriesW)
	var err error
	S.f, err = os.Create(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"NewWriter"}, true}
	}
	S.h, err = newCompWriter(S.f, name, level)
	if err != nil {
		return nil, Error{"Can't set up compression: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	S.nres = nres
	S.filename = name
	S.writeable = true
	S.prec = 2 //the default
	S.buf = new(strings.Builder)
	if header != nil {
		if p, ok := header["prec"]; ok && p != "2" {
			prec, err := strconv.Atoi(p)
			if err == nil {
				S.prec = prec
			} else {
				return nil, Error{fmt.Sprintf("Invalid precision %q", p), S.filename, []string{"NewWriter"}, true}
			}
		}
		for k, v := range header {
			fmt.Fprintf(S.h, "%s=%v\n", k, v)
		}
	}
	fmt.Fprintf(S.h, "** %d\n", S.nres)
	return S, nil
}

// WNext writes the distances for the next frame. The slice must have
// one value per tracked residue.
func (S *SeriesW) WNext(d []float64) error {
	if !S.writeable {
		return Error{SeriesUnIniWrite, S.filename, []string{"WNext"}, true}
	}
	if d == nil {
		return Error{NilDistances, S.filename, []string{"WNext"}, true}
	}
	if len(d) != S.nres {
		return Error{fmt.Sprintf("%d distances given, but %d expected", len(d), S.nres), S.filename, []string{"WNext"}, true}
	}
	p := math.Pow(10.0, float64(S.prec))
	S.buf.Reset()
	for i, v := range d {
		if i > 0 {
			S.buf.WriteByte(' ')
		}
		S.buf.WriteString(strconv.Itoa(int(math.RoundToEven(v * p))))
	}
	S.buf.WriteByte('\n')
	if _, err := S.h.Write([]byte(S.buf.String())); err != nil {
		return Error{err.Error(), S.filename, []string{"WNext"}, true}
	}
	return nil
}

// Len returns the number of residues per frame.
func (S *SeriesW) Len() int {
	return S.nres
}

// Close flushes and closes the file. The object can not be used after
// this call.
func (S *SeriesW) Close() {
	if S == nil {
		return
	}
	if S.writeable {
		S.h.Close()
		S.f.Close()
	}
	S.writeable = false
}

//Read!

// SeriesR reads a distance time series written by SeriesW.
type SeriesR struct {
	f        *os.File
	comp     io.ReadCloser
	h        *bufio.Reader
	nres     int
	filename string
	prec     int
	readable bool
}

// New opens a distance series for reading, and returns a pointer to the
// handle, a map with the header metadata (or nil, if no header is
// found) and error or nil.
func New(name string) (*SeriesR, map[string]string, error) {
	S := new(SeriesR)
	S.nres = -1 //just so we know if things don't work
	var m map[string]string
	var err error
	S.filename = name
	S.f, err = os.Open(S.filename)
	if err != nil {
		return nil, nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"New"}, true}
	}
	S.comp, err = newCompReader(bufio.NewReader(S.f), name)
	if err != nil {
		return nil, nil, Error{"Can't set up decompression: " + err.Error(), S.filename, []string{"New"}, true}
	}
	S.h = bufio.NewReader(S.comp)
	for {
		str, err := S.h.ReadString('\n')
		if err != nil {
			return nil, nil, Error{"Can't read header: " + err.Error(), S.filename, []string{"New"}, true}
		}
		str = strings.TrimSuffix(str, "\n")
		if strings.HasPrefix(str, "**") {
			nat := strings.Fields(str)
			if len(nat) < 2 {
				return nil, nil, Error{fmt.Sprintf("Can't read residue number from %q", str), S.filename, []string{"New"}, true}
			}
			S.nres, err = strconv.Atoi(nat[1])
			if err != nil {
				return nil, nil, Error{fmt.Sprintf("Can't read residue number from %q: %s", nat[1], err.Error()), S.filename, []string{"New"}, true}
			}
			break
		}
		kv := strings.SplitN(str, "=", 2)
		if len(kv) != 2 {
			return nil, nil, Error{fmt.Sprintf("Malformed header line %q", str), S.filename, []string{"New"}, true}
		}
		if m == nil {
			m = make(map[string]string)
		}
		m[kv[0]] = kv[1]
	}
	S.readable = true
	S.prec = 2
	if p, ok := m["prec"]; ok {
		prec, err := strconv.Atoi(p)
		if err != nil {
			return nil, nil, Error{fmt.Sprintf("Invalid precision %q in header", p), S.filename, []string{"New"}, true}
		}
		S.prec = prec
	}
	return S, m, nil
}

// Readable returns true if the handle is readable (if it is possible to call Next on it)
func (S *SeriesR) Readable() bool {
	return S.readable
}

// Next puts in the given slice the distances for the next frame of the
// series. A nil slice reads and discards the frame, still checking it
// for correctness. The returned error implements rta.LastEventError
// when the series simply ended.
func (S *SeriesR) Next(d []float64) error {
	if !S.readable {
		return Error{SeriesUnIniRead, S.filename, []string{"Next"}, true}
	}
	if d != nil && len(d) != S.nres {
		return Error{NotEnoughSpace, S.filename, []string{"Next"}, true}
	}
	b, err := S.h.ReadBytes('\n')
	if err != nil {
		if err == io.EOF && len(b) == 0 {
			//nothing bad happened here, the series just ended.
			S.Close()
			return newLastFrameError(S.filename, "Next")
		}
		return Error{message: err.Error(), filename: S.filename, critical: true}
	}
	fields := strings.Fields(strings.TrimSuffix(string(b), "\n"))
	if len(fields) != S.nres {
		return Error{fmt.Sprintf("frame has %d distances, want %d", len(fields), S.nres), S.filename, []string{"Next"}, true}
	}
	if d == nil {
		return nil
	}
	p := math.Pow(10.0, float64(S.prec))
	for i, v := range fields {
		f, err := strconv.Atoi(v)
		if err != nil {
			return Error{fmt.Sprintf("Can't parse distance %d (%q): %s", i, v, err.Error()), S.filename, []string{"Next"}, true}
		}
		d[i] = float64(f) / p
	}
	return nil
}

// Len returns the number of residues in each frame of the series.
func (S *SeriesR) Len() int {
	return S.nres
}

// Close closes the object, and marks it as unreadable
func (S *SeriesR) Close() {
	if !S.readable {
		return
	}
	S.comp.Close()
	S.f.Close()
	S.readable = false
}
