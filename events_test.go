/*
 * events_test.go, part of rta.
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

import (
	"sort"
	"testing"
)

func TestEventSet(Te *testing.T) {
	set := NewEventSet("W313", 313, 0.1)
	set.Add(&Interval{Residue: 0, LigandID: 4, Start: 10, Frames: 5, Time: 0.5, Entry: 1.0})
	set.Add(&Interval{Residue: 0, LigandID: 2, Start: 30, Frames: 1, Time: 0.1, Entry: 3.0})
	set.Add(&Interval{Residue: 0, LigandID: 4, Start: 90, Frames: 10, Time: 1.0, Entry: 9.0, Censored: true})
	if set.Len() != 3 {
		Te.Fatalf("added 3 events, set has %d", set.Len())
	}
	if tot := set.TotalTime(); tot != 1.6 {
		Te.Errorf("total residence time %v, want 1.6", tot)
	}
	unc := set.Uncensored()
	if unc.Len() != 2 {
		Te.Errorf("2 uncensored events, got %d", unc.Len())
	}
	if unc.Label != "W313" || unc.Resid != 313 || unc.Timestep != 0.1 {
		Te.Errorf("Uncensored dropped the set identity: %+v", unc)
	}
	sort.Sort(set)
	times := set.Times()
	if !sort.Float64sAreSorted(times) {
		Te.Errorf("set not sorted by residence time: %v", times)
	}
	entry := unc.EntryTimes()
	if len(entry) != 2 || entry[0] != 1.0 {
		Te.Errorf("wrong entry times: %v", entry)
	}
	c := set.Events[0].Copy()
	c.Time = 99
	if set.Events[0].Time == 99 {
		Te.Error("Copy returned a shared Interval")
	}
}

func TestEventSetPanics(Te *testing.T) {
	defer func() {
		if recover() == nil {
			Te.Error("adding a zero-length event should panic")
		}
	}()
	set := NewEventSet("A1", 1, 0.1)
	set.Add(&Interval{Frames: 0, Time: 0.1})
}

func TestResidueLabel(Te *testing.T) {
	cases := []struct {
		name  string
		resid int
		want  string
	}{
		{"TRP", 313, "W313"},
		{"trp", 313, "W313"},
		{"HSD", 75, "H75"},
		{"ASH", 12, "D12"},
		{"CHL1", 4, "CHL14"}, //not an aminoacid, keeps its name
	}
	for _, c := range cases {
		if got := ResidueLabel(c.name, c.resid); got != c.want {
			Te.Errorf("ResidueLabel(%q, %d) = %q, want %q", c.name, c.resid, got, c.want)
		}
	}
	if _, err := ResidueCode1("CHL1"); err == nil {
		Te.Error("expected an error for a non-aminoacid residue name")
	}
}
