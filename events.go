/*
 * events.go, part of rta.
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

import "fmt"

/**Note: Some functions here panic instead of returning errors. This is because they are "fundamental"
 * functions. If something goes wrong here, the program is way-most likely wrong and should
 * crash. The panics are related to ill-formed events, which can only come from a bug upstream.**/

// Interval is one binding event: a maximal run of trajectory frames during
// which a ligand molecule stays in contact with a protein residue.
type Interval struct {
	Residue  int     `json:"residue"`  //index of the residue in the tracked selection
	LigandID int     `json:"ligand"`   //molecule ID of the bound ligand
	Start    int     `json:"start"`    //first frame of the run
	Frames   int     `json:"frames"`   //length of the run, in frames
	Time     float64 `json:"time"`     //residence time, ns
	Entry    float64 `json:"entry"`    //trajectory time at the first frame, ns
	Censored bool    `json:"censored"` //still bound when the trajectory ended
}

// Copy returns a copy of the Interval.
func (I *Interval) Copy() *Interval {
	if I == nil {
		panic("rta: attempted to copy a nil Interval")
	}
	ret := new(Interval)
	*ret = *I
	return ret
}

func (I *Interval) String() string {
	c := ""
	if I.Censored {
		c = " (censored)"
	}
	return fmt.Sprintf("res %d lig %d frames %d-%d t=%5.3f ns%s", I.Residue, I.LigandID, I.Start, I.Start+I.Frames-1, I.Time, c)
}

// EventSet collects all the binding events recorded for one residue,
// together with the residue label (one-letter code plus residue number,
// e.g. "W313") and the trajectory timestep in ns per frame.
type EventSet struct {
	Label    string      `json:"label"`
	Resid    int         `json:"resid"`
	Timestep float64     `json:"timestep"`
	Events   []*Interval `json:"events"`
}

// NewEventSet returns an empty event set for the given residue.
// It panics on a non-positive timestep.
func NewEventSet(label string, resid int, timestep float64) *EventSet {
	if timestep <= 0 {
		panic("rta: non-positive timestep in NewEventSet")
	}
	return &EventSet{Label: label, Resid: resid, Timestep: timestep, Events: make([]*Interval, 0, 10)}
}

// Add appends an event to the set. It panics if the event covers no
// frames or has a non-positive residence time, which can only be
// produced by a bug in the caller.
func (E *EventSet) Add(ev *Interval) {
	if ev.Frames <= 0 || ev.Time <= 0 {
		panic(fmt.Sprintf("rta: ill-formed binding event: %v", ev))
	}
	E.Events = append(E.Events, ev)
}

// Len returns the number of events in the set.
func (E *EventSet) Len() int {
	return len(E.Events)
}

func (E *EventSet) Swap(i, j int) {
	E.Events[i], E.Events[j] = E.Events[j], E.Events[i]
}

// Less returns true if the i-th event has a shorter residence
// time than the j-th one, false otherwise.
func (E *EventSet) Less(i, j int) bool {
	return E.Events[i].Time < E.Events[j].Time
}

// Times returns a slice with the residence times, in ns, of all the
// events in the set, in the order they were added.
func (E *EventSet) Times() []float64 {
	ret := make([]float64, len(E.Events))
	for i, v := range E.Events {
		ret[i] = v.Time
	}
	return ret
}

// EntryTimes returns a slice with the trajectory time, in ns, at which
// each event in the set started.
func (E *EventSet) EntryTimes() []float64 {
	ret := make([]float64, len(E.Events))
	for i, v := range E.Events {
		ret[i] = v.Entry
	}
	return ret
}

// Uncensored returns a new set holding only the events that ended within
// the trajectory. The events themselves are shared, not copied.
func (E *EventSet) Uncensored() *EventSet {
	ret := NewEventSet(E.Label, E.Resid, E.Timestep)
	for _, v := range E.Events {
		if !v.Censored {
			ret.Events = append(ret.Events, v)
		}
	}
	return ret
}

// TotalTime returns the summed residence time, in ns, over all events.
func (E *EventSet) TotalTime() float64 {
	t := 0.0
	for _, v := range E.Events {
		t += v.Time
	}
	return t
}
