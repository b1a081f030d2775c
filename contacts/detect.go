package contacts

import (
	"fmt"

	rta "github.com/mdkinetics/rta"
)

// Options holds the adjustable parameters of the event detection.
type Options struct {
	cutoff    float64
	gap       int
	minframes int
}

// DefaultOptions returns an Options with the default detection
// parameters: 7.0 A cutoff, no gap bridging, events of any length.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.cutoff = 7.0
	ret.gap = 0
	ret.minframes = 1
	return ret
}

// Cutoff returns the contact cutoff, in A, and sets the value to the
// one given, if any.
func (r *Options) Cutoff(cutoff ...float64) float64 {
	ret := r.cutoff
	if len(cutoff) > 0 && cutoff[0] > 0 {
		r.cutoff = cutoff[0]
	}
	return ret
}

// Gap returns the number of consecutive off-cutoff frames tolerated
// inside a binding event, and sets it, if a valid value is given.
func (r *Options) Gap(gap ...int) int {
	ret := r.gap
	if len(gap) > 0 && gap[0] >= 0 {
		r.gap = gap[0]
	}
	return ret
}

// MinFrames returns the minimum number of frames for an event to be
// kept, and sets it, if a valid value is given.
func (r *Options) MinFrames(minframes ...int) int {
	ret := r.minframes
	if len(minframes) > 0 && minframes[0] > 0 {
		r.minframes = minframes[0]
	}
	return ret
}

//the per-residue state of the frame scan.
type run struct {
	open  bool
	start int //first contact frame
	last  int //last contact frame seen
	gap   int //off-cutoff frames since last
}

// Detect scans a distance series and returns, for every tracked
// residue, the set of binding events found: maximal runs of frames with
// distance at or below the cutoff. Runs interrupted for at most
// Gap() frames are bridged. An event still open when the series ends is
// kept and flagged censored. An empty series yields empty sets, not an
// error.
func Detect(S *SeriesR, meta *Metadata, options ...*Options) ([]*rta.EventSet, error) {
	var o *Options
	if len(options) > 0 {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	if err := meta.Check(); err != nil {
		return nil, errDecorate(err, "Detect")
	}
	nres := S.Len()
	sets := make([]*rta.EventSet, nres)
	runs := make([]run, nres)
	for i := range sets {
		sets[i] = rta.NewEventSet(meta.Label(i), meta.Resid(i), meta.Timestep)
	}
	d := make([]float64, nres)
	var frame int
scanning:
	for frame = 0; ; frame++ {
		err := S.Next(d)
		if err != nil {
			switch err := err.(type) {
			case rta.LastEventError:
				break scanning
			case rta.Error:
				err.Decorate(fmt.Sprintf("Detect: failed while reading the %d th frame", frame))
				return nil, err
			default:
				return nil, err //somehow it wasn't an rta.Error. This should never happen.
			}
		}
		for i, dist := range d {
			r := &runs[i]
			if dist <= o.cutoff {
				if !r.open {
					r.open = true
					r.start = frame
				}
				r.last = frame
				r.gap = 0
				continue
			}
			if !r.open {
				continue
			}
			r.gap++
			if r.gap > o.gap {
				emit(sets[i], i, r, meta.Timestep, o, false)
				r.open = false
			}
		}
	}
	//events still open at the end of the series. They are censored only
	//if the ligand was in contact at the very last frame.
	for i := range runs {
		r := &runs[i]
		if r.open {
			emit(sets[i], i, r, meta.Timestep, o, r.gap == 0 && r.last == frame-1)
		}
	}
	return sets, nil
}

func emit(set *rta.EventSet, residue int, r *run, ts float64, o *Options, censored bool) {
	frames := r.last - r.start + 1
	if frames < o.minframes {
		return
	}
	set.Add(&rta.Interval{
		Residue:  residue,
		LigandID: -1, //min-distance series don't identify the ligand molecule
		Start:    r.start,
		Frames:   frames,
		Time:     float64(frames) * ts,
		Entry:    float64(r.start) * ts,
		Censored: censored,
	})
}
