package posterior

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	rta "github.com/mdkinetics/rta"
	"gonum.org/v1/gonum/mat"
)

// MembershipMatrix returns the event-by-process membership
// probabilities as a dense matrix.
func (p *Processed) MembershipMatrix() *mat.Dense {
	ndata := len(p.Membership)
	ret := mat.NewDense(ndata, p.Nproc, nil)
	for i, row := range p.Membership {
		ret.SetRow(i, row)
	}
	return ret
}

// ProcessSamples returns the weight and rate samples belonging to one
// process. Process 0 is the slowest.
func (p *Processed) ProcessSamples(proc int) (weights, rates []float64) {
	for i, l := range p.Labels {
		if l == proc {
			weights = append(weights, p.Weights[i])
			rates = append(rates, p.Rates[i])
		}
	}
	return weights, rates
}

// Assign classifies trajectory frames: for every process, it returns
// the frames belonging to binding events whose posterior membership in
// that process is at least the given threshold. The event set must be
// the one the chain was fit to; its uncensored events must match the
// times stored in the processed result. The frame lists are what an
// external tool needs to extract per-process poses and densities from
// the trajectory.
func (p *Processed) Assign(set *rta.EventSet, threshold float64) ([][]int, error) {
	events := set.Uncensored().Events
	if len(events) != len(p.Membership) {
		return nil, fmt.Errorf("posterior.Assign: %s: %d uncensored events but %d membership rows", p.Label, len(events), len(p.Membership))
	}
	for i, ev := range events {
		if ev.Time != p.Times[i] {
			return nil, fmt.Errorf("posterior.Assign: %s: event %d has time %g, chain was fit to %g", p.Label, i, ev.Time, p.Times[i])
		}
	}
	ret := make([][]int, p.Nproc)
	for i, ev := range events {
		for m, prob := range p.Membership[i] {
			if prob >= threshold {
				for f := ev.Start; f < ev.Start+ev.Frames; f++ {
					ret[m] = append(ret[m], f)
				}
			}
		}
	}
	return ret, nil
}

func compressed(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".zst")
}

// Save writes the processed result as JSON, zstd-compressed if the file
// name ends in .zst.
func (p *Processed) Save(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("posterior: can't save %s: %w", p.Label, err)
	}
	defer f.Close()
	var w io.Writer = f
	var zw *zstd.Encoder
	if compressed(name) {
		zw, err = zstd.NewWriter(f)
		if err != nil {
			return fmt.Errorf("posterior: can't save %s: %w", p.Label, err)
		}
		w = zw
	}
	if err := json.NewEncoder(w).Encode(p); err != nil {
		return fmt.Errorf("posterior: can't save %s: %w", p.Label, err)
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			return fmt.Errorf("posterior: can't save %s: %w", p.Label, err)
		}
	}
	return nil
}

// Load reads a processed result written by Save.
func Load(name string) (*Processed, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("posterior: can't load: %w", err)
	}
	defer f.Close()
	var rd io.Reader = bufio.NewReader(f)
	if compressed(name) {
		zr, err := zstd.NewReader(rd)
		if err != nil {
			return nil, fmt.Errorf("posterior: can't load %s: %w", name, err)
		}
		defer zr.Close()
		rd = zr
	}
	p := new(Processed)
	if err := json.NewDecoder(rd).Decode(p); err != nil {
		return nil, fmt.Errorf("posterior: can't parse %s: %w", name, err)
	}
	if p.Nproc < 1 || len(p.Weights) != len(p.Rates) || len(p.Labels) != len(p.Weights) {
		return nil, fmt.Errorf("posterior: %s is not a consistent processed result", name)
	}
	return p, nil
}
