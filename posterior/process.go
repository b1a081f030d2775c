/*Package posterior identifies the kinetic processes present in a raw
Gibbs chain and assigns binding events, and trajectory frames, to them.

A sampler run over an ncomp-component mixture leaves most components
starved; the processing here discards the burn-in, keeps only the
(weight, rate) samples above a weight cutoff, takes the number of
surviving processes as the mode over samples of the per-sample count,
and groups the surviving samples into processes by k-means in
(log weight, log rate) space. Processes are always ordered from slowest
to fastest.*/
package posterior

import (
	"fmt"
	"math"
	"sort"

	"github.com/mdkinetics/rta/gibbs"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Options holds the adjustable parameters of the chain processing.
type Options struct {
	cutoff float64
}

// DefaultOptions returns an Options with the default parameters: a
// 1e-4 weight cutoff for a component sample to count as occupied.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.cutoff = 1e-4
	return ret
}

// Cutoff returns the weight cutoff and sets it, if a valid value is
// given.
func (r *Options) Cutoff(cutoff ...float64) float64 {
	ret := r.cutoff
	if len(cutoff) > 0 && cutoff[0] > 0 {
		r.cutoff = cutoff[0]
	}
	return ret
}

// Processed holds the identified kinetic processes of one residue.
type Processed struct {
	ID       string  `json:"id"` //run ID of the source chain
	Label    string  `json:"label"`
	Resid    int     `json:"resid"`
	Nproc    int     `json:"nproc"`
	Timestep float64 `json:"timestep"`

	//retained posterior samples, flattened over sweeps, and the
	//process each belongs to
	Weights    []float64 `json:"weights"`
	Rates      []float64 `json:"rates"`
	Labels     []int     `json:"labels"`
	Iterations []int     `json:"iterations"` //sweep each sample was recorded at

	//posterior process-membership probabilities, one row per binding
	//event of the residue, one column per process
	Membership [][]float64 `json:"membership"`

	//the events' residence times, carried over for reporting
	Times []float64 `json:"times"`
}

// Process turns a raw chain into identified kinetic processes. A chain
// with fewer distinct retained samples than surviving components falls
// back to a single process. An empty chain is an error.
func Process(r *gibbs.Result, options ...*Options) (*Processed, error) {
	var o *Options
	if len(options) > 0 {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	if err := r.Check(); err != nil {
		return nil, err
	}
	start := r.Burnin / r.Thin
	if start >= r.Saved() {
		return nil, fmt.Errorf("posterior.Process: %s: burn-in (%d sweeps) covers the whole chain (%d saved)", r.Label, r.Burnin, r.Saved())
	}

	//retained (sweep, component) samples with weight above the cutoff
	var rows, comps []int
	lens := make([]float64, 0, r.Saved()-start)
	for j := start; j < r.Saved(); j++ {
		n := 0
		for k, w := range r.MCWeights[j] {
			if w > o.cutoff {
				rows = append(rows, j)
				comps = append(comps, k)
				n++
			}
		}
		lens = append(lens, float64(n))
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("posterior.Process: %s: no samples above the weight cutoff %g", r.Label, o.cutoff)
	}

	//the number of processes is the most common per-sweep count of
	//occupied components
	sort.Float64s(lens)
	m, _ := stat.Mode(lens, nil)
	nproc := int(m)
	if nproc < 1 {
		nproc = 1
	}
	if nproc > len(rows) {
		nproc = 1
	}

	p := &Processed{
		ID:         r.ID,
		Label:      r.Label,
		Resid:      r.Resid,
		Nproc:      nproc,
		Timestep:   r.Timestep,
		Weights:    make([]float64, len(rows)),
		Rates:      make([]float64, len(rows)),
		Iterations: make([]int, len(rows)),
		Times:      r.Times,
	}
	for i := range rows {
		p.Weights[i] = r.MCWeights[rows[i]][comps[i]]
		p.Rates[i] = r.MCRates[rows[i]][comps[i]]
		p.Iterations[i] = (rows[i] + 1) * r.Thin
	}

	labels, err := clusterSamples(p.Weights, p.Rates, nproc)
	if err != nil {
		return nil, fmt.Errorf("posterior.Process: %s: %w", r.Label, err)
	}
	p.Labels = canonicalize(labels, p.Rates, nproc)
	p.Membership = membership(r, rows, comps, p.Labels, nproc)
	return p, nil
}

//clusterSamples groups the retained samples in (log w, log rate) space.
func clusterSamples(weights, rates []float64, nproc int) ([]int, error) {
	labels := make([]int, len(weights))
	if nproc == 1 {
		return labels, nil
	}
	obs := make(clusters.Observations, len(weights))
	for i := range weights {
		obs[i] = clusters.Coordinates{math.Log(weights[i]), math.Log(rates[i])}
	}
	km := kmeans.New()
	cls, err := km.Partition(obs, nproc)
	if err != nil {
		return nil, err
	}
	for i, v := range obs {
		labels[i] = cls.Nearest(v)
	}
	return labels, nil
}

//canonicalize renumbers cluster labels so process 0 is the slowest
//(smallest mean rate). k-means label identity is otherwise run to run
//noise.
func canonicalize(labels []int, rates []float64, nproc int) []int {
	sums := make([]float64, nproc)
	counts := make([]float64, nproc)
	for i, l := range labels {
		sums[l] += rates[i]
		counts[l]++
	}
	order := make([]int, nproc)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		ma := math.Inf(1)
		mb := math.Inf(1)
		if counts[order[a]] > 0 {
			ma = sums[order[a]] / counts[order[a]]
		}
		if counts[order[b]] > 0 {
			mb = sums[order[b]] / counts[order[b]]
		}
		return ma < mb
	})
	remap := make([]int, nproc)
	for newl, oldl := range order {
		remap[oldl] = newl
	}
	for i, l := range labels {
		labels[i] = remap[l]
	}
	return labels
}

//membership accumulates, for every binding event, one vote per retained
//sample whose indicator put the event in that sample's component, and
//row-normalizes the votes into probabilities. Events never selected by
//any retained sample keep a zero row.
func membership(r *gibbs.Result, rows, comps, labels []int, nproc int) [][]float64 {
	ndata := len(r.Times)
	votes := mat.NewDense(ndata, nproc, nil)
	for e := range rows {
		ind := r.Indicators[rows[e]]
		k := uint8(comps[e])
		for i := 0; i < ndata; i++ {
			if ind[i] == k {
				votes.Set(i, labels[e], votes.At(i, labels[e])+1)
			}
		}
	}
	ret := make([][]float64, ndata)
	for i := 0; i < ndata; i++ {
		row := make([]float64, nproc)
		mat.Row(row, i, votes)
		total := 0.0
		for _, v := range row {
			total += v
		}
		if total > 0 {
			for j := range row {
				row[j] /= total
			}
		}
		ret[i] = row
	}
	return ret
}
