package gibbs

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Result holds the thinned chains of one sampler run, plus everything
// the post-processing stages need to interpret them. Results are stored
// as JSON, optionally zstd-compressed.
type Result struct {
	ID       string  `json:"id"` //unique run ID
	Label    string  `json:"label"`
	Resid    int     `json:"resid"`
	Ncomp    int     `json:"ncomp"`
	Niter    int     `json:"niter"`
	Thin     int     `json:"thin"`
	Burnin   int     `json:"burnin"`
	Timestep float64 `json:"timestep"`

	Times []float64 `json:"times"` //the residence times the chains were fit to, ns

	//empirical survival curve of Times, for diagnostics
	T []float64 `json:"t"`
	S []float64 `json:"s"`

	//one row per recorded sweep
	MCWeights  [][]float64 `json:"mcweights"`
	MCRates    [][]float64 `json:"mcrates"`
	Indicators [][]uint8   `json:"indicators"` //component of each data point
}

// Saved returns the number of recorded sweeps.
func (r *Result) Saved() int {
	return len(r.MCWeights)
}

// Check verifies the internal consistency of a loaded result.
func (r *Result) Check() error {
	if r.Ncomp < 2 || r.Thin < 1 || r.Niter < 1 {
		return fmt.Errorf("gibbs: result %s (%s): bad dimensions ncomp=%d niter=%d thin=%d", r.Label, r.ID, r.Ncomp, r.Niter, r.Thin)
	}
	if len(r.MCRates) != len(r.MCWeights) || len(r.Indicators) != len(r.MCWeights) {
		return fmt.Errorf("gibbs: result %s (%s): chain lengths disagree", r.Label, r.ID)
	}
	for i, w := range r.MCWeights {
		if len(w) != r.Ncomp || len(r.MCRates[i]) != r.Ncomp {
			return fmt.Errorf("gibbs: result %s (%s): sample %d has wrong width", r.Label, r.ID, i)
		}
		if len(r.Indicators[i]) != len(r.Times) {
			return fmt.Errorf("gibbs: result %s (%s): indicator %d has wrong length", r.Label, r.ID, i)
		}
	}
	return nil
}

//results are compressed only with zstd; anything without the .zst
//suffix is plain JSON.
func compressed(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".zst")
}

// Save writes the result as JSON, zstd-compressed if the file name ends
// in .zst.
func (r *Result) Save(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("gibbs: can't save result %s: %w", r.Label, err)
	}
	defer f.Close()
	var w io.Writer = f
	var zw *zstd.Encoder
	if compressed(name) {
		zw, err = zstd.NewWriter(f)
		if err != nil {
			return fmt.Errorf("gibbs: can't save result %s: %w", r.Label, err)
		}
		w = zw
	}
	if err := json.NewEncoder(w).Encode(r); err != nil {
		return fmt.Errorf("gibbs: can't save result %s: %w", r.Label, err)
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			return fmt.Errorf("gibbs: can't save result %s: %w", r.Label, err)
		}
	}
	return nil
}

// Load reads a result written by Save and checks its consistency.
func Load(name string) (*Result, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("gibbs: can't load result: %w", err)
	}
	defer f.Close()
	var rd io.Reader = bufio.NewReader(f)
	if compressed(name) {
		zr, err := zstd.NewReader(rd)
		if err != nil {
			return nil, fmt.Errorf("gibbs: can't load result %s: %w", name, err)
		}
		defer zr.Close()
		rd = zr
	}
	r := new(Result)
	if err := json.NewDecoder(rd).Decode(r); err != nil {
		return nil, fmt.Errorf("gibbs: can't parse result %s: %w", name, err)
	}
	if err := r.Check(); err != nil {
		return nil, err
	}
	return r, nil
}
