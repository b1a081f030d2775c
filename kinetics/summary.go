/*Package kinetics aggregates per-residue processed chains into
protein-wide kinetic summaries: posterior off-rate statistics per
process, residence-time (tau = 1/rate) credible intervals, and the slow
residence time per residue that the method is usually read off by.*/
package kinetics

import (
	"fmt"
	"sort"

	"github.com/mdkinetics/rta/posterior"
	"gonum.org/v1/gonum/stat"
)

// ProcessStat is the posterior summary of one kinetic process of one
// residue.
type ProcessStat struct {
	Process    int     `json:"process"` //0 is the slowest
	Nsamples   int     `json:"nsamples"`
	WeightMean float64 `json:"weight_mean"`
	WeightSD   float64 `json:"weight_sd"`
	RateMean   float64 `json:"rate_mean"` //1/ns
	RateSD     float64 `json:"rate_sd"`
	Tau        float64 `json:"tau"`      //median of 1/rate, ns
	TauLow     float64 `json:"tau_low"`  //2.5% quantile
	TauHigh    float64 `json:"tau_high"` //97.5% quantile
}

// Summary is the kinetic summary of one residue.
type Summary struct {
	Label     string        `json:"label"`
	Resid     int           `json:"resid"`
	Nproc     int           `json:"nproc"`
	Nevents   int           `json:"nevents"`
	Processes []ProcessStat `json:"processes"`

	//the slowest process, pulled out for convenience
	TauSlow     float64 `json:"tau_slow"`
	TauSlowLow  float64 `json:"tau_slow_low"`
	TauSlowHigh float64 `json:"tau_slow_high"`
}

// Summarize computes the kinetic summary of one processed chain.
func Summarize(p *posterior.Processed) (*Summary, error) {
	if p.Nproc < 1 {
		return nil, fmt.Errorf("kinetics.Summarize: %s: no processes", p.Label)
	}
	s := &Summary{
		Label:     p.Label,
		Resid:     p.Resid,
		Nproc:     p.Nproc,
		Nevents:   len(p.Times),
		Processes: make([]ProcessStat, 0, p.Nproc),
	}
	for m := 0; m < p.Nproc; m++ {
		weights, rates := p.ProcessSamples(m)
		if len(rates) == 0 {
			//a cluster can end up empty when k-means is fed nearly
			//degenerate samples; it carries no statistics.
			s.Processes = append(s.Processes, ProcessStat{Process: m})
			continue
		}
		taus := make([]float64, len(rates))
		for i, r := range rates {
			taus[i] = 1 / r
		}
		sort.Float64s(taus)
		ps := ProcessStat{
			Process:    m,
			Nsamples:   len(rates),
			WeightMean: stat.Mean(weights, nil),
			WeightSD:   stat.StdDev(weights, nil),
			RateMean:   stat.Mean(rates, nil),
			RateSD:     stat.StdDev(rates, nil),
			Tau:        stat.Quantile(0.5, stat.Empirical, taus, nil),
			TauLow:     stat.Quantile(0.025, stat.Empirical, taus, nil),
			TauHigh:    stat.Quantile(0.975, stat.Empirical, taus, nil),
		}
		if len(rates) == 1 {
			ps.WeightSD, ps.RateSD = 0, 0
		}
		s.Processes = append(s.Processes, ps)
	}
	slow := s.Processes[0]
	s.TauSlow = slow.Tau
	s.TauSlowLow = slow.TauLow
	s.TauSlowHigh = slow.TauHigh
	return s, nil
}

// OffRates returns the posterior off-rate samples of one process, for
// histogramming or export. Process 0 is the slowest.
func OffRates(p *posterior.Processed, proc int) []float64 {
	_, rates := p.ProcessSamples(proc)
	return rates
}
