/*
 * gibbs.go, part of rta.
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

/*Package gibbs estimates the parameters of an exponential mixture for a
set of residence times with a collapsed Gibbs sampler.

The model is the nonparametric one of the BaSiC-RTA method: a mixture of
ncomp exponential survival kernels with a sparsity-inducing symmetric
Dirichlet prior (concentration 1/ncomp) over the mixture weights and a
Gamma(1, 3) prior over the rates. ncomp only bounds the number of
kinetic processes; the posterior concentrates the weight on as many
components as the data support and starves the rest, so the effective
number of processes is inferred rather than fixed.*/
package gibbs

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	rta "github.com/mdkinetics/rta"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/distuv"
)

//model hyperparameters of the BaSiC-RTA method: a flat 1/ncomp
//Dirichlet concentration and a Gamma(1,3) rate prior.
const (
	gammaShapePrior = 1.0
	gammaRatePrior  = 3.0
)

// Options holds the adjustable parameters of a sampler run.
type Options struct {
	ncomp  int
	niter  int
	thin   int
	burnin int
	seed   uint64
}

// DefaultOptions returns an Options with the standard parameters of the
// method: 15 maximum components, 50000 sweeps, every 100th sweep
// recorded, 10000 sweeps of burn-in.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.ncomp = 15
	ret.niter = 50000
	ret.thin = 100
	ret.burnin = 10000
	ret.seed = 1
	return ret
}

// Ncomp returns the maximum number of mixture components and sets it,
// if a valid value is given.
func (r *Options) Ncomp(ncomp ...int) int {
	ret := r.ncomp
	if len(ncomp) > 0 && ncomp[0] > 1 && ncomp[0] < 256 { //indicators are stored as uint8
		r.ncomp = ncomp[0]
	}
	return ret
}

// Niter returns the number of Gibbs sweeps and sets it, if a valid
// value is given.
func (r *Options) Niter(niter ...int) int {
	ret := r.niter
	if len(niter) > 0 && niter[0] > 0 {
		r.niter = niter[0]
	}
	return ret
}

// Thin returns the recording interval (every thin-th sweep is kept) and
// sets it, if a valid value is given.
func (r *Options) Thin(thin ...int) int {
	ret := r.thin
	if len(thin) > 0 && thin[0] > 0 {
		r.thin = thin[0]
	}
	return ret
}

// Burnin returns the number of initial sweeps the post-processing will
// discard, and sets it, if a valid value is given. It is carried in the
// result; the sampler itself records everything.
func (r *Options) Burnin(burnin ...int) int {
	ret := r.burnin
	if len(burnin) > 0 && burnin[0] >= 0 {
		r.burnin = burnin[0]
	}
	return ret
}

// Seed returns the RNG seed and sets it, if given.
func (r *Options) Seed(seed ...uint64) uint64 {
	ret := r.seed
	if len(seed) > 0 {
		r.seed = seed[0]
	}
	return ret
}

// Sampler is a Gibbs sampler for the exponential-mixture posterior of
// one residue's residence times.
type Sampler struct {
	times []float64
	label string
	resid int
	ts    float64
	o     *Options
	src   rand.Source
}

// New returns a sampler for the given event set. Censored events are
// excluded from the data. The timestep is taken from the set; if the
// set has none, the smallest spacing between distinct residence times
// is used instead.
func New(set *rta.EventSet, options ...*Options) (*Sampler, error) {
	var o *Options
	if len(options) > 0 {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	times := set.Uncensored().Times()
	if len(times) == 0 {
		return nil, fmt.Errorf("gibbs.New: residue %s has no usable binding events", set.Label)
	}
	ts := set.Timestep
	if ts <= 0 {
		var err error
		ts, err = rta.MinSpacing(times)
		if err != nil {
			return nil, fmt.Errorf("gibbs.New: residue %s: %w", set.Label, err)
		}
	}
	S := new(Sampler)
	S.times = times
	S.label = set.Label
	S.resid = set.Resid
	S.ts = ts
	S.o = o
	//one independent stream per residue
	S.src = rand.NewSource(o.seed + (uint64(set.Resid)+1)<<32)
	return S, nil
}

// Len returns the number of residence times the sampler works on.
func (S *Sampler) Len() int {
	return len(S.times)
}

// Run executes the Gibbs sweeps and returns the thinned chains. The
// context is checked between sweeps, so a cancellation loses at most
// one sweep of work.
func (S *Sampler) Run(ctx context.Context) (*Result, error) {
	o := S.o
	ndata := len(S.times)
	nsaved := o.niter / o.thin

	//initial values: rates log-spaced over the expected dynamic range,
	//weights geometrically decaying.
	weights := make([]float64, o.ncomp)
	rates := make([]float64, o.ncomp)
	for k := 0; k < o.ncomp; k++ {
		weights[k] = 9 * math.Pow(10, -float64(k+1))
		rates[o.ncomp-1-k] = 0.5 * math.Pow(10, float64(-o.ncomp+2+k))
	}
	rta.NormalizeWeights(weights)

	whypers := make([]float64, o.ncomp) //Dirichlet concentration
	for k := range whypers {
		whypers[k] = 1 / float64(o.ncomp)
	}

	res := &Result{
		ID:         uuid.NewString(),
		Label:      S.label,
		Resid:      S.resid,
		Ncomp:      o.ncomp,
		Niter:      o.niter,
		Thin:       o.thin,
		Burnin:     o.burnin,
		Timestep:   S.ts,
		Times:      S.times,
		MCWeights:  make([][]float64, 0, nsaved),
		MCRates:    make([][]float64, 0, nsaved),
		Indicators: make([][]uint8, 0, nsaved),
	}
	var err error
	res.T, res.S, err = rta.Survival(S.times, S.ts)
	if err != nil {
		return nil, fmt.Errorf("gibbs.Run: residue %s: %w", S.label, err)
	}

	s := make([]int, ndata)         //component indicator per data point
	z := make([]float64, o.ncomp)   //responsibilities of one data point
	ns := make([]float64, o.ncomp)   //points per component
	tsum := make([]float64, o.ncomp) //total time per component
	alpha := make([]float64, o.ncomp)
	cat := distuv.NewCategorical(weights, S.src)

	for sweep := 1; sweep <= o.niter; sweep++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		for k := range ns {
			ns[k], tsum[k] = 0, 0
		}
		for i, t := range S.times {
			total := 0.0
			for k := 0; k < o.ncomp; k++ {
				z[k] = weights[k] * rates[k] * math.Exp(-rates[k]*t)
				total += z[k]
			}
			if total == 0 {
				//all responsibilities underflowed; this point carries no
				//information this sweep, assign it uniformly.
				for k := range z {
					z[k] = 1
				}
			}
			cat.ReweightAll(z)
			s[i] = int(cat.Rand())
			ns[s[i]]++
			tsum[s[i]] += t
		}
		//posterior draws
		for k := 0; k < o.ncomp; k++ {
			alpha[k] = whypers[k] + ns[k]
		}
		distmv.NewDirichlet(alpha, S.src).Rand(weights)
		for k := 0; k < o.ncomp; k++ {
			g := distuv.Gamma{Alpha: gammaShapePrior + ns[k], Beta: gammaRatePrior + tsum[k], Src: S.src}
			rates[k] = g.Rand()
		}
		if sweep%o.thin == 0 {
			w := make([]float64, o.ncomp)
			r := make([]float64, o.ncomp)
			ind := make([]uint8, ndata)
			copy(w, weights)
			copy(r, rates)
			for i, v := range s {
				ind[i] = uint8(v)
			}
			res.MCWeights = append(res.MCWeights, w)
			res.MCRates = append(res.MCRates, r)
			res.Indicators = append(res.Indicators, ind)
		}
	}
	return res, nil
}
