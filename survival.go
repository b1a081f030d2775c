/*
 * survival.go, part of rta.
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
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Survival builds the empirical survival curve S(t) for a set of
// residence times, on a regular time grid with spacing ts (the
// trajectory timestep, in ns). It returns the grid and the survival
// values, where S(t) is the fraction of events with residence time
// larger than t. S is nonincreasing and S[0] is 1 for a nonempty input.
// Grid points past the largest time are not included.
func Survival(times []float64, ts float64) ([]float64, []float64, error) {
	if len(times) == 0 {
		return nil, nil, fmt.Errorf("rta.Survival: no residence times given")
	}
	if ts <= 0 {
		return nil, nil, fmt.Errorf("rta.Survival: non-positive timestep %v", ts)
	}
	sorted := make([]float64, len(times))
	copy(sorted, times)
	sort.Float64s(sorted)
	if sorted[0] <= 0 {
		return nil, nil, fmt.Errorf("rta.Survival: non-positive residence time %v", sorted[0])
	}
	max := sorted[len(sorted)-1]
	npoints := int(max/ts) + 1
	t := make([]float64, 0, npoints)
	s := make([]float64, 0, npoints)
	n := float64(len(sorted))
	for i := 0; i < npoints; i++ {
		ti := float64(i) * ts
		//number of times <= ti. SearchFloat64s gives the first index with
		//sorted[j] >= ti, so we advance over the ties.
		j := sort.SearchFloat64s(sorted, ti)
		for j < len(sorted) && sorted[j] == ti {
			j++
		}
		t = append(t, ti)
		s = append(s, float64(len(sorted)-j)/n)
	}
	return t, s, nil
}

// MinSpacing returns the smallest nonzero gap between consecutive sorted
// residence times. The Gibbs sampler uses it as the effective timestep
// when no metadata is available. It returns an error if all times are
// equal.
func MinSpacing(times []float64) (float64, error) {
	if len(times) < 2 {
		return 0, fmt.Errorf("rta.MinSpacing: need at least 2 times, got %d", len(times))
	}
	sorted := make([]float64, len(times))
	copy(sorted, times)
	sort.Float64s(sorted)
	for i := 1; i < len(sorted); i++ {
		if d := sorted[i] - sorted[i-1]; d > 0 {
			return d, nil
		}
	}
	return 0, fmt.Errorf("rta.MinSpacing: all %d times are equal", len(times))
}

// MeanResidence returns the mean and standard deviation of the given
// residence times. Only a convenience wrapper over gonum.
func MeanResidence(times []float64) (mean, sd float64) {
	mean = stat.Mean(times, nil)
	sd = stat.StdDev(times, nil)
	return mean, sd
}

// NormalizeWeights scales w so it sums to 1, in place. It panics if the
// sum is zero, which upstream code must rule out.
func NormalizeWeights(w []float64) {
	total := floats.Sum(w)
	if total == 0 {
		panic("rta.NormalizeWeights: zero total weight")
	}
	floats.Scale(1/total, w)
}
