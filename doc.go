/*
 * doc.go, part of rta.
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

/*Package rta is the main package of the rta library, a toolkit for Bayesian
nonparametric analysis of ligand-protein residence times from molecular
dynamics simulations.



	**rta Capabilities**

    Reads/writes compressed ligand-residue distance time series and turns
	them into binding events (package contacts).

    Estimates, per protein residue, the parameters of an exponential
	mixture of kinetic processes with a Gibbs sampler, letting the
	posterior prune the number of processes (package gibbs).

    Identifies the surviving kinetic processes from the sampled chains and
	assigns each binding event, and each trajectory frame, a posterior
	process-membership probability (package posterior).

    Aggregates per-residue off-rates and residence times into
	protein-wide kinetic summaries and reports (package kinetics).

    Plots weight/rate posteriors, chain traces and per-residue slow
	residence times (package rtaplot).

    Validates the repository's CITATION.cff citation record (package cff).


The root package holds the vocabulary types shared by the rest of the
library: binding events, per-residue event sets, empirical survival
curves and the error interfaces every subpackage implements.

Times are always in ns and rates in 1/ns. The conversion from frame
counts happens at ingestion time, when the trajectory timestep is known.*/
package rta
