// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package remap

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// coverage classes of target entities
const (
	Filled  = iota // fully covered by source control volumes
	Partial        // partly covered
	Empty          // not covered at all
)

// MismatchInfo holds the cached coverage analysis of one entity kind.
// It is computed once, right after intersection
type MismatchInfo struct {
	Kind       Kind
	Mismatched bool      // source and target domains disagree above tolerance
	Class      []int     // Filled/Partial/Empty per target entity
	Coverage   []float64 // covered fraction per target entity
	CovVol     []float64 // covered volume per target entity
	VolSrc     float64   // total source volume
	VolTrg     float64   // total target volume
	VolInt     float64   // total intersected volume
}

// detectMismatch classifies target entities by coverage and compares the
// intersected volume against both the source and the target totals
func detectMismatch(kind Kind, w [][]Weight, svols, tvols []float64, tols Tolerances) (mm *MismatchInfo) {
	nt := len(w)
	mm = &MismatchInfo{
		Kind:     kind,
		Class:    make([]int, nt),
		Coverage: make([]float64, nt),
		CovVol:   make([]float64, nt),
		VolSrc:   floats.Sum(svols),
		VolTrg:   floats.Sum(tvols),
	}
	for j := 0; j < nt; j++ {
		cv := coverage(w[j])
		mm.CovVol[j] = cv
		if tvols[j] > 0 {
			mm.Coverage[j] = cv / tvols[j]
		}
		switch {
		case cv <= tols.MinVol:
			mm.Class[j] = Empty
		case tvols[j]-cv > tols.ConsTol*tvols[j]:
			mm.Class[j] = Partial
		default:
			mm.Class[j] = Filled
		}
	}
	mm.VolInt = floats.Sum(mm.CovVol)
	dsrc := math.Abs(mm.VolInt-mm.VolSrc) / mm.VolSrc
	dtrg := math.Abs(mm.VolInt-mm.VolTrg) / mm.VolTrg
	mm.Mismatched = dsrc > tols.ConsTol || dtrg > tols.ConsTol
	return
}

// repair policy names
const (
	FixConstant    = "constant"               // partial: keep the covered average
	FixLocalCons   = "locally_conservative"   // partial: keep the received mass
	FixShiftedCons = "shifted_conservative"   // partial: keep average, shift globally
	FixExtrapolate = "extrapolate"            // empty: layered fill from neighbours
	FixLeave       = "leave"                  // empty: keep the declared default
)

// RepairOpts configures the repair of one remapped variable
type RepairOpts struct {
	Partial string  // policy for partly covered entities
	Empty   string  // policy for uncovered entities
	Lower   float64 // admissible lower bound
	Upper   float64 // admissible upper bound
	ConsTol float64 // relative conservation tolerance
	MaxIter int     // redistribution iteration budget
}

// DefRepairOpts returns the default repair options: shifted-conservative
// partials, extrapolated empties, unbounded values
func DefRepairOpts() RepairOpts {
	t := DefaultTols()
	return RepairOpts{
		Partial: FixShiftedCons,
		Empty:   FixExtrapolate,
		Lower:   math.Inf(-1),
		Upper:   math.Inf(1),
		ConsTol: t.ConsTol,
		MaxIter: t.MaxIter,
	}
}

// Repair corrects remapped values on mismatched source/target domains. It
// depends only on its arguments: vals is modified in place, everything else
// is read-only. Input:
//	vals     -- remapped target values, one per entity
//	mm       -- cached coverage analysis of the kind
//	tvols    -- target control-volume measures
//	neighs   -- topological neighbours of one target entity
//	srcTotal -- conserved integral on the source side
// Output:
//	converged -- whether the conservation error fell within opts.ConsTol
//	             inside the iteration budget; bounds hold either way
func Repair(vals []float64, mm *MismatchInfo, tvols []float64, neighs func(id int) []int, srcTotal float64, opts RepairOpts) (converged bool, err error) {
	switch opts.Partial {
	case FixConstant, FixLocalCons, FixShiftedCons:
	default:
		return false, cfgerr("cannot find partial-fixup policy named %q", opts.Partial)
	}
	switch opts.Empty {
	case FixExtrapolate, FixLeave:
	default:
		return false, cfgerr("cannot find empty-fixup policy named %q", opts.Empty)
	}
	n := len(vals)

	// partly covered entities
	if opts.Partial == FixLocalCons {
		for j := 0; j < n; j++ {
			if mm.Class[j] == Partial {
				vals[j] *= mm.Coverage[j]
			}
		}
	}

	// uncovered entities: layered fill from covered neighbours. Each layer
	// is computed from the previous one before being applied, so the result
	// does not depend on the visiting order
	if opts.Empty == FixExtrapolate {
		state := make([]int, n)
		copy(state, mm.Class)
		type fill struct {
			j int
			v float64
		}
		for {
			var fills []fill
			for j := 0; j < n; j++ {
				if state[j] != Empty {
					continue
				}
				var sum float64
				var cnt int
				for _, nb := range neighs(j) {
					if state[nb] != Empty {
						sum += vals[nb]
						cnt++
					}
				}
				if cnt > 0 {
					fills = append(fills, fill{j, sum / float64(cnt)})
				}
			}
			if len(fills) == 0 {
				break
			}
			for _, f := range fills {
				vals[f.j] = f.v
				state[f.j] = Filled
			}
		}
	}

	// entities excluded from global redistribution
	adj := make([]bool, n)
	for j := 0; j < n; j++ {
		adj[j] = true
		if mm.Class[j] == Empty && opts.Empty == FixLeave {
			adj[j] = false
		}
		if mm.Class[j] == Partial && opts.Partial == FixConstant {
			adj[j] = false
		}
	}

	// iterative redistribution of the conservation deficit, clamped to the
	// bounds on every pass; clamped entities stop absorbing and the residual
	// moves on to the others
	terms := make([]float64, n)
	for it := 0; it < opts.MaxIter; it++ {
		for j := 0; j < n; j++ {
			terms[j] = vals[j] * tvols[j]
		}
		diff := floats.Sum(terms) - srcTotal
		reldiff := math.Abs(diff)
		if math.Abs(srcTotal) > opts.ConsTol {
			reldiff /= math.Abs(srcTotal)
		}
		if reldiff <= opts.ConsTol {
			return true, nil
		}
		var adjVol float64
		for j := 0; j < n; j++ {
			if canAdjust(adj[j], vals[j], diff, opts) {
				adjVol += tvols[j]
			}
		}
		if adjVol == 0 {
			return false, nil
		}
		udiff := diff / adjVol
		for j := 0; j < n; j++ {
			if !canAdjust(adj[j], vals[j], diff, opts) {
				continue
			}
			nv := vals[j] - udiff
			if nv < opts.Lower {
				nv = opts.Lower
			}
			if nv > opts.Upper {
				nv = opts.Upper
			}
			vals[j] = nv
		}
	}

	// budget exhausted: check whether the last pass landed inside
	for j := 0; j < n; j++ {
		terms[j] = vals[j] * tvols[j]
	}
	diff := floats.Sum(terms) - srcTotal
	reldiff := math.Abs(diff)
	if math.Abs(srcTotal) > opts.ConsTol {
		reldiff /= math.Abs(srcTotal)
	}
	return reldiff <= opts.ConsTol, nil
}

// canAdjust tells whether entity value v can absorb part of the deficit
// without leaving the bounds
func canAdjust(adjustable bool, v, diff float64, opts RepairOpts) bool {
	if !adjustable {
		return false
	}
	if diff > 0 {
		return v > opts.Lower
	}
	return v < opts.Upper
}
