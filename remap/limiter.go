// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package remap

import "math"

// limiter names. The boundary limiter applies only to entities touching
// the mesh boundary, where the neighbourhood is one-sided
const (
	LimNone     = "none"
	LimBJ       = "barth_jespersen"
	BndZeroGrad = "zero_gradient"
)

// checkLimiters validates limiter names
func checkLimiters(limiter, bndLimiter string) error {
	switch limiter {
	case LimNone, LimBJ:
	default:
		return cfgerr("cannot find limiter named %q", limiter)
	}
	switch bndLimiter {
	case LimNone, LimBJ, BndZeroGrad:
	default:
		return cfgerr("cannot find boundary limiter named %q", bndLimiter)
	}
	return nil
}

// bjFactor returns the Barth-Jespersen coefficient in [0,1] for entity i:
// the largest scaling of the gradient such that the reconstructed value at
// every control-volume vertex stays within the neighbourhood min/max.
// Checking the vertices bounds every interior point of any intersection
// piece, since the reconstruction is linear
func bjFactor(msh Mesher, kind Kind, i int, vals []float64, g []float64) float64 {
	vmin, vmax := vals[i], vals[i]
	for _, s := range msh.Neighs(kind, i) {
		vmin = math.Min(vmin, vals[s])
		vmax = math.Max(vmax, vals[s])
	}
	c := msh.Centroid(kind, i)
	phi := 1.0
	for _, p := range msh.CtrlVol(kind, i) {
		dv := g[0]*(p.X-c.X) + g[1]*(p.Y-c.Y)
		if dv > 0 {
			phi = math.Min(phi, (vmax-vals[i])/dv)
		} else if dv < 0 {
			phi = math.Min(phi, (vmin-vals[i])/dv)
		}
	}
	return math.Max(phi, 0)
}
