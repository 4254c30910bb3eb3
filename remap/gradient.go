// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package remap

import "gonum.org/v1/gonum/mat"

// gradients computes the limited least-squares gradient of vals at every
// source entity of one kind. Entities with degenerate stencils (fewer than
// two neighbours, or a rank-deficient fit) get a zero gradient
func gradients(msh Mesher, kind Kind, vals []float64, limiter, bndLimiter string) (g [][]float64, err error) {
	if err = checkLimiters(limiter, bndLimiter); err != nil {
		return
	}
	n := msh.NumEnts(kind)
	g = make([][]float64, n)
	err = ParallelFor(n, func(i int) error {
		g[i] = lsqGradient(msh, kind, i, vals)
		if limiter == LimBJ {
			scale(g[i], bjFactor(msh, kind, i, vals, g[i]))
		}
		if msh.OnBoundary(kind, i) {
			switch bndLimiter {
			case BndZeroGrad:
				g[i][0], g[i][1] = 0, 0
			case LimBJ:
				scale(g[i], bjFactor(msh, kind, i, vals, g[i]))
			}
		}
		return nil
	})
	return
}

// lsqGradient fits a plane through the neighbourhood values of entity i
// and returns its slope. The fit is solved by QR factorization of the
// centroid-offset matrix
func lsqGradient(msh Mesher, kind Kind, i int, vals []float64) []float64 {
	nb := msh.Neighs(kind, i)
	if len(nb) < 2 {
		return []float64{0, 0}
	}
	c := msh.Centroid(kind, i)
	A := mat.NewDense(len(nb), 2, nil)
	b := mat.NewDense(len(nb), 1, nil)
	for r, s := range nb {
		cs := msh.Centroid(kind, s)
		A.Set(r, 0, cs.X-c.X)
		A.Set(r, 1, cs.Y-c.Y)
		b.Set(r, 0, vals[s]-vals[i])
	}
	var qr mat.QR
	qr.Factorize(A)
	x := mat.NewDense(2, 1, nil)
	if err := qr.SolveTo(x, false, b); err != nil {
		return []float64{0, 0}
	}
	return []float64{x.At(0, 0), x.At(1, 0)}
}

// scale multiplies a gradient in place
func scale(g []float64, phi float64) {
	g[0] *= phi
	g[1] *= phi
}
