// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package remap

// Interpolator fills target values from source values and intersection
// weights. Targets with an empty weight list keep their current value.
// Every target slot is written by exactly one goroutine
type Interpolator interface {
	Interpolate(src Mesher, kind Kind, svals []float64, w [][]Weight, grads [][]float64, tvals []float64) error
}

// iallocators maps reconstruction orders to interpolator allocators
var iallocators = make(map[int]func() Interpolator)

func init() {
	iallocators[1] = func() Interpolator { return &Interp1{} }
	iallocators[2] = func() Interpolator { return &Interp2{} }
}

// NewInterpolator returns an interpolator by reconstruction order
func NewInterpolator(order int) (Interpolator, error) {
	alloc, ok := iallocators[order]
	if !ok {
		return nil, cfgerr("cannot find interpolator of order %d", order)
	}
	return alloc(), nil
}

// Interp1 is the first-order (piecewise constant) interpolator: each target
// gets the overlap-weighted average of the source values covering it
type Interp1 struct{}

// Interpolate implements the Interpolator interface
func (o *Interp1) Interpolate(src Mesher, kind Kind, svals []float64, w [][]Weight, grads [][]float64, tvals []float64) error {
	return ParallelFor(len(w), func(j int) error {
		ws := w[j]
		if len(ws) == 0 {
			return nil
		}
		var num, den float64
		for _, wt := range ws {
			num += svals[wt.ID] * wt.M[0]
			den += wt.M[0]
		}
		if den > 0 {
			tvals[j] = num / den
		}
		return nil
	})
}

// Interp2 is the second-order (piecewise linear) interpolator: source
// values are extended to the overlap centroid using the limited gradient
// before averaging. Requires gradients for every source entity
type Interp2 struct{}

// Interpolate implements the Interpolator interface
func (o *Interp2) Interpolate(src Mesher, kind Kind, svals []float64, w [][]Weight, grads [][]float64, tvals []float64) error {
	if grads == nil {
		return cfgerr("second-order interpolation requires gradients")
	}
	return ParallelFor(len(w), func(j int) error {
		ws := w[j]
		if len(ws) == 0 {
			return nil
		}
		var num, den float64
		for _, wt := range ws {
			xc, yc := wt.Xc()
			c := src.Centroid(kind, wt.ID)
			g := grads[wt.ID]
			v := svals[wt.ID] + g[0]*(xc-c.X) + g[1]*(yc-c.Y)
			num += v * wt.M[0]
			den += wt.M[0]
		}
		if den > 0 {
			tvals[j] = num / den
		}
		return nil
	})
}
