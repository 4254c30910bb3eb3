// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package remap

// Weight holds the contribution of one source entity to one target entity:
// the moments of their control-volume overlap
type Weight struct {
	ID int       // source entity id
	M  []float64 // moments [m0, m1x, m1y] of the overlap
}

// Xc returns the centroid of the overlap region
func (o Weight) Xc() (x, y float64) {
	if o.M[0] != 0 {
		x = o.M[1] / o.M[0]
		y = o.M[2] / o.M[0]
	}
	return
}

// coverage returns the summed overlap volume of one target's weights
func coverage(ws []Weight) (c float64) {
	for _, w := range ws {
		c += w.M[0]
	}
	return
}
