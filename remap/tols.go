// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package remap

// Tolerances holds the numerical tolerances threaded through the engine.
// Callers pass the struct explicitly; there is no global knob
type Tolerances struct {
	MinDist float64 // vertices closer than this merge during clipping
	MinVol  float64 // intersection volumes below this are discarded
	ConsTol float64 // relative conservation tolerance for mismatch/repair
	MaxIter int     // repair iteration budget
}

// DefaultTols returns the documented default tolerances
func DefaultTols() Tolerances {
	return Tolerances{
		MinDist: 1e-12,
		MinVol:  1e-14,
		ConsTol: 2.2e-14,
		MaxIter: 5,
	}
}
