// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// CoordSys selects the coordinate system of the plane
type CoordSys int

const (
	// Cartesian treats (X,Y) as plain planar coordinates
	Cartesian CoordSys = iota

	// Axisymmetric treats (X,Y) as (r,z); moments become volumes of
	// revolution about the z axis, including the 2*pi factor
	Axisymmetric
)

// GeometryError indicates that an intersection cannot be computed exactly;
// here: no valid interior point exists to decompose a non-convex region
type GeometryError struct {
	Msg string
}

// Error returns the message
func (o *GeometryError) Error() string {
	return o.Msg
}

// IntersectMoments computes the moments of the overlap between the src and
// trg loops. Input:
//	src     -- source loop, any simple polygon (or empty)
//	trg     -- target loop; non-convex loops are fan-decomposed
//	order   -- highest moment order: 1 or 2 (Axisymmetric: 1 only)
//	csys    -- coordinate system
//	minDist -- vertices closer than this merge during clipping
//	minVol  -- areas below this count as zero
// Output:
//	m -- [m0, mx, my] or [m0, mx, my, mxx, mxy, myy]; under Axisymmetric
//	     the three entries are revolved volume moments
// Degenerate input loops produce zero moments and no error. A non-convex
// target for which no valid decomposition point exists (even after falling
// back to the feasible subset) causes a GeometryError
func IntersectMoments(src, trg Polygon, order int, csys CoordSys, minDist, minVol float64) (m []float64, err error) {
	if order != 1 && order != 2 {
		return nil, chk.Err("moment order must be 1 or 2. order=%d is invalid", order)
	}
	raw := order
	if csys == Axisymmetric {
		if order != 1 {
			return nil, chk.Err("axisymmetric intersections support first-order moments only. order=%d is invalid", order)
		}
		raw = 2
	}
	nm := 3
	if raw == 2 {
		nm = 6
	}
	m = make([]float64, nm)
	if len(src) < 3 || len(trg) < 3 {
		return shift(m, csys), nil
	}

	// convex target: single clip-and-reduce pass
	if trg.IsConvex(minVol) {
		piece := Clip(src, trg.Planes(), minDist)
		if len(piece) > 2 {
			add(m, piece.Moments(raw))
		}
		return shift(m, csys), nil
	}

	// non-convex target: fan about a validated interior point
	c, err := fanCenter(trg, minDist, minVol)
	if err != nil {
		return nil, err
	}
	n := len(trg)
	for i := 0; i < n; i++ {
		tri := Polygon{c, trg[i], trg[(i+1)%n]}
		if math.Abs(tri.Area()) < minVol {
			continue
		}
		piece := Clip(src, tri.Planes(), minDist)
		if len(piece) > 2 {
			add(m, piece.Moments(raw))
		}
	}
	return shift(m, csys), nil
}

// fanCenter finds a point of trg that sees every edge counter-clockwise.
// First candidate: the area-weighted centroid of the fan triangulation
// rooted at vertex 0. If some edge disagrees, the centroid of the feasible
// subset obtained by clipping trg with its own planes is tried. Failure of
// both candidates is a GeometryError
func fanCenter(trg Polygon, minDist, minVol float64) (c Point, err error) {
	n := len(trg)
	var wsum float64
	for i := 1; i < n-1; i++ {
		a := Orient(trg[0], trg[i], trg[i+1])
		c.X += a * (trg[0].X + trg[i].X + trg[i+1].X) / 3.0
		c.Y += a * (trg[0].Y + trg[i].Y + trg[i+1].Y) / 3.0
		wsum += a
	}
	if wsum != 0 {
		c.X /= wsum
		c.Y /= wsum
	}
	if seesAllEdges(c, trg, minVol) {
		return
	}
	feas := Clip(trg, trg.Planes(), minDist)
	cc, a := feas.Centroid()
	if math.Abs(a) < minVol || !seesAllEdges(cc, trg, minVol) {
		return c, &GeometryError{io.Sf("cannot find interior point to decompose non-convex polygon with %d vertices", n)}
	}
	return cc, nil
}

// seesAllEdges tells whether the fan (c, v[i], v[i+1]) is counter-clockwise
// for every edge of the loop
func seesAllEdges(c Point, trg Polygon, tol float64) bool {
	n := len(trg)
	for i := 0; i < n; i++ {
		if Orient(c, trg[i], trg[(i+1)%n]) < -tol {
			return false
		}
	}
	return true
}

// add accumulates moments b into a
func add(a, b []float64) {
	for i := range a {
		a[i] += b[i]
	}
}

// shift converts raw planar moments to the output layout. Under Cartesian
// it is the identity; under Axisymmetric the second-order raw moments about
// (r,z) collapse into first-order revolved volume moments:
//	m0' = 2*pi*mr   m1r' = 2*pi*mrr   m1z' = 2*pi*mrz
func shift(m []float64, csys CoordSys) []float64 {
	if csys != Axisymmetric {
		return m
	}
	k := 2.0 * math.Pi
	return []float64{k * m[1], k * m[3], k * m[4]}
}

// Measure returns the size of the region bounded by the loop: its area, or
// its revolved volume under Axisymmetric
func Measure(p Polygon, csys CoordSys) float64 {
	if csys == Axisymmetric {
		return 2.0 * math.Pi * p.Moments(2)[1]
	}
	return p.Moments(1)[0]
}
