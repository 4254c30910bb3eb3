// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package geo implements 2D polygon primitives for exact remap intersections:
// oriented loops, half-plane clipping and area moments up to second order
package geo

import "math"

// Point holds planar coordinates. In axisymmetric problems X is the radial
// and Y the axial coordinate
type Point struct {
	X, Y float64
}

// BBox holds an axis-aligned bounding box
type BBox struct {
	Lo, Hi Point
}

// Plane represents an oriented half-plane. A point x is inside when
// N.x + D >= 0. N is a unit vector
type Plane struct {
	N Point   // unit normal pointing inside
	D float64 // signed offset
}

// Polygon is a loop of vertices. All routines assume counter-clockwise
// ordering; an empty or degenerate loop is a valid "no region" value
type Polygon []Point

// Dist returns the signed distance from x to the plane
func (o Plane) Dist(x Point) float64 {
	return o.N.X*x.X + o.N.Y*x.Y + o.D
}

// Orient returns the signed area of triangle (a,b,c); positive for
// counter-clockwise ordering
func Orient(a, b, c Point) float64 {
	return ((b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)) / 2.0
}

// BBox returns the bounding box of the loop. An empty loop gives an
// inverted box that intersects nothing
func (o Polygon) BBox() (b BBox) {
	b.Lo = Point{math.Inf(1), math.Inf(1)}
	b.Hi = Point{math.Inf(-1), math.Inf(-1)}
	for _, v := range o {
		b.Lo.X = math.Min(b.Lo.X, v.X)
		b.Lo.Y = math.Min(b.Lo.Y, v.Y)
		b.Hi.X = math.Max(b.Hi.X, v.X)
		b.Hi.Y = math.Max(b.Hi.Y, v.Y)
	}
	return
}

// Overlap tells whether two boxes share any point
func (o BBox) Overlap(b BBox) bool {
	if o.Hi.X < b.Lo.X || b.Hi.X < o.Lo.X {
		return false
	}
	if o.Hi.Y < b.Lo.Y || b.Hi.Y < o.Lo.Y {
		return false
	}
	return true
}

// Area returns the signed area of the loop
func (o Polygon) Area() (a float64) {
	n := len(o)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a += o[i].X*o[j].Y - o[j].X*o[i].Y
	}
	return a / 2.0
}

// IsConvex tells whether every corner of the loop turns left, within tol.
// Collinear corners count as convex
func (o Polygon) IsConvex(tol float64) bool {
	n := len(o)
	if n < 4 {
		return true
	}
	for i := 0; i < n; i++ {
		if Orient(o[i], o[(i+1)%n], o[(i+2)%n]) < -tol {
			return false
		}
	}
	return true
}

// Moments computes the area moments of the loop:
//	order 1 => [m0, mx, my]
//	order 2 => [m0, mx, my, mxx, mxy, myy]
// where m0 is the area, mx = int{x}, mxx = int{x*x} and so on. The sign
// follows the loop orientation
func (o Polygon) Moments(order int) (m []float64) {
	if order == 2 {
		m = make([]float64, 6)
	} else {
		m = make([]float64, 3)
	}
	n := len(o)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		xi, yi := o[i].X, o[i].Y
		xj, yj := o[j].X, o[j].Y
		c := xi*yj - xj*yi
		m[0] += c / 2.0
		m[1] += c * (xi + xj) / 6.0
		m[2] += c * (yi + yj) / 6.0
		if order == 2 {
			m[3] += c * (xi*xi + xi*xj + xj*xj) / 12.0
			m[4] += c * (2.0*xi*yi + xi*yj + xj*yi + 2.0*xj*yj) / 24.0
			m[5] += c * (yi*yi + yi*yj + yj*yj) / 12.0
		}
	}
	return
}

// Centroid returns the area and the first-moment centroid of the loop.
// The centroid is meaningless when the area vanishes; the caller must
// check a against its own tolerance
func (o Polygon) Centroid() (c Point, a float64) {
	m := o.Moments(1)
	a = m[0]
	if a != 0 {
		c.X = m[1] / a
		c.Y = m[2] / a
	}
	return
}
