// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

import "math"

// Planes returns the oriented half-planes bounding the loop, one per edge,
// with normals pointing inside. Zero-length edges are skipped
func (o Polygon) Planes() (ps []Plane) {
	n := len(o)
	ps = make([]Plane, 0, n)
	for i := 0; i < n; i++ {
		a, b := o[i], o[(i+1)%n]
		nx := a.Y - b.Y // left normal of a->b for CCW loops
		ny := b.X - a.X
		l := math.Sqrt(nx*nx + ny*ny)
		if l == 0 {
			continue
		}
		nx /= l
		ny /= l
		ps = append(ps, Plane{N: Point{nx, ny}, D: -(nx*a.X + ny*a.Y)})
	}
	return
}

// ClipPlane cuts the loop by one half-plane, keeping the inside part.
// Vertices closer than tol to each other in the output are merged.
// The result may be empty
func ClipPlane(p Polygon, pl Plane, tol float64) (r Polygon) {
	n := len(p)
	if n == 0 {
		return nil
	}
	r = make(Polygon, 0, n+1)
	d := make([]float64, n)
	for i, v := range p {
		d[i] = pl.Dist(v)
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a, b := p[i], p[j]
		if d[i] >= 0 {
			r = append(r, a)
		}
		if (d[i] >= 0) != (d[j] >= 0) {
			t := d[i] / (d[i] - d[j])
			r = append(r, Point{a.X + t*(b.X-a.X), a.Y + t*(b.Y-a.Y)})
		}
	}
	return dedup(r, tol)
}

// Clip cuts the loop by all half-planes in sequence. An empty result
// means no region survives
func Clip(p Polygon, planes []Plane, tol float64) Polygon {
	for _, pl := range planes {
		p = ClipPlane(p, pl, tol)
		if len(p) < 3 {
			return nil
		}
	}
	return p
}

// dedup removes consecutive vertices closer than tol, including the
// closing pair. Loops reduced below 3 vertices become nil
func dedup(p Polygon, tol float64) (r Polygon) {
	n := len(p)
	if n == 0 {
		return nil
	}
	r = make(Polygon, 0, n)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		dx := p[j].X - p[i].X
		dy := p[j].Y - p[i].Y
		if math.Sqrt(dx*dx+dy*dy) > tol {
			r = append(r, p[j])
		}
	}
	if len(r) < 3 {
		return nil
	}
	return
}
