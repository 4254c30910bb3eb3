// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical scalar fields used to seed source
// states and to verify remapped results against exact integrals
package ana

import (
	"github.com/cpmech/gosl/chk"
)

// Field is a scalar field with exact integrals over axis-aligned rectangles
type Field interface {
	Init(prms []float64)                     // sets parameters
	F(x, y float64) float64                  // returns the value at (x,y)
	Integral(x0, y0, x1, y1 float64) float64 // returns the integral over [x0,x1] x [y0,y1]
}

// allocators maps field names to allocators
var allocators = make(map[string]func() Field)

// New allocates and initialises a field by name
//  "constant"  => f = c0
//  "linear"    => f = a0 + ax*x + ay*y
//  "quadratic" => f = a0 + ax*x + ay*y + axx*x*x + axy*x*y + ayy*y*y
//  "product"   => f = a0*x*y
//  "step"      => f = l for x < xs; r otherwise
func New(name string, prms []float64) (Field, error) {
	alloc, ok := allocators[name]
	if !ok {
		return nil, chk.Err("cannot find analytic field named %q", name)
	}
	f := alloc()
	f.Init(prms)
	return f, nil
}

// Constant implements the uniform field f(x,y) = c0
type Constant struct {
	C0 float64
}

// Init sets parameters: prms = [c0]
func (o *Constant) Init(prms []float64) {
	o.C0 = 1
	if len(prms) > 0 {
		o.C0 = prms[0]
	}
}

// F returns the value at (x,y)
func (o *Constant) F(x, y float64) float64 { return o.C0 }

// Integral returns the integral over [x0,x1] x [y0,y1]
func (o *Constant) Integral(x0, y0, x1, y1 float64) float64 {
	return o.C0 * (x1 - x0) * (y1 - y0)
}

// Linear implements the field f(x,y) = a0 + ax*x + ay*y
type Linear struct {
	A0, Ax, Ay float64
}

// Init sets parameters: prms = [a0, ax, ay]
func (o *Linear) Init(prms []float64) {
	o.A0, o.Ax, o.Ay = 0, 1, 1
	for i, p := range prms {
		switch i {
		case 0:
			o.A0 = p
		case 1:
			o.Ax = p
		case 2:
			o.Ay = p
		}
	}
}

// F returns the value at (x,y)
func (o *Linear) F(x, y float64) float64 { return o.A0 + o.Ax*x + o.Ay*y }

// Integral returns the integral over [x0,x1] x [y0,y1]
func (o *Linear) Integral(x0, y0, x1, y1 float64) float64 {
	dx, dy := x1-x0, y1-y0
	ix := (x1*x1 - x0*x0) / 2.0
	iy := (y1*y1 - y0*y0) / 2.0
	return o.A0*dx*dy + o.Ax*ix*dy + o.Ay*dx*iy
}

// Quadratic implements the field
//  f(x,y) = a0 + ax*x + ay*y + axx*x*x + axy*x*y + ayy*y*y
type Quadratic struct {
	A0, Ax, Ay, Axx, Axy, Ayy float64
}

// Init sets parameters: prms = [a0, ax, ay, axx, axy, ayy]
func (o *Quadratic) Init(prms []float64) {
	o.A0, o.Ax, o.Ay = 0, 0, 0
	o.Axx, o.Axy, o.Ayy = 1, 0, 1
	for i, p := range prms {
		switch i {
		case 0:
			o.A0 = p
		case 1:
			o.Ax = p
		case 2:
			o.Ay = p
		case 3:
			o.Axx = p
		case 4:
			o.Axy = p
		case 5:
			o.Ayy = p
		}
	}
}

// F returns the value at (x,y)
func (o *Quadratic) F(x, y float64) float64 {
	return o.A0 + o.Ax*x + o.Ay*y + o.Axx*x*x + o.Axy*x*y + o.Ayy*y*y
}

// Integral returns the integral over [x0,x1] x [y0,y1]
func (o *Quadratic) Integral(x0, y0, x1, y1 float64) float64 {
	dx, dy := x1-x0, y1-y0
	ix := (x1*x1 - x0*x0) / 2.0
	iy := (y1*y1 - y0*y0) / 2.0
	ixx := (x1*x1*x1 - x0*x0*x0) / 3.0
	iyy := (y1*y1*y1 - y0*y0*y0) / 3.0
	return o.A0*dx*dy + o.Ax*ix*dy + o.Ay*dx*iy + o.Axx*ixx*dy + o.Axy*ix*iy + o.Ayy*dx*iyy
}

// Product implements the bilinear field f(x,y) = a0 * x * y
type Product struct {
	A0 float64
}

// Init sets parameters: prms = [a0]
func (o *Product) Init(prms []float64) {
	o.A0 = 1
	if len(prms) > 0 {
		o.A0 = prms[0]
	}
}

// F returns the value at (x,y)
func (o *Product) F(x, y float64) float64 { return o.A0 * x * y }

// Integral returns the integral over [x0,x1] x [y0,y1]
func (o *Product) Integral(x0, y0, x1, y1 float64) float64 {
	return o.A0 * (x1*x1 - x0*x0) * (y1*y1 - y0*y0) / 4.0
}

// Step implements the discontinuous field
//  f(x,y) = l for x < xs
//  f(x,y) = r for x >= xs
type Step struct {
	Xs, L, R float64
}

// Init sets parameters: prms = [xs, l, r]
func (o *Step) Init(prms []float64) {
	o.Xs, o.L, o.R = 0.5, 0, 1
	for i, p := range prms {
		switch i {
		case 0:
			o.Xs = p
		case 1:
			o.L = p
		case 2:
			o.R = p
		}
	}
}

// F returns the value at (x,y)
func (o *Step) F(x, y float64) float64 {
	if x < o.Xs {
		return o.L
	}
	return o.R
}

// Integral returns the integral over [x0,x1] x [y0,y1]
func (o *Step) Integral(x0, y0, x1, y1 float64) float64 {
	dy := y1 - y0
	xs := o.Xs
	if xs < x0 {
		xs = x0
	}
	if xs > x1 {
		xs = x1
	}
	return o.L*(xs-x0)*dy + o.R*(x1-xs)*dy
}

// add allocators to database
func init() {
	allocators["constant"] = func() Field { return new(Constant) }
	allocators["linear"] = func() Field { return new(Linear) }
	allocators["quadratic"] = func() Field { return new(Quadratic) }
	allocators["product"] = func() Field { return new(Product) }
	allocators["step"] = func() Field { return new(Step) }
}
