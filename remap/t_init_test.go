// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package remap

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/jsdomine/portage/geo"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// gridMesh is a uniform rectangular cell mesh for the tests in this package
type gridMesh struct {
	nx, ny int
	x0, y0 float64
	dx, dy float64
}

func newGridMesh(nx, ny int, x0, y0, x1, y1 float64) *gridMesh {
	return &gridMesh{nx, ny, x0, y0, (x1 - x0) / float64(nx), (y1 - y0) / float64(ny)}
}

func (o *gridMesh) Ndim() int { return 2 }

func (o *gridMesh) NumEnts(kind Kind) int {
	if kind == CELL {
		return o.nx * o.ny
	}
	return 0
}

func (o *gridMesh) cellBox(id int) (x0, y0, x1, y1 float64) {
	i, j := id%o.nx, id/o.nx
	x0 = o.x0 + float64(i)*o.dx
	y0 = o.y0 + float64(j)*o.dy
	return x0, y0, x0 + o.dx, y0 + o.dy
}

func (o *gridMesh) CtrlVol(kind Kind, id int) geo.Polygon {
	x0, y0, x1, y1 := o.cellBox(id)
	return geo.Polygon{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

func (o *gridMesh) Bounds(kind Kind, id int) geo.BBox {
	x0, y0, x1, y1 := o.cellBox(id)
	return geo.BBox{Lo: geo.Point{X: x0, Y: y0}, Hi: geo.Point{X: x1, Y: y1}}
}

func (o *gridMesh) Centroid(kind Kind, id int) geo.Point {
	x0, y0, x1, y1 := o.cellBox(id)
	return geo.Point{X: (x0 + x1) / 2.0, Y: (y0 + y1) / 2.0}
}

func (o *gridMesh) Neighs(kind Kind, id int) (nb []int) {
	i, j := id%o.nx, id/o.nx
	for dj := -1; dj <= 1; dj++ {
		for di := -1; di <= 1; di++ {
			if di == 0 && dj == 0 {
				continue
			}
			ii, jj := i+di, j+dj
			if ii >= 0 && ii < o.nx && jj >= 0 && jj < o.ny {
				nb = append(nb, jj*o.nx+ii)
			}
		}
	}
	return
}

func (o *gridMesh) OnBoundary(kind Kind, id int) bool {
	i, j := id%o.nx, id/o.nx
	return i == 0 || j == 0 || i == o.nx-1 || j == o.ny-1
}

// fillCells evaluates f at every cell centroid of a gridMesh
func fillCells(m *gridMesh, f func(x, y float64) float64) (v []float64) {
	n := m.NumEnts(CELL)
	v = make([]float64, n)
	for i := 0; i < n; i++ {
		c := m.Centroid(CELL, i)
		v[i] = f(c.X, c.Y)
	}
	return
}

// mapState stores fields in plain maps for the tests in this package
type mapState struct {
	names []string
	kinds map[string]Kind
	types map[string]FieldType
	vals  map[string][]float64
	nmat  int
	mvals map[string][][]float64
}

func newMapState() *mapState {
	return &mapState{
		kinds: make(map[string]Kind),
		types: make(map[string]FieldType),
		vals:  make(map[string][]float64),
		mvals: make(map[string][][]float64),
	}
}

func (o *mapState) addVar(name string, kind Kind, v []float64) {
	o.names = append(o.names, name)
	o.kinds[name] = kind
	o.types[name] = SingleMat
	o.vals[name] = v
}

func (o *mapState) addMatVar(name string, v [][]float64) {
	o.names = append(o.names, name)
	o.kinds[name] = CELL
	o.types[name] = MultiMat
	o.mvals[name] = v
	o.nmat = len(v)
}

func (o *mapState) Names() []string                        { return o.names }
func (o *mapState) Has(name string) bool                   { _, ok := o.kinds[name]; return ok }
func (o *mapState) Kind(name string) Kind                  { return o.kinds[name] }
func (o *mapState) Type(name string) FieldType             { return o.types[name] }
func (o *mapState) Vals(name string) []float64             { return o.vals[name] }
func (o *mapState) NumMats() int                           { return o.nmat }
func (o *mapState) MatVals(name string, mat int) []float64 { return o.mvals[name][mat] }

// halfRecon splits every cell at x=xcut into two materials: 0 on the left
// and 1 on the right
type halfRecon struct {
	msh  *gridMesh
	xcut float64
}

func (o *halfRecon) NumMats() int { return 2 }

func (o *halfRecon) MatPoly(id, mat int) geo.Polygon {
	poly := o.msh.CtrlVol(CELL, id)
	n := geo.Point{X: -1, Y: 0}
	d := o.xcut
	if mat == 1 {
		n.X = 1
		d = -o.xcut
	}
	return geo.Clip(poly, []geo.Plane{{N: n, D: d}}, 1e-12)
}

// loopback pretends to be a distributed run whose exchange returns the
// local source unchanged
type loopback struct{}

func (o *loopback) Distributed() bool { return true }

func (o *loopback) Redistribute(src Mesher, state Stater, trg Mesher) (Mesher, Stater, error) {
	return src, state, nil
}
