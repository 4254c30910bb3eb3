// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/jsdomine/portage/geo"
)

// LineRecon reconstructs a two-material configuration split by the
// straight line nx*x + ny*y = d: material 0 occupies the n.x <= d side
// of every cell and material 1 the rest
type LineRecon struct {
	Msh *Mesh     // the mesh
	Tol float64   // minimum distance when clipping
	pl0 geo.Plane // half-plane of material 0
	pl1 geo.Plane // half-plane of material 1
}

// NewLineRecon creates a line-interface reconstructor. (nx,ny) needs not
// be a unit vector but must not vanish
func NewLineRecon(msh *Mesh, nx, ny, d, tol float64) (*LineRecon, error) {
	s := math.Sqrt(nx*nx + ny*ny)
	if s < 1e-14 {
		return nil, chk.Err("line normal (%g,%g) is too small", nx, ny)
	}
	nx, ny, d = nx/s, ny/s, d/s
	return &LineRecon{
		Msh: msh,
		Tol: tol,
		pl0: geo.Plane{N: geo.Point{X: -nx, Y: -ny}, D: d},
		pl1: geo.Plane{N: geo.Point{X: nx, Y: ny}, D: -d},
	}, nil
}

// NumMats returns the number of materials
func (o *LineRecon) NumMats() int { return 2 }

// MatPoly returns the part of one cell occupied by one material; nil when
// the material is absent from the cell
func (o *LineRecon) MatPoly(id, mat int) geo.Polygon {
	pl := o.pl0
	if mat == 1 {
		pl = o.pl1
	}
	p := geo.ClipPlane(o.Msh.Cells[id].Poly, pl, o.Tol)
	if len(p) < 3 {
		return nil
	}
	return p
}
