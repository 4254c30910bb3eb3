// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from .sim and .msh JSON files
// and the concrete mesh/state structures driving a remap
package inp

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"github.com/jsdomine/portage/geo"
	"github.com/jsdomine/portage/remap"
)

// constants
const Ztol = 1e-7

// Vert holds vertex data
type Vert struct {
	Id  int       // id
	Tag int       // tag
	C   []float64 // coordinates (size==2, or 3 with a zero third entry)
}

// Cell holds cell data
type Cell struct {

	// input data
	Id    int    // id
	Tag   int    // tag
	Type  string // geometry type: "tri3", "qua4" or "poly"
	Verts []int  // vertices (counter-clockwise)

	// derived
	Poly   geo.Polygon // cell polygon
	Cen    geo.Point   // centroid
	Box    geo.BBox    // bounding box
	Neighs []int       // vertex-sharing neighbour cells
	OnBnd  bool        // cell has an edge on the mesh boundary
}

// Mesh holds an unstructured mesh for remapping
type Mesh struct {

	// from JSON
	Verts []*Vert // vertices
	Cells []*Cell // cells

	// derived
	FnamePath  string  // complete filename path
	Xmin, Xmax float64 // min and max x-coordinate
	Ymin, Ymax float64 // min and max y-coordinate

	// derived: maps
	VertTag2verts map[int][]*Vert // vertex tag => set of vertices
	CellTag2cells map[int][]*Cell // cell tag => set of cells

	// derived: vertex topology
	VertCells  [][]int // [nverts] cells sharing each vertex
	VertNeighs [][]int // [nverts] edge-connected vertices
	VertOnBnd  []bool  // [nverts] vertex sits on the mesh boundary

	// derived: nodal control volumes (median duals)
	Duals    []geo.Polygon // [nverts] dual polygon around each vertex
	DualCens []geo.Point   // [nverts] dual centroids
	DualBoxs []geo.BBox    // [nverts] dual bounding boxes
}

// ReadMsh reads a mesh for remapping
//  Note: returns nil on errors
func ReadMsh(dir, fn string) *Mesh {

	// new mesh
	var o Mesh

	// read file
	o.FnamePath = filepath.Join(dir, fn)
	b, err := os.ReadFile(o.FnamePath)
	if err != nil {
		return nil
	}

	// decode
	err = json.Unmarshal(b, &o)
	if err != nil {
		return nil
	}

	// derived data
	if o.postprocess() != nil {
		return nil
	}
	return &o
}

// GenGrid generates a rectangular qua4 mesh with nx by ny cells covering
// [x0,x1] x [y0,y1]
//  Note: returns nil on errors
func GenGrid(nx, ny int, x0, y0, x1, y1 float64) *Mesh {
	if nx < 1 || ny < 1 || x1 <= x0 || y1 <= y0 {
		return nil
	}
	var o Mesh
	o.FnamePath = io.Sf("gen_%dx%d", nx, ny)
	xx := utl.LinSpace(x0, x1, nx+1)
	yy := utl.LinSpace(y0, y1, ny+1)
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			o.Verts = append(o.Verts, &Vert{Id: j*(nx+1) + i, C: []float64{xx[i], yy[j]}})
		}
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			a := j*(nx+1) + i
			o.Cells = append(o.Cells, &Cell{
				Id:    j*nx + i,
				Tag:   -1,
				Type:  "qua4",
				Verts: []int{a, a + 1, a + nx + 2, a + nx + 1},
			})
		}
	}
	if o.postprocess() != nil {
		return nil
	}
	return &o
}

// postprocess validates the input data and computes all derived quantities
func (o *Mesh) postprocess() (err error) {

	// check
	if len(o.Verts) < 3 {
		return chk.Err("at least 3 vertices are required. got %d", len(o.Verts))
	}
	if len(o.Cells) < 1 {
		return chk.Err("at least 1 cell is required. got %d", len(o.Cells))
	}

	// vertex related derived data
	o.Xmin = math.Inf(1)
	o.Ymin = math.Inf(1)
	o.Xmax = math.Inf(-1)
	o.Ymax = math.Inf(-1)
	o.VertTag2verts = make(map[int][]*Vert)
	for i, v := range o.Verts {

		// check vertex id
		if v.Id != i {
			return chk.Err("vertex ids must be sequential. %d != %d", v.Id, i)
		}

		// ndim
		nd := len(v.C)
		if nd < 2 || nd > 3 {
			return chk.Err("vertex %d has %d coordinates; need 2", v.Id, nd)
		}
		if nd == 3 {
			if math.Abs(v.C[2]) > Ztol {
				return chk.Err("vertex %d is not on the z=0 plane", v.Id)
			}
		}

		// tags
		if v.Tag < 0 {
			verts := o.VertTag2verts[v.Tag]
			o.VertTag2verts[v.Tag] = append(verts, v)
		}

		// limits
		o.Xmin = utl.Min(o.Xmin, v.C[0])
		o.Xmax = utl.Max(o.Xmax, v.C[0])
		o.Ymin = utl.Min(o.Ymin, v.C[1])
		o.Ymax = utl.Max(o.Ymax, v.C[1])
	}

	// cell related derived data
	nv := len(o.Verts)
	o.CellTag2cells = make(map[int][]*Cell)
	o.VertCells = make([][]int, nv)
	edgecells := make(map[[2]int][]int)
	for i, c := range o.Cells {

		// check id and vertices
		if c.Id != i {
			return chk.Err("cell ids must be sequential. %d != %d", c.Id, i)
		}
		if len(c.Verts) < 3 {
			return chk.Err("cell %d has %d vertices; need at least 3", c.Id, len(c.Verts))
		}

		// tags
		cells := o.CellTag2cells[c.Tag]
		o.CellTag2cells[c.Tag] = append(cells, c)

		// polygon; flip clockwise input
		c.Poly = make(geo.Polygon, len(c.Verts))
		for k, iv := range c.Verts {
			if iv < 0 || iv >= nv {
				return chk.Err("cell %d references unknown vertex %d", c.Id, iv)
			}
			c.Poly[k] = geo.Point{X: o.Verts[iv].C[0], Y: o.Verts[iv].C[1]}
		}
		if c.Poly.Area() < 0 {
			for k, j := 0, len(c.Verts)-1; k < j; k, j = k+1, j-1 {
				c.Verts[k], c.Verts[j] = c.Verts[j], c.Verts[k]
				c.Poly[k], c.Poly[j] = c.Poly[j], c.Poly[k]
			}
		}
		c.Cen, _ = c.Poly.Centroid()
		c.Box = c.Poly.BBox()

		// vertex and edge incidence
		n := len(c.Verts)
		for k := 0; k < n; k++ {
			o.VertCells[c.Verts[k]] = append(o.VertCells[c.Verts[k]], c.Id)
			a, b := c.Verts[k], c.Verts[(k+1)%n]
			if a > b {
				a, b = b, a
			}
			edgecells[[2]int{a, b}] = append(edgecells[[2]int{a, b}], c.Id)
		}
	}

	// vertex neighbours and boundary flags from the edge incidence
	o.VertNeighs = make([][]int, nv)
	o.VertOnBnd = make([]bool, nv)
	for e, cids := range edgecells {
		o.VertNeighs[e[0]] = append(o.VertNeighs[e[0]], e[1])
		o.VertNeighs[e[1]] = append(o.VertNeighs[e[1]], e[0])
		if len(cids) == 1 {
			o.VertOnBnd[e[0]] = true
			o.VertOnBnd[e[1]] = true
			o.Cells[cids[0]].OnBnd = true
		}
	}
	for i := 0; i < nv; i++ {
		sort.Ints(o.VertNeighs[i])
	}

	// cell neighbours: cells sharing at least one vertex
	for _, c := range o.Cells {
		seen := map[int]bool{c.Id: true}
		for _, iv := range c.Verts {
			for _, cid := range o.VertCells[iv] {
				if !seen[cid] {
					seen[cid] = true
					c.Neighs = append(c.Neighs, cid)
				}
			}
		}
		sort.Ints(c.Neighs)
	}

	// nodal control volumes
	return o.buildDuals(edgecells)
}

// buildDuals assembles the median-dual polygon around every vertex: the
// incident edge midpoints and cell centroids sorted by angle, with the
// vertex itself inserted into the open fan of boundary vertices
func (o *Mesh) buildDuals(edgecells map[[2]int][]int) (err error) {
	nv := len(o.Verts)
	o.Duals = make([]geo.Polygon, nv)
	o.DualCens = make([]geo.Point, nv)
	o.DualBoxs = make([]geo.BBox, nv)
	for i := 0; i < nv; i++ {
		if len(o.VertCells[i]) == 0 {
			return chk.Err("vertex %d belongs to no cell", i)
		}
		v := geo.Point{X: o.Verts[i].C[0], Y: o.Verts[i].C[1]}

		// fan points: edge midpoints and cell centroids around the vertex
		var pts []geo.Point
		for _, j := range o.VertNeighs[i] {
			w := o.Verts[j]
			pts = append(pts, geo.Point{X: (v.X + w.C[0]) / 2.0, Y: (v.Y + w.C[1]) / 2.0})
		}
		for _, cid := range o.VertCells[i] {
			pts = append(pts, o.Cells[cid].Cen)
		}

		// angular sort about the vertex
		ang := make([]float64, len(pts))
		for k, p := range pts {
			ang[k] = math.Atan2(p.Y-v.Y, p.X-v.X)
		}
		idx := utl.IntRange(len(pts))
		sort.SliceStable(idx, func(a, b int) bool { return ang[idx[a]] < ang[idx[b]] })

		poly := make(geo.Polygon, 0, len(pts)+1)
		for _, k := range idx {
			poly = append(poly, pts[k])
		}

		// boundary vertices close the fan through the vertex itself,
		// inserted into the widest angular gap
		if o.VertOnBnd[i] {
			kgap := 0
			gap := -1.0
			n := len(idx)
			for k := 0; k < n; k++ {
				a := ang[idx[k]]
				b := ang[idx[(k+1)%n]]
				d := b - a
				if k == n-1 {
					d = b + 2.0*math.Pi - a
				}
				if d > gap {
					gap = d
					kgap = k
				}
			}
			tail := append(geo.Polygon{}, poly[kgap+1:]...)
			poly = append(append(poly[:kgap+1], v), tail...)
		}
		if poly.Area() < 0 {
			return chk.Err("dual polygon of vertex %d is inverted", i)
		}
		o.Duals[i] = poly
		o.DualCens[i], _ = poly.Centroid()
		o.DualBoxs[i] = poly.BBox()
	}
	return
}

// Ndim returns the space dimension
func (o *Mesh) Ndim() int { return 2 }

// NumEnts returns the number of entities of the given kind
func (o *Mesh) NumEnts(kind remap.Kind) int {
	if kind == remap.NODE {
		return len(o.Verts)
	}
	return len(o.Cells)
}

// CtrlVol returns the control volume polygon of one entity
func (o *Mesh) CtrlVol(kind remap.Kind, id int) geo.Polygon {
	if kind == remap.NODE {
		return o.Duals[id]
	}
	return o.Cells[id].Poly
}

// Bounds returns the bounding box of one control volume
func (o *Mesh) Bounds(kind remap.Kind, id int) geo.BBox {
	if kind == remap.NODE {
		return o.DualBoxs[id]
	}
	return o.Cells[id].Box
}

// Centroid returns the centroid of one control volume
func (o *Mesh) Centroid(kind remap.Kind, id int) geo.Point {
	if kind == remap.NODE {
		return o.DualCens[id]
	}
	return o.Cells[id].Cen
}

// Neighs returns the topological neighbours of one entity
func (o *Mesh) Neighs(kind remap.Kind, id int) []int {
	if kind == remap.NODE {
		return o.VertNeighs[id]
	}
	return o.Cells[id].Neighs
}

// OnBoundary tells whether the entity touches the mesh boundary
func (o *Mesh) OnBoundary(kind remap.Kind, id int) bool {
	if kind == remap.NODE {
		return o.VertOnBnd[id]
	}
	return o.Cells[id].OnBnd
}

// String returns a JSON representation of *Vert
func (o *Vert) String() string {
	l := io.Sf("{\"id\":%4d, \"tag\":%6d, \"c\":[", o.Id, o.Tag)
	for i, x := range o.C {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%23.15e", x)
	}
	l += "] }"
	return l
}

// String returns a JSON representation of *Cell
func (o *Cell) String() string {
	l := io.Sf("{\"id\":%d, \"tag\":%d, \"type\":%q, \"verts\":[", o.Id, o.Tag, o.Type)
	for i, x := range o.Verts {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%d", x)
	}
	l += "] }"
	return l
}

// String returns a JSON representation of *Mesh
func (o Mesh) String() string {
	l := "{\n  \"verts\" : [\n"
	for i, x := range o.Verts {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("    %v", x)
	}
	l += "\n  ],\n  \"cells\" : [\n"
	for i, x := range o.Cells {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("    %v", x)
	}
	l += "\n  ]\n}"
	return l
}
