// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package remap

import "github.com/jsdomine/portage/geo"

// Kind distinguishes the mesh entities data can live on
type Kind int

const (
	// CELL attaches data to cells; the control volume is the cell itself
	CELL Kind = iota

	// NODE attaches data to vertices; the control volume is the dual
	// polygon around the vertex
	NODE
)

// Kinds lists all entity kinds in processing order
var Kinds = []Kind{CELL, NODE}

// String returns the name of the kind
func (o Kind) String() string {
	if o == NODE {
		return "node"
	}
	return "cell"
}

// FieldType distinguishes plain fields from per-material ones
type FieldType int

const (
	// SingleMat fields hold one value per entity
	SingleMat FieldType = iota

	// MultiMat fields hold one value per (cell, material) pair
	MultiMat
)

// Mesher is the mesh capability consumed by the engine. Implementations
// must answer queries for any registered kind; all geometry is 2D with
// counter-clockwise control volumes. Meshes are read-only during a remap
type Mesher interface {

	// Ndim returns the space dimension
	Ndim() int

	// NumEnts returns the number of entities of the given kind
	NumEnts(kind Kind) int

	// CtrlVol returns the control volume polygon of one entity
	CtrlVol(kind Kind, id int) geo.Polygon

	// Bounds returns the bounding box of one control volume
	Bounds(kind Kind, id int) geo.BBox

	// Centroid returns the centroid of one control volume
	Centroid(kind Kind, id int) geo.Point

	// Neighs returns the ids of the topological neighbours of one entity:
	// vertex-sharing cells for CELL, edge-connected vertices for NODE
	Neighs(kind Kind, id int) []int

	// OnBoundary tells whether the entity touches the mesh boundary
	OnBoundary(kind Kind, id int) bool
}

// Stater is the field-state capability consumed by the engine. Vals and
// MatVals return the backing storage so targets are written in place
type Stater interface {

	// Names returns all registered variable names
	Names() []string

	// Has tells whether a variable is registered
	Has(name string) bool

	// Kind returns the entity kind a variable lives on
	Kind(name string) Kind

	// Type returns the field type of a variable
	Type(name string) FieldType

	// Vals returns the values of a SingleMat variable, one per entity
	Vals(name string) []float64

	// NumMats returns the number of materials known to the state
	NumMats() int

	// MatVals returns the values of a MultiMat variable for one material,
	// one slot per cell (meaningful only where the material is present)
	MatVals(name string, mat int) []float64
}

// MatPolyer is the interface-reconstruction capability: it yields the
// sub-region of a material inside a cell. An empty polygon means the
// material is absent from the cell
type MatPolyer interface {

	// NumMats returns the number of materials
	NumMats() int

	// MatPoly returns the polygonal piece of material mat inside cell id
	MatPoly(id, mat int) geo.Polygon
}

// Redistributor is the distributed-execution capability. When Distributed
// reports true the engine swaps its source view for the redistributed one
// before searching; everything downstream sees a complete local source
type Redistributor interface {

	// Distributed tells whether this is a multi-process run
	Distributed() bool

	// Redistribute returns a source mesh/state pair covering everything
	// the local target may overlap
	Redistribute(src Mesher, state Stater, trg Mesher) (Mesher, Stater, error)
}
