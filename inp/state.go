// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/jsdomine/portage/remap"
)

// Field holds the values of one variable attached to a mesh
type Field struct {
	Name string          // variable name
	Kind remap.Kind      // support kind: cells or nodes
	Type remap.FieldType // single- or multi-material
	V    []float64       // values; one per entity
	Vm   [][]float64     // multi-material values; [nmat][nents]
}

// State holds all field values attached to one mesh
type State struct {
	Msh  *Mesh // the mesh
	Nmat int   // number of materials; 1 for single-material states

	fields map[string]*Field
	order  []string
}

// NewState creates a state attached to a mesh
func NewState(msh *Mesh, nmat int) *State {
	if nmat < 1 {
		nmat = 1
	}
	return &State{Msh: msh, Nmat: nmat, fields: make(map[string]*Field)}
}

// AddField registers a single-material variable with a default value
func (o *State) AddField(name string, kind remap.Kind, defval float64) *Field {
	f := &Field{Name: name, Kind: kind, Type: remap.SingleMat}
	f.V = make([]float64, o.Msh.NumEnts(kind))
	for i := range f.V {
		f.V[i] = defval
	}
	o.put(f)
	return f
}

// AddMatField registers a cell-based multi-material variable with one
// default value per material
func (o *State) AddMatField(name string, defvals []float64) *Field {
	f := &Field{Name: name, Kind: remap.CELL, Type: remap.MultiMat}
	f.Vm = make([][]float64, o.Nmat)
	for m := 0; m < o.Nmat; m++ {
		f.Vm[m] = make([]float64, len(o.Msh.Cells))
		d := 0.0
		if m < len(defvals) {
			d = defvals[m]
		}
		for i := range f.Vm[m] {
			f.Vm[m][i] = d
		}
	}
	o.put(f)
	return f
}

// SetFunc evaluates f at the control-volume centroids of a
// single-material variable
func (o *State) SetFunc(name string, f func(x, y float64) float64) {
	fld := o.fields[name]
	if fld == nil || fld.Type != remap.SingleMat {
		return
	}
	for i := range fld.V {
		c := o.Msh.Centroid(fld.Kind, i)
		fld.V[i] = f(c.X, c.Y)
	}
}

// SetMatFunc evaluates f at the cell centroids of one material of a
// multi-material variable
func (o *State) SetMatFunc(name string, mat int, f func(x, y float64) float64) {
	fld := o.fields[name]
	if fld == nil || fld.Type != remap.MultiMat || mat < 0 || mat >= o.Nmat {
		return
	}
	for i := range fld.Vm[mat] {
		c := o.Msh.Cells[i].Cen
		fld.Vm[mat][i] = f(c.X, c.Y)
	}
}

func (o *State) put(f *Field) {
	if _, ok := o.fields[f.Name]; !ok {
		o.order = append(o.order, f.Name)
	}
	o.fields[f.Name] = f
}

// Names returns the registered variable names in registration order
func (o *State) Names() []string { return o.order }

// Has tells whether a variable is registered
func (o *State) Has(name string) bool {
	_, ok := o.fields[name]
	return ok
}

// Kind returns the support kind of a variable
func (o *State) Kind(name string) remap.Kind { return o.fields[name].Kind }

// Type returns the material type of a variable
func (o *State) Type(name string) remap.FieldType { return o.fields[name].Type }

// Vals returns the values of a single-material variable
func (o *State) Vals(name string) []float64 { return o.fields[name].V }

// NumMats returns the number of materials
func (o *State) NumMats() int { return o.Nmat }

// MatVals returns the values of one material of a multi-material variable
func (o *State) MatVals(name string, mat int) []float64 { return o.fields[name].Vm[mat] }
