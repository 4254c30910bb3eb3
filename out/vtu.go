// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bytes"

	"github.com/cpmech/gosl/io"
	"github.com/jsdomine/portage/inp"
	"github.com/jsdomine/portage/remap"
)

// vtkcode returns the VTK cell code of one cell type
func vtkcode(ctype string) int {
	switch ctype {
	case "tri3":
		return 5
	case "qua4":
		return 9
	}
	return 7 // VTK_POLYGON
}

// WriteVtu writes a .vtu (XML/VTK unstructured grid) file showing one mesh
// and every variable of its state, for visualisation with Paraview
func WriteVtu(dirout, fnkey string, m *inp.Mesh, sta *inp.State) {

	// buffers
	top := new(bytes.Buffer)
	dat := new(bytes.Buffer)

	// generate topology
	topology(top, m)

	// points data
	pdataWrite(dat, m, sta)

	// cells data
	cdataWrite(dat, m, sta)

	// write vtu file
	nv := len(m.Verts)
	nc := len(m.Cells)
	var hdr, foo bytes.Buffer
	io.Ff(&hdr, "<?xml version=\"1.0\"?>\n<VTKFile type=\"UnstructuredGrid\" version=\"0.1\" byte_order=\"LittleEndian\">\n<UnstructuredGrid>\n")
	io.Ff(&hdr, "<Piece NumberOfPoints=\"%d\" NumberOfCells=\"%d\">\n", nv, nc)
	io.Ff(&foo, "</Piece>\n</UnstructuredGrid>\n</VTKFile>\n")
	io.WriteFileVD(dirout, fnkey+".vtu", &hdr, top, dat, &foo)
}

// topology ////////////////////////////////////////////////////////////////////////////////////////

func topology(buf *bytes.Buffer, m *inp.Mesh) {

	// coordinates
	io.Ff(buf, "<Points>\n<DataArray type=\"Float64\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for _, v := range m.Verts {
		io.Ff(buf, "%23.15e %23.15e %23.15e ", v.C[0], v.C[1], 0.0)
	}
	io.Ff(buf, "\n</DataArray>\n</Points>\n")

	// connectivities
	io.Ff(buf, "<Cells>\n<DataArray type=\"Int32\" Name=\"connectivity\" format=\"ascii\">\n")
	for _, c := range m.Cells {
		for _, iv := range c.Verts {
			io.Ff(buf, "%d ", iv)
		}
	}

	// offsets
	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"Int32\" Name=\"offsets\" format=\"ascii\">\n")
	var offset int
	for _, c := range m.Cells {
		offset += len(c.Verts)
		io.Ff(buf, "%d ", offset)
	}

	// types
	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"UInt8\" Name=\"types\" format=\"ascii\">\n")
	for _, c := range m.Cells {
		io.Ff(buf, "%d ", vtkcode(c.Type))
	}
	io.Ff(buf, "\n</DataArray>\n</Cells>\n")
}

// points data /////////////////////////////////////////////////////////////////////////////////////

func pdataWrite(buf *bytes.Buffer, m *inp.Mesh, sta *inp.State) {

	// open
	io.Ff(buf, "<PointData Scalars=\"TheScalars\">\n")

	// ids
	io.Ff(buf, "<DataArray type=\"Int32\" Name=\"nid\" NumberOfComponents=\"1\" format=\"ascii\">\n")
	for _, v := range m.Verts {
		io.Ff(buf, "%d ", v.Id)
	}

	// positive tags
	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"Int32\" Name=\"tag\" NumberOfComponents=\"1\" format=\"ascii\">\n")
	for _, v := range m.Verts {
		io.Ff(buf, "%d ", iabs(v.Tag))
	}
	io.Ff(buf, "\n</DataArray>\n")

	// nodal variables
	for _, name := range sta.Names() {
		if sta.Kind(name) != remap.NODE {
			continue
		}
		io.Ff(buf, "<DataArray type=\"Float64\" Name=%q NumberOfComponents=\"1\" format=\"ascii\">\n", name)
		for _, x := range sta.Vals(name) {
			io.Ff(buf, "%23.15e ", x)
		}
		io.Ff(buf, "\n</DataArray>\n")
	}

	// close
	io.Ff(buf, "</PointData>\n")
}

// cells data //////////////////////////////////////////////////////////////////////////////////////

func cdataWrite(buf *bytes.Buffer, m *inp.Mesh, sta *inp.State) {

	// open
	io.Ff(buf, "<CellData Scalars=\"TheScalars\">\n")

	// ids
	io.Ff(buf, "<DataArray type=\"Int32\" Name=\"eid\" NumberOfComponents=\"1\" format=\"ascii\">\n")
	for _, c := range m.Cells {
		io.Ff(buf, "%d ", c.Id)
	}

	// positive tags
	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"Int32\" Name=\"tag\" NumberOfComponents=\"1\" format=\"ascii\">\n")
	for _, c := range m.Cells {
		io.Ff(buf, "%d ", iabs(c.Tag))
	}
	io.Ff(buf, "\n</DataArray>\n")

	// cell variables
	for _, name := range sta.Names() {
		if sta.Kind(name) != remap.CELL {
			continue
		}
		if sta.Type(name) == remap.MultiMat {
			for mat := 0; mat < sta.NumMats(); mat++ {
				io.Ff(buf, "<DataArray type=\"Float64\" Name=\"%s_%d\" NumberOfComponents=\"1\" format=\"ascii\">\n", name, mat)
				for _, x := range sta.MatVals(name, mat) {
					io.Ff(buf, "%23.15e ", x)
				}
				io.Ff(buf, "\n</DataArray>\n")
			}
			continue
		}
		io.Ff(buf, "<DataArray type=\"Float64\" Name=%q NumberOfComponents=\"1\" format=\"ascii\">\n", name)
		for _, x := range sta.Vals(name) {
			io.Ff(buf, "%23.15e ", x)
		}
		io.Ff(buf, "\n</DataArray>\n")
	}

	// close
	io.Ff(buf, "</CellData>\n")
}

func iabs(val int) int {
	if val < 0 {
		return -val
	}
	return val
}
