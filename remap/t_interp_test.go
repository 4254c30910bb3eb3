// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package remap

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/jsdomine/portage/geo"
	"gonum.org/v1/gonum/floats"
)

// buildWeights searches and intersects two cell meshes directly
func buildWeights(tst *testing.T, src, trg Mesher) [][]Weight {
	s, err := NewSearcher("brute")
	if err != nil {
		tst.Fatalf("%v\n", err)
	}
	cands, err := s.Search(src, trg, CELL)
	if err != nil {
		tst.Fatalf("%v\n", err)
	}
	w, err := intersectKind(src, trg, CELL, cands, geo.Cartesian, DefaultTols())
	if err != nil {
		tst.Fatalf("%v\n", err)
	}
	return w
}

func Test_interp01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("interp01. first order conserves a constant field")

	src := newGridMesh(4, 4, 0, 0, 1, 1)
	trg := newGridMesh(5, 5, 0, 0, 1, 1)
	w := buildWeights(tst, src, trg)

	svals := fillCells(src, func(x, y float64) float64 { return 2.5 })
	tvals := make([]float64, trg.NumEnts(CELL))

	itp, err := NewInterpolator(1)
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	if err := itp.Interpolate(src, CELL, svals, w, nil, tvals); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	for j, v := range tvals {
		chk.Float64(tst, io.Sf("t%d", j), 1e-13, v, 2.5)
	}

	svols := measures(src, CELL, geo.Cartesian)
	tvols := measures(trg, CELL, geo.Cartesian)
	chk.Float64(tst, "mass", 1e-12, floats.Dot(tvals, tvols), floats.Dot(svals, svols))

	// interpolating again with the same weights rewrites the same values
	first := make([]float64, len(tvals))
	copy(first, tvals)
	if err := itp.Interpolate(src, CELL, svals, w, nil, tvals); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.Array(tst, "repeat", 0, tvals, first)
}

func Test_interp02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("interp02. first order averages; step field on nested grids")

	src := newGridMesh(4, 4, 0, 0, 1, 1)
	trg := newGridMesh(2, 2, 0, 0, 1, 1)
	w := buildWeights(tst, src, trg)

	svals := fillCells(src, func(x, y float64) float64 {
		if x < 0.5 {
			return 1.0
		}
		return 5.0
	})
	tvals := make([]float64, 4)

	itp, _ := NewInterpolator(1)
	if err := itp.Interpolate(src, CELL, svals, w, nil, tvals); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.Array(tst, "tvals", 1e-13, tvals, []float64{1, 5, 1, 5})

	svols := measures(src, CELL, geo.Cartesian)
	tvols := measures(trg, CELL, geo.Cartesian)
	chk.Float64(tst, "mass", 1e-12, floats.Dot(tvals, tvols), floats.Dot(svals, svols))
}

func Test_interp03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("interp03. second order reproduces linear fields exactly")

	src := newGridMesh(4, 4, 0, 0, 1, 1)
	trg := newGridMesh(5, 5, 0, 0, 1, 1)
	w := buildWeights(tst, src, trg)

	f := func(x, y float64) float64 { return 1.0 + 2.0*x + 3.0*y }
	svals := fillCells(src, f)
	tvals := make([]float64, trg.NumEnts(CELL))

	g, err := gradients(src, CELL, svals, LimNone, LimNone)
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	itp, _ := NewInterpolator(2)
	if err := itp.Interpolate(src, CELL, svals, w, g, tvals); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	for j := range tvals {
		c := trg.Centroid(CELL, j)
		chk.Float64(tst, io.Sf("t%d", j), 1e-12, tvals[j], f(c.X, c.Y))
	}

	svols := measures(src, CELL, geo.Cartesian)
	tvols := measures(trg, CELL, geo.Cartesian)
	chk.Float64(tst, "mass", 1e-12, floats.Dot(tvals, tvols), floats.Dot(svals, svols))
}

func Test_interp04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("interp04. limited second order respects source bounds")

	src := newGridMesh(6, 6, 0, 0, 1, 1)
	trg := newGridMesh(7, 7, 0, 0, 1, 1)
	w := buildWeights(tst, src, trg)

	svals := fillCells(src, func(x, y float64) float64 {
		if x < 0.5 {
			return 0.0
		}
		return 1.0
	})
	tvals := make([]float64, trg.NumEnts(CELL))

	g, err := gradients(src, CELL, svals, LimBJ, BndZeroGrad)
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	itp, _ := NewInterpolator(2)
	if err := itp.Interpolate(src, CELL, svals, w, g, tvals); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	for j, v := range tvals {
		if v < -1e-12 || v > 1.0+1e-12 {
			tst.Errorf("target %d overshoots: %g is outside [0,1]\n", j, v)
			return
		}
	}
}

func Test_interp05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("interp05. empty stencils keep the default value")

	src := newGridMesh(2, 2, 0, 0, 1, 1)
	trg := newGridMesh(2, 2, 2, 0, 3, 1) // fully outside the source
	w := buildWeights(tst, src, trg)

	svals := fillCells(src, func(x, y float64) float64 { return 9.0 })
	tvals := []float64{-1, -1, -1, -1}

	itp, _ := NewInterpolator(1)
	if err := itp.Interpolate(src, CELL, svals, w, nil, tvals); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.Array(tst, "tvals", 1e-17, tvals, []float64{-1, -1, -1, -1})

	// unsupported order
	if _, err := NewInterpolator(3); err == nil {
		tst.Errorf("order 3 must fail\n")
		return
	}
}
