// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/jsdomine/portage/remap"
)

func Test_state01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("state01. fields over cells and nodes")

	m := GenGrid(2, 2, 0, 0, 1, 1)
	s := NewState(m, 1)
	s.AddField("rho", remap.CELL, -1)
	s.AddField("p", remap.NODE, 0)
	s.SetFunc("rho", func(x, y float64) float64 { return 1 + 2*x })
	s.SetFunc("p", func(x, y float64) float64 { return x + y })

	// registration
	chk.Strings(tst, "names", s.Names(), []string{"rho", "p"})
	if !s.Has("rho") || s.Has("vx") {
		tst.Errorf("registration query is wrong\n")
		return
	}
	chk.IntAssert(int(s.Kind("rho")), int(remap.CELL))
	chk.IntAssert(int(s.Kind("p")), int(remap.NODE))
	chk.IntAssert(int(s.Type("rho")), int(remap.SingleMat))
	chk.IntAssert(s.NumMats(), 1)

	// cell values at centroids
	chk.Array(tst, "rho", 1e-15, s.Vals("rho"), []float64{1.5, 2.5, 1.5, 2.5})

	// nodal values at the dual centroids
	p := s.Vals("p")
	chk.IntAssert(len(p), 9)
	chk.Float64(tst, "p(vert4)", 1e-15, p[4], 1.0)

	// multi-material fields
	sm := NewState(m, 2)
	sm.AddMatField("vf", []float64{1, 2})
	chk.Array(tst, "vf(mat0)", 1e-15, sm.MatVals("vf", 0), []float64{1, 1, 1, 1})
	chk.Array(tst, "vf(mat1)", 1e-15, sm.MatVals("vf", 1), []float64{2, 2, 2, 2})
	sm.SetMatFunc("vf", 1, func(x, y float64) float64 { return 10 * x })
	chk.Array(tst, "vf(mat1) updated", 1e-15, sm.MatVals("vf", 1), []float64{2.5, 7.5, 2.5, 7.5})
	chk.IntAssert(int(sm.Type("vf")), int(remap.MultiMat))
}
