// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/jsdomine/portage/geo"
	"github.com/jsdomine/portage/remap"
)

func Test_sim01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim01. remap definition with generated grids")

	sim := ReadSim("data/remap01.sim", false)
	if sim == nil {
		tst.Errorf("cannot read simulation file\n")
		return
	}
	io.Pforan("sim = %+v\n", sim.Data)

	// global data and defaults
	chk.String(tst, sim.Key, "remap01")
	chk.String(tst, sim.Data.Coords, "cartesian")
	chk.String(tst, sim.Data.Search, "rtree")
	chk.IntAssert(int(sim.Data.Csys()), int(geo.Cartesian))
	chk.IntAssert(sim.Nmat(), 1)

	// default tolerances
	d := remap.DefaultTols()
	chk.Float64(tst, "constol", 1e-17, sim.Tols.ConsTol, d.ConsTol)
	chk.IntAssert(sim.Tols.MaxIter, d.MaxIter)

	// meshes
	chk.IntAssert(len(sim.Src.M.Cells), 16)
	chk.IntAssert(len(sim.Trg.M.Cells), 25)

	// first variable: defaults filled in
	v := sim.Vars[0]
	chk.String(tst, v.TrgName, "density")
	chk.String(tst, v.Kind, "cell")
	chk.IntAssert(v.Order, 1)
	chk.String(tst, v.Limiter, remap.LimNone)
	chk.String(tst, v.Partial, remap.FixShiftedCons)
	chk.String(tst, v.Empty, remap.FixExtrapolate)
	opts := v.Opts(sim.Tols)
	if !math.IsInf(opts.Lower, -1) || !math.IsInf(opts.Upper, 1) {
		tst.Errorf("unbounded variables must have infinite bounds\n")
		return
	}

	// second variable: nodal second-order
	w := sim.Vars[1]
	chk.String(tst, w.TrgName, "p")
	chk.IntAssert(int(w.GetKind()), int(remap.NODE))
	chk.IntAssert(w.Order, 2)
	chk.String(tst, w.Limiter, remap.LimBJ)
	chk.String(tst, w.BndLim, remap.BndZeroGrad)

	// no optional capabilities
	caps, err := sim.Caps()
	if err != nil {
		tst.Errorf("caps failed: %v\n", err)
		return
	}
	if caps.Recon != nil || caps.Redis != nil {
		tst.Errorf("single-material runs must have no capabilities\n")
		return
	}
	chk.Strings(tst, "variable names", sim.VarNames(), []string{"rho", "p"})
}

func Test_sim02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim02. two-material remap definition")

	sim := ReadSim("data/remap02.sim", false)
	if sim == nil {
		tst.Errorf("cannot read simulation file\n")
		return
	}

	// partial tolerances keep the other defaults
	d := remap.DefaultTols()
	chk.Float64(tst, "constol", 1e-17, sim.Tols.ConsTol, 1e-13)
	chk.Float64(tst, "mindist", 1e-17, sim.Tols.MinDist, d.MinDist)

	// materials
	chk.IntAssert(sim.Nmat(), 2)
	caps, err := sim.Caps()
	if err != nil {
		tst.Errorf("caps failed: %v\n", err)
		return
	}
	if caps.Recon == nil {
		tst.Errorf("two-material runs must carry a reconstructor\n")
		return
	}
	chk.IntAssert(caps.Recon.NumMats(), 2)

	// material 0 occupies the left cells entirely
	p0 := caps.Recon.MatPoly(0, 0)
	chk.Float64(tst, "mat0 area in cell 0", 1e-15, p0.Area(), 0.25)
	if caps.Recon.MatPoly(1, 0) != nil {
		tst.Errorf("material 0 must be absent from the right cells\n")
		return
	}
}
