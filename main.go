// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"github.com/jsdomine/portage/ana"
	"github.com/jsdomine/portage/inp"
	"github.com/jsdomine/portage/out"
	"github.com/jsdomine/portage/remap"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "examples/matched", ".sim", true)
	verbose := io.ArgToBool(1, true)
	erasePrev := io.ArgToBool(2, true)
	writeFiles := io.ArgToBool(3, true)
	nlevels := io.ArgToInt(4, 1)
	conformal := io.ArgToBool(5, true)
	if !verbose {
		io.Verbose = false
	}
	if nlevels < 1 {
		nlevels = 1
	}

	// message
	if verbose {
		io.PfWhite("\nPortage -- conservative remapping between unstructured meshes\n\n")
		io.Pf("Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n\n")
		io.Pf("\n%v\n", io.ArgsTable(
			"filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
			"erase previous results", "erasePrev", erasePrev,
			"write result files", "writeFiles", writeFiles,
			"refinement levels", "nlevels", nlevels,
			"matching mesh boundaries", "conformal", conformal,
		))
	}

	// profiling?
	defer utl.Prof(false, false)()

	// simulation data
	sim := inp.ReadSim(fnamepath, erasePrev)

	// non-conformal run: stretch the generated target past the source by one
	// and a half cells in each direction
	if !conformal && sim.Trg.Mshfile == "" {
		sim.Trg.X1 += 1.5 * (sim.Trg.X1 - sim.Trg.X0) / float64(sim.Trg.Nx)
		sim.Trg.Y1 += 1.5 * (sim.Trg.Y1 - sim.Trg.Y0) / float64(sim.Trg.Ny)
		sim.Trg.Setup("")
	}

	// remap, possibly over a sequence of refined grids
	l1 := make([]float64, nlevels)
	l2 := make([]float64, nlevels)
	for lev := 0; lev < nlevels; lev++ {
		if lev > 0 {
			refine(&sim.Src)
			refine(&sim.Trg)
		}
		l1[lev], l2[lev] = runRemap(sim, verbose, writeFiles && lev == nlevels-1)
	}

	// convergence table. halving the cell size should quarter the error of
	// second order variables
	if nlevels > 1 && verbose {
		io.Pf("convergence of the remap error\n")
		io.Pf("%6s %12s %12s %8s %8s\n", "level", "L1", "L2", "rL1", "rL2")
		for lev := 0; lev < nlevels; lev++ {
			r1, r2 := "-", "-"
			if lev > 0 {
				r1 = io.Sf("%8.3f", l1[lev-1]/l1[lev])
				r2 = io.Sf("%8.3f", l2[lev-1]/l2[lev])
			}
			io.Pf("%6d %12.5e %12.5e %8s %8s\n", lev, l1[lev], l2[lev], r1, r2)
		}
	}
}

// refine doubles the resolution of a generated mesh. meshes read from files
// are kept as they are
func refine(m *inp.MshData) {
	if m.Mshfile != "" {
		return
	}
	m.Nx *= 2
	m.Ny *= 2
	m.Setup("")
}

// runRemap performs one complete remap and returns the error norms
// accumulated over the variables with analytic fields
func runRemap(sim *inp.Simulation, verbose, writeFiles bool) (l1, l2 float64) {

	// optional capabilities
	caps, err := sim.Caps()
	if err != nil {
		chk.Panic("cannot assemble the remap capabilities:\n%v", err)
	}

	// source and target states seeded from the analytic fields
	ssta := inp.NewState(sim.Src.M, sim.Nmat())
	tsta := inp.NewState(sim.Trg.M, sim.Nmat())
	fields := make(map[string]ana.Field)
	for _, v := range sim.Vars {
		fld, err := ana.New(v.Field, v.Prms)
		if err != nil {
			chk.Panic("cannot allocate the analytic field of %q:\n%v", v.Name, err)
		}
		if v.Multimat {
			ssta.AddMatField(v.Name, nil)
			for mat := 0; mat < sim.Nmat(); mat++ {
				ssta.SetMatFunc(v.Name, mat, fld.F)
			}
			tsta.AddMatField(v.TrgName, nil)
			continue
		}
		fields[v.Name] = fld
		ssta.AddField(v.Name, v.GetKind(), 0)
		ssta.SetFunc(v.Name, fld.F)
		tsta.AddField(v.TrgName, v.GetKind(), 0)
	}

	// remap engine
	eng, err := remap.New(sim.Src.M, ssta, sim.Trg.M, tsta, sim.VarNames(), &caps)
	if err != nil {
		chk.Panic("cannot allocate the remap engine:\n%v", err)
	}
	eng.Csys = sim.Data.Csys()
	eng.Tols = sim.Tols.Tols()
	eng.ChkMM = !sim.Data.NoChkMM
	eng.SrchKey = sim.Data.Search

	// search and intersect, then transfer all variables
	if err = eng.ComputeWeights(); err != nil {
		chk.Panic("intersection failed:\n%v", err)
	}
	for _, v := range sim.Vars {
		if err = eng.Interpolate(v.Name, v.TrgName, v.Opts(sim.Tols)); err != nil {
			chk.Panic("interpolation of %q failed:\n%v", v.Name, err)
		}
	}

	// results
	out.Start(sim, eng, ssta, tsta, fields)
	if verbose {
		io.Pf("\n%s\n", out.Report())
	}
	if writeFiles {
		out.Save()
		if verbose {
			io.Pf("results saved to %s\n", sim.DirOut)
		}
	}

	// error norms on the target
	csys := sim.Data.Csys()
	for _, v := range sim.Vars {
		f, ok := fields[v.Name]
		if !ok {
			continue
		}
		e2 := out.L2err(sim.Trg.M, tsta, v.TrgName, f, csys)
		l1 += out.L1err(sim.Trg.M, tsta, v.TrgName, f, csys)
		l2 += e2 * e2
	}
	l2 = math.Sqrt(l2)
	return
}
