// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements remap output handling: conservation reports,
// error norms against analytical fields and VTK files for visualisation
package out

import (
	"bytes"
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/jsdomine/portage/ana"
	"github.com/jsdomine/portage/geo"
	"github.com/jsdomine/portage/inp"
	"github.com/jsdomine/portage/remap"
)

// Global variables
var (

	// data set by Start
	Sim    *inp.Simulation      // the simulation data
	Eng    *remap.Engine        // the engine after interpolation
	SrcSta *inp.State           // the source state
	TrgSta *inp.State           // the remapped target state
	Fields map[string]ana.Field // analytic fields per source variable name
)

// Start starts handling of results given a finished remap
func Start(sim *inp.Simulation, eng *remap.Engine, ssta, tsta *inp.State, fields map[string]ana.Field) {
	Sim, Eng, SrcSta, TrgSta = sim, eng, ssta, tsta
	Fields = fields
	if Fields == nil {
		Fields = make(map[string]ana.Field)
	}
}

// Integral integrates one variable of a state over its mesh
func Integral(m *inp.Mesh, sta *inp.State, name string, csys geo.CoordSys) (res float64) {
	kind := sta.Kind(name)
	vals := sta.Vals(name)
	for i, v := range vals {
		res += v * geo.Measure(m.CtrlVol(kind, i), csys)
	}
	return
}

// MatIntegral integrates one material of a multi-material variable, using
// an interface reconstruction of the same mesh
func MatIntegral(sta *inp.State, name string, mat int, rec remap.MatPolyer, csys geo.CoordSys) (res float64) {
	vals := sta.MatVals(name, mat)
	for i, v := range vals {
		p := rec.MatPoly(i, mat)
		if len(p) < 3 {
			continue
		}
		res += v * geo.Measure(p, csys)
	}
	return
}

// L1err returns the volume-weighted L1 distance between one variable and an
// analytic field evaluated at the control-volume centroids
func L1err(m *inp.Mesh, sta *inp.State, name string, f ana.Field, csys geo.CoordSys) float64 {
	kind := sta.Kind(name)
	vals := sta.Vals(name)
	var sum float64
	for i, v := range vals {
		c := m.Centroid(kind, i)
		sum += math.Abs(v-f.F(c.X, c.Y)) * geo.Measure(m.CtrlVol(kind, i), csys)
	}
	return sum
}

// L2err returns the volume-weighted L2 distance between one variable and an
// analytic field evaluated at the control-volume centroids
func L2err(m *inp.Mesh, sta *inp.State, name string, f ana.Field, csys geo.CoordSys) float64 {
	kind := sta.Kind(name)
	vals := sta.Vals(name)
	var sum float64
	for i, v := range vals {
		c := m.Centroid(kind, i)
		d := v - f.F(c.X, c.Y)
		sum += d * d * geo.Measure(m.CtrlVol(kind, i), csys)
	}
	return math.Sqrt(sum)
}

// Row holds the report figures of one remapped variable (or one material of
// a multi-material variable)
type Row struct {
	Name    string  // target variable name
	Mat     int     // material index; -1 for single-material rows
	Kind    string  // "cell" or "node"
	SrcInt  float64 // integral over the source mesh
	TrgInt  float64 // integral over the target mesh
	ConsErr float64 // conservation error
	L2      float64 // L2 error against the analytic field; -1 without one
	Repair  string  // repair status: "-", "converged" or "exhausted"
}

// Tabulate computes the report figures of every remapped variable
func Tabulate() (rows []*Row) {
	csys := Sim.Data.Csys()
	for _, v := range Sim.Vars {

		// one row per material
		if v.Multimat {
			srec, err := inp.NewLineRecon(Sim.Src.M, Sim.Intf.Nx, Sim.Intf.Ny, Sim.Intf.D, Sim.Tols.MinDist)
			if err != nil {
				chk.Panic("cannot reconstruct the source materials: %v", err)
			}
			trec, err := inp.NewLineRecon(Sim.Trg.M, Sim.Intf.Nx, Sim.Intf.Ny, Sim.Intf.D, Sim.Tols.MinDist)
			if err != nil {
				chk.Panic("cannot reconstruct the target materials: %v", err)
			}
			for mat := 0; mat < Sim.Nmat(); mat++ {
				si := MatIntegral(SrcSta, v.Name, mat, srec, csys)
				ti := MatIntegral(TrgSta, v.TrgName, mat, trec, csys)
				rows = append(rows, &Row{
					Name:    v.TrgName,
					Mat:     mat,
					Kind:    v.Kind,
					SrcInt:  si,
					TrgInt:  ti,
					ConsErr: consErr(si, ti),
					L2:      -1,
					Repair:  "-",
				})
			}
			continue
		}

		// single-material row
		si := Integral(Sim.Src.M, SrcSta, v.Name, csys)
		ti := Integral(Sim.Trg.M, TrgSta, v.TrgName, csys)
		row := &Row{
			Name:    v.TrgName,
			Mat:     -1,
			Kind:    v.Kind,
			SrcInt:  si,
			TrgInt:  ti,
			ConsErr: consErr(si, ti),
			L2:      -1,
			Repair:  "-",
		}
		if f, ok := Fields[v.Name]; ok {
			row.L2 = L2err(Sim.Trg.M, TrgSta, v.TrgName, f, csys)
		}
		if conv, ok := Eng.RepairOK[v.TrgName]; ok {
			if conv {
				row.Repair = "converged"
			} else {
				row.Repair = "exhausted"
			}
		}
		rows = append(rows, row)
	}
	return
}

// Report returns the formatted remap report
func Report() string {
	l := io.Sf("results of %q: %s\n", Sim.Key, Sim.Data.Desc)

	// coverage analysis per kind
	for _, kind := range remap.Kinds {
		mm := Eng.Mismatch(kind)
		if mm == nil {
			continue
		}
		nf, np, ne := 0, 0, 0
		for _, c := range mm.Class {
			switch c {
			case remap.Filled:
				nf++
			case remap.Partial:
				np++
			case remap.Empty:
				ne++
			}
		}
		l += io.Sf("%q entities: mismatched=%v src=%g trg=%g intersected=%g filled=%d partial=%d empty=%d\n",
			kind.String(), mm.Mismatched, mm.VolSrc, mm.VolTrg, mm.VolInt, nf, np, ne)
	}

	// per-variable figures
	l += io.Sf("%-10s %4s %5s %14s %14s %10s %10s %10s\n", "variable", "mat", "kind", "src integral", "trg integral", "cons err", "L2 err", "repair")
	for _, r := range Tabulate() {
		mat := "-"
		if r.Mat >= 0 {
			mat = io.Sf("%d", r.Mat)
		}
		l2 := "-"
		if r.L2 >= 0 {
			l2 = io.Sf("%10.3e", r.L2)
		}
		l += io.Sf("%-10s %4s %5s %14.7e %14.7e %10.3e %10s %10s\n", r.Name, mat, r.Kind, r.SrcInt, r.TrgInt, r.ConsErr, l2, r.Repair)
	}
	return l
}

// Save writes the report, the remapped values and the visualisation files
// to the output directory
func Save() {

	// report
	var rep bytes.Buffer
	io.Ff(&rep, "%s", Report())
	io.WriteFileVD(Sim.DirOut, Sim.Key+".rep", &rep)

	// remapped values
	var buf bytes.Buffer
	for _, v := range Sim.Vars {
		if v.Multimat {
			for mat := 0; mat < Sim.Nmat(); mat++ {
				io.Ff(&buf, "%s[%d]", v.TrgName, mat)
				for _, x := range TrgSta.MatVals(v.TrgName, mat) {
					io.Ff(&buf, " %23.15e", x)
				}
				io.Ff(&buf, "\n")
			}
			continue
		}
		io.Ff(&buf, "%s", v.TrgName)
		for _, x := range TrgSta.Vals(v.TrgName) {
			io.Ff(&buf, " %23.15e", x)
		}
		io.Ff(&buf, "\n")
	}
	io.WriteFileVD(Sim.DirOut, Sim.Key+".res", &buf)

	// visualisation
	WriteVtu(Sim.DirOut, Sim.Key+"-src", Sim.Src.M, SrcSta)
	WriteVtu(Sim.DirOut, Sim.Key+"-trg", Sim.Trg.M, TrgSta)
}

// consErr returns the conservation error between two integrals: relative
// when the reference is well away from zero, absolute otherwise
func consErr(si, ti float64) float64 {
	d := math.Abs(ti - si)
	if math.Abs(si) > Sim.Tols.ConsTol {
		d /= math.Abs(si)
	}
	return d
}
