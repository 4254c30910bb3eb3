// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/jsdomine/portage/geo"
	"github.com/jsdomine/portage/remap"
)

// Data holds global remap definition data
type Data struct {

	// global information
	Desc    string `json:"desc"`    // description of simulation
	Coords  string `json:"coords"`  // coordinate system: "cartesian" or "axisymmetric"
	Search  string `json:"search"`  // candidate search method; e.g. "rtree"
	DirOut  string `json:"dirout"`  // directory for output; e.g. "/tmp/portage"
	NoChkMM bool   `json:"nochkmm"` // do not check for source/target mismatch
}

// SetDefault sets default values
func (o *Data) SetDefault() {
	o.Coords = "cartesian"
	o.Search = "rtree"
}

// Csys returns the coordinate system
func (o *Data) Csys() geo.CoordSys {
	switch o.Coords {
	case "cartesian":
		return geo.Cartesian
	case "axisymmetric":
		return geo.Axisymmetric
	}
	chk.Panic("coordinate system %q is invalid", o.Coords)
	return geo.Cartesian
}

// TolData holds numerical tolerances
type TolData struct {
	MinDist float64 `json:"mindist"` // minimum distance when clipping
	MinVol  float64 `json:"minvol"`  // minimum volume of intersection pieces
	ConsTol float64 `json:"constol"` // relative conservation tolerance
	MaxIter int     `json:"maxiter"` // maximum number of repair iterations
}

// SetDefault sets default values
func (o *TolData) SetDefault() {
	d := remap.DefaultTols()
	o.MinDist = d.MinDist
	o.MinVol = d.MinVol
	o.ConsTol = d.ConsTol
	o.MaxIter = d.MaxIter
}

// Tols returns the tolerance set
func (o *TolData) Tols() remap.Tolerances {
	return remap.Tolerances{MinDist: o.MinDist, MinVol: o.MinVol, ConsTol: o.ConsTol, MaxIter: o.MaxIter}
}

// MshData selects an input mesh file or defines a generated grid
type MshData struct {

	// input
	Mshfile string  `json:"mshfile"` // mesh filename; empty means generated grid
	Nx      int     `json:"nx"`      // generated grid: number of cells along x
	Ny      int     `json:"ny"`      // generated grid: number of cells along y
	X0      float64 `json:"x0"`      // generated grid: lower x-coordinate
	Y0      float64 `json:"y0"`      // generated grid: lower y-coordinate
	X1      float64 `json:"x1"`      // generated grid: upper x-coordinate
	Y1      float64 `json:"y1"`      // generated grid: upper y-coordinate

	// derived
	M *Mesh // the mesh
}

// Setup reads or generates the mesh
func (o *MshData) Setup(dir string) {
	if o.Mshfile != "" {
		o.M = ReadMsh(dir, o.Mshfile)
		if o.M == nil {
			chk.Panic("cannot read mesh file %q", filepath.Join(dir, o.Mshfile))
		}
		return
	}
	o.M = GenGrid(o.Nx, o.Ny, o.X0, o.Y0, o.X1, o.Y1)
	if o.M == nil {
		chk.Panic("cannot generate %d x %d grid on [%g,%g] x [%g,%g]", o.Nx, o.Ny, o.X0, o.X1, o.Y0, o.Y1)
	}
}

// IntfData defines the straight material interface of two-material runs
type IntfData struct {
	Use bool    `json:"use"` // enable the two-material configuration
	Nx  float64 `json:"nx"`  // x-component of the line normal
	Ny  float64 `json:"ny"`  // y-component of the line normal
	D   float64 `json:"d"`   // line offset: nx*x + ny*y = d
}

// VarData defines one variable to remap and how to interpolate it
type VarData struct {
	Name     string    `json:"name"`     // name on the source mesh
	TrgName  string    `json:"trgname"`  // name on the target mesh; empty keeps Name
	Kind     string    `json:"kind"`     // "cell" or "node"
	Field    string    `json:"field"`    // analytic field used to fill the source values
	Prms     []float64 `json:"prms"`     // analytic field parameters
	Order    int       `json:"order"`    // interpolation order: 1 or 2
	Limiter  string    `json:"limiter"`  // gradient limiter; e.g. "barth_jespersen"
	BndLim   string    `json:"bndlim"`   // boundary limiter; e.g. "zero_gradient"
	Bounded  bool      `json:"bounded"`  // enforce bounds during repair
	Lower    float64   `json:"lower"`    // lower bound
	Upper    float64   `json:"upper"`    // upper bound
	Partial  string    `json:"partial"`  // policy for partly covered entities
	Empty    string    `json:"empty"`    // policy for empty entities
	Multimat bool      `json:"multimat"` // remap material by material
}

// PostProcess sets default values and checks the input data
func (o *VarData) PostProcess() {
	if o.Name == "" {
		chk.Panic("variable name cannot be empty")
	}
	if o.TrgName == "" {
		o.TrgName = o.Name
	}
	if o.Kind == "" {
		o.Kind = "cell"
	}
	if o.Kind != "cell" && o.Kind != "node" {
		chk.Panic("variable %q: kind %q is invalid", o.Name, o.Kind)
	}
	if o.Order == 0 {
		o.Order = 1
	}
	if o.Limiter == "" {
		o.Limiter = remap.LimNone
	}
	if o.BndLim == "" {
		o.BndLim = remap.LimNone
	}
	if o.Partial == "" {
		o.Partial = remap.FixShiftedCons
	}
	if o.Empty == "" {
		o.Empty = remap.FixExtrapolate
	}
	if o.Multimat && o.Kind != "cell" {
		chk.Panic("variable %q: material-by-material remap needs cell values", o.Name)
	}
}

// GetKind returns the support kind
func (o *VarData) GetKind() remap.Kind {
	if o.Kind == "node" {
		return remap.NODE
	}
	return remap.CELL
}

// Opts builds the interpolation options of this variable
func (o *VarData) Opts(tols TolData) *remap.InterpOpts {
	opts := remap.DefInterpOpts()
	opts.Order = o.Order
	opts.Limiter = o.Limiter
	opts.BndLimiter = o.BndLim
	opts.Partial = o.Partial
	opts.Empty = o.Empty
	opts.ConsTol = tols.ConsTol
	opts.MaxIter = tols.MaxIter
	if o.Bounded {
		opts.Lower = o.Lower
		opts.Upper = o.Upper
	} else {
		opts.Lower = math.Inf(-1)
		opts.Upper = math.Inf(1)
	}
	return opts
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data Data       `json:"data"`      // global simulation data
	Tols TolData    `json:"tols"`      // numerical tolerances
	Src  MshData    `json:"source"`    // source mesh
	Trg  MshData    `json:"target"`    // target mesh
	Intf IntfData   `json:"interface"` // material interface of two-material runs
	Vars []*VarData `json:"variables"` // variables to remap

	// derived
	DirOut string // directory to save results
	Key    string // simulation key; e.g. mysim01.sim => mysim01
}

// ReadSim reads all simulation data from a .sim JSON file
func ReadSim(simfilepath string, erasefiles bool) *Simulation {

	// new sim
	var o Simulation

	// read file
	b, err := os.ReadFile(simfilepath)
	if err != nil {
		chk.Panic("ReadSim: cannot read simulation file %q", simfilepath)
	}

	// set default values
	o.Data.SetDefault()
	o.Tols.SetDefault()

	// decode
	err = json.Unmarshal(b, &o)
	if err != nil {
		chk.Panic("ReadSim: cannot unmarshal simulation file %q", simfilepath)
	}

	// input directory and filename key
	dir := filepath.Dir(simfilepath)
	fn := filepath.Base(simfilepath)
	dir = os.ExpandEnv(dir)
	o.Key = io.FnKey(fn)

	// output directory
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = "/tmp/portage/" + o.Key
	}

	// create directory and erase previous simulation results
	if erasefiles {
		err = os.MkdirAll(o.DirOut, 0777)
		if err != nil {
			chk.Panic("cannot create directory for output results (%s): %v", o.DirOut, err)
		}
		io.RemoveAll(io.Sf("%s/%s*", o.DirOut, o.Key))
	}

	// check coordinate system
	o.Data.Csys()

	// meshes
	o.Src.Setup(dir)
	o.Trg.Setup(dir)

	// variables
	if len(o.Vars) < 1 {
		chk.Panic("ReadSim: at least one variable must be defined in %q", simfilepath)
	}
	for _, v := range o.Vars {
		v.PostProcess()
		if v.Multimat && !o.Intf.Use {
			chk.Panic("variable %q needs the material interface data", v.Name)
		}
	}
	return &o
}

// Nmat returns the number of materials
func (o *Simulation) Nmat() int {
	if o.Intf.Use {
		return 2
	}
	return 1
}

// Caps assembles the optional capabilities available to the remap
func (o *Simulation) Caps() (caps remap.Caps, err error) {
	if o.Intf.Use {
		lr, e := NewLineRecon(o.Src.M, o.Intf.Nx, o.Intf.Ny, o.Intf.D, o.Tols.MinDist)
		if e != nil {
			return caps, e
		}
		caps.Recon = lr
	}
	return
}

// VarNames returns the source names of all variables
func (o *Simulation) VarNames() (names []string) {
	for _, v := range o.Vars {
		names = append(names, v.Name)
	}
	return
}
