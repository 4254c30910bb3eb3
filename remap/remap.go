// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package remap implements conservative transfer of cell and node fields
// between two unstructured meshes sharing a physical domain. The pipeline
// is: candidate search over bounding boxes, exact polygon intersection
// producing integration moments, first or second order interpolation with
// gradient limiting, and detection/repair of coverage mismatch
package remap

import (
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/jsdomine/portage/geo"
	"gonum.org/v1/gonum/floats"
)

// ConfigError indicates an invalid engine configuration or an operation
// issued out of order
type ConfigError struct {
	Msg string
}

// Error returns the message
func (o *ConfigError) Error() string {
	return o.Msg
}

// cfgerr returns a formatted ConfigError
func cfgerr(msg string, prm ...interface{}) *ConfigError {
	return &ConfigError{io.Sf(msg, prm...)}
}

// Caps bundles the optional capabilities, resolved once at construction.
// Nil members mean the capability is absent; operations needing an absent
// capability fail with a ConfigError
type Caps struct {
	Recon MatPolyer     // interface reconstruction
	Redis Redistributor // distributed source exchange
}

// InterpOpts selects how one variable is interpolated and repaired
type InterpOpts struct {
	Order      int     // reconstruction order: 1 or 2
	Limiter    string  // gradient limiter (order 2)
	BndLimiter string  // gradient limiter on boundary entities (order 2)
	Lower      float64 // admissible lower bound for repair clamps
	Upper      float64 // admissible upper bound for repair clamps
	Partial    string  // repair policy for partly covered entities
	Empty      string  // repair policy for uncovered entities
	ConsTol    float64 // conservation tolerance; 0 uses the engine's
	MaxIter    int     // repair budget; 0 uses the engine's
}

// DefInterpOpts returns the default interpolation options: first order,
// no limiting, unbounded values, shifted-conservative/extrapolate repair
func DefInterpOpts() *InterpOpts {
	return &InterpOpts{
		Order:      1,
		Limiter:    LimNone,
		BndLimiter: LimNone,
		Lower:      math.Inf(-1),
		Upper:      math.Inf(1),
		Partial:    FixShiftedCons,
		Empty:      FixExtrapolate,
	}
}

// Engine drives a remap between one source and one target mesh/state pair.
// For each entity kind carrying registered variables the engine walks the
// sequence search -> intersect -> interpolate; interpolation can then be
// repeated for any number of variables over the cached weights
type Engine struct {

	// input
	Src    Mesher   // source mesh; swapped for the redistributed view on distributed runs
	SrcSta Stater   // source state; swapped along with Src
	Trg    Mesher   // target mesh
	TrgSta Stater   // target state; written in place
	Vars   []string // source variables to transfer

	// configuration; change only before ComputeWeights
	Csys    geo.CoordSys // coordinate system of both meshes
	Tols    Tolerances   // numerical tolerances
	ChkMM   bool         // analyze coverage mismatch after intersection
	SrchKey string       // searcher registry name

	// optional capabilities
	Recon MatPolyer
	Redis Redistributor

	// results
	RepairOK map[string]bool // repair convergence per written target variable

	// derived
	kinds      []Kind          // kinds carrying registered variables, in fixed order
	registered map[string]bool // variable registration set
	hasmm      bool            // any multimaterial variable registered

	// state machine
	xdone       bool // source exchange done
	searched    map[Kind]bool
	intersected map[Kind]bool
	matdone     bool

	// caches
	cands  map[Kind][][]int
	wgts   map[Kind][][]Weight
	matw   [][][]Weight // [material][target] weights
	mminfo map[Kind]*MismatchInfo
	svols  map[Kind][]float64 // source control-volume measures
	tvols  map[Kind][]float64 // target control-volume measures
}

// New returns a remap engine connecting a source mesh/state pair to a
// target pair. vars lists the source variables to transfer; an empty list
// means all of them. caps may be nil when no optional capability exists
func New(src Mesher, srcSta Stater, trg Mesher, trgSta Stater, vars []string, caps *Caps) (o *Engine, err error) {
	if src.Ndim() != 2 || trg.Ndim() != 2 {
		return nil, cfgerr("meshes must be 2D. got ndim=%d and ndim=%d", src.Ndim(), trg.Ndim())
	}
	if len(vars) == 0 {
		vars = srcSta.Names()
	}
	o = &Engine{
		Src:         src,
		SrcSta:      srcSta,
		Trg:         trg,
		TrgSta:      trgSta,
		Vars:        vars,
		Csys:        geo.Cartesian,
		Tols:        DefaultTols(),
		ChkMM:       true,
		SrchKey:     "rtree",
		RepairOK:    make(map[string]bool),
		registered:  make(map[string]bool),
		searched:    make(map[Kind]bool),
		intersected: make(map[Kind]bool),
		cands:       make(map[Kind][][]int),
		wgts:        make(map[Kind][][]Weight),
		mminfo:      make(map[Kind]*MismatchInfo),
		svols:       make(map[Kind][]float64),
		tvols:       make(map[Kind][]float64),
	}
	if caps != nil {
		o.Recon = caps.Recon
		o.Redis = caps.Redis
	}
	used := make(map[Kind]bool)
	for _, name := range vars {
		if !srcSta.Has(name) {
			return nil, cfgerr("cannot find variable %q in source state", name)
		}
		kind := srcSta.Kind(name)
		if kind != CELL && kind != NODE {
			return nil, cfgerr("cannot remap variable %q: kind %d is not supported", name, kind)
		}
		if srcSta.Type(name) == MultiMat {
			if kind != CELL {
				return nil, cfgerr("multimaterial variable %q must live on cells", name)
			}
			o.hasmm = true
		}
		used[kind] = true
		o.registered[name] = true
	}
	for _, kind := range Kinds {
		if used[kind] {
			o.kinds = append(o.kinds, kind)
		}
	}
	return
}

// exchange swaps the source pair for the redistributed view, once, when a
// distributed run is reported. Serial runs keep the direct pair
func (o *Engine) exchange() (err error) {
	if o.xdone {
		return
	}
	o.xdone = true
	if o.Redis != nil && o.Redis.Distributed() {
		o.Src, o.SrcSta, err = o.Redis.Redistribute(o.Src, o.SrcSta, o.Trg)
	}
	return
}

// Search finds candidate source entities for every target entity of one
// kind. Rerunning it recomputes the same candidates
func (o *Engine) Search(kind Kind) (err error) {
	if !o.hasKind(kind) {
		return cfgerr("kind %q has no registered variables", kind.String())
	}
	if err = o.exchange(); err != nil {
		return
	}
	srch, err := NewSearcher(o.SrchKey)
	if err != nil {
		return
	}
	o.cands[kind], err = srch.Search(o.Src, o.Trg, kind)
	if err != nil {
		return
	}
	o.searched[kind] = true
	return
}

// Intersect computes intersection weights for one kind and, when mismatch
// checking is on, analyzes coverage immediately. Requires Search
func (o *Engine) Intersect(kind Kind) (err error) {
	if !o.searched[kind] {
		return cfgerr("cannot intersect %q entities before searching them", kind.String())
	}
	o.wgts[kind], err = intersectKind(o.Src, o.Trg, kind, o.cands[kind], o.Csys, o.Tols)
	if err != nil {
		return
	}
	o.svols[kind] = measures(o.Src, kind, o.Csys)
	o.tvols[kind] = measures(o.Trg, kind, o.Csys)
	o.intersected[kind] = true
	if o.ChkMM {
		o.mminfo[kind] = detectMismatch(kind, o.wgts[kind], o.svols[kind], o.tvols[kind], o.Tols)
		if o.mminfo[kind].Mismatched {
			io.Pf("mismatched %q domains: src=%g trg=%g intersected=%g\n",
				kind.String(), o.mminfo[kind].VolSrc, o.mminfo[kind].VolTrg, o.mminfo[kind].VolInt)
		}
	}
	return
}

// IntersectMats computes per-material intersection weights over the CELL
// candidates. Requires the interface-reconstruction capability and a
// completed cell search
func (o *Engine) IntersectMats() (err error) {
	if !o.hasmm {
		return cfgerr("no multimaterial variables are registered")
	}
	if o.Recon == nil {
		return cfgerr("multimaterial intersection requires the interface-reconstruction capability")
	}
	if !o.searched[CELL] {
		return cfgerr("cannot intersect materials before searching cells")
	}
	if o.Recon.NumMats() != o.SrcSta.NumMats() {
		return cfgerr("reconstructor knows %d materials but the source state has %d", o.Recon.NumMats(), o.SrcSta.NumMats())
	}
	o.matw, err = intersectMats(o.Src, o.Recon, o.Trg, o.cands[CELL], o.Csys, o.Tols)
	if err != nil {
		return
	}
	o.matdone = true
	return
}

// ComputeWeights runs search and intersection for every registered kind,
// plus the material intersection when multimaterial variables exist. After
// it returns, Interpolate may be called any number of times
func (o *Engine) ComputeWeights() (err error) {
	for _, kind := range o.kinds {
		if err = o.Search(kind); err != nil {
			return
		}
		if err = o.Intersect(kind); err != nil {
			return
		}
	}
	if o.hasmm {
		if err = o.IntersectMats(); err != nil {
			return
		}
	}
	return
}

// Interpolate transfers one source variable onto one target variable, which
// may have a different name. Both must exist, live on the same kind, and
// have the same field type. Order 2 computes the limited gradient first.
// On mismatched domains the target values are repaired after writing
func (o *Engine) Interpolate(srcvar, trgvar string, opts *InterpOpts) (err error) {
	if opts == nil {
		opts = DefInterpOpts()
	}
	if !o.registered[srcvar] {
		return cfgerr("variable %q is not registered for remap", srcvar)
	}
	if !o.TrgSta.Has(trgvar) {
		return cfgerr("cannot find variable %q in target state", trgvar)
	}
	kind := o.SrcSta.Kind(srcvar)
	if o.TrgSta.Kind(trgvar) != kind {
		return cfgerr("variables %q and %q live on different entity kinds", srcvar, trgvar)
	}
	ftype := o.SrcSta.Type(srcvar)
	if o.TrgSta.Type(trgvar) != ftype {
		return cfgerr("variables %q and %q have different field types", srcvar, trgvar)
	}
	if !o.intersected[kind] {
		return cfgerr("cannot interpolate %q before intersecting %q entities", srcvar, kind.String())
	}
	itp, err := NewInterpolator(opts.Order)
	if err != nil {
		return
	}
	if ftype == MultiMat {
		return o.interpMM(srcvar, trgvar, kind, itp, opts)
	}
	svals := o.SrcSta.Vals(srcvar)
	tvals := o.TrgSta.Vals(trgvar)
	var grads [][]float64
	if opts.Order == 2 {
		grads, err = gradients(o.Src, kind, svals, opts.Limiter, opts.BndLimiter)
		if err != nil {
			return
		}
	}
	if err = itp.Interpolate(o.Src, kind, svals, o.wgts[kind], grads, tvals); err != nil {
		return
	}
	if o.ChkMM && o.mminfo[kind] != nil && o.mminfo[kind].Mismatched {
		ropts := RepairOpts{
			Partial: opts.Partial,
			Empty:   opts.Empty,
			Lower:   opts.Lower,
			Upper:   opts.Upper,
			ConsTol: opts.ConsTol,
			MaxIter: opts.MaxIter,
		}
		if ropts.ConsTol == 0 {
			ropts.ConsTol = o.Tols.ConsTol
		}
		if ropts.MaxIter == 0 {
			ropts.MaxIter = o.Tols.MaxIter
		}
		srcTotal := floats.Dot(svals, o.svols[kind])
		neighs := func(id int) []int { return o.Trg.Neighs(kind, id) }
		conv, e := Repair(tvals, o.mminfo[kind], o.tvols[kind], neighs, srcTotal, ropts)
		if e != nil {
			return e
		}
		o.RepairOK[trgvar] = conv
		if !conv {
			io.Pfyel("repair of %q did not reach the conservation tolerance within %d iterations\n", trgvar, ropts.MaxIter)
		}
	}
	return
}

// interpMM transfers one multimaterial variable, material by material, over
// the per-material weights
func (o *Engine) interpMM(srcvar, trgvar string, kind Kind, itp Interpolator, opts *InterpOpts) (err error) {
	if !o.matdone {
		return cfgerr("cannot interpolate multimaterial variable %q before intersecting materials", srcvar)
	}
	nmat := o.SrcSta.NumMats()
	for mat := 0; mat < nmat; mat++ {
		svals := o.SrcSta.MatVals(srcvar, mat)
		tvals := o.TrgSta.MatVals(trgvar, mat)
		var grads [][]float64
		if opts.Order == 2 {
			grads, err = gradients(o.Src, kind, svals, opts.Limiter, opts.BndLimiter)
			if err != nil {
				return
			}
		}
		if err = itp.Interpolate(o.Src, kind, svals, o.matw[mat], grads, tvals); err != nil {
			return
		}
	}
	return
}

// InterpolateAll transfers every registered variable onto the target under
// the same name and options
func (o *Engine) InterpolateAll(opts *InterpOpts) (err error) {
	for _, name := range o.Vars {
		if err = o.Interpolate(name, name, opts); err != nil {
			return
		}
	}
	return
}

// Mismatch returns the cached coverage analysis of one kind; nil before
// intersection or when checking is disabled
func (o *Engine) Mismatch(kind Kind) *MismatchInfo {
	return o.mminfo[kind]
}

// Weights returns the cached intersection weights of one kind; nil before
// intersection
func (o *Engine) Weights(kind Kind) [][]Weight {
	return o.wgts[kind]
}

// Candidates returns the cached search results of one kind; nil before
// searching
func (o *Engine) Candidates(kind Kind) [][]int {
	return o.cands[kind]
}

// hasKind tells whether any registered variable lives on the given kind
func (o *Engine) hasKind(kind Kind) bool {
	for _, k := range o.kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// measures returns the control-volume measure of every entity of one kind
func measures(m Mesher, kind Kind, csys geo.CoordSys) []float64 {
	n := m.NumEnts(kind)
	v := make([]float64, n)
	ParallelFor(n, func(i int) error {
		v[i] = geo.Measure(m.CtrlVol(kind, i), csys)
		return nil
	})
	return v
}
