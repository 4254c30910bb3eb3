// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package remap

import "github.com/jsdomine/portage/geo"

// intersectKind computes the overlap moments between every target control
// volume of one kind and its candidate source control volumes. Weights with
// volume below tols.MinVol are dropped; targets with no candidates get an
// empty list
func intersectKind(src, trg Mesher, kind Kind, cands [][]int, csys geo.CoordSys, tols Tolerances) (w [][]Weight, err error) {
	nt := trg.NumEnts(kind)
	w = make([][]Weight, nt)
	err = ParallelFor(nt, func(j int) error {
		tpoly := trg.CtrlVol(kind, j)
		var ws []Weight
		for _, s := range cands[j] {
			m, e := geo.IntersectMoments(src.CtrlVol(kind, s), tpoly, 1, csys, tols.MinDist, tols.MinVol)
			if e != nil {
				return e
			}
			if m[0] > tols.MinVol {
				ws = append(ws, Weight{ID: s, M: m})
			}
		}
		w[j] = ws
		return nil
	})
	return
}

// intersectMats computes, for every material, the overlap moments between
// target cells and the material sub-regions of candidate source cells. The
// materials are independent; candidates are the CELL candidates
func intersectMats(src Mesher, recon MatPolyer, trg Mesher, cands [][]int, csys geo.CoordSys, tols Tolerances) (w [][][]Weight, err error) {
	nmat := recon.NumMats()
	nt := trg.NumEnts(CELL)
	w = make([][][]Weight, nmat)
	for mat := 0; mat < nmat; mat++ {
		mat := mat
		w[mat] = make([][]Weight, nt)
		err = ParallelFor(nt, func(j int) error {
			tpoly := trg.CtrlVol(CELL, j)
			var ws []Weight
			for _, s := range cands[j] {
				spoly := recon.MatPoly(s, mat)
				if len(spoly) < 3 {
					continue
				}
				m, e := geo.IntersectMoments(spoly, tpoly, 1, csys, tols.MinDist, tols.MinVol)
				if e != nil {
					return e
				}
				if m[0] > tols.MinVol {
					ws = append(ws, Weight{ID: s, M: m})
				}
			}
			w[mat][j] = ws
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return
}
