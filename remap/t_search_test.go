// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package remap

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/jsdomine/portage/geo"
)

func Test_search01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("search01. rtree and brute force agree")

	src := newGridMesh(4, 4, 0, 0, 1, 1)
	trg := newGridMesh(5, 5, 0, 0, 1, 1)

	st, err := NewSearcher("rtree")
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	sb, err := NewSearcher("brute")
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	ct, err := st.Search(src, trg, CELL)
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	cb, err := sb.Search(src, trg, CELL)
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.Int(tst, "ntargets", len(ct), 25)
	for j := range ct {
		chk.Ints(tst, io.Sf("cands %d", j), ct[j], cb[j])
		if len(ct[j]) == 0 {
			tst.Errorf("target %d must have candidates\n", j)
			return
		}
	}
}

func Test_search02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("search02. candidates form a superset of true overlaps")

	src := newGridMesh(3, 3, 0, 0, 1, 1)
	trg := newGridMesh(4, 4, 0, 0, 1, 1)

	s, err := NewSearcher("rtree")
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	cands, err := s.Search(src, trg, CELL)
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	tols := DefaultTols()
	for j := range cands {
		inlist := make(map[int]bool)
		for _, i := range cands[j] {
			inlist[i] = true
		}
		tpoly := trg.CtrlVol(CELL, j)
		for i := 0; i < src.NumEnts(CELL); i++ {
			m, e := geo.IntersectMoments(src.CtrlVol(CELL, i), tpoly, 1, geo.Cartesian, tols.MinDist, tols.MinVol)
			if e != nil {
				tst.Errorf("%v\n", e)
				return
			}
			if m[0] > tols.MinVol && !inlist[i] {
				tst.Errorf("pair (%d,%d) overlaps but is not a candidate\n", i, j)
				return
			}
		}
	}
}

func Test_search03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("search03. unknown strategy name")

	_, err := NewSearcher("voodoo")
	if err == nil {
		tst.Errorf("unknown searcher must fail\n")
		return
	}
	if _, ok := err.(*ConfigError); !ok {
		tst.Errorf("error must be a ConfigError. got %v\n", err)
		return
	}
	io.Pfgrey("err = %v\n", err)
}
