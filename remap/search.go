// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package remap

import (
	"sort"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
)

// Searcher finds, for every target entity of one kind, the source entities
// whose bounding boxes may overlap it. The result is a superset of the true
// overlaps, each list sorted by source id
type Searcher interface {
	Search(src, trg Mesher, kind Kind) ([][]int, error)
}

// sallocators maps searcher names to allocators
var sallocators = make(map[string]func() Searcher)

func init() {
	sallocators["rtree"] = func() Searcher { return &RtreeSearch{} }
	sallocators["brute"] = func() Searcher { return &BruteSearch{} }
}

// NewSearcher returns a searcher by registry name
func NewSearcher(name string) (Searcher, error) {
	alloc, ok := sallocators[name]
	if !ok {
		return nil, cfgerr("cannot find searcher named %q", name)
	}
	return alloc(), nil
}

// RtreeSearch indexes source bounding boxes in an R-tree and queries it
// once per target entity
type RtreeSearch struct{}

// srcBox carries a source entity id through the spatial index
type srcBox struct {
	geom.Polygonal
	id int
}

// Search implements the Searcher interface
func (o *RtreeSearch) Search(src, trg Mesher, kind Kind) (cands [][]int, err error) {
	tree := rtree.NewTree(25, 50)
	ns := src.NumEnts(kind)
	for i := 0; i < ns; i++ {
		b := src.Bounds(kind, i)
		cell := &srcBox{id: i}
		cell.Polygonal = &geom.Bounds{
			Min: geom.Point{X: b.Lo.X, Y: b.Lo.Y},
			Max: geom.Point{X: b.Hi.X, Y: b.Hi.Y},
		}
		tree.Insert(cell)
	}
	nt := trg.NumEnts(kind)
	cands = make([][]int, nt)
	err = ParallelFor(nt, func(j int) error {
		b := trg.Bounds(kind, j)
		qb := &geom.Bounds{
			Min: geom.Point{X: b.Lo.X, Y: b.Lo.Y},
			Max: geom.Point{X: b.Hi.X, Y: b.Hi.Y},
		}
		var ids []int
		for _, item := range tree.SearchIntersect(qb) {
			ids = append(ids, item.(*srcBox).id)
		}
		sort.Ints(ids)
		cands[j] = ids
		return nil
	})
	return
}

// BruteSearch sweeps every source box for every target box. Quadratic;
// useful as a cross-check for the tree
type BruteSearch struct{}

// Search implements the Searcher interface
func (o *BruteSearch) Search(src, trg Mesher, kind Kind) (cands [][]int, err error) {
	ns := src.NumEnts(kind)
	nt := trg.NumEnts(kind)
	cands = make([][]int, nt)
	err = ParallelFor(nt, func(j int) error {
		tb := trg.Bounds(kind, j)
		var ids []int
		for i := 0; i < ns; i++ {
			if tb.Overlap(src.Bounds(kind, i)) {
				ids = append(ids, i)
			}
		}
		cands[j] = ids
		return nil
	})
	return
}
