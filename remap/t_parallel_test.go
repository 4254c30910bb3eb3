// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package remap

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_par01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("par01. chunked loop touches every entity once")

	n := 1003
	v := make([]float64, n)
	err := ParallelFor(n, func(i int) error {
		v[i] += float64(i * i)
		return nil
	})
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	for i := 0; i < n; i++ {
		chk.Float64(tst, io.Sf("v%d", i), 1e-17, v[i], float64(i*i))
	}

	// errors propagate
	err = ParallelFor(10, func(i int) error {
		if i == 7 {
			return cfgerr("boom at %d", i)
		}
		return nil
	})
	if err == nil {
		tst.Errorf("error must propagate\n")
		return
	}

	// empty ranges are fine
	if err := ParallelFor(0, func(i int) error { return nil }); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
}
