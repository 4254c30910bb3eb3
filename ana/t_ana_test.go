// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_fields01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fields01. values and exact integrals")

	// constant
	f, err := New("constant", []float64{2.5})
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.Float64(tst, "constant: f(3,7)", 1e-17, f.F(3, 7), 2.5)
	chk.Float64(tst, "constant: int over [0,2]x[0,2]", 1e-15, f.Integral(0, 0, 2, 2), 10)

	// linear
	f, err = New("linear", []float64{1, 2, 3})
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.Float64(tst, "linear: f(0.5,0.5)", 1e-15, f.F(0.5, 0.5), 3.5)
	chk.Float64(tst, "linear: int over [0,1]x[0,1]", 1e-15, f.Integral(0, 0, 1, 1), 3.5)
	chk.Float64(tst, "linear: int over [1,2]x[0,1]", 1e-15, f.Integral(1, 0, 2, 1), 5.5)

	// quadratic
	f, err = New("quadratic", []float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.Float64(tst, "quadratic: f(1,1)", 1e-15, f.F(1, 1), 21)
	chk.Float64(tst, "quadratic: int over [0,2]x[0,1]", 1e-13, f.Integral(0, 0, 2, 1), 86.0/3.0)

	// product
	f, err = New("product", []float64{2})
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.Float64(tst, "product: f(3,4)", 1e-15, f.F(3, 4), 24)
	chk.Float64(tst, "product: int over [0,1]x[0,1]", 1e-15, f.Integral(0, 0, 1, 1), 0.5)
	chk.Float64(tst, "product: int over [1,2]x[0,1]", 1e-15, f.Integral(1, 0, 2, 1), 1.5)

	// step
	f, err = New("step", []float64{0.5, 1, 5})
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.Float64(tst, "step: f(0.25,0)", 1e-17, f.F(0.25, 0), 1)
	chk.Float64(tst, "step: f(0.75,0)", 1e-17, f.F(0.75, 0), 5)
	chk.Float64(tst, "step: int over [0,1]x[0,1]", 1e-15, f.Integral(0, 0, 1, 1), 3)
	chk.Float64(tst, "step: int right of the jump", 1e-15, f.Integral(0.6, 0, 1, 1), 2)

	// defaults
	f, err = New("linear", nil)
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.Float64(tst, "linear defaults: f(1,2)", 1e-15, f.F(1, 2), 3)
}

func Test_fields02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fields02. unknown field name")

	f, err := New("gaussian", nil)
	if err == nil || f != nil {
		tst.Errorf("allocating an unknown field must fail\n")
		return
	}
	io.Pfgrey("err = %v\n", err)
}
