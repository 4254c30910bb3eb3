// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build ignore

package main

import (
	"github.com/cpmech/gosl/io"
	"github.com/jsdomine/portage/inp"
	"github.com/jsdomine/portage/out"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// input data
	mshfn, fnkey := io.ArgToFilename(0, "examples/tri", ".msh", true)
	dirout := "/tmp/portage"
	io.Pf("\n%s\n", io.ArgsTable(
		"mesh filename", "mshfn", mshfn,
		"output directory", "dirout", dirout,
	))

	// read mesh
	msh := inp.ReadMsh("", mshfn)
	if msh == nil {
		io.PfRed("cannot read mesh file %q\n", mshfn)
		return
	}

	// write vtu file
	out.WriteVtu(dirout, fnkey, msh, inp.NewState(msh, 1))
}
