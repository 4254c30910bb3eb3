// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package remap

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ParallelFor runs f(i) for every i in [0,n) using chunked workers. Each f
// must touch only data owned by entity i; reductions belong outside. The
// first error stops the caller; remaining chunks finish their entities
func ParallelFor(n int, f func(i int) error) error {
	if n <= 0 {
		return nil
	}
	nw := runtime.GOMAXPROCS(0)
	if nw > n {
		nw = n
	}
	chunk := (n + nw - 1) / nw
	g := new(errgroup.Group)
	g.SetLimit(nw)
	for lo := 0; lo < n; lo += chunk {
		lo := lo
		hi := min(lo+chunk, n)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := f(i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
