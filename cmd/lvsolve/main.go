// SPDX-License-Identifier: MIT

// Command lvsolve loads a Matrix Market file, distributes its rows over
// in-process ranks, and drives the format and preconditioner adapters.
//
//	lvsolve extract --ranks 4 --map roundrobin --format ccs poisson.mtx
//	lvsolve precond --ranks 2 --damping 0.8 poisson.mtx
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "lvsolve:", err)
		os.Exit(1)
	}
}
