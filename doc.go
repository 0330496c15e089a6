// Package lvsolve is the adapter layer between row-distributed sparse matrices
// and the solver backends that consume them.
//
// What is in the box?
//
//	A small set of packages that turn a matrix spread over many ranks into the
//	flat arrays a direct solver wants, and a multigrid hierarchy into the
//	operator an iterative solver wants:
//		• comm/        in-process communicator: ranks, barrier, gather, all-reduce
//		• distmat/     row-partitioned sparse matrix with an insert → fill lifecycle
//		• matrix/      CRS / CCS artifacts with invariant checks, small Dense helper
//		• adapter/     MatrixAdapter: global CRS / CCS extraction + size queries
//		• precond/     OperatorAdapter: multigrid hierarchy as a linear operator
//		• metrics/     Recorder interface with Prometheus implementation
//		• mmio/        Matrix Market coordinate reader for the driver
//		• config/      YAML + environment configuration for the driver
//		• cmd/lvsolve  driver exercising the whole stack
//
// Quick ASCII picture of an extraction:
//
//	rank 0: rows {0,1,2} ─┐
//	rank 1: rows {3,4}   ─┼─ gather ─► root: rowptr | colind | values
//	rank 2: rows {5}     ─┘
//
// Every extraction is collective: all ranks of the communicator call GetCRS
// (or GetCCS) together. Only the designated root, or every rank when the
// adapter is replicated, receives the assembled arrays.
//
// Errors surfaced by the adapters wrap one of the sentinels in this package
// and are matched with errors.Is.
package lvsolve
