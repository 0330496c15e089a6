// Package adapter exposes a row-distributed sparse matrix to direct-solver
// backends as globally indexed compressed arrays.
//
// A MatrixAdapter wraps one rank's *distmat.CrsMatrix. Size queries delegate
// to the matrix and never communicate. GetCRS and GetCCS are collective: every
// rank of the matrix's communicator calls them in the same step, local
// nonzeros are gathered, and the receiving rank(s) assemble
//
//	CRS: rowptr (len rows+1) | colind (len nnz) | values (len nnz)
//	CCS: colptr (len cols+1) | rowind (len nnz) | values (len nnz)
//
// Ordering contract:
//
//	CRS: entries inside a row slice are an unordered set. Data arriving from
//	     different ranks may interleave; do not rely on insertion order.
//	CCS: row indices inside every column slice are strictly increasing; the
//	     adapter sorts each column explicitly.
//
// Receivers:
//
//	By default only WithRoot's rank (0) receives the arrays; WithReplicated
//	makes every rank a receiver. Non-receivers get nnz == 0 and untouched
//	buffers, which is part of the collective contract and not an error.
//
// Failure agreement:
//
//	Before any data moves, ranks agree on their local preconditions (fill
//	state, receiver buffer sizes) through one all-reduce. If any rank fails,
//	every rank returns an error wrapping the same lvsolve sentinel, and no rank
//	is left waiting in the gather.
package adapter
