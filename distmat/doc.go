// Package distmat is a minimal row-distributed sparse matrix engine.
//
// Rows of a global matrix are assigned to the ranks of a comm.World through a
// one-to-one Map. Each rank stores its own rows as (global column, value)
// lists and may insert entries for rows it does not own; those are shipped to
// their owners when the matrix is fill-completed.
//
// Lifecycle:
//
//	New → InsertGlobalValues* → FillComplete (collective) → read-only queries
//	                 ▲                                  │
//	                 └──────────── ResumeFill ◄─────────┘
//
// FillComplete sums duplicate (row, col) entries, orders each row by column
// and caches the global nonzero count and the maximum row length, so every
// size query afterwards is O(1) and communication-free.
package distmat
