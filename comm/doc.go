// Package comm provides an in-process communicator for rank-parallel code.
//
// A World is a fixed group of ranks. World.Run executes the same function once
// per rank, each on its own goroutine, and hands it a *Comm carrying the rank
// identity. Ranks talk to each other only through collectives:
//
//	Barrier:      every rank waits for every other rank.
//	Gather:       root receives one value per rank, indexed by rank.
//	Allgather:    every rank receives one value per rank.
//	Bcast:        every rank receives root's value.
//	AllreduceInt: every rank receives the sum (or max) of an int.
//
// Collective discipline:
//
//	Every rank must enter the same collectives in the same order. A rank that
//	skips a collective leaves its peers waiting; they are released only when
//	the World aborts (a rank returned an error, or the Run context ended), in
//	which case the pending collective returns ErrAborted.
//
// Self returns a single-rank communicator for serial use without Run.
package comm
