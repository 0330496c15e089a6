// Package matrix holds the globally indexed sparse artifacts produced by the
// format adapter, plus a small dense matrix used for verification and printing.
//
// The package provides:
//
//   - CRS: compressed row storage (RowPtr, ColInd, Values). Entries within a
//     row slice form an unordered set.
//   - CCS: compressed column storage (ColPtr, RowInd, Values). Row indices
//     within a column slice are strictly increasing.
//   - Validate on both, enforcing pointer monotonicity, index bounds and, for
//     CCS, the ordering guarantee.
//   - Dense: row-major generic dense matrix with bounds-checked At/Set.
//
// All types are generic over Scalar (float32, float64, complex64, complex128).
//
// See the examples in this package and adapter for usage patterns.
package matrix
