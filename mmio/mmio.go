// SPDX-License-Identifier: MIT

// Package mmio reads sparse matrices in Matrix Market coordinate format.
//
// Supported: object "matrix", format "coordinate", fields real, integer and
// pattern (value 1), symmetries general, symmetric and skew-symmetric. Indices
// in the file are 1-based; returned triplets are 0-based. Symmetric storage
// is expanded to both triangles. Duplicate entries are returned as they
// appear; distmat sums them at FillComplete.
package mmio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvsolve/matrix"
)

var (
	// ErrBadHeader is returned when the banner or size line is malformed.
	ErrBadHeader = errors.New("mmio: malformed header")

	// ErrUnsupported is returned for valid but unsupported banners.
	ErrUnsupported = errors.New("mmio: unsupported matrix type")

	// ErrBadEntry is returned for an unparsable or out-of-range entry line.
	ErrBadEntry = errors.New("mmio: malformed entry")
)

const banner = "%%MatrixMarket"

// Header is the parsed banner line.
type Header struct {
	Object   string
	Format   string
	Field    string
	Symmetry string
}

// Coordinate is a matrix read from a coordinate file.
type Coordinate struct {
	Header
	Rows, Cols int
	// Entries holds the stored entries plus the mirrored triangle for
	// symmetric matrices.
	Entries []matrix.Triplet[float64]
}

// ReadFile opens path and calls Read.
func ReadFile(path string) (*Coordinate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mmio.ReadFile: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses a coordinate Matrix Market stream.
//
// Implementation:
//   - Stage 1: banner, checked against the supported types.
//   - Stage 2: skip comments and blank lines; read "rows cols nnz".
//   - Stage 3: read exactly nnz entries, mirroring off-diagonal ones for
//     symmetric storage.
//
// Complexity: O(file size).
func Read(r io.Reader) (*Coordinate, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	next := func() (string, bool) {
		for sc.Scan() {
			line++
			s := strings.TrimSpace(sc.Text())
			if s == "" || strings.HasPrefix(s, "%") {
				continue
			}
			return s, true
		}
		return "", false
	}

	// Stage 1
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("mmio.Read: %w", err)
		}
		return nil, fmt.Errorf("mmio.Read: empty input: %w", ErrBadHeader)
	}
	line++
	h, err := parseBanner(sc.Text())
	if err != nil {
		return nil, err
	}

	// Stage 2
	sizeLine, ok := next()
	if !ok {
		return nil, fmt.Errorf("mmio.Read: missing size line: %w", ErrBadHeader)
	}
	dims, err := atoiFields(sizeLine, 3)
	if err != nil || dims[0] < 0 || dims[1] < 0 || dims[2] < 0 {
		return nil, fmt.Errorf("mmio.Read: line %d: size %q: %w", line, sizeLine, ErrBadHeader)
	}
	rows, cols, nnz := dims[0], dims[1], dims[2]
	if h.Symmetry != "general" && rows != cols {
		return nil, fmt.Errorf("mmio.Read: %s matrix is %dx%d: %w", h.Symmetry, rows, cols, ErrBadHeader)
	}

	// Stage 3
	out := &Coordinate{Header: h, Rows: rows, Cols: cols, Entries: make([]matrix.Triplet[float64], 0, nnz)}
	for k := 0; k < nnz; k++ {
		s, ok := next()
		if !ok {
			if err := sc.Err(); err != nil {
				return nil, fmt.Errorf("mmio.Read: %w", err)
			}
			return nil, fmt.Errorf("mmio.Read: %d of %d entries: %w", k, nnz, ErrBadEntry)
		}
		t, err := parseEntry(s, h.Field, rows, cols)
		if err != nil {
			return nil, fmt.Errorf("mmio.Read: line %d: %w", line, err)
		}
		out.Entries = append(out.Entries, t)
		if t.Row == t.Col {
			continue
		}
		switch h.Symmetry {
		case "symmetric":
			out.Entries = append(out.Entries, matrix.Triplet[float64]{Row: t.Col, Col: t.Row, Val: t.Val})
		case "skew-symmetric":
			out.Entries = append(out.Entries, matrix.Triplet[float64]{Row: t.Col, Col: t.Row, Val: -t.Val})
		}
	}

	return out, nil
}

func parseBanner(s string) (Header, error) {
	f := strings.Fields(strings.ToLower(s))
	if len(f) != 5 || f[0] != strings.ToLower(banner) {
		return Header{}, fmt.Errorf("mmio.Read: banner %q: %w", s, ErrBadHeader)
	}
	h := Header{Object: f[1], Format: f[2], Field: f[3], Symmetry: f[4]}
	switch {
	case h.Object != "matrix", h.Format != "coordinate":
		return h, fmt.Errorf("mmio.Read: %s %s: %w", h.Object, h.Format, ErrUnsupported)
	case h.Field != "real" && h.Field != "integer" && h.Field != "pattern":
		return h, fmt.Errorf("mmio.Read: field %s: %w", h.Field, ErrUnsupported)
	case h.Symmetry != "general" && h.Symmetry != "symmetric" && h.Symmetry != "skew-symmetric":
		return h, fmt.Errorf("mmio.Read: symmetry %s: %w", h.Symmetry, ErrUnsupported)
	case h.Field == "pattern" && h.Symmetry == "skew-symmetric":
		return h, fmt.Errorf("mmio.Read: skew-symmetric pattern: %w", ErrUnsupported)
	}

	return h, nil
}

func parseEntry(s, field string, rows, cols int) (matrix.Triplet[float64], error) {
	f := strings.Fields(s)
	want := 3
	if field == "pattern" {
		want = 2
	}
	if len(f) != want {
		return matrix.Triplet[float64]{}, fmt.Errorf("%q has %d fields, want %d: %w", s, len(f), want, ErrBadEntry)
	}
	i, err1 := strconv.Atoi(f[0])
	j, err2 := strconv.Atoi(f[1])
	if err1 != nil || err2 != nil || i < 1 || i > rows || j < 1 || j > cols {
		return matrix.Triplet[float64]{}, fmt.Errorf("index (%s, %s) in %dx%d: %w", f[0], f[1], rows, cols, ErrBadEntry)
	}
	v := 1.0
	if field != "pattern" {
		if v, err1 = strconv.ParseFloat(f[2], 64); err1 != nil {
			return matrix.Triplet[float64]{}, fmt.Errorf("value %q: %w", f[2], ErrBadEntry)
		}
	}

	return matrix.Triplet[float64]{Row: i - 1, Col: j - 1, Val: v}, nil
}

func atoiFields(s string, n int) ([]int, error) {
	f := strings.Fields(s)
	if len(f) != n {
		return nil, ErrBadHeader
	}
	out := make([]int, n)
	for k, x := range f {
		v, err := strconv.Atoi(x)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}

	return out, nil
}
