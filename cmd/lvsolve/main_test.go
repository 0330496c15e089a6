// SPDX-License-Identifier: MIT
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/lvsolve/config"
	"github.com/stretchr/testify/require"
)

const poisson3 = `%%MatrixMarket matrix coordinate real symmetric
% 1D Poisson, lower triangle
3 3 5
1 1 2
2 1 -1
2 2 2
3 2 -1
3 3 2
`

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), err
}

func TestExtractCRS(t *testing.T) {
	mtx := writeTemp(t, "p.mtx", poisson3)
	for _, ranks := range []string{"1", "2", "3"} {
		out, err := execute(t, "extract", "--ranks", ranks, "--map", "roundrobin", mtx)
		require.NoError(t, err, "ranks=%s", ranks)
		require.Equal(t, "crs 3x3 nnz=7\n"+
			"rowptr: [0 2 5 7]\n"+
			"colind: [0 1 0 1 2 1 2]\n"+
			"values: [2 -1 -1 2 -1 -1 2]\n", out, "ranks=%s", ranks)
	}
}

func TestExtractCCSReplicatedFromConfig(t *testing.T) {
	mtx := writeTemp(t, "p.mtx", poisson3)
	cfg := writeTemp(t, "lvsolve.yaml", "matrix: "+mtx+"\nranks: 2\nextract:\n  format: ccs\n  root: 1\n  replicated: true\n")

	out, err := execute(t, "extract", "--config", cfg)
	require.NoError(t, err)
	require.Equal(t, "ccs 3x3 nnz=7\n"+
		"colptr: [0 2 5 7]\n"+
		"rowind: [0 1 0 1 2 1 2]\n"+
		"values: [2 -1 -1 2 -1 -1 2]\n", out)
}

func TestFlagsOverrideFileBeforeValidation(t *testing.T) {
	mtx := writeTemp(t, "p.mtx", poisson3)
	cfg := writeTemp(t, "lvsolve.yaml", "extract:\n  root: 2\n")

	out, err := execute(t, "extract", "--config", cfg, "--ranks", "4", mtx)
	require.NoError(t, err)
	require.Contains(t, out, "rowptr: [0 2 5 7]")

	// without the override the root is out of range
	_, err = execute(t, "extract", "--config", cfg, mtx)
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestExtractDense(t *testing.T) {
	mtx := writeTemp(t, "p.mtx", poisson3)
	for _, format := range []string{"crs", "ccs"} {
		out, err := execute(t, "extract", "--ranks", "2", "--format", format, "--dense", mtx)
		require.NoError(t, err, format)
		require.Contains(t, out, "[2, -1, 0]\n[-1, 2, -1]\n[0, -1, 2]\n", format)
	}

	out, err := execute(t, "extract", mtx)
	require.NoError(t, err)
	require.NotContains(t, out, "[2, -1, 0]")
}

func TestPrecond(t *testing.T) {
	mtx := writeTemp(t, "p.mtx", poisson3)
	out, err := execute(t, "precond", "--ranks", "2", "--damping", "0.5", "--metrics", mtx)
	require.NoError(t, err)
	require.Contains(t, out, "precond 3x3 nnz=7 damping=0.5")
	// y = 0.5·D⁻¹·1 = 0.25 per row
	require.Contains(t, out, "=0.433013\n")
	require.Contains(t, out, "lvsolve_extractions_total")
	require.Contains(t, out, "lvsolve_applies_total")
}

func TestCommandErrors(t *testing.T) {
	mtx := writeTemp(t, "p.mtx", poisson3)

	_, err := execute(t, "extract")
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = execute(t, "extract", "--ranks", "0", mtx)
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = execute(t, "extract", "--format", "coo", mtx)
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = execute(t, "extract", filepath.Join(t.TempDir(), "missing.mtx"))
	require.ErrorIs(t, err, os.ErrNotExist)

	// more ranks than rows leaves some ranks empty but still works
	out, err := execute(t, "extract", "--ranks", "4", mtx)
	require.NoError(t, err)
	require.Contains(t, out, "rowptr: [0 2 5 7]")
}
