// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/katalvlaran/lvsolve/adapter"
	"github.com/katalvlaran/lvsolve/comm"
	"github.com/katalvlaran/lvsolve/config"
	"github.com/katalvlaran/lvsolve/distmat"
	"github.com/katalvlaran/lvsolve/matrix"
	"github.com/spf13/cobra"
)

func newExtractCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [matrix.mtx]",
		Short: "Assemble global CRS or CCS arrays and print them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runExtract(cmd)
		},
	}
	f := cmd.Flags()
	f.String("format", config.FormatCRS, "output layout: crs or ccs")
	f.Int("root", 0, "receiving rank")
	f.Bool("replicated", false, "assemble on every rank")
	f.Bool("dense", false, "also print the assembled matrix in dense form")

	return cmd
}

func (a *app) runExtract(cmd *cobra.Command) error {
	opts := []adapter.Option{
		adapter.WithRoot(a.cfg.Extract.Root),
		adapter.WithLogger(a.logger),
		adapter.WithRecorder(a.recorder),
	}
	if a.cfg.Extract.Replicated {
		opts = append(opts, adapter.WithReplicated())
	}
	ccs := strings.EqualFold(a.cfg.Extract.Format, config.FormatCCS)
	dense, _ := cmd.Flags().GetBool("dense")

	// Replicated runs have several receivers; print once.
	var (
		once     sync.Once
		printErr error
	)
	out := cmd.OutOrStdout()
	report := func(format string, rows, cols int, ptr, ind []int, values []float64, toDense func() (*matrix.Dense[float64], error)) {
		once.Do(func() {
			printArrays(out, format, rows, cols, ptr, ind, values)
			if !dense {
				return
			}
			d, err := toDense()
			if err != nil {
				printErr = err
				return
			}
			fmt.Fprint(out, d)
		})
	}

	err := a.distributed(cmd.Context(), func(c *comm.Comm, m *distmat.CrsMatrix[float64]) error {
		ad, err := adapter.New(m, opts...)
		if err != nil {
			return err
		}
		if ccs {
			res, err := ad.CCS()
			if err != nil || res == nil {
				return err
			}
			report("ccs", res.Rows, res.Cols, res.ColPtr, res.RowInd, res.Values, res.ToDense)
			return nil
		}
		res, err := ad.CRS()
		if err != nil || res == nil {
			return err
		}
		report("crs", res.Rows, res.Cols, res.RowPtr, res.ColInd, res.Values, res.ToDense)

		return nil
	})
	if err != nil {
		return err
	}

	return printErr
}

func printArrays(w io.Writer, format string, rows, cols int, ptr, ind []int, values []float64) {
	indName, ptrName := "colind", "rowptr"
	if format == config.FormatCCS {
		indName, ptrName = "rowind", "colptr"
	}
	fmt.Fprintf(w, "%s %dx%d nnz=%d\n", format, rows, cols, len(values))
	fmt.Fprintf(w, "%s: %v\n", ptrName, ptr)
	fmt.Fprintf(w, "%s: %v\n", indName, ind)
	fmt.Fprintf(w, "values: %v\n", values)
}
