// SPDX-License-Identifier: MIT
package distmat_test

import (
	"testing"

	"github.com/katalvlaran/lvsolve/distmat"
	"github.com/stretchr/testify/require"
)

func TestUniformContigMap(t *testing.T) {
	t.Parallel()

	m, err := distmat.NewUniformContigMap(7, 3)
	require.NoError(t, err)
	require.Equal(t, 7, m.NumGlobal())
	require.Equal(t, 3, m.NumRanks())
	require.Equal(t, []int{3, 2, 2}, []int{m.NumLocal(0), m.NumLocal(1), m.NumLocal(2)})
	require.True(t, m.IsContiguous())

	rank, l, err := m.Owner(4)
	require.NoError(t, err)
	require.Equal(t, 1, rank)
	require.Equal(t, 1, l)
	require.Equal(t, 4, m.GlobalIndex(1, 1))

	_, _, err = m.Owner(7)
	require.ErrorIs(t, err, distmat.ErrRowOutOfRange)
}

func TestRoundRobinMap(t *testing.T) {
	t.Parallel()

	m, err := distmat.NewRoundRobinMap(5, 2)
	require.NoError(t, err)
	require.False(t, m.IsContiguous())
	require.Equal(t, 3, m.NumLocal(0))
	require.Equal(t, 4, m.GlobalIndex(0, 2))
	require.Equal(t, 3, m.GlobalIndex(1, 1))
}

func TestNewMapRejectsNonOneToOne(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		n     int
		owned [][]int
	}{
		{"no ranks", 2, nil},
		{"overlap", 3, [][]int{{0, 1}, {1, 2}}},
		{"missing", 3, [][]int{{0}, {2}}},
		{"out of range", 2, [][]int{{0, 2}}},
		{"negative n", -1, [][]int{{}}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := distmat.NewMap(tc.n, tc.owned)
			require.ErrorIs(t, err, distmat.ErrInvalidMap)
		})
	}

	_, err := distmat.NewUniformContigMap(3, 0)
	require.ErrorIs(t, err, distmat.ErrInvalidMap)
}

func TestEmptyMapIsValid(t *testing.T) {
	t.Parallel()

	m, err := distmat.NewUniformContigMap(0, 2)
	require.NoError(t, err)
	require.Equal(t, 0, m.NumLocal(1))
}
