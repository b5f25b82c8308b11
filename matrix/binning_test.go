// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package matrix

import (
	"testing"

	"github.com/snowdonr/gcms/rawdata"
	"github.com/stretchr/testify/require"
)

func TestBuildIntegerBins(t *testing.T) {
	s0, err := rawdata.NewScan([]float64{50, 51}, []float64{10, 20})
	require.NoError(t, err)
	s1, err := rawdata.NewScan([]float64{50, 52}, []float64{5, 30})
	require.NoError(t, err)
	s2, err := rawdata.NewScan([]float64{51, 52}, []float64{15, 25})
	require.NoError(t, err)

	raw, err := rawdata.New([]float64{0, 1, 2}, []rawdata.Scan{s0, s1, s2})
	require.NoError(t, err)

	minMass := 50.0
	im, err := Build(raw, BinningOptions{Integer: true, MinMass: &minMass})
	require.NoError(t, err)

	require.Equal(t, []float64{50, 51, 52}, im.Masses())
	want := [][]float64{
		{10, 20, 0},
		{5, 0, 30},
		{0, 15, 25},
	}
	for r, row := range want {
		require.InDeltaSlice(t, row, im.RowValues(r), 1e-9)
	}
}

func TestBuildRejectsInconsistentBinWidths(t *testing.T) {
	s0, err := rawdata.NewScan([]float64{50}, []float64{1})
	require.NoError(t, err)
	raw, err := rawdata.New([]float64{0}, []rawdata.Scan{s0})
	require.NoError(t, err)

	_, err = Build(raw, BinningOptions{BinInterval: 1, BinLeft: 0.2, BinRight: 0.9})
	require.Error(t, err)
}
