// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package align

import (
	"testing"

	"github.com/snowdonr/gcms/experiment"
	"github.com/snowdonr/gcms/matrix"
	"github.com/snowdonr/gcms/peak"
	"github.com/stretchr/testify/require"
)

func samplePeak(rt float64, masses, intensities []float64) *peak.Peak {
	spectrum, err := matrix.NewMassSpectrum(masses, intensities)
	if err != nil {
		panic(err)
	}
	return peak.New(rt, spectrum, [3]int{0, 0, 0})
}

func TestPositionSimilaritySymmetric(t *testing.T) {
	a := []*peak.Peak{samplePeak(10, []float64{50, 51}, []float64{100, 50})}
	b := []*peak.Peak{samplePeak(10.1, []float64{50, 51}, []float64{90, 45})}

	ab, err := PositionSimilarity(a, b, 1.0)
	require.NoError(t, err)
	ba, err := PositionSimilarity(b, a, 1.0)
	require.NoError(t, err)
	require.InDelta(t, ab, ba, 1e-9)
}

func TestPositionSimilarityRejectsShapeMismatch(t *testing.T) {
	a := []*peak.Peak{samplePeak(10, []float64{50, 51}, []float64{100, 50})}
	b := []*peak.Peak{samplePeak(10, []float64{50}, []float64{100})}
	_, err := PositionSimilarity(a, b, 1.0)
	require.Error(t, err)
}

func TestNeedlemanWunschEmptyMatrixErrors(t *testing.T) {
	_, err := NeedlemanWunsch(nil, 0.5)
	require.Error(t, err)
}

func TestAlignConservesPeakCount(t *testing.T) {
	e1 := experiment.New("e1", []*peak.Peak{
		samplePeak(10, []float64{50}, []float64{100}),
		samplePeak(20, []float64{60}, []float64{80}),
	})
	e2 := experiment.New("e2", []*peak.Peak{
		samplePeak(10.05, []float64{50}, []float64{95}),
		samplePeak(35, []float64{70}, []float64{60}),
	})

	merged, err := Align(FromExperiment(e1), FromExperiment(e2), 1.0, 0.3)
	require.NoError(t, err)

	var total int
	for _, row := range merged.PeakAlgt {
		for _, p := range row {
			if p != nil {
				total++
			}
		}
	}
	require.Equal(t, 4, total)
	require.Len(t, merged.ExprCodes, 2)
}

func TestUPGMAProducesNMinusOneNodes(t *testing.T) {
	dist := [][]float64{
		{0, 1, 4, 5},
		{1, 0, 3, 6},
		{4, 3, 0, 2},
		{5, 6, 2, 0},
	}
	nodes, err := UPGMA(dist)
	require.NoError(t, err)
	require.Len(t, nodes, 3)
}

func TestUPGMASingleLeafProducesNoNodes(t *testing.T) {
	nodes, err := UPGMA([][]float64{{0}})
	require.NoError(t, err)
	require.Empty(t, nodes)
}

func TestToDistanceInvertsSimilarityOrdering(t *testing.T) {
	sim := [][]float64{
		{0, 4, 1},
		{4, 0, 0.5},
		{1, 0.5, 0},
	}
	dist := ToDistance(sim)
	// the most similar pair (0,1) has the highest similarity and must
	// become the least distant.
	require.Less(t, dist[0][1], dist[0][2])
	require.Less(t, dist[0][1], dist[1][2])
}

func TestCompositePeakAveragesRT(t *testing.T) {
	row := []*peak.Peak{
		samplePeak(10, []float64{50}, []float64{100}),
		samplePeak(12, []float64{50}, []float64{80}),
	}
	cp := CompositePeak(row)
	require.NotNil(t, cp)
	require.InDelta(t, 11, cp.RT, 1e-9)
}
