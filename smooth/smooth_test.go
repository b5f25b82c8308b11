// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smooth

import (
	"math"
	"testing"

	"github.com/snowdonr/gcms/matrix"
	"github.com/stretchr/testify/require"
)

func gaussianIC(t *testing.T) *matrix.IonChromatogram {
	t.Helper()
	times := make([]float64, 101)
	intensities := make([]float64, 101)
	for i := range times {
		times[i] = float64(i)
		x := (float64(i) - 50) / 5
		intensities[i] = 100 * math.Exp(-x*x/2)
	}
	ic, err := matrix.NewIonChromatogram(times, intensities, matrix.TIC{})
	require.NoError(t, err)
	return ic
}

func TestSavitzkyGolayPreservesGaussianApex(t *testing.T) {
	ic := gaussianIC(t)
	out, err := SavitzkyGolayIC(ic, "7", 2, 1)
	require.NoError(t, err)
	require.Len(t, out.Intensities, len(ic.Intensities))

	apex := 0
	for i, v := range out.Intensities {
		if v > out.Intensities[apex] {
			apex = i
		}
	}
	require.Equal(t, 50, apex)
	require.InDelta(t, 100, out.Intensities[apex], 0.1)
}

func TestSavitzkyGolayConstantIsUnchanged(t *testing.T) {
	times := make([]float64, 20)
	intensities := make([]float64, 20)
	for i := range times {
		times[i] = float64(i)
		intensities[i] = 42
	}
	ic, err := matrix.NewIonChromatogram(times, intensities, matrix.TIC{})
	require.NoError(t, err)

	out, err := SavitzkyGolayIC(ic, "5", 2, 1)
	require.NoError(t, err)
	for _, v := range out.Intensities {
		require.InDelta(t, 42, v, 1e-6)
	}
}

func TestMovingWindowMedian(t *testing.T) {
	times := []float64{0, 1, 2, 3, 4}
	intensities := []float64{1, 100, 1, 1, 1}
	ic, err := matrix.NewIonChromatogram(times, intensities, matrix.TIC{})
	require.NoError(t, err)

	out, err := MovingWindowIC(ic, "3", Median, 1)
	require.NoError(t, err)
	require.InDelta(t, 1, out.Intensities[1], 1e-9)
}
