// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package peak

import (
	"testing"

	"github.com/snowdonr/gcms/matrix"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func buildSingleColumnIM(t *testing.T, column []float64) *matrix.IntensityMatrix {
	t.Helper()
	times := make([]float64, len(column))
	for i := range times {
		times[i] = float64(i)
	}
	data := mat.NewDense(len(column), 1, column)
	im, err := matrix.NewIntensityMatrix(data, times, []float64{100})
	require.NoError(t, err)
	return im
}

func TestBillerBiemannSingleColumnApex(t *testing.T) {
	im := buildSingleColumnIM(t, []float64{0, 1, 3, 1, 0})
	peaks, err := BillerBiemann(im, 3, 1)
	require.NoError(t, err)
	require.Len(t, peaks, 1)
	require.Equal(t, float64(2), peaks[0].RT)
}

func TestPeakUIDUsesTopTwoMasses(t *testing.T) {
	spectrum, err := matrix.NewMassSpectrum([]float64{50, 51, 52}, []float64{10, 100, 50})
	require.NoError(t, err)
	p := New(12.3, spectrum, [3]int{0, 0, 0})
	require.Equal(t, "51-52-50-12.30", p.UID())
}

func TestPeakUIDWithoutSpectrum(t *testing.T) {
	p := New(5, nil, [3]int{0, 0, 0})
	require.Equal(t, "5.00", p.UID())
}

func TestIonCountThresholdIdempotent(t *testing.T) {
	s1, err := matrix.NewMassSpectrum([]float64{50, 51}, []float64{10, 1})
	require.NoError(t, err)
	peaks := []*Peak{New(1, s1, [3]int{0, 0, 0})}
	once := IonCountThreshold(peaks, 5, 1)
	twice := IonCountThreshold(once, 5, 1)
	require.Equal(t, len(once), len(twice))
}
